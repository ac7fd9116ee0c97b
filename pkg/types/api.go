package types

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: unsupported file format: xyz
	Error string `json:"error" example:"unsupported file format: xyz"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /api/status.
type StatusResponse struct {
	// Overall service state (ok while the process is serving).
	// example: ok
	Status string `json:"status" example:"ok"`
	// Number of requests currently admitted and processing.
	// example: 2
	ActiveRequests int `json:"active_requests" example:"2"`
	// Hard ceiling on simultaneously processing requests.
	// example: 5
	MaxConcurrentRequests int `json:"max_concurrent_requests" example:"5"`
	// Always zero: denied requests are rejected immediately, never queued.
	// example: 0
	QueueSize int `json:"queue_size" example:"0"`
	// Whether a new request would be admitted right now.
	// example: true
	CanAcceptRequests bool `json:"can_accept_requests" example:"true"`
}

// FormatsResponse is returned by GET /api/formats.
type FormatsResponse struct {
	// Accepted upload formats (by extension, case-insensitive).
	InputFormats []string `json:"input_formats"`
	// Formats available as conversion targets.
	OutputFormats []string `json:"output_formats"`
	// Recognized language selectors, including "auto".
	Languages []string `json:"languages"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	// example: ok
	Status string `json:"status" example:"ok"`
}
