package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"transcribed/internal/pipeline"
	"transcribed/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// statusForError maps pipeline outcomes to HTTP status codes. Anything the
// pipeline did not classify is treated as a server-side fault.
func statusForError(err error) int {
	switch {
	case pipeline.IsInvalidInput(err):
		return http.StatusBadRequest
	case pipeline.IsOverloaded(err):
		return http.StatusServiceUnavailable
	case pipeline.IsEngineFailure(err):
		return http.StatusInternalServerError
	}
	var he HTTPError
	if errors.As(err, &he) {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}

// writeServiceError maps the error to a status, records overload rejections,
// and writes the JSON payload. Returns the status for logging.
func writeServiceError(w http.ResponseWriter, err error) int {
	status := statusForError(err)
	if status == http.StatusServiceUnavailable {
		IncrementOverload("concurrency")
	}
	writeJSONError(w, status, err.Error())
	return status
}

// writeJSON writes a JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg, Code: status})
}
