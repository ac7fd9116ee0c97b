package httpapi

// maxUploadBytes caps the file part of a multipart upload. Default matches
// the pipeline's 25 MiB limit.
var maxUploadBytes int64 = 25 << 20

// Multipart parsing knobs: framing slack on top of the file cap, and how much
// of the form is held in memory before spilling to disk.
const (
	multipartOverhead = int64(64 << 10)
	multipartMemory   = int64(1 << 20)
)

// SetMaxUploadBytes allows configuring the maximum upload size.
func SetMaxUploadBytes(n int64) {
	if n <= 0 {
		maxUploadBytes = 25 << 20
		return
	}
	maxUploadBytes = n
}

// uploadTempDir is where multipart uploads are spooled. Empty means the
// OS temp dir.
var uploadTempDir = ""

// SetUploadTempDir sets the spool directory for uploads ("" resets to the
// OS temp dir).
func SetUploadTempDir(dir string) { uploadTempDir = dir }

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}
