package pipeline

// invalidInputError signals a request the client can fix (bad format,
// oversized upload, unknown language, corrupt media) for 400 mapping.
type invalidInputError struct{ msg string }

func (e invalidInputError) Error() string { return e.msg }

// ErrInvalidInput constructs an invalidInputError.
func ErrInvalidInput(msg string) error { return invalidInputError{msg: msg} }

// IsInvalidInput reports whether err is attributable to the request itself.
func IsInvalidInput(err error) bool {
	_, ok := err.(invalidInputError)
	return ok
}

// overloadedError signals gate denial for 503 mapping. It says nothing about
// the request's validity; the caller should retry after backoff.
type overloadedError struct{}

func (overloadedError) Error() string { return "too many concurrent requests, try again later" }

// ErrOverloaded constructs an overloadedError.
func ErrOverloaded() error { return overloadedError{} }

// IsOverloaded reports whether err indicates admission was denied.
func IsOverloaded(err error) bool {
	_, ok := err.(overloadedError)
	return ok
}

// engineFailureError signals an unexpected fault in an external engine or a
// generation step, for 500 mapping. The wrapped cause is logged server-side
// only; Error returns a stable generic reason.
type engineFailureError struct {
	stage string
	cause error
}

func (e engineFailureError) Error() string { return e.stage + " stage failed" }

func (e engineFailureError) Unwrap() error { return e.cause }

// ErrEngineFailure constructs an engineFailureError for the given stage.
func ErrEngineFailure(stage string, cause error) error {
	return engineFailureError{stage: stage, cause: cause}
}

// IsEngineFailure reports whether err indicates a server-side engine fault.
func IsEngineFailure(err error) bool {
	_, ok := err.(engineFailureError)
	return ok
}
