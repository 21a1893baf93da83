package backend

import "fmt"

// ErrorKind classifies a backend failure for internal logging and retry
// decisions. Callers never surface the kind or detail to clients.
type ErrorKind string

const (
	KindTransport ErrorKind = "transport"
	KindTimeout   ErrorKind = "timeout"
	KindHTTP      ErrorKind = "http"
	KindRPC       ErrorKind = "rpc"
	KindDecode    ErrorKind = "decode"
)

// Error is a tagged backend failure
type Error struct {
	Op     string
	Kind   ErrorKind
	Status int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("backend %s: %s (status %d): %s", e.Op, e.Kind, e.Status, e.Detail)
	}
	return fmt.Sprintf("backend %s: %s: %s", e.Op, e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// retryable reports whether the failure is worth retrying: transport-level
// problems, timeouts and 5xx responses.
func (e *Error) retryable() bool {
	switch e.Kind {
	case KindTransport, KindTimeout:
		return true
	case KindHTTP:
		return e.Status >= 500
	}
	return false
}
