package importer

import "fmt"

// ErrorKind classifies import failures. Every kind carries a message
// suitable for showing to the end user as-is.
type ErrorKind int

const (
	ErrInvalidURL ErrorKind = iota
	ErrNotFound
	ErrRemote
	ErrTimeout
	ErrPayloadTooLarge
	ErrNetworkUnreachable
	ErrExtractionFailed
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidURL:
		return "invalid_url"
	case ErrNotFound:
		return "not_found"
	case ErrRemote:
		return "remote_error"
	case ErrTimeout:
		return "timeout"
	case ErrPayloadTooLarge:
		return "payload_too_large"
	case ErrNetworkUnreachable:
		return "network_unreachable"
	case ErrExtractionFailed:
		return "extraction_failed"
	}
	return "unknown"
}

// Error is the failure type returned by the import pipeline.
type Error struct {
	Kind       ErrorKind
	StatusCode int // set for ErrRemote
	Message    string
	cause      error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Retryable reports whether re-running the same import could succeed.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case ErrRemote, ErrTimeout, ErrNetworkUnreachable:
		return true
	}
	return false
}

func newError(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, cause: cause}
}

func invalidURLError(cause error) *Error {
	return newError(ErrInvalidURL, "this does not look like a valid web page address", cause)
}

func notFoundError(url string) *Error {
	return newError(ErrNotFound, "the page could not be found (404)", nil)
}

func remoteError(status int) *Error {
	e := newError(ErrRemote, fmt.Sprintf("the website returned an error (HTTP %d)", status), nil)
	e.StatusCode = status
	return e
}

func timeoutError(cause error) *Error {
	return newError(ErrTimeout, "the website took too long to respond", cause)
}

func payloadTooLargeError() *Error {
	return newError(ErrPayloadTooLarge, "the page is too large to import", nil)
}

func unreachableError(cause error) *Error {
	return newError(ErrNetworkUnreachable, "the website could not be reached", cause)
}

func extractionFailedError() *Error {
	return newError(ErrExtractionFailed, "could not extract a usable recipe title from this page", nil)
}
