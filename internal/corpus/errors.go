package corpus

import "fmt"

// FetchKind classifies why a load failed.
type FetchKind string

const (
	FetchNetwork FetchKind = "network"
	FetchStatus  FetchKind = "status"
	FetchPayload FetchKind = "payload"
)

// FetchError is the only error a Loader returns. Message is meant for the
// reader; Err keeps the underlying cause for logs.
type FetchError struct {
	Kind       FetchKind
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func networkError(err error) *FetchError {
	return &FetchError{Kind: FetchNetwork, Message: "could not reach the scripture API", Err: err}
}

func payloadError(format string, args ...any) *FetchError {
	return &FetchError{Kind: FetchPayload, Message: "malformed scripture payload", Err: fmt.Errorf(format, args...)}
}
