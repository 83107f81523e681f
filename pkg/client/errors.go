package client

import "fmt"

// RetrievalError reports a failed upstream fetch: either a transport
// failure (Status == 0, Err set) or a non-2xx response. Callers treat it
// as opaque; the status and detail exist for logging.
type RetrievalError struct {
	Status int
	Detail string
	Err    error
}

func (e *RetrievalError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream returned HTTP %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("upstream request failed: %v", e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}
