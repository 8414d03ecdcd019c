package fetcher

import "fmt"

// NetworkError reports a transport failure, an HTTP non-success status,
// or a malformed response from the upstream provider.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
