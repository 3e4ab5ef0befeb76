package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNilClient is wrapped by the NetworkError a nil *Client returns.
var ErrNilClient = errors.New("client is nil")

// NetworkError is the single failure kind surfaced by Client: transport
// failures, non-2xx responses and malformed payloads all map to it.
type NetworkError struct {
	Op         string // what the caller was doing, e.g. "fetch catalog"
	Method     string
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *NetworkError) Error() string {
	if e == nil {
		return "<nil>"
	}
	target := strings.TrimSpace(e.Method + " " + e.URL)
	switch {
	case e.StatusCode != 0 && e.Err == nil:
		return fmt.Sprintf("%s: %s returned status %d", e.Op, target, e.StatusCode)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %s returned status %d: %v", e.Op, target, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, target, e.Err)
	default:
		return fmt.Sprintf("%s: %s failed", e.Op, target)
	}
}

func (e *NetworkError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsNetworkError reports whether err or anything it wraps is a *NetworkError.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
