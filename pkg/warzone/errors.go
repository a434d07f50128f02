package warzone

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned when no session is active or the
	// upstream rejected the session. The caller must log in again.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrUpstreamFailure  = errors.New("upstream failure")
	ErrCancelled        = errors.New("request cancelled")
	ErrInvalidQuery     = errors.New("invalid query")
)

// UpstreamError carries the status and message of a failed upstream call.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("upstream failure: %s", e.Message)
	}
	return fmt.Sprintf("upstream failure (status %d): %s", e.Status, e.Message)
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstreamFailure
}
