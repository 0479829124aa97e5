package genai

import (
	"errors"
	"fmt"
)

// ErrUnavailable indicates a transport-level fault (network error, timeout)
// while reaching the generation provider. Potentially transient; the caller
// may retry later. The gateway itself never retries.
var ErrUnavailable = errors.New("generation provider unavailable")

// RejectedError indicates the provider explicitly declined the request,
// e.g. quota exhaustion, safety filtering, or an invalid model. Not
// retryable without changing the input.
type RejectedError struct {
	Status  string
	Message string
	Code    int
}

func (e *RejectedError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("generation rejected (%s): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("generation rejected: %s", e.Message)
}

// IsRejected reports whether err is a provider rejection.
func IsRejected(err error) bool {
	var rejected *RejectedError
	return errors.As(err, &rejected)
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
