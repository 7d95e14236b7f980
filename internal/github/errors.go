package github

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when the requested user or repository does not exist.
var ErrNotFound = errors.New("github: not found")

// RateLimitError is returned when the API quota is exhausted. RetryAfter is
// derived from the X-RateLimit-Reset header when present.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("github: rate limit exhausted, retry after %s", e.RetryAfter)
	}
	return "github: rate limit exhausted"
}
