package strava

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrAuthentication is returned on 401/403 from the provider, on a missing or
	// invalid session, and when a refresh token cannot be exchanged.
	// It is never retried automatically.
	ErrAuthentication = errors.New("strava authentication failed")
	// ErrRetriesExhausted wraps the last rate limit or server error once all attempts are used.
	ErrRetriesExhausted = errors.New("strava request retries exhausted")
)

// RateLimitError is a 429 Too Many Requests response.
type RateLimitError struct {
	// RetryAfter is zero when the response carried no usable Retry-After header.
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
	}
	return "rate limited"
}

// ServerError is any 5xx response.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: HTTP %d", e.StatusCode)
}

// UnexpectedResponseError is any non-2xx response not covered by the other errors.
type UnexpectedResponseError struct {
	StatusCode int
	Body       string
}

func (e *UnexpectedResponseError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected response: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected response: HTTP %d: %s", e.StatusCode, e.Body)
}

type authError struct {
	statusCode int
}

func (e *authError) Error() string {
	return fmt.Sprintf("%s: HTTP %d", ErrAuthentication, e.statusCode)
}

func (e *authError) Unwrap() error {
	return ErrAuthentication
}

// IsRetryable reports whether err is a rate limit or server error.
func IsRetryable(err error) bool {
	var rle *RateLimitError
	var se *ServerError
	return errors.As(err, &rle) || errors.As(err, &se)
}
