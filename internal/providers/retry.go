package providers

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type rateLimitError struct{}

func (e *rateLimitError) Error() string { return "rate limited" }

type serverError struct {
	statusCode int
	body       string
}

func (e *serverError) Error() string {
	return fmt.Sprintf("server error (status %d): %s", e.statusCode, e.body)
}

type authError struct {
	message string
}

func (e *authError) Error() string {
	return "authentication error: " + e.message
}

// IsAuthError checks if an error is an authentication error.
func IsAuthError(err error) bool {
	var ae *authError
	return errors.As(err, &ae)
}

func isRetryable(err error) bool {
	var rl *rateLimitError
	var se *serverError
	return errors.As(err, &rl) || errors.As(err, &se)
}

// baseBackoff is the first retry delay; it doubles on every attempt.
var baseBackoff = time.Second

func retryWithBackoff(ctx context.Context, maxRetries int, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil || !isRetryable(lastErr) {
			return lastErr
		}
		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(baseBackoff << uint(attempt)):
			}
		}
	}
	return lastErr
}

// classifyStatus maps a non-200 HTTP status to a typed error.
func classifyStatus(status int, body string) error {
	switch {
	case status == 429:
		return &rateLimitError{}
	case status == 401 || status == 403:
		return &authError{message: body}
	case status >= 500:
		return &serverError{statusCode: status, body: body}
	default:
		return fmt.Errorf("API error (status %d): %s", status, body)
	}
}
