package providers

import (
	"errors"
	"fmt"
	"time"
)

// ErrProviderUnavailable marks a call against a missing or misconfigured provider.
var ErrProviderUnavailable = errors.New("provider unavailable")

// RateLimitError captures rate limit responses from upstream feeds.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// MalformedFeedError marks a structurally unreadable feed. It is fatal for the
// stage consuming the feed: the run fails closed rather than publishing a
// partial snapshot.
type MalformedFeedError struct {
	Feed string
	Err  error
}

func (e *MalformedFeedError) Error() string {
	return fmt.Sprintf("malformed feed %s: %v", e.Feed, e.Err)
}

func (e *MalformedFeedError) Unwrap() error {
	return e.Err
}
