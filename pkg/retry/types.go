package retry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Category classifies a failure for retry decisions.
type Category string

const (
	// CategoryNetwork covers transport failures and timeouts. Retriable.
	CategoryNetwork Category = "network"
	// CategoryRateLimit covers quota/throttling rejections. Retriable.
	CategoryRateLimit Category = "rate_limit"
	// CategoryAuth covers authentication and configuration failures.
	// Never retried: the next attempt would fail the same way.
	CategoryAuth Category = "auth"
	// CategoryProcessing covers malformed input or output.
	CategoryProcessing Category = "processing"
	// CategoryCacheIO covers backing-store failures. Callers absorb these
	// as cache misses; they never reach the policy.
	CategoryCacheIO Category = "cache_io"
	// CategoryUnknown is everything else. Not retried.
	CategoryUnknown Category = "unknown"
)

// Retriable reports whether the policy should attempt the operation again.
func (c Category) Retriable() bool {
	return c == CategoryNetwork || c == CategoryRateLimit
}

// CategorizedError attaches a Category to an underlying error.
type CategorizedError struct {
	Category Category
	Err      error
}

func (e *CategorizedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Category, e.Err)
}

func (e *CategorizedError) Unwrap() error {
	return e.Err
}

// Wrap tags err with a category. Returns nil for a nil err.
func Wrap(category Category, err error) error {
	if err == nil {
		return nil
	}
	return &CategorizedError{Category: category, Err: err}
}

// Classify determines the category of an arbitrary error. Tagged errors keep
// their category; context deadlines and net errors classify as network;
// everything else falls through keyword matching to unknown.
func Classify(err error) Category {
	if err == nil {
		return CategoryUnknown
	}

	var ce *CategorizedError
	if errors.As(err, &ce) {
		return ce.Category
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryNetwork
	}

	var ne net.Error
	if errors.As(err, &ne) {
		return CategoryNetwork
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "rate limit", "quota", "throttle", "too many requests"):
		return CategoryRateLimit
	case containsAny(msg, "unauthorized", "api key", "forbidden", "permission"):
		return CategoryAuth
	case containsAny(msg, "connection", "timeout", "network", "dns", "refused"):
		return CategoryNetwork
	case containsAny(msg, "parse", "decode", "unmarshal", "malformed"):
		return CategoryProcessing
	}

	return CategoryUnknown
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
