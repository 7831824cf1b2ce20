// Package feedback turns an answer pair and its scores into short written
// feedback by asking an external text-completion provider.
package feedback

import (
	"context"
	"errors"
	"fmt"
)

// Provider is the text-completion capability feedback is built on: prompt in,
// text out, or an error. Implementations must be safe for concurrent use.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func(ctx context.Context, prompt string) (string, error)

func (f ProviderFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

var (
	ErrEmptyResponse = errors.New("provider returned empty text")
	ErrRateLimited   = errors.New("feedback rate limit exceeded")
	ErrNoProvider    = errors.New("no feedback provider configured")
)

// ServiceError describes why the provider could not produce feedback.
// Generator never returns it to callers; it is logged and replaced by
// Fallback.
type ServiceError struct {
	Reason  string
	Wrapped error
}

func (e *ServiceError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("feedback service: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("feedback service: %s", e.Reason)
}

func (e *ServiceError) Unwrap() error {
	return e.Wrapped
}
