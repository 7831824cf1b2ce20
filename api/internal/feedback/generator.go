package feedback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"answer-grader/api/internal/similarity"
)

// Fallback is returned whenever the provider cannot produce feedback.
const Fallback = "Feedback is currently unavailable. Please rely on the similarity scores for now."

const DefaultTimeout = 30 * time.Second

// Generator produces feedback text. It holds no per-call state and is safe
// to share between requests.
type Generator struct {
	provider Provider
	timeout  time.Duration
	limiter  *rate.Limiter
	logger   *slog.Logger
}

type Option func(*Generator)

// WithTimeout bounds every provider call, rate-limit wait included.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithRateLimit caps provider calls to r per second with the given burst.
// Calls that cannot get a slot before the timeout fall back.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(g *Generator) {
		g.limiter = rate.NewLimiter(r, burst)
	}
}

func NewGenerator(p Provider, logger *slog.Logger, opts ...Option) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Generator{
		provider: p,
		timeout:  DefaultTimeout,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns the provider's feedback, trimmed, or Fallback if the
// provider fails, times out, or answers with blank text. It never fails.
func (g *Generator) Generate(ctx context.Context, studentAnswer, modelAnswer string, scores similarity.Scores) string {
	text, err := g.generate(ctx, BuildPrompt(studentAnswer, modelAnswer, scores))
	if err != nil {
		g.logger.Warn("feedback unavailable, using fallback", "error", err)
		return Fallback
	}
	return text
}

func (g *Generator) generate(ctx context.Context, prompt string) (string, error) {
	if g.provider == nil {
		return "", &ServiceError{Reason: "not configured", Wrapped: ErrNoProvider}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", &ServiceError{Reason: "quota", Wrapped: fmt.Errorf("%w: %v", ErrRateLimited, err)}
		}
	}

	type reply struct {
		text string
		err  error
	}
	// buffered so a provider that ignores ctx can still finish and exit
	done := make(chan reply, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- reply{err: fmt.Errorf("provider panic: %v", r)}
			}
		}()
		text, err := g.provider.Complete(ctx, prompt)
		done <- reply{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", &ServiceError{Reason: "timeout", Wrapped: ctx.Err()}
	case r := <-done:
		if r.err != nil {
			reason := "transport"
			if errors.Is(r.err, context.DeadlineExceeded) {
				reason = "timeout"
			}
			return "", &ServiceError{Reason: reason, Wrapped: r.err}
		}
		text := strings.TrimSpace(r.text)
		if text == "" {
			return "", &ServiceError{Reason: "malformed response", Wrapped: ErrEmptyResponse}
		}
		return text, nil
	}
}
