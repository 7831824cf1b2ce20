// Package gemini implements feedback.Provider on top of Google's Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"answer-grader/api/internal/feedback"
	"answer-grader/api/internal/util"
)

const DefaultModel = "gemini-2.0-flash-exp"

var _ feedback.Provider = (*Provider)(nil)

// Provider holds one long-lived client. A GenerativeModel is built per call
// because its config fields are mutable.
type Provider struct {
	client      *genai.Client
	model       string
	attempts    int
	backoff     time.Duration
	temperature float32
}

type Option func(*Provider)

// WithAttempts sets how many times a failed GenerateContent call is tried.
func WithAttempts(n int) Option {
	return func(p *Provider) {
		if n > 0 {
			p.attempts = n
		}
	}
}

func WithTemperature(t float32) Option {
	return func(p *Provider) { p.temperature = t }
}

// New creates the Gemini client. The API key must already be resolved by
// the caller.
func New(ctx context.Context, apiKey, model string, opts ...Option) (*Provider, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is empty")
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultModel
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	p := &Provider{
		client:      cl,
		model:       model,
		attempts:    3,
		backoff:     300 * time.Millisecond,
		temperature: 0.4,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Provider) Name() string  { return "gemini" }
func (p *Provider) Model() string { return p.model }

func (p *Provider) Close() error {
	return p.client.Close()
}

// Complete sends prompt as a single user turn and returns the first text
// part of the answer. Transport errors are retried with a growing pause;
// an empty answer is returned as an error right away.
func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	m := p.client.GenerativeModel(p.model)
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(p.temperature),
		ResponseMIMEType: "text/plain",
	}

	var lastErr error
	for attempt := 1; attempt <= p.attempts; attempt++ {
		resp, err := m.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			lastErr = err
			if attempt == p.attempts {
				break
			}
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("gemini: %w (last error: %v)", ctx.Err(), lastErr)
			case <-time.After(time.Duration(attempt) * p.backoff):
			}
			continue
		}
		txt := util.StripCodeFences(firstText(resp))
		if txt == "" {
			return "", fmt.Errorf("gemini: %w", feedback.ErrEmptyResponse)
		}
		return txt, nil
	}
	return "", fmt.Errorf("gemini: generate content after %d attempts: %w", p.attempts, lastErr)
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		var b strings.Builder
		for _, part := range c.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		if s := strings.TrimSpace(b.String()); s != "" {
			return s
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
