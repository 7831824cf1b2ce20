// Package grading runs the grading pipeline: validate the answer pair,
// score it, ask for feedback and assemble the result.
package grading

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"answer-grader/api/internal/feedback"
	"answer-grader/api/internal/similarity"
)

// FeedbackGenerator writes feedback for a scored answer pair. It must not
// fail; *feedback.Generator falls back to a fixed text instead.
type FeedbackGenerator interface {
	Generate(ctx context.Context, studentAnswer, modelAnswer string, scores similarity.Scores) string
}

var _ FeedbackGenerator = (*feedback.Generator)(nil)

// Grader is stateless apart from its injected dependencies, so one value
// can serve concurrent requests.
type Grader struct {
	feedback FeedbackGenerator
	now      func() time.Time
	logger   *slog.Logger
}

type Option func(*Grader)

// WithClock replaces time.Now as the source of result timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Grader) { g.now = now }
}

func New(fb FeedbackGenerator, logger *slog.Logger, opts ...Option) *Grader {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Grader{feedback: fb, now: func() time.Time { return time.Now().UTC() }, logger: logger}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Grade runs the pipeline for one pair. It returns a *ValidationError for a
// bad pair and an *InternalError for anything else that goes wrong; feedback
// problems never surface here.
func (g *Grader) Grade(ctx context.Context, pair AnswerPair) (res *Result, err error) {
	stage := Validating
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = &InternalError{Stage: stage, Err: fmt.Errorf("panic: %v", r)}
		}
		if err != nil {
			g.logger.Debug("grading stopped", "stage", stage.String(), "error", err)
		}
	}()

	if err := pair.Validate(); err != nil {
		stage = Failed
		return nil, err
	}

	stage = Scoring
	scores := similarity.ComputeTokens(
		similarity.Tokenize(pair.StudentText),
		similarity.Tokenize(pair.ModelText),
	)
	if err := scores.Check(); err != nil {
		return nil, &InternalError{Stage: stage, Err: &ScoringError{Err: err}}
	}

	stage = GeneratingFeedback
	text := feedback.Fallback
	if g.feedback != nil {
		text = g.feedback.Generate(ctx, pair.StudentText, pair.ModelText, scores)
	}
	if strings.TrimSpace(text) == "" {
		text = feedback.Fallback
	}

	stage = Assembling
	res = &Result{
		StudentAnswer: pair.StudentText,
		ModelAnswer:   pair.ModelText,
		Scores:        scores,
		Feedback:      text,
		Timestamp:     g.now(),
	}

	stage = Done
	g.logger.Debug("answer graded",
		"bleu", scores.BLEU,
		"rouge_1", scores.Rouge1,
		"rouge_2", scores.Rouge2,
		"rouge_l", scores.RougeL,
	)
	return res, nil
}
