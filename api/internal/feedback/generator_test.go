package feedback

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"answer-grader/api/internal/similarity"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

var testScores = similarity.Scores{BLEU: 0.0156, Rouge1: 0.2857, Rouge2: 0.0741, RougeL: 0.2857}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("plants make food", "plants convert light", testScores)

	assert.Contains(t, p, "Student's Answer: plants make food")
	assert.Contains(t, p, "Model Answer: plants convert light")
	assert.Contains(t, p, "BLEU=0.016, ROUGE-1=0.286, ROUGE-2=0.074, ROUGE-L=0.286")
	for _, section := range []string{"**Correct:**", "**Missing:**", "**Grade:**", "**Tip:**"} {
		assert.Contains(t, p, section)
	}
	assert.Equal(t, p, BuildPrompt("plants make food", "plants convert light", testScores))
}

func TestGenerate_ReturnsTrimmedText(t *testing.T) {
	p := new(mockProvider)
	want := BuildPrompt("a", "b", testScores)
	p.On("Complete", mock.Anything, want).Return("\n  **Correct:** good.  \n", nil).Once()

	g := NewGenerator(p, quietLogger())
	got := g.Generate(context.Background(), "a", "b", testScores)

	assert.Equal(t, "**Correct:** good.", got)
	p.AssertExpectations(t)
}

func TestGenerate_FallsBack(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		err    error
		reason string
	}{
		{"transport error", "", errors.New("connection refused"), "transport"},
		{"quota error", "", errors.New("googleapi: Error 429: quota exceeded"), "transport"},
		{"deadline from provider", "", context.DeadlineExceeded, "timeout"},
		{"empty text", "", nil, "malformed response"},
		{"blank text", " \n\t", nil, "malformed response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := new(mockProvider)
			p.On("Complete", mock.Anything, mock.Anything).Return(tt.text, tt.err)

			g := NewGenerator(p, quietLogger())
			assert.Equal(t, Fallback, g.Generate(context.Background(), "a", "b", testScores))

			_, err := g.generate(context.Background(), "prompt")
			var se *ServiceError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.reason, se.Reason)
		})
	}
}

func TestGenerate_TimeoutBoundsSlowProvider(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	// ignores ctx on purpose
	slow := ProviderFunc(func(ctx context.Context, prompt string) (string, error) {
		<-release
		return "too late", nil
	})

	g := NewGenerator(slow, quietLogger(), WithTimeout(20*time.Millisecond))

	start := time.Now()
	got := g.Generate(context.Background(), "a", "b", testScores)
	assert.Equal(t, Fallback, got)
	assert.Less(t, time.Since(start), 2*time.Second)

	_, err := g.generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGenerate_ProviderPanicIsAbsorbed(t *testing.T) {
	boom := ProviderFunc(func(ctx context.Context, prompt string) (string, error) {
		panic("boom")
	})
	g := NewGenerator(boom, quietLogger())
	assert.Equal(t, Fallback, g.Generate(context.Background(), "a", "b", testScores))
}

func TestGenerate_NoProvider(t *testing.T) {
	g := NewGenerator(nil, quietLogger())
	assert.Equal(t, Fallback, g.Generate(context.Background(), "a", "b", testScores))

	_, err := g.generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrNoProvider)
}

func TestGenerate_RateLimited(t *testing.T) {
	calls := 0
	p := ProviderFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "ok", nil
	})
	// one token, refilled once an hour: the second call cannot get a slot
	g := NewGenerator(p, quietLogger(), WithRateLimit(rate.Every(time.Hour), 1), WithTimeout(50*time.Millisecond))

	assert.Equal(t, "ok", g.Generate(context.Background(), "a", "b", testScores))

	_, err := g.generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 1, calls)
}

func TestServiceError(t *testing.T) {
	err := &ServiceError{Reason: "timeout", Wrapped: context.DeadlineExceeded}
	assert.True(t, strings.HasPrefix(err.Error(), "feedback service: timeout"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "feedback service: quota", (&ServiceError{Reason: "quota"}).Error())
}
