package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"answer-grader/api/internal/llm/openai"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env here
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.0-flash-exp", cfg.GeminiModel)
	assert.Equal(t, 30*time.Second, cfg.FeedbackTimeout)
	assert.Equal(t, 1.0, cfg.FeedbackRPS)
	assert.Equal(t, 5, cfg.FeedbackBurst)
	assert.Equal(t, 3, cfg.FeedbackRetries)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.Equal(t, "0.0.0.0:5000", cfg.Addr())
	assert.Empty(t, cfg.TelegramBotToken)
	assert.Equal(t, "gemini", cfg.FeedbackProvider)
	assert.Equal(t, openai.DefaultBaseURL, cfg.OpenAIBaseURL)
	assert.Equal(t, 60*time.Second, cfg.WriteTimeout())
	require.NoError(t, cfg.RequireProviderKey())
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "8080")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-flash")
	t.Setenv("FEEDBACK_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("WEBHOOK_URL", "https://grader.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, 5*time.Second, cfg.FeedbackTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_MissingKeyIsLeftToTheCaller(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.RequireProviderKey(), "GEMINI_API_KEY")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"bad duration", "FEEDBACK_TIMEOUT", "soon"},
		{"zero timeout", "FEEDBACK_TIMEOUT", "0s"},
		{"timeout above max", "FEEDBACK_TIMEOUT", (MaxFeedbackTimeout + time.Second).String()},
		{"unknown log level", "LOG_LEVEL", "chatty"},
		{"bad webhook url", "WEBHOOK_URL", "not a url"},
		{"zero burst", "FEEDBACK_BURST", "0"},
		{"unknown provider", "FEEDBACK_PROVIDER", "llama-farm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestRequireProviderKey_OpenAI(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FEEDBACK_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.FeedbackProvider)
	assert.ErrorContains(t, cfg.RequireProviderKey(), "OPENAI_API_KEY")

	// a local OpenAI-compatible server needs no key
	cfg.OpenAIBaseURL = "http://localhost:11434/v1"
	assert.NoError(t, cfg.RequireProviderKey())
}

func TestLoad_OpenAIBaseURLNormalized(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FEEDBACK_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_BASE_URL", openai.DefaultBaseURL+"/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, openai.DefaultBaseURL, cfg.OpenAIBaseURL)
	assert.ErrorContains(t, cfg.RequireProviderKey(), "OPENAI_API_KEY", "trailing slash still means the hosted API")
}

func TestWriteTimeoutCoversFeedback(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FEEDBACK_TIMEOUT", MaxFeedbackTimeout.String())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Greater(t, cfg.WriteTimeout(), cfg.FeedbackTimeout)
}
