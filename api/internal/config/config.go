package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"answer-grader/api/internal/llm/openai"
)

// MaxFeedbackTimeout bounds FEEDBACK_TIMEOUT; the HTTP write timeout is
// derived from it.
const MaxFeedbackTimeout = 5 * time.Minute

type Config struct {
	Port string `env:"PORT" envDefault:"5000" validate:"required"`

	// FeedbackProvider selects the text-completion backend for feedback
	FeedbackProvider string `env:"FEEDBACK_PROVIDER" envDefault:"gemini" validate:"oneof=gemini openai"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash-exp" validate:"required"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini" validate:"required"`
	// OpenAIBaseURL falls back to openai.DefaultBaseURL when unset
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" validate:"omitempty,url"`

	FeedbackTimeout time.Duration `env:"FEEDBACK_TIMEOUT" envDefault:"30s" validate:"gt=0,lte=5m"`
	FeedbackRPS     float64       `env:"FEEDBACK_RPS" envDefault:"1" validate:"gt=0"`
	FeedbackBurst   int           `env:"FEEDBACK_BURST" envDefault:"5" validate:"gte=1"`
	FeedbackRetries int           `env:"FEEDBACK_RETRIES" envDefault:"3" validate:"gte=1,lte=10"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s" validate:"gt=0"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	// Telegram front end, enabled when the token is set
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	WebhookURL       string `env:"WEBHOOK_URL" validate:"omitempty,url"`
}

// Load reads .env (if present) and the process environment. It does not
// require provider credentials; commands that call the feedback service
// check RequireProviderKey themselves.
func Load() (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.FeedbackProvider = strings.ToLower(strings.TrimSpace(cfg.FeedbackProvider))
	cfg.OpenAIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.OpenAIBaseURL), "/")
	if cfg.OpenAIBaseURL == "" {
		cfg.OpenAIBaseURL = openai.DefaultBaseURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config: %s fails %q (value %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// RequireProviderKey reports a missing credential for the selected feedback
// provider. A self-hosted OpenAI-compatible endpoint needs no key.
func (c *Config) RequireProviderKey() error {
	switch c.FeedbackProvider {
	case "openai":
		if strings.TrimSpace(c.OpenAIAPIKey) == "" && c.OpenAIBaseURL == openai.DefaultBaseURL {
			return errors.New("config: required environment variable OPENAI_API_KEY is not set")
		}
	default:
		if strings.TrimSpace(c.GeminiAPIKey) == "" {
			return errors.New("config: required environment variable GEMINI_API_KEY is not set")
		}
	}
	return nil
}

// WriteTimeout is the HTTP write deadline: one full feedback call plus
// time for scoring and the response itself.
func (c *Config) WriteTimeout() time.Duration {
	return c.FeedbackTimeout + 30*time.Second
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) Addr() string {
	return "0.0.0.0:" + strings.TrimPrefix(c.Port, ":")
}
