package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"answer-grader/api/internal/config"
	"answer-grader/api/internal/feedback"
	"answer-grader/api/internal/grading"
	"answer-grader/api/internal/handle"
	"answer-grader/api/internal/httpserver"
	"answer-grader/api/internal/llm/gemini"
	"answer-grader/api/internal/llm/openai"
	"answer-grader/api/internal/telegram"
)

const (
	pollingWorkers = 4
	webhookWorkers = 16
)

func newServeCommand(debug *bool) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the grading HTTP API (and the Telegram bot when configured)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			if err := cfg.RequireProviderKey(); err != nil {
				return err
			}
			level := cfg.SlogLevel()
			if *debug {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "Listen port (overrides PORT)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// ── Dependencies ────────────────────────────────────────────────
	provider, model, closeProvider, err := newProvider(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeProvider()

	gen := feedback.NewGenerator(provider, logger,
		feedback.WithTimeout(cfg.FeedbackTimeout),
		feedback.WithRateLimit(rate.Limit(cfg.FeedbackRPS), cfg.FeedbackBurst),
	)
	grader := grading.New(gen, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.Handle("/", handle.Routes(handle.New(grader, logger)))

	eg, ctx := errgroup.WithContext(ctx)

	// ── Telegram (optional) ─────────────────────────────────────────
	if cfg.TelegramBotToken != "" {
		bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
		if err != nil {
			return fmt.Errorf("telegram: %w", err)
		}
		router := &telegram.Router{
			Bot:          bot,
			Grader:       grader,
			Logger:       logger,
			GradeTimeout: cfg.FeedbackTimeout + 10*time.Second,
		}
		if cfg.WebhookURL != "" {
			path, err := telegram.RegisterWebhook(bot, cfg.WebhookURL)
			if err != nil {
				return fmt.Errorf("telegram webhook: %w", err)
			}
			mux.Handle("POST "+path, telegram.WebhookHandler(ctx, bot, webhookWorkers, logger, router.HandleUpdate))
			logger.Info("telegram webhook registered", "bot", bot.Self.UserName)
		} else {
			if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
				logger.Warn("telegram: delete webhook failed", "error", err)
			}
			eg.Go(func() error {
				return telegram.RunPolling(ctx, bot, pollingWorkers, logger, router.HandleUpdate)
			})
			logger.Info("telegram polling started", "bot", bot.Self.UserName)
		}
	}

	// ── Server ──────────────────────────────────────────────────────
	srv := httpserver.New(cfg.Addr(), mux, logger, httpserver.WithWriteTimeout(cfg.WriteTimeout()))
	eg.Go(func() error {
		return srv.Run(ctx, cfg.ShutdownTimeout)
	})

	logger.Info("grader started", "address", cfg.Addr(), "provider", provider.Name(), "model", model)
	return eg.Wait()
}

// namedProvider is a feedback.Provider that can identify itself in logs.
type namedProvider interface {
	feedback.Provider
	Name() string
}

func newProvider(ctx context.Context, cfg *config.Config) (namedProvider, string, func(), error) {
	switch cfg.FeedbackProvider {
	case "openai":
		p := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
		return p, p.Model, func() {}, nil
	default:
		p, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, gemini.WithAttempts(cfg.FeedbackRetries))
		if err != nil {
			return nil, "", nil, err
		}
		return p, p.Model(), func() { _ = p.Close() }, nil
	}
}
