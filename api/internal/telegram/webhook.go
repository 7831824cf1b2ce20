package telegram

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"
)

// WebhookPath is the secret path Telegram posts updates to.
func WebhookPath(token string) string {
	return "/webhook/" + shortHash(token)
}

// RegisterWebhook points Telegram at baseURL + WebhookPath(token).
func RegisterWebhook(bot *tgbotapi.BotAPI, baseURL string) (string, error) {
	path := WebhookPath(bot.Token)
	public := strings.TrimRight(baseURL, "/") + path

	wh, err := tgbotapi.NewWebhook(public)
	if err != nil {
		return "", err
	}
	wh.DropPendingUpdates = true
	if _, err := bot.Request(wh); err != nil {
		return "", err
	}
	return path, nil
}

// UpdateDecoder is the webhook part of *tgbotapi.BotAPI.
type UpdateDecoder interface {
	HandleUpdate(r *http.Request) (*tgbotapi.Update, error)
}

// WebhookHandler decodes one update per request and hands it to handle in
// the background, so Telegram gets its 200 right away. At most workers
// updates run at once; beyond that the request gets 503 and Telegram
// redelivers it later.
func WebhookHandler(ctx context.Context, bot UpdateDecoder, workers int, logger *slog.Logger, handle func(context.Context, tgbotapi.Update)) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = 1
	}
	var g errgroup.Group
	g.SetLimit(workers)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upd, err := bot.HandleUpdate(r)
		if err != nil {
			logger.Warn("bad webhook update", "error", err)
			http.Error(w, "bad update", http.StatusBadRequest)
			return
		}
		started := g.TryGo(func() error {
			handle(ctx, *upd)
			return nil
		})
		if !started {
			logger.Warn("webhook busy, update rejected", "update_id", upd.UpdateID)
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}

func shortHash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])[:16]
}
