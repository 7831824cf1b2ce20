package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"answer-grader/api/internal/grading"
	"answer-grader/api/internal/util"
)

// maxMessageRunes keeps replies under Telegram's 4096-character limit.
const maxMessageRunes = 3900

const usage = `Send an answer to grade like this:

/grade <student answer>
---
<model answer>

Commands: /grade, /health, /help`

// Sender is the part of *tgbotapi.BotAPI the router needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Grader interface {
	Grade(ctx context.Context, pair grading.AnswerPair) (*grading.Result, error)
}

type Router struct {
	Bot    Sender
	Grader Grader
	Logger *slog.Logger

	// GradeTimeout bounds one /grade command; zero means no extra bound.
	GradeTimeout time.Duration
}

func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if !upd.Message.IsCommand() {
		if strings.TrimSpace(upd.Message.Text) != "" {
			r.send(cid, usage)
		}
		return
	}

	switch upd.Message.Command() {
	case "start", "help":
		r.send(cid, usage)
	case "health":
		r.send(cid, "✅ OK")
	case "grade":
		r.handleGrade(ctx, cid, commandArgs(upd.Message.Text))
	default:
		r.send(cid, "Unknown command. Try /help")
	}
}

func (r *Router) handleGrade(ctx context.Context, chatID int64, args string) {
	student, model, err := ParseGradeCommand(args)
	if err != nil {
		r.send(chatID, err.Error()+"\n\n"+usage)
		return
	}
	pair, err := grading.NewAnswerPair(&student, &model)
	if err != nil {
		r.send(chatID, "⚠️ "+err.Error())
		return
	}

	if r.GradeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.GradeTimeout)
		defer cancel()
	}

	res, err := r.Grader.Grade(ctx, pair)
	if err != nil {
		var verr *grading.ValidationError
		if errors.As(err, &verr) {
			r.send(chatID, "⚠️ "+verr.Message)
			return
		}
		r.logger().Error("telegram grade failed", "chat_id", chatID, "error", err)
		r.send(chatID, "⚠️ "+grading.MsgInternal+". Please try again later.")
		return
	}
	r.send(chatID, FormatResult(res))
}

// FormatResult renders a graded answer as a chat message.
func FormatResult(res *grading.Result) string {
	s := res.Scores.Rounded(4)
	var b strings.Builder
	b.WriteString("📊 Scores\n")
	fmt.Fprintf(&b, "BLEU: %.4f\n", s.BLEU)
	fmt.Fprintf(&b, "ROUGE-1: %.4f\n", s.Rouge1)
	fmt.Fprintf(&b, "ROUGE-2: %.4f\n", s.Rouge2)
	fmt.Fprintf(&b, "ROUGE-L: %.4f\n", s.RougeL)
	b.WriteString("\n💬 Feedback\n")
	b.WriteString(res.Feedback)
	return util.ClampRunes(b.String(), maxMessageRunes, "…")
}

func (r *Router) send(chatID int64, text string) {
	if _, err := r.Bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		r.logger().Warn("telegram send failed", "chat_id", chatID, "error", err)
	}
}

func (r *Router) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
