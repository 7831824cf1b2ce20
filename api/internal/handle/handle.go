package handle

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"answer-grader/api/internal/grading"
)

// Grader is the grading pipeline as seen by the HTTP layer.
type Grader interface {
	Grade(ctx context.Context, pair grading.AnswerPair) (*grading.Result, error)
}

type Handle struct {
	grader Grader
	logger *slog.Logger
}

func New(g Grader, logger *slog.Logger) *Handle {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handle{
		grader: g,
		logger: logger,
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorBody{Error: msg})
}
