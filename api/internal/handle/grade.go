package handle

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"answer-grader/api/internal/grading"
	"answer-grader/api/internal/similarity"
)

const maxBodyBytes = 1 << 20

// --- GRADE ------------------------------------------------------------------

// gradeReq uses pointers so a missing field can be told apart from an empty one.
type gradeReq struct {
	StudentAnswer *string `json:"student_answer"`
	ModelAnswer   *string `json:"model_answer"`
}

type gradeResp struct {
	StudentAnswer string            `json:"student_answer"`
	ModelAnswer   string            `json:"model_answer"`
	Scores        similarity.Scores `json:"scores"`
	Feedback      string            `json:"feedback"`
	Timestamp     string            `json:"timestamp"`
}

func (h *Handle) Grade(w http.ResponseWriter, r *http.Request) {
	var req gradeReq
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		var (
			maxErr  *http.MaxBytesError
			typeErr *json.UnmarshalTypeError
		)
		switch {
		case errors.Is(err, io.EOF):
			writeError(w, http.StatusBadRequest, "No JSON data provided")
		case errors.As(err, &maxErr):
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
		case errors.As(err, &typeErr) && typeErr.Field != "":
			writeError(w, http.StatusBadRequest, typeErr.Field+" must be a string")
		case errors.As(err, &typeErr):
			writeError(w, http.StatusBadRequest, "Request body must be a JSON object")
		default:
			writeError(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		}
		return
	}

	pair, err := grading.NewAnswerPair(req.StudentAnswer, req.ModelAnswer)
	if err != nil {
		h.fail(w, err)
		return
	}

	res, err := h.grader.Grade(r.Context(), pair)
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, gradeResp{
		StudentAnswer: res.StudentAnswer,
		ModelAnswer:   res.ModelAnswer,
		Scores:        res.Scores.Rounded(4),
		Feedback:      res.Feedback,
		Timestamp:     res.Timestamp.Format(time.RFC3339Nano),
	})
}

// fail maps a pipeline error to a response; only validation messages reach
// the client.
func (h *Handle) fail(w http.ResponseWriter, err error) {
	var verr *grading.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Message)
		return
	}
	h.logger.Error("grade failed", "error", err)
	writeError(w, http.StatusInternalServerError, grading.MsgInternal)
}
