package grading

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"answer-grader/api/internal/similarity"
)

// MaxAnswerRunes caps each answer so the LCS table stays small.
const MaxAnswerRunes = 10000

const msgBothRequired = "Both student_answer and model_answer are required"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// AnswerPair is a validated student answer and the model answer it is
// graded against. Both texts are trimmed and non-empty.
type AnswerPair struct {
	StudentText string `json:"student_answer" validate:"required,max=10000"`
	ModelText   string `json:"model_answer" validate:"required,max=10000"`
}

// NewAnswerPair builds an AnswerPair from optional request fields. A nil,
// empty or blank field is a ValidationError.
func NewAnswerPair(student, model *string) (AnswerPair, error) {
	if student == nil || model == nil {
		return AnswerPair{}, &ValidationError{Field: missingField(student, model), Message: msgBothRequired}
	}
	p := AnswerPair{
		StudentText: strings.TrimSpace(*student),
		ModelText:   strings.TrimSpace(*model),
	}
	if err := p.Validate(); err != nil {
		return AnswerPair{}, err
	}
	return p, nil
}

// Validate checks the pair's invariants. Whitespace-only text counts as
// missing, so a pair built without NewAnswerPair follows the same policy.
func (p AnswerPair) Validate() error {
	if strings.TrimSpace(p.StudentText) == "" {
		return &ValidationError{Field: "student_answer", Message: msgBothRequired}
	}
	if strings.TrimSpace(p.ModelText) == "" {
		return &ValidationError{Field: "model_answer", Message: msgBothRequired}
	}
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return &ValidationError{Field: fe.Field(), Message: msgBothRequired}
	case "max":
		return &ValidationError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("%s must be at most %d characters", fe.Field(), MaxAnswerRunes),
		}
	default:
		return &ValidationError{Field: fe.Field(), Message: fmt.Sprintf("%s is invalid", fe.Field())}
	}
}

func missingField(student, model *string) string {
	if student == nil {
		return "student_answer"
	}
	return "model_answer"
}

// Result is the outcome of grading one AnswerPair. It is built once and not
// modified afterwards.
type Result struct {
	StudentAnswer string            `json:"student_answer"`
	ModelAnswer   string            `json:"model_answer"`
	Scores        similarity.Scores `json:"scores"`
	Feedback      string            `json:"feedback"`
	Timestamp     time.Time         `json:"timestamp"`
}
