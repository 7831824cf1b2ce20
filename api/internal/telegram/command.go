package telegram

import (
	"errors"
	"strings"
)

const separator = "---"

var (
	errNoSeparator = errors.New("⚠️ Put the model answer after a line containing only ---")
	errEmptyPart   = errors.New("⚠️ Both the student answer and the model answer are required")
)

// ParseGradeCommand splits the /grade arguments at the first line that is
// exactly "---": the text before it is the student answer, the text after it
// the model answer.
func ParseGradeCommand(args string) (student, model string, err error) {
	lines := strings.Split(strings.ReplaceAll(args, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != separator {
			continue
		}
		student = strings.TrimSpace(strings.Join(lines[:i], "\n"))
		model = strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
		if student == "" || model == "" {
			return "", "", errEmptyPart
		}
		return student, model, nil
	}
	return "", "", errNoSeparator
}

// commandArgs returns everything after the leading /command token,
// "/grade@SomeBot" included.
func commandArgs(text string) string {
	text = strings.TrimLeft(text, " ")
	i := strings.IndexAny(text, " \t\n")
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(text[i:])
}
