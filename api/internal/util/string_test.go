package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"  padded  ", "padded"},
		{"```\nfenced\n```", "fenced"},
		{"```markdown\n**Correct:** yes\n```", "**Correct:** yes"},
		{"```one line```", "one line"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripCodeFences(tt.in), tt.in)
	}
}

func TestClampRunes(t *testing.T) {
	assert.Equal(t, "short", ClampRunes("short", 10, "…"))
	assert.Equal(t, "abcd…", ClampRunes("abcdefgh", 5, "…"))
	assert.Equal(t, "привет", ClampRunes("привет мир", 6, ""))
	assert.Equal(t, "…", ClampRunes("abc", 1, "…"))
}
