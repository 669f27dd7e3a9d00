package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizer_SizeLimit(t *testing.T) {
	limit := DefaultMaxInputSize

	tests := []struct {
		name      string
		inputSize int
		wantErr   bool
	}{
		{"Under Limit", limit - 1, false},
		{"Exact Limit", limit, false},
		{"Over Limit", limit + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SanitizeInput(strings.Repeat("a", tt.inputSize))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInputTooLarge)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizer_Normalizes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Normal Text", "我想买衣服", "我想买衣服"},
		{"Surrounding Whitespace", " 我想买衣服\r\n", "我想买衣服"},
		{"Layout Becomes Spaces", "Line1\nLine2\tTabbed", "Line1 Line2 Tabbed"},
		{"Inner Spaces Kept", "buy a shirt", "buy a shirt"},
		{"ANSI Code", "\x1b[31m红色\x1b[0m", "[31m红色[0m"},
		{"Null Byte", "中\x00号", "中号"},
		{"Bell", "Ding\x07", "Ding"},
		{"Empty", "  \n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeInput(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSanitizer_Limit(t *testing.T) {
	t.Run("Env Override", func(t *testing.T) {
		t.Setenv(EnvMaxInputSize, "10")

		_, err := SanitizeInput("12345678901")
		assert.ErrorIs(t, err, ErrInputTooLarge)

		_, err = SanitizeInput("12345")
		assert.NoError(t, err)
	})

	t.Run("Explicit Limit Wins", func(t *testing.T) {
		t.Setenv(EnvMaxInputSize, "10")
		s := NewSanitizer(3)
		assert.Equal(t, 3, s.Limit())

		_, err := s.Sanitize("1234")
		assert.ErrorIs(t, err, ErrInputTooLarge)
	})

	t.Run("Default", func(t *testing.T) {
		t.Setenv(EnvMaxInputSize, "")
		assert.Equal(t, DefaultMaxInputSize, Sanitizer{}.Limit())
	})
}

func TestSanitizer_InvalidUTF8(t *testing.T) {
	_, err := SanitizeInput("\xbd\xb2\x3d\xbc\x20\xe2\x8c\x98")
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}
