package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize is 4KB (conservative default)
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize overrides the default limit when no explicit one is set.
	EnvMaxInputSize = "TENDRIL_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// Sanitizer turns a raw utterance into the text the engine matches against.
// Every surface (console, HTTP, MCP) runs its input through one, so the same
// utterance scores the same wherever it arrives.
//
// Intent scores are Jaccard indexes over the distinct runes of the utterance,
// and whitespace counts as a rune. Leading and trailing whitespace is therefore
// trimmed, and tab, newline and carriage return inside the text become plain
// spaces, so layout never adds characters to the set. Other control
// characters (ESC, NUL, BEL) are dropped. Inner spaces are kept because
// intent phrases may contain them.
//
// An empty result is a valid utterance.
type Sanitizer struct {
	// MaxSize is the limit in bytes of the raw input. Zero falls back to
	// EnvMaxInputSize, then DefaultMaxInputSize.
	MaxSize int
}

// NewSanitizer creates a Sanitizer with the given limit (zero for the default).
func NewSanitizer(maxSize int) Sanitizer {
	return Sanitizer{MaxSize: maxSize}
}

// Limit returns the effective size limit.
func (s Sanitizer) Limit() int {
	if s.MaxSize > 0 {
		return s.MaxSize
	}
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}

// Sanitize validates and normalizes input.
// Oversized input is rejected rather than truncated, so a turn never runs on
// half an utterance.
func (s Sanitizer) Sanitize(input string) (string, error) {
	if limit := s.Limit(); len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		switch {
		case r == '\n' || r == '\t' || r == '\r':
			b.WriteRune(' ')
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// SanitizeInput normalizes input with the default limit.
func SanitizeInput(input string) (string, error) {
	return Sanitizer{}.Sanitize(input)
}
