package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeInput_SizeLimit(t *testing.T) {
	limit := 4096

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

func TestSanitizeInput_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "3")

	_, err := SanitizeInput("abcd")
	assert.ErrorIs(t, err, ErrInputTooLarge)

	got, err := SanitizeInput("abc")
	assert.NoError(t, err)
	assert.Equal(t, "abc", got)
}

func TestSanitizeInput_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"ANSI Code", "\x1b[31mRed", ErrControlChar},
		{"Null Byte", "a\x00b", ErrControlChar},
		{"Newline", "ab\n", ErrControlChar},
		{"Invalid UTF-8", "a\xffb", ErrInvalidUTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SanitizeInput(tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSanitizeInput_Accepts(t *testing.T) {
	for _, in := range []string{"", "aaaa", "0110#", "a b"} {
		got, err := SanitizeInput(in)
		assert.NoError(t, err)
		assert.Equal(t, in, got)
	}
}
