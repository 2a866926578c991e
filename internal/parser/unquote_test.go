package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnquote(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"a\nb"`, "a\nb"},
		{`"tab\there"`, "tab\there"},
		{`"q\"q"`, `q"q`},
		{`"\e\s"`, "\x1b "},
		{`'a\nb'`, `a\nb`},
		{`'it\'s'`, "it's"},
		{`'back\\slash'`, `back\slash`},
		{"`foo bar`", "foo bar"},
		{"plain", "plain"},
		{`"unknown\q"`, `unknown\q`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, unquote(tt.input), tt.input)
	}
}
