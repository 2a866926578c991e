package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbsparse/internal/workspace"
)

func init() {
	color.NoColor = true
}

func newLoader() *workspace.Loader {
	return workspace.NewLoader(1, 8, []string{".rbs"})
}

func TestEval(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"Integer", "Integer"},
		{"Array[String]?", "Array[String]?"},
		{"[Integer,String]", "[ Integer, String ]"},
		{":m [T] (T) -> T", "[T] (T) -> T"},
		{":m () { (Integer) -> void } -> bool", "() { (Integer) -> void } -> bool"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, Eval(newLoader(), tt.line))
		})
	}
}

func TestEvalError(t *testing.T) {
	out := Eval(newLoader(), "Array[")
	assert.Contains(t, out, "error[E0100]")
	assert.Contains(t, out, "(repl):1:")
}

func TestStart(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("Integer | nil\n\n:m () -> void\n")

	require.NoError(t, Start(in, &out, newLoader()))
	assert.Equal(t, ">> Integer | nil\n>> >> () -> void\n>> \n", out.String())
}

func TestEvalNestingLimit(t *testing.T) {
	tests := []string{
		"[[[[[[[[[Integer]]]]]]]]]",
		strings.Repeat("^-> ", 9) + "void",
		":m () -> " + strings.Repeat("^-> ", 9) + "void",
	}

	for _, line := range tests {
		t.Run(line, func(t *testing.T) {
			assert.Contains(t, Eval(newLoader(), line), "error[E0103]")
		})
	}
}
