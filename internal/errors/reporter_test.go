package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbsparse/internal/location"
	"rbsparse/internal/parser"
	"rbsparse/internal/workspace"
)

func init() {
	color.NoColor = true
}

func parseError(t *testing.T, source string) error {
	t.Helper()
	_, err := parser.ParseSignature(location.NewBuffer("test.rbs", source))
	require.Error(t, err)
	return err
}

func TestErrorReporter(t *testing.T) {
	source := `class Foo
  def bar: (Integer) => String
end`

	reporter := NewErrorReporter("test.rbs", source)
	formatted := reporter.FormatError(FromError(parseError(t, source)))

	assert.Contains(t, formatted, "error["+ErrorSyntax+"]: expected a token `->`")
	assert.Contains(t, formatted, "test.rbs:2:22")
	assert.Contains(t, formatted, "  def bar: (Integer) => String")
	assert.Contains(t, formatted, strings.Repeat(" ", 21)+"^^")
	assert.Contains(t, formatted, "help try: insert `->`")
	assert.Contains(t, formatted, "note: found fat_arrow `=>`")
}

func TestKeywordSuggestion(t *testing.T) {
	diag := FromError(parseError(t, "clas Foo\nend\n"))
	assert.Equal(t, ErrorSyntax, diag.Code)
	assert.Equal(t, 4, diag.Length)
	require.NotEmpty(t, diag.Suggestions)
	assert.Contains(t, diag.Suggestions[0].Message, "'class'")
}

func TestLexicalDiagnostic(t *testing.T) {
	diag := FromError(parseError(t, "type t = \"open\n"))
	assert.Equal(t, ErrorLexical, diag.Code)
	assert.Equal(t, "unterminated string literal", diag.Message)
	assert.Empty(t, diag.Notes)
}

func TestEndOfFileDiagnostic(t *testing.T) {
	source := "class Foo\n"
	diag := FromError(parseError(t, source))
	assert.Equal(t, []string{"the file ended here"}, diag.Notes)

	formatted := NewErrorReporter("test.rbs", source).FormatError(diag)
	assert.Contains(t, formatted, "test.rbs:2:1")
	assert.Contains(t, formatted, "^")
}

func TestDepthDiagnostic(t *testing.T) {
	buf := location.NewBuffer("deep.rbs", "type t = [[[Integer]]]")
	err := workspace.CheckDepth(buf, 2)
	require.Error(t, err)

	diag := FromError(fmt.Errorf("loading: %w", err))
	assert.Equal(t, ErrorNestingTooDeep, diag.Code)
	assert.Equal(t, "nesting depth 3 exceeds the limit of 2", diag.Message)
	assert.Equal(t, 11, diag.Position.Column)
}

func TestGenericErrorDiagnostic(t *testing.T) {
	diag := FromError(fmt.Errorf("read x.rbs: permission denied"))
	assert.Equal(t, ErrorIO, diag.Code)
	assert.Equal(t, 0, diag.Position.Line)
}

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, "Parser", GetErrorCategory(ErrorSyntax))
	assert.Equal(t, "Parser", GetErrorCategory(ErrorNestingTooDeep))
	assert.Equal(t, "Tooling", GetErrorCategory(ErrorIO))
	assert.False(t, IsWarning(ErrorLexical))
	assert.True(t, IsWarning("W0001"))
	assert.NotEqual(t, "Unknown error code", GetErrorDescription(ErrorScope))
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("class", "class"))
	assert.Equal(t, 1, levenshteinDistance("clas", "class"))
	assert.Equal(t, 3, levenshteinDistance("", "abc"))
	assert.Equal(t, []string{"untyped"}, findSimilarNames("untypd", []string{"untyped", "void", "top"}))
}
