package errors

import (
	stderrors "errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"rbsparse/internal/location"
	"rbsparse/internal/parser"
	"rbsparse/internal/workspace"
)

// DiagnosticBuilder provides a fluent interface for creating diagnostics
type DiagnosticBuilder struct {
	err CompilerError
}

// NewDiagnostic creates a new error builder
func NewDiagnostic(code, message string, pos location.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *DiagnosticBuilder) WithReplacement(message, replacement string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message, Replacement: replacement})
	return b
}

// WithNote adds a note to the error
func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed diagnostic
func (b *DiagnosticBuilder) Build() CompilerError {
	return b.err
}

var parseErrorCodes = map[parser.ErrorKind]string{
	parser.SyntaxError:  ErrorSyntax,
	parser.LexicalError: ErrorLexical,
	parser.ScopeError:   ErrorScope,
	parser.NestingError: ErrorNestingTooDeep,
}

var expectedToken = regexp.MustCompile("^expected a token `(.+)`$")

// FromParseError converts a parser failure into a diagnostic.
func FromParseError(perr *parser.ParseError) CompilerError {
	b := NewDiagnostic(parseErrorCodes[perr.Kind], perr.Message, perr.Range.Start).
		WithLength(max(perr.Range.End.CharOffset-perr.Range.Start.CharOffset, 1))

	switch perr.TokenType {
	case parser.EOF:
		b.WithNote("the file ended here")
	case parser.ILLEGAL:
	default:
		b.WithNote(fmt.Sprintf("found %s `%s`", strings.ToLower(perr.TokenType.String()), perr.Lexeme))
	}

	if m := expectedToken.FindStringSubmatch(perr.Message); m != nil {
		b.WithSuggestion(fmt.Sprintf("insert `%s`", m[1]))
	}

	if perr.TokenType == parser.LIDENT || perr.TokenType == parser.UIDENT {
		similar := findSimilarNames(perr.Lexeme, keywordNames())
		switch len(similar) {
		case 0:
		case 1:
			b.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
		default:
			b.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '")))
		}
	}

	if perr.Kind == parser.NestingError {
		b.WithHelp("raise max_depth in the configuration if this file is trusted")
	}
	if perr.Kind == parser.ScopeError {
		b.WithHelp("type parameters of a class, module, or interface are not visible in nested declarations or singleton members")
	}
	return b.Build()
}

// FromDepthError converts a nesting guard failure into a diagnostic.
func FromDepthError(derr *workspace.DepthError) CompilerError {
	return NewDiagnostic(ErrorNestingTooDeep, fmt.Sprintf("nesting depth %d exceeds the limit of %d", derr.Depth, derr.Max), derr.Position).
		WithHelp("raise max_depth in the configuration if this file is trusted").
		Build()
}

// FromError converts any error returned while loading a file. Errors without
// a source position are reported at the start of the file.
func FromError(err error) CompilerError {
	var perr *parser.ParseError
	if stderrors.As(err, &perr) {
		return FromParseError(perr)
	}
	var derr *workspace.DepthError
	if stderrors.As(err, &derr) {
		return FromDepthError(derr)
	}
	return NewDiagnostic(ErrorIO, err.Error(), location.Position{}).Build()
}

func keywordNames() []string {
	names := make([]string, 0, len(parser.KEYWORDS))
	for name := range parser.KEYWORDS {
		names = append(names, name)
	}
	return names
}

// findSimilarNames returns candidates within edit distance 2 of target,
// sorted.
func findSimilarNames(target string, candidates []string) []string {
	if len(target) < 3 {
		return nil
	}
	var similar []string
	for _, candidate := range candidates {
		if candidate != target && levenshteinDistance(target, candidate) <= 2 {
			similar = append(similar, candidate)
		}
	}
	slices.Sort(similar)
	return similar
}

func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
