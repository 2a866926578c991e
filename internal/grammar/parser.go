package grammar

import (
	"fmt"
	"sync"

	"github.com/alecthomas/participle/v2"

	"rbsparse/internal/ast"
)

var (
	buildOnce  sync.Once
	typeParser *participle.Parser[Type]
	buildErr   error
)

func referenceParser() (*participle.Parser[Type], error) {
	buildOnce.Do(func() {
		typeParser, buildErr = participle.Build[Type](
			participle.Lexer(TypeLexer),
			participle.Elide("Whitespace", "Comment"),
			participle.UseLookahead(3),
		)
		if buildErr != nil {
			buildErr = fmt.Errorf("failed to build parser: %w", buildErr)
		}
	})
	return typeParser, buildErr
}

// Parse parses a type expression into the grammar tree.
func Parse(filename, source string) (*Type, error) {
	p, err := referenceParser()
	if err != nil {
		return nil, err
	}
	return p.ParseString(filename, source)
}

// ParseType parses a type expression and converts it to an AST type. Names
// listed in vars are treated as type variables.
func ParseType(filename, source string, vars ...string) (ast.Type, error) {
	t, err := Parse(filename, source)
	if err != nil {
		return nil, err
	}
	c := converter{vars: make(map[string]bool, len(vars))}
	for _, v := range vars {
		c.vars[v] = true
	}
	return c.typ(t), nil
}

// CrossCheck parses source with the reference grammar and compares the
// canonical rendering with want. It returns the reference rendering.
func CrossCheck(filename, source string, want ast.Type, vars ...string) (string, error) {
	got, err := ParseType(filename, source, vars...)
	if err != nil {
		return "", err
	}
	rendered := ast.TypeString(got, 0)
	if expected := ast.TypeString(want, 0); rendered != expected {
		return rendered, &MismatchError{Reference: rendered, Parsed: expected}
	}
	return rendered, nil
}

// MismatchError reports a disagreement between the reference grammar and
// the hand-written parser.
type MismatchError struct {
	Reference string
	Parsed    string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("reference grammar produced %q, parser produced %q", e.Reference, e.Parsed)
}
