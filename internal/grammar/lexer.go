package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var TypeLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `#[^\n]*`, Action: nil},

		// Strings and symbols
		{Name: "String", Pattern: `"(\\.|[^"\\])*"|'(\\.|[^'\\])*'`, Action: nil},
		{Name: "Symbol", Pattern: `:(?:"(\\.|[^"\\])*"|'(\\.|[^'\\])*'|[A-Za-z_][A-Za-z0-9_]*[?!=]?)`, Action: nil},

		// Qualified names, including keywords (order matters)
		{Name: "Name", Pattern: `(?:::)?(?:[A-Z][A-Za-z0-9_]*::)*_?[A-Za-z_][A-Za-z0-9_]*`, Action: nil},
		{Name: "Backquoted", Pattern: "`[^`]+`", Action: nil},

		{Name: "Integer", Pattern: `[+-]?[0-9][0-9_]*`, Action: nil},

		// Operators
		{Name: "Operator", Pattern: `->|=>|\*\*|[|&?^*]`, Action: nil},

		// Punctuation (must come after operators)
		{Name: "Punctuation", Pattern: `[{}[\](),:]`, Action: nil},

		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},
	},
})
