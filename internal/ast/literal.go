package ast

import (
	"math/big"
	"regexp"
	"strconv"
)

type LiteralKind int

const (
	IntegerLiteral LiteralKind = iota
	StringLiteral
	SymbolLiteral
	BoolLiteral
)

// LiteralValue is the value of a literal type or a record key.
type LiteralValue struct {
	Kind LiteralKind
	Int  *big.Int
	Str  string
	Bool bool
}

func IntValue(i *big.Int) LiteralValue  { return LiteralValue{Kind: IntegerLiteral, Int: i} }
func StringValue(s string) LiteralValue { return LiteralValue{Kind: StringLiteral, Str: s} }
func SymbolValue(s string) LiteralValue { return LiteralValue{Kind: SymbolLiteral, Str: s} }
func BoolValue(b bool) LiteralValue     { return LiteralValue{Kind: BoolLiteral, Bool: b} }

func (v LiteralValue) Equal(other LiteralValue) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case IntegerLiteral:
		if v.Int == nil || other.Int == nil {
			return v.Int == other.Int
		}
		return v.Int.Cmp(other.Int) == 0
	case BoolLiteral:
		return v.Bool == other.Bool
	}
	return v.Str == other.Str
}

var (
	plainSymbol    = regexp.MustCompile(`^(?:[A-Za-z_][A-Za-z0-9_]*[?!=]?|@@?[A-Za-z_][A-Za-z0-9_]*|\$[A-Za-z_][A-Za-z0-9_]*)$`)
	operatorSymbol = map[string]bool{
		"+": true, "-": true, "*": true, "/": true, "%": true, "**": true,
		"==": true, "===": true, "=~": true, "!": true, "!=": true, "!~": true,
		"<": true, "<=": true, ">": true, ">=": true, "<=>": true, "<<": true, ">>": true,
		"&": true, "|": true, "^": true, "~": true, "[]": true, "[]=": true,
		"+@": true, "-@": true, "`": true,
	}
	recordKeyword = regexp.MustCompile(`^[A-Za-z_][A-Za-z_]*$`)
)

// String renders the value the way it is written in source.
func (v LiteralValue) String() string {
	switch v.Kind {
	case IntegerLiteral:
		if v.Int == nil {
			return "0"
		}
		return v.Int.String()
	case StringLiteral:
		return strconv.Quote(v.Str)
	case SymbolLiteral:
		if plainSymbol.MatchString(v.Str) || operatorSymbol[v.Str] {
			return ":" + v.Str
		}
		return ":" + strconv.Quote(v.Str)
	case BoolLiteral:
		return strconv.FormatBool(v.Bool)
	}
	return "?"
}

// recordKey renders a record key, using the `key:` form when possible.
func (v LiteralValue) recordKey() string {
	if v.Kind == SymbolLiteral && recordKeyword.MatchString(v.Str) {
		return v.Str + ":"
	}
	return v.String() + " =>"
}
