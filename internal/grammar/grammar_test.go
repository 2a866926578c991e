package grammar_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbsparse/internal/ast"
	"rbsparse/internal/grammar"
	"rbsparse/internal/location"
	"rbsparse/internal/parser"
)

func TestParseTree(t *testing.T) {
	tree, err := grammar.Parse("test.rbs", "Array[Integer] | nil")
	require.NoError(t, err)
	require.Len(t, tree.Union, 2)

	first := tree.Union[0].Operands[0].Simple
	require.NotNil(t, first.Name)
	assert.Equal(t, "Array", first.Name.Name)
	assert.Len(t, first.Name.Args, 1)

	second := tree.Union[1].Operands[0].Simple
	require.NotNil(t, second.Base)
	assert.Equal(t, "nil", *second.Base)
}

func TestParseTypeKinds(t *testing.T) {
	typ, err := grammar.ParseType("test.rbs", "::Foo::Bar[_Each[T], list]", "T")
	require.NoError(t, err)

	ci, ok := typ.(*ast.ClassInstance)
	require.True(t, ok)
	assert.True(t, ci.Name.Namespace.Absolute)
	assert.Equal(t, []string{"Foo"}, ci.Name.Namespace.Path)
	assert.Equal(t, "Bar", ci.Name.Name)
	require.Len(t, ci.Args, 2)

	iface, ok := ci.Args[0].(*ast.Interface)
	require.True(t, ok)
	assert.IsType(t, &ast.Variable{}, iface.Args[0])
	assert.IsType(t, &ast.Alias{}, ci.Args[1])
}

func TestCrossCheckAgreesWithParser(t *testing.T) {
	tests := []struct {
		source string
		vars   []string
	}{
		{source: "Integer"},
		{source: "::Foo::Bar[String, _Each[T]]", vars: []string{"T"}},
		{source: "Integer | String & _ToS"},
		{source: "(Integer | nil)?"},
		{source: "(String & _ToS) | Symbol"},
		{source: "singleton(::Object)"},
		{source: "[Integer, String]"},
		{source: "[]"},
		{source: `{ id: Integer, "name" => String, 1 => bool }`},
		{source: `:foo | 1_000 | "x\n" | 'y' | true`},
		{source: "^(Integer, ?String, *Symbol, key: bool, ?opt: top, **untyped) -> void"},
		{source: "^(Integer x) { (String) -> void } -> Array[Integer]"},
		{source: "^(?Integer, String) ?{ () -> void } -> bot"},
		{source: "^() [self: String] -> void"},
		{source: "^-> Integer?"},
		{source: "Hash[Symbol, untyped] | self | instance | class"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			want, err := parser.ParseType(location.NewBuffer("test.rbs", tt.source), parser.WithVariables(tt.vars...))
			require.NoError(t, err)

			rendered, err := grammar.CrossCheck("test.rbs", tt.source, want, tt.vars...)
			require.NoError(t, err)
			assert.Equal(t, want.String(), rendered)
		})
	}
}

func TestCrossCheckMismatch(t *testing.T) {
	want, err := parser.ParseType(location.NewBuffer("test.rbs", "Integer"))
	require.NoError(t, err)

	_, err = grammar.CrossCheck("test.rbs", "String", want)
	require.Error(t, err)

	var mismatch *grammar.MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "String", mismatch.Reference)
	assert.Equal(t, "Integer", mismatch.Parsed)
	assert.Contains(t, err.Error(), "reference grammar produced")
}

func TestParseErrors(t *testing.T) {
	_, err := grammar.ParseType("test.rbs", "Integer |")
	assert.Error(t, err)

	_, err = grammar.ParseType("test.rbs", "Array[Integer")
	assert.Error(t, err)
}
