package parser

import (
	"math/big"
	"strings"

	"rbsparse/internal/ast"
	"rbsparse/internal/location"
)

type nameKind int

const (
	classNameKind nameKind = 1 << iota
	interfaceNameKind
	aliasNameKind
)

// parseType parses a union, the lowest precedence type production.
func (p *Parser) parseType() ast.Type {
	start := p.next.Range.Start
	t := p.parseIntersection()
	types := []ast.Type{t}
	for p.next.Type == BAR {
		p.advance()
		types = append(types, p.parseIntersection())
	}
	if len(types) == 1 {
		return t
	}
	return &ast.Union{Types: types, Loc: p.newLocation(span(start, p.current.Range.End))}
}

func (p *Parser) parseIntersection() ast.Type {
	start := p.next.Range.Start
	t := p.parseOptional()
	types := []ast.Type{t}
	for p.next.Type == AMP {
		p.advance()
		types = append(types, p.parseOptional())
	}
	if len(types) == 1 {
		return t
	}
	return &ast.Intersection{Types: types, Loc: p.newLocation(span(start, p.current.Range.End))}
}

func (p *Parser) parseOptional() ast.Type {
	start := p.next.Range.Start
	t := p.parseSimple()
	if p.next.Type != QUESTION {
		return t
	}
	p.advance()
	return &ast.Optional{Type: t, Loc: p.newLocation(span(start, p.current.Range.End))}
}

func (p *Parser) parseSimple() ast.Type {
	p.enter(p.next)
	defer p.leave()
	p.advance()

	switch p.current.Type {
	case LEFT_PAREN:
		t := p.parseType()
		p.advanceAssert(RIGHT_PAREN)
		return t
	case BOOL:
		return p.baseType(ast.BoolType)
	case BOT:
		return p.baseType(ast.BottomType)
	case CLASS:
		return p.baseType(ast.ClassType)
	case INSTANCE:
		return p.baseType(ast.InstanceType)
	case NIL:
		return p.baseType(ast.NilType)
	case SELF:
		return p.baseType(ast.SelfType)
	case TOP:
		return p.baseType(ast.TopType)
	case VOID:
		return p.baseType(ast.VoidType)
	case UNTYPED:
		return p.baseType(ast.AnyType)
	case INTEGER:
		return &ast.Literal{Value: ast.IntValue(parseInteger(p.current.Lexeme)), Loc: p.currentLocation()}
	case TRUE:
		return &ast.Literal{Value: ast.BoolValue(true), Loc: p.currentLocation()}
	case FALSE:
		return &ast.Literal{Value: ast.BoolValue(false), Loc: p.currentLocation()}
	case SQSTRING, DQSTRING:
		return &ast.Literal{Value: ast.StringValue(unquote(p.current.Lexeme)), Loc: p.currentLocation()}
	case SYMBOL, SQSYMBOL, DQSYMBOL:
		return p.parseSymbol()
	case UIDENT:
		if p.scope.contains(p.current.Lexeme) {
			return &ast.Variable{Name: p.current.Lexeme, Loc: p.currentLocation()}
		}
		return p.parseInstanceType(true)
	case ULIDENT, LIDENT, DOUBLE_COLON:
		return p.parseInstanceType(true)
	case SINGLETON:
		return p.parseSingletonType()
	case LEFT_BRACKET:
		start := p.current.Range.Start
		var types []ast.Type
		if p.next.Type != RIGHT_BRACKET {
			types = p.parseTypeList(RIGHT_BRACKET)
		}
		p.advanceAssert(RIGHT_BRACKET)
		return &ast.Tuple{Types: types, Loc: p.newLocation(span(start, p.current.Range.End))}
	case AREF_OPR:
		return &ast.Tuple{Loc: p.currentLocation()}
	case LEFT_BRACE:
		start := p.current.Range.Start
		record := p.parseRecordAttributes()
		p.advanceAssert(RIGHT_BRACE)
		record.Loc = p.newLocation(span(start, p.current.Range.End))
		return record
	case HAT:
		return p.parseProcType()
	}
	p.fail(p.current, "unexpected token for simple type")
	return nil
}

func (p *Parser) baseType(kind ast.BaseKind) ast.Type {
	return &ast.Base{Kind: kind, Loc: p.currentLocation()}
}

// parseInteger reads an integer literal with optional sign and `_`
// separators.
func parseInteger(lexeme string) *big.Int {
	n, ok := new(big.Int).SetString(strings.ReplaceAll(lexeme, "_", ""), 10)
	if !ok {
		return new(big.Int)
	}
	return n
}

func (p *Parser) parseSymbol() ast.Type {
	body := p.current.Lexeme[1:]
	if p.current.Type != SYMBOL {
		body = unquote(body)
	}
	return &ast.Literal{Value: ast.SymbolValue(body), Loc: p.currentLocation()}
}

// parseTypeName reads a possibly qualified name starting at the current
// token. kind restricts which final segments are accepted.
func (p *Parser) parseTypeName(kind nameKind) (ast.TypeName, location.Range) {
	start := p.current.Range.Start
	var ns ast.Namespace

	if p.current.Type == DOUBLE_COLON {
		ns.Absolute = true
		p.advanceNoGap()
	}

	for p.current.Type == UIDENT && p.next.Type == DOUBLE_COLON &&
		glued(p.current, p.next) && glued(p.next, p.next2) {
		ns.Path = append(ns.Path, p.current.Lexeme)
		p.advance()
		p.advance()
	}

	ok := false
	switch p.current.Type {
	case LIDENT:
		ok = kind&aliasNameKind != 0
	case ULIDENT:
		ok = kind&interfaceNameKind != 0
	case UIDENT:
		ok = kind&classNameKind != 0
	}
	if !ok {
		var expected []string
		if kind&aliasNameKind != 0 {
			expected = append(expected, "alias name")
		}
		if kind&interfaceNameKind != 0 {
			expected = append(expected, "interface name")
		}
		if kind&classNameKind != 0 {
			expected = append(expected, "class/module/constant name")
		}
		p.fail(p.current, "expected one of %s", strings.Join(expected, ", "))
	}

	name := ast.TypeName{Namespace: ns, Name: p.current.Lexeme}
	return name, span(start, p.current.Range.End)
}

// parseTypeList parses comma separated types up to, but not including, eol.
// A trailing comma is accepted.
func (p *Parser) parseTypeList(eol TokenType) []ast.Type {
	var types []ast.Type
	for {
		types = append(types, p.parseType())
		if p.next.Type == COMMA {
			p.advance()
			if p.next.Type == eol {
				break
			}
		} else {
			if p.next.Type == eol {
				break
			}
			p.fail(p.next, "comma delimited type list is expected")
		}
	}
	return types
}

// parseTypeArgs parses an optional `[T, U]` after a name.
func (p *Parser) parseTypeArgs() ([]ast.Type, location.Range) {
	if p.next.Type != LEFT_BRACKET {
		return nil, location.NullRange
	}
	p.advance()
	start := p.current.Range.Start
	args := p.parseTypeList(RIGHT_BRACKET)
	p.advanceAssert(RIGHT_BRACKET)
	return args, span(start, p.current.Range.End)
}

func (p *Parser) parseInstanceType(parseAlias bool) ast.Type {
	expected := interfaceNameKind | classNameKind
	if parseAlias {
		expected |= aliasNameKind
	}

	name, nameRange := p.parseTypeName(expected)
	nameType := p.current.Type
	args, argsRange := p.parseTypeArgs()

	loc := p.newLocation(span(nameRange.Start, location.NonNullOr(argsRange.End, nameRange.End)))
	loc.AddRequired("name", nameRange)
	loc.AddOptional("args", argsRange)

	switch nameType {
	case UIDENT:
		return &ast.ClassInstance{Name: name, Args: args, Loc: loc}
	case ULIDENT:
		return &ast.Interface{Name: name, Args: args, Loc: loc}
	}
	return &ast.Alias{Name: name, Args: args, Loc: loc}
}

func (p *Parser) parseSingletonType() ast.Type {
	p.assert(SINGLETON)
	start := p.current.Range.Start
	p.advanceAssert(LEFT_PAREN)
	p.advance()

	name, nameRange := p.parseTypeName(classNameKind)

	p.advanceAssert(RIGHT_PAREN)
	loc := p.newLocation(span(start, p.current.Range.End))
	loc.AddRequired("name", nameRange)
	return &ast.ClassSingleton{Name: name, Loc: loc}
}

// parseRecordAttributes parses the fields of a record after `{`. Both
// `key: T` and `literal => T` forms are accepted; a repeated key replaces
// the earlier field.
func (p *Parser) parseRecordAttributes() *ast.Record {
	record := &ast.Record{}
	if p.next.Type == RIGHT_BRACE {
		return record
	}

	for {
		var key ast.LiteralValue
		if p.isKeyword() {
			key = ast.SymbolValue(p.parseKeywordKey())
			p.advanceAssert(COLON)
		} else {
			switch p.next.Type {
			case SYMBOL, SQSYMBOL, DQSYMBOL, SQSTRING, DQSTRING, INTEGER, TRUE, FALSE:
				keyToken := p.next
				lit, ok := p.parseType().(*ast.Literal)
				if !ok {
					p.fail(keyToken, "unexpected record key token")
				}
				key = lit.Value
			default:
				p.fail(p.next, "unexpected record key token")
			}
			p.advanceAssert(FAT_ARROW)
		}
		record.Set(key, p.parseType())

		if !p.advanceIf(COMMA) || p.next.Type == RIGHT_BRACE {
			break
		}
	}
	return record
}

// parseTypeParams parses an optional `[T, U < Bound]` list and binds each
// name in the current scope. Variance and `unchecked` are only accepted for
// module-level lists.
func (p *Parser) parseTypeParams(moduleParams bool) ([]*ast.TypeParam, location.Range) {
	if p.next.Type != LEFT_BRACKET {
		return nil, location.NullRange
	}
	p.advance()
	start := p.current.Range.Start

	var params []*ast.TypeParam
	for {
		param := &ast.TypeParam{}
		paramStart := p.next.Range.Start
		varianceRange := location.NullRange
		uncheckedRange := location.NullRange
		upperBoundRange := location.NullRange

		if moduleParams {
			if p.next.Type == UNCHECKED {
				param.Unchecked = true
				p.advance()
				uncheckedRange = p.current.Range
			}
			if p.next.Type == IN || p.next.Type == OUT {
				param.Variance = ast.Covariant
				if p.next.Type == IN {
					param.Variance = ast.Contravariant
				}
				p.advance()
				varianceRange = p.current.Range
			}
		}

		p.advanceAssert(UIDENT)
		nameRange := p.current.Range
		param.Name = p.current.Lexeme
		p.insertTypeVar(param.Name)

		if p.next.Type == LESS {
			p.advance()
			boundStart := p.next.Range.Start
			p.advance()
			if p.current.Type == SINGLETON {
				param.UpperBound = p.parseSingletonType()
			} else {
				param.UpperBound = p.parseInstanceType(false)
			}
			upperBoundRange = span(boundStart, p.current.Range.End)
		}

		loc := p.newLocation(span(paramStart, p.current.Range.End))
		loc.AddRequired("name", nameRange)
		loc.AddOptional("variance", varianceRange)
		loc.AddOptional("unchecked", uncheckedRange)
		loc.AddOptional("upper_bound", upperBoundRange)
		param.Loc = loc
		params = append(params, param)

		if p.next.Type == COMMA {
			p.advance()
		}
		if p.next.Type == RIGHT_BRACKET {
			break
		}
	}

	p.advanceAssert(RIGHT_BRACKET)
	ast.ResolveVariables(params)
	return params, span(start, p.current.Range.End)
}
