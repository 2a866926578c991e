package parser

import (
	"rbsparse/internal/ast"
	"rbsparse/internal/location"
)

// isKeywordToken reports whether tt may be used as a parameter name or a
// keyword argument key.
func isKeywordToken(tt TokenType) bool {
	switch tt {
	case LIDENT, UIDENT, ULIDENT, ULLIDENT, QIDENT, BANGIDENT:
		return true
	}
	return tt.IsKeyword()
}

// isKeyword reports whether the next tokens start a keyword parameter:
// `name:` or `name?:` with no spaces in between.
func (p *Parser) isKeyword() bool {
	if !isKeywordToken(p.next.Type) {
		return false
	}
	if p.next2.Type == COLON && glued(p.next, p.next2) {
		return true
	}
	return p.next2.Type == QUESTION && p.next3.Type == COLON &&
		glued(p.next, p.next2) && glued(p.next2, p.next3)
}

// parseKeywordKey consumes `name` or `name?` and returns its text.
func (p *Parser) parseKeywordKey() string {
	p.advance()
	if p.next.Type == QUESTION {
		key := p.text(p.current.Range.Start, p.next.Range.End)
		p.advance()
		return key
	}
	return p.current.Lexeme
}

func (p *Parser) parseKeyword(list []ast.KeywordParam) []ast.KeywordParam {
	key := p.parseKeywordKey()
	p.advanceAssert(COLON)
	return ast.SetKeyword(list, key, p.parseFunctionParam())
}

// parseFunctionParam parses `Type` or `Type name`.
func (p *Parser) parseFunctionParam() *ast.Param {
	start := p.next.Range.Start
	t := p.parseType()
	typeRange := span(start, p.current.Range.End)

	if p.next.Type == COMMA || p.next.Type == RIGHT_PAREN {
		loc := p.newLocation(typeRange)
		loc.AddOptional("name", location.NullRange)
		return &ast.Param{Type: t, Loc: loc}
	}

	if !isKeywordToken(p.next.Type) {
		p.fail(p.next, "unexpected token for function parameter name")
	}
	nameRange := p.next.Range
	p.advance()
	loc := p.newLocation(span(start, nameRange.End))
	loc.AddOptional("name", nameRange)
	return &ast.Param{Type: t, Name: unquote(p.current.Lexeme), Loc: loc}
}

// parseParams fills fn with the parameters between `(` and `)`. Parameter
// groups must appear in order: required, optional, rest, trailing, then
// keywords. The closing paren is left for the caller.
func (p *Parser) parseParams(fn *ast.Function) {
	if p.next.Type == RIGHT_PAREN {
		return
	}
	if p.parseRequiredParams(fn) && p.parseOptionalParams(fn) &&
		p.parseRestParam(fn) && p.parseTrailingParams(fn) {
		p.parseKeywordParams(fn)
	}
	if p.next.Type != RIGHT_PAREN {
		p.fail(p.next, "unexpected token for method type parameters")
	}
}

// The group parsers return false when the parameter list has ended.

func (p *Parser) parseRequiredParams(fn *ast.Function) bool {
	for {
		switch p.next.Type {
		case QUESTION, STAR:
			return true
		case STAR_STAR:
			return p.parseKeywordParams(fn)
		case RIGHT_PAREN:
			return false
		}
		if p.isKeyword() {
			return p.parseKeywordParams(fn)
		}
		fn.RequiredPositionals = append(fn.RequiredPositionals, p.parseFunctionParam())
		if !p.advanceIf(COMMA) {
			return false
		}
	}
}

func (p *Parser) parseOptionalParams(fn *ast.Function) bool {
	for p.next.Type == QUESTION {
		p.advance()
		if p.isKeyword() {
			fn.OptionalKeywords = p.parseKeyword(fn.OptionalKeywords)
			p.advanceIf(COMMA)
			return p.parseKeywordParams(fn)
		}
		fn.OptionalPositionals = append(fn.OptionalPositionals, p.parseFunctionParam())
		if !p.advanceIf(COMMA) {
			return false
		}
	}
	return true
}

func (p *Parser) parseRestParam(fn *ast.Function) bool {
	if p.next.Type == STAR {
		p.advance()
		fn.RestPositionals = p.parseFunctionParam()
		if !p.advanceIf(COMMA) {
			return false
		}
	}
	return true
}

func (p *Parser) parseTrailingParams(fn *ast.Function) bool {
	for {
		switch p.next.Type {
		case QUESTION, STAR_STAR:
			return true
		case STAR, RIGHT_PAREN:
			return false
		}
		if p.isKeyword() {
			return true
		}
		fn.TrailingPositionals = append(fn.TrailingPositionals, p.parseFunctionParam())
		if !p.advanceIf(COMMA) {
			return false
		}
	}
}

func (p *Parser) parseKeywordParams(fn *ast.Function) bool {
	for {
		switch tt := p.next.Type; {
		case tt == QUESTION:
			p.advance()
			if !p.isKeyword() {
				p.fail(p.next, "optional keyword argument type is expected")
			}
			fn.OptionalKeywords = p.parseKeyword(fn.OptionalKeywords)
		case tt == STAR_STAR:
			p.advance()
			fn.RestKeywords = p.parseFunctionParam()
		case tt == QIDENT || !isKeywordToken(tt):
			return false
		default:
			if !p.isKeyword() {
				p.fail(p.next, "required keyword argument type is expected")
			}
			fn.RequiredKeywords = p.parseKeyword(fn.RequiredKeywords)
		}
		if !p.advanceIf(COMMA) {
			return false
		}
	}
}

// parseSelfTypeBinding parses an optional `[self: T]`.
func (p *Parser) parseSelfTypeBinding() ast.Type {
	if p.next.Type != LEFT_BRACKET {
		return nil
	}
	p.advance()
	p.advanceAssert(SELF)
	p.advanceAssert(COLON)
	t := p.parseType()
	p.advanceAssert(RIGHT_BRACKET)
	return t
}

// parseFunction parses `(params) [self: T] ?{ block } -> R`. Every part
// except the arrow and return type is optional. Self type bindings on the
// function itself are only accepted when allowSelf is set.
func (p *Parser) parseFunction(allowSelf bool) (*ast.Function, *ast.Block, ast.Type) {
	fn := &ast.Function{}
	if p.next.Type == LEFT_PAREN {
		p.advance()
		p.parseParams(fn)
		p.advanceAssert(RIGHT_PAREN)
	}

	var selfType ast.Type
	if allowSelf {
		selfType = p.parseSelfTypeBinding()
	}

	var block *ast.Block
	required := true
	if p.next.Type == QUESTION && p.next2.Type == LEFT_BRACE {
		required = false
		p.advance()
	}
	if p.next.Type == LEFT_BRACE {
		p.advance()
		blockFn := &ast.Function{}
		if p.next.Type == LEFT_PAREN {
			p.advance()
			p.parseParams(blockFn)
			p.advanceAssert(RIGHT_PAREN)
		}
		blockSelf := p.parseSelfTypeBinding()
		p.advanceAssert(ARROW)
		blockFn.ReturnType = p.parseOptional()
		block = &ast.Block{Type: blockFn, Required: required, SelfType: blockSelf}
		p.advanceAssert(RIGHT_BRACE)
	}

	p.advanceAssert(ARROW)
	fn.ReturnType = p.parseOptional()
	return fn, block, selfType
}

func (p *Parser) parseProcType() ast.Type {
	start := p.current.Range.Start
	fn, block, selfType := p.parseFunction(true)
	return &ast.Proc{
		Type:     fn,
		Block:    block,
		SelfType: selfType,
		Loc:      p.newLocation(span(start, p.current.Range.End)),
	}
}

// parseMethodType parses `[T] (params) { block } -> R`. Method-level type
// parameters shadow, but do not hide, the enclosing scope.
func (p *Parser) parseMethodType() *ast.MethodType {
	p.pushScope(false)

	start := p.next.Range.Start
	typeParams, paramsRange := p.parseTypeParams(false)
	typeStart := p.next.Range.Start
	fn, block, _ := p.parseFunction(false)
	end := p.current.Range.End

	p.popScope()

	loc := p.newLocation(span(start, end))
	loc.AddRequired("type", span(typeStart, end))
	loc.AddOptional("type_params", paramsRange)
	return &ast.MethodType{TypeParams: typeParams, Type: fn, Block: block, Loc: loc}
}
