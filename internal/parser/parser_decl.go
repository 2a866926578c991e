package parser

import (
	"strings"

	"rbsparse/internal/ast"
	"rbsparse/internal/location"
)

func (p *Parser) parseDecl() ast.Decl {
	annotations, annotPos := p.parseAnnotations()

	p.advance()
	switch p.current.Type {
	case UIDENT, DOUBLE_COLON:
		return p.parseConstDecl()
	case GIDENT:
		return p.parseGlobalDecl()
	case TYPE:
		return p.parseTypeDecl(annotPos, annotations)
	case INTERFACE:
		return p.parseInterfaceDecl(annotPos, annotations)
	case MODULE:
		return p.parseModuleDecl(annotPos, annotations)
	case CLASS:
		return p.parseClassDecl(annotPos, annotations)
	}
	p.fail(p.current, "cannot start a declaration")
	return nil
}

// parseNestedDecl parses a declaration inside a class or module body. The
// outer type variables are not visible inside it.
func (p *Parser) parseNestedDecl(annotPos location.Position, annotations []*ast.Annotation) ast.Decl {
	p.enter(p.current)
	defer p.leave()
	p.pushScope(true)
	defer p.popScope()

	switch p.current.Type {
	case UIDENT, DOUBLE_COLON:
		return p.parseConstDecl()
	case GIDENT:
		return p.parseGlobalDecl()
	case TYPE:
		return p.parseTypeDecl(annotPos, annotations)
	case INTERFACE:
		return p.parseInterfaceDecl(annotPos, annotations)
	case MODULE:
		return p.parseModuleDecl(annotPos, annotations)
	case CLASS:
		return p.parseClassDecl(annotPos, annotations)
	}
	p.fail(p.current, "unexpected token for class/module declaration member")
	return nil
}

func (p *Parser) parseGlobalDecl() *ast.GlobalDecl {
	start := p.current.Range.Start
	comment := p.commentAt(start.Line)

	nameRange := p.current.Range
	name := p.current.Lexeme

	p.advanceAssert(COLON)
	colonRange := p.current.Range

	t := p.parseType()
	loc := p.newLocation(span(start, p.current.Range.End))
	loc.AddRequired("name", nameRange)
	loc.AddRequired("colon", colonRange)
	return &ast.GlobalDecl{Name: name, Type: t, Comment: comment, Loc: loc}
}

func (p *Parser) parseConstDecl() *ast.ConstantDecl {
	start := p.current.Range.Start
	comment := p.commentAt(start.Line)

	name, nameRange := p.parseTypeName(classNameKind)

	p.advanceAssert(COLON)
	colonRange := p.current.Range

	t := p.parseType()
	loc := p.newLocation(span(start, p.current.Range.End))
	loc.AddRequired("name", nameRange)
	loc.AddRequired("colon", colonRange)
	return &ast.ConstantDecl{Name: name, Type: t, Comment: comment, Loc: loc}
}

func (p *Parser) parseTypeDecl(commentPos location.Position, annotations []*ast.Annotation) *ast.TypeAliasDecl {
	p.pushScope(true)

	start := p.current.Range.Start
	commentPos = location.NonNullOr(commentPos, start)
	keywordRange := p.current.Range

	p.advance()
	name, nameRange := p.parseTypeName(aliasNameKind)
	typeParams, paramsRange := p.parseTypeParams(true)

	p.advanceAssert(EQUAL)
	eqRange := p.current.Range

	t := p.parseType()
	loc := p.newLocation(span(start, p.current.Range.End))
	loc.AddRequired("keyword", keywordRange)
	loc.AddRequired("name", nameRange)
	loc.AddOptional("type_params", paramsRange)
	loc.AddRequired("eq", eqRange)

	p.popScope()

	return &ast.TypeAliasDecl{
		Name:        name,
		TypeParams:  typeParams,
		Type:        t,
		Annotations: annotations,
		Comment:     p.commentAt(commentPos.Line),
		Loc:         loc,
	}
}

var annotationDelimiters = map[byte]byte{'{': '}', '(': ')', '[': ']', '<': '>', '|': '|'}

// parseAnnotations collects consecutive `%a{...}` tokens. pos is the start
// of the first one, or NullPosition.
func (p *Parser) parseAnnotations() (annotations []*ast.Annotation, pos location.Position) {
	pos = location.NullPosition
	for p.next.Type == ANNOTATION {
		p.advance()
		if pos.IsNull() {
			pos = p.current.Range.Start
		}
		annotations = append(annotations, p.parseAnnotation())
	}
	return annotations, pos
}

func (p *Parser) parseAnnotation() *ast.Annotation {
	lexeme := p.current.Lexeme
	open := lexeme[2]
	body := strings.TrimSuffix(lexeme[3:], string(annotationDelimiters[open]))
	return &ast.Annotation{
		Text: strings.TrimSpace(body),
		Loc:  p.currentLocation(),
	}
}

func (p *Parser) parseInterfaceDecl(commentPos location.Position, annotations []*ast.Annotation) *ast.InterfaceDecl {
	start := p.current.Range.Start
	commentPos = location.NonNullOr(commentPos, start)

	p.pushScope(true)
	keywordRange := p.current.Range

	p.advance()
	name, nameRange := p.parseTypeName(interfaceNameKind)
	typeParams, paramsRange := p.parseTypeParams(true)
	members := p.parseInterfaceMembers()

	p.advanceAssert(END)
	endRange := p.current.Range

	p.popScope()

	loc := p.newLocation(span(start, endRange.End))
	loc.AddRequired("keyword", keywordRange)
	loc.AddRequired("name", nameRange)
	loc.AddRequired("end", endRange)
	loc.AddOptional("type_params", paramsRange)

	return &ast.InterfaceDecl{
		Name:        name,
		TypeParams:  typeParams,
		Members:     members,
		Annotations: annotations,
		Comment:     p.commentAt(commentPos.Line),
		Loc:         loc,
	}
}

// parseModuleSelfTypes parses the list after `module Foo :`.
func (p *Parser) parseModuleSelfTypes() []*ast.ModuleSelf {
	var selfTypes []*ast.ModuleSelf
	for {
		p.advance()
		start := p.current.Range.Start

		name, nameRange := p.parseTypeName(classNameKind | interfaceNameKind)
		args, argsRange := p.parseTypeArgs()

		loc := p.newLocation(span(start, location.NonNullOr(argsRange.End, nameRange.End)))
		loc.AddRequired("name", nameRange)
		loc.AddOptional("args", argsRange)
		selfTypes = append(selfTypes, &ast.ModuleSelf{Name: name, Args: args, Loc: loc})

		if !p.advanceIf(COMMA) {
			return selfTypes
		}
	}
}

func (p *Parser) parseModuleDecl(commentPos location.Position, annotations []*ast.Annotation) *ast.ModuleDecl {
	p.pushScope(true)

	start := p.current.Range.Start
	commentPos = location.NonNullOr(commentPos, start)
	comment := p.commentAt(commentPos.Line)
	keywordRange := p.current.Range

	p.advance()
	name, nameRange := p.parseTypeName(classNameKind)
	typeParams, paramsRange := p.parseTypeParams(true)

	colonRange := location.NullRange
	selfTypesRange := location.NullRange
	var selfTypes []*ast.ModuleSelf
	if p.next.Type == COLON {
		p.advance()
		colonRange = p.current.Range
		selfStart := p.next.Range.Start
		selfTypes = p.parseModuleSelfTypes()
		selfTypesRange = span(selfStart, p.current.Range.End)
	}

	members := p.parseModuleMembers()

	p.advanceAssert(END)
	endRange := p.current.Range

	loc := p.newLocation(span(start, endRange.End))
	loc.AddRequired("keyword", keywordRange)
	loc.AddRequired("name", nameRange)
	loc.AddRequired("end", endRange)
	loc.AddOptional("type_params", paramsRange)
	loc.AddOptional("colon", colonRange)
	loc.AddOptional("self_types", selfTypesRange)

	p.popScope()

	return &ast.ModuleDecl{
		Name:        name,
		TypeParams:  typeParams,
		SelfTypes:   selfTypes,
		Members:     members,
		Annotations: annotations,
		Comment:     comment,
		Loc:         loc,
	}
}

// parseClassSuper parses an optional `< Super[Args]`.
func (p *Parser) parseClassSuper() (*ast.ClassSuper, location.Range) {
	if !p.advanceIf(LESS) {
		return nil, location.NullRange
	}
	ltRange := p.current.Range
	start := p.next.Range.Start

	p.advance()
	name, nameRange := p.parseTypeName(classNameKind)
	args, argsRange := p.parseTypeArgs()

	loc := p.newLocation(span(start, location.NonNullOr(argsRange.End, nameRange.End)))
	loc.AddRequired("name", nameRange)
	loc.AddOptional("args", argsRange)
	return &ast.ClassSuper{Name: name, Args: args, Loc: loc}, ltRange
}

func (p *Parser) parseClassDecl(commentPos location.Position, annotations []*ast.Annotation) *ast.ClassDecl {
	p.pushScope(true)

	start := p.current.Range.Start
	keywordRange := p.current.Range
	commentPos = location.NonNullOr(commentPos, start)
	comment := p.commentAt(commentPos.Line)

	p.advance()
	name, nameRange := p.parseTypeName(classNameKind)
	typeParams, paramsRange := p.parseTypeParams(true)
	super, ltRange := p.parseClassSuper()
	members := p.parseModuleMembers()
	p.advanceAssert(END)
	endRange := p.current.Range

	p.popScope()

	loc := p.newLocation(span(start, endRange.End))
	loc.AddRequired("keyword", keywordRange)
	loc.AddRequired("name", nameRange)
	loc.AddRequired("end", endRange)
	loc.AddOptional("type_params", paramsRange)
	loc.AddOptional("lt", ltRange)

	return &ast.ClassDecl{
		Name:        name,
		TypeParams:  typeParams,
		Super:       super,
		Members:     members,
		Annotations: annotations,
		Comment:     comment,
		Loc:         loc,
	}
}
