package parser

import (
	"rbsparse/internal/ast"
	"rbsparse/internal/location"
)

// parseMethodName parses the name after `def`, `alias`, or `attr_*`.
func (p *Parser) parseMethodName() (string, location.Range) {
	p.advance()

	switch tt := p.current.Type; {
	case tt == UIDENT || tt == LIDENT || tt == ULIDENT || tt == ULLIDENT || tt.IsKeyword():
		if p.next.Type == QUESTION && glued(p.current, p.next) {
			r := span(p.current.Range.Start, p.next.Range.End)
			p.advance()
			return p.text(r.Start, r.End), r
		}
		return p.current.Lexeme, p.current.Range
	case tt == BANGIDENT || tt == EQIDENT:
		return p.current.Lexeme, p.current.Range
	case tt == QIDENT:
		return unquote(p.current.Lexeme), p.current.Range
	case tt == BAR || tt == HAT || tt == AMP || tt == STAR || tt == STAR_STAR ||
		tt == LESS || tt == AREF_OPR || tt == OPERATOR:
		return p.current.Lexeme, p.current.Range
	}
	p.fail(p.current, "unexpected token for method name")
	return "", location.NullRange
}

// parseInstanceSingletonKind parses an optional `self.` or `self?.` prefix.
func (p *Parser) parseInstanceSingletonKind(allowSelfQ bool) (ast.MethodKind, location.Range) {
	if p.next.Type != SELF {
		return ast.InstanceMethod, location.NullRange
	}
	start := p.next.Range.Start
	switch {
	case p.next2.Type == DOT:
		p.advance()
		p.advance()
		return ast.SingletonMethod, span(start, p.current.Range.End)
	case allowSelfQ && p.next2.Type == QUESTION && glued(p.next, p.next2) && p.next3.Type == DOT:
		p.advance()
		p.advance()
		p.advance()
		return ast.SingletonInstanceMethod, span(start, p.current.Range.End)
	}
	return ast.InstanceMethod, location.NullRange
}

func (p *Parser) parseVisibility() (ast.Visibility, location.Range) {
	switch p.current.Type {
	case PUBLIC:
		r := p.current.Range
		p.advance()
		return ast.Public, r
	case PRIVATE:
		r := p.current.Range
		p.advance()
		return ast.Private, r
	}
	return ast.VisibilityUnspecified, location.NullRange
}

// parseMemberDef parses a `def` member with its overloads. instanceOnly
// rejects `self.` prefixes, acceptOverload allows a trailing `...`.
func (p *Parser) parseMemberDef(instanceOnly, acceptOverload bool, annotPos location.Position, annotations []*ast.Annotation) *ast.MethodDefinition {
	start := p.current.Range.Start
	comment := p.commentAt(location.NonNullOr(annotPos, start).Line)

	visibility, visibilityRange := p.parseVisibility()
	keywordRange := p.current.Range

	kind, kindRange := ast.InstanceMethod, location.NullRange
	if !instanceOnly {
		kind, kindRange = p.parseInstanceSingletonKind(visibility == ast.VisibilityUnspecified)
	}

	name, nameRange := p.parseMethodName()

	if p.next.Type == DOT && name == "self?" {
		p.fail(p.next, "`self?` method cannot have visibility")
	}
	p.advanceAssert(COLON)

	p.pushScope(kind != ast.InstanceMethod)

	var (
		types         []*ast.MethodType
		overload      bool
		overloadRange = location.NullRange
		end           location.Position
	)
	for {
		switch p.next.Type {
		case LEFT_PAREN, ARROW, LEFT_BRACE, LEFT_BRACKET, QUESTION:
			types = append(types, p.parseMethodType())
			end = p.current.Range.End
		case DOT3:
			if !acceptOverload {
				p.fail(p.next, "unexpected overloading method definition")
			}
			overload = true
			p.advance()
			overloadRange = p.current.Range
			end = overloadRange.End
		default:
			p.fail(p.next, "unexpected token for method type")
		}

		// A `|` after `...` is consumed, and whatever follows it is left to
		// the member parser.
		if !p.advanceIf(BAR) || overload {
			break
		}
	}

	p.popScope()

	loc := p.newLocation(span(start, end))
	loc.AddRequired("keyword", keywordRange)
	loc.AddRequired("name", nameRange)
	loc.AddOptional("kind", kindRange)
	loc.AddOptional("overload", overloadRange)
	loc.AddOptional("visibility", visibilityRange)

	return &ast.MethodDefinition{
		Name:        name,
		Kind:        kind,
		Types:       types,
		Annotations: annotations,
		Comment:     comment,
		Overload:    overload,
		Visibility:  visibility,
		Loc:         loc,
	}
}

// parseMixinMember parses include, extend, and prepend. Interfaces accept
// only include.
func (p *Parser) parseMixinMember(fromInterface bool, annotPos location.Position, annotations []*ast.Annotation) *ast.Mixin {
	start := p.current.Range.Start
	commentPos := location.NonNullOr(annotPos, start)

	var (
		kind  ast.MixinKind
		reset bool
	)
	switch p.current.Type {
	case INCLUDE:
		kind = ast.Include
	case EXTEND:
		kind, reset = ast.Extend, true
	case PREPEND:
		kind = ast.Prepend
	}
	if fromInterface && kind != ast.Include {
		p.fail(p.current, "unexpected mixin in interface declaration")
	}
	keywordRange := p.current.Range

	p.pushScope(reset)

	p.advance()
	nameKind := classNameKind | interfaceNameKind
	if fromInterface {
		nameKind = interfaceNameKind
	}
	name, nameRange := p.parseTypeName(nameKind)
	args, argsRange := p.parseTypeArgs()

	p.popScope()

	loc := p.newLocation(span(start, p.current.Range.End))
	loc.AddRequired("name", nameRange)
	loc.AddRequired("keyword", keywordRange)
	loc.AddOptional("args", argsRange)

	return &ast.Mixin{
		Kind:        kind,
		Name:        name,
		Args:        args,
		Annotations: annotations,
		Comment:     p.commentAt(commentPos.Line),
		Loc:         loc,
	}
}

func (p *Parser) parseAliasMember(instanceOnly bool, annotPos location.Position, annotations []*ast.Annotation) *ast.AliasMember {
	start := p.current.Range.Start
	comment := p.commentAt(location.NonNullOr(annotPos, start).Line)
	keywordRange := p.current.Range

	kind := ast.InstanceMethod
	newKindRange, oldKindRange := location.NullRange, location.NullRange
	var (
		newName, oldName   string
		newRange, oldRange location.Range
	)
	if !instanceOnly && p.next.Type == SELF {
		kind = ast.SingletonMethod

		newKindRange = span(p.next.Range.Start, p.next2.Range.End)
		p.advanceAssert(SELF)
		p.advanceAssert(DOT)
		newName, newRange = p.parseMethodName()

		oldKindRange = span(p.next.Range.Start, p.next2.Range.End)
		p.advanceAssert(SELF)
		p.advanceAssert(DOT)
		oldName, oldRange = p.parseMethodName()
	} else {
		newName, newRange = p.parseMethodName()
		oldName, oldRange = p.parseMethodName()
	}

	loc := p.newLocation(span(start, p.current.Range.End))
	loc.AddRequired("keyword", keywordRange)
	loc.AddRequired("new_name", newRange)
	loc.AddRequired("old_name", oldRange)
	loc.AddOptional("new_kind", newKindRange)
	loc.AddOptional("old_kind", oldKindRange)

	return &ast.AliasMember{
		NewName:     newName,
		OldName:     oldName,
		Kind:        kind,
		Annotations: annotations,
		Comment:     comment,
		Loc:         loc,
	}
}

// parseVariableMember parses `@x: T`, `self.@x: T`, and `@@x: T`. Class
// level variables cannot see the enclosing type parameters.
func (p *Parser) parseVariableMember(annotations []*ast.Annotation) *ast.VariableMember {
	if len(annotations) > 0 {
		p.fail(p.current, "annotation cannot be given to variable members")
	}

	start := p.current.Range.Start
	comment := p.commentAt(start.Line)

	member := &ast.VariableMember{Comment: comment}
	kindRange := location.NullRange

	switch p.current.Type {
	case AIDENT:
		member.Kind = ast.InstanceVariable
	case A2IDENT:
		member.Kind = ast.ClassVariable
	case SELF:
		member.Kind = ast.ClassInstanceVariable
		kindRange = span(p.current.Range.Start, p.next.Range.End)
		p.advanceAssert(DOT)
		p.advanceAssert(AIDENT)
	default:
		p.fail(p.current, "unexpected token for variable member")
	}
	nameRange := p.current.Range
	member.Name = p.current.Lexeme

	p.advanceAssert(COLON)
	colonRange := p.current.Range

	if member.Kind == ast.InstanceVariable {
		member.Type = p.parseType()
	} else {
		p.pushScope(true)
		member.Type = p.parseType()
		p.popScope()
	}

	member.Loc = p.newLocation(span(start, p.current.Range.End))
	member.Loc.AddRequired("name", nameRange)
	member.Loc.AddRequired("colon", colonRange)
	member.Loc.AddOptional("kind", kindRange)
	return member
}

func (p *Parser) parseVisibilityMember(annotations []*ast.Annotation) *ast.VisibilityMember {
	if len(annotations) > 0 {
		p.fail(p.current, "annotation cannot be given to visibility members")
	}
	visibility := ast.Public
	if p.current.Type == PRIVATE {
		visibility = ast.Private
	}
	return &ast.VisibilityMember{Visibility: visibility, Loc: p.currentLocation()}
}

// parseAttributeMember parses attr_reader, attr_writer, and attr_accessor,
// optionally with a visibility prefix and an ivar override.
func (p *Parser) parseAttributeMember(annotPos location.Position, annotations []*ast.Annotation) *ast.Attribute {
	start := p.current.Range.Start
	comment := p.commentAt(location.NonNullOr(annotPos, start).Line)

	visibility, visibilityRange := p.parseVisibility()
	keywordRange := p.current.Range

	var attrKind ast.AttrKind
	switch p.current.Type {
	case ATTR_READER:
		attrKind = ast.AttrReader
	case ATTR_WRITER:
		attrKind = ast.AttrWriter
	case ATTR_ACCESSOR:
		attrKind = ast.AttrAccessor
	default:
		p.fail(p.current, "unexpected attribute definition")
	}

	kind, kindRange := p.parseInstanceSingletonKind(false)
	name, nameRange := p.parseMethodName()

	ivarMode := ast.IvarDefault
	var ivarName string
	ivarRange, ivarNameRange := location.NullRange, location.NullRange
	if p.next.Type == LEFT_PAREN {
		p.advance()
		ivarStart := p.current.Range.Start
		if p.advanceIf(AIDENT) {
			ivarMode = ast.IvarNamed
			ivarName = p.current.Lexeme
			ivarNameRange = p.current.Range
		} else {
			ivarMode = ast.IvarNone
		}
		p.advanceAssert(RIGHT_PAREN)
		ivarRange = span(ivarStart, p.current.Range.End)
	}

	p.advanceAssert(COLON)
	colonRange := p.current.Range

	p.pushScope(kind == ast.SingletonMethod)
	t := p.parseType()
	p.popScope()

	loc := p.newLocation(span(start, p.current.Range.End))
	loc.AddRequired("keyword", keywordRange)
	loc.AddRequired("name", nameRange)
	loc.AddRequired("colon", colonRange)
	loc.AddOptional("kind", kindRange)
	loc.AddOptional("ivar", ivarRange)
	loc.AddOptional("ivar_name", ivarNameRange)
	loc.AddOptional("visibility", visibilityRange)

	return &ast.Attribute{
		AttrKind:    attrKind,
		Name:        name,
		Type:        t,
		Kind:        kind,
		IvarMode:    ivarMode,
		IvarName:    ivarName,
		Annotations: annotations,
		Comment:     comment,
		Visibility:  visibility,
		Loc:         loc,
	}
}

func (p *Parser) parseInterfaceMembers() []ast.Member {
	var members []ast.Member
	for p.next.Type != END {
		annotations, annotPos := p.parseAnnotations()
		p.advance()

		switch p.current.Type {
		case DEF:
			members = append(members, p.parseMemberDef(true, true, annotPos, annotations))
		case INCLUDE, EXTEND, PREPEND:
			members = append(members, p.parseMixinMember(true, annotPos, annotations))
		case ALIAS:
			members = append(members, p.parseAliasMember(true, annotPos, annotations))
		default:
			p.fail(p.current, "unexpected token for interface declaration member")
		}
	}
	return members
}

// parseModuleMembers parses the body shared by classes and modules.
func (p *Parser) parseModuleMembers() []ast.Member {
	var members []ast.Member
	for p.next.Type != END {
		annotations, annotPos := p.parseAnnotations()
		p.advance()

		var member ast.Member
		switch p.current.Type {
		case DEF:
			member = p.parseMemberDef(false, true, annotPos, annotations)
		case INCLUDE, EXTEND, PREPEND:
			member = p.parseMixinMember(false, annotPos, annotations)
		case ALIAS:
			member = p.parseAliasMember(false, annotPos, annotations)
		case AIDENT, A2IDENT, SELF:
			member = p.parseVariableMember(annotations)
		case ATTR_READER, ATTR_WRITER, ATTR_ACCESSOR:
			member = p.parseAttributeMember(annotPos, annotations)
		case PUBLIC, PRIVATE:
			if p.current.Range.Start.Line != p.next.Range.Start.Line {
				member = p.parseVisibilityMember(annotations)
				break
			}
			switch p.next.Type {
			case DEF:
				member = p.parseMemberDef(false, true, annotPos, annotations)
			case ATTR_READER, ATTR_WRITER, ATTR_ACCESSOR:
				member = p.parseAttributeMember(annotPos, annotations)
			default:
				p.fail(p.next, "method or attribute definition is expected after visibility modifier")
			}
		default:
			member = p.parseNestedDecl(annotPos, annotations)
		}
		members = append(members, member)
	}
	return members
}
