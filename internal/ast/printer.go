package ast

import (
	"fmt"
	"strings"
)

// Keywords that must be backquoted when used as a parameter name.
var reservedNames = map[string]bool{
	"alias": true, "attr_accessor": true, "attr_reader": true, "attr_writer": true,
	"bool": true, "bot": true, "class": true, "def": true, "end": true, "extend": true,
	"false": true, "in": true, "include": true, "instance": true, "interface": true,
	"module": true, "nil": true, "out": true, "prepend": true, "private": true,
	"public": true, "self": true, "singleton": true, "top": true, "true": true,
	"type": true, "unchecked": true, "untyped": true, "void": true,
}

// Operator method names accepted without backquotes.
var operatorNames = map[string]bool{
	"[]=": true, "[]": true, "**": true, "*": true, "<=>": true, "<<": true, "<=": true,
	"<": true, ">=": true, ">>": true, ">": true, "===": true, "==": true, "=~": true,
	"!=": true, "!~": true, "!": true, "+@": true, "+": true, "-@": true, "-": true,
	"/": true, "%": true, "~": true, "&": true, "|": true, "^": true,
}

// MethodName renders a method name, backquoting it unless it lexes as a
// bare name.
func MethodName(name string) string {
	if operatorNames[name] || isBareMethodName(name) {
		return name
	}
	return "`" + name + "`"
}

func isBareMethodName(name string) bool {
	word := name
	if n := len(word); n > 1 && strings.ContainsRune("?!=", rune(word[n-1])) {
		word = word[:n-1]
	}
	if word == "" || isDigit(word[0]) {
		return false
	}
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c != '_' && !isDigit(c) && (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// TypeString renders t at the given nesting level. Level 0 is the top of a
// type, level 1 an operand of `|` or `?`, level 2 an operand of `&`.
func TypeString(t Type, level int) string {
	if t == nil {
		return ""
	}
	return t.format(level)
}

func (t *Base) format(int) string     { return t.Kind.String() }
func (t *Variable) format(int) string { return t.Name }

func (t *ClassInstance) format(int) string { return application(t.Name, t.Args) }
func (t *Interface) format(int) string     { return application(t.Name, t.Args) }
func (t *Alias) format(int) string         { return application(t.Name, t.Args) }

func application(name TypeName, args []Type) string {
	if len(args) == 0 {
		return name.String()
	}
	return name.String() + "[" + joinTypes(args, ", ", 0) + "]"
}

func (t *ClassSingleton) format(int) string {
	return fmt.Sprintf("singleton(%s)", t.Name)
}

func (t *Literal) format(int) string { return t.Value.String() }

func (t *Tuple) format(int) string {
	if len(t.Types) == 0 {
		return "[ ]"
	}
	return "[ " + joinTypes(t.Types, ", ", 0) + " ]"
}

func (t *Record) format(int) string {
	if len(t.Fields) == 0 {
		return "{ }"
	}
	fields := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		fields[i] = f.Key.recordKey() + " " + TypeString(f.Type, 0)
	}
	return "{ " + strings.Join(fields, ", ") + " }"
}

func (t *Optional) format(int) string {
	if lit, ok := t.Type.(*Literal); ok && lit.Value.Kind == SymbolLiteral {
		return TypeString(t.Type, 1) + " ?"
	}
	return TypeString(t.Type, 1) + "?"
}

func (t *Union) format(level int) string {
	s := joinTypes(t.Types, " | ", 1)
	if level > 0 {
		return "(" + s + ")"
	}
	return s
}

func (t *Intersection) format(level int) string {
	s := joinTypes(t.Types, " & ", 2)
	if level > 0 {
		return "(" + s + ")"
	}
	return s
}

func (t *Proc) format(int) string {
	var b strings.Builder
	b.WriteString("^(")
	b.WriteString(t.Type.ParamString())
	b.WriteString(") ")
	b.WriteString(selfBinding(t.SelfType))
	if t.Block != nil {
		b.WriteString(t.Block.String())
		b.WriteString(" ")
	}
	b.WriteString("-> ")
	b.WriteString(TypeString(t.Type.ReturnType, 1))
	return b.String()
}

func joinTypes(ts []Type, sep string, level int) string {
	strs := make([]string, len(ts))
	for i, t := range ts {
		strs[i] = TypeString(t, level)
	}
	return strings.Join(strs, sep)
}

func selfBinding(t Type) string {
	if t == nil {
		return ""
	}
	return "[self: " + TypeString(t, 0) + "] "
}

func (t *Base) String() string           { return t.format(0) }
func (t *Variable) String() string       { return t.format(0) }
func (t *ClassInstance) String() string  { return t.format(0) }
func (t *Interface) String() string      { return t.format(0) }
func (t *Alias) String() string          { return t.format(0) }
func (t *ClassSingleton) String() string { return t.format(0) }
func (t *Literal) String() string        { return t.format(0) }
func (t *Tuple) String() string          { return t.format(0) }
func (t *Record) String() string         { return t.format(0) }
func (t *Optional) String() string       { return t.format(0) }
func (t *Union) String() string          { return t.format(0) }
func (t *Intersection) String() string   { return t.format(0) }
func (t *Proc) String() string           { return t.format(0) }

func (p *Param) String() string {
	ty := TypeString(p.Type, 0)
	switch {
	case p.Name == "":
		return ty
	case reservedNames[p.Name]:
		return ty + " `" + p.Name + "`"
	}
	return ty + " " + p.Name
}

// ParamString renders the parameter list without the enclosing parens.
func (f *Function) ParamString() string {
	var params []string
	for _, p := range f.RequiredPositionals {
		params = append(params, p.String())
	}
	for _, p := range f.OptionalPositionals {
		params = append(params, "?"+p.String())
	}
	if f.RestPositionals != nil {
		params = append(params, "*"+f.RestPositionals.String())
	}
	for _, p := range f.TrailingPositionals {
		params = append(params, p.String())
	}
	for _, kw := range f.RequiredKeywords {
		params = append(params, kw.Name+": "+kw.Param.String())
	}
	for _, kw := range f.OptionalKeywords {
		params = append(params, "?"+kw.Name+": "+kw.Param.String())
	}
	if f.RestKeywords != nil {
		params = append(params, "**"+f.RestKeywords.String())
	}
	return strings.Join(params, ", ")
}

func (b *Block) String() string {
	var sb strings.Builder
	if !b.Required {
		sb.WriteString("?")
	}
	sb.WriteString("{ (")
	sb.WriteString(b.Type.ParamString())
	sb.WriteString(") ")
	sb.WriteString(selfBinding(b.SelfType))
	sb.WriteString("-> ")
	sb.WriteString(TypeString(b.Type.ReturnType, 1))
	sb.WriteString(" }")
	return sb.String()
}

func (p *TypeParam) String() string {
	var b strings.Builder
	if p.Unchecked {
		b.WriteString("unchecked ")
	}
	switch p.Variance {
	case Covariant:
		b.WriteString("out ")
	case Contravariant:
		b.WriteString("in ")
	}
	b.WriteString(p.Name)
	if p.UpperBound != nil {
		b.WriteString(" < ")
		b.WriteString(TypeString(p.UpperBound, 0))
	}
	return b.String()
}

func typeParamsString(params []*TypeParam) string {
	if len(params) == 0 {
		return ""
	}
	strs := make([]string, len(params))
	for i, p := range params {
		strs[i] = p.String()
	}
	return "[" + strings.Join(strs, ", ") + "]"
}

func (m *MethodType) String() string {
	var b strings.Builder
	if len(m.TypeParams) > 0 {
		b.WriteString(typeParamsString(m.TypeParams))
		b.WriteString(" ")
	}
	b.WriteString("(")
	b.WriteString(m.Type.ParamString())
	b.WriteString(") ")
	if m.Block != nil {
		b.WriteString(m.Block.String())
		b.WriteString(" ")
	}
	b.WriteString("-> ")
	b.WriteString(TypeString(m.Type.ReturnType, 1))
	return b.String()
}

func (a *Annotation) String() string { return "%a{" + a.Text + "}" }

func (c *Comment) String() string {
	var b strings.Builder
	for _, line := range strings.SplitAfter(strings.TrimSuffix(c.Text, "\n"), "\n") {
		b.WriteString("# ")
		b.WriteString(line)
	}
	return strings.TrimRight(b.String(), " ")
}

func (s *ModuleSelf) String() string { return application(s.Name, s.Args) }
func (s *ClassSuper) String() string { return application(s.Name, s.Args) }

func (d *GlobalDecl) String() string {
	return d.Name + ": " + TypeString(d.Type, 0)
}

func (d *ConstantDecl) String() string {
	return d.Name.String() + ": " + TypeString(d.Type, 0)
}

func (d *TypeAliasDecl) String() string {
	return "type " + d.Name.String() + typeParamsString(d.TypeParams) + " = " + TypeString(d.Type, 0)
}

func (d *InterfaceDecl) String() string {
	header := "interface " + d.Name.String() + typeParamsString(d.TypeParams)
	return block(header, d.Members)
}

func (d *ModuleDecl) String() string {
	header := "module " + d.Name.String() + typeParamsString(d.TypeParams)
	if len(d.SelfTypes) > 0 {
		strs := make([]string, len(d.SelfTypes))
		for i, s := range d.SelfTypes {
			strs[i] = s.String()
		}
		header += " : " + strings.Join(strs, ", ")
	}
	return block(header, d.Members)
}

func (d *ClassDecl) String() string {
	header := "class " + d.Name.String() + typeParamsString(d.TypeParams)
	if d.Super != nil {
		header += " < " + d.Super.String()
	}
	return block(header, d.Members)
}

func block(header string, members []Member) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	for _, m := range members {
		b.WriteString("  ")
		b.WriteString(strings.ReplaceAll(m.String(), "\n", "\n  "))
		b.WriteString("\n")
	}
	b.WriteString("end")
	return b.String()
}

func kindPrefix(kind MethodKind) string {
	switch kind {
	case SingletonMethod:
		return "self."
	case SingletonInstanceMethod:
		return "self?."
	}
	return ""
}

func (m *MethodDefinition) String() string {
	var b strings.Builder
	if m.Visibility != VisibilityUnspecified {
		b.WriteString(m.Visibility.String())
		b.WriteString(" ")
	}
	b.WriteString("def ")
	b.WriteString(kindPrefix(m.Kind))
	b.WriteString(MethodName(m.Name))
	b.WriteString(": ")
	for i, t := range m.Types {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(t.String())
	}
	if m.Overload {
		if len(m.Types) > 0 {
			b.WriteString(" | ")
		}
		b.WriteString("...")
	}
	return b.String()
}

func (m *Mixin) String() string {
	return m.Kind.String() + " " + application(m.Name, m.Args)
}

func (m *AliasMember) String() string {
	if m.Kind == SingletonMethod {
		return "alias self." + MethodName(m.NewName) + " self." + MethodName(m.OldName)
	}
	return "alias " + MethodName(m.NewName) + " " + MethodName(m.OldName)
}

func (m *VariableMember) String() string {
	switch m.Kind {
	case ClassInstanceVariable:
		return "self." + m.Name + ": " + TypeString(m.Type, 0)
	}
	return m.Name + ": " + TypeString(m.Type, 0)
}

func (m *Attribute) String() string {
	var b strings.Builder
	if m.Visibility != VisibilityUnspecified {
		b.WriteString(m.Visibility.String())
		b.WriteString(" ")
	}
	b.WriteString(m.AttrKind.String())
	b.WriteString(" ")
	b.WriteString(kindPrefix(m.Kind))
	b.WriteString(MethodName(m.Name))
	switch m.IvarMode {
	case IvarNone:
		b.WriteString("()")
	case IvarNamed:
		b.WriteString("(" + m.IvarName + ")")
	}
	b.WriteString(": ")
	b.WriteString(TypeString(m.Type, 0))
	return b.String()
}

func (m *VisibilityMember) String() string { return m.Visibility.String() }
