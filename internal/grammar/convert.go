package grammar

import (
	"math/big"
	"strings"

	"rbsparse/internal/ast"
)

var baseKinds = map[string]ast.BaseKind{
	"bool":     ast.BoolType,
	"bot":      ast.BottomType,
	"top":      ast.TopType,
	"void":     ast.VoidType,
	"untyped":  ast.AnyType,
	"nil":      ast.NilType,
	"self":     ast.SelfType,
	"instance": ast.InstanceType,
	"class":    ast.ClassType,
}

// converter turns grammar trees into AST types without locations.
type converter struct {
	vars map[string]bool
}

func (c converter) typ(t *Type) ast.Type {
	if len(t.Union) == 1 {
		return c.intersection(t.Union[0])
	}
	u := &ast.Union{}
	for _, i := range t.Union {
		u.Types = append(u.Types, c.intersection(i))
	}
	return u
}

func (c converter) intersection(i *Intersection) ast.Type {
	if len(i.Operands) == 1 {
		return c.optional(i.Operands[0])
	}
	n := &ast.Intersection{}
	for _, o := range i.Operands {
		n.Types = append(n.Types, c.optional(o))
	}
	return n
}

func (c converter) optional(o *Optional) ast.Type {
	t := c.simple(o.Simple)
	if o.Optional {
		return &ast.Optional{Type: t}
	}
	return t
}

func (c converter) simple(s *Simple) ast.Type {
	switch {
	case s.Parens != nil:
		return c.typ(s.Parens)
	case s.Proc != nil:
		return c.proc(s.Proc)
	case s.Singleton != nil:
		return &ast.ClassSingleton{Name: typeName(*s.Singleton)}
	case s.Base != nil:
		return &ast.Base{Kind: baseKinds[*s.Base]}
	case s.Literal != nil:
		return &ast.Literal{Value: literal(s.Literal)}
	case s.Name != nil:
		return c.application(s.Name)
	case s.Tuple != nil:
		return &ast.Tuple{Types: c.types(s.Tuple.Types)}
	case s.Record != nil:
		r := &ast.Record{}
		for _, f := range s.Record.Fields {
			var key ast.LiteralValue
			if f.Key.Keyword != nil {
				key = ast.SymbolValue(*f.Key.Keyword)
			} else {
				key = literal(f.Key.Literal)
			}
			r.Set(key, c.typ(f.Type))
		}
		return r
	}
	return nil
}

func (c converter) types(ts []*Type) []ast.Type {
	var out []ast.Type
	for _, t := range ts {
		out = append(out, c.typ(t))
	}
	return out
}

func (c converter) application(a *Application) ast.Type {
	name := typeName(a.Name)
	args := c.types(a.Args)
	if name.Namespace.Empty() && len(args) == 0 && c.vars[name.Name] {
		return &ast.Variable{Name: name.Name}
	}
	switch name.Kind() {
	case ast.InterfaceName:
		return &ast.Interface{Name: name, Args: args}
	case ast.AliasName:
		return &ast.Alias{Name: name, Args: args}
	}
	return &ast.ClassInstance{Name: name, Args: args}
}

func (c converter) proc(p *Proc) ast.Type {
	out := &ast.Proc{Type: c.function(p.Params, p.Return)}
	if p.Self != nil {
		out.SelfType = c.typ(p.Self)
	}
	if p.Block != nil {
		out.Block = &ast.Block{
			Type:     c.function(p.Block.Params, p.Block.Return),
			Required: !p.Block.Optional,
		}
		if p.Block.Self != nil {
			out.Block.SelfType = c.typ(p.Block.Self)
		}
	}
	return out
}

func (c converter) function(params *Params, ret *Optional) *ast.Function {
	fn := &ast.Function{ReturnType: c.optional(ret)}
	if params == nil {
		return fn
	}
	afterRequired := false
	for _, p := range params.List {
		switch {
		case p.RestKeywords != nil:
			fn.RestKeywords = c.param(p.RestKeywords)
		case p.Rest != nil:
			fn.RestPositionals = c.param(p.Rest)
			afterRequired = true
		case p.OptKeyword != nil:
			fn.OptionalKeywords = ast.SetKeyword(fn.OptionalKeywords, p.OptKeyword.Name, c.param(p.OptKeyword.Type))
		case p.Optional != nil:
			fn.OptionalPositionals = append(fn.OptionalPositionals, c.param(p.Optional))
			afterRequired = true
		case p.Keyword != nil:
			fn.RequiredKeywords = ast.SetKeyword(fn.RequiredKeywords, p.Keyword.Name, c.param(p.Keyword.Type))
		case afterRequired:
			fn.TrailingPositionals = append(fn.TrailingPositionals, c.param(p.Positional))
		default:
			fn.RequiredPositionals = append(fn.RequiredPositionals, c.param(p.Positional))
		}
	}
	return fn
}

func (c converter) param(n *NamedType) *ast.Param {
	p := &ast.Param{Type: c.typ(n.Type)}
	if n.Name != nil {
		p.Name = strings.Trim(*n.Name, "`")
	}
	return p
}

func typeName(s string) ast.TypeName {
	var name ast.TypeName
	if rest, ok := strings.CutPrefix(s, "::"); ok {
		name.Namespace.Absolute = true
		s = rest
	}
	parts := strings.Split(s, "::")
	name.Namespace.Path = parts[:len(parts)-1]
	if len(name.Namespace.Path) == 0 {
		name.Namespace.Path = nil
	}
	name.Name = parts[len(parts)-1]
	return name
}

func literal(l *Literal) ast.LiteralValue {
	switch {
	case l.Integer != nil:
		n, ok := new(big.Int).SetString(strings.ReplaceAll(*l.Integer, "_", ""), 10)
		if !ok {
			n = new(big.Int)
		}
		return ast.IntValue(n)
	case l.String != nil:
		return ast.StringValue(unquote(*l.String))
	case l.Symbol != nil:
		return ast.SymbolValue(unquote(strings.TrimPrefix(*l.Symbol, ":")))
	}
	return ast.BoolValue(l.Bool != nil && *l.Bool == "true")
}

var (
	doubleQuoted = strings.NewReplacer(
		`\a`, "\a", `\b`, "\b", `\e`, "\x1b", `\f`, "\f", `\n`, "\n", `\r`, "\r",
		`\s`, " ", `\t`, "\t", `\v`, "\v", `\"`, `"`, `\'`, "'", `\\`, `\`,
	)
	singleQuoted = strings.NewReplacer(`\'`, "'", `\\`, `\`)
)

func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	switch s[0] {
	case '"':
		return doubleQuoted.Replace(s[1 : len(s)-1])
	case '\'':
		return singleQuoted.Replace(s[1 : len(s)-1])
	}
	return s
}
