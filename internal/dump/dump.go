package dump

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"rbsparse/internal/ast"
	"rbsparse/internal/location"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts the output names used by the configuration.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported dump format %q", name)
}

// Encode writes the declarations as a JSON array or YAML sequence.
func Encode(w io.Writer, format Format, decls []ast.Decl) error {
	nodes := make([]any, len(decls))
	for i, d := range decls {
		nodes[i] = Node(d)
	}
	return encode(w, format, nodes)
}

// EncodeNode writes a single node, such as a type or method type.
func EncodeNode(w io.Writer, format Format, node ast.Node) error {
	return encode(w, format, Node(node))
}

func encode(w io.Writer, format Format, value any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported dump format %q", format)
}

// object is a map that keeps its keys in insertion order in both encodings.
type object struct {
	keys   []string
	values []any
}

func newObject(class string) *object {
	o := &object{}
	o.set("class", class)
	return o
}

func (o *object) set(key string, value any) *object {
	o.keys = append(o.keys, key)
	o.values = append(o.values, value)
	return o
}

// Get returns the value stored under key.
func (o *object) Get(key string) (any, bool) {
	for i, k := range o.keys {
		if k == key {
			return o.values[i], true
		}
	}
	return nil, false
}

func (o *object) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		value, err := json.Marshal(o.values[i])
		if err != nil {
			return nil, err
		}
		b.Write(value)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

func (o *object) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for i, k := range o.keys {
		var value yaml.Node
		if err := value.Encode(o.values[i]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&value,
		)
	}
	return node, nil
}

func position(p location.Position) *object {
	o := &object{}
	return o.set("line", p.Line+1).set("column", p.Column)
}

func loc(l *location.Location) any {
	if l == nil {
		return nil
	}
	o := &object{}
	o.set("start", position(l.Start())).set("end", position(l.End()))
	return o
}

// Node converts any AST node into an ordered object tree.
func Node(n ast.Node) any {
	switch n := n.(type) {
	case nil:
		return nil
	case ast.Type:
		return typeNode(n)
	case *ast.MethodType:
		return methodType(n)
	case *ast.TypeParam:
		return typeParam(n)
	case *ast.Param:
		return param(n)
	case ast.Member:
		return member(n)
	case *ast.Annotation:
		return annotation(n)
	case *ast.Comment:
		return comment(n)
	}
	return nil
}

func typeNode(t ast.Type) any {
	if t == nil {
		return nil
	}
	switch t := t.(type) {
	case *ast.Base:
		return newObject(t.Kind.String()).set("location", loc(t.Loc))
	case *ast.Variable:
		return newObject("variable").set("name", t.Name).set("location", loc(t.Loc))
	case *ast.ClassSingleton:
		return newObject("class_singleton").set("name", t.Name.String()).set("location", loc(t.Loc))
	case *ast.Interface:
		return newObject("interface").set("name", t.Name.String()).set("args", types(t.Args)).set("location", loc(t.Loc))
	case *ast.ClassInstance:
		return newObject("class_instance").set("name", t.Name.String()).set("args", types(t.Args)).set("location", loc(t.Loc))
	case *ast.Alias:
		return newObject("alias").set("name", t.Name.String()).set("args", types(t.Args)).set("location", loc(t.Loc))
	case *ast.Tuple:
		return newObject("tuple").set("types", types(t.Types)).set("location", loc(t.Loc))
	case *ast.Record:
		fields := &object{}
		for _, f := range t.Fields {
			fields.set(f.Key.String(), typeNode(f.Type))
		}
		return newObject("record").set("fields", fields).set("location", loc(t.Loc))
	case *ast.Optional:
		return newObject("optional").set("type", typeNode(t.Type)).set("location", loc(t.Loc))
	case *ast.Union:
		return newObject("union").set("types", types(t.Types)).set("location", loc(t.Loc))
	case *ast.Intersection:
		return newObject("intersection").set("types", types(t.Types)).set("location", loc(t.Loc))
	case *ast.Proc:
		return newObject("proc").
			set("type", function(t.Type)).
			set("block", block(t.Block)).
			set("location", loc(t.Loc)).
			set("self_type", typeNode(t.SelfType))
	case *ast.Literal:
		return newObject("literal").set("literal", t.Value.String()).set("location", loc(t.Loc))
	}
	return nil
}

func types(ts []ast.Type) []any {
	out := make([]any, len(ts))
	for i, t := range ts {
		out[i] = typeNode(t)
	}
	return out
}

func param(p *ast.Param) any {
	if p == nil {
		return nil
	}
	o := &object{}
	o.set("type", typeNode(p.Type))
	if p.Name == "" {
		o.set("name", nil)
	} else {
		o.set("name", p.Name)
	}
	return o
}

func params(ps []*ast.Param) []any {
	out := make([]any, len(ps))
	for i, p := range ps {
		out[i] = param(p)
	}
	return out
}

func keywords(kws []ast.KeywordParam) *object {
	o := &object{}
	for _, kw := range kws {
		o.set(kw.Name, param(kw.Param))
	}
	return o
}

func function(f *ast.Function) any {
	if f == nil {
		return nil
	}
	o := &object{}
	return o.
		set("required_positionals", params(f.RequiredPositionals)).
		set("optional_positionals", params(f.OptionalPositionals)).
		set("rest_positionals", param(f.RestPositionals)).
		set("trailing_positionals", params(f.TrailingPositionals)).
		set("required_keywords", keywords(f.RequiredKeywords)).
		set("optional_keywords", keywords(f.OptionalKeywords)).
		set("rest_keywords", param(f.RestKeywords)).
		set("return_type", typeNode(f.ReturnType))
}

func block(b *ast.Block) any {
	if b == nil {
		return nil
	}
	o := &object{}
	return o.
		set("type", function(b.Type)).
		set("required", b.Required).
		set("self_type", typeNode(b.SelfType))
}

func typeParam(p *ast.TypeParam) any {
	o := &object{}
	o.set("name", p.Name).
		set("variance", p.Variance.String()).
		set("unchecked", p.Unchecked).
		set("upper_bound", typeNode(p.UpperBound)).
		set("location", loc(p.Loc))
	return o
}

func typeParams(ps []*ast.TypeParam) []any {
	out := make([]any, len(ps))
	for i, p := range ps {
		out[i] = typeParam(p)
	}
	return out
}

func methodType(m *ast.MethodType) any {
	o := &object{}
	return o.
		set("type_params", typeParams(m.TypeParams)).
		set("type", function(m.Type)).
		set("block", block(m.Block)).
		set("location", loc(m.Loc))
}

func annotation(a *ast.Annotation) any {
	o := &object{}
	return o.set("string", a.Text).set("location", loc(a.Loc))
}

func annotations(as []*ast.Annotation) []any {
	out := make([]any, len(as))
	for i, a := range as {
		out[i] = annotation(a)
	}
	return out
}

func comment(c *ast.Comment) any {
	if c == nil {
		return nil
	}
	o := &object{}
	return o.set("string", c.Text).set("location", loc(c.Loc))
}

func members(ms []ast.Member) []any {
	out := make([]any, len(ms))
	for i, m := range ms {
		out[i] = member(m)
	}
	return out
}

func visibility(v ast.Visibility) any {
	if v == ast.VisibilityUnspecified {
		return nil
	}
	return v.String()
}

func member(m ast.Member) any {
	switch m := m.(type) {
	case *ast.GlobalDecl:
		return newObject("global").
			set("name", m.Name).
			set("type", typeNode(m.Type)).
			set("location", loc(m.Loc)).
			set("comment", comment(m.Comment))
	case *ast.ConstantDecl:
		return newObject("constant").
			set("name", m.Name.String()).
			set("type", typeNode(m.Type)).
			set("location", loc(m.Loc)).
			set("comment", comment(m.Comment))
	case *ast.TypeAliasDecl:
		return newObject("alias").
			set("name", m.Name.String()).
			set("type_params", typeParams(m.TypeParams)).
			set("type", typeNode(m.Type)).
			set("annotations", annotations(m.Annotations)).
			set("location", loc(m.Loc)).
			set("comment", comment(m.Comment))
	case *ast.InterfaceDecl:
		return newObject("interface").
			set("name", m.Name.String()).
			set("type_params", typeParams(m.TypeParams)).
			set("members", members(m.Members)).
			set("annotations", annotations(m.Annotations)).
			set("location", loc(m.Loc)).
			set("comment", comment(m.Comment))
	case *ast.ModuleDecl:
		selfTypes := make([]any, len(m.SelfTypes))
		for i, s := range m.SelfTypes {
			o := &object{}
			selfTypes[i] = o.set("name", s.Name.String()).set("args", types(s.Args)).set("location", loc(s.Loc))
		}
		return newObject("module").
			set("name", m.Name.String()).
			set("type_params", typeParams(m.TypeParams)).
			set("members", members(m.Members)).
			set("annotations", annotations(m.Annotations)).
			set("location", loc(m.Loc)).
			set("self_types", selfTypes).
			set("comment", comment(m.Comment))
	case *ast.ClassDecl:
		var super any
		if m.Super != nil {
			o := &object{}
			super = o.set("name", m.Super.Name.String()).set("args", types(m.Super.Args)).set("location", loc(m.Super.Loc))
		}
		return newObject("class").
			set("name", m.Name.String()).
			set("type_params", typeParams(m.TypeParams)).
			set("members", members(m.Members)).
			set("super_class", super).
			set("annotations", annotations(m.Annotations)).
			set("location", loc(m.Loc)).
			set("comment", comment(m.Comment))
	case *ast.MethodDefinition:
		overloads := make([]any, len(m.Types))
		for i, t := range m.Types {
			overloads[i] = methodType(t)
		}
		return newObject("method_definition").
			set("name", m.Name).
			set("kind", m.Kind.String()).
			set("types", overloads).
			set("annotations", annotations(m.Annotations)).
			set("location", loc(m.Loc)).
			set("comment", comment(m.Comment)).
			set("overload", m.Overload).
			set("visibility", visibility(m.Visibility))
	case *ast.Mixin:
		return newObject(m.Kind.String()).
			set("name", m.Name.String()).
			set("args", types(m.Args)).
			set("annotations", annotations(m.Annotations)).
			set("location", loc(m.Loc)).
			set("comment", comment(m.Comment))
	case *ast.AliasMember:
		return newObject("alias").
			set("new_name", m.NewName).
			set("old_name", m.OldName).
			set("kind", m.Kind.String()).
			set("annotations", annotations(m.Annotations)).
			set("location", loc(m.Loc)).
			set("comment", comment(m.Comment))
	case *ast.VariableMember:
		return newObject(m.Kind.String()).
			set("name", m.Name).
			set("type", typeNode(m.Type)).
			set("location", loc(m.Loc)).
			set("comment", comment(m.Comment))
	case *ast.Attribute:
		var ivar any
		switch m.IvarMode {
		case ast.IvarNone:
			ivar = false
		case ast.IvarNamed:
			ivar = m.IvarName
		}
		return newObject(m.AttrKind.String()).
			set("name", m.Name).
			set("type", typeNode(m.Type)).
			set("ivar_name", ivar).
			set("kind", m.Kind.String()).
			set("annotations", annotations(m.Annotations)).
			set("location", loc(m.Loc)).
			set("comment", comment(m.Comment)).
			set("visibility", visibility(m.Visibility))
	case *ast.VisibilityMember:
		return newObject(m.Visibility.String()).set("location", loc(m.Loc))
	}
	return nil
}
