package ast

// Inspect traverses the tree rooted at node in depth-first order. f is
// called for each node; children are visited only when f returns true.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	switch n := node.(type) {
	case *ClassInstance:
		inspectTypes(n.Args, f)
	case *Interface:
		inspectTypes(n.Args, f)
	case *Alias:
		inspectTypes(n.Args, f)
	case *Tuple:
		inspectTypes(n.Types, f)
	case *Union:
		inspectTypes(n.Types, f)
	case *Intersection:
		inspectTypes(n.Types, f)
	case *Record:
		for _, field := range n.Fields {
			Inspect(field.Type, f)
		}
	case *Optional:
		Inspect(n.Type, f)
	case *Proc:
		inspectFunction(n.Type, f)
		if n.SelfType != nil {
			Inspect(n.SelfType, f)
		}
		inspectBlock(n.Block, f)
	case *Param:
		Inspect(n.Type, f)
	case *TypeParam:
		if n.UpperBound != nil {
			Inspect(n.UpperBound, f)
		}
	case *MethodType:
		inspectTypeParams(n.TypeParams, f)
		inspectFunction(n.Type, f)
		inspectBlock(n.Block, f)
	case *GlobalDecl:
		Inspect(n.Type, f)
	case *ConstantDecl:
		Inspect(n.Type, f)
	case *TypeAliasDecl:
		inspectAnnotations(n.Annotations, f)
		inspectTypeParams(n.TypeParams, f)
		Inspect(n.Type, f)
	case *InterfaceDecl:
		inspectAnnotations(n.Annotations, f)
		inspectTypeParams(n.TypeParams, f)
		inspectMembers(n.Members, f)
	case *ModuleDecl:
		inspectAnnotations(n.Annotations, f)
		inspectTypeParams(n.TypeParams, f)
		for _, s := range n.SelfTypes {
			Inspect(s, f)
		}
		inspectMembers(n.Members, f)
	case *ClassDecl:
		inspectAnnotations(n.Annotations, f)
		inspectTypeParams(n.TypeParams, f)
		if n.Super != nil {
			Inspect(n.Super, f)
		}
		inspectMembers(n.Members, f)
	case *ModuleSelf:
		inspectTypes(n.Args, f)
	case *ClassSuper:
		inspectTypes(n.Args, f)
	case *MethodDefinition:
		inspectAnnotations(n.Annotations, f)
		for _, t := range n.Types {
			Inspect(t, f)
		}
	case *Mixin:
		inspectAnnotations(n.Annotations, f)
		inspectTypes(n.Args, f)
	case *AliasMember:
		inspectAnnotations(n.Annotations, f)
	case *VariableMember:
		Inspect(n.Type, f)
	case *Attribute:
		inspectAnnotations(n.Annotations, f)
		Inspect(n.Type, f)
	}
}

func inspectTypes(ts []Type, f func(Node) bool) {
	for _, t := range ts {
		Inspect(t, f)
	}
}

func inspectTypeParams(ps []*TypeParam, f func(Node) bool) {
	for _, p := range ps {
		Inspect(p, f)
	}
}

func inspectAnnotations(as []*Annotation, f func(Node) bool) {
	for _, a := range as {
		Inspect(a, f)
	}
}

func inspectMembers(ms []Member, f func(Node) bool) {
	for _, m := range ms {
		Inspect(m, f)
	}
}

func inspectFunction(fn *Function, f func(Node) bool) {
	if fn == nil {
		return
	}
	for _, p := range fn.Params() {
		Inspect(p, f)
	}
	Inspect(fn.ReturnType, f)
}

func inspectBlock(b *Block, f func(Node) bool) {
	if b == nil {
		return
	}
	inspectFunction(b.Type, f)
	if b.SelfType != nil {
		Inspect(b.SelfType, f)
	}
}

// MapType returns a copy of t whose immediate component types are replaced
// by f. Leaf types are returned unchanged.
func MapType(t Type, f func(Type) Type) Type {
	switch t := t.(type) {
	case *ClassInstance:
		return &ClassInstance{Name: t.Name, Args: mapTypes(t.Args, f), Loc: t.Loc}
	case *Interface:
		return &Interface{Name: t.Name, Args: mapTypes(t.Args, f), Loc: t.Loc}
	case *Alias:
		return &Alias{Name: t.Name, Args: mapTypes(t.Args, f), Loc: t.Loc}
	case *Tuple:
		return &Tuple{Types: mapTypes(t.Types, f), Loc: t.Loc}
	case *Union:
		return &Union{Types: mapTypes(t.Types, f), Loc: t.Loc}
	case *Intersection:
		return &Intersection{Types: mapTypes(t.Types, f), Loc: t.Loc}
	case *Optional:
		return &Optional{Type: f(t.Type), Loc: t.Loc}
	case *Record:
		fields := make([]RecordField, len(t.Fields))
		for i, field := range t.Fields {
			fields[i] = RecordField{Key: field.Key, Type: f(field.Type)}
		}
		return &Record{Fields: fields, Loc: t.Loc}
	case *Proc:
		p := &Proc{Type: mapFunction(t.Type, f), Loc: t.Loc}
		if t.SelfType != nil {
			p.SelfType = f(t.SelfType)
		}
		if t.Block != nil {
			p.Block = &Block{Type: mapFunction(t.Block.Type, f), Required: t.Block.Required}
			if t.Block.SelfType != nil {
				p.Block.SelfType = f(t.Block.SelfType)
			}
		}
		return p
	}
	return t
}

func mapTypes(ts []Type, f func(Type) Type) []Type {
	if ts == nil {
		return nil
	}
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = f(t)
	}
	return out
}

func mapParam(p *Param, f func(Type) Type) *Param {
	if p == nil {
		return nil
	}
	return &Param{Type: f(p.Type), Name: p.Name, Loc: p.Loc}
}

func mapParams(ps []*Param, f func(Type) Type) []*Param {
	if ps == nil {
		return nil
	}
	out := make([]*Param, len(ps))
	for i, p := range ps {
		out[i] = mapParam(p, f)
	}
	return out
}

func mapKeywords(kws []KeywordParam, f func(Type) Type) []KeywordParam {
	if kws == nil {
		return nil
	}
	out := make([]KeywordParam, len(kws))
	for i, kw := range kws {
		out[i] = KeywordParam{Name: kw.Name, Param: mapParam(kw.Param, f)}
	}
	return out
}

func mapFunction(fn *Function, f func(Type) Type) *Function {
	return &Function{
		RequiredPositionals: mapParams(fn.RequiredPositionals, f),
		OptionalPositionals: mapParams(fn.OptionalPositionals, f),
		RestPositionals:     mapParam(fn.RestPositionals, f),
		TrailingPositionals: mapParams(fn.TrailingPositionals, f),
		RequiredKeywords:    mapKeywords(fn.RequiredKeywords, f),
		OptionalKeywords:    mapKeywords(fn.OptionalKeywords, f),
		RestKeywords:        mapParam(fn.RestKeywords, f),
		ReturnType:          f(fn.ReturnType),
	}
}

// ResolveVariables rewrites unqualified class-instance references in the
// upper bounds of params that name one of params into type variables.
func ResolveVariables(params []*TypeParam) {
	if len(params) == 0 {
		return
	}
	vars := make(map[string]bool, len(params))
	for _, p := range params {
		vars[p.Name] = true
	}
	for _, p := range params {
		if p.UpperBound != nil {
			p.UpperBound = substVariables(vars, p.UpperBound)
		}
	}
}

func substVariables(vars map[string]bool, t Type) Type {
	if ci, ok := t.(*ClassInstance); ok && ci.Name.Namespace.Empty() && vars[ci.Name.Name] {
		return &Variable{Name: ci.Name.Name, Loc: ci.Loc}
	}
	return MapType(t, func(inner Type) Type { return substVariables(vars, inner) })
}
