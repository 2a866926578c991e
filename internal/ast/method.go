package ast

import "rbsparse/internal/location"

// Param is a single function parameter. Name is empty when omitted.
type Param struct {
	Type Type
	Name string
	Loc  *location.Location
}

type KeywordParam struct {
	Name  string
	Param *Param
}

// Function is the parameter list and return type shared by method types,
// procs, and blocks.
type Function struct {
	RequiredPositionals []*Param
	OptionalPositionals []*Param
	RestPositionals     *Param
	TrailingPositionals []*Param
	RequiredKeywords    []KeywordParam
	OptionalKeywords    []KeywordParam
	RestKeywords        *Param
	ReturnType          Type
}

// Keyword finds a required or optional keyword parameter.
func (f *Function) Keyword(name string) (*Param, bool) {
	for _, kw := range f.RequiredKeywords {
		if kw.Name == name {
			return kw.Param, true
		}
	}
	for _, kw := range f.OptionalKeywords {
		if kw.Name == name {
			return kw.Param, true
		}
	}
	return nil, false
}

// Params returns every parameter in declaration order.
func (f *Function) Params() []*Param {
	var ps []*Param
	ps = append(ps, f.RequiredPositionals...)
	ps = append(ps, f.OptionalPositionals...)
	if f.RestPositionals != nil {
		ps = append(ps, f.RestPositionals)
	}
	ps = append(ps, f.TrailingPositionals...)
	for _, kw := range f.RequiredKeywords {
		ps = append(ps, kw.Param)
	}
	for _, kw := range f.OptionalKeywords {
		ps = append(ps, kw.Param)
	}
	if f.RestKeywords != nil {
		ps = append(ps, f.RestKeywords)
	}
	return ps
}

// SetKeyword stores a keyword parameter, replacing an earlier one with the
// same name.
func SetKeyword(list []KeywordParam, name string, p *Param) []KeywordParam {
	for i := range list {
		if list[i].Name == name {
			list[i].Param = p
			return list
		}
	}
	return append(list, KeywordParam{Name: name, Param: p})
}

// Block is the `{ (params) -> T }` part of a method or proc type.
type Block struct {
	Type     *Function
	Required bool
	SelfType Type
}

type Variance int

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)

func (v Variance) String() string {
	switch v {
	case Covariant:
		return "out"
	case Contravariant:
		return "in"
	}
	return "invariant"
}

// TypeParam is a generic parameter such as `out T < Comparable`.
type TypeParam struct {
	Name       string
	Variance   Variance
	Unchecked  bool
	UpperBound Type
	Loc        *location.Location
}

// MethodType is one overload of a method: `[T] (T) { () -> void } -> T`.
type MethodType struct {
	TypeParams []*TypeParam
	Type       *Function
	Block      *Block
	Loc        *location.Location
}
