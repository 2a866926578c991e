package ast

import "rbsparse/internal/location"

// Type is any type expression.
type Type interface {
	Node
	typeNode()
	format(level int) string
}

type BaseKind int

const (
	BoolType BaseKind = iota
	BottomType
	TopType
	VoidType
	AnyType
	NilType
	SelfType
	InstanceType
	ClassType
)

var baseKindNames = [...]string{
	BoolType:     "bool",
	BottomType:   "bot",
	TopType:      "top",
	VoidType:     "void",
	AnyType:      "untyped",
	NilType:      "nil",
	SelfType:     "self",
	InstanceType: "instance",
	ClassType:    "class",
}

func (k BaseKind) String() string { return baseKindNames[k] }

// Base is one of the builtin keyword types.
type Base struct {
	Kind BaseKind
	Loc  *location.Location
}

// Variable is a type variable bound by an enclosing scope.
type Variable struct {
	Name string
	Loc  *location.Location
}

// ClassInstance is `Name` or `Name[Args]` where Name is a class or module.
type ClassInstance struct {
	Name TypeName
	Args []Type
	Loc  *location.Location
}

// Interface is `_Name` or `_Name[Args]`.
type Interface struct {
	Name TypeName
	Args []Type
	Loc  *location.Location
}

// Alias is a reference to a type alias.
type Alias struct {
	Name TypeName
	Args []Type
	Loc  *location.Location
}

// ClassSingleton is `singleton(Name)`.
type ClassSingleton struct {
	Name TypeName
	Loc  *location.Location
}

type Literal struct {
	Value LiteralValue
	Loc   *location.Location
}

type Tuple struct {
	Types []Type
	Loc   *location.Location
}

type RecordField struct {
	Key  LiteralValue
	Type Type
}

// Record keeps its fields in source order. Keys are unique.
type Record struct {
	Fields []RecordField
	Loc    *location.Location
}

// Field looks up a field by key.
func (r *Record) Field(key LiteralValue) (Type, bool) {
	for _, f := range r.Fields {
		if f.Key.Equal(key) {
			return f.Type, true
		}
	}
	return nil, false
}

// Set replaces the field with the same key or appends a new one.
func (r *Record) Set(key LiteralValue, t Type) {
	for i, f := range r.Fields {
		if f.Key.Equal(key) {
			r.Fields[i].Type = t
			return
		}
	}
	r.Fields = append(r.Fields, RecordField{Key: key, Type: t})
}

type Optional struct {
	Type Type
	Loc  *location.Location
}

type Union struct {
	Types []Type
	Loc   *location.Location
}

type Intersection struct {
	Types []Type
	Loc   *location.Location
}

// Proc is `^(params) -> T` with an optional block and self binding.
type Proc struct {
	Type     *Function
	Block    *Block
	SelfType Type
	Loc      *location.Location
}

func (*Base) typeNode()           {}
func (*Variable) typeNode()       {}
func (*ClassInstance) typeNode()  {}
func (*Interface) typeNode()      {}
func (*Alias) typeNode()          {}
func (*ClassSingleton) typeNode() {}
func (*Literal) typeNode()        {}
func (*Tuple) typeNode()          {}
func (*Record) typeNode()         {}
func (*Optional) typeNode()       {}
func (*Union) typeNode()          {}
func (*Intersection) typeNode()   {}
func (*Proc) typeNode()           {}
