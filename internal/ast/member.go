package ast

import "rbsparse/internal/location"

type MethodKind int

const (
	InstanceMethod MethodKind = iota
	SingletonMethod
	SingletonInstanceMethod
)

func (k MethodKind) String() string {
	switch k {
	case SingletonMethod:
		return "singleton"
	case SingletonInstanceMethod:
		return "singleton_instance"
	}
	return "instance"
}

type Visibility int

const (
	VisibilityUnspecified Visibility = iota
	Public
	Private
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Private:
		return "private"
	}
	return ""
}

// MethodDefinition is a `def` member. Overload is set when the overloads end
// with `...`.
type MethodDefinition struct {
	Name        string
	Kind        MethodKind
	Types       []*MethodType
	Annotations []*Annotation
	Comment     *Comment
	Overload    bool
	Visibility  Visibility
	Loc         *location.Location
}

type MixinKind int

const (
	Include MixinKind = iota
	Extend
	Prepend
)

func (k MixinKind) String() string {
	switch k {
	case Extend:
		return "extend"
	case Prepend:
		return "prepend"
	}
	return "include"
}

type Mixin struct {
	Kind        MixinKind
	Name        TypeName
	Args        []Type
	Annotations []*Annotation
	Comment     *Comment
	Loc         *location.Location
}

// AliasMember is `alias new old` or `alias self.new self.old`. Kind is
// InstanceMethod or SingletonMethod.
type AliasMember struct {
	NewName     string
	OldName     string
	Kind        MethodKind
	Annotations []*Annotation
	Comment     *Comment
	Loc         *location.Location
}

type VariableKind int

const (
	InstanceVariable VariableKind = iota
	ClassInstanceVariable
	ClassVariable
)

func (k VariableKind) String() string {
	switch k {
	case ClassInstanceVariable:
		return "class_instance_variable"
	case ClassVariable:
		return "class_variable"
	}
	return "instance_variable"
}

type VariableMember struct {
	Kind    VariableKind
	Name    string
	Type    Type
	Comment *Comment
	Loc     *location.Location
}

type AttrKind int

const (
	AttrReader AttrKind = iota
	AttrWriter
	AttrAccessor
)

func (k AttrKind) String() string {
	switch k {
	case AttrWriter:
		return "attr_writer"
	case AttrAccessor:
		return "attr_accessor"
	}
	return "attr_reader"
}

// IvarMode says which instance variable an attribute is backed by.
type IvarMode int

const (
	IvarDefault IvarMode = iota // `@name`
	IvarNone                    // `()`
	IvarNamed                   // `(@other)`
)

// Attribute is an attr_reader, attr_writer, or attr_accessor member. Kind is
// InstanceMethod or SingletonMethod.
type Attribute struct {
	AttrKind    AttrKind
	Name        string
	Type        Type
	Kind        MethodKind
	IvarMode    IvarMode
	IvarName    string
	Annotations []*Annotation
	Comment     *Comment
	Visibility  Visibility
	Loc         *location.Location
}

// VisibilityMember is a bare `public` or `private` line.
type VisibilityMember struct {
	Visibility Visibility
	Loc        *location.Location
}

func (*MethodDefinition) memberNode() {}
func (*Mixin) memberNode()            {}
func (*AliasMember) memberNode()      {}
func (*VariableMember) memberNode()   {}
func (*Attribute) memberNode()        {}
func (*VisibilityMember) memberNode() {}
