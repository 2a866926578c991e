package ast

import "rbsparse/internal/location"

// Decl is a top-level or nested declaration.
type Decl interface {
	Member
	declNode()
	DeclName() string
}

// Member is anything that may appear in a class, module, or interface body.
type Member interface {
	Node
	memberNode()
}

// Annotation is `%a{...}` with the delimiters and surrounding blanks removed.
type Annotation struct {
	Text string
	Loc  *location.Location
}

// Comment is a run of line comments on consecutive lines.
type Comment struct {
	Text string
	Loc  *location.Location
}

type GlobalDecl struct {
	Name    string
	Type    Type
	Comment *Comment
	Loc     *location.Location
}

type ConstantDecl struct {
	Name    TypeName
	Type    Type
	Comment *Comment
	Loc     *location.Location
}

type TypeAliasDecl struct {
	Name        TypeName
	TypeParams  []*TypeParam
	Type        Type
	Annotations []*Annotation
	Comment     *Comment
	Loc         *location.Location
}

type InterfaceDecl struct {
	Name        TypeName
	TypeParams  []*TypeParam
	Members     []Member
	Annotations []*Annotation
	Comment     *Comment
	Loc         *location.Location
}

// ModuleSelf is one entry of a module's `: A, B` self type list.
type ModuleSelf struct {
	Name TypeName
	Args []Type
	Loc  *location.Location
}

type ModuleDecl struct {
	Name        TypeName
	TypeParams  []*TypeParam
	SelfTypes   []*ModuleSelf
	Members     []Member
	Annotations []*Annotation
	Comment     *Comment
	Loc         *location.Location
}

type ClassSuper struct {
	Name TypeName
	Args []Type
	Loc  *location.Location
}

type ClassDecl struct {
	Name        TypeName
	TypeParams  []*TypeParam
	Super       *ClassSuper
	Members     []Member
	Annotations []*Annotation
	Comment     *Comment
	Loc         *location.Location
}

func (*GlobalDecl) declNode()    {}
func (*ConstantDecl) declNode()  {}
func (*TypeAliasDecl) declNode() {}
func (*InterfaceDecl) declNode() {}
func (*ModuleDecl) declNode()    {}
func (*ClassDecl) declNode()     {}

func (*GlobalDecl) memberNode()    {}
func (*ConstantDecl) memberNode()  {}
func (*TypeAliasDecl) memberNode() {}
func (*InterfaceDecl) memberNode() {}
func (*ModuleDecl) memberNode()    {}
func (*ClassDecl) memberNode()     {}

func (d *GlobalDecl) DeclName() string    { return d.Name }
func (d *ConstantDecl) DeclName() string  { return d.Name.String() }
func (d *TypeAliasDecl) DeclName() string { return d.Name.String() }
func (d *InterfaceDecl) DeclName() string { return d.Name.String() }
func (d *ModuleDecl) DeclName() string    { return d.Name.String() }
func (d *ClassDecl) DeclName() string     { return d.Name.String() }
