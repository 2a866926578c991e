package ast

import "strings"

// Namespace is the `::A::B::` prefix of a type name.
type Namespace struct {
	Path     []string
	Absolute bool
}

// Empty is the relative namespace with no components.
func (ns Namespace) Empty() bool {
	return len(ns.Path) == 0 && !ns.Absolute
}

func (ns Namespace) String() string {
	var b strings.Builder
	if ns.Absolute {
		b.WriteString("::")
	}
	for _, p := range ns.Path {
		b.WriteString(p)
		b.WriteString("::")
	}
	return b.String()
}

type TypeNameKind int

const (
	ClassName TypeNameKind = iota
	InterfaceName
	AliasName
)

func (k TypeNameKind) String() string {
	switch k {
	case ClassName:
		return "class"
	case InterfaceName:
		return "interface"
	case AliasName:
		return "alias"
	}
	return "unknown"
}

// TypeName is a possibly qualified class, interface, or alias name.
type TypeName struct {
	Namespace Namespace
	Name      string
}

// Kind classifies the name by its first characters: `_Foo` names an
// interface, a lowercase initial an alias, anything else a class or module.
func (n TypeName) Kind() TypeNameKind {
	switch {
	case strings.HasPrefix(n.Name, "_"):
		return InterfaceName
	case n.Name != "" && n.Name[0] >= 'a' && n.Name[0] <= 'z':
		return AliasName
	}
	return ClassName
}

func (n TypeName) String() string {
	return n.Namespace.String() + n.Name
}

// Equal compares names component-wise.
func (n TypeName) Equal(other TypeName) bool {
	if n.Name != other.Name || n.Namespace.Absolute != other.Namespace.Absolute {
		return false
	}
	if len(n.Namespace.Path) != len(other.Namespace.Path) {
		return false
	}
	for i := range n.Namespace.Path {
		if n.Namespace.Path[i] != other.Namespace.Path[i] {
			return false
		}
	}
	return true
}
