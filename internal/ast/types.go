package ast

type NodeType int

const (
	ILLEGAL NodeType = iota

	// Types
	BASE_TYPE
	VARIABLE_TYPE
	CLASS_INSTANCE_TYPE
	INTERFACE_TYPE
	ALIAS_TYPE
	CLASS_SINGLETON_TYPE
	LITERAL_TYPE
	TUPLE_TYPE
	RECORD_TYPE
	OPTIONAL_TYPE
	UNION_TYPE
	INTERSECTION_TYPE
	PROC_TYPE

	// Method signatures
	METHOD_TYPE
	FUNCTION_PARAM
	TYPE_PARAM

	// Declarations
	GLOBAL_DECL
	CONSTANT_DECL
	TYPE_ALIAS_DECL
	INTERFACE_DECL
	MODULE_DECL
	CLASS_DECL
	MODULE_SELF
	CLASS_SUPER

	// Members
	METHOD_DEFINITION
	MIXIN_MEMBER
	ALIAS_MEMBER
	VARIABLE_MEMBER
	ATTRIBUTE_MEMBER
	VISIBILITY_MEMBER

	ANNOTATION
	COMMENT
)

var nodeTypeNames = [...]string{
	ILLEGAL:              "ILLEGAL",
	BASE_TYPE:            "BASE_TYPE",
	VARIABLE_TYPE:        "VARIABLE_TYPE",
	CLASS_INSTANCE_TYPE:  "CLASS_INSTANCE_TYPE",
	INTERFACE_TYPE:       "INTERFACE_TYPE",
	ALIAS_TYPE:           "ALIAS_TYPE",
	CLASS_SINGLETON_TYPE: "CLASS_SINGLETON_TYPE",
	LITERAL_TYPE:         "LITERAL_TYPE",
	TUPLE_TYPE:           "TUPLE_TYPE",
	RECORD_TYPE:          "RECORD_TYPE",
	OPTIONAL_TYPE:        "OPTIONAL_TYPE",
	UNION_TYPE:           "UNION_TYPE",
	INTERSECTION_TYPE:    "INTERSECTION_TYPE",
	PROC_TYPE:            "PROC_TYPE",
	METHOD_TYPE:          "METHOD_TYPE",
	FUNCTION_PARAM:       "FUNCTION_PARAM",
	TYPE_PARAM:           "TYPE_PARAM",
	GLOBAL_DECL:          "GLOBAL_DECL",
	CONSTANT_DECL:        "CONSTANT_DECL",
	TYPE_ALIAS_DECL:      "TYPE_ALIAS_DECL",
	INTERFACE_DECL:       "INTERFACE_DECL",
	MODULE_DECL:          "MODULE_DECL",
	CLASS_DECL:           "CLASS_DECL",
	MODULE_SELF:          "MODULE_SELF",
	CLASS_SUPER:          "CLASS_SUPER",
	METHOD_DEFINITION:    "METHOD_DEFINITION",
	MIXIN_MEMBER:         "MIXIN_MEMBER",
	ALIAS_MEMBER:         "ALIAS_MEMBER",
	VARIABLE_MEMBER:      "VARIABLE_MEMBER",
	ATTRIBUTE_MEMBER:     "ATTRIBUTE_MEMBER",
	VISIBILITY_MEMBER:    "VISIBILITY_MEMBER",
	ANNOTATION:           "ANNOTATION",
	COMMENT:              "COMMENT",
}

func (t NodeType) String() string {
	if t >= 0 && int(t) < len(nodeTypeNames) && nodeTypeNames[t] != "" {
		return nodeTypeNames[t]
	}
	return "ILLEGAL"
}
