package ast

import "rbsparse/internal/location"

type Node interface {
	NodePos() location.Position
	NodeEndPos() location.Position
	NodeType() NodeType
	Location() *location.Location
	String() string
}

func pos(l *location.Location) location.Position {
	if l == nil {
		return location.NullPosition
	}
	return l.Start()
}

func endPos(l *location.Location) location.Position {
	if l == nil {
		return location.NullPosition
	}
	return l.End()
}

func (t *Base) NodePos() location.Position    { return pos(t.Loc) }
func (t *Base) NodeEndPos() location.Position { return endPos(t.Loc) }
func (t *Base) Location() *location.Location  { return t.Loc }
func (*Base) NodeType() NodeType              { return BASE_TYPE }

func (t *Variable) NodePos() location.Position    { return pos(t.Loc) }
func (t *Variable) NodeEndPos() location.Position { return endPos(t.Loc) }
func (t *Variable) Location() *location.Location  { return t.Loc }
func (*Variable) NodeType() NodeType              { return VARIABLE_TYPE }

func (t *ClassInstance) NodePos() location.Position    { return pos(t.Loc) }
func (t *ClassInstance) NodeEndPos() location.Position { return endPos(t.Loc) }
func (t *ClassInstance) Location() *location.Location  { return t.Loc }
func (*ClassInstance) NodeType() NodeType              { return CLASS_INSTANCE_TYPE }

func (t *Interface) NodePos() location.Position    { return pos(t.Loc) }
func (t *Interface) NodeEndPos() location.Position { return endPos(t.Loc) }
func (t *Interface) Location() *location.Location  { return t.Loc }
func (*Interface) NodeType() NodeType              { return INTERFACE_TYPE }

func (t *Alias) NodePos() location.Position    { return pos(t.Loc) }
func (t *Alias) NodeEndPos() location.Position { return endPos(t.Loc) }
func (t *Alias) Location() *location.Location  { return t.Loc }
func (*Alias) NodeType() NodeType              { return ALIAS_TYPE }

func (t *ClassSingleton) NodePos() location.Position    { return pos(t.Loc) }
func (t *ClassSingleton) NodeEndPos() location.Position { return endPos(t.Loc) }
func (t *ClassSingleton) Location() *location.Location  { return t.Loc }
func (*ClassSingleton) NodeType() NodeType              { return CLASS_SINGLETON_TYPE }

func (t *Literal) NodePos() location.Position    { return pos(t.Loc) }
func (t *Literal) NodeEndPos() location.Position { return endPos(t.Loc) }
func (t *Literal) Location() *location.Location  { return t.Loc }
func (*Literal) NodeType() NodeType              { return LITERAL_TYPE }

func (t *Tuple) NodePos() location.Position    { return pos(t.Loc) }
func (t *Tuple) NodeEndPos() location.Position { return endPos(t.Loc) }
func (t *Tuple) Location() *location.Location  { return t.Loc }
func (*Tuple) NodeType() NodeType              { return TUPLE_TYPE }

func (t *Record) NodePos() location.Position    { return pos(t.Loc) }
func (t *Record) NodeEndPos() location.Position { return endPos(t.Loc) }
func (t *Record) Location() *location.Location  { return t.Loc }
func (*Record) NodeType() NodeType              { return RECORD_TYPE }

func (t *Optional) NodePos() location.Position    { return pos(t.Loc) }
func (t *Optional) NodeEndPos() location.Position { return endPos(t.Loc) }
func (t *Optional) Location() *location.Location  { return t.Loc }
func (*Optional) NodeType() NodeType              { return OPTIONAL_TYPE }

func (t *Union) NodePos() location.Position    { return pos(t.Loc) }
func (t *Union) NodeEndPos() location.Position { return endPos(t.Loc) }
func (t *Union) Location() *location.Location  { return t.Loc }
func (*Union) NodeType() NodeType              { return UNION_TYPE }

func (t *Intersection) NodePos() location.Position    { return pos(t.Loc) }
func (t *Intersection) NodeEndPos() location.Position { return endPos(t.Loc) }
func (t *Intersection) Location() *location.Location  { return t.Loc }
func (*Intersection) NodeType() NodeType              { return INTERSECTION_TYPE }

func (t *Proc) NodePos() location.Position    { return pos(t.Loc) }
func (t *Proc) NodeEndPos() location.Position { return endPos(t.Loc) }
func (t *Proc) Location() *location.Location  { return t.Loc }
func (*Proc) NodeType() NodeType              { return PROC_TYPE }

func (m *MethodType) NodePos() location.Position    { return pos(m.Loc) }
func (m *MethodType) NodeEndPos() location.Position { return endPos(m.Loc) }
func (m *MethodType) Location() *location.Location  { return m.Loc }
func (*MethodType) NodeType() NodeType              { return METHOD_TYPE }

func (p *Param) NodePos() location.Position    { return pos(p.Loc) }
func (p *Param) NodeEndPos() location.Position { return endPos(p.Loc) }
func (p *Param) Location() *location.Location  { return p.Loc }
func (*Param) NodeType() NodeType              { return FUNCTION_PARAM }

func (p *TypeParam) NodePos() location.Position    { return pos(p.Loc) }
func (p *TypeParam) NodeEndPos() location.Position { return endPos(p.Loc) }
func (p *TypeParam) Location() *location.Location  { return p.Loc }
func (*TypeParam) NodeType() NodeType              { return TYPE_PARAM }

func (d *GlobalDecl) NodePos() location.Position    { return pos(d.Loc) }
func (d *GlobalDecl) NodeEndPos() location.Position { return endPos(d.Loc) }
func (d *GlobalDecl) Location() *location.Location  { return d.Loc }
func (*GlobalDecl) NodeType() NodeType              { return GLOBAL_DECL }

func (d *ConstantDecl) NodePos() location.Position    { return pos(d.Loc) }
func (d *ConstantDecl) NodeEndPos() location.Position { return endPos(d.Loc) }
func (d *ConstantDecl) Location() *location.Location  { return d.Loc }
func (*ConstantDecl) NodeType() NodeType              { return CONSTANT_DECL }

func (d *TypeAliasDecl) NodePos() location.Position    { return pos(d.Loc) }
func (d *TypeAliasDecl) NodeEndPos() location.Position { return endPos(d.Loc) }
func (d *TypeAliasDecl) Location() *location.Location  { return d.Loc }
func (*TypeAliasDecl) NodeType() NodeType              { return TYPE_ALIAS_DECL }

func (d *InterfaceDecl) NodePos() location.Position    { return pos(d.Loc) }
func (d *InterfaceDecl) NodeEndPos() location.Position { return endPos(d.Loc) }
func (d *InterfaceDecl) Location() *location.Location  { return d.Loc }
func (*InterfaceDecl) NodeType() NodeType              { return INTERFACE_DECL }

func (d *ModuleDecl) NodePos() location.Position    { return pos(d.Loc) }
func (d *ModuleDecl) NodeEndPos() location.Position { return endPos(d.Loc) }
func (d *ModuleDecl) Location() *location.Location  { return d.Loc }
func (*ModuleDecl) NodeType() NodeType              { return MODULE_DECL }

func (d *ClassDecl) NodePos() location.Position    { return pos(d.Loc) }
func (d *ClassDecl) NodeEndPos() location.Position { return endPos(d.Loc) }
func (d *ClassDecl) Location() *location.Location  { return d.Loc }
func (*ClassDecl) NodeType() NodeType              { return CLASS_DECL }

func (s *ModuleSelf) NodePos() location.Position    { return pos(s.Loc) }
func (s *ModuleSelf) NodeEndPos() location.Position { return endPos(s.Loc) }
func (s *ModuleSelf) Location() *location.Location  { return s.Loc }
func (*ModuleSelf) NodeType() NodeType              { return MODULE_SELF }

func (s *ClassSuper) NodePos() location.Position    { return pos(s.Loc) }
func (s *ClassSuper) NodeEndPos() location.Position { return endPos(s.Loc) }
func (s *ClassSuper) Location() *location.Location  { return s.Loc }
func (*ClassSuper) NodeType() NodeType              { return CLASS_SUPER }

func (m *MethodDefinition) NodePos() location.Position    { return pos(m.Loc) }
func (m *MethodDefinition) NodeEndPos() location.Position { return endPos(m.Loc) }
func (m *MethodDefinition) Location() *location.Location  { return m.Loc }
func (*MethodDefinition) NodeType() NodeType              { return METHOD_DEFINITION }

func (m *Mixin) NodePos() location.Position    { return pos(m.Loc) }
func (m *Mixin) NodeEndPos() location.Position { return endPos(m.Loc) }
func (m *Mixin) Location() *location.Location  { return m.Loc }
func (*Mixin) NodeType() NodeType              { return MIXIN_MEMBER }

func (m *AliasMember) NodePos() location.Position    { return pos(m.Loc) }
func (m *AliasMember) NodeEndPos() location.Position { return endPos(m.Loc) }
func (m *AliasMember) Location() *location.Location  { return m.Loc }
func (*AliasMember) NodeType() NodeType              { return ALIAS_MEMBER }

func (m *VariableMember) NodePos() location.Position    { return pos(m.Loc) }
func (m *VariableMember) NodeEndPos() location.Position { return endPos(m.Loc) }
func (m *VariableMember) Location() *location.Location  { return m.Loc }
func (*VariableMember) NodeType() NodeType              { return VARIABLE_MEMBER }

func (m *Attribute) NodePos() location.Position    { return pos(m.Loc) }
func (m *Attribute) NodeEndPos() location.Position { return endPos(m.Loc) }
func (m *Attribute) Location() *location.Location  { return m.Loc }
func (*Attribute) NodeType() NodeType              { return ATTRIBUTE_MEMBER }

func (m *VisibilityMember) NodePos() location.Position    { return pos(m.Loc) }
func (m *VisibilityMember) NodeEndPos() location.Position { return endPos(m.Loc) }
func (m *VisibilityMember) Location() *location.Location  { return m.Loc }
func (*VisibilityMember) NodeType() NodeType              { return VISIBILITY_MEMBER }

func (a *Annotation) NodePos() location.Position    { return pos(a.Loc) }
func (a *Annotation) NodeEndPos() location.Position { return endPos(a.Loc) }
func (a *Annotation) Location() *location.Location  { return a.Loc }
func (*Annotation) NodeType() NodeType              { return ANNOTATION }

func (c *Comment) NodePos() location.Position    { return pos(c.Loc) }
func (c *Comment) NodeEndPos() location.Position { return endPos(c.Loc) }
func (c *Comment) Location() *location.Location  { return c.Loc }
func (*Comment) NodeType() NodeType              { return COMMENT }
