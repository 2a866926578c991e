package grammar

// Type is a full type expression: a union of intersections.
type Type struct {
	Union []*Intersection `parser:"@@ ( \"|\" @@ )*"`
}

type Intersection struct {
	Operands []*Optional `parser:"@@ ( \"&\" @@ )*"`
}

type Optional struct {
	Simple   *Simple `parser:"@@"`
	Optional bool    `parser:"@\"?\"?"`
}

type Simple struct {
	Parens    *Type        `parser:"  \"(\" @@ \")\""`
	Proc      *Proc        `parser:"| \"^\" @@"`
	Singleton *string      `parser:"| \"singleton\" \"(\" @Name \")\""`
	Base      *string      `parser:"| @(\"bool\" | \"bot\" | \"top\" | \"void\" | \"untyped\" | \"nil\" | \"self\" | \"instance\" | \"class\")"`
	Literal   *Literal     `parser:"| @@"`
	Name      *Application `parser:"| @@"`
	Tuple     *Tuple       `parser:"| @@"`
	Record    *Record      `parser:"| @@"`
}

type Literal struct {
	Integer *string `parser:"  @Integer"`
	String  *string `parser:"| @String"`
	Symbol  *string `parser:"| @Symbol"`
	Bool    *string `parser:"| @(\"true\" | \"false\")"`
}

type Application struct {
	Name string  `parser:"@Name"`
	Args []*Type `parser:"( \"[\" @@ ( \",\" @@ )* \"]\" )?"`
}

type Tuple struct {
	Types []*Type `parser:"\"[\" ( @@ ( \",\" @@ )* )? \"]\""`
}

type Record struct {
	Fields []*RecordField `parser:"\"{\" ( @@ ( \",\" @@ )* )? \"}\""`
}

type RecordField struct {
	Key  *RecordKey `parser:"@@"`
	Type *Type      `parser:"@@"`
}

type RecordKey struct {
	Keyword *string  `parser:"  @Name \":\""`
	Literal *Literal `parser:"| @@ \"=>\""`
}

// Proc is the part of a proc type after the caret.
type Proc struct {
	Params *Params   `parser:"( \"(\" @@? \")\" )?"`
	Self   *Type     `parser:"( \"[\" \"self\" \":\" @@ \"]\" )?"`
	Block  *Block    `parser:"@@?"`
	Return *Optional `parser:"\"->\" @@"`
}

type Block struct {
	Optional bool      `parser:"@\"?\"? \"{\""`
	Params   *Params   `parser:"( \"(\" @@? \")\" )?"`
	Self     *Type     `parser:"( \"[\" \"self\" \":\" @@ \"]\" )?"`
	Return   *Optional `parser:"\"->\" @@ \"}\""`
}

type Params struct {
	List []*Param `parser:"@@ ( \",\" @@ )*"`
}

type Param struct {
	RestKeywords *NamedType `parser:"  \"**\" @@"`
	Rest         *NamedType `parser:"| \"*\" @@"`
	OptKeyword   *Keyword   `parser:"| \"?\" @@"`
	Optional     *NamedType `parser:"| \"?\" @@"`
	Keyword      *Keyword   `parser:"| @@"`
	Positional   *NamedType `parser:"| @@"`
}

type Keyword struct {
	Name string     `parser:"@Name \":\""`
	Type *NamedType `parser:"@@"`
}

type NamedType struct {
	Type *Type   `parser:"@@"`
	Name *string `parser:"@( Name | Backquoted )?"`
}
