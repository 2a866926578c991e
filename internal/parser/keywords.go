package parser

var KEYWORDS = map[string]TokenType{
	"alias":         ALIAS,
	"attr_accessor": ATTR_ACCESSOR,
	"attr_reader":   ATTR_READER,
	"attr_writer":   ATTR_WRITER,
	"bool":          BOOL,
	"bot":           BOT,
	"class":         CLASS,
	"def":           DEF,
	"end":           END,
	"extend":        EXTEND,
	"false":         FALSE,
	"in":            IN,
	"include":       INCLUDE,
	"instance":      INSTANCE,
	"interface":     INTERFACE,
	"module":        MODULE,
	"nil":           NIL,
	"out":           OUT,
	"prepend":       PREPEND,
	"private":       PRIVATE,
	"public":        PUBLIC,
	"self":          SELF,
	"singleton":     SINGLETON,
	"top":           TOP,
	"true":          TRUE,
	"type":          TYPE,
	"unchecked":     UNCHECKED,
	"untyped":       UNTYPED,
	"void":          VOID,
}

var keywordText = func() map[TokenType]string {
	m := make(map[TokenType]string, len(KEYWORDS))
	for s, t := range KEYWORDS {
		m[t] = s
	}
	return m
}()
