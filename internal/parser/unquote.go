package parser

import "strings"

var doubleQuoteEscapes = map[byte]string{
	'a':  "\a",
	'b':  "\b",
	'e':  "\x1b",
	'f':  "\f",
	'n':  "\n",
	'r':  "\r",
	's':  " ",
	't':  "\t",
	'v':  "\v",
	'"':  "\"",
	'\'': "'",
	'\\': "\\",
}

var singleQuoteEscapes = map[byte]string{
	'\'': "'",
	'\\': "\\",
}

// unquote strips the quotes of a string, symbol body or backquoted name and
// resolves escapes. The quote style is taken from the first character; text
// that does not start with a quote is returned unchanged.
func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	body := s[1 : len(s)-1]
	switch s[0] {
	case '"':
		return unescape(body, doubleQuoteEscapes)
	case '\'':
		return unescape(body, singleQuoteEscapes)
	case '`':
		return body
	}
	return s
}

func unescape(s string, table map[byte]string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			if rep, ok := table[s[i+1]]; ok {
				b.WriteString(rep)
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
