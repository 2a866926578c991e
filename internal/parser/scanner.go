package parser

import (
	"strings"
	"unicode/utf8"

	"rbsparse/internal/location"
)

// Scanner turns a buffer into tokens on demand. It holds a single cursor and
// never fails: malformed input produces an ILLEGAL token whose message is
// available from ErrorFor.
type Scanner struct {
	buf         *location.Buffer
	src         string
	end         int
	start       location.Position
	current     location.Position
	firstOfLine bool
	errors      map[int]string
}

// NewScanner scans buf from byte offset start up to end. A negative end
// means the end of the buffer.
func NewScanner(buf *location.Buffer, start, end int) *Scanner {
	src := buf.Content
	if end < 0 || end > len(src) {
		end = len(src)
	}
	if start < 0 {
		start = 0
	}
	if start > end {
		start = end
	}
	pos := location.PositionAt(src, start)
	return &Scanner{
		buf:         buf,
		src:         src,
		end:         end,
		current:     pos,
		firstOfLine: pos.Column == 0,
		errors:      make(map[int]string),
	}
}

// ScanTokens returns every token up to and including EOF.
func (s *Scanner) ScanTokens() []Token {
	var tokens []Token
	for {
		tok := s.Next()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}
	}
}

// ErrorFor returns the message recorded for an ILLEGAL token.
func (s *Scanner) ErrorFor(tok Token) string {
	if msg, ok := s.errors[tok.Range.Start.ByteOffset]; ok {
		return msg
	}
	return "unexpected token"
}

// Next returns the next token. Once the input is exhausted it keeps
// returning EOF at the same position.
func (s *Scanner) Next() Token {
	s.skipWhitespace()
	s.start = s.current

	if s.isAtEnd() || s.peek() == 0 {
		return s.makeToken(EOF)
	}

	c := s.advance()
	switch c {
	case '(':
		return s.makeToken(LEFT_PAREN)
	case ')':
		return s.makeToken(RIGHT_PAREN)
	case '[':
		if s.match(']') {
			if s.match('=') {
				return s.makeToken(OPERATOR)
			}
			return s.makeToken(AREF_OPR)
		}
		return s.makeToken(LEFT_BRACKET)
	case ']':
		return s.makeToken(RIGHT_BRACKET)
	case '{':
		return s.makeToken(LEFT_BRACE)
	case '}':
		return s.makeToken(RIGHT_BRACE)
	case ',':
		return s.makeToken(COMMA)
	case '|':
		return s.makeToken(BAR)
	case '^':
		return s.makeToken(HAT)
	case '&':
		return s.makeToken(AMP)
	case '?':
		return s.makeToken(QUESTION)
	case '*':
		if s.match('*') {
			return s.makeToken(STAR_STAR)
		}
		return s.makeToken(STAR)
	case '.':
		if s.peek() == '.' && s.peekNext() == '.' {
			s.advance()
			s.advance()
			return s.makeToken(DOT3)
		}
		return s.makeToken(DOT)
	case '-':
		return s.scanMinusOperator()
	case '+':
		return s.scanPlusOperator()
	case '=':
		return s.scanEqualOperator()
	case ':':
		if s.match(':') {
			return s.makeToken(DOUBLE_COLON)
		}
		return s.scanSymbol()
	case '<':
		switch {
		case s.match('<'):
		case s.match('='):
			s.match('>')
		default:
			return s.makeToken(LESS)
		}
		return s.makeToken(OPERATOR)
	case '>':
		if !s.match('=') {
			s.match('>')
		}
		return s.makeToken(OPERATOR)
	case '!':
		if !s.match('=') {
			s.match('~')
		}
		return s.makeToken(OPERATOR)
	case '/', '~':
		return s.makeToken(OPERATOR)
	case '%':
		if s.peek() == 'a' && strings.ContainsRune("{([<|", s.peekNext()) {
			return s.scanAnnotation()
		}
		return s.makeToken(OPERATOR)
	case '`':
		return s.scanQuotedIdent()
	case '"':
		return s.scanQuotedBody(DQSTRING, '"')
	case '\'':
		return s.scanQuotedBody(SQSTRING, '\'')
	case '#':
		tt := COMMENT
		if s.firstOfLine {
			tt = LINE_COMMENT
		}
		for !s.isAtEnd() && s.peek() != '\n' && s.peek() != 0 {
			s.advance()
		}
		return s.makeToken(tt)
	case '$':
		return s.scanGlobal()
	case '@':
		return s.scanInstanceVariable()
	}

	switch {
	case isDigit(c):
		return s.scanInteger()
	case isIdentStart(c):
		return s.scanIdentifier()
	}
	return s.illegal("unexpected character `" + string(c) + "`")
}

func (s *Scanner) scanMinusOperator() Token {
	switch {
	case s.match('>'):
		return s.makeToken(ARROW)
	case s.match('@'):
		return s.makeToken(OPERATOR)
	case isDigit(s.peek()):
		return s.scanInteger()
	}
	return s.makeToken(OPERATOR)
}

func (s *Scanner) scanPlusOperator() Token {
	switch {
	case s.match('@'):
		return s.makeToken(OPERATOR)
	case isDigit(s.peek()):
		return s.scanInteger()
	}
	return s.makeToken(OPERATOR)
}

func (s *Scanner) scanEqualOperator() Token {
	switch {
	case s.match('>'):
		return s.makeToken(FAT_ARROW)
	case s.match('='):
		s.match('=')
		return s.makeToken(OPERATOR)
	case s.match('~'):
		return s.makeToken(OPERATOR)
	}
	return s.makeToken(EQUAL)
}

func (s *Scanner) scanInteger() Token {
	for isDigit(s.peek()) || s.peek() == '_' {
		s.advance()
	}
	return s.makeToken(INTEGER)
}

// Symbol operators, longest spelling first.
var symbolOperators = []string{
	"[]=", "[]", "**", "*", "<=>", "<<", "<=", "<", ">=", ">>", ">",
	"===", "==", "=~", "!=", "!~", "!", "+@", "+", "-@", "-",
	"/", "%", "~", "`", "&", "|", "^",
}

// scanSymbol runs after a single `:`. It falls back to COLON when no symbol
// body follows.
func (s *Scanner) scanSymbol() Token {
	c := s.peek()
	switch {
	case c == '"':
		s.advance()
		return s.scanQuotedBody(DQSYMBOL, '"')
	case c == '\'':
		s.advance()
		return s.scanQuotedBody(SQSYMBOL, '\'')
	case isIdentStart(c):
		s.scanWord()
		switch s.peek() {
		case '?', '!':
			s.advance()
		case '=':
			s.matchSetterSuffix()
		}
		return s.makeToken(SYMBOL)
	case c == '@':
		save := s.current
		s.advance()
		s.match('@')
		if isIdentStart(s.peek()) {
			s.scanWord()
			return s.makeToken(SYMBOL)
		}
		s.current = save
	case c == '$':
		save := s.current
		s.advance()
		if s.scanGlobalBody() {
			return s.makeToken(SYMBOL)
		}
		s.current = save
	default:
		rest := s.src[s.current.ByteOffset:s.end]
		for _, op := range symbolOperators {
			if strings.HasPrefix(rest, op) {
				for range op {
					s.advance()
				}
				return s.makeToken(SYMBOL)
			}
		}
	}
	return s.makeToken(COLON)
}

func (s *Scanner) scanIdentifier() Token {
	s.scanWord()
	switch s.peek() {
	case '!':
		s.advance()
		return s.makeToken(BANGIDENT)
	case '=':
		if s.matchSetterSuffix() {
			return s.makeToken(EQIDENT)
		}
	}

	word := s.src[s.start.ByteOffset:s.current.ByteOffset]
	if tt, ok := KEYWORDS[word]; ok {
		return s.makeToken(tt)
	}

	switch {
	case word[0] == '_':
		if len(word) > 1 && isUpper(rune(word[1])) {
			return s.makeToken(ULIDENT)
		}
		return s.makeToken(ULLIDENT)
	case isUpper(rune(word[0])):
		return s.makeToken(UIDENT)
	}
	return s.makeToken(LIDENT)
}

// matchSetterSuffix consumes a trailing `=` unless it begins `=>`, `==` or
// `=~`.
func (s *Scanner) matchSetterSuffix() bool {
	if s.peek() != '=' {
		return false
	}
	switch s.peekNext() {
	case '>', '=', '~':
		return false
	}
	s.advance()
	return true
}

func (s *Scanner) scanWord() {
	for isWordChar(s.peek()) {
		s.advance()
	}
}

func (s *Scanner) scanGlobal() Token {
	if s.scanGlobalBody() {
		return s.makeToken(GIDENT)
	}
	return s.illegal("unexpected character `$`")
}

const globalSpecials = "~*$?!@\\/;,.=:<>\"&'`+"

func (s *Scanner) scanGlobalBody() bool {
	c := s.peek()
	switch {
	case isIdentStart(c):
		s.scanWord()
	case isDigit(c):
		for isDigit(s.peek()) {
			s.advance()
		}
	case c == '-' && isWordChar(s.peekNext()):
		s.advance()
		s.advance()
	case c != 0 && strings.ContainsRune(globalSpecials, c):
		s.advance()
	default:
		return false
	}
	return true
}

func (s *Scanner) scanInstanceVariable() Token {
	tt := AIDENT
	if s.match('@') {
		tt = A2IDENT
	}
	if !isIdentStart(s.peek()) {
		return s.illegal("unexpected character `@`")
	}
	s.scanWord()
	return s.makeToken(tt)
}

// scanQuotedBody consumes up to and including the closing quote. A
// backslash escapes the following character.
func (s *Scanner) scanQuotedBody(tt TokenType, quote rune) Token {
	for {
		if s.isAtEnd() || s.peek() == 0 {
			return s.illegal("unterminated string literal")
		}
		c := s.advance()
		switch c {
		case '\\':
			if !s.isAtEnd() && s.peek() != 0 {
				s.advance()
			}
		case quote:
			return s.makeToken(tt)
		}
	}
}

// scanQuotedIdent handles a backquoted name. A lone backquote is the
// backtick operator.
func (s *Scanner) scanQuotedIdent() Token {
	save := s.current
	c := s.peek()
	if c != ' ' && c != ':' && c != 0 && !s.isAtEnd() {
		s.advance()
		for !s.isAtEnd() && s.peek() != 0 {
			if s.advance() == '`' {
				return s.makeToken(QIDENT)
			}
		}
	}
	s.current = save
	return s.makeToken(OPERATOR)
}

var annotationClose = map[rune]rune{'{': '}', '(': ')', '[': ']', '<': '>', '|': '|'}

func (s *Scanner) scanAnnotation() Token {
	s.advance() // a
	closing := annotationClose[s.advance()]
	for {
		if s.isAtEnd() || s.peek() == 0 {
			return s.illegal("unterminated annotation")
		}
		if s.advance() == closing {
			return s.makeToken(ANNOTATION)
		}
	}
}

func (s *Scanner) skipWhitespace() {
	for !s.isAtEnd() {
		switch s.peek() {
		case ' ', '\t', '\r':
			s.advance()
		case '\n':
			s.advance()
			s.firstOfLine = true
		default:
			return
		}
	}
}

func (s *Scanner) illegal(message string) Token {
	s.errors[s.start.ByteOffset] = message
	return s.makeToken(ILLEGAL)
}

func (s *Scanner) makeToken(tt TokenType) Token {
	s.firstOfLine = false
	return Token{
		Type:   tt,
		Lexeme: s.src[s.start.ByteOffset:s.current.ByteOffset],
		Range:  location.Range{Start: s.start, End: s.current},
	}
}

func (s *Scanner) isAtEnd() bool {
	return s.current.ByteOffset >= s.end
}

func (s *Scanner) peek() rune {
	if s.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.current.ByteOffset:s.end])
	return r
}

func (s *Scanner) peekNext() rune {
	if s.isAtEnd() {
		return 0
	}
	_, size := utf8.DecodeRuneInString(s.src[s.current.ByteOffset:s.end])
	next := s.current.ByteOffset + size
	if next >= s.end {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.src[next:s.end])
	return r
}

func (s *Scanner) advance() rune {
	r, size := utf8.DecodeRuneInString(s.src[s.current.ByteOffset:s.end])
	s.current.ByteOffset += size
	s.current.CharOffset++
	if r == '\n' {
		s.current.Line++
		s.current.Column = 0
	} else {
		s.current.Column++
	}
	return r
}

func (s *Scanner) match(expected rune) bool {
	if s.peek() != expected {
		return false
	}
	s.advance()
	return true
}

func isDigit(c rune) bool      { return c >= '0' && c <= '9' }
func isUpper(c rune) bool      { return c >= 'A' && c <= 'Z' }
func isIdentStart(c rune) bool { return c == '_' || isUpper(c) || (c >= 'a' && c <= 'z') }
func isWordChar(c rune) bool   { return isIdentStart(c) || isDigit(c) }
