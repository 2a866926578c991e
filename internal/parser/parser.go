package parser

import (
	"fmt"

	"rbsparse/internal/ast"
	"rbsparse/internal/location"
)

type options struct {
	start      int
	end        int
	variables  []string
	requireEOF bool
	maxDepth   int
}

type Option func(*options)

// WithRange restricts parsing to the bytes [start, end) of the buffer. A
// negative end means the end of the buffer.
func WithRange(start, end int) Option {
	return func(o *options) {
		o.start = start
		o.end = end
	}
}

// WithVariables binds names as type variables in an outermost scope.
func WithVariables(names ...string) Option {
	return func(o *options) {
		o.variables = append(o.variables, names...)
	}
}

// AllowTrailing stops ParseType and ParseMethodType from requiring that the
// input ends after the parsed construct.
func AllowTrailing() Option {
	return func(o *options) {
		o.requireEOF = false
	}
}

// WithMaxDepth fails the parse with a NestingError once types and nested
// declarations recurse deeper than limit. Zero means no limit.
func WithMaxDepth(limit int) Option {
	return func(o *options) {
		o.maxDepth = limit
	}
}

// Parser holds the state of one parse: a lookahead window of four tokens,
// the type variable scopes and the comments seen so far. A Parser is not
// safe for concurrent use; each entry point creates its own.
type Parser struct {
	buf        *location.Buffer
	scanner    *Scanner
	current    Token
	next       Token
	next2      Token
	next3      Token
	scope      scopeStack
	comments   commentCollector
	requireEOF bool
	depth      int
	maxDepth   int
}

func newParser(buf *location.Buffer, opts ...Option) *Parser {
	o := options{end: -1, requireEOF: true}
	for _, opt := range opts {
		opt(&o)
	}
	p := &Parser{
		buf:        buf,
		scanner:    NewScanner(buf, o.start, o.end),
		requireEOF: o.requireEOF,
		maxDepth:   o.maxDepth,
	}
	null := Token{Type: NULL, Range: location.Range{Start: p.scanner.current, End: p.scanner.current}}
	p.current, p.next, p.next2, p.next3 = null, null, null, null
	if len(o.variables) > 0 {
		p.scope.push(true)
		for _, name := range o.variables {
			_ = p.scope.insert(name)
		}
	}
	return p
}

// fill loads the lookahead window. current stays the NULL token.
func (p *Parser) fill() {
	p.advance()
	p.advance()
	p.advance()
}

// ParseType parses a single type expression. It returns nil without error
// when the input holds no tokens.
func ParseType(buf *location.Buffer, opts ...Option) (t ast.Type, err error) {
	p := newParser(buf, opts...)
	defer p.recover(&err)
	p.fill()
	if p.next.Type == EOF {
		return nil, nil
	}
	t = p.parseType()
	if p.requireEOF {
		p.advanceAssert(EOF)
	}
	return t, nil
}

// ParseMethodType parses a method signature such as `[T] (T) -> T`. It
// returns nil without error when the input holds no tokens.
func ParseMethodType(buf *location.Buffer, opts ...Option) (mt *ast.MethodType, err error) {
	p := newParser(buf, opts...)
	defer p.recover(&err)
	p.fill()
	if p.next.Type == EOF {
		return nil, nil
	}
	mt = p.parseMethodType()
	if p.requireEOF {
		p.advanceAssert(EOF)
	}
	return mt, nil
}

// ParseSignature parses every declaration in the buffer.
func ParseSignature(buf *location.Buffer, opts ...Option) (decls []ast.Decl, err error) {
	p := newParser(buf, opts...)
	defer p.recover(&err)
	p.fill()
	for p.next.Type != EOF {
		decls = append(decls, p.parseDecl())
	}
	return decls, nil
}

// recover turns a bailout into the returned error. Other panics propagate.
func (p *Parser) recover(errp *error) {
	if r := recover(); r != nil {
		b, ok := r.(bailout)
		if !ok {
			panic(r)
		}
		*errp = b.err
	}
}

// advance shifts the lookahead window by one token. Comments are dropped,
// line comments are handed to the comment collector.
func (p *Parser) advance() {
	p.current = p.next
	p.next = p.next2
	p.next2 = p.next3

	for p.next3.Type != EOF {
		p.next3 = p.scanner.Next()
		if p.next3.Type == COMMENT {
			continue
		}
		if p.next3.Type == LINE_COMMENT {
			p.comments.insert(p.next3)
			continue
		}
		break
	}

	if p.current.Type == ILLEGAL {
		p.fail(p.current, "")
	}
}

func (p *Parser) advanceAssert(tt TokenType) {
	p.advance()
	p.assert(tt)
}

func (p *Parser) assert(tt TokenType) {
	if p.current.Type != tt {
		p.fail(p.current, "expected a token `%s`", tt.Text())
	}
}

func (p *Parser) advanceIf(tt TokenType) bool {
	if p.next.Type == tt {
		p.advance()
		return true
	}
	return false
}

// advanceNoGap advances only when the next token starts exactly where the
// current one ends.
func (p *Parser) advanceNoGap() {
	if !glued(p.current, p.next) {
		p.fail(p.next, "unexpected token")
	}
	p.advance()
}

func glued(a, b Token) bool {
	return a.Range.End.ByteOffset == b.Range.Start.ByteOffset
}

// fail aborts the parse. An ILLEGAL token is reported as a lexical error
// with the scanner's message.
func (p *Parser) fail(tok Token, format string, args ...any) {
	perr := &ParseError{
		Kind:      SyntaxError,
		Source:    p.buf.Name,
		Range:     tok.Range,
		TokenType: tok.Type,
		Lexeme:    tok.Lexeme,
		Message:   fmt.Sprintf(format, args...),
	}
	if tok.Type == ILLEGAL {
		perr.Kind = LexicalError
		perr.Message = p.scanner.ErrorFor(tok)
	}
	panic(bailout{err: perr})
}

// enter counts one level of recursion at tok and fails past the limit.
// Every enter is paired with a deferred leave.
func (p *Parser) enter(tok Token) {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		panic(bailout{err: &ParseError{
			Kind:      NestingError,
			Source:    p.buf.Name,
			Range:     tok.Range,
			TokenType: tok.Type,
			Lexeme:    tok.Lexeme,
			Message:   fmt.Sprintf("nesting depth exceeds the limit of %d", p.maxDepth),
		}})
	}
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) scopeFail(err error) {
	panic(bailout{err: &ParseError{
		Kind:      ScopeError,
		Source:    p.buf.Name,
		Range:     p.current.Range,
		TokenType: p.current.Type,
		Lexeme:    p.current.Lexeme,
		Message:   err.Error(),
	}})
}

func (p *Parser) pushScope(reset bool) {
	p.scope.push(reset)
}

func (p *Parser) popScope() {
	if err := p.scope.pop(); err != nil {
		p.scopeFail(err)
	}
}

func (p *Parser) insertTypeVar(name string) {
	if err := p.scope.insert(name); err != nil {
		p.scopeFail(err)
	}
}

func (p *Parser) newLocation(r location.Range) *location.Location {
	return location.New(p.buf, r)
}

func (p *Parser) currentLocation() *location.Location {
	return p.newLocation(p.current.Range)
}

// text returns the source between two positions.
func (p *Parser) text(start, end location.Position) string {
	return p.buf.Content[start.ByteOffset:end.ByteOffset]
}

func (p *Parser) commentAt(line int) *ast.Comment {
	return p.comments.commentFor(p.buf, line)
}

func span(start, end location.Position) location.Range {
	return location.Range{Start: start, End: end}
}
