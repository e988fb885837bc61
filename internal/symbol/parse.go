package symbol

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseError reports a syntax error in ASP text with its source position.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Parse parses a single term such as `f(1,"a",(b,c))`.
// Leading and trailing whitespace is ignored; anything else after the term
// is an error.
func Parse(text string) (Symbol, error) {
	p := &parser{src: text, line: 1, col: 1}
	p.skipSpace()
	sym, err := p.term()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected %q after term", p.peek())
	}
	return sym, nil
}

// MustParse is like Parse but panics on error.
// Use only in tests or with literal input known to be valid.
func MustParse(text string) Symbol {
	sym, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return sym
}

// ParseFacts parses a sequence of `term.` statements.
// `%` starts a comment that runs to the end of the line. Every statement must
// be a Function (a fact); numbers and strings are rejected.
func ParseFacts(r io.Reader) ([]Symbol, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read facts: %w", err)
	}

	p := &parser{src: string(data), line: 1, col: 1}
	var facts []Symbol
	for {
		p.skipSpace()
		if p.eof() {
			return facts, nil
		}
		line, col := p.line, p.col
		sym, err := p.term()
		if err != nil {
			return nil, err
		}
		if _, ok := sym.(Function); !ok {
			return nil, &ParseError{Line: line, Column: col, Message: fmt.Sprintf("fact must be a function term, got %s", sym)}
		}
		p.skipSpace()
		if !p.accept('.') {
			return nil, p.errorf("expected '.' after fact %s", sym)
		}
		facts = append(facts, sym)
	}
}

// parser is a hand-written recursive descent parser over a string.
type parser struct {
	src  string
	pos  int
	line int
	col  int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) advance() byte {
	c := p.src[p.pos]
	p.pos++
	if c == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	return c
}

func (p *parser) accept(c byte) bool {
	if !p.eof() && p.peek() == c {
		p.advance()
		return true
	}
	return false
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Line: p.line, Column: p.col, Message: fmt.Sprintf(format, args...)}
}

// skipSpace skips whitespace and % line comments.
func (p *parser) skipSpace() {
	for !p.eof() {
		switch c := p.peek(); {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			p.advance()
		case c == '%':
			for !p.eof() && p.peek() != '\n' {
				p.advance()
			}
		default:
			return
		}
	}
}

func (p *parser) term() (Symbol, error) {
	if p.eof() {
		return nil, p.errorf("unexpected end of input")
	}
	c := p.peek()
	switch {
	case c == '-' || (c >= '0' && c <= '9'):
		return p.number()
	case c == '"':
		return p.str()
	case c == '#':
		return p.special()
	case c == '(':
		return p.tuple()
	case c == '_' || (c >= 'a' && c <= 'z'):
		return p.function()
	default:
		return nil, p.errorf("unexpected %q", c)
	}
}

func (p *parser) number() (Symbol, error) {
	start := p.pos
	p.accept('-')
	digits := p.pos
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		p.advance()
	}
	if p.pos == digits {
		return nil, p.errorf("expected digits")
	}
	n, err := strconv.ParseInt(p.src[start:p.pos], 10, 64)
	if err != nil {
		return nil, p.errorf("number out of range: %s", p.src[start:p.pos])
	}
	return Number(n), nil
}

func (p *parser) str() (Symbol, error) {
	p.advance() // opening quote
	var b strings.Builder
	for {
		if p.eof() {
			return nil, p.errorf("unterminated string")
		}
		c := p.advance()
		switch c {
		case '"':
			return Str(b.String()), nil
		case '\\':
			if p.eof() {
				return nil, p.errorf("unterminated escape")
			}
			switch e := p.advance(); e {
			case '\\', '"':
				b.WriteByte(e)
			case 'n':
				b.WriteByte('\n')
			default:
				return nil, p.errorf("invalid escape \\%c", e)
			}
		default:
			b.WriteByte(c)
		}
	}
}

func (p *parser) special() (Symbol, error) {
	switch {
	case strings.HasPrefix(p.src[p.pos:], "#inf"):
		p.skip(4)
		return Infimum{}, nil
	case strings.HasPrefix(p.src[p.pos:], "#sup"):
		p.skip(4)
		return Supremum{}, nil
	default:
		return nil, p.errorf("unknown special term")
	}
}

func (p *parser) skip(n int) {
	for i := 0; i < n; i++ {
		p.advance()
	}
}

func (p *parser) identifier() string {
	start := p.pos
	for !p.eof() && isIdentChar(p.peek()) {
		p.advance()
	}
	return p.src[start:p.pos]
}

func (p *parser) function() (Symbol, error) {
	line, col := p.line, p.col
	name := p.identifier()
	if !IsConstantName(name) {
		return nil, &ParseError{Line: line, Column: col, Message: fmt.Sprintf("invalid name %q", name)}
	}
	if !p.accept('(') {
		return Function{Name: name}, nil
	}
	args, _, err := p.arguments()
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, p.errorf("function %s has empty argument list", name)
	}
	return Function{Name: name, Args: args}, nil
}

func (p *parser) tuple() (Symbol, error) {
	p.advance() // (
	args, trailing, err := p.arguments()
	if err != nil {
		return nil, err
	}
	// (t) is a parenthesised term, (t,) a one-element tuple.
	if len(args) == 1 && !trailing {
		return args[0], nil
	}
	return Function{Args: args}, nil
}

// arguments parses a comma separated list up to and including ')'.
// It reports whether the list ended with a trailing comma.
func (p *parser) arguments() ([]Symbol, bool, error) {
	var args []Symbol
	p.skipSpace()
	if p.accept(')') {
		return args, false, nil
	}
	for {
		p.skipSpace()
		arg, err := p.term()
		if err != nil {
			return nil, false, err
		}
		args = append(args, arg)
		p.skipSpace()
		if p.accept(')') {
			return args, false, nil
		}
		if !p.accept(',') {
			return nil, false, p.errorf("expected ',' or ')'")
		}
		p.skipSpace()
		if p.accept(')') {
			return args, true, nil
		}
	}
}
