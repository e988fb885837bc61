package symbol

import (
	"strconv"
	"strings"
)

// Symbol is a sealed interface representing an external term.
// Only Number, Str, Function, Infimum and Supremum implement it.
type Symbol interface {
	symbol() // Sealed - only these types implement it

	// String renders the symbol in ASP text form.
	String() string
}

// Number is an integer symbol.
type Number int64

func (Number) symbol() {}

func (n Number) String() string {
	return strconv.FormatInt(int64(n), 10)
}

// Str is a string symbol. String renders it quoted and escaped.
type Str string

func (Str) symbol() {}

func (s Str) String() string {
	return quote(string(s))
}

// Function is a named term with arguments.
// Name == "" denotes a tuple; len(Args) == 0 with a name denotes a constant.
type Function struct {
	Name string
	Args []Symbol
}

func (Function) symbol() {}

func (f Function) String() string {
	var b strings.Builder
	if f.Name != "" {
		b.WriteString(f.Name)
		if len(f.Args) == 0 {
			return b.String()
		}
	}
	b.WriteByte('(')
	for i, arg := range f.Args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(arg.String())
	}
	// A one-element tuple needs a trailing comma to stay a tuple.
	if f.Name == "" && len(f.Args) == 1 {
		b.WriteByte(',')
	}
	b.WriteByte(')')
	return b.String()
}

// Clone returns a deep copy of f that shares no argument slices with it.
func (f Function) Clone() Function {
	if f.Args == nil {
		return Function{Name: f.Name}
	}
	args := make([]Symbol, len(f.Args))
	for i, arg := range f.Args {
		if fn, ok := arg.(Function); ok {
			arg = fn.Clone()
		}
		args[i] = arg
	}
	return Function{Name: f.Name, Args: args}
}

// IsConstant reports whether f is a plain constant like `red`.
func (f Function) IsConstant() bool {
	return f.Name != "" && len(f.Args) == 0
}

// IsTuple reports whether f is an unnamed tuple.
func (f Function) IsTuple() bool {
	return f.Name == ""
}

// Infimum is the smallest symbol (#inf).
type Infimum struct{}

func (Infimum) symbol() {}

func (Infimum) String() string { return "#inf" }

// Supremum is the largest symbol (#sup).
type Supremum struct{}

func (Supremum) symbol() {}

func (Supremum) String() string { return "#sup" }

// NewNumber creates a Number symbol.
func NewNumber(n int64) Number {
	return Number(n)
}

// NewString creates a Str symbol.
func NewString(s string) Str {
	return Str(s)
}

// NewFunction creates a Function symbol with the given name and arguments.
func NewFunction(name string, args ...Symbol) Function {
	return Function{Name: name, Args: args}
}

// NewConstant creates a constant (a zero-arity Function).
func NewConstant(name string) Function {
	return Function{Name: name}
}

// NewTuple creates an unnamed tuple.
func NewTuple(args ...Symbol) Function {
	return Function{Args: args}
}

// IsConstantName reports whether name is a valid constant/predicate name:
// optional leading underscores, a lower-case letter, then letters, digits,
// underscores or primes.
func IsConstantName(name string) bool {
	i := 0
	for i < len(name) && name[i] == '_' {
		i++
	}
	if i >= len(name) || name[i] < 'a' || name[i] > 'z' {
		return false
	}
	for i++; i < len(name); i++ {
		if !isIdentChar(name[i]) {
			return false
		}
	}
	return true
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '\'' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// quote renders s as an ASP string literal.
// Only backslash, double quote and newline are escaped.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
