package symbol

import "strings"

// rank orders symbol kinds: Infimum < Number < Str < Function < Supremum.
func rank(s Symbol) int {
	switch s.(type) {
	case Infimum:
		return 0
	case Number:
		return 1
	case Str:
		return 2
	case Function:
		return 3
	case Supremum:
		return 4
	default:
		panic("symbol: unknown symbol type")
	}
}

// Compare returns -1, 0 or +1 comparing a and b under the total symbol order.
//
// Symbols of different kinds order by kind. Numbers compare numerically and
// strings bytewise. Functions compare by arity, then name, then arguments
// left to right.
func Compare(a, b Symbol) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}

	switch av := a.(type) {
	case Number:
		bv := b.(Number)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case Str:
		return strings.Compare(string(av), string(b.(Str)))
	case Function:
		return compareFunctions(av, b.(Function))
	default:
		// Infimum and Supremum are singletons
		return 0
	}
}

func compareFunctions(a, b Function) int {
	if len(a.Args) != len(b.Args) {
		if len(a.Args) < len(b.Args) {
			return -1
		}
		return 1
	}
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	for i := range a.Args {
		if c := Compare(a.Args[i], b.Args[i]); c != 0 {
			return c
		}
	}
	return 0
}

// Equal reports whether a and b are the same symbol.
func Equal(a, b Symbol) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Compare(a, b) == 0
}

// Less reports whether a orders before b.
func Less(a, b Symbol) bool {
	return Compare(a, b) < 0
}
