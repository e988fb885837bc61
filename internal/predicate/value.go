package predicate

import (
	"math"
	"reflect"
	"strings"

	"github.com/roach88/factbase/internal/symbol"
)

// Normalize converts v to the representation facts store internally:
// every Go integer kind becomes int64 and every string kind becomes string.
// Symbols and other values are returned unchanged. An unsigned value too large for int64
// is returned unchanged and will be rejected by Integer.
func Normalize(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case int64:
		return x
	case int:
		return int64(x)
	case string:
		return x
	case symbol.Symbol:
		return x
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := rv.Uint(); u <= math.MaxInt64 {
			return int64(u)
		}
	case reflect.String:
		return rv.String()
	}
	return v
}

// CompareValues orders two field values.
//
// Integers compare numerically, strings bytewise, facts and symbols by their
// canonical symbol order. Values of different kinds are unordered and ok is
// false; callers treat an unordered comparison as a failed match rather than
// an error.
func CompareValues(a, b any) (c int, ok bool) {
	a, b = Normalize(a), Normalize(b)
	switch x := a.(type) {
	case int64:
		y, ok := b.(int64)
		if !ok {
			return 0, false
		}
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	case *Fact:
		y, ok := b.(*Fact)
		if !ok || x == nil || y == nil {
			return 0, false
		}
		return Compare(x, y), true
	case symbol.Symbol:
		y, ok := b.(symbol.Symbol)
		if !ok {
			return 0, false
		}
		return symbol.Compare(x, y), true
	}
	return 0, false
}

// EqualValues reports whether two field values are equal.
// Values CompareValues cannot order fall back to Go equality when both are
// comparable; values of different kinds are never equal.
func EqualValues(a, b any) bool {
	if c, ok := CompareValues(a, b); ok {
		return c == 0
	}
	a, b = Normalize(a), Normalize(b)
	if a == nil || b == nil {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
