// Package symbol provides the external term representation that facts are
// encoded into and decoded from.
//
// This package contains leaf types only. predicate, queryir and store import
// symbol; symbol imports nothing internal.
//
// A Symbol is one of:
//   - Number: a 64-bit integer
//   - Str: a quoted string
//   - Function: a named term with zero or more arguments. A constant is a
//     Function with a name and no arguments; a tuple is a Function with an
//     empty name.
//   - Infimum / Supremum: the least and greatest symbols
//
// Key design constraints:
//   - Symbol is sealed - type switches over it are exhaustive
//   - Compare is a total order; Equal agrees with Compare
//   - String renders the textual ASP form accepted by Parse
package symbol
