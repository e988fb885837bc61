// Package predicate provides typed record schemas ("predicates") and their
// instances ("facts").
//
// A Schema is an ordered list of named fields, each with a FieldType that
// knows how to encode a Go value into a symbol.Symbol, decode it back, and
// cheaply check whether a symbol has the right shape (Unifies). A Fact is an
// immutable instance of a Schema; its canonical form is the Function symbol
// schema.Name()(encode(v0), ..., encode(vn)).
//
// Schemas are nominal: two Schema values are the same type only if they are
// the same pointer. Facts of distinct schemas that encode to equal symbols
// still compare equal, mirroring solver symbol equality.
//
// Key design constraints:
//   - Facts are never mutated after construction; Clone returns a new Fact
//   - Field descriptors (*Field) are stable handles used by queryir and store
//   - Integer values are normalised to int64 on construction
//   - All construction errors are *Error values carrying a Code
package predicate
