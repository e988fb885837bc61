// Package compiler turns CUE predicate declarations into schemas.
//
// Declarations live under a top-level `predicate` struct, one entry per
// schema, keyed by label:
//
//	predicate: Point: {
//		fields: [
//			{name: "x", type: "integer", index: true},
//			{name: "y", type: "integer", default: 0},
//		]
//	}
//	predicate: Pair: {tuple: true, fields: [{name: "a", type: "constant"}, {name: "b", type: "Point"}]}
//
// A field type is integer, string, constant, or the label of another
// declared predicate. The predicate name defaults to the label with its
// first letter lower-cased and may be overridden with `name`.
//
// Compilation runs in three stages: CompileDecl reads each entry, Validate
// checks the whole set without failing fast, and Compile builds schemas in
// dependency order so complex fields can refer to schemas declared later
// in the file.
package compiler
