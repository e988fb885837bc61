// Package datalog bridges facts to Google Mangle, a Datalog engine.
//
// A fact maps to a Mangle atom with the schema name as predicate symbol.
// Integer arguments become Mangle numbers, strings become Mangle strings
// and constants become Mangle names (`red` becomes `/red`). Nested function
// terms and tuple schemas have no Mangle counterpart and are rejected.
//
// Load copies a fact base into a Mangle fact store so Datalog rules can run
// over it; Facts reads atoms back out of a store and unifies them with
// schemas, the same way solver output is turned into facts.
package datalog
