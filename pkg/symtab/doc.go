// Package symtab stores the project-wide symbol graph.
//
// Symbols are keyed by fully qualified id ("<file_key>:<name>") and edges
// are sets of ids, never direct references, so cyclic dependency graphs
// carry no cyclic ownership and per-file removal needs no reference
// surgery. The table is append-only during analysis; queries are read-only
// and every iterable it returns is either in insertion order (files,
// per-file symbol maps) or sorted id order (graph queries).
package symtab
