// Package ast defines the typed-tree contract the analysis core consumes.
//
// The core never parses source itself. It works against a Program built by
// an implementation of this package's interfaces; the tree-sitter backed
// implementation lives in ast/treesitter. The Checker is treated as a
// synchronous oracle: identifier resolution, type rendering, documentation,
// and declaration predicates all go through it.
//
// Usage:
//
//	prog, err := treesitter.NewProgram(roots, loader, opts)
//	if err != nil {
//	    return err
//	}
//	defer prog.Close()
//
//	for _, file := range prog.Files() {
//	    ...
//	}
package ast
