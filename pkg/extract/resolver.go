package extract

import (
	"github.com/halcyonlabs/prism/pkg/ast"
	"github.com/halcyonlabs/prism/pkg/models"
)

// resolver classifies identifier occurrences inside one symbol's subtree
// and emits fully qualified dependency ids. One resolver serves every
// symbol of a file; its traversal state (shadow set, visited nodes) is
// created per symbol.
type resolver struct {
	checker ast.Checker
	opts    Options
	file    ast.File
	fs      *models.FileSymbols
}

// localScope is the shadow set collected before scanning a subtree:
// names that hide any outer reference.
type localScope struct {
	functions map[string]struct{}
	variables map[string]struct{}
}

func (s *localScope) shadows(name string) bool {
	if _, ok := s.functions[name]; ok {
		return true
	}
	_, ok := s.variables[name]
	return ok
}

// resolve computes sym's dependency set from its declaration subtree.
func (r *resolver) resolve(sym *models.Symbol) {
	root, ok := sym.Declaration.(ast.Node)
	if !ok || root == nil {
		return
	}

	scope := collectLocals(root)
	visited := make(map[uint64]struct{})
	r.scan(sym, root, root, scope, visited)
}

// collectLocals gathers parameters of enclosing function-likes, names
// introduced by variable declarations within the subtree, and inner
// function declaration names.
func collectLocals(root ast.Node) *localScope {
	scope := &localScope{
		functions: make(map[string]struct{}),
		variables: make(map[string]struct{}),
	}

	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		if n.IsFunctionLike() {
			for _, p := range n.FunctionParameters() {
				scope.variables[p] = struct{}{}
			}
			if name := n.InnerFunctionName(); name != "" && !sameNode(n, root) {
				scope.functions[name] = struct{}{}
			}
		}
		if n.IsVariableDeclaration() {
			for _, v := range n.DeclaredNames() {
				scope.variables[v] = struct{}{}
			}
		}
		for i := 0; i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return scope
}

// scan walks the subtree depth-first. The visited set guards against
// cross-referenced nodes appearing twice.
func (r *resolver) scan(sym *models.Symbol, root, n ast.Node, scope *localScope, visited map[uint64]struct{}) {
	key := nodeKey(n)
	if _, seen := visited[key]; seen {
		return
	}
	visited[key] = struct{}{}

	if n.IsIdentifier() {
		r.classify(sym, root, n, scope)
	}

	for i := 0; i < n.ChildCount(); i++ {
		r.scan(sym, root, n.Child(i), scope, visited)
	}
}

// classify applies the emission rules to one identifier occurrence.
func (r *resolver) classify(sym *models.Symbol, root, n ast.Node, scope *localScope) {
	// Member accesses depend on the object, never the member.
	if n.IsPropertyPosition() {
		return
	}

	decl, ok := r.checker.Resolve(n)
	if !ok {
		return
	}

	if r.checker.IsParameter(decl) {
		return
	}

	if scope.shadows(n.Text()) {
		return
	}

	if r.isSelf(sym, root, decl) {
		return
	}

	// References to type declarations from type positions carry no runtime
	// cost and are dropped for value-level symbols. Type declarations trace
	// their own type references, and value positions (new C(), C.static)
	// always emit.
	if !r.opts.FollowTypeOnlyImports && !isTypeSymbol(sym) && r.isTypeDecl(decl) && n.IsTypePosition() {
		return
	}

	switch r.checker.Origin(decl) {
	case ast.OriginSystem:
		if !r.opts.IncludeSystemSymbols {
			return
		}
	case ast.OriginThirdParty:
		if !r.opts.IncludeNodeModules {
			return
		}
	}

	id := r.dependencyID(n.Text(), decl)
	sym.AddDependency(id)
}

// isSelf reports whether decl is the symbol currently being analyzed,
// reached through any ancestor chain.
func (r *resolver) isSelf(sym *models.Symbol, root ast.Node, decl ast.Decl) bool {
	dn := decl.Node()
	if dn == nil {
		return false
	}
	if r.checker.DeclFile(decl) != r.file.Path() {
		return false
	}
	ds, de := dn.Range()
	rs, re := root.Range()
	// Containment either way covers both the declaration node itself and
	// a class or function body enclosing the reference.
	return (ds >= rs && de <= re) || (rs >= ds && re <= de)
}

func (r *resolver) isTypeDecl(decl ast.Decl) bool {
	return r.checker.IsTypeAlias(decl) ||
		r.checker.IsInterface(decl) ||
		r.checker.IsClass(decl) ||
		r.checker.IsPropertySignature(decl) ||
		r.checker.IsPropertyDeclaration(decl)
}

func isTypeSymbol(sym *models.Symbol) bool {
	k := sym.ReportedKind()
	return k == models.KindInterface || k == models.KindTypeAlias
}

// dependencyID computes the fully qualified id the reference points at.
// Imported names key on the normalized module so cross-file identity holds
// even before the owning file has been extracted.
func (r *resolver) dependencyID(name string, decl ast.Decl) string {
	if imp, ok := r.fs.Imports.Get(name); ok {
		return models.MakeID(imp.ModuleKey, imp.OriginalName)
	}

	declPath := r.checker.DeclFile(decl)
	if declPath == r.file.Path() {
		return models.MakeID(r.fs.FileKey, decl.Name())
	}
	return models.MakeID(FileKeyFromPath(declPath), decl.Name())
}

func nodeKey(n ast.Node) uint64 {
	start, end := n.Range()
	return uint64(start)<<32 | uint64(end)
}

func sameNode(a, b ast.Node) bool {
	as, ae := a.Range()
	bs, be := b.Range()
	return as == bs && ae == be
}
