package treesitter

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/halcyonlabs/prism/pkg/ast"
)

// decl is the checker's resolved-declaration handle.
type decl struct {
	name string
	kind ast.DeclKind
	node ast.Node
	file string
	imp  *ast.ImportBinding
}

func (d *decl) Name() string       { return d.name }
func (d *decl) Kind() ast.DeclKind { return d.kind }
func (d *decl) Node() ast.Node     { return d.node }

// checker resolves identifiers by lexical scope walk. It is a synchronous
// oracle over already-parsed trees; no I/O happens after construction.
type checker struct {
	opts ast.CompilerOptions
}

var _ ast.Checker = (*checker)(nil)

// Resolve walks enclosing scopes outward from the identifier looking for
// the binding that introduced its name.
func (c *checker) Resolve(n ast.Node) (ast.Decl, bool) {
	nd, ok := n.(*node)
	if !ok || nd == nil {
		return nil, false
	}
	name := nd.Text()
	if name == "" {
		return nil, false
	}

	for scope := nd.n.Parent(); scope != nil; scope = scope.Parent() {
		if d := c.lookupScope(scope, name, nd.f); d != nil {
			return d, true
		}
	}
	return nil, false
}

// lookupScope finds a binding for name introduced directly by scope.
func (c *checker) lookupScope(scope *sitter.Node, name string, f *file) *decl {
	src := f.src

	if functionLikeKinds[scope.Type()] {
		for _, p := range parameterNames(scope, src) {
			if p == name {
				return &decl{name: name, kind: ast.DeclParameter, node: wrap(scope, f), file: f.path}
			}
		}
		// A named function expression binds its own name inside its body.
		if fn := scope.ChildByFieldName("name"); fn != nil && text(fn, src) == name {
			return &decl{name: name, kind: ast.DeclFunction, node: wrap(scope, f), file: f.path}
		}
		return nil
	}

	switch scope.Type() {
	case "statement_block", "program":
		return c.lookupBlock(scope, name, f)
	case "for_statement", "for_in_statement":
		for i := 0; i < int(scope.NamedChildCount()); i++ {
			child := scope.NamedChild(i)
			if child.Type() == "lexical_declaration" || child.Type() == "variable_declaration" {
				if d := c.lookupVariableDecl(child, name, f); d != nil {
					return d
				}
			}
		}
		if left := scope.ChildByFieldName("left"); left != nil && left.Type() == "identifier" && text(left, src) == name {
			return &decl{name: name, kind: ast.DeclVariable, node: wrap(left, f), file: f.path}
		}
	case "catch_clause":
		if param := scope.ChildByFieldName("parameter"); param != nil {
			var names []string
			collectBindingNames(param, src, &names)
			for _, p := range names {
				if p == name {
					return &decl{name: name, kind: ast.DeclParameter, node: wrap(scope, f), file: f.path}
				}
			}
		}
	}
	return nil
}

// lookupBlock scans the statements of a block or the program for a binding.
func (c *checker) lookupBlock(block *sitter.Node, name string, f *file) *decl {
	src := f.src
	topLevel := block.Type() == "program"

	for i := 0; i < int(block.NamedChildCount()); i++ {
		stmt := block.NamedChild(i)

		// Export modifiers wrap the declaration they export.
		if topLevel && stmt.Type() == "export_statement" {
			if inner := stmt.ChildByFieldName("declaration"); inner != nil {
				stmt = inner
			}
		}

		switch stmt.Type() {
		case "lexical_declaration", "variable_declaration":
			if d := c.lookupVariableDecl(stmt, name, f); d != nil {
				return d
			}
		case "function_declaration", "generator_function_declaration", "function_signature":
			if text(stmt.ChildByFieldName("name"), src) == name {
				return &decl{name: name, kind: ast.DeclFunction, node: wrap(stmt, f), file: f.path}
			}
		case "class_declaration", "abstract_class_declaration":
			if text(stmt.ChildByFieldName("name"), src) == name {
				return &decl{name: name, kind: ast.DeclClass, node: wrap(stmt, f), file: f.path}
			}
		case "interface_declaration":
			if topLevel && text(stmt.ChildByFieldName("name"), src) == name {
				return &decl{name: name, kind: ast.DeclInterface, node: wrap(stmt, f), file: f.path}
			}
		case "type_alias_declaration":
			if topLevel && text(stmt.ChildByFieldName("name"), src) == name {
				return &decl{name: name, kind: ast.DeclTypeAlias, node: wrap(stmt, f), file: f.path}
			}
		case "enum_declaration":
			if topLevel && text(stmt.ChildByFieldName("name"), src) == name {
				return &decl{name: name, kind: ast.DeclEnum, node: wrap(stmt, f), file: f.path}
			}
		case "internal_module", "module":
			if topLevel && text(stmt.ChildByFieldName("name"), src) == name {
				return &decl{name: name, kind: ast.DeclNamespace, node: wrap(stmt, f), file: f.path}
			}
		case "import_statement":
			if !topLevel {
				continue
			}
			for _, stmtRec := range f.stmts {
				if stmtRec.Kind != ast.StmtImport {
					continue
				}
				for idx := range stmtRec.Imports {
					if stmtRec.Imports[idx].Local == name {
						imp := stmtRec.Imports[idx]
						return &decl{
							name: name,
							kind: ast.DeclImportBinding,
							node: stmtRec.Node,
							file: f.path,
							imp:  &imp,
						}
					}
				}
			}
		}
	}
	return nil
}

// lookupVariableDecl matches name against a variable statement's declarators.
func (c *checker) lookupVariableDecl(stmt *sitter.Node, name string, f *file) *decl {
	for i := 0; i < int(stmt.NamedChildCount()); i++ {
		vd := stmt.NamedChild(i)
		if vd.Type() != "variable_declarator" {
			continue
		}
		nameNode := vd.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		var names []string
		collectBindingNames(nameNode, f.src, &names)
		for _, bound := range names {
			if bound == name {
				return &decl{name: name, kind: ast.DeclVariable, node: wrap(vd, f), file: f.path}
			}
		}
	}
	return nil
}

// TypeString renders the declared type the way it was written, for display.
func (c *checker) TypeString(d ast.Decl) string {
	dc, ok := d.(*decl)
	if !ok || dc.node == nil {
		return ""
	}
	nd, ok := dc.node.(*node)
	if !ok {
		return ""
	}
	src := nd.f.src

	switch dc.kind {
	case ast.DeclVariable:
		if ann := nd.n.ChildByFieldName("type"); ann != nil {
			return annotationText(ann, src)
		}
		if value := nd.n.ChildByFieldName("value"); value != nil && functionLikeKinds[value.Type()] {
			return signatureText(value, src, "")
		}
		return ""
	case ast.DeclFunction:
		return signatureText(nd.n, src, dc.name)
	case ast.DeclClass:
		return "class " + dc.name
	case ast.DeclInterface:
		return "interface " + dc.name
	case ast.DeclTypeAlias:
		return "type " + dc.name
	case ast.DeclEnum:
		return "enum " + dc.name
	case ast.DeclNamespace:
		return "namespace " + dc.name
	}
	return ""
}

// annotationText strips the leading colon from a type_annotation node.
func annotationText(ann *sitter.Node, src []byte) string {
	return strings.TrimSpace(strings.TrimPrefix(text(ann, src), ":"))
}

// signatureText builds a display signature from a function-like node.
func signatureText(fn *sitter.Node, src []byte, name string) string {
	var b strings.Builder
	if name != "" {
		b.WriteString("function ")
		b.WriteString(name)
	}
	if tp := fn.ChildByFieldName("type_parameters"); tp != nil {
		b.WriteString(text(tp, src))
	}
	if params := fn.ChildByFieldName("parameters"); params != nil {
		b.WriteString(text(params, src))
	} else if param := fn.ChildByFieldName("parameter"); param != nil {
		b.WriteString("(" + text(param, src) + ")")
	} else {
		b.WriteString("()")
	}
	if ret := fn.ChildByFieldName("return_type"); ret != nil {
		b.WriteString(": " + annotationText(ret, src))
	}
	return b.String()
}

// Documentation returns the comment block immediately preceding the
// declaration, export modifier included.
func (c *checker) Documentation(d ast.Decl) string {
	dc, ok := d.(*decl)
	if !ok || dc.node == nil {
		return ""
	}
	nd, ok := dc.node.(*node)
	if !ok {
		return ""
	}

	target := nd.n
	// Declarators and export-wrapped declarations carry their comment on
	// the outer statement.
	for p := target.Parent(); p != nil; p = p.Parent() {
		t := p.Type()
		if t == "lexical_declaration" || t == "variable_declaration" || t == "export_statement" {
			target = p
			continue
		}
		break
	}

	prev := target.PrevSibling()
	if prev == nil || prev.Type() != "comment" {
		return ""
	}
	return normalizeComment(text(prev, nd.f.src))
}

// normalizeComment strips comment markers and per-line asterisks.
func normalizeComment(raw string) string {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(raw, "/**"):
		raw = strings.TrimSuffix(strings.TrimPrefix(raw, "/**"), "*/")
	case strings.HasPrefix(raw, "/*"):
		raw = strings.TrimSuffix(strings.TrimPrefix(raw, "/*"), "*/")
	case strings.HasPrefix(raw, "//"):
		raw = strings.TrimPrefix(raw, "//")
	}
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// DeclFile returns the path of the file owning the declaration.
func (c *checker) DeclFile(d ast.Decl) string {
	if dc, ok := d.(*decl); ok {
		return dc.file
	}
	return ""
}

// nodeBuiltinModules are specifiers owned by the runtime's standard library.
var nodeBuiltinModules = map[string]bool{
	"assert": true, "buffer": true, "child_process": true, "crypto": true,
	"events": true, "fs": true, "http": true, "https": true, "net": true,
	"os": true, "path": true, "process": true, "stream": true, "url": true,
	"util": true, "zlib": true,
}

// Origin classifies the declaration's owning file. Import bindings classify
// by specifier: relative specifiers stay in the project, runtime builtins
// are system, everything else is an installed dependency.
func (c *checker) Origin(d ast.Decl) ast.Origin {
	dc, ok := d.(*decl)
	if !ok {
		return ast.OriginProject
	}

	if dc.imp != nil {
		mod := dc.imp.Module
		switch {
		case strings.HasPrefix(mod, "./") || strings.HasPrefix(mod, "../"):
			return ast.OriginProject
		case strings.HasPrefix(mod, "node:") || nodeBuiltinModules[mod]:
			return ast.OriginSystem
		default:
			return ast.OriginThirdParty
		}
	}

	if c.opts.StdlibRoot != "" && strings.HasPrefix(dc.file, c.opts.StdlibRoot) {
		return ast.OriginSystem
	}
	if c.opts.ExternalRoot != "" && strings.HasPrefix(dc.file, c.opts.ExternalRoot) {
		return ast.OriginThirdParty
	}
	return ast.OriginProject
}

func (c *checker) IsParameter(d ast.Decl) bool {
	return d.Kind() == ast.DeclParameter
}

func (c *checker) IsPropertySignature(d ast.Decl) bool {
	return d.Kind() == ast.DeclPropertySig
}

func (c *checker) IsPropertyDeclaration(d ast.Decl) bool {
	return d.Kind() == ast.DeclPropertyField
}

func (c *checker) IsTypeAlias(d ast.Decl) bool {
	return d.Kind() == ast.DeclTypeAlias
}

func (c *checker) IsInterface(d ast.Decl) bool {
	return d.Kind() == ast.DeclInterface
}

func (c *checker) IsClass(d ast.Decl) bool {
	return d.Kind() == ast.DeclClass
}

func (c *checker) ImportOf(d ast.Decl) (ast.ImportBinding, bool) {
	if dc, ok := d.(*decl); ok && dc.imp != nil {
		return *dc.imp, true
	}
	return ast.ImportBinding{}, false
}
