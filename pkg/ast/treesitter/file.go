package treesitter

import (
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/halcyonlabs/prism/pkg/ast"
)

// file is one parsed source file.
type file struct {
	path        string
	key         string
	src         []byte
	tree        *sitter.Tree
	lang        Language
	declOnly    bool
	lineOffsets []uint32
	stmts       []ast.Statement
}

func newFile(path string, src []byte, tree *sitter.Tree, lang Language) *file {
	f := &file{
		path:     path,
		key:      FileKey(path),
		src:      src,
		tree:     tree,
		lang:     lang,
		declOnly: IsDeclarationFile(path),
	}
	f.lineOffsets = computeLineOffsets(src)
	f.stmts = f.collectStatements()
	return f
}

func (f *file) Path() string            { return f.path }
func (f *file) Key() string             { return f.key }
func (f *file) IsDeclarationOnly() bool { return f.declOnly }

func (f *file) Statements() []ast.Statement {
	return f.stmts
}

func (f *file) Position(offset uint32) (uint32, uint32) {
	i := sort.Search(len(f.lineOffsets), func(i int) bool {
		return f.lineOffsets[i] > offset
	})
	line := uint32(i) // lineOffsets[i-1] <= offset, lines are 1-based
	column := offset - f.lineOffsets[i-1]
	return line, column
}

func computeLineOffsets(src []byte) []uint32 {
	offsets := []uint32{0}
	for i, b := range src {
		if b == '\n' {
			offsets = append(offsets, uint32(i+1))
		}
	}
	return offsets
}

// collectStatements walks the file's top-level statement list and
// classifies each statement, unwrapping export modifiers.
func (f *file) collectStatements() []ast.Statement {
	root := f.tree.RootNode()
	stmts := make([]ast.Statement, 0, root.NamedChildCount())

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case "import_statement":
			stmts = append(stmts, f.importStatement(child))
		case "export_statement":
			stmts = append(stmts, f.exportStatement(child))
		case "comment":
			// Comments are not statements; Documentation reads them as
			// the preceding sibling of a declaration.
			continue
		default:
			stmts = append(stmts, f.declarationStatement(child, false))
		}
	}
	return stmts
}

// importStatement parses the bindings introduced by an import declaration.
func (f *file) importStatement(n *sitter.Node) ast.Statement {
	stmt := ast.Statement{Kind: ast.StmtImport, Node: wrap(n, f)}

	if src := n.ChildByFieldName("source"); src != nil {
		stmt.Module = stringContent(src, f.src)
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "import_clause" {
			continue
		}
		for j := 0; j < int(child.NamedChildCount()); j++ {
			clause := child.NamedChild(j)
			switch clause.Type() {
			case "identifier":
				stmt.Imports = append(stmt.Imports, ast.ImportBinding{
					Local:    text(clause, f.src),
					Original: "default",
					Style:    ast.ImportDefault,
					Module:   stmt.Module,
				})
			case "namespace_import":
				for k := 0; k < int(clause.NamedChildCount()); k++ {
					if gc := clause.NamedChild(k); gc.Type() == "identifier" {
						stmt.Imports = append(stmt.Imports, ast.ImportBinding{
							Local:    text(gc, f.src),
							Original: "*",
							Style:    ast.ImportNamespace,
							Module:   stmt.Module,
						})
					}
				}
			case "named_imports":
				for k := 0; k < int(clause.NamedChildCount()); k++ {
					spec := clause.NamedChild(k)
					if spec.Type() != "import_specifier" {
						continue
					}
					name := text(spec.ChildByFieldName("name"), f.src)
					local := name
					if alias := spec.ChildByFieldName("alias"); alias != nil {
						local = text(alias, f.src)
					}
					if name == "" {
						continue
					}
					stmt.Imports = append(stmt.Imports, ast.ImportBinding{
						Local:    local,
						Original: name,
						Style:    ast.ImportNamed,
						Module:   stmt.Module,
					})
				}
			}
		}
	}
	return stmt
}

// exportStatement unwraps an export modifier. Re-exports carry a source
// module and introduce no declaration.
func (f *file) exportStatement(n *sitter.Node) ast.Statement {
	if src := n.ChildByFieldName("source"); src != nil {
		return ast.Statement{
			Kind:   ast.StmtReExport,
			Node:   wrap(n, f),
			Module: stringContent(src, f.src),
		}
	}

	if decl := n.ChildByFieldName("declaration"); decl != nil {
		return f.declarationStatement(decl, true)
	}

	// export default <expression> or bare export lists produce no symbol.
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "function_declaration", "generator_function_declaration", "class_declaration",
			"abstract_class_declaration", "interface_declaration", "type_alias_declaration",
			"enum_declaration", "lexical_declaration", "variable_declaration",
			"internal_module", "module":
			return f.declarationStatement(child, true)
		}
	}
	return ast.Statement{Kind: ast.StmtOther, Node: wrap(n, f), Exported: true}
}

// declarationStatement classifies a declaration node.
func (f *file) declarationStatement(n *sitter.Node, exported bool) ast.Statement {
	stmt := ast.Statement{Node: wrap(n, f), Exported: exported}

	switch n.Type() {
	case "lexical_declaration", "variable_declaration":
		stmt.Kind = ast.StmtVariable
		stmt.Keyword = variableKeyword(n, f.src)
		stmt.Declarators = f.declarators(n)
	case "function_declaration", "generator_function_declaration", "function_signature":
		stmt.Kind = ast.StmtFunction
		f.setName(&stmt, n)
	case "class_declaration", "abstract_class_declaration":
		stmt.Kind = ast.StmtClass
		f.setName(&stmt, n)
	case "interface_declaration":
		stmt.Kind = ast.StmtInterface
		f.setName(&stmt, n)
	case "type_alias_declaration":
		stmt.Kind = ast.StmtTypeAlias
		f.setName(&stmt, n)
	case "enum_declaration":
		stmt.Kind = ast.StmtEnum
		f.setName(&stmt, n)
	case "internal_module", "module":
		stmt.Kind = ast.StmtModule
		f.setName(&stmt, n)
	default:
		stmt.Kind = ast.StmtOther
	}
	return stmt
}

func (f *file) setName(stmt *ast.Statement, n *sitter.Node) {
	name := n.ChildByFieldName("name")
	if name == nil {
		return
	}
	stmt.Name = text(name, f.src)
	stmt.NameNode = wrap(name, f)
}

// declarators expands a variable statement into one entry per bound name.
func (f *file) declarators(n *sitter.Node) []ast.Declarator {
	var decls []ast.Declarator
	for i := 0; i < int(n.NamedChildCount()); i++ {
		vd := n.NamedChild(i)
		if vd.Type() != "variable_declarator" {
			continue
		}
		name := vd.ChildByFieldName("name")
		if name == nil {
			continue
		}
		value := vd.ChildByFieldName("value")
		isFuncLit := value != nil && functionLikeKinds[value.Type()]

		if name.Type() == "identifier" {
			decls = append(decls, ast.Declarator{
				Name:               text(name, f.src),
				NameNode:           wrap(name, f),
				Node:               wrap(vd, f),
				Value:              wrap(value, f),
				ValueIsFunctionLit: isFuncLit,
			})
			continue
		}

		// Destructuring introduces one symbol per binding identifier; all
		// of them share the declarator node.
		for _, bound := range bindingIdentifiers(name) {
			decls = append(decls, ast.Declarator{
				Name:     text(bound, f.src),
				NameNode: wrap(bound, f),
				Node:     wrap(vd, f),
				Value:    wrap(value, f),
			})
		}
	}
	return decls
}

// variableKeyword reads the declaration keyword token.
func variableKeyword(n *sitter.Node, src []byte) ast.VarKeyword {
	if n.ChildCount() > 0 {
		switch text(n.Child(0), src) {
		case "let":
			return ast.VarLet
		case "var":
			return ast.VarVar
		}
	}
	return ast.VarConst
}

// stringContent strips the quotes from a string literal node.
func stringContent(n *sitter.Node, src []byte) string {
	s := text(n, src)
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}
