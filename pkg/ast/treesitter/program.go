package treesitter

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/halcyonlabs/prism/pkg/ast"
	"github.com/halcyonlabs/prism/pkg/source"
)

// Program is a set of parsed source files sharing one checker.
type Program struct {
	files       []*file
	trees       []*sitter.Tree
	checker     *checker
	diagnostics []ast.Diagnostic
}

var _ ast.Program = (*Program)(nil)

// NewProgram parses every root file through src. Files that fail to read
// or parse are dropped and reported as diagnostics; an empty root list is
// an error.
func NewProgram(roots []string, src source.ContentSource, opts ast.CompilerOptions) (*Program, error) {
	if len(roots) == 0 {
		return nil, fmt.Errorf("no root files given")
	}

	p := &Program{checker: &checker{opts: opts}}
	psr := NewParser()
	defer psr.Close()

	for _, path := range roots {
		content, err := src.Read(path)
		if err != nil {
			p.diagnostics = append(p.diagnostics, ast.Diagnostic{
				Path:    path,
				Message: fmt.Sprintf("read failed: %v", err),
			})
			continue
		}

		tree, lang, err := psr.Parse(content, path)
		if err != nil {
			p.diagnostics = append(p.diagnostics, ast.Diagnostic{
				Path:    path,
				Message: err.Error(),
			})
			continue
		}

		f := newFile(path, content, tree, lang)
		p.files = append(p.files, f)
		p.trees = append(p.trees, tree)
		p.collectParseErrors(f)
	}
	return p, nil
}

// collectParseErrors records tree-sitter ERROR nodes as diagnostics.
func (p *Program) collectParseErrors(f *file) {
	root := f.tree.RootNode()
	if !root.HasError() {
		return
	}
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "ERROR" {
			line, _ := f.Position(n.StartByte())
			p.diagnostics = append(p.diagnostics, ast.Diagnostic{
				Path:    f.path,
				Message: "syntax error",
				Line:    line,
			})
			return
		}
		if !n.HasError() {
			return
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(root)
}

// Files returns the parsed files in root-list order.
func (p *Program) Files() []ast.File {
	out := make([]ast.File, len(p.files))
	for i, f := range p.files {
		out[i] = f
	}
	return out
}

// Checker returns the program's resolution oracle.
func (p *Program) Checker() ast.Checker {
	return p.checker
}

// Diagnostics returns per-file parse and read errors.
func (p *Program) Diagnostics() []ast.Diagnostic {
	return p.diagnostics
}

// Close releases the parse trees. Symbol tables hold references into the
// trees, so call this only after results are discarded.
func (p *Program) Close() {
	for _, t := range p.trees {
		t.Close()
	}
	p.trees = nil
	p.files = nil
}
