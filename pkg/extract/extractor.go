// Package extract turns one parsed source file into its FileSymbols
// record: a pass over the top-level statement list collects declarations
// and imports, then a pass over each symbol's declaration subtree computes
// its dependency set.
package extract

import (
	"github.com/halcyonlabs/prism/pkg/ast"
	"github.com/halcyonlabs/prism/pkg/models"
)

// Options controls which resolved references become dependencies.
type Options struct {
	// IncludeNodeModules keeps references into installed dependencies.
	IncludeNodeModules bool
	// IncludeSystemSymbols keeps references into the standard library.
	IncludeSystemSymbols bool
	// FollowTypeOnlyImports keeps edges to declarations referenced purely
	// in type positions. Off by default: types carry no runtime cost, so
	// tree-shaking semantics ignore them.
	FollowTypeOnlyImports bool
}

// Extractor produces FileSymbols records from parsed files.
type Extractor struct {
	checker ast.Checker
	opts    Options
}

// Option is a functional option for configuring Extractor.
type Option func(*Extractor)

// WithOptions replaces the resolution policy.
func WithOptions(opts Options) Option {
	return func(e *Extractor) {
		e.opts = opts
	}
}

// New creates an extractor bound to a checker.
func New(checker ast.Checker, opts ...Option) *Extractor {
	e := &Extractor{checker: checker}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractFile runs both passes over one file.
func (e *Extractor) ExtractFile(f ast.File) (*models.FileSymbols, error) {
	fs := models.NewFileSymbols(f.Key(), f.Path())

	e.collectDeclarations(f, fs)

	res := &resolver{checker: e.checker, opts: e.opts, file: f, fs: fs}
	fs.EachSymbol(func(sym *models.Symbol) {
		res.resolve(sym)
	})

	return fs, nil
}

// collectDeclarations is the first pass: walk the top-level statement
// list, produce one symbol per declared name, and build the import table.
func (e *Extractor) collectDeclarations(f ast.File, fs *models.FileSymbols) {
	for _, stmt := range f.Statements() {
		switch stmt.Kind {
		case ast.StmtImport:
			for _, b := range stmt.Imports {
				fs.Imports.Set(models.Import{
					LocalName:    b.Local,
					FromModule:   b.Module,
					ModuleKey:    NormalizeModule(f.Path(), b.Module),
					Style:        importStyle(b.Style),
					OriginalName: b.Original,
				})
			}
		case ast.StmtReExport:
			fs.ReExports = append(fs.ReExports, stmt.Module)
		case ast.StmtVariable:
			for _, d := range stmt.Declarators {
				e.addVariable(f, fs, stmt, d)
			}
		case ast.StmtFunction:
			e.addNamed(f, fs, stmt, models.KindFunction)
		case ast.StmtClass:
			e.addNamed(f, fs, stmt, models.KindClass)
		case ast.StmtInterface:
			e.addNamed(f, fs, stmt, models.KindInterface)
		case ast.StmtTypeAlias:
			e.addNamed(f, fs, stmt, models.KindTypeAlias)
		case ast.StmtEnum:
			e.addNamed(f, fs, stmt, models.KindEnum)
		case ast.StmtModule:
			e.addNamed(f, fs, stmt, models.KindModuleBlock)
		}
	}
}

// addVariable records one declared variable name. The declaration node is
// the function literal itself when the initializer is one, so the second
// pass finds its parameter list and body as children; the storage kind
// stays with the variable keyword either way.
func (e *Extractor) addVariable(f ast.File, fs *models.FileSymbols, stmt ast.Statement, d ast.Declarator) {
	if d.Name == "" || d.NameNode == nil {
		return
	}
	decl, ok := e.checker.Resolve(d.NameNode)
	if !ok {
		return
	}

	sym := models.NewSymbol(fs.FileKey, d.Name, variableKind(stmt.Keyword))
	sym.IsExported = stmt.Exported
	sym.TypeText = e.checker.TypeString(decl)
	sym.Documentation = e.checker.Documentation(decl)

	declNode := d.Node
	if d.ValueIsFunctionLit {
		declNode = d.Value
		sym.IsFunctionLiteral = true
	}
	sym.Declaration = declNode
	sym.Location = location(f, declNode)

	fs.Add(sym)
}

// addNamed records a single-name declaration. Anonymous declarations
// (default export of a literal) and names the checker cannot resolve are
// skipped; callers observe this as a missing entry in the exports map.
func (e *Extractor) addNamed(f ast.File, fs *models.FileSymbols, stmt ast.Statement, kind models.SymbolKind) {
	if stmt.Name == "" || stmt.NameNode == nil {
		return
	}
	decl, ok := e.checker.Resolve(stmt.NameNode)
	if !ok {
		return
	}

	sym := models.NewSymbol(fs.FileKey, stmt.Name, kind)
	sym.IsExported = stmt.Exported
	sym.TypeText = e.checker.TypeString(decl)
	sym.Documentation = e.checker.Documentation(decl)
	sym.Declaration = stmt.Node
	sym.Location = location(f, stmt.Node)

	fs.Add(sym)
}

func location(f ast.File, n ast.Node) models.SourceLocation {
	if n == nil {
		return models.SourceLocation{}
	}
	start, end := n.Range()
	line, column := f.Position(start)
	return models.SourceLocation{Start: start, End: end, Line: line, Column: column}
}

func variableKind(kw ast.VarKeyword) models.SymbolKind {
	switch kw {
	case ast.VarLet:
		return models.KindLet
	case ast.VarVar:
		return models.KindVar
	default:
		return models.KindConst
	}
}

func importStyle(s ast.ImportStyle) models.ImportStyle {
	switch s {
	case ast.ImportDefault:
		return models.ImportDefault
	case ast.ImportNamespace:
		return models.ImportNamespace
	default:
		return models.ImportNamed
	}
}
