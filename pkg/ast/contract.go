package ast

// StatementKind classifies a top-level statement.
type StatementKind string

const (
	StmtVariable  StatementKind = "variable"
	StmtFunction  StatementKind = "function"
	StmtClass     StatementKind = "class"
	StmtInterface StatementKind = "interface"
	StmtTypeAlias StatementKind = "type-alias"
	StmtEnum      StatementKind = "enum"
	StmtModule    StatementKind = "module"
	StmtImport    StatementKind = "import"
	StmtReExport  StatementKind = "re-export"
	StmtOther     StatementKind = "other"
)

// VarKeyword is the declaration keyword of a variable statement.
type VarKeyword string

const (
	VarConst VarKeyword = "const"
	VarLet   VarKeyword = "let"
	VarVar   VarKeyword = "var"
)

// ImportStyle distinguishes the ES import forms.
type ImportStyle string

const (
	ImportDefault   ImportStyle = "default"
	ImportNamed     ImportStyle = "named"
	ImportNamespace ImportStyle = "namespace"
)

// ImportBinding is one local name introduced by an import statement.
type ImportBinding struct {
	Local    string
	Original string // "default" for default imports, "*" for namespace
	Style    ImportStyle
	Module   string // specifier as written
}

// Declarator is one declared identifier of a variable statement.
type Declarator struct {
	Name     string
	NameNode Node
	// Node is the variable_declarator covering name, annotation, and
	// initializer.
	Node Node
	// Value is the initializer, nil when absent. When the initializer is a
	// function or arrow literal, Value is that literal node.
	Value              Node
	ValueIsFunctionLit bool
}

// Statement is one top-level statement with its syntactic classification.
// Export unwrapping has already happened: Node is the declaration itself
// and Exported records whether the statement carried the export modifier.
type Statement struct {
	Kind     StatementKind
	Node     Node
	Exported bool
	// Name is the declared identifier for single-name declarations
	// (function, class, interface, type alias, enum, module block).
	// Empty for variables (see Declarators) and for anonymous defaults.
	Name     string
	NameNode Node
	// Keyword is set for variable statements.
	Keyword VarKeyword
	// Declarators is set for variable statements, one per declared name.
	Declarators []Declarator
	// Imports is set for import statements, one per introduced local name.
	Imports []ImportBinding
	// Module is the specifier of an import or re-export statement.
	Module string
}

// Node is an opaque handle into the typed syntax tree.
type Node interface {
	// Kind returns the raw syntactic kind of the node.
	Kind() string

	// Text returns the node's source text.
	Text() string

	// Range returns the node's byte offsets in its file.
	Range() (start, end uint32)

	// Parent returns the enclosing node, nil at the root.
	Parent() Node

	// ChildCount and Child traverse named children in order.
	ChildCount() int
	Child(i int) Node

	// IsIdentifier reports whether the node is a plain identifier reference.
	IsIdentifier() bool

	// IsPropertyAccess reports whether the node is a property access
	// expression (a.b).
	IsPropertyAccess() bool

	// IsPropertyPosition reports whether the node sits in the property
	// position of its parent (the right of '.', an object-literal key, or
	// the right segment of a qualified name). Shorthand properties are
	// identifier references, not property positions.
	IsPropertyPosition() bool

	// IsTypePosition reports whether the node occurs where only a type
	// expression is legal (annotation, type argument, heritage clause).
	IsTypePosition() bool

	// IsFunctionLike reports whether the node introduces a parameter scope.
	IsFunctionLike() bool

	// IsVariableDeclaration reports whether the node declares variables.
	IsVariableDeclaration() bool

	// FunctionParameters returns declared parameter names when the node is
	// function-like, nil otherwise.
	FunctionParameters() []string

	// DeclaredNames returns names bound by a variable declaration node,
	// nil otherwise.
	DeclaredNames() []string

	// InnerFunctionName returns the name of a nested function declaration,
	// empty otherwise.
	InnerFunctionName() string
}

// DeclKind classifies a resolved declaration.
type DeclKind string

const (
	DeclParameter     DeclKind = "parameter"
	DeclVariable      DeclKind = "variable"
	DeclFunction      DeclKind = "function"
	DeclClass         DeclKind = "class"
	DeclInterface     DeclKind = "interface"
	DeclTypeAlias     DeclKind = "type-alias"
	DeclEnum          DeclKind = "enum"
	DeclNamespace     DeclKind = "namespace"
	DeclImportBinding DeclKind = "import"
	DeclPropertySig   DeclKind = "property-signature"
	DeclPropertyField DeclKind = "property-declaration"
)

// Decl is an opaque handle to the declaration that introduced a name.
type Decl interface {
	// Name returns the declared identifier.
	Name() string

	// Kind classifies the declaration.
	Kind() DeclKind

	// Node returns the declaring node, nil for synthetic declarations.
	Node() Node
}

// Origin classifies the file that owns a declaration.
type Origin string

const (
	OriginProject    Origin = "project"
	OriginSystem     Origin = "system"
	OriginThirdParty Origin = "third-party"
)

// Checker is the resolution oracle the core consumes. All methods are
// synchronous and never perform I/O.
type Checker interface {
	// Resolve yields the declaration that introduced the identifier's name
	// in scope, or false when resolution fails.
	Resolve(n Node) (Decl, bool)

	// TypeString renders the declared type for display.
	TypeString(d Decl) string

	// Documentation returns the doc comment attached to the declaration,
	// empty when absent.
	Documentation(d Decl) string

	// DeclFile returns the path of the file owning the declaration.
	DeclFile(d Decl) string

	// Origin classifies the declaration's owning file against the
	// configured stdlib and external roots.
	Origin(d Decl) Origin

	IsParameter(d Decl) bool
	IsPropertySignature(d Decl) bool
	IsPropertyDeclaration(d Decl) bool
	IsTypeAlias(d Decl) bool
	IsInterface(d Decl) bool
	IsClass(d Decl) bool

	// ImportOf returns the import binding when the declaration is an
	// import, false otherwise.
	ImportOf(d Decl) (ImportBinding, bool)
}

// File provides ordered access to one parsed source file.
type File interface {
	// Path returns the file's path as given to the program.
	Path() string

	// Key returns the file key used in fully qualified symbol ids.
	Key() string

	// IsDeclarationOnly reports whether the file carries only ambient
	// declarations (.d.ts).
	IsDeclarationOnly() bool

	// Statements returns the top-level statements in source order.
	Statements() []Statement

	// Position converts a byte offset to a 1-based line and 0-based column.
	Position(offset uint32) (line, column uint32)
}

// CompilerOptions configures program construction and origin classification.
type CompilerOptions struct {
	// StdlibRoot is the path prefix of the standard library. Declarations
	// owned by files under it classify as system.
	StdlibRoot string

	// ExternalRoot is the path prefix of installed third-party modules.
	ExternalRoot string
}

// Program is a set of parsed files sharing one checker.
type Program interface {
	// Files returns the parsed root files in root-list order.
	Files() []File

	// Checker returns the resolution oracle for this program.
	Checker() Checker

	// Diagnostics returns per-file read and parse errors.
	Diagnostics() []Diagnostic

	// Close releases tree resources. The symbol table holds references
	// into the trees, so Close must come after the table is discarded.
	Close()
}

// Diagnostic is a parse or resolution error attributed to one file.
type Diagnostic struct {
	Path    string
	Message string
	Line    uint32
}
