package models

import "strings"

// SymbolKind classifies a top-level declaration.
type SymbolKind string

const (
	KindTypeAlias   SymbolKind = "type-alias"
	KindInterface   SymbolKind = "interface"
	KindClass       SymbolKind = "class"
	KindEnum        SymbolKind = "enum"
	KindFunction    SymbolKind = "function"
	KindConst       SymbolKind = "const"
	KindLet         SymbolKind = "let"
	KindVar         SymbolKind = "var"
	KindModuleBlock SymbolKind = "module-block"
)

// String returns the string representation.
func (k SymbolKind) String() string {
	return string(k)
}

// ReportedKind is the kind downstream categorization sees. Variables whose
// initializer is a function literal report as function; the storage kind
// stays with the variable keyword.
func (s *Symbol) ReportedKind() SymbolKind {
	if s.IsFunctionLiteral && (s.Kind == KindConst || s.Kind == KindLet || s.Kind == KindVar) {
		return KindFunction
	}
	return s.Kind
}

// SourceLocation pinpoints a declaration in its file.
type SourceLocation struct {
	Start  uint32 `json:"start" toon:"start"`
	End    uint32 `json:"end" toon:"end"`
	Line   uint32 `json:"line" toon:"line"`
	Column uint32 `json:"column" toon:"column"`
}

// Symbol is a named top-level declaration. Its ID is "<file_key>:<name>"
// and is the identity used by every edge and query.
type Symbol struct {
	Name              string         `json:"name" toon:"name"`
	ID                string         `json:"id" toon:"id"`
	Kind              SymbolKind     `json:"kind" toon:"kind"`
	TypeText          string         `json:"type_text,omitempty" toon:"type_text,omitempty"`
	IsExported        bool           `json:"is_exported" toon:"is_exported"`
	IsFunctionLiteral bool           `json:"is_function_literal,omitempty" toon:"is_function_literal,omitempty"`
	Documentation     string         `json:"documentation,omitempty" toon:"documentation,omitempty"`
	Location          SourceLocation `json:"location" toon:"location"`
	FileKey           string         `json:"file_key" toon:"file_key"`

	// Declaration is an opaque handle to the originating node in the typed
	// tree. The tree must outlive the symbol table.
	Declaration any `json:"-" toon:"-"`

	// Dependencies and Dependents are sets of fully qualified ids. Neither
	// ever contains the symbol's own id.
	Dependencies map[string]struct{} `json:"-" toon:"-"`
	Dependents   map[string]struct{} `json:"-" toon:"-"`
}

// NewSymbol creates a symbol with initialized edge sets.
func NewSymbol(fileKey, name string, kind SymbolKind) *Symbol {
	return &Symbol{
		Name:         name,
		ID:           MakeID(fileKey, name),
		Kind:         kind,
		FileKey:      fileKey,
		Dependencies: make(map[string]struct{}),
		Dependents:   make(map[string]struct{}),
	}
}

// AddDependency records an edge to dep, ignoring self-references.
func (s *Symbol) AddDependency(dep string) {
	if dep == "" || dep == s.ID {
		return
	}
	s.Dependencies[dep] = struct{}{}
}

// DependencyList returns the dependency ids in sorted order.
func (s *Symbol) DependencyList() []string {
	return sortedKeys(s.Dependencies)
}

// DependentList returns the dependent ids in sorted order.
func (s *Symbol) DependentList() []string {
	return sortedKeys(s.Dependents)
}

// MakeID builds a fully qualified symbol id from a file key and a name.
func MakeID(fileKey, name string) string {
	return fileKey + ":" + name
}

// SplitID splits a fully qualified id into file key and name. File keys
// never contain ':' (rejected at insertion), so the first colon is the
// separator.
func SplitID(id string) (fileKey, name string) {
	if i := strings.Index(id, ":"); i >= 0 {
		return id[:i], id[i+1:]
	}
	return id, ""
}

// FileKeyOf returns the file key portion of an id.
func FileKeyOf(id string) string {
	key, _ := SplitID(id)
	return key
}

// NameOf returns the name portion of an id.
func NameOf(id string) string {
	_, name := SplitID(id)
	return name
}
