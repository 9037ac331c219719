package models

import "sort"

// ImportStyle distinguishes the three ES import forms.
type ImportStyle string

const (
	ImportDefault   ImportStyle = "default"
	ImportNamed     ImportStyle = "named"
	ImportNamespace ImportStyle = "namespace"
)

// String returns the string representation.
func (s ImportStyle) String() string {
	return string(s)
}

// Import records one local name introduced by an import statement. Imports
// are not symbols; they translate a local identifier to the exporting
// module and its original name.
type Import struct {
	LocalName  string      `json:"local_name" toon:"local_name"`
	FromModule string      `json:"from_module" toon:"from_module"`
	ModuleKey  string      `json:"module_key" toon:"module_key"`
	Style      ImportStyle `json:"style" toon:"style"`
	// OriginalName is what the exporting module calls it: "default" for
	// default imports, "*" for namespace imports.
	OriginalName string `json:"original_name" toon:"original_name"`
}

// SymbolMap is a name-keyed symbol collection that preserves insertion
// order. Report outputs iterate it in the order symbols were added.
type SymbolMap struct {
	names  []string
	byName map[string]*Symbol
}

// NewSymbolMap creates an empty ordered symbol map.
func NewSymbolMap() *SymbolMap {
	return &SymbolMap{byName: make(map[string]*Symbol)}
}

// Set inserts or replaces a symbol under name.
func (m *SymbolMap) Set(name string, sym *Symbol) {
	if _, ok := m.byName[name]; !ok {
		m.names = append(m.names, name)
	}
	m.byName[name] = sym
}

// Get returns the symbol for name, if present.
func (m *SymbolMap) Get(name string) (*Symbol, bool) {
	sym, ok := m.byName[name]
	return sym, ok
}

// Names returns the names in insertion order.
func (m *SymbolMap) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Len returns the number of symbols.
func (m *SymbolMap) Len() int {
	return len(m.names)
}

// Each calls fn for every symbol in insertion order.
func (m *SymbolMap) Each(fn func(name string, sym *Symbol)) {
	for _, name := range m.names {
		fn(name, m.byName[name])
	}
}

// ImportMap is a local-name-keyed import collection preserving insertion order.
type ImportMap struct {
	names  []string
	byName map[string]Import
}

// NewImportMap creates an empty ordered import map.
func NewImportMap() *ImportMap {
	return &ImportMap{byName: make(map[string]Import)}
}

// Set inserts or replaces an import under its local name.
func (m *ImportMap) Set(imp Import) {
	if _, ok := m.byName[imp.LocalName]; !ok {
		m.names = append(m.names, imp.LocalName)
	}
	m.byName[imp.LocalName] = imp
}

// Get returns the import bound to localName, if present.
func (m *ImportMap) Get(localName string) (Import, bool) {
	imp, ok := m.byName[localName]
	return imp, ok
}

// Names returns the local names in insertion order.
func (m *ImportMap) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Len returns the number of imports.
func (m *ImportMap) Len() int {
	return len(m.names)
}

// FileSymbols groups one file's extraction result: exported and internal
// symbols plus the import translation table.
type FileSymbols struct {
	FileKey string     `json:"file_key" toon:"file_key"`
	Path    string     `json:"path" toon:"path"`
	Exports *SymbolMap `json:"-" toon:"-"`
	// Internal holds non-exported top-level symbols.
	Internal *SymbolMap `json:"-" toon:"-"`
	Imports  *ImportMap `json:"-" toon:"-"`
	// ReExports lists the module specifiers of `export ... from` statements.
	// They introduce no symbols of their own.
	ReExports []string `json:"re_exports,omitempty" toon:"re_exports,omitempty"`
}

// NewFileSymbols creates an empty record for fileKey.
func NewFileSymbols(fileKey, path string) *FileSymbols {
	return &FileSymbols{
		FileKey:  fileKey,
		Path:     path,
		Exports:  NewSymbolMap(),
		Internal: NewSymbolMap(),
		Imports:  NewImportMap(),
	}
}

// Add places sym into Exports or Internal based on its export flag.
func (f *FileSymbols) Add(sym *Symbol) {
	if sym.IsExported {
		f.Exports.Set(sym.Name, sym)
	} else {
		f.Internal.Set(sym.Name, sym)
	}
}

// Lookup finds a symbol by name in either map.
func (f *FileSymbols) Lookup(name string) (*Symbol, bool) {
	if sym, ok := f.Exports.Get(name); ok {
		return sym, true
	}
	return f.Internal.Get(name)
}

// EachSymbol visits exports then internal symbols, each in insertion order.
func (f *FileSymbols) EachSymbol(fn func(sym *Symbol)) {
	f.Exports.Each(func(_ string, sym *Symbol) { fn(sym) })
	f.Internal.Each(func(_ string, sym *Symbol) { fn(sym) })
}

// SymbolCount returns the total number of symbols the file owns.
func (f *FileSymbols) SymbolCount() int {
	return f.Exports.Len() + f.Internal.Len()
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
