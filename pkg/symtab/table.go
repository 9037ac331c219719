package symtab

import (
	"sort"
	"strings"

	"github.com/halcyonlabs/prism/pkg/models"
)

// Table is the project symbol table: a flat id-keyed index plus forward
// and reverse adjacency over fully qualified ids.
type Table struct {
	fileOrder []string
	files     map[string]*models.FileSymbols
	global    map[string]*models.Symbol
	forward   map[string]map[string]struct{}
	reverse   map[string]map[string]struct{}

	// Dense id arena for bitmap-backed traversals.
	idIndex map[string]uint32
	ids     []string
}

// New creates an empty table.
func New() *Table {
	return &Table{
		files:   make(map[string]*models.FileSymbols),
		global:  make(map[string]*models.Symbol),
		forward: make(map[string]map[string]struct{}),
		reverse: make(map[string]map[string]struct{}),
		idIndex: make(map[string]uint32),
	}
}

// intern maps an id to its dense arena index, assigning one on first use.
func (t *Table) intern(id string) uint32 {
	if idx, ok := t.idIndex[id]; ok {
		return idx
	}
	idx := uint32(len(t.ids))
	t.idIndex[id] = idx
	t.ids = append(t.ids, id)
	return idx
}

// InsertFile registers a file's symbols and wires their edges. It fails
// with DuplicateSymbolError when an id already exists and with
// InvalidFileKeyError when the file key would break the id grammar;
// callers remove the prior file before reinsertion.
func (t *Table) InsertFile(fs *models.FileSymbols) error {
	if strings.Contains(fs.FileKey, ":") {
		return &InvalidFileKeyError{FileKey: fs.FileKey}
	}

	var err error
	fs.EachSymbol(func(sym *models.Symbol) {
		if err != nil {
			return
		}
		if _, exists := t.global[sym.ID]; exists {
			err = &DuplicateSymbolError{ID: sym.ID}
		}
	})
	if err != nil {
		return err
	}

	if _, seen := t.files[fs.FileKey]; !seen {
		t.fileOrder = append(t.fileOrder, fs.FileKey)
	}
	t.files[fs.FileKey] = fs

	fs.EachSymbol(func(sym *models.Symbol) {
		t.global[sym.ID] = sym
		t.intern(sym.ID)
		for dep := range sym.Dependencies {
			if dep == sym.ID {
				continue
			}
			t.addEdge(sym.ID, dep)
		}
	})
	return nil
}

func (t *Table) addEdge(from, to string) {
	if t.forward[from] == nil {
		t.forward[from] = make(map[string]struct{})
	}
	t.forward[from][to] = struct{}{}
	if t.reverse[to] == nil {
		t.reverse[to] = make(map[string]struct{})
	}
	t.reverse[to][from] = struct{}{}
	t.intern(to)
}

// RemoveFile deletes every symbol the file owns together with all edges
// incident to them. The refresh path for one file is RemoveFile followed
// by InsertFile; the table is never left half-updated in between.
func (t *Table) RemoveFile(fileKey string) {
	fs, ok := t.files[fileKey]
	if !ok {
		return
	}

	fs.EachSymbol(func(sym *models.Symbol) {
		id := sym.ID
		for dependent := range t.reverse[id] {
			delete(t.forward[dependent], id)
			if owner, ok := t.global[dependent]; ok {
				delete(owner.Dependencies, id)
			}
		}
		for dep := range t.forward[id] {
			delete(t.reverse[dep], id)
			if target, ok := t.global[dep]; ok {
				delete(target.Dependents, id)
			}
		}
		delete(t.forward, id)
		delete(t.reverse, id)
		delete(t.global, id)
	})

	delete(t.files, fileKey)
	for i, key := range t.fileOrder {
		if key == fileKey {
			t.fileOrder = append(t.fileOrder[:i], t.fileOrder[i+1:]...)
			break
		}
	}
}

// Get returns the symbol with the given id.
func (t *Table) Get(id string) (*models.Symbol, bool) {
	sym, ok := t.global[id]
	return sym, ok
}

// File returns the record for fileKey.
func (t *Table) File(fileKey string) (*models.FileSymbols, bool) {
	fs, ok := t.files[fileKey]
	return fs, ok
}

// Files returns every file record in insertion order.
func (t *Table) Files() []*models.FileSymbols {
	out := make([]*models.FileSymbols, 0, len(t.fileOrder))
	for _, key := range t.fileOrder {
		out = append(out, t.files[key])
	}
	return out
}

// AllIDs returns every symbol id in sorted order.
func (t *Table) AllIDs() []string {
	out := make([]string, 0, len(t.global))
	for id := range t.global {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// AllSymbols returns every symbol in sorted id order.
func (t *Table) AllSymbols() []*models.Symbol {
	ids := t.AllIDs()
	out := make([]*models.Symbol, len(ids))
	for i, id := range ids {
		out[i] = t.global[id]
	}
	return out
}

// SymbolCount returns the number of stored symbols.
func (t *Table) SymbolCount() int {
	return len(t.global)
}

// EdgeCount returns the number of forward edges.
func (t *Table) EdgeCount() int {
	n := 0
	for _, deps := range t.forward {
		n += len(deps)
	}
	return n
}

// Dependencies returns the sorted forward-edge targets of id.
func (t *Table) Dependencies(id string) []string {
	return sortedSet(t.forward[id])
}

// Dependents returns the sorted reverse-edge sources of id.
func (t *Table) Dependents(id string) []string {
	return sortedSet(t.reverse[id])
}

// PopulateDependents fills each stored symbol's Dependents set from the
// reverse adjacency. A convenience view; the table itself is already
// consistent.
func (t *Table) PopulateDependents() {
	for id, sources := range t.reverse {
		sym, ok := t.global[id]
		if !ok {
			continue
		}
		for from := range sources {
			if from != id {
				sym.Dependents[from] = struct{}{}
			}
		}
	}
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
