package symtab

import (
	"errors"
	"testing"

	"github.com/halcyonlabs/prism/pkg/models"
)

// buildFile constructs a FileSymbols with the given symbols, each entry
// being name -> dependency ids.
func buildFile(fileKey string, symbols map[string][]string, exported map[string]bool) *models.FileSymbols {
	fs := models.NewFileSymbols(fileKey, fileKey+".ts")
	for name, deps := range symbols {
		sym := models.NewSymbol(fileKey, name, models.KindFunction)
		sym.IsExported = exported[name]
		for _, dep := range deps {
			sym.AddDependency(dep)
		}
		fs.Add(sym)
	}
	return fs
}

func TestInsertFileIdentity(t *testing.T) {
	table := New()
	fs := buildFile("utils", map[string][]string{
		"helper": nil,
		"main":   {"utils:helper"},
	}, map[string]bool{"helper": true, "main": true})

	if err := table.InsertFile(fs); err != nil {
		t.Fatalf("InsertFile failed: %v", err)
	}

	for _, name := range []string{"helper", "main"} {
		sym, ok := table.Get("utils:" + name)
		if !ok {
			t.Fatalf("Get(utils:%s) not found", name)
		}
		if sym.ID != "utils:"+name {
			t.Errorf("id = %q, want utils:%s", sym.ID, name)
		}
	}
}

func TestInsertFileDuplicate(t *testing.T) {
	table := New()
	fs := buildFile("a", map[string][]string{"x": nil}, nil)
	if err := table.InsertFile(fs); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	dup := buildFile("a", map[string][]string{"x": nil}, nil)
	err := table.InsertFile(dup)
	var dupErr *DuplicateSymbolError
	if !errors.As(err, &dupErr) {
		t.Fatalf("second insert error = %v, want DuplicateSymbolError", err)
	}
	if dupErr.ID != "a:x" {
		t.Errorf("duplicate id = %q, want a:x", dupErr.ID)
	}
}

func TestInsertFileRejectsColonKey(t *testing.T) {
	table := New()
	fs := models.NewFileSymbols("bad:key", "bad.ts")
	err := table.InsertFile(fs)
	var keyErr *InvalidFileKeyError
	if !errors.As(err, &keyErr) {
		t.Fatalf("error = %v, want InvalidFileKeyError", err)
	}
}

func TestEdgeConsistency(t *testing.T) {
	table := New()
	fs := buildFile("m", map[string][]string{
		"a": {"m:b", "m:c"},
		"b": {"m:c"},
		"c": nil,
	}, nil)
	if err := table.InsertFile(fs); err != nil {
		t.Fatalf("InsertFile failed: %v", err)
	}
	table.PopulateDependents()

	// b in forward[a] iff a in reverse[b] iff b in deps(a) iff a in dependents(b)
	for _, pair := range [][2]string{{"m:a", "m:b"}, {"m:a", "m:c"}, {"m:b", "m:c"}} {
		from, to := pair[0], pair[1]
		if !contains(table.Dependencies(from), to) {
			t.Errorf("Dependencies(%s) missing %s", from, to)
		}
		if !contains(table.Dependents(to), from) {
			t.Errorf("Dependents(%s) missing %s", to, from)
		}
		sym, _ := table.Get(from)
		if _, ok := sym.Dependencies[to]; !ok {
			t.Errorf("symbol(%s).Dependencies missing %s", from, to)
		}
		target, _ := table.Get(to)
		if _, ok := target.Dependents[from]; !ok {
			t.Errorf("symbol(%s).Dependents missing %s", to, from)
		}
	}
}

func TestNoSelfLoops(t *testing.T) {
	table := New()
	fs := models.NewFileSymbols("m", "m.ts")
	sym := models.NewSymbol("m", "recursive", models.KindFunction)
	sym.AddDependency("m:recursive") // ignored by AddDependency
	sym.Dependencies["m:recursive"] = struct{}{}
	fs.Add(sym)
	if err := table.InsertFile(fs); err != nil {
		t.Fatalf("InsertFile failed: %v", err)
	}

	if contains(table.Dependencies("m:recursive"), "m:recursive") {
		t.Error("self-loop stored in forward edges")
	}
}

func TestRemoveFile(t *testing.T) {
	table := New()
	utils := buildFile("utils", map[string][]string{"helper": nil}, nil)
	app := buildFile("app", map[string][]string{"main": {"utils:helper"}}, nil)
	if err := table.InsertFile(utils); err != nil {
		t.Fatal(err)
	}
	if err := table.InsertFile(app); err != nil {
		t.Fatal(err)
	}
	table.PopulateDependents()

	table.RemoveFile("app")

	if _, ok := table.Get("app:main"); ok {
		t.Error("app:main still present after RemoveFile")
	}
	if contains(table.Dependents("utils:helper"), "app:main") {
		t.Error("reverse edge to removed symbol survived")
	}
	helper, _ := table.Get("utils:helper")
	if _, ok := helper.Dependents["app:main"]; ok {
		t.Error("symbol dependents not cleaned up")
	}

	// Reinsertion after removal must succeed.
	if err := table.InsertFile(buildFile("app", map[string][]string{"main": {"utils:helper"}}, nil)); err != nil {
		t.Fatalf("reinsert failed: %v", err)
	}
}

func TestFilesInsertionOrder(t *testing.T) {
	table := New()
	for _, key := range []string{"zeta", "alpha", "mid"} {
		if err := table.InsertFile(buildFile(key, map[string][]string{"x": nil}, nil)); err != nil {
			t.Fatal(err)
		}
	}

	files := table.Files()
	got := []string{files[0].FileKey, files[1].FileKey, files[2].FileKey}
	want := []string{"zeta", "alpha", "mid"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("file order = %v, want %v", got, want)
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
