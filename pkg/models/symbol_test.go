package models

import (
	"reflect"
	"testing"
)

func TestMakeAndSplitID(t *testing.T) {
	id := MakeID("utils", "formatUserName")
	if id != "utils:formatUserName" {
		t.Fatalf("MakeID = %q", id)
	}

	key, name := SplitID(id)
	if key != "utils" || name != "formatUserName" {
		t.Errorf("SplitID = (%q, %q)", key, name)
	}
}

func TestSplitIDFirstColonWins(t *testing.T) {
	// File keys never contain ':', so everything after the first colon is
	// the name even if the name itself carries one.
	key, name := SplitID("mod:weird:name")
	if key != "mod" {
		t.Errorf("key = %q, want mod", key)
	}
	if name != "weird:name" {
		t.Errorf("name = %q, want weird:name", name)
	}
}

func TestReportedKind(t *testing.T) {
	sym := NewSymbol("m", "add", KindConst)
	if sym.ReportedKind() != KindConst {
		t.Errorf("plain const reported as %s", sym.ReportedKind())
	}

	sym.IsFunctionLiteral = true
	if sym.ReportedKind() != KindFunction {
		t.Errorf("function-literal const reported as %s, want function", sym.ReportedKind())
	}
	if sym.Kind != KindConst {
		t.Errorf("storage kind changed to %s", sym.Kind)
	}
}

func TestAddDependencyIgnoresSelf(t *testing.T) {
	sym := NewSymbol("m", "f", KindFunction)
	sym.AddDependency(sym.ID)
	sym.AddDependency("")
	if len(sym.Dependencies) != 0 {
		t.Errorf("dependencies = %v, want empty", sym.Dependencies)
	}

	sym.AddDependency("m:g")
	sym.AddDependency("m:g")
	if len(sym.Dependencies) != 1 {
		t.Errorf("duplicate dependency not idempotent: %v", sym.Dependencies)
	}
}

func TestSymbolMapInsertionOrder(t *testing.T) {
	m := NewSymbolMap()
	for _, name := range []string{"zeta", "alpha", "beta"} {
		m.Set(name, NewSymbol("f", name, KindFunction))
	}

	if got := m.Names(); !reflect.DeepEqual(got, []string{"zeta", "alpha", "beta"}) {
		t.Errorf("names = %v", got)
	}

	var visited []string
	m.Each(func(name string, _ *Symbol) {
		visited = append(visited, name)
	})
	if !reflect.DeepEqual(visited, []string{"zeta", "alpha", "beta"}) {
		t.Errorf("Each order = %v", visited)
	}
}

func TestFileSymbolsPartition(t *testing.T) {
	fs := NewFileSymbols("api", "src/api.ts")

	pub := NewSymbol("api", "fetchUser", KindFunction)
	pub.IsExported = true
	fs.Add(pub)

	priv := NewSymbol("api", "buildQuery", KindFunction)
	fs.Add(priv)

	if fs.Exports.Len() != 1 || fs.Internal.Len() != 1 {
		t.Fatalf("partition = exports %d / internal %d", fs.Exports.Len(), fs.Internal.Len())
	}
	if _, ok := fs.Lookup("buildQuery"); !ok {
		t.Error("Lookup missed internal symbol")
	}
	if fs.SymbolCount() != 2 {
		t.Errorf("SymbolCount = %d", fs.SymbolCount())
	}
}

func TestShakeStatistics(t *testing.T) {
	stats := NewShakeStatistics(3, 2)
	if stats.UnusedSymbols != 1 {
		t.Errorf("unused = %d", stats.UnusedSymbols)
	}
	if stats.RemovalRate != 33.33 {
		t.Errorf("removal rate = %v, want 33.33", stats.RemovalRate)
	}

	empty := NewShakeStatistics(0, 0)
	if empty.RemovalRate != 0 {
		t.Errorf("empty removal rate = %v, want 0", empty.RemovalRate)
	}
}
