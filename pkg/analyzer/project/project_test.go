package project_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonlabs/prism/pkg/analyzer/project"
	"github.com/halcyonlabs/prism/pkg/ast"
	"github.com/halcyonlabs/prism/pkg/ast/treesitter"
	"github.com/halcyonlabs/prism/pkg/report"
	"github.com/halcyonlabs/prism/pkg/source"
)

// analyzeSources builds a program from in-memory files and runs the
// project analyzer over it.
func analyzeSources(t *testing.T, files map[string]string, opts ...project.Option) (*project.Result, ast.Program) {
	t.Helper()

	contents := make(map[string][]byte, len(files))
	var roots []string
	for path, src := range files {
		contents[path] = []byte(src)
	}
	// Stable root order regardless of map iteration.
	for _, path := range sortedPaths(files) {
		roots = append(roots, path)
	}

	prog, err := treesitter.NewProgram(roots, source.NewMap(contents), ast.CompilerOptions{})
	require.NoError(t, err)
	t.Cleanup(prog.Close)

	result, err := project.New(opts...).Analyze(context.Background(), prog)
	require.NoError(t, err)
	return result, prog
}

func sortedPaths(files map[string]string) []string {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	for i := 1; i < len(paths); i++ {
		for j := i; j > 0 && paths[j] < paths[j-1]; j-- {
			paths[j], paths[j-1] = paths[j-1], paths[j]
		}
	}
	return paths
}

var treeShakeProject = map[string]string{
	"types.ts": `export interface User { id: number; name: string; role: UserRole }
export type UserRole = 'admin' | 'user';
export interface ApiResponse { user: User; ok: boolean }
`,
	"utils.ts": `import { UserRole } from './types';
export function validateRole(role: UserRole): boolean { return role === 'admin' || role === 'user'; }
export function formatUserName(name: string): string { return name.trim(); }
`,
	"api.ts": `import { User, ApiResponse } from './types';
import { validateRole, formatUserName } from './utils';
export function fetchUser(id: number): ApiResponse {
  const user: User = { id, name: formatUserName('guest'), role: 'user' };
  return { user, ok: validateRole(user.role) };
}
export function processUser(res: ApiResponse): string {
  return formatUserName(res.user.name);
}
`,
	"index.ts": `import { fetchUser, processUser } from './api';
export function main() { return processUser(fetchUser(1)); }
`,
}

func TestTreeShakeAcrossFiles(t *testing.T) {
	result, _ := analyzeSources(t, treeShakeProject)

	closure := result.Table.ForwardClosure([]string{"index:main"})

	for _, id := range []string{
		"index:main",
		"api:fetchUser",
		"api:processUser",
		"utils:validateRole",
		"utils:formatUserName",
		"types:User",
		"types:ApiResponse",
	} {
		assert.Contains(t, closure, id)
	}
	assert.GreaterOrEqual(t, len(closure), 7)
}

func TestStatistics(t *testing.T) {
	result, _ := analyzeSources(t, treeShakeProject)

	stats := result.Statistics
	assert.Equal(t, 4, stats.TotalFiles)
	assert.Equal(t, 8, stats.TotalSymbols)
	assert.Equal(t, 7, stats.TotalImports)
	assert.Greater(t, stats.TotalEdges, 0)
	assert.Equal(t, 2, stats.SymbolsPerFile["utils"])
}

func TestCycleDetectionAcrossFiles(t *testing.T) {
	result, _ := analyzeSources(t, map[string]string{
		"a.ts": `import { b } from './b';
export function a() { return b(); }
`,
		"b.ts": `import { a } from './a';
export function b() { return a(); }
`,
	})

	cycles, err := report.FindCircularDependencies(context.Background(), result.Table)
	require.NoError(t, err)
	require.NotEmpty(t, cycles)

	found := false
	for _, cycle := range cycles {
		verts := map[string]bool{}
		for _, v := range cycle[:len(cycle)-1] {
			verts[v] = true
		}
		if verts["a:a"] && verts["b:b"] && len(verts) == 2 {
			found = true
		}
	}
	assert.True(t, found, "expected cycle over {a:a, b:b}, got %v", cycles)
}

func TestDependentsPopulated(t *testing.T) {
	result, _ := analyzeSources(t, treeShakeProject)

	sym, ok := result.Table.Get("utils:formatUserName")
	require.True(t, ok)
	assert.Contains(t, sym.Dependents, "api:fetchUser")
	assert.Contains(t, sym.Dependents, "api:processUser")
}

func TestStrictModeFailsOnDiagnostics(t *testing.T) {
	prog, err := treesitter.NewProgram(
		[]string{"ok.ts", "gone.ts"},
		source.NewMap(map[string][]byte{"ok.ts": []byte("export const x = 1;\n")}),
		ast.CompilerOptions{},
	)
	require.NoError(t, err)
	t.Cleanup(prog.Close)

	_, err = project.New(project.WithStrict()).Analyze(context.Background(), prog)
	var diagErr *project.HasDiagnosticsError
	require.ErrorAs(t, err, &diagErr)

	// Without strict mode the file is dropped and analysis proceeds.
	result, err := project.New().Analyze(context.Background(), prog)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Diagnostics)
	_, ok := result.Table.Get("ok:x")
	assert.True(t, ok)
}

func TestCancellation(t *testing.T) {
	prog, err := treesitter.NewProgram(
		[]string{"a.ts"},
		source.NewMap(map[string][]byte{"a.ts": []byte("export const x = 1;\n")}),
		ast.CompilerOptions{},
	)
	require.NoError(t, err)
	t.Cleanup(prog.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = project.New().Analyze(ctx, prog)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReanalyzeRefreshesFile(t *testing.T) {
	result, prog := analyzeSources(t, treeShakeProject)

	before, ok := result.Table.Get("index:main")
	require.True(t, ok)
	require.NotEmpty(t, before.Dependencies)

	// Re-extract index.ts; the table must accept the reinsert without a
	// duplicate-id failure and stay edge-consistent.
	var indexFile ast.File
	for _, f := range prog.Files() {
		if f.Key() == "index" {
			indexFile = f
		}
	}
	require.NotNil(t, indexFile)

	err := project.New().Reanalyze(result, prog.Checker(), indexFile)
	require.NoError(t, err)

	after, ok := result.Table.Get("index:main")
	require.True(t, ok)
	assert.Equal(t, before.Dependencies, after.Dependencies)
}
