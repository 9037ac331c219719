package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonlabs/prism/pkg/ast"
	"github.com/halcyonlabs/prism/pkg/ast/treesitter"
	"github.com/halcyonlabs/prism/pkg/extract"
	"github.com/halcyonlabs/prism/pkg/models"
	"github.com/halcyonlabs/prism/pkg/source"
)

// extractSource parses one in-memory file and runs both passes over it.
func extractSource(t *testing.T, path, src string, opts ...extract.Option) *models.FileSymbols {
	t.Helper()

	prog, err := treesitter.NewProgram(
		[]string{path},
		source.NewMap(map[string][]byte{path: []byte(src)}),
		ast.CompilerOptions{},
	)
	require.NoError(t, err)
	t.Cleanup(prog.Close)
	require.Len(t, prog.Files(), 1)

	ext := extract.New(prog.Checker(), opts...)
	fs, err := ext.ExtractFile(prog.Files()[0])
	require.NoError(t, err)
	return fs
}

func deps(t *testing.T, fs *models.FileSymbols, name string) map[string]struct{} {
	t.Helper()
	sym, ok := fs.Lookup(name)
	require.True(t, ok, "symbol %s not extracted", name)
	return sym.Dependencies
}

func TestPropertyAccessIsNotADependency(t *testing.T) {
	src := `interface P { x: number; y: number }
const p: P = { x: 1, y: 2 };
export function getX(q: P) { return q.x; }
`
	fs := extractSource(t, "geom.ts", src)

	got := deps(t, fs, "getX")
	assert.Empty(t, got, "getX should have no dependencies")
	for id := range got {
		assert.NotEqual(t, "x", models.NameOf(id))
	}
}

func TestIndependentSymbolIsADependency(t *testing.T) {
	src := `export function helper() { return 'h'; }
export function main() { return helper(); }
`
	fs := extractSource(t, "app.ts", src)

	got := deps(t, fs, "main")
	require.Len(t, got, 1)
	assert.Contains(t, got, "app:helper")
}

func TestArrowFunctionVariable(t *testing.T) {
	src := `export const add = (x, y) => x + y;
export const calc = (x, y) => add(x, y);
`
	fs := extractSource(t, "math.ts", src)

	got := deps(t, fs, "calc")
	require.Len(t, got, 1)
	assert.Contains(t, got, "math:add")

	add, ok := fs.Lookup("add")
	require.True(t, ok)
	assert.Equal(t, models.KindConst, add.Kind)
	assert.Equal(t, models.KindFunction, add.ReportedKind())
	assert.True(t, add.IsFunctionLiteral)
}

func TestShadowingSuppressesDependency(t *testing.T) {
	src := `export const helper = () => 1;
export function compute() {
  const helper = () => 2;
  return helper();
}
`
	fs := extractSource(t, "shadow.ts", src)

	got := deps(t, fs, "compute")
	for id := range got {
		assert.NotEqual(t, "helper", models.NameOf(id), "shadowed name leaked into dependencies")
	}
}

func TestParameterReferenceSkipped(t *testing.T) {
	src := `export function echo(value) { return value; }
`
	fs := extractSource(t, "echo.ts", src)
	assert.Empty(t, deps(t, fs, "echo"))
}

func TestSelfReferenceSkipped(t *testing.T) {
	src := `export function factorial(n: number): number {
  if (n <= 1) { return 1; }
  return n * factorial(n - 1);
}
`
	fs := extractSource(t, "fact.ts", src)
	assert.Empty(t, deps(t, fs, "factorial"))
}

func TestImportTableShapes(t *testing.T) {
	src := `import Default from './lib/core';
import { a, b as c } from './lib/core';
import * as ns from 'lodash';
`
	fs := extractSource(t, "src/app.ts", src)

	require.Equal(t, 4, fs.Imports.Len())

	def, ok := fs.Imports.Get("Default")
	require.True(t, ok)
	assert.Equal(t, models.ImportDefault, def.Style)
	assert.Equal(t, "default", def.OriginalName)
	assert.Equal(t, "core", def.ModuleKey)

	plain, ok := fs.Imports.Get("a")
	require.True(t, ok)
	assert.Equal(t, models.ImportNamed, plain.Style)
	assert.Equal(t, "a", plain.OriginalName)

	aliased, ok := fs.Imports.Get("c")
	require.True(t, ok)
	assert.Equal(t, models.ImportNamed, aliased.Style)
	assert.Equal(t, "b", aliased.OriginalName)

	star, ok := fs.Imports.Get("ns")
	require.True(t, ok)
	assert.Equal(t, models.ImportNamespace, star.Style)
	assert.Equal(t, "*", star.OriginalName)
	assert.Equal(t, "lodash", star.ModuleKey)
}

func TestImportedReferenceUsesModuleKey(t *testing.T) {
	src := `import { validateRole } from './utils';
export function check(role: string) { return validateRole(role); }
`
	fs := extractSource(t, "src/api.ts", src)

	got := deps(t, fs, "check")
	require.Len(t, got, 1)
	assert.Contains(t, got, "utils:validateRole")
}

func TestThirdPartyReferencesRejectedByDefault(t *testing.T) {
	src := `import { merge } from 'lodash';
export function combine(a, b) { return merge(a, b); }
`
	fs := extractSource(t, "combine.ts", src)
	assert.Empty(t, deps(t, fs, "combine"))

	fs = extractSource(t, "combine.ts", src, extract.WithOptions(extract.Options{IncludeNodeModules: true}))
	assert.Contains(t, deps(t, fs, "combine"), "lodash:merge")
}

func TestTypeOnlyReferencePolicy(t *testing.T) {
	src := `export interface User { id: number }
export function load(id: number): User { return { id }; }
`
	fs := extractSource(t, "users.ts", src)
	assert.Empty(t, deps(t, fs, "load"), "type-position reference should not be a dependency")

	followed := extractSource(t, "users.ts", src, extract.WithOptions(extract.Options{FollowTypeOnlyImports: true}))
	assert.Contains(t, deps(t, followed, "load"), "users:User")
}

func TestValuePositionClassReferenceEmitted(t *testing.T) {
	src := `export class Store { static empty() { return new Store(); } }
export function makeStore() { return new Store(); }
`
	fs := extractSource(t, "store.ts", src)
	assert.Contains(t, deps(t, fs, "makeStore"), "store:Store")
}

func TestExportedPartition(t *testing.T) {
	src := `export const visible = 1;
const hidden = 2;
export function api() { return hidden; }
`
	fs := extractSource(t, "mod.ts", src)

	_, inExports := fs.Exports.Get("visible")
	assert.True(t, inExports)
	_, inInternal := fs.Internal.Get("hidden")
	assert.True(t, inInternal)

	assert.Contains(t, deps(t, fs, "api"), "mod:hidden")
}

func TestKindClassification(t *testing.T) {
	src := `export type Alias = string;
export interface Shape { area(): number }
export class Circle { }
export enum Color { Red, Green }
export function draw() { }
export let counter = 0;
var legacy = true;
`
	fs := extractSource(t, "kinds.ts", src)

	want := map[string]models.SymbolKind{
		"Alias":   models.KindTypeAlias,
		"Shape":   models.KindInterface,
		"Circle":  models.KindClass,
		"Color":   models.KindEnum,
		"draw":    models.KindFunction,
		"counter": models.KindLet,
		"legacy":  models.KindVar,
	}
	for name, kind := range want {
		sym, ok := fs.Lookup(name)
		require.True(t, ok, "missing %s", name)
		assert.Equal(t, kind, sym.Kind, "kind of %s", name)
	}
}

func TestReExportRecordedWithoutSymbol(t *testing.T) {
	src := `export { helper } from './utils';
export const local = 1;
`
	fs := extractSource(t, "barrel.ts", src)

	assert.Equal(t, []string{"./utils"}, fs.ReExports)
	_, ok := fs.Lookup("helper")
	assert.False(t, ok, "re-export must not produce a symbol")
}

func TestNormalizeModule(t *testing.T) {
	cases := []struct {
		from, spec, want string
	}{
		{"src/api.ts", "./types", "types"},
		{"src/deep/api.ts", "../util/helpers", "helpers"},
		{"src/api.ts", "./types.ts", "types"},
		{"src/api.ts", "lodash", "lodash"},
		{"src/api.ts", "@scope/pkg", "@scope/pkg"},
		{"src/api.ts", "node:fs", "node_fs"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, extract.NormalizeModule(tc.from, tc.spec), "%s from %s", tc.spec, tc.from)
	}
}

func TestFileKeyFromPath(t *testing.T) {
	assert.Equal(t, "api", extract.FileKeyFromPath("src/api.ts"))
	assert.Equal(t, "component", extract.FileKeyFromPath("ui/component.tsx"))
	assert.Equal(t, "types", extract.FileKeyFromPath("defs/types.d.ts"))
}
