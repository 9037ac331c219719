package analysis

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scannerSvc "github.com/halcyonlabs/prism/internal/service/scanner"
	"github.com/halcyonlabs/prism/pkg/config"
)

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"utils.ts": "export function helper() { return 'h'; }\nexport function unused() { return 'u'; }\n",
		"index.ts": "import { helper } from './utils';\nexport function main() { return helper(); }\n",
	}
	for name, src := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0644))
	}
	return dir
}

func testConfig(t *testing.T) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Cache.Dir = filepath.Join(t.TempDir(), "cache")
	return cfg
}

func TestShakeEndToEnd(t *testing.T) {
	dir := writeProject(t)
	cfg := testConfig(t)

	scan, err := scannerSvc.New(scannerSvc.WithConfig(cfg)).ScanPaths([]string{dir})
	require.NoError(t, err)
	require.Len(t, scan.Files, 2)

	svc := New(WithConfig(cfg))
	result, session, err := svc.Shake(context.Background(), scan.Files, []string{"index:main"}, Options{})
	require.NoError(t, err)
	defer session.Close()

	assert.Contains(t, result.Included, "index:main")
	assert.Contains(t, result.Included, "utils:helper")
	assert.Equal(t, []string{"utils:unused"}, result.Unused)
}

func TestCyclesEndToEnd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ts"),
		[]byte("import { b } from './b';\nexport function a() { return b(); }\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.ts"),
		[]byte("import { a } from './a';\nexport function b() { return a(); }\n"), 0644))

	cfg := testConfig(t)
	scan, err := scannerSvc.New(scannerSvc.WithConfig(cfg)).ScanPaths([]string{dir})
	require.NoError(t, err)

	cycles, summary, err := New(WithConfig(cfg)).Cycles(context.Background(), scan.Files, Options{})
	require.NoError(t, err)
	assert.NotEmpty(t, cycles)
	assert.True(t, summary.IsCyclic)
}

func TestImpactEndToEnd(t *testing.T) {
	dir := writeProject(t)
	cfg := testConfig(t)

	scan, err := scannerSvc.New(scannerSvc.WithConfig(cfg)).ScanPaths([]string{dir})
	require.NoError(t, err)

	impact, err := New(WithConfig(cfg)).Impact(context.Background(), scan.Files, "utils:helper", Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"index:main"}, impact.Direct)
	assert.Equal(t, 1, impact.Count)
}

func TestFingerprintStability(t *testing.T) {
	dir := writeProject(t)
	cfg := testConfig(t)
	svc := New(WithConfig(cfg))

	scan, err := scannerSvc.New(scannerSvc.WithConfig(cfg)).ScanPaths([]string{dir})
	require.NoError(t, err)

	a := svc.Fingerprint(scan.Files, "shake", "index:main")
	b := svc.Fingerprint(scan.Files, "shake", "index:main")
	assert.Equal(t, a, b)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "utils.ts"), []byte("export const changed = 1;\n"), 0644))
	c := svc.Fingerprint(scan.Files, "shake", "index:main")
	assert.NotEqual(t, a, c)
}
