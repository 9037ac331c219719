package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/halcyonlabs/prism/pkg/config"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("export const x = 1;\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScanDirFindsSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.ts"))
	writeFile(t, filepath.Join(dir, "ui", "app.tsx"))
	writeFile(t, filepath.Join(dir, "lib.mjs"))
	writeFile(t, filepath.Join(dir, "README.md"))

	s := NewScanner(config.DefaultConfig())
	files, err := s.ScanDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 3 {
		t.Fatalf("found %d files, want 3: %v", len(files), files)
	}
}

func TestScanDirSkipsExcludedDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src.ts"))
	writeFile(t, filepath.Join(dir, "node_modules", "dep", "index.ts"))
	writeFile(t, filepath.Join(dir, "dist", "bundle.js"))

	s := NewScanner(config.DefaultConfig())
	files, err := s.ScanDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 1 {
		t.Fatalf("found %d files, want 1: %v", len(files), files)
	}
}

func TestScanDirHonorsPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.ts"))
	writeFile(t, filepath.Join(dir, "app.test.ts"))

	s := NewScanner(config.DefaultConfig())
	files, err := s.ScanDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 1 {
		t.Fatalf("found %d files, want 1: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "app.ts" {
		t.Errorf("kept %s", files[0])
	}
}

func TestScanSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "one.ts")
	writeFile(t, path)

	s := NewScanner(nil)
	files, err := s.ScanDir(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != path {
		t.Errorf("files = %v", files)
	}
}
