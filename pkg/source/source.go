package source

import (
	"fmt"
	"os"
)

// ContentSource provides file content from a specific source.
type ContentSource interface {
	// Read returns the content of the file at path.
	Read(path string) ([]byte, error)
}

// FilesystemSource reads files from the local filesystem.
type FilesystemSource struct{}

// NewFilesystem creates a source that reads from the filesystem.
func NewFilesystem() *FilesystemSource {
	return &FilesystemSource{}
}

// Read implements ContentSource.
func (f *FilesystemSource) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// MapSource serves content from an in-memory map keyed by path. Tests and
// callers that already hold sources in memory use it.
type MapSource struct {
	files map[string][]byte
}

// NewMap creates a source over the given path-to-content map.
func NewMap(files map[string][]byte) *MapSource {
	return &MapSource{files: files}
}

// Read implements ContentSource.
func (m *MapSource) Read(path string) ([]byte, error) {
	content, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", path)
	}
	return content, nil
}
