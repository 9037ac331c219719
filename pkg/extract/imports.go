package extract

import (
	"path"
	"strings"
)

// sourceSuffixes are stripped when deriving a file key, longest first.
var sourceSuffixes = []string{
	".d.ts", ".d.mts", ".d.cts",
	".tsx", ".mts", ".cts", ".mjs", ".cjs", ".jsx",
	".ts", ".js",
}

// FileKeyFromPath derives the symbol-id file key for a path: the basename
// without its source extension. Colons never appear in a file key.
func FileKeyFromPath(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	for _, suffix := range sourceSuffixes {
		if strings.HasSuffix(base, suffix) {
			base = base[:len(base)-len(suffix)]
			break
		}
	}
	return strings.ReplaceAll(base, ":", "_")
}

// NormalizeModule converts an import specifier to the file-key prefix used
// by cross-file dependency ids. Relative specifiers resolve against the
// importing file's directory and reduce to their final path component;
// absolute and bare specifiers pass through. This is the sole cross-file
// linkage mechanism, so two files with the same basename in different
// directories collide under it.
func NormalizeModule(fromPath, specifier string) string {
	if specifier == "" {
		return specifier
	}
	if strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") {
		dir := path.Dir(strings.ReplaceAll(fromPath, "\\", "/"))
		joined := path.Join(dir, specifier)
		return FileKeyFromPath(joined)
	}
	return strings.ReplaceAll(specifier, ":", "_")
}
