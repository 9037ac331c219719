package treesitter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Language represents a supported source language.
type Language string

const (
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangJavaScript Language = "javascript"
	LangUnknown    Language = "unknown"
)

// Parser wraps tree-sitter for module-source parsing.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{parser: sitter.NewParser()}
}

// Parse parses source code with the language detected from path.
func (p *Parser) Parse(source []byte, path string) (*sitter.Tree, Language, error) {
	lang := DetectLanguage(path)
	tsLang, err := grammarFor(lang)
	if err != nil {
		return nil, lang, err
	}

	p.parser.SetLanguage(tsLang)
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, lang, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return tree, lang, nil
}

// Close releases parser resources.
func (p *Parser) Close() {
	p.parser.Close()
}

// grammarFor returns the tree-sitter grammar for a language.
func grammarFor(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangTypeScript:
		return typescript.GetLanguage(), nil
	case LangTSX:
		return tsx.GetLanguage(), nil
	case LangJavaScript:
		return javascript.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}

// DetectLanguage determines the language from a file path.
func DetectLanguage(path string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return LangTypeScript
	case ".tsx":
		return LangTSX
	case ".js", ".mjs", ".cjs", ".jsx":
		return LangJavaScript
	default:
		return LangUnknown
	}
}

// IsDeclarationFile reports whether path is an ambient declaration file.
func IsDeclarationFile(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	return strings.HasSuffix(base, ".d.ts") || strings.HasSuffix(base, ".d.mts") || strings.HasSuffix(base, ".d.cts")
}

// FileKey derives the symbol-id file key for a path: the basename without
// its source extension. Colons are never legal in a file key; they are
// escaped so ids stay parseable.
func FileKey(path string) string {
	base := filepath.Base(path)
	for _, suffix := range []string{".d.ts", ".d.mts", ".d.cts", ".tsx", ".ts", ".mts", ".cts", ".jsx", ".js", ".mjs", ".cjs"} {
		if strings.HasSuffix(base, suffix) {
			base = base[:len(base)-len(suffix)]
			break
		}
	}
	return strings.ReplaceAll(base, ":", "_")
}
