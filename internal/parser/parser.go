// Package parser wraps tree-sitter behind a small adapter interface so the
// extractor depends only on traversable syntax nodes, not on a concrete
// parser. Adapters for other language families can be substituted.
package parser

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	cserrors "github.com/standardbeagle/codescope/internal/errors"
	"github.com/standardbeagle/codescope/internal/types"
)

// SyntaxAdapter turns source text into a syntax tree or a typed parse
// failure. Implementations must be safe for concurrent use; extraction runs
// one goroutine per file.
type SyntaxAdapter interface {
	// Supports reports whether the adapter can parse the given language tag.
	Supports(language string) bool

	// Parse parses content for the given language hint. The returned tree
	// must be Closed by the caller. A tree containing syntax errors is
	// reported as a *errors.ParseError.
	Parse(path string, content []byte, language string) (*sitter.Tree, error)
}

// TreeSitterAdapter parses the JavaScript/TypeScript family with the
// official tree-sitter grammars. Language objects are shared; a fresh
// tree-sitter parser is created per call since parsers are not safe for
// concurrent use.
type TreeSitterAdapter struct {
	languages map[string]*sitter.Language
}

// NewTreeSitterAdapter creates an adapter for javascript, typescript and
// the tsx dialect.
func NewTreeSitterAdapter() *TreeSitterAdapter {
	return &TreeSitterAdapter{
		languages: map[string]*sitter.Language{
			types.LangJavaScript: sitter.NewLanguage(tree_sitter_javascript.Language()),
			types.LangTypeScript: sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
			"tsx":                sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()),
		},
	}
}

// Supports reports whether the language tag maps to a loaded grammar.
func (a *TreeSitterAdapter) Supports(language string) bool {
	_, ok := a.languages[language]
	return ok
}

// Parse parses content and validates that the resulting tree is usable.
func (a *TreeSitterAdapter) Parse(path string, content []byte, language string) (*sitter.Tree, error) {
	lang, ok := a.languages[language]
	if !ok {
		return nil, cserrors.NewParseError(path, language, fmt.Errorf("unsupported language"))
	}

	p := sitter.NewParser()
	defer p.Close()
	if err := p.SetLanguage(lang); err != nil {
		return nil, cserrors.NewParseError(path, language, fmt.Errorf("failed to set language: %w", err))
	}

	tree := p.Parse(content, nil)
	if tree == nil {
		return nil, cserrors.NewParseError(path, language, fmt.Errorf("parser returned no tree"))
	}

	root := tree.RootNode()
	if root == nil || root.HasError() {
		tree.Close()
		return nil, cserrors.NewParseError(path, language, fmt.Errorf("source contains syntax errors"))
	}

	return tree, nil
}

// LanguageForExtension maps a file extension to the language tag the
// adapter understands. Unknown extensions map to LangUnknown and bypass
// parsing entirely.
func LanguageForExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return types.LangJavaScript
	case ".ts", ".mts", ".cts":
		return types.LangTypeScript
	case ".tsx":
		return "tsx"
	default:
		return types.LangUnknown
	}
}
