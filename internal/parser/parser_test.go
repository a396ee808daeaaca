package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cserrors "github.com/standardbeagle/codescope/internal/errors"
	"github.com/standardbeagle/codescope/internal/types"
)

func TestSupports(t *testing.T) {
	a := NewTreeSitterAdapter()

	assert.True(t, a.Supports(types.LangJavaScript))
	assert.True(t, a.Supports(types.LangTypeScript))
	assert.True(t, a.Supports("tsx"))
	assert.False(t, a.Supports(types.LangUnknown))
	assert.False(t, a.Supports("rust"))
}

func TestParse_ValidJavaScript(t *testing.T) {
	a := NewTreeSitterAdapter()

	tree, err := a.Parse("app.js", []byte(`function f() { return 1; }`), types.LangJavaScript)
	require.NoError(t, err)
	defer tree.Close()

	root := tree.RootNode()
	require.NotNil(t, root)
	assert.Equal(t, "program", root.Kind())
}

func TestParse_ValidTypeScript(t *testing.T) {
	a := NewTreeSitterAdapter()

	tree, err := a.Parse("app.ts", []byte(`const x: number = 1;`), types.LangTypeScript)
	require.NoError(t, err)
	defer tree.Close()
}

func TestParse_TSXDialect(t *testing.T) {
	a := NewTreeSitterAdapter()

	code := `export function App() { return <div>hello</div>; }`
	tree, err := a.Parse("app.tsx", []byte(code), "tsx")
	require.NoError(t, err)
	defer tree.Close()
}

func TestParse_SyntaxErrorIsTypedFailure(t *testing.T) {
	a := NewTreeSitterAdapter()

	_, err := a.Parse("broken.js", []byte(`function broken( {`), types.LangJavaScript)
	require.Error(t, err)

	var parseErr *cserrors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "broken.js", parseErr.FilePath)
	assert.Equal(t, types.LangJavaScript, parseErr.Language)
}

func TestParse_UnsupportedLanguage(t *testing.T) {
	a := NewTreeSitterAdapter()

	_, err := a.Parse("main.rs", []byte(`fn main() {}`), "rust")
	require.Error(t, err)

	var parseErr *cserrors.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestParse_ConcurrentUse(t *testing.T) {
	a := NewTreeSitterAdapter()

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			tree, err := a.Parse("app.js", []byte(`function f(a) { if (a) { return 1; } return 0; }`), types.LangJavaScript)
			if err == nil {
				tree.Close()
			}
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		assert.NoError(t, <-done)
	}
}

func TestLanguageForExtension(t *testing.T) {
	cases := map[string]string{
		".js":   types.LangJavaScript,
		".jsx":  types.LangJavaScript,
		".mjs":  types.LangJavaScript,
		".cjs":  types.LangJavaScript,
		".ts":   types.LangTypeScript,
		".mts":  types.LangTypeScript,
		".cts":  types.LangTypeScript,
		".tsx":  "tsx",
		".JS":   types.LangJavaScript,
		".go":   types.LangUnknown,
		".json": types.LangUnknown,
		"":      types.LangUnknown,
	}
	for ext, want := range cases {
		assert.Equal(t, want, LanguageForExtension(ext), "extension %q", ext)
	}
}
