package supplier

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/codescope/internal/config"
	"github.com/standardbeagle/codescope/internal/types"
)

// writeTree materializes a map of relative path -> content under dir.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func collectedPaths(t *testing.T, dir string, cfg *config.Config) []string {
	t.Helper()
	inputs, err := New(dir, cfg).Collect()
	require.NoError(t, err)

	paths := make([]string, len(inputs))
	for i, in := range inputs {
		paths[i] = in.Path
	}
	return paths
}

func TestCollect_WalksAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/b.js":        "export function b() {}",
		"src/a.js":        "export function a() {}",
		"src/nested/c.ts": "export const c = 1;",
	})

	paths := collectedPaths(t, dir, config.DefaultConfig())

	assert.Equal(t, []string{"src/a.js", "src/b.js", "src/nested/c.ts"}, paths)
	assert.True(t, sort.StringsAreSorted(paths))
}

func TestCollect_LanguageAndExtension(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"app.tsx":   "export const App = () => null;",
		"notes.txt": "plain text",
	})

	inputs, err := New(dir, config.DefaultConfig()).Collect()
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	byPath := map[string]string{}
	for _, in := range inputs {
		byPath[in.Path] = in.Language
	}
	assert.Equal(t, "tsx", byPath["app.tsx"])
	assert.Equal(t, types.LangUnknown, byPath["notes.txt"])
}

func TestCollect_ExcludesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/app.js":                 "export function app() {}",
		"node_modules/pkg/index.js":  "module.exports = {};",
		"dist/bundle.js":             "!function(){}();",
		".git/hooks/pre-commit":      "#!/bin/sh",
		"coverage/lcov-report/i.js":  "void 0;",
	})

	paths := collectedPaths(t, dir, config.DefaultConfig())

	assert.Equal(t, []string{"src/app.js"}, paths)
}

func TestCollect_IncludePatterns(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/app.ts":  "export const a = 1;",
		"src/app.js":  "module.exports = 1;",
		"docs/x.md":   "# docs",
	})

	cfg := config.DefaultConfig()
	cfg.Include = []string{"src/**/*.ts"}

	paths := collectedPaths(t, dir, cfg)
	assert.Equal(t, []string{"src/app.ts"}, paths)
}

func TestCollect_SkipsBinaryAndOversized(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/app.js": "export function app() {}",
	})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blob.js"), []byte{0x00, 0x01, 0x02}, 0o644))

	big := make([]byte, 64)
	for i := range big {
		big[i] = 'x'
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "big.js"), big, 0o644))

	cfg := config.DefaultConfig()
	cfg.Analysis.MaxFileSize = 32

	paths := collectedPaths(t, dir, cfg)
	assert.Equal(t, []string{"src/app.js"}, paths)
}

func TestCollect_MissingRootIsFatal(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"), config.DefaultConfig()).Collect()
	assert.Error(t, err)
}

func TestCollect_FileRootIsFatal(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "file.js")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))

	_, err := New(p, config.DefaultConfig()).Collect()
	assert.Error(t, err)
}

func TestCollect_DetectedArtifactDirsAreExcluded(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"package.json": `{"main": "lib/index.js"}`,
		"src/app.js":   "export function app() {}",
		"lib/index.js": "module.exports = {};",
	})

	paths := collectedPaths(t, dir, config.DefaultConfig())
	assert.Contains(t, paths, "src/app.js")
	assert.NotContains(t, paths, "lib/index.js")
}

func TestArtifactDetector_PackageJSONMain(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"package.json": `{"main": "./out/index.js"}`,
	})

	patterns := NewArtifactDetector(dir).DetectOutputDirectories()
	assert.Contains(t, patterns, "**/out/**")
}

func TestArtifactDetector_SrcMainIsNotAnArtifact(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"package.json": `{"main": "src/index.js"}`,
	})

	patterns := NewArtifactDetector(dir).DetectOutputDirectories()
	assert.Empty(t, patterns)
}

func TestArtifactDetector_TsconfigOutDir(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"tsconfig.json": `{"compilerOptions": {"outDir": "./build-out"}}`,
	})

	patterns := NewArtifactDetector(dir).DetectOutputDirectories()
	assert.Contains(t, patterns, "**/build-out/**")
}

func TestArtifactDetector_CargoAndPyproject(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"Cargo.toml":     "[package]\nname = \"demo\"\nversion = \"0.1.0\"\n",
		"pyproject.toml": "[project]\nname = \"demo\"\n",
	})

	patterns := NewArtifactDetector(dir).DetectOutputDirectories()
	assert.Contains(t, patterns, "**/target/**")
	assert.Contains(t, patterns, "**/__pycache__/**")
	assert.Contains(t, patterns, "**/.venv/**")
}

func TestArtifactDetector_EmptyProject(t *testing.T) {
	patterns := NewArtifactDetector(t.TempDir()).DetectOutputDirectories()
	assert.Empty(t, patterns)
}

func TestTopLevelDir(t *testing.T) {
	cases := map[string]string{
		"dist":           "dist",
		"./dist/main.js": "dist",
		"dist/sub/x.js":  "dist",
		"index.js":       "",
		"":               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, topLevelDir(in), "input %q", in)
	}
}
