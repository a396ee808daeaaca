// Package resolve decides which import specifiers point at known project
// files. Resolution is deliberately simple: it checks the existence of
// project-local files only and makes no claim about external packages.
package resolve

import (
	"path"
	"strings"

	"github.com/standardbeagle/codescope/internal/types"
)

// Resolver resolves import specifiers against a fixed project file set.
// Construct it once after all files are known; resolution is deterministic
// for an unchanged file set.
type Resolver struct {
	files      map[string]bool
	extensions []string
}

// New creates a resolver over the given files. Extensions are probed in
// order when a specifier omits one.
func New(files []*types.SourceFile, extensions []string) *Resolver {
	set := make(map[string]bool, len(files))
	for _, f := range files {
		set[f.Path] = true
	}
	return &Resolver{files: set, extensions: extensions}
}

// Resolve reports whether the specifier, imported from fromPath, names a
// known project file. Non-relative specifiers are treated as external
// package references and always resolve.
func (r *Resolver) Resolve(fromPath, specifier string) bool {
	if !isRelative(specifier) {
		return true
	}
	_, ok := r.Target(fromPath, specifier)
	return ok
}

// Target maps a relative specifier to the concrete file id it denotes.
// Candidates are probed in order: the joined path as-is, the joined path
// with each supported extension appended, then an index file inside the
// joined path. The first existing candidate wins.
func (r *Resolver) Target(fromPath, specifier string) (string, bool) {
	if !isRelative(specifier) {
		return "", false
	}

	base := path.Clean(path.Join(path.Dir(fromPath), specifier))
	if base == "." || strings.HasPrefix(base, "..") {
		// Escapes the project root; nothing to match.
		return "", false
	}

	if r.files[base] {
		return base, true
	}
	for _, ext := range r.extensions {
		if candidate := base + ext; r.files[candidate] {
			return candidate, true
		}
	}
	for _, ext := range r.extensions {
		if candidate := path.Join(base, "index"+ext); r.files[candidate] {
			return candidate, true
		}
	}
	return "", false
}

// ResolveAll decides IsResolved for every import fact in the file set.
func (r *Resolver) ResolveAll(files []*types.SourceFile) {
	for _, f := range files {
		for _, imp := range f.Imports {
			imp.IsResolved = r.Resolve(f.Path, imp.Specifier)
		}
	}
}

// KnownPaths returns the resolver's file ids; the diagnostics layer uses
// them to compute closest-path hints for unresolved imports.
func (r *Resolver) KnownPaths() []string {
	paths := make([]string, 0, len(r.files))
	for p := range r.files {
		paths = append(paths, p)
	}
	return paths
}

func isRelative(specifier string) bool {
	return strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../")
}
