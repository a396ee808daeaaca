// Package graph builds the project-wide relationship edge set from completed
// per-file facts. It must only run after extraction has finished for every
// file: call matching needs global knowledge of all function names.
package graph

import (
	"context"
	"regexp"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/codescope/internal/resolve"
	"github.com/standardbeagle/codescope/internal/types"
)

const (
	importEdgeStrength = 0.8
	callEdgeStrength   = 0.6
)

// callPattern matches call-shaped identifier occurrences: a name immediately
// followed by an opening parenthesis. This is a textual heuristic, not
// scope-aware resolution; false positives between files that declare
// same-named functions are an accepted tradeoff.
var callPattern = regexp.MustCompile(`([A-Za-z_$][A-Za-z0-9_$]*)\s*\(`)

// jsKeywords are skipped during call scanning; they can never name a
// declared function.
var jsKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true,
	"function": true, "return": true, "typeof": true, "new": true,
	"delete": true, "void": true, "do": true, "else": true, "throw": true,
	"try": true, "finally": true, "class": true, "super": true,
	"import": true, "export": true, "yield": true, "await": true,
	"in": true, "of": true, "instanceof": true, "with": true,
}

// Builder produces the edge set and updates function usage flags.
type Builder struct {
	resolver *resolve.Resolver
}

// NewBuilder creates a relationship builder over the given resolver.
func NewBuilder(resolver *resolve.Resolver) *Builder {
	return &Builder{resolver: resolver}
}

// callSite is one call-shaped match found in a caller file.
type callSite struct {
	name   string
	offset int // byte offset of the match, used to find the enclosing function
}

// fileCalls is the per-file scan result, collected without locking.
type fileCalls struct {
	file  *types.SourceFile
	sites []callSite
}

// Build emits import and function_call edges and marks called functions
// used. Scanning runs in parallel per file; all mutation of shared function
// facts happens in a single-writer reduction afterwards, so multiple callers
// of the same callee never race.
func (b *Builder) Build(ctx context.Context, files []*types.SourceFile, workers int) ([]types.Relationship, error) {
	edges := b.buildImportEdges(files)

	scans := make([]*fileCalls, len(files))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			scans[i] = scanCalls(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	edges = append(edges, b.reduceCalls(files, scans)...)
	return edges, nil
}

// buildImportEdges emits one directed import edge per resolved relative
// import, re-deriving the joined path to the concrete target file id.
func (b *Builder) buildImportEdges(files []*types.SourceFile) []types.Relationship {
	var edges []types.Relationship
	for _, f := range files {
		for _, imp := range f.Imports {
			if !imp.IsResolved {
				continue
			}
			target, ok := b.resolver.Target(f.Path, imp.Specifier)
			if !ok {
				// External package reference; no project edge.
				continue
			}
			edges = append(edges, types.Relationship{
				ID:       types.RelationshipID(types.RelImport, f.Path, target, imp.Specifier),
				Source:   f.Path,
				Target:   target,
				Kind:     types.RelImport,
				Strength: importEdgeStrength,
			})
		}
	}
	return edges
}

// scanCalls finds call-shaped matches in one file's raw text. Each distinct
// name is kept once with its first occurrence offset.
func scanCalls(f *types.SourceFile) *fileCalls {
	matches := callPattern.FindAllStringSubmatchIndex(f.Content, -1)
	seen := make(map[string]bool, len(matches))
	fc := &fileCalls{file: f}
	for _, m := range matches {
		name := f.Content[m[2]:m[3]]
		if jsKeywords[name] || seen[name] {
			continue
		}
		seen[name] = true
		fc.sites = append(fc.sites, callSite{name: name, offset: m[2]})
	}
	return fc
}

// reduceCalls applies all scan results in one goroutine: emits call edges,
// flips isUsed on callees, and records calledBy/calls name lists.
func (b *Builder) reduceCalls(files []*types.SourceFile, scans []*fileCalls) []types.Relationship {
	var edges []types.Relationship
	for _, fc := range scans {
		if fc == nil {
			continue
		}
		caller := fc.file
		for _, site := range fc.sites {
			for _, other := range files {
				if other.Path == caller.Path {
					continue
				}
				for _, fn := range other.Functions {
					if fn.Name != site.name {
						continue
					}
					edges = append(edges, types.Relationship{
						ID:       types.RelationshipID(types.RelFunctionCall, caller.Path, other.Path, site.name),
						Source:   caller.Path,
						Target:   other.Path,
						Kind:     types.RelFunctionCall,
						Strength: callEdgeStrength,
					})
					fn.IsUsed = true
					fn.CalledBy = appendUnique(fn.CalledBy, caller.Name)
					if enclosing := enclosingFunction(caller, site.offset); enclosing != nil {
						enclosing.Calls = appendUnique(enclosing.Calls, site.name)
					}
				}
			}
		}
	}
	return edges
}

// enclosingFunction returns the innermost function in f whose byte span
// contains offset, or nil for calls at module level.
func enclosingFunction(f *types.SourceFile, offset int) *types.FunctionFact {
	var best *types.FunctionFact
	for _, fn := range f.Functions {
		if offset < fn.StartByte || offset >= fn.EndByte {
			continue
		}
		if best == nil || fn.EndByte-fn.StartByte < best.EndByte-best.StartByte {
			best = fn
		}
	}
	return best
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
