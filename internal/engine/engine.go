// Package engine orchestrates the full analysis run: parallel per-file
// extraction (pass 1), then resolution, relationship building, diagnostics
// and metric aggregation over the completed file set (pass 2). The barrier
// between the passes is hard: pass 2 needs global knowledge of every file's
// function names.
package engine

import (
	"context"
	"fmt"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/codescope/internal/config"
	"github.com/standardbeagle/codescope/internal/diagnostics"
	"github.com/standardbeagle/codescope/internal/extract"
	"github.com/standardbeagle/codescope/internal/graph"
	"github.com/standardbeagle/codescope/internal/metrics"
	"github.com/standardbeagle/codescope/internal/parser"
	"github.com/standardbeagle/codescope/internal/resolve"
	"github.com/standardbeagle/codescope/internal/types"
)

// FileInput is one (relativePath, rawText, extension, language) tuple from
// the file supplier. The supplier is responsible for excluding build
// artifacts, dependency directories and VCS metadata.
type FileInput struct {
	Path      string
	Content   string
	Extension string
	Language  string
}

// Engine runs the structural analysis pipeline.
type Engine struct {
	cfg       *config.Config
	adapter   parser.SyntaxAdapter
	extractor *extract.Extractor
}

// New creates an engine with the default tree-sitter adapter.
func New(cfg *config.Config) *Engine {
	return NewWithAdapter(cfg, parser.NewTreeSitterAdapter())
}

// NewWithAdapter creates an engine with a custom syntax adapter.
func NewWithAdapter(cfg *config.Config, adapter parser.SyntaxAdapter) *Engine {
	return &Engine{
		cfg:       cfg,
		adapter:   adapter,
		extractor: extract.New(),
	}
}

// Analyze runs both passes over the supplied files and produces the
// AnalysisResult. Empty input is the engine's single fatal precondition
// violation; every per-file failure is isolated and converted into a
// parse_error issue on that file.
func (e *Engine) Analyze(ctx context.Context, inputs []FileInput) (*types.AnalysisResult, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no input files: the file supplier must provide at least one file")
	}

	files := e.buildFiles(inputs)

	if err := e.extractAll(ctx, files); err != nil {
		return nil, err
	}

	// Pass 2: global read pass over the completed file set.
	resolver := resolve.New(files, e.cfg.Analysis.Extensions)
	resolver.ResolveAll(files)

	builder := graph.NewBuilder(resolver)
	edges, err := builder.Build(ctx, files, e.cfg.EffectiveWorkers())
	if err != nil {
		return nil, err
	}

	diag := diagnostics.NewEngine(e.cfg.Diagnostics)
	issues, suggestions := diag.Run(files, resolver.KnownPaths())
	attachIssues(files, issues)

	return &types.AnalysisResult{
		Files:         files,
		Relationships: edges,
		Issues:        issues,
		Suggestions:   suggestions,
		Metrics:       metrics.Aggregate(files, issues),
	}, nil
}

// buildFiles converts supplier tuples into SourceFile shells. Paths are
// normalized to forward slashes; duplicate paths keep the first occurrence
// so every file id appears exactly once in the result.
func (e *Engine) buildFiles(inputs []FileInput) []*types.SourceFile {
	seen := make(map[string]bool, len(inputs))
	files := make([]*types.SourceFile, 0, len(inputs))
	for _, in := range inputs {
		p := path.Clean(strings.ReplaceAll(in.Path, "\\", "/"))
		if p == "" || p == "." || seen[p] {
			continue
		}
		seen[p] = true

		ext := in.Extension
		if ext == "" {
			ext = path.Ext(p)
		}
		lang := in.Language
		if lang == "" {
			lang = parser.LanguageForExtension(ext)
		}

		files = append(files, &types.SourceFile{
			Path:      p,
			Name:      path.Base(p),
			Extension: ext,
			Size:      len(in.Content),
			Language:  lang,
			Content:   in.Content,
			Functions: []*types.FunctionFact{},
			Imports:   []*types.ImportFact{},
			Exports:   []types.ExportFact{},
		})
	}
	return files
}

// extractAll runs pass 1: per-file parsing and extraction with a bounded
// worker group. Each worker reads only its own file's text and writes only
// its own fact bundle, so no synchronization is needed beyond the barrier.
func (e *Engine) extractAll(ctx context.Context, files []*types.SourceFile) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.EffectiveWorkers())

	for _, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			e.extractOne(f)
			return nil
		})
	}
	return g.Wait()
}

// extractOne parses and extracts a single file. Parse failures are
// converted into a parse_error issue; the file stays in the result with
// empty facts and complexity 0.
func (e *Engine) extractOne(f *types.SourceFile) {
	if !e.adapter.Supports(f.Language) {
		// Non-code text passes through with empty facts.
		return
	}

	tree, err := e.adapter.Parse(f.Path, []byte(f.Content), f.Language)
	if err != nil {
		f.Issues = append(f.Issues, types.Issue{
			Kind:     types.IssueParseError,
			Severity: types.SeverityError,
			Message:  fmt.Sprintf("Failed to parse file: %v", err),
			File:     f.Path,
			Line:     1,
		})
		return
	}
	defer tree.Close()

	e.extractor.Extract(f, tree)
}

// attachIssues replaces each file's issue list with its slice of the global
// list, so per-file and project-wide views agree.
func attachIssues(files []*types.SourceFile, issues []types.Issue) {
	byFile := make(map[string][]types.Issue)
	for _, iss := range issues {
		byFile[iss.File] = append(byFile[iss.File], iss)
	}
	for _, f := range files {
		f.Issues = byFile[f.Path]
	}
}
