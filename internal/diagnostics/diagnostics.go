// Package diagnostics derives typed issues and improvement suggestions from
// already-computed facts. It never re-parses source text.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/standardbeagle/codescope/internal/config"
	"github.com/standardbeagle/codescope/internal/types"
)

// minHintSimilarity is the Jaro-Winkler floor below which a closest-path
// hint for an unresolved import is considered noise and dropped.
const minHintSimilarity = 0.75

// Engine applies the diagnostic rules over the completed file set.
type Engine struct {
	cfg config.Diagnostics
}

// NewEngine creates a diagnostics engine with the given rule thresholds.
func NewEngine(cfg config.Diagnostics) *Engine {
	return &Engine{cfg: cfg}
}

// Run evaluates every rule and returns the flat issue and suggestion lists.
// knownPaths feeds the closest-path hints for unresolved imports; issues
// already attached to files (parse errors) are folded into the output and
// counted like any other.
func (e *Engine) Run(files []*types.SourceFile, knownPaths []string) ([]types.Issue, []types.Suggestion) {
	var issues []types.Issue
	var suggestions []types.Suggestion
	seq := 0

	nextID := func() string {
		seq++
		return fmt.Sprintf("issue-%d", seq)
	}

	for _, f := range files {
		// Parse failures were attached during extraction; re-key them so
		// ids stay unique across the whole run.
		for _, existing := range f.Issues {
			existing.ID = nextID()
			issues = append(issues, existing)
		}

		for _, fn := range f.Functions {
			if fn.IsUsed || fn.Name == types.DefaultExportName || e.isExempt(fn.Name) {
				continue
			}
			issues = append(issues, types.Issue{
				ID:         nextID(),
				Kind:       types.IssueUnusedFunction,
				Severity:   types.SeverityWarning,
				Message:    fmt.Sprintf("Function %q is declared but never called from another file", fn.Name),
				File:       f.Path,
				Line:       fn.Line,
				Column:     fn.Column,
				Suggestion: "Remove the function or export it for use elsewhere",
			})
		}

		for _, imp := range f.Imports {
			if imp.IsResolved {
				continue
			}
			issue := types.Issue{
				ID:       nextID(),
				Kind:     types.IssueUnresolvedImport,
				Severity: types.SeverityError,
				Message:  fmt.Sprintf("Cannot resolve import %q", imp.Specifier),
				File:     f.Path,
				Line:     imp.Line,
			}
			if hint := closestPath(imp.Specifier, knownPaths); hint != "" {
				issue.Suggestion = fmt.Sprintf("Did you mean %q?", hint)
			}
			issues = append(issues, issue)
		}

		if f.Complexity > e.cfg.ComplexityWarnThreshold {
			issues = append(issues, types.Issue{
				ID:       nextID(),
				Kind:     types.IssueHighComplexity,
				Severity: types.SeverityWarning,
				Message: fmt.Sprintf("File complexity %d exceeds threshold %d",
					f.Complexity, e.cfg.ComplexityWarnThreshold),
				File:       f.Path,
				Line:       1,
				Suggestion: "Split the file or simplify its control flow",
			})
		}
	}

	suggestions = e.buildSuggestions(files, issues)
	return issues, suggestions
}

// buildSuggestions produces the secondary improvement hints.
func (e *Engine) buildSuggestions(files []*types.SourceFile, issues []types.Issue) []types.Suggestion {
	issueCount := make(map[string]int, len(files))
	for _, iss := range issues {
		issueCount[iss.File]++
	}

	var out []types.Suggestion
	for _, f := range files {
		if f.Complexity > e.cfg.RefactorThreshold {
			priority := "medium"
			if f.Complexity > e.cfg.HighPriorityThreshold {
				priority = "high"
			}
			out = append(out, types.Suggestion{
				Kind:     types.SuggestRefactor,
				File:     f.Path,
				Message:  fmt.Sprintf("Refactor %s to reduce its complexity (currently %d)", f.Name, f.Complexity),
				Priority: priority,
				Effort:   "medium",
			})
		}
		if issueCount[f.Path] > 0 {
			out = append(out, types.Suggestion{
				Kind:     types.SuggestBestPractice,
				File:     f.Path,
				Message:  fmt.Sprintf("Address the %d reported issue(s) in %s", issueCount[f.Path], f.Name),
				Priority: "high",
				Effort:   "easy",
			})
		}
	}
	return out
}

// isExempt reports whether the function name matches a configured exempt
// prefix (framework hook conventions like React's use*).
func (e *Engine) isExempt(name string) bool {
	for _, prefix := range e.cfg.ExemptPrefixes {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// closestPath returns the known file path most similar to the unresolved
// specifier, or "" when nothing is close enough to be a useful hint.
func closestPath(specifier string, knownPaths []string) string {
	trimmed := strings.TrimLeft(specifier, "./")
	if trimmed == "" {
		return ""
	}

	best := ""
	var bestScore float32
	for _, p := range knownPaths {
		score, err := edlib.StringsSimilarity(trimmed, p, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = p
		}
	}
	if bestScore < minHintSimilarity {
		return ""
	}
	return best
}
