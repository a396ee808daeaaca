// Package types defines the core data model shared by every analysis stage.
// SourceFile paths are project-relative and double as stable file ids, so
// relationships and issues reference files by path rather than a numeric id.
package types

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Language tags produced by the file supplier and consumed by the parser.
const (
	LangJavaScript = "javascript"
	LangTypeScript = "typescript"
	LangUnknown    = "unknown"
)

// AnonymousFunction is the placeholder name recorded for function expressions
// that are not bound to any observable identifier. They still contribute to
// file complexity even though they can never be resolved as a call target.
const AnonymousFunction = "anonymous"

// DefaultExportName is the literal name recorded for a default export of an
// anonymous expression.
const DefaultExportName = "default"

// SourceFile is one analyzed file. Identity is the project-relative path.
// Immutable after extraction except Complexity, the usage flags on contained
// functions, and the issue list, which later stages populate.
type SourceFile struct {
	Path       string          `json:"path"`
	Name       string          `json:"name"`
	Extension  string          `json:"extension"`
	Size       int             `json:"size"`
	Language   string          `json:"language"`
	Complexity int             `json:"complexity"`
	Functions  []*FunctionFact `json:"functions"`
	Imports    []*ImportFact   `json:"imports"`
	Exports    []ExportFact    `json:"exports"`
	Issues     []Issue         `json:"issues,omitempty"`

	// Content is the raw text the extractor and call scanner read.
	// Excluded from serialized results to keep them small.
	Content string `json:"-"`
}

// FunctionFact describes one function-shaped construct found in a file.
type FunctionFact struct {
	Name       string   `json:"name"`
	Line       int      `json:"line"`
	Column     int      `json:"column"`
	Params     []string `json:"params"`
	Complexity int      `json:"complexity"` // always >= 1
	IsUsed     bool     `json:"isUsed"`
	CalledBy   []string `json:"calledBy,omitempty"`
	Calls      []string `json:"calls,omitempty"`

	// Byte span of the full function node, used to attribute textual call
	// matches to their enclosing function during relationship building.
	StartByte int `json:"-"`
	EndByte   int `json:"-"`
}

// ImportFact describes one import declaration. Resolution is decided once,
// after the full file set is known.
type ImportFact struct {
	Specifier  string   `json:"specifier"`
	Names      []string `json:"names,omitempty"`
	Line       int      `json:"line"`
	IsResolved bool     `json:"isResolved"`
}

// ExportKind distinguishes default from named exports.
type ExportKind string

const (
	ExportDefault ExportKind = "default"
	ExportNamed   ExportKind = "named"
)

// ExportFact describes one exported binding.
type ExportFact struct {
	Name string     `json:"name"`
	Kind ExportKind `json:"kind"`
	Line int        `json:"line"`
}

// RelationshipKind is the type of a cross-file edge.
type RelationshipKind string

const (
	RelImport       RelationshipKind = "import"
	RelFunctionCall RelationshipKind = "function_call"
)

// Relationship is a directed edge between two files in the project graph.
// Source and Target must both be members of the analyzed file set.
type Relationship struct {
	ID            string           `json:"id"`
	Source        string           `json:"source"`
	Target        string           `json:"target"`
	Kind          RelationshipKind `json:"kind"`
	Strength      float64          `json:"strength"` // in [0,1]
	Bidirectional bool             `json:"bidirectional"`
}

// RelationshipID derives a stable edge id from the edge's identity fields.
// The label disambiguates parallel edges of the same kind (e.g. two call
// edges between the same file pair for different function names).
func RelationshipID(kind RelationshipKind, source, target, label string) string {
	h := xxhash.New()
	_, _ = h.WriteString(string(kind))
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(source)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(target)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(label)
	return fmt.Sprintf("%016x", h.Sum64())
}

// IssueKind identifies a diagnostic rule.
type IssueKind string

const (
	IssueUnusedFunction   IssueKind = "unused_function"
	IssueUnresolvedImport IssueKind = "unresolved_import"
	IssueHighComplexity   IssueKind = "high_complexity"
	IssueParseError       IssueKind = "parse_error"
)

// Severity of an issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is one diagnostic finding attached to a file.
type Issue struct {
	ID         string    `json:"id"`
	Kind       IssueKind `json:"kind"`
	Severity   Severity  `json:"severity"`
	Message    string    `json:"message"`
	File       string    `json:"file"`
	Line       int       `json:"line"`
	Column     int       `json:"column"`
	Suggestion string    `json:"suggestion,omitempty"`
}

// SuggestionKind identifies a class of improvement suggestion.
type SuggestionKind string

const (
	SuggestRefactor     SuggestionKind = "refactor"
	SuggestBestPractice SuggestionKind = "best_practice"
)

// Suggestion is a secondary, lower-priority improvement hint.
type Suggestion struct {
	Kind     SuggestionKind `json:"kind"`
	File     string         `json:"file"`
	Message  string         `json:"message"`
	Priority string         `json:"priority"` // high | medium | low
	Effort   string         `json:"effort"`   // easy | medium | hard
}

// ComplexityMetrics summarizes per-file complexity across the project.
type ComplexityMetrics struct {
	Average      float64        `json:"average"`
	Max          int            `json:"max"`
	Distribution map[string]int `json:"distribution"` // low | medium | high
}

// CoverageMetrics summarizes function usage coverage.
type CoverageMetrics struct {
	Functions float64 `json:"functions"` // percentage in [0,100]
}

// TechnicalDebt estimates remediation cost from issue counts.
type TechnicalDebt struct {
	Hours  float64 `json:"hours"`
	Issues int     `json:"issues"`
}

// QualityMetrics is the derived project-level quality summary.
type QualityMetrics struct {
	Complexity      ComplexityMetrics `json:"complexity"`
	Coverage        CoverageMetrics   `json:"coverage"`
	Maintainability float64           `json:"maintainability"` // clamped to [0,100]
	TechnicalDebt   TechnicalDebt     `json:"technical_debt"`
}

// AnalysisResult is the aggregate root produced once per run. It is the only
// value exposed across the engine boundary and is immutable once returned.
type AnalysisResult struct {
	Files         []*SourceFile  `json:"files"`
	Relationships []Relationship `json:"relationships"`
	Issues        []Issue        `json:"issues"`
	Suggestions   []Suggestion   `json:"suggestions"`
	Metrics       QualityMetrics `json:"metrics"`
}

// FileSet returns the set of file ids in the result, used by consumers to
// validate that no relationship endpoint dangles.
func (r *AnalysisResult) FileSet() map[string]bool {
	set := make(map[string]bool, len(r.Files))
	for _, f := range r.Files {
		set[f.Path] = true
	}
	return set
}
