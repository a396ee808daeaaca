package config

import (
	"fmt"
	"runtime"
)

// Complexity thresholds used by the diagnostics engine. These are the
// defaults; projects can override them in .codescope.kdl.
const (
	DefaultComplexityWarnThreshold = 20
	DefaultRefactorThreshold       = 15
	DefaultHighPriorityThreshold   = 25
	DefaultMaxFileSize             = 1 * 1024 * 1024
	DefaultWatchDebounceMs         = 250
)

// Config holds all tunables for one analysis run.
type Config struct {
	Project     Project
	Analysis    Analysis
	Diagnostics Diagnostics
	Include     []string
	Exclude     []string
}

type Project struct {
	Root string
	Name string
}

type Analysis struct {
	// Extensions the engine treats as parseable source, in resolution
	// probe order.
	Extensions []string

	MaxFileSize int64
	Workers     int // 0 = NumCPU

	WatchDebounceMs int
}

type Diagnostics struct {
	// ComplexityWarnThreshold triggers a high_complexity warning when a
	// file's total complexity exceeds it.
	ComplexityWarnThreshold int

	// RefactorThreshold triggers a refactor suggestion; above
	// HighPriorityThreshold the suggestion priority is raised to high.
	RefactorThreshold     int
	HighPriorityThreshold int

	// ExemptPrefixes lists function name prefixes the unused_function rule
	// skips. Framework hook conventions (React's use*) are policy, not a
	// property of the engine.
	ExemptPrefixes []string
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() *Config {
	return &Config{
		Analysis: Analysis{
			Extensions:      []string{".js", ".jsx", ".ts", ".tsx"},
			MaxFileSize:     DefaultMaxFileSize,
			Workers:         runtime.NumCPU(),
			WatchDebounceMs: DefaultWatchDebounceMs,
		},
		Diagnostics: Diagnostics{
			ComplexityWarnThreshold: DefaultComplexityWarnThreshold,
			RefactorThreshold:       DefaultRefactorThreshold,
			HighPriorityThreshold:   DefaultHighPriorityThreshold,
			ExemptPrefixes:          []string{"use"},
		},
		Include: []string{},
		Exclude: []string{
			"**/node_modules/**",
			"**/.git/**",
			"**/dist/**",
			"**/build/**",
			"**/coverage/**",
		},
	}
}

// Validate checks invariants that later stages rely on.
func (c *Config) Validate() error {
	if len(c.Analysis.Extensions) == 0 {
		return fmt.Errorf("analysis.extensions must not be empty")
	}
	if c.Analysis.MaxFileSize <= 0 {
		return fmt.Errorf("analysis.max_file_size must be positive, got %d", c.Analysis.MaxFileSize)
	}
	if c.Analysis.Workers < 0 {
		return fmt.Errorf("analysis.workers must not be negative, got %d", c.Analysis.Workers)
	}
	if c.Diagnostics.ComplexityWarnThreshold < c.Diagnostics.RefactorThreshold {
		return fmt.Errorf("diagnostics.complexity_warn_threshold (%d) below refactor_threshold (%d)",
			c.Diagnostics.ComplexityWarnThreshold, c.Diagnostics.RefactorThreshold)
	}
	return nil
}

// EffectiveWorkers resolves the worker count, defaulting to NumCPU.
func (c *Config) EffectiveWorkers() int {
	if c.Analysis.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Analysis.Workers
}
