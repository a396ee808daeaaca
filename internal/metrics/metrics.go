// Package metrics reduces per-file complexity and diagnostic counts into
// project-level quality metrics with fixed numeric semantics.
package metrics

import (
	"github.com/standardbeagle/codescope/internal/types"
)

// Complexity distribution bucket bounds: a file is low below 5, medium
// below 15, high otherwise.
const (
	lowBound    = 5
	mediumBound = 15
)

// Maintainability and debt weights.
const (
	errorWeight      = 10.0
	warningWeight    = 5.0
	complexityWeight = 0.1
	debtPerError     = 0.5
	debtPerWarning   = 0.2
)

// Aggregate computes the QualityMetrics for one run. All inputs are
// read-only; calling it twice on the same data yields identical results.
func Aggregate(files []*types.SourceFile, issues []types.Issue) types.QualityMetrics {
	m := types.QualityMetrics{
		Complexity: types.ComplexityMetrics{
			Distribution: map[string]int{"low": 0, "medium": 0, "high": 0},
		},
	}

	totalComplexity := 0
	for _, f := range files {
		totalComplexity += f.Complexity
		if f.Complexity > m.Complexity.Max {
			m.Complexity.Max = f.Complexity
		}
		switch {
		case f.Complexity < lowBound:
			m.Complexity.Distribution["low"]++
		case f.Complexity < mediumBound:
			m.Complexity.Distribution["medium"]++
		default:
			m.Complexity.Distribution["high"]++
		}
	}
	if len(files) > 0 {
		m.Complexity.Average = float64(totalComplexity) / float64(len(files))
	}

	totalFunctions, usedFunctions := 0, 0
	for _, f := range files {
		for _, fn := range f.Functions {
			totalFunctions++
			if fn.IsUsed {
				usedFunctions++
			}
		}
	}
	if totalFunctions > 0 {
		m.Coverage.Functions = float64(usedFunctions) / float64(totalFunctions) * 100
	}

	errorCount, warningCount := 0, 0
	for _, iss := range issues {
		switch iss.Severity {
		case types.SeverityError:
			errorCount++
		case types.SeverityWarning:
			warningCount++
		}
	}

	// Maintainability starts at 100 and only decreases, so the clamp only
	// needs a floor.
	maintainability := 100 -
		errorWeight*float64(errorCount) -
		warningWeight*float64(warningCount) -
		complexityWeight*float64(totalComplexity)
	if maintainability < 0 {
		maintainability = 0
	}
	m.Maintainability = maintainability

	m.TechnicalDebt = types.TechnicalDebt{
		Hours:  debtPerError*float64(errorCount) + debtPerWarning*float64(warningCount),
		Issues: errorCount + warningCount,
	}

	return m
}
