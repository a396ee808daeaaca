package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/codescope/internal/types"
)

func fileWithComplexity(path string, complexity int) *types.SourceFile {
	return &types.SourceFile{Path: path, Name: path, Complexity: complexity}
}

func TestAggregate_EmptyFileSet(t *testing.T) {
	m := Aggregate(nil, nil)

	assert.Equal(t, 0.0, m.Complexity.Average)
	assert.Equal(t, 0, m.Complexity.Max)
	assert.Equal(t, map[string]int{"low": 0, "medium": 0, "high": 0}, m.Complexity.Distribution)
	assert.Equal(t, 0.0, m.Coverage.Functions)
	assert.Equal(t, 100.0, m.Maintainability)
	assert.Equal(t, 0.0, m.TechnicalDebt.Hours)
}

func TestAggregate_DistributionBuckets(t *testing.T) {
	files := []*types.SourceFile{
		fileWithComplexity("a.js", 0),
		fileWithComplexity("b.js", 4),
		fileWithComplexity("c.js", 5),
		fileWithComplexity("d.js", 14),
		fileWithComplexity("e.js", 15),
		fileWithComplexity("f.js", 21),
	}

	m := Aggregate(files, nil)

	assert.Equal(t, 2, m.Complexity.Distribution["low"])
	assert.Equal(t, 2, m.Complexity.Distribution["medium"])
	assert.Equal(t, 2, m.Complexity.Distribution["high"])
	assert.Equal(t, 21, m.Complexity.Max)
}

func TestAggregate_AverageComplexity(t *testing.T) {
	files := []*types.SourceFile{
		fileWithComplexity("a.js", 2),
		fileWithComplexity("b.js", 4),
	}

	m := Aggregate(files, nil)

	assert.InDelta(t, 3.0, m.Complexity.Average, 1e-9)
}

func TestAggregate_CoverageBounds(t *testing.T) {
	allUsed := &types.SourceFile{
		Path: "a.js",
		Functions: []*types.FunctionFact{
			{Name: "x", IsUsed: true},
			{Name: "y", IsUsed: true},
		},
	}
	assert.Equal(t, 100.0, Aggregate([]*types.SourceFile{allUsed}, nil).Coverage.Functions)

	noneUsed := &types.SourceFile{
		Path: "b.js",
		Functions: []*types.FunctionFact{
			{Name: "x"},
		},
	}
	assert.Equal(t, 0.0, Aggregate([]*types.SourceFile{noneUsed}, nil).Coverage.Functions)

	half := &types.SourceFile{
		Path: "c.js",
		Functions: []*types.FunctionFact{
			{Name: "x", IsUsed: true},
			{Name: "y"},
		},
	}
	assert.Equal(t, 50.0, Aggregate([]*types.SourceFile{half}, nil).Coverage.Functions)
}

func TestAggregate_NoFunctionsMeansZeroCoverage(t *testing.T) {
	m := Aggregate([]*types.SourceFile{fileWithComplexity("a.js", 1)}, nil)
	assert.Equal(t, 0.0, m.Coverage.Functions)
}

func TestAggregate_MaintainabilityWeights(t *testing.T) {
	files := []*types.SourceFile{fileWithComplexity("a.js", 10)}
	issues := []types.Issue{
		{Severity: types.SeverityError},
		{Severity: types.SeverityWarning},
		{Severity: types.SeverityWarning},
		{Severity: types.SeverityInfo}, // info does not count
	}

	m := Aggregate(files, issues)

	// 100 - 10*1 - 5*2 - 0.1*10 = 79
	assert.InDelta(t, 79.0, m.Maintainability, 1e-9)
}

func TestAggregate_MaintainabilityFloor(t *testing.T) {
	var issues []types.Issue
	for i := 0; i < 20; i++ {
		issues = append(issues, types.Issue{Severity: types.SeverityError})
	}

	m := Aggregate([]*types.SourceFile{fileWithComplexity("a.js", 1)}, issues)

	assert.Equal(t, 0.0, m.Maintainability)
}

func TestAggregate_TechnicalDebt(t *testing.T) {
	issues := []types.Issue{
		{Severity: types.SeverityError},
		{Severity: types.SeverityError},
		{Severity: types.SeverityWarning},
	}

	m := Aggregate(nil, issues)

	assert.InDelta(t, 1.2, m.TechnicalDebt.Hours, 1e-9)
	assert.Equal(t, 3, m.TechnicalDebt.Issues)
}

func TestAggregate_Idempotent(t *testing.T) {
	files := []*types.SourceFile{
		fileWithComplexity("a.js", 7),
		fileWithComplexity("b.js", 19),
	}
	issues := []types.Issue{{Severity: types.SeverityWarning}}

	first := Aggregate(files, issues)
	second := Aggregate(files, issues)

	assert.Equal(t, first, second)
}
