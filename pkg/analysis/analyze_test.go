package analysis_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cmdassist/pkg/analysis"
	"github.com/yaklabco/cmdassist/pkg/diag"
	"github.com/yaklabco/cmdassist/pkg/runner"
)

func withRule(d *diag.Diagnostic, rule string) *diag.Diagnostic {
	d.Rule = rule
	return d
}

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path:     "/work/a.mcfunction",
				Commands: 3,
				Lines: []runner.LineResult{
					{Number: 1, Diagnostics: []*diag.Diagnostic{
						diag.New(diag.IDError, 0, 3, `unknown command "sya"`).WithHint("say"),
					}},
					{Number: 2, Diagnostics: []*diag.Diagnostic{
						withRule(diag.New(diag.Warning, 5, 9, "deprecated"), "deprecated-id"),
						withRule(diag.New(diag.Logic, 10, 11, "repeated"), "selector-duplicate"),
					}},
				},
			},
			{
				Path:     "/work/b.mcfunction",
				Commands: 1,
				Lines: []runner.LineResult{
					{Number: 4, Diagnostics: []*diag.Diagnostic{
						withRule(diag.New(diag.Logic, 2, 4, "repeated"), "selector-duplicate"),
					}},
				},
			},
			{Path: "/work/c.mcfunction", Commands: 2},
			{Path: "/work/d.mcfunction", Error: errors.New("permission denied")},
		},
	}
}

func TestAnalyze_Nil(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(nil, analysis.DefaultOptions())
	require.NotNil(t, report)
	assert.Equal(t, analysis.ReportVersion, report.Version)
	assert.False(t, report.Totals.HasIssues())
	assert.Empty(t, report.ByRule)
}

func TestAnalyze_Totals(t *testing.T) {
	t.Parallel()

	opts := analysis.DefaultOptions()
	opts.WorkingDir = "/work"
	report := analysis.Analyze(sampleResult(), opts)

	assert.Equal(t, analysis.Totals{
		Files:           4,
		FilesWithIssues: 2,
		Commands:        6,
		Issues:          4,
		Errors:          3,
		Warnings:        1,
		Fixable:         1,
	}, report.Totals)
	assert.True(t, report.Totals.HasErrors())

	require.Len(t, report.Diagnostics, 4)
	assert.Equal(t, analysis.DiagnosticEntry{
		FilePath:    "a.mcfunction",
		Rule:        "id-error",
		Level:       diag.IDError,
		Message:     `unknown command "sya"`,
		Line:        1,
		StartColumn: 1,
		EndColumn:   4,
		Hint:        "say",
	}, report.Diagnostics[0])
}

func TestAnalyze_ByRule(t *testing.T) {
	t.Parallel()

	opts := analysis.DefaultOptions()
	opts.WorkingDir = "/work"
	report := analysis.Analyze(sampleResult(), opts)

	require.Len(t, report.ByRule, 3)
	assert.Equal(t, analysis.RuleAnalysis{
		Rule:   "selector-duplicate",
		Issues: 2,
		Errors: 2,
		Files:  []string{"a.mcfunction", "b.mcfunction"},
	}, report.ByRule[0])
	assert.Equal(t, "deprecated-id", report.ByRule[1].Rule)
	assert.Equal(t, "id-error", report.ByRule[2].Rule)
	assert.True(t, report.ByRule[2].Fixable)
}

func TestAnalyze_ByFile(t *testing.T) {
	t.Parallel()

	opts := analysis.DefaultOptions()
	opts.WorkingDir = "/work"
	report := analysis.Analyze(sampleResult(), opts)

	require.Len(t, report.ByFile, 3)
	assert.Equal(t, analysis.FileAnalysis{
		Path:     "a.mcfunction",
		Commands: 3,
		Issues:   3,
		Errors:   2,
		Warnings: 1,
		Rules:    []string{"deprecated-id", "id-error", "selector-duplicate"},
	}, report.ByFile[0])
	assert.Equal(t, "b.mcfunction", report.ByFile[1].Path)
	assert.Equal(t, "c.mcfunction", report.ByFile[2].Path)
	assert.Zero(t, report.ByFile[2].Issues)
}

func TestAnalyze_Sorting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		sortBy analysis.SortField
		desc   bool
		want   []string
	}{
		{name: "count descending", sortBy: analysis.SortByCount, desc: true,
			want: []string{"selector-duplicate", "deprecated-id", "id-error"}},
		{name: "count ascending", sortBy: analysis.SortByCount,
			want: []string{"deprecated-id", "id-error", "selector-duplicate"}},
		{name: "alpha", sortBy: analysis.SortByAlpha,
			want: []string{"deprecated-id", "id-error", "selector-duplicate"}},
		{name: "severity", sortBy: analysis.SortBySeverity,
			want: []string{"selector-duplicate", "id-error", "deprecated-id"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := analysis.DefaultOptions()
			opts.SortBy = tt.sortBy
			opts.SortDesc = tt.desc
			report := analysis.Analyze(sampleResult(), opts)

			got := make([]string, 0, len(report.ByRule))
			for _, ra := range report.ByRule {
				got = append(got, ra.Rule)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalyze_Options(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.Options{})
	assert.Empty(t, report.Diagnostics)
	assert.Empty(t, report.ByRule)
	assert.Empty(t, report.ByFile)
	assert.Equal(t, 4, report.Totals.Issues)

	assert.True(t, analysis.SortByCount.IsValid())
	assert.False(t, analysis.SortField("size").IsValid())
}
