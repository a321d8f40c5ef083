// Package analysis aggregates the diagnostics of a check run by rule and by
// file.
package analysis

import (
	"cmp"
	"slices"
	"time"

	"github.com/yaklabco/cmdassist/pkg/diag"
	"github.com/yaklabco/cmdassist/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

type analysisContext struct {
	fileMap   map[string]*FileAnalysis
	ruleMap   map[string]*RuleAnalysis
	fileRules map[string]map[string]bool
	ruleFiles map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		fileMap:   make(map[string]*FileAnalysis),
		ruleMap:   make(map[string]*RuleAnalysis),
		fileRules: make(map[string]map[string]bool),
		ruleFiles: make(map[string]map[string]bool),
	}
}

// RuleOf returns the grouping key of a diagnostic: its rule, or its level
// name for parser diagnostics.
func RuleOf(d *diag.Diagnostic) string {
	if d.Rule != "" {
		return d.Rule
	}
	return d.Level.String()
}

func (ctx *analysisContext) file(path string) *FileAnalysis {
	if fa, ok := ctx.fileMap[path]; ok {
		return fa
	}
	fa := &FileAnalysis{Path: path}
	ctx.fileMap[path] = fa
	ctx.fileRules[path] = make(map[string]bool)
	return fa
}

func (ctx *analysisContext) rule(name string) *RuleAnalysis {
	if ra, ok := ctx.ruleMap[name]; ok {
		return ra
	}
	ra := &RuleAnalysis{Rule: name}
	ctx.ruleMap[name] = ra
	ctx.ruleFiles[name] = make(map[string]bool)
	return ra
}

func (ctx *analysisContext) buildByRule(opts Options) []RuleAnalysis {
	rules := make([]RuleAnalysis, 0, len(ctx.ruleMap))
	for name, ra := range ctx.ruleMap {
		ra.Files = sortedKeys(ctx.ruleFiles[name])
		rules = append(rules, *ra)
	}
	sortAnalysis(rules, opts, func(ra RuleAnalysis) (string, int, int, int) {
		return ra.Rule, ra.Issues, ra.Errors, ra.Warnings
	})
	return rules
}

func (ctx *analysisContext) buildByFile(opts Options) []FileAnalysis {
	files := make([]FileAnalysis, 0, len(ctx.fileMap))
	for path, fa := range ctx.fileMap {
		fa.Rules = sortedKeys(ctx.fileRules[path])
		files = append(files, *fa)
	}
	sortAnalysis(files, opts, func(fa FileAnalysis) (string, int, int, int) {
		return fa.Path, fa.Issues, fa.Errors, fa.Warnings
	})
	return files
}

// Analyze builds a report from a check result. Files that could not be
// processed count as checked but contribute no diagnostics.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}
	if result == nil {
		return report
	}

	ctx := newAnalysisContext()
	for _, file := range result.Files {
		report.Totals.Files++
		if file.Error != nil {
			continue
		}
		report.Totals.Commands += file.Commands

		path := runner.DisplayPath(opts.WorkingDir, file.Path)
		fa := ctx.file(path)
		fa.Commands = file.Commands
		if file.Diagnostics() > 0 {
			report.Totals.FilesWithIssues++
		}

		for _, line := range file.Lines {
			for _, d := range line.Diagnostics {
				name := RuleOf(d)
				ra := ctx.rule(name)

				report.Totals.Issues++
				fa.Issues++
				ra.Issues++
				if d.Level.IsError() {
					report.Totals.Errors++
					fa.Errors++
					ra.Errors++
				} else {
					report.Totals.Warnings++
					fa.Warnings++
					ra.Warnings++
				}
				if d.Hint != "" {
					report.Totals.Fixable++
					ra.Fixable = true
				}
				ctx.fileRules[path][name] = true
				ctx.ruleFiles[name][path] = true

				if opts.IncludeDiagnostics {
					report.Diagnostics = append(report.Diagnostics, DiagnosticEntry{
						FilePath:    path,
						Rule:        name,
						Level:       d.Level,
						Message:     d.Message,
						Line:        line.Number,
						StartColumn: d.Start + 1,
						EndColumn:   d.End + 1,
						Hint:        d.Hint,
					})
				}
			}
		}
	}

	if opts.IncludeByRule {
		report.ByRule = ctx.buildByRule(opts)
	}
	if opts.IncludeByFile {
		report.ByFile = ctx.buildByFile(opts)
	}
	return report
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// sortAnalysis orders rows; ties always fall back to the name so output is
// stable.
func sortAnalysis[T any](rows []T, opts Options, key func(T) (name string, issues, errors, warnings int)) {
	slices.SortFunc(rows, func(left, right T) int {
		ln, li, le, lw := key(left)
		rn, ri, re, rw := key(right)

		var result int
		switch opts.SortBy {
		case SortByAlpha:
			return cmp.Compare(ln, rn)
		case SortBySeverity:
			result = cmp.Or(cmp.Compare(re, le), cmp.Compare(rw, lw), cmp.Compare(ri, li))
		default:
			result = cmp.Compare(li, ri)
			if opts.SortDesc {
				result = -result
			}
		}
		return cmp.Or(result, cmp.Compare(ln, rn))
	})
}
