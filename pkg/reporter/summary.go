package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/cmdassist/internal/ui/pretty"
	"github.com/yaklabco/cmdassist/pkg/analysis"
	"github.com/yaklabco/cmdassist/pkg/runner"
)

// SummaryReporter prints issue counts grouped by rule and by file.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	opts := analysis.DefaultOptions()
	opts.IncludeDiagnostics = false
	opts.WorkingDir = r.opts.WorkingDir
	report := analysis.Analyze(result, opts)

	if report.Totals.HasIssues() {
		r.byRule(report.ByRule)
		r.byFile(report.ByFile)
	}
	if r.opts.ShowSummary && result != nil {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return report.Totals.Issues, nil
}

func (r *SummaryReporter) byRule(rules []analysis.RuleAnalysis) {
	width := 0
	for _, ra := range rules {
		width = max(width, len(ra.Rule))
	}
	fmt.Fprintln(r.bw, r.styles.Bold.Render("By rule:"))
	for _, ra := range rules {
		fixable := ""
		if ra.Fixable {
			fixable = r.styles.Dim.Render("  fixable")
		}
		fmt.Fprintf(r.bw, "  %s  %s%s\n",
			r.styles.RuleID.Render(fmt.Sprintf("%-*s", width, ra.Rule)),
			r.counts(ra.Issues, ra.Errors, ra.Warnings),
			fixable,
		)
	}
	fmt.Fprintln(r.bw)
}

func (r *SummaryReporter) byFile(files []analysis.FileAnalysis) {
	width := 0
	for _, fa := range files {
		if fa.Issues > 0 {
			width = max(width, len(fa.Path))
		}
	}
	fmt.Fprintln(r.bw, r.styles.Bold.Render("By file:"))
	for _, fa := range files {
		if fa.Issues == 0 {
			continue
		}
		fmt.Fprintf(r.bw, "  %s  %s\n",
			r.styles.FilePath.Render(fmt.Sprintf("%-*s", width, fa.Path)),
			r.counts(fa.Issues, fa.Errors, fa.Warnings),
		)
	}
	fmt.Fprintln(r.bw)
}

func (r *SummaryReporter) counts(issues, errors, warnings int) string {
	return fmt.Sprintf("%4d  %s  %s",
		issues,
		r.styles.Error.Render(fmt.Sprintf("%d errors", errors)),
		r.styles.Warning.Render(fmt.Sprintf("%d warnings", warnings)),
	)
}
