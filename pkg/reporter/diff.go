package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/cmdassist/internal/ui/pretty"
	"github.com/yaklabco/cmdassist/pkg/runner"
)

// DiffReporter writes the fixes of a run as unified diffs.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. It returns the number of issues, like the
// other reporters, although only fixable ones appear in the diffs.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	files, additions, deletions := 0, 0, 0
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(runner.DisplayPath(r.opts.WorkingDir, file.Path)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if !file.Diff.HasChanges() {
			continue
		}
		files++
		additions += file.Diff.Additions
		deletions += file.Diff.Deletions
		fmt.Fprint(r.bw, r.styles.FormatDiff(file.Diff))
	}

	if r.opts.ShowSummary {
		if files == 0 {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No fixes available."))
		} else {
			fmt.Fprintln(r.bw, r.styles.Dim.Render(fmt.Sprintf("%d files changed, %d insertions(+), %d deletions(-)",
				files, additions, deletions)))
		}
	}

	return result.Stats.DiagnosticsTotal, nil
}
