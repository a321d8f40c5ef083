package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/yaklabco/cmdassist/internal/logging"
	"github.com/yaklabco/cmdassist/pkg/fix"
	"github.com/yaklabco/cmdassist/pkg/fsutil"
)

var errNoPack = errors.New("runner: no pack")

// Run discovers files under opts.Paths and checks them with a worker pool.
// Outcomes are returned in path order regardless of completion order.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Pack == nil {
		return nil, errNoPack
	}

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := newResult(len(files))
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}
	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

func worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts Options) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := CheckFile(ctx, path, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// CheckFile checks one file and, when opts.Fix is set, applies its fixes.
// With DryRun the fixes are only recorded in the outcome's Diff.
func CheckFile(ctx context.Context, path string, opts Options) FileOutcome {
	logger := logging.FromContext(ctx)
	start := time.Now()
	outcome := FileOutcome{Path: path}

	data, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	content := string(data)
	outcome.Lines, outcome.Commands = CheckSource(opts.Pack, content, opts.Lint)

	if opts.Fix || opts.DryRun {
		if err := applyFixes(ctx, &outcome, snap, content, opts); err != nil {
			outcome.Error = err
			return outcome
		}
	}

	logger.Debug("checked file",
		logging.FieldPath, path,
		logging.FieldCommands, outcome.Commands,
		logging.FieldDiagnostics, outcome.Diagnostics(),
		logging.FieldDuration, time.Since(start))
	return outcome
}

func applyFixes(ctx context.Context, outcome *FileOutcome, snap *fsutil.Snapshot, content string, opts Options) error {
	fixed, n, err := FixSource(content, outcome.Lines)
	if err != nil {
		return fmt.Errorf("fix %s: %w", outcome.Path, err)
	}
	if n == 0 {
		return nil
	}

	outcome.Diff, err = fix.GenerateDiff(DisplayPath(opts.WorkingDir, outcome.Path), content, fixed)
	if err != nil {
		return fmt.Errorf("diff %s: %w", outcome.Path, err)
	}
	outcome.Fixed = n
	if opts.DryRun {
		return nil
	}

	if err := fsutil.Replace(ctx, snap, []byte(fixed)); err != nil {
		return fmt.Errorf("write %s: %w", outcome.Path, err)
	}
	outcome.Written = true
	outcome.Lines, outcome.Commands = CheckSource(opts.Pack, fixed, opts.Lint)
	return nil
}

// DisplayPath returns path relative to workDir with forward slashes, or
// path unchanged when it lies outside workDir.
func DisplayPath(workDir, path string) string {
	base, err := resolveWorkDir(workDir)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
