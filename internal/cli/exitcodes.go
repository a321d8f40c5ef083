package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/cmdassist/pkg/pack"
	"github.com/yaklabco/cmdassist/pkg/runner"
)

// Exit codes for cmdassist.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitIssues indicates a check found invalid commands, or that a
	// command failed for a reason without a code of its own.
	ExitIssues = 1

	// ExitWarnings indicates a strict check found warnings only.
	ExitWarnings = 2

	// ExitConfigError indicates configuration or pack errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrIssuesFound is returned when a check finds invalid commands.
	ErrIssuesFound = errors.New("issues found")

	// ErrWarningsFound is returned when a strict check finds warnings.
	ErrWarningsFound = errors.New("warnings found")

	// ErrConfig wraps configuration errors.
	ErrConfig = errors.New("invalid configuration")
)

// ExitCodeFromResult determines the exit code of a check.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasFailures() {
		return ExitIssues
	}
	if strict && result.HasIssues() {
		return ExitWarnings
	}
	return ExitSuccess
}

// resultError returns the error signalling the exit code of a check.
func resultError(result *runner.Result, strict bool) error {
	switch ExitCodeFromResult(result, strict) {
	case ExitIssues:
		return ErrIssuesFound
	case ExitWarnings:
		return ErrWarningsFound
	default:
		return nil
	}
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrWarningsFound):
		return ExitWarnings
	case errors.Is(err, ErrConfig), errors.Is(err, pack.ErrInvalidPack):
		return ExitConfigError
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitIssues
	}
}

// IsResultError reports whether err only signals the outcome of a check,
// which has already been reported.
func IsResultError(err error) bool {
	return errors.Is(err, ErrIssuesFound) || errors.Is(err, ErrWarningsFound)
}
