package cli

import (
	"errors"

	cmerrors "github.com/relicta-tech/commit-msg/internal/errors"
)

// Process exit statuses. Each commit message failure has its own code so
// hook managers can tell them apart.
const (
	ExitOK            = 0
	ExitError         = 1
	ExitUsage         = 2
	ExitEmpty         = 3
	ExitInvalidFormat = 4
	ExitIO            = 5
	ExitCanceled      = 130
)

// UsageError reports invalid arguments or flags.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// ReportedError wraps an error whose diagnostic has already been shown to
// the user, so the entrypoint should not print it again.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }
func (e *ReportedError) Unwrap() error { return e.Err }

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var r *ReportedError
	return errors.As(err, &r)
}

// ExitCode maps an error returned by the command tree to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var usage *UsageError
	if errors.As(err, &usage) {
		return ExitUsage
	}

	switch cmerrors.GetKind(err) {
	case cmerrors.KindEmpty:
		return ExitEmpty
	case cmerrors.KindInvalidFormat:
		return ExitInvalidFormat
	case cmerrors.KindIO:
		return ExitIO
	case cmerrors.KindCanceled:
		return ExitCanceled
	default:
		return ExitError
	}
}
