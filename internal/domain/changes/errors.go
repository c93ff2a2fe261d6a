package changes

import (
	cmerrors "github.com/relicta-tech/commit-msg/internal/errors"
)

// Commit message errors. They match any error of the same kind via errors.Is.
var (
	// ErrEmptyMessage indicates nothing is left after stripping comments and blank lines.
	ErrEmptyMessage = cmerrors.New(cmerrors.KindEmpty, "empty commit message")

	// ErrInvalidFormat indicates a header that does not start with an accepted type.
	ErrInvalidFormat = cmerrors.New(cmerrors.KindInvalidFormat, "invalid conventional commits header")

	// ErrIO indicates the message could not be read or written.
	// Normalize never returns it; the hook boundary does.
	ErrIO = cmerrors.New(cmerrors.KindIO, "io error")
)
