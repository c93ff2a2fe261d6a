package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/relicta-tech/commit-msg/internal/domain/changes"
	cmerrors "github.com/relicta-tech/commit-msg/internal/errors"
	"github.com/relicta-tech/commit-msg/internal/fileutil"
)

// stdinPath selects stdin as the message source and stdout as the sink.
const stdinPath = "-"

// exampleHeader is shown when a header is rejected.
const exampleHeader = "feat(parser): add support for nested rules"

// Hook result statuses.
const (
	statusValidated  = "validated"
	statusCleaned    = "cleaned"
	statusWouldClean = "would_clean"
	statusRejected   = "rejected"
)

// hookResult is the JSON view of one hook run.
type hookResult struct {
	Status   string          `json:"status"`
	Path     string          `json:"path"`
	Changed  bool            `json:"changed"`
	DryRun   bool            `json:"dry_run,omitempty"`
	Header   *changes.Header `json:"header,omitempty"`
	Message  string          `json:"message,omitempty"`
	Error    string          `json:"error,omitempty"`
	Kind     string          `json:"kind,omitempty"`
	ExitCode int             `json:"exit_code"`
}

// runHook reads the message at path, normalizes it and writes it back if it changed.
func (o *Options) runHook(ctx context.Context, path string) error {
	const op = "cli.runHook"

	raw, err := o.readMessage(path)
	if err != nil {
		return o.reject(path, err)
	}
	o.Logger.Debug("read commit message", "path", path, "bytes", len(raw))

	cleaned, err := changes.Normalize(raw)
	if err != nil {
		return o.reject(path, err)
	}

	result := hookResult{
		Status:  statusValidated,
		Path:    path,
		Changed: cleaned != raw,
		DryRun:  o.IsDryRun(),
	}
	if h, ok := changes.ParseHeader(firstLine(cleaned)); ok {
		result.Header = &h
	}
	o.Logger.Debug("commit message normalized", "changed", result.Changed, "header", firstLine(cleaned))

	if ctx != nil && ctx.Err() != nil {
		return o.reject(path, cmerrors.Wrap(ctx.Err(), cmerrors.KindCanceled, op, "interrupted before writing"))
	}

	switch {
	case path == stdinPath:
		// There is no file to protect, so the cleaned text is always streamed.
		if result.Changed {
			result.Status = statusCleaned
			if result.DryRun {
				result.Status = statusWouldClean
			}
		}
		if o.IsJSON() {
			result.Message = cleaned
		} else if _, err := io.WriteString(o.Stdout, cleaned); err != nil {
			return o.reject(path, cmerrors.IOWrap(err, "cli.writeMessage", "failed to write cleaned commit message"))
		}
	case result.DryRun && result.Changed:
		result.Status = statusWouldClean
	case result.Changed:
		if _, err := fileutil.RewriteIfChanged(path, raw, cleaned); err != nil {
			return o.reject(path, cmerrors.IOWrap(err, "cli.writeMessage", "failed to rewrite cleaned commit message"))
		}
		result.Status = statusCleaned
		o.Logger.Debug("rewrote commit message", "path", path)
	}

	if o.IsJSON() {
		return o.PrintJSON(result)
	}
	o.reportSuccess(path, result, cleaned)
	return nil
}

// readMessage reads the commit message from a file or, for "-", from stdin.
func (o *Options) readMessage(path string) (string, error) {
	const op = "cli.readMessage"

	var (
		data []byte
		err  error
	)
	if path == stdinPath {
		data, err = fileutil.ReadAllLimited(o.Stdin, o.MaxMessageSize())
	} else {
		data, err = fileutil.ReadFileLimited(path, o.MaxMessageSize())
	}
	if err != nil {
		return "", cmerrors.IOWrap(err, op, "failed to read commit message file")
	}
	return string(data), nil
}

// statusWriter is where human-readable status lines go. When the cleaned
// message is streamed to stdout, status moves to stderr.
func (o *Options) statusWriter(path string) io.Writer {
	if path == stdinPath {
		return o.Stderr
	}
	return o.Stdout
}

func (o *Options) reportSuccess(path string, result hookResult, cleaned string) {
	if o.IsQuiet() {
		return
	}
	w := o.statusWriter(path)

	switch result.Status {
	case statusCleaned:
		o.PrintSuccess(w, "Commit message cleaned and validated.")
	case statusWouldClean:
		o.PrintWarning(w, "Commit message is valid but would be cleaned (dry run).")
		if o.IsVerbose() {
			for _, line := range strings.Split(strings.TrimSuffix(cleaned, "\n"), "\n") {
				o.PrintSubtle(w, "  "+line)
			}
		}
	default:
		o.PrintSuccess(w, "Commit message validated.")
	}

	if o.IsVerbose() && result.Header != nil {
		o.PrintSubtle(w, "header: "+result.Header.String())
		o.PrintSubtle(w, "type: "+result.Header.Type.String())
		if result.Header.Scope != "" {
			o.PrintSubtle(w, "scope: "+result.Header.Scope)
		}
		if result.Header.Breaking {
			o.PrintSubtle(w, "breaking change")
		}
	}
}

// reject reports err to the user and returns it marked as reported.
func (o *Options) reject(path string, err error) error {
	kind := cmerrors.GetKind(err)
	o.Logger.Debug("commit message rejected", "path", path, "kind", kind.String(), "err", err)

	if o.IsJSON() {
		result := hookResult{
			Status:   statusRejected,
			Path:     path,
			DryRun:   o.IsDryRun(),
			Error:    err.Error(),
			Kind:     kind.String(),
			ExitCode: ExitCode(err),
		}
		if jsonErr := o.PrintJSON(result); jsonErr != nil {
			return errors.Join(err, jsonErr)
		}
		return &ReportedError{Err: err}
	}

	switch kind {
	case cmerrors.KindEmpty:
		o.PrintError(o.Stderr, "Empty commit message")
	case cmerrors.KindInvalidFormat:
		o.PrintError(o.Stderr, "Commit message must follow Conventional Commits format.")
		o.PrintSubtle(o.Stderr, "Example: `"+exampleHeader+"`")
		o.PrintSubtle(o.Stderr, "Allowed types: "+allowedTypes())
		var cmErr *cmerrors.Error
		if o.IsVerbose() && errors.As(err, &cmErr) {
			if header, ok := cmErr.Details["header"].(string); ok {
				o.PrintSubtle(o.Stderr, "Got: "+header)
			}
		}
	case cmerrors.KindIO:
		o.PrintError(o.Stderr, "I/O error: "+ioMessage(err))
	case cmerrors.KindCanceled:
		o.PrintError(o.Stderr, "Operation canceled")
	default:
		o.PrintError(o.Stderr, err.Error())
	}
	return &ReportedError{Err: err}
}

func ioMessage(err error) string {
	var cmErr *cmerrors.Error
	if errors.As(err, &cmErr) {
		if cmErr.Err != nil {
			return cmErr.Message + ": " + cmErr.Err.Error()
		}
		return cmErr.Message
	}
	return err.Error()
}

func allowedTypes() string {
	types := changes.CommitTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
