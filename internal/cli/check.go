package cli

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/relicta-tech/commit-msg/internal/domain/changes"
	cmerrors "github.com/relicta-tech/commit-msg/internal/errors"
)

func newCheckCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Validate commit message files without rewriting them",
		Long: `Validate one or more commit message files, e.g. messages exported in CI.

Files are checked concurrently and never modified. The exit status is that
of the first failing file in argument order.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
				return &UsageError{Err: err}
			}
			for _, arg := range args {
				if arg == stdinPath {
					return &UsageError{Err: errors.New(`check does not read from stdin; use "commit-msg -"`)}
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runCheck(cmd.Context(), args)
		},
	}
}

// checkFiles normalizes every file concurrently and returns one result per
// path, in argument order, plus the error of each failing file.
func (o *Options) checkFiles(ctx context.Context, paths []string) ([]hookResult, []error) {
	results := make([]hookResult, len(paths))
	errs := make([]error, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		g.Go(func() error {
			results[i], errs[i] = o.checkFile(gCtx, path)
			// A failing file must not cancel the others.
			return nil
		})
	}
	_ = g.Wait()

	return results, errs
}

func (o *Options) checkFile(ctx context.Context, path string) (hookResult, error) {
	const op = "cli.checkFile"

	result := hookResult{Path: path, Status: statusValidated, DryRun: true}

	fail := func(err error) (hookResult, error) {
		result.Status = statusRejected
		result.Error = err.Error()
		result.Kind = cmerrors.GetKind(err).String()
		result.ExitCode = ExitCode(err)
		return result, err
	}

	if err := ctx.Err(); err != nil {
		return fail(cmerrors.Wrap(err, cmerrors.KindCanceled, op, "check interrupted"))
	}

	raw, err := o.readMessage(path)
	if err != nil {
		return fail(err)
	}

	cleaned, err := changes.Normalize(raw)
	if err != nil {
		return fail(err)
	}

	result.Changed = cleaned != raw
	if result.Changed {
		result.Status = statusWouldClean
	}
	if h, ok := changes.ParseHeader(firstLine(cleaned)); ok {
		result.Header = &h
	}
	return result, nil
}

func (o *Options) runCheck(ctx context.Context, paths []string) error {
	results, errs := o.checkFiles(ctx, paths)

	var first error
	for i, err := range errs {
		if err != nil {
			o.Logger.Debug("commit message rejected", "path", paths[i], "kind", results[i].Kind, "err", err)
			if first == nil {
				first = err
			}
		}
	}

	if o.IsJSON() {
		if err := o.PrintJSON(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			switch r.Status {
			case statusRejected:
				o.PrintError(o.Stderr, fmt.Sprintf("%s: %s", r.Path, r.Error))
			case statusWouldClean:
				if !o.IsQuiet() {
					o.PrintWarning(o.Stdout, r.Path+": valid, would be cleaned")
				}
			default:
				if !o.IsQuiet() {
					o.PrintSuccess(o.Stdout, r.Path+": valid")
				}
			}
		}
	}

	if first != nil {
		return &ReportedError{Err: first}
	}
	return nil
}
