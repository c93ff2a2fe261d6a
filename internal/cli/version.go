package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relicta-tech/commit-msg/internal/version"
)

func newVersionCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := opts.resolvedVersion()
			if opts.JSONOutput {
				return opts.PrintJSON(map[string]string{
					"version": info.Version,
					"commit":  info.Commit,
					"date":    info.Date,
				})
			}

			writeln(opts.Stdout, fmt.Sprintf("commit-msg %s", info.Version))
			if opts.Verbose {
				writeln(opts.Stdout, fmt.Sprintf("  commit: %s", info.Commit))
				writeln(opts.Stdout, fmt.Sprintf("  built:  %s", info.Date))
			}
			return nil
		},
	}
}

// resolvedVersion falls back to the embedded VERSION file when no version
// was injected at link time.
func (o *Options) resolvedVersion() VersionInfo {
	info := o.Version
	if info.Version == "" || info.Version == "dev" {
		info.Version = version.Get()
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return info
}
