package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relicta-tech/commit-msg/internal/domain/changes"
)

type typeEntry struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

func newTypesCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the accepted commit types",
		Long: `List the commit types accepted in a commit header.

A header must start with one of these types, optionally followed by a
scope in parentheses, and then a colon:

  feat(parser): add support for nested rules
  fix: handle empty input`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			types := changes.CommitTypes()

			if opts.JSONOutput {
				entries := make([]typeEntry, len(types))
				for i, t := range types {
					entries[i] = typeEntry{Type: t.String(), Description: t.Description()}
				}
				return opts.PrintJSON(entries)
			}

			opts.PrintTitle(opts.Stdout, "Accepted commit types")
			for _, t := range types {
				name := opts.Styles.Bold.Render(fmt.Sprintf("%-10s", t.String()))
				writeln(opts.Stdout, "  "+name+" "+opts.Styles.Subtle.Render(t.Description()))
			}
			return nil
		},
	}
}
