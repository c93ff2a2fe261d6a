package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/relicta-tech/commit-msg/internal/config"
	cmerrors "github.com/relicta-tech/commit-msg/internal/errors"
)

func newConfigCommand(opts *Options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration commit-msg would run with, after merging
defaults, the config file, COMMIT_MSG_* environment variables and flags.

The output can be saved as .commit-msg.yaml, .commit-msg.toml or
.commit-msg.json and edited.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.JSONOutput && !cmd.Flags().Changed("format") {
				format = "json"
			}
			data, err := MarshalConfig(opts.Config, format)
			if err != nil {
				return &UsageError{Err: err}
			}
			_, err = opts.Stdout.Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, toml, json)")
	return cmd
}

// MarshalConfig encodes cfg in the given format.
func MarshalConfig(cfg *config.Config, format string) ([]byte, error) {
	const op = "cli.MarshalConfig"

	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	switch strings.ToLower(format) {
	case "yaml", "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, cmerrors.Wrap(err, cmerrors.KindInternal, op, "failed to encode yaml")
		}
		if err := enc.Close(); err != nil {
			return nil, cmerrors.Wrap(err, cmerrors.KindInternal, op, "failed to encode yaml")
		}
		return buf.Bytes(), nil
	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return nil, cmerrors.Wrap(err, cmerrors.KindInternal, op, "failed to encode toml")
		}
		return data, nil
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, cmerrors.Wrap(err, cmerrors.KindInternal, op, "failed to encode json")
		}
		return append(data, '\n'), nil
	default:
		return nil, cmerrors.Validation(op, fmt.Sprintf("unsupported format %q", format))
	}
}
