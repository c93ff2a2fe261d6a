package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/relicta-tech/commit-msg/internal/config"
	cmerrors "github.com/relicta-tech/commit-msg/internal/errors"
)

// usageLine is printed when the hook is invoked with the wrong arguments.
const usageLine = "Usage: commit-msg <commit-msg-file>"

// NewRootCommand builds the command tree around opts.
func NewRootCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit-msg <commit-msg-file>",
		Short: "Normalize and validate a commit message",
		Long: `commit-msg is a git commit-msg hook.

It reads the proposed commit message, strips comment lines and stray blank
lines, fixes an accidentally capitalized type ("Feat:" becomes "feat:"),
separates the header from the body with a blank line, and rejects headers
that do not follow the "type(scope): subject" convention.

The file is rewritten only when the cleaned message differs. Pass "-" to
read from stdin and write the cleaned message to stdout.

Install it as .git/hooks/commit-msg, or call it from your hook manager:

  commit-msg "$1"`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return &UsageError{Err: err}
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.applyColorProfile()
			switch cmd.Name() {
			case "version", "help", "types":
				return nil
			}
			return opts.initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runHook(cmd.Context(), args[0])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetOut(opts.Stdout)
	cmd.SetErr(opts.Stderr)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "config file (default: .commit-msg.yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVar(&opts.JSONOutput, "json", false, "output results as JSON")
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "validate without rewriting the message file")

	cmd.AddCommand(newVersionCommand(opts))
	cmd.AddCommand(newTypesCommand(opts))
	cmd.AddCommand(newConfigCommand(opts))
	cmd.AddCommand(newCheckCommand(opts))

	return cmd
}

// ExecuteContext runs the command tree with a context for graceful shutdown.
func ExecuteContext(ctx context.Context, opts *Options) error {
	return execute(ctx, opts, nil)
}

// execute runs the command tree with args; nil args means os.Args.
func execute(ctx context.Context, opts *Options, args []string) error {
	cmd := NewRootCommand(opts)
	if args != nil {
		cmd.SetArgs(args)
	}
	err := cmd.ExecuteContext(ctx)

	var usage *UsageError
	if errors.As(err, &usage) && !IsReported(err) {
		opts.PrintError(opts.Stderr, usage.Error())
		writeln(opts.Stderr, usageLine)
		return &ReportedError{Err: err}
	}
	return err
}

// initConfig loads configuration and applies flags on top of it.
func (o *Options) initConfig() error {
	const op = "cli.initConfig"

	loader := config.NewLoader()
	if o.ConfigFile != "" {
		loader.WithConfigPath(o.ConfigFile)
	}

	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	o.Config = cfg

	o.applyGlobalFlags()

	if err := config.NewValidator().WithWarningWriter(o.Stderr).Validate(cfg); err != nil {
		return cmerrors.E(op, "invalid configuration", err)
	}

	o.configureLoggerFormat()
	o.configureLogLevel()
	if err := o.configureLogFile(); err != nil {
		return err
	}

	if path := loader.GetConfigPath(); path != "" {
		o.Logger.Debug("loaded configuration", "path", path)
	}
	return nil
}

// applyGlobalFlags applies global CLI flags to the configuration.
func (o *Options) applyGlobalFlags() {
	if o.Verbose {
		o.Config.Output.Verbose = true
		o.Config.Output.Quiet = false
	}
	if o.DryRun {
		o.Config.Message.DryRun = true
	}
	if o.JSONOutput {
		o.Config.Output.Format = "json"
	}
	if o.LogLevel != "" {
		o.Config.Output.LogLevel = o.LogLevel
	}
	if o.NoColor {
		o.Config.Output.Color = false
	}
	o.applyColorProfile()
}

// applyColorProfile switches lipgloss to plain ASCII when color is off.
func (o *Options) applyColorProfile() {
	if o.NoColor || (o.Config != nil && !o.Config.Output.Color) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// configureLoggerFormat configures the logger format based on settings.
func (o *Options) configureLoggerFormat() {
	if o.IsJSON() {
		o.Logger.SetFormatter(log.JSONFormatter)
		o.Logger.SetReportTimestamp(true)
	} else if !o.Config.Output.Color {
		o.Logger.SetFormatter(log.TextFormatter)
	}
}

// configureLogLevel sets the logger level based on configuration.
func (o *Options) configureLogLevel() {
	switch o.Config.Output.LogLevel {
	case "debug":
		o.Logger.SetLevel(log.DebugLevel)
	case "warn":
		o.Logger.SetLevel(log.WarnLevel)
	case "error":
		o.Logger.SetLevel(log.ErrorLevel)
	default:
		o.Logger.SetLevel(log.InfoLevel)
	}

	if o.IsVerbose() {
		o.Logger.SetLevel(log.DebugLevel)
	}
}

// configureLogFile sets up log file output if specified.
func (o *Options) configureLogFile() error {
	if o.Config.Output.LogFile == "" {
		return nil
	}

	f, err := os.OpenFile(o.Config.Output.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return cmerrors.ConfigWrap(err, "cli.configureLogFile", fmt.Sprintf("failed to open log file %s", o.Config.Output.LogFile))
	}
	o.LogFile = f
	o.Logger.SetOutput(f)
	return nil
}
