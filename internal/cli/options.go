// Package cli provides the command-line interface for commit-msg.
package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/relicta-tech/commit-msg/internal/config"
)

// Options holds the CLI runtime options and dependencies.
type Options struct {
	// Version information
	Version VersionInfo

	// Global flags
	ConfigFile string
	Verbose    bool
	DryRun     bool
	JSONOutput bool
	NoColor    bool
	LogLevel   string

	// Runtime state
	Config  *config.Config
	Logger  *log.Logger
	LogFile *os.File
	Styles  Styles

	// I/O streams (for testing)
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
}

// VersionInfo holds version metadata.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// Styles holds the CLI styling configuration.
type Styles struct {
	Title   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Subtle  lipgloss.Style
	Bold    lipgloss.Style
}

// DefaultStyles returns the default CLI styles.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Subtle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Bold:    lipgloss.NewStyle().Bold(true),
	}
}

// NewOptions creates a new Options instance with default values.
func NewOptions() *Options {
	return &Options{
		Styles:   DefaultStyles(),
		LogLevel: "info",
		Config:   config.DefaultConfig(),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Stdin:    os.Stdin,
		Logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			ReportCaller:    false,
		}),
	}
}

// SetVersion sets the version information.
func (o *Options) SetVersion(version, commit, date string) {
	o.Version.Version = version
	o.Version.Commit = commit
	o.Version.Date = date
}

// IsJSON returns true if JSON output is enabled.
func (o *Options) IsJSON() bool {
	return o.JSONOutput || (o.Config != nil && o.Config.Output.Format == "json")
}

// IsDryRun returns true if dry-run mode is enabled.
func (o *Options) IsDryRun() bool {
	return o.DryRun || (o.Config != nil && o.Config.Message.DryRun)
}

// IsVerbose returns true if verbose output is enabled.
func (o *Options) IsVerbose() bool {
	return o.Verbose || (o.Config != nil && o.Config.Output.Verbose)
}

// IsQuiet returns true if success lines should be suppressed.
func (o *Options) IsQuiet() bool {
	return o.Config != nil && o.Config.Output.Quiet
}

// MaxMessageSize returns the largest message that will be read.
func (o *Options) MaxMessageSize() int64 {
	if o.Config != nil && o.Config.Message.MaxSize > 0 {
		return o.Config.Message.MaxSize
	}
	return config.DefaultMaxSize
}

// Cleanup closes any open resources.
func (o *Options) Cleanup() {
	if o.LogFile != nil {
		o.LogFile.Close()
		o.LogFile = nil
	}
}

// PrintSuccess prints a success message.
func (o *Options) PrintSuccess(w io.Writer, msg string) {
	writeln(w, o.Styles.Success.Render("✓ "+msg))
}

// PrintError prints an error message.
func (o *Options) PrintError(w io.Writer, msg string) {
	writeln(w, o.Styles.Error.Render("✗ "+msg))
}

// PrintWarning prints a warning message.
func (o *Options) PrintWarning(w io.Writer, msg string) {
	writeln(w, o.Styles.Warning.Render("⚠ "+msg))
}

// PrintInfo prints an info message.
func (o *Options) PrintInfo(w io.Writer, msg string) {
	writeln(w, o.Styles.Info.Render("ℹ "+msg))
}

// PrintTitle prints a title.
func (o *Options) PrintTitle(w io.Writer, msg string) {
	writeln(w, o.Styles.Title.Render(msg))
}

// PrintSubtle prints subtle/muted text.
func (o *Options) PrintSubtle(w io.Writer, msg string) {
	writeln(w, o.Styles.Subtle.Render(msg))
}

// PrintJSON writes v as indented JSON to stdout.
func (o *Options) PrintJSON(v any) error {
	encoder := json.NewEncoder(o.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeln(w io.Writer, s string) {
	if w != nil {
		_, _ = io.WriteString(w, s+"\n")
	}
}
