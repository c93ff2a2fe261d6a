// Package config provides configuration management for commit-msg.
package config

// Config is the root configuration for commit-msg.
//
// The accepted commit types are intentionally not configurable.
type Config struct {
	// Output configures output and logging.
	Output OutputConfig `mapstructure:"output" json:"output" yaml:"output" toml:"output"`
	// Message configures how the commit message file is handled.
	Message MessageConfig `mapstructure:"message" json:"message" yaml:"message" toml:"message"`
}

// OutputConfig configures output settings.
type OutputConfig struct {
	// Format is the output format (text, json).
	Format string `mapstructure:"format" json:"format" yaml:"format" toml:"format"`
	// Color enables colored output.
	Color bool `mapstructure:"color" json:"color" yaml:"color" toml:"color"`
	// Verbose enables verbose output.
	Verbose bool `mapstructure:"verbose" json:"verbose" yaml:"verbose" toml:"verbose"`
	// Quiet suppresses success lines.
	Quiet bool `mapstructure:"quiet" json:"quiet" yaml:"quiet" toml:"quiet"`
	// LogLevel is the log level (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level" json:"log_level" yaml:"log_level" toml:"log_level"`
	// LogFile is the path to a log file.
	LogFile string `mapstructure:"log_file" json:"log_file,omitempty" yaml:"log_file,omitempty" toml:"log_file,omitempty"`
}

// MessageConfig configures commit message handling.
type MessageConfig struct {
	// MaxSize is the largest message file, in bytes, that will be read.
	MaxSize int64 `mapstructure:"max_size" json:"max_size" yaml:"max_size" toml:"max_size"`
	// DryRun reports what would change without rewriting the file.
	DryRun bool `mapstructure:"dry_run" json:"dry_run" yaml:"dry_run" toml:"dry_run"`
}

// DefaultMaxSize is the default value of message.max_size.
const DefaultMaxSize int64 = 1 << 20

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format:   "text",
			Color:    true,
			LogLevel: "info",
		},
		Message: MessageConfig{
			MaxSize: DefaultMaxSize,
		},
	}
}

// ConfigFileNames to search for.
var ConfigFileNames = []string{
	".commit-msg",
}

// ConfigFileExtensions supported by Viper.
var ConfigFileExtensions = []string{
	"yaml",
	"yml",
	"json",
	"toml",
}
