package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	cmerrors "github.com/relicta-tech/commit-msg/internal/errors"
)

// largeMaxSize is the message.max_size above which a warning is issued.
const largeMaxSize int64 = 16 << 20

// ValidationError contains all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if len(e.Errors) > 0 {
		parts = append(parts, fmt.Sprintf("Errors:\n  - %s", strings.Join(e.Errors, "\n  - ")))
	}

	if len(e.Warnings) > 0 {
		parts = append(parts, fmt.Sprintf("Warnings:\n  - %s", strings.Join(e.Warnings, "\n  - ")))
	}

	return fmt.Sprintf("configuration validation failed:\n%s", strings.Join(parts, "\n"))
}

// HasErrors returns true if there are validation errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// HasWarnings returns true if there are validation warnings.
func (e *ValidationError) HasWarnings() bool {
	return len(e.Warnings) > 0
}

// Addf adds a formatted error to the validation error.
func (e *ValidationError) Addf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

// Warnf adds a formatted warning to the validation error.
func (e *ValidationError) Warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

// Validator validates configuration.
type Validator struct {
	errors *ValidationError
	warnW  io.Writer
}

// NewValidator creates a new configuration validator that reports warnings on stderr.
func NewValidator() *Validator {
	return &Validator{
		errors: &ValidationError{},
		warnW:  os.Stderr,
	}
}

// WithWarningWriter redirects warning output.
func (v *Validator) WithWarningWriter(w io.Writer) *Validator {
	v.warnW = w
	return v
}

// Validate validates the configuration.
func (v *Validator) Validate(cfg *Config) error {
	v.validateOutput(cfg.Output)
	v.validateMessage(cfg.Message)

	// Warnings are shown even when there are no errors
	if v.errors.HasWarnings() && v.warnW != nil {
		fmt.Fprintf(v.warnW, "\n⚠️  Configuration Warnings:\n")
		for _, warning := range v.errors.Warnings {
			fmt.Fprintf(v.warnW, "  - %s\n", warning)
		}
		fmt.Fprintf(v.warnW, "\n")
	}

	if v.errors.HasErrors() {
		return cmerrors.Validation("config.Validate", v.errors.Error())
	}

	return nil
}

// validateOutput validates output configuration.
func (v *Validator) validateOutput(cfg OutputConfig) {
	validFormats := []string{"text", "json"}
	if !slices.Contains(validFormats, cfg.Format) {
		v.errors.Addf("output.format: must be one of %v, got %q", validFormats, cfg.Format)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLogLevels, cfg.LogLevel) {
		v.errors.Addf("output.log_level: must be one of %v, got %q", validLogLevels, cfg.LogLevel)
	}

	if cfg.Quiet && cfg.Verbose {
		v.errors.Addf("output: quiet and verbose cannot both be enabled")
	}

	if cfg.LogFile != "" {
		dir := filepath.Dir(cfg.LogFile)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				v.errors.Addf("output.log_file: directory does not exist: %s", dir)
			}
		}
	}
}

// validateMessage validates message configuration.
func (v *Validator) validateMessage(cfg MessageConfig) {
	if cfg.MaxSize <= 0 {
		v.errors.Addf("message.max_size: must be positive, got %d", cfg.MaxSize)
	} else if cfg.MaxSize > largeMaxSize {
		v.errors.Warnf("message.max_size: %d bytes is unusually large for a commit message", cfg.MaxSize)
	}
}

// Validate is a convenience function to validate configuration.
func Validate(cfg *Config) error {
	return NewValidator().Validate(cfg)
}
