package cli

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/relicta-tech/commit-msg/internal/config"
	"github.com/relicta-tech/commit-msg/internal/domain/changes"
	cmerrors "github.com/relicta-tech/commit-msg/internal/errors"
)

func TestRootCommand_Silenced(t *testing.T) {
	cmd := NewRootCommand(newTestEnv("").opts)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)
}

func TestRootCommand_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"too many arguments", []string{"a", "b"}},
		{"unknown flag", []string{"--bogus", "COMMIT_EDITMSG"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv("")

			code := env.run(t, tt.args...)

			assert.Equal(t, ExitUsage, code)
			assert.Contains(t, env.stderr.String(), usageLine)
			assert.Empty(t, env.stdout.String())
		})
	}
}

func TestTypesCommand(t *testing.T) {
	env := newTestEnv("")

	require.Equal(t, ExitOK, env.run(t, "types"))

	out := env.stdout.String()
	for _, ct := range changes.CommitTypes() {
		assert.Contains(t, out, ct.String())
		assert.Contains(t, out, ct.Description())
	}
}

func TestTypesCommand_JSON(t *testing.T) {
	env := newTestEnv("")

	require.Equal(t, ExitOK, env.run(t, "types", "--json"))

	var entries []typeEntry
	require.NoError(t, json.Unmarshal(env.stdout.Bytes(), &entries))
	require.Len(t, entries, len(changes.CommitTypes()))
	assert.Equal(t, "build", entries[0].Type)
	assert.Equal(t, "test", entries[len(entries)-1].Type)
}

func TestNoColor_CommandsWithoutConfig(t *testing.T) {
	t.Cleanup(func() { lipgloss.SetColorProfile(termenv.Ascii) })

	for _, name := range []string{"types", "version"} {
		t.Run(name, func(t *testing.T) {
			lipgloss.SetColorProfile(termenv.TrueColor)
			env := newTestEnv("")

			require.Equal(t, ExitOK, env.run(t, name))

			assert.Equal(t, termenv.Ascii, lipgloss.ColorProfile())
			assert.NotContains(t, env.stdout.String(), "\x1b[")
		})
	}
}

func TestConfigCommand(t *testing.T) {
	t.Run("yaml by default", func(t *testing.T) {
		env := newTestEnv("")
		require.Equal(t, ExitOK, env.run(t, "config"))

		var cfg config.Config
		require.NoError(t, yaml.Unmarshal(env.stdout.Bytes(), &cfg))
		assert.Equal(t, config.DefaultMaxSize, cfg.Message.MaxSize)
		assert.Equal(t, "text", cfg.Output.Format)
	})

	t.Run("toml", func(t *testing.T) {
		env := newTestEnv("")
		require.Equal(t, ExitOK, env.run(t, "config", "--format", "toml"))

		var cfg config.Config
		require.NoError(t, toml.Unmarshal(env.stdout.Bytes(), &cfg))
		assert.Equal(t, config.DefaultMaxSize, cfg.Message.MaxSize)
	})

	t.Run("json flag", func(t *testing.T) {
		env := newTestEnv("")
		require.Equal(t, ExitOK, env.run(t, "config", "--json"))

		var cfg config.Config
		require.NoError(t, json.Unmarshal(env.stdout.Bytes(), &cfg))
		assert.Equal(t, "json", cfg.Output.Format)
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv("COMMIT_MSG_MESSAGE_DRY_RUN", "true")
		env := newTestEnv("")
		require.Equal(t, ExitOK, env.run(t, "config", "-f", "json"))

		var cfg config.Config
		require.NoError(t, json.Unmarshal(env.stdout.Bytes(), &cfg))
		assert.True(t, cfg.Message.DryRun)
	})

	t.Run("unsupported format", func(t *testing.T) {
		env := newTestEnv("")
		assert.Equal(t, ExitUsage, env.run(t, "config", "--format", "ini"))
		assert.Contains(t, env.stderr.String(), "unsupported format")
	})
}

func TestMarshalConfig_NilUsesDefaults(t *testing.T) {
	data, err := MarshalConfig(nil, "YAML")
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_size: 1048576")
}

func TestVersionCommand(t *testing.T) {
	t.Run("injected version", func(t *testing.T) {
		env := newTestEnv("")
		env.opts.SetVersion("v1.2.3", "abc123", "2026-01-01")

		require.Equal(t, ExitOK, env.run(t, "version", "--verbose"))
		assert.Contains(t, env.stdout.String(), "commit-msg v1.2.3")
		assert.Contains(t, env.stdout.String(), "commit: abc123")
		assert.Contains(t, env.stdout.String(), "built:  2026-01-01")
	})

	t.Run("embedded fallback", func(t *testing.T) {
		env := newTestEnv("")
		env.opts.SetVersion("dev", "", "")

		require.Equal(t, ExitOK, env.run(t, "version", "--json"))

		var out map[string]string
		require.NoError(t, json.Unmarshal(env.stdout.Bytes(), &out))
		assert.NotEqual(t, "dev", out["version"])
		assert.Regexp(t, `^v\d+\.\d+\.\d+`, out["version"])
		assert.Equal(t, "none", out["commit"])
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain error", errors.New("boom"), ExitError},
		{"usage", &UsageError{Err: errors.New("accepts 1 arg")}, ExitUsage},
		{"empty", changes.ErrEmptyMessage, ExitEmpty},
		{"invalid format", changes.ErrInvalidFormat, ExitInvalidFormat},
		{"io", cmerrors.IO("op", "read failed"), ExitIO},
		{"canceled", cmerrors.New(cmerrors.KindCanceled, "canceled"), ExitCanceled},
		{"config", cmerrors.Config("op", "bad"), ExitError},
		{"reported keeps kind", &ReportedError{Err: changes.ErrInvalidFormat}, ExitInvalidFormat},
		{"reported usage", &ReportedError{Err: &UsageError{Err: errors.New("x")}}, ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestIsReported(t *testing.T) {
	assert.False(t, IsReported(nil))
	assert.False(t, IsReported(errors.New("x")))
	assert.True(t, IsReported(&ReportedError{Err: errors.New("x")}))
}

func TestOptions_Flags(t *testing.T) {
	opts := NewOptions()
	assert.False(t, opts.IsJSON())
	assert.False(t, opts.IsDryRun())
	assert.False(t, opts.IsQuiet())
	assert.Equal(t, config.DefaultMaxSize, opts.MaxMessageSize())

	opts.JSONOutput = true
	opts.DryRun = true
	assert.True(t, opts.IsJSON())
	assert.True(t, opts.IsDryRun())

	opts.Config.Message.MaxSize = 0
	assert.Equal(t, config.DefaultMaxSize, opts.MaxMessageSize())
}

func TestPrintHelpers(t *testing.T) {
	env := newTestEnv("")
	opts := env.opts

	opts.PrintSuccess(env.stdout, "ok")
	opts.PrintError(env.stdout, "bad")
	opts.PrintWarning(env.stdout, "hmm")
	opts.PrintInfo(env.stdout, "fyi")
	opts.PrintInfo(nil, "dropped")

	out := env.stdout.String()
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "bad")
	assert.Contains(t, out, "hmm")
	assert.Contains(t, out, "fyi")
}
