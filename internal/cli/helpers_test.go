package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	opts   *Options
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv(stdin string) *testEnv {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	opts := NewOptions()
	opts.Stdout = stdout
	opts.Stderr = stderr
	opts.Stdin = strings.NewReader(stdin)
	opts.Logger = log.New(io.Discard)

	return &testEnv{opts: opts, stdout: stdout, stderr: stderr}
}

// run executes the command tree with args and returns the exit status.
func (e *testEnv) run(t *testing.T, args ...string) int {
	t.Helper()
	return e.runContext(t, context.Background(), args...)
}

func (e *testEnv) runContext(t *testing.T, ctx context.Context, args ...string) int {
	t.Helper()
	if args == nil {
		args = []string{}
	}
	args = append([]string{"--no-color"}, args...)
	err := execute(ctx, e.opts, args)
	e.opts.Cleanup()
	return ExitCode(err)
}

func writeMessage(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func readMessage(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
