package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadFileLimited(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		content     string
		maxSize     int64
		wantErr     bool
		errContains string
	}{
		{
			name:    "read small message",
			content: "feat: ok\n",
			maxSize: 100,
		},
		{
			name:    "read file at exact limit",
			content: "12345",
			maxSize: 5,
		},
		{
			name:        "file exceeds limit",
			content:     "this content is too long",
			maxSize:     10,
			wantErr:     true,
			errContains: "exceeds maximum",
		},
		{
			name:    "empty file",
			content: "",
			maxSize: 100,
		},
		{
			name:    "crlf content kept verbatim",
			content: "feat: header\r\n\r\nbody\r\n",
			maxSize: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			filePath := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
			if err := os.WriteFile(filePath, []byte(tt.content), 0600); err != nil {
				t.Fatalf("failed to create test file: %v", err)
			}

			data, err := ReadFileLimited(filePath, tt.maxSize)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				} else if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(data) != tt.content {
				t.Errorf("content mismatch: got %q, want %q", string(data), tt.content)
			}
		})
	}
}

func TestReadFileLimited_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := ReadFileLimited("/nonexistent/path/COMMIT_EDITMSG", 100)
	if !os.IsNotExist(err) {
		t.Errorf("expected os.IsNotExist error, got: %v", err)
	}
}

func TestReadFileLimited_Directory(t *testing.T) {
	t.Parallel()

	_, err := ReadFileLimited(t.TempDir(), 100)
	if err == nil || !strings.Contains(err.Error(), "is a directory") {
		t.Errorf("expected directory error, got %v", err)
	}
}

func TestReadAllLimited(t *testing.T) {
	t.Parallel()

	data, err := ReadAllLimited(strings.NewReader("fix: x"), 6)
	if err != nil || string(data) != "fix: x" {
		t.Fatalf("ReadAllLimited() = %q, %v", data, err)
	}

	if _, err := ReadAllLimited(strings.NewReader("fix: xy"), 6); err == nil {
		t.Fatal("expected size error")
	}
}

func TestAtomicWriteFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content []byte
		perm    os.FileMode
	}{
		{"write simple content", []byte("feat: ok\n"), 0600},
		{"write empty file", []byte{}, 0600},
		{"write with different permissions", []byte("fix: x\n"), 0644},
		{"write large content", []byte(strings.Repeat("x", 1024*1024)), 0600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			filePath := filepath.Join(tmpDir, "COMMIT_EDITMSG")

			if err := AtomicWriteFile(filePath, tt.content, tt.perm); err != nil {
				t.Fatalf("AtomicWriteFile failed: %v", err)
			}

			data, err := os.ReadFile(filePath)
			if err != nil {
				t.Fatalf("failed to read written file: %v", err)
			}
			if string(data) != string(tt.content) {
				t.Errorf("content mismatch: got %d bytes, want %d bytes", len(data), len(tt.content))
			}

			info, err := os.Stat(filePath)
			if err != nil {
				t.Fatalf("failed to stat file: %v", err)
			}
			if got := info.Mode().Perm(); got != tt.perm {
				t.Errorf("permissions mismatch: got %o, want %o", got, tt.perm)
			}

			entries, err := os.ReadDir(tmpDir)
			if err != nil {
				t.Fatalf("failed to read dir: %v", err)
			}
			if len(entries) != 1 {
				t.Errorf("expected only the target file, got %d entries", len(entries))
			}
		})
	}
}

func TestAtomicWriteFile_InvalidDirectory(t *testing.T) {
	t.Parallel()

	if err := AtomicWriteFile("/nonexistent/dir/COMMIT_EDITMSG", []byte("x"), 0600); err == nil {
		t.Error("expected error for nonexistent directory, got nil")
	}
}

func TestRewriteIfChanged(t *testing.T) {
	t.Parallel()

	t.Run("unchanged content is not written", func(t *testing.T) {
		t.Parallel()

		filePath := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
		if err := os.WriteFile(filePath, []byte("feat: ok\n"), 0600); err != nil {
			t.Fatal(err)
		}
		before, _ := os.Stat(filePath)

		written, err := RewriteIfChanged(filePath, "feat: ok\n", "feat: ok\n")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if written {
			t.Error("expected no write for identical content")
		}
		after, _ := os.Stat(filePath)
		if !after.ModTime().Equal(before.ModTime()) {
			t.Error("file was touched")
		}
	})

	t.Run("changed content is written and mode kept", func(t *testing.T) {
		t.Parallel()

		filePath := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
		if err := os.WriteFile(filePath, []byte("Feat: ok"), 0640); err != nil {
			t.Fatal(err)
		}
		if err := os.Chmod(filePath, 0640); err != nil {
			t.Fatal(err)
		}

		written, err := RewriteIfChanged(filePath, "Feat: ok", "feat: ok\n")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !written {
			t.Error("expected write for changed content")
		}

		data, _ := os.ReadFile(filePath)
		if string(data) != "feat: ok\n" {
			t.Errorf("content = %q", data)
		}
		info, _ := os.Stat(filePath)
		if info.Mode().Perm() != 0640 {
			t.Errorf("mode = %o, want 640", info.Mode().Perm())
		}
	})

	t.Run("missing file is created with default mode", func(t *testing.T) {
		t.Parallel()

		filePath := filepath.Join(t.TempDir(), "NEW_MSG")
		written, err := RewriteIfChanged(filePath, "", "fix: x\n")
		if err != nil || !written {
			t.Fatalf("RewriteIfChanged() = %v, %v", written, err)
		}
		info, _ := os.Stat(filePath)
		if info.Mode().Perm() != defaultPerm {
			t.Errorf("mode = %o, want %o", info.Mode().Perm(), defaultPerm)
		}
	})
}

type fakeTempFile struct {
	name     string
	writeErr error
	closed   bool
}

func (f *fakeTempFile) Name() string                { return f.name }
func (f *fakeTempFile) Chmod(os.FileMode) error     { return nil }
func (f *fakeTempFile) Write(p []byte) (int, error) { return len(p), f.writeErr }
func (f *fakeTempFile) Sync() error                 { return nil }
func (f *fakeTempFile) Close() error {
	f.closed = true
	return nil
}

func TestAtomicWriteFile_CleansUpOnFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		writeErr  error
		renameErr error
		errPrefix string
	}{
		{"write failure", errors.New("disk full"), nil, "failed to write data"},
		{"rename failure", nil, errors.New("cross-device link"), "failed to rename temp file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmp := &fakeTempFile{name: "/tmp/COMMIT_EDITMSG.tmp123", writeErr: tt.writeErr}
			var removed []string
			ops := fsOps{
				createTemp: func(string, string) (tempFile, error) { return tmp, nil },
				rename:     func(string, string) error { return tt.renameErr },
				remove: func(p string) error {
					removed = append(removed, p)
					return nil
				},
				stat: os.Stat,
			}

			err := atomicWriteFile("/tmp/COMMIT_EDITMSG", []byte("feat: x\n"), 0600, ops)
			if err == nil || !strings.HasPrefix(err.Error(), tt.errPrefix) {
				t.Fatalf("error = %v, want prefix %q", err, tt.errPrefix)
			}
			if len(removed) == 0 || removed[0] != tmp.name {
				t.Errorf("temp file not removed, removed = %v", removed)
			}
			if !tmp.closed {
				t.Error("temp file not closed")
			}
		})
	}
}

func TestRewriteIfChanged_StatError(t *testing.T) {
	t.Parallel()

	ops := defaultFSOps()
	ops.stat = func(string) (os.FileInfo, error) { return nil, os.ErrPermission }

	written, err := rewriteIfChanged("/tmp/whatever", "a", "b", ops)
	if !errors.Is(err, os.ErrPermission) || written {
		t.Errorf("rewriteIfChanged() = %v, %v", written, err)
	}
}
