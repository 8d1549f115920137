// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/wavsort/pkg/testutils"
	"gitlab.com/tozd/go/errors"
)

type cmdResult struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, args ...string) cmdResult {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return cmdResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func listFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err, "listing output tree")
	return files
}

func TestRootCommand(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name        string
		setup       func(t *testing.T, in string)
		extraArgs   []string
		wantErr     bool
		errContains string
		validate    func(t *testing.T, res cmdResult, in, out string)
	}{
		{
			name: "copies_invalid_files",
			setup: func(t *testing.T, in string) {
				testutils.Tree(t, in)
			},
			validate: func(t *testing.T, res cmdResult, in, out string) {
				bad, err := os.ReadFile(filepath.Join(in, "a", "c", "bad.wav"))
				require.NoError(t, err)
				copied, err := os.ReadFile(filepath.Join(out, "a", "c", "bad.wav"))
				require.NoError(t, err, "invalid file should be copied")
				assert.Equal(t, bad, copied, "copy should match the original bytes")
				assert.NoFileExists(t, filepath.Join(out, "a", "b", "ok.wav"))

				assert.Contains(t, res.stdout, "✓ Valid (not copied): "+filepath.Join(in, "a", "b", "ok.wav"))
				assert.Contains(t, res.stdout, "→ Copied invalid: "+filepath.Join(out, "a", "c", "bad.wav"))
				assert.Contains(t, res.stderr, "✗ Validation error for "+filepath.Join(in, "a", "c", "bad.wav"))
				assert.Contains(t, res.stdout, "Valid files: 1\nInvalid files: 1\nTotal files processed: 2.")
			},
		},
		{
			name: "dry_run_copies_nothing",
			setup: func(t *testing.T, in string) {
				testutils.Tree(t, in)
			},
			extraArgs: []string{"--dry-run"},
			validate: func(t *testing.T, res cmdResult, in, out string) {
				assert.DirExists(t, out, "output root is created under dry-run")
				assert.Empty(t, listFiles(t, out))
				assert.Contains(t, res.stdout, "⟳ Would copy invalid: "+filepath.Join(out, "a", "c", "bad.wav"))
				assert.NotContains(t, res.stdout, "Copied invalid")
				assert.Contains(t, res.stdout, "Valid files: 1\nInvalid files: 1")
			},
		},
		{
			name: "ignores_non_audio",
			setup: func(t *testing.T, in string) {
				testutils.WriteFile(t, in, "notes.txt", []byte("hello\n"))
				testutils.WriteFile(t, in, "track.WAV", []byte("not checked"))
			},
			validate: func(t *testing.T, res cmdResult, in, out string) {
				assert.NotContains(t, res.stdout, "notes.txt")
				assert.NotContains(t, res.stderr, "notes.txt")
				assert.Empty(t, listFiles(t, out))
				assert.Contains(t, res.stdout, "Total files processed: 0.")
			},
		},
		{
			name:  "empty_input",
			setup: func(t *testing.T, in string) {},
			validate: func(t *testing.T, res cmdResult, in, out string) {
				assert.DirExists(t, out)
				assert.Contains(t, res.stdout, "Valid files: 0\nInvalid files: 0\nTotal files processed: 0.")
			},
		},
		{
			name: "config_file_enables_dry_run",
			setup: func(t *testing.T, in string) {
				testutils.Tree(t, in)
				testutils.WriteFile(t, in, "settings.yaml", []byte("dry_run: true\nignore: [\"a/b/**\"]\n"))
			},
			extraArgs: []string{"--config", "{in}/settings.yaml"},
			validate: func(t *testing.T, res cmdResult, in, out string) {
				assert.Empty(t, listFiles(t, out))
				assert.NotContains(t, res.stdout, "ok.wav", "ignored subtree should not be scanned")
				assert.Contains(t, res.stdout, "Valid files: 0\nInvalid files: 1")
			},
		},
		{
			name: "config_file_parse_error",
			setup: func(t *testing.T, in string) {
				testutils.WriteFile(t, in, "settings.yaml", []byte("dry_run: [\n"))
			},
			extraArgs:   []string{"-c", "{in}/settings.yaml"},
			wantErr:     true,
			errContains: "loading config",
		},
		{
			name: "bad_ignore_pattern",
			setup: func(t *testing.T, in string) {
				testutils.WriteFile(t, in, "settings.json", []byte(`{"ignore": ["[oops"]}`))
			},
			extraArgs:   []string{"-c", "{in}/settings.json"},
			wantErr:     true,
			errContains: "validating config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := t.TempDir()
			out := filepath.Join(t.TempDir(), "invalid")
			tt.setup(t, in)

			args := []string{in, out}
			for _, a := range tt.extraArgs {
				args = append(args, strings.ReplaceAll(a, "{in}", in))
			}

			res := execute(t, args...)
			if tt.wantErr {
				require.Error(t, res.err)
				assert.Contains(t, res.err.Error(), tt.errContains)
				return
			}
			require.NoError(t, res.err)
			if tt.validate != nil {
				tt.validate(t, res, in, out)
			}
		})
	}
}

func TestRootCommandUnwritableOutput(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	in := t.TempDir()
	testutils.Tree(t, in)
	blocker := testutils.WriteFile(t, t.TempDir(), "blocker", []byte("regular file"))

	res := execute(t, in, filepath.Join(blocker, "invalid"))
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "creating output directory")
	assert.NotContains(t, res.stdout, "Validation complete.", "no summary after a fatal error")
}

func TestRootCommandOutputOverlapsInput(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	in := t.TempDir()
	_, bad := testutils.Tree(t, in)

	t.Run("same_path", func(t *testing.T) {
		res := execute(t, in, in+string(filepath.Separator))
		require.Error(t, res.err)
		assert.Contains(t, res.err.Error(), "must differ from input directory")
	})

	t.Run("symlinked_path", func(t *testing.T) {
		link := filepath.Join(t.TempDir(), "out")
		require.NoError(t, os.Symlink(in, link))

		res := execute(t, in, link)
		require.Error(t, res.err)
		assert.Contains(t, res.err.Error(), "target is the source file")
	})

	got, err := os.ReadFile(filepath.Join(in, "a", "c", "bad.wav"))
	require.NoError(t, err)
	assert.Equal(t, bad, got, "invalid original must survive")
}

func TestRootCommandArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no_args", args: nil},
		{name: "one_arg", args: []string{"in"}},
		{name: "three_args", args: []string{"in", "out", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, tt.args...)
			require.Error(t, res.err)
			assert.Contains(t, res.err.Error(), "accepts 2 arg(s)")
		})
	}
}

func TestVersionFlag(t *testing.T) {
	res := execute(t, "--version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "wavsort version info")
	assert.Contains(t, res.stdout, GetVersionInfo().GoVersion)
}

func TestReportFatal(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	buf := &bytes.Buffer{}
	reportFatal(buf, errors.New("creating output directory /x: permission denied"))
	assert.Contains(t, buf.String(), "creating output directory /x: permission denied")
}

func TestNewLogger(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, newLogger(&bytes.Buffer{}, false).GetLevel())
	assert.Equal(t, zerolog.DebugLevel, newLogger(&bytes.Buffer{}, true).GetLevel())
}
