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
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/filemgr/cmd/filemgr/opts"
	"github.com/walteh/filemgr/pkg/testutils"
	"gitlab.com/tozd/go/errors"
)

type execution struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, args ...string) execution {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return execution{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	require.NotNil(t, cmd, "command should not be nil")
	assert.Equal(t, "filemgr", cmd.Use, "command name should match")
	assert.NotEmpty(t, cmd.Short, "should have short description")

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{
		"create", "delete", "list", "copy-file", "copy-dir", "move-file", "move-dir",
		"compress", "decompress", "entries", "search", "find", "cat", "config", "version",
	} {
		assert.Contains(t, names, want, "missing subcommand")
	}
}

func TestTransferCommands(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteTree(t, dir, map[string]string{
		"a.txt":       "alpha",
		"b.txt":       "beta",
		"D/c.txt":     "gamma",
		"D/sub/d.txt": "delta",
		"out/":        "",
		"moved/":      "",
		"elsewhere/":  "",
	})
	path := func(name string) string { return filepath.Join(dir, name) }

	res := execute(t, "copy-file", path("a.txt"), path("b.txt"), "to", path("out"))
	require.NoError(t, res.err, "copy-file should succeed: %s", res.stderr)
	assert.Contains(t, res.stdout, "✅ copy:", "should print a summary")
	assert.FileExists(t, path("out/a.txt"))
	assert.FileExists(t, path("out/b.txt"))

	res = execute(t, "copy-dir", "-r", path("D"), "to", path("out"))
	require.NoError(t, res.err, "copy-dir should succeed: %s", res.stderr)
	assert.FileExists(t, path("out/D/sub/d.txt"))

	res = execute(t, "move-file", path("a.txt"), "to", path("moved"))
	require.NoError(t, res.err, "move-file should succeed: %s", res.stderr)
	assert.NoFileExists(t, path("a.txt"))
	assert.FileExists(t, path("moved/a.txt"))

	res = execute(t, "--separator", "into", "move-dir", "-r", path("D"), "into", path("elsewhere"))
	require.NoError(t, res.err, "move-dir should succeed: %s", res.stderr)
	assert.NoDirExists(t, path("D"))
	assert.FileExists(t, path("elsewhere/D/c.txt"))
}

func TestCommandFailures(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteTree(t, dir, map[string]string{
		"a.txt": "alpha",
		"D/x":   "x",
		"out/":  "",
	})
	path := func(name string) string { return filepath.Join(dir, name) }

	tests := []struct {
		name     string
		args     []string
		wantKind string
	}{
		{
			name:     "missing_separator",
			args:     []string{"copy-file", path("a.txt"), path("out"), path("D")},
			wantKind: "[missing_operand]",
		},
		{
			name:     "arity_mismatch",
			args:     []string{"copy-file", path("a.txt"), path("D/x"), "to", path("out"), path("D"), path("out")},
			wantKind: "[arity_mismatch]",
		},
		{
			name:     "directory_to_file_command",
			args:     []string{"copy-file", path("D"), "to", path("out")},
			wantKind: "[is_a_directory]",
		},
		{
			name:     "delete_not_empty",
			args:     []string{"delete", path("D")},
			wantKind: "[directory_not_empty]",
		},
		{
			name:     "cat_missing",
			args:     []string{"cat", path("nope.txt")},
			wantKind: "[source_not_found]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, tt.args...)
			require.Error(t, res.err, "command should fail")
			assert.True(t, errors.Is(res.err, opts.ErrReported), "failure should be reported by the result")
			assert.Contains(t, res.stderr, tt.wantKind, "stderr should name the error kind")
			assert.Contains(t, res.stderr, "⚠️", "stderr should carry the failure summary")
		})
	}

	assert.FileExists(t, path("a.txt"), "failed commands must not touch sources")
	assert.DirExists(t, path("D"))
}

func TestCreateListDelete(t *testing.T) {
	dir := t.TempDir()
	path := func(name string) string { return filepath.Join(dir, name) }

	res := execute(t, "create", "--dir", path("x/y"))
	require.NoError(t, res.err, "create --dir should succeed: %s", res.stderr)
	assert.DirExists(t, path("x/y"))

	res = execute(t, "create", path("x/y/f.txt"))
	require.NoError(t, res.err, "create should succeed: %s", res.stderr)
	assert.FileExists(t, path("x/y/f.txt"))

	res = execute(t, "list", path("x"))
	require.NoError(t, res.err, "list should succeed")
	assert.Contains(t, res.stdout, path("x/y")+string(filepath.Separator), "directories end with a separator")
	assert.NotContains(t, res.stdout, "f.txt", "default depth lists immediate children only")

	res = execute(t, "list", "-r", path("x"))
	require.NoError(t, res.err, "recursive list should succeed")
	assert.Contains(t, res.stdout, path("x/y/f.txt"))

	res = execute(t, "list", "--tree", "-r", path("x"))
	require.NoError(t, res.err, "tree list should succeed")
	assert.Contains(t, res.stdout, "y/", "tree should show the directory")
	assert.Contains(t, res.stdout, "f.txt", "tree should show the file")
	assert.Contains(t, res.stdout, "list: 1 tree(s)")

	res = execute(t, "-q", "delete", "-r", path("x"))
	require.NoError(t, res.err, "delete should succeed: %s", res.stderr)
	assert.NoDirExists(t, path("x"))
	assert.NotContains(t, res.stdout, "✗", "quiet hides affected paths")
}

func TestArchiveCommands(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteTree(t, dir, map[string]string{
		"proj/readme.md":   "hello",
		"proj/src/main.go": "package main",
	})
	path := func(name string) string { return filepath.Join(dir, name) }

	res := execute(t, "compress", "-r", path("proj"), "to", path("proj.tar.gz"))
	require.NoError(t, res.err, "compress should succeed: %s", res.stderr)
	assert.FileExists(t, path("proj.tar.gz"))

	res = execute(t, "entries", path("proj.tar.gz"))
	require.NoError(t, res.err, "entries should succeed: %s", res.stderr)
	assert.Contains(t, res.stdout, ":proj/src/main.go")

	res = execute(t, "decompress", path("proj.tar.gz"), "to", path("restored"))
	require.NoError(t, res.err, "decompress should succeed: %s", res.stderr)
	assert.Equal(t, map[string]string{
		"proj/":            "",
		"proj/readme.md":   "hello",
		"proj/src/":        "",
		"proj/src/main.go": "package main",
	}, testutils.ReadTree(t, path("restored")))

	res = execute(t, "compress", path("proj"), "to", path("proj.tar.gz"))
	require.Error(t, res.err, "existing archive needs --force")
	assert.Contains(t, res.stderr, "[already_exists]")

	res = execute(t, "--force", "compress", path("proj"), "to", path("proj.tar.gz"))
	require.NoError(t, res.err, "--force should overwrite: %s", res.stderr)
}

func TestSearchCommands(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteTree(t, dir, map[string]string{
		"notes.txt":     "first line\nthe needle here\nneedles do not count\n",
		"deep/more.txt": "needle again",
	})
	path := func(name string) string { return filepath.Join(dir, name) }

	res := execute(t, "search", "needle", path("notes.txt"))
	require.NoError(t, res.err, "search should succeed: %s", res.stderr)
	assert.Contains(t, res.stdout, path("notes.txt")+":2:the needle here")
	assert.NotContains(t, res.stdout, "needles do not count", "whole words only")

	res = execute(t, "search", "--dir", "-r", "needle", dir)
	require.NoError(t, res.err, "search --dir should succeed: %s", res.stderr)
	assert.Contains(t, res.stdout, path("deep/more.txt")+":1:needle again")

	res = execute(t, "find", "-r", "*.txt", dir)
	require.NoError(t, res.err, "find should succeed: %s", res.stderr)
	assert.Contains(t, res.stdout, path("deep/more.txt"))
	assert.Contains(t, res.stdout, path("notes.txt"))

	res = execute(t, "cat", "--start", "2", "--stop", "3", path("notes.txt"))
	require.NoError(t, res.err, "cat should succeed: %s", res.stderr)
	assert.Contains(t, res.stdout, "2:the needle here")
	assert.Contains(t, res.stdout, "3:needles do not count")
	assert.NotContains(t, res.stdout, "1:first line")
}

func TestSearchThroughLinkedDirectory(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	testutils.WriteTree(t, dir, map[string]string{"a.txt": "hello cat"})
	testutils.WriteTree(t, outside, map[string]string{"o.txt": "a cat outside"})
	testutils.Symlink(t, outside, filepath.Join(dir, "link"))

	res := execute(t, "search", "--dir", "-r", "cat", dir)
	require.NoError(t, res.err, "search should succeed: %s", res.stderr)
	assert.Contains(t, res.stdout, filepath.Join(dir, "link", "o.txt")+":1:a cat outside", "links are followed by default")

	res = execute(t, "--follow-links=false", "search", "--dir", "-r", "cat", dir)
	require.NoError(t, res.err, "search without following should still succeed: %s", res.stderr)
	assert.Contains(t, res.stdout, filepath.Join(dir, "a.txt")+":1:hello cat")
	assert.NotContains(t, res.stdout, "o.txt", "the linked directory should be skipped")
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "filemgr.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("separator: into\narchive:\n  format: tar.zst\n"), 0o644), "writing config")

	res := execute(t, "--config", cfgPath, "config")
	require.NoError(t, res.err, "config should succeed: %s", res.stderr)
	assert.Contains(t, res.stdout, `separator="into"`)
	assert.Contains(t, res.stdout, "archive=tar.zst")

	testutils.WriteTree(t, dir, map[string]string{"a.txt": "a", "out/": ""})
	res = execute(t, "--config", cfgPath, "copy-file", filepath.Join(dir, "a.txt"), "into", filepath.Join(dir, "out"))
	require.NoError(t, res.err, "configured separator should be used: %s", res.stderr)
	assert.FileExists(t, filepath.Join(dir, "out", "a.txt"))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("separator: [\n"), 0o644), "writing config")
	res = execute(t, "--config", bad, "list", dir)
	require.Error(t, res.err, "invalid config should fail")
	assert.False(t, errors.Is(res.err, opts.ErrReported), "config errors are not command results")
	assert.Contains(t, res.err.Error(), "loading config")
}

func TestVersionCmd(t *testing.T) {
	res := execute(t, "version")
	require.NoError(t, res.err, "version should succeed")
	assert.Contains(t, res.stdout, "filemgr version info")

	res = execute(t, "version", "--json")
	require.NoError(t, res.err, "version --json should succeed")
	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &info), "output should be JSON")
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Version)
}
