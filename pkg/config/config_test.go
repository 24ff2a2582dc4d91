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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/filemgr/pkg/archive"
	"github.com/walteh/filemgr/pkg/testutils"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		errContains string
	}{
		{
			name: "yaml",
			file: ".filemgr.yaml",
			config: `
separator: into
overwrite: true
follow_links: true
skip_binary: true
dir_mode: "0700"
file_mode: "0600"
ignore_patterns:
  - "**/.git"
  - "*.tmp"
archive:
  format: tgz
  level: 6
`,
		},
		{
			name: "json",
			file: ".filemgr.json",
			config: `{
  "separator": "into",
  "overwrite": true,
  "follow_links": true,
  "skip_binary": true,
  "dir_mode": "0700",
  "file_mode": "0600",
  "ignore_patterns": ["**/.git", "*.tmp"],
  "archive": {"format": "tgz", "level": 6}
}`,
		},
		{
			name: "hcl",
			file: ".filemgr.hcl",
			config: `
separator       = "into"
overwrite       = true
follow_links    = true
skip_binary     = true
dir_mode        = "0700"
file_mode       = "0600"
ignore_patterns = ["**/.git", "*.tmp"]

archive {
  format = "tgz"
  level  = 6
}
`,
		},
		{
			name:        "yaml_unknown_field",
			file:        "c.yaml",
			config:      "separatr: into\n",
			errContains: "parsing YAML",
		},
		{
			name:        "json_unknown_field",
			file:        "c.json",
			config:      `{"separatr": "into"}`,
			errContains: "parsing JSON",
		},
		{
			name:        "hcl_unknown_field",
			file:        "c.hcl",
			config:      `separatr = "into"`,
			errContains: "decoding HCL",
		},
		{
			name:        "bad_mode",
			file:        "c.yaml",
			config:      "dir_mode: rwx\n",
			errContains: "dir_mode",
		},
		{
			name:        "mode_out_of_range",
			file:        "c.yaml",
			config:      "file_mode: \"01777\"\n",
			errContains: "file_mode",
		},
		{
			name:        "bad_pattern",
			file:        "c.yaml",
			config:      "ignore_patterns: [\"[\"]\n",
			errContains: "ignore pattern",
		},
		{
			name:        "bad_format",
			file:        "c.yaml",
			config:      "archive:\n  format: rar\n",
			errContains: "archive.format",
		},
		{
			name:        "bad_level",
			file:        "c.yaml",
			config:      "archive:\n  level: 30\n",
			errContains: "archive.level",
		},
		{
			name:        "separator_with_space",
			file:        "c.yaml",
			config:      "separator: \"in to\"\n",
			errContains: "single word",
		},
		{
			name:        "unknown_suffix",
			file:        "c.toml",
			config:      "separator = 'to'\n",
			errContains: "no parser found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutils.Context(t)
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0o644), "writing config file should succeed")

			cfg, err := Load(ctx, path)
			if tt.errContains != "" {
				require.Error(t, err, "Load should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "Load should succeed")
			assert.Equal(t, "into", cfg.Separator, "separator should match")
			assert.True(t, cfg.Overwrite, "overwrite should be set")
			assert.True(t, cfg.FollowsLinks(), "follow_links should be set")
			assert.True(t, cfg.SkipBinary, "skip_binary should be set")
			assert.Equal(t, os.FileMode(0o700), cfg.DirPerm(), "dir mode should be parsed")
			assert.Equal(t, os.FileMode(0o600), cfg.FilePerm(), "file mode should be parsed")
			assert.Equal(t, []string{"**/.git", "*.tmp"}, cfg.IgnorePatterns, "ignore patterns should match")
			assert.Equal(t, archive.TarGzip, cfg.ArchiveFormat(), "archive format should be normalized")
			assert.Equal(t, "tar.gz", cfg.Archive.Format, "archive format string should be normalized")
			assert.Equal(t, 6, cfg.Archive.Level, "archive level should match")
			assert.Equal(t, path, cfg.Location(), "location should be recorded")
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "to", cfg.Separator, "separator should default to to")
	assert.Equal(t, os.FileMode(0o755), cfg.DirPerm(), "dir mode should default to 0755")
	assert.Equal(t, os.FileMode(0o644), cfg.FilePerm(), "file mode should default to 0644")
	assert.Equal(t, archive.Zip, cfg.ArchiveFormat(), "archive format should default to zip")
	assert.False(t, cfg.Overwrite, "overwrite should be off")
	assert.True(t, cfg.FollowsLinks(), "links should be followed unless turned off")
	assert.Empty(t, cfg.Location(), "defaults have no location")
	assert.Equal(t, `defaults: separator="to" archive=zip dirs=0755 files=0644`, cfg.String(), "String should describe the config")
}

func TestFollowLinksOff(t *testing.T) {
	for _, tt := range []struct {
		file   string
		config string
	}{
		{file: "c.yaml", config: "follow_links: false\n"},
		{file: "c.json", config: `{"follow_links": false}`},
		{file: "c.hcl", config: "follow_links = false\n"},
	} {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0o644), "writing config file should succeed")

			cfg, err := Load(testutils.Context(t), path)
			require.NoError(t, err, "Load should succeed")
			assert.False(t, cfg.FollowsLinks(), "an explicit false should be kept")
		})
	}
}

func TestFind(t *testing.T) {
	t.Run("no_file", func(t *testing.T) {
		cfg, err := Find(testutils.Context(t), t.TempDir())
		require.NoError(t, err, "Find should fall back to defaults")
		assert.Equal(t, Default(), cfg, "defaults should be returned")
	})

	t.Run("yaml_before_json", func(t *testing.T) {
		dir := t.TempDir()
		testutils.WriteTree(t, dir, map[string]string{
			".filemgr.yaml": "separator: yaml\n",
			".filemgr.json": `{"separator": "json"}`,
		})

		cfg, err := Find(testutils.Context(t), dir)
		require.NoError(t, err, "Find should succeed")
		assert.Equal(t, "yaml", cfg.Separator, "the yaml file should win")
	})

	for _, name := range []string{".filemgr.yml", ".filemgr.json"} {
		t.Run("empty"+name, func(t *testing.T) {
			dir := t.TempDir()
			testutils.WriteTree(t, dir, map[string]string{name: ""})

			cfg, err := Find(testutils.Context(t), dir)
			require.NoError(t, err, "an empty file should be accepted")
			assert.Equal(t, "to", cfg.Separator, "defaults should fill an empty file")
			assert.Equal(t, filepath.Join(dir, name), cfg.Location(), "the empty file should still be the source")
		})
	}

	t.Run("invalid_file_is_an_error", func(t *testing.T) {
		dir := t.TempDir()
		testutils.WriteTree(t, dir, map[string]string{".filemgr.json": "{"})

		_, err := Find(testutils.Context(t), dir)
		assert.Error(t, err, "a broken config should not be ignored")
	})
}

func TestHCLEnvironment(t *testing.T) {
	t.Setenv("FILEMGR_TEST_SEPARATOR", "onto")
	path := filepath.Join(t.TempDir(), ".filemgr.hcl")
	require.NoError(t, os.WriteFile(path, []byte("separator = env.FILEMGR_TEST_SEPARATOR\n"), 0o644), "writing config file should succeed")

	cfg, err := Load(testutils.Context(t), path)
	require.NoError(t, err, "Load should succeed")
	assert.Equal(t, "onto", cfg.Separator, "separator should come from the environment")
}
