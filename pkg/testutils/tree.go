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

// Package testutils builds and inspects on-disk fixture trees for tests.
package testutils

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// 🧪 Context returns a context carrying a logger that writes to t
func Context(t testing.TB) context.Context {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

// 🌳 WriteTree creates files under root. Keys use forward slashes; a key
// ending in "/" creates a directory and its value is ignored.
func WriteTree(t testing.TB, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if strings.HasSuffix(name, "/") {
			require.NoError(t, os.MkdirAll(path, 0o755), "creating directory %s", name)
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "creating parent of %s", name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "writing %s", name)
	}
}

// 📖 ReadTree returns every entry under root in WriteTree's key format
func ReadTree(t testing.TB, root string) map[string]string {
	t.Helper()
	tree := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if d.IsDir() {
			tree[key+"/"] = ""
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		tree[key] = string(data)
		return nil
	})
	require.NoError(t, err, "reading tree %s", root)
	return tree
}

// 🔗 Symlink creates a link or skips the test where links are unsupported
func Symlink(t testing.TB, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
}

// 📂 Chdir switches the working directory to dir until the test ends.
// Tests using it must not run in parallel.
func Chdir(t testing.TB, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err, "getting working directory")
	require.NoError(t, os.Chdir(dir), "changing to %s", dir)
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory %s: %v", prev, err)
		}
	})
}
