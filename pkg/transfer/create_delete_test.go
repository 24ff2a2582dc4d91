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

package transfer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/filemgr/pkg/status"
	"github.com/walteh/filemgr/pkg/testutils"
	"github.com/walteh/filemgr/pkg/transfer"
	"github.com/walteh/filemgr/pkg/walk"
)

func TestCreate(t *testing.T) {
	tests := []struct {
		name     string
		existing map[string]string
		path     string
		kind     walk.Kind
		wantKind status.Kind
		want     map[string]string
	}{
		{
			name: "file_with_missing_parents",
			path: "a/b/c.txt",
			kind: walk.File,
			want: map[string]string{"a/": "", "a/b/": "", "a/b/c.txt": ""},
		},
		{
			name: "directory",
			path: "x/y",
			kind: walk.Directory,
			want: map[string]string{"x/": "", "x/y/": ""},
		},
		{
			name:     "same_kind_exists",
			existing: map[string]string{"a.txt": "keep"},
			path:     "a.txt",
			kind:     walk.File,
			want:     map[string]string{"a.txt": "keep"},
		},
		{
			name:     "other_kind_exists",
			existing: map[string]string{"a.txt": "keep"},
			path:     "a.txt",
			kind:     walk.Directory,
			wantKind: status.KindAlreadyExists,
			want:     map[string]string{"a.txt": "keep"},
		},
		{
			name:     "parent_is_file",
			existing: map[string]string{"a.txt": "keep"},
			path:     "a.txt/b.txt",
			kind:     walk.File,
			wantKind: status.KindNotADirectory,
			want:     map[string]string{"a.txt": "keep"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutils.Context(t)
			root := t.TempDir()
			testutils.WriteTree(t, root, tt.existing)

			err := transfer.New(transfer.Options{}).Create(ctx, filepath.Join(root, filepath.FromSlash(tt.path)), tt.kind)
			if tt.wantKind == status.KindNone {
				require.NoError(t, err, "create should succeed")
			} else {
				require.Error(t, err, "create should fail")
				assert.Equal(t, tt.wantKind, status.KindOf(err), "error kind should match")
			}
			assert.Equal(t, tt.want, testutils.ReadTree(t, root), "tree should match")
		})
	}
}

func TestCreateMissingOperand(t *testing.T) {
	err := transfer.New(transfer.Options{}).Create(testutils.Context(t), "", walk.File)
	require.Error(t, err, "empty path should fail")
	assert.Equal(t, status.KindMissingOperand, status.KindOf(err), "error kind should match")
}

func TestCreateFileMode(t *testing.T) {
	ctx := testutils.Context(t)
	root := t.TempDir()
	path := filepath.Join(root, "private.txt")

	require.NoError(t, transfer.New(transfer.Options{FileMode: 0o600}).Create(ctx, path, walk.File), "create should succeed")

	info, err := os.Stat(path)
	require.NoError(t, err, "file should exist")
	assert.Zero(t, info.Mode().Perm()&0o077, "group and other bits should be clear")
}

func TestDelete(t *testing.T) {
	tree := map[string]string{
		"d/a.txt":     "a",
		"d/sub/b.txt": "b",
		"d/empty/":    "",
		"f.txt":       "f",
	}

	t.Run("file", func(t *testing.T) {
		ctx := testutils.Context(t)
		root := t.TempDir()
		testutils.WriteTree(t, root, tree)

		removed, err := transfer.New(transfer.Options{}).Delete(ctx, filepath.Join(root, "f.txt"), false)
		require.NoError(t, err, "deleting a file should succeed")
		assert.Equal(t, []string{filepath.Join(root, "f.txt")}, removed, "only the file should be removed")
		assert.NoFileExists(t, filepath.Join(root, "f.txt"), "file should be gone")
	})

	t.Run("empty_directory_without_recursive", func(t *testing.T) {
		ctx := testutils.Context(t)
		root := t.TempDir()
		testutils.WriteTree(t, root, tree)

		_, err := transfer.New(transfer.Options{}).Delete(ctx, filepath.Join(root, "d", "empty"), false)
		require.NoError(t, err, "deleting an empty directory should succeed")
		assert.NoDirExists(t, filepath.Join(root, "d", "empty"), "directory should be gone")
	})

	t.Run("non_empty_without_recursive", func(t *testing.T) {
		ctx := testutils.Context(t)
		root := t.TempDir()
		testutils.WriteTree(t, root, tree)
		before := testutils.ReadTree(t, root)

		removed, err := transfer.New(transfer.Options{}).Delete(ctx, filepath.Join(root, "d"), false)
		require.Error(t, err, "deleting a non-empty directory should fail")
		assert.Equal(t, status.KindDirectoryNotEmpty, status.KindOf(err), "error kind should match")
		assert.Empty(t, removed, "nothing should be removed")
		assert.Equal(t, before, testutils.ReadTree(t, root), "tree should be untouched")
	})

	t.Run("recursive", func(t *testing.T) {
		ctx := testutils.Context(t)
		root := t.TempDir()
		testutils.WriteTree(t, root, tree)

		removed, err := transfer.New(transfer.Options{}).Delete(ctx, filepath.Join(root, "d"), true)
		require.NoError(t, err, "recursive delete should succeed")
		assert.Len(t, removed, 5, "every entry and the root should be removed")
		assert.Equal(t, filepath.Join(root, "d"), removed[len(removed)-1], "root should be removed last")

		// every entry is removed before its parent
		seen := make(map[string]int, len(removed))
		for i, path := range removed {
			seen[path] = i
		}
		for i, path := range removed {
			if parent, ok := seen[filepath.Dir(path)]; ok {
				assert.Greater(t, parent, i, "%s should be removed before its parent", path)
			}
		}
		assert.Equal(t, map[string]string{"f.txt": "f"}, testutils.ReadTree(t, root), "only the sibling should remain")
	})

	t.Run("missing", func(t *testing.T) {
		ctx := testutils.Context(t)
		_, err := transfer.New(transfer.Options{}).Delete(ctx, filepath.Join(t.TempDir(), "nope"), true)
		require.Error(t, err, "deleting a missing path should fail")
		assert.Equal(t, status.KindSourceNotFound, status.KindOf(err), "error kind should match")
	})

	t.Run("links_are_not_followed", func(t *testing.T) {
		ctx := testutils.Context(t)
		root := t.TempDir()
		testutils.WriteTree(t, root, map[string]string{
			"outside/keep.txt": "keep",
			"d/a.txt":          "a",
		})
		testutils.Symlink(t, filepath.Join(root, "outside"), filepath.Join(root, "d", "link"))

		_, err := transfer.New(transfer.Options{}).Delete(ctx, filepath.Join(root, "d"), true)
		require.NoError(t, err, "recursive delete should succeed")
		assert.FileExists(t, filepath.Join(root, "outside", "keep.txt"), "link target should survive")
		assert.NoDirExists(t, filepath.Join(root, "d"), "directory should be gone")
	})
}
