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

package transfer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/filemgr/pkg/status"
	"github.com/walteh/filemgr/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 🗑️ Delete removes path and returns every removed path, deepest first.
// A non-empty directory needs recursive; without it the tree is untouched
// and ErrDirectoryNotEmpty is returned. Links are removed, never followed.
// The first failed removal stops the delete, so a partial result is
// possible.
func (e *Engine) Delete(ctx context.Context, path string, recursive bool) ([]string, error) {
	if path == "" {
		return nil, errors.Errorf("deleting: %w", status.ErrMissingOperand)
	}
	path = filepath.Clean(path)

	info, err := os.Lstat(path)
	if err != nil {
		return nil, missing("deleting", path, err)
	}

	if info.IsDir() {
		children, err := os.ReadDir(path)
		if err != nil {
			return nil, errors.Errorf("reading %s: %w", path, err)
		}
		if len(children) > 0 && !recursive {
			return nil, errors.Errorf("deleting %s: %w", path, status.ErrDirectoryNotEmpty)
		}
	}

	var removed []string
	if info.IsDir() {
		// list everything first, nothing is removed when the listing fails
		entries, err := walk.Collect(ctx, path, walk.Options{})
		if err != nil {
			return nil, errors.Errorf("listing %s: %w", path, err)
		}

		// reversed pre-order puts children ahead of their parents
		for i := len(entries) - 1; i >= 0; i-- {
			if err := os.Remove(entries[i].Path); err != nil {
				return removed, errors.Errorf("deleting %s: %w", entries[i].Path, err)
			}
			removed = append(removed, entries[i].Path)
		}
	}

	if err := os.Remove(path); err != nil {
		return removed, errors.Errorf("deleting %s: %w", path, err)
	}
	removed = append(removed, path)

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("removed", len(removed)).Msg("deleted")
	return removed, nil
}
