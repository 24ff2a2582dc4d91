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
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/filemgr/pkg/pathset"
	"github.com/walteh/filemgr/pkg/status"
	"github.com/walteh/filemgr/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 🚛 Move relocates source to target/<name of source>, replacing an existing
// file there. A whole directory is renamed in one step when the depth is
// unbounded and nothing sits at the destination yet. Otherwise entries are
// moved one by one up to depth and the source directories left empty are
// removed; the ones still holding deeper entries are reported in Kept.
// Renames across devices fall back to copy and remove.
func (e *Engine) Move(ctx context.Context, source, target string, depth int) (Outcome, error) {
	if source == "" || target == "" {
		return Outcome{}, errors.Errorf("moving: %w", status.ErrMissingOperand)
	}
	src, dest, err := placement(source, target)
	if err != nil {
		return Outcome{}, err
	}

	info, err := os.Lstat(src)
	if err != nil {
		return Outcome{}, missing("moving", src, err)
	}

	if pathset.Within(src, dest) && (info.IsDir() || pathset.Within(dest, src)) {
		return Outcome{}, errors.Errorf("moving %s into %s: %w", src, target, status.ErrInvalidTarget)
	}

	if err := e.ensureDir(target); err != nil {
		return Outcome{}, err
	}

	if !info.IsDir() {
		if err := e.moveFile(ctx, src, dest, info); err != nil {
			return Outcome{}, err
		}
		return Outcome{Placed: []string{dest}}, nil
	}

	if depth <= 0 {
		if _, err := os.Lstat(dest); errors.Is(err, fs.ErrNotExist) {
			err := os.Rename(src, dest)
			if err == nil {
				zerolog.Ctx(ctx).Debug().Str("from", src).Str("to", dest).Msg("renamed tree")
				return Outcome{Placed: []string{dest}}, nil
			}
			if !isCrossDevice(err) {
				return Outcome{}, errors.Errorf("moving %s to %s: %w", src, dest, err)
			}
		}
	}

	entries, walkErr := walk.Collect(ctx, src, walk.Options{Depth: depth})

	if err := e.ensureDir(dest); err != nil {
		return Outcome{}, err
	}

	out := Outcome{Placed: []string{dest}}
	var errs []error
	if walkErr != nil {
		errs = append(errs, walkErr)
	}

	var dirs []string
	for _, entry := range entries {
		to := filepath.Join(dest, entry.Rel)
		if entry.IsDir() {
			if err := e.ensureDir(to); err != nil {
				errs = append(errs, err)
				continue
			}
			dirs = append(dirs, entry.Path)
			out.Placed = append(out.Placed, to)
			continue
		}

		entryInfo, err := os.Lstat(entry.Path)
		if err == nil {
			err = e.moveFile(ctx, entry.Path, to, entryInfo)
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out.Placed = append(out.Placed, to)
	}

	// deepest first so parents see their children gone
	dirs = append([]string{src}, dirs...)
	for i := len(dirs) - 1; i >= 0; i-- {
		removed, err := removeIfEmpty(dirs[i])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !removed {
			out.Kept = append(out.Kept, dirs[i])
		}
	}

	zerolog.Ctx(ctx).Debug().Str("from", src).Str("to", dest).Int("placed", len(out.Placed)).Int("kept", len(out.Kept)).Msg("moved tree")

	if len(errs) > 0 {
		return out, errors.Join(errs...)
	}
	return out, nil
}

func (e *Engine) moveFile(ctx context.Context, src, dst string, info os.FileInfo) error {
	if existing, err := os.Lstat(dst); err == nil && existing.IsDir() {
		// only an empty directory may be replaced
		if err := os.Remove(dst); err != nil {
			return errors.Errorf("replacing %s: %w", dst, status.ErrDirectoryNotEmpty)
		}
	}

	err := os.Rename(src, dst)
	if err == nil {
		zerolog.Ctx(ctx).Debug().Str("from", src).Str("to", dst).Msg("renamed file")
		return nil
	}
	if !isCrossDevice(err) {
		return errors.Errorf("moving %s to %s: %w", src, dst, err)
	}

	if err := e.copyFile(ctx, src, dst, info, true); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return errors.Errorf("removing %s after copy: %w", src, err)
	}
	return nil
}

func removeIfEmpty(dir string) (bool, error) {
	children, err := os.ReadDir(dir)
	if err != nil {
		return false, errors.Errorf("reading %s: %w", dir, err)
	}
	if len(children) > 0 {
		return false, nil
	}
	if err := os.Remove(dir); err != nil {
		return false, errors.Errorf("removing %s: %w", dir, err)
	}
	return true, nil
}
