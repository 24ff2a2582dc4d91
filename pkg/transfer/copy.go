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
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/filemgr/pkg/pathset"
	"github.com/walteh/filemgr/pkg/status"
	"github.com/walteh/filemgr/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 📦 Outcome lists what a copy or move produced
type Outcome struct {
	Placed []string // Paths written under the target
	Kept   []string // Source directories a move could not empty
}

// 📋 Copy places a copy of source at target/<name of source>, creating target
// when missing. Directory sources are copied up to depth (<= 0 means the
// whole tree). Per-entry failures are joined into the returned error while
// the remaining entries are still copied.
func (e *Engine) Copy(ctx context.Context, source, target string, depth int) (Outcome, error) {
	if source == "" || target == "" {
		return Outcome{}, errors.Errorf("copying: %w", status.ErrMissingOperand)
	}
	src, dest, err := placement(source, target)
	if err != nil {
		return Outcome{}, err
	}

	info, err := os.Stat(src)
	if err != nil {
		return Outcome{}, missing("copying", src, err)
	}

	if info.IsDir() && pathset.Within(src, dest) {
		return Outcome{}, errors.Errorf("copying %s into %s: %w", src, target, status.ErrInvalidTarget)
	}

	if err := e.ensureDir(target); err != nil {
		return Outcome{}, err
	}

	if !info.IsDir() {
		if err := e.copyFile(ctx, src, dest, info, e.opts.Overwrite); err != nil {
			return Outcome{}, err
		}
		return Outcome{Placed: []string{dest}}, nil
	}

	// the listing is taken before anything is written
	entries, walkErr := walk.Collect(ctx, src, walk.Options{Depth: depth, FollowLinks: e.opts.FollowLinks})

	if err := e.ensureDir(dest); err != nil {
		return Outcome{}, err
	}

	out := Outcome{Placed: []string{dest}}
	var errs []error
	if walkErr != nil {
		errs = append(errs, walkErr)
	}

	for _, entry := range entries {
		to := filepath.Join(dest, entry.Rel)
		if entry.IsDir() {
			err = e.ensureDir(to)
		} else {
			err = e.copyEntry(ctx, entry.Path, to)
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out.Placed = append(out.Placed, to)
	}

	zerolog.Ctx(ctx).Debug().Str("from", src).Str("to", dest).Int("placed", len(out.Placed)).Msg("copied tree")

	if len(errs) > 0 {
		return out, errors.Join(errs...)
	}
	return out, nil
}

// copyEntry copies one walked file. Without FollowLinks a symbolic link
// is recreated as a link pointing at the same target.
func (e *Engine) copyEntry(ctx context.Context, from, to string) error {
	info, err := os.Lstat(from)
	if err != nil {
		return missing("copying", from, err)
	}

	if info.Mode()&os.ModeSymlink != 0 && !e.opts.FollowLinks {
		link, err := os.Readlink(from)
		if err != nil {
			return errors.Errorf("reading link %s: %w", from, err)
		}
		if _, err := os.Lstat(to); err == nil {
			if !e.opts.Overwrite {
				return errors.Errorf("copying %s to %s: %w", from, to, status.ErrAlreadyExists)
			}
			if err := os.Remove(to); err != nil {
				return errors.Errorf("replacing %s: %w", to, err)
			}
		}
		if err := os.Symlink(link, to); err != nil {
			return errors.Errorf("linking %s: %w", to, err)
		}
		return nil
	}

	if info, err = os.Stat(from); err != nil {
		return missing("copying", from, err)
	}
	return e.copyFile(ctx, from, to, info, e.opts.Overwrite)
}

// 📄 copyFile writes the content of src to dst keeping its permission bits
// and modification time.
func (e *Engine) copyFile(ctx context.Context, src, dst string, info os.FileInfo, overwrite bool) error {
	if existing, err := os.Stat(dst); err == nil {
		switch {
		case os.SameFile(existing, info):
			return errors.Errorf("copying %s onto itself: %w", src, status.ErrInvalidTarget)
		case existing.IsDir():
			return errors.Errorf("copying %s to %s: %w", src, dst, status.ErrIsADirectory)
		case !overwrite:
			return errors.Errorf("copying %s to %s: %w", src, dst, status.ErrAlreadyExists)
		}
	}

	in, err := os.Open(src)
	if err != nil {
		return missing("opening", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return errors.Errorf("copying %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return errors.Errorf("closing %s: %w", dst, err)
	}

	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("path", dst).Msg("could not keep modification time")
	}

	zerolog.Ctx(ctx).Debug().Str("from", src).Str("to", dst).Msg("copied file")
	return nil
}
