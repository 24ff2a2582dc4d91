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

// Package transfer creates, deletes, copies and moves files and directory
// trees.
//
// Copy and Move always place the source under the target directory by its
// name, so copying D to T yields T/D. The name is taken from the absolute
// path, so copying "." from inside D also yields T/D. A depth limit
// applies to directory sources the same way it applies to walk.Walk.
package transfer

import (
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/walteh/filemgr/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// ⚙️ Options tune how the engine writes to disk
type Options struct {
	DirMode     os.FileMode // Mode for directories the engine creates
	FileMode    os.FileMode // Mode for empty files made by Create
	Overwrite   bool        // Let Copy replace existing files
	FollowLinks bool        // Copy through symbolic links to directories
}

// 🚚 Engine runs filesystem mutations
type Engine struct {
	opts Options
}

// 🏭 New builds an engine; zero modes fall back to 0755 and 0644
func New(opts Options) *Engine {
	if opts.DirMode == 0 {
		opts.DirMode = 0o755
	}
	if opts.FileMode == 0 {
		opts.FileMode = 0o644
	}
	return &Engine{opts: opts}
}

// Options returns the effective options
func (e *Engine) Options() Options {
	return e.opts
}

// 📁 ensureDir makes path and any missing parents. A file standing where a
// directory is needed is reported as ErrNotADirectory.
func (e *Engine) ensureDir(path string) error {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return errors.Errorf("creating directory %s: %w", path, status.ErrNotADirectory)
	case isNotDir(err):
		return errors.Errorf("creating directory %s: a parent is a file: %w", path, status.ErrNotADirectory)
	case !errors.Is(err, fs.ErrNotExist):
		return errors.Errorf("checking %s: %w", path, err)
	}

	if err := os.MkdirAll(path, e.opts.DirMode); err != nil {
		if isNotDir(err) {
			return errors.Errorf("creating directory %s: a parent is a file: %w", path, status.ErrNotADirectory)
		}
		return errors.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

// 📍 placement cleans source and returns it with its destination under
// target. The name comes from the absolute path, so "." and "dir/.." are
// placed under the name of the directory they stand for. A filesystem
// root has no name and is rejected with ErrInvalidTarget.
func placement(source, target string) (src, dest string, err error) {
	src = filepath.Clean(source)
	abs, err := filepath.Abs(src)
	if err != nil {
		return "", "", errors.Errorf("resolving %s: %w", src, err)
	}

	name := filepath.Base(abs)
	if abs == filepath.VolumeName(abs)+string(filepath.Separator) || name == "." || name == string(filepath.Separator) {
		return "", "", errors.Errorf("placing %s under %s: a filesystem root has no name: %w", source, target, status.ErrInvalidTarget)
	}

	if base := filepath.Base(src); base == "." || base == ".." {
		src = abs
	}
	return src, filepath.Join(target, name), nil
}

func isNotDir(err error) bool {
	return errors.Is(err, syscall.ENOTDIR)
}

func isCrossDevice(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}

// missing maps a stat error on a source to ErrSourceNotFound
func missing(op, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) || isNotDir(err) {
		return errors.Errorf("%s %s: %w", op, path, status.ErrSourceNotFound)
	}
	return errors.Errorf("%s %s: %w", op, path, err)
}
