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
	"github.com/walteh/filemgr/pkg/status"
	"github.com/walteh/filemgr/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// ✨ Create makes an empty file or a directory at path, creating missing
// parents. An existing entry of the same kind is left alone; an entry of
// the other kind yields ErrAlreadyExists.
func (e *Engine) Create(ctx context.Context, path string, kind walk.Kind) error {
	if path == "" {
		return errors.Errorf("creating %s: %w", kind, status.ErrMissingOperand)
	}
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	switch {
	case err == nil:
		if info.IsDir() == (kind == walk.Directory) {
			zerolog.Ctx(ctx).Debug().Str("path", path).Msg("already present")
			return nil
		}
		return errors.Errorf("creating %s %s: %w", kind, path, status.ErrAlreadyExists)
	case isNotDir(err):
		return errors.Errorf("creating %s %s: a parent is a file: %w", kind, path, status.ErrNotADirectory)
	case !errors.Is(err, fs.ErrNotExist):
		return errors.Errorf("checking %s: %w", path, err)
	}

	if kind == walk.Directory {
		return e.ensureDir(path)
	}

	if err := e.ensureDir(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, e.opts.FileMode)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return errors.Errorf("creating file %s: %w", path, status.ErrAlreadyExists)
		}
		return errors.Errorf("creating file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.Errorf("closing %s: %w", path, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("created file")
	return nil
}
