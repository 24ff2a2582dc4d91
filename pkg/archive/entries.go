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

package archive

import (
	"context"
	"iter"
	"os"
	"path"
	"path/filepath"

	"github.com/walteh/filemgr/pkg/status"
	"github.com/walteh/filemgr/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 📄 Entry is one member to be stored in an archive
type Entry struct {
	Name   string // Stored name, forward slashes, trailing "/" for directories
	Source string // File on disk the member is read from
	Dir    bool
}

// 📚 Entries lists the members for root up to opts.Depth. A directory root
// yields itself first as "<base>/"; a file root yields one entry named
// after its base.
func Entries(ctx context.Context, root string, opts walk.Options) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		root := filepath.Clean(root)

		info, err := os.Stat(root)
		if err != nil {
			if os.IsNotExist(err) {
				err = status.ErrSourceNotFound
			}
			yield(Entry{}, errors.Errorf("archiving %s: %w", root, err))
			return
		}

		base := storedBase(root)
		if !info.IsDir() {
			yield(Entry{Name: base, Source: root}, nil)
			return
		}

		if base != "" {
			if !yield(Entry{Name: base + "/", Source: root, Dir: true}, nil) {
				return
			}
		}

		for e, err := range walk.Walk(ctx, root, opts) {
			if err != nil {
				if !yield(Entry{}, err) {
					return
				}
				continue
			}

			name := path.Join(base, e.SlashRel())
			if e.IsDir() {
				name += "/"
			}
			if !yield(Entry{Name: name, Source: e.Path, Dir: e.IsDir()}, nil) {
				return
			}
		}
	}
}

// storedBase is the name root is stored under; filesystem roots have none
func storedBase(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	base := filepath.Base(abs)
	if base == "." || base == string(filepath.Separator) || filepath.VolumeName(abs)+string(filepath.Separator) == abs {
		return ""
	}
	return base
}
