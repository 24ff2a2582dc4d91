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

package search

import (
	"context"
	"iter"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/filemgr/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 🔤 Names yields the entries under root whose base name matches pattern.
// A pattern holding a "/" is matched against the slash separated path
// relative to root instead.
func Names(ctx context.Context, root, pattern string, opts walk.Options) iter.Seq2[walk.Entry, error] {
	return func(yield func(walk.Entry, error) bool) {
		if !doublestar.ValidatePattern(pattern) {
			yield(walk.Entry{}, errors.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern))
			return
		}
		byPath := strings.Contains(pattern, "/")

		for entry, err := range walk.Walk(ctx, root, opts) {
			if err != nil {
				if !yield(walk.Entry{}, err) {
					return
				}
				continue
			}

			subject := entry.SlashRel()
			if !byPath {
				subject = baseName(subject)
			}
			// the pattern was validated above
			if ok, _ := doublestar.Match(pattern, subject); !ok {
				continue
			}
			if !yield(entry, nil) {
				return
			}
		}
	}
}

func baseName(slashPath string) string {
	if i := strings.LastIndexByte(slashPath, '/'); i >= 0 {
		return slashPath[i+1:]
	}
	return slashPath
}
