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

// Package walk lists the descendants of a directory up to a depth limit.
//
// A depth of 1 yields immediate children only; zero or a negative depth
// walks the full subtree. Directories come before their contents and
// siblings come in lexical order, so consumers can mirror a tree by
// creating each directory as it is seen.
//
// Symbolic links are followed when Options.FollowLinks is set. A directory
// whose resolved real path is already one of its own ancestors is yielded
// but not descended, which cuts link cycles. Two links to the same
// directory from different branches are both walked.
package walk

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/filemgr/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📂 Kind tells files and directories apart
type Kind int

const (
	File Kind = iota
	Directory
)

func (k Kind) String() string {
	if k == Directory {
		return "directory"
	}
	return "file"
}

// 📄 Entry is one walked descendant of Root
type Entry struct {
	Path  string // Root joined with Rel
	Rel   string // Path relative to Root
	Root  string // The directory the walk started from
	Kind  Kind
	Depth int // Components in Rel; immediate children are 1
}

// IsDir reports whether the entry is (or links to) a directory
func (e Entry) IsDir() bool {
	return e.Kind == Directory
}

// SlashRel returns Rel with forward slashes
func (e Entry) SlashRel() string {
	return filepath.ToSlash(e.Rel)
}

// ⚙️ Options bound a walk
type Options struct {
	Depth       int      // 1 = children only, <= 0 = unbounded
	FollowLinks bool     // Descend through symbolic links to directories
	Ignore      []string // doublestar patterns matched against Rel and the base name
}

// Unbounded reports whether the walk has no depth limit
func (o Options) Unbounded() bool {
	return o.Depth <= 0
}

type walker struct {
	root   string
	opts   Options
	above  map[string]struct{} // real paths of the directories being descended
	logger *zerolog.Logger
}

// 🚶 Walk lazily yields the descendants of root. The root itself is not
// yielded. A missing root yields a single ErrSourceNotFound error and a
// non-directory root a single ErrNotADirectory error. Unreadable entries
// are yielded as errors and the walk goes on.
func Walk(ctx context.Context, root string, opts Options) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		root := filepath.Clean(root)

		info, err := os.Stat(root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				yield(Entry{}, errors.Errorf("walking %s: %w", root, status.ErrSourceNotFound))
				return
			}
			yield(Entry{}, errors.Errorf("walking %s: %w", root, err))
			return
		}
		if !info.IsDir() {
			yield(Entry{}, errors.Errorf("walking %s: %w", root, status.ErrNotADirectory))
			return
		}

		w := &walker{
			root:   root,
			opts:   opts,
			above:  make(map[string]struct{}),
			logger: zerolog.Ctx(ctx),
		}
		w.enter(root)
		w.dir(root, "", 1, yield)
	}
}

// 📦 Collect drains Walk into a slice; all walk errors are joined
func Collect(ctx context.Context, root string, opts Options) ([]Entry, error) {
	var entries []Entry
	var errs []error
	for entry, err := range Walk(ctx, root, opts) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		entries = append(entries, entry)
	}
	if len(errs) > 0 {
		return entries, errors.Join(errs...)
	}
	return entries, nil
}

// realPath resolves links and makes dir absolute, falling back to what
// could be resolved
func realPath(dir string) string {
	key := dir
	if real, err := filepath.EvalSymlinks(dir); err == nil {
		key = real
	}
	if abs, err := filepath.Abs(key); err == nil {
		key = abs
	}
	return key
}

// enter pushes dir onto the ancestor set. It returns the key to pass to
// leave, and false when dir is already an ancestor of itself.
func (w *walker) enter(dir string) (string, bool) {
	key := realPath(dir)
	if _, cycle := w.above[key]; cycle {
		return key, false
	}
	w.above[key] = struct{}{}
	return key, true
}

func (w *walker) leave(key string) {
	delete(w.above, key)
}

func (w *walker) ignored(rel string) bool {
	if len(w.opts.Ignore) == 0 {
		return false
	}
	slashRel := filepath.ToSlash(rel)
	base := filepath.Base(rel)
	for _, pattern := range w.opts.Ignore {
		if ok, err := doublestar.Match(pattern, slashRel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

// dir yields the children of dirPath at level and recurses; it returns
// false once the consumer stops
func (w *walker) dir(dirPath, rel string, level int, yield func(Entry, error) bool) bool {
	children, err := os.ReadDir(dirPath)
	if err != nil {
		return yield(Entry{}, errors.Errorf("reading directory %s: %w", dirPath, err))
	}

	for _, child := range children {
		childRel := filepath.Join(rel, child.Name())
		childPath := filepath.Join(dirPath, child.Name())

		if w.ignored(childRel) {
			w.logger.Debug().Str("path", childPath).Msg("ignored by pattern")
			continue
		}

		kind := File
		switch {
		case child.IsDir():
			kind = Directory
		case child.Type()&fs.ModeSymlink != 0 && w.opts.FollowLinks:
			info, err := os.Stat(childPath)
			if err != nil {
				if !yield(Entry{}, errors.Errorf("following link %s: %w", childPath, err)) {
					return false
				}
				continue
			}
			if info.IsDir() {
				kind = Directory
			}
		}

		entry := Entry{
			Path:  childPath,
			Rel:   childRel,
			Root:  w.root,
			Kind:  kind,
			Depth: level,
		}
		if !yield(entry, nil) {
			return false
		}

		if kind != Directory || (!w.opts.Unbounded() && level >= w.opts.Depth) {
			continue
		}
		key, ok := w.enter(childPath)
		if !ok {
			w.logger.Debug().Str("path", childPath).Msg("link cycle, not descending")
			continue
		}
		more := w.dir(childPath, childRel, level+1, yield)
		w.leave(key)
		if !more {
			return false
		}
	}

	return true
}
