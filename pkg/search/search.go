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

// Package search finds words in files and directory trees, and entries by
// name.
//
// Lines are streamed, so there is no limit on line length and files of any
// size are read in constant memory. Line numbers start at 1.
package search

import (
	"bufio"
	"context"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"github.com/walteh/filemgr/pkg/status"
	"github.com/walteh/filemgr/pkg/text"
	"github.com/walteh/filemgr/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Match is one matching line
type Match struct {
	Path string
	Line int // 1-based
	Text string
}

// ⚙️ Options shape a tree search
type Options struct {
	Walk       walk.Options
	SkipBinary bool // Skip files whose content is not text
}

// 📄 File yields the lines of path holding word as a whole token,
// ignoring case. A missing path or a directory yields one error.
func File(ctx context.Context, path, word string) iter.Seq2[Match, error] {
	return func(yield func(Match, error) bool) {
		for m, err := range lines(path) {
			if err != nil {
				yield(Match{}, err)
				return
			}
			if !text.ContainsWord(m.Text, word) {
				continue
			}
			if !yield(m, nil) {
				return
			}
		}
		zerolog.Ctx(ctx).Debug().Str("path", path).Str("word", word).Msg("searched file")
	}
}

// 🌲 Tree searches every file under root, in walk order
func Tree(ctx context.Context, root, word string, opts Options) iter.Seq2[Match, error] {
	return func(yield func(Match, error) bool) {
		logger := zerolog.Ctx(ctx)
		for entry, err := range walk.Walk(ctx, root, opts.Walk) {
			if err != nil {
				if !yield(Match{}, err) {
					return
				}
				continue
			}
			if entry.IsDir() {
				continue
			}
			if !opts.Walk.FollowLinks && linksToDir(entry.Path) {
				logger.Debug().Str("path", entry.Path).Msg("not following linked directory")
				continue
			}
			if opts.SkipBinary && !isText(entry.Path) {
				logger.Debug().Str("path", entry.Path).Msg("skipping binary file")
				continue
			}

			for m, err := range File(ctx, entry.Path, word) {
				if !yield(m, err) {
					return
				}
			}
		}
	}
}

// linksToDir reports whether a walked leaf is really a link to a directory
func linksToDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// 📖 Lines yields the numbered lines of path from start to stop inclusive.
// A stop of zero or less reads to the end; a start that is not below
// stop starts from the first line.
func Lines(ctx context.Context, path string, start, stop int) iter.Seq2[Match, error] {
	if start < 1 || (stop > 0 && start >= stop) {
		start = 1
	}
	return func(yield func(Match, error) bool) {
		for m, err := range lines(path) {
			if err != nil {
				yield(Match{}, err)
				return
			}
			if stop > 0 && m.Line > stop {
				return
			}
			if m.Line < start {
				continue
			}
			if !yield(m, nil) {
				return
			}
		}
		zerolog.Ctx(ctx).Debug().Str("path", path).Int("start", start).Int("stop", stop).Msg("read lines")
	}
}

// lines streams every line of path without its line terminator
func lines(path string) iter.Seq2[Match, error] {
	return func(yield func(Match, error) bool) {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				err = status.ErrSourceNotFound
			}
			yield(Match{}, errors.Errorf("reading %s: %w", path, err))
			return
		}
		if info.IsDir() {
			yield(Match{}, errors.Errorf("reading %s: %w", path, status.ErrIsADirectory))
			return
		}

		f, err := os.Open(path)
		if err != nil {
			yield(Match{}, errors.Errorf("opening %s: %w", path, err))
			return
		}
		defer f.Close()

		r := bufio.NewReader(f)
		for n := 1; ; n++ {
			line, err := r.ReadString('\n')
			if line != "" {
				line = strings.TrimSuffix(line, "\n")
				line = strings.TrimSuffix(line, "\r")
				if !yield(Match{Path: path, Line: n, Text: line}, nil) {
					return
				}
			}
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(Match{}, errors.Errorf("reading %s: %w", path, err))
				return
			}
		}
	}
}

// isText reports whether the content of path sniffs as some kind of text
func isText(path string) bool {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return false
	}
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
