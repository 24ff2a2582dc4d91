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

package operation

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/filemgr/pkg/archive"
	"github.com/walteh/filemgr/pkg/config"
	"github.com/walteh/filemgr/pkg/pathset"
	"github.com/walteh/filemgr/pkg/search"
	"github.com/walteh/filemgr/pkg/status"
	"github.com/walteh/filemgr/pkg/transfer"
	"github.com/walteh/filemgr/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 🚚 Transfer is the part of transfer.Engine the runner drives
type Transfer interface {
	CreateAll(ctx context.Context, paths []string, kind walk.Kind) status.Result
	DeleteAll(ctx context.Context, paths []string, recursive bool) status.Result
	CopyPlan(ctx context.Context, plan pathset.Plan, depth int) status.Result
	MovePlan(ctx context.Context, plan pathset.Plan, depth int) status.Result
}

var _ Transfer = (*transfer.Engine)(nil)

// ⚙️ Options are the settings shared by every command
type Options struct {
	Transfer    transfer.Options
	Archive     archive.Options
	Ignore      []string
	FollowLinks bool
	SkipBinary  bool
}

// 🔧 OptionsFromConfig maps a validated config onto runner options
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Transfer: transfer.Options{
			DirMode:     cfg.DirPerm(),
			FileMode:    cfg.FilePerm(),
			Overwrite:   cfg.Overwrite,
			FollowLinks: cfg.FollowsLinks(),
		},
		Archive: archive.Options{
			Format:    cfg.ArchiveFormat(),
			Level:     cfg.Archive.Level,
			DirMode:   cfg.DirPerm(),
			FileMode:  cfg.FilePerm(),
			Overwrite: cfg.Overwrite,
		},
		Ignore:      cfg.IgnorePatterns,
		FollowLinks: cfg.FollowsLinks(),
		SkipBinary:  cfg.SkipBinary,
	}
}

// 🏃 Runner executes commands
type Runner struct {
	engine Transfer
	opts   Options
}

// 🏗️ NewRunner creates a new runner
func NewRunner(engine Transfer, opts Options) *Runner {
	return &Runner{
		engine: engine,
		opts:   opts,
	}
}

func (r *Runner) walkOptions(cmd Command) walk.Options {
	return walk.Options{
		Depth:       cmd.WalkDepth(),
		FollowLinks: r.opts.FollowLinks,
		Ignore:      r.opts.Ignore,
	}
}

// 🏃 Run executes one command. Operand errors stop it before any
// filesystem change; everything after that is best effort.
func (r *Runner) Run(ctx context.Context, cmd Command) status.Result {
	logger := zerolog.Ctx(ctx)
	logger.Debug().
		Str("kind", cmd.Kind.String()).
		Strs("sources", cmd.Sources).
		Strs("targets", cmd.Targets).
		Int("depth", cmd.WalkDepth()).
		Msg("running command")

	switch cmd.Kind {
	case Create:
		kind := walk.File
		if cmd.Directory {
			kind = walk.Directory
		}
		return r.engine.CreateAll(ctx, cmd.Sources, kind)
	case Delete:
		return r.engine.DeleteAll(ctx, cmd.Sources, cmd.Recursive)
	case List:
		return transfer.List(ctx, cmd.Sources, r.walkOptions(cmd))
	case CopyFile, CopyDir, MoveFile, MoveDir:
		return r.transfer(ctx, cmd)
	case Compress:
		return r.compress(ctx, cmd)
	case Decompress:
		return r.decompress(ctx, cmd)
	case ListEntries:
		return r.entries(ctx, cmd)
	case SearchFile, SearchDir:
		return r.search(ctx, cmd)
	case FindName:
		return r.find(ctx, cmd)
	case ReadLines:
		return r.lines(ctx, cmd)
	}

	return status.Failed(cmd.Kind.String(), errors.Errorf("unknown command kind %d", cmd.Kind))
}

func (r *Runner) transfer(ctx context.Context, cmd Command) status.Result {
	action := "copy"
	if cmd.Kind == MoveFile || cmd.Kind == MoveDir {
		action = "move"
	}

	plan, err := pathset.New(cmd.Sources, cmd.Targets)
	if err != nil {
		return status.Failed(action, err)
	}

	wantDir := cmd.Kind == CopyDir || cmd.Kind == MoveDir
	if err := checkSources(plan.Sources, wantDir); err != nil {
		return status.Failed(action, err)
	}

	depth := cmd.WalkDepth()
	if action == "move" {
		return r.engine.MovePlan(ctx, plan, depth)
	}
	return r.engine.CopyPlan(ctx, plan, depth)
}

// checkSources rejects a directory given to a file command and the other
// way round; missing sources are left for the engine to report
func checkSources(sources []string, wantDir bool) error {
	var errs []error
	for _, src := range sources {
		info, err := os.Stat(src)
		if err != nil {
			continue
		}
		switch {
		case wantDir && !info.IsDir():
			errs = append(errs, errors.Errorf("%s: %w", src, status.ErrNotADirectory))
		case !wantDir && info.IsDir():
			errs = append(errs, errors.Errorf("%s: %w", src, status.ErrIsADirectory))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (r *Runner) archiveOptions(cmd Command) archive.Options {
	opts := r.opts.Archive
	opts.Walk = r.walkOptions(cmd)
	return opts
}

func (r *Runner) compress(ctx context.Context, cmd Command) status.Result {
	res := status.NewResult("compress")
	if len(cmd.Targets) != 1 {
		if len(cmd.Targets) == 0 {
			res.Fail(errors.Errorf("no output archive: %w", status.ErrMissingOperand))
		} else {
			res.Fail(errors.Errorf("%d outputs for one archive: %w", len(cmd.Targets), status.ErrArityMismatch))
		}
		return res.Finish()
	}

	output := cmd.Targets[0]
	names, err := archive.CompressPaths(ctx, cmd.Sources, output, r.archiveOptions(cmd))
	if err == nil || len(names) > 0 {
		res.Add(output)
	}
	res.Fail(err)
	return res.Finish()
}

func (r *Runner) decompress(ctx context.Context, cmd Command) status.Result {
	res := status.NewResult("decompress")
	plan, err := pathset.New(cmd.Sources, cmd.Targets)
	if err != nil {
		res.Fail(err)
		return res.Finish()
	}

	opts := r.archiveOptions(cmd)
	for pair := range plan.Pairs() {
		written, err := archive.Decompress(ctx, pair.Source, pair.Target, opts)
		res.Add(written...)
		res.Fail(err)
	}
	return res.Finish()
}

func (r *Runner) entries(ctx context.Context, cmd Command) status.Result {
	res := status.NewResult("entries")
	if len(cmd.Sources) == 0 {
		res.Fail(errors.Errorf("no archive: %w", status.ErrMissingOperand))
	}

	for _, src := range cmd.Sources {
		listing, err := archive.List(ctx, src)
		if err != nil {
			res.Fail(err)
			continue
		}
		for _, l := range listing {
			if len(cmd.Sources) > 1 {
				res.Print(fmt.Sprintf("%s:%d:%s", src, l.Index, l.Name))
				continue
			}
			res.Print(fmt.Sprintf("%d:%s", l.Index, l.Name))
		}
	}
	return res.Finish()
}

func (r *Runner) search(ctx context.Context, cmd Command) status.Result {
	res := status.NewResult("search")
	if cmd.Word == "" {
		res.Fail(errors.Errorf("no search word: %w", status.ErrMissingOperand))
		return res.Finish()
	}
	if len(cmd.Sources) == 0 {
		res.Fail(errors.Errorf("no search path: %w", status.ErrMissingOperand))
		return res.Finish()
	}

	for _, src := range cmd.Sources {
		matches := search.File(ctx, src, cmd.Word)
		if cmd.Kind == SearchDir {
			matches = search.Tree(ctx, src, cmd.Word, search.Options{
				Walk:       r.walkOptions(cmd),
				SkipBinary: r.opts.SkipBinary,
			})
		}

		for m, err := range matches {
			if err != nil {
				res.Fail(err)
				continue
			}
			res.Print(fmt.Sprintf("%s:%d:%s", m.Path, m.Line, m.Text))
		}
	}
	return res.Finish()
}

func (r *Runner) find(ctx context.Context, cmd Command) status.Result {
	res := status.NewResult("find")
	if cmd.Word == "" {
		res.Fail(errors.Errorf("no name pattern: %w", status.ErrMissingOperand))
		return res.Finish()
	}
	if len(cmd.Sources) == 0 {
		res.Fail(errors.Errorf("no search path: %w", status.ErrMissingOperand))
		return res.Finish()
	}

	for _, src := range cmd.Sources {
		for entry, err := range search.Names(ctx, src, cmd.Word, r.walkOptions(cmd)) {
			if err != nil {
				res.Fail(err)
				continue
			}
			res.Print(transfer.Display(entry))
		}
	}
	return res.Finish()
}

func (r *Runner) lines(ctx context.Context, cmd Command) status.Result {
	res := status.NewResult("cat")
	if len(cmd.Sources) == 0 {
		res.Fail(errors.Errorf("no file: %w", status.ErrMissingOperand))
	}

	for _, src := range cmd.Sources {
		for m, err := range search.Lines(ctx, src, cmd.Start, cmd.Stop) {
			if err != nil {
				res.Fail(err)
				continue
			}
			res.Print(fmt.Sprintf("%d:%s", m.Line, m.Text))
		}
	}
	return res.Finish()
}
