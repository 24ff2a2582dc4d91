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
	"fmt"
	"os"
	"path/filepath"

	"github.com/walteh/filemgr/pkg/pathset"
	"github.com/walteh/filemgr/pkg/status"
	"github.com/walteh/filemgr/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 🔁 CopyPlan copies every pair of plan and collects the outcome
func (e *Engine) CopyPlan(ctx context.Context, plan pathset.Plan, depth int) status.Result {
	res := status.NewResult("copy")
	for pair := range plan.Pairs() {
		out, err := e.Copy(ctx, pair.Source, pair.Target, depth)
		res.Add(out.Placed...)
		res.Fail(err)
	}
	return res.Finish()
}

// 🔁 MovePlan moves every pair of plan. One source cannot be moved to
// several targets, so a one-to-many plan fails before touching disk.
func (e *Engine) MovePlan(ctx context.Context, plan pathset.Plan, depth int) status.Result {
	res := status.NewResult("move")
	if plan.Kind == pathset.OneToMany {
		res.Fail(errors.Errorf("moving %s to %d targets: %w", plan.Sources[0], len(plan.Targets), status.ErrInvalidTarget))
		return res.Finish()
	}

	for pair := range plan.Pairs() {
		out, err := e.Move(ctx, pair.Source, pair.Target, depth)
		res.Add(out.Placed...)
		for _, kept := range out.Kept {
			res.Print(fmt.Sprintf("kept %s (not empty)", kept))
		}
		res.Fail(err)
	}
	return res.Finish()
}

// ✨ CreateAll creates every path as kind
func (e *Engine) CreateAll(ctx context.Context, paths []string, kind walk.Kind) status.Result {
	res := status.NewResult("create")
	if len(paths) == 0 {
		res.Fail(errors.Errorf("creating: %w", status.ErrMissingOperand))
	}
	for _, path := range paths {
		if err := e.Create(ctx, path, kind); err != nil {
			res.Fail(err)
			continue
		}
		res.Add(filepath.Clean(path))
	}
	return res.Finish()
}

// 🗑️ DeleteAll deletes every path, going on after a failed one
func (e *Engine) DeleteAll(ctx context.Context, paths []string, recursive bool) status.Result {
	res := status.NewResult("delete")
	if len(paths) == 0 {
		res.Fail(errors.Errorf("deleting: %w", status.ErrMissingOperand))
	}
	for _, path := range paths {
		removed, err := e.Delete(ctx, path, recursive)
		res.Add(removed...)
		res.Fail(err)
	}
	return res.Finish()
}

// 📜 List prints the entries under each root up to opts.Depth, directories
// marked with a trailing separator. A file root prints itself.
func List(ctx context.Context, roots []string, opts walk.Options) status.Result {
	res := status.NewResult("list")
	if len(roots) == 0 {
		res.Fail(errors.Errorf("listing: %w", status.ErrMissingOperand))
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			res.Fail(missing("listing", root, err))
			continue
		}
		if !info.IsDir() {
			res.Print(filepath.Clean(root))
			continue
		}

		for entry, err := range walk.Walk(ctx, root, opts) {
			if err != nil {
				res.Fail(err)
				continue
			}
			res.Print(Display(entry))
		}
	}

	if len(res.Output) == 0 && len(res.Errors) == 0 {
		res.Message = "list: empty"
	}
	return res.Finish()
}

// Display renders an entry path, directories with a trailing separator
func Display(entry walk.Entry) string {
	if entry.IsDir() {
		return entry.Path + string(filepath.Separator)
	}
	return entry.Path
}
