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

package status

import (
	"gitlab.com/tozd/go/errors"
)

// 📋 Result is the outcome of one top-level operation
type Result struct {
	Action    string   // Verb shown to the user (copy, move, ...)
	Succeeded bool     // True when no error was collected
	Message   string   // Human readable summary
	Affected  []string // Paths successfully created, placed or removed
	Output    []string // Payload lines (listings, search matches)
	Errors    []error  // Every collected failure
}

// 🏭 NewResult starts an empty result for action
func NewResult(action string) *Result {
	return &Result{Action: action}
}

// ➕ Add records successfully affected paths
func (r *Result) Add(paths ...string) {
	r.Affected = append(r.Affected, paths...)
}

// 📝 Print appends payload lines
func (r *Result) Print(lines ...string) {
	r.Output = append(r.Output, lines...)
}

// ❌ Fail records a failure; nil errors are ignored
func (r *Result) Fail(err error) {
	if err == nil {
		return
	}
	r.Errors = append(r.Errors, err)
}

// 🔀 Merge folds another result into r
func (r *Result) Merge(other Result) {
	r.Affected = append(r.Affected, other.Affected...)
	r.Output = append(r.Output, other.Output...)
	r.Errors = append(r.Errors, other.Errors...)
}

// ✅ Finish computes Succeeded and, unless already set, Message
func (r *Result) Finish() Result {
	r.Succeeded = len(r.Errors) == 0
	if r.Message == "" {
		r.Message = Summarize(r)
	}
	return *r
}

// 🎯 Err joins every collected error, nil on success
func (r Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return errors.Join(r.Errors...)
}

// 🏷️ Kind reports the kind of the first collected error
func (r Result) Kind() Kind {
	if len(r.Errors) == 0 {
		return KindNone
	}
	return KindOf(r.Errors[0])
}

// 💥 Failed builds a finished result holding a single error
func Failed(action string, err error) Result {
	r := NewResult(action)
	r.Fail(err)
	return r.Finish()
}
