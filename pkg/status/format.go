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
	"fmt"
)

// Summarize builds the one-line message of a result
func Summarize(r *Result) string {
	switch {
	case len(r.Errors) == 0 && len(r.Affected) == 0 && len(r.Output) == 0:
		return fmt.Sprintf("%s: nothing to do", r.Action)
	case len(r.Errors) == 0:
		return fmt.Sprintf("%s: %s", r.Action, countLabel(r))
	case len(r.Affected) == 0 && len(r.Output) == 0:
		return fmt.Sprintf("%s failed: %s", r.Action, plural(len(r.Errors), "error", "errors"))
	default:
		return fmt.Sprintf("%s: %s, %s", r.Action, countLabel(r), plural(len(r.Errors), "error", "errors"))
	}
}

func countLabel(r *Result) string {
	if len(r.Affected) > 0 {
		return plural(len(r.Affected), "path", "paths")
	}
	return plural(len(r.Output), "line", "lines")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// FormatError renders an error with its kind, matching the renderer's layout
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("[%s] %v", KindOf(err), err)
}
