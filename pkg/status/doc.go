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

/*
Package status defines the outcome model shared by every filemgr engine.

	+-------------+      +-------------+
	|   Engines   | ---> |   Result    |
	| (transfer,  |      | (affected,  |
	|  archive,   |      |  output,    |
	|  search)    |      |  errors)    |
	+-------------+      +------+------+
	                            |
	                     +------+------+
	                     |  Renderer   |
	                     |  (pkg/log)  |
	                     +-------------+

🎯 Purpose:
- Engines never print; they return a Result
- Every failure is a typed error that maps to a Kind
- The CLI owns the single display boundary

🔄 Flow:
1. An engine starts a Result with NewResult(action)
2. It records touched paths with Add and failures with Fail
3. Finish computes Succeeded and the summary Message
4. The caller renders it or turns it into an exit error with Err

🤝 Error kinds:
- SourceNotFound, AlreadyExists, DirectoryNotEmpty, NotADirectory
- ArityMismatch, MissingOperand (resolution time, nothing runs)
- PathTraversalRejected (aborts an extraction)
- InvalidTarget, IsADirectory
- IOFailure for anything else

🔍 Example:

	res := status.NewResult("copy")
	res.Add(dst)
	res.Fail(errors.Errorf("copying %s: %w", src, status.ErrSourceNotFound))
	out := res.Finish()
	if status.KindOf(out.Errors[0]) == status.KindSourceNotFound {
		// ...
	}
*/
package status
