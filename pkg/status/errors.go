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

// 🚫 Sentinel errors wrapped by every engine
var (
	ErrSourceNotFound    = errors.Base("source not found")
	ErrAlreadyExists     = errors.Base("already exists")
	ErrDirectoryNotEmpty = errors.Base("directory not empty")
	ErrNotADirectory     = errors.Base("not a directory")
	ErrIsADirectory      = errors.Base("is a directory")
	ErrArityMismatch     = errors.Base("source and target counts differ")
	ErrMissingOperand    = errors.Base("missing operand")
	ErrPathTraversal     = errors.Base("path traversal rejected")
	ErrInvalidTarget     = errors.Base("invalid target")
)

// 🏷️ Kind classifies an error for display and tests
type Kind int

const (
	KindNone Kind = iota
	KindSourceNotFound
	KindAlreadyExists
	KindDirectoryNotEmpty
	KindNotADirectory
	KindIsADirectory
	KindArityMismatch
	KindMissingOperand
	KindPathTraversalRejected
	KindInvalidTarget
	KindIOFailure
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindSourceNotFound:
		return "source_not_found"
	case KindAlreadyExists:
		return "already_exists"
	case KindDirectoryNotEmpty:
		return "directory_not_empty"
	case KindNotADirectory:
		return "not_a_directory"
	case KindIsADirectory:
		return "is_a_directory"
	case KindArityMismatch:
		return "arity_mismatch"
	case KindMissingOperand:
		return "missing_operand"
	case KindPathTraversalRejected:
		return "path_traversal_rejected"
	case KindInvalidTarget:
		return "invalid_target"
	default:
		return "io_failure"
	}
}

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrSourceNotFound, KindSourceNotFound},
	{ErrAlreadyExists, KindAlreadyExists},
	{ErrDirectoryNotEmpty, KindDirectoryNotEmpty},
	{ErrNotADirectory, KindNotADirectory},
	{ErrIsADirectory, KindIsADirectory},
	{ErrArityMismatch, KindArityMismatch},
	{ErrMissingOperand, KindMissingOperand},
	{ErrPathTraversal, KindPathTraversalRejected},
	{ErrInvalidTarget, KindInvalidTarget},
}

// 🔍 KindOf returns the kind of the first sentinel found in err's chain.
// Unrecognised errors are I/O failures.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindIOFailure
}
