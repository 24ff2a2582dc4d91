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
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🎯 Kind selects what a Command does
type Kind int

const (
	Create Kind = iota
	Delete
	List
	CopyFile
	CopyDir
	MoveFile
	MoveDir
	Compress
	Decompress
	ListEntries
	SearchFile
	SearchDir
	FindName
	ReadLines
)

var kindNames = map[Kind]string{
	Create:      "create",
	Delete:      "delete",
	List:        "list",
	CopyFile:    "copy-file",
	CopyDir:     "copy-dir",
	MoveFile:    "move-file",
	MoveDir:     "move-dir",
	Compress:    "compress",
	Decompress:  "decompress",
	ListEntries: "entries",
	SearchFile:  "search-file",
	SearchDir:   "search-dir",
	FindName:    "find",
	ReadLines:   "cat",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return k, nil
		}
	}
	return 0, errors.Errorf("unknown command %q", name)
}

// 📦 Command is one parsed user request
type Command struct {
	Kind      Kind
	Sources   []string
	Targets   []string
	Recursive bool   // Walk whole trees
	Depth     int    // Explicit depth limit, wins over Recursive when above zero
	Word      string // Search word, or name pattern for FindName
	Directory bool   // Create directories instead of files
	Start     int    // First line for ReadLines
	Stop      int    // Last line for ReadLines, zero for the end
}

// WalkDepth is the walk.Options depth the command implies: 1 touches
// immediate children only, 0 the whole tree
func (c Command) WalkDepth() int {
	switch {
	case c.Depth > 0:
		return c.Depth
	case c.Recursive:
		return 0
	default:
		return 1
	}
}
