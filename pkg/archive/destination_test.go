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

package archive

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/filemgr/pkg/status"
)

func TestDestination(t *testing.T) {
	root := filepath.Join(string(filepath.Separator)+"tmp", "out")
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "file", in: "D/a.txt", want: filepath.Join(root, "D", "a.txt")},
		{name: "directory", in: "D/sub/", want: filepath.Join(root, "D", "sub")},
		{name: "dot", in: "./", want: root},
		{name: "inner_dotdot", in: "D/x/../a.txt", want: filepath.Join(root, "D", "a.txt")},
		{name: "dotdot_prefixed_name", in: "..a.txt", want: filepath.Join(root, "..a.txt")},
		{name: "escape", in: "../../etc/passwd"},
		{name: "escape_to_parent", in: ".."},
		{name: "absolute", in: "/etc/passwd"},
		{name: "backslash_escape", in: `..\evil`},
		{name: "empty", in: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Destination(root, tt.in)
			if tt.want == "" {
				require.Error(t, err, "name should be rejected")
				assert.ErrorIs(t, err, status.ErrPathTraversal, "rejection should be a traversal error")
				return
			}
			require.NoError(t, err, "name should be accepted")
			assert.Equal(t, tt.want, got, "destination should match")
		})
	}
}

func TestFormats(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		ok     bool
	}{
		{name: "out.zip", format: Zip, ok: true},
		{name: "OUT.ZIP", format: Zip, ok: true},
		{name: "out.tar", format: Tar, ok: true},
		{name: "out.tar.gz", format: TarGzip, ok: true},
		{name: "out.tgz", format: TarGzip, ok: true},
		{name: "out.tar.zst", format: TarZstd, ok: true},
		{name: "out.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FormatFromName(tt.name)
			assert.Equal(t, tt.ok, ok, "recognition should match")
			assert.Equal(t, tt.format, got, "format should match")
		})
	}

	for _, alias := range []string{"tgz", "gzip", ".tar.gz"} {
		f, err := ParseFormat(alias)
		require.NoError(t, err, "alias %s should parse", alias)
		assert.Equal(t, TarGzip, f, "alias %s should map to tar.gz", alias)
	}

	_, err := ParseFormat("rar")
	assert.Error(t, err, "unknown formats should be rejected")
}
