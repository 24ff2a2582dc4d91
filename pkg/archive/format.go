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

// Package archive builds and extracts zip and tar archives.
//
// Stored names always use forward slashes and are relative to the parent
// of the archived root, so extracting an archive of D under T recreates
// T/<base(D)>. Directory entries carry a trailing slash.
//
// Extraction checks every stored name before the first byte is written:
// a name that is absolute or resolves outside the target root aborts the
// whole extraction with status.ErrPathTraversal.
package archive

import (
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/walteh/filemgr/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🗜️ Format names an archive container and its compression
type Format string

const (
	Zip     Format = "zip"
	Tar     Format = "tar"
	TarGzip Format = "tar.gz"
	TarZstd Format = "tar.zst"
)

var suffixes = []struct {
	suffix string
	format Format
}{
	{".tar.gz", TarGzip},
	{".tgz", TarGzip},
	{".tar.zst", TarZstd},
	{".tzst", TarZstd},
	{".tar", Tar},
	{".zip", Zip},
}

// ParseFormat accepts a format name or one of its short aliases
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "", "zip":
		return Zip, nil
	case "tar":
		return Tar, nil
	case "tar.gz", "tgz", "gz", "gzip":
		return TarGzip, nil
	case "tar.zst", "tzst", "zst", "zstd":
		return TarZstd, nil
	}
	return "", errors.Errorf("unknown archive format %q", name)
}

// FormatFromName picks the format implied by a file name's suffix
func FormatFromName(name string) (Format, bool) {
	lower := strings.ToLower(name)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s.suffix) {
			return s.format, true
		}
	}
	return "", false
}

// Extension returns the canonical file suffix for f
func (f Format) Extension() string {
	return "." + string(f)
}

// 🔎 Detect sniffs the container of an existing archive from its content,
// falling back to the file name when the content is not recognised.
func Detect(path string) (Format, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", errors.Errorf("opening archive %s: %w", path, status.ErrSourceNotFound)
		}
		return "", errors.Errorf("opening archive %s: %w", path, err)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", errors.Errorf("detecting format of %s: %w", path, err)
	}

	for m := mtype; m != nil; m = m.Parent() {
		switch {
		case m.Is("application/zip"):
			return Zip, nil
		case m.Is("application/x-tar"):
			return Tar, nil
		case m.Is("application/gzip"):
			return TarGzip, nil
		case m.Is("application/zstd"):
			return TarZstd, nil
		}
	}

	if f, ok := FormatFromName(path); ok {
		return f, nil
	}
	return "", errors.Errorf("detecting format of %s: unsupported content %s", path, mtype.String())
}
