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
	"archive/tar"
	"archive/zip"
	"context"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"
	"github.com/walteh/filemgr/pkg/pathset"
	"github.com/walteh/filemgr/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📋 Listing is one stored member as shown by List
type Listing struct {
	Index int // 1-based position in the archive
	Name  string
	Size  int64
	Dir   bool
}

type member struct {
	Name     string
	Mode     fs.FileMode
	Modified time.Time
	Size     int64
}

type opener func() (io.ReadCloser, error)

// 🛡️ Destination resolves a stored name under root. Absolute names and
// names that resolve outside root are rejected with ErrPathTraversal.
// Backslashes count as separators.
func Destination(root, name string) (string, error) {
	slashed := strings.ReplaceAll(name, `\`, "/")
	if slashed == "" {
		return "", errors.Errorf("empty entry name: %w", status.ErrPathTraversal)
	}
	if path.IsAbs(slashed) || filepath.IsAbs(name) || filepath.VolumeName(filepath.FromSlash(slashed)) != "" {
		return "", errors.Errorf("absolute entry %q: %w", name, status.ErrPathTraversal)
	}

	dest := filepath.Join(root, filepath.FromSlash(slashed))
	if !pathset.Within(root, dest) {
		return "", errors.Errorf("entry %q escapes %s: %w", name, root, status.ErrPathTraversal)
	}
	return dest, nil
}

// 📂 Decompress extracts the archive at archivePath under targetRoot and
// returns the paths it created. Every stored name is checked before the
// first write; one bad name fails the call and nothing is extracted.
// Symbolic links and other special members are skipped.
func Decompress(ctx context.Context, archivePath, targetRoot string, opts Options) ([]string, error) {
	if archivePath == "" || targetRoot == "" {
		return nil, errors.Errorf("decompressing: %w", status.ErrMissingOperand)
	}
	opts = opts.withDefaults()
	logger := zerolog.Ctx(ctx)

	format, err := Detect(archivePath)
	if err != nil {
		return nil, err
	}

	err = scan(archivePath, format, func(m member, _ opener) error {
		_, err := Destination(targetRoot, m.Name)
		return err
	})
	if err != nil {
		return nil, errors.Errorf("decompressing %s: %w", archivePath, err)
	}

	if err := os.MkdirAll(targetRoot, opts.DirMode); err != nil {
		return nil, errors.Errorf("creating %s: %w", targetRoot, err)
	}

	var written []string
	err = scan(archivePath, format, func(m member, open opener) error {
		dest, err := Destination(targetRoot, m.Name)
		if err != nil {
			return err
		}

		switch {
		case m.Mode.IsDir():
			if err := os.MkdirAll(dest, opts.DirMode); err != nil {
				return errors.Errorf("creating directory %s: %w", dest, err)
			}
		case m.Mode.IsRegular():
			if err := extractFile(dest, m, open, opts); err != nil {
				return err
			}
		default:
			logger.Debug().Str("name", m.Name).Str("mode", m.Mode.String()).Msg("skipping special member")
			return nil
		}

		logger.Debug().Str("name", m.Name).Str("path", dest).Msg("extracted")
		written = append(written, dest)
		return nil
	})
	if err != nil {
		return written, errors.Errorf("decompressing %s: %w", archivePath, err)
	}
	return written, nil
}

func extractFile(dest string, m member, open opener, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(dest), opts.DirMode); err != nil {
		return errors.Errorf("creating parent of %s: %w", dest, err)
	}

	if info, err := os.Stat(dest); err == nil {
		if info.IsDir() {
			return errors.Errorf("extracting %s: %w", dest, status.ErrIsADirectory)
		}
		if !opts.Overwrite {
			return errors.Errorf("extracting %s: %w", dest, status.ErrAlreadyExists)
		}
	}

	perm := m.Mode.Perm()
	if perm == 0 {
		perm = opts.FileMode
	}

	rc, err := open()
	if err != nil {
		return errors.Errorf("opening member %s: %w", m.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return errors.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return errors.Errorf("writing %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		return errors.Errorf("closing %s: %w", dest, err)
	}

	if !m.Modified.IsZero() {
		// best effort, content is what matters
		_ = os.Chtimes(dest, m.Modified, m.Modified)
	}
	return nil
}

// 📜 List returns the stored members in archive order
func List(ctx context.Context, archivePath string) ([]Listing, error) {
	if archivePath == "" {
		return nil, errors.Errorf("listing archive: %w", status.ErrMissingOperand)
	}

	format, err := Detect(archivePath)
	if err != nil {
		return nil, err
	}

	var out []Listing
	err = scan(archivePath, format, func(m member, _ opener) error {
		out = append(out, Listing{
			Index: len(out) + 1,
			Name:  m.Name,
			Size:  m.Size,
			Dir:   m.Mode.IsDir(),
		})
		return nil
	})
	if err != nil {
		return out, errors.Errorf("listing %s: %w", archivePath, err)
	}

	zerolog.Ctx(ctx).Debug().Str("archive", archivePath).Str("format", string(format)).Int("members", len(out)).Msg("listed")
	return out, nil
}

// scan hands every member of the archive to fn in stored order
func scan(archivePath string, format Format, fn func(m member, open opener) error) error {
	if format == Zip {
		return scanZip(archivePath, fn)
	}
	return scanTar(archivePath, format, fn)
}

func scanZip(archivePath string, fn func(m member, open opener) error) error {
	// insecure names come back with a usable reader; Destination judges them
	zr, err := zip.OpenReader(archivePath)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return errors.Errorf("opening zip: %w", err)
	}
	defer zr.Close()
	zr.RegisterDecompressor(zip.Deflate, flate.NewReader)

	for _, f := range zr.File {
		m := member{
			Name:     f.Name,
			Mode:     f.Mode(),
			Modified: f.Modified,
			Size:     int64(f.UncompressedSize64),
		}
		if err := fn(m, f.Open); err != nil {
			return err
		}
	}
	return nil
}

func scanTar(archivePath string, format Format, fn func(m member, open opener) error) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return errors.Errorf("opening tar: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	switch format {
	case TarGzip:
		gz, err := gzip.NewReader(f)
		if err != nil {
			return errors.Errorf("opening gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	case TarZstd:
		zr, err := zstd.NewReader(f)
		if err != nil {
			return errors.Errorf("opening zstd stream: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil && !errors.Is(err, tar.ErrInsecurePath) {
			return errors.Errorf("reading tar header: %w", err)
		}

		m := member{
			Name:     hdr.Name,
			Mode:     hdr.FileInfo().Mode(),
			Modified: hdr.ModTime,
			Size:     hdr.Size,
		}
		open := func() (io.ReadCloser, error) {
			return io.NopCloser(tr), nil
		}
		if err := fn(m, open); err != nil {
			return err
		}
	}
}
