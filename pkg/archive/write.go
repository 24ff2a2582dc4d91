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
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"
	"github.com/walteh/filemgr/pkg/status"
	"github.com/walteh/filemgr/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// ⚙️ Options control how archives are written and extracted
type Options struct {
	Format    Format       // Output format when the output name has no known suffix
	Level     int          // Codec level, 0 for the codec default
	Walk      walk.Options // Depth, links and ignore patterns for the inputs
	DirMode   os.FileMode  // Mode for extracted directories
	FileMode  os.FileMode  // Mode for extracted files whose header has none
	Overwrite bool         // Replace existing files when extracting or writing the output
}

func (o Options) withDefaults() Options {
	if o.DirMode == 0 {
		o.DirMode = 0o755
	}
	if o.FileMode == 0 {
		o.FileMode = 0o644
	}
	return o
}

// sink is one open archive container
type sink interface {
	add(name string, info os.FileInfo, r io.Reader) error
	Close() error
}

type zipSink struct {
	zw *zip.Writer
}

func newZipSink(w io.Writer, level int) *zipSink {
	if level == 0 {
		level = flate.DefaultCompression
	}
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})
	return &zipSink{zw: zw}
}

func (s *zipSink) add(name string, info os.FileInfo, r io.Reader) error {
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return errors.Errorf("building header for %s: %w", name, err)
	}
	hdr.Name = name
	hdr.Method = zip.Deflate
	if info.IsDir() {
		hdr.Method = zip.Store
	}

	w, err := s.zw.CreateHeader(hdr)
	if err != nil {
		return errors.Errorf("adding %s: %w", name, err)
	}
	if r == nil {
		return nil
	}
	if _, err := io.Copy(w, r); err != nil {
		return errors.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func (s *zipSink) Close() error {
	return s.zw.Close()
}

type tarSink struct {
	tw    *tar.Writer
	codec io.WriteCloser // nil for plain tar
}

func newTarSink(w io.Writer, format Format, level int) (*tarSink, error) {
	switch format {
	case TarGzip:
		if level == 0 {
			level = gzip.DefaultCompression
		}
		gz, err := gzip.NewWriterLevel(w, level)
		if err != nil {
			return nil, errors.Errorf("creating gzip writer: %w", err)
		}
		return &tarSink{tw: tar.NewWriter(gz), codec: gz}, nil
	case TarZstd:
		var opts []zstd.EOption
		if level != 0 {
			opts = append(opts, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
		}
		zw, err := zstd.NewWriter(w, opts...)
		if err != nil {
			return nil, errors.Errorf("creating zstd writer: %w", err)
		}
		return &tarSink{tw: tar.NewWriter(zw), codec: zw}, nil
	}
	return &tarSink{tw: tar.NewWriter(w)}, nil
}

func (s *tarSink) add(name string, info os.FileInfo, r io.Reader) error {
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return errors.Errorf("building header for %s: %w", name, err)
	}
	hdr.Name = name

	if err := s.tw.WriteHeader(hdr); err != nil {
		return errors.Errorf("adding %s: %w", name, err)
	}
	if r == nil {
		return nil
	}
	if _, err := io.Copy(s.tw, r); err != nil {
		return errors.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func (s *tarSink) Close() error {
	if err := s.tw.Close(); err != nil {
		if s.codec != nil {
			s.codec.Close()
		}
		return err
	}
	if s.codec != nil {
		return s.codec.Close()
	}
	return nil
}

func newSink(w io.Writer, format Format, level int) (sink, error) {
	switch format {
	case Zip, "":
		return newZipSink(w, level), nil
	case Tar, TarGzip, TarZstd:
		return newTarSink(w, format, level)
	}
	return nil, errors.Errorf("unknown archive format %q", format)
}

// ✍️ Write streams entries into w as format and returns the stored names.
// Errors yielded by entries are collected and returned joined while the
// remaining entries are still written; a failed write stops at once.
func Write(ctx context.Context, w io.Writer, format Format, entries iter.Seq2[Entry, error], opts Options) ([]string, error) {
	names, skipped, err := write(ctx, w, format, entries, opts)
	if err != nil {
		return names, err
	}
	if len(skipped) > 0 {
		return names, errors.Join(skipped...)
	}
	return names, nil
}

func write(ctx context.Context, w io.Writer, format Format, entries iter.Seq2[Entry, error], opts Options) (names []string, skipped []error, err error) {
	logger := zerolog.Ctx(ctx)

	s, err := newSink(w, format, opts.Level)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil && err == nil {
			err = errors.Errorf("finishing archive: %w", closeErr)
		}
	}()

	for entry, walkErr := range entries {
		if walkErr != nil {
			skipped = append(skipped, walkErr)
			continue
		}

		info, statErr := os.Stat(entry.Source)
		if statErr != nil {
			skipped = append(skipped, errors.Errorf("archiving %s: %w", entry.Source, statErr))
			continue
		}

		if info.IsDir() {
			name := entry.Name
			if !strings.HasSuffix(name, "/") {
				name += "/"
			}
			if err := s.add(name, info, nil); err != nil {
				return names, skipped, err
			}
			names = append(names, name)
			continue
		}

		if err := addFile(s, entry, info); err != nil {
			return names, skipped, err
		}
		logger.Debug().Str("name", entry.Name).Str("source", entry.Source).Msg("archived")
		names = append(names, entry.Name)
	}

	return names, skipped, nil
}

func addFile(s sink, entry Entry, info os.FileInfo) error {
	f, err := os.Open(entry.Source)
	if err != nil {
		return errors.Errorf("opening %s: %w", entry.Source, err)
	}
	defer f.Close()
	return s.add(entry.Name, info, f)
}

// 📦 CompressPaths writes every source into a single archive at output.
// The format comes from the output name, else opts.Format, else zip.
// The output is never added to itself and is removed again when writing
// fails. Unreadable inputs are reported in the joined error while the
// archive is kept.
func CompressPaths(ctx context.Context, sources []string, output string, opts Options) ([]string, error) {
	if len(sources) == 0 || output == "" {
		return nil, errors.Errorf("compressing: %w", status.ErrMissingOperand)
	}
	opts = opts.withDefaults()

	format, ok := FormatFromName(output)
	if !ok {
		format = opts.Format
	}
	if format == "" {
		format = Zip
	}
	if opts.Format != "" && opts.Format != format {
		// the configured level belongs to another codec
		opts.Level = 0
	}

	if info, err := os.Stat(output); err == nil {
		if info.IsDir() {
			return nil, errors.Errorf("compressing to %s: %w", output, status.ErrIsADirectory)
		}
		if !opts.Overwrite {
			return nil, errors.Errorf("compressing to %s: %w", output, status.ErrAlreadyExists)
		}
	}

	if err := os.MkdirAll(filepath.Dir(output), opts.DirMode); err != nil {
		return nil, errors.Errorf("creating parent of %s: %w", output, err)
	}

	f, err := os.Create(output)
	if err != nil {
		return nil, errors.Errorf("creating %s: %w", output, err)
	}

	outInfo, err := f.Stat()
	if err != nil {
		f.Close()
		os.Remove(output)
		return nil, errors.Errorf("checking %s: %w", output, err)
	}

	inputs := func(yield func(Entry, error) bool) {
		for _, source := range sources {
			for entry, err := range Entries(ctx, source, opts.Walk) {
				if err == nil && isFile(entry.Source, outInfo) {
					zerolog.Ctx(ctx).Debug().Str("path", entry.Source).Msg("skipping the archive being written")
					continue
				}
				if !yield(entry, err) {
					return
				}
			}
		}
	}

	names, skipped, err := write(ctx, f, format, inputs, opts)
	if closeErr := f.Close(); closeErr != nil && err == nil {
		err = errors.Errorf("closing %s: %w", output, closeErr)
	}
	if err != nil {
		os.Remove(output)
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Str("output", output).Str("format", string(format)).Int("entries", len(names)).Msg("compressed")

	if len(skipped) > 0 {
		return names, errors.Join(skipped...)
	}
	return names, nil
}

func isFile(path string, info os.FileInfo) bool {
	other, err := os.Stat(path)
	if err != nil {
		return false
	}
	return os.SameFile(other, info)
}
