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

package config

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/filemgr/pkg/archive"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse decodes the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// DefaultNames are the files Find looks for, in order
var DefaultNames = []string{".filemgr.yaml", ".filemgr.yml", ".filemgr.json", ".filemgr.hcl"}

// 🗜️ ArchiveArgs holds archive defaults
type ArchiveArgs struct {
	Format string `json:"format,omitempty" yaml:"format,omitempty" hcl:"format,optional"` // zip, tar, tar.gz or tar.zst
	Level  int    `json:"level,omitempty" yaml:"level,omitempty" hcl:"level,optional"`    // Codec level, 0 for the default
}

// 📚 Config represents the complete configuration
type Config struct {
	Separator      string       `json:"separator,omitempty" yaml:"separator,omitempty" hcl:"separator,optional"`
	Overwrite      bool         `json:"overwrite,omitempty" yaml:"overwrite,omitempty" hcl:"overwrite,optional"`
	FollowLinks    *bool        `json:"follow_links,omitempty" yaml:"follow_links,omitempty" hcl:"follow_links,optional"`
	SkipBinary     bool         `json:"skip_binary,omitempty" yaml:"skip_binary,omitempty" hcl:"skip_binary,optional"`
	DirMode        string       `json:"dir_mode,omitempty" yaml:"dir_mode,omitempty" hcl:"dir_mode,optional"`
	FileMode       string       `json:"file_mode,omitempty" yaml:"file_mode,omitempty" hcl:"file_mode,optional"`
	IgnorePatterns []string     `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty" hcl:"ignore_patterns,optional"`
	Archive        *ArchiveArgs `json:"archive,omitempty" yaml:"archive,omitempty" hcl:"archive,block"`

	location string
	dirPerm  os.FileMode
	filePerm os.FileMode
	format   archive.Format
}

// 🏭 Default returns the validated built-in configuration
func Default() *Config {
	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config %s: %w", path, err)
	}
	cfg.location = path

	return cfg, nil
}

// 🔎 Find loads the first of DefaultNames present in dir, or Default
// when there is none
func Find(ctx context.Context, dir string) (*Config, error) {
	for _, name := range DefaultNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, errors.Errorf("checking %s: %w", path, err)
		}
		return Load(ctx, path)
	}

	zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("no config file, using defaults")
	return Default(), nil
}

// 🔍 Validate fills defaults and checks every value
func (cfg *Config) Validate() error {
	if cfg.Separator == "" {
		cfg.Separator = "to"
	}
	if strings.ContainsFunc(cfg.Separator, unicode.IsSpace) {
		return errors.Errorf("separator %q must be a single word", cfg.Separator)
	}

	if cfg.FollowLinks == nil {
		follow := true
		cfg.FollowLinks = &follow
	}

	if cfg.DirMode == "" {
		cfg.DirMode = "0755"
	}
	if cfg.FileMode == "" {
		cfg.FileMode = "0644"
	}

	var err error
	if cfg.dirPerm, err = parseMode(cfg.DirMode); err != nil {
		return errors.Errorf("dir_mode: %w", err)
	}
	if cfg.filePerm, err = parseMode(cfg.FileMode); err != nil {
		return errors.Errorf("file_mode: %w", err)
	}

	for _, pattern := range cfg.IgnorePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("ignore pattern %q is not a valid glob", pattern)
		}
	}

	if cfg.Archive == nil {
		cfg.Archive = &ArchiveArgs{}
	}
	if cfg.format, err = archive.ParseFormat(cfg.Archive.Format); err != nil {
		return errors.Errorf("archive.format: %w", err)
	}
	cfg.Archive.Format = string(cfg.format)

	if err := checkLevel(cfg.format, cfg.Archive.Level); err != nil {
		return errors.Errorf("archive.level: %w", err)
	}

	return nil
}

// FollowsLinks reports whether walks descend through symbolic links to
// directories; unset means yes
func (cfg *Config) FollowsLinks() bool {
	return cfg.FollowLinks == nil || *cfg.FollowLinks
}

// DirPerm returns the parsed dir_mode
func (cfg *Config) DirPerm() os.FileMode {
	return cfg.dirPerm
}

// FilePerm returns the parsed file_mode
func (cfg *Config) FilePerm() os.FileMode {
	return cfg.filePerm
}

// ArchiveFormat returns the parsed archive.format
func (cfg *Config) ArchiveFormat() archive.Format {
	return cfg.format
}

// Location is the file the config was loaded from, empty for defaults
func (cfg *Config) Location() string {
	return cfg.location
}

// 📝 String returns a short description of the config
func (cfg *Config) String() string {
	source := cfg.location
	if source == "" {
		source = "defaults"
	}
	return fmt.Sprintf("%s: separator=%q archive=%s dirs=%s files=%s", source, cfg.Separator, cfg.format, cfg.DirMode, cfg.FileMode)
}

func parseMode(s string) (os.FileMode, error) {
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, errors.Errorf("%q is not an octal mode", s)
	}
	if v == 0 || v > 0o777 {
		return 0, errors.Errorf("%q is out of range", s)
	}
	return os.FileMode(v), nil
}

func checkLevel(format archive.Format, level int) error {
	lo, hi := -1, 9
	switch format {
	case archive.Tar:
		if level != 0 {
			return errors.Errorf("plain tar is not compressed, got level %d", level)
		}
		return nil
	case archive.TarZstd:
		lo, hi = 0, 22
	}
	if level < lo || level > hi {
		return errors.Errorf("level %d is outside %d..%d for %s", level, lo, hi, format)
	}
	return nil
}
