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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"slices"
	"strings"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// decoder is what json.Decoder and yaml.Decoder have in common
type decoder interface {
	Decode(v any) error
}

// 📄 streamParser decodes one document with a strict decoder chosen by
// file suffix. Unknown keys are errors; an empty file is an empty config.
type streamParser struct {
	format   string
	suffixes []string
	strict   func(r io.Reader) decoder
}

func init() {
	Register(&streamParser{
		format:   "YAML",
		suffixes: []string{".yaml", ".yml"},
		strict: func(r io.Reader) decoder {
			d := yaml.NewDecoder(r)
			d.KnownFields(true)
			return d
		},
	})
	Register(&streamParser{
		format:   "JSON",
		suffixes: []string{".json"},
		strict: func(r io.Reader) decoder {
			d := json.NewDecoder(r)
			d.DisallowUnknownFields()
			return d
		},
	})
}

func (p *streamParser) CanParse(filename string) bool {
	name := strings.ToLower(strings.TrimSpace(filename))
	return slices.ContainsFunc(p.suffixes, func(suffix string) bool {
		return strings.HasSuffix(name, suffix)
	})
}

func (p *streamParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	if err := p.strict(bytes.NewReader(data)).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("parsing %s: %w", p.format, err)
	}
	return &cfg, nil
}
