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

// Package pathset turns source and target operand lists into a pairing plan.
package pathset

import (
	"iter"
	"slices"

	"github.com/walteh/filemgr/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🧭 Kind is the shape of a pairing plan
type Kind int

const (
	OneToOne Kind = iota
	ManyToOne
	OneToMany
	PositionalManyToMany
)

func (k Kind) String() string {
	switch k {
	case OneToOne:
		return "one_to_one"
	case ManyToOne:
		return "many_to_one"
	case OneToMany:
		return "one_to_many"
	case PositionalManyToMany:
		return "positional_many_to_many"
	default:
		return "unknown"
	}
}

// 📋 Plan pairs sources with targets. Positional plans always hold equally
// long lists.
type Plan struct {
	Kind    Kind
	Sources []string
	Targets []string
}

// 🔗 Pair is one concrete (source, target) combination of a plan
type Pair struct {
	Source string
	Target string
}

// 🎯 Resolve splits rest at the first separator. Tokens before it are
// appended to sources, tokens after it are the targets.
func Resolve(sources []string, separator string, rest []string) (Plan, error) {
	idx := slices.Index(rest, separator)
	if idx < 0 {
		return Plan{}, errors.Errorf("no %q between sources and targets: %w", separator, status.ErrMissingOperand)
	}

	all := make([]string, 0, len(sources)+idx)
	all = append(all, sources...)
	all = append(all, rest[:idx]...)

	return New(all, rest[idx+1:])
}

// 🏭 New classifies already separated source and target lists
func New(sources, targets []string) (Plan, error) {
	if len(sources) == 0 {
		return Plan{}, errors.Errorf("no source paths: %w", status.ErrMissingOperand)
	}
	if len(targets) == 0 {
		return Plan{}, errors.Errorf("no target paths: %w", status.ErrMissingOperand)
	}
	if slices.Contains(sources, "") || slices.Contains(targets, "") {
		return Plan{}, errors.Errorf("empty path operand: %w", status.ErrMissingOperand)
	}

	plan := Plan{
		Sources: slices.Clone(sources),
		Targets: slices.Clone(targets),
	}

	switch {
	case len(sources) == 1 && len(targets) == 1:
		plan.Kind = OneToOne
	case len(targets) == 1:
		plan.Kind = ManyToOne
	case len(sources) == 1:
		plan.Kind = OneToMany
	case len(sources) == len(targets):
		plan.Kind = PositionalManyToMany
	default:
		return Plan{}, errors.Errorf("%d sources for %d targets: %w", len(sources), len(targets), status.ErrArityMismatch)
	}

	return plan, nil
}

// 🔁 Pairs yields every (source, target) combination the plan implies:
// fan-in over sources, fan-out over targets, or index-for-index.
func (p Plan) Pairs() iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		switch p.Kind {
		case OneToOne, ManyToOne:
			for _, src := range p.Sources {
				if !yield(Pair{Source: src, Target: p.Targets[0]}) {
					return
				}
			}
		case OneToMany:
			for _, dst := range p.Targets {
				if !yield(Pair{Source: p.Sources[0], Target: dst}) {
					return
				}
			}
		case PositionalManyToMany:
			for i := range p.Sources {
				if !yield(Pair{Source: p.Sources[i], Target: p.Targets[i]}) {
					return
				}
			}
		}
	}
}
