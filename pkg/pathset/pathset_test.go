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

package pathset

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/filemgr/pkg/status"
)

const sep = "to"

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		sources   []string
		rest      []string
		wantKind  Kind
		wantPairs []Pair
		wantErr   error
	}{
		{
			name:      "one_to_one",
			sources:   []string{"a"},
			rest:      []string{sep, "x"},
			wantKind:  OneToOne,
			wantPairs: []Pair{{"a", "x"}},
		},
		{
			name:      "many_to_one",
			sources:   []string{"a", "b"},
			rest:      []string{sep, "x"},
			wantKind:  ManyToOne,
			wantPairs: []Pair{{"a", "x"}, {"b", "x"}},
		},
		{
			name:      "one_to_many",
			sources:   []string{"a"},
			rest:      []string{sep, "x", "y"},
			wantKind:  OneToMany,
			wantPairs: []Pair{{"a", "x"}, {"a", "y"}},
		},
		{
			name:      "positional",
			sources:   []string{"a", "b"},
			rest:      []string{sep, "x", "y"},
			wantKind:  PositionalManyToMany,
			wantPairs: []Pair{{"a", "x"}, {"b", "y"}},
		},
		{
			name:      "sources_before_separator_in_rest",
			sources:   nil,
			rest:      []string{"a", "b", sep, "x"},
			wantKind:  ManyToOne,
			wantPairs: []Pair{{"a", "x"}, {"b", "x"}},
		},
		{
			name:      "only_first_separator_splits",
			sources:   []string{"a"},
			rest:      []string{sep, "x", sep},
			wantKind:  OneToMany,
			wantPairs: []Pair{{"a", "x"}, {"a", sep}},
		},
		{
			name:    "arity_mismatch",
			sources: []string{"a", "b"},
			rest:    []string{sep, "x", "y", "z"},
			wantErr: status.ErrArityMismatch,
		},
		{
			name:    "missing_separator",
			sources: []string{"a"},
			rest:    []string{"x"},
			wantErr: status.ErrMissingOperand,
		},
		{
			name:    "no_sources",
			sources: nil,
			rest:    []string{sep, "x"},
			wantErr: status.ErrMissingOperand,
		},
		{
			name:    "no_targets",
			sources: []string{"a"},
			rest:    []string{sep},
			wantErr: status.ErrMissingOperand,
		},
		{
			name:    "empty_operand",
			sources: []string{"a", ""},
			rest:    []string{sep, "x"},
			wantErr: status.ErrMissingOperand,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Resolve(tt.sources, sep, tt.rest)
			if tt.wantErr != nil {
				require.Error(t, err, "resolve should fail")
				assert.ErrorIs(t, err, tt.wantErr, "error should wrap the sentinel")
				return
			}
			require.NoError(t, err, "resolve should succeed")
			assert.Equal(t, tt.wantKind, plan.Kind, "plan kind should match")
			assert.Equal(t, tt.wantPairs, slices.Collect(plan.Pairs()), "pairs should match")
		})
	}
}

func TestNewDoesNotAliasInput(t *testing.T) {
	sources := []string{"a", "b"}
	plan, err := New(sources, []string{"x"})
	require.NoError(t, err, "new should succeed")
	sources[0] = "mutated"
	assert.Equal(t, "a", plan.Sources[0], "plan should own its sources")
}

func TestPairsStopsEarly(t *testing.T) {
	plan, err := New([]string{"a", "b", "c"}, []string{"x"})
	require.NoError(t, err, "new should succeed")

	var seen []string
	for p := range plan.Pairs() {
		seen = append(seen, p.Source)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen, "iteration should stop when the consumer breaks")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "positional_many_to_many", PositionalManyToMany.String(), "string should match")
	assert.Equal(t, "unknown", Kind(42).String(), "unknown kind should say so")
}
