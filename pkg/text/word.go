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

// Package text tokenizes lines for whole-word matching.
package text

import (
	"strings"
	"unicode"
)

// isDelimiter reports whether r separates tokens. Runs of delimiters
// collapse into one boundary.
func isDelimiter(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// 🔪 Tokenize splits line into its alphanumeric tokens
func Tokenize(line string) []string {
	return strings.FieldsFunc(line, isDelimiter)
}

// 🔍 ContainsWord reports whether some token of line equals word, ignoring
// case. Substrings of a token do not match.
func ContainsWord(line, word string) bool {
	if word == "" {
		return false
	}
	for _, tok := range Tokenize(line) {
		if strings.EqualFold(tok, word) {
			return true
		}
	}
	return false
}
