// Copyright 2024 Google LLC
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

// Package version parses and compares BCD version strings: dotted,
// semver-shaped but not semver-compliant identifiers (e.g. "110.0.0.1",
// "≤16"), so golang.org/x/mod/semver cannot be used — it rejects anything
// not in strict MAJOR.MINOR.PATCH form. Comparison here mirrors BCD's own
// informal rule: strip anything that isn't a digit or a dot, split on
// dots, pad the shorter sequence with trailing zero components (so "16"
// equals "16.0.0"), and compare component-wise as integers.
package version

import (
	"errors"
	"strconv"
	"strings"
)

// ErrUnknownVersion is returned when a support statement names a version
// string that is not present in the relevant browser's release catalog.
// Callers must surface it rather than silently skip the statement.
var ErrUnknownVersion = errors.New("version not found in browser release catalog")

// rangedPrefix is BCD's marker for "supported by V, introduction unknown
// earlier".
const rangedPrefix = "≤"

// Version is a first-class ranged-or-exact version value, rather than
// scattered strings.HasPrefix(v, "≤") checks.
type Version struct {
	// Raw is the version string with any ranged prefix already removed.
	Raw string
	// Ranged is true iff the original string was prefixed "≤".
	Ranged bool
}

// Parse splits a raw version_added/version_removed string into its
// Version value.
func Parse(s string) Version {
	if strings.HasPrefix(s, rangedPrefix) {
		return Version{Raw: strings.TrimPrefix(s, rangedPrefix), Ranged: true}
	}

	return Version{Raw: s}
}

// stripped keeps only digits and dots from s.
func stripped(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// Compare returns -1, 0, or 1 as version a is less than, equal to, or
// greater than version b, comparing dotted numeric components
// left-to-right after stripping non-digit, non-dot characters and
// padding the shorter sequence with trailing zero components. It implements a
// total order consistent across all release version strings in a single
// browser's catalog.
func Compare(a, b string) int {
	aParts := strings.Split(stripped(a), ".")
	bParts := strings.Split(stripped(b), ".")

	n := len(aParts)
	if len(bParts) > n {
		n = len(bParts)
	}

	for i := 0; i < n; i++ {
		aVal := componentAt(aParts, i)
		bVal := componentAt(bParts, i)
		switch {
		case aVal < bVal:
			return -1
		case aVal > bVal:
			return 1
		}
	}

	return 0
}

// componentAt returns the integer value of parts[i], treating a
// missing or unparseable component as zero (trailing-zero padding).
func componentAt(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	if parts[i] == "" {
		return 0
	}
	n, err := strconv.Atoi(parts[i])
	if err != nil {
		return 0
	}

	return n
}
