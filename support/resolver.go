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

// Package support implements the Support Statement Resolver: the
// exhaustive case analysis that turns one or more raw BCD support
// statements plus a target release into a closed tri-state outcome.
package support

import (
	"github.com/saberrg/webcompat-baseline/bcd"
	"github.com/saberrg/webcompat-baseline/browser"
	"github.com/saberrg/webcompat-baseline/version"
)

// Status is the closed outcome of resolving support for one release. Only
// three values are reachable at the feature level: a statement can be
// plainly supported, qualified (prefixed/flagged/partial/renamed, which
// counts the same as Unsupported for Baseline purposes — see Collapse),
// unknown, or unsupported.
type Status int

const (
	Unsupported Status = iota
	Unknown
	SupportedPlain
)

// Qualifications are the non-plain caveats a single statement carries.
type Qualifications struct {
	Prefix                string
	AlternativeName       string
	Flagged               bool
	PartialImplementation bool
}

// IsPlain reports whether q has zero qualifications.
func (q Qualifications) IsPlain() bool {
	return q.Prefix == "" && q.AlternativeName == "" && !q.Flagged && !q.PartialImplementation
}

func qualificationsOf(entry bcd.StatementEntry) Qualifications {
	return Qualifications{
		Prefix:                entry.Prefix,
		AlternativeName:       entry.AlternativeName,
		Flagged:               len(entry.Flags) > 0,
		PartialImplementation: entry.PartialImplementation,
	}
}

// statementOutcome is the per-statement result of resolveStatement's
// case analysis, before the feature-level collapse folds qualifications
// in.
type statementOutcome struct {
	supported bool
	unknown   bool
	quals     Qualifications
}

// resolveStatement runs the exhaustive case analysis for one statement
// against one target release.
func resolveStatement(entry bcd.StatementEntry, release *browser.Release, cat *browser.Browser) (statementOutcome, error) {
	quals := qualificationsOf(entry)

	// Case 1: version_added == false.
	if entry.VersionAdded.False {
		return statementOutcome{supported: false, unknown: false, quals: quals}, nil
	}

	va := version.Parse(entry.VersionAdded.Version)

	var vr *version.Version
	if entry.VersionRemoved != nil && entry.VersionRemoved.IsTrue() {
		parsed := version.Parse(entry.VersionRemoved.Version)
		vr = &parsed
	}

	initial := cat.Releases[0]

	// Cases 2 and 3 both need va resolved and, when vr is ranged, vr
	// resolved too.
	if vr != nil && vr.Ranged {
		s, err := cat.Lookup(va.Raw)
		if err != nil {
			return statementOutcome{}, err
		}
		u, err := cat.Lookup(vr.Raw)
		if err != nil {
			return statementOutcome{}, err
		}

		if !va.Ranged {
			// Case 3: va exact, vr ranged.
			switch {
			case release == s:
				return statementOutcome{supported: true, quals: quals}, nil
			case release.Index >= u.Index:
				return statementOutcome{supported: false}, nil
			default:
				inInitialToS, err := cat.InRange(release, initial, s)
				if err != nil {
					return statementOutcome{}, err
				}
				if inInitialToS {
					return statementOutcome{supported: false}, nil
				}

				return statementOutcome{unknown: true}, nil
			}
		}

		// Case 2: both va and vr ranged.
		switch {
		case release == s:
			return statementOutcome{supported: true, quals: quals}, nil
		case release.Index >= u.Index:
			return statementOutcome{supported: false}, nil
		default:
			return statementOutcome{unknown: true}, nil
		}
	}

	// Case 4: the general case (va may be ranged, vr exact or absent).
	start, err := cat.Lookup(va.Raw)
	if err != nil {
		return statementOutcome{}, err
	}
	var end *browser.Release
	if vr != nil {
		end, err = cat.Lookup(vr.Raw)
		if err != nil {
			return statementOutcome{}, err
		}
	}

	inWindow, err := cat.InRange(release, start, end)
	if err != nil {
		return statementOutcome{}, err
	}
	if inWindow {
		return statementOutcome{supported: true, quals: quals}, nil
	}

	if va.Ranged {
		inInitialToStart, err := cat.InRange(release, initial, start)
		if err != nil {
			return statementOutcome{}, err
		}
		if inInitialToStart {
			return statementOutcome{unknown: true}, nil
		}
	}

	return statementOutcome{supported: false}, nil
}

// Collapse implements the feature-level collapse: a feature is
// supported-plain at a release iff some statement resolves
// Supported with no qualifications; unknown iff no statement is
// supported-plain but some resolves Unknown; otherwise unsupported
// (qualified-only support — prefixed, flagged, partial, or renamed —
// never counts toward Baseline).
func Collapse(entries []bcd.StatementEntry, release *browser.Release, cat *browser.Browser) (Status, error) {
	sawUnknown := false
	for _, entry := range entries {
		outcome, err := resolveStatement(entry, release, cat)
		if err != nil {
			return Unsupported, err
		}
		if outcome.supported && outcome.quals.IsPlain() {
			return SupportedPlain, nil
		}
		if outcome.unknown {
			sawUnknown = true
		}
	}
	if sawUnknown {
		return Unknown, nil
	}

	return Unsupported, nil
}
