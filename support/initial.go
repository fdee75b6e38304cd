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

package support

import (
	"github.com/saberrg/webcompat-baseline/bcd"
	"github.com/saberrg/webcompat-baseline/browser"
)

// InitialSupport is the release that most recently introduced unbroken
// support for one (feature, browser) pair.
type InitialSupport struct {
	Release *browser.Release
	// Ranged is true iff this InitialSupport was derived from a "≤"
	// statement rather than an exact version.
	Ranged bool
}

// Text renders the display form "V" or "≤V" for this InitialSupport.
func (i InitialSupport) Text() string {
	if i.Ranged {
		return "≤" + i.Release.Version
	}

	return i.Release.Version
}

// FindInitialSupport walks cat's releases from current() down to index 0.
// The walk is deliberately asymmetric: on the first iteration, Unsupported
// and Unknown both bail out immediately, since an unknown anchor at
// current means there is nothing confirmed yet to walk backward from. On
// later iterations, Unknown terminates the walk but keeps the last
// confirmed release; Unsupported terminates it and discards nothing,
// since the block above it was already continuous.
//
// It returns (nil, nil) when no initial support could be established.
func FindInitialSupport(entries []bcd.StatementEntry, cat *browser.Browser) (*InitialSupport, error) {
	current, err := cat.Current()
	if err != nil {
		return nil, err
	}

	outcome, err := Collapse(entries, current, cat)
	if err != nil {
		return nil, err
	}
	if outcome != SupportedPlain {
		// First iteration: Unsupported or Unknown both bail with no
		// initial support at all.
		return nil, nil
	}

	lastInitial := current

	for i := current.Index - 1; i >= 0; i-- {
		r := cat.Releases[i]
		outcome, err := Collapse(entries, r, cat)
		if err != nil {
			return nil, err
		}
		switch outcome {
		case SupportedPlain:
			// Advance lastInitial. No ranged flag is carried between
			// iterations: a later Unknown reports this release as
			// ranged, a later Unsupported or the end of the walk reports
			// it as exact.
			lastInitial = r
		case Unknown:
			return &InitialSupport{Release: lastInitial, Ranged: true}, nil
		case Unsupported:
			return &InitialSupport{Release: lastInitial, Ranged: false}, nil
		}
	}

	return &InitialSupport{Release: lastInitial, Ranged: false}, nil
}
