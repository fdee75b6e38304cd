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
	"testing"

	"github.com/saberrg/webcompat-baseline/bcd"
	"github.com/saberrg/webcompat-baseline/browser"
)

func TestFindInitialSupportContinuousSinceOlderRelease(t *testing.T) {
	b := testBrowser()
	entries := []bcd.StatementEntry{{VersionAdded: bcd.VersionValue{Version: "20"}}}
	got, err := FindInitialSupport(entries, b)
	if err != nil {
		t.Fatalf("FindInitialSupport() error: %v", err)
	}
	if got == nil || got.Release.Version != "20" || got.Ranged {
		t.Fatalf("FindInitialSupport() = %+v, want release 20, ranged=false", got)
	}
	if got.Text() != "20" {
		t.Errorf("Text() = %q, want %q", got.Text(), "20")
	}
}

func TestFindInitialSupportNoneWhenCurrentUnsupported(t *testing.T) {
	b := testBrowser()
	entries := []bcd.StatementEntry{{VersionAdded: bcd.VersionValue{False: true}}}
	got, err := FindInitialSupport(entries, b)
	if err != nil {
		t.Fatalf("FindInitialSupport() error: %v", err)
	}
	if got != nil {
		t.Errorf("FindInitialSupport() = %+v, want nil", got)
	}
}

// TestFindInitialSupportNoneWhenCurrentUnknown exercises the first-
// iteration asymmetry: Unknown at current bails out with no initial
// support, exactly like Unsupported would, even though later iterations
// treat the two very differently.
func TestFindInitialSupportNoneWhenCurrentUnknown(t *testing.T) {
	info := bcd.BrowserInfo{
		Name: "X",
		Releases: map[string]bcd.ReleaseInfo{
			"10": {ReleaseDate: strPtr("2020-01-01"), Status: bcd.Current},
			"20": {ReleaseDate: strPtr("2021-01-01"), Status: bcd.Nightly},
		},
	}
	narrow := browser.NewBrowser("x", info)
	entries := []bcd.StatementEntry{{VersionAdded: bcd.VersionValue{Version: "≤20"}}}
	got, err := FindInitialSupport(entries, narrow)
	if err != nil {
		t.Fatalf("FindInitialSupport() error: %v", err)
	}
	if got != nil {
		t.Errorf("FindInitialSupport() = %+v, want nil (current resolves Unknown)", got)
	}
}

func TestFindInitialSupportStopsAtGapOfUnsupportedBelow(t *testing.T) {
	b := testBrowser()
	entries := []bcd.StatementEntry{{VersionAdded: bcd.VersionValue{Version: "30"}}}
	got, err := FindInitialSupport(entries, b)
	if err != nil {
		t.Fatalf("FindInitialSupport() error: %v", err)
	}
	if got == nil || got.Release.Version != "30" || got.Ranged {
		t.Fatalf("FindInitialSupport() = %+v, want release 30, ranged=false", got)
	}
}

func TestFindInitialSupportRangedTerminatesWalk(t *testing.T) {
	b := testBrowser()
	entries := []bcd.StatementEntry{{VersionAdded: bcd.VersionValue{Version: "≤30"}}}
	got, err := FindInitialSupport(entries, b)
	if err != nil {
		t.Fatalf("FindInitialSupport() error: %v", err)
	}
	if got == nil || got.Release.Version != "30" || !got.Ranged {
		t.Fatalf("FindInitialSupport() = %+v, want release 30, ranged=true", got)
	}
	if got.Text() != "≤30" {
		t.Errorf("Text() = %q, want %q", got.Text(), "≤30")
	}
}

func TestFindInitialSupportEntireHistorySupported(t *testing.T) {
	b := testBrowser()
	entries := []bcd.StatementEntry{{VersionAdded: bcd.VersionValue{Version: "10"}}}
	got, err := FindInitialSupport(entries, b)
	if err != nil {
		t.Fatalf("FindInitialSupport() error: %v", err)
	}
	if got == nil || got.Release.Version != "10" || got.Ranged {
		t.Fatalf("FindInitialSupport() = %+v, want release 10, ranged=false", got)
	}
}
