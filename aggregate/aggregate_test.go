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

package aggregate

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/saberrg/webcompat-baseline/bcd"
	"github.com/saberrg/webcompat-baseline/browser"
	"github.com/saberrg/webcompat-baseline/support"
)

func testCatalog() *browser.Browser {
	info := bcd.BrowserInfo{
		Name: "Test",
		Releases: map[string]bcd.ReleaseInfo{
			"10": {Status: bcd.Retired},
			"20": {Status: bcd.Retired},
			"30": {Status: bcd.Current},
		},
	}

	return browser.NewBrowser("test", info)
}

func initialAt(cat *browser.Browser, version string, ranged bool) *support.InitialSupport {
	r, err := cat.Lookup(version)
	if err != nil {
		panic(err)
	}

	return &support.InitialSupport{Release: r, Ranged: ranged}
}

func TestAggregateSingleMapIsIdempotent(t *testing.T) {
	cat := testCatalog()
	in := FromInitialSupport("test", initialAt(cat, "20", false))

	got := Aggregate(in)
	want := Entry{Initial: initialAt(cat, "20", false)}

	initialCmp := cmp.Comparer(func(a, b *support.InitialSupport) bool {
		if a == nil || b == nil {
			return a == b
		}

		return a.Release == b.Release && a.Ranged == b.Ranged
	})
	if diff := cmp.Diff(want, got["test"], initialCmp); diff != "" {
		t.Errorf("Aggregate() mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateUnionsBrowsers(t *testing.T) {
	a := SupportMap{"chrome": {Initial: &support.InitialSupport{Release: &browser.Release{Index: 1}}}}
	b := SupportMap{"firefox": {Unknown: true}}

	got := Aggregate(a, b)
	if len(got) != 2 {
		t.Fatalf("Aggregate() = %v, want 2 browsers", got)
	}
	if _, ok := got["chrome"]; !ok {
		t.Errorf("Aggregate() missing chrome")
	}
	if !got["firefox"].Unknown {
		t.Errorf("Aggregate() firefox = %+v, want Unknown", got["firefox"])
	}
}

func TestAggregateUnknownWinsOverKnown(t *testing.T) {
	cat := testCatalog()
	known := SupportMap{"test": {Initial: initialAt(cat, "30", false)}}
	unknown := SupportMap{"test": {Unknown: true}}

	got := Aggregate(known, unknown)
	if !got["test"].Unknown {
		t.Errorf("Aggregate() = %+v, want Unknown", got["test"])
	}
}

func TestAggregatePicksHigherIndex(t *testing.T) {
	cat := testCatalog()
	older := SupportMap{"test": {Initial: initialAt(cat, "10", false)}}
	newer := SupportMap{"test": {Initial: initialAt(cat, "20", false)}}

	got := Aggregate(older, newer)
	if got["test"].Initial.Release.Version != "20" {
		t.Errorf("Aggregate() = %+v, want release 20", got["test"])
	}
}

func TestAggregateExactBeatsRangedOnTie(t *testing.T) {
	cat := testCatalog()
	exact := SupportMap{"test": {Initial: initialAt(cat, "20", false)}}
	ranged := SupportMap{"test": {Initial: initialAt(cat, "20", true)}}

	got := Aggregate(ranged, exact)
	if got["test"].Initial.Ranged {
		t.Errorf("Aggregate() = %+v, want exact (ranged=false) to win the tie", got["test"])
	}

	got2 := Aggregate(exact, ranged)
	if got2["test"].Initial.Ranged {
		t.Errorf("Aggregate() input order should not matter, got %+v", got2["test"])
	}
}

func TestAggregateNoInputsYieldsEmptyMap(t *testing.T) {
	got := Aggregate()
	if len(got) != 0 {
		t.Errorf("Aggregate() = %v, want empty", got)
	}
}
