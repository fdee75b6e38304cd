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

// Package browser implements the Release Catalog: the per-browser
// ordered sequence of releases that every other component walks or
// indexes into.
package browser

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/saberrg/webcompat-baseline/bcd"
	"github.com/saberrg/webcompat-baseline/version"
)

// ErrNoCurrentRelease is returned by Catalog.Current when no release in
// the catalog has status "current".
var ErrNoCurrentRelease = errors.New("browser has no current release")

// ErrBrowserReleaseMismatch is returned when a Release from one Browser is
// used in a query scoped to a different Browser.
var ErrBrowserReleaseMismatch = errors.New("release belongs to a different browser")

// CoreBrowsers is the fixed, order-significant core browser set used for
// keystone comparison and serialization. Its order is observable by
// callers, so iterate this slice directly rather than ranging over a map.
var CoreBrowsers = []string{
	"chrome",
	"chrome_android",
	"edge",
	"firefox",
	"firefox_android",
	"safari",
	"safari_ios",
}

// Release is one entry in a Browser's ordered release history.
type Release struct {
	Browser *Browser
	Version string
	// Date is nil for an unreleased (planned/nightly-without-a-date)
	// release.
	Date   *time.Time
	Status bcd.ReleaseLifecycle
	// Index is the release's zero-based position within its Browser's
	// ordered Releases, enabling O(1) comparison instead of re-deriving
	// order from the version string every time.
	Index int
}

// Browser is an identifier, human name, and ordered release history.
type Browser struct {
	ID       string
	Name     string
	Releases []*Release
}

// Catalog is an alias kept for readability at call sites; a Browser *is*
// its own catalog once built by NewBrowser.
type Catalog = Browser

// NewBrowser builds a Browser's Release Catalog from raw BCD browser
// info. Releases are sorted ascending by version order and assigned
// their zero-based Index. If info declares a preview channel, a
// synthetic release is appended with status "nightly" and no date.
func NewBrowser(id string, info bcd.BrowserInfo) *Browser {
	b := &Browser{ID: id, Name: info.Name}

	releases := make([]*Release, 0, len(info.Releases))
	for v, r := range info.Releases {
		var date *time.Time
		if r.ReleaseDate != nil {
			if t, err := time.Parse(time.DateOnly, *r.ReleaseDate); err == nil {
				date = &t
			}
		}
		releases = append(releases, &Release{
			Browser: b,
			Version: v,
			Date:    date,
			Status:  r.Status,
		})
	}

	sort.Slice(releases, func(i, j int) bool {
		return version.Compare(releases[i].Version, releases[j].Version) < 0
	})

	if info.PreviewName != nil {
		releases = append(releases, &Release{
			Browser: b,
			Version: *info.PreviewName,
			Date:    nil,
			Status:  bcd.Nightly,
		})
	}

	for i, r := range releases {
		r.Index = i
	}
	b.Releases = releases

	return b
}

// Current returns the unique release whose status is "current". Its
// absence is a fatal error — every downstream computation anchors on it.
func (b *Browser) Current() (*Release, error) {
	for _, r := range b.Releases {
		if r.Status == bcd.Current {
			return r, nil
		}
	}

	return nil, fmt.Errorf("%w: browser %q", ErrNoCurrentRelease, b.ID)
}

// Lookup finds the release matching versionRaw by exact, unnormalized
// string equality. It returns version.ErrUnknownVersion if no release
// matches.
func (b *Browser) Lookup(versionRaw string) (*Release, error) {
	for _, r := range b.Releases {
		if r.Version == versionRaw {
			return r, nil
		}
	}

	return nil, fmt.Errorf("%w: %q in browser %q", version.ErrUnknownVersion, versionRaw, b.ID)
}

// InRange tests index ∈ [start.Index, end.Index) — inclusive lower,
// exclusive upper. A nil end means unbounded above.
func (b *Browser) InRange(release, start, end *Release) (bool, error) {
	if err := checkSameBrowser(b, release); err != nil {
		return false, err
	}
	if err := checkSameBrowser(b, start); err != nil {
		return false, err
	}
	if end != nil {
		if err := checkSameBrowser(b, end); err != nil {
			return false, err
		}
	}
	if release.Index < start.Index {
		return false, nil
	}
	if end != nil && release.Index >= end.Index {
		return false, nil
	}

	return true, nil
}

func checkSameBrowser(b *Browser, r *Release) error {
	if r == nil {
		return nil
	}
	if r.Browser != b {
		return fmt.Errorf("%w: release %q belongs to browser %q, not %q",
			ErrBrowserReleaseMismatch, r.Version, r.Browser.ID, b.ID)
	}

	return nil
}
