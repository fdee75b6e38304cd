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

// Package aggregate implements the Aggregator / Collater: combining the
// per-compat-key SupportMaps produced by the Per-Feature Initial-Support
// Finder into one SupportMap per browser, across the ancestor chain of a
// feature.
package aggregate

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/saberrg/webcompat-baseline/support"
)

// Entry is one browser's aggregated result: either a known InitialSupport,
// or Unknown (no supporting release could be identified, as distinct from
// the browser never having been queried at all, which is simply absent
// from the SupportMap).
type Entry struct {
	Initial *support.InitialSupport
	Unknown bool
}

// SupportMap is Browser -> Entry. A browser id absent from the map was
// never queried; see Entry's doc for the Unknown-vs-absent distinction.
type SupportMap map[string]Entry

// FromInitialSupport builds a single-browser SupportMap, used as the
// per-key, per-browser input to Aggregate.
func FromInitialSupport(browserID string, initial *support.InitialSupport) SupportMap {
	if initial == nil {
		return SupportMap{browserID: {Unknown: true}}
	}

	return SupportMap{browserID: {Initial: initial}}
}

// Aggregate combines a sequence of SupportMaps (one per compat key after
// ancestor expansion) into one SupportMap whose keys are the union of all
// input browsers. Aggregating a single SupportMap returns an equivalent
// copy of itself.
func Aggregate(inputs ...SupportMap) SupportMap {
	browsers := mapset.NewThreadUnsafeSet[string]()
	for _, in := range inputs {
		for id := range in {
			browsers.Add(id)
		}
	}

	result := make(SupportMap, browsers.Cardinality())
	for _, id := range browsers.ToSlice() {
		result[id] = aggregateBrowser(inputs, id)
	}

	return result
}

// aggregateBrowser implements the per-browser merge rule: any Unknown
// input wins outright; otherwise the most-recent InitialSupport wins,
// where "most recent" means higher release index, and on a tie an exact
// version beats a ranged "≤V".
func aggregateBrowser(inputs []SupportMap, browserID string) Entry {
	var best *support.InitialSupport
	for _, in := range inputs {
		entry, present := in[browserID]
		if !present {
			continue
		}
		if entry.Unknown {
			return Entry{Unknown: true}
		}
		if entry.Initial == nil {
			continue
		}
		if best == nil || moreRecent(entry.Initial, best) {
			best = entry.Initial
		}
	}

	return Entry{Initial: best}
}

// moreRecent reports whether a is a strictly more recent InitialSupport
// than b under the aggregation tie-break rule.
func moreRecent(a, b *support.InitialSupport) bool {
	if a.Release.Index != b.Release.Index {
		return a.Release.Index > b.Release.Index
	}

	// Equal index: an exact version is strictly more recent than a
	// ranged "≤V" value for the same release.
	return !a.Ranged && b.Ranged
}
