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

package baseline

import (
	"fmt"

	"github.com/saberrg/webcompat-baseline/aggregate"
	"github.com/saberrg/webcompat-baseline/ancestor"
	"github.com/saberrg/webcompat-baseline/bcd"
	"github.com/saberrg/webcompat-baseline/browser"
	"github.com/saberrg/webcompat-baseline/caldate"
	"github.com/saberrg/webcompat-baseline/support"
)

// FeatureSelector names the compat keys that feed one computeBaseline
// call and whether ancestor paths should be rolled in.
type FeatureSelector struct {
	CompatKeys     []string
	CheckAncestors bool
}

// ComputeBaseline implements the top-level operation: expand each
// selector key (if CheckAncestors), resolve per-browser InitialSupport
// for every expanded key across the core browser set, aggregate across
// keys, and derive the final status. The cutoff clock is the document's
// __meta.timestamp, read as a UTC plain date.
func (c *Compat) ComputeBaseline(selector FeatureSelector) (BaselineStatus, error) {
	keys, err := c.expandedKeys(selector)
	if err != nil {
		return BaselineStatus{}, err
	}

	var (
		perKeyMaps  []aggregate.SupportMap
		discouraged bool
	)

	for _, key := range keys {
		node, err := c.compatNode(key)
		if err != nil {
			return BaselineStatus{}, err
		}
		if node.Compat.Status != nil && node.Compat.Status.Deprecated {
			discouraged = true
		}

		sm, err := c.keySupportMap(key, node)
		if err != nil {
			return BaselineStatus{}, err
		}
		perKeyMaps = append(perKeyMaps, sm)
	}

	aggregated := aggregate.Aggregate(perKeyMaps...)
	cutoff := caldate.FromTime(c.doc.Meta.Timestamp)

	return c.deriveStatus(aggregated, cutoff, discouraged)
}

// expandedKeys resolves selector.CompatKeys to the full list of compat
// keys to query: without CheckAncestors, each key as given; with it, the
// output of ancestor.Expand, i.e. every prefix of the key (the key
// included) that carries its own __compat record.
func (c *Compat) expandedKeys(selector FeatureSelector) ([]string, error) {
	var keys []string
	for _, key := range selector.CompatKeys {
		if !selector.CheckAncestors {
			keys = append(keys, key)

			continue
		}

		expanded, err := ancestor.Expand(c.doc.Categories, key)
		if err != nil {
			return nil, err
		}
		keys = append(keys, expanded...)
	}

	return keys, nil
}

// keySupportMap resolves one compat key's per-browser InitialSupport
// across the core browser set into a SupportMap.
func (c *Compat) keySupportMap(key string, node *bcd.Tree) (aggregate.SupportMap, error) {
	sm := make(aggregate.SupportMap, len(browser.CoreBrowsers))

	for _, id := range browser.CoreBrowsers {
		statements, ok := node.Compat.Support[id]
		if !ok {
			if c.missingSupportAsUnknown {
				sm[id] = aggregate.Entry{Unknown: true}

				continue
			}

			return nil, fmt.Errorf("%w: %q has no support entry for %q", ErrMissingBrowserSupport, key, id)
		}

		cat, err := c.browserCatalog(id)
		if err != nil {
			return nil, err
		}

		initial, err := support.FindInitialSupport(statements, cat)
		if err != nil {
			return nil, err
		}

		sm[id] = aggregate.FromInitialSupport(id, initial)[id]
	}

	return sm, nil
}

// GetStatus is the convenience, single-key form of ComputeBaseline:
// equivalent to ComputeBaseline(FeatureSelector{CompatKeys: []string{key},
// CheckAncestors: true}), projected to its externally persisted form.
func (c *Compat) GetStatus(key string) (SerializedStatus, error) {
	status, err := c.ComputeBaseline(FeatureSelector{CompatKeys: []string{key}, CheckAncestors: true})
	if err != nil {
		return SerializedStatus{}, err
	}

	return status.ToSerializedStatus(), nil
}
