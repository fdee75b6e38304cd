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

// Package bcd models the browser-compat-data (BCD) JSON tree: the nested
// mapping of categories, features, and per-browser support statements that
// the Baseline computation engine treats as its sole input.
//
// Loading this data from disk, an npm package, or a network location is
// out of scope here; callers decode already-fetched bytes with
// encoding/json (or ParseDocument, a thin decode helper) and hand the
// resulting *Document to the baseline package.
package bcd

import (
	"encoding/json"
	"time"
)

// Meta is the BCD document's `__meta` block. Timestamp is the cutoff clock
// used by the keystone/status deriver.
type Meta struct {
	Timestamp time.Time `json:"timestamp"`
}

// BrowserInfo is `browsers.<id>` — a browser's human name and its ordered
// (on the wire, unordered map) set of releases.
type BrowserInfo struct {
	Name string `json:"name"`
	// PreviewName, if set, means the browser declares a rolling preview
	// channel; the Release Catalog appends a synthetic release for it.
	PreviewName *string                `json:"preview_name,omitempty"`
	Releases    map[string]ReleaseInfo `json:"releases"`
}

// ReleaseLifecycle is a release's lifecycle status.
type ReleaseLifecycle string

const (
	Retired ReleaseLifecycle = "retired"
	Current ReleaseLifecycle = "current"
	Beta    ReleaseLifecycle = "beta"
	Nightly ReleaseLifecycle = "nightly"
	Planned ReleaseLifecycle = "planned"
)

// ReleaseInfo is one entry of `browsers.<id>.releases`, keyed by version
// string.
type ReleaseInfo struct {
	// ReleaseDate is nil for a release that hasn't shipped yet.
	ReleaseDate *string          `json:"release_date,omitempty"`
	Status      ReleaseLifecycle `json:"status"`
}

// Tree is a BCD compat tree node. Every feature-addressable node may carry
// a Compat record (its `__compat`) and arbitrary named children; there is
// no fixed schema for the children's names, so they are captured
// generically rather than as named Go fields.
type Tree struct {
	Compat   *CompatRecord
	Children map[string]*Tree
}

// StatusInfo is a compat record's `status` block.
type StatusInfo struct {
	// Deprecated feeds the BaselineStatus.Discouraged flag.
	Deprecated bool `json:"deprecated,omitempty"`
	// StandardTrack is carried through for completeness; the engine does
	// not consult it.
	StandardTrack bool `json:"standard_track,omitempty"`
}

// CompatRecord is a node's `__compat` entry.
type CompatRecord struct {
	Support map[string]StatementList `json:"support"`
	Status  *StatusInfo              `json:"status,omitempty"`
	// MdnURL and Spec are carried through for completeness (real BCD
	// always has them); spec-URL policy matching is explicitly out of
	// scope for this engine, so neither field is consulted.
	MdnURL *string  `json:"mdn_url,omitempty"`
	Spec   []string `json:"spec_url,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler for Tree. It separates the
// `__compat` key from the rest, which become Children.
func (t *Tree) UnmarshalJSON(data []byte) error {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if compatRaw, ok := raw["__compat"]; ok {
		var rec CompatRecord
		if err := json.Unmarshal(compatRaw, &rec); err != nil {
			return err
		}
		t.Compat = &rec
		delete(raw, "__compat")
	}
	if len(raw) == 0 {
		return nil
	}
	t.Children = make(map[string]*Tree, len(raw))
	for name, childRaw := range raw {
		var child Tree
		if err := json.Unmarshal(childRaw, &child); err != nil {
			return err
		}
		t.Children[name] = &child
	}

	return nil
}

// ParseTree decodes raw BCD category JSON (already in memory) into a Tree.
// It does not fetch or read from anywhere; the bytes must already be
// loaded by the caller.
func ParseTree(data []byte) (*Tree, error) {
	var t Tree
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}

	return &t, nil
}

// knownMetaKeys are top-level Document keys that are not category trees.
var knownMetaKeys = map[string]bool{
	"browsers": true,
	"__meta":   true,
}

// Document is a full BCD JSON document: a handful of top-level categories
// (api, css, html, ...), the browsers block, and __meta.
type Document struct {
	Browsers map[string]BrowserInfo `json:"browsers"`
	Meta     Meta                   `json:"__meta"`
	// Categories holds the top-level category trees (e.g. "api", "css"),
	// keyed by category name.
	Categories map[string]*Tree
}

// UnmarshalJSON implements json.Unmarshaler for Document.
func (d *Document) UnmarshalJSON(data []byte) error {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if browsersRaw, ok := raw["browsers"]; ok {
		if err := json.Unmarshal(browsersRaw, &d.Browsers); err != nil {
			return err
		}
	}
	if metaRaw, ok := raw["__meta"]; ok {
		if err := json.Unmarshal(metaRaw, &d.Meta); err != nil {
			return err
		}
	}
	d.Categories = make(map[string]*Tree)
	for name, childRaw := range raw {
		if knownMetaKeys[name] {
			continue
		}
		var category Tree
		if err := json.Unmarshal(childRaw, &category); err != nil {
			return err
		}
		d.Categories[name] = &category
	}

	return nil
}

// ParseDocument decodes a full BCD JSON document already held in memory.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}
