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

// Package baseline implements the Keystone & Status Deriver and the two
// top-level operations (computeBaseline, getStatus) that tie the rest of
// this module's packages together into a Baseline status for one web
// platform feature.
package baseline

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/saberrg/webcompat-baseline/ancestor"
	"github.com/saberrg/webcompat-baseline/bcd"
	"github.com/saberrg/webcompat-baseline/browser"
	"github.com/saberrg/webcompat-baseline/internal/idcache"
)

// ErrMissingCompatRecord is returned when a feature is addressed but its
// compat-tree node carries no __compat record.
var ErrMissingCompatRecord = errors.New("compat key has no __compat record")

// ErrMissingBrowserSupport is returned when a feature's __compat.support
// lacks an entry for a browser that was queried. Opt into treating this
// as Unknown instead with WithMissingSupportAsUnknown.
var ErrMissingBrowserSupport = errors.New("compat record has no support entry for browser")

// Compat is the shared context a computation is run against: the decoded
// BCD document plus two identifier-keyed caches, one for browser catalogs
// and one for compat-tree node lookups, that guarantee repeated lookups
// for the same key return the same value instead of re-walking the
// document. Caches are internally synchronized so one Compat can safely
// back concurrent callers (see the batch package).
type Compat struct {
	doc        *bcd.Document
	browsers   *idcache.Cache[string, *browser.Browser]
	compatTree *idcache.Cache[string, *bcd.Tree]
	logger     *slog.Logger

	missingSupportAsUnknown bool
}

// CompatOption configures a Compat at construction time.
type CompatOption func(*Compat)

// WithLogger overrides the *slog.Logger used for recoverable-but-notable
// situations encountered during computation. The default is
// slog.Default().
func WithLogger(logger *slog.Logger) CompatOption {
	return func(c *Compat) {
		c.logger = logger
	}
}

// WithMissingSupportAsUnknown downgrades a feature's missing
// __compat.support[browser] entry from ErrMissingBrowserSupport to a
// support.Unknown outcome for that browser, rather than failing the
// whole computation.
func WithMissingSupportAsUnknown() CompatOption {
	return func(c *Compat) {
		c.missingSupportAsUnknown = true
	}
}

// NewCompat builds a Compat context over a decoded BCD document.
func NewCompat(doc *bcd.Document, opts ...CompatOption) *Compat {
	c := &Compat{
		doc:        doc,
		browsers:   idcache.New[string, *browser.Browser](),
		compatTree: idcache.New[string, *bcd.Tree](),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// browserCatalog returns the cached Release Catalog for id, building it
// from the document's browsers block on first access.
func (c *Compat) browserCatalog(id string) (*browser.Browser, error) {
	return c.browsers.GetOrCompute(id, func() (*browser.Browser, error) {
		info, ok := c.doc.Browsers[id]
		if !ok {
			return nil, fmt.Errorf("document has no browsers[%q]", id)
		}

		return browser.NewBrowser(id, info), nil
	})
}

// compatNode resolves a dotted compat key to its compat-tree node,
// requiring that it carries a __compat record. The resolved node is
// cached by key so repeated lookups (ancestor expansion revisits the
// same keys across sibling features) don't re-walk the tree.
func (c *Compat) compatNode(key string) (*bcd.Tree, error) {
	return c.compatTree.GetOrCompute(key, func() (*bcd.Tree, error) {
		node, err := ancestor.Node(c.doc.Categories, key)
		if err != nil {
			return nil, err
		}
		if node.Compat == nil {
			return nil, fmt.Errorf("%w: %q", ErrMissingCompatRecord, key)
		}

		return node, nil
	})
}
