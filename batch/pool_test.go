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

package batch

import (
	"context"
	"testing"
	"time"

	"github.com/saberrg/webcompat-baseline/baseline"
	"github.com/saberrg/webcompat-baseline/bcd"
	"github.com/saberrg/webcompat-baseline/browser"
)

func testDocument() *bcd.Document {
	browsers := make(map[string]bcd.BrowserInfo, len(browser.CoreBrowsers))
	support := make(map[string]bcd.StatementList, len(browser.CoreBrowsers))
	date := "2020-01-01"
	for _, id := range browser.CoreBrowsers {
		browsers[id] = bcd.BrowserInfo{
			Name:     id,
			Releases: map[string]bcd.ReleaseInfo{"10": {ReleaseDate: &date, Status: bcd.Current}},
		}
		support[id] = bcd.StatementList{{VersionAdded: bcd.VersionValue{Version: "10"}}}
	}

	return &bcd.Document{
		Browsers: browsers,
		Meta:     bcd.Meta{Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		Categories: map[string]*bcd.Tree{
			"api": {Children: map[string]*bcd.Tree{
				"One": {Compat: &bcd.CompatRecord{Support: support}},
				"Two": {Compat: &bcd.CompatRecord{Support: support}},
			}},
		},
	}
}

func TestPoolRunComputesEveryJobInOrder(t *testing.T) {
	compat := baseline.NewCompat(testDocument())
	jobs := []FeatureJob{
		{ID: "one", Selector: baseline.FeatureSelector{CompatKeys: []string{"api.One"}, CheckAncestors: true}},
		{ID: "two", Selector: baseline.FeatureSelector{CompatKeys: []string{"api.Two"}, CheckAncestors: true}},
	}

	pool := NewPool()
	results := pool.Run(context.Background(), compat, jobs, 2)

	if len(results) != 2 {
		t.Fatalf("Run() returned %d results, want 2", len(results))
	}
	if results[0].ID != "one" || results[1].ID != "two" {
		t.Errorf("Run() results out of order: %+v", results)
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("job %q error: %v", r.ID, r.Err)
		}
	}
}

func TestPoolRunSurfacesPerJobErrors(t *testing.T) {
	compat := baseline.NewCompat(testDocument())
	jobs := []FeatureJob{
		{ID: "missing", Selector: baseline.FeatureSelector{CompatKeys: []string{"api.Missing"}, CheckAncestors: true}},
	}

	pool := NewPool()
	results := pool.Run(context.Background(), compat, jobs, 1)

	if results[0].Err == nil {
		t.Errorf("Run() job %q expected an error, got none", results[0].ID)
	}
}

func TestPoolRunRespectsCanceledContext(t *testing.T) {
	compat := baseline.NewCompat(testDocument())
	jobs := []FeatureJob{
		{ID: "one", Selector: baseline.FeatureSelector{CompatKeys: []string{"api.One"}, CheckAncestors: true}},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool()
	results := pool.Run(ctx, compat, jobs, 1)

	if len(results) != 1 {
		t.Fatalf("Run() returned %d results, want 1", len(results))
	}
	if results[0].Err == nil {
		t.Errorf("Run() expected a context error for a canceled context")
	}
}
