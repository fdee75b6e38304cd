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
	"encoding/json"
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/saberrg/webcompat-baseline/aggregate"
	"github.com/saberrg/webcompat-baseline/browser"
	"github.com/saberrg/webcompat-baseline/caldate"
)

// Label is the tri-valued Baseline label. SerializedStatus.MarshalJSON
// writes it as the JSON literal `false` for NotBaseline and as a string
// for Low/High; Label itself has no JSON methods.
type Label int

const (
	NotBaseline Label = iota
	Low
	High
)

func (l Label) String() string {
	switch l {
	case NotBaseline:
		return "false"
	case Low:
		return "low"
	case High:
		return "high"
	default:
		return "unknown"
	}
}

// BaselineStatus is the computed result for one feature. Its invariants
// (dates null iff NotBaseline, low-only dates iff Low, both dates iff
// High, discouraged forces NotBaseline) are enforced by construction:
// deriveStatus is the only function that builds one.
type BaselineStatus struct {
	Label       Label
	LowDate     *caldate.RangedDate
	HighDate    *caldate.RangedDate
	Discouraged bool
	Support     aggregate.SupportMap
}

// SerializedStatus is the externally persisted JSON projection of a
// BaselineStatus: a per-browser map of display text rather than full
// InitialSupport values, and date fields that are present or absent
// depending on Label rather than always-present-but-null.
type SerializedStatus struct {
	Label    Label
	LowDate  *caldate.RangedDate
	HighDate *caldate.RangedDate
	Support  map[string]string
}

// ToSerializedStatus projects a BaselineStatus to its externally
// persisted form, omitting browsers whose InitialSupport is absent or
// unknown.
func (s BaselineStatus) ToSerializedStatus() SerializedStatus {
	support := make(map[string]string)
	for _, id := range browser.CoreBrowsers {
		entry, ok := s.Support[id]
		if !ok || entry.Unknown || entry.Initial == nil {
			continue
		}
		support[id] = entry.Initial.Text()
	}

	return SerializedStatus{
		Label:    s.Label,
		LowDate:  s.LowDate,
		HighDate: s.HighDate,
		Support:  support,
	}
}

// ToJSON serializes s to the three baseline-keyed shapes: "high" carries
// both dates, "low" carries only the low date, and false carries neither.
func (s BaselineStatus) ToJSON() ([]byte, error) {
	return json.Marshal(s.ToSerializedStatus())
}

// MarshalJSON implements json.Marshaler, producing the three documented
// shapes keyed by baseline value.
func (s SerializedStatus) MarshalJSON() ([]byte, error) {
	type wire struct {
		Baseline         json.RawMessage   `json:"baseline"`
		BaselineLowDate  *string           `json:"baseline_low_date,omitempty"`
		BaselineHighDate *string           `json:"baseline_high_date,omitempty"`
		Support          map[string]string `json:"support"`
	}

	var baselineRaw json.RawMessage
	switch s.Label {
	case NotBaseline:
		baselineRaw = json.RawMessage("false")
	case Low:
		baselineRaw = json.RawMessage(`"low"`)
	case High:
		baselineRaw = json.RawMessage(`"high"`)
	default:
		return nil, fmt.Errorf("unrecognized baseline label %d", s.Label)
	}

	w := wire{Baseline: baselineRaw, Support: s.Support}
	if s.Label == Low || s.Label == High {
		low := s.LowDate.String()
		w.BaselineLowDate = &low
	}
	if s.Label == High {
		high := s.HighDate.String()
		w.BaselineHighDate = &high
	}

	return json.Marshal(w)
}

// KeystoneDateToStatus maps a (possibly absent) keystone date string, a
// cutoff date, and a discouraged flag into a label and its dates. It is
// exposed publicly so callers holding precomputed dates can re-derive
// status without running the full aggregation pipeline.
func KeystoneDateToStatus(keystone *string, cutoff civil.Date, discouraged bool) (Label, *caldate.RangedDate, *caldate.RangedDate, error) {
	if keystone == nil || discouraged {
		return NotBaseline, nil, nil, nil
	}

	low, err := caldate.Parse(*keystone)
	if err != nil {
		return NotBaseline, nil, nil, err
	}

	highDate := caldate.AddMonthsClamped(low.Date, caldate.HighDateOffsetMonths)
	if !highDate.After(cutoff) {
		high := caldate.RangedDate{Date: highDate, Ranged: low.Ranged}

		return High, &low, &high, nil
	}

	return Low, &low, nil, nil
}

// deriveStatus implements the Keystone & Status Deriver: it finds the
// keystone date across the core browser set within sm, then maps it
// (together with cutoff and discouraged) into a BaselineStatus.
func (c *Compat) deriveStatus(sm aggregate.SupportMap, cutoff civil.Date, discouraged bool) (BaselineStatus, error) {
	keystone := c.computeKeystone(sm)

	label, low, high, err := KeystoneDateToStatus(keystone, cutoff, discouraged)
	if err != nil {
		return BaselineStatus{}, err
	}

	return BaselineStatus{
		Label:       label,
		LowDate:     low,
		HighDate:    high,
		Discouraged: discouraged,
		Support:     sm,
	}, nil
}

// computeKeystone finds the latest InitialSupport date across the core
// browser set, formatted as "YYYY-MM-DD" or "≤YYYY-MM-DD". It returns nil
// ("no keystone") if any core browser is unknown, absent, or has an
// InitialSupport with no release date; a release present but missing its
// date is logged at Warn rather than silently dropped, since it means the
// keystone can't be computed for data that otherwise looked complete.
func (c *Compat) computeKeystone(sm aggregate.SupportMap) *string {
	var (
		bestDate   civil.Date
		bestRanged bool
		have       bool
	)

	for _, id := range browser.CoreBrowsers {
		entry, ok := sm[id]
		if !ok || entry.Unknown || entry.Initial == nil {
			return nil
		}
		if entry.Initial.Release.Date == nil {
			c.logger.Warn("data is incomplete. missing release date",
				"browser", id, "release", entry.Initial.Release.Version)

			return nil
		}

		date := caldate.FromTime(*entry.Initial.Release.Date)
		if !have || isMoreRecentKeystone(date, entry.Initial.Ranged, bestDate, bestRanged) {
			bestDate = date
			bestRanged = entry.Initial.Ranged
			have = true
		}
	}

	if !have {
		return nil
	}

	formatted := caldate.Format(bestDate, bestRanged)

	return &formatted
}

// isMoreRecentKeystone reports whether (date, ranged) should replace
// (bestDate, bestRanged) as the keystone candidate: a later date always
// wins; on a tied date, the exact (non-ranged) value wins, since an exact
// date is strictly more recent information than a "≤" bound on that same
// date.
func isMoreRecentKeystone(date civil.Date, ranged bool, bestDate civil.Date, bestRanged bool) bool {
	if date != bestDate {
		return date.After(bestDate)
	}

	return !ranged && bestRanged
}
