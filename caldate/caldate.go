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

// Package caldate implements the Date Range Algebra: parsing ranged
// `≤YYYY-MM-DD` dates, adding a calendar-correct 30-month offset, and
// formatting dates back out with their ranged prefix preserved.
//
// cloud.google.com/go/civil supplies the calendar-date value type used
// elsewhere in this codebase for date-only arithmetic; civil.Date.AddDate
// alone does not clamp day-of-month overflow (Jan 31 + 1 month normalizes
// forward into March), so the clamping is implemented explicitly here.
package caldate

import (
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// rangedPrefix is the same "at or before, earlier boundary unknown"
// marker used by the version package.
const rangedPrefix = "≤"

// HighDateOffsetMonths is the fixed Baseline "high" cutoff: 30 calendar
// months after the low date, not an approximation in days.
const HighDateOffsetMonths = 30

// ErrMalformedDate is returned when a date string is not ISO-8601
// YYYY-MM-DD, optionally prefixed "≤".
var ErrMalformedDate = errors.New("malformed date string")

// RangedDate is a calendar date that may carry BCD's "≤" ranged marker.
type RangedDate struct {
	Date   civil.Date
	Ranged bool
}

// Parse accepts both "YYYY-MM-DD" and "≤YYYY-MM-DD".
func Parse(s string) (RangedDate, error) {
	ranged := strings.HasPrefix(s, rangedPrefix)
	raw := strings.TrimPrefix(s, rangedPrefix)
	d, err := civil.ParseDate(raw)
	if err != nil {
		return RangedDate{}, errors.Join(ErrMalformedDate, err)
	}

	return RangedDate{Date: d, Ranged: ranged}, nil
}

// FromTime converts a wall-clock instant (e.g. a BCD `__meta.timestamp`)
// into a plain UTC calendar date, never ranged.
func FromTime(t time.Time) civil.Date {
	return civil.DateOf(t.UTC())
}

// Format renders d as "YYYY-MM-DD", prefixed "≤" iff ranged is true.
func Format(d civil.Date, ranged bool) string {
	if ranged {
		return rangedPrefix + d.String()
	}

	return d.String()
}

// String implements fmt.Stringer for RangedDate.
func (r RangedDate) String() string {
	return Format(r.Date, r.Ranged)
}

// AddMonthsClamped adds n calendar months to d, clamping the day of month
// to the last valid day of the resulting month instead of letting it
// overflow into the following month (e.g. 2023-01-31 + 1 month =
// 2023-02-28, not 2023-03-03).
func AddMonthsClamped(d civil.Date, n int) civil.Date {
	totalMonths := int(d.Month) - 1 + n
	year := d.Year + totalMonths/12
	month := totalMonths % 12
	if month < 0 {
		month += 12
		year--
	}
	targetMonth := time.Month(month + 1)

	day := d.Day
	if maxDay := daysInMonth(year, targetMonth); day > maxDay {
		day = maxDay
	}

	return civil.Date{Year: year, Month: targetMonth, Day: day}
}

// daysInMonth returns the number of days in the given year/month.
func daysInMonth(year int, month time.Month) int {
	firstOfNext := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)

	return firstOfNext.AddDate(0, 0, -1).Day()
}
