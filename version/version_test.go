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

package version

import "testing"

func TestParse(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want Version
	}{
		{name: "exact", in: "100", want: Version{Raw: "100", Ranged: false}},
		{name: "ranged", in: "≤16", want: Version{Raw: "16", Ranged: true}},
		{name: "dotted exact", in: "110.0.1", want: Version{Raw: "110.0.1", Ranged: false}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.in)
			if got != tc.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	testCases := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "equal", a: "100", b: "100", want: 0},
		{name: "less", a: "99", b: "100", want: -1},
		{name: "greater", a: "101", b: "100", want: 1},
		{name: "zero pad shorter", a: "16", b: "16.0.1", want: -1},
		{name: "zero pad equal after pad", a: "16.0.0", b: "16", want: 0},
		{name: "dotted precedence", a: "110.0.2", b: "110.0.10", want: -1},
		{name: "non numeric chars stripped", a: "16 Beta", b: "16", want: 0},
		{name: "multi component", a: "10.5", b: "10.15", want: -1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Compare(tc.a, tc.b)
			if got != tc.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestCompareTotalOrder(t *testing.T) {
	versions := []string{"9", "10", "16", "16.1", "100", "101.0.0"}
	for i := 0; i < len(versions)-1; i++ {
		if Compare(versions[i], versions[i+1]) >= 0 {
			t.Errorf("expected %q < %q", versions[i], versions[i+1])
		}
	}
}
