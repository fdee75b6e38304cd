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

package bcd

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrMalformedVersionValue is returned when a `version_added` /
// `version_removed` field is neither `false` nor a JSON string.
var ErrMalformedVersionValue = errors.New("version value is neither false nor a string")

// VersionValue models the `false | string` union BCD uses for
// version_added and version_removed.
type VersionValue struct {
	// False is true when the wire value was the JSON literal `false`
	// ("never supported" / "never removed").
	False bool
	// Version holds the raw, unstripped version string (possibly
	// ranged, i.e. prefixed "≤") when False is false.
	Version string
}

var jsonFalse = []byte("false")

// UnmarshalJSON implements json.Unmarshaler.
func (v *VersionValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, jsonFalse) {
		v.False = true
		v.Version = ""

		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Join(ErrMalformedVersionValue, err)
	}
	v.False = false
	v.Version = s

	return nil
}

// MarshalJSON implements json.Marshaler.
func (v VersionValue) MarshalJSON() ([]byte, error) {
	if v.False {
		return jsonFalse, nil
	}

	return json.Marshal(v.Version)
}

// IsTrue is a small helper: a VersionValue that is a non-empty string and
// not `false`.
func (v VersionValue) IsTrue() bool {
	return !v.False && v.Version != ""
}
