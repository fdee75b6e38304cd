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

// Package ancestor implements Ancestor Expansion: given a dotted compat
// key, enumerate the key itself plus each ancestor path that carries its
// own compat record.
package ancestor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/saberrg/webcompat-baseline/bcd"
)

// ErrInvalidPath is returned when a dotted key names a category or
// intermediate segment that does not exist in the compat tree.
var ErrInvalidPath = errors.New("invalid compat key path")

// Expand returns the ordered, root-to-leaf list of prefixes of key that
// carry a __compat record, restricted to p2..pn (p1, the top-level
// category, is never yielded on its own). The original key is included
// iff its own node carries __compat.
func Expand(categories map[string]*bcd.Tree, key string) ([]string, error) {
	parts := strings.Split(key, ".")
	if len(parts) < 2 {
		return nil, nil
	}

	category, ok := categories[parts[0]]
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %q in key %q", ErrInvalidPath, parts[0], key)
	}

	var result []string
	cur := category
	path := parts[0]
	for _, segment := range parts[1:] {
		child, ok := cur.Children[segment]
		if !ok {
			return nil, fmt.Errorf("%w: %q has no child %q", ErrInvalidPath, path, segment)
		}
		path = path + "." + segment
		if child.Compat != nil {
			result = append(result, path)
		}
		cur = child
	}

	return result, nil
}

// Node looks up the compat-tree node addressed by the dotted key.
func Node(categories map[string]*bcd.Tree, key string) (*bcd.Tree, error) {
	parts := strings.Split(key, ".")
	category, ok := categories[parts[0]]
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %q in key %q", ErrInvalidPath, parts[0], key)
	}

	cur := category
	path := parts[0]
	for _, segment := range parts[1:] {
		child, ok := cur.Children[segment]
		if !ok {
			return nil, fmt.Errorf("%w: %q has no child %q", ErrInvalidPath, path, segment)
		}
		path = path + "." + segment
		cur = child
	}

	return cur, nil
}
