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

// Package idcache is a small generic, mutex-guarded, identifier-keyed
// cache: the first lookup for a key computes and stores the value, every
// later lookup for the same key returns the stored value without
// recomputing it.
package idcache

import "sync"

// Cache maps a comparable identifier to a lazily computed value. Values
// are never evicted; a Cache's lifetime is expected to match one
// computation (or one shared context across several, if the caller wants
// concurrent reuse — GetOrCompute serializes access so that is safe).
type Cache[K comparable, V any] struct {
	mu   sync.Mutex
	data map[K]V
}

// New returns an empty Cache.
func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{data: make(map[K]V)}
}

// GetOrCompute returns the cached value for key, computing and storing it
// via compute on the first call for that key. If compute returns an
// error, nothing is cached and the zero value of V is returned alongside
// the error.
func (c *Cache[K, V]) GetOrCompute(key K, compute func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.data[key]; ok {
		return v, nil
	}

	v, err := compute()
	if err != nil {
		var zero V

		return zero, err
	}

	c.data[key] = v

	return v, nil
}
