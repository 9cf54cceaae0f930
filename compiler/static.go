// Copyright 2025 The Rivaas Authors
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

package compiler

import (
	"iter"
	"maps"
	"slices"
)

const (
	// DefaultBloomSize is the initial bloom filter size in bits.
	DefaultBloomSize = 1000

	// DefaultHashFuncs is the default number of bloom hash functions.
	DefaultHashFuncs = 3

	// bloomThreshold is the table size below which lookups skip the filter.
	bloomThreshold = 10

	// bitsPerEntry triggers a filter rebuild once the table outgrows it.
	// With three hash functions this keeps false positives around 3%.
	bitsPerEntry = 8
)

// StaticTable maps fully literal paths to values.
//
// Writes are not synchronized. The table is filled at registration time and
// read concurrently afterwards.
type StaticTable[V any] struct {
	entries   map[string]V
	bloom     *BloomFilter
	hashFuncs int
}

// NewStaticTable creates an empty table. Non-positive arguments select the
// defaults.
func NewStaticTable[V any](bloomSize uint64, hashFuncs int) *StaticTable[V] {
	if bloomSize == 0 {
		bloomSize = DefaultBloomSize
	}
	if hashFuncs <= 0 {
		hashFuncs = DefaultHashFuncs
	}
	return &StaticTable[V]{
		entries:   make(map[string]V),
		bloom:     NewBloomFilter(bloomSize, hashFuncs),
		hashFuncs: hashFuncs,
	}
}

// Add stores v under path and reports whether an existing value was replaced.
func (t *StaticTable[V]) Add(path string, v V) (replaced bool) {
	_, replaced = t.entries[path]
	t.entries[path] = v
	if replaced {
		return true
	}

	if uint64(len(t.entries))*bitsPerEntry > t.bloom.Size() {
		t.rebuild(t.bloom.Size() * 2)
		return false
	}
	t.bloom.Add(HashString(path))
	return false
}

func (t *StaticTable[V]) rebuild(size uint64) {
	t.bloom = NewBloomFilter(size, t.hashFuncs)
	for path := range t.entries {
		t.bloom.Add(HashString(path))
	}
}

// Lookup returns the value stored under path.
func (t *StaticTable[V]) Lookup(path string) (V, bool) {
	if len(t.entries) < bloomThreshold {
		v, ok := t.entries[path]
		return v, ok
	}
	if !t.bloom.Test(HashString(path)) {
		var zero V
		return zero, false
	}
	v, ok := t.entries[path]
	return v, ok
}

// Len returns the number of stored paths.
func (t *StaticTable[V]) Len() int { return len(t.entries) }

// All iterates over the table in path order.
func (t *StaticTable[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, path := range slices.Sorted(maps.Keys(t.entries)) {
			if !yield(path, t.entries[path]) {
				return
			}
		}
	}
}
