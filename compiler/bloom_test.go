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

//go:build !integration

package compiler

import (
	"fmt"
	"hash/fnv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashString_MatchesStdlib(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "/", "/api/health", "/users/42/posts"} {
		h := fnv.New64a()
		_, err := h.Write([]byte(s))
		require.NoError(t, err)
		assert.Equal(t, h.Sum64(), HashString(s), "hash of %q", s)
	}
}

func TestNewBloomFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		size         uint64
		numHashFuncs int
		wantSize     uint64
		wantWords    int
	}{
		{name: "standard size", size: 1000, numHashFuncs: 3, wantSize: 1000, wantWords: 16},
		{name: "exact word", size: 64, numHashFuncs: 1, wantSize: 64, wantWords: 1},
		{name: "zero size rounds up", size: 0, numHashFuncs: 3, wantSize: 64, wantWords: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			bf := NewBloomFilter(tt.size, tt.numHashFuncs)
			assert.Equal(t, tt.wantSize, bf.Size())
			assert.Len(t, bf.bits, tt.wantWords)
			assert.Len(t, bf.seeds, tt.numHashFuncs)
		})
	}
}

func TestBloomFilter_NoFalseNegatives(t *testing.T) {
	t.Parallel()
	bf := NewBloomFilter(1000, 3)

	for i := range 100 {
		bf.Add(HashString(fmt.Sprintf("/route/%d", i)))
	}
	for i := range 100 {
		assert.True(t, bf.Test(HashString(fmt.Sprintf("/route/%d", i))))
	}
}

func TestBloomFilter_EmptyRejectsEverything(t *testing.T) {
	t.Parallel()
	bf := NewBloomFilter(1000, 3)
	assert.False(t, bf.Test(HashString("/anything")))
}
