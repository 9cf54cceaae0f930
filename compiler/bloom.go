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

// FNV-1a 64-bit constants for inline hashing.
//
// hash/fnv needs a []byte and goes through the hash.Hash64 interface; hashing
// the string bytes directly keeps the lookup path allocation free.
const (
	fnvOffsetBasis = 14695981039346656037
	fnvPrime       = 1099511628211
)

// HashString returns the FNV-1a hash of s.
func HashString(s string) uint64 {
	hash := uint64(fnvOffsetBasis)
	for i := range len(s) {
		hash ^= uint64(s[i])
		hash *= fnvPrime
	}
	return hash
}

// BloomFilter is a bit set answering "definitely absent" or "possibly present"
// for pre-hashed keys.
//
// The k hash functions are derived from one FNV-1a base hash by XORing it
// with k seeds, so each key is hashed only once.
type BloomFilter struct {
	bits  []uint64
	size  uint64
	seeds []uint64
}

// NewBloomFilter creates a bloom filter with size bits and numHashFuncs hash
// functions. A zero size is rounded up to 64 bits.
func NewBloomFilter(size uint64, numHashFuncs int) *BloomFilter {
	if size == 0 {
		size = 64
	}
	bf := &BloomFilter{
		bits:  make([]uint64, (size+63)/64),
		size:  size,
		seeds: make([]uint64, numHashFuncs),
	}
	for i := range numHashFuncs {
		//nolint:gosec // G115: numHashFuncs is small, overflow impossible
		bf.seeds[i] = uint64(i + 1)
	}
	return bf
}

func (bf *BloomFilter) position(baseHash, seed uint64) uint64 {
	return (baseHash ^ seed) % bf.size
}

// Add records a pre-computed hash.
func (bf *BloomFilter) Add(hash uint64) {
	for _, seed := range bf.seeds {
		pos := bf.position(hash, seed)
		bf.bits[pos/64] |= 1 << (pos % 64)
	}
}

// Test reports whether hash may have been added.
// A false result is exact.
func (bf *BloomFilter) Test(hash uint64) bool {
	for _, seed := range bf.seeds {
		pos := bf.position(hash, seed)
		if bf.bits[pos/64]&(1<<(pos%64)) == 0 {
			return false
		}
	}
	return true
}

// Size returns the number of bits in the filter.
func (bf *BloomFilter) Size() uint64 { return bf.size }
