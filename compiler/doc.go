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

// Package compiler provides the static route index used by the radix tree.
//
// Fully literal patterns such as "/api/health" never need the trie: they are
// stored in a [StaticTable] keyed by their normalized path. A bloom filter in
// front of the table answers most negative lookups without touching the map:
//
//   - Zero false negatives (if not in the bloom filter, definitely not a route)
//   - Rare false positives, kept low by growing the filter with the table
//
// Hashing is FNV-1a computed inline over the string bytes, so lookups do not
// allocate.
//
// For small tables the bloom filter is skipped; a map lookup is cheaper than
// the filter for fewer than ten routes.
package compiler
