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

// Package cache provides a fixed-capacity LRU cache with optional expiry.
//
// [LRU] is a map plus an intrusive doubly linked list guarded by a single
// mutex, so every operation is O(1). Entries not touched by a Set or a hit
// for longer than the configured TTL are dropped lazily when read, or eagerly by [LRU.RemoveExpired] and
// [LRU.Sweep].
//
//	c, err := cache.New[string](1000, cache.WithTTL(5*time.Minute))
//	c.Set("GET:/users/42", "users.show")
//	v, ok := c.Get("GET:/users/42")
package cache
