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

// Package radix implements the typed per-method route trie.
//
// A [Tree] stores fully literal patterns in a static index and every other
// pattern in a segment trie. Each trie node has literal children (linear
// scan), parameter children tagged with a name and a type, and at most one
// wildcard child.
//
// # Matching
//
// [Tree.Search] walks the path depth-first. At every level it tries, in
// order:
//
//  1. the literal child equal to the segment
//  2. the parameter children, specific types before generic or untyped ones
//  3. the wildcard child, which consumes the rest of the path
//
// A branch that dead-ends is abandoned and the next candidate is tried, so
// "/users/:id=int/profile" and "/users/:name/settings" can share a prefix.
// Parameter values are validated and converted as they are bound; bindings
// are kept in an immutable list so a failed branch leaves no trace.
//
// # Concurrency
//
// Insert must not run concurrently with Search. Search is safe for concurrent
// use.
package radix
