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

package radix

import "rivaas.dev/typedrouter/route"

// binding is an immutable linked list of bound parameters, newest first.
// Branches share their common prefix; a failed branch is simply dropped.
type binding struct {
	name  string
	value any
	next  *binding
	depth int
}

// bind returns a new list with name=value prepended. b may be nil.
func (b *binding) bind(name string, value any) *binding {
	depth := 1
	if b != nil {
		depth = b.depth + 1
	}
	return &binding{name: name, value: value, next: b, depth: depth}
}

// params materializes the list in pattern order.
func (b *binding) params() route.Params {
	if b == nil {
		return route.Params{}
	}
	names := make([]string, b.depth)
	values := make([]any, b.depth)
	for cur, i := b, b.depth-1; cur != nil; cur, i = cur.next, i-1 {
		names[i] = cur.name
		values[i] = cur.value
	}
	return route.NewParams(names, values)
}
