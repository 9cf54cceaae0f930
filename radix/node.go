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

import (
	"cmp"
	"slices"
	"strings"

	"rivaas.dev/typedrouter/route"
	"rivaas.dev/typedrouter/validator"
)

// Candidate ranks for parameter children. Lower ranks are tried first.
const (
	rankSpecific = iota // registered, non-generic validator
	rankGeneric         // untyped, generic or unknown type
)

// leaf is the terminal payload of a route.
type leaf struct {
	handler any
	info    route.Info
}

// edge is a literal child keyed by segment text.
type edge struct {
	label string
	node  *node
}

// node is one trie level. A node with a non-nil leaf is terminal.
type node struct {
	edges    []edge
	params   []*param
	wildcard *wildcard
	leaf     *leaf
}

// param is a parameter child, unique per (name, type) among its siblings.
type param struct {
	name      string
	typ       string
	validator validator.Validator
	known     bool
	rank      int
	node      *node
}

// wildcard captures the remaining segments. It is always terminal.
type wildcard struct {
	name string
	leaf *leaf
}

// findChild returns the literal child for segment, or nil.
func (n *node) findChild(segment string) *node {
	for i := range n.edges {
		if n.edges[i].label == segment {
			return n.edges[i].node
		}
	}
	return nil
}

// findOrCreateChild returns the literal child for segment, creating it if needed.
func (n *node) findOrCreateChild(segment string) *node {
	if child := n.findChild(segment); child != nil {
		return child
	}
	child := &node{}
	n.edges = append(n.edges, edge{label: segment, node: child})
	return child
}

// findOrCreateParam returns the parameter child for (name, typ), creating it
// and re-sorting the candidates if needed.
func (n *node) findOrCreateParam(seg route.Segment, v validator.Validator, known bool) *param {
	for _, p := range n.params {
		if p.name == seg.Name && p.typ == seg.Type {
			return p
		}
	}

	p := &param{
		name:      seg.Name,
		typ:       seg.Type,
		validator: v,
		known:     known,
		rank:      rankOf(v, known),
		node:      &node{},
	}
	n.params = append(n.params, p)
	slices.SortStableFunc(n.params, compareParams)
	return p
}

func rankOf(v validator.Validator, known bool) int {
	if known && v.Specific() {
		return rankSpecific
	}
	return rankGeneric
}

// compareParams orders sibling parameters by rank. Equal ranks keep
// insertion order because the sort is stable.
func compareParams(a, b *param) int {
	return cmp.Compare(a.rank, b.rank)
}

// accept validates and converts a segment for this parameter.
// Untyped and unknown types bind the raw segment.
func (p *param) accept(segment string) (any, bool) {
	if !p.known {
		return segment, true
	}
	return p.validator.Apply(segment)
}

// match walks segs depth-first and returns the first terminal reached along
// with the bindings collected on the way.
func (n *node) match(segs []string, b *binding) (*leaf, *binding, bool) {
	if len(segs) == 0 {
		if n.leaf != nil {
			return n.leaf, b, true
		}
		return nil, nil, false
	}

	seg, rest := segs[0], segs[1:]

	if child := n.findChild(seg); child != nil {
		if l, bound, ok := child.match(rest, b); ok {
			return l, bound, true
		}
	}

	for _, p := range n.params {
		val, ok := p.accept(seg)
		if !ok {
			continue
		}
		if l, bound, ok := p.node.match(rest, b.bind(p.name, val)); ok {
			return l, bound, true
		}
	}

	if n.wildcard != nil {
		return n.wildcard.leaf, b.bind(n.wildcard.name, strings.Join(segs, "/")), true
	}

	return nil, nil, false
}

// walk calls fn for every leaf below n, in insertion order of children.
func (n *node) walk(fn func(*leaf)) {
	if n.leaf != nil {
		fn(n.leaf)
	}
	for _, e := range n.edges {
		e.node.walk(fn)
	}
	for _, p := range n.params {
		p.node.walk(fn)
	}
	if n.wildcard != nil {
		fn(n.wildcard.leaf)
	}
}
