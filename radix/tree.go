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
	"fmt"
	"slices"
	"sync/atomic"

	"rivaas.dev/typedrouter/compiler"
	"rivaas.dev/typedrouter/route"
	"rivaas.dev/typedrouter/validator"
)

// Match is the result of a successful search.
type Match struct {
	Handler any
	Params  route.Params
	Pattern string // normalized pattern that matched
}

// Registration describes the outcome of an insert.
type Registration struct {
	Info     route.Info
	Replaced bool // an identical pattern was already registered
}

// UnknownTypes returns the parameter types that did not resolve to a
// registered validator.
func (r Registration) UnknownTypes() []string {
	var out []string
	for _, p := range r.Info.Params {
		if p.Type != "" && !p.Known {
			out = append(out, p.Type)
		}
	}
	return out
}

// Option configures a Tree.
type Option func(*Tree)

// WithStrictTypes rejects patterns that reference unregistered types.
func WithStrictTypes(strict bool) Option {
	return func(t *Tree) {
		t.strict = strict
	}
}

// WithBloomFilter sets the initial static index bloom filter size in bits and
// its number of hash functions.
func WithBloomFilter(size uint64, hashFuncs int) Option {
	return func(t *Tree) {
		t.bloomSize = size
		t.hashFuncs = hashFuncs
	}
}

// WithMethod labels the routes reported by the tree.
func WithMethod(method string) Option {
	return func(t *Tree) {
		t.method = method
	}
}

// resolvedType is a parameter type looked up at insert time.
type resolvedType struct {
	v     validator.Validator
	known bool
}

// Tree is a route trie for a single HTTP method.
type Tree struct {
	registry  *validator.Registry
	method    string
	strict    bool
	bloomSize uint64
	hashFuncs int

	static *compiler.StaticTable[*leaf]
	root   *node
	routes int

	searches atomic.Uint64
}

// New creates an empty tree resolving parameter types against registry.
// A nil registry uses [validator.Default].
func New(registry *validator.Registry, opts ...Option) *Tree {
	if registry == nil {
		registry = validator.Default()
	}
	t := &Tree{
		registry: registry,
		root:     &node{},
	}
	for _, opt := range opts {
		opt(t)
	}
	t.static = compiler.NewStaticTable[*leaf](t.bloomSize, t.hashFuncs)
	return t
}

// Insert registers handler under pattern. Re-inserting an identical pattern
// replaces its handler.
//
// The pattern is fully validated before the tree is modified, so a failed
// insert leaves the tree unchanged.
func (t *Tree) Insert(pattern string, handler any) (Registration, error) {
	if handler == nil {
		return Registration{}, fmt.Errorf("%w: %s", ErrNilHandler, pattern)
	}

	p, err := route.Parse(pattern)
	if err != nil {
		return Registration{}, err
	}

	info := route.Info{Method: t.method, Pattern: p.Path, Static: p.Static}
	resolved := make([]resolvedType, len(p.Segments))
	for i, seg := range p.Segments {
		switch seg.Kind {
		case route.KindParam:
			pi := route.ParamInfo{Name: seg.Name, Type: seg.Type}
			if seg.Type != "" {
				resolved[i].v, resolved[i].known = t.registry.Lookup(seg.Type)
				pi.Known = resolved[i].known
				if !pi.Known && t.strict {
					return Registration{}, fmt.Errorf("%w: %q in %s", ErrUnknownParamType, seg.Type, p.Path)
				}
			}
			info.Params = append(info.Params, pi)
		case route.KindWildcard:
			info.Params = append(info.Params, route.ParamInfo{Name: seg.Name, Wildcard: true})
		}
	}

	l := &leaf{handler: handler, info: info}

	if p.Static {
		replaced := t.static.Add(p.Path, l)
		if !replaced {
			t.routes++
		}
		return Registration{Info: info, Replaced: replaced}, nil
	}

	n := t.root
	for i, seg := range p.Segments {
		switch seg.Kind {
		case route.KindLiteral:
			n = n.findOrCreateChild(seg.Value)
		case route.KindParam:
			n = n.findOrCreateParam(seg, resolved[i].v, resolved[i].known).node
		case route.KindWildcard:
			replaced := n.wildcard != nil
			n.wildcard = &wildcard{name: seg.Name, leaf: l}
			if !replaced {
				t.routes++
			}
			return Registration{Info: info, Replaced: replaced}, nil
		}
	}

	replaced := n.leaf != nil
	n.leaf = l
	if !replaced {
		t.routes++
	}
	return Registration{Info: info, Replaced: replaced}, nil
}

// Search resolves path. It never panics on malformed input; validator panics
// propagate.
func (t *Tree) Search(path string) (Match, bool) {
	t.searches.Add(1)

	path = route.Normalize(path)
	if l, ok := t.static.Lookup(path); ok {
		return Match{Handler: l.handler, Pattern: l.info.Pattern}, true
	}

	var buf [16]string
	segs := route.Split(path, buf[:0])
	l, b, ok := t.root.match(segs, nil)
	if !ok {
		return Match{}, false
	}
	return Match{Handler: l.handler, Params: b.params(), Pattern: l.info.Pattern}, true
}

// Searches returns how many times Search has been called.
func (t *Tree) Searches() uint64 {
	return t.searches.Load()
}

// Len returns the number of registered routes.
func (t *Tree) Len() int {
	return t.routes
}

// Routes returns every registered route sorted by pattern.
func (t *Tree) Routes() []route.Info {
	out := make([]route.Info, 0, t.routes)
	for _, l := range t.static.All() {
		out = append(out, l.info)
	}
	t.root.walk(func(l *leaf) {
		out = append(out, l.info)
	})
	slices.SortFunc(out, route.CompareInfo)
	return out
}
