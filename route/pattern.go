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

package route

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPattern is returned by [Parse] for malformed patterns.
var ErrInvalidPattern = errors.New("invalid route pattern")

// WildcardKey is the parameter name bound by an anonymous "*" wildcard.
const WildcardKey = "*"

// Kind classifies a pattern segment.
type Kind uint8

const (
	KindLiteral Kind = iota
	KindParam
	KindWildcard
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindParam:
		return "param"
	case KindWildcard:
		return "wildcard"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Segment is one "/"-separated piece of a pattern.
type Segment struct {
	Kind  Kind
	Value string // literal text, empty for params and wildcards
	Name  string // parameter name; WildcardKey for an anonymous wildcard
	Type  string // validator name, empty when untyped
}

// Pattern is a parsed route pattern.
type Pattern struct {
	Raw      string // as registered
	Path     string // normalized
	Segments []Segment
	Static   bool // no parameters or wildcard
}

// Params returns the parameter and wildcard segments in pattern order.
func (p Pattern) Params() []Segment {
	out := make([]Segment, 0, len(p.Segments))
	for _, s := range p.Segments {
		if s.Kind != KindLiteral {
			out = append(out, s)
		}
	}
	return out
}

// Parse parses and validates a route pattern.
//
// Empty and repeated slashes are ignored, so "/a//b/" parses like "/a/b" and
// "" parses like "/".
func Parse(raw string) (Pattern, error) {
	p := Pattern{Raw: raw, Path: Normalize(raw), Static: true}

	parts := Split(p.Path, nil)
	p.Segments = make([]Segment, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))

	for i, part := range parts {
		var seg Segment
		switch part[0] {
		case ':':
			name, typ, typed := strings.Cut(part[1:], "=")
			if name == "" {
				return Pattern{}, fmt.Errorf("%w: %q: empty parameter name in segment %d", ErrInvalidPattern, raw, i)
			}
			if typed && typ == "" {
				return Pattern{}, fmt.Errorf("%w: %q: empty type for parameter %q", ErrInvalidPattern, raw, name)
			}
			seg = Segment{Kind: KindParam, Name: name, Type: typ}
		case '*':
			if i != len(parts)-1 {
				return Pattern{}, fmt.Errorf("%w: %q: wildcard must be the last segment", ErrInvalidPattern, raw)
			}
			name := part[1:]
			if name == "" {
				name = WildcardKey
			}
			seg = Segment{Kind: KindWildcard, Name: name}
		default:
			p.Segments = append(p.Segments, Segment{Kind: KindLiteral, Value: part})
			continue
		}

		if _, dup := seen[seg.Name]; dup {
			return Pattern{}, fmt.Errorf("%w: %q: duplicate parameter %q", ErrInvalidPattern, raw, seg.Name)
		}
		seen[seg.Name] = struct{}{}
		p.Static = false
		p.Segments = append(p.Segments, seg)
	}

	return p, nil
}

// MustParse is like Parse but panics on error.
func MustParse(raw string) Pattern {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// Normalize returns path with a leading slash, without repeated slashes and
// without a trailing slash. The empty path normalizes to "/".
// Clean paths are returned unchanged without allocating.
func Normalize(path string) string {
	if isClean(path) {
		return path
	}

	var b strings.Builder
	b.Grow(len(path) + 1)
	for _, seg := range Split(path, nil) {
		b.WriteByte('/')
		b.WriteString(seg)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

func isClean(path string) bool {
	if path == "/" {
		return true
	}
	if len(path) < 2 || path[0] != '/' || path[len(path)-1] == '/' {
		return false
	}
	return !strings.Contains(path, "//")
}

// Split appends the non-empty segments of path to dst[:0] and returns it.
// Callers may pass a reusable buffer; a nil dst allocates.
func Split(path string, dst []string) []string {
	dst = dst[:0]
	start := -1
	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			if start >= 0 {
				dst = append(dst, path[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		dst = append(dst, path[start:])
	}
	return dst
}
