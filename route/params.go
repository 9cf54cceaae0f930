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
	"iter"
	"maps"
	"strconv"
)

var (
	// ErrParamMissing is returned when a parameter was not bound.
	ErrParamMissing = errors.New("parameter not found")

	// ErrParamInvalid is returned when a parameter cannot be read as the requested type.
	ErrParamInvalid = errors.New("invalid parameter value")
)

// Params holds the values bound by a successful match, in pattern order.
//
// Values are string, int64, float64 or bool depending on the parameter type.
// Params is read-only and safe to share between goroutines; matches served
// from the route cache share the same Params value.
type Params struct {
	names  []string
	values []any
}

// NewParams builds a Params from parallel name and value slices.
// It takes ownership of both slices.
func NewParams(names []string, values []any) Params {
	if len(names) != len(values) {
		panic(fmt.Sprintf("route.NewParams: %d names for %d values", len(names), len(values)))
	}
	return Params{names: names, values: values}
}

// Len returns the number of bound parameters.
func (p Params) Len() int { return len(p.names) }

// Get returns the value bound to name.
func (p Params) Get(name string) (any, bool) {
	for i, n := range p.names {
		if n == name {
			return p.values[i], true
		}
	}
	return nil, false
}

// Value returns the value bound to name, or nil.
func (p Params) Value(name string) any {
	v, _ := p.Get(name)
	return v
}

// Names returns the bound parameter names in pattern order.
func (p Params) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// All iterates over name/value pairs in pattern order.
func (p Params) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for i, n := range p.names {
			if !yield(n, p.values[i]) {
				return
			}
		}
	}
}

// Map returns a copy of the parameters as a map.
func (p Params) Map() map[string]any {
	return maps.Collect(p.All())
}

// String returns the parameter formatted as a string.
// Typed values are formatted the way they would appear in a path.
func (p Params) String(name string) (string, error) {
	v, ok := p.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrParamMissing, name)
	}
	switch x := v.(type) {
	case string:
		return x, nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(x), nil
	default:
		return fmt.Sprint(x), nil
	}
}

// Int returns the parameter as an int64.
// String values are parsed; integral float64 values are accepted.
func (p Params) Int(name string) (int64, error) {
	v, ok := p.Get(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrParamMissing, name)
	}
	switch x := v.(type) {
	case int64:
		return x, nil
	case float64:
		if x == float64(int64(x)) {
			return int64(x), nil
		}
	case string:
		n, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s (%w)", ErrParamInvalid, name, err)
		}
		return n, nil
	}
	return 0, fmt.Errorf("%w: %s is %T", ErrParamInvalid, name, v)
}

// Float returns the parameter as a float64.
func (p Params) Float(name string) (float64, error) {
	v, ok := p.Get(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrParamMissing, name)
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case int64:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s (%w)", ErrParamInvalid, name, err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: %s is %T", ErrParamInvalid, name, v)
}

// Bool returns the parameter as a bool.
func (p Params) Bool(name string) (bool, error) {
	v, ok := p.Get(name)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrParamMissing, name)
	}
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		b, err := strconv.ParseBool(x)
		if err != nil {
			return false, fmt.Errorf("%w: %s (%w)", ErrParamInvalid, name, err)
		}
		return b, nil
	}
	return false, fmt.Errorf("%w: %s is %T", ErrParamInvalid, name, v)
}
