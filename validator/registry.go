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

package validator

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

var (
	// ErrEmptyName is returned when registering a validator without a name.
	ErrEmptyName = errors.New("validator name must not be empty")

	// ErrNilTest is returned when registering a validator without a predicate.
	ErrNilTest = errors.New("validator test function must not be nil")

	// ErrInvalidValue is returned when an accepted value cannot be converted.
	ErrInvalidValue = errors.New("invalid parameter value")
)

// Validator pairs a predicate with a converter for one parameter type.
type Validator struct {
	// Test reports whether a raw path segment is acceptable.
	Test func(string) bool

	// Convert turns an accepted segment into its typed value.
	// It is only called after Test returned true.
	// A nil Convert passes the segment through as a string.
	Convert func(string) (any, error)

	// Generic marks validators that accept every value (string, any).
	Generic bool
}

// Specific reports whether the validator narrows the set of accepted values.
func (v Validator) Specific() bool {
	return !v.Generic
}

// Apply validates s and returns its converted value.
// It reports false when the predicate rejects s or the conversion fails;
// the converter never runs for a rejected value.
func (v Validator) Apply(s string) (any, bool) {
	if !v.Test(s) {
		return nil, false
	}
	if v.Convert == nil {
		return s, true
	}
	val, err := v.Convert(s)
	if err != nil {
		return nil, false
	}
	return val, true
}

// Registry is a named catalog of validators.
//
// Thread safety: a Registry is safe for concurrent use. Routers resolve the
// validators they need when a pattern is registered, so lookups never happen
// on the request path.
type Registry struct {
	mu         sync.RWMutex
	validators map[string]Validator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{validators: make(map[string]Validator, 16)}
}

// Default returns a new registry holding the built-in validators.
// Every call returns an independent registry.
func Default() *Registry {
	r := NewRegistry()
	for name, v := range builtins() {
		r.validators[name] = v
	}
	return r
}

// Register adds or replaces the validator for name.
func (r *Registry) Register(name string, v Validator) error {
	if name == "" {
		return ErrEmptyName
	}
	if v.Test == nil {
		return fmt.Errorf("%w: %s", ErrNilTest, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.validators[name] = v

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, v Validator) {
	if err := r.Register(name, v); err != nil {
		panic(fmt.Sprintf("validator.MustRegister: %v", err))
	}
}

// Lookup returns the validator registered under name.
func (r *Registry) Lookup(name string) (Validator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.validators[name]
	return v, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns the registered type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.validators))
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &Registry{validators: maps.Clone(r.validators)}
}

// Validate reports whether value satisfies typ.
// An empty or unregistered typ accepts every value.
//
// A predicate that panics is a programming error; the panic propagates.
func (r *Registry) Validate(value, typ string) bool {
	if typ == "" {
		return true
	}
	v, ok := r.Lookup(typ)
	if !ok {
		return true
	}
	return v.Test(value)
}

// Convert returns the typed value of value under typ.
// Types without a converter, and unregistered types, return value unchanged.
func (r *Registry) Convert(value, typ string) (any, error) {
	if typ == "" {
		return value, nil
	}
	v, ok := r.Lookup(typ)
	if !ok || v.Convert == nil {
		return value, nil
	}
	return v.Convert(value)
}
