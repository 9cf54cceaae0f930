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

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidValue marks a field holding an unusable value.
	ErrInvalidValue = errors.New("invalid value")

	// ErrMissingValue marks a required field left empty.
	ErrMissingValue = errors.New("missing value")
)

// Config is the router configuration.
//
//	strict_types: false
//	cache:
//	  enabled: true
//	  capacity: 1000
//	  ttl: 5m
//	  sweep_interval: 0s
//	routes:
//	  - method: GET
//	    pattern: /users/:id=int
//	    name: users.show
type Config struct {
	StrictTypes bool    `config:"strict_types"`
	Cache       Cache   `config:"cache"`
	Routes      []Route `config:"routes"`
}

// Cache configures the route resolution cache.
type Cache struct {
	Enabled       bool          `config:"enabled" default:"true"`
	Capacity      int           `config:"capacity" default:"1000"`
	TTL           time.Duration `config:"ttl"`
	SweepInterval time.Duration `config:"sweep_interval"`
}

// Route is one entry of the route table.
type Route struct {
	Method  string `config:"method"`
	Pattern string `config:"pattern"`
	Name    string `config:"name"`
}

// ID returns the route name, or "METHOD pattern" when unnamed.
func (r Route) ID() string {
	if r.Name != "" {
		return r.Name
	}
	return strings.ToUpper(r.Method) + " " + r.Pattern
}

// Keys lists the dotted keys that can be set from scalar sources such as
// environment variables.
func Keys() []string {
	return []string{
		"strict_types",
		"cache.enabled",
		"cache.capacity",
		"cache.ttl",
		"cache.sweep_interval",
	}
}

// Default returns the configuration used when no source sets a value.
func Default() Config {
	var c Config
	if err := applyDefaults(&c); err != nil {
		// default tags are fixed at compile time
		panic(fmt.Sprintf("config: invalid default tag: %v", err))
	}
	return c
}

// Validate checks field ranges and the route table. Route methods are not
// checked against the router's method set here; registration reports those.
func (c Config) Validate() error {
	var errs []error

	if c.Cache.Enabled && c.Cache.Capacity <= 0 {
		errs = append(errs, NewFieldError("binding", "cache.capacity", "validate",
			fmt.Errorf("%w: must be positive, got %d", ErrInvalidValue, c.Cache.Capacity)))
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, NewFieldError("binding", "cache.ttl", "validate",
			fmt.Errorf("%w: must not be negative, got %s", ErrInvalidValue, c.Cache.TTL)))
	}
	if c.Cache.SweepInterval < 0 {
		errs = append(errs, NewFieldError("binding", "cache.sweep_interval", "validate",
			fmt.Errorf("%w: must not be negative, got %s", ErrInvalidValue, c.Cache.SweepInterval)))
	}
	if c.Cache.SweepInterval > 0 && c.Cache.TTL == 0 {
		errs = append(errs, NewFieldError("binding", "cache.sweep_interval", "validate",
			fmt.Errorf("%w: sweeping requires cache.ttl", ErrInvalidValue)))
	}

	for i, r := range c.Routes {
		field := fmt.Sprintf("routes[%d]", i)
		if r.Method == "" {
			errs = append(errs, NewFieldError("binding", field+".method", "validate", ErrMissingValue))
		} else if !isToken(r.Method) {
			errs = append(errs, NewFieldError("binding", field+".method", "validate",
				fmt.Errorf("%w: %q", ErrInvalidValue, r.Method)))
		}
		if r.Pattern == "" {
			errs = append(errs, NewFieldError("binding", field+".pattern", "validate", ErrMissingValue))
		}
	}

	return errors.Join(errs...)
}

// isToken reports whether s looks like an HTTP method name.
func isToken(s string) bool {
	for i := range len(s) {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return s != ""
}
