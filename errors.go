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

package typedrouter

import (
	"errors"

	"rivaas.dev/typedrouter/radix"
	"rivaas.dev/typedrouter/route"
)

var (
	// ErrUnsupportedMethod indicates a method outside GET, POST, PUT, DELETE,
	// PATCH, HEAD and OPTIONS.
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")

	// ErrNilHandler indicates a route registered without a handler.
	ErrNilHandler = radix.ErrNilHandler

	// ErrInvalidPattern indicates a malformed route pattern.
	ErrInvalidPattern = route.ErrInvalidPattern

	// ErrUnknownParamType indicates an unregistered parameter type in strict mode.
	ErrUnknownParamType = radix.ErrUnknownParamType

	// ErrNilRegistry indicates that WithRegistry was given nil.
	ErrNilRegistry = errors.New("validator registry must not be nil")

	// ErrCacheSizeInvalid indicates a non-positive cache capacity.
	ErrCacheSizeInvalid = errors.New("cache size must be positive")

	// ErrCacheTTLInvalid indicates a negative cache TTL.
	ErrCacheTTLInvalid = errors.New("cache ttl must not be negative")

	// ErrCacheSweepInvalid indicates a sweep interval without a TTL, or a
	// negative interval.
	ErrCacheSweepInvalid = errors.New("cache sweep requires a positive interval and a ttl")
)
