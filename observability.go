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
	"time"

	"rivaas.dev/typedrouter/cache"
)

// LookupOutcome classifies the result of Find.
type LookupOutcome uint8

const (
	// LookupCacheHit means the result came from the route cache.
	LookupCacheHit LookupOutcome = iota + 1

	// LookupTreeHit means the route tree resolved the request.
	LookupTreeHit

	// LookupNotFound means no route matched.
	LookupNotFound
)

// String returns the outcome as used in metric attributes.
func (o LookupOutcome) String() string {
	switch o {
	case LookupCacheHit:
		return "cache_hit"
	case LookupTreeHit:
		return "tree_hit"
	case LookupNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Observer receives lookup and cache events.
// Package metrics provides an OpenTelemetry implementation.
//
// Thread safety: all methods must be safe for concurrent use. They are called
// on the lookup path and should not block.
type Observer interface {
	// OnLookup is called once per Find. pattern is empty when nothing matched.
	OnLookup(method, pattern string, outcome LookupOutcome, elapsed time.Duration)

	// OnCacheEvict is called when the route cache drops an entry because of
	// capacity or expiry.
	OnCacheEvict(reason cache.EvictReason)
}
