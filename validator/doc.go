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

// Package validator provides the parameter type catalog used by typed routes.
//
// A route such as "/users/:id=int" declares that the "id" segment must satisfy
// the "int" validator. Each validator is a pair of functions: a predicate that
// decides whether a raw path segment is acceptable, and a converter that turns
// an accepted segment into its typed value.
//
// # Registry
//
// Validators live in a [Registry]. Registries are plain values passed to the
// router at construction time, so several independently configured routers
// can coexist in one process:
//
//	reg := validator.Default()
//	reg.MustRegister("sku", validator.Validator{
//	    Test: func(s string) bool { return len(s) == 8 },
//	})
//
// # Unknown Types
//
// A type name that is not registered is accepted: [Registry.Validate] returns
// true and [Registry.Convert] passes the value through unchanged. Routers can
// opt into rejecting such names at registration time instead.
//
// # Built-in Types
//
// [Default] returns a registry with the following types:
//
//	number, float   decimal numbers, converted to float64
//	int             base-10 integers, converted to int64
//	boolean         true/false/1/0, converted to bool
//	email, uuid, slug, hex, alpha, alphanumeric,
//	date, datetime, phone, ip, version
//	                validated, passed through as string
//	string, any     generic, accept every value
//
// Generic validators rank together with untyped parameters when the router
// orders sibling candidates, so "/users/:id=string" never shadows
// "/users/:id=int".
package validator
