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

// Package route holds the pattern model shared by the router packages.
//
// A pattern is a "/"-separated path whose segments are one of:
//
//	literal     exact text, e.g. "users"
//	:name       a parameter matching any single segment
//	:name=type  a parameter whose value must satisfy the named validator
//	*  or *name a trailing wildcard capturing the rest of the path
//
// [Parse] turns a pattern into [Segment] values, [Normalize] and [Split]
// apply the same slash handling to runtime paths, [Params] carries the
// typed values bound during a match, and [Info] describes a registered route
// for introspection.
package route
