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

// Package source provides configuration sources.
//
// Each source implements the Source interface of the parent config package:
// Load returns a nested map that the loader merges with the other sources.
//
//   - File: a file on disk or in-memory content, decoded by a codec
//   - OSEnvVar: prefixed environment variables
//   - Consul: one key of a Consul KV store
package source
