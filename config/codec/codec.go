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

// Package codec decodes configuration payloads.
//
// Decoders are registered by [Type] at init time and looked up with
// [GetDecoder]. The built-in types are YAML, TOML, JSON, environment
// variable listings and single-value casters.
package codec

// Type identifies a codec.
type Type string

// Decoder converts encoded bytes into Go values.
// Implementations must be safe for concurrent use.
type Decoder interface {
	// Decode converts data into the value pointed to by v.
	Decode(data []byte, v any) error
}
