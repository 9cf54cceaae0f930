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

package codec

import (
	"fmt"
	"maps"
	"slices"
)

// decoders holds the registered decoders. It is written during package
// initialization only.
var decoders = make(map[Type]Decoder)

// RegisterDecoder registers decoder under name, replacing any previous one.
// It is meant to be called from init functions.
func RegisterDecoder(name Type, decoder Decoder) {
	decoders[name] = decoder
}

// GetDecoder returns the decoder registered under name.
func GetDecoder(name Type) (Decoder, error) {
	decoder, exists := decoders[name]
	if !exists {
		return nil, fmt.Errorf("decoder not found for type: %s", name)
	}
	return decoder, nil
}

// Types returns the registered codec types in sorted order.
func Types() []Type {
	return slices.Sorted(maps.Keys(decoders))
}
