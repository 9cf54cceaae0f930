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
	"bytes"
	"fmt"
	"strings"
)

// TypeEnvVar identifies the environment variable codec.
const TypeEnvVar Type = "env_var"

func init() {
	RegisterDecoder(TypeEnvVar, EnvVarCodec{})
}

// EnvVarCodec decodes KEY=value lines into a nested map.
//
// Keys are lowercased and split on underscores, so CACHE_CAPACITY becomes
// cache.capacity. Keys listed in Known are matched first, which lets names
// that contain underscores survive: with Known = ["cache.sweep_interval"],
// CACHE_SWEEP_INTERVAL becomes cache.sweep_interval instead of
// cache.sweep.interval.
type EnvVarCodec struct {
	Known []string
}

// Decode decodes env lines into v, which must be a *map[string]any.
func (c EnvVarCodec) Decode(data []byte, v any) error {
	ptr, ok := v.(*map[string]any)
	if !ok {
		return fmt.Errorf("EnvVarCodec.Decode: expected *map[string]any, got %T", v)
	}

	known := make(map[string][]string, len(c.Known))
	for _, k := range c.Known {
		k = strings.ToLower(k)
		known[strings.ReplaceAll(k, ".", "_")] = strings.Split(k, ".")
	}

	conf := make(map[string]any)
	for _, line := range bytes.Split(data, []byte("\n")) {
		key, value, found := strings.Cut(string(line), "=")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}

		parts, ok := known[key]
		if !ok {
			parts = splitKey(key)
		}
		if len(parts) == 0 {
			continue
		}

		current := conf
		for _, part := range parts[:len(parts)-1] {
			next, ok := current[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				current[part] = next
			}
			current = next
		}
		current[parts[len(parts)-1]] = strings.TrimSpace(value)
	}

	*ptr = conf
	return nil
}

// splitKey splits on underscores and drops empty parts.
func splitKey(key string) []string {
	raw := strings.Split(key, "_")
	parts := raw[:0]
	for _, p := range raw {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
