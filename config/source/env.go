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

package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"rivaas.dev/typedrouter/config/codec"
)

// OSEnvVar loads configuration from environment variables starting with a
// prefix. With prefix "ROUTER_", ROUTER_CACHE_CAPACITY=500 becomes
// cache.capacity = "500".
type OSEnvVar struct {
	prefix  string
	decoder codec.Decoder
	environ func() []string
}

// NewOSEnvVar returns an environment source. known lists dotted keys whose
// last part contains underscores; see [codec.EnvVarCodec].
func NewOSEnvVar(prefix string, known ...string) *OSEnvVar {
	return &OSEnvVar{
		prefix:  prefix,
		decoder: codec.EnvVarCodec{Known: known},
		environ: os.Environ,
	}
}

// Load reads the prefixed variables.
func (e *OSEnvVar) Load(context.Context) (map[string]any, error) {
	env := e.environ()
	matched := make([]string, 0, len(env))
	for _, kv := range env {
		if rest, ok := strings.CutPrefix(kv, e.prefix); ok {
			matched = append(matched, rest)
		}
	}

	var config map[string]any
	if err := e.decoder.Decode([]byte(strings.Join(matched, "\n")), &config); err != nil {
		return nil, fmt.Errorf("failed to decode environment variables: %w", err)
	}
	return config, nil
}
