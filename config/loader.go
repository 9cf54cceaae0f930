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
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"dario.cat/mergo"
	"github.com/go-viper/mapstructure/v2"

	"rivaas.dev/typedrouter/config/codec"
	"rivaas.dev/typedrouter/config/source"
)

// Option configures a Loader.
type Option func(l *Loader) error

// Loader merges configuration sources into a [Config].
// Later sources override earlier ones.
type Loader struct {
	sources []Source
	consul  source.ConsulKV
}

// WithSource adds a custom source.
func WithSource(src Source) Option {
	return func(l *Loader) error {
		if src == nil {
			return NewError("source", "add", errors.New("source must not be nil"))
		}
		l.sources = append(l.sources, src)
		return nil
	}
}

// WithFile adds a file source, detecting the format from the extension.
// The path may reference environment variables as ${VAR} or $VAR.
func WithFile(path string) Option {
	return func(l *Loader) error {
		path = os.ExpandEnv(path)
		format, err := detectFormat(path)
		if err != nil {
			return NewError("file-source", "detect-format", err)
		}
		return WithFileAs(path, format)(l)
	}
}

// WithFileAs adds a file source decoded with an explicit codec.
func WithFileAs(path string, codecType codec.Type) Option {
	return func(l *Loader) error {
		decoder, err := codec.GetDecoder(codecType)
		if err != nil {
			return NewError("file-source", "get-decoder", err)
		}
		l.sources = append(l.sources, source.NewFile(os.ExpandEnv(path), decoder))
		return nil
	}
}

// WithContent adds in-memory content decoded with codecType.
func WithContent(data []byte, codecType codec.Type) Option {
	return func(l *Loader) error {
		decoder, err := codec.GetDecoder(codecType)
		if err != nil {
			return NewError("content-source", "get-decoder", err)
		}
		l.sources = append(l.sources, source.NewFileContent(data, decoder))
		return nil
	}
}

// WithEnv adds environment variables starting with prefix.
// ROUTER_CACHE_CAPACITY=500 with prefix "ROUTER_" sets cache.capacity.
func WithEnv(prefix string) Option {
	return func(l *Loader) error {
		l.sources = append(l.sources, source.NewOSEnvVar(prefix, Keys()...))
		return nil
	}
}

// WithConsulKV sets the KV client used by the Consul options that follow it.
// Without it a client is built from CONSUL_HTTP_ADDR.
func WithConsulKV(kv source.ConsulKV) Option {
	return func(l *Loader) error {
		l.consul = kv
		return nil
	}
}

// WithConsul adds a Consul key, detecting the format from its extension.
//
// When no KV client was set with WithConsulKV and CONSUL_HTTP_ADDR is unset,
// the option is skipped, so local development works without Consul.
func WithConsul(key string) Option {
	return func(l *Loader) error {
		key = os.ExpandEnv(key)
		format, err := detectFormat(key)
		if err != nil {
			return NewError("consul-source", "detect-format", err)
		}
		return WithConsulAs(key, format)(l)
	}
}

// WithConsulAs adds a Consul key decoded with an explicit codec.
func WithConsulAs(key string, codecType codec.Type) Option {
	return func(l *Loader) error {
		if l.consul == nil && os.Getenv("CONSUL_HTTP_ADDR") == "" {
			return nil
		}
		decoder, err := codec.GetDecoder(codecType)
		if err != nil {
			return NewError("consul-source", "get-decoder", err)
		}
		src, err := source.NewConsul(os.ExpandEnv(key), decoder, l.consul)
		if err != nil {
			return NewError("consul-source", "connect", err)
		}
		l.sources = append(l.sources, src)
		return nil
	}
}

// NewLoader applies opts. Errors from all options are joined.
func NewLoader(opts ...Option) (*Loader, error) {
	l := &Loader{}
	var errs []error
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(l); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return l, nil
}

// Load builds a loader from opts and loads it once.
func Load(ctx context.Context, opts ...Option) (Config, error) {
	l, err := NewLoader(opts...)
	if err != nil {
		return Config{}, err
	}
	return l.Load(ctx)
}

// Load reads every source, merges them, binds the result onto [Default]
// and validates it.
func (l *Loader) Load(ctx context.Context) (Config, error) {
	values, err := l.merge(ctx)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := bind(values, &cfg); err != nil {
		return Config{}, NewError("binding", "bind", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// merge loads the sources in order and merges them with override semantics.
func (l *Loader) merge(ctx context.Context) (map[string]any, error) {
	merged := make(map[string]any)
	for i, src := range l.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		conf, err := src.Load(ctx)
		if err != nil {
			return nil, NewError(fmt.Sprintf("source[%d]", i), "load", err)
		}
		if conf == nil {
			continue
		}

		if err := mergo.Map(&merged, normalizeMapKeys(conf), mergo.WithOverride); err != nil {
			return nil, NewError(fmt.Sprintf("source[%d]", i), "merge", err)
		}
	}
	return merged, nil
}

// bind decodes values onto target. Fields absent from values keep their
// current contents, which is how defaults survive.
func bind(values map[string]any, target *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "config",
		WeaklyTypedInput: true,
		Result:           target,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(values); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}
	return nil
}

// normalizeMapKeys lowercases keys recursively, including maps inside lists.
func normalizeMapKeys(m map[string]any) map[string]any {
	normalized := make(map[string]any, len(m))
	for k, v := range m {
		normalized[strings.ToLower(k)] = normalizeValue(v)
	}
	return normalized
}

func normalizeValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return normalizeMapKeys(x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = normalizeValue(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = normalizeMapKeys(item)
		}
		return out
	default:
		return v
	}
}
