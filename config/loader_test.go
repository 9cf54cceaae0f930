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

//go:build !integration

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/consul/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/typedrouter/config/codec"
)

const routesYAML = `
strict_types: true
cache:
  capacity: 500
  ttl: 5m
routes:
  - method: GET
    pattern: /users/:id=int
    name: users.show
  - method: post
    pattern: /users
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// fakeKV is an in-memory ConsulKV.
type fakeKV struct {
	pairs map[string][]byte
	err   error
}

func (f *fakeKV) Get(key string, _ *api.QueryOptions) (*api.KVPair, *api.QueryMeta, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	v, ok := f.pairs[key]
	if !ok {
		return nil, &api.QueryMeta{}, nil
	}
	return &api.KVPair{Key: key, Value: v}, &api.QueryMeta{LastIndex: 1}, nil
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()
	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 1000, cfg.Cache.Capacity)
	assert.Zero(t, cfg.Cache.TTL)
	assert.False(t, cfg.StrictTypes)
}

func TestLoad_YAMLFile(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "router.yaml", routesYAML)

	cfg, err := Load(context.Background(), WithFile(path))
	require.NoError(t, err)

	assert.True(t, cfg.StrictTypes)
	assert.True(t, cfg.Cache.Enabled, "default kept for absent key")
	assert.Equal(t, 500, cfg.Cache.Capacity)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	require.Len(t, cfg.Routes, 2)
	assert.Equal(t, Route{Method: "GET", Pattern: "/users/:id=int", Name: "users.show"}, cfg.Routes[0])
	assert.Equal(t, "POST /users", cfg.Routes[1].ID())
}

func TestLoad_TOMLAndJSON(t *testing.T) {
	t.Parallel()

	tomlPath := writeFile(t, "router.toml", `
strict_types = true

[cache]
enabled = false

[[routes]]
method = "GET"
pattern = "/health"
`)
	jsonPath := writeFile(t, "router.json", `{"cache": {"ttl": "30s", "capacity": 10}}`)

	cfg, err := Load(context.Background(), WithFile(tomlPath), WithFile(jsonPath))
	require.NoError(t, err)

	assert.True(t, cfg.StrictTypes)
	assert.False(t, cfg.Cache.Enabled, "explicit false overrides the default")
	assert.Equal(t, 10, cfg.Cache.Capacity)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	require.Len(t, cfg.Routes, 1)
	assert.Equal(t, "/health", cfg.Routes[0].Pattern)
}

func TestLoad_LaterSourcesOverride(t *testing.T) {
	t.Parallel()

	cfg, err := Load(context.Background(),
		WithContent([]byte("cache:\n  capacity: 100\n  ttl: 1m\n"), codec.TypeYAML),
		WithContent([]byte(`{"CACHE": {"Capacity": 200}}`), codec.TypeJSON),
	)
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.Cache.Capacity, "keys are case-insensitive")
	assert.Equal(t, time.Minute, cfg.Cache.TTL, "untouched nested keys survive the merge")
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("TESTROUTER_CACHE_CAPACITY", "42")
	t.Setenv("TESTROUTER_CACHE_TTL", "2m")
	t.Setenv("TESTROUTER_CACHE_SWEEP_INTERVAL", "10s")
	t.Setenv("TESTROUTER_STRICT_TYPES", "true")

	cfg, err := Load(context.Background(),
		WithContent([]byte(routesYAML), codec.TypeYAML),
		WithEnv("TESTROUTER_"),
	)
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.Cache.Capacity)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 10*time.Second, cfg.Cache.SweepInterval)
	assert.True(t, cfg.StrictTypes)
	assert.Len(t, cfg.Routes, 2)
}

func TestLoad_Consul(t *testing.T) {
	t.Parallel()
	kv := &fakeKV{pairs: map[string][]byte{
		"router/config.yaml":  []byte("cache:\n  capacity: 64\n"),
		"router/strict_types": []byte("true"),
	}}

	cfg, err := Load(context.Background(),
		WithConsulKV(kv),
		WithConsul("router/config.yaml"),
		WithConsulAs("router/strict_types", codec.TypeCasterBool),
		WithConsulAs("router/absent.json", codec.TypeJSON),
	)
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.Cache.Capacity)
	assert.True(t, cfg.StrictTypes)
}

func TestLoad_ConsulSkippedWithoutAddress(t *testing.T) {
	t.Setenv("CONSUL_HTTP_ADDR", "")
	l, err := NewLoader(WithConsul("router/config.yaml"))
	require.NoError(t, err)
	assert.Empty(t, l.sources)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unknown extension", func(t *testing.T) {
		t.Parallel()
		_, err := Load(context.Background(), WithFile("router.ini"))
		var cerr *Error
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "detect-format", cerr.Operation)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := Load(context.Background(), WithFile(filepath.Join(t.TempDir(), "nope.yaml")))
		var cerr *Error
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "source[0]", cerr.Source)
		assert.Equal(t, "load", cerr.Operation)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("source failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		_, err := Load(context.Background(), WithSource(SourceFunc(func(context.Context) (map[string]any, error) {
			return nil, boom
		})))
		require.ErrorIs(t, err, boom)
	})

	t.Run("consul failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("consul down")
		_, err := Load(context.Background(), WithConsulKV(&fakeKV{err: boom}), WithConsul("router/config.yaml"))
		require.ErrorIs(t, err, boom)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()
		_, err := Load(context.Background(), WithContent([]byte(`{"cache": {"capacity": 0}}`), codec.TypeJSON))
		require.ErrorIs(t, err, ErrInvalidValue)
		var cerr *Error
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "cache.capacity", cerr.Field)
	})

	t.Run("undecodable value", func(t *testing.T) {
		t.Parallel()
		_, err := Load(context.Background(), WithContent([]byte(`{"cache": {"ttl": "soon"}}`), codec.TypeJSON))
		var cerr *Error
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "bind", cerr.Operation)
	})

	t.Run("nil source", func(t *testing.T) {
		t.Parallel()
		_, err := NewLoader(WithSource(nil))
		require.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Load(ctx, WithContent([]byte(`{}`), codec.TypeJSON))
		require.ErrorIs(t, err, context.Canceled)
	})
}
