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

package radix

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"rivaas.dev/typedrouter/validator"
)

// TreeTestSuite tests insertion and matching.
type TreeTestSuite struct {
	suite.Suite

	tree *Tree
}

func (suite *TreeTestSuite) SetupTest() {
	suite.tree = New(validator.Default())
}

func (suite *TreeTestSuite) insert(pattern string, handler any) Registration {
	reg, err := suite.tree.Insert(pattern, handler)
	suite.Require().NoError(err)
	return reg
}

// TestBasicRoutes tests literal and untyped parameter routes.
func (suite *TreeTestSuite) TestBasicRoutes() {
	for _, p := range []string{"/", "/users", "/users/:id", "/users/:id/posts", "/users/:id/posts/:post_id", "/posts/:id"} {
		suite.insert(p, p)
	}

	tests := []struct {
		path    string
		pattern string
		params  map[string]any
	}{
		{"/", "/", map[string]any{}},
		{"/users", "/users", map[string]any{}},
		{"/users/123", "/users/:id", map[string]any{"id": "123"}},
		{"/users/123/posts", "/users/:id/posts", map[string]any{"id": "123"}},
		{"/users/123/posts/456", "/users/:id/posts/:post_id", map[string]any{"id": "123", "post_id": "456"}},
		{"/posts/789", "/posts/:id", map[string]any{"id": "789"}},
	}

	for _, tt := range tests {
		suite.Run(tt.path, func() {
			m, ok := suite.tree.Search(tt.path)
			suite.Require().True(ok)
			suite.Equal(tt.pattern, m.Handler)
			suite.Equal(tt.pattern, m.Pattern)
			suite.Equal(tt.params, m.Params.Map())
		})
	}

	for _, path := range []string{"/nonexistent", "/users/123/posts/456/comments", "/posts"} {
		_, ok := suite.tree.Search(path)
		suite.False(ok, path)
	}
}

// TestTypeDisambiguation tests that same-shaped patterns with different types coexist.
func (suite *TreeTestSuite) TestTypeDisambiguation() {
	suite.insert("/users/:id=string", "string")
	suite.insert("/users/:id=number", "number")

	m, ok := suite.tree.Search("/users/42")
	suite.Require().True(ok)
	suite.Equal("number", m.Handler)
	suite.Equal(float64(42), m.Params.Value("id"))

	m, ok = suite.tree.Search("/users/bob")
	suite.Require().True(ok)
	suite.Equal("string", m.Handler)
	suite.Equal("bob", m.Params.Value("id"))
}

// TestRankIndependentOfOrder tests that specific types win regardless of registration order.
func (suite *TreeTestSuite) TestRankIndependentOfOrder() {
	suite.insert("/items/:v", "untyped")
	suite.insert("/items/:v=any", "any")
	suite.insert("/items/:v=uuid", "uuid")
	suite.insert("/items/:v=int", "int")

	m, ok := suite.tree.Search("/items/7")
	suite.Require().True(ok)
	suite.Equal("int", m.Handler)
	suite.Equal(int64(7), m.Params.Value("v"))

	m, ok = suite.tree.Search("/items/123e4567-e89b-12d3-a456-426614174000")
	suite.Require().True(ok)
	suite.Equal("uuid", m.Handler)

	// untyped and any share a rank; the first registered wins.
	m, ok = suite.tree.Search("/items/hello")
	suite.Require().True(ok)
	suite.Equal("untyped", m.Handler)
}

// TestBooleanConversion tests boolean parameter coercion.
func (suite *TreeTestSuite) TestBooleanConversion() {
	suite.insert("/flags/:on=boolean", "flag")

	m, ok := suite.tree.Search("/flags/true")
	suite.Require().True(ok)
	suite.Equal(true, m.Params.Value("on"))

	m, ok = suite.tree.Search("/flags/0")
	suite.Require().True(ok)
	suite.Equal(false, m.Params.Value("on"))

	_, ok = suite.tree.Search("/flags/maybe")
	suite.False(ok)
}

// TestNestedTypedParams tests multi-parameter nested routes.
func (suite *TreeTestSuite) TestNestedTypedParams() {
	suite.insert("/orgs/:orgId=uuid/projects/:projectId=int/tasks/:slug=string", "task")

	const org = "123e4567-e89b-12d3-a456-426614174000"
	m, ok := suite.tree.Search("/orgs/" + org + "/projects/12/tasks/fix-bug")
	suite.Require().True(ok)
	suite.Equal(map[string]any{
		"orgId":     org,
		"projectId": int64(12),
		"slug":      "fix-bug",
	}, m.Params.Map())
	suite.Equal([]string{"orgId", "projectId", "slug"}, m.Params.Names())

	_, ok = suite.tree.Search("/orgs/not-a-uuid/projects/12/tasks/fix-bug")
	suite.False(ok)
	_, ok = suite.tree.Search("/orgs/" + org + "/projects/twelve/tasks/fix-bug")
	suite.False(ok)
}

// TestBacktracking tests that a dead-end branch falls back to the next candidate.
func (suite *TreeTestSuite) TestBacktracking() {
	suite.insert("/users/:id=int/profile", "profile")
	suite.insert("/users/:name/settings", "settings")
	suite.insert("/users/admin/dashboard", "dashboard")

	m, ok := suite.tree.Search("/users/42/settings")
	suite.Require().True(ok)
	suite.Equal("settings", m.Handler)
	suite.Equal(map[string]any{"name": "42"}, m.Params.Map(), "failed branch must not leak bindings")

	m, ok = suite.tree.Search("/users/admin/settings")
	suite.Require().True(ok)
	suite.Equal("settings", m.Handler)

	m, ok = suite.tree.Search("/users/admin/dashboard")
	suite.Require().True(ok)
	suite.Equal("dashboard", m.Handler)

	m, ok = suite.tree.Search("/users/42/profile")
	suite.Require().True(ok)
	suite.Equal("profile", m.Handler)
	suite.Equal(int64(42), m.Params.Value("id"))
}

// TestLiteralBeforeParam tests literal priority over parameters.
func (suite *TreeTestSuite) TestLiteralBeforeParam() {
	suite.insert("/users/:id/edit", "param")
	suite.insert("/users/me/edit", "literal")

	m, ok := suite.tree.Search("/users/me/edit")
	suite.Require().True(ok)
	suite.Equal("literal", m.Handler)

	m, ok = suite.tree.Search("/users/you/edit")
	suite.Require().True(ok)
	suite.Equal("param", m.Handler)
}

// TestWildcard tests trailing wildcard capture.
func (suite *TreeTestSuite) TestWildcard() {
	suite.insert("/files/*path", "files")
	suite.insert("/static/*", "static")
	suite.insert("/files/readme", "readme")

	m, ok := suite.tree.Search("/files/a/b/c.txt")
	suite.Require().True(ok)
	suite.Equal("files", m.Handler)
	suite.Equal("a/b/c.txt", m.Params.Value("path"))

	m, ok = suite.tree.Search("/static/css/site.css")
	suite.Require().True(ok)
	suite.Equal("css/site.css", m.Params.Value("*"))

	m, ok = suite.tree.Search("/files/readme")
	suite.Require().True(ok)
	suite.Equal("readme", m.Handler)

	_, ok = suite.tree.Search("/static")
	suite.False(ok, "wildcard requires at least one segment")
}

// TestWildcardAfterParams tests that wildcard is tried after params fail.
func (suite *TreeTestSuite) TestWildcardAfterParams() {
	suite.insert("/docs/:page=int", "page")
	suite.insert("/docs/*", "catchall")

	m, ok := suite.tree.Search("/docs/3")
	suite.Require().True(ok)
	suite.Equal("page", m.Handler)

	m, ok = suite.tree.Search("/docs/intro")
	suite.Require().True(ok)
	suite.Equal("catchall", m.Handler)

	m, ok = suite.tree.Search("/docs/3/more")
	suite.Require().True(ok)
	suite.Equal("catchall", m.Handler)
	suite.Equal("3/more", m.Params.Value("*"))
}

// TestStaticOverwrite tests last-write-wins for static routes.
func (suite *TreeTestSuite) TestStaticOverwrite() {
	reg := suite.insert("/health", "h1")
	suite.False(reg.Replaced)
	suite.True(reg.Info.Static)

	reg = suite.insert("/health/", "h2")
	suite.True(reg.Replaced)

	m, ok := suite.tree.Search("/health")
	suite.Require().True(ok)
	suite.Equal("h2", m.Handler)
	suite.Zero(m.Params.Len())
	suite.Equal(1, suite.tree.Len())
}

// TestDynamicOverwrite tests last-write-wins for parameter routes.
func (suite *TreeTestSuite) TestDynamicOverwrite() {
	suite.insert("/users/:id=int", "v1")
	reg := suite.insert("/users/:id=int", "v2")
	suite.True(reg.Replaced)

	m, ok := suite.tree.Search("/users/1")
	suite.Require().True(ok)
	suite.Equal("v2", m.Handler)
	suite.Equal(1, suite.tree.Len())
}

// TestPathNormalization tests slash handling on runtime paths.
func (suite *TreeTestSuite) TestPathNormalization() {
	suite.insert("/api/v1/users/:id", "user")
	suite.insert("/api/v1/health", "health")

	for _, path := range []string{"/api/v1/users/7/", "//api//v1/users/7", "api/v1/users/7"} {
		m, ok := suite.tree.Search(path)
		suite.Require().True(ok, path)
		suite.Equal("user", m.Handler)
	}
	m, ok := suite.tree.Search("/api/v1/health/")
	suite.Require().True(ok)
	suite.Equal("health", m.Handler)
}

// TestUnknownTypePermissive tests that unknown types accept any value.
func (suite *TreeTestSuite) TestUnknownTypePermissive() {
	reg := suite.insert("/colors/:c=color", "color")
	suite.Equal([]string{"color"}, reg.UnknownTypes())
	suite.False(reg.Info.Params[0].Known)

	m, ok := suite.tree.Search("/colors/red")
	suite.Require().True(ok)
	suite.Equal("red", m.Params.Value("c"))
}

// TestCustomValidator tests validators registered by the host.
func (suite *TreeTestSuite) TestCustomValidator() {
	reg := validator.Default()
	reg.MustRegister("even", validator.Validator{
		Test: func(s string) bool {
			return len(s) > 0 && strings.ContainsAny(s[len(s)-1:], "02468")
		},
	})
	tree := New(reg)
	_, err := tree.Insert("/n/:v=even", "even")
	suite.Require().NoError(err)
	_, err = tree.Insert("/n/:v", "other")
	suite.Require().NoError(err)

	m, _ := tree.Search("/n/14")
	suite.Equal("even", m.Handler)
	m, _ = tree.Search("/n/13")
	suite.Equal("other", m.Handler)
}

// TestRoutes tests route introspection.
func (suite *TreeTestSuite) TestRoutes() {
	suite.insert("/b/:id=int", "b")
	suite.insert("/a", "a")
	suite.insert("/c/*rest", "c")

	routes := suite.tree.Routes()
	suite.Require().Len(routes, 3)
	suite.Equal("/a", routes[0].Pattern)
	suite.True(routes[0].Static)
	suite.Equal("/b/:id=int", routes[1].Pattern)
	suite.Equal("int", routes[1].Params[0].Type)
	suite.True(routes[1].Params[0].Known)
	suite.True(routes[2].Params[0].Wildcard)
}

// TestSearchCounter tests search instrumentation.
func (suite *TreeTestSuite) TestSearchCounter() {
	suite.insert("/a", "a")
	suite.tree.Search("/a")
	suite.tree.Search("/missing")
	suite.Equal(uint64(2), suite.tree.Searches())
}

func TestTreeTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(TreeTestSuite))
}

func TestTree_InsertErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		strict  bool
		pattern string
		handler any
		wantErr error
	}{
		{name: "nil handler", pattern: "/a", wantErr: ErrNilHandler},
		{name: "empty param name", pattern: "/a/:", handler: "h", wantErr: ErrInvalidPattern},
		{name: "wildcard not last", pattern: "/a/*/b", handler: "h", wantErr: ErrInvalidPattern},
		{name: "strict unknown type", strict: true, pattern: "/a/:x=color", handler: "h", wantErr: ErrUnknownParamType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tree := New(nil, WithStrictTypes(tt.strict))
			_, err := tree.Insert(tt.pattern, tt.handler)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, tree.Len())
			assert.Empty(t, tree.Routes())
		})
	}
}

func TestTree_StrictRejectsBeforeMutation(t *testing.T) {
	t.Parallel()
	tree := New(nil, WithStrictTypes(true))

	_, err := tree.Insert("/a/:x=int/b/:y=color", "h")
	require.ErrorIs(t, err, ErrUnknownParamType)

	_, ok := tree.Search("/a/1/b/red")
	assert.False(t, ok)
	assert.Empty(t, tree.root.params)
	assert.Empty(t, tree.root.edges)
}

func TestTree_WithMethod(t *testing.T) {
	t.Parallel()
	tree := New(nil, WithMethod("GET"))
	reg, err := tree.Insert("/x", "h")
	require.NoError(t, err)
	assert.Equal(t, "GET", reg.Info.Method)
	assert.Equal(t, "GET /x", tree.Routes()[0].String())
}

func TestTree_ManyStaticRoutes(t *testing.T) {
	t.Parallel()
	tree := New(nil, WithBloomFilter(64, 3))
	for i := range 100 {
		_, err := tree.Insert(fmt.Sprintf("/static/%d", i), i)
		require.NoError(t, err)
	}
	for i := range 100 {
		m, ok := tree.Search(fmt.Sprintf("/static/%d", i))
		require.True(t, ok)
		assert.Equal(t, i, m.Handler)
	}
	_, ok := tree.Search("/static/100")
	assert.False(t, ok)
}

func TestTree_ConcurrentSearch(t *testing.T) {
	t.Parallel()
	tree := New(nil)
	_, err := tree.Insert("/users/:id=int", "int")
	require.NoError(t, err)
	_, err = tree.Insert("/users/:name", "name")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				m, ok := tree.Search(fmt.Sprintf("/users/%d", i*100+j))
				assert.True(t, ok)
				assert.Equal(t, "int", m.Handler)
			}
		}()
	}
	wg.Wait()
}

func BenchmarkTree_SearchTyped(b *testing.B) {
	tree := New(nil)
	for i := range 50 {
		_, _ = tree.Insert(fmt.Sprintf("/r%d/:id=int/items/:item=uuid", i), i)
	}
	b.ReportAllocs()
	for b.Loop() {
		tree.Search("/r25/42/items/123e4567-e89b-12d3-a456-426614174000")
	}
}
