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

package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltins_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ  string
		good []string
		bad  []string
	}{
		{TypeNumber, []string{"42", "-3.5", ".5", "1e3", "+7"}, []string{"abc", "4 2", "", "1e999"}},
		{TypeFloat, []string{"3.14", "0", "-0.001"}, []string{"pi", "1.2.3"}},
		{TypeInt, []string{"0", "42", "-17"}, []string{"4.2", "x", "99999999999999999999"}},
		{TypeBoolean, []string{"true", "false", "1", "0"}, []string{"maybe", "TRUE", "yes"}},
		{TypeEmail, []string{"ann@example.com"}, []string{"ann", "ann@"}},
		{TypeUUID, []string{"123e4567-e89b-12d3-a456-426614174000"}, []string{"123e4567", "urn:uuid:123e4567-e89b-12d3-a456-426614174000", "{123e4567-e89b-12d3-a456-426614174000}"}},
		{TypeSlug, []string{"hello-world", "a1"}, []string{"Hello", "a--b", "-a"}},
		{TypeHex, []string{"deadBEEF", "0x1f"}, []string{"xyz"}},
		{TypeAlpha, []string{"abc"}, []string{"abc1"}},
		{TypeAlphanumeric, []string{"abc123"}, []string{"abc-123"}},
		{TypeDate, []string{"2024-02-29"}, []string{"2023-02-29", "2024/01/01"}},
		{TypeDateTime, []string{"2024-01-02T15:04:05Z", "2024-01-02T15:04:05+02:00"}, []string{"2024-01-02"}},
		{TypePhone, []string{"+14155552671"}, []string{"4155552671", "+1-415"}},
		{TypeIP, []string{"10.0.0.1", "::1"}, []string{"10.0.0.256", "host"}},
		{TypeVersion, []string{"1", "v1.2", "1.2.3"}, []string{"1.2.3.4", "v", "latest"}},
		{TypeString, []string{"anything", ""}, nil},
		{TypeAny, []string{"anything"}, nil},
	}

	reg := Default()
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			t.Parallel()
			for _, s := range tt.good {
				assert.True(t, reg.Validate(s, tt.typ), "%s should accept %q", tt.typ, s)
			}
			for _, s := range tt.bad {
				assert.False(t, reg.Validate(s, tt.typ), "%s should reject %q", tt.typ, s)
			}
		})
	}
}

func TestBuiltins_Convert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		typ   string
		value string
		want  any
	}{
		{"number to float64", TypeNumber, "42", float64(42)},
		{"negative float", TypeFloat, "-1.5", -1.5},
		{"int to int64", TypeInt, "42", int64(42)},
		{"true", TypeBoolean, "true", true},
		{"one", TypeBoolean, "1", true},
		{"false", TypeBoolean, "false", false},
		{"zero", TypeBoolean, "0", false},
		{"uuid passes through", TypeUUID, "123e4567-e89b-12d3-a456-426614174000", "123e4567-e89b-12d3-a456-426614174000"},
		{"email passes through", TypeEmail, "ann@example.com", "ann@example.com"},
		{"string passes through", TypeString, "bob", "bob"},
	}

	reg := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := reg.Convert(tt.value, tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuiltins_ConvertInvalid(t *testing.T) {
	t.Parallel()
	reg := Default()

	_, err := reg.Convert("maybe", TypeBoolean)
	require.ErrorIs(t, err, ErrInvalidValue)

	_, err = reg.Convert("abc", TypeInt)
	require.ErrorIs(t, err, ErrInvalidValue)
}

func TestBuiltins_Generic(t *testing.T) {
	t.Parallel()
	reg := Default()

	for _, name := range reg.Names() {
		v, ok := reg.Lookup(name)
		require.True(t, ok)
		want := name == TypeString || name == TypeAny
		assert.Equal(t, want, v.Generic, name)
	}
}
