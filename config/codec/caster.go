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

	"github.com/spf13/cast"
)

// CastType names the Go type a single scalar value is cast to.
type CastType string

// Supported cast types.
const (
	CastTypeBool     CastType = "bool"
	CastTypeDuration CastType = "duration"
	CastTypeFloat64  CastType = "float64"
	CastTypeInt64    CastType = "int64"
	CastTypeInt      CastType = "int"
	CastTypeString   CastType = "string"
)

// Registered decoder names of the casters, e.g. for a Consul key holding a
// bare "true" or "30s".
const (
	TypeCasterBool     Type = "caster-bool"
	TypeCasterDuration Type = "caster-duration"
	TypeCasterFloat64  Type = "caster-float64"
	TypeCasterInt64    Type = "caster-int64"
	TypeCasterInt      Type = "caster-int"
	TypeCasterString   Type = "caster-string"
)

var casts = map[CastType]func(any) (any, error){
	CastTypeBool:     func(v any) (any, error) { return cast.ToBoolE(v) },
	CastTypeDuration: func(v any) (any, error) { return cast.ToDurationE(v) },
	CastTypeFloat64:  func(v any) (any, error) { return cast.ToFloat64E(v) },
	CastTypeInt64:    func(v any) (any, error) { return cast.ToInt64E(v) },
	CastTypeInt:      func(v any) (any, error) { return cast.ToIntE(v) },
	CastTypeString:   func(v any) (any, error) { return cast.ToStringE(v) },
}

func init() {
	for _, ct := range []CastType{CastTypeBool, CastTypeDuration, CastTypeFloat64, CastTypeInt64, CastTypeInt, CastTypeString} {
		RegisterDecoder(Type("caster-"+string(ct)), NewCaster(ct))
	}
}

// CasterCodec decodes a single scalar into *any.
type CasterCodec struct {
	castType CastType
}

// NewCaster returns a decoder casting to castType.
func NewCaster(castType CastType) *CasterCodec {
	return &CasterCodec{castType: castType}
}

// Decode casts data into the value pointed to by v, which must be *any.
func (c *CasterCodec) Decode(data []byte, v any) error {
	out, ok := v.(*any)
	if !ok {
		return fmt.Errorf("CasterCodec.Decode: expected *any, got %T", v)
	}
	fn, ok := casts[c.castType]
	if !ok {
		return fmt.Errorf("unsupported cast type %q", c.castType)
	}
	val, err := fn(string(data))
	if err != nil {
		return err
	}
	*out = val
	return nil
}
