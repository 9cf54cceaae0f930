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

package radix

import (
	"errors"

	"rivaas.dev/typedrouter/route"
)

var (
	// ErrNilHandler is returned when inserting a route without a handler.
	ErrNilHandler = errors.New("handler must not be nil")

	// ErrUnknownParamType is returned in strict mode for parameter types the
	// registry does not know.
	ErrUnknownParamType = errors.New("unknown parameter type")

	// ErrInvalidPattern is returned for malformed patterns.
	ErrInvalidPattern = route.ErrInvalidPattern
)
