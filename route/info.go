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

package route

import (
	"cmp"
	"strings"
)

// Info describes a registered route.
type Info struct {
	Method  string      `json:"method"`
	Pattern string      `json:"pattern"`
	Static  bool        `json:"static"`
	Params  []ParamInfo `json:"params,omitempty"`
}

// ParamInfo describes one parameter of a registered route.
type ParamInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Known    bool   `json:"known"` // type resolved to a registered validator
	Wildcard bool   `json:"wildcard,omitempty"`
}

// String returns "METHOD pattern".
func (i Info) String() string {
	return i.Method + " " + i.Pattern
}

// CompareInfo orders routes by pattern, then method.
func CompareInfo(a, b Info) int {
	if c := strings.Compare(a.Pattern, b.Pattern); c != 0 {
		return c
	}
	return cmp.Compare(a.Method, b.Method)
}
