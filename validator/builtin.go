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

package validator

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	playground "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Built-in type names.
const (
	TypeString       = "string"
	TypeAny          = "any"
	TypeNumber       = "number"
	TypeInt          = "int"
	TypeFloat        = "float"
	TypeBoolean      = "boolean"
	TypeEmail        = "email"
	TypeUUID         = "uuid"
	TypeSlug         = "slug"
	TypeHex          = "hex"
	TypeAlpha        = "alpha"
	TypeAlphanumeric = "alphanumeric"
	TypeDate         = "date"
	TypeDateTime     = "datetime"
	TypePhone        = "phone"
	TypeIP           = "ip"
	TypeVersion      = "version"
)

var (
	intPattern     = regexp.MustCompile(`^[-+]?\d+$`)
	decimalPattern = regexp.MustCompile(`^[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?$`)
	slugPattern    = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	versionPattern = regexp.MustCompile(`^v?\d+(?:\.\d+){0,2}$`)

	// tags validates single values against go-playground tags.
	// Validate instances are safe for concurrent use and cache parsed tags.
	tags = playground.New()
)

// builtins returns a fresh copy of the built-in catalog.
func builtins() map[string]Validator {
	return map[string]Validator{
		TypeString:       {Test: acceptAll, Generic: true},
		TypeAny:          {Test: acceptAll, Generic: true},
		TypeNumber:       {Test: isDecimal, Convert: toFloat},
		TypeFloat:        {Test: isDecimal, Convert: toFloat},
		TypeInt:          {Test: isInt, Convert: toInt},
		TypeBoolean:      {Test: isBool, Convert: toBool},
		TypeEmail:        {Test: tag("email")},
		TypeUUID:         {Test: isUUID},
		TypeSlug:         {Test: slugPattern.MatchString},
		TypeHex:          {Test: tag("hexadecimal")},
		TypeAlpha:        {Test: tag("alpha")},
		TypeAlphanumeric: {Test: tag("alphanum")},
		TypeDate:         {Test: layout(time.DateOnly)},
		TypeDateTime:     {Test: layout(time.RFC3339)},
		TypePhone:        {Test: tag("e164")},
		TypeIP:           {Test: tag("ip")},
		TypeVersion:      {Test: versionPattern.MatchString},
	}
}

func acceptAll(string) bool { return true }

// tag adapts a go-playground validation tag into a predicate.
func tag(name string) func(string) bool {
	return func(s string) bool {
		return tags.Var(s, name) == nil
	}
}

// layout accepts values that parse with the given time layout.
func layout(format string) func(string) bool {
	return func(s string) bool {
		_, err := time.Parse(format, s)
		return err == nil
	}
}

// isUUID accepts the canonical 36-character hyphenated form only.
// uuid.Parse also accepts URN and braced forms, which are not path-friendly.
func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func isInt(s string) bool {
	if !intPattern.MatchString(s) {
		return false
	}
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func toInt(s string) (any, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q (%w)", ErrInvalidValue, s, err)
	}
	return n, nil
}

func isDecimal(s string) bool {
	if !decimalPattern.MatchString(s) {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsInf(f, 0)
}

func toFloat(s string) (any, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q (%w)", ErrInvalidValue, s, err)
	}
	return f, nil
}

func isBool(s string) bool {
	switch s {
	case "true", "false", "1", "0":
		return true
	}
	return false
}

func toBool(s string) (any, error) {
	switch s {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return nil, fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, s)
}
