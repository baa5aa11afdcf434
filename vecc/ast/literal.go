// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ast

// Number represents a numeric constant.
// The parser keeps the value in string form; the checker decides the type
// from the suffix and the magnitude.
type Number struct {
	Loc
	Value string // the string representation of the constant
}

func (*Number) isNode() {}

// Bool is used for the "true" and "false" keywords.
type Bool struct {
	Loc
	Value bool // the value of the boolean
}

func (*Bool) isNode() {}

// Null represents the "NULL" pointer literal.
type Null struct {
	Loc
}

func (*Null) isNode() {}
