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

package sem

import "github.com/google/vecc/vecc/diag"

// StorageClass says how a symbol's storage is provided.
type StorageClass int

const (
	// ClassAuto symbols live in function or gang-local storage.
	ClassAuto StorageClass = iota
	// ClassStatic symbols keep their value across calls.
	ClassStatic
	// ClassExtern symbols are defined in another compilation unit.
	ClassExtern
	// ClassTypedef symbols name a type, not storage.
	ClassTypedef
)

func (c StorageClass) String() string {
	switch c {
	case ClassAuto:
		return "auto"
	case ClassStatic:
		return "static"
	case ClassExtern:
		return "extern"
	case ClassTypedef:
		return "typedef"
	default:
		return "?"
	}
}

// Symbol binds a name to a value or function.
// Storage addresses are opaque handles owned by the code emitter; the
// semantic passes only track the binding.
type Symbol struct {
	Name    string
	At      diag.Pos
	Type    Type
	Storage StorageClass
	// Value is the compile time constant value of the symbol, or nil.
	Value Expression
	// Enclosing is the function symbol this symbol is declared inside, or
	// nil for globals.
	Enclosing *Symbol
}

// FunctionType returns the symbol's type as a function signature, or nil if
// the symbol does not name a function.
func (s *Symbol) FunctionType() *Function {
	f, _ := s.Type.(*Function)
	return f
}
