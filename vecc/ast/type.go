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

// Variability is a syntactic uniform/varying qualifier on a type reference.
type Variability int

const (
	// Unqualified means no variability keyword was written; the checker
	// applies the language default.
	Unqualified Variability = iota
	// Uniform is the "uniform" keyword.
	Uniform
	// Varying is the "varying" keyword.
	Varying
)

// Type is the interface to any syntactic type reference.
// Type references are resolved to semantic types by the checker using the
// symbol table's type namespace.
type Type interface {
	Node
	isType() // A dummy function that's implemented by all ast type refs.
}

// TypeName references a type by name, with optional qualifiers.
// The name is either a builtin type name, an enum or struct name, or a
// typedef alias.
type TypeName struct {
	Loc
	Variability Variability // the written uniform/varying qualifier
	Const       bool        // whether the "const" qualifier was written
	Name        *Identifier // the name of the referenced type
}

func (*TypeName) isNode() {}
func (*TypeName) isType() {}

// PointerTo references a pointer type «To *».
type PointerTo struct {
	Loc
	Variability Variability // the variability of the pointer itself
	Const       bool        // whether the pointer is const
	To          Type        // the pointee type reference
}

func (*PointerTo) isNode() {}
func (*PointerTo) isType() {}

// ArrayOf references an array type «To [Count]».
// A zero count references an unsized array.
type ArrayOf struct {
	Loc
	To    Type // the element type reference
	Count int  // the element count, 0 for unsized
}

func (*ArrayOf) isNode() {}
func (*ArrayOf) isType() {}

// VectorOf references a short vector type «To <Count>».
type VectorOf struct {
	Loc
	To    Type // the element type reference
	Count int  // the element count
}

func (*VectorOf) isNode() {}
func (*VectorOf) isType() {}
