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

// Package ast holds the set of types used in the abstract syntax tree
// representation of a parsed kernel program.
// Nodes are produced by the parser and consumed by the semantic passes; they
// carry no semantic information themselves.
package ast

import "github.com/google/vecc/vecc/diag"

// Node is the interface to any object that can be used in the syntax tree.
type Node interface {
	isNode() // A dummy function that's implemented by all ast node types.

	// Pos returns the position the node was parsed at.
	Pos() diag.Pos
}

// Loc is embedded by every node to carry its source position.
type Loc struct {
	At diag.Pos
}

// Pos implements the position half of Node.
func (l Loc) Pos() diag.Pos { return l.At }

// In builds a Loc. It exists so tree-building code reads naturally:
//
//	&ast.BinaryOp{Loc: ast.In(pos), ...}
func In(p diag.Pos) Loc { return Loc{At: p} }

// Identifier holds a parsed identifier.
type Identifier struct {
	Loc
	Value string // the identifier text
}

func (*Identifier) isNode() {}
