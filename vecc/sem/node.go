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

// Package sem holds the typed, checked representation of a kernel program:
// the type lattice, the symbol table and the semantic expression graph the
// checking passes produce.
package sem

// Node is the interface to any object in the semantic graph.
type Node interface {
	isNode() // A dummy function that's implemented by all semantic types.
}

// Expression represents anything that can act as an expression in the kernel
// language. It must be able to correctly report the type of the value it
// would produce if executed.
type Expression interface {
	Node
	isExpression() // A dummy function that's implemented by all expressions.

	// ExpressionType returns the expression value type, or nil if a problem
	// was already reported for this expression.
	ExpressionType() Type
}

// LValue is implemented by expressions that designate storage.
type LValue interface {
	Expression

	// LValueType returns the pointer-to-target type of the designated
	// storage.
	LValueType() Type

	// BaseSymbol returns the root variable the storage ultimately belongs
	// to, or nil if it cannot be determined.
	BaseSymbol() *Symbol
}

// Invalid is used in place of an expression when a problem was already
// reported. Passes propagate it without reporting again.
type Invalid struct {
	// Partial is the incomplete node this invalid stands in for, if any.
	Partial Node
}

func (Invalid) isNode()       {}
func (Invalid) isExpression() {}

// ExpressionType implements Expression, returning nil.
func (Invalid) ExpressionType() Type { return nil }

// IsInvalid returns true if n is the Invalid sentinel or a nil expression.
func IsInvalid(n Node) bool {
	if n == nil {
		return true
	}
	_, invalid := n.(Invalid)
	return invalid
}

// LValueTypeOf returns the pointer-to-target type of e's storage, or nil if
// e does not designate storage.
func LValueTypeOf(e Expression) Type {
	if lv, ok := e.(LValue); ok {
		return lv.LValueType()
	}
	return nil
}

// BaseSymbolOf returns the root variable e ultimately refers to, or nil.
// The base symbol selects which variable's mask applies when the expression
// is stored through.
func BaseSymbolOf(e Expression) *Symbol {
	switch e := e.(type) {
	case LValue:
		return e.BaseSymbol()
	case *AddressOf:
		return BaseSymbolOf(e.Expression)
	case *RefOf:
		return BaseSymbolOf(e.Expression)
	case *Cast:
		return BaseSymbolOf(e.Object)
	default:
		return nil
	}
}
