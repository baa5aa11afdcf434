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

import "github.com/google/vecc/vecc/ast"

// VarRef is an identifier resolved to a variable symbol.
type VarRef struct {
	AST ast.Node // the underlying syntax node this was built from
	Sym *Symbol  // the variable the identifier resolved to
	// Ptr is the pointer-to-storage type of the variable.
	Ptr Type
}

func (*VarRef) isNode()       {}
func (*VarRef) isExpression() {}

// ExpressionType implements Expression with the variable's type.
func (v *VarRef) ExpressionType() Type { return v.Sym.Type }

// LValueType implements LValue with the pointer-to-storage type.
func (v *VarRef) LValueType() Type { return v.Ptr }

// BaseSymbol implements LValue with the referenced variable.
func (v *VarRef) BaseSymbol() *Symbol { return v.Sym }

// FuncRef is an identifier resolved to a function overload set.
// Overload resolution binds Matched once the argument types are known.
type FuncRef struct {
	AST        ast.Node  // the underlying syntax node this was built from
	Name       string    // the function name
	Candidates []*Symbol // the visible overload set, in scope order
	Matched    *Symbol   // the overload selected by resolution, or nil
}

func (*FuncRef) isNode()       {}
func (*FuncRef) isExpression() {}

// ExpressionType implements Expression with the matched overload's
// signature type, or nil before resolution.
func (f *FuncRef) ExpressionType() Type {
	if f.Matched == nil {
		return nil
	}
	return f.Matched.Type
}

// NullPointer is the NULL literal. Until converted it has type void *.
type NullPointer struct {
	AST  ast.Node // the underlying syntax node this was built from
	Type Type     // the pointer type of the null
}

func (*NullPointer) isNode()       {}
func (*NullPointer) isExpression() {}

// ExpressionType implements Expression.
func (n *NullPointer) ExpressionType() Type { return n.Type }

// UnaryOp is an operator applied to a single expression.
type UnaryOp struct {
	AST        ast.Node   // the underlying syntax node this was built from
	Type       Type       // the resolved type of the operation
	Operator   string     // the operator being applied
	Expression Expression // the expression the operator applies to
}

func (*UnaryOp) isNode()       {}
func (*UnaryOp) isExpression() {}

// ExpressionType implements Expression.
func (u *UnaryOp) ExpressionType() Type { return u.Type }

// BinaryOp is an operator applied to two expressions.
type BinaryOp struct {
	AST      ast.Node   // the underlying syntax node this was built from
	Type     Type       // the resolved type of the operation
	LHS      Expression // the expression on the left of the operator
	Operator string     // the operator being applied
	RHS      Expression // the expression on the right of the operator
}

func (*BinaryOp) isNode()       {}
func (*BinaryOp) isExpression() {}

// ExpressionType implements Expression.
func (b *BinaryOp) ExpressionType() Type { return b.Type }

// AssignOp stores a value into an lvalue, optionally compounding with a
// binary operator.
type AssignOp struct {
	AST      ast.Node   // the underlying syntax node this was built from
	Type     Type       // the type of the stored value
	LHS      Expression // the storage being assigned
	Operator string     // the assignment operator being applied
	RHS      Expression // the value to store
}

func (*AssignOp) isNode()       {}
func (*AssignOp) isExpression() {}

// ExpressionType implements Expression.
func (a *AssignOp) ExpressionType() Type { return a.Type }

// Select is a «cond ? a : b» expression.
type Select struct {
	AST       ast.Node   // the underlying syntax node this was built from
	Type      Type       // the unified type of the two branches
	Condition Expression // the expression that picks the branch
	True      Expression // the value if the condition is true
	False     Expression // the value if the condition is false
}

func (*Select) isNode()       {}
func (*Select) isExpression() {}

// ExpressionType implements Expression.
func (s *Select) ExpressionType() Type { return s.Type }

// Call invokes a function, optionally as a launched task.
type Call struct {
	AST         ast.Node     // the underlying syntax node this was built from
	Type        Type         // the return type of the matched function
	Target      *FuncRef     // the function being invoked
	Arguments   []Expression // the converted argument expressions
	Launch      bool         // whether this is a launch expression
	LaunchCount Expression   // the launch count, or nil
}

func (*Call) isNode()       {}
func (*Call) isExpression() {}

// ExpressionType implements Expression.
func (c *Call) ExpressionType() Type { return c.Type }

// Index reads an element of an array or a pointed-to sequence.
// The element is varying if either the base or the index is varying.
type Index struct {
	AST   ast.Node   // the underlying syntax node this was built from
	Type  Type       // the element type of the access
	Base  Expression // the array or pointer being indexed
	Index Expression // the element index
	// Ptr is the pointer type of the designated element storage, or nil if
	// the access does not designate storage.
	Ptr Type
}

func (*Index) isNode()       {}
func (*Index) isExpression() {}

// ExpressionType implements Expression.
func (i *Index) ExpressionType() Type { return i.Type }

// LValueType implements LValue.
func (i *Index) LValueType() Type { return i.Ptr }

// BaseSymbol implements LValue with the root of the base expression.
func (i *Index) BaseSymbol() *Symbol { return BaseSymbolOf(i.Base) }

// Member reads a struct member through «.» or «->».
type Member struct {
	AST    ast.Node   // the underlying syntax node this was built from
	Type   Type       // the type of the member
	Object Expression // the struct valued expression
	Name   string     // the member name
	Field  int        // the member index within the struct
	Arrow  bool       // whether the access used the -> form
	// Ptr is the pointer type of the member storage, or nil.
	Ptr Type
}

func (*Member) isNode()       {}
func (*Member) isExpression() {}

// ExpressionType implements Expression.
func (m *Member) ExpressionType() Type { return m.Type }

// LValueType implements LValue.
func (m *Member) LValueType() Type { return m.Ptr }

// BaseSymbol implements LValue with the root of the object expression.
func (m *Member) BaseSymbol() *Symbol { return BaseSymbolOf(m.Object) }

// AddressOf takes the address of an lvalue.
type AddressOf struct {
	AST        ast.Node   // the underlying syntax node this was built from
	Type       Type       // the resulting pointer type
	Expression Expression // the lvalue whose address is taken
}

func (*AddressOf) isNode()       {}
func (*AddressOf) isExpression() {}

// ExpressionType implements Expression.
func (a *AddressOf) ExpressionType() Type { return a.Type }

// Deref reads the value a pointer points at.
type Deref struct {
	AST        ast.Node   // the underlying syntax node this was built from
	Type       Type       // the pointee type
	Expression Expression // the pointer being dereferenced
}

func (*Deref) isNode()       {}
func (*Deref) isExpression() {}

// ExpressionType implements Expression.
func (d *Deref) ExpressionType() Type { return d.Type }

// LValueType implements LValue with the pointer's own type.
func (d *Deref) LValueType() Type { return d.Expression.ExpressionType() }

// BaseSymbol implements LValue with the root of the pointer expression.
func (d *Deref) BaseSymbol() *Symbol { return BaseSymbolOf(d.Expression) }

// RefOf converts a value expression to a reference, inserted by the
// implicit conversion engine.
type RefOf struct {
	AST        ast.Node   // the underlying syntax node this was built from
	Type       Type       // the reference type
	Expression Expression // the value being referenced
}

func (*RefOf) isNode()       {}
func (*RefOf) isExpression() {}

// ExpressionType implements Expression.
func (r *RefOf) ExpressionType() Type { return r.Type }

// RefDeref reads the value a reference refers to, inserted by the implicit
// conversion engine.
type RefDeref struct {
	AST        ast.Node   // the underlying syntax node this was built from
	Type       Type       // the reference target type
	Expression Expression // the reference being read
}

func (*RefDeref) isNode()       {}
func (*RefDeref) isExpression() {}

// ExpressionType implements Expression.
func (r *RefDeref) ExpressionType() Type { return r.Type }

// LValueType implements LValue: a reference designates its target storage.
func (r *RefDeref) LValueType() Type { return r.Expression.ExpressionType() }

// BaseSymbol implements LValue with the root of the reference expression.
func (r *RefDeref) BaseSymbol() *Symbol { return BaseSymbolOf(r.Expression) }

// Cast converts a value to another type. Every acceptance of the implicit
// conversion engine wraps the converted expression in a Cast, and explicit
// source casts produce one directly.
type Cast struct {
	AST    ast.Node   // the underlying syntax node this was built from
	Type   Type       // the target type of the conversion
	Object Expression // the expression being converted
}

func (*Cast) isNode()       {}
func (*Cast) isExpression() {}

// ExpressionType implements Expression with the cast target type.
func (c *Cast) ExpressionType() Type { return c.Type }

// SizeOf measures the storage size of a type.
type SizeOf struct {
	AST ast.Node // the underlying syntax node this was built from
	// Of is the type being measured.
	Of Type
}

func (*SizeOf) isNode()       {}
func (*SizeOf) isExpression() {}

// ExpressionType implements Expression: sizeof yields a uniform uint64.
func (*SizeOf) ExpressionType() Type { return UniformUInt64 }

// Sync joins the tasks launched by the enclosing function.
type Sync struct {
	AST ast.Node // the underlying syntax node this was built from
}

func (*Sync) isNode()       {}
func (*Sync) isExpression() {}

// ExpressionType implements Expression with the void type.
func (*Sync) ExpressionType() Type { return VoidType }

// ExpressionList is a brace-enclosed initializer list. Its type is the
// aggregate it initializes, bound by the declaration context.
type ExpressionList struct {
	AST         ast.Node     // the underlying syntax node this was built from
	Type        Type         // the aggregate type being initialized, or nil
	Expressions []Expression // the elements of the list
}

func (*ExpressionList) isNode()       {}
func (*ExpressionList) isExpression() {}

// ExpressionType implements Expression.
func (l *ExpressionList) ExpressionType() Type { return l.Type }
