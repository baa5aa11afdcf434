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

package check_test

import (
	"testing"

	"github.com/google/vecc/core/assert"
	"github.com/google/vecc/core/log"
	"github.com/google/vecc/vecc/ast"
	"github.com/google/vecc/vecc/sem"
	"github.com/google/vecc/vecc/target"
)

// TestAssignToConst checks writes to const storage are rejected.
func TestAssignToConst(t *testing.T) {
	ctx := log.Testing(t)
	m := newModule()
	declareConst(m, "c", sem.UniformInt32, sem.Int32Value(5))

	out := m.Check(assign(id("c"), num("6")))
	assert.For(ctx, "rejected").That(out).IsNil()
	assert.For(ctx, "one error").That(m.Diags.ErrorCount()).Equals(1)
	assert.For(ctx, "message").ThatString(firstError(m)).
		Equals("Can't assign to type \"const uniform int\" on left-hand side of expression.")
}

// TestAssignStructWithConstMember checks whole-struct assignment is
// rejected when any member is const, citing the member.
func TestAssignStructWithConstMember(t *testing.T) {
	ctx := log.Testing(t)
	m := newModule()
	s := m.Types.DeclareStruct("S", []sem.StructMember{
		{Name: "k", Type: sem.UniformInt32, Const: true},
		{Name: "m", Type: sem.UniformInt32},
	})
	declare(m, "s1", s)
	declare(m, "s2", s)

	out := m.Check(assign(id("s1"), id("s2")))
	assert.For(ctx, "rejected").That(out).IsNil()
	assert.For(ctx, "one error").That(m.Diags.ErrorCount()).Equals(1)
	msg := firstError(m)
	assert.For(ctx, "cites member").ThatString(msg).Contains("element \"k\"")
	assert.For(ctx, "cites member type").ThatString(msg).Contains("const uniform int")
}

// TestAssignToNonLValue checks that only storage can be assigned.
func TestAssignToNonLValue(t *testing.T) {
	ctx := log.Testing(t)
	m := newModule()
	declare(m, "x", sem.UniformInt32)

	out := m.Check(assign(binary(id("x"), ast.OpPlus, num("1")), num("2")))
	assert.For(ctx, "rejected").That(out).IsNil()
	assert.For(ctx, "message").ThatString(firstError(m)).
		Contains("Can't assign to left-hand side")
}

// TestLaunchRequiresTask checks launch legality in both directions.
func TestLaunchRequiresTask(t *testing.T) {
	ctx := log.Testing(t)
	m := newModule()
	declareFn(m, "plain", sem.VoidType)
	declareTask(m, "work", sem.VoidType)

	launch := &ast.Call{Loc: at(), Target: id("plain"), Launch: true, LaunchCount: num("4")}
	out := m.Check(launch)
	assert.For(ctx, "launch of non-task rejected").That(out).IsNil()
	assert.For(ctx, "message").ThatString(firstError(m)).
		Equals("Launch expression illegal with non-task-qualified function.")

	m = newModule()
	declareTask(m, "work", sem.VoidType)
	out = m.Check(&ast.Call{Loc: at(), Target: id("work"), Launch: true, LaunchCount: num("4")})
	assert.For(ctx, "launch of task accepted").That(out).IsNotNil()
	assert.For(ctx, "no errors").That(m.Diags.ErrorCount()).Equals(0)
	call := out.(*sem.Call)
	assert.For(ctx, "launch recorded").That(call.Launch).IsTrue()

	out = m.Check(callFn("work"))
	assert.For(ctx, "direct task call rejected").That(out).IsNil()
	assert.For(ctx, "direct call error").ThatString(firstError(m)).
		Contains("can only be called through a launch expression")
}

// TestIndexVariability checks that an element access is varying if either
// the base or the index is varying.
func TestIndexVariability(t *testing.T) {
	ctx := log.Testing(t)

	for _, test := range []struct {
		name  string
		array sem.Type
		index sem.Type
		want  sem.Variability
	}{
		{"uniform base uniform index", sem.UniformInt32, sem.UniformInt32, sem.Uniform},
		{"uniform base varying index", sem.UniformInt32, sem.VaryingInt32, sem.Varying},
		{"varying base uniform index", sem.VaryingInt32, sem.UniformInt32, sem.Varying},
	} {
		m := newModule()
		declare(m, "a", m.Types.Array(test.array, 10))
		declare(m, "i", test.index)
		out := m.Check(&ast.Index{Loc: at(), Object: id("a"), Index: id("i")})
		assert.For(ctx, "%s checked", test.name).That(out).IsNotNil()
		assert.For(ctx, "%s errors", test.name).That(m.Diags.ErrorCount()).Equals(0)
		assert.For(ctx, "%s variability", test.name).
			That(sem.VariabilityOf(out.ExpressionType())).Equals(test.want)
	}
}

// TestIndexBounds checks constant indexes are checked against sized
// arrays.
func TestIndexBounds(t *testing.T) {
	ctx := log.Testing(t)
	m := newModule()
	declare(m, "a", m.Types.Array(sem.VaryingInt32, 4))

	out := m.Check(&ast.Index{Loc: at(), Object: id("a"), Index: num("9")})
	assert.For(ctx, "still typed").That(out).IsNotNil()
	assert.For(ctx, "bounds error").That(m.Diags.ErrorCount()).Equals(1)
	assert.For(ctx, "message").ThatString(firstError(m)).Contains("out of bounds")
}

// TestMemberAccess checks the dot and arrow forms.
func TestMemberAccess(t *testing.T) {
	ctx := log.Testing(t)
	m := newModule()
	s := m.Types.DeclareStruct("Ray", []sem.StructMember{
		{Name: "origin", Type: sem.UniformFloat},
		{Name: "dir", Type: sem.UniformFloat},
	})
	declare(m, "r", s)
	declare(m, "rp", m.Types.Pointer(s, sem.Uniform, false))

	out := m.Check(&ast.Member{Loc: at(), Object: id("r"), Name: id("dir")})
	assert.For(ctx, "dot access").That(out).IsNotNil()
	assert.For(ctx, "dot type").That(out.ExpressionType()).Equals(sem.Type(sem.UniformFloat))

	out = m.Check(&ast.Member{Loc: at(), Object: id("rp"), Name: id("dir"), Arrow: true})
	assert.For(ctx, "arrow access").That(out).IsNotNil()
	assert.For(ctx, "arrow type").That(out.ExpressionType()).Equals(sem.Type(sem.UniformFloat))

	out = m.Check(&ast.Member{Loc: at(), Object: id("rp"), Name: id("dir")})
	assert.For(ctx, "dot on pointer rejected").That(out).IsNil()
	assert.For(ctx, "suggests arrow").ThatString(firstError(m)).Contains("->")

	m = newModule()
	declare(m, "r", s)
	out = m.Check(&ast.Member{Loc: at(), Object: id("r"), Name: id("dri")})
	assert.For(ctx, "unknown member").That(out).IsNil()
	assert.For(ctx, "member suggestion").ThatString(firstError(m)).Contains("Did you mean \"dir\"?")
}

// TestUnknownIdentifierSuggestions checks the near miss hints on failed
// lookups.
func TestUnknownIdentifierSuggestions(t *testing.T) {
	ctx := log.Testing(t)
	m := newModule()
	declare(m, "radius", sem.UniformFloat)

	out := m.Check(id("radios"))
	assert.For(ctx, "rejected").That(out).IsNil()
	assert.For(ctx, "message").ThatString(firstError(m)).
		Equals("Undefined symbol \"radios\". Did you mean \"radius\"?")
}

// TestPointerDifference checks the pointer difference typing rules.
func TestPointerDifference(t *testing.T) {
	ctx := log.Testing(t)

	for _, test := range []struct {
		name    string
		ti      target.Info
		opts    target.OptFlags
		ptrVar  sem.Variability
		want    sem.Type
	}{
		{"64-bit", target.Info{VectorWidth: 8}, target.OptFlags{}, sem.Uniform, sem.UniformInt64},
		{"32-bit target", target.Info{VectorWidth: 8, Is32Bit: true}, target.OptFlags{}, sem.Uniform, sem.UniformInt32},
		{"forced 32-bit addressing", target.Info{VectorWidth: 8}, target.OptFlags{Force32BitAddressing: true}, sem.Uniform, sem.UniformInt32},
		{"varying operand", target.Info{VectorWidth: 8}, target.OptFlags{}, sem.Varying, sem.VaryingInt64},
	} {
		m := newModuleWith(test.ti, test.opts)
		pt := m.Types.Pointer(sem.VaryingFloat, test.ptrVar, false)
		declare(m, "p", pt)
		declare(m, "q", pt)
		out := m.Check(binary(id("p"), ast.OpMinus, id("q")))
		assert.For(ctx, "%s checked", test.name).That(out).IsNotNil()
		assert.For(ctx, "%s errors", test.name).That(m.Diags.ErrorCount()).Equals(0)
		assert.For(ctx, "%s type", test.name).That(out.ExpressionType()).Equals(test.want)
	}
}

// TestVoidPointerArithmetic checks arithmetic on void pointers is
// rejected.
func TestVoidPointerArithmetic(t *testing.T) {
	ctx := log.Testing(t)
	m := newModule()
	declare(m, "p", m.Types.Pointer(sem.VoidType, sem.Uniform, false))

	out := m.Check(binary(id("p"), ast.OpPlus, num("1")))
	assert.For(ctx, "rejected").That(out).IsNil()
	assert.For(ctx, "message").ThatString(firstError(m)).
		Contains("pointer arithmetic on \"void *\"")
}

// TestArithmeticMisuse checks the shift and modulo shape errors.
func TestArithmeticMisuse(t *testing.T) {
	ctx := log.Testing(t)
	m := newModule()
	declare(m, "f", sem.UniformFloat)
	declare(m, "i", sem.UniformInt32)

	out := m.Check(binary(id("f"), ast.OpModulo, id("i")))
	assert.For(ctx, "modulo on float rejected").That(out).IsNil()
	assert.For(ctx, "modulo message").ThatString(firstError(m)).Contains("\"%\" operator")

	m = newModule()
	declare(m, "f", sem.UniformFloat)
	declare(m, "i", sem.UniformInt32)
	out = m.Check(binary(id("i"), ast.OpBitShiftLeft, id("f")))
	assert.For(ctx, "shift by float rejected").That(out).IsNil()
	assert.For(ctx, "shift message").ThatString(firstError(m)).Contains("shift operator")
}

// TestVaryingIntegerDivisionWarning checks the performance warning on
// varying integer division.
func TestVaryingIntegerDivisionWarning(t *testing.T) {
	ctx := log.Testing(t)
	m := newModule()
	declare(m, "a", sem.VaryingInt32)
	declare(m, "b", sem.VaryingInt32)

	out := m.Check(binary(id("a"), ast.OpDivide, id("b")))
	assert.For(ctx, "checked").That(out).IsNotNil()
	assert.For(ctx, "no errors").That(m.Diags.ErrorCount()).Equals(0)
	assert.For(ctx, "performance warning").ThatSlice(m.Diags.Warnings()).IsLength(1)
	assert.For(ctx, "warning text").ThatString(firstWarning(m)).
		Contains("Division with varying integer types is very inefficient")
}

// TestDereference checks pointer loads, including variability pickup from
// a varying pointer.
func TestDereference(t *testing.T) {
	ctx := log.Testing(t)
	m := newModule()
	declare(m, "p", m.Types.Pointer(sem.UniformFloat, sem.Uniform, false))
	declare(m, "vp", m.Types.Pointer(sem.UniformFloat, sem.Varying, false))
	declare(m, "x", sem.UniformInt32)

	out := m.Check(&ast.Deref{Loc: at(), Expression: id("p")})
	assert.For(ctx, "uniform load").That(out).IsNotNil()
	assert.For(ctx, "uniform load type").That(out.ExpressionType()).Equals(sem.Type(sem.UniformFloat))

	out = m.Check(&ast.Deref{Loc: at(), Expression: id("vp")})
	assert.For(ctx, "varying load").That(out).IsNotNil()
	assert.For(ctx, "varying load type").That(out.ExpressionType()).Equals(sem.Type(sem.VaryingFloat))

	out = m.Check(&ast.Deref{Loc: at(), Expression: id("x")})
	assert.For(ctx, "non-pointer rejected").That(out).IsNil()
}

// TestAddressOfAndBaseSymbol checks lvalue plumbing and the base symbol
// used for mask selection.
func TestAddressOfAndBaseSymbol(t *testing.T) {
	ctx := log.Testing(t)
	m := newModule()
	s := m.Types.DeclareStruct("P", []sem.StructMember{{Name: "x", Type: sem.VaryingFloat}})
	sy := declare(m, "p", s)

	out := m.Check(&ast.AddressOf{Loc: at(),
		Expression: &ast.Member{Loc: at(), Object: id("p"), Name: id("x")}})
	assert.For(ctx, "address taken").That(out).IsNotNil()
	_, isPtr := out.ExpressionType().(*sem.Pointer)
	assert.For(ctx, "pointer type").That(isPtr).IsTrue()

	member := out.(*sem.AddressOf).Expression.(*sem.Member)
	assert.For(ctx, "base symbol").That(member.BaseSymbol()).Equals(sy)

	out = m.Check(&ast.AddressOf{Loc: at(), Expression: num("4")})
	assert.For(ctx, "address of literal rejected").That(out).IsNil()
}

// TestSizeOf checks both the type and the expression forms.
func TestSizeOf(t *testing.T) {
	ctx := log.Testing(t)
	m := newModule()
	declare(m, "x", sem.VaryingFloat)

	out := m.Check(&ast.SizeOf{Loc: at(),
		Type: &ast.TypeName{Loc: at(), Variability: ast.Uniform, Name: id("float")}})
	assert.For(ctx, "sizeof type").That(out).IsNotNil()
	assert.For(ctx, "sizeof result type").That(out.ExpressionType()).Equals(sem.Type(sem.UniformUInt64))

	out = m.Check(&ast.SizeOf{Loc: at(), Expression: id("x")})
	assert.For(ctx, "sizeof expression").That(out).IsNotNil()

	out = m.Check(&ast.SizeOf{Loc: at(),
		Type: &ast.TypeName{Loc: at(), Variability: ast.Uniform, Name: id("void")}})
	assert.For(ctx, "sizeof void rejected").That(out).IsNil()
}

// TestCompoundAssignment checks the compounding operators reuse the binary
// typing rules.
func TestCompoundAssignment(t *testing.T) {
	ctx := log.Testing(t)
	m := newModule()
	declare(m, "x", sem.VaryingFloat)
	declare(m, "y", sem.UniformInt32)

	out := m.Check(&ast.Assign{Loc: at(), LHS: id("x"), Operator: ast.OpAssignPlus, RHS: id("y")})
	assert.For(ctx, "compound checked").That(out).IsNotNil()
	assert.For(ctx, "no errors").That(m.Diags.ErrorCount()).Equals(0)
	assert.For(ctx, "stored type").That(out.ExpressionType()).Equals(sem.Type(sem.VaryingFloat))
}
