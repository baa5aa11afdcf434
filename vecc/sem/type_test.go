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

package sem_test

import (
	"testing"

	"github.com/google/vecc/core/assert"
	"github.com/google/vecc/core/log"
	"github.com/google/vecc/vecc/sem"
)

func testStruct(ts *sem.TypeSet) *sem.Struct {
	return ts.DeclareStruct("Sphere", []sem.StructMember{
		{Name: "radius", Type: sem.UniformFloat},
		{Name: "hits", Type: sem.UniformInt32},
	})
}

func testEnum(ts *sem.TypeSet) *sem.Enum {
	return ts.DeclareEnum("Axis", []*sem.EnumEntry{
		{Name: "X", Value: 0},
		{Name: "Y", Value: 1},
		{Name: "Z", Value: 2},
	})
}

func TestAtomicInterning(t *testing.T) {
	ctx := log.Testing(t)
	a := sem.AtomicOf(sem.Int32, sem.Varying, false)
	b := sem.AtomicOf(sem.Int32, sem.Varying, false)
	assert.For(ctx, "atomic identity").That(a == b).IsTrue()
	assert.For(ctx, "varying int").That(a).Equals(sem.VaryingInt32)
	assert.For(ctx, "distinct const").That(a == sem.AtomicOf(sem.Int32, sem.Varying, true)).IsFalse()
}

func TestCompositeInterning(t *testing.T) {
	ctx := log.Testing(t)
	ts := sem.NewTypeSet()
	p1 := ts.Pointer(sem.VaryingFloat, sem.Uniform, false)
	p2 := ts.Pointer(sem.VaryingFloat, sem.Uniform, false)
	assert.For(ctx, "pointer identity").That(p1 == p2).IsTrue()
	a1 := ts.Array(sem.VaryingInt32, 10)
	a2 := ts.Array(sem.VaryingInt32, 10)
	assert.For(ctx, "array identity").That(a1 == a2).IsTrue()
	assert.For(ctx, "array count identity").That(a1 == ts.Array(sem.VaryingInt32, 11)).IsFalse()
	v1 := ts.Vector(sem.UniformFloat, 4)
	v2 := ts.Vector(sem.UniformFloat, 4)
	assert.For(ctx, "vector identity").That(v1 == v2).IsTrue()
	r1 := ts.Reference(sem.VaryingFloat)
	r2 := ts.Reference(r1) // references never nest
	assert.For(ctx, "reference collapse").That(r1 == r2).IsTrue()
}

func TestVariabilityMorphisms(t *testing.T) {
	ctx := log.Testing(t)
	ts := sem.NewTypeSet()
	s := testStruct(ts)
	e := testEnum(ts)
	types := []sem.Type{
		sem.UniformInt32,
		sem.VaryingFloat,
		sem.AtomicOf(sem.Bool, sem.Uniform, true),
		ts.Pointer(sem.VaryingInt32, sem.Uniform, false),
		ts.Array(sem.UniformFloat, 8),
		ts.Vector(sem.UniformInt32, 4),
		s,
		e,
	}
	for _, ty := range types {
		// as_uniform(as_varying(t)) == as_uniform(t), as interned nodes.
		lhs := ts.AsUniform(ts.AsVarying(ty))
		rhs := ts.AsUniform(ty)
		assert.For(ctx, "uniform of varying of %v", sem.TypeName(ty)).That(lhs == rhs).IsTrue()

		// as_const(as_mutable(t)) == as_const(t).
		lhs = ts.AsConst(ts.AsMutable(ty))
		rhs = ts.AsConst(ty)
		assert.For(ctx, "const of mutable of %v", sem.TypeName(ty)).That(lhs == rhs).IsTrue()

		// The variability and constness morphisms commute.
		lhs = ts.AsConst(ts.AsVarying(ty))
		rhs = ts.AsVarying(ts.AsConst(ty))
		assert.For(ctx, "commute on %v", sem.TypeName(ty)).That(lhs == rhs).IsTrue()

		// Morphisms are total and preserve the shape.
		assert.For(ctx, "varying variability of %v", sem.TypeName(ty)).
			That(sem.VariabilityOf(ts.AsVarying(ty))).Equals(sem.Varying)
		assert.For(ctx, "uniform variability of %v", sem.TypeName(ty)).
			That(sem.VariabilityOf(ts.AsUniform(ty))).Equals(sem.Uniform)
	}
}

func TestVariabilityRecursesIntoShapes(t *testing.T) {
	ctx := log.Testing(t)
	ts := sem.NewTypeSet()

	arr := ts.Array(sem.UniformFloat, 4)
	va := ts.AsVarying(arr).(*sem.Array)
	assert.For(ctx, "varying array elements").That(va.To).Equals(sem.VaryingFloat)

	s := testStruct(ts)
	vs := ts.AsVarying(s).(*sem.Struct)
	assert.For(ctx, "varying struct member").That(vs.Members[0].Type).Equals(sem.VaryingFloat)
	assert.For(ctx, "same struct root").That(vs.Root() == s).IsTrue()

	// Pointer variability is the pointer's own, not the pointee's.
	p := ts.Pointer(sem.UniformFloat, sem.Uniform, false)
	vp := ts.AsVarying(p).(*sem.Pointer)
	assert.For(ctx, "varying pointer pointee").That(vp.To).Equals(sem.UniformFloat)
	assert.For(ctx, "varying pointer itself").That(vp.Var).Equals(sem.Varying)

	// References are always uniform.
	r := ts.Reference(sem.VaryingFloat)
	assert.For(ctx, "reference stays put").That(ts.AsVarying(r) == sem.Type(r)).IsTrue()
	assert.For(ctx, "reference variability").That(sem.VariabilityOf(r)).Equals(sem.Uniform)
}

func TestEqual(t *testing.T) {
	ctx := log.Testing(t)
	ts := sem.NewTypeSet()
	other := sem.NewTypeSet()

	// Structural equality holds across type sets.
	a := ts.Pointer(sem.VaryingInt32, sem.Uniform, false)
	b := other.Pointer(sem.VaryingInt32, sem.Uniform, false)
	assert.For(ctx, "cross-set pointers").That(sem.Equal(a, b)).IsTrue()

	assert.For(ctx, "const differs").
		That(sem.Equal(sem.UniformInt32, sem.AtomicOf(sem.Int32, sem.Uniform, true))).IsFalse()
	assert.For(ctx, "const ignored").
		That(sem.EqualIgnoringConst(sem.UniformInt32, sem.AtomicOf(sem.Int32, sem.Uniform, true))).IsTrue()
	assert.For(ctx, "variability differs").
		That(sem.Equal(sem.UniformInt32, sem.VaryingInt32)).IsFalse()

	cp := ts.Pointer(sem.AtomicOf(sem.Int32, sem.Varying, true), sem.Uniform, false)
	assert.For(ctx, "nested const ignored").That(sem.EqualIgnoringConst(a, cp)).IsTrue()
	assert.For(ctx, "nested const compared").That(sem.Equal(a, cp)).IsFalse()

	// Two distinct declarations with the same name are different types.
	s1 := ts.DeclareStruct("S", []sem.StructMember{{Name: "a", Type: sem.UniformInt32}})
	s2 := ts.DeclareStruct("S", []sem.StructMember{{Name: "a", Type: sem.UniformInt32}})
	assert.For(ctx, "nominal structs").That(sem.Equal(s1, s2)).IsFalse()

	f1 := ts.Function(sem.VoidType, []sem.Type{sem.UniformInt32}, nil, false)
	f2 := ts.Function(sem.VoidType, []sem.Type{sem.UniformInt32}, nil, false)
	f3 := ts.Function(sem.VoidType, []sem.Type{sem.UniformInt32}, nil, true)
	assert.For(ctx, "function signatures").That(sem.Equal(f1, f2)).IsTrue()
	assert.For(ctx, "task differs").That(sem.Equal(f1, f3)).IsFalse()
}

func TestShapeQueries(t *testing.T) {
	ctx := log.Testing(t)
	ts := sem.NewTypeSet()
	e := testEnum(ts)

	assert.For(ctx, "numeric float").That(sem.IsNumeric(sem.VaryingFloat)).IsTrue()
	assert.For(ctx, "numeric bool").That(sem.IsNumeric(sem.UniformBool)).IsFalse()
	assert.For(ctx, "integer enum").That(sem.IsInteger(e)).IsTrue()
	assert.For(ctx, "unsigned enum").That(sem.IsUnsigned(e)).IsTrue()
	assert.For(ctx, "signed int").That(sem.IsSigned(sem.UniformInt32)).IsTrue()
	assert.For(ctx, "signed uint").That(sem.IsSigned(sem.UniformUInt32)).IsFalse()
	assert.For(ctx, "float query").That(sem.IsFloat(sem.UniformDouble)).IsTrue()
	assert.For(ctx, "bool query").That(sem.IsBool(sem.VaryingBool)).IsTrue()
	assert.For(ctx, "void query").That(sem.IsVoid(sem.VoidType)).IsTrue()

	arr := ts.Array(sem.VaryingInt32, 10)
	assert.For(ctx, "element count").That(sem.ElementCount(arr)).Equals(10)
	assert.For(ctx, "base type").That(sem.BaseType(arr)).Equals(sem.Type(sem.VaryingInt32))
	r := ts.Reference(sem.UniformFloat)
	assert.For(ctx, "reference target").That(sem.ReferenceTarget(r)).Equals(sem.Type(sem.UniformFloat))
}

func TestTypeNames(t *testing.T) {
	ctx := log.Testing(t)
	ts := sem.NewTypeSet()
	for _, test := range []struct {
		ty   sem.Type
		name string
	}{
		{sem.VaryingInt32, "varying int"},
		{sem.UniformInt32, "uniform int"},
		{sem.AtomicOf(sem.Int32, sem.Uniform, true), "const uniform int"},
		{sem.UniformFloat, "uniform float"},
		{sem.VoidType, "void"},
		{ts.Pointer(sem.VaryingInt32, sem.Uniform, false), "varying int *"},
		{ts.Array(sem.VaryingFloat, 8), "varying float[8]"},
		{ts.Vector(sem.UniformFloat, 4), "uniform float<4>"},
		{ts.Reference(sem.UniformFloat), "uniform float &"},
	} {
		assert.For(ctx, "name of %T", test.ty).ThatString(sem.TypeName(test.ty)).Equals(test.name)
	}
}

func TestStructConstMember(t *testing.T) {
	ctx := log.Testing(t)
	ts := sem.NewTypeSet()
	s := ts.DeclareStruct("S", []sem.StructMember{
		{Name: "k", Type: sem.UniformInt32, Const: true},
		{Name: "m", Type: sem.UniformInt32},
	})
	m := s.ConstMember()
	assert.For(ctx, "const member found").That(m).IsNotNil()
	assert.For(ctx, "const member name").ThatString(m.Name).Equals("k")

	inner := ts.DeclareStruct("Inner", []sem.StructMember{
		{Name: "locked", Type: sem.AtomicOf(sem.Float, sem.Uniform, true)},
	})
	outer := ts.DeclareStruct("Outer", []sem.StructMember{
		{Name: "in", Type: inner},
	})
	assert.For(ctx, "transitive const member").That(outer.ConstMember()).IsNotNil()

	plain := testStruct(ts)
	assert.For(ctx, "no const member").That(plain.ConstMember() == nil).IsTrue()
}
