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
)

func matched(e sem.Expression) *sem.Symbol {
	call, ok := e.(*sem.Call)
	if !ok {
		return nil
	}
	return call.Target.Matched
}

// TestExactMatchWins checks that an exact signature beats one needing a
// conversion.
func TestExactMatchWins(t *testing.T) {
	ctx := log.Testing(t)
	m := newModule()
	declareFn(m, "f", sem.UniformInt32, sem.UniformFloat)
	fInt := declareFn(m, "f", sem.UniformInt32, sem.UniformInt32)

	out := m.Check(callFn("f", num("1")))
	assert.For(ctx, "resolved").That(out).IsNotNil()
	assert.For(ctx, "no diagnostics").That(m.Diags.ErrorCount()).Equals(0)
	assert.For(ctx, "picked exact").That(matched(out)).Equals(fInt)
}

// TestWideningPicksLosslessCandidate checks that int16 prefers the int64
// overload over float: widening to float can lose low bits, widening to a
// wider integer cannot.
func TestWideningPicksLosslessCandidate(t *testing.T) {
	ctx := log.Testing(t)
	m := newModule()
	declareFn(m, "f", sem.UniformInt32, sem.UniformFloat)
	fInt64 := declareFn(m, "f", sem.UniformInt32, sem.UniformInt64)

	int16T := &ast.Cast{
		Loc:        at(),
		Type:       &ast.TypeName{Loc: at(), Variability: ast.Uniform, Name: id("int16")},
		Expression: num("3"),
	}
	out := m.Check(callFn("f", int16T))
	assert.For(ctx, "resolved").That(out).IsNotNil()
	assert.For(ctx, "no errors").That(m.Diags.ErrorCount()).Equals(0)
	assert.For(ctx, "picked int64").That(matched(out)).Equals(fInt64)
}

// TestUniformToVaryingTier checks the dedicated uniform-to-varying tier.
func TestUniformToVaryingTier(t *testing.T) {
	ctx := log.Testing(t)
	m := newModule()
	fVarying := declareFn(m, "f", sem.VoidType, sem.VaryingInt32)
	declareFn(m, "f", sem.VoidType, sem.VaryingDouble)
	declare(m, "u", sem.UniformInt32)

	out := m.Check(callFn("f", id("u")))
	assert.For(ctx, "resolved").That(out).IsNotNil()
	assert.For(ctx, "no errors").That(m.Diags.ErrorCount()).Equals(0)
	assert.For(ctx, "picked varying form").That(matched(out)).Equals(fVarying)
}

// TestAmbiguousOverload checks that a tie at the minimum cost is fatal and
// lists the candidates.
func TestAmbiguousOverload(t *testing.T) {
	ctx := log.Testing(t)
	m := newModule()
	declareFn(m, "f", sem.VoidType, sem.UniformFloat)
	declareFn(m, "f", sem.VoidType, sem.UniformDouble)
	declare(m, "u", sem.AtomicOf(sem.Uint8, sem.Uniform, false))

	out := m.Check(callFn("f", id("u")))
	assert.For(ctx, "rejected").That(out).IsNil()
	assert.For(ctx, "one error").That(m.Diags.ErrorCount()).Equals(1)
	msg := firstError(m)
	assert.For(ctx, "mentions ambiguity").ThatString(msg).Contains("Multiple overloaded functions matched")
	assert.For(ctx, "lists float candidate").ThatString(msg).Contains("uniform float")
	assert.For(ctx, "lists double candidate").ThatString(msg).Contains("uniform double")
}

// TestNoMatchingOverload checks the failure report when no tier accepts.
func TestNoMatchingOverload(t *testing.T) {
	ctx := log.Testing(t)
	m := newModule()
	declareFn(m, "f", sem.VoidType, m.Types.Pointer(sem.VaryingInt32, sem.Uniform, false))
	declare(m, "v", sem.VaryingFloat)

	out := m.Check(callFn("f", id("v")))
	assert.For(ctx, "rejected").That(out).IsNil()
	assert.For(ctx, "one error").That(m.Diags.ErrorCount()).Equals(1)
	assert.For(ctx, "message").ThatString(firstError(m)).
		Contains("Unable to find any matching overload for call to function \"f\"")
	assert.For(ctx, "lists candidates").ThatString(firstError(m)).Contains("candidate")
}

// TestNullArgumentMatchesPointer checks that a zero literal binds to a
// pointer parameter at no cost.
func TestNullArgumentMatchesPointer(t *testing.T) {
	ctx := log.Testing(t)
	m := newModule()
	fPtr := declareFn(m, "f", sem.VoidType, m.Types.Pointer(sem.VaryingInt32, sem.Uniform, false))

	out := m.Check(callFn("f", num("0")))
	assert.For(ctx, "resolved").That(out).IsNotNil()
	assert.For(ctx, "no errors").That(m.Diags.ErrorCount()).Equals(0)
	assert.For(ctx, "picked pointer overload").That(matched(out)).Equals(fPtr)
}

// TestInternalNamesDispatchStrictly checks that double-underscore names
// only accept exact matches.
func TestInternalNamesDispatchStrictly(t *testing.T) {
	ctx := log.Testing(t)
	m := newModule()
	declareFn(m, "__fast_sqrt", sem.UniformFloat, sem.UniformFloat)
	declare(m, "i", sem.UniformInt32)
	declare(m, "f", sem.UniformFloat)

	out := m.Check(callFn("__fast_sqrt", id("f")))
	assert.For(ctx, "exact accepted").That(out).IsNotNil()
	assert.For(ctx, "exact errors").That(m.Diags.ErrorCount()).Equals(0)

	out = m.Check(callFn("__fast_sqrt", id("i")))
	assert.For(ctx, "conversion rejected").That(out).IsNil()
	assert.For(ctx, "strict error").That(m.Diags.ErrorCount()).Equals(1)
}

// TestDefaultedParameters checks arity handling with trailing defaults.
func TestDefaultedParameters(t *testing.T) {
	ctx := log.Testing(t)
	m := newModule()
	ft := m.Types.Function(sem.VoidType,
		[]sem.Type{sem.UniformInt32, sem.UniformFloat},
		[]sem.Expression{nil, sem.FloatValue(1)}, false)
	fDef, first := m.AddFunction("f", ft, testPos)
	assert.For(ctx, "registered").That(first).IsTrue()

	out := m.Check(callFn("f", num("1")))
	assert.For(ctx, "defaulted call").That(out).IsNotNil()
	assert.For(ctx, "no errors").That(m.Diags.ErrorCount()).Equals(0)
	assert.For(ctx, "matched").That(matched(out)).Equals(fDef)
	call := out.(*sem.Call)
	assert.For(ctx, "default filled in").ThatSlice(call.Arguments).IsLength(2)
	assert.For(ctx, "default value").That(call.Arguments[1]).Equals(sem.Expression(sem.FloatValue(1)))

	out = m.Check(callFn("f"))
	assert.For(ctx, "missing required argument").That(out).IsNil()
	assert.For(ctx, "arity error").That(m.Diags.ErrorCount()).Equals(1)
}

// TestSignatureCanonicalization checks that top-level parameter const is
// erased for signature identity.
func TestSignatureCanonicalization(t *testing.T) {
	ctx := log.Testing(t)
	m := newModule()
	plain := m.Types.Function(sem.VoidType, []sem.Type{sem.UniformInt32}, nil, false)
	constParam := m.Types.Function(sem.VoidType,
		[]sem.Type{sem.AtomicOf(sem.Int32, sem.Uniform, true)}, nil, false)

	_, first := m.AddFunction("f", plain, testPos)
	_, second := m.AddFunction("f", constParam, testPos)
	assert.For(ctx, "first registration").That(first).IsTrue()
	assert.For(ctx, "const collapses to same signature").That(second).IsFalse()
	assert.For(ctx, "overload set size").ThatSlice(m.Symbols.LookupFunctionAll("f")).IsLength(1)
}

// TestResolveOverloadDeterminism checks repeated resolution of the same
// inputs lands on the same symbol.
func TestResolveOverloadDeterminism(t *testing.T) {
	ctx := log.Testing(t)
	m := newModule()
	declareFn(m, "f", sem.VoidType, sem.UniformInt64)
	declareFn(m, "f", sem.VoidType, sem.UniformDouble)

	var prev *sem.Symbol
	for i := 0; i < 10; i++ {
		fn := &sem.FuncRef{Name: "f", Candidates: m.Symbols.LookupFunctionAll("f")}
		ok := m.ResolveOverload(fn, []sem.Type{sem.UniformInt32}, []bool{false}, testPos)
		assert.For(ctx, "resolved run %d", i).That(ok).IsTrue()
		if prev != nil {
			assert.For(ctx, "same symbol run %d", i).That(fn.Matched).Equals(prev)
		}
		prev = fn.Matched
	}
}
