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

package check

import (
	"math"

	"github.com/google/vecc/vecc/ast"
	"github.com/google/vecc/vecc/diag"
	"github.com/google/vecc/vecc/sem"
)

// constVal is the folder's normalized view of a literal value. Exactly one
// of the payload fields is meaningful, selected by the basic kind.
type constVal struct {
	basic sem.Basic
	b     bool
	i     int64
	u     uint64
	f     float64
}

// literalOf extracts the constant value of an expression, looking through
// casts between atomic types and applying their conversions numerically.
func literalOf(e sem.Expression) (constVal, bool) {
	switch e := e.(type) {
	case sem.BoolValue:
		return constVal{basic: sem.Bool, b: bool(e)}, true
	case sem.Int8Value:
		return constVal{basic: sem.Int8, i: int64(e)}, true
	case sem.Uint8Value:
		return constVal{basic: sem.Uint8, u: uint64(e)}, true
	case sem.Int16Value:
		return constVal{basic: sem.Int16, i: int64(e)}, true
	case sem.Uint16Value:
		return constVal{basic: sem.Uint16, u: uint64(e)}, true
	case sem.Int32Value:
		return constVal{basic: sem.Int32, i: int64(e)}, true
	case sem.Uint32Value:
		return constVal{basic: sem.Uint32, u: uint64(e)}, true
	case sem.Int64Value:
		return constVal{basic: sem.Int64, i: int64(e)}, true
	case sem.Uint64Value:
		return constVal{basic: sem.Uint64, u: uint64(e)}, true
	case sem.FloatValue:
		return constVal{basic: sem.Float, f: float64(e)}, true
	case sem.DoubleValue:
		return constVal{basic: sem.Double, f: float64(e)}, true
	case sem.EnumValue:
		return constVal{basic: sem.Uint32, u: uint64(e.Entry.Value)}, true
	case *sem.Cast:
		to, ok := e.Type.(*sem.Atomic)
		if !ok {
			return constVal{}, false
		}
		v, ok := literalOf(e.Object)
		if !ok {
			return constVal{}, false
		}
		return convertVal(v, to.Basic), true
	default:
		return constVal{}, false
	}
}

func (v constVal) asI64() int64 {
	switch {
	case v.basic == sem.Bool:
		if v.b {
			return 1
		}
		return 0
	case isSignedBasic(v.basic):
		return v.i
	case isUnsignedBasic(v.basic):
		return int64(v.u)
	default:
		return int64(v.f)
	}
}

func (v constVal) asU64() uint64 {
	switch {
	case v.basic == sem.Bool:
		if v.b {
			return 1
		}
		return 0
	case isSignedBasic(v.basic):
		return uint64(v.i)
	case isUnsignedBasic(v.basic):
		return v.u
	default:
		return uint64(v.f)
	}
}

func (v constVal) asF64() float64 {
	switch {
	case v.basic == sem.Bool:
		if v.b {
			return 1
		}
		return 0
	case isSignedBasic(v.basic):
		return float64(v.i)
	case isUnsignedBasic(v.basic):
		return float64(v.u)
	default:
		return v.f
	}
}

func (v constVal) isZero() bool {
	switch {
	case v.basic == sem.Bool:
		return !v.b
	case isSignedBasic(v.basic):
		return v.i == 0
	case isUnsignedBasic(v.basic):
		return v.u == 0
	default:
		return v.f == 0
	}
}

func isSignedBasic(b sem.Basic) bool {
	return b == sem.Int8 || b == sem.Int16 || b == sem.Int32 || b == sem.Int64
}

func isUnsignedBasic(b sem.Basic) bool {
	return b == sem.Uint8 || b == sem.Uint16 || b == sem.Uint32 || b == sem.Uint64
}

func isFloatBasic(b sem.Basic) bool {
	return b == sem.Float || b == sem.Double
}

// convertVal converts a constant value between atomic kinds using the same
// semantics the emitted code has: two's-complement wrap for integers,
// truncation from float to integer, and IEEE narrowing to float.
func convertVal(v constVal, to sem.Basic) constVal {
	out := constVal{basic: to}
	switch to {
	case sem.Bool:
		out.b = !v.isZero()
	case sem.Int8:
		out.i = int64(int8(v.asI64()))
	case sem.Int16:
		out.i = int64(int16(v.asI64()))
	case sem.Int32:
		out.i = int64(int32(v.asI64()))
	case sem.Int64:
		out.i = v.asI64()
	case sem.Uint8:
		out.u = uint64(uint8(v.asU64()))
	case sem.Uint16:
		out.u = uint64(uint16(v.asU64()))
	case sem.Uint32:
		out.u = uint64(uint32(v.asU64()))
	case sem.Uint64:
		out.u = v.asU64()
	case sem.Float:
		out.f = float64(float32(v.asF64()))
	case sem.Double:
		out.f = v.asF64()
	}
	return out
}

func equalVal(a, b constVal) bool {
	if a.basic != b.basic {
		return false
	}
	switch {
	case a.basic == sem.Bool:
		return a.b == b.b
	case isSignedBasic(a.basic):
		return a.i == b.i
	case isUnsignedBasic(a.basic):
		return a.u == b.u
	default:
		return a.f == b.f || (math.IsNaN(a.f) && math.IsNaN(b.f))
	}
}

// literalFits reports whether a constant value is represented exactly by
// the target basic type.
func literalFits(v constVal, to sem.Basic) bool {
	round := convertVal(convertVal(v, to), v.basic)
	if !equalVal(round, v) {
		return false
	}
	// A sign flip survives the round trip through same-width types; reject
	// negatives heading into unsigned types and huge unsigned values
	// heading into signed types explicitly.
	if isUnsignedBasic(to) && v.asF64() < 0 {
		return false
	}
	if isSignedBasic(to) && isUnsignedBasic(v.basic) && v.u > math.MaxInt64 {
		return false
	}
	return true
}

// expr builds the literal expression node for the value.
func (v constVal) expr() sem.Expression {
	switch v.basic {
	case sem.Bool:
		return sem.BoolValue(v.b)
	case sem.Int8:
		return sem.Int8Value(v.i)
	case sem.Int16:
		return sem.Int16Value(v.i)
	case sem.Int32:
		return sem.Int32Value(v.i)
	case sem.Int64:
		return sem.Int64Value(v.i)
	case sem.Uint8:
		return sem.Uint8Value(v.u)
	case sem.Uint16:
		return sem.Uint16Value(v.u)
	case sem.Uint32:
		return sem.Uint32Value(v.u)
	case sem.Uint64:
		return sem.Uint64Value(v.u)
	case sem.Float:
		return sem.FloatValue(v.f)
	case sem.Double:
		return sem.DoubleValue(v.f)
	default:
		return sem.Invalid{}
	}
}

// retype wraps a folded literal so the replacement expression keeps the
// type of the expression it replaces, including variability and constness.
func retype(lit sem.Expression, want sem.Type, at ast.Node) sem.Expression {
	if sem.Equal(lit.ExpressionType(), want) {
		return lit
	}
	return &sem.Cast{AST: at, Type: want, Object: lit}
}

// fold is the optimize pass: a bottom-up rewrite that evaluates constant
// subexpressions and applies the algebraic rewrites enabled by the
// optimization flags. It never reports a diagnostic the checking pass did
// not already produce, with the single exception of the fast-math
// reciprocal fallback warning.
func fold(cx *checker, e sem.Expression) sem.Expression {
	switch e := e.(type) {
	case *sem.VarRef:
		// A const variable with a known value folds to that value.
		if e.Sym.Value != nil && sem.IsConst(e.Sym.Type) {
			if v, ok := literalOf(e.Sym.Value); ok {
				return retype(v.expr(), cx.types.AsMutable(e.Sym.Type), e.AST)
			}
		}
		return e

	case *sem.UnaryOp:
		return foldUnary(cx, e)

	case *sem.BinaryOp:
		return foldBinary(cx, e)

	case *sem.AssignOp:
		return &sem.AssignOp{AST: e.AST, Type: e.Type, LHS: fold(cx, e.LHS),
			Operator: e.Operator, RHS: fold(cx, e.RHS)}

	case *sem.Select:
		return foldSelect(cx, e)

	case *sem.Call:
		args := make([]sem.Expression, len(e.Arguments))
		for i, a := range e.Arguments {
			args[i] = fold(cx, a)
		}
		out := *e
		out.Arguments = args
		if e.LaunchCount != nil {
			out.LaunchCount = fold(cx, e.LaunchCount)
		}
		return &out

	case *sem.Index:
		return &sem.Index{AST: e.AST, Type: e.Type, Base: fold(cx, e.Base),
			Index: fold(cx, e.Index), Ptr: e.Ptr}

	case *sem.Member:
		out := *e
		out.Object = fold(cx, e.Object)
		return &out

	case *sem.AddressOf:
		return &sem.AddressOf{AST: e.AST, Type: e.Type, Expression: fold(cx, e.Expression)}

	case *sem.Deref:
		return &sem.Deref{AST: e.AST, Type: e.Type, Expression: fold(cx, e.Expression)}

	case *sem.RefOf:
		return &sem.RefOf{AST: e.AST, Type: e.Type, Expression: fold(cx, e.Expression)}

	case *sem.RefDeref:
		return &sem.RefDeref{AST: e.AST, Type: e.Type, Expression: fold(cx, e.Expression)}

	case *sem.Cast:
		return foldCast(cx, e)

	case *sem.ExpressionList:
		exprs := make([]sem.Expression, len(e.Expressions))
		for i, x := range e.Expressions {
			exprs[i] = fold(cx, x)
		}
		return &sem.ExpressionList{AST: e.AST, Type: e.Type, Expressions: exprs}

	default:
		return e
	}
}

func foldUnary(cx *checker, e *sem.UnaryOp) sem.Expression {
	in := fold(cx, e.Expression)
	out := &sem.UnaryOp{AST: e.AST, Type: e.Type, Operator: e.Operator, Expression: in}

	v, ok := literalOf(in)
	if !ok {
		return out
	}
	r := constVal{basic: v.basic}
	switch e.Operator {
	case ast.OpNot:
		if v.basic != sem.Bool {
			return out
		}
		r.b = !v.b
	case ast.OpNegate:
		switch {
		case isSignedBasic(v.basic):
			r = convertVal(constVal{basic: v.basic, i: -v.i}, v.basic)
		case isUnsignedBasic(v.basic):
			r = convertVal(constVal{basic: v.basic, u: -v.u}, v.basic)
		case isFloatBasic(v.basic):
			r.f = -v.f
		default:
			return out
		}
	case ast.OpComplement:
		switch {
		case isSignedBasic(v.basic):
			r = convertVal(constVal{basic: v.basic, i: ^v.i}, v.basic)
		case isUnsignedBasic(v.basic):
			r = convertVal(constVal{basic: v.basic, u: ^v.u}, v.basic)
		default:
			return out
		}
	default:
		return out
	}
	return retype(r.expr(), e.Type, e.AST)
}

func foldBinary(cx *checker, e *sem.BinaryOp) sem.Expression {
	lhs := fold(cx, e.LHS)
	rhs := fold(cx, e.RHS)
	out := &sem.BinaryOp{AST: e.AST, Type: e.Type, LHS: lhs, Operator: e.Operator, RHS: rhs}

	// The logical operators fold whenever the first operand is a literal:
	// to that literal when it determines the result, otherwise to the second
	// operand.
	if e.Operator == ast.OpAnd || e.Operator == ast.OpOr {
		if lv, ok := literalOf(lhs); ok && lv.basic == sem.Bool {
			if e.Operator == ast.OpAnd {
				if !lv.b {
					return retype(sem.BoolValue(false), e.Type, e.AST)
				}
				return rhs
			}
			if lv.b {
				return retype(sem.BoolValue(true), e.Type, e.AST)
			}
			return rhs
		}
		return out
	}

	lv, lok := literalOf(lhs)
	rv, rok := literalOf(rhs)
	if lok && rok {
		if r, ok := evalBinary(e.Operator, lv, rv); ok {
			return retype(r.expr(), e.Type, e.AST)
		}
	}

	if cx.opts.FastMath {
		if r := fastMathDivide(cx, out, rok, rv); r != nil {
			return r
		}
	}
	return out
}

// evalBinary evaluates a pure binary operator over two constant values of
// the same basic type. Integer arithmetic wraps two's-complement; floating
// arithmetic uses double precision intermediates and narrows at the end.
// Division by a zero integer and oversized shifts are left unfolded.
func evalBinary(op string, a, b constVal) (constVal, bool) {
	if a.basic != b.basic {
		return constVal{}, false
	}
	basic := a.basic

	switch op {
	case ast.OpEQ, ast.OpNE, ast.OpLT, ast.OpGT, ast.OpLE, ast.OpGE:
		return evalCompare(op, a, b)
	}

	switch {
	case isFloatBasic(basic):
		r := constVal{basic: basic}
		x, y := a.f, b.f
		switch op {
		case ast.OpPlus:
			r.f = x + y
		case ast.OpMinus:
			r.f = x - y
		case ast.OpMultiply:
			r.f = x * y
		case ast.OpDivide:
			r.f = x / y
		default:
			return constVal{}, false
		}
		return convertVal(r, basic), true

	case isSignedBasic(basic):
		x, y := a.i, b.i
		r := constVal{basic: basic}
		switch op {
		case ast.OpPlus:
			r.i = x + y
		case ast.OpMinus:
			r.i = x - y
		case ast.OpMultiply:
			r.i = x * y
		case ast.OpDivide, ast.OpModulo:
			if y == 0 {
				return constVal{}, false
			}
			if op == ast.OpDivide {
				r.i = x / y
			} else {
				r.i = x % y
			}
		case ast.OpBitwiseAnd:
			r.i = x & y
		case ast.OpBitwiseOr:
			r.i = x | y
		case ast.OpBitwiseXor:
			r.i = x ^ y
		case ast.OpBitShiftLeft, ast.OpBitShiftRight:
			if b.asU64() >= uint64(basic.Bits()) || y < 0 {
				return constVal{}, false
			}
			if op == ast.OpBitShiftLeft {
				r.i = x << uint(y)
			} else {
				r.i = x >> uint(y)
			}
		default:
			return constVal{}, false
		}
		return convertVal(r, basic), true

	case isUnsignedBasic(basic):
		x, y := a.u, b.u
		r := constVal{basic: basic}
		switch op {
		case ast.OpPlus:
			r.u = x + y
		case ast.OpMinus:
			r.u = x - y
		case ast.OpMultiply:
			r.u = x * y
		case ast.OpDivide, ast.OpModulo:
			if y == 0 {
				return constVal{}, false
			}
			if op == ast.OpDivide {
				r.u = x / y
			} else {
				r.u = x % y
			}
		case ast.OpBitwiseAnd:
			r.u = x & y
		case ast.OpBitwiseOr:
			r.u = x | y
		case ast.OpBitwiseXor:
			r.u = x ^ y
		case ast.OpBitShiftLeft, ast.OpBitShiftRight:
			if y >= uint64(basic.Bits()) {
				return constVal{}, false
			}
			if op == ast.OpBitShiftLeft {
				r.u = x << y
			} else {
				r.u = x >> y
			}
		default:
			return constVal{}, false
		}
		return convertVal(r, basic), true
	}
	return constVal{}, false
}

func evalCompare(op string, a, b constVal) (constVal, bool) {
	var lt, eq bool
	switch {
	case a.basic == sem.Bool:
		if op != ast.OpEQ && op != ast.OpNE {
			return constVal{}, false
		}
		eq = a.b == b.b
	case isSignedBasic(a.basic):
		lt, eq = a.i < b.i, a.i == b.i
	case isUnsignedBasic(a.basic):
		lt, eq = a.u < b.u, a.u == b.u
	default:
		lt, eq = a.f < b.f, a.f == b.f
	}
	r := constVal{basic: sem.Bool}
	switch op {
	case ast.OpEQ:
		r.b = eq
	case ast.OpNE:
		r.b = !eq
	case ast.OpLT:
		r.b = lt
	case ast.OpGT:
		r.b = !lt && !eq
	case ast.OpLE:
		r.b = lt || eq
	case ast.OpGE:
		r.b = !lt
	}
	return r, true
}

// fastMathDivide rewrites float divisions when fast-math is enabled:
// division by a literal becomes multiplication by the reciprocal, and
// division by an arbitrary value becomes multiplication by rcp(y) when an
// rcp overload is in scope. Returns nil when no rewrite applies.
func fastMathDivide(cx *checker, e *sem.BinaryOp, rhsIsLit bool, rv constVal) sem.Expression {
	if e.Operator != ast.OpDivide {
		return nil
	}
	el := elemOf(e.Type)
	if el == nil || !sem.IsFloat(el) {
		return nil
	}

	if rhsIsLit {
		if rv.isZero() {
			return nil
		}
		recip := constVal{basic: rv.basic, f: 1 / rv.asF64()}
		recip = convertVal(recip, rv.basic)
		return &sem.BinaryOp{
			AST:      e.AST,
			Type:     e.Type,
			LHS:      e.LHS,
			Operator: ast.OpMultiply,
			RHS:      retype(recip.expr(), e.RHS.ExpressionType(), e.AST),
		}
	}

	rcp := &sem.FuncRef{AST: e.AST, Name: "rcp",
		Candidates: cx.symbols.LookupFunctionAll("rcp")}
	if len(rcp.Candidates) == 0 {
		cx.diags.PerformanceWarning(astPos(e.AST),
			"rcp() not found from stdlib; can't optimize division.")
		return nil
	}
	rt := e.RHS.ExpressionType()
	if !resolveOverloadQuiet(cx, rcp, []sem.Type{rt}) {
		cx.diags.PerformanceWarning(astPos(e.AST),
			"rcp() not found from stdlib; can't optimize division.")
		return nil
	}
	ft := rcp.Matched.FunctionType()
	call := &sem.Call{
		AST:       e.AST,
		Type:      ft.Return,
		Target:    rcp,
		Arguments: []sem.Expression{e.RHS},
	}
	return &sem.BinaryOp{
		AST:      e.AST,
		Type:     e.Type,
		LHS:      e.LHS,
		Operator: ast.OpMultiply,
		RHS:      retype(call, e.RHS.ExpressionType(), e.AST),
	}
}

// resolveOverloadQuiet resolves without reporting: the folder must not
// introduce errors the checking pass did not.
func resolveOverloadQuiet(cx *checker, fn *sem.FuncRef, args []sem.Type) bool {
	quiet := cx.module.checker(nil)
	quiet.diags = &diag.Log{}
	return resolveOverload(quiet, fn, args, make([]bool, len(args)), diag.NoPos)
}

func foldSelect(cx *checker, e *sem.Select) sem.Expression {
	cond := fold(cx, e.Condition)
	t := fold(cx, e.True)
	f := fold(cx, e.False)
	if v, ok := literalOf(cond); ok && v.basic == sem.Bool {
		if v.b {
			return t
		}
		return f
	}
	return &sem.Select{AST: e.AST, Type: e.Type, Condition: cond, True: t, False: f}
}

func foldCast(cx *checker, e *sem.Cast) sem.Expression {
	in := fold(cx, e.Object)
	out := &sem.Cast{AST: e.AST, Type: e.Type, Object: in}
	to, ok := e.Type.(*sem.Atomic)
	if !ok {
		return out
	}
	v, ok := literalOf(in)
	if !ok {
		return out
	}
	return retype(convertVal(v, to.Basic).expr(), e.Type, e.AST)
}
