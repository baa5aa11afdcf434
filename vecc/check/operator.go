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
	"github.com/google/vecc/vecc/ast"
	"github.com/google/vecc/vecc/sem"
)

func unaryOp(cx *checker, in *ast.UnaryOp) sem.Expression {
	e := operand(cx, in.Expression)
	if sem.IsInvalid(e) {
		return sem.Invalid{}
	}
	et := e.ExpressionType()
	switch in.Operator {
	case ast.OpNot:
		boolT := sem.AtomicOf(sem.Bool, sem.VariabilityOf(et), false)
		e = convert(cx, e, boolT, "operand of logical not", in.Expression)
		if sem.IsInvalid(e) {
			return sem.Invalid{}
		}
		return &sem.UnaryOp{AST: in, Type: boolT, Operator: in.Operator, Expression: e}
	case ast.OpNegate:
		if elemOf(et) != nil && sem.IsNumeric(elemOf(et)) {
			return &sem.UnaryOp{AST: in, Type: cx.types.AsMutable(et), Operator: in.Operator, Expression: e}
		}
		cx.errorf(in, "Can't negate non-numeric type \"%s\".", sem.TypeName(et))
		return sem.Invalid{}
	case ast.OpComplement:
		if elemOf(et) != nil && sem.IsInteger(elemOf(et)) {
			return &sem.UnaryOp{AST: in, Type: cx.types.AsMutable(et), Operator: in.Operator, Expression: e}
		}
		cx.errorf(in, "Can't apply \"~\" to non-integer type \"%s\".", sem.TypeName(et))
		return sem.Invalid{}
	default:
		cx.icef(in, "unhandled unary operator %s", in.Operator)
		return sem.Invalid{}
	}
}

// elemOf returns the scalar element of a possibly vector type, or nil if
// the type has no scalar element.
func elemOf(t sem.Type) sem.Type {
	switch t := t.(type) {
	case *sem.Atomic:
		return t
	case *sem.Enum:
		return t
	case *sem.Vector:
		return elemOf(t.To)
	default:
		return nil
	}
}

func binaryOp(cx *checker, in *ast.BinaryOp) sem.Expression {
	lhs := operand(cx, in.LHS)
	rhs := operand(cx, in.RHS)
	if sem.IsInvalid(lhs) || sem.IsInvalid(rhs) {
		return sem.Invalid{}
	}
	return typedBinaryOp(cx, in, in.Operator, lhs, rhs)
}

// typedBinaryOp applies the binary operator typing rules to two checked
// operands. It is shared between binary expressions and the compound forms
// of assignment.
func typedBinaryOp(cx *checker, in ast.Node, op string, lhs, rhs sem.Expression) sem.Expression {
	lt := lhs.ExpressionType()
	rt := rhs.ExpressionType()

	switch op {
	case ast.OpPlus, ast.OpMinus:
		if out := pointerArith(cx, in, op, lhs, rhs); out != nil {
			return out
		}
		return arith(cx, in, op, lhs, rhs)

	case ast.OpMultiply:
		return arith(cx, in, op, lhs, rhs)

	case ast.OpDivide:
		out := arith(cx, in, op, lhs, rhs)
		if b, ok := out.(*sem.BinaryOp); ok {
			if el := elemOf(b.Type); el != nil && sem.IsInteger(el) &&
				sem.VariabilityOf(b.Type) == sem.Varying {
				cx.perff(in, "Division with varying integer types is very inefficient.")
			}
		}
		return out

	case ast.OpModulo:
		if (elemOf(lt) != nil && sem.IsFloat(elemOf(lt))) ||
			(elemOf(rt) != nil && sem.IsFloat(elemOf(rt))) {
			cx.errorf(in, "Illegal to use \"%%\" operator with floating-point operand of type \"%s\".",
				sem.TypeName(lt))
			return sem.Invalid{}
		}
		out := arith(cx, in, op, lhs, rhs)
		if b, ok := out.(*sem.BinaryOp); ok && sem.VariabilityOf(b.Type) == sem.Varying {
			cx.perff(in, "Modulus with varying integer types is very inefficient.")
		}
		return out

	case ast.OpBitShiftLeft, ast.OpBitShiftRight:
		if elemOf(lt) == nil || !sem.IsInteger(elemOf(lt)) {
			cx.errorf(in, "Illegal to use shift operator \"%s\" with non-integer type \"%s\".",
				op, sem.TypeName(lt))
			return sem.Invalid{}
		}
		if elemOf(rt) == nil || !sem.IsInteger(elemOf(rt)) {
			cx.errorf(in, "Illegal to use shift operator \"%s\" with non-integer type \"%s\".",
				op, sem.TypeName(rt))
			return sem.Invalid{}
		}
		// The result keeps the left operand's type, made varying if the
		// shift amount is varying.
		out := cx.types.AsMutable(lt)
		if sem.VariabilityOf(rt) == sem.Varying {
			out = cx.types.AsVarying(out)
			lhs = convert(cx, lhs, out, "shift operand", in)
			if sem.IsInvalid(lhs) {
				return sem.Invalid{}
			}
		}
		return &sem.BinaryOp{AST: in, Type: out, LHS: lhs, Operator: op, RHS: rhs}

	case ast.OpBitwiseAnd, ast.OpBitwiseOr, ast.OpBitwiseXor:
		for _, t := range []sem.Type{lt, rt} {
			if elemOf(t) == nil || !(sem.IsInteger(elemOf(t)) || sem.IsBool(elemOf(t))) {
				cx.errorf(in, "Illegal to use \"%s\" operator with non-integer type \"%s\".",
					op, sem.TypeName(t))
				return sem.Invalid{}
			}
		}
		return arith(cx, in, op, lhs, rhs)

	case ast.OpAnd, ast.OpOr:
		v := sem.Uniform
		if sem.VariabilityOf(lt) == sem.Varying || sem.VariabilityOf(rt) == sem.Varying {
			v = sem.Varying
		}
		boolT := sem.AtomicOf(sem.Bool, v, false)
		lhs = convert(cx, lhs, boolT, "operand of logical operator", in)
		rhs = convert(cx, rhs, boolT, "operand of logical operator", in)
		if sem.IsInvalid(lhs) || sem.IsInvalid(rhs) {
			return sem.Invalid{}
		}
		return &sem.BinaryOp{AST: in, Type: boolT, LHS: lhs, Operator: op, RHS: rhs}

	case ast.OpEQ, ast.OpNE, ast.OpLT, ast.OpGT, ast.OpLE, ast.OpGE:
		common := cx.types.MoreGeneralType(lt, rt, astPos(in),
			"operands of comparison", false, 0, cx.diags)
		if common == nil {
			return sem.Invalid{}
		}
		lhs = convert(cx, lhs, common, "operand of comparison", in)
		rhs = convert(cx, rhs, common, "operand of comparison", in)
		if sem.IsInvalid(lhs) || sem.IsInvalid(rhs) {
			return sem.Invalid{}
		}
		boolT := sem.AtomicOf(sem.Bool, sem.VariabilityOf(common), false)
		return &sem.BinaryOp{AST: in, Type: boolT, LHS: lhs, Operator: op, RHS: rhs}

	default:
		cx.icef(in, "unhandled binary operator %s", op)
		return sem.Invalid{}
	}
}

// arith types a symmetric arithmetic operator by promoting both operands to
// their common type.
func arith(cx *checker, in ast.Node, op string, lhs, rhs sem.Expression) sem.Expression {
	common := cx.types.MoreGeneralType(lhs.ExpressionType(), rhs.ExpressionType(),
		astPos(in), "operands of binary operator \""+op+"\"", false, 0, cx.diags)
	if common == nil {
		return sem.Invalid{}
	}
	common = cx.types.AsMutable(common)
	lhs = convert(cx, lhs, common, "operand of binary operator", in)
	rhs = convert(cx, rhs, common, "operand of binary operator", in)
	if sem.IsInvalid(lhs) || sem.IsInvalid(rhs) {
		return sem.Invalid{}
	}
	return &sem.BinaryOp{AST: in, Type: common, LHS: lhs, Operator: op, RHS: rhs}
}

// pointerArith handles the pointer forms of + and -. It returns nil when
// neither operand is a pointer, letting the caller fall back to numeric
// promotion.
func pointerArith(cx *checker, in ast.Node, op string, lhs, rhs sem.Expression) sem.Expression {
	lt := lhs.ExpressionType()
	rt := rhs.ExpressionType()
	lp, lIsPtr := lt.(*sem.Pointer)
	rp, rIsPtr := rt.(*sem.Pointer)
	if !lIsPtr && !rIsPtr {
		return nil
	}

	v := sem.Uniform
	if sem.VariabilityOf(lt) == sem.Varying || sem.VariabilityOf(rt) == sem.Varying {
		v = sem.Varying
	}

	// pointer - pointer: the difference of two pointers to the same type.
	if lIsPtr && rIsPtr {
		if op != ast.OpMinus {
			cx.errorf(in, "Illegal to use operator \"%s\" with two pointer operands.", op)
			return sem.Invalid{}
		}
		if !sem.EqualIgnoringConst(lp.To, rp.To) {
			cx.errorf(in, "Can't subtract pointers to different types \"%s\" and \"%s\".",
				sem.TypeName(lt), sem.TypeName(rt))
			return sem.Invalid{}
		}
		if sem.IsVoid(lp.To) {
			cx.errorf(in, "Illegal to perform pointer arithmetic on \"void *\" type.")
			return sem.Invalid{}
		}
		basic := sem.Int64
		if cx.target.Is32Bit || cx.opts.Force32BitAddressing {
			basic = sem.Int32
		}
		return &sem.BinaryOp{AST: in, Type: sem.AtomicOf(basic, v, false),
			LHS: lhs, Operator: op, RHS: rhs}
	}

	// pointer ± integer (and integer + pointer).
	ptr, ptrExpr, offExpr := lp, lhs, rhs
	offT := rt
	if rIsPtr {
		if op == ast.OpMinus {
			cx.errorf(in, "Illegal to subtract a pointer from an integer.")
			return sem.Invalid{}
		}
		ptr, ptrExpr, offExpr = rp, rhs, lhs
		offT = lt
	}
	if sem.IsVoid(ptr.To) {
		cx.errorf(in, "Illegal to perform pointer arithmetic on \"void *\" type.")
		return sem.Invalid{}
	}
	if elemOf(offT) == nil || !sem.IsInteger(elemOf(offT)) {
		cx.errorf(in, "Illegal to use non-integer type \"%s\" in pointer arithmetic.",
			sem.TypeName(offT))
		return sem.Invalid{}
	}
	out := cx.types.Pointer(ptr.To, v, false)
	return &sem.BinaryOp{AST: in, Type: out, LHS: ptrExpr, Operator: op, RHS: offExpr}
}

func assignOp(cx *checker, in *ast.Assign) sem.Expression {
	compound, ok := ast.AssignOperators[in.Operator]
	if !ok {
		cx.icef(in, "unhandled assignment operator %s", in.Operator)
		return sem.Invalid{}
	}

	lhs := expression(cx, in.LHS)
	if sem.IsInvalid(lhs) {
		return sem.Invalid{}
	}
	// A reference on the left designates its target storage.
	if _, isRef := lhs.ExpressionType().(*sem.Reference); isRef {
		lhs = rvalue(cx, lhs)
	}
	if sem.LValueTypeOf(lhs) == nil {
		cx.errorf(in, "Can't assign to left-hand side of expression.")
		return sem.Invalid{}
	}
	lt := lhs.ExpressionType()
	if sem.IsConst(lt) {
		cx.errorf(in, "Can't assign to type \"%s\" on left-hand side of expression.", sem.TypeName(lt))
		return sem.Invalid{}
	}
	if st, isStruct := lt.(*sem.Struct); isStruct {
		if m := st.ConstMember(); m != nil {
			mt := m.Type
			if m.Const {
				mt = cx.types.AsConst(mt)
			}
			cx.errorf(in, "Can't assign to type \"%s\" due to element \"%s\" with type \"%s\".",
				sem.TypeName(st), m.Name, sem.TypeName(mt))
			return sem.Invalid{}
		}
	}

	rhs := operand(cx, in.RHS)
	if sem.IsInvalid(rhs) {
		return sem.Invalid{}
	}
	if compound != "" {
		rhs = typedBinaryOp(cx, in, compound, lhs, rhs)
		if sem.IsInvalid(rhs) {
			return sem.Invalid{}
		}
	}
	stored := cx.types.AsMutable(lt)
	rhs = convert(cx, rhs, stored, "assignment expression", in.RHS)
	if sem.IsInvalid(rhs) {
		return sem.Invalid{}
	}
	return &sem.AssignOp{AST: in, Type: stored, LHS: lhs, Operator: in.Operator, RHS: rhs}
}
