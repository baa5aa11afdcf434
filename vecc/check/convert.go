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

// convert inserts the implicit conversions needed to produce a value of
// type to from the expression. On success the converted expression is
// returned: unchanged when the types are already equal, otherwise wrapped in
// the node the conversion needs (usually a Cast annotated with the target
// type); on failure exactly one error is reported and Invalid is returned.
func convert(cx *checker, expr sem.Expression, to sem.Type, ctx string, at ast.Node) sem.Expression {
	if sem.IsInvalid(expr) || to == nil {
		return sem.Invalid{}
	}
	out, ok := typeConv(cx, expr, expr.ExpressionType(), to, ctx, at, false)
	if !ok {
		return sem.Invalid{}
	}
	return out
}

// convertible is the dry-run form of convert: it decides legality without
// building nodes or reporting diagnostics. It is used by the overload
// resolver to score candidates.
func convertible(cx *checker, from, to sem.Type) bool {
	_, ok := typeConv(cx, nil, from, to, "", nil, true)
	return ok
}

// typeConv is the ordered case analysis of the implicit conversion rules.
// The first matching case decides; the order is load bearing. A nil expr
// makes the call a dry run.
func typeConv(cx *checker, expr sem.Expression, from, to sem.Type,
	ctx string, at ast.Node, dry bool) (sem.Expression, bool) {

	fail := func(format string, args ...interface{}) (sem.Expression, bool) {
		if !dry {
			cx.errorf(at, format, args...)
		}
		return sem.Invalid{}, false
	}
	accept := func() (sem.Expression, bool) {
		if dry {
			return nil, true
		}
		return &sem.Cast{AST: at, Type: to, Object: expr}, true
	}

	if from == nil || to == nil {
		return sem.Invalid{}, false
	}

	// Identical types convert to themselves without a cast.
	if sem.Equal(from, to) {
		return expr, true
	}

	if sem.IsVoid(from) || sem.IsVoid(to) {
		return fail("Can't convert between \"void\" and non-void type in %s.", ctx)
	}

	// Arrays decay to a pointer to their first element.
	if fromArr, ok := from.(*sem.Array); ok {
		if toPtr, ok := to.(*sem.Pointer); ok {
			if !sem.EqualIgnoringConst(fromArr.To, toPtr.To) {
				return fail("Can't convert from incompatible array type \"%s\" to pointer type \"%s\" in %s.",
					sem.TypeName(from), sem.TypeName(to), ctx)
			}
			if dry {
				return nil, true
			}
			decayed := decay(cx, expr)
			return &sem.Cast{AST: at, Type: to, Object: decayed}, true
		}
	}

	// A varying value never implicitly becomes uniform.
	if sem.VariabilityOf(from) == sem.Varying && sem.VariabilityOf(to) == sem.Uniform {
		if _, isRef := to.(*sem.Reference); !isRef {
			return fail("Can't convert from varying type \"%s\" to uniform type \"%s\" in %s.",
				sem.TypeName(from), sem.TypeName(to), ctx)
		}
	}

	// A pointer converts to bool by comparing against null.
	if _, ok := from.(*sem.Pointer); ok {
		if sem.IsBool(to) {
			return accept()
		}
	}

	if toPtr, isToPtr := to.(*sem.Pointer); isToPtr {
		if fromPtr, ok := from.(*sem.Pointer); ok {
			// The null literal takes on any pointer type.
			if !dry {
				if _, isNull := expr.(*sem.NullPointer); isNull {
					return &sem.Cast{AST: at, Type: to, Object: expr}, true
				}
			}
			if sem.IsVoid(toPtr.To) || sem.IsVoid(fromPtr.To) ||
				sem.EqualIgnoringConst(fromPtr.To, toPtr.To) {
				return accept()
			}
			return fail("Can't convert between incompatible pointer types \"%s\" and \"%s\" in %s.",
				sem.TypeName(from), sem.TypeName(to), ctx)
		}
		// A compile time zero integer converts to the null pointer of the
		// target type.
		if !dry && sem.IsZeroLiteral(expr) {
			return &sem.NullPointer{AST: at, Type: to}, true
		}
		if sem.IsInteger(from) {
			return fail("Can't convert integer type \"%s\" to pointer type \"%s\" in %s.",
				sem.TypeName(from), sem.TypeName(to), ctx)
		}
	}

	if toRef, isToRef := to.(*sem.Reference); isToRef {
		if fromRef, ok := from.(*sem.Reference); ok {
			// Reference to reference: the target may gain constness.
			if sem.EqualIgnoringConst(fromRef.To, toRef.To) {
				if sem.IsConst(fromRef.To) && !sem.IsConst(toRef.To) {
					return fail("Can't convert between mismatched reference types \"%s\" and \"%s\" in %s.",
						sem.TypeName(from), sem.TypeName(to), ctx)
				}
				return accept()
			}
			fa, faOK := fromRef.To.(*sem.Array)
			ta, taOK := toRef.To.(*sem.Array)
			if faOK && taOK && sem.EqualIgnoringConst(fa.To, ta.To) {
				return accept()
			}
			return fail("Can't convert between mismatched reference types \"%s\" and \"%s\" in %s.",
				sem.TypeName(from), sem.TypeName(to), ctx)
		}
	}

	// Reading through a reference and then converting the value.
	if fromRef, ok := from.(*sem.Reference); ok {
		if dry {
			return typeConv(cx, nil, fromRef.To, to, ctx, at, dry)
		}
		read := &sem.RefDeref{AST: at, Type: fromRef.To, Expression: expr}
		return typeConv(cx, read, fromRef.To, to, ctx, at, dry)
	}

	// Taking a reference to a value of the target's type.
	if toRef, ok := to.(*sem.Reference); ok {
		if dry {
			if _, ok := typeConv(cx, nil, from, toRef.To, ctx, at, dry); ok {
				return nil, true
			}
			return sem.Invalid{}, false
		}
		inner, ok := typeConv(cx, expr, from, toRef.To, ctx, at, dry)
		if !ok {
			return sem.Invalid{}, false
		}
		return &sem.RefOf{AST: at, Type: toRef, Expression: inner}, true
	}

	if fromArr, ok := from.(*sem.Array); ok {
		if toArr, ok := to.(*sem.Array); ok {
			if !sem.EqualIgnoringConst(fromArr.To, toArr.To) {
				return fail("Array types \"%s\" and \"%s\" have incompatible element types in %s.",
					sem.TypeName(from), sem.TypeName(to), ctx)
			}
			if !dry && fromArr.Count != toArr.Count && fromArr.Count != 0 && toArr.Count != 0 {
				cx.warningf(at, "Converting from type \"%s\" to type \"%s\" discards array size in %s.",
					sem.TypeName(from), sem.TypeName(to), ctx)
			}
			return accept()
		}
	}

	if fromVec, ok := from.(*sem.Vector); ok {
		if toVec, ok := to.(*sem.Vector); ok {
			if fromVec.Count != toVec.Count {
				return fail("Can't convert between differently sized vector types \"%s\" and \"%s\" in %s.",
					sem.TypeName(from), sem.TypeName(to), ctx)
			}
			if _, ok := typeConv(cx, nil, fromVec.To, toVec.To, ctx, at, true); !ok {
				return fail("Can't convert between vector types \"%s\" and \"%s\" in %s.",
					sem.TypeName(from), sem.TypeName(to), ctx)
			}
			return accept()
		}
	}

	if fromStruct, ok := from.(*sem.Struct); ok {
		toStruct, ok := to.(*sem.Struct)
		if !ok || fromStruct.Root() != toStruct.Root() {
			return fail("Can't convert from type \"%s\" to type \"%s\" in %s.",
				sem.TypeName(from), sem.TypeName(to), ctx)
		}
		// Same struct modulo a uniform to varying smear and constness.
		return accept()
	}

	if _, ok := from.(*sem.Enum); ok {
		if _, ok := to.(*sem.Enum); ok {
			// Distinct enums never convert implicitly. Variants of the same
			// enum were handled by the equality and variability rules above.
			if toE, fromE := to.(*sem.Enum), from.(*sem.Enum); toE.Root() == fromE.Root() {
				return accept()
			}
			return fail("Can't convert between distinct enum types \"%s\" and \"%s\" in %s.",
				sem.TypeName(from), sem.TypeName(to), ctx)
		}
		if toA, ok := to.(*sem.Atomic); ok && toA.Basic >= sem.Int8 && toA.Basic <= sem.Uint64 {
			return accept()
		}
		return fail("Can't convert from enum type \"%s\" to type \"%s\" in %s.",
			sem.TypeName(from), sem.TypeName(to), ctx)
	}

	// Scalar to vector broadcast.
	if fromA, ok := from.(*sem.Atomic); ok {
		if toVec, ok := to.(*sem.Vector); ok {
			if _, ok := typeConv(cx, nil, fromA, toVec.To, ctx, at, true); !ok {
				return fail("Can't broadcast type \"%s\" to vector type \"%s\" in %s.",
					sem.TypeName(from), sem.TypeName(to), ctx)
			}
			return accept()
		}
	}

	if fromA, ok := from.(*sem.Atomic); ok {
		if toA, ok := to.(*sem.Atomic); ok {
			if !dry {
				maybePrecisionWarning(cx, expr, fromA, toA, ctx, at)
			}
			return accept()
		}
	}

	return fail("Can't convert from type \"%s\" to type \"%s\" in %s.",
		sem.TypeName(from), sem.TypeName(to), ctx)
}

// maybePrecisionWarning reports conversions between atomic types that can
// silently lose information. No warning is issued when the value is a
// compile time constant that the target type represents exactly.
func maybePrecisionWarning(cx *checker, expr sem.Expression, from, to *sem.Atomic, ctx string, at ast.Node) {
	fb, tb := from.Basic, to.Basic
	if fb == tb || tb == sem.Bool || fb == sem.Bool {
		return
	}
	if expr != nil {
		if v, ok := literalOf(expr); ok && literalFits(v, tb) {
			return
		}
	}
	isFloat := func(b sem.Basic) bool { return b == sem.Float || b == sem.Double }
	isInt := func(b sem.Basic) bool { return b >= sem.Int8 && b <= sem.Uint64 }
	warn := false
	switch {
	case fb == sem.Double && tb == sem.Float:
		warn = true
	case isFloat(fb) && isInt(tb):
		warn = true
	case isInt(fb) && isInt(tb) && fb.Bits() > tb.Bits():
		warn = true
	case isInt(fb) && isInt(tb) && fb.Bits() == tb.Bits():
		// Same width with a signedness change can flip the sign.
		warn = true
	case (fb == sem.Int64 || fb == sem.Uint64) && isFloat(tb):
		warn = true
	}
	if warn {
		cx.warningf(at, "Conversion from type \"%s\" to type \"%s\" may lose information in %s.",
			sem.TypeName(from), sem.TypeName(to), ctx)
	}
}
