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

import "github.com/google/vecc/vecc/diag"

// MoreGeneralType returns the common type that both a and b promote to, or
// nil after reporting a diagnostic citing ctx.
//
// Arrays decay to pointers and references are stripped before promotion.
// Two atomic scalars promote up the Basic rank ladder: mixing signed and
// unsigned of the same width yields unsigned, integer and float yields
// float, float and double yields double. A scalar meeting a vector promotes
// element-wise to the vector's size. The result is varying if either input
// is varying or forceVarying is set, and const only if both inputs are
// const. If vectorSize is non-zero the result must be a vector of exactly
// that size.
func (ts *TypeSet) MoreGeneralType(a, b Type, at diag.Pos, ctx string,
	forceVarying bool, vectorSize int, d diag.Sink) Type {

	if a == nil || b == nil {
		return nil // A problem was already reported.
	}
	if IsVoid(a) || IsVoid(b) {
		d.Error(at, "Illegal to use \"void\" type in %s.", ctx)
		return nil
	}
	if _, ok := a.(*Function); ok {
		d.Error(at, "Can't use function type in %s.", ctx)
		return nil
	}
	if _, ok := b.(*Function); ok {
		d.Error(at, "Can't use function type in %s.", ctx)
		return nil
	}

	a = ReferenceTarget(ts.DecayArray(a))
	b = ReferenceTarget(ts.DecayArray(b))

	v := Uniform
	if forceVarying || VariabilityOf(a) == Varying || VariabilityOf(b) == Varying {
		v = Varying
	}
	constant := IsConst(a) && IsConst(b)

	if ap, aPtr := a.(*Pointer); aPtr {
		bp, bPtr := b.(*Pointer)
		if !bPtr || !EqualIgnoringConst(ReferenceTarget(ap.To), ReferenceTarget(bp.To)) {
			d.Error(at, "Unable to find common type of \"%s\" and \"%s\" for %s.",
				TypeName(a), TypeName(b), ctx)
			return nil
		}
		return ts.Pointer(ap.To, v, constant)
	}
	if _, bPtr := b.(*Pointer); bPtr {
		d.Error(at, "Unable to find common type of \"%s\" and \"%s\" for %s.",
			TypeName(a), TypeName(b), ctx)
		return nil
	}

	if as, aStruct := a.(*Struct); aStruct {
		if bs, ok := b.(*Struct); ok && as.Root() == bs.Root() {
			return ts.structVariant(as, v, constant)
		}
		d.Error(at, "Unable to find common type of \"%s\" and \"%s\" for %s.",
			TypeName(a), TypeName(b), ctx)
		return nil
	}

	av, aVec := a.(*Vector)
	bv, bVec := b.(*Vector)
	switch {
	case aVec && bVec:
		if av.Count != bv.Count {
			d.Error(at, "Can't convert between differently sized vector types "+
				"\"%s\" and \"%s\" for %s.", TypeName(a), TypeName(b), ctx)
			return nil
		}
		return ts.promoteToVector(av.To, bv.To, av.Count, v, constant, at, ctx, vectorSize, d)
	case aVec:
		return ts.promoteToVector(av.To, b, av.Count, v, constant, at, ctx, vectorSize, d)
	case bVec:
		return ts.promoteToVector(a, bv.To, bv.Count, v, constant, at, ctx, vectorSize, d)
	case vectorSize > 0:
		return ts.promoteToVector(a, b, vectorSize, v, constant, at, ctx, vectorSize, d)
	}

	basic, ok := promoteScalar(a, b)
	if !ok {
		d.Error(at, "Unable to find common type of \"%s\" and \"%s\" for %s.",
			TypeName(a), TypeName(b), ctx)
		return nil
	}
	return AtomicOf(basic, v, constant)
}

func (ts *TypeSet) promoteToVector(a, b Type, count int, v Variability,
	constant bool, at diag.Pos, ctx string, vectorSize int, d diag.Sink) Type {

	if vectorSize > 0 && count != vectorSize {
		d.Error(at, "Expected vector size %d, got %d in %s.", vectorSize, count, ctx)
		return nil
	}
	basic, ok := promoteScalar(a, b)
	if !ok {
		d.Error(at, "Unable to find common type of \"%s\" and \"%s\" for %s.",
			TypeName(a), TypeName(b), ctx)
		return nil
	}
	return ts.Vector(AtomicOf(basic, v, constant), count)
}

// promoteScalar promotes two scalar types up the Basic rank ladder.
// Enums take part as their unsigned 32-bit underlying type.
func promoteScalar(a, b Type) (Basic, bool) {
	ab, ok := scalarBasic(a)
	if !ok {
		return Void, false
	}
	bb, ok := scalarBasic(b)
	if !ok {
		return Void, false
	}
	if ab < bb {
		return bb, true
	}
	return ab, true
}

func scalarBasic(t Type) (Basic, bool) {
	switch t := t.(type) {
	case *Atomic:
		if t.Basic == Void {
			return Void, false
		}
		return t.Basic, true
	case *Enum:
		return Uint32, true
	default:
		return Void, false
	}
}
