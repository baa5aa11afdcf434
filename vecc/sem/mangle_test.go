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

// TestMangleInjective builds a broad set of distinct types and checks that
// no two of them share a mangled name.
func TestMangleInjective(t *testing.T) {
	ctx := log.Testing(t)
	ts := sem.NewTypeSet()
	s := testStruct(ts)
	e := testEnum(ts)

	types := []sem.Type{}
	for b := sem.Void; b <= sem.Double; b++ {
		for _, v := range []sem.Variability{sem.Uniform, sem.Varying} {
			for _, c := range []bool{false, true} {
				types = append(types, sem.AtomicOf(b, v, c))
			}
		}
	}
	types = append(types,
		e,
		ts.AsVarying(e),
		s,
		ts.AsVarying(s),
		ts.AsConst(s),
		ts.Pointer(sem.VaryingInt32, sem.Uniform, false),
		ts.Pointer(sem.VaryingInt32, sem.Uniform, true),
		ts.Pointer(sem.VaryingInt32, sem.Varying, false),
		ts.Pointer(sem.UniformInt32, sem.Uniform, false),
		ts.Pointer(ts.Pointer(sem.UniformInt32, sem.Uniform, false), sem.Uniform, false),
		ts.Reference(sem.VaryingInt32),
		ts.Reference(ts.Array(sem.VaryingInt32, 4)),
		ts.Array(sem.VaryingInt32, 0),
		ts.Array(sem.VaryingInt32, 1),
		ts.Array(sem.VaryingInt32, 16),
		ts.Array(sem.AtomicOf(sem.Int8, sem.Varying, false), 16),
		ts.Array(sem.AtomicOf(sem.Int8, sem.Varying, false), 1),
		ts.Vector(sem.UniformFloat, 4),
		ts.Vector(sem.UniformFloat, 8),
		ts.Vector(sem.AtomicOf(sem.Int16, sem.Uniform, false), 4),
		ts.Function(sem.VoidType, nil, nil, false),
		ts.Function(sem.VoidType, nil, nil, true),
		ts.Function(sem.VoidType, []sem.Type{sem.UniformInt32}, nil, false),
		ts.Function(sem.VoidType, []sem.Type{sem.UniformInt32, sem.UniformFloat}, nil, false),
		ts.Function(sem.UniformInt32, []sem.Type{sem.UniformFloat}, nil, false),
		ts.Function(sem.UniformInt32, []sem.Type{ts.Reference(sem.UniformFloat)}, nil, false),
	)

	seen := map[string]sem.Type{}
	for _, ty := range types {
		m := sem.Mangle(ty)
		if prev, dup := seen[m]; dup {
			assert.For(ctx, "mangle collision %q between %v and %v",
				m, sem.TypeName(prev), sem.TypeName(ty)).That(dup).IsFalse()
			continue
		}
		seen[m] = ty
	}
	assert.For(ctx, "all distinct").That(len(seen)).Equals(len(types))
}

// TestMangleDeterministic checks the encoding is stable for equal types
// built independently.
func TestMangleDeterministic(t *testing.T) {
	ctx := log.Testing(t)
	a := sem.NewTypeSet()
	b := sem.NewTypeSet()
	ta := a.Pointer(a.Array(sem.VaryingFloat, 8), sem.Uniform, true)
	tb := b.Pointer(b.Array(sem.VaryingFloat, 8), sem.Uniform, true)
	assert.For(ctx, "stable mangle").ThatString(sem.Mangle(ta)).Equals(sem.Mangle(tb))
}
