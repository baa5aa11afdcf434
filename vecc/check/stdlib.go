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
	"github.com/google/vecc/vecc/diag"
	"github.com/google/vecc/vecc/sem"
)

// RegisterStdlib declares the math intrinsics the optimizer and user code
// expect from the standard library, as extern overload sets. The emitter
// lowers them to target intrinsics; the checker only needs their
// signatures. The fast-math division rewrite looks up rcp from here.
func (m *Module) RegisterStdlib() {
	unary := []string{"abs", "sqrt", "rsqrt", "rcp", "floor", "ceil", "round"}
	scalar := []sem.Type{
		sem.UniformFloat, sem.VaryingFloat,
		sem.UniformDouble, sem.VaryingDouble,
	}
	for _, name := range unary {
		for _, t := range scalar {
			m.AddFunction(name, m.Types.Function(t, []sem.Type{t}, nil, false), diag.NoPos)
		}
	}
	for _, name := range []string{"min", "max"} {
		for _, t := range scalar {
			m.AddFunction(name, m.Types.Function(t, []sem.Type{t, t}, nil, false), diag.NoPos)
		}
		for _, t := range []sem.Type{
			sem.UniformInt32, sem.VaryingInt32,
			sem.UniformInt64, sem.VaryingInt64,
		} {
			m.AddFunction(name, m.Types.Function(t, []sem.Type{t, t}, nil, false), diag.NoPos)
		}
	}
}
