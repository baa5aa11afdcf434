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

// Per-operation cost weights used by EstimateCost. The emitter uses the
// totals to decide between branching and predication; only relative
// magnitudes matter.
const (
	costSimpleArith = 1
	costDivide      = 8
	costDeref       = 2
	costCall        = 4
	costLaunch      = 16
	costSync        = 32
)

// EstimateCost returns a small integer estimate of how expensive the
// expression is to execute. It has no semantic significance.
func EstimateCost(e Expression) int {
	switch e := e.(type) {
	case nil, Invalid:
		return 0
	case *VarRef, *FuncRef, *NullPointer, *SizeOf:
		return 0
	case *UnaryOp:
		return costSimpleArith + EstimateCost(e.Expression)
	case *BinaryOp:
		cost := costSimpleArith
		if e.Operator == ast.OpDivide || e.Operator == ast.OpModulo {
			cost = costDivide
		}
		return cost + EstimateCost(e.LHS) + EstimateCost(e.RHS)
	case *AssignOp:
		return costSimpleArith + EstimateCost(e.LHS) + EstimateCost(e.RHS)
	case *Select:
		return costSimpleArith + EstimateCost(e.Condition) +
			EstimateCost(e.True) + EstimateCost(e.False)
	case *Call:
		cost := costCall
		if e.Launch {
			cost = costLaunch
		}
		for _, a := range e.Arguments {
			cost += EstimateCost(a)
		}
		return cost
	case *Index:
		return costDeref + EstimateCost(e.Base) + EstimateCost(e.Index)
	case *Member:
		return EstimateCost(e.Object)
	case *AddressOf:
		return EstimateCost(e.Expression)
	case *Deref:
		return costDeref + EstimateCost(e.Expression)
	case *RefOf:
		return EstimateCost(e.Expression)
	case *RefDeref:
		return costDeref + EstimateCost(e.Expression)
	case *Cast:
		return costSimpleArith + EstimateCost(e.Object)
	case *Sync:
		return costSync
	case *ExpressionList:
		cost := 0
		for _, x := range e.Expressions {
			cost += EstimateCost(x)
		}
		return cost
	default:
		// Literal values.
		return 0
	}
}
