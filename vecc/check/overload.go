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
	"strings"

	"github.com/google/vecc/vecc/diag"
	"github.com/google/vecc/vecc/sem"
)

// A matchTier is one ranked rule for pairing an argument type with a
// parameter type during overload resolution. Tiers are tried in declaration
// order; an argument matches at a tier if any rule up to and including that
// tier accepts the pair, taking the cheapest accepting rule's cost.
type matchTier struct {
	name  string
	cost  int
	match func(cx *checker, caller, callee sem.Type) bool
}

var matchTiers = []matchTier{
	{"exact match", 0, exactMatch},
	{"ignore references", 1, matchIgnoringReferences},
	{"widen without loss", 1, widenWithoutLoss},
	{"uniform to varying", 1, uniformToVarying},
	{"convertible at same variability", 1, convertibleSameVariability},
	{"convertible", 0, anyConvertible},
}

// exactMatch accepts identical types, modulo top-level argument constness
// and the parameter taking a reference to the argument's type.
func exactMatch(cx *checker, caller, callee sem.Type) bool {
	caller = cx.types.AsMutable(caller)
	if sem.Equal(caller, callee) {
		return true
	}
	if r, ok := callee.(*sem.Reference); ok {
		return sem.Equal(caller, cx.types.AsMutable(r.To))
	}
	return false
}

// matchIgnoringReferences accepts types that are identical once references
// are stripped from both sides.
func matchIgnoringReferences(cx *checker, caller, callee sem.Type) bool {
	caller = cx.types.AsMutable(sem.ReferenceTarget(caller))
	callee = cx.types.AsMutable(sem.ReferenceTarget(callee))
	return sem.Equal(caller, callee)
}

// widenLadder keys the widening conversions that never lose a value.
// Signed to unsigned never widens (the sign can flip), double never narrows
// to float, and integers never silently become floating point.
var widenLadder = map[sem.Basic][]sem.Basic{
	sem.Bool:   {sem.Int8, sem.Uint8, sem.Int16, sem.Uint16, sem.Int32, sem.Uint32, sem.Int64, sem.Uint64, sem.Float, sem.Double},
	sem.Int8:   {sem.Int16, sem.Int32, sem.Int64},
	sem.Uint8:  {sem.Uint16, sem.Uint32, sem.Uint64, sem.Int16, sem.Int32, sem.Int64},
	sem.Int16:  {sem.Int32, sem.Int64},
	sem.Uint16: {sem.Uint32, sem.Uint64, sem.Int32, sem.Int64},
	sem.Int32:  {sem.Int64},
	sem.Uint32: {sem.Uint64, sem.Int64},
	sem.Float:  {sem.Double},
}

// widenWithoutLoss accepts atomic arguments that widen to the parameter's
// basic type without any possible loss, at equal variability. Enums widen
// to their unsigned 32-bit underlying type and anything that type widens
// to.
func widenWithoutLoss(cx *checker, caller, callee sem.Type) bool {
	calleeA, ok := callee.(*sem.Atomic)
	if !ok {
		return false
	}
	var callerB sem.Basic
	switch caller := caller.(type) {
	case *sem.Atomic:
		callerB = caller.Basic
	case *sem.Enum:
		if calleeA.Basic == sem.Uint32 && sem.VariabilityOf(caller) == calleeA.Var {
			return true
		}
		callerB = sem.Uint32
	default:
		return false
	}
	if sem.VariabilityOf(caller) != calleeA.Var {
		return false
	}
	for _, b := range widenLadder[callerB] {
		if b == calleeA.Basic {
			return true
		}
	}
	return false
}

// uniformToVarying accepts a uniform argument against the varying form of
// the same type.
func uniformToVarying(cx *checker, caller, callee sem.Type) bool {
	if sem.VariabilityOf(caller) != sem.Uniform {
		return false
	}
	caller = cx.types.AsVarying(cx.types.AsMutable(caller))
	return sem.Equal(caller, cx.types.AsMutable(callee))
}

// convertibleSameVariability accepts anything the implicit conversion
// engine accepts, provided argument and parameter variability agree.
func convertibleSameVariability(cx *checker, caller, callee sem.Type) bool {
	if sem.VariabilityOf(caller) != sem.VariabilityOf(callee) {
		return false
	}
	return convertible(cx, caller, callee)
}

// anyConvertible is the baseline rule: anything implicitly convertible.
func anyConvertible(cx *checker, caller, callee sem.Type) bool {
	return convertible(cx, caller, callee)
}

// matchCost returns the cheapest cost of matching the pair using any rule
// up to and including tier, or false if no rule accepts it.
func matchCost(cx *checker, caller, callee sem.Type, tier int) (int, bool) {
	cost, found := 0, false
	for i := 0; i <= tier; i++ {
		if matchTiers[i].match(cx, caller, callee) {
			if !found || matchTiers[i].cost < cost {
				cost, found = matchTiers[i].cost, true
			}
		}
	}
	return cost, found
}

// resolveOverload binds the unique cheapest candidate of fn matching the
// argument types, trying each tier in turn. Arguments flagged in
// couldBeNull are compile time zero integers, which match any pointer
// parameter for free. Function names starting with a double underscore
// dispatch strictly: only exact matches are considered.
func resolveOverload(cx *checker, fn *sem.FuncRef, args []sem.Type,
	couldBeNull []bool, at diag.Pos) bool {

	if len(fn.Candidates) == 0 {
		cx.diags.Error(at, "Can't call unknown function \"%s\".", fn.Name)
		return false
	}

	tiers := len(matchTiers)
	if strings.HasPrefix(fn.Name, "__") {
		tiers = 1
	}

	type scored struct {
		sym  *sem.Symbol
		cost int
	}
	for tier := 0; tier < tiers; tier++ {
		matches := []scored{}
		for _, cand := range fn.Candidates {
			ft := cand.FunctionType()
			if ft == nil || len(args) > len(ft.Params) {
				continue
			}
			ok := true
			for i := len(args); i < len(ft.Params); i++ {
				if i >= len(ft.Defaults) || ft.Defaults[i] == nil {
					ok = false
					break
				}
			}
			total := 0
			for i := 0; ok && i < len(args); i++ {
				if couldBeNull != nil && couldBeNull[i] {
					if _, isPtr := ft.Params[i].(*sem.Pointer); isPtr {
						continue
					}
				}
				cost, matched := matchCost(cx, args[i], ft.Params[i], tier)
				if !matched {
					ok = false
					break
				}
				total += cost
			}
			if ok {
				matches = append(matches, scored{cand, total})
			}
		}
		if len(matches) == 0 {
			continue
		}
		min := matches[0].cost
		for _, m := range matches[1:] {
			if m.cost < min {
				min = m.cost
			}
		}
		best := []scored{}
		for _, m := range matches {
			if m.cost == min {
				best = append(best, m)
			}
		}
		if len(best) == 1 {
			fn.Matched = best[0].sym
			return true
		}
		syms := make([]*sem.Symbol, len(best))
		for i, m := range best {
			syms[i] = m.sym
		}
		cx.diags.Error(at, "Multiple overloaded functions matched call to \"%s\":%s",
			fn.Name, candidateList(syms))
		return false
	}

	cx.diags.Error(at, "Unable to find any matching overload for call to function \"%s\".%s",
		fn.Name, candidateList(fn.Candidates))
	return false
}

func candidateList(syms []*sem.Symbol) string {
	s := ""
	for _, sym := range syms {
		s += "\n\tcandidate: " + sym.Name + " with type " + sem.TypeName(sym.Type)
	}
	return s
}
