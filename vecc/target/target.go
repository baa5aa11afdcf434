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

// Package target describes the compilation target the semantic passes need
// to know about. The full target description (instruction selection, vector
// ISA) lives with the code emitter; the checker only reads these records.
package target

// Info describes the properties of the machine being compiled for.
type Info struct {
	// VectorWidth is the number of SIMD lanes in the target's program
	// instances.
	VectorWidth int
	// Is32Bit reports whether the target uses 32-bit pointers.
	Is32Bit bool
}

// PointerBits returns the width of a pointer on the target, in bits.
func (i Info) PointerBits() int {
	if i.Is32Bit {
		return 32
	}
	return 64
}

// Default returns the target description used when no explicit target is
// provided.
func Default() Info {
	return Info{VectorWidth: 8, Is32Bit: false}
}

// OptFlags holds the optimization switches that change how the semantic
// passes rewrite expressions.
type OptFlags struct {
	// FastMath permits algebraic rewrites that are not bit-exact, such as
	// turning a float division into a multiplication by the reciprocal.
	FastMath bool
	// Force32BitAddressing makes pointer difference and pointer arithmetic
	// use 32-bit offsets even on 64-bit targets.
	Force32BitAddressing bool
	// DisableMaskedStoreToStore disables the rewrite of masked stores into
	// plain stores when the mask is known to be all-on.
	DisableMaskedStoreToStore bool
	// DisableMaskAllOnOptimizations disables all rewrites that are gated on
	// the execution mask being all-on.
	DisableMaskAllOnOptimizations bool
	// DisableUniformMemoryOptimizations disables the use of scalar loads and
	// stores for uniform memory locations.
	DisableUniformMemoryOptimizations bool
}
