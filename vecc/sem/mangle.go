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

import (
	"fmt"
	"strings"
)

const (
	// The runes used to build mangled type names.
	VaryingRune   = 'ᵛ'
	ConstRune     = 'ᶜ'
	PointerRune   = 'ᵖ'
	RefRune       = 'ʳ'
	ArrayRune     = 'ᵃ'
	VectorRune    = 'ˣ'
	TaskRune      = 'ᵗ'
	FunctionRune  = 'ƒ'
	TypeRune      = 'ː'

	VaryingSuffix  = string(VaryingRune)
	ConstSuffix    = string(ConstRune)
	PointerSuffix  = string(PointerRune)
	RefSuffix      = string(RefRune)
	ArraySuffix    = string(ArrayRune)
	VectorSuffix   = string(VectorRune)
	TaskSuffix     = string(TaskRune)
	FunctionPrefix = string(FunctionRune)
	TypeInfix      = string(TypeRune)
)

var basicCodes = map[Basic]string{
	Void:   "void",
	Bool:   "bool",
	Int8:   "i8",
	Uint8:  "u8",
	Int16:  "i16",
	Uint16: "u16",
	Int32:  "i32",
	Uint32: "u32",
	Int64:  "i64",
	Uint64: "u64",
	Float:  "f32",
	Double: "f64",
}

// Mangle returns the canonical string encoding of the type. The encoding is
// injective: two types mangle to the same string only if they are Equal. It
// is used as the signature identity of function overloads.
func Mangle(t Type) string {
	switch t := t.(type) {
	case nil:
		return "?"
	case *Atomic:
		return basicCodes[t.Basic] + varConst(t.Var, t.Const)
	case *Enum:
		return "E" + t.Name + TypeInfix + varConst(t.Var, t.Const)
	case *Pointer:
		return Mangle(t.To) + PointerSuffix + varConst(t.Var, t.Const)
	case *Reference:
		return Mangle(t.To) + RefSuffix
	case *Array:
		return fmt.Sprintf("%s%s%d%s", Mangle(t.To), TypeInfix, t.Count, ArraySuffix)
	case *Vector:
		return fmt.Sprintf("%s%s%d%s", Mangle(t.To), TypeInfix, t.Count, VectorSuffix)
	case *Struct:
		return "S" + t.Name + TypeInfix + varConst(t.Var, t.Const)
	case *Function:
		params := make([]string, len(t.Params))
		for i, p := range t.Params {
			params[i] = Mangle(p)
		}
		s := FunctionPrefix + Mangle(t.Return) + "(" + strings.Join(params, ",") + ")"
		if t.Task {
			s += TaskSuffix
		}
		return s
	default:
		return fmt.Sprintf("%T", t)
	}
}

func varConst(v Variability, c bool) string {
	s := ""
	if v == Varying {
		s += VaryingSuffix
	}
	if c {
		s += ConstSuffix
	}
	return s
}
