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

import "fmt"

// Variability says whether a value has one instance shared by all program
// instances (uniform), or one independent instance per SIMD lane (varying).
type Variability int

const (
	// Uniform values are shared by every lane of a gang.
	Uniform Variability = iota
	// Varying values have one instance per lane.
	Varying
)

func (v Variability) String() string {
	if v == Varying {
		return "varying"
	}
	return "uniform"
}

// Basic enumerates the atomic value types of the language.
// The declaration order is the type promotion ladder: when two atomic types
// meet in an expression, the higher-ranked one wins.
type Basic int

const (
	Void Basic = iota
	Bool
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float
	Double
)

func (b Basic) String() string {
	switch b {
	case Void:
		return "void"
	case Bool:
		return "bool"
	case Int8:
		return "int8"
	case Uint8:
		return "unsigned int8"
	case Int16:
		return "int16"
	case Uint16:
		return "unsigned int16"
	case Int32:
		return "int"
	case Uint32:
		return "unsigned int"
	case Int64:
		return "int64"
	case Uint64:
		return "unsigned int64"
	case Float:
		return "float"
	case Double:
		return "double"
	default:
		return "?"
	}
}

// Bits returns the storage width of the basic type, or 0 for void and bool.
func (b Basic) Bits() int {
	switch b {
	case Int8, Uint8:
		return 8
	case Int16, Uint16:
		return 16
	case Int32, Uint32, Float:
		return 32
	case Int64, Uint64, Double:
		return 64
	default:
		return 0
	}
}

// Type is the interface to any object that can act as a type in the kernel
// language.
type Type interface {
	Node
	isType() // A dummy function that's implemented by all semantic types.
}

// Atomic is a scalar value type: one of the Basic kinds with a variability
// and constness.
type Atomic struct {
	Basic Basic
	Var   Variability
	Const bool
}

func (*Atomic) isNode() {}
func (*Atomic) isType() {}

// atomics holds the canonical instance of every atomic type, so atomic
// construction never allocates and comparisons can start with an identity
// test.
var atomics [Double + 1][2][2]Atomic

func init() {
	for b := Void; b <= Double; b++ {
		for v := Uniform; v <= Varying; v++ {
			atomics[b][v][0] = Atomic{Basic: b, Var: v}
			atomics[b][v][1] = Atomic{Basic: b, Var: v, Const: true}
		}
	}
}

// AtomicOf returns the canonical atomic type for the given shape.
func AtomicOf(b Basic, v Variability, constant bool) *Atomic {
	c := 0
	if constant {
		c = 1
	}
	return &atomics[b][v][c]
}

var (
	// The fundamental types referenced throughout the checker.
	VoidType       = AtomicOf(Void, Uniform, false)
	UniformBool    = AtomicOf(Bool, Uniform, false)
	VaryingBool    = AtomicOf(Bool, Varying, false)
	UniformInt32   = AtomicOf(Int32, Uniform, false)
	VaryingInt32   = AtomicOf(Int32, Varying, false)
	UniformUInt32  = AtomicOf(Uint32, Uniform, false)
	UniformInt64   = AtomicOf(Int64, Uniform, false)
	VaryingInt64   = AtomicOf(Int64, Varying, false)
	UniformUInt64  = AtomicOf(Uint64, Uniform, false)
	UniformFloat   = AtomicOf(Float, Uniform, false)
	VaryingFloat   = AtomicOf(Float, Varying, false)
	UniformDouble  = AtomicOf(Double, Uniform, false)
	VaryingDouble  = AtomicOf(Double, Varying, false)
)

// EnumEntry is a single named constant of an enum.
type EnumEntry struct {
	Name  string
	Value uint32
}

// Enum is a named set of unsigned 32-bit constants.
type Enum struct {
	Name    string
	Entries []*EnumEntry
	Var     Variability
	Const   bool

	// decl is the declared instance this variant derives from; nil for the
	// declaration itself. Two enum types are the same enum iff their roots
	// are identical.
	decl *Enum
}

func (*Enum) isNode() {}
func (*Enum) isType() {}

// Root returns the declared instance this enum variant derives from.
func (e *Enum) Root() *Enum {
	if e.decl != nil {
		return e.decl
	}
	return e
}

// Entry returns the entry with the given name, or nil.
func (e *Enum) Entry(name string) *EnumEntry {
	for _, en := range e.Entries {
		if en.Name == name {
			return en
		}
	}
	return nil
}

// Pointer is a pointer type. Its variability is the variability of the
// pointer value itself, not of the pointee.
type Pointer struct {
	To    Type
	Var   Variability
	Const bool
}

func (*Pointer) isNode() {}
func (*Pointer) isType() {}

// Reference is a reference type. References are always uniform and never
// reference references.
type Reference struct {
	To Type
}

func (*Reference) isNode() {}
func (*Reference) isType() {}

// Array is a fixed size array type. A count of zero is an incomplete
// (unsized) array. The array's variability is that of its elements.
type Array struct {
	To    Type
	Count int
}

func (*Array) isNode() {}
func (*Array) isType() {}

// Vector is a short vector type of an atomic or enum element.
// The vector's variability is that of its elements.
type Vector struct {
	To    Type
	Count int
}

func (*Vector) isNode() {}
func (*Vector) isType() {}

// StructMember is a single named element of a struct.
type StructMember struct {
	Name  string
	Type  Type
	Const bool
}

// Struct is a named element list type.
type Struct struct {
	Name    string
	Members []StructMember
	Var     Variability
	Const   bool

	// decl is the declared instance this variant derives from; nil for the
	// declaration itself.
	decl *Struct
}

func (*Struct) isNode() {}
func (*Struct) isType() {}

// Root returns the declared instance this struct variant derives from.
func (s *Struct) Root() *Struct {
	if s.decl != nil {
		return s.decl
	}
	return s
}

// Member returns the member with the given name and its index, or nil, -1.
func (s *Struct) Member(name string) (*StructMember, int) {
	for i := range s.Members {
		if s.Members[i].Name == name {
			return &s.Members[i], i
		}
	}
	return nil, -1
}

// ConstMember returns the first member that is const, searching transitively
// through nested struct members. A struct with a const member cannot be
// assigned as a whole.
func (s *Struct) ConstMember() *StructMember {
	for i := range s.Members {
		m := &s.Members[i]
		if m.Const || IsConst(m.Type) {
			return m
		}
		if nested, ok := m.Type.(*Struct); ok {
			if c := nested.ConstMember(); c != nil {
				return c
			}
		}
	}
	return nil
}

// Function is a function signature type.
type Function struct {
	Return Type
	Params []Type
	// Defaults holds the default value expression for each parameter, with
	// nil entries for parameters that have none. Defaults are not part of
	// the signature identity.
	Defaults []Expression
	// Task marks functions that may be used in launch expressions.
	Task bool
}

func (*Function) isNode() {}
func (*Function) isType() {}

// VariabilityOf returns the variability of t.
func VariabilityOf(t Type) Variability {
	switch t := t.(type) {
	case *Atomic:
		return t.Var
	case *Enum:
		return t.Var
	case *Pointer:
		return t.Var
	case *Vector:
		return VariabilityOf(t.To)
	case *Array:
		return VariabilityOf(t.To)
	case *Struct:
		return t.Var
	default:
		// References, functions and void are always uniform.
		return Uniform
	}
}

// IsConst returns the top-level constness of t.
func IsConst(t Type) bool {
	switch t := t.(type) {
	case *Atomic:
		return t.Const
	case *Enum:
		return t.Const
	case *Pointer:
		return t.Const
	case *Vector:
		return IsConst(t.To)
	case *Array:
		return IsConst(t.To)
	case *Struct:
		return t.Const
	default:
		return false
	}
}

// IsVoid returns true if t is the void type at any qualification.
func IsVoid(t Type) bool {
	a, ok := t.(*Atomic)
	return ok && a.Basic == Void
}

// IsBool returns true if t is an atomic boolean.
func IsBool(t Type) bool {
	a, ok := t.(*Atomic)
	return ok && a.Basic == Bool
}

// IsNumeric returns true if t is an atomic integer or floating point type.
func IsNumeric(t Type) bool {
	a, ok := t.(*Atomic)
	return ok && a.Basic >= Int8 && a.Basic <= Double
}

// IsInteger returns true if t is an atomic integer type or an enum.
func IsInteger(t Type) bool {
	if _, ok := t.(*Enum); ok {
		return true
	}
	a, ok := t.(*Atomic)
	return ok && a.Basic >= Int8 && a.Basic <= Uint64
}

// IsFloat returns true if t is an atomic floating point type.
func IsFloat(t Type) bool {
	a, ok := t.(*Atomic)
	return ok && (a.Basic == Float || a.Basic == Double)
}

// IsUnsigned returns true if t is an unsigned atomic integer type or an enum.
func IsUnsigned(t Type) bool {
	if _, ok := t.(*Enum); ok {
		return true
	}
	a, ok := t.(*Atomic)
	if !ok {
		return false
	}
	switch a.Basic {
	case Uint8, Uint16, Uint32, Uint64:
		return true
	default:
		return false
	}
}

// IsSigned returns true if t is a signed atomic integer type.
func IsSigned(t Type) bool {
	a, ok := t.(*Atomic)
	if !ok {
		return false
	}
	switch a.Basic {
	case Int8, Int16, Int32, Int64:
		return true
	default:
		return false
	}
}

// BasicOf returns the basic kind of an atomic type, or Void.
func BasicOf(t Type) Basic {
	if a, ok := t.(*Atomic); ok {
		return a.Basic
	}
	return Void
}

// ReferenceTarget returns the target of a reference type, or t itself if t
// is not a reference.
func ReferenceTarget(t Type) Type {
	if r, ok := t.(*Reference); ok {
		return r.To
	}
	return t
}

// BaseType returns the element type of a composite shape: the element of an
// array or vector, the pointee of a pointer, the target of a reference.
// For any other type it returns t itself.
func BaseType(t Type) Type {
	switch t := t.(type) {
	case *Array:
		return t.To
	case *Vector:
		return t.To
	case *Pointer:
		return t.To
	case *Reference:
		return t.To
	default:
		return t
	}
}

// ElementCount returns the element count of an array or vector, or 0.
func ElementCount(t Type) int {
	switch t := t.(type) {
	case *Array:
		return t.Count
	case *Vector:
		return t.Count
	default:
		return 0
	}
}

// Equal returns true if a and b are structurally identical, including
// constness and variability.
func Equal(a, b Type) bool { return equal(a, b, false) }

// EqualIgnoringConst returns true if a and b are structurally identical
// ignoring constness at every level.
func EqualIgnoringConst(a, b Type) bool { return equal(a, b, true) }

func equal(a, b Type, ignoreConst bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	switch a := a.(type) {
	case *Atomic:
		b, ok := b.(*Atomic)
		return ok && a.Basic == b.Basic && a.Var == b.Var &&
			(ignoreConst || a.Const == b.Const)
	case *Enum:
		b, ok := b.(*Enum)
		return ok && a.Root() == b.Root() && a.Var == b.Var &&
			(ignoreConst || a.Const == b.Const)
	case *Pointer:
		b, ok := b.(*Pointer)
		return ok && a.Var == b.Var && (ignoreConst || a.Const == b.Const) &&
			equal(a.To, b.To, ignoreConst)
	case *Reference:
		b, ok := b.(*Reference)
		return ok && equal(a.To, b.To, ignoreConst)
	case *Array:
		b, ok := b.(*Array)
		return ok && a.Count == b.Count && equal(a.To, b.To, ignoreConst)
	case *Vector:
		b, ok := b.(*Vector)
		return ok && a.Count == b.Count && equal(a.To, b.To, ignoreConst)
	case *Struct:
		b, ok := b.(*Struct)
		return ok && a.Root() == b.Root() && a.Var == b.Var &&
			(ignoreConst || a.Const == b.Const)
	case *Function:
		b, ok := b.(*Function)
		if !ok || a.Task != b.Task || len(a.Params) != len(b.Params) {
			return false
		}
		if !equal(a.Return, b.Return, ignoreConst) {
			return false
		}
		for i := range a.Params {
			if !equal(a.Params[i], b.Params[i], ignoreConst) {
				return false
			}
		}
		return true
	}
	return false
}

// TypeName returns the human readable name of the type, as used in
// diagnostics.
func TypeName(t Type) string {
	switch t := t.(type) {
	case nil:
		return "<error>"
	case *Atomic:
		if t.Basic == Void {
			return "void"
		}
		return qualifiers(t.Var, t.Const) + t.Basic.String()
	case *Enum:
		return qualifiers(t.Var, t.Const) + "enum " + t.Name
	case *Pointer:
		s := TypeName(t.To) + " *"
		if t.Const {
			s += " const"
		}
		if t.Var == Varying {
			s = s + " varying"
		}
		return s
	case *Reference:
		return TypeName(t.To) + " &"
	case *Array:
		if t.Count == 0 {
			return TypeName(t.To) + "[]"
		}
		return fmt.Sprintf("%s[%d]", TypeName(t.To), t.Count)
	case *Vector:
		return fmt.Sprintf("%s<%d>", TypeName(t.To), t.Count)
	case *Struct:
		return qualifiers(t.Var, t.Const) + "struct " + t.Name
	case *Function:
		s := TypeName(t.Return) + "("
		for i, p := range t.Params {
			if i > 0 {
				s += ", "
			}
			s += TypeName(p)
		}
		return s + ")"
	default:
		return fmt.Sprintf("%T", t)
	}
}

func qualifiers(v Variability, c bool) string {
	s := ""
	if c {
		s += "const "
	}
	return s + v.String() + " "
}
