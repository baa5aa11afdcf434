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

// TypeSet owns the canonical instance of every composite type built during a
// compilation. Handing out canonical instances keeps deeply nested type
// comparisons cheap: Equal gets an identity fast path for any two types from
// the same set.
type TypeSet struct {
	pointers   []*Pointer
	references []*Reference
	arrays     []*Array
	vectors    []*Vector
	enums      []*Enum
	structs    []*Struct
	functions  []*Function
}

// NewTypeSet returns a new, empty type set.
func NewTypeSet() *TypeSet {
	return &TypeSet{}
}

// Pointer returns the canonical pointer type with the given shape.
func (ts *TypeSet) Pointer(to Type, v Variability, constant bool) *Pointer {
	for _, p := range ts.pointers {
		if p.Var == v && p.Const == constant && Equal(p.To, to) {
			return p
		}
	}
	out := &Pointer{To: to, Var: v, Const: constant}
	ts.pointers = append(ts.pointers, out)
	return out
}

// Reference returns the canonical reference type to the given target.
// References never nest: a reference to a reference collapses.
func (ts *TypeSet) Reference(to Type) *Reference {
	to = ReferenceTarget(to)
	for _, r := range ts.references {
		if Equal(r.To, to) {
			return r
		}
	}
	out := &Reference{To: to}
	ts.references = append(ts.references, out)
	return out
}

// Array returns the canonical array type with the given element and count.
func (ts *TypeSet) Array(to Type, count int) *Array {
	for _, a := range ts.arrays {
		if a.Count == count && Equal(a.To, to) {
			return a
		}
	}
	out := &Array{To: to, Count: count}
	ts.arrays = append(ts.arrays, out)
	return out
}

// Vector returns the canonical short vector type with the given element and
// count.
func (ts *TypeSet) Vector(to Type, count int) *Vector {
	for _, v := range ts.vectors {
		if v.Count == count && Equal(v.To, to) {
			return v
		}
	}
	out := &Vector{To: to, Count: count}
	ts.vectors = append(ts.vectors, out)
	return out
}

// Function returns the canonical function type with the given signature.
// Defaults are carried on the type but are not part of its identity.
func (ts *TypeSet) Function(ret Type, params []Type, defaults []Expression, task bool) *Function {
	probe := &Function{Return: ret, Params: params, Task: task}
	for _, f := range ts.functions {
		if Equal(f, probe) {
			return f
		}
	}
	probe.Defaults = defaults
	ts.functions = append(ts.functions, probe)
	return probe
}

// DeclareEnum creates the declared instance of a new enum type.
// The result is the uniform, mutable variant; other variants derive from it
// through the variability and constness morphisms.
func (ts *TypeSet) DeclareEnum(name string, entries []*EnumEntry) *Enum {
	out := &Enum{Name: name, Entries: entries, Var: Uniform}
	ts.enums = append(ts.enums, out)
	return out
}

// DeclareStruct creates the declared instance of a new struct type.
// Member types are stored as declared; variants apply their variability to
// every member.
func (ts *TypeSet) DeclareStruct(name string, members []StructMember) *Struct {
	out := &Struct{Name: name, Members: members, Var: Uniform}
	ts.structs = append(ts.structs, out)
	return out
}

func (ts *TypeSet) enumVariant(e *Enum, v Variability, constant bool) *Enum {
	root := e.Root()
	if root.Var == v && root.Const == constant {
		return root
	}
	for _, x := range ts.enums {
		if x.Root() == root && x.Var == v && x.Const == constant {
			return x
		}
	}
	out := &Enum{Name: root.Name, Entries: root.Entries, Var: v, Const: constant, decl: root}
	ts.enums = append(ts.enums, out)
	return out
}

func (ts *TypeSet) structVariant(s *Struct, v Variability, constant bool) *Struct {
	root := s.Root()
	if root.Var == v && root.Const == constant {
		return root
	}
	for _, x := range ts.structs {
		if x.Root() == root && x.Var == v && x.Const == constant {
			return x
		}
	}
	members := make([]StructMember, len(root.Members))
	for i, m := range root.Members {
		members[i] = StructMember{Name: m.Name, Type: ts.WithVariability(m.Type, v), Const: m.Const}
	}
	out := &Struct{Name: root.Name, Members: members, Var: v, Const: constant, decl: root}
	ts.structs = append(ts.structs, out)
	return out
}

// WithVariability returns t with its variability replaced by v, recursing
// into composite shapes: a varying array has varying elements, a varying
// struct has varying members. A pointer's variability is the variability of
// the pointer itself, not of the pointee. References are always uniform and
// are returned unchanged.
func (ts *TypeSet) WithVariability(t Type, v Variability) Type {
	switch t := t.(type) {
	case *Atomic:
		return AtomicOf(t.Basic, v, t.Const)
	case *Enum:
		return ts.enumVariant(t, v, t.Const)
	case *Pointer:
		if t.Var == v {
			return t
		}
		return ts.Pointer(t.To, v, t.Const)
	case *Vector:
		return ts.Vector(ts.WithVariability(t.To, v), t.Count)
	case *Array:
		return ts.Array(ts.WithVariability(t.To, v), t.Count)
	case *Struct:
		return ts.structVariant(t, v, t.Const)
	default:
		return t
	}
}

// AsUniform returns t with uniform variability.
func (ts *TypeSet) AsUniform(t Type) Type { return ts.WithVariability(t, Uniform) }

// AsVarying returns t with varying variability.
func (ts *TypeSet) AsVarying(t Type) Type { return ts.WithVariability(t, Varying) }

func (ts *TypeSet) withConst(t Type, constant bool) Type {
	switch t := t.(type) {
	case *Atomic:
		return AtomicOf(t.Basic, t.Var, constant)
	case *Enum:
		return ts.enumVariant(t, t.Var, constant)
	case *Pointer:
		if t.Const == constant {
			return t
		}
		return ts.Pointer(t.To, t.Var, constant)
	case *Vector:
		return ts.Vector(ts.withConst(t.To, constant), t.Count)
	case *Array:
		return ts.Array(ts.withConst(t.To, constant), t.Count)
	case *Struct:
		return ts.structVariant(t, t.Var, constant)
	default:
		return t
	}
}

// AsConst returns t with top-level constness set. Array element constness
// follows the array, as in C.
func (ts *TypeSet) AsConst(t Type) Type { return ts.withConst(t, true) }

// AsMutable returns t with top-level constness cleared.
func (ts *TypeSet) AsMutable(t Type) Type { return ts.withConst(t, false) }

// DecayArray returns the pointer-to-element type an array decays to in a
// value context. Non-array types are returned unchanged.
func (ts *TypeSet) DecayArray(t Type) Type {
	if a, ok := t.(*Array); ok {
		return ts.Pointer(a.To, Uniform, false)
	}
	return t
}
