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
	"github.com/google/vecc/core/text/similar"
	"github.com/google/vecc/vecc/diag"
)

// frame is one lexical scope of the symbol table. Each frame carries three
// namespaces: variables, type aliases and function overload sets.
type frame struct {
	vars  map[string]*Symbol
	types map[string]Type
	funcs map[string][]*Symbol
}

func newFrame() *frame {
	return &frame{
		vars:  map[string]*Symbol{},
		types: map[string]Type{},
		funcs: map[string][]*Symbol{},
	}
}

// SymbolTable is a stack of lexical scope frames. The outermost frame is the
// global frame and is never popped during normal compilation.
type SymbolTable struct {
	frames []*frame
	sink   diag.Sink
}

// NewSymbolTable returns a symbol table with only the global frame, using
// the sink for redeclaration diagnostics.
func NewSymbolTable(sink diag.Sink) *SymbolTable {
	return &SymbolTable{frames: []*frame{newFrame()}, sink: sink}
}

// PushScope enters a new innermost scope.
func (t *SymbolTable) PushScope() {
	t.frames = append(t.frames, newFrame())
}

// PopScope leaves the innermost scope, dropping its bindings.
// The global frame cannot be popped.
func (t *SymbolTable) PopScope() {
	if len(t.frames) == 1 {
		t.sink.Fatal("Popped the global symbol table scope.")
	}
	t.frames = t.frames[:len(t.frames)-1]
}

// Depth returns the number of open scopes, including the global frame.
func (t *SymbolTable) Depth() int { return len(t.frames) }

func (t *SymbolTable) innermost() *frame { return t.frames[len(t.frames)-1] }

// AddVariable binds the symbol in the innermost scope.
// Redeclaring a name in the same scope is an error and returns false.
// Shadowing a name bound in an outer scope is accepted with a warning.
func (t *SymbolTable) AddVariable(sym *Symbol) bool {
	f := t.innermost()
	if prev, present := f.vars[sym.Name]; present {
		t.sink.Error(sym.At, "Ignoring redeclaration of symbol \"%s\" (previously declared at %v).",
			sym.Name, prev.At)
		return false
	}
	if len(t.frames) > 1 {
		for i := len(t.frames) - 2; i >= 0; i-- {
			if prev, present := t.frames[i].vars[sym.Name]; present {
				t.sink.Warning(sym.At, "Symbol \"%s\" shadows symbol declared in outer scope at %v.",
					sym.Name, prev.At)
				break
			}
		}
	}
	f.vars[sym.Name] = sym
	return true
}

// LookupVariable finds the binding of name, searching scopes innermost
// first. Returns nil if the name is not bound.
func (t *SymbolTable) LookupVariable(name string) *Symbol {
	for i := len(t.frames) - 1; i >= 0; i-- {
		if s, ok := t.frames[i].vars[name]; ok {
			return s
		}
	}
	return nil
}

// AddType binds a type alias in the innermost scope, under the same
// redeclaration and shadowing rules as variables.
func (t *SymbolTable) AddType(name string, ty Type, at diag.Pos) bool {
	f := t.innermost()
	if _, present := f.types[name]; present {
		t.sink.Error(at, "Ignoring redefinition of type \"%s\".", name)
		return false
	}
	if len(t.frames) > 1 {
		for i := len(t.frames) - 2; i >= 0; i-- {
			if _, present := t.frames[i].types[name]; present {
				t.sink.Warning(at, "Type \"%s\" shadows type declared in outer scope.", name)
				break
			}
		}
	}
	f.types[name] = ty
	return true
}

// LookupType finds the type bound to name, searching scopes innermost
// first. Returns nil if the name is not bound.
func (t *SymbolTable) LookupType(name string) Type {
	for i := len(t.frames) - 1; i >= 0; i-- {
		if ty, ok := t.frames[i].types[name]; ok {
			return ty
		}
	}
	return nil
}

// AddFunction appends the symbol to the overload set for its name in the
// innermost scope. The overload set is keyed on the mangled signature:
// adding a function whose signature is already present returns false
// without a diagnostic, and leaves the set unchanged. The caller treats a
// false return as a redefinition.
func (t *SymbolTable) AddFunction(sym *Symbol) bool {
	ft := sym.FunctionType()
	if ft == nil {
		t.sink.Fatal("AddFunction called with non-function symbol \"%s\".", sym.Name)
		return false
	}
	f := t.innermost()
	sig := Mangle(ft)
	for _, existing := range f.funcs[sym.Name] {
		if Mangle(existing.Type) == sig {
			return false
		}
	}
	f.funcs[sym.Name] = append(f.funcs[sym.Name], sym)
	return true
}

// LookupFunctionAll returns the full overload set visible for name,
// innermost scopes first, in insertion order within a scope.
func (t *SymbolTable) LookupFunctionAll(name string) []*Symbol {
	var out []*Symbol
	for i := len(t.frames) - 1; i >= 0; i-- {
		out = append(out, t.frames[i].funcs[name]...)
	}
	return out
}

// LookupFunctionExact returns the overload of name with exactly the given
// signature, or nil.
func (t *SymbolTable) LookupFunctionExact(name string, ft *Function) *Symbol {
	for _, s := range t.LookupFunctionAll(name) {
		if Equal(s.Type, ft) {
			return s
		}
	}
	return nil
}

// ClosestVariableOrFunction returns the in-scope variable and function
// names within a small edit distance of name, for "did you mean"
// diagnostics. Variables and functions share a namespace for this purpose.
func (t *SymbolTable) ClosestVariableOrFunction(name string) []string {
	candidates := []string{}
	for _, f := range t.frames {
		for n := range f.vars {
			candidates = append(candidates, n)
		}
		for n := range f.funcs {
			candidates = append(candidates, n)
		}
	}
	return similar.Closest(name, candidates)
}

// ClosestType returns the in-scope type names within a small edit distance
// of name. Types do not mix with the variable namespace.
func (t *SymbolTable) ClosestType(name string) []string {
	candidates := []string{}
	for _, f := range t.frames {
		for n := range f.types {
			candidates = append(candidates, n)
		}
	}
	return similar.Closest(name, candidates)
}
