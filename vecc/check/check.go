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

// Package check implements the semantic passes of the compiler front end.
// It is responsible for converting the abstract syntax tree produced by the
// parser into a typed semantic graph: binding names, resolving overloads,
// inserting the implicit conversions the language defines, and folding
// constant expressions.
package check

import (
	"github.com/google/vecc/vecc/ast"
	"github.com/google/vecc/vecc/diag"
	"github.com/google/vecc/vecc/sem"
	"github.com/google/vecc/vecc/target"
)

// Module is one compilation unit being checked. It owns the symbol table,
// the type set and the diagnostic log for the unit.
type Module struct {
	Name    string
	Target  target.Info
	Opts    target.OptFlags
	Types   *sem.TypeSet
	Symbols *sem.SymbolTable
	Diags   *diag.Log
}

// builtinTypeNames binds the language type keywords in the global type
// namespace. The names resolve to the uniform mutable base; the checker
// applies written qualifiers, defaulting unqualified types to varying.
var builtinTypeNames = map[string]sem.Basic{
	"void":   sem.Void,
	"bool":   sem.Bool,
	"int8":   sem.Int8,
	"uint8":  sem.Uint8,
	"int16":  sem.Int16,
	"uint16": sem.Uint16,
	"int":    sem.Int32,
	"int32":  sem.Int32,
	"uint":   sem.Uint32,
	"uint32": sem.Uint32,
	"int64":  sem.Int64,
	"uint64": sem.Uint64,
	"float":  sem.Float,
	"double": sem.Double,
}

// NewModule returns a module with the builtin types registered, ready to
// accept declarations and expressions.
func NewModule(name string, ti target.Info, opts target.OptFlags) *Module {
	diags := &diag.Log{}
	m := &Module{
		Name:    name,
		Target:  ti,
		Opts:    opts,
		Types:   sem.NewTypeSet(),
		Symbols: sem.NewSymbolTable(diags),
		Diags:   diags,
	}
	for name, b := range builtinTypeNames {
		m.Symbols.AddType(name, sem.AtomicOf(b, sem.Uniform, false), diag.NoPos)
	}
	return m
}

// AddFunction canonicalizes the signature, binds the function into the
// overload set for its name, and returns the symbol. The second result is
// false if an overload with the same signature was already present, in
// which case the existing set is unchanged.
//
// Canonicalization erases top-level const from every non-reference
// parameter: constness of a by-value parameter is a property of the body,
// not of the signature.
func (m *Module) AddFunction(name string, ft *sem.Function, at diag.Pos) (*sem.Symbol, bool) {
	params := make([]sem.Type, len(ft.Params))
	for i, p := range ft.Params {
		if _, isRef := p.(*sem.Reference); !isRef {
			p = m.Types.AsMutable(p)
		}
		params[i] = p
	}
	canonical := m.Types.Function(ft.Return, params, ft.Defaults, ft.Task)
	sym := &sem.Symbol{
		Name:    name,
		At:      at,
		Type:    canonical,
		Storage: sem.ClassExtern,
	}
	if !m.Symbols.AddFunction(sym) {
		return sym, false
	}
	return sym, true
}

// AddVariable declares a variable with the given type in the current scope
// and returns its symbol. The second result is false on redeclaration.
func (m *Module) AddVariable(name string, t sem.Type, at diag.Pos) (*sem.Symbol, bool) {
	sym := &sem.Symbol{Name: name, At: at, Type: t, Storage: sem.ClassAuto}
	return sym, m.Symbols.AddVariable(sym)
}

// checker threads the per-unit state through the pass functions.
type checker struct {
	module   *Module
	types    *sem.TypeSet
	symbols  *sem.SymbolTable
	diags    *diag.Log
	target   target.Info
	opts     target.OptFlags
	mappings *Mappings
}

func (m *Module) checker(mappings *Mappings) *checker {
	return &checker{
		module:   m,
		types:    m.Types,
		symbols:  m.Symbols,
		diags:    m.Diags,
		target:   m.Target,
		opts:     m.Opts,
		mappings: mappings,
	}
}

// Check runs the type checking pass over the expression tree, returning the
// typed semantic expression, or nil if checking failed. Warnings do not
// discard the result.
func (m *Module) Check(in ast.Node) sem.Expression {
	return m.run(in, false, nil)
}

// CheckAndOptimize runs the type checking pass followed by the constant
// folding pass. It returns nil if checking failed; the diagnostics are in
// m.Diags.
func (m *Module) CheckAndOptimize(in ast.Node) sem.Expression {
	return m.run(in, true, nil)
}

// CheckAndOptimizeMapped is CheckAndOptimize recording ast to semantic node
// mappings for tooling.
func (m *Module) CheckAndOptimizeMapped(in ast.Node, mappings *Mappings) sem.Expression {
	return m.run(in, true, mappings)
}

func (m *Module) run(in ast.Node, optimize bool, mappings *Mappings) (out sem.Expression) {
	cx := m.checker(mappings)
	defer func() {
		// A fatal diagnostic aborts the pass; anything else propagates.
		if err := recover(); err != nil {
			if err != diag.AbortCheck {
				panic(err)
			}
			out = nil
		}
	}()
	out = expression(cx, in)
	if sem.IsInvalid(out) {
		return nil
	}
	if optimize {
		out = fold(cx, out)
	}
	return out
}

// ResolveOverload binds the overload of f matching the argument types,
// mutating f in place. argCouldBeNull marks arguments that are compile time
// all-zero integers, which may bind to pointer parameters. It returns false
// after reporting if no unique overload matches.
func (m *Module) ResolveOverload(f *sem.FuncRef, args []sem.Type, argCouldBeNull []bool, at diag.Pos) bool {
	cx := m.checker(nil)
	return resolveOverload(cx, f, args, argCouldBeNull, at)
}

func (cx *checker) errorf(at ast.Node, format string, args ...interface{}) {
	cx.diags.Error(astPos(at), format, args...)
}

func (cx *checker) warningf(at ast.Node, format string, args ...interface{}) {
	cx.diags.Warning(astPos(at), format, args...)
}

func (cx *checker) perff(at ast.Node, format string, args ...interface{}) {
	cx.diags.PerformanceWarning(astPos(at), format, args...)
}

func (cx *checker) icef(at ast.Node, format string, args ...interface{}) {
	cx.diags.Fatal("INTERNAL ERROR: "+format, args...)
}

func astPos(at ast.Node) diag.Pos {
	if at == nil {
		return diag.NoPos
	}
	return at.Pos()
}

// add records an ast to semantic node mapping, when mappings are being
// collected.
func (cx *checker) add(in ast.Node, out sem.Node) {
	if cx.mappings != nil {
		cx.mappings.Add(in, out)
	}
}
