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

package check_test

import (
	"github.com/google/vecc/vecc/ast"
	"github.com/google/vecc/vecc/check"
	"github.com/google/vecc/vecc/diag"
	"github.com/google/vecc/vecc/sem"
	"github.com/google/vecc/vecc/target"
)

// The tests build ast fragments by hand: the parser is a separate concern
// and the semantic passes only see nodes.

var testPos = diag.Pos{Filename: "check_test.vc", Line: 1, Column: 1}

func at() ast.Loc { return ast.In(testPos) }

func id(name string) *ast.Identifier {
	return &ast.Identifier{Loc: at(), Value: name}
}

func num(text string) *ast.Number {
	return &ast.Number{Loc: at(), Value: text}
}

func binary(lhs ast.Node, op string, rhs ast.Node) *ast.BinaryOp {
	return &ast.BinaryOp{Loc: at(), LHS: lhs, Operator: op, RHS: rhs}
}

func assign(lhs ast.Node, rhs ast.Node) *ast.Assign {
	return &ast.Assign{Loc: at(), LHS: lhs, Operator: ast.OpAssign, RHS: rhs}
}

func callFn(name string, args ...ast.Node) *ast.Call {
	return &ast.Call{Loc: at(), Target: id(name), Arguments: args}
}

func newModule() *check.Module {
	return check.NewModule("check_test", target.Default(), target.OptFlags{})
}

func newFastMathModule() *check.Module {
	return check.NewModule("check_test", target.Default(), target.OptFlags{FastMath: true})
}

func newModuleWith(ti target.Info, opts target.OptFlags) *check.Module {
	return check.NewModule("check_test", ti, opts)
}

// declare binds a variable of the given type at global scope.
func declare(m *check.Module, name string, ty sem.Type) *sem.Symbol {
	s, _ := m.AddVariable(name, ty, testPos)
	return s
}

// declareConst binds a const variable with a compile time value.
func declareConst(m *check.Module, name string, ty sem.Type, value sem.Expression) *sem.Symbol {
	s, _ := m.AddVariable(name, m.Types.AsConst(ty), testPos)
	s.Value = value
	return s
}

// declareFn binds a function overload with the given parameter types.
func declareFn(m *check.Module, name string, ret sem.Type, params ...sem.Type) *sem.Symbol {
	s, _ := m.AddFunction(name, m.Types.Function(ret, params, nil, false), testPos)
	return s
}

// declareTask binds a task-qualified function overload.
func declareTask(m *check.Module, name string, ret sem.Type, params ...sem.Type) *sem.Symbol {
	s, _ := m.AddFunction(name, m.Types.Function(ret, params, nil, true), testPos)
	return s
}

// firstError returns the first error diagnostic message, or "".
func firstError(m *check.Module) string {
	errs := m.Diags.Errors()
	if len(errs) == 0 {
		return ""
	}
	return errs[0].Message
}

// firstWarning returns the first warning diagnostic message, or "".
func firstWarning(m *check.Module) string {
	warns := m.Diags.Warnings()
	if len(warns) == 0 {
		return ""
	}
	return warns[0].Message
}
