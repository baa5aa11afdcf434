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
	"strconv"
	"strings"

	"github.com/google/vecc/core/text/similar"
	"github.com/google/vecc/vecc/ast"
	"github.com/google/vecc/vecc/sem"
)

// expression translates the ast expression to a typed semantic expression.
// On failure a diagnostic has been reported and Invalid is returned.
func expression(cx *checker, in ast.Node) sem.Expression {
	var out sem.Expression
	switch in := in.(type) {
	case *ast.Number:
		out = number(cx, in)
	case *ast.Bool:
		out = sem.BoolValue(in.Value)
	case *ast.Null:
		out = &sem.NullPointer{AST: in, Type: cx.types.Pointer(sem.VoidType, sem.Uniform, false)}
	case *ast.Identifier:
		out = identifier(cx, in)
	case *ast.UnaryOp:
		out = unaryOp(cx, in)
	case *ast.BinaryOp:
		out = binaryOp(cx, in)
	case *ast.Assign:
		out = assignOp(cx, in)
	case *ast.Select:
		out = selectOp(cx, in)
	case *ast.Call:
		out = call(cx, in)
	case *ast.Index:
		out = index(cx, in)
	case *ast.Member:
		out = member(cx, in)
	case *ast.AddressOf:
		out = addressOf(cx, in)
	case *ast.Deref:
		out = deref(cx, in)
	case *ast.Cast:
		out = explicitCast(cx, in)
	case *ast.SizeOf:
		out = sizeOf(cx, in)
	case *ast.Sync:
		out = &sem.Sync{AST: in}
	case *ast.ExpressionList:
		out = expressionList(cx, in)
	case nil:
		cx.icef(in, "nil expression node")
		return sem.Invalid{}
	default:
		cx.icef(in, "Unhandled expression type %T found", in)
		return sem.Invalid{}
	}
	if !sem.IsInvalid(out) {
		cx.add(in, out)
	}
	return out
}

// number decides the type of a numeric constant from its suffix and form.
// Unsuffixed floating point constants are single precision; unsuffixed
// integers are int unless they only fit in a wider type.
func number(cx *checker, in *ast.Number) sem.Expression {
	text := in.Value
	lower := strings.ToLower(text)
	switch {
	case strings.HasSuffix(lower, "d"):
		if v, err := strconv.ParseFloat(text[:len(text)-1], 64); err == nil {
			return sem.DoubleValue(v)
		}
	case strings.HasSuffix(lower, "f"):
		if v, err := strconv.ParseFloat(text[:len(text)-1], 32); err == nil {
			return sem.FloatValue(v)
		}
	case strings.HasSuffix(lower, "u"):
		if v, err := strconv.ParseUint(text[:len(text)-1], 0, 64); err == nil {
			if v <= 0xffffffff {
				return sem.Uint32Value(v)
			}
			return sem.Uint64Value(v)
		}
	case strings.ContainsAny(lower, ".e") && !strings.HasPrefix(lower, "0x"):
		if v, err := strconv.ParseFloat(text, 32); err == nil {
			return sem.FloatValue(v)
		}
	default:
		if v, err := strconv.ParseInt(text, 0, 64); err == nil {
			if v >= -0x80000000 && v <= 0x7fffffff {
				return sem.Int32Value(v)
			}
			return sem.Int64Value(v)
		}
		if v, err := strconv.ParseUint(text, 0, 64); err == nil {
			return sem.Uint64Value(v)
		}
	}
	cx.errorf(in, "Couldn't parse \"%s\" as a number.", text)
	return sem.Invalid{}
}

// identifier resolves a name against the variable namespace and then the
// function namespace. Failed lookups report an error with near miss
// suggestions.
func identifier(cx *checker, in *ast.Identifier) sem.Expression {
	if sym := cx.symbols.LookupVariable(in.Value); sym != nil {
		return &sem.VarRef{
			AST: in,
			Sym: sym,
			Ptr: cx.types.Pointer(sym.Type, sem.VariabilityOf(sym.Type), false),
		}
	}
	if overloads := cx.symbols.LookupFunctionAll(in.Value); len(overloads) > 0 {
		return &sem.FuncRef{AST: in, Name: in.Value, Candidates: overloads}
	}
	msg := "Undefined symbol \"%s\"."
	if hints := cx.symbols.ClosestVariableOrFunction(in.Value); len(hints) > 0 {
		cx.errorf(in, msg+" Did you mean \"%s\"?", in.Value, strings.Join(hints, "\" or \""))
	} else {
		cx.errorf(in, msg, in.Value)
	}
	return sem.Invalid{}
}

// rvalue converts a storage-designating expression to its value: reads
// through references. Arrays are left alone; value contexts that need the
// decayed pointer use decay.
func rvalue(cx *checker, e sem.Expression) sem.Expression {
	if sem.IsInvalid(e) {
		return e
	}
	if r, ok := e.ExpressionType().(*sem.Reference); ok {
		return &sem.RefDeref{AST: astOf(e), Type: r.To, Expression: e}
	}
	return e
}

// decay substitutes an array valued expression with the address of its
// first element.
func decay(cx *checker, e sem.Expression) sem.Expression {
	if sem.IsInvalid(e) {
		return e
	}
	arr, ok := e.ExpressionType().(*sem.Array)
	if !ok {
		return e
	}
	v := sem.VariabilityOf(arr)
	elem := arr.To
	first := &sem.Index{
		AST:   astOf(e),
		Type:  elem,
		Base:  e,
		Index: sem.Int32Value(0),
		Ptr:   cx.types.Pointer(elem, v, false),
	}
	return &sem.AddressOf{
		AST:        astOf(e),
		Type:       cx.types.DecayArray(arr),
		Expression: first,
	}
}

// operand produces the value form of an expression for arithmetic contexts:
// references are read and arrays decay to pointers.
func operand(cx *checker, in ast.Node) sem.Expression {
	return decay(cx, rvalue(cx, expression(cx, in)))
}

func selectOp(cx *checker, in *ast.Select) sem.Expression {
	cond := rvalue(cx, expression(cx, in.Condition))
	t := operand(cx, in.True)
	f := operand(cx, in.False)
	if sem.IsInvalid(cond) || sem.IsInvalid(t) || sem.IsInvalid(f) {
		return sem.Invalid{}
	}
	condVarying := sem.VariabilityOf(cond.ExpressionType()) == sem.Varying
	boolT := sem.UniformBool
	if condVarying {
		boolT = sem.VaryingBool
	}
	cond = convert(cx, cond, boolT, "select condition", in.Condition)
	if sem.IsInvalid(cond) {
		return sem.Invalid{}
	}
	common := cx.types.MoreGeneralType(t.ExpressionType(), f.ExpressionType(),
		in.Pos(), "select expression", condVarying, 0, cx.diags)
	if common == nil {
		return sem.Invalid{}
	}
	t = convert(cx, t, common, "select expression", in.True)
	f = convert(cx, f, common, "select expression", in.False)
	if sem.IsInvalid(t) || sem.IsInvalid(f) {
		return sem.Invalid{}
	}
	return &sem.Select{AST: in, Type: common, Condition: cond, True: t, False: f}
}

func call(cx *checker, in *ast.Call) sem.Expression {
	targetExpr := expression(cx, in.Target)
	if sem.IsInvalid(targetExpr) {
		return sem.Invalid{}
	}
	fn, ok := targetExpr.(*sem.FuncRef)
	if !ok {
		cx.errorf(in, "Can't call non-function type \"%s\".",
			sem.TypeName(targetExpr.ExpressionType()))
		return sem.Invalid{}
	}

	args := make([]sem.Expression, len(in.Arguments))
	argTypes := make([]sem.Type, len(in.Arguments))
	couldBeNull := make([]bool, len(in.Arguments))
	for i, a := range in.Arguments {
		arg := rvalue(cx, expression(cx, a))
		if sem.IsInvalid(arg) {
			return sem.Invalid{}
		}
		args[i] = arg
		argTypes[i] = arg.ExpressionType()
		couldBeNull[i] = sem.IsZeroLiteral(arg)
	}

	if !resolveOverload(cx, fn, argTypes, couldBeNull, in.Pos()) {
		return sem.Invalid{}
	}
	ft := fn.Matched.FunctionType()

	if in.Launch && !ft.Task {
		cx.errorf(in, "Launch expression illegal with non-task-qualified function.")
		return sem.Invalid{}
	}
	if !in.Launch && ft.Task {
		cx.errorf(in, "Task-qualified function \"%s\" can only be called through a launch expression.", fn.Name)
		return sem.Invalid{}
	}

	// Convert the provided arguments, then append defaults for the rest.
	converted := make([]sem.Expression, 0, len(ft.Params))
	for i, arg := range args {
		c := convert(cx, arg, ft.Params[i], "function call argument", in.Arguments[i])
		if sem.IsInvalid(c) {
			return sem.Invalid{}
		}
		converted = append(converted, c)
	}
	for i := len(args); i < len(ft.Params); i++ {
		converted = append(converted, ft.Defaults[i])
	}

	var launchCount sem.Expression
	if in.Launch && in.LaunchCount != nil {
		launchCount = rvalue(cx, expression(cx, in.LaunchCount))
		if sem.IsInvalid(launchCount) {
			return sem.Invalid{}
		}
		launchCount = convert(cx, launchCount, sem.UniformInt32, "launch count", in.LaunchCount)
		if sem.IsInvalid(launchCount) {
			return sem.Invalid{}
		}
	}

	return &sem.Call{
		AST:         in,
		Type:        ft.Return,
		Target:      fn,
		Arguments:   converted,
		Launch:      in.Launch,
		LaunchCount: launchCount,
	}
}

func index(cx *checker, in *ast.Index) sem.Expression {
	base := rvalue(cx, expression(cx, in.Object))
	idx := operand(cx, in.Index)
	if sem.IsInvalid(base) || sem.IsInvalid(idx) {
		return sem.Invalid{}
	}

	it := idx.ExpressionType()
	if !sem.IsInteger(it) {
		cx.errorf(in.Index, "Array index must have integer type, got \"%s\".", sem.TypeName(it))
		return sem.Invalid{}
	}

	bt := base.ExpressionType()
	var elem sem.Type
	switch bt := bt.(type) {
	case *sem.Array:
		elem = bt.To
		if lit, ok := sem.IsLiteral(idx); ok && bt.Count > 0 {
			if v, ok := lit.(sem.Int32Value); ok && (int(v) < 0 || int(v) >= bt.Count) {
				cx.errorf(in.Index, "Array index %d is out of bounds for type \"%s\".",
					int(v), sem.TypeName(bt))
			}
		}
	case *sem.Pointer:
		if sem.IsVoid(bt.To) {
			cx.errorf(in, "Illegal to index a \"void *\" pointer.")
			return sem.Invalid{}
		}
		elem = bt.To
	case *sem.Vector:
		elem = bt.To
	default:
		cx.errorf(in, "Can't index into non-array, non-pointer type \"%s\".", sem.TypeName(bt))
		return sem.Invalid{}
	}

	// The element is varying if either the base or the index is varying.
	v := sem.VariabilityOf(bt)
	if sem.VariabilityOf(it) == sem.Varying {
		v = sem.Varying
	}
	if v == sem.Varying {
		elem = cx.types.AsVarying(elem)
	}

	return &sem.Index{
		AST:   in,
		Type:  elem,
		Base:  base,
		Index: idx,
		Ptr:   cx.types.Pointer(elem, v, false),
	}
}

func member(cx *checker, in *ast.Member) sem.Expression {
	obj := rvalue(cx, expression(cx, in.Object))
	if sem.IsInvalid(obj) {
		return sem.Invalid{}
	}

	ot := obj.ExpressionType()
	if in.Arrow {
		ptr, ok := ot.(*sem.Pointer)
		if !ok {
			cx.errorf(in, "Operator \"->\" can only be applied to pointer types, got \"%s\".",
				sem.TypeName(ot))
			return sem.Invalid{}
		}
		obj = &sem.Deref{AST: in, Type: ptr.To, Expression: obj}
		ot = ptr.To
	} else if _, isPtr := ot.(*sem.Pointer); isPtr {
		cx.errorf(in, "Member operator \".\" can't be applied to pointer type \"%s\". Did you mean \"->\"?",
			sem.TypeName(ot))
		return sem.Invalid{}
	}

	st, ok := ot.(*sem.Struct)
	if !ok {
		cx.errorf(in, "Member operator \"%s\" can't be used with type \"%s\".",
			memberOp(in), sem.TypeName(ot))
		return sem.Invalid{}
	}
	m, fi := st.Member(in.Name.Value)
	if m == nil {
		names := make([]string, len(st.Members))
		for i := range st.Members {
			names[i] = st.Members[i].Name
		}
		if hints := similar.Closest(in.Name.Value, names); len(hints) > 0 {
			cx.errorf(in.Name, "\"%s\" is not a member of type \"%s\". Did you mean \"%s\"?",
				in.Name.Value, sem.TypeName(st), strings.Join(hints, "\" or \""))
		} else {
			cx.errorf(in.Name, "\"%s\" is not a member of type \"%s\".",
				in.Name.Value, sem.TypeName(st))
		}
		return sem.Invalid{}
	}

	mt := m.Type
	if m.Const || st.Const {
		mt = cx.types.AsConst(mt)
	}
	var ptr sem.Type
	if sem.LValueTypeOf(obj) != nil || in.Arrow {
		ptr = cx.types.Pointer(mt, sem.VariabilityOf(st), false)
	}
	return &sem.Member{
		AST:    in,
		Type:   mt,
		Object: obj,
		Name:   m.Name,
		Field:  fi,
		Arrow:  in.Arrow,
		Ptr:    ptr,
	}
}

func memberOp(in *ast.Member) string {
	if in.Arrow {
		return "->"
	}
	return "."
}

func addressOf(cx *checker, in *ast.AddressOf) sem.Expression {
	e := expression(cx, in.Expression)
	if sem.IsInvalid(e) {
		return sem.Invalid{}
	}
	lv := sem.LValueTypeOf(rvalueForAddress(e))
	if lv == nil {
		cx.errorf(in, "Illegal to take address of non-lvalue or function.")
		return sem.Invalid{}
	}
	return &sem.AddressOf{AST: in, Type: lv, Expression: e}
}

// rvalueForAddress reads through a reference so &ref yields the address of
// the referenced storage.
func rvalueForAddress(e sem.Expression) sem.Expression {
	if r, ok := e.ExpressionType().(*sem.Reference); ok {
		return &sem.RefDeref{AST: astOf(e), Type: r.To, Expression: e}
	}
	return e
}

func deref(cx *checker, in *ast.Deref) sem.Expression {
	e := decay(cx, rvalue(cx, expression(cx, in.Expression)))
	if sem.IsInvalid(e) {
		return sem.Invalid{}
	}
	pt, ok := e.ExpressionType().(*sem.Pointer)
	if !ok {
		cx.errorf(in, "Illegal to dereference non-pointer type \"%s\".",
			sem.TypeName(e.ExpressionType()))
		return sem.Invalid{}
	}
	if sem.IsVoid(pt.To) {
		cx.errorf(in, "Illegal to dereference a \"void *\" pointer.")
		return sem.Invalid{}
	}
	// Loading through a varying pointer produces a varying value.
	to := pt.To
	if pt.Var == sem.Varying {
		to = cx.types.AsVarying(to)
	}
	return &sem.Deref{AST: in, Type: to, Expression: e}
}

func explicitCast(cx *checker, in *ast.Cast) sem.Expression {
	to := resolveType(cx, in.Type)
	e := rvalue(cx, expression(cx, in.Expression))
	if to == nil || sem.IsInvalid(e) {
		return sem.Invalid{}
	}
	return convert(cx, e, to, "type cast expression", in)
}

func sizeOf(cx *checker, in *ast.SizeOf) sem.Expression {
	var of sem.Type
	if in.Type != nil {
		of = resolveType(cx, in.Type)
	} else {
		e := expression(cx, in.Expression)
		if sem.IsInvalid(e) {
			return sem.Invalid{}
		}
		of = sem.ReferenceTarget(e.ExpressionType())
	}
	if of == nil {
		return sem.Invalid{}
	}
	if sem.IsVoid(of) {
		cx.errorf(in, "Illegal to take the size of \"void\" type.")
		return sem.Invalid{}
	}
	return &sem.SizeOf{AST: in, Of: of}
}

func expressionList(cx *checker, in *ast.ExpressionList) sem.Expression {
	out := &sem.ExpressionList{AST: in}
	for _, x := range in.Expressions {
		e := expression(cx, x)
		if sem.IsInvalid(e) {
			return sem.Invalid{}
		}
		out.Expressions = append(out.Expressions, e)
	}
	return out
}

// resolveType resolves a syntactic type reference against the type
// namespace, applying qualifiers. Unqualified types default to varying.
func resolveType(cx *checker, in ast.Type) sem.Type {
	switch in := in.(type) {
	case *ast.TypeName:
		base := cx.symbols.LookupType(in.Name.Value)
		if base == nil {
			if hints := cx.symbols.ClosestType(in.Name.Value); len(hints) > 0 {
				cx.errorf(in, "Undefined type \"%s\". Did you mean \"%s\"?",
					in.Name.Value, strings.Join(hints, "\" or \""))
			} else {
				cx.errorf(in, "Undefined type \"%s\".", in.Name.Value)
			}
			return nil
		}
		t := cx.types.WithVariability(base, variabilityOf(in.Variability))
		if in.Const {
			t = cx.types.AsConst(t)
		}
		return t
	case *ast.PointerTo:
		to := resolveType(cx, in.To)
		if to == nil {
			return nil
		}
		return cx.types.Pointer(to, variabilityOf(in.Variability), in.Const)
	case *ast.ArrayOf:
		to := resolveType(cx, in.To)
		if to == nil {
			return nil
		}
		if in.Count < 0 {
			cx.errorf(in, "Array size must be non-negative, got %d.", in.Count)
			return nil
		}
		return cx.types.Array(to, in.Count)
	case *ast.VectorOf:
		to := resolveType(cx, in.To)
		if to == nil {
			return nil
		}
		if in.Count < 1 {
			cx.errorf(in, "Vector size must be at least 1, got %d.", in.Count)
			return nil
		}
		if !sem.IsNumeric(to) && !sem.IsBool(to) {
			cx.errorf(in, "Vector element type must be atomic, got \"%s\".", sem.TypeName(to))
			return nil
		}
		return cx.types.Vector(to, in.Count)
	default:
		cx.icef(in, "Unhandled type reference %T found", in)
		return nil
	}
}

func variabilityOf(v ast.Variability) sem.Variability {
	if v == ast.Uniform {
		return sem.Uniform
	}
	// Unqualified types default to varying.
	return sem.Varying
}

// astOf returns the originating syntax node of a semantic expression, or
// nil for synthesized nodes such as literals.
func astOf(e sem.Expression) ast.Node {
	switch e := e.(type) {
	case *sem.VarRef:
		return e.AST
	case *sem.FuncRef:
		return e.AST
	case *sem.NullPointer:
		return e.AST
	case *sem.UnaryOp:
		return e.AST
	case *sem.BinaryOp:
		return e.AST
	case *sem.AssignOp:
		return e.AST
	case *sem.Select:
		return e.AST
	case *sem.Call:
		return e.AST
	case *sem.Index:
		return e.AST
	case *sem.Member:
		return e.AST
	case *sem.AddressOf:
		return e.AST
	case *sem.Deref:
		return e.AST
	case *sem.RefOf:
		return e.AST
	case *sem.RefDeref:
		return e.AST
	case *sem.Cast:
		return e.AST
	case *sem.SizeOf:
		return e.AST
	case *sem.Sync:
		return e.AST
	case *sem.ExpressionList:
		return e.AST
	default:
		return nil
	}
}
