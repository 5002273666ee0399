// Copyright 2020-2025 Buf Technologies, Inc.
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

package precedence

import (
	"strings"

	"github.com/bufbuild/pyunparse/ast"
	"github.com/bufbuild/pyunparse/literal"
	"github.com/bufbuild/pyunparse/reporter"
)

// Annotation is the precedence decision for one expression.
type Annotation struct {
	// Level is the level the expression binds at.
	Level Level
	// Context is the level demanded by the expression's parent.
	Context Level
	// Parens is set if the expression must be printed in parentheses. For
	// tuples and generator expressions, a false value means the expression
	// is printed bare.
	Parens bool
}

// Annotations maps the expressions of a tree to their [Annotation]s.
type Annotations struct {
	m map[ast.Expr]Annotation
}

// Annotate walks a tree and decides, for every expression in it, whether it
// needs parentheses.
//
// node may be a root, a statement, an expression or a helper node such as
// [ast.Arguments]. A lone expression is annotated as if it were a call
// argument. Nodes embedding [ast.Custom] are skipped, along with everything
// below them; see [Annotations.Add].
func Annotate(node ast.Node) (*Annotations, error) {
	a := &Annotations{m: make(map[ast.Expr]Annotation)}
	if err := a.Add(node); err != nil {
		return nil, err
	}
	return a, nil
}

// Add annotates another tree into the same table, replacing any existing
// annotations for its nodes. Printer hooks use this for nodes hidden inside
// custom nodes.
func (a *Annotations) Add(node ast.Node) error {
	w := &annotator{m: a.m}
	return w.node(node)
}

// Get returns the annotation of e.
func (a *Annotations) Get(e ast.Expr) (Annotation, bool) {
	ann, ok := a.m[e]
	return ann, ok
}

// Parens returns whether e needs parentheses.
func (a *Annotations) Parens(e ast.Expr) bool {
	return a.m[e].Parens
}

// Len returns the number of annotated expressions.
func (a *Annotations) Len() int {
	return len(a.m)
}

type annotator struct {
	m map[ast.Expr]Annotation
}

func (a *annotator) set(e ast.Expr, level, context Level, parens bool) {
	a.m[e] = Annotation{Level: level, Context: context, Parens: parens}
}

func (a *annotator) setParens(e ast.Expr, parens bool) {
	ann := a.m[e]
	ann.Parens = parens
	a.m[e] = ann
}

func (a *annotator) node(node ast.Node) error {
	switch node := node.(type) {
	case nil:
		return nil
	case *ast.Module:
		return a.stmts(node.Body)
	case *ast.Interactive:
		return a.stmts(node.Body)
	case *ast.Expression:
		return a.bare(node.Body, Statement)
	case *ast.Arguments:
		return a.arguments(node)
	case *ast.Arg:
		return a.expr(node.Annotation, Comma)
	case *ast.Keyword:
		return a.expr(node.Value, None)
	case *ast.Alias:
		return nil
	case *ast.WithItem:
		return a.withItem(node)
	case *ast.Comprehension:
		return a.comprehension(node)
	case *ast.ExceptHandler:
		return a.handler(node)
	case ast.Stmt:
		if node.Kind() != ast.KindCustom {
			return a.stmt(node)
		}
	case ast.Expr:
		return a.expr(node, None)
	}
	return nil
}

func (a *annotator) stmts(body []ast.Stmt) error {
	for _, s := range body {
		if err := a.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (a *annotator) stmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.FunctionDef:
		return all(
			a.exprs(s.DecoratorList, None),
			a.arguments(s.Args),
			a.expr(s.Returns, Comma),
			a.stmts(s.Body),
		)
	case *ast.ClassDef:
		return all(
			a.exprs(s.DecoratorList, None),
			a.exprs(s.Bases, None),
			a.keywords(s.Keywords),
			a.stmts(s.Body),
		)
	case *ast.Return:
		return a.bare(s.Value, None)
	case *ast.Delete:
		return a.exprs(s.Targets, None)
	case *ast.Assign:
		for _, t := range s.Targets {
			if err := a.bare(t, None); err != nil {
				return err
			}
		}
		return a.bare(s.Value, Statement)
	case *ast.AugAssign:
		return all(a.expr(s.Target, None), a.bare(s.Value, Statement))
	case *ast.AnnAssign:
		return all(
			a.expr(s.Target, None),
			a.expr(s.Annotation, Comma),
			a.bare(s.Value, Statement),
		)
	case *ast.For:
		return all(
			a.bare(s.Target, None),
			a.bare(s.Iter, None),
			a.stmts(s.Body),
			a.stmts(s.Orelse),
		)
	case *ast.While:
		return all(a.expr(s.Test, None), a.stmts(s.Body), a.stmts(s.Orelse))
	case *ast.If:
		return all(a.expr(s.Test, None), a.stmts(s.Body), a.stmts(s.Orelse))
	case *ast.With:
		for _, item := range s.Items {
			if err := a.withItem(item); err != nil {
				return err
			}
		}
		return a.stmts(s.Body)
	case *ast.Raise:
		return all(a.expr(s.Exc, None), a.expr(s.Cause, None))
	case *ast.Try:
		if err := a.stmts(s.Body); err != nil {
			return err
		}
		for _, h := range s.Handlers {
			if err := a.handler(h); err != nil {
				return err
			}
		}
		return all(a.stmts(s.Orelse), a.stmts(s.Finalbody))
	case *ast.Assert:
		return all(a.expr(s.Test, None), a.expr(s.Msg, None))
	case *ast.ExprStmt:
		return a.bare(s.Value, Statement)
	}
	// Everything else has no expressions, or is left to a printer hook.
	return nil
}

// bare annotates an expression in a position where a tuple may be printed
// without parentheses.
func (a *annotator) bare(e ast.Expr, context Level) error {
	if err := a.expr(e, context); err != nil {
		return err
	}
	if t, ok := e.(*ast.Tuple); ok && len(t.Elts) > 0 {
		a.setParens(t, false)
	}
	return nil
}

func (a *annotator) exprs(exprs []ast.Expr, context Level) error {
	for _, e := range exprs {
		if err := a.expr(e, context); err != nil {
			return err
		}
	}
	return nil
}

func (a *annotator) expr(expr ast.Expr, context Level) error {
	switch e := expr.(type) {
	case nil:
		return nil

	case *ast.BoolOp:
		level, err := Of(e.Op)
		if err != nil {
			return reporter.Error(e, err)
		}
		a.set(e, level, context, level < context)
		// Operands are bumped on both sides, so nested chains of the same
		// operator keep their grouping.
		return a.exprs(e.Values, level+1)

	case *ast.NamedExpr:
		a.set(e, Lambda, context, true)
		return all(a.expr(e.Target, Atom), a.expr(e.Value, None))

	case *ast.BinOp:
		level, err := Of(e.Op)
		if err != nil {
			return reporter.Error(e, err)
		}
		a.set(e, level, context, level < context)
		left, right := level, level+1
		if e.Op == ast.Pow {
			// Right-associative, and binds tighter than a unary minus on
			// its left.
			left, right = level+1, level
		}
		return all(a.expr(e.Left, left), a.expr(e.Right, right))

	case *ast.UnaryOp:
		level, err := Of(e.Op)
		if err != nil {
			return reporter.Error(e, err)
		}
		a.set(e, level, context, level < context)
		return a.expr(e.Operand, level)

	case *ast.Lambda:
		a.set(e, Lambda, context, context > None)
		return all(a.arguments(e.Args), a.expr(e.Body, None))

	case *ast.IfExp:
		a.set(e, Lambda, context, context > None)
		return all(
			a.expr(e.Body, Comma),
			a.expr(e.Test, Comma),
			a.expr(e.Orelse, None),
		)

	case *ast.Dict:
		if len(e.Keys) != len(e.Values) {
			return reporter.Invariant(e, "%d keys for %d values", len(e.Keys), len(e.Values))
		}
		a.set(e, Atom, context, false)
		for i, k := range e.Keys {
			var err error
			if k == nil {
				err = a.expr(e.Values[i], BitOr)
			} else {
				err = all(a.expr(k, Comma), a.expr(e.Values[i], None))
			}
			if err != nil {
				return err
			}
		}
		return nil

	case *ast.Set:
		a.set(e, Atom, context, false)
		return a.exprs(e.Elts, None)

	case *ast.List:
		a.set(e, Atom, context, false)
		return a.exprs(e.Elts, None)

	case *ast.Tuple:
		a.set(e, Atom, context, true)
		return a.exprs(e.Elts, None)

	case *ast.ListComp:
		a.set(e, Atom, context, false)
		return all(a.expr(e.Elt, None), a.comprehensions(e.Generators))

	case *ast.SetComp:
		a.set(e, Atom, context, false)
		return all(a.expr(e.Elt, None), a.comprehensions(e.Generators))

	case *ast.DictComp:
		a.set(e, Atom, context, false)
		return all(
			a.expr(e.Key, Comma),
			a.expr(e.Value, None),
			a.comprehensions(e.Generators),
		)

	case *ast.GeneratorExp:
		a.set(e, Atom, context, true)
		return all(a.expr(e.Elt, None), a.comprehensions(e.Generators))

	case *ast.Await:
		a.set(e, Await, context, Await < context)
		return a.expr(e.Value, Primary)

	case *ast.Yield:
		// A yield is only unambiguous as a whole statement or assignment
		// value; a list element in particular must be parenthesized.
		a.set(e, Lambda, context, context != Statement)
		return a.bare(e.Value, None)

	case *ast.YieldFrom:
		a.set(e, Lambda, context, context != Statement)
		return a.expr(e.Value, None)

	case *ast.Compare:
		if len(e.Ops) == 0 || len(e.Ops) != len(e.Comparators) {
			return reporter.Invariant(e, "%d operators for %d comparators", len(e.Ops), len(e.Comparators))
		}
		level, err := Of(e.Ops[0])
		if err != nil {
			return reporter.Error(e, err)
		}
		for _, op := range e.Ops[1:] {
			other, err := Of(op)
			if err != nil {
				return reporter.Error(e, err)
			}
			if other != level {
				return reporter.Invariant(e, "mixed precedence in comparison chain: %v and %v", e.Ops[0], op)
			}
		}
		a.set(e, level, context, level < context)
		return all(a.expr(e.Left, level+1), a.exprs(e.Comparators, level+1))

	case *ast.Call:
		a.set(e, Primary, context, Primary < context)
		if err := a.expr(e.Func, Primary); err != nil {
			return err
		}
		if err := a.exprs(e.Args, None); err != nil {
			return err
		}
		if len(e.Args) == 1 && len(e.Keywords) == 0 {
			// A sole generator argument borrows the call's parentheses.
			if g, ok := e.Args[0].(*ast.GeneratorExp); ok {
				a.setParens(g, false)
			}
		}
		return a.keywords(e.Keywords)

	case *ast.FormattedValue:
		a.set(e, Atom, context, false)
		return all(a.expr(e.Value, Comma), a.expr(e.FormatSpec, None))

	case *ast.JoinedStr:
		a.set(e, Atom, context, false)
		return a.exprs(e.Values, None)

	case *ast.Num:
		level := Atom
		if strings.HasPrefix(literal.Number(e), "-") {
			level = Unary
		}
		a.set(e, level, context, level < context)
		return nil

	case *ast.Str, *ast.Bytes, *ast.NameConstant, *ast.Ellipsis, *ast.Name:
		a.set(e, Atom, context, false)
		return nil

	case *ast.Attribute:
		a.set(e, Primary, context, Primary < context)
		if err := a.expr(e.Value, Primary); err != nil {
			return err
		}
		if n, ok := e.Value.(*ast.Num); ok && n.Type == ast.NumInt {
			// 1.real would lex as a float followed by a name.
			a.setParens(n, true)
		}
		return nil

	case *ast.Subscript:
		a.set(e, Primary, context, Primary < context)
		if err := a.expr(e.Value, Primary); err != nil {
			return err
		}
		if err := a.expr(e.Slice, None); err != nil {
			return err
		}
		if t, ok := e.Slice.(*ast.Tuple); ok && len(t.Elts) > 0 && !hasStarred(t.Elts) {
			a.setParens(t, false)
		}
		return nil

	case *ast.Starred:
		a.set(e, BitOr, context, false)
		return a.expr(e.Value, BitOr)

	case *ast.Slice:
		a.set(e, Atom, context, false)
		return all(
			a.expr(e.Lower, Comma),
			a.expr(e.Upper, Comma),
			a.expr(e.Step, Comma),
		)
	}
	// Custom nodes are left to a printer hook.
	return nil
}

func (a *annotator) arguments(args *ast.Arguments) error {
	if args == nil {
		return nil
	}
	for _, list := range [][]*ast.Arg{args.PosOnlyArgs, args.Args, args.KwOnlyArgs} {
		for _, arg := range list {
			if err := a.expr(arg.Annotation, Comma); err != nil {
				return err
			}
		}
	}
	for _, arg := range []*ast.Arg{args.Vararg, args.Kwarg} {
		if arg != nil {
			if err := a.expr(arg.Annotation, Comma); err != nil {
				return err
			}
		}
	}
	return all(a.exprs(args.Defaults, None), a.exprs(args.KwDefaults, None))
}

func (a *annotator) keywords(keywords []*ast.Keyword) error {
	for _, kw := range keywords {
		if err := a.expr(kw.Value, None); err != nil {
			return err
		}
	}
	return nil
}

func (a *annotator) withItem(item *ast.WithItem) error {
	return all(a.expr(item.ContextExpr, None), a.expr(item.OptionalVars, None))
}

func (a *annotator) handler(h *ast.ExceptHandler) error {
	return all(a.expr(h.Type, None), a.stmts(h.Body))
}

func (a *annotator) comprehensions(gens []*ast.Comprehension) error {
	for _, gen := range gens {
		if err := a.comprehension(gen); err != nil {
			return err
		}
	}
	return nil
}

func (a *annotator) comprehension(gen *ast.Comprehension) error {
	return all(
		a.bare(gen.Target, None),
		a.expr(gen.Iter, Comma),
		a.exprs(gen.Ifs, Comma),
	)
}

func hasStarred(exprs []ast.Expr) bool {
	for _, e := range exprs {
		if _, ok := e.(*ast.Starred); ok {
			return true
		}
	}
	return false
}

// all returns the first non-nil error.
func all(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
