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

package printer

import (
	"github.com/bufbuild/pyunparse/ast"
	"github.com/bufbuild/pyunparse/literal"
	"github.com/bufbuild/pyunparse/precedence"
	"github.com/bufbuild/pyunparse/reporter"
	"github.com/bufbuild/pyunparse/token"
)

// exprBody renders an expression without its parentheses.
func (e *Emitter) exprBody(x ast.Expr) error {
	switch x := x.(type) {
	case *ast.BoolOp:
		if len(x.Values) < 2 {
			return reporter.Invariant(x, "boolean operation with %d operands", len(x.Values))
		}
		sym, err := precedence.Symbol(x.Op)
		if err != nil {
			return reporter.Error(x, err)
		}
		for i, v := range x.Values {
			if i > 0 {
				e.write(" " + sym + " ")
			}
			if err := e.expr(x, v); err != nil {
				return err
			}
		}
		return nil

	case *ast.NamedExpr:
		if err := e.expr(x, x.Target); err != nil {
			return err
		}
		e.write(" := ")
		return e.expr(x, x.Value)

	case *ast.BinOp:
		sym, err := precedence.Symbol(x.Op)
		if err != nil {
			return reporter.Error(x, err)
		}
		if err := e.expr(x, x.Left); err != nil {
			return err
		}
		e.write(" " + sym + " ")
		return e.expr(x, x.Right)

	case *ast.UnaryOp:
		sym, err := precedence.Symbol(x.Op)
		if err != nil {
			return reporter.Error(x, err)
		}
		e.write(sym)
		return e.expr(x, x.Operand)

	case *ast.Lambda:
		e.write("lambda")
		if !emptyArguments(x.Args) {
			e.write(" ")
			if err := e.arguments(x.Args); err != nil {
				return err
			}
		}
		e.write(":", " ")
		return e.expr(x, x.Body)

	case *ast.IfExp:
		if err := e.expr(x, x.Body); err != nil {
			return err
		}
		e.write(" if ")
		if err := e.expr(x, x.Test); err != nil {
			return err
		}
		e.write(" else ")
		return e.expr(x, x.Orelse)

	case *ast.Dict:
		e.write("{")
		for i, v := range x.Values {
			if i > 0 {
				e.write(", ")
			}
			if k := x.Keys[i]; k != nil {
				if err := e.node(k); err != nil {
					return err
				}
				e.write(": ")
			} else {
				e.write("**")
			}
			if err := e.expr(x, v); err != nil {
				return err
			}
		}
		e.write("}")
		return nil

	case *ast.Set:
		if len(x.Elts) == 0 {
			// There is no literal for an empty set.
			e.write("{", "1", "}", ".__class__", "(", ")")
			return nil
		}
		e.write("{")
		if err := e.exprs(x, x.Elts); err != nil {
			return err
		}
		e.write("}")
		return nil

	case *ast.List:
		e.write("[")
		if err := e.exprs(x, x.Elts); err != nil {
			return err
		}
		e.write("]")
		return nil

	case *ast.Tuple:
		if err := e.exprs(x, x.Elts); err != nil {
			return err
		}
		if len(x.Elts) == 1 {
			e.write(",")
		}
		return nil

	case *ast.ListComp:
		return e.comp(x, "[", x.Elt, nil, x.Generators, "]")
	case *ast.SetComp:
		return e.comp(x, "{", x.Elt, nil, x.Generators, "}")
	case *ast.DictComp:
		return e.comp(x, "{", x.Key, x.Value, x.Generators, "}")
	case *ast.GeneratorExp:
		return e.comp(x, "", x.Elt, nil, x.Generators, "")

	case *ast.Await:
		e.write("await ")
		return e.expr(x, x.Value)

	case *ast.Yield:
		if x.Value == nil {
			e.write("yield")
			return nil
		}
		e.write("yield ")
		return e.node(x.Value)

	case *ast.YieldFrom:
		e.write("yield from ")
		return e.expr(x, x.Value)

	case *ast.Compare:
		if err := e.expr(x, x.Left); err != nil {
			return err
		}
		for i, op := range x.Ops {
			sym, err := precedence.Symbol(op)
			if err != nil {
				return reporter.Error(x, err)
			}
			e.write(" " + sym + " ")
			if err := e.expr(x, x.Comparators[i]); err != nil {
				return err
			}
		}
		return nil

	case *ast.Call:
		if err := e.expr(x, x.Func); err != nil {
			return err
		}
		e.write("(")
		if err := e.exprs(x, x.Args); err != nil {
			return err
		}
		for i, kw := range x.Keywords {
			if i > 0 || len(x.Args) > 0 {
				e.write(", ")
			}
			if err := e.keyword(kw); err != nil {
				return err
			}
		}
		e.write(")")
		return nil

	case *ast.FormattedValue:
		return e.fstring(x, []ast.Expr{x})
	case *ast.JoinedStr:
		return e.fstring(x, x.Values)

	case *ast.Num:
		e.write(literal.Number(x))
		return nil
	case *ast.Str:
		e.emit(token.NewString(literal.New(x.S, x.Prefix, nil)))
		return nil
	case *ast.Bytes:
		e.emit(token.NewString(literal.New(string(x.S), "b", nil)))
		return nil
	case *ast.NameConstant:
		e.write(x.Value.String())
		return nil
	case *ast.Ellipsis:
		e.write("...")
		return nil

	case *ast.Attribute:
		if err := e.expr(x, x.Value); err != nil {
			return err
		}
		e.write("." + x.Attr)
		return nil

	case *ast.Subscript:
		if err := e.expr(x, x.Value); err != nil {
			return err
		}
		e.write("[")
		if err := e.expr(x, x.Slice); err != nil {
			return err
		}
		e.write("]")
		return nil

	case *ast.Starred:
		e.write("*")
		return e.expr(x, x.Value)

	case *ast.Name:
		e.write(x.ID)
		return nil

	case *ast.Slice:
		if x.Lower != nil {
			if err := e.node(x.Lower); err != nil {
				return err
			}
		}
		e.write(":")
		if x.Upper != nil {
			if err := e.node(x.Upper); err != nil {
				return err
			}
		}
		if x.Step != nil {
			e.write(":")
			return e.node(x.Step)
		}
		return nil

	default:
		return reporter.Unsupported(x)
	}
}

// comp renders a comprehension. value is only set for dict comprehensions.
func (e *Emitter) comp(x ast.Expr, open string, elt, value ast.Expr, gens []*ast.Comprehension, closing string) error {
	if len(gens) == 0 {
		return reporter.Invariant(x, "comprehension without generators")
	}
	e.write(open)
	if err := e.expr(x, elt); err != nil {
		return err
	}
	if value != nil {
		e.write(": ")
		if err := e.expr(x, value); err != nil {
			return err
		}
	}
	for _, gen := range gens {
		e.write(" ")
		if err := e.comprehension(gen); err != nil {
			return err
		}
	}
	e.write(closing)
	return nil
}

func (e *Emitter) comprehension(gen *ast.Comprehension) error {
	if gen == nil {
		return reporter.Invariant(nil, "nil comprehension")
	}
	if gen.IsAsync {
		e.write("async ")
	}
	e.write("for ")
	if err := e.expr(gen, gen.Target); err != nil {
		return err
	}
	e.write(" in ")
	if err := e.expr(gen, gen.Iter); err != nil {
		return err
	}
	for _, cond := range gen.Ifs {
		e.write(" if ")
		if err := e.expr(gen, cond); err != nil {
			return err
		}
	}
	return nil
}

func emptyArguments(a *ast.Arguments) bool {
	return a == nil || len(a.PosOnlyArgs) == 0 && len(a.Args) == 0 &&
		a.Vararg == nil && len(a.KwOnlyArgs) == 0 && a.Kwarg == nil
}

// arguments renders a parameter list. Defaults line up with the last
// positional parameters.
func (e *Emitter) arguments(a *ast.Arguments) error {
	positional := make([]*ast.Arg, 0, len(a.PosOnlyArgs)+len(a.Args))
	positional = append(positional, a.PosOnlyArgs...)
	positional = append(positional, a.Args...)
	firstDefault := len(positional) - len(a.Defaults)
	if firstDefault < 0 {
		return reporter.Invariant(a, "%d defaults for %d parameters", len(a.Defaults), len(positional))
	}
	if len(a.KwDefaults) > len(a.KwOnlyArgs) {
		return reporter.Invariant(a, "%d keyword defaults for %d parameters", len(a.KwDefaults), len(a.KwOnlyArgs))
	}

	first := true
	sep := func() {
		if !first {
			e.write(", ")
		}
		first = false
	}

	for i, arg := range positional {
		sep()
		var def ast.Expr
		if i >= firstDefault {
			def = a.Defaults[i-firstDefault]
		}
		if err := e.param(arg, def); err != nil {
			return err
		}
		if i == len(a.PosOnlyArgs)-1 {
			sep()
			e.write("/")
		}
	}

	if a.Vararg != nil || len(a.KwOnlyArgs) > 0 {
		sep()
		e.write("*")
		if a.Vararg != nil {
			if err := e.arg(a.Vararg); err != nil {
				return err
			}
		}
	}
	for i, arg := range a.KwOnlyArgs {
		sep()
		var def ast.Expr
		if i < len(a.KwDefaults) {
			def = a.KwDefaults[i]
		}
		if err := e.param(arg, def); err != nil {
			return err
		}
	}

	if a.Kwarg != nil {
		sep()
		e.write("**")
		return e.arg(a.Kwarg)
	}
	return nil
}

func (e *Emitter) param(arg *ast.Arg, def ast.Expr) error {
	if err := e.arg(arg); err != nil {
		return err
	}
	if def == nil {
		return nil
	}
	if arg.Annotation != nil {
		e.write(" = ")
	} else {
		e.write("=")
	}
	return e.node(def)
}

func (e *Emitter) arg(arg *ast.Arg) error {
	if arg == nil {
		return reporter.Invariant(nil, "nil parameter")
	}
	e.write(arg.Name)
	if arg.Annotation != nil {
		e.write(": ")
		return e.node(arg.Annotation)
	}
	return nil
}
