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

package printer_test

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/pyunparse/ast"
	"github.com/bufbuild/pyunparse/printer"
	"github.com/bufbuild/pyunparse/reporter"
)

func name(id string) *ast.Name { return &ast.Name{ID: id} }
func str(s string) *ast.Str    { return &ast.Str{S: s} }
func num(v int64) *ast.Num     { return ast.NewInt(v) }

func names(ids ...string) []ast.Expr {
	out := make([]ast.Expr, len(ids))
	for i, id := range ids {
		out[i] = name(id)
	}
	return out
}

func args(ids ...string) *ast.Arguments {
	a := &ast.Arguments{}
	for _, id := range ids {
		a.Args = append(a.Args, &ast.Arg{Name: id})
	}
	return a
}

func module(body ...ast.Stmt) *ast.Module { return &ast.Module{Body: body} }
func expr(x ast.Expr) *ast.ExprStmt       { return &ast.ExprStmt{Value: x} }
func binop(l ast.Expr, op ast.Operator, r ast.Expr) *ast.BinOp {
	return &ast.BinOp{Left: l, Op: op, Right: r}
}

func render(t *testing.T, node ast.Node) string {
	t.Helper()
	out, err := printer.Print(printer.Options{}, node)
	require.NoError(t, err)
	return out
}

func TestExpressions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		expr ast.Expr
		want string
	}{
		{"grouping", binop(binop(name("a"), ast.Add, name("b")), ast.Mult, name("c")), "(a + b) * c"},
		{"left_assoc", binop(binop(name("a"), ast.Sub, name("b")), ast.Sub, name("c")), "a - b - c"},
		{"right_nested", binop(name("a"), ast.Sub, binop(name("b"), ast.Sub, name("c"))), "a - (b - c)"},
		{"pow_right", binop(name("a"), ast.Pow, binop(name("b"), ast.Pow, name("c"))), "a ** b ** c"},
		{"pow_left", binop(binop(name("a"), ast.Pow, name("b")), ast.Pow, name("c")), "(a ** b) ** c"},
		{"negative_base", binop(num(-1), ast.Pow, num(2)), "(-1) ** 2"},
		{"not_and", &ast.UnaryOp{Op: ast.Not, Operand: &ast.BoolOp{Op: ast.And, Values: names("a", "b")}}, "not (a and b)"},
		{"bool_chain", &ast.BoolOp{Op: ast.Or, Values: []ast.Expr{
			&ast.BoolOp{Op: ast.And, Values: names("a", "b")}, name("c"),
		}}, "a and b or c"},
		{"compare_chain", &ast.Compare{
			Left:        name("a"),
			Ops:         []ast.CmpOperator{ast.Lt, ast.NotIn},
			Comparators: names("b", "c"),
		}, "a < b not in c"},
		{"lambda_arg", &ast.Call{Func: name("f"), Args: []ast.Expr{
			&ast.Lambda{Args: args("x"), Body: name("x")},
		}}, "f(lambda x: x)"},
		{"lambda_no_args", &ast.Lambda{Args: &ast.Arguments{}, Body: num(1)}, "lambda: 1"},
		{"ifexp_operand", binop(&ast.IfExp{Test: name("b"), Body: name("a"), Orelse: name("c")}, ast.Add, name("d")), "(a if b else c) + d"},
		{"walrus", &ast.NamedExpr{Target: name("x"), Value: num(1)}, "(x := 1)"},
		{"yield_in_list", &ast.List{Elts: []ast.Expr{&ast.Yield{}}}, "[(yield)]"},
		{"yield_statement", &ast.Yield{Value: num(1)}, "yield 1"},
		{"int_attribute", &ast.Attribute{Value: num(1), Attr: "real"}, "(1).real"},
		{"empty_set", &ast.Set{}, "{1}.__class__()"},
		{"empty_tuple", &ast.Tuple{}, "()"},
		{"sole_generator", &ast.Call{Func: name("f"), Args: []ast.Expr{&ast.GeneratorExp{
			Elt:        name("x"),
			Generators: []*ast.Comprehension{{Target: name("x"), Iter: name("y")}},
		}}}, "f(x for x in y)"},
		{"dict_comp", &ast.DictComp{
			Key:   name("k"),
			Value: name("v"),
			Generators: []*ast.Comprehension{{
				Target: &ast.Tuple{Elts: names("k", "v")},
				Iter:   &ast.Call{Func: &ast.Attribute{Value: name("d"), Attr: "items"}},
				Ifs:    []ast.Expr{name("v")},
			}},
		}, "{k: v for k, v in d.items() if v}"},
		{"star_args", &ast.Call{
			Func:     name("f"),
			Args:     []ast.Expr{name("a"), &ast.Starred{Value: name("b")}},
			Keywords: []*ast.Keyword{{Arg: "c", Value: num(1)}, {Value: name("d")}},
		}, "f(a, *b, c=1, **d)"},
		{"dict_unpack", &ast.Dict{
			Keys:   []ast.Expr{str("a"), nil},
			Values: []ast.Expr{num(1), name("b")},
		}, "{'a': 1, **b}"},
		{"subscript_tuple", &ast.Subscript{Value: name("x"), Slice: &ast.Tuple{Elts: []ast.Expr{num(1), num(2)}}}, "x[1, 2]"},
		{"slice", &ast.Subscript{Value: name("x"), Slice: &ast.Slice{Step: num(2)}}, "x[::2]"},
		{"slice_bounds", &ast.Subscript{Value: name("x"), Slice: &ast.Slice{Lower: num(1), Upper: num(-1)}}, "x[1:-1]"},
		{"await_call", &ast.Await{Value: &ast.Call{Func: name("f")}}, "await f()"},
		{"float", ast.NewFloat(1.5), "1.5"},
		{"float_large", ast.NewFloat(1e20), "1e+20"},
		{"complex", ast.NewComplex(1, -2), "(1.0-2.0j)"},
		{"infinities", binop(binop(binop(
			ast.NewFloat(math.Inf(1)), ast.Add, ast.NewFloat(math.Inf(-1))), ast.Add,
			ast.NewComplex(0, math.Inf(1))), ast.Add, ast.NewComplex(0, math.Inf(-1))),
			"1e1000 + -1e1000 + 1e1000j + -1e1000j"},
		{"quotes", str(`it's`), `"it's"`},
		{"bytes", &ast.Bytes{S: []byte("a\x00")}, `b'a\x00'`},
		{"unicode_prefix", &ast.Str{S: "a", Prefix: "u"}, "u'a'"},
		{"constants", &ast.List{Elts: []ast.Expr{
			&ast.NameConstant{Value: ast.None}, &ast.NameConstant{Value: ast.True}, &ast.Ellipsis{},
		}}, "[None, True, ...]"},
		{"fstring", &ast.JoinedStr{Values: []ast.Expr{
			str("a{"),
			&ast.FormattedValue{
				Value:      name("x"),
				Conversion: 'r',
				FormatSpec: &ast.JoinedStr{Values: []ast.Expr{str(">10")}},
			},
		}}, "f'a{{{x!r:>10}'"},
		{"fstring_dict", &ast.JoinedStr{Values: []ast.Expr{
			&ast.FormattedValue{Value: &ast.Dict{}},
		}}, "f'{ {} }'"},
		{"fstring_nested_string", &ast.JoinedStr{Values: []ast.Expr{
			&ast.FormattedValue{Value: &ast.Subscript{Value: name("d"), Slice: str("k")}},
		}}, `f"{d['k']}"`},
		{"fstring_field_and_static_quotes", &ast.JoinedStr{Values: []ast.Expr{
			&ast.FormattedValue{Value: &ast.Subscript{Value: name("x"), Slice: str("a")}},
			str(` and "quotes"`),
		}}, `f"{x['a']} and \"quotes\""`},
		{"fstring_field_both_quotes", &ast.JoinedStr{Values: []ast.Expr{
			&ast.FormattedValue{Value: str("eric's")},
		}}, `f"""{"eric's"}"""`},
		{"fstring_static_quote_before_field", &ast.JoinedStr{Values: []ast.Expr{
			str(`"`), &ast.FormattedValue{Value: str("'")},
		}}, `f"""\"{"'"}"""`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got := render(t, module(expr(test.expr)))
			assert.Equal(t, test.want+"\n", got)
		})
	}
}

func TestStatements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node ast.Node
		want string
	}{
		{
			name: "definitions",
			node: module(
				&ast.Assign{Targets: names("j"), Value: &ast.List{Elts: []ast.Expr{num(1), num(2), num(3)}}},
				&ast.FunctionDef{
					Name: "test",
					Args: &ast.Arguments{
						Args:       []*ast.Arg{{Name: "a"}, {Name: "b"}},
						Defaults:   []ast.Expr{num(1)},
						Vararg:     &ast.Arg{Name: "args"},
						KwOnlyArgs: []*ast.Arg{{Name: "c"}},
						KwDefaults: []ast.Expr{nil},
						Kwarg:      &ast.Arg{Name: "kw"},
					},
					Body: []ast.Stmt{&ast.Pass{}},
				},
				&ast.ClassDef{
					Name: "Class",
					Body: []ast.Stmt{&ast.FunctionDef{Name: "f", Args: args("arg"), Body: []ast.Stmt{&ast.Pass{}}}},
				},
			),
			want: `j = [1, 2, 3]


def test(a, b=1, *args, c, **kw):
    pass


class Class:

    def f(arg):
        pass
`,
		},
		{
			name: "decorated_async",
			node: module(&ast.FunctionDef{
				Name:          "f",
				IsAsync:       true,
				DecoratorList: []ast.Expr{name("cached"), &ast.Call{Func: name("route"), Args: []ast.Expr{str("/")}}},
				Args: &ast.Arguments{
					PosOnlyArgs: []*ast.Arg{{Name: "a", Annotation: name("int")}},
					Args:        []*ast.Arg{{Name: "b", Annotation: name("str")}},
					Defaults:    []ast.Expr{str("x")},
				},
				Returns: &ast.NameConstant{Value: ast.None},
				Body:    []ast.Stmt{&ast.Return{Value: &ast.Yield{Value: num(1)}}},
			}),
			want: `@cached
@route('/')
async def f(a: int, /, b: str = 'x') -> None:
    return (yield 1)
`,
		},
		{
			name: "class_bases",
			node: module(&ast.ClassDef{
				Name:     "A",
				Bases:    names("B"),
				Keywords: []*ast.Keyword{{Arg: "metaclass", Value: name("M")}},
				Body:     []ast.Stmt{&ast.Pass{}},
			}),
			want: "class A(B, metaclass=M):\n    pass\n",
		},
		{
			name: "elif",
			node: module(&ast.If{
				Test: name("a"),
				Body: []ast.Stmt{&ast.Pass{}},
				Orelse: []ast.Stmt{&ast.If{
					Test:   name("b"),
					Body:   []ast.Stmt{&ast.Break{}},
					Orelse: []ast.Stmt{&ast.Continue{}},
				}},
			}),
			want: "if a:\n    pass\nelif b:\n    break\nelse:\n    continue\n",
		},
		{
			name: "try",
			node: module(&ast.Try{
				Body: []ast.Stmt{&ast.Pass{}},
				Handlers: []*ast.ExceptHandler{
					{Type: name("ValueError"), Name: "e", Body: []ast.Stmt{&ast.Pass{}}},
					{Body: []ast.Stmt{&ast.Raise{}}},
				},
				Orelse:    []ast.Stmt{&ast.Pass{}},
				Finalbody: []ast.Stmt{&ast.Pass{}},
			}),
			want: `try:
    pass
except ValueError as e:
    pass
except:
    raise
else:
    pass
finally:
    pass
`,
		},
		{
			name: "try_star",
			node: module(&ast.Try{
				Star:     true,
				Body:     []ast.Stmt{&ast.Pass{}},
				Handlers: []*ast.ExceptHandler{{Type: name("E"), Body: []ast.Stmt{&ast.Pass{}}}},
			}),
			want: "try:\n    pass\nexcept* E:\n    pass\n",
		},
		{
			name: "loops",
			node: module(
				&ast.For{
					Target: &ast.Tuple{Elts: names("k", "v")},
					Iter:   name("items"),
					Body:   []ast.Stmt{&ast.AugAssign{Target: name("n"), Op: ast.Add, Value: num(1)}},
					Orelse: []ast.Stmt{&ast.Pass{}},
				},
				&ast.While{Test: &ast.NameConstant{Value: ast.True}, Body: []ast.Stmt{&ast.Break{}}},
			),
			want: "for k, v in items:\n    n += 1\nelse:\n    pass\nwhile True:\n    break\n",
		},
		{
			name: "with",
			node: module(&ast.With{
				IsAsync: true,
				Items: []*ast.WithItem{
					{ContextExpr: &ast.Call{Func: name("open"), Args: []ast.Expr{str("f")}}, OptionalVars: name("f")},
					{ContextExpr: name("lock")},
				},
				Body: []ast.Stmt{&ast.Pass{}},
			}),
			want: "async with open('f') as f, lock:\n    pass\n",
		},
		{
			name: "simple_statements",
			node: module(
				&ast.Import{Names: []*ast.Alias{{Name: "os"}, {Name: "numpy", AsName: "np"}}},
				&ast.ImportFrom{Level: 2, Module: "pkg", Names: []*ast.Alias{{Name: "*"}}},
				&ast.Global{Names: []string{"a", "b"}},
				&ast.Delete{Targets: names("a", "b")},
				&ast.Assert{Test: name("a"), Msg: str("bad")},
				&ast.Raise{Exc: name("E"), Cause: &ast.NameConstant{Value: ast.None}},
				&ast.AnnAssign{Target: name("x"), Annotation: name("int"), Value: num(1), Simple: true},
				&ast.AnnAssign{Target: name("y"), Annotation: name("int")},
				&ast.Assign{Targets: names("a", "b"), Value: &ast.Tuple{Elts: []ast.Expr{num(1), num(2)}}},
				&ast.Assign{Targets: names("x"), Value: &ast.Yield{Value: num(1)}},
			),
			want: `import os, numpy as np
from ..pkg import *
global a, b
del a, b
assert a, 'bad'
raise E from None
x: int = 1
(y): int
a = b = 1, 2
x = yield 1
`,
		},
		{
			name: "docstring",
			node: module(&ast.FunctionDef{
				Name: "f",
				Args: &ast.Arguments{},
				Body: []ast.Stmt{expr(str("\n    docstring\n    "))},
			}),
			want: "def f():\n    \"\"\"\n    docstring\n    \"\"\"\n",
		},
		{
			name: "lone_arguments",
			node: &ast.Arguments{
				Args:     []*ast.Arg{{Name: "a1"}, {Name: "a2"}, {Name: "b1"}, {Name: "b2"}},
				Defaults: []ast.Expr{name("j"), str("123")},
			},
			want: "a1, a2, b1=j, b2='123'\n",
		},
		{
			name: "lone_expression",
			node: &ast.Expression{Body: &ast.Tuple{Elts: names("a", "b")}},
			want: "a, b\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.want, render(t, test.node))
		})
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	var elts []ast.Expr
	for _, s := range []string{
		"ArgumentParser", "ArgumentError", "ArgumentTypeError", "FileType",
		"HelpFormatter", "ArgumentDefaultsHelpFormatter",
		"RawDescriptionHelpFormatter", "RawTextHelpFormatter", "Namespace",
		"Action", "ONE_OR_MORE", "OPTIONAL", "PARSER", "REMAINDER", "SUPPRESS",
		"ZERO_OR_MORE",
	} {
		elts = append(elts, str(s))
	}
	got := render(t, module(&ast.Assign{Targets: names("__all__"), Value: &ast.List{Elts: elts}}))
	assert.Equal(t, `__all__ = ['ArgumentParser', 'ArgumentError', 'ArgumentTypeError',
    'FileType', 'HelpFormatter', 'ArgumentDefaultsHelpFormatter',
    'RawDescriptionHelpFormatter', 'RawTextHelpFormatter', 'Namespace',
    'Action', 'ONE_OR_MORE', 'OPTIONAL', 'PARSER', 'REMAINDER', 'SUPPRESS',
    'ZERO_OR_MORE']
`, got)
}

func TestWrapStatements(t *testing.T) {
	t.Parallel()

	var targets []ast.Expr
	for i := range 12 {
		targets = append(targets, name(fmt.Sprintf("element_%02d", i)))
	}
	var aliases []*ast.Alias
	for i := range 10 {
		aliases = append(aliases, &ast.Alias{Name: fmt.Sprintf("helper_function_%d", i)})
	}

	tests := []struct {
		name   string
		node   ast.Stmt
		prefix string
	}{
		{
			name:   "for_target",
			node:   &ast.For{Target: &ast.Tuple{Elts: targets}, Iter: name("rows"), Body: []ast.Stmt{&ast.Pass{}}},
			prefix: "for (element_00, element_01,",
		},
		{
			name:   "for_iter",
			node:   &ast.For{Target: name("x"), Iter: &ast.Tuple{Elts: targets}, Body: []ast.Stmt{&ast.Pass{}}},
			prefix: "for x in (element_00, element_01,",
		},
		{
			name:   "import_from",
			node:   &ast.ImportFrom{Module: "package.helpers", Names: aliases},
			prefix: "from package.helpers import (helper_function_0,",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got := render(t, module(test.node))
			assert.True(t, strings.HasPrefix(got, test.prefix), got)
			for _, line := range strings.Split(strings.TrimSuffix(got, "\n"), "\n") {
				assert.LessOrEqual(t, len(line), 79, line)
			}
		})
	}

	got := render(t, module(&ast.ImportFrom{Module: "package.helpers", Names: []*ast.Alias{{Name: "*"}}}))
	assert.Equal(t, "from package.helpers import *\n", got)
}

type comment struct {
	ast.Custom
	text string
}

type commentedOut struct {
	ast.Custom
	stmt ast.Stmt
}

func commentHook(e *printer.Emitter, n ast.Node) (bool, error) {
	switch n := n.(type) {
	case *comment:
		return true, e.Statement("# ", n.text)
	case *commentedOut:
		mark := e.Mark()
		err := e.Node(n.stmt)
		e.CommentOut(mark)
		return true, err
	}
	return false, nil
}

func TestHook(t *testing.T) {
	t.Parallel()

	assign := func() ast.Stmt {
		return &ast.Assign{
			Targets: []ast.Expr{&ast.Tuple{Elts: names("x", "y", "z")}},
			Value:   &ast.Tuple{Elts: names("a", "b", "c")},
		}
	}
	def := func(name string, body ...ast.Stmt) ast.Stmt {
		return &ast.FunctionDef{Name: name, Args: args("a", "b", "c"), Body: body}
	}
	tree := module(&ast.If{
		Test: num(1),
		Body: []ast.Stmt{
			def("sam", &comment{text: "This is a block comment"}, assign()),
			&commentedOut{stmt: def("bill", assign())},
			def("mary", assign()),
		},
	})

	out, err := printer.Print(printer.Options{Hook: commentHook}, tree)
	require.NoError(t, err)
	assert.Equal(t, `if 1:

    def sam(a, b, c):
        # This is a block comment
        x, y, z = a, b, c

#    def bill(a, b, c):
#        x, y, z = a, b, c

    def mary(a, b, c):
        x, y, z = a, b, c
`, out)

	_, err = printer.Print(printer.Options{}, tree)
	require.ErrorIs(t, err, reporter.ErrUnsupported)
	var withNode reporter.ErrorWithNode
	require.ErrorAs(t, err, &withNode)
	assert.IsType(t, &comment{}, withNode.Node())

	// Every physical line of a commented-out statement is a comment, so
	// multi-line strings keep their escaped form.
	tree = module(&commentedOut{stmt: &ast.FunctionDef{
		Name: "f",
		Args: args("a"),
		Body: []ast.Stmt{expr(str("first line of the docstring\nsecond line")), &ast.Pass{}},
	}})
	out, err = printer.Print(printer.Options{Hook: commentHook}, tree)
	require.NoError(t, err)
	assert.Equal(t, `#def f(a):
#    'first line of the docstring\nsecond line'
#    pass
`, out)
}

func TestErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node ast.Node
		want error
	}{
		{"compare_mismatch", module(expr(&ast.Compare{Left: name("a"), Ops: []ast.CmpOperator{ast.Lt}})), reporter.ErrInvariant},
		{"empty_body", module(&ast.While{Test: name("a")}), reporter.ErrInvariant},
		{"missing_operand", module(expr(binop(name("a"), ast.Add, nil))), reporter.ErrInvariant},
		{"bad_conversion", module(expr(&ast.JoinedStr{Values: []ast.Expr{
			&ast.FormattedValue{Value: name("x"), Conversion: 'x'},
		}})), reporter.ErrInvariant},
		{"backslash_in_field", module(expr(&ast.JoinedStr{Values: []ast.Expr{
			&ast.FormattedValue{Value: str("\n")},
		}})), reporter.ErrUnsupported},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			_, err := printer.Print(printer.Options{}, test.node)
			require.ErrorIs(t, err, test.want)
		})
	}

	_, err := printer.Print(printer.Options{}, nil)
	require.Error(t, err)
}

func TestWidthWarning(t *testing.T) {
	t.Parallel()

	var warnings []error
	options := printer.Options{
		Reporter: reporter.NewReporter(nil, func(err error) { warnings = append(warnings, err) }),
	}
	long := strings.Repeat("a", 100)
	out, err := printer.Print(options, module(&ast.Pass{}, expr(name(long))))
	require.NoError(t, err)
	assert.Equal(t, "pass\n"+long+"\n", out)

	require.Len(t, warnings, 1)
	require.True(t, errors.Is(warnings[0], reporter.ErrTooWide))
	var width *reporter.WidthError
	require.ErrorAs(t, warnings[0], &width)
	assert.Equal(t, reporter.WidthError{Line: 2, Width: 100, Max: 79}, *width)
}

func TestMaxStatementWidth(t *testing.T) {
	t.Parallel()

	var warnings []error
	options := printer.Options{
		MaxStatementWidth: 100,
		Reporter:          reporter.NewReporter(nil, func(err error) { warnings = append(warnings, err) }),
	}
	call := &ast.Call{Func: name("f"), Args: names(strings.Repeat("b", 60), strings.Repeat("c", 60))}
	out, err := printer.Print(options, module(expr(call)))
	require.NoError(t, err)
	assert.NotContains(t, out[:len(out)-1], "\n")

	require.Len(t, warnings, 1)
	var width *reporter.WidthError
	require.ErrorAs(t, warnings[0], &width)
	assert.True(t, width.Skipped)
	assert.Equal(t, 1, width.Line)
}
