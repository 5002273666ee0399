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

package precedence_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/pyunparse/ast"
	"github.com/bufbuild/pyunparse/precedence"
	"github.com/bufbuild/pyunparse/reporter"
)

func TestTable(t *testing.T) {
	t.Parallel()

	for op := ast.Add; op <= ast.FloorDiv; op++ {
		sym, err := precedence.Symbol(op)
		require.NoError(t, err, "%v", op)
		assert.NotEmpty(t, sym)
	}
	for op := ast.Eq; op <= ast.NotIn; op++ {
		level, err := precedence.Of(op)
		require.NoError(t, err, "%v", op)
		assert.Equal(t, precedence.Compare, level)
	}

	sym, err := precedence.Symbol(ast.Not)
	require.NoError(t, err)
	assert.Equal(t, "not ", sym)

	pow, _ := precedence.Of(ast.Pow)
	usub, _ := precedence.Of(ast.USub)
	mult, _ := precedence.Of(ast.Mult)
	or, _ := precedence.Of(ast.Or)
	and, _ := precedence.Of(ast.And)
	assert.Greater(t, pow, usub)
	assert.Greater(t, usub, mult)
	assert.Greater(t, and, or)

	_, err = precedence.Symbol(ast.Operator(0))
	assert.Error(t, err)
}

func TestAnnotate(t *testing.T) {
	t.Parallel()

	// (a + b) * c
	sum := &ast.BinOp{Left: &ast.Name{ID: "a"}, Op: ast.Add, Right: &ast.Name{ID: "b"}}
	product := &ast.BinOp{Left: sum, Op: ast.Mult, Right: &ast.Name{ID: "c"}}
	ann, err := precedence.Annotate(&ast.Module{Body: []ast.Stmt{&ast.ExprStmt{Value: product}}})
	require.NoError(t, err)
	assert.True(t, ann.Parens(sum))
	assert.False(t, ann.Parens(product))

	got, ok := ann.Get(sum)
	require.True(t, ok)
	assert.Equal(t, precedence.Annotation{Level: precedence.Arith, Context: precedence.Term, Parens: true}, got)
	assert.Equal(t, 5, ann.Len())
}

func TestAnnotateRightOperand(t *testing.T) {
	t.Parallel()

	// a - (b - c)
	inner := &ast.BinOp{Left: &ast.Name{ID: "b"}, Op: ast.Sub, Right: &ast.Name{ID: "c"}}
	outer := &ast.BinOp{Left: &ast.Name{ID: "a"}, Op: ast.Sub, Right: inner}
	ann, err := precedence.Annotate(outer)
	require.NoError(t, err)
	assert.True(t, ann.Parens(inner))

	// (a - b) - c
	inner = &ast.BinOp{Left: &ast.Name{ID: "a"}, Op: ast.Sub, Right: &ast.Name{ID: "b"}}
	outer = &ast.BinOp{Left: inner, Op: ast.Sub, Right: &ast.Name{ID: "c"}}
	ann, err = precedence.Annotate(outer)
	require.NoError(t, err)
	assert.False(t, ann.Parens(inner))
}

func TestAnnotateContexts(t *testing.T) {
	t.Parallel()

	tuple := &ast.Tuple{Elts: []ast.Expr{&ast.Name{ID: "a"}, &ast.Name{ID: "b"}}}
	yield := &ast.Yield{}
	lambda := &ast.Lambda{Args: &ast.Arguments{}, Body: &ast.Name{ID: "x"}}
	call := &ast.Call{Func: &ast.Name{ID: "f"}, Args: []ast.Expr{lambda}}
	module := &ast.Module{Body: []ast.Stmt{
		&ast.Assign{Targets: []ast.Expr{tuple}, Value: yield},
		&ast.ExprStmt{Value: call},
	}}
	ann, err := precedence.Annotate(module)
	require.NoError(t, err)
	assert.False(t, ann.Parens(tuple))
	assert.False(t, ann.Parens(yield))
	assert.False(t, ann.Parens(lambda))

	// The same yield inside a list needs parentheses.
	list := &ast.List{Elts: []ast.Expr{yield}}
	ann, err = precedence.Annotate(list)
	require.NoError(t, err)
	assert.True(t, ann.Parens(yield))
}

func TestAnnotateErrors(t *testing.T) {
	t.Parallel()

	_, err := precedence.Annotate(&ast.Compare{
		Left:        &ast.Name{ID: "a"},
		Ops:         []ast.CmpOperator{ast.Lt, ast.Gt},
		Comparators: []ast.Expr{&ast.Name{ID: "b"}},
	})
	assert.ErrorIs(t, err, reporter.ErrInvariant)

	_, err = precedence.Annotate(&ast.Dict{Keys: []ast.Expr{nil}})
	assert.ErrorIs(t, err, reporter.ErrInvariant)

	_, err = precedence.Annotate(&ast.BinOp{Left: &ast.Name{ID: "a"}, Right: &ast.Name{ID: "b"}})
	var withNode reporter.ErrorWithNode
	require.ErrorAs(t, err, &withNode)
	assert.Equal(t, ast.KindBinOp, withNode.Node().Kind())
}
