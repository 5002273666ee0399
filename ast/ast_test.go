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

package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/pyunparse/ast"
)

func TestKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Expr", (&ast.ExprStmt{}).Kind().String())
	assert.Equal(t, "BinOp", ast.KindBinOp.String())
	assert.Equal(t, "arguments", ast.KindArguments.String())

	assert.True(t, ast.KindName.IsExpr())
	assert.False(t, ast.KindName.IsStmt())
	assert.True(t, ast.KindPass.IsStmt())
	assert.False(t, ast.KindArguments.IsExpr())
	assert.False(t, ast.KindArguments.IsStmt())

	for _, name := range []string{"Module", "If", "Expr", "JoinedStr", "comprehension"} {
		k, ok := ast.KindByName(name)
		if assert.True(t, ok, name) {
			assert.Equal(t, name, k.String())
		}
	}
	k, ok := ast.KindByName("AsyncFunctionDef")
	assert.True(t, ok)
	assert.Equal(t, ast.KindFunctionDef, k)
	_, ok = ast.KindByName("Match")
	assert.False(t, ok)
}

func TestOperatorNames(t *testing.T) {
	t.Parallel()

	op, ok := ast.OperatorByName("FloorDiv")
	assert.True(t, ok)
	assert.Equal(t, ast.FloorDiv, op)
	assert.Equal(t, "FloorDiv", op.String())

	cmp, ok := ast.CmpOperatorByName("NotIn")
	assert.True(t, ok)
	assert.Equal(t, ast.NotIn, cmp)

	_, ok = ast.UnaryOperatorByName("Add")
	assert.False(t, ok)
	assert.Equal(t, "ast.BoolOperator(9)", ast.BoolOperator(9).String())
}

func TestCustom(t *testing.T) {
	t.Parallel()

	type comment struct {
		ast.Custom
		Text string
	}
	var stmt ast.Stmt = &comment{Text: "hi"}
	var expr ast.Expr = comment{}
	assert.Equal(t, ast.KindCustom, stmt.Kind())
	assert.Equal(t, ast.KindCustom, expr.Kind())
}
