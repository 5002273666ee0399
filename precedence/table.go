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
	"fmt"

	"github.com/bufbuild/pyunparse/ast"
)

// Level is the binding strength of an expression. Higher levels bind more
// tightly.
type Level int

const (
	// Statement is the context of an expression that makes up a whole
	// statement, or the whole right-hand side of an assignment.
	Statement Level = -2
	// None is the context of an expression that is delimited by
	// punctuation, such as a call argument or a list element.
	None Level = -1
	// Comma is the loosest context inside another expression. Lambdas,
	// conditional expressions and yields are parenthesized here.
	Comma Level = 1
	// Lambda is the level of lambdas and conditional expressions.
	Lambda Level = 2

	Or      Level = 4
	And     Level = 6
	Not     Level = 8
	Compare Level = 10
	BitOr   Level = 12
	BitXor  Level = 14
	BitAnd  Level = 16
	Shift   Level = 18
	Arith   Level = 20
	Term    Level = 22
	Unary   Level = 24
	Power   Level = 26
	Await   Level = 28
	// Primary is the level of attribute references, subscriptions and calls,
	// and the context of the expression they apply to.
	Primary Level = 30
	// Atom is the level of names, literals and displays.
	Atom Level = 32
)

// Operator is any of the operator types of package ast.
type Operator interface {
	ast.Operator | ast.UnaryOperator | ast.BoolOperator | ast.CmpOperator
}

type entry struct {
	symbol string
	level  Level
}

// table is the only process-wide state of the printer. It is never written
// after initialization.
var table = map[any]entry{
	ast.Or:  {"or", Or},
	ast.And: {"and", And},
	ast.Not: {"not ", Not},

	ast.Eq:    {"==", Compare},
	ast.Gt:    {">", Compare},
	ast.GtE:   {">=", Compare},
	ast.In:    {"in", Compare},
	ast.Is:    {"is", Compare},
	ast.NotEq: {"!=", Compare},
	ast.Lt:    {"<", Compare},
	ast.LtE:   {"<=", Compare},
	ast.NotIn: {"not in", Compare},
	ast.IsNot: {"is not", Compare},

	ast.BitOr:    {"|", BitOr},
	ast.BitXor:   {"^", BitXor},
	ast.BitAnd:   {"&", BitAnd},
	ast.LShift:   {"<<", Shift},
	ast.RShift:   {">>", Shift},
	ast.Add:      {"+", Arith},
	ast.Sub:      {"-", Arith},
	ast.Mult:     {"*", Term},
	ast.Div:      {"/", Term},
	ast.Mod:      {"%", Term},
	ast.FloorDiv: {"//", Term},
	ast.MatMult:  {"@", Term},
	ast.UAdd:     {"+", Unary},
	ast.USub:     {"-", Unary},
	ast.Invert:   {"~", Unary},
	ast.Pow:      {"**", Power},
}

func lookup[O Operator](op O) (entry, error) {
	e, ok := table[op]
	if !ok {
		return entry{}, fmt.Errorf("precedence: no operator %v (%T)", op, op)
	}
	return e, nil
}

// Symbol returns the source text of op. The symbol of `not` includes its
// trailing space.
func Symbol[O Operator](op O) (string, error) {
	e, err := lookup(op)
	return e.symbol, err
}

// Of returns the level of op.
func Of[O Operator](op O) (Level, error) {
	e, err := lookup(op)
	return e.level, err
}
