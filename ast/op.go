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

package ast

import "fmt"

// Operator is a binary arithmetic or bitwise operator, used by [BinOp] and
// [AugAssign].
type Operator byte

const (
	_ Operator = iota
	Add
	Sub
	Mult
	MatMult
	Div
	Mod
	Pow
	LShift
	RShift
	BitOr
	BitXor
	BitAnd
	FloorDiv
)

// UnaryOperator is the operator of a [UnaryOp].
type UnaryOperator byte

const (
	_ UnaryOperator = iota
	Invert
	Not
	UAdd
	USub
)

// BoolOperator is the operator of a [BoolOp].
type BoolOperator byte

const (
	_ BoolOperator = iota
	And
	Or
)

// CmpOperator is one of the operators of a [Compare] chain.
type CmpOperator byte

const (
	_ CmpOperator = iota
	Eq
	NotEq
	Lt
	LtE
	Gt
	GtE
	Is
	IsNot
	In
	NotIn
)

var (
	operatorNames = [...]string{
		Add: "Add", Sub: "Sub", Mult: "Mult", MatMult: "MatMult", Div: "Div",
		Mod: "Mod", Pow: "Pow", LShift: "LShift", RShift: "RShift",
		BitOr: "BitOr", BitXor: "BitXor", BitAnd: "BitAnd", FloorDiv: "FloorDiv",
	}
	unaryNames = [...]string{Invert: "Invert", Not: "Not", UAdd: "UAdd", USub: "USub"}
	boolNames  = [...]string{And: "And", Or: "Or"}
	cmpNames   = [...]string{
		Eq: "Eq", NotEq: "NotEq", Lt: "Lt", LtE: "LtE", Gt: "Gt", GtE: "GtE",
		Is: "Is", IsNot: "IsNot", In: "In", NotIn: "NotIn",
	}
)

// String implements [fmt.Stringer].
func (o Operator) String() string {
	return opName(operatorNames[:], int(o), "ast.Operator")
}

// String implements [fmt.Stringer].
func (o UnaryOperator) String() string {
	return opName(unaryNames[:], int(o), "ast.UnaryOperator")
}

// String implements [fmt.Stringer].
func (o BoolOperator) String() string {
	return opName(boolNames[:], int(o), "ast.BoolOperator")
}

// String implements [fmt.Stringer].
func (o CmpOperator) String() string {
	return opName(cmpNames[:], int(o), "ast.CmpOperator")
}

func opName(names []string, i int, typ string) string {
	if i > 0 && i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("%s(%d)", typ, i)
}

// OperatorByName looks up a binary operator by its Python class name.
func OperatorByName(name string) (Operator, bool) {
	return lookupOp[Operator](operatorNames[:], name)
}

// UnaryOperatorByName looks up a unary operator by its Python class name.
func UnaryOperatorByName(name string) (UnaryOperator, bool) {
	return lookupOp[UnaryOperator](unaryNames[:], name)
}

// BoolOperatorByName looks up a boolean operator by its Python class name.
func BoolOperatorByName(name string) (BoolOperator, bool) {
	return lookupOp[BoolOperator](boolNames[:], name)
}

// CmpOperatorByName looks up a comparison operator by its Python class name.
func CmpOperatorByName(name string) (CmpOperator, bool) {
	return lookupOp[CmpOperator](cmpNames[:], name)
}

func lookupOp[O ~byte](names []string, name string) (O, bool) {
	for i, n := range names {
		if i > 0 && n == name {
			return O(i), true
		}
	}
	return 0, false
}
