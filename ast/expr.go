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

import (
	"math/big"
)

// BoolOp is a chain of `and` or `or` operands.
type BoolOp struct {
	Op     BoolOperator
	Values []Expr
}

// NamedExpr is an assignment expression, `target := value`.
type NamedExpr struct {
	Target Expr
	Value  Expr
}

// BinOp is a binary operation.
type BinOp struct {
	Left  Expr
	Op    Operator
	Right Expr
}

// UnaryOp is a unary operation.
type UnaryOp struct {
	Op      UnaryOperator
	Operand Expr
}

// Lambda is an anonymous function.
type Lambda struct {
	Args *Arguments
	Body Expr
}

// IfExp is a conditional expression, `body if test else orelse`.
type IfExp struct {
	Test   Expr
	Body   Expr
	Orelse Expr
}

// Dict is a dictionary display. A nil key marks a `**value` unpacking.
type Dict struct {
	Keys   []Expr
	Values []Expr
}

// Set is a set display.
type Set struct {
	Elts []Expr
}

// ListComp is a list comprehension.
type ListComp struct {
	Elt        Expr
	Generators []*Comprehension
}

// SetComp is a set comprehension.
type SetComp struct {
	Elt        Expr
	Generators []*Comprehension
}

// DictComp is a dictionary comprehension.
type DictComp struct {
	Key        Expr
	Value      Expr
	Generators []*Comprehension
}

// GeneratorExp is a generator expression.
type GeneratorExp struct {
	Elt        Expr
	Generators []*Comprehension
}

// Await is an await expression.
type Await struct {
	Value Expr
}

// Yield is a yield expression. Value may be nil.
type Yield struct {
	Value Expr
}

// YieldFrom is a `yield from` expression.
type YieldFrom struct {
	Value Expr
}

// Compare is a comparison chain. Ops and Comparators have the same length.
type Compare struct {
	Left        Expr
	Ops         []CmpOperator
	Comparators []Expr
}

// Call is a function call.
type Call struct {
	Func     Expr
	Args     []Expr
	Keywords []*Keyword
}

// FormattedValue is a replacement field inside a [JoinedStr].
type FormattedValue struct {
	Value Expr
	// Conversion is one of 's', 'r' or 'a', or zero for none.
	Conversion rune
	// FormatSpec is nil or a *JoinedStr.
	FormatSpec Expr
}

// JoinedStr is an f-string. Values are *Str and *FormattedValue nodes.
type JoinedStr struct {
	Values []Expr
}

// NumType distinguishes the representations a [Num] may hold.
type NumType byte

const (
	NumInt NumType = iota
	NumFloat
	NumComplex
)

// Num is a numeric literal.
type Num struct {
	Type NumType

	Int   *big.Int // For NumInt.
	Float float64  // For NumFloat.
	Real  float64  // For NumComplex.
	Imag  float64  // For NumComplex.
}

// NewInt returns an integer literal.
func NewInt(v int64) *Num {
	return &Num{Type: NumInt, Int: big.NewInt(v)}
}

// NewFloat returns a floating-point literal.
func NewFloat(v float64) *Num {
	return &Num{Type: NumFloat, Float: v}
}

// NewComplex returns a complex literal.
func NewComplex(re, im float64) *Num {
	return &Num{Type: NumComplex, Real: re, Imag: im}
}

// Str is a string literal.
type Str struct {
	S string
	// Prefix is "u" when the literal was written with a u prefix.
	Prefix string
}

// Bytes is a bytes literal.
type Bytes struct {
	S []byte
}

// Singleton is the value of a [NameConstant].
type Singleton byte

const (
	None Singleton = iota
	True
	False
)

// String implements [fmt.Stringer].
func (s Singleton) String() string {
	switch s {
	case True:
		return "True"
	case False:
		return "False"
	default:
		return "None"
	}
}

// NameConstant is one of None, True or False.
type NameConstant struct {
	Value Singleton
}

// Ellipsis is the `...` literal.
type Ellipsis struct{}

// Attribute is an attribute access, `value.attr`.
type Attribute struct {
	Value Expr
	Attr  string
}

// Subscript is a subscription, `value[slice]`.
type Subscript struct {
	Value Expr
	Slice Expr
}

// Starred is a `*value` unpacking.
type Starred struct {
	Value Expr
}

// Name is a variable reference.
type Name struct {
	ID string
}

// List is a list display.
type List struct {
	Elts []Expr
}

// Tuple is a tuple display.
type Tuple struct {
	Elts []Expr
}

// Slice is a slice inside a subscript. All fields may be nil.
type Slice struct {
	Lower Expr
	Upper Expr
	Step  Expr
}

func (*BoolOp) Kind() Kind         { return KindBoolOp }
func (*NamedExpr) Kind() Kind      { return KindNamedExpr }
func (*BinOp) Kind() Kind          { return KindBinOp }
func (*UnaryOp) Kind() Kind        { return KindUnaryOp }
func (*Lambda) Kind() Kind         { return KindLambda }
func (*IfExp) Kind() Kind          { return KindIfExp }
func (*Dict) Kind() Kind           { return KindDict }
func (*Set) Kind() Kind            { return KindSet }
func (*ListComp) Kind() Kind       { return KindListComp }
func (*SetComp) Kind() Kind        { return KindSetComp }
func (*DictComp) Kind() Kind       { return KindDictComp }
func (*GeneratorExp) Kind() Kind   { return KindGeneratorExp }
func (*Await) Kind() Kind          { return KindAwait }
func (*Yield) Kind() Kind          { return KindYield }
func (*YieldFrom) Kind() Kind      { return KindYieldFrom }
func (*Compare) Kind() Kind        { return KindCompare }
func (*Call) Kind() Kind           { return KindCall }
func (*FormattedValue) Kind() Kind { return KindFormattedValue }
func (*JoinedStr) Kind() Kind      { return KindJoinedStr }
func (*Num) Kind() Kind            { return KindNum }
func (*Str) Kind() Kind            { return KindStr }
func (*Bytes) Kind() Kind          { return KindBytes }
func (*NameConstant) Kind() Kind   { return KindNameConstant }
func (*Ellipsis) Kind() Kind       { return KindEllipsis }
func (*Attribute) Kind() Kind      { return KindAttribute }
func (*Subscript) Kind() Kind      { return KindSubscript }
func (*Starred) Kind() Kind        { return KindStarred }
func (*Name) Kind() Kind           { return KindName }
func (*List) Kind() Kind           { return KindList }
func (*Tuple) Kind() Kind          { return KindTuple }
func (*Slice) Kind() Kind          { return KindSlice }

func (*BoolOp) exprNode()         {}
func (*NamedExpr) exprNode()      {}
func (*BinOp) exprNode()          {}
func (*UnaryOp) exprNode()        {}
func (*Lambda) exprNode()         {}
func (*IfExp) exprNode()          {}
func (*Dict) exprNode()           {}
func (*Set) exprNode()            {}
func (*ListComp) exprNode()       {}
func (*SetComp) exprNode()        {}
func (*DictComp) exprNode()       {}
func (*GeneratorExp) exprNode()   {}
func (*Await) exprNode()          {}
func (*Yield) exprNode()          {}
func (*YieldFrom) exprNode()      {}
func (*Compare) exprNode()        {}
func (*Call) exprNode()           {}
func (*FormattedValue) exprNode() {}
func (*JoinedStr) exprNode()      {}
func (*Num) exprNode()            {}
func (*Str) exprNode()            {}
func (*Bytes) exprNode()          {}
func (*NameConstant) exprNode()   {}
func (*Ellipsis) exprNode()       {}
func (*Attribute) exprNode()      {}
func (*Subscript) exprNode()      {}
func (*Starred) exprNode()        {}
func (*Name) exprNode()           {}
func (*List) exprNode()           {}
func (*Tuple) exprNode()          {}
func (*Slice) exprNode()          {}
