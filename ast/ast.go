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

// Package ast defines the Python syntax tree consumed by the printer.
//
// The tree is a closed set of node types: every concrete node is a pointer to
// one of the structs in this package (plus extension nodes that embed
// [Custom]). Expressions implement [Expr], statements implement [Stmt], and
// the remaining helper nodes (arguments, keywords, aliases and so on)
// implement only [Node].
//
// Nodes own their children. Position information is not modeled, since the
// printer never needs it.
package ast

// Node is any node in a Python syntax tree.
type Node interface {
	// Kind returns the kind of this node.
	Kind() Kind
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Module is the root of a parsed file.
type Module struct {
	Body []Stmt
}

// Interactive is the root of a single interactive input.
type Interactive struct {
	Body []Stmt
}

// Expression is the root of an expression evaluated on its own.
type Expression struct {
	Body Expr
}

func (*Module) Kind() Kind      { return KindModule }
func (*Interactive) Kind() Kind { return KindInteractive }
func (*Expression) Kind() Kind  { return KindExpression }

// Custom is embedded by node types defined outside of this package, such as
// comments, which the printer does not know how to render. Such nodes
// satisfy both [Expr] and [Stmt], and must be handled by a printer hook.
type Custom struct{}

func (Custom) Kind() Kind { return KindCustom }
func (Custom) exprNode()  {}
func (Custom) stmtNode()  {}
