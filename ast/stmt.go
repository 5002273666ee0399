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

// FunctionDef is a `def` or `async def` statement.
type FunctionDef struct {
	Name          string
	Args          *Arguments
	Body          []Stmt
	DecoratorList []Expr
	Returns       Expr
	IsAsync       bool
}

// ClassDef is a class definition.
type ClassDef struct {
	Name          string
	Bases         []Expr
	Keywords      []*Keyword
	Body          []Stmt
	DecoratorList []Expr
}

// Return is a return statement. Value may be nil.
type Return struct {
	Value Expr
}

// Delete is a `del` statement.
type Delete struct {
	Targets []Expr
}

// Assign is an assignment, possibly chained: `a = b = value`.
type Assign struct {
	Targets []Expr
	Value   Expr
}

// AugAssign is an augmented assignment such as `a += 1`.
type AugAssign struct {
	Target Expr
	Op     Operator
	Value  Expr
}

// AnnAssign is an annotated assignment. Value may be nil.
type AnnAssign struct {
	Target     Expr
	Annotation Expr
	Value      Expr
	// Simple is false when a bare name target was parenthesized in the
	// source, which changes its semantics in class and module scopes.
	Simple bool
}

// For is a `for` or `async for` loop.
type For struct {
	Target  Expr
	Iter    Expr
	Body    []Stmt
	Orelse  []Stmt
	IsAsync bool
}

// While is a while loop.
type While struct {
	Test   Expr
	Body   []Stmt
	Orelse []Stmt
}

// If is an if statement. An `elif` is an If that is the sole statement of
// its parent's Orelse.
type If struct {
	Test   Expr
	Body   []Stmt
	Orelse []Stmt
}

// With is a `with` or `async with` statement.
type With struct {
	Items   []*WithItem
	Body    []Stmt
	IsAsync bool
}

// Raise is a raise statement. Both fields may be nil.
type Raise struct {
	Exc   Expr
	Cause Expr
}

// Try is a try statement. Star marks `except*` handlers.
type Try struct {
	Body      []Stmt
	Handlers  []*ExceptHandler
	Orelse    []Stmt
	Finalbody []Stmt
	Star      bool
}

// Assert is an assert statement. Msg may be nil.
type Assert struct {
	Test Expr
	Msg  Expr
}

// Import is an `import` statement.
type Import struct {
	Names []*Alias
}

// ImportFrom is a `from ... import` statement. Module may be empty when
// Level is positive.
type ImportFrom struct {
	Module string
	Names  []*Alias
	Level  int
}

// Global is a global declaration.
type Global struct {
	Names []string
}

// Nonlocal is a nonlocal declaration.
type Nonlocal struct {
	Names []string
}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	Value Expr
}

type (
	Pass     struct{}
	Break    struct{}
	Continue struct{}
)

func (*FunctionDef) Kind() Kind { return KindFunctionDef }
func (*ClassDef) Kind() Kind    { return KindClassDef }
func (*Return) Kind() Kind      { return KindReturn }
func (*Delete) Kind() Kind      { return KindDelete }
func (*Assign) Kind() Kind      { return KindAssign }
func (*AugAssign) Kind() Kind   { return KindAugAssign }
func (*AnnAssign) Kind() Kind   { return KindAnnAssign }
func (*For) Kind() Kind         { return KindFor }
func (*While) Kind() Kind       { return KindWhile }
func (*If) Kind() Kind          { return KindIf }
func (*With) Kind() Kind        { return KindWith }
func (*Raise) Kind() Kind       { return KindRaise }
func (*Try) Kind() Kind         { return KindTry }
func (*Assert) Kind() Kind      { return KindAssert }
func (*Import) Kind() Kind      { return KindImport }
func (*ImportFrom) Kind() Kind  { return KindImportFrom }
func (*Global) Kind() Kind      { return KindGlobal }
func (*Nonlocal) Kind() Kind    { return KindNonlocal }
func (*ExprStmt) Kind() Kind    { return KindExpr }
func (*Pass) Kind() Kind        { return KindPass }
func (*Break) Kind() Kind       { return KindBreak }
func (*Continue) Kind() Kind    { return KindContinue }

func (*FunctionDef) stmtNode() {}
func (*ClassDef) stmtNode()    {}
func (*Return) stmtNode()      {}
func (*Delete) stmtNode()      {}
func (*Assign) stmtNode()      {}
func (*AugAssign) stmtNode()   {}
func (*AnnAssign) stmtNode()   {}
func (*For) stmtNode()         {}
func (*While) stmtNode()       {}
func (*If) stmtNode()          {}
func (*With) stmtNode()        {}
func (*Raise) stmtNode()       {}
func (*Try) stmtNode()         {}
func (*Assert) stmtNode()      {}
func (*Import) stmtNode()      {}
func (*ImportFrom) stmtNode()  {}
func (*Global) stmtNode()      {}
func (*Nonlocal) stmtNode()    {}
func (*ExprStmt) stmtNode()    {}
func (*Pass) stmtNode()        {}
func (*Break) stmtNode()       {}
func (*Continue) stmtNode()    {}

// Arguments is the parameter list of a function or lambda.
type Arguments struct {
	PosOnlyArgs []*Arg
	Args        []*Arg
	Vararg      *Arg
	KwOnlyArgs  []*Arg
	// KwDefaults has one entry per KwOnlyArgs; nil entries have no default.
	KwDefaults []Expr
	Kwarg      *Arg
	// Defaults apply to the last len(Defaults) of PosOnlyArgs+Args.
	Defaults []Expr
}

// Arg is a single parameter. Annotation may be nil.
type Arg struct {
	Name       string
	Annotation Expr
}

// Keyword is a keyword argument of a call or class definition. An empty
// Arg marks a `**value` unpacking.
type Keyword struct {
	Arg   string
	Value Expr
}

// Alias is one name in an import statement.
type Alias struct {
	Name   string
	AsName string
}

// WithItem is one context manager of a with statement.
type WithItem struct {
	ContextExpr  Expr
	OptionalVars Expr
}

// Comprehension is one `for` clause of a comprehension.
type Comprehension struct {
	Target  Expr
	Iter    Expr
	Ifs     []Expr
	IsAsync bool
}

// ExceptHandler is one except clause of a [Try]. Type may be nil.
type ExceptHandler struct {
	Type Expr
	Name string
	Body []Stmt
}

func (*Arguments) Kind() Kind     { return KindArguments }
func (*Arg) Kind() Kind           { return KindArg }
func (*Keyword) Kind() Kind       { return KindKeyword }
func (*Alias) Kind() Kind         { return KindAlias }
func (*WithItem) Kind() Kind      { return KindWithItem }
func (*Comprehension) Kind() Kind { return KindComprehension }
func (*ExceptHandler) Kind() Kind { return KindExceptHandler }
