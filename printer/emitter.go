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
	"fmt"
	"strings"

	"github.com/bufbuild/pyunparse/ast"
	"github.com/bufbuild/pyunparse/precedence"
	"github.com/bufbuild/pyunparse/reporter"
	"github.com/bufbuild/pyunparse/token"
)

// Emitter produces the token stream for a tree. [Hook] functions receive
// it to render nodes of their own.
type Emitter struct {
	options Options
	ann     *precedence.Annotations

	tokens  []token.Token
	level   int
	pending int
}

// Level returns the current statement nesting depth.
func (e *Emitter) Level() int {
	return e.level
}

// Newline requests that the next write start a new line, preceded by extra
// blank lines. Requests do not accumulate: the largest one wins.
func (e *Emitter) Newline(extra int) {
	e.pending = max(e.pending, 1+extra)
}

// Statement starts a new line and writes parts to it.
func (e *Emitter) Statement(parts ...any) error {
	e.Newline(0)
	return e.Write(parts...)
}

// Write emits each part in order. A part may be a string, which is emitted
// as text, an [ast.Node], which is rendered, or a func(), which is called.
func (e *Emitter) Write(parts ...any) error {
	for _, part := range parts {
		var err error
		switch part := part.(type) {
		case string:
			e.write(part)
		case ast.Node:
			err = e.Node(part)
		case func():
			part()
		default:
			return fmt.Errorf("printer: cannot write %T", part)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Node renders n, which need not be part of the tree being printed.
func (e *Emitter) Node(n ast.Node) error {
	if n == nil {
		return errNilNode
	}
	if err := e.ann.Add(n); err != nil {
		return err
	}
	return e.node(n)
}

// Body renders statements one level deeper.
func (e *Emitter) Body(stmts []ast.Stmt) error {
	e.level++
	defer func() { e.level-- }()
	for _, s := range stmts {
		if err := e.node(s); err != nil {
			return err
		}
	}
	return nil
}

// Mark returns a position in the token stream for [Emitter.CommentOut].
func (e *Emitter) Mark() int {
	return len(e.tokens)
}

// CommentOut turns every line started since mark into a comment, by
// prefixing its indentation with "#". Continuation lines added when the
// statement is wrapped carry the prefix too, and its strings are never
// triple-quoted.
func (e *Emitter) CommentOut(mark int) {
	for i := mark; i < len(e.tokens); i++ {
		t := e.tokens[i]
		if t.Kind() == token.Indent {
			e.tokens[i] = t.WithText("#" + t.Text())
		}
	}
}

// write emits text, first starting any requested new line. The line break
// is flushed even for empty text.
func (e *Emitter) write(texts ...string) {
	for _, text := range texts {
		e.flush()
		if text != "" {
			e.tokens = append(e.tokens, token.NewText(text))
		}
	}
}

func (e *Emitter) emit(t token.Token) {
	e.flush()
	e.tokens = append(e.tokens, t)
}

func (e *Emitter) flush() {
	if e.pending == 0 {
		return
	}
	e.tokens = append(e.tokens,
		token.NewNewline(e.pending),
		token.NewIndent(strings.Repeat(e.options.Indent, e.level)))
	e.pending = 0
}

// node renders a node of the tree, consulting the hook first.
func (e *Emitter) node(n ast.Node) error {
	if e.options.Hook != nil {
		handled, err := e.options.Hook(e, n)
		if handled || err != nil {
			return err
		}
	}

	switch n := n.(type) {
	case *ast.Module:
		return e.stmts(n, n.Body)
	case *ast.Interactive:
		return e.stmts(n, n.Body)
	case *ast.Expression:
		return e.expr(n, n.Body)
	case ast.Stmt:
		return e.stmt(n)
	case ast.Expr:
		return e.exprNode(n)
	case *ast.Arguments:
		return e.arguments(n)
	case *ast.Arg:
		return e.arg(n)
	case *ast.Keyword:
		return e.keyword(n)
	case *ast.Alias:
		e.alias(n)
		return nil
	case *ast.WithItem:
		return e.withItem(n)
	case *ast.Comprehension:
		return e.comprehension(n)
	case *ast.ExceptHandler:
		return e.handler(n, false)
	default:
		return reporter.Unsupported(n)
	}
}

func (e *Emitter) stmts(parent ast.Node, body []ast.Stmt) error {
	for _, s := range body {
		if s == nil {
			return reporter.Invariant(parent, "nil statement")
		}
		if err := e.node(s); err != nil {
			return err
		}
	}
	return nil
}

// block renders the body of a compound statement.
func (e *Emitter) block(parent ast.Node, body []ast.Stmt) error {
	if len(body) == 0 {
		return reporter.Invariant(parent, "empty body")
	}
	e.level++
	defer func() { e.level-- }()
	return e.stmts(parent, body)
}

// expr renders a required child expression of parent.
func (e *Emitter) expr(parent ast.Node, x ast.Expr) error {
	if x == nil {
		return reporter.Invariant(parent, "missing expression")
	}
	return e.node(x)
}

// exprs renders a comma-separated list.
func (e *Emitter) exprs(parent ast.Node, xs []ast.Expr) error {
	for i, x := range xs {
		if i > 0 {
			e.write(", ")
		}
		if err := e.expr(parent, x); err != nil {
			return err
		}
	}
	return nil
}

// exprNode renders an expression inside the parentheses its annotation
// asks for.
func (e *Emitter) exprNode(x ast.Expr) error {
	parens := e.ann.Parens(x)
	if parens {
		e.write("(")
	}
	if err := e.exprBody(x); err != nil {
		return err
	}
	if parens {
		e.write(")")
	}
	return nil
}
