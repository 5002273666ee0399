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
	"strings"

	"github.com/bufbuild/pyunparse/ast"
	"github.com/bufbuild/pyunparse/precedence"
	"github.com/bufbuild/pyunparse/reporter"
)

func (e *Emitter) stmt(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.FunctionDef:
		return e.functionDef(s)
	case *ast.ClassDef:
		return e.classDef(s)

	case *ast.Return:
		if s.Value == nil {
			e.statement("return")
			return nil
		}
		e.statement("return ")
		return e.node(s.Value)

	case *ast.Delete:
		e.statement("del ")
		return e.exprs(s, s.Targets)

	case *ast.Assign:
		if len(s.Targets) == 0 {
			return reporter.Invariant(s, "assignment without targets")
		}
		e.Newline(0)
		for _, target := range s.Targets {
			if err := e.expr(s, target); err != nil {
				return err
			}
			e.write(" = ")
		}
		return e.expr(s, s.Value)

	case *ast.AugAssign:
		sym, err := precedence.Symbol(s.Op)
		if err != nil {
			return reporter.Error(s, err)
		}
		e.Newline(0)
		if err := e.expr(s, s.Target); err != nil {
			return err
		}
		e.write(" " + sym + "= ")
		return e.expr(s, s.Value)

	case *ast.AnnAssign:
		e.Newline(0)
		if !s.Simple {
			e.write("(")
		}
		if err := e.expr(s, s.Target); err != nil {
			return err
		}
		if !s.Simple {
			e.write(")")
		}
		e.write(": ")
		if err := e.expr(s, s.Annotation); err != nil {
			return err
		}
		if s.Value != nil {
			e.write(" = ")
			return e.node(s.Value)
		}
		return nil

	case *ast.For:
		e.Newline(0)
		if s.IsAsync {
			e.write("async ")
		}
		e.write("for ")
		if err := e.expr(s, s.Target); err != nil {
			return err
		}
		e.write(" in ")
		if err := e.expr(s, s.Iter); err != nil {
			return err
		}
		e.write(":")
		return e.bodyOrElse(s, s.Body, s.Orelse)

	case *ast.While:
		e.statement("while ")
		if err := e.expr(s, s.Test); err != nil {
			return err
		}
		e.write(":")
		return e.bodyOrElse(s, s.Body, s.Orelse)

	case *ast.If:
		return e.ifStmt(s)

	case *ast.With:
		e.Newline(0)
		if s.IsAsync {
			e.write("async ")
		}
		e.write("with ")
		for i, item := range s.Items {
			if i > 0 {
				e.write(", ")
			}
			if err := e.withItem(item); err != nil {
				return err
			}
		}
		e.write(":")
		return e.block(s, s.Body)

	case *ast.Raise:
		if s.Exc == nil {
			if s.Cause != nil {
				return reporter.Invariant(s, "cause without exception")
			}
			e.statement("raise")
			return nil
		}
		e.statement("raise ")
		if err := e.node(s.Exc); err != nil {
			return err
		}
		if s.Cause != nil {
			e.write(" from ")
			return e.node(s.Cause)
		}
		return nil

	case *ast.Try:
		return e.try(s)

	case *ast.Assert:
		e.statement("assert ")
		if err := e.expr(s, s.Test); err != nil {
			return err
		}
		if s.Msg != nil {
			e.write(", ")
			return e.node(s.Msg)
		}
		return nil

	case *ast.Import:
		e.statement("import ")
		e.aliases(s.Names)
		return nil

	case *ast.ImportFrom:
		e.statement("from ", strings.Repeat(".", s.Level)+s.Module, " import ")
		e.aliases(s.Names)
		return nil

	case *ast.Global:
		e.statement("global ", strings.Join(s.Names, ", "))
		return nil
	case *ast.Nonlocal:
		e.statement("nonlocal ", strings.Join(s.Names, ", "))
		return nil

	case *ast.ExprStmt:
		e.Newline(0)
		return e.expr(s, s.Value)

	case *ast.Pass:
		e.statement("pass")
		return nil
	case *ast.Break:
		e.statement("break")
		return nil
	case *ast.Continue:
		e.statement("continue")
		return nil

	default:
		return reporter.Unsupported(s)
	}
}

func (e *Emitter) statement(texts ...string) {
	e.Newline(0)
	e.write(texts...)
}

// decorators renders the decorators of a definition, preceded by the blank
// lines that separate definitions.
func (e *Emitter) decorators(parent ast.Node, decorators []ast.Expr) error {
	if e.level == 0 {
		e.Newline(2)
	} else {
		e.Newline(1)
	}
	for _, d := range decorators {
		e.statement("@")
		if err := e.expr(parent, d); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) functionDef(s *ast.FunctionDef) error {
	if err := e.decorators(s, s.DecoratorList); err != nil {
		return err
	}
	e.Newline(0)
	if s.IsAsync {
		e.write("async ")
	}
	e.write("def ", s.Name, "(")
	if s.Args != nil {
		if err := e.arguments(s.Args); err != nil {
			return err
		}
	}
	e.write(")")
	if s.Returns != nil {
		e.write(" -> ")
		if err := e.node(s.Returns); err != nil {
			return err
		}
	}
	e.write(":")
	if err := e.block(s, s.Body); err != nil {
		return err
	}
	if e.level == 0 {
		e.Newline(2)
	}
	return nil
}

func (e *Emitter) classDef(s *ast.ClassDef) error {
	if err := e.decorators(s, s.DecoratorList); err != nil {
		return err
	}
	e.statement("class ", s.Name)
	if len(s.Bases) > 0 || len(s.Keywords) > 0 {
		e.write("(")
		if err := e.exprs(s, s.Bases); err != nil {
			return err
		}
		for i, kw := range s.Keywords {
			if i > 0 || len(s.Bases) > 0 {
				e.write(", ")
			}
			if err := e.keyword(kw); err != nil {
				return err
			}
		}
		e.write(")")
	}
	e.write(":")
	if err := e.block(s, s.Body); err != nil {
		return err
	}
	if e.level == 0 {
		e.Newline(2)
	}
	return nil
}

// ifStmt renders an if statement, folding a lone nested if in the else
// branch into elif.
func (e *Emitter) ifStmt(s *ast.If) error {
	e.statement("if ")
	for {
		if err := e.expr(s, s.Test); err != nil {
			return err
		}
		e.write(":")
		if err := e.block(s, s.Body); err != nil {
			return err
		}
		next, ok := elif(s.Orelse)
		if !ok {
			return e.elseBlock(s, s.Orelse)
		}
		s = next
		e.statement("elif ")
	}
}

func elif(orelse []ast.Stmt) (*ast.If, bool) {
	if len(orelse) != 1 {
		return nil, false
	}
	s, ok := orelse[0].(*ast.If)
	return s, ok
}

func (e *Emitter) bodyOrElse(parent ast.Node, body, orelse []ast.Stmt) error {
	if err := e.block(parent, body); err != nil {
		return err
	}
	return e.elseBlock(parent, orelse)
}

func (e *Emitter) elseBlock(parent ast.Node, orelse []ast.Stmt) error {
	if len(orelse) == 0 {
		return nil
	}
	e.statement("else", ":")
	return e.block(parent, orelse)
}

func (e *Emitter) try(s *ast.Try) error {
	if len(s.Handlers) == 0 && len(s.Finalbody) == 0 {
		return reporter.Invariant(s, "try without handlers or finally")
	}
	if len(s.Orelse) > 0 && len(s.Handlers) == 0 {
		return reporter.Invariant(s, "try with else but no handlers")
	}
	e.statement("try", ":")
	if err := e.block(s, s.Body); err != nil {
		return err
	}
	for _, h := range s.Handlers {
		if h == nil {
			return reporter.Invariant(s, "nil handler")
		}
		if s.Star && h.Type == nil {
			return reporter.Invariant(s, "except* without a type")
		}
		if err := e.handler(h, s.Star); err != nil {
			return err
		}
	}
	if err := e.elseBlock(s, s.Orelse); err != nil {
		return err
	}
	if len(s.Finalbody) > 0 {
		e.statement("finally", ":")
		return e.block(s, s.Finalbody)
	}
	return nil
}

func (e *Emitter) handler(h *ast.ExceptHandler, star bool) error {
	switch {
	case h.Type == nil:
		e.statement("except")
	case star:
		e.statement("except* ")
	default:
		e.statement("except ")
	}
	if h.Type != nil {
		if err := e.node(h.Type); err != nil {
			return err
		}
	}
	if h.Name != "" {
		e.write(" as ", h.Name)
	}
	e.write(":")
	return e.block(h, h.Body)
}

func (e *Emitter) aliases(names []*ast.Alias) {
	for i, a := range names {
		if i > 0 {
			e.write(", ")
		}
		e.alias(a)
	}
}

func (e *Emitter) alias(a *ast.Alias) {
	e.write(a.Name)
	if a.AsName != "" {
		e.write(" as ", a.AsName)
	}
}

func (e *Emitter) withItem(item *ast.WithItem) error {
	if item == nil {
		return reporter.Invariant(nil, "nil with item")
	}
	if err := e.expr(item, item.ContextExpr); err != nil {
		return err
	}
	if item.OptionalVars != nil {
		e.write(" as ")
		return e.node(item.OptionalVars)
	}
	return nil
}

func (e *Emitter) keyword(kw *ast.Keyword) error {
	if kw == nil {
		return reporter.Invariant(nil, "nil keyword")
	}
	if kw.Arg == "" {
		e.write("**")
	} else {
		e.write(kw.Arg, "=")
	}
	return e.expr(kw, kw.Value)
}
