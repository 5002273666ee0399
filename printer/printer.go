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

// Package printer renders a Python syntax tree as source text.
//
// Rendering happens in two passes. The tree is first flattened into a
// stream of tokens, one logical line per statement, with the parentheses
// that precedence requires already in place. The token lines are then
// reflowed to the configured width by package reflow.
package printer

import (
	"errors"
	"strings"

	"github.com/bufbuild/pyunparse/ast"
	"github.com/bufbuild/pyunparse/precedence"
	"github.com/bufbuild/pyunparse/reflow"
	"github.com/bufbuild/pyunparse/reporter"
	"github.com/bufbuild/pyunparse/token"
)

var errNilNode = errors.New("printer: nil node")

// Print renders node as Python source.
//
// node may be a module, a single statement, an expression, or one of the
// helper nodes such as [ast.Arguments]. The result ends with a newline
// unless it is empty. Statements that stay wider than MaxWidth are reported
// to options.Reporter as a *[reporter.WidthError].
func Print(options Options, node ast.Node) (string, error) {
	options = options.WithDefaults()
	tokens, err := PrintTokens(options, node)
	if err != nil {
		return "", err
	}

	lines := token.Group(tokens)
	ro := options.reflowOptions()
	ro.Report = func(s reflow.Shortfall) {
		options.Reporter.Warning(&reporter.WidthError{
			Line:    outputLine(lines, s.Line),
			Width:   s.Width,
			Max:     options.MaxWidth,
			Skipped: s.Skipped,
		})
	}
	reflow.Lines(lines, ro)

	out := token.Join(lines)
	options.Logger.Debug("printed tree",
		"kind", node.Kind(),
		"tokens", len(tokens),
		"statements", len(lines),
		"bytes", len(out))
	return out, nil
}

// PrintTokens returns the token stream for node before reflowing.
func PrintTokens(options Options, node ast.Node) ([]token.Token, error) {
	if node == nil {
		return nil, errNilNode
	}
	options = options.WithDefaults()
	ann, err := precedence.Annotate(node)
	if err != nil {
		return nil, err
	}
	e := &Emitter{options: options, ann: ann}
	if err := e.node(node); err != nil {
		return nil, err
	}
	return e.tokens, nil
}

// outputLine returns the 1-based line of the output on which lines[index]
// starts. Lines before index must already be reflowed.
func outputLine(lines []token.Line, index int) int {
	n := 1 + lines[index].Breaks
	for _, l := range lines[:index] {
		n += l.Breaks + strings.Count(l.Text(), "\n")
	}
	return n
}
