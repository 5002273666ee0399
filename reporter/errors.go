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

package reporter

import (
	"errors"
	"fmt"

	"github.com/bufbuild/pyunparse/ast"
)

var (
	// ErrUnsupported is wrapped by errors about nodes the printer has no
	// rendering rule for.
	ErrUnsupported = errors.New("unsupported construct")
	// ErrInvariant is wrapped by errors about malformed trees, such as a
	// comparison chain whose operators and operands do not line up.
	ErrInvariant = errors.New("invariant violation")
	// ErrTooWide is wrapped by warnings about statements that could not be
	// wrapped to the configured width.
	ErrTooWide = errors.New("statement exceeds maximum width")
	// ErrRenderFailed is returned by a [Handler] when errors were reported
	// but the reporter chose not to return any of them.
	ErrRenderFailed = errors.New("render failed: tree cannot be printed")
)

// ErrorWithNode is an error about a node of the tree being printed.
//
// The value of Error() contains both the node's kind and the underlying
// error. The value of Unwrap() is only the underlying error.
type ErrorWithNode interface {
	error
	Node() ast.Node
	Unwrap() error
}

// Error returns an error about node.
func Error(node ast.Node, err error) ErrorWithNode {
	return errorWithNode{node: node, underlying: err}
}

// Errorf returns an error about node with a formatted message.
func Errorf(node ast.Node, format string, args ...any) ErrorWithNode {
	return errorWithNode{node: node, underlying: fmt.Errorf(format, args...)}
}

// Unsupported returns an error for a node that cannot be rendered.
func Unsupported(node ast.Node) ErrorWithNode {
	return errorWithNode{node: node, underlying: ErrUnsupported}
}

// Invariant returns an error for a node that violates a structural
// invariant of the tree.
func Invariant(node ast.Node, format string, args ...any) ErrorWithNode {
	return errorWithNode{
		node:       node,
		underlying: fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...)),
	}
}

type errorWithNode struct {
	underlying error
	node       ast.Node
}

func (e errorWithNode) Error() string {
	return fmt.Sprintf("%s: %v", describe(e.node), e.underlying)
}

// Node implements [ErrorWithNode].
func (e errorWithNode) Node() ast.Node {
	return e.node
}

// Unwrap implements [ErrorWithNode].
func (e errorWithNode) Unwrap() error {
	return e.underlying
}

var _ ErrorWithNode = errorWithNode{}

func describe(node ast.Node) string {
	if node == nil {
		return "<nil>"
	}
	if k := node.Kind(); k != ast.KindCustom {
		return k.String()
	}
	return fmt.Sprintf("%T", node)
}

// WidthError is a warning about a statement still wider than the maximum
// width after reflowing.
type WidthError struct {
	// Line is the 1-based output line on which the statement starts.
	Line int
	// Width is the width of the statement's widest line.
	Width int
	// Max is the configured maximum width.
	Max int
	// Skipped is set if the statement was too long to be wrapped at all.
	Skipped bool
}

func (e *WidthError) Error() string {
	if e.Skipped {
		return fmt.Sprintf("line %d: statement of width %d left unwrapped: %v", e.Line, e.Width, ErrTooWide)
	}
	return fmt.Sprintf("line %d: width %d > %d: %v", e.Line, e.Width, e.Max, ErrTooWide)
}

// Unwrap returns [ErrTooWide].
func (e *WidthError) Unwrap() error {
	return ErrTooWide
}
