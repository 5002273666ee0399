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
	"io"
	"log/slog"

	"github.com/bufbuild/pyunparse/ast"
	"github.com/bufbuild/pyunparse/reflow"
	"github.com/bufbuild/pyunparse/reporter"
)

// Options controls the output of the printer.
type Options struct {
	// MaxWidth is the width lines are wrapped to. Defaults to 79.
	MaxWidth int

	// Indent is the string used for each level of indentation, and for the
	// extra indentation of continuation lines. Defaults to four spaces.
	Indent string

	// MinTripleLength is the width a string literal's escaped form must
	// reach before it may be rewritten triple-quoted, unless its value
	// contains a newline. Defaults to 20.
	MinTripleLength int

	// MaxStatementWidth, if positive, caps the width of statements that are
	// wrapped at all. Wider statements are printed on one line and reported
	// to Reporter as a warning. Meant for tracking down pathological input.
	MaxStatementWidth int

	// Hook, if set, is offered every node before the printer renders it.
	Hook Hook

	// Reporter receives warnings. Errors are returned from [Print].
	Reporter reporter.Reporter

	// Logger receives debug output. Defaults to discarding it.
	Logger *slog.Logger
}

// Hook intercepts the rendering of a node. If it reports true, the printer
// considers the node rendered. Hooks render through the [Emitter]; this is
// how nodes embedding [ast.Custom] get printed.
type Hook func(e *Emitter, node ast.Node) (handled bool, err error)

// WithDefaults returns a copy of the options with default values applied.
func (o Options) WithDefaults() Options {
	if o.MaxWidth <= 0 {
		o.MaxWidth = 79
	}
	if o.Indent == "" {
		o.Indent = "    "
	}
	if o.MinTripleLength <= 0 {
		o.MinTripleLength = 20
	}
	if o.Reporter == nil {
		o.Reporter = reporter.NewReporter(nil, nil)
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// reflowOptions converts printer options to reflow.Options.
func (o Options) reflowOptions() reflow.Options {
	return reflow.Options{
		MaxWidth:          o.MaxWidth,
		Continuation:      o.Indent,
		MinTripleLength:   o.MinTripleLength,
		MaxStatementWidth: o.MaxStatementWidth,
		Logger:            o.Logger,
	}
}
