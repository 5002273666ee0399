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

package reflow

import (
	"io"
	"log/slog"
	"strings"

	"github.com/bufbuild/pyunparse/literal"
	"github.com/bufbuild/pyunparse/token"
)

// Options configures reflowing.
type Options struct {
	// MaxWidth is the width lines are wrapped to. Defaults to 79.
	MaxWidth int
	// Continuation is added to the indentation of continuation lines.
	// Defaults to four spaces.
	Continuation string
	// MinTripleLength is the width a string literal's escaped form must
	// reach before it is considered for triple-quoting, unless it spans
	// several lines. Defaults to 20.
	MinTripleLength int
	// MaxStatementWidth, if positive, is the widest statement that is
	// wrapped. Wider statements are reported and left as they are.
	MaxStatementWidth int

	// Report, if set, is called for every statement that is still wider
	// than MaxWidth after reflowing, and for statements skipped because of
	// MaxStatementWidth.
	Report func(Shortfall)
	// Logger receives debug output. Defaults to discarding.
	Logger *slog.Logger
}

// Shortfall describes a statement that could not be wrapped to fit.
type Shortfall struct {
	// Line is the index of the statement in the reflowed slice.
	Line int
	// Width is the width of the widest output line of the statement.
	Width int
	// Skipped is set if the statement exceeded MaxStatementWidth and was
	// not wrapped at all.
	Skipped bool
}

// WithDefaults returns these options with defaults filled in.
func (o Options) WithDefaults() Options {
	if o.MaxWidth <= 0 {
		o.MaxWidth = 79
	}
	if o.Continuation == "" {
		o.Continuation = "    "
	}
	if o.MinTripleLength <= 0 {
		o.MinTripleLength = 20
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// Lines reflows every line in place.
func Lines(lines []token.Line, options Options) {
	r := &reflower{Options: options.WithDefaults()}
	for i := range lines {
		r.line(i, &lines[i])
	}
}

type reflower struct {
	Options
}

// line reflows a single statement.
func (r *reflower) line(index int, line *token.Line) {
	if len(line.Tokens) == 0 {
		return
	}
	maxlen := r.MaxWidth
	indent := literal.Width(line.Indent)
	size := line.Width()
	tooBig := size > maxlen

	last := line.Tokens[len(line.Tokens)-1]
	lit := last.Literal()
	// Later lines of a triple-quoted string could not carry the comment
	// marker.
	if lit != nil && (line.Commented() || !lit.Candidate(r.MinTripleLength)) {
		lit = nil
	}

	// A string on its own, such as a docstring.
	if lit != nil && len(line.Tokens) == 1 {
		width := lit.TripleWidth(indent)
		if width < maxlen+maxlen/2 && (width <= maxlen || tooBig) && lit.UseTriple() {
			r.Logger.Debug("tripled docstring", "line", index, "width", width)
			return
		}
	}
	if !tooBig {
		return
	}

	// A statement ending in a long string, such as an assignment.
	if lit != nil && size-last.Width() < maxlen-4 {
		width := lit.TripleWidth(size - last.Width())
		if width < min(size, maxlen+maxlen/2) &&
			(lit.TripleIndent() >= indent || lit.TripleLines() >= 10 && last.Width() >= maxlen*3) &&
			lit.UseTriple() {
			r.Logger.Debug("tripled trailing string", "line", index, "width", width)
			return
		}
	}

	if r.MaxStatementWidth > 0 && size > r.MaxStatementWidth {
		r.Logger.Debug("statement too long to wrap", "line", index, "width", size)
		if r.Report != nil {
			r.Report(Shortfall{Line: index, Width: size, Skipped: true})
		}
		return
	}

	line.Tokens = r.wrap(line)
	if width := maxLineWidth(line); width > maxlen {
		r.Logger.Debug("statement still too wide", "line", index, "width", width)
		if r.Report != nil {
			r.Report(Shortfall{Line: index, Width: width})
		}
	}
}

// wrap breaks an over-wide line, returning its new tokens. Continuation
// lines are introduced by a [token.Newline] followed by a [token.Indent].
func (r *reflower) wrap(line *token.Line) []token.Token {
	w := &wrapper{
		reflower:    r,
		maxlen:      r.MaxWidth,
		indentation: line.Indent,
		indent:      literal.Width(line.Indent),
		commented:   line.Commented(),
	}

	tokens := line.Tokens
	unsplittable, splittable := delimiterGroups(tokens)
	widest := 0
	for _, g := range unsplittable {
		widest = max(widest, width(g))
	}
	if widest > w.maxlen-w.indent {
		tokens = r.addParens(tokens, w.indent)
		unsplittable, splittable = delimiterGroups(tokens)
	}

	pos := w.extend(unsplittable[0], w.indent, false)
	if len(splittable) == 0 {
		return w.out
	}

	w.indentation += r.Continuation
	w.indent += literal.Width(r.Continuation)
	if w.indent >= w.maxlen/2 {
		w.maxlen = w.maxlen/2 + w.indent
	}

	for i, sg := range splittable {
		if i+1 >= len(unsplittable) {
			break
		}
		nsg := unsplittable[i+1]

		if len(sg) > 0 {
			// Start a new line if not even the first item fits.
			if pos > w.indent && pos+sg[0].Width() > w.maxlen {
				pos = w.newline()
			}

			csg := width(sg)
			for len(sg) > 0 && pos+csg > w.maxlen {
				var ready []token.Token
				ready, sg = splitGroup(sg, pos, w.maxlen)
				ready = trimTrailingSpace(ready)
				w.extend(ready, pos, true)
				pos = w.newline()
				csg = width(sg)
			}
			if len(sg) > 0 {
				pos = w.extend(sg, pos, true)
			}
		}

		if pos > w.indent && pos+width(nsg) > w.maxlen {
			pos = w.newline()
		}
		pos = w.extend(nsg, pos, false)
	}
	return w.out
}

// wrapper accumulates the output of wrapping one line.
type wrapper struct {
	*reflower

	maxlen      int
	indentation string
	indent      int
	commented   bool
	out         []token.Token
}

func (w *wrapper) newline() int {
	w.out = append(w.out, token.NewNewline(1), token.NewIndent(w.indentation))
	return w.indent
}

// extend appends tokens starting at column pos, returning the column after
// them. Long string literals are tripled if that makes them narrower.
func (w *wrapper) extend(tokens []token.Token, pos int, nested bool) int {
	for _, t := range tokens {
		w.out = append(w.out, t)
		lit := t.Literal()
		if lit == nil || w.commented || lit.IsTripled() || !lit.Candidate(w.MinTripleLength) {
			pos += t.Width()
			continue
		}
		width := lit.TripleWidth(pos)
		if width < lit.Width()+pos && (!nested || width < w.maxlen+w.maxlen/2) && lit.UseTriple() {
			pos = lit.TripleLastWidth()
			continue
		}
		pos += t.Width()
	}
	return pos
}

// splitGroup splits a splittable group in two: the tokens that go on the
// current line, which are never empty, and the rest.
func splitGroup(tokens []token.Token, pos, maxlen int) (first, rest []token.Token) {
	i := 0
	for i < len(tokens) {
		pos += tokens[i].Width()
		i++
		if i == len(tokens) {
			break
		}
		next := tokens[i]
		// Trailing spaces are dropped at a break, so a token ending in one
		// may overhang by a column.
		allowed := maxlen - 4
		if strings.HasSuffix(next.Text(), " ") {
			allowed = maxlen + 1
		}
		if pos+next.Width() > allowed {
			break
		}
	}
	// Closing brackets, and a separator after them, stay with what they
	// close.
	for i < len(tokens) && (isClose(tokens[i]) || tokens[i].Is(", ") && isClose(tokens[i-1])) {
		i++
	}
	return tokens[:i:i], tokens[i:]
}

func trimTrailingSpace(tokens []token.Token) []token.Token {
	last := tokens[len(tokens)-1]
	if last.Kind() != token.Text {
		return tokens
	}
	text := last.Text()
	if !strings.HasSuffix(text, " ") {
		return tokens
	}
	out := append([]token.Token(nil), tokens...)
	out[len(out)-1] = last.WithText(text[:len(text)-1])
	return out
}

func width(tokens []token.Token) int {
	n := 0
	for _, t := range tokens {
		n += t.Width()
	}
	return n
}

// maxLineWidth measures the widest physical line of a reflowed statement.
func maxLineWidth(line *token.Line) int {
	widest := 0
	for _, text := range strings.Split(line.Text(), "\n") {
		widest = max(widest, literal.Width(text))
	}
	return widest
}
