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

package token

import "strings"

// Line is one logical statement: the tokens between two [Newline] tokens.
type Line struct {
	// Breaks is the number of line breaks that precede this line. It is
	// zero for the first line of the output.
	Breaks int
	// Indent is the leading indentation.
	Indent string
	// Tokens is everything after the indentation.
	Tokens []Token
}

// Width returns the display width of the line printed without wrapping.
func (l *Line) Width() int {
	n := Token{kind: Indent, text: l.Indent}.Width()
	for _, t := range l.Tokens {
		n += t.Width()
	}
	return n
}

// Commented reports whether the line has been turned into a comment by
// prefixing its indentation with "#".
func (l *Line) Commented() bool {
	return strings.HasPrefix(l.Indent, "#")
}

// Text returns the text of the line, not including the preceding breaks.
func (l *Line) Text() string {
	var b strings.Builder
	b.WriteString(l.Indent)
	for _, t := range l.Tokens {
		b.WriteString(t.Text())
	}
	return b.String()
}

// Group splits tokens into lines.
//
// Line breaks before the first non-empty line are dropped, as are lines with
// no tokens other than indentation, whose breaks carry over to the next line.
func Group(tokens []Token) []Line {
	var (
		lines  []Line
		cur    Line
		breaks int
	)
	flush := func() {
		if len(cur.Tokens) > 0 {
			if len(lines) == 0 {
				cur.Breaks = 0
			}
			lines = append(lines, cur)
			breaks = 0
		}
		cur = Line{}
	}
	for _, t := range tokens {
		switch t.kind {
		case Newline:
			flush()
			breaks += t.count
			cur.Breaks = breaks
		case Indent:
			if len(cur.Tokens) == 0 {
				cur.Indent += t.text
				continue
			}
			cur.Tokens = append(cur.Tokens, NewText(t.text))
		case Invalid:
		default:
			cur.Tokens = append(cur.Tokens, t)
		}
	}
	flush()
	return lines
}

// Join prints lines, terminating the output with a single newline. Empty
// output stays empty.
func Join(lines []Line) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(strings.Repeat("\n", l.Breaks))
		b.WriteString(l.Text())
	}
	if b.Len() > 0 {
		b.WriteByte('\n')
	}
	return b.String()
}
