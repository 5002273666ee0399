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

package literal

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// NoTriple is the width [String.TripleWidth] reports for a string that
// cannot be written triple-quoted.
const NoTriple = math.MaxInt32

// noIndent is the indentation reported for a triple-quoted form with no
// indented continuation lines.
const noIndent = 1 << 20

// Part is one fragment of an f-string body.
type Part struct {
	Text string
	// Field is set for replacement fields, including their braces.
	Field bool
}

// String is a string, bytes or f-string literal that can be written either
// in its repr() form or triple-quoted.
//
// Values are created fresh for each render and are not safe for concurrent
// use.
type String struct {
	value  string
	prefix string
	parts  []Part

	repr  string
	width int

	tripled  bool
	computed bool
	trip     *tripleForm
}

type tripleForm struct {
	text   string
	indent int
	widths []int
}

// New returns a literal for value.
//
// prefix is one of "", "u", "b" or "f". For "b", value holds the raw bytes.
// For "f", value is the literal body with replacement fields already
// rendered, and parts lists its fragments in order; [NewFString] checks
// that the fragments can be quoted.
func New(value, prefix string, parts []Part) *String {
	var repr string
	switch prefix {
	case "b":
		repr = BytesRepr([]byte(value))
	case "f":
		var ok bool
		if repr, ok = fstringRepr(parts); !ok {
			repr = prefix + Repr(value)
		}
	default:
		repr = prefix + Repr(value)
	}
	return &String{
		value:  value,
		prefix: prefix,
		parts:  parts,
		repr:   repr,
		width:  Width(repr),
	}
}

// Value returns the literal's value.
func (s *String) Value() string { return s.value }

// Prefix returns the literal's prefix.
func (s *String) Prefix() string { return s.prefix }

// Parts returns the fragments of an f-string body.
func (s *String) Parts() []Part { return s.parts }

// Text returns the literal's current source text.
func (s *String) Text() string {
	if s.tripled {
		return s.trip.text
	}
	return s.repr
}

// Repr returns the single-line escaped form.
func (s *String) Repr() string { return s.repr }

// Width returns the display width of the single-line escaped form.
func (s *String) Width() int { return s.width }

// IsTripled returns whether [String.UseTriple] has been called.
func (s *String) IsTripled() bool { return s.tripled }

// Candidate returns whether the literal is worth considering for the
// triple-quoted form: either its escaped form is at least minLen wide, or
// the value spans several lines.
func (s *String) Candidate(minLen int) bool {
	return s.width >= minLen || strings.ContainsRune(s.value, '\n')
}

// TripleWidth returns the width the triple-quoted form would occupy if it
// began at column start: the larger of its first line's end column and its
// widest later line. It returns [NoTriple] if the value cannot be written
// triple-quoted.
func (s *String) TripleWidth(start int) int {
	t := s.triple()
	if t == nil {
		return NoTriple
	}
	first := start + t.widths[0]
	if len(t.widths) == 1 {
		return first
	}
	return max(first, slicesMax(t.widths[1:]))
}

// TripleIndent returns the smallest indentation of the non-blank lines after
// the first in the triple-quoted form. Only valid if TripleWidth succeeded.
func (s *String) TripleIndent() int {
	return s.triple().indent
}

// TripleLines returns the number of lines of the triple-quoted form. Only
// valid if TripleWidth succeeded.
func (s *String) TripleLines() int {
	return len(s.triple().widths)
}

// TripleLastWidth returns the width of the last line of the triple-quoted
// form. Only valid if TripleWidth succeeded.
func (s *String) TripleLastWidth() int {
	w := s.triple().widths
	return w[len(w)-1]
}

// UseTriple switches the literal to its triple-quoted form. It reports
// false, leaving the literal unchanged, if that form is unavailable.
func (s *String) UseTriple() bool {
	if s.triple() == nil {
		return false
	}
	s.tripled = true
	return true
}

// triple computes the triple-quoted form on first use.
//
// The form is only offered if decoding it yields the original value exactly.
func (s *String) triple() *tripleForm {
	if s.computed {
		return s.trip
	}
	s.computed = true

	if !s.triplable() {
		return nil
	}

	body := tripleEscape(s.value)
	text := s.prefix + `"""` + body + `"""`
	decoded, err := Unquote(strings.TrimPrefix(text, "f"))
	if err != nil || decoded != s.value {
		return nil
	}

	lines := strings.Split(text, "\n")
	t := &tripleForm{text: text, indent: noIndent, widths: make([]int, len(lines))}
	for i, line := range lines {
		t.widths[i] = Width(line)
		if i == 0 {
			continue
		}
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == "" {
			continue
		}
		t.indent = min(t.indent, len(trimmed)-len(strings.TrimLeft(trimmed, " ")))
	}
	s.trip = t
	return t
}

// triplable rejects values whose raw characters cannot appear in source.
func (s *String) triplable() bool {
	for _, p := range s.parts {
		if p.Field && (strings.ContainsAny(p.Text, "\\\r\n") || strings.Contains(p.Text, `"""`)) {
			return false
		}
	}
	if s.prefix == "b" {
		for i := range len(s.value) {
			if s.value[i] >= utf8.RuneSelf {
				return false
			}
		}
	}
	for _, r := range s.value {
		switch r {
		case '\n', '\t', '\r':
			continue
		}
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

var tripleEscapes = strings.NewReplacer(
	`\`, `\\`,
	`"""`, `""\"`,
	"\r\n", `\r\n`,
	"\r", `\r`,
)

// tripleEscape escapes the body of a triple-quoted literal. Newlines and tabs
// are kept raw; a trailing quote is escaped so it cannot merge with the
// closing delimiter.
func tripleEscape(s string) string {
	trailing := strings.HasSuffix(s, `"`)
	if trailing {
		s = s[:len(s)-1]
	}
	s = tripleEscapes.Replace(s)
	if trailing {
		s += `\"`
	}
	return s
}

// Width returns the number of terminal cells s occupies.
func Width(s string) int {
	return uniseg.StringWidth(s)
}

func slicesMax(v []int) int {
	m := v[0]
	for _, x := range v[1:] {
		m = max(m, x)
	}
	return m
}
