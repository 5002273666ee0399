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

import (
	"fmt"
	"strings"

	"github.com/bufbuild/pyunparse/literal"
)

// Token is a unit of printer output.
//
// The zero value is the invalid token.
type Token struct {
	kind  Kind
	text  string
	count int
	lit   *literal.String
}

// NewText returns a text token.
func NewText(text string) Token {
	return Token{kind: Text, text: text}
}

// NewIndent returns an indentation token.
func NewIndent(indent string) Token {
	return Token{kind: Indent, text: indent}
}

// NewNewline returns a token for count consecutive line breaks.
func NewNewline(count int) Token {
	return Token{kind: Newline, count: max(count, 1)}
}

// NewString returns a string literal token.
func NewString(lit *literal.String) Token {
	return Token{kind: String, lit: lit}
}

// Kind returns what kind of token this is.
func (t Token) Kind() Kind {
	return t.kind
}

// Text returns the source text of this token.
func (t Token) Text() string {
	switch t.kind {
	case Newline:
		return strings.Repeat("\n", t.count)
	case String:
		return t.lit.Text()
	default:
		return t.text
	}
}

// Newlines returns the number of line breaks a [Newline] token stands for.
func (t Token) Newlines() int {
	return t.count
}

// Literal returns the literal of a [String] token, or nil.
func (t Token) Literal() *literal.String {
	return t.lit
}

// Width returns the display width of this token when it is printed on a
// single line.
func (t Token) Width() int {
	switch t.kind {
	case Newline:
		return 0
	case String:
		if t.lit.IsTripled() {
			return t.lit.TripleLastWidth()
		}
		return t.lit.Width()
	default:
		return literal.Width(t.text)
	}
}

// Is returns whether this is a text token with exactly the given text.
func (t Token) Is(text string) bool {
	return t.kind == Text && t.text == text
}

// WithText returns a copy of a text or indentation token with different
// text.
func (t Token) WithText(text string) Token {
	t.text = text
	return t
}

// String implements [fmt.Stringer].
func (t Token) String() string {
	switch t.kind {
	case Newline:
		return fmt.Sprintf("Newline(%d)", t.count)
	case String:
		return fmt.Sprintf("String(%s)", t.lit.Text())
	default:
		return fmt.Sprintf("%v(%q)", t.kind, t.text)
	}
}
