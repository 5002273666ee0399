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
	"github.com/bufbuild/pyunparse/literal"
	"github.com/bufbuild/pyunparse/reporter"
	"github.com/bufbuild/pyunparse/token"
)

var braces = strings.NewReplacer("{", "{{", "}", "}}")

// fstring renders the values of an f-string as a single literal token.
func (e *Emitter) fstring(x ast.Expr, values []ast.Expr) error {
	var parts []literal.Part
	if err := e.fstringParts(x, values, &parts); err != nil {
		return err
	}

	lit, err := literal.NewFString(parts)
	if err != nil {
		return reporter.Error(x, fmt.Errorf("%w: %v", reporter.ErrUnsupported, err))
	}
	e.emit(token.NewString(lit))
	return nil
}

func (e *Emitter) fstringParts(x ast.Expr, values []ast.Expr, parts *[]literal.Part) error {
	for _, v := range values {
		switch v := v.(type) {
		case *ast.Str:
			*parts = append(*parts, literal.Part{Text: braces.Replace(v.S)})
		case *ast.FormattedValue:
			field, err := e.field(v)
			if err != nil {
				return err
			}
			*parts = append(*parts, literal.Part{Text: field, Field: true})
		default:
			return reporter.Invariant(x, "f-string contains %v", describeKind(v))
		}
	}
	return nil
}

// field renders a replacement field, including its braces.
func (e *Emitter) field(v *ast.FormattedValue) (string, error) {
	sub := &Emitter{options: e.options, ann: e.ann}
	if err := sub.expr(v, v.Value); err != nil {
		return "", err
	}
	text := tokenText(sub.tokens)

	var b strings.Builder
	b.WriteByte('{')
	// A leading brace would read as an escaped one.
	if strings.HasPrefix(text, "{") {
		b.WriteByte(' ')
	}
	b.WriteString(text)
	if strings.HasSuffix(text, "}") {
		b.WriteByte(' ')
	}

	switch v.Conversion {
	case 0:
	case 's', 'r', 'a':
		b.WriteByte('!')
		b.WriteRune(v.Conversion)
	default:
		return "", reporter.Invariant(v, "unknown conversion %q", v.Conversion)
	}

	if v.FormatSpec != nil {
		spec, ok := v.FormatSpec.(*ast.JoinedStr)
		if !ok {
			return "", reporter.Invariant(v, "format spec is %v", describeKind(v.FormatSpec))
		}
		var parts []literal.Part
		if err := e.fstringParts(spec, spec.Values, &parts); err != nil {
			return "", err
		}
		b.WriteByte(':')
		for _, p := range parts {
			b.WriteString(p.Text)
		}
	}

	b.WriteByte('}')
	return b.String(), nil
}

func tokenText(tokens []token.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text())
	}
	return b.String()
}

func describeKind(n ast.Node) string {
	if n == nil {
		return "nothing"
	}
	return n.Kind().String()
}
