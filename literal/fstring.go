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
	"fmt"
	"strings"
)

// NewFString returns an f-string literal made of parts.
//
// Replacement fields are copied into the literal as they are, so the
// delimiters are chosen around the quotes the fields use: the other kind of
// quote if the fields use one kind, triple quotes if they use both. Static
// parts are escaped for whichever delimiter is chosen.
//
// Fields may not contain backslashes or line breaks, which Python only
// allows in replacement fields since 3.12.
func NewFString(parts []Part) (*String, error) {
	var value strings.Builder
	for _, p := range parts {
		if p.Field && strings.ContainsAny(p.Text, "\\\r\n") {
			return nil, fmt.Errorf("replacement field %s contains a backslash or line break", p.Text)
		}
		value.WriteString(p.Text)
	}
	if _, ok := fstringRepr(parts); !ok {
		return nil, fmt.Errorf("replacement fields use both %s and %s", `"""`, `'''`)
	}
	return New(value.String(), "f", parts), nil
}

// fstringRepr returns the single-line source of an f-string, or false if
// no delimiter can enclose its fields.
func fstringRepr(parts []Part) (string, bool) {
	var single, double, staticSingle, staticDouble bool
	for _, p := range parts {
		hasSingle, hasDouble := strings.ContainsRune(p.Text, '\''), strings.ContainsRune(p.Text, '"')
		if p.Field {
			single, double = single || hasSingle, double || hasDouble
		} else {
			staticSingle, staticDouble = staticSingle || hasSingle, staticDouble || hasDouble
		}
	}

	var delim string
	switch {
	case single && double:
		for _, d := range []string{`"""`, `'''`} {
			if !fieldsContain(parts, d) {
				delim = d
				break
			}
		}
		if delim == "" {
			return "", false
		}
	case single:
		delim = `"`
	case double:
		delim = `'`
	default:
		delim = string(pickQuote(staticSingle, staticDouble))
	}

	var b strings.Builder
	b.WriteString("f")
	b.WriteString(delim)
	for _, p := range parts {
		if p.Field {
			b.WriteString(p.Text)
		} else {
			escape(&b, p.Text, delim[0])
		}
	}
	b.WriteString(delim)
	return b.String(), true
}

func fieldsContain(parts []Part, s string) bool {
	for _, p := range parts {
		if p.Field && strings.Contains(p.Text, s) {
			return true
		}
	}
	return false
}
