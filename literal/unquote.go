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
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var errUnterminated = errors.New("unterminated string literal")

// Unquote decodes a single Python string or bytes literal, the way the
// Python tokenizer would read it.
//
// Bytes literals decode to a string holding the raw bytes. The replacement
// fields of an f-string are not interpreted: the result is the literal's
// body with escapes decoded. Named unicode escapes are not supported.
func Unquote(lit string) (string, error) {
	var raw, isBytes bool
	i := 0
prefix:
	for ; i < len(lit); i++ {
		switch lit[i] {
		case 'r', 'R':
			raw = true
		case 'b', 'B':
			isBytes = true
		case 'u', 'U', 'f', 'F':
		default:
			break prefix
		}
	}
	if i > 2 {
		return "", fmt.Errorf("invalid string prefix %q", lit[:i])
	}
	rest := lit[i:]
	if rest == "" || (rest[0] != '\'' && rest[0] != '"') {
		return "", fmt.Errorf("missing opening quote in %q", lit)
	}

	quote := rest[:1]
	if len(rest) >= 6 && strings.HasPrefix(rest, strings.Repeat(quote, 3)) {
		quote = rest[:3]
	}
	rest = rest[len(quote):]
	triple := len(quote) == 3

	var b strings.Builder
	for len(rest) > 0 {
		if strings.HasPrefix(rest, quote) {
			if len(rest) != len(quote) {
				return "", fmt.Errorf("unexpected text after closing quote in %q", lit)
			}
			return b.String(), nil
		}

		c := rest[0]
		switch {
		case c == '\n' && !triple:
			return "", errUnterminated
		case c == '\\' && len(rest) > 1 && raw:
			b.WriteString(rest[:2])
			rest = rest[2:]
		case c == '\\' && len(rest) > 1:
			n, err := unescape(&b, rest, isBytes)
			if err != nil {
				return "", err
			}
			rest = rest[n:]
		case isBytes && c >= utf8.RuneSelf:
			return "", fmt.Errorf("bytes literal contains non-ASCII character")
		default:
			b.WriteByte(c)
			rest = rest[1:]
		}
	}
	return "", errUnterminated
}

// unescape decodes the escape sequence at the start of s into b, returning
// the number of bytes consumed.
func unescape(b *strings.Builder, s string, isBytes bool) (int, error) {
	c := s[1]
	switch c {
	case '\n':
		return 2, nil
	case '\\', '\'', '"':
		b.WriteByte(c)
		return 2, nil
	case 'a':
		b.WriteByte('\a')
		return 2, nil
	case 'b':
		b.WriteByte('\b')
		return 2, nil
	case 'f':
		b.WriteByte('\f')
		return 2, nil
	case 'n':
		b.WriteByte('\n')
		return 2, nil
	case 'r':
		b.WriteByte('\r')
		return 2, nil
	case 't':
		b.WriteByte('\t')
		return 2, nil
	case 'v':
		b.WriteByte('\v')
		return 2, nil
	case 'x':
		return hexEscape(b, s, 2, isBytes)
	case 'u':
		if isBytes {
			break
		}
		return hexEscape(b, s, 4, false)
	case 'U':
		if isBytes {
			break
		}
		return hexEscape(b, s, 8, false)
	case 'N':
		if !isBytes {
			return 0, errors.New(`named unicode escapes are not supported`)
		}
	}

	if c >= '0' && c <= '7' {
		n := 2
		for n < 4 && n < len(s) && s[n] >= '0' && s[n] <= '7' {
			n++
		}
		v, _ := strconv.ParseUint(s[1:n], 8, 32)
		writeUnit(b, rune(v), isBytes)
		return n, nil
	}

	// Unrecognized escapes are kept verbatim.
	b.WriteByte('\\')
	return 1, nil
}

func hexEscape(b *strings.Builder, s string, digits int, isBytes bool) (int, error) {
	end := 2 + digits
	if len(s) < end {
		return 0, fmt.Errorf("truncated \\%c escape", s[1])
	}
	v, err := strconv.ParseUint(s[2:end], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid \\%c escape %q", s[1], s[:end])
	}
	if v > utf8.MaxRune {
		return 0, fmt.Errorf("escape %q is out of range", s[:end])
	}
	writeUnit(b, rune(v), isBytes)
	return end, nil
}

func writeUnit(b *strings.Builder, r rune, isBytes bool) {
	if isBytes {
		b.WriteByte(byte(r))
		return
	}
	b.WriteRune(r)
}
