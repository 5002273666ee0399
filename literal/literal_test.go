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

package literal_test

import (
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/pyunparse/ast"
	"github.com/bufbuild/pyunparse/literal"
)

func TestRepr(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"", `''`},
		{"abc", `'abc'`},
		{"it's", `"it's"`},
		{`say "hi"`, `'say "hi"'`},
		{`a"b'c`, `'a"b\'c'`},
		{"a\\b", `'a\\b'`},
		{"\t\n\r", `'\t\n\r'`},
		{"\x00\x7f", `'\x00\x7f'`},
		{"é", `'é'`},
		{"\u00a0", `'\xa0'`},
		{"\u200b", `'\u200b'`},
		{"\U000e0001", `'\U000e0001'`},
		{"日本", `'日本'`},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, literal.Repr(test.in), "%q", test.in)
	}
}

func TestBytesRepr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `b''`, literal.BytesRepr(nil))
	assert.Equal(t, `b'ab\x00\xff'`, literal.BytesRepr([]byte("ab\x00\xff")))
	assert.Equal(t, `b"'"`, literal.BytesRepr([]byte("'")))
	assert.Equal(t, `b'\n\\'`, literal.BytesRepr([]byte("\n\\")))
}

func TestNumber(t *testing.T) {
	t.Parallel()

	huge, ok := new(big.Int).SetString("18446744073709551616", 10)
	require.True(t, ok)

	tests := []struct {
		num  *ast.Num
		want string
	}{
		{ast.NewInt(42), "42"},
		{ast.NewInt(-7), "-7"},
		{&ast.Num{Type: ast.NumInt, Int: huge}, "18446744073709551616"},
		{&ast.Num{}, "0"},
		{ast.NewFloat(0), "0.0"},
		{ast.NewFloat(123), "123.0"},
		{ast.NewFloat(-0.5), "-0.5"},
		{ast.NewFloat(0.0001), "0.0001"},
		{ast.NewFloat(0.00001), "1e-05"},
		{ast.NewFloat(1e16), "1e+16"},
		{ast.NewFloat(123456789012345.6), "123456789012345.6"},
		{ast.NewFloat(math.Inf(1)), "1e1000"},
		{ast.NewFloat(math.Inf(-1)), "-1e1000"},
		{ast.NewFloat(math.NaN()), "(1e1000-1e1000)"},
		{ast.NewComplex(0, 2), "2.0j"},
		{ast.NewComplex(1, 0), "(1.0+0j)"},
		{ast.NewComplex(1, 2), "(1.0+2.0j)"},
		{ast.NewComplex(1, -2), "(1.0-2.0j)"},
		{ast.NewComplex(0, math.NaN()), "(1e1000j-1e1000j)"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, literal.Number(test.num))
	}
}

func TestUnquote(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{`''`, ""},
		{`''''''`, ""},
		{`'a\nb'`, "a\nb"},
		{`"it's"`, "it's"},
		{`'\'\"\\'`, `'"\`},
		{`'\x41\u00e9\U0001F600'`, "Aé😀"},
		{`'\101\0'`, "A\x00"},
		{`'\d'`, `\d`},
		{"'a\\\nb'", "ab"},
		{"\"\"\"a\nb\"\"\"", "a\nb"},
		{`"""say "hi\""""`, `say "hi"`},
		{`r'\n'`, `\n`},
		{`b'\xff'`, "\xff"},
		{`rb'\x'`, `\x`},
		{`u'x'`, "x"},
	}
	for _, test := range tests {
		got, err := literal.Unquote(test.in)
		if assert.NoError(t, err, "%s", test.in) {
			assert.Equal(t, test.want, got, "%s", test.in)
		}
	}

	for _, bad := range []string{
		`abc'`,
		`'abc`,
		`'a'b`,
		"'a\nb'",
		`'\N{DASH}'`,
		`'\x4'`,
		`b'é'`,
		`brf'x'`,
	} {
		_, err := literal.Unquote(bad)
		assert.Error(t, err, "%s", bad)
	}
}

func TestTriple(t *testing.T) {
	t.Parallel()

	s := literal.New("hello\nworld", "", nil)
	assert.Equal(t, `'hello\nworld'`, s.Repr())
	assert.Equal(t, 14, s.Width())
	assert.True(t, s.Candidate(20))
	assert.Equal(t, 8, s.TripleWidth(0))
	assert.Equal(t, 12, s.TripleWidth(4))
	assert.Equal(t, 2, s.TripleLines())
	assert.Equal(t, 0, s.TripleIndent())
	assert.Equal(t, 8, s.TripleLastWidth())

	assert.False(t, s.IsTripled())
	require.True(t, s.UseTriple())
	assert.True(t, s.IsTripled())
	assert.Equal(t, "\"\"\"hello\nworld\"\"\"", s.Text())
}

func TestTripleEscapes(t *testing.T) {
	t.Parallel()

	tests := []struct{ value, want string }{
		{`say "hi"`, `"""say "hi\""""`},
		{`a"""b`, `"""a""\"b"""`},
		{`back\slash`, `"""back\\slash"""`},
		{"cr\r\nlf", `"""cr\r\nlf"""`},
	}
	for _, test := range tests {
		s := literal.New(test.value, "", nil)
		require.True(t, s.UseTriple(), "%q", test.value)
		assert.Equal(t, test.want, s.Text())
		got, err := literal.Unquote(s.Text())
		require.NoError(t, err)
		assert.Equal(t, test.value, got)
	}
}

func TestNotTriplable(t *testing.T) {
	t.Parallel()

	for _, s := range []*literal.String{
		literal.New("a\x00b", "", nil),
		literal.New("\xff\n", "b", nil),
		literal.New("{'\\n'}\n", "f", []literal.Part{{Text: "{'\\n'}", Field: true}, {Text: "\n"}}),
	} {
		assert.Equal(t, literal.NoTriple, s.TripleWidth(0), "%s", s.Repr())
		assert.False(t, s.UseTriple())
		assert.Equal(t, s.Repr(), s.Text())
	}
}

func TestCandidate(t *testing.T) {
	t.Parallel()

	assert.False(t, literal.New("short", "", nil).Candidate(20))
	assert.True(t, literal.New(strings.Repeat("x", 18), "", nil).Candidate(20))
	assert.True(t, literal.New("a\nb", "", nil).Candidate(20))
}

func TestWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, literal.Width("abc"))
	assert.Equal(t, 4, literal.Width("日本"))
}

func TestFString(t *testing.T) {
	t.Parallel()

	field := func(text string) literal.Part { return literal.Part{Text: text, Field: true} }
	static := func(text string) literal.Part { return literal.Part{Text: text} }

	tests := []struct {
		name  string
		parts []literal.Part
		want  string
	}{
		{"plain", []literal.Part{static("a "), field("{x}")}, `f'a {x}'`},
		{"static_single", []literal.Part{static("it's "), field("{x}")}, `f"it's {x}"`},
		{"field_single", []literal.Part{field("{d['k']}"), static(`'"`)}, `f"{d['k']}'\""`},
		{"field_double", []literal.Part{field(`{d["k"]}`), static(`'`)}, `f'{d["k"]}\''`},
		{"field_both", []literal.Part{field(`{"it's"}`), static("\n")}, `f"""{"it's"}\n"""`},
		{"field_triple_double", []literal.Part{field(`{'"""'}`), static("x")}, `f'''{'"""'}x'''`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			s, err := literal.NewFString(test.parts)
			require.NoError(t, err)
			assert.Equal(t, test.want, s.Repr())
			assert.Equal(t, "f", s.Prefix())

			var value strings.Builder
			for _, p := range test.parts {
				value.WriteString(p.Text)
			}
			assert.Equal(t, value.String(), s.Value())
		})
	}

	_, err := literal.NewFString([]literal.Part{field(`{'\n'}`)})
	require.ErrorContains(t, err, "backslash")
	_, err = literal.NewFString([]literal.Part{field(`{'"""'}`), field(`{"'''"}`)})
	require.Error(t, err)
}
