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
	"github.com/bufbuild/pyunparse/token"
)

// statementKeywords are the leading tokens of statements that are never
// parenthesized as a whole.
var statementKeywords = map[string]bool{
	"# ": true, "@": true, "assert ": true, "async ": true, "break": true,
	"continue": true, "class ": true, "def ": true, "del ": true,
	"elif ": true, "else": true, "except": true, "except ": true,
	"except* ": true, "finally": true, "for ": true, "from ": true,
	"global ": true, "if ": true, "import ": true, "nonlocal ": true,
	"pass": true, "raise": true, "raise ": true, "return": true,
	"return ": true, "try": true, "while ": true, "with ": true,
	"yield": true, "yield ": true, "yield from ": true,
}

// wrappableKeywords are the statement keywords whose operand may be
// parenthesized without changing its meaning.
var wrappableKeywords = map[string]bool{
	"return ": true, "yield ": true, "yield from ": true,
	"if ": true, "elif ": true, "while ": true,
}

// assignOps are the assignment operators that delimit assignment groups.
// The first group may also be closed by an annotation.
var assignOps = map[string]bool{
	" = ": true, " += ": true, " -= ": true, " *= ": true, " @= ": true,
	" /= ": true, " %= ": true, " &= ": true, " |= ": true, " ^= ": true,
	" <<= ": true, " >>= ": true, " **= ": true, " //= ": true,
}

// annotationOp is the separator between an annotated assignment's target
// and its annotation.
const annotationOp = ": "

func isOpen(t token.Token) bool {
	return t.Is("(") || t.Is("[") || t.Is("{")
}

func isClose(t token.Token) bool {
	return t.Is(")") || t.Is("]") || t.Is("}")
}

// delimiterGroups partitions a line into unsplittable groups, which end with
// an opening bracket, and the splittable groups between them, which hold the
// contents of one level of brackets. There is always one more unsplittable
// group than there are splittable ones.
func delimiterGroups(tokens []token.Token) (unsplittable, splittable [][]token.Token) {
	var text []token.Token
	i := 0
	for {
		for i < len(tokens) {
			t := tokens[i]
			i++
			text = append(text, t)
			if isOpen(t) {
				break
			}
		}
		if len(text) == 0 {
			break
		}
		unsplittable = append(unsplittable, text)

		text = nil
		level := 0
		closed := false
		for i < len(tokens) {
			t := tokens[i]
			i++
			if isOpen(t) {
				level++
			} else if isClose(t) {
				level--
				if level < 0 {
					splittable = append(splittable, text)
					text = []token.Token{t}
					closed = true
					break
				}
			}
			text = append(text, t)
		}
		if !closed {
			if len(text) > 0 {
				// Unbalanced brackets; keep the groups paired.
				splittable = append(splittable, text)
				unsplittable = append(unsplittable, nil)
			}
			break
		}
	}
	if len(unsplittable) == 0 {
		unsplittable = append(unsplittable, nil)
	}
	return unsplittable, splittable
}

// addParens tries to add parentheses to a line whose unsplittable groups are
// too wide, so that it can be broken.
func (r *reflower) addParens(tokens []token.Token, indent int) []token.Token {
	if len(tokens) <= 1 {
		return tokens
	}

	first := tokens[0]
	if first.Kind() == token.Text && statementKeywords[first.Text()] {
		switch {
		case first.Is("for "):
			return r.parenthesizeFor(tokens, 1, indent)
		case first.Is("async ") && tokens[1].Is("for "):
			return r.parenthesizeFor(tokens, 2, indent)
		case first.Is("from "):
			return r.parenthesizeImport(tokens)
		case !wrappableKeywords[first.Text()]:
			return tokens
		}
		out := make([]token.Token, 0, len(tokens)+2)
		out = append(out, first, token.NewText("("))
		if last := tokens[len(tokens)-1]; last.Is(":") {
			out = append(out, tokens[1:len(tokens)-1]...)
			out = append(out, token.NewText(")"), last)
		} else {
			out = append(out, tokens[1:]...)
			out = append(out, token.NewText(")"))
		}
		r.Logger.Debug("parenthesized statement operand", "keyword", first.Text())
		return out
	}

	groups := assignGroups(tokens)
	if len(groups) == 1 {
		return parenthesize(tokens, len(tokens))
	}

	counts := make([]int, len(groups))
	lhs := 0
	for i, g := range groups {
		counts[i] = width(g)
		if i < len(groups)-1 {
			lhs += counts[i]
		}
	}

	// Wrap the targets first if they are large; the right-hand side may not
	// need it afterwards.
	didWrap := false
	if lhs >= r.MaxWidth-indent-4 {
		for i, g := range groups[:len(groups)-1] {
			didWrap = false
			if len(g) > 1 && !g[len(g)-1].Is(annotationOp) {
				groups[i] = parenthesize(g, len(g)-1)
				didWrap = true
			}
		}
	}
	last := len(groups) - 1
	if !didWrap || counts[last] > r.MaxWidth-indent-10 {
		groups[last] = parenthesize(groups[last], len(groups[last]))
	}
	r.Logger.Debug("parenthesized assignment", "groups", len(groups), "wrapped_targets", didWrap)

	var out []token.Token
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// parenthesizeFor wraps the target of a for statement, its iterable, or
// both. The target starts at tokens[start] and ends at the first " in "
// outside of brackets.
func (r *reflower) parenthesizeFor(tokens []token.Token, start, indent int) []token.Token {
	in := findTopLevel(tokens, start, " in ")
	if in < 0 {
		return tokens
	}
	end := len(tokens)
	if tokens[end-1].Is(":") {
		end--
	}
	target, iter := tokens[start:in], tokens[in+1:end]

	didWrap := false
	if len(target) > 1 && width(target) >= r.MaxWidth-indent-4 {
		target = parenthesize(target, len(target))
		didWrap = true
	}
	if len(iter) > 1 && (!didWrap || width(iter) > r.MaxWidth-indent-10) {
		iter = parenthesize(iter, len(iter))
	}
	r.Logger.Debug("parenthesized for statement", "wrapped_target", didWrap)

	out := make([]token.Token, 0, len(tokens)+4)
	out = append(out, tokens[:start]...)
	out = append(out, target...)
	out = append(out, tokens[in])
	out = append(out, iter...)
	return append(out, tokens[end:]...)
}

// parenthesizeImport wraps the names imported by a from statement. A star
// import cannot be parenthesized.
func (r *reflower) parenthesizeImport(tokens []token.Token) []token.Token {
	imp := findTopLevel(tokens, 1, " import ")
	if imp < 0 || imp+1 >= len(tokens) || tokens[imp+1].Is("*") {
		return tokens
	}
	r.Logger.Debug("parenthesized imported names")
	out := make([]token.Token, 0, len(tokens)+2)
	out = append(out, tokens[:imp+1]...)
	return append(out, parenthesize(tokens[imp+1:], len(tokens)-imp-1)...)
}

// findTopLevel returns the index of the first token at or after start that
// is the given text outside of brackets, or -1.
func findTopLevel(tokens []token.Token, start int, text string) int {
	nesting := 0
	for i := start; i < len(tokens); i++ {
		t := tokens[i]
		switch {
		case isOpen(t):
			nesting++
		case isClose(t):
			nesting--
		case nesting == 0 && t.Is(text):
			return i
		}
	}
	return -1
}

// parenthesize wraps tokens[:end] in parentheses.
func parenthesize(tokens []token.Token, end int) []token.Token {
	out := make([]token.Token, 0, len(tokens)+2)
	out = append(out, token.NewText("("))
	out = append(out, tokens[:end]...)
	out = append(out, token.NewText(")"))
	return append(out, tokens[end:]...)
}

// assignGroups splits a line after each assignment operator found outside of
// brackets. The first split may also happen at an annotation.
func assignGroups(tokens []token.Token) [][]token.Token {
	var (
		groups  [][]token.Token
		group   []token.Token
		nesting int
		first   = true
	)
	for _, t := range tokens {
		group = append(group, t)
		switch {
		case isOpen(t):
			nesting++
		case isClose(t):
			nesting--
		case nesting == 0 && t.Kind() == token.Text &&
			(assignOps[t.Text()] || first && t.Text() == annotationOp):
			groups = append(groups, group)
			group = nil
			first = false
		}
	}
	return append(groups, group)
}
