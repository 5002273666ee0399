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
	"strconv"
	"strings"

	"github.com/bufbuild/pyunparse/ast"
)

// Number renders a numeric literal.
//
// Infinities are written as 1e1000, which overflows to infinity when
// parsed, and NaN as (1e1000-1e1000). Complex values with a non-zero real
// part are written as a parenthesized sum, since Python has no literal for
// them.
func Number(n *ast.Num) string {
	switch n.Type {
	case ast.NumFloat:
		return numberPart(n.Float, "")
	case ast.NumComplex:
		imag := numberPart(n.Imag, "j")
		switch {
		case n.Real == 0:
			return imag
		case n.Imag == 0:
			return "(" + numberPart(n.Real, "") + "+0j)"
		case strings.HasPrefix(imag, "-"):
			return "(" + numberPart(n.Real, "") + imag + ")"
		default:
			return "(" + numberPart(n.Real, "") + "+" + imag + ")"
		}
	default:
		if n.Int == nil {
			return "0"
		}
		return n.Int.String()
	}
}

func numberPart(v float64, suffix string) string {
	switch {
	case math.IsInf(v, 1):
		return "1e1000" + suffix
	case math.IsInf(v, -1):
		return "-1e1000" + suffix
	case math.IsNaN(v):
		return "(1e1000" + suffix + "-1e1000" + suffix + ")"
	}
	return Float(v) + suffix
}

// Float returns the text Python's repr() produces for a finite float: the
// shortest digit string that round-trips, in positional notation for
// decimal exponents in [-4, 16) and scientific notation otherwise.
func Float(v float64) string {
	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil {
		return sci
	}
	if exp < -4 || exp >= 16 {
		return sci
	}
	fixed := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(fixed, '.') {
		fixed += ".0"
	}
	return fixed
}
