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

package astjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/bufbuild/pyunparse/ast"
)

func (d *decoder) expr(obj object, key string) ast.Expr {
	v := obj[key]
	if v == nil {
		return nil
	}
	defer d.push("." + key)()
	n := d.node(v)
	if n == nil {
		return nil
	}
	x, ok := n.(ast.Expr)
	if !ok {
		d.failf("expected an expression, got %v", n.Kind())
		return nil
	}
	return x
}

func (d *decoder) exprs(obj object, key string) []ast.Expr {
	return nodes[ast.Expr](d, obj, key)
}

func (d *decoder) stmts(obj object, key string) []ast.Stmt {
	return nodes[ast.Stmt](d, obj, key)
}

func (d *decoder) keywords(obj object, key string) []*ast.Keyword {
	return nodes[*ast.Keyword](d, obj, key)
}

func (d *decoder) aliases(obj object, key string) []*ast.Alias {
	return nodes[*ast.Alias](d, obj, key)
}

func (d *decoder) withItems(obj object, key string) []*ast.WithItem {
	return nodes[*ast.WithItem](d, obj, key)
}

func (d *decoder) comprehensions(obj object, key string) []*ast.Comprehension {
	return nodes[*ast.Comprehension](d, obj, key)
}

func (d *decoder) handlers(obj object, key string) []*ast.ExceptHandler {
	return nodes[*ast.ExceptHandler](d, obj, key)
}

// nodes decodes a list of nodes of type T. Null entries decode to nil, as
// in the keys of a dict display with ** unpacking.
func nodes[T ast.Node](d *decoder, obj object, key string) []T {
	items := d.list(obj, key)
	if len(items) == 0 {
		return nil
	}
	defer d.push("." + key)()

	out := make([]T, len(items))
	for i, item := range items {
		if item == nil {
			continue
		}
		pop := d.push(fmt.Sprintf("[%d]", i))
		n := d.node(item)
		if t, ok := n.(T); ok {
			out[i] = t
		} else if n != nil {
			d.failf("%v cannot appear in %s", n.Kind(), key)
		}
		pop()
	}
	return out
}

func (d *decoder) arguments(obj object, key string) *ast.Arguments {
	v := d.object(obj[key])
	if v == nil {
		return nil
	}
	defer d.push("." + key)()
	return d.argumentsObject(v)
}

func (d *decoder) argumentsObject(obj object) *ast.Arguments {
	return &ast.Arguments{
		PosOnlyArgs: nodes[*ast.Arg](d, obj, "posonlyargs"),
		Args:        nodes[*ast.Arg](d, obj, "args"),
		Vararg:      d.arg(obj, "vararg"),
		KwOnlyArgs:  nodes[*ast.Arg](d, obj, "kwonlyargs"),
		KwDefaults:  d.exprs(obj, "kw_defaults"),
		Kwarg:       d.arg(obj, "kwarg"),
		Defaults:    d.exprs(obj, "defaults"),
	}
}

func (d *decoder) arg(obj object, key string) *ast.Arg {
	v := d.object(obj[key])
	if v == nil {
		return nil
	}
	defer d.push("." + key)()
	return d.argObject(v)
}

func (d *decoder) argObject(obj object) *ast.Arg {
	return &ast.Arg{Name: d.str(obj, "arg"), Annotation: d.expr(obj, "annotation")}
}

func (d *decoder) str(obj object, key string) string {
	switch v := obj[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		defer d.push("." + key)()
		d.failf("expected a string, got %T", v)
		return ""
	}
}

func (d *decoder) strs(obj object, key string) []string {
	items := d.list(obj, key)
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			defer d.push("." + key)()
			d.failf("expected a list of strings, got %T", item)
			return nil
		}
		out = append(out, s)
	}
	return out
}

// strPrefix returns the prefix recorded in a string constant's kind field.
func (d *decoder) strPrefix(obj object) string {
	if d.str(obj, "kind") == "u" {
		return "u"
	}
	return ""
}

func (d *decoder) bytes(obj object, key string) []byte {
	defer d.push("." + key)()
	switch v := obj[key].(type) {
	case nil:
		return nil
	case string:
		// Each character stands for the byte with the same code point.
		out := make([]byte, 0, len(v))
		for _, r := range v {
			if r > 0xff {
				d.failf("bytes value contains %U", r)
				return nil
			}
			out = append(out, byte(r))
		}
		return out
	case []any:
		out := make([]byte, 0, len(v))
		for _, item := range v {
			n, ok := toInt64(item)
			if !ok || n < 0 || n > 0xff {
				d.failf("bytes value contains %v", item)
				return nil
			}
			out = append(out, byte(n))
		}
		return out
	default:
		d.failf("expected bytes, got %T", v)
		return nil
	}
}

func (d *decoder) int(obj object, key string) int {
	v := obj[key]
	if v == nil {
		return 0
	}
	n, ok := toInt64(v)
	if !ok {
		defer d.push("." + key)()
		d.failf("expected an integer, got %v", v)
	}
	return int(n)
}

func (d *decoder) bool(obj object, key string) bool {
	switch v := obj[key].(type) {
	case nil:
		return false
	case bool:
		return v
	default:
		n, ok := toInt64(v)
		if !ok {
			defer d.push("." + key)()
			d.failf("expected a boolean, got %v", v)
		}
		return n != 0
	}
}

func toInt64(v any) (int64, bool) {
	switch v := v.(type) {
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case int:
		return int64(v), true
	case int64:
		return v, true
	case uint64:
		return int64(v), v <= math.MaxInt64
	case float64:
		return int64(v), v == math.Trunc(v)
	default:
		return 0, false
	}
}

// conversion decodes the conversion of a FormattedValue: -1 for none, or
// the code point of s, r or a.
func (d *decoder) conversion(obj object) rune {
	switch v := obj["conversion"].(type) {
	case nil:
		return 0
	case string:
		if len(v) == 1 {
			return rune(v[0])
		}
	default:
		if n, ok := toInt64(v); ok {
			if n < 0 {
				return 0
			}
			return rune(n)
		}
	}
	defer d.push(".conversion")()
	d.failf("invalid conversion %v", obj["conversion"])
	return 0
}

func operator[O any](d *decoder, obj object, key string, lookup func(string) (O, bool)) O {
	defer d.push("." + key)()
	return lookupOperator(d, obj[key], lookup)
}

func lookupOperator[O any](d *decoder, v any, lookup func(string) (O, bool)) O {
	var name string
	switch v := v.(type) {
	case string:
		name = v
	case object:
		name = typeOf(v)
	}
	op, ok := lookup(name)
	if !ok {
		d.failf("unknown operator %q", name)
	}
	return op
}

func (d *decoder) cmpOps(obj object, key string) []ast.CmpOperator {
	items := d.list(obj, key)
	if len(items) == 0 {
		return nil
	}
	defer d.push("." + key)()
	ops := make([]ast.CmpOperator, len(items))
	for i, item := range items {
		pop := d.push(fmt.Sprintf("[%d]", i))
		ops[i] = lookupOperator(d, item, ast.CmpOperatorByName)
		pop()
	}
	return ops
}

// constant decodes the value of a Constant or NameConstant node.
func (d *decoder) constant(obj object, v any) ast.Expr {
	defer d.push(".value")()
	switch v := v.(type) {
	case nil:
		return &ast.NameConstant{Value: ast.None}
	case bool:
		if v {
			return &ast.NameConstant{Value: ast.True}
		}
		return &ast.NameConstant{Value: ast.False}
	case string:
		return &ast.Str{S: v, Prefix: d.strPrefix(obj)}
	case object:
		switch typeOf(v) {
		case "bytes":
			return &ast.Bytes{S: d.bytes(v, "s")}
		case "Ellipsis":
			return &ast.Ellipsis{}
		}
	}
	return d.number(v)
}

// number decodes a numeric value: a plain number, or an object of type int,
// float or complex.
func (d *decoder) number(v any) ast.Expr {
	switch v := v.(type) {
	case object:
		switch typ := typeOf(v); typ {
		case "int":
			if s, ok := v["n_str"].(string); ok {
				return d.bigInt(s)
			}
			return d.intValue(v["n"])
		case "float":
			if s, ok := v["n_str"].(string); ok {
				return ast.NewFloat(d.parseFloat(s))
			}
			return ast.NewFloat(d.float(v["n"]))
		case "complex":
			return ast.NewComplex(d.float(v["real"]), d.float(v["imag"]))
		default:
			d.failf("unknown number type %q", typ)
			return nil
		}
	case json.Number:
		if strings.ContainsAny(string(v), ".eE") {
			return ast.NewFloat(d.parseFloat(string(v)))
		}
		return d.bigInt(string(v))
	case int:
		return ast.NewInt(int64(v))
	case int64:
		return ast.NewInt(v)
	case uint64:
		return &ast.Num{Type: ast.NumInt, Int: new(big.Int).SetUint64(v)}
	case float64:
		return ast.NewFloat(v)
	default:
		d.failf("expected a number, got %T", v)
		return nil
	}
}

// intValue decodes the n field of an int object. Without n_str, a value
// that went through a double is taken as is.
func (d *decoder) intValue(v any) ast.Expr {
	switch v := v.(type) {
	case json.Number:
		if !strings.ContainsAny(string(v), ".eE") {
			return d.bigInt(string(v))
		}
		return d.floatToInt(d.parseFloat(string(v)))
	case float64:
		return d.floatToInt(v)
	default:
		n := d.number(v)
		if num, ok := n.(*ast.Num); ok && num.Type != ast.NumInt {
			d.failf("expected an integer, got %v", v)
		}
		return n
	}
}

func (d *decoder) floatToInt(f float64) ast.Expr {
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		d.failf("expected an integer, got %v", f)
		return nil
	}
	n, _ := big.NewFloat(f).Int(nil)
	return &ast.Num{Type: ast.NumInt, Int: n}
}

func (d *decoder) bigInt(s string) ast.Expr {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		d.failf("invalid integer %q", s)
		return nil
	}
	return &ast.Num{Type: ast.NumInt, Int: n}
}

func (d *decoder) float(v any) float64 {
	switch v := v.(type) {
	case nil:
		return 0
	case json.Number:
		return d.parseFloat(string(v))
	case string:
		return d.parseFloat(v)
	case float64:
		return v
	default:
		n, ok := toInt64(v)
		if !ok {
			d.failf("expected a number, got %T", v)
		}
		return float64(n)
	}
}

// parseFloat accepts anything Python's float() prints, including inf and
// nan. Values out of range become infinities.
func (d *decoder) parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		d.failf("invalid float %q", s)
	}
	return f
}
