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

// Package astjson decodes syntax trees from their JSON form.
//
// Each node is an object whose "ast_type" member names its Python class,
// with one member per field of that class, using the field names of
// Python's ast module:
//
//	{"ast_type": "Assign",
//	 "targets": [{"ast_type": "Name", "id": "x", "ctx": {"ast_type": "Store"}}],
//	 "value": {"ast_type": "Num", "n": {"ast_type": "int", "n": 42}}}
//
// Members the printer has no use for, such as ctx and position information,
// are ignored. Numbers may be plain JSON numbers or objects of type "int",
// "float" or "complex". Integers too large for a double may carry their
// exact decimal digits in an "n_str" member, which takes precedence over
// "n"; for floats "n_str" may also spell "inf", "-inf" or "nan".
//
// Both the legacy node classes (Num, Str, Bytes, NameConstant, Ellipsis,
// Index, ExtSlice) and Constant are accepted.
package astjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/bufbuild/pyunparse/ast"
)

// Decode parses a JSON document holding a single tree.
//
// Strings that escape half of a UTF-16 surrogate pair on its own, such as
// "\udcba", are rejected: Go strings cannot hold them.
func Decode(data []byte) (ast.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("astjson: %w", err)
	}
	if hasLoneSurrogate(data) {
		d := &decoder{}
		d.surrogates(data)
		if d.err != nil {
			return nil, d.err
		}
	}
	return FromValue(v)
}

// DecodeReader parses a JSON document holding a single tree from r.
func DecodeReader(r io.Reader) (ast.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("astjson: %w", err)
	}
	return Decode(data)
}

// FromValue converts a document that has already been decoded generically,
// by encoding/json or gopkg.in/yaml.v3, into a tree.
func FromValue(v any) (ast.Node, error) {
	d := &decoder{}
	n := d.node(v)
	if d.err != nil {
		return nil, d.err
	}
	if n == nil {
		return nil, fmt.Errorf("astjson: document is empty")
	}
	return n, nil
}

type object = map[string]any

// decoder records the first error it encounters; decoding carries on with
// zero values afterwards, and the partial result is discarded.
type decoder struct {
	path []string
	err  error
}

func (d *decoder) failf(format string, args ...any) {
	if d.err != nil {
		return
	}
	where := strings.Join(d.path, "")
	if where == "" {
		where = "<root>"
	}
	d.err = fmt.Errorf("astjson: %s: %s", strings.TrimPrefix(where, "."), fmt.Sprintf(format, args...))
}

func (d *decoder) push(segment string) func() {
	d.path = append(d.path, segment)
	return func() { d.path = d.path[:len(d.path)-1] }
}

func (d *decoder) object(v any) object {
	switch v := v.(type) {
	case nil:
		return nil
	case object:
		return v
	default:
		d.failf("expected an object, got %T", v)
		return nil
	}
}

func (d *decoder) list(obj object, key string) []any {
	switch v := obj[key].(type) {
	case nil:
		return nil
	case []any:
		return v
	default:
		defer d.push("." + key)()
		d.failf("expected a list, got %T", v)
		return nil
	}
}

func typeOf(obj object) string {
	typ, _ := obj["ast_type"].(string)
	return typ
}

func (d *decoder) node(v any) ast.Node {
	obj := d.object(v)
	if obj == nil {
		return nil
	}

	typ := typeOf(obj)
	switch typ {
	case "Constant":
		return d.constant(obj, obj["value"])
	case "Index":
		return d.expr(obj, "value")
	case "ExtSlice":
		return &ast.Tuple{Elts: d.exprs(obj, "dims")}
	}

	kind, ok := ast.KindByName(typ)
	if !ok {
		d.failf("unknown node type %q", typ)
		return nil
	}
	async := strings.HasPrefix(typ, "Async")

	switch kind {
	case ast.KindModule:
		return &ast.Module{Body: d.stmts(obj, "body")}
	case ast.KindInteractive:
		return &ast.Interactive{Body: d.stmts(obj, "body")}
	case ast.KindExpression:
		return &ast.Expression{Body: d.expr(obj, "body")}

	case ast.KindFunctionDef:
		return &ast.FunctionDef{
			Name:          d.str(obj, "name"),
			Args:          d.arguments(obj, "args"),
			Body:          d.stmts(obj, "body"),
			DecoratorList: d.exprs(obj, "decorator_list"),
			Returns:       d.expr(obj, "returns"),
			IsAsync:       async,
		}
	case ast.KindClassDef:
		return &ast.ClassDef{
			Name:          d.str(obj, "name"),
			Bases:         d.exprs(obj, "bases"),
			Keywords:      d.keywords(obj, "keywords"),
			Body:          d.stmts(obj, "body"),
			DecoratorList: d.exprs(obj, "decorator_list"),
		}
	case ast.KindReturn:
		return &ast.Return{Value: d.expr(obj, "value")}
	case ast.KindDelete:
		return &ast.Delete{Targets: d.exprs(obj, "targets")}
	case ast.KindAssign:
		return &ast.Assign{Targets: d.exprs(obj, "targets"), Value: d.expr(obj, "value")}
	case ast.KindAugAssign:
		return &ast.AugAssign{
			Target: d.expr(obj, "target"),
			Op:     operator(d, obj, "op", ast.OperatorByName),
			Value:  d.expr(obj, "value"),
		}
	case ast.KindAnnAssign:
		return &ast.AnnAssign{
			Target:     d.expr(obj, "target"),
			Annotation: d.expr(obj, "annotation"),
			Value:      d.expr(obj, "value"),
			Simple:     d.bool(obj, "simple"),
		}
	case ast.KindFor:
		return &ast.For{
			Target:  d.expr(obj, "target"),
			Iter:    d.expr(obj, "iter"),
			Body:    d.stmts(obj, "body"),
			Orelse:  d.stmts(obj, "orelse"),
			IsAsync: async,
		}
	case ast.KindWhile:
		return &ast.While{Test: d.expr(obj, "test"), Body: d.stmts(obj, "body"), Orelse: d.stmts(obj, "orelse")}
	case ast.KindIf:
		return &ast.If{Test: d.expr(obj, "test"), Body: d.stmts(obj, "body"), Orelse: d.stmts(obj, "orelse")}
	case ast.KindWith:
		return &ast.With{Items: d.withItems(obj, "items"), Body: d.stmts(obj, "body"), IsAsync: async}
	case ast.KindRaise:
		return &ast.Raise{Exc: d.expr(obj, "exc"), Cause: d.expr(obj, "cause")}
	case ast.KindTry:
		return &ast.Try{
			Body:      d.stmts(obj, "body"),
			Handlers:  d.handlers(obj, "handlers"),
			Orelse:    d.stmts(obj, "orelse"),
			Finalbody: d.stmts(obj, "finalbody"),
			Star:      typ == "TryStar",
		}
	case ast.KindAssert:
		return &ast.Assert{Test: d.expr(obj, "test"), Msg: d.expr(obj, "msg")}
	case ast.KindImport:
		return &ast.Import{Names: d.aliases(obj, "names")}
	case ast.KindImportFrom:
		return &ast.ImportFrom{Module: d.str(obj, "module"), Names: d.aliases(obj, "names"), Level: d.int(obj, "level")}
	case ast.KindGlobal:
		return &ast.Global{Names: d.strs(obj, "names")}
	case ast.KindNonlocal:
		return &ast.Nonlocal{Names: d.strs(obj, "names")}
	case ast.KindExpr:
		return &ast.ExprStmt{Value: d.expr(obj, "value")}
	case ast.KindPass:
		return &ast.Pass{}
	case ast.KindBreak:
		return &ast.Break{}
	case ast.KindContinue:
		return &ast.Continue{}

	case ast.KindBoolOp:
		return &ast.BoolOp{Op: operator(d, obj, "op", ast.BoolOperatorByName), Values: d.exprs(obj, "values")}
	case ast.KindNamedExpr:
		return &ast.NamedExpr{Target: d.expr(obj, "target"), Value: d.expr(obj, "value")}
	case ast.KindBinOp:
		return &ast.BinOp{
			Left:  d.expr(obj, "left"),
			Op:    operator(d, obj, "op", ast.OperatorByName),
			Right: d.expr(obj, "right"),
		}
	case ast.KindUnaryOp:
		return &ast.UnaryOp{Op: operator(d, obj, "op", ast.UnaryOperatorByName), Operand: d.expr(obj, "operand")}
	case ast.KindLambda:
		return &ast.Lambda{Args: d.arguments(obj, "args"), Body: d.expr(obj, "body")}
	case ast.KindIfExp:
		return &ast.IfExp{Test: d.expr(obj, "test"), Body: d.expr(obj, "body"), Orelse: d.expr(obj, "orelse")}
	case ast.KindDict:
		return &ast.Dict{Keys: d.exprs(obj, "keys"), Values: d.exprs(obj, "values")}
	case ast.KindSet:
		return &ast.Set{Elts: d.exprs(obj, "elts")}
	case ast.KindListComp:
		return &ast.ListComp{Elt: d.expr(obj, "elt"), Generators: d.comprehensions(obj, "generators")}
	case ast.KindSetComp:
		return &ast.SetComp{Elt: d.expr(obj, "elt"), Generators: d.comprehensions(obj, "generators")}
	case ast.KindDictComp:
		return &ast.DictComp{Key: d.expr(obj, "key"), Value: d.expr(obj, "value"), Generators: d.comprehensions(obj, "generators")}
	case ast.KindGeneratorExp:
		return &ast.GeneratorExp{Elt: d.expr(obj, "elt"), Generators: d.comprehensions(obj, "generators")}
	case ast.KindAwait:
		return &ast.Await{Value: d.expr(obj, "value")}
	case ast.KindYield:
		return &ast.Yield{Value: d.expr(obj, "value")}
	case ast.KindYieldFrom:
		return &ast.YieldFrom{Value: d.expr(obj, "value")}
	case ast.KindCompare:
		return &ast.Compare{Left: d.expr(obj, "left"), Ops: d.cmpOps(obj, "ops"), Comparators: d.exprs(obj, "comparators")}
	case ast.KindCall:
		return &ast.Call{Func: d.expr(obj, "func"), Args: d.exprs(obj, "args"), Keywords: d.keywords(obj, "keywords")}
	case ast.KindFormattedValue:
		return &ast.FormattedValue{
			Value:      d.expr(obj, "value"),
			Conversion: d.conversion(obj),
			FormatSpec: d.expr(obj, "format_spec"),
		}
	case ast.KindJoinedStr:
		return &ast.JoinedStr{Values: d.exprs(obj, "values")}
	case ast.KindNum:
		defer d.push(".n")()
		return d.number(obj["n"])
	case ast.KindStr:
		return &ast.Str{S: d.str(obj, "s"), Prefix: d.strPrefix(obj)}
	case ast.KindBytes:
		return &ast.Bytes{S: d.bytes(obj, "s")}
	case ast.KindNameConstant:
		return d.constant(obj, obj["value"])
	case ast.KindEllipsis:
		return &ast.Ellipsis{}
	case ast.KindAttribute:
		return &ast.Attribute{Value: d.expr(obj, "value"), Attr: d.str(obj, "attr")}
	case ast.KindSubscript:
		return &ast.Subscript{Value: d.expr(obj, "value"), Slice: d.expr(obj, "slice")}
	case ast.KindStarred:
		return &ast.Starred{Value: d.expr(obj, "value")}
	case ast.KindName:
		return &ast.Name{ID: d.str(obj, "id")}
	case ast.KindList:
		return &ast.List{Elts: d.exprs(obj, "elts")}
	case ast.KindTuple:
		return &ast.Tuple{Elts: d.exprs(obj, "elts")}
	case ast.KindSlice:
		return &ast.Slice{Lower: d.expr(obj, "lower"), Upper: d.expr(obj, "upper"), Step: d.expr(obj, "step")}

	case ast.KindArguments:
		return d.argumentsObject(obj)
	case ast.KindArg:
		return d.argObject(obj)
	case ast.KindKeyword:
		return &ast.Keyword{Arg: d.str(obj, "arg"), Value: d.expr(obj, "value")}
	case ast.KindAlias:
		return &ast.Alias{Name: d.str(obj, "name"), AsName: d.str(obj, "asname")}
	case ast.KindWithItem:
		return &ast.WithItem{ContextExpr: d.expr(obj, "context_expr"), OptionalVars: d.expr(obj, "optional_vars")}
	case ast.KindComprehension:
		return &ast.Comprehension{
			Target:  d.expr(obj, "target"),
			Iter:    d.expr(obj, "iter"),
			Ifs:     d.exprs(obj, "ifs"),
			IsAsync: d.bool(obj, "is_async"),
		}
	case ast.KindExceptHandler:
		return &ast.ExceptHandler{Type: d.expr(obj, "type"), Name: d.str(obj, "name"), Body: d.stmts(obj, "body")}
	}

	d.failf("node type %q cannot appear here", typ)
	return nil
}
