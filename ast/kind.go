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

package ast

import "fmt"

// Kind identifies the concrete type of a [Node].
type Kind byte

const (
	KindInvalid Kind = iota

	// Roots.
	KindModule
	KindInteractive
	KindExpression

	// Statements.
	KindFunctionDef
	KindClassDef
	KindReturn
	KindDelete
	KindAssign
	KindAugAssign
	KindAnnAssign
	KindFor
	KindWhile
	KindIf
	KindWith
	KindRaise
	KindTry
	KindAssert
	KindImport
	KindImportFrom
	KindGlobal
	KindNonlocal
	KindExpr
	KindPass
	KindBreak
	KindContinue

	// Expressions.
	KindBoolOp
	KindNamedExpr
	KindBinOp
	KindUnaryOp
	KindLambda
	KindIfExp
	KindDict
	KindSet
	KindListComp
	KindSetComp
	KindDictComp
	KindGeneratorExp
	KindAwait
	KindYield
	KindYieldFrom
	KindCompare
	KindCall
	KindFormattedValue
	KindJoinedStr
	KindNum
	KindStr
	KindBytes
	KindNameConstant
	KindEllipsis
	KindAttribute
	KindSubscript
	KindStarred
	KindName
	KindList
	KindTuple
	KindSlice

	// Helper nodes.
	KindArguments
	KindArg
	KindKeyword
	KindAlias
	KindWithItem
	KindComprehension
	KindExceptHandler

	// Nodes defined outside of this package; see [Custom].
	KindCustom

	kindCount
)

// kindNames are the Python class names of each kind.
var kindNames = [...]string{
	KindInvalid:        "Invalid",
	KindModule:         "Module",
	KindInteractive:    "Interactive",
	KindExpression:     "Expression",
	KindFunctionDef:    "FunctionDef",
	KindClassDef:       "ClassDef",
	KindReturn:         "Return",
	KindDelete:         "Delete",
	KindAssign:         "Assign",
	KindAugAssign:      "AugAssign",
	KindAnnAssign:      "AnnAssign",
	KindFor:            "For",
	KindWhile:          "While",
	KindIf:             "If",
	KindWith:           "With",
	KindRaise:          "Raise",
	KindTry:            "Try",
	KindAssert:         "Assert",
	KindImport:         "Import",
	KindImportFrom:     "ImportFrom",
	KindGlobal:         "Global",
	KindNonlocal:       "Nonlocal",
	KindExpr:           "Expr",
	KindPass:           "Pass",
	KindBreak:          "Break",
	KindContinue:       "Continue",
	KindBoolOp:         "BoolOp",
	KindNamedExpr:      "NamedExpr",
	KindBinOp:          "BinOp",
	KindUnaryOp:        "UnaryOp",
	KindLambda:         "Lambda",
	KindIfExp:          "IfExp",
	KindDict:           "Dict",
	KindSet:            "Set",
	KindListComp:       "ListComp",
	KindSetComp:        "SetComp",
	KindDictComp:       "DictComp",
	KindGeneratorExp:   "GeneratorExp",
	KindAwait:          "Await",
	KindYield:          "Yield",
	KindYieldFrom:      "YieldFrom",
	KindCompare:        "Compare",
	KindCall:           "Call",
	KindFormattedValue: "FormattedValue",
	KindJoinedStr:      "JoinedStr",
	KindNum:            "Num",
	KindStr:            "Str",
	KindBytes:          "Bytes",
	KindNameConstant:   "NameConstant",
	KindEllipsis:       "Ellipsis",
	KindAttribute:      "Attribute",
	KindSubscript:      "Subscript",
	KindStarred:        "Starred",
	KindName:           "Name",
	KindList:           "List",
	KindTuple:          "Tuple",
	KindSlice:          "Slice",
	KindArguments:      "arguments",
	KindArg:            "arg",
	KindKeyword:        "keyword",
	KindAlias:          "alias",
	KindWithItem:       "withitem",
	KindComprehension:  "comprehension",
	KindExceptHandler:  "ExceptHandler",
	KindCustom:         "Custom",
}

// String implements [fmt.Stringer].
//
// The result is the name Python's own ast module uses for the node class.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("ast.Kind(%d)", int(k))
}

// IsExpr returns whether nodes of this kind are expressions.
func (k Kind) IsExpr() bool {
	return k >= KindBoolOp && k <= KindSlice || k == KindCustom
}

// IsStmt returns whether nodes of this kind are statements.
func (k Kind) IsStmt() bool {
	return k >= KindFunctionDef && k <= KindContinue || k == KindCustom
}

// KindByName looks up a kind by its Python class name, as returned by
// [Kind.String]. The async statement names map onto their synchronous kinds,
// and TryStar maps onto [KindTry].
func KindByName(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames)+4)
	for k, name := range kindNames {
		if Kind(k) == KindInvalid || Kind(k) == KindCustom {
			continue
		}
		m[name] = Kind(k)
	}
	m["AsyncFunctionDef"] = KindFunctionDef
	m["AsyncFor"] = KindFor
	m["AsyncWith"] = KindWith
	m["TryStar"] = KindTry
	return m
}()
