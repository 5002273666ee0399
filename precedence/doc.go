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

// Package precedence decides where a printed expression needs parentheses.
//
// Every operator has a binding [Level]. Levels are spaced two apart so that a
// parent can demand a level strictly between two operators, for instance
// when walking the right operand of a left-associative operator. A child
// expression is parenthesized when its own level is below the level its
// context demands.
//
// [Annotate] computes the decision for every expression of a tree. The
// result is a side table keyed by node identity: the tree itself is never
// modified, so the same tree may be annotated and printed concurrently.
package precedence
