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

// Package token provides the linear output representation produced by the
// printer and consumed by the reflow engine.
//
// # Tokens
//
// A printed tree is a flat sequence of [Token]s: text fragments, line
// breaks, the indentation that follows each break, and string literals that
// may still change form. Keywords carry their trailing space, and brackets
// are always tokens of their own so that nesting can be tracked without
// re-lexing the text.
//
// # Lines
//
// [Group] splits a sequence into [Line]s, one per logical statement. Each
// line is reflowed independently.
package token
