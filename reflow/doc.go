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

// Package reflow wraps printed statements that exceed a maximum width.
//
// Each [token.Line] is handled on its own. A line is split into delimiter
// groups: runs outside any bracket, which are never broken, alternating with
// the contents of one level of brackets, which may be broken between tokens.
// Statements whose unbreakable runs are too wide get parentheses added so
// that they become breakable. String literals may switch to a triple-quoted
// form, but are never split.
//
// Reflowing never fails. A statement that cannot be made to fit is printed
// as wide as it needs to be.
package reflow
