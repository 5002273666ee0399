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

package token

import "fmt"

const (
	Invalid Kind = iota // The zero token.

	Text    // A fragment of source text.
	Indent  // Indentation at the start of a line.
	Newline // One or more line breaks.
	String  // A string literal; see [literal.String].
)

// Kind identifies what kind of token a particular [Token] is.
type Kind byte

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case Text:
		return "Text"
	case Indent:
		return "Indent"
	case Newline:
		return "Newline"
	case String:
		return "String"
	default:
		return fmt.Sprintf("token.Kind(%d)", int(k))
	}
}
