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
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// hasLoneSurrogate reports whether a JSON document escapes one half of a
// UTF-16 surrogate pair without the other. encoding/json decodes such an
// escape as U+FFFD, which would silently change the string.
//
// Backslashes only occur inside JSON strings, so the document can be scanned
// without tracking where strings begin.
func hasLoneSurrogate(raw []byte) bool {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' {
			continue
		}
		i++
		if i >= len(raw) || raw[i] != 'u' {
			continue
		}
		r, ok := hex4(raw[i+1:])
		if !ok {
			continue
		}
		i += 4
		switch {
		case r >= 0xd800 && r < 0xdc00:
			if i+2 < len(raw) && raw[i+1] == '\\' && raw[i+2] == 'u' {
				if low, ok := hex4(raw[i+3:]); ok && low >= 0xdc00 && low < 0xe000 {
					i += 6
					continue
				}
			}
			return true
		case r >= 0xdc00 && r < 0xe000:
			return true
		}
	}
	return false
}

func hex4(b []byte) (rune, bool) {
	if len(b) < 4 {
		return 0, false
	}
	v, err := strconv.ParseUint(string(b[:4]), 16, 16)
	return rune(v), err == nil
}

// surrogates walks the tokens of a JSON document and fails at the first
// string holding a lone surrogate escape, so that the error names its path.
func (d *decoder) surrogates(data []byte) {
	type frame struct {
		object  bool
		wantKey bool
		key     string
		index   int
	}
	var stack []frame
	// done pops the path segment of the value that just ended.
	done := func() {
		if len(stack) == 0 {
			return
		}
		d.path = d.path[:len(d.path)-1]
		top := &stack[len(stack)-1]
		if top.object {
			top.wantKey = true
		} else {
			top.index++
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	var start int64
	for d.err == nil {
		tok, err := dec.Token()
		if err != nil {
			return
		}
		end := dec.InputOffset()
		raw := data[start:end]
		start = end

		if delim, ok := tok.(json.Delim); ok && (delim == '}' || delim == ']') {
			stack = stack[:len(stack)-1]
			done()
			if len(stack) == 0 {
				return
			}
			continue
		}

		if n := len(stack); n > 0 {
			top := &stack[n-1]
			if top.object && top.wantKey {
				top.key, _ = tok.(string)
				top.wantKey = false
				if hasLoneSurrogate(raw) {
					d.failf("key %q contains an unpaired surrogate escape", top.key)
				}
				continue
			}
			if top.object {
				d.path = append(d.path, "."+top.key)
			} else {
				d.path = append(d.path, fmt.Sprintf("[%d]", top.index))
			}
		}

		switch tok {
		case json.Delim('{'):
			stack = append(stack, frame{object: true, wantKey: true})
			continue
		case json.Delim('['):
			stack = append(stack, frame{})
			continue
		}
		if _, ok := tok.(string); ok && hasLoneSurrogate(raw) {
			d.failf("string contains an unpaired surrogate escape")
		}
		if len(stack) == 0 {
			return
		}
		done()
	}
}
