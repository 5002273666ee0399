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

package printer_test

import (
	"fmt"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/bufbuild/pyunparse/ast/astjson"
	"github.com/bufbuild/pyunparse/internal/corpora"
	"github.com/bufbuild/pyunparse/printer"
	"github.com/bufbuild/pyunparse/reporter"
)

// TestCorpus renders the trees under testdata. Each case is a YAML file
// with the tree in its JSON form and optional printer settings. Set
// PYUNPARSE_REFRESH to a glob of case names to rewrite their outputs.
func TestCorpus(t *testing.T) {
	t.Parallel()

	corpus := corpora.Corpus{
		Root:       "testdata",
		Refresh:    "PYUNPARSE_REFRESH",
		Extensions: []string{"yaml"},
		Outputs: []corpora.Output{
			{Extension: "py"},
			{Extension: "warnings"},
			{Extension: "err"},
		},
	}

	corpus.Run(t, func(t *testing.T, path, text string, outputs []string) {
		var testCase struct {
			MaxWidth        int    `yaml:"max_width"`
			Indent          string `yaml:"indent"`
			MinTripleLength int    `yaml:"min_triple_length"`
			Tree            any    `yaml:"tree"`
		}
		if err := yaml.Unmarshal([]byte(text), &testCase); err != nil {
			t.Fatalf("failed to parse test case %q: %v", path, err)
		}

		tree, err := astjson.FromValue(testCase.Tree)
		if err != nil {
			t.Fatalf("failed to decode tree of %q: %v", path, err)
		}

		var warnings strings.Builder
		options := printer.Options{
			MaxWidth:        testCase.MaxWidth,
			Indent:          testCase.Indent,
			MinTripleLength: testCase.MinTripleLength,
			Reporter: reporter.NewReporter(nil, func(err error) {
				fmt.Fprintln(&warnings, err)
			}),
		}
		out, err := printer.Print(options, tree)
		outputs[0] = out
		outputs[1] = warnings.String()
		if err != nil {
			outputs[2] = err.Error() + "\n"
		}
	})
}
