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

// Command pyunparse renders Python syntax trees, given in their JSON form,
// back into source code.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/bufbuild/pyunparse"
	"github.com/bufbuild/pyunparse/ast"
	"github.com/bufbuild/pyunparse/ast/astjson"
	"github.com/bufbuild/pyunparse/reporter"
)

func main() {
	if err := fang.Execute(context.Background(), rootCmd(),
		fang.WithVersion("v0.1.0"),
		fang.WithCommit("dev"),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var flags Flags

	cmd := &cobra.Command{
		Use:   "pyunparse",
		Short: "Render Python syntax trees as source code",
		Long: `pyunparse turns Python syntax trees back into source code.

Trees are read as JSON: one object per node, with an "ast_type" member
naming the node's class and one member per field of that class.`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.ConfigFile, "config", "c", "", "YAML file with printer settings")
	pf.IntVarP(&flags.Config.MaxWidth, "width", "w", 0, "Maximum line width (default 79)")
	pf.StringVar(&flags.Config.Indent, "indent", "", "Indentation unit (default four spaces)")
	pf.IntVar(&flags.Config.MinTripleLength, "min-triple-length", 0, "Shortest string considered for triple quotes (default 20)")
	pf.IntVar(&flags.Config.MaxStatementWidth, "max-statement-width", 0, "Leave statements wider than this unwrapped")
	pf.BoolVarP(&flags.Debug, "debug", "d", false, "Enable debug logging")

	cmd.AddCommand(renderCmd(&flags), dumpCmd(&flags))
	return cmd
}

func renderCmd(flags *Flags) *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "render [flags] [file...]",
		Short: "Render JSON syntax trees as Python source",
		Long: `Render reads one JSON syntax tree per file, or a single tree from
standard input when no file is given, and prints the Python source.

When several files are given they are rendered in parallel and printed in
order, each preceded by a comment naming its file.`,
		Example: `  # Render a tree
  pyunparse render tree.json

  # Render from standard input with a narrower width
  python3 dump_ast.py mod.py | pyunparse render -w 60

  # Render many trees with settings from a file
  pyunparse render -c pyunparse.yaml -j 8 trees/*.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			trees, err := readTrees(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			r := pyunparse.Renderer{
				Options:        flags.Config.Options(logger),
				MaxParallelism: jobs,
				Reporter: reporter.NewReporter(nil, func(err error) {
					logger.Warn("rendered statement too wide", "error", err)
				}),
			}
			out, err := r.RenderAll(cmd.Context(), trees...)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for i, src := range out {
				if len(args) > 1 {
					if i > 0 {
						fmt.Fprintln(w)
					}
					fmt.Fprintf(w, "# %s\n", args[i])
				}
				if _, err := io.WriteString(w, src); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Number of trees rendered at once (default: number of CPUs)")
	return cmd
}

func dumpCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "dump [file]",
		Short: "Print the decoded syntax tree",
		Long: `Dump decodes a JSON syntax tree and prints its Go representation. It is
useful for checking how a tree is understood before rendering it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := flags.setup(cmd); err != nil {
				return err
			}
			trees, err := readTrees(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			_, err = pretty.Fprintf(cmd.OutOrStdout(), "%# v\n", trees[0])
			return err
		},
	}
}

// readTrees decodes the tree in each file, or the one on stdin if there
// are no files.
func readTrees(stdin io.Reader, files []string) ([]ast.Node, error) {
	if len(files) == 0 {
		tree, err := astjson.DecodeReader(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading standard input: %w", err)
		}
		return []ast.Node{tree}, nil
	}

	trees := make([]ast.Node, len(files))
	for i, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		trees[i], err = astjson.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
	}
	return trees, nil
}

// setup loads the config file and installs the logger.
func (f *Flags) setup(cmd *cobra.Command) (*slog.Logger, error) {
	level := slog.LevelInfo
	if f.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))

	if f.ConfigFile == "" {
		return logger, nil
	}
	file, err := LoadConfig(f.ConfigFile)
	if err != nil {
		return nil, err
	}
	f.Config = file.Merge(f.Config)
	logger.Debug("loaded config", "file", f.ConfigFile, "config", f.Config)
	return logger, nil
}
