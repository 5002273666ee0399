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

// Package pyunparse turns Python syntax trees back into source code.
//
// The output is valid Python that parses back into an equivalent tree. It
// is laid out to fit a maximum width, with parentheses only where operator
// precedence requires them, but it is not a formatter: comments and the
// original layout are not part of the tree and cannot be recovered.
//
// A minimal use renders one tree with default options:
//
//	src, err := pyunparse.ToSource(tree)
//
// A [Renderer] carries options and a reporter, and can render many trees
// in parallel.
package pyunparse

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/bufbuild/pyunparse/ast"
	"github.com/bufbuild/pyunparse/printer"
	"github.com/bufbuild/pyunparse/reporter"
)

// ToSource renders node with default options.
func ToSource(node ast.Node) (string, error) {
	return new(Renderer).Render(node)
}

// Renderer renders trees to source.
type Renderer struct {
	// Options control the output. Options.Reporter is ignored in favor of
	// Reporter.
	Options printer.Options
	// The maximum number of trees rendered at once by RenderAll. If
	// unspecified or set to a non-positive value, then
	// min(runtime.NumCPU(), runtime.GOMAXPROCS(-1)) will be used.
	MaxParallelism int
	// A custom error and warning reporter. If unspecified a default reporter
	// is used, which fails on the first error and ignores all warnings.
	Reporter reporter.Reporter
}

// Render renders a single tree.
func (r *Renderer) Render(node ast.Node) (string, error) {
	h := reporter.NewHandler(r.Reporter)
	out, err := r.render(h, node)
	if err != nil {
		return "", err
	}
	if err := h.Error(); err != nil {
		return "", err
	}
	return out, nil
}

// RenderAll renders several trees in parallel, returning their sources in
// order.
//
// If the reporter chooses not to fail on an error, the tree it belongs to
// renders as the empty string, the remaining trees are still rendered, and
// the results are returned along with [reporter.ErrRenderFailed].
func (r *Renderer) RenderAll(ctx context.Context, nodes ...ast.Node) ([]string, error) {
	if len(nodes) == 0 {
		return nil, nil
	}

	par := r.MaxParallelism
	if par <= 0 {
		par = min(runtime.GOMAXPROCS(-1), runtime.NumCPU())
	}
	h := reporter.NewHandler(r.Reporter)
	if logger := r.Options.Logger; logger != nil {
		logger.Debug("rendering trees", "count", len(nodes), "parallelism", par)
		defer func() {
			errs, warnings := h.Counts()
			logger.Debug("rendered trees", "count", len(nodes), "errors", errs, "warnings", warnings)
		}()
	}
	s := semaphore.NewWeighted(int64(par))
	grp, grpCtx := errgroup.WithContext(ctx)

	out := make([]string, len(nodes))
	for i, node := range nodes {
		if err := s.Acquire(grpCtx, 1); err != nil {
			break
		}
		grp.Go(func() error {
			defer s.Release(1)
			src, err := r.render(h, node)
			out[i] = src
			return err
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := h.Error(); err != nil {
		return out, err
	}
	return out, nil
}

// render prints one tree, funneling its errors and warnings through h.
func (r *Renderer) render(h *reporter.Handler, node ast.Node) (string, error) {
	options := r.Options
	options.Reporter = reporter.NewReporter(nil, h.HandleWarning)
	out, err := printer.Print(options, node)
	if err != nil {
		return "", h.HandleError(err)
	}
	return out, nil
}
