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

// Package reporter contains the error types produced while printing, and
// the hooks callers use to observe them.
package reporter

import (
	"errors"
	"sync"
)

// ErrorReporter is responsible for reporting the given error. If the reporter
// returns a non-nil error, rendering aborts with that error. A render that
// fails always produces no output; returning nil only allows a batch of
// renders to carry on with the remaining trees.
type ErrorReporter func(err ErrorWithNode) error

// WarningReporter is responsible for reporting the given warning. Warnings
// describe output that is valid but does not meet the configured layout,
// such as a *[WidthError].
type WarningReporter func(err error)

// Reporter receives the errors and warnings of rendering.
type Reporter interface {
	Error(ErrorWithNode) error
	Warning(error)
}

// NewReporter returns a Reporter that calls the given functions. Either may
// be nil: errors are then returned as is, and warnings are dropped.
func NewReporter(errs ErrorReporter, warnings WarningReporter) Reporter {
	return callbacks{onError: errs, onWarning: warnings}
}

type callbacks struct {
	onError   ErrorReporter
	onWarning WarningReporter
}

func (c callbacks) Error(err ErrorWithNode) error {
	if c.onError != nil {
		return c.onError(err)
	}
	return err
}

func (c callbacks) Warning(err error) {
	if c.onWarning != nil {
		c.onWarning(err)
	}
}

// Handler funnels the errors and warnings of one or more renders into a
// [Reporter]. It is safe for concurrent use; calls into the reporter are
// serialized.
type Handler struct {
	rep Reporter

	mu       sync.Mutex
	failed   int
	warnings int
	// The first error the reporter did not swallow.
	abort error
}

// NewHandler returns a handler for rep. A nil rep returns every error and
// drops warnings.
func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = NewReporter(nil, nil)
	}
	return &Handler{rep: rep}
}

// HandleError reports err. It returns the error rendering should abort with,
// or nil if the reporter swallowed it. Once an error has been returned, every
// later call returns that same error without consulting the reporter.
//
// Errors that do not carry a node are not reported; they always abort.
func (h *Handler) HandleError(err error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.abort != nil {
		return h.abort
	}
	h.failed++
	var ewn ErrorWithNode
	if errors.As(err, &ewn) {
		err = h.rep.Error(ewn)
	}
	h.abort = err
	return err
}

// HandleWarning reports a warning.
func (h *Handler) HandleWarning(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.warnings++
	h.rep.Warning(err)
}

// Error returns the error rendering should fail with: the first error the
// reporter returned, or [ErrRenderFailed] if errors were reported but all of
// them were swallowed.
func (h *Handler) Error() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch {
	case h.abort != nil:
		return h.abort
	case h.failed > 0:
		return ErrRenderFailed
	default:
		return nil
	}
}

// Counts returns the number of errors and warnings handled so far. Errors
// received after rendering was aborted are not counted.
func (h *Handler) Counts() (errs, warnings int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.failed, h.warnings
}
