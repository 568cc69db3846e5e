/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package explorer decides, pass after pass, which sections of a body run, so
// that every combination of nested sections is visited exactly once.
//
// The first pass enters no section at all and only discovers the top-level
// ones. Every pass that completes turns the sections it discovered into new
// combinations, one per discovered section, which inherit the decisions of the
// pass that found them. Combinations are explored in FIFO order, so the
// sequence of passes for a given body is deterministic.
//
// An Explorer is not safe for concurrent use. Every test gets its own.
package explorer

import (
	"io"
	"os"
	"strings"

	"github.com/hyperledger-labs/sections/pkg/logging"
)

type Explorer struct {
	logger logging.Logger
	output io.Writer

	running bool
	queue   *pathQueue
	current Path

	// discovered holds the sections seen for the first time during the
	// running pass, in the order they were first encountered.
	discovered     []Section
	discoveredSeen map[Section]struct{}

	passes  int
	failure *Report
}

func New(opts ...Option) *Explorer {
	x := &Explorer{
		logger: logging.NilLogger,
		output: os.Stderr,
	}

	for _, opt := range opts {
		switch v := opt.(type) {
		case loggerOpt:
			if v.logger != nil {
				x.logger = v.logger
			}
		case outputOpt:
			if v.output != nil {
				x.output = v.output
			}
		}
	}

	x.reset()

	return x
}

func (x *Explorer) reset() {
	x.running = false
	x.queue = newPathQueue(Path{})
	x.current = Path{}
	x.discovered = nil
	x.discoveredSeen = map[Section]struct{}{}
	x.passes = 0
	x.failure = nil
}

// Start begins a new exploration and returns true, unless a pass is in progress.
// In that case the caller is nested inside the running pass, must not drive
// passes itself, and Start returns false without touching any state.
func (x *Explorer) Start() bool {
	if x.running {
		return false
	}

	x.reset()
	return true
}

// Step makes the next pending combination current and starts a pass over it.
// It returns false once every combination has been explored.
func (x *Explorer) Step() bool {
	next, ok := x.queue.pop()
	if !ok {
		x.logger.Log(logging.LevelInfo, "exploration complete", "passes", x.passes)
		return false
	}

	x.current = next
	x.discovered = x.discovered[:0]
	x.discoveredSeen = map[Section]struct{}{}
	x.running = true
	x.passes++

	x.logger.Log(logging.LevelDebug, "starting pass", "pass", x.passes, "active", joinLabels(x.current.Active()), "pending", x.queue.len())

	return true
}

// Enter reports whether section runs on the current pass. A section the current
// combination knows nothing about is recorded as discovered and not entered;
// a later pass will enter it.
func (x *Explorer) Enter(section Section) bool {
	if entry, ok := x.current[section]; ok {
		return entry.Enter
	}

	if _, ok := x.discoveredSeen[section]; !ok {
		x.discoveredSeen[section] = struct{}{}
		x.discovered = append(x.discovered, section)
		x.logger.Log(logging.LevelDebug, "discovered section", "label", section.Label, "file", section.File, "line", section.Line)
	}

	return false
}

// Finish ends the running pass. After a successful pass one new combination is
// queued per discovered section. After a failed pass the active sections are
// written to the output as a Report, which is also returned.
func (x *Explorer) Finish(success bool) *Report {
	x.running = false

	if success {
		x.enqueueDiscovered()
		return nil
	}

	report := &Report{
		Sections: x.current.Active(),
	}
	x.failure = report

	x.logger.Log(logging.LevelWarn, "pass failed", "pass", x.passes, "active", joinLabels(report.Sections))

	if _, err := report.WriteTo(x.output); err != nil {
		x.logger.Log(logging.LevelError, "could not write failure report", "error", err)
	}

	return report
}

func (x *Explorer) enqueueDiscovered() {
	if len(x.discovered) == 0 {
		return
	}

	rank := x.current.ActiveCount()
	for _, chosen := range x.discovered {
		path := x.current.Clone()
		for _, sibling := range x.discovered {
			path[sibling] = Entry{
				Enter: sibling == chosen,
				Rank:  rank,
			}
		}
		x.queue.push(path)
	}

	x.logger.Log(logging.LevelDebug, "queued combinations", "count", len(x.discovered), "pending", x.queue.len())
}

// IsRunning reports whether a pass is in progress.
func (x *Explorer) IsRunning() bool {
	return x.running
}

// Passes returns the number of passes started since the last Start.
func (x *Explorer) Passes() int {
	return x.passes
}

// Pending returns the number of combinations still queued.
func (x *Explorer) Pending() int {
	return x.queue.len()
}

// Active returns the sections the current combination enters, outermost first.
func (x *Explorer) Active() []Section {
	return x.current.Active()
}

// Failure returns the report of the last failed pass, or nil.
func (x *Explorer) Failure() *Report {
	return x.failure
}

func joinLabels(sections []Section) string {
	return strings.Join(Labels(sections), ", ")
}
