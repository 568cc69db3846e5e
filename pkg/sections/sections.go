/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package sections runs a test body repeatedly until every combination of the
// sections inside it has been visited. A section is an ordinary if statement:
//
//	sections.Test(t, func(s *sections.S) {
//		v := []int{}
//
//		if s.Section("push") {
//			v = append(v, 1, 2, 3)
//			check123(t, s, v)
//		}
//
//		if s.Section("insert") {
//			v = append(v, 3)
//			v = append([]int{1, 2}, v...)
//			check123(t, s, v)
//		}
//	})
//
// Local state is rebuilt from scratch on every pass, and sections may be nested
// to any depth, including inside helper functions that receive s. When a pass
// fails, the sections active during that pass are printed to standard error.
package sections

import (
	"runtime"
	"strings"

	"github.com/pkg/errors"

	"github.com/hyperledger-labs/sections/pkg/explorer"
)

// S is handed to every pass of a body. It asks the explorer which sections run.
type S struct {
	explorer *explorer.Explorer
}

// Section reports whether the section labelled label, at the caller's source
// location, runs on this pass. It panics when no pass is running.
func (s *S) Section(label string) bool {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file = "???"
	}

	return s.Enter(explorer.Section{
		Label: label,
		File:  file,
		Line:  line,
	})
}

// Enter is Section with an explicit identity, for bodies that are not Go code.
func (s *S) Enter(section explorer.Section) bool {
	if s == nil || s.explorer == nil || !s.explorer.IsRunning() {
		panic(errors.Errorf("section %q must be used inside a body driven by sections.Run or sections.Test", section.Label))
	}
	return s.explorer.Enter(section)
}

// Active returns the sections this pass enters, outermost first.
func (s *S) Active() []explorer.Section {
	return s.explorer.Active()
}

// Run runs a section-bearing helper within the current pass. It is equivalent to
// calling body(s) and exists so that helpers written as bodies can be reused.
func (s *S) Run(body func(s *S)) {
	Run(s.explorer, func(s *S) error {
		body(s)
		return nil
	})
}

// Run drives body until x has explored every combination of its sections.
//
// A body fails by returning an error, by panicking, or by exiting its goroutine
// as t.FailNow does. In all three cases the active sections are reported by the
// explorer. A returned error stops the exploration and is returned annotated with
// the failing combination; panics and goroutine exits propagate unchanged.
//
// A Run started while x is already in a pass, for instance from a helper called
// by the body, runs body exactly once as part of that pass.
func Run(x *explorer.Explorer, body func(s *S) error) error {
	s := &S{explorer: x}

	if !x.Start() {
		return body(s)
	}

	for x.Step() {
		if err := pass(x, s, body); err != nil {
			return errors.WithMessagef(err, "failed inside sections [%s]", strings.Join(explorer.Labels(x.Failure().Sections), ", "))
		}
	}

	return nil
}

func pass(x *explorer.Explorer, s *S, body func(s *S) error) (err error) {
	success := false
	defer func() {
		x.Finish(success)
	}()

	err = body(s)
	success = err == nil
	return err
}
