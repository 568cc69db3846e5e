/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sections

import (
	"strings"
	"sync"
	"testing"

	"github.com/onsi/ginkgo"
	"github.com/pkg/errors"

	"github.com/hyperledger-labs/sections/pkg/explorer"
	"github.com/hyperledger-labs/sections/pkg/logging"
)

// ErrPassFailed is returned for passes during which the test was marked failed
// without its body aborting, as with t.Error.
var ErrPassFailed = errors.New("test failed")

// TB is the part of testing.TB the drivers need. *testing.T, *testing.B and
// ginkgo's GinkgoT() all satisfy it. Implementations must be comparable, in
// practice pointers, since explorers are tracked per test.
type TB interface {
	Failed() bool
	Logf(format string, args ...interface{})
}

// specKey identifies the running ginkgo spec. GinkgoT() returns a new value on
// every call, so its explorers are tracked per spec instead.
type specKey struct {
	text string
	file string
	line int
}

// testKey returns the key explorers of t are tracked under.
func testKey(t TB) interface{} {
	switch t.(type) {
	case *testing.T, *testing.B:
		return t
	case ginkgo.GinkgoTInterface:
		spec := ginkgo.CurrentGinkgoTestDescription()
		if spec.FileName == "" {
			return t
		}
		return specKey{
			text: spec.FullTestText,
			file: spec.FileName,
			line: spec.LineNumber,
		}
	default:
		return t
	}
}

// explorers tracks the exploration running for each test, so that a nested
// Test on the same test joins it instead of starting its own.
var explorers = struct {
	sync.Mutex
	byTest map[interface{}]*explorer.Explorer
}{
	byTest: map[interface{}]*explorer.Explorer{},
}

func lookup(t TB) *explorer.Explorer {
	key := testKey(t)

	explorers.Lock()
	defer explorers.Unlock()
	return explorers.byTest[key]
}

func register(t TB, x *explorer.Explorer) (release func()) {
	key := testKey(t)

	explorers.Lock()
	defer explorers.Unlock()
	previous, ok := explorers.byTest[key]
	explorers.byTest[key] = x

	return func() {
		explorers.Lock()
		defer explorers.Unlock()
		if ok {
			explorers.byTest[key] = previous
		} else {
			delete(explorers.byTest, key)
		}
	}
}

func newExplorer(t TB, opts []explorer.Option) *explorer.Explorer {
	if !explorer.HasLogger(opts) {
		opts = append(opts, explorer.LoggerOpt(logging.NewTestLogger(t, logging.LevelInfo)))
	}
	return explorer.New(opts...)
}

// Test explores body for the test t. Every pass runs on t itself, so the first
// failing combination ends the exploration: a fatal failure ends the test
// goroutine, and after a non-fatal one a further failure could not be told apart.
//
// Called from inside a pass of another Test on the same test, Test runs body
// once as part of that pass and opts are ignored.
//
// Non-fatal failures are told apart by t.Failed, so they can only be attributed
// to a combination when t had not failed before Test was called. On an already
// failed t only fatal failures end the exploration.
func Test(t TB, body func(s *S), opts ...explorer.Option) {
	if x := lookup(t); x != nil && x.IsRunning() {
		body(&S{explorer: x})
		return
	}

	x := newExplorer(t, opts)
	release := register(t, x)
	defer release()

	failedBefore := t.Failed()
	if failedBefore {
		t.Logf("test already failed, non-fatal failures will not be attributed to sections")
	}

	err := Run(x, func(s *S) error {
		body(s)
		if !failedBefore && t.Failed() {
			return ErrPassFailed
		}
		return nil
	})
	if err != nil {
		t.Logf("%s", err)
	}
}

// Subtests explores body running every pass as a subtest of t, named after the
// sections it enters. Failing passes fail their subtest only, so every failing
// combination is reported. The sections nested below a failing combination are
// not explored, since its pass never completed.
//
// Passes must not call t.Parallel: the next pass depends on the sections the
// previous one discovered. A parallel pass fails t.
func Subtests(t *testing.T, body func(t *testing.T, s *S), opts ...explorer.Option) {
	t.Helper()

	if x := lookup(t); x != nil && x.IsRunning() {
		body(t, &S{explorer: x})
		return
	}

	x := newExplorer(t, opts)
	release := register(t, x)
	defer release()

	s := &S{explorer: x}
	x.Start()
	for x.Step() {
		name := passName(x.Active())
		t.Run(name, func(t *testing.T) {
			release := register(t, x)
			defer release()

			pass(x, s, func(s *S) error {
				body(t, s)
				if t.Failed() {
					return ErrPassFailed
				}
				return nil
			})
		})

		if x.IsRunning() {
			t.Fatalf("pass %s is still running after t.Run returned, passes cannot run in parallel", name)
		}
	}
}

func passName(active []explorer.Section) string {
	if len(active) == 0 {
		return "root"
	}
	return strings.Join(explorer.Labels(active), ",")
}
