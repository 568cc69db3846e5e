/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logging

import (
	"bytes"
	"strings"
)

// Logfer is the part of testing.TB the test logger needs.
type Logfer interface {
	Logf(format string, args ...interface{})
}

type testLogger struct {
	level LogLevel
	t     Logfer
}

// NewTestLogger returns a Logger that forwards messages of the given level and above
// to t.Logf, so that they only show up for failing or verbose tests.
func NewTestLogger(t Logfer, level LogLevel) Logger {
	return &testLogger{
		level: level,
		t:     t,
	}
}

func (tl *testLogger) Log(level LogLevel, text string, args ...interface{}) {
	if level < tl.level {
		return
	}

	buf := &bytes.Buffer{}
	buf.WriteString(text)
	writeArgs(buf, args)
	tl.t.Logf("%s", strings.TrimSpace(buf.String()))
}
