/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logging

import (
	"bytes"
	"fmt"
	"io"
)

// Logger is minimal logging interface designed to be easily adaptable to any
// logging library.
type Logger interface {
	// Log is invoked with the log level, the log message, and key/value pairs
	// of any relevant log details. The keys are always strings, while the
	// values are unspecified.
	Log(level LogLevel, text string, args ...interface{})
}

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel maps the textual level names accepted on command lines to a LogLevel.
func ParseLevel(name string) (LogLevel, bool) {
	switch name {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn":
		return LevelWarn, true
	case "error":
		return LevelError, true
	}
	return LevelInfo, false
}

// streamLogger writes one line per message to an io.Writer.
type streamLogger struct {
	level  LogLevel
	output io.Writer
}

// NewStreamLogger returns a Logger writing all messages of the given level and above
// to output, one line per message.
func NewStreamLogger(output io.Writer, level LogLevel) Logger {
	return &streamLogger{
		level:  level,
		output: output,
	}
}

// Log formats the message with its key/value pairs and writes it using a single
// Write call, so that lines of concurrent loggers sharing a writer do not interleave.
func (l *streamLogger) Log(level LogLevel, text string, args ...interface{}) {
	if level < l.level {
		return
	}

	buf := &bytes.Buffer{}
	buf.WriteString(text)
	writeArgs(buf, args)
	buf.WriteByte('\n')
	l.output.Write(buf.Bytes())
}

func writeArgs(buf *bytes.Buffer, args []interface{}) {
	for i := 0; i < len(args); i++ {
		if i+1 < len(args) {
			switch args[i+1].(type) {
			case []byte:
				// Print byte arrays in base 16 encoding.
				fmt.Fprintf(buf, " %s=%x", args[i], args[i+1])
			default:
				// Print all other types using the Go default format.
				fmt.Fprintf(buf, " %s=%v", args[i], args[i+1])
			}
			i++
		} else {
			fmt.Fprintf(buf, " %s=%%MISSING%%", args[i])
		}
	}
}

// The nil logger drops all messages.
type nilLogger struct{}

// The Log method of the nilLogger does nothing, effectively dropping every log message.
func (nl *nilLogger) Log(level LogLevel, text string, args ...interface{}) {
	// Do nothing.
}

// NilLogger drops all log messages.
var NilLogger Logger = &nilLogger{}
