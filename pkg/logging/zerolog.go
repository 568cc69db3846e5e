/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logging

import (
	"fmt"

	"github.com/rs/zerolog"
)

type zerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger adapts a zerolog.Logger. Key/value pairs become event fields,
// filtering by level is left to the zerolog logger.
func NewZerologLogger(logger zerolog.Logger) Logger {
	return &zerologLogger{
		logger: logger,
	}
}

func (zl *zerologLogger) Log(level LogLevel, text string, args ...interface{}) {
	var event *zerolog.Event
	switch level {
	case LevelDebug:
		event = zl.logger.Debug()
	case LevelInfo:
		event = zl.logger.Info()
	case LevelWarn:
		event = zl.logger.Warn()
	default:
		event = zl.logger.Error()
	}

	for i := 0; i < len(args); i += 2 {
		key := fmt.Sprint(args[i])
		if i+1 >= len(args) {
			event = event.Str(key, "%MISSING%")
			break
		}
		switch value := args[i+1].(type) {
		case []byte:
			event = event.Hex(key, value)
		case string:
			event = event.Str(key, value)
		case int:
			event = event.Int(key, value)
		default:
			event = event.Interface(key, value)
		}
	}

	event.Msg(text)
}
