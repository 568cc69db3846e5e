/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logging

import (
	"encoding/hex"
	"fmt"

	"go.uber.org/zap"
)

type zapLogger struct {
	logger *zap.Logger
}

// NewZapLogger adapts a *zap.Logger, turning key/value pairs into zap fields.
func NewZapLogger(logger *zap.Logger) Logger {
	return &zapLogger{
		logger: logger,
	}
}

func (zl *zapLogger) Log(level LogLevel, text string, args ...interface{}) {
	fields := make([]zap.Field, 0, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		key := fmt.Sprint(args[i])
		if i+1 >= len(args) {
			fields = append(fields, zap.String(key, "%MISSING%"))
			break
		}
		switch value := args[i+1].(type) {
		case []byte:
			fields = append(fields, zap.String(key, hex.EncodeToString(value)))
		default:
			fields = append(fields, zap.Any(key, value))
		}
	}

	switch level {
	case LevelDebug:
		zl.logger.Debug(text, fields...)
	case LevelInfo:
		zl.logger.Info(text, fields...)
	case LevelWarn:
		zl.logger.Warn(text, fields...)
	default:
		zl.logger.Error(text, fields...)
	}
}
