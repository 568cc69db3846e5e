/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package explorer

import (
	"io"

	"github.com/hyperledger-labs/sections/pkg/logging"
)

type Option interface{}

type loggerOpt struct {
	logger logging.Logger
}

// LoggerOpt sets the logger the explorer reports its progress to.
// By default nothing is logged.
func LoggerOpt(logger logging.Logger) Option {
	return loggerOpt{logger: logger}
}

type outputOpt struct {
	output io.Writer
}

// OutputOpt overrides where failure reports are written.
// The default output is os.Stderr.
func OutputOpt(output io.Writer) Option {
	return outputOpt{output: output}
}

// HasLogger reports whether opts contain a LoggerOpt. Drivers use it to decide
// whether to install a logger of their own.
func HasLogger(opts []Option) bool {
	for _, opt := range opts {
		if _, ok := opt.(loggerOpt); ok {
			return true
		}
	}
	return false
}
