/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logging_test

import (
	"bytes"
	"fmt"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/rs/zerolog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hyperledger-labs/sections/pkg/logging"
)

type recordingT struct {
	lines []string
}

func (r *recordingT) Logf(format string, args ...interface{}) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

var _ = Describe("StreamLogger", func() {
	var (
		output *bytes.Buffer
		logger logging.Logger
	)

	BeforeEach(func() {
		output = &bytes.Buffer{}
		logger = logging.NewStreamLogger(output, logging.LevelInfo)
	})

	It("writes key/value pairs after the message", func() {
		logger.Log(logging.LevelInfo, "queued combinations", "count", 2, "digest", []byte{0xab, 0x01})
		Expect(output.String()).To(Equal("queued combinations count=2 digest=ab01\n"))
	})

	It("drops messages below its level", func() {
		logger.Log(logging.LevelDebug, "discovered section", "label", "push")
		Expect(output.Len()).To(Equal(0))
	})

	It("marks a key without value", func() {
		logger.Log(logging.LevelWarn, "pass failed", "pass")
		Expect(output.String()).To(Equal("pass failed pass=%MISSING%\n"))
	})
})

var _ = Describe("Decorate", func() {
	It("prefixes the message and prepends the arguments", func() {
		output := &bytes.Buffer{}
		logger := logging.Decorate(logging.NewStreamLogger(output, logging.LevelDebug), "explorer: ", "test", "TestVector")
		logger.Log(logging.LevelDebug, "starting pass", "pass", 1)
		Expect(output.String()).To(Equal("explorer: starting pass test=TestVector pass=1\n"))
	})

	It("does not share argument storage between calls", func() {
		output := &bytes.Buffer{}
		logger := logging.Decorate(logging.NewStreamLogger(output, logging.LevelDebug), "", "a", 1)
		logger.Log(logging.LevelDebug, "first", "b", 2)
		logger.Log(logging.LevelDebug, "second", "c", 3)
		Expect(output.String()).To(Equal("first a=1 b=2\nsecond a=1 c=3\n"))
	})
})

var _ = Describe("TestLogger", func() {
	It("forwards to Logf", func() {
		t := &recordingT{}
		logger := logging.NewTestLogger(t, logging.LevelInfo)
		logger.Log(logging.LevelDebug, "hidden")
		logger.Log(logging.LevelInfo, "exploration complete", "passes", 7)
		Expect(t.lines).To(Equal([]string{"exploration complete passes=7"}))
	})
})

var _ = Describe("ParseLevel", func() {
	It("accepts the command line names", func() {
		for _, level := range []logging.LogLevel{logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError} {
			parsed, ok := logging.ParseLevel(level.String())
			Expect(ok).To(BeTrue())
			Expect(parsed).To(Equal(level))
		}
	})

	It("rejects unknown names", func() {
		_, ok := logging.ParseLevel("trace")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("ZerologLogger", func() {
	It("emits one JSON event per message", func() {
		output := &bytes.Buffer{}
		logger := logging.NewZerologLogger(zerolog.New(output).Level(zerolog.DebugLevel))
		logger.Log(logging.LevelWarn, "pass failed", "pass", 3, "combination", "push, reverse")
		Expect(output.String()).To(MatchJSON(`{"level":"warn","pass":3,"combination":"push, reverse","message":"pass failed"}`))
	})

	It("leaves filtering to zerolog", func() {
		output := &bytes.Buffer{}
		logger := logging.NewZerologLogger(zerolog.New(output).Level(zerolog.InfoLevel))
		logger.Log(logging.LevelDebug, "discovered section")
		Expect(output.Len()).To(Equal(0))
	})
})

var _ = Describe("ZapLogger", func() {
	It("turns key/value pairs into fields", func() {
		core, logs := observer.New(zapcore.DebugLevel)
		logger := logging.NewZapLogger(zap.New(core))
		logger.Log(logging.LevelInfo, "exploration complete", "test", "TestVector", "odd")

		entries := logs.All()
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].Level).To(Equal(zapcore.InfoLevel))
		Expect(entries[0].Message).To(Equal("exploration complete"))
		Expect(entries[0].ContextMap()).To(Equal(map[string]interface{}{
			"test": "TestVector",
			"odd":  "%MISSING%",
		}))
	})
})
