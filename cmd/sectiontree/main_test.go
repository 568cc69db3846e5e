/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"bytes"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/pkg/errors"

	"github.com/hyperledger-labs/sections/pkg/logging"
	"github.com/hyperledger-labs/sections/pkg/tree"
)

var _ = Describe("Parsing", func() {
	It("parses a fully populated command line", func() {
		args, err := parseArgs([]string{
			"--input", "testdata/vector.yaml",
			"--logLevel", "debug",
			"--logger", "zap",
			"--noColor",
			"--quiet",
			"--expect", "7",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(args.input).NotTo(BeNil())
		Expect(args.input.Close()).NotTo(HaveOccurred())
		Expect(args.logLevel).To(Equal(logging.LevelDebug))
		Expect(args.logger).To(Equal("zap"))
		Expect(args.noColor).To(BeTrue())
		Expect(args.quiet).To(BeTrue())
		Expect(args.expect).To(Equal(7))
	})

	It("defaults to warnings logged with zerolog", func() {
		args, err := parseArgs([]string{"--input", "testdata/vector.yaml"})
		Expect(err).NotTo(HaveOccurred())
		Expect(args.input.Close()).NotTo(HaveOccurred())
		Expect(args.logLevel).To(Equal(logging.LevelWarn))
		Expect(args.logger).To(Equal("zerolog"))
		Expect(args.expect).To(Equal(0))
	})

	When("the expected count is negative", func() {
		It("returns an error", func() {
			_, err := parseArgs([]string{"--input", "testdata/vector.yaml", "--expect=-1"})
			Expect(err).To(MatchError("cannot expect a negative number of combinations"))
		})
	})

	When("the log level is unknown", func() {
		It("returns an error", func() {
			_, err := parseArgs([]string{"--logLevel", "trace"})
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("Execution", func() {
	var (
		output    *bytes.Buffer
		errOutput *bytes.Buffer
	)

	BeforeEach(func() {
		output = &bytes.Buffer{}
		errOutput = &bytes.Buffer{}
	})

	execute := func(args ...string) error {
		a, err := parseArgs(append([]string{"--noColor"}, args...))
		Expect(err).NotTo(HaveOccurred())
		return a.execute(output, errOutput)
	}

	It("prints every combination of the tree", func() {
		err := execute("--input", "testdata/vector.yaml", "--expect", "7")
		Expect(err).NotTo(HaveOccurred())
		Expect(output.String()).To(Equal(
			"pass 1: (no sections)\n" +
				"pass 2: push\n" +
				"pass 3: insert\n" +
				"pass 4: push, reverse\n" +
				"pass 5: push, pop+remove+insert+push\n" +
				"pass 6: insert, reverse\n" +
				"pass 7: insert, pop+remove+insert+push\n" +
				"explored 7 combinations of vector\n",
		))
		Expect(errOutput.Len()).To(Equal(0))
	})

	It("only prints the summary when quiet", func() {
		err := execute("--input", "testdata/vector.yaml", "--quiet")
		Expect(err).NotTo(HaveOccurred())
		Expect(output.String()).To(Equal("explored 7 combinations of vector\n"))
	})

	It("fails when the count of combinations is unexpected", func() {
		err := execute("--input", "testdata/vector.yaml", "--quiet", "--expect", "4")
		Expect(err).To(MatchError("explored 7 combinations, expected 4"))
	})

	It("reports the failing combination", func() {
		err := execute("--input", "testdata/broken.yaml", "--logLevel", "error")
		Expect(errors.Cause(err)).To(Equal(tree.ErrInjectedFailure))
		Expect(output.String()).To(ContainSubstring("pass 5: push, pop+remove+insert+push\n"))
		Expect(output.String()).NotTo(ContainSubstring("pass 6"))
		Expect(output.String()).NotTo(ContainSubstring("explored"))
		Expect(errOutput.String()).To(Equal(
			"---- the failure was inside these sections ----\n" +
				"  0) \"push\" at testdata/broken.yaml:8\n" +
				"  1) \"pop+remove+insert+push\" at testdata/broken.yaml:5\n",
		))
	})

	It("logs the exploration with zap", func() {
		err := execute("--input", "testdata/vector.yaml", "--quiet", "--logger", "zap", "--logLevel", "info")
		Expect(err).NotTo(HaveOccurred())
		Expect(errOutput.String()).To(ContainSubstring("exploration complete"))
		Expect(errOutput.String()).To(ContainSubstring(`"passes": 7`))
	})

	It("logs the exploration with zerolog", func() {
		err := execute("--input", "testdata/vector.yaml", "--quiet", "--logLevel", "debug")
		Expect(err).NotTo(HaveOccurred())
		Expect(errOutput.String()).To(ContainSubstring("discovered section"))
		Expect(errOutput.String()).To(ContainSubstring("tree=vector"))
	})
})
