/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/ttacon/chalk"

	"github.com/hyperledger-labs/sections/pkg/explorer"
)

var (
	boldGreen = chalk.Green.NewStyle().WithTextStyle(chalk.Bold)
	boldCyan  = chalk.Cyan.NewStyle().WithTextStyle(chalk.Bold)
	dim       = chalk.White.NewStyle().WithTextStyle(chalk.Dim)
)

// display prints the exploration, one line per pass.
type display struct {
	output  io.Writer
	noColor bool
}

func (d *display) style(style chalk.Style, text string) string {
	if d.noColor {
		return text
	}
	return style.Style(text)
}

func (d *display) pass(n int, active []explorer.Section) {
	combination := d.style(dim, "(no sections)")
	if len(active) > 0 {
		combination = d.style(boldCyan, strings.Join(explorer.Labels(active), ", "))
	}
	fmt.Fprintf(d.output, "%s %s\n", d.style(boldGreen, fmt.Sprintf("pass %d:", n)), combination)
}

func (d *display) summary(name string, passes int) {
	fmt.Fprintf(d.output, "explored %d combinations of %s\n", passes, name)
}
