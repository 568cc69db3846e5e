/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package explorer

import (
	"bytes"
	"fmt"
	"io"
)

const reportHeader = "---- the failure was inside these sections ----\n"

// Report lists the sections that were active when a pass failed, outermost first.
type Report struct {
	Sections []Section
}

// Empty reports whether the failure happened outside of every section.
func (r *Report) Empty() bool {
	return r == nil || len(r.Sections) == 0
}

func (r *Report) String() string {
	if r.Empty() {
		return ""
	}

	buf := &bytes.Buffer{}
	buf.WriteString(reportHeader)
	for i, s := range r.Sections {
		fmt.Fprintf(buf, "%3d) %s\n", i, s)
	}
	return buf.String()
}

// WriteTo writes the report with a single Write call so that it does not
// interleave with other output on the same stream. Empty reports write nothing.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	if r.Empty() {
		return 0, nil
	}
	n, err := io.WriteString(w, r.String())
	return int64(n), err
}
