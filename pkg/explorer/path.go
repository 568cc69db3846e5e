/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package explorer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var workingDir, _ = os.Getwd()

// Section identifies one branch point of a body. Two branch points with the same
// label at different call sites are different sections.
type Section struct {
	Label string
	File  string
	Line  int
}

// String renders the section the way it appears in failure reports.
func (s Section) String() string {
	return fmt.Sprintf("%q at %s:%d", s.Label, displayPath(s.File), s.Line)
}

// displayPath shortens file to its path relative to the working directory, as
// go test prints locations. Files outside of it keep their parent directory.
func displayPath(file string) string {
	rel := filepath.Clean(file)
	if filepath.IsAbs(rel) && workingDir != "" {
		if r, err := filepath.Rel(workingDir, rel); err == nil {
			rel = r
		}
	}

	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Join(filepath.Base(filepath.Dir(file)), filepath.Base(file))
	}
	return rel
}

// Entry is the decision recorded for one section of a path.
type Entry struct {
	// Enter reports whether the section runs on the pass replaying the path.
	Enter bool

	// Rank orders active sections in failure reports. Sections discovered together
	// share the rank, which is the number of sections active when they were found.
	Rank int
}

// Path is one combination of decisions. Sections missing from the path have not
// been discovered yet and are not entered.
type Path map[Section]Entry

// Clone returns a copy of p which may be extended without affecting p.
func (p Path) Clone() Path {
	c := make(Path, len(p)+1)
	for section, entry := range p {
		c[section] = entry
	}
	return c
}

// ActiveCount returns the number of sections entered on this path.
func (p Path) ActiveCount() int {
	count := 0
	for _, entry := range p {
		if entry.Enter {
			count++
		}
	}
	return count
}

// Active returns the entered sections ordered by rank, outermost first.
func (p Path) Active() []Section {
	type ranked struct {
		section Section
		rank    int
	}

	active := make([]ranked, 0, len(p))
	for section, entry := range p {
		if entry.Enter {
			active = append(active, ranked{section: section, rank: entry.Rank})
		}
	}

	// Ranks of active sections are unique, the remaining keys only keep the
	// order stable should that ever change.
	sort.Slice(active, func(i, j int) bool {
		a, b := active[i], active[j]
		switch {
		case a.rank != b.rank:
			return a.rank < b.rank
		case a.section.File != b.section.File:
			return a.section.File < b.section.File
		case a.section.Line != b.section.Line:
			return a.section.Line < b.section.Line
		default:
			return a.section.Label < b.section.Label
		}
	})

	result := make([]Section, len(active))
	for i, r := range active {
		result[i] = r.section
	}
	return result
}

// Labels returns the labels of sections, in order.
func Labels(sections []Section) []string {
	labels := make([]string, len(sections))
	for i, s := range sections {
		labels[i] = s.Label
	}
	return labels
}
