/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package tree describes section-bearing bodies as YAML documents, so that the
// combinations a body produces can be explored without writing Go code.
//
//	name: vector
//	helpers:
//	  check_123:
//	    - label: reverse
//	    - label: pop+remove+insert+push
//	sections:
//	  - label: push
//	    sections:
//	      - use: check_123
//	  - label: insert
//	    sections:
//	      - use: check_123
//
// A node with a label is a section; its line in the document is part of its
// identity. A node with use splices in the named helper, whose sections keep
// their identity wherever they are used, like sections inside a helper
// function. A section marked fail: true aborts the pass entering it.
package tree

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/hyperledger-labs/sections/pkg/explorer"
	"github.com/hyperledger-labs/sections/pkg/sections"
)

// ErrInjectedFailure is returned by Walk for passes entering a section marked fail.
var ErrInjectedFailure = errors.New("injected failure")

type Tree struct {
	Name     string
	File     string
	Helpers  map[string][]*Node
	Sections []*Node
}

type Node struct {
	Label    string
	Use      string
	Fail     bool
	Sections []*Node
	Line     int
}

// rawNode has the fields of a Node as they appear in YAML. It does not
// implement yaml.Unmarshaler, so decoding into it does not recurse.
type rawNode struct {
	Label    string  `yaml:"label"`
	Use      string  `yaml:"use"`
	Fail     bool    `yaml:"fail"`
	Sections []*Node `yaml:"sections"`
}

func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	raw := rawNode{}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	*n = Node{
		Label:    raw.Label,
		Use:      raw.Use,
		Fail:     raw.Fail,
		Sections: raw.Sections,
		Line:     value.Line,
	}

	return nil
}

type document struct {
	Name     string             `yaml:"name"`
	Helpers  map[string][]*Node `yaml:"helpers"`
	Sections []*Node            `yaml:"sections"`
}

// Load parses and validates a tree. file names the document in section
// identities and error messages.
func Load(source io.Reader, file string) (*Tree, error) {
	doc := document{}
	if err := yaml.NewDecoder(source).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errors.Errorf("%s: empty document", file)
		}
		return nil, errors.WithMessagef(err, "could not parse %s", file)
	}

	t := &Tree{
		Name:     doc.Name,
		File:     file,
		Helpers:  doc.Helpers,
		Sections: doc.Sections,
	}
	if t.Helpers == nil {
		t.Helpers = map[string][]*Node{}
	}

	if err := t.validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// LoadFile loads the tree stored at path.
func LoadFile(path string) (*Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithMessage(err, "could not open tree")
	}
	defer f.Close()

	return Load(f, path)
}

func (t *Tree) validate() error {
	if len(t.Sections) == 0 {
		return errors.Errorf("%s: tree has no sections", t.File)
	}

	// Helpers being expanded, to detect helpers that use themselves.
	expanding := map[string]bool{}
	validated := map[string]bool{}

	var check func(nodes []*Node) error
	check = func(nodes []*Node) error {
		for _, n := range nodes {
			if n == nil {
				return errors.Errorf("%s: empty node", t.File)
			}

			switch {
			case n.Label != "" && n.Use != "":
				return errors.Errorf("%s:%d: node has both label %q and use %q", t.File, n.Line, n.Label, n.Use)
			case n.Label == "" && n.Use == "":
				return errors.Errorf("%s:%d: node needs a label or a use", t.File, n.Line)
			case n.Use != "":
				if n.Fail || len(n.Sections) > 0 {
					return errors.Errorf("%s:%d: use %q cannot have fail or sections", t.File, n.Line, n.Use)
				}
				helper, ok := t.Helpers[n.Use]
				if !ok {
					return errors.Errorf("%s:%d: unknown helper %q", t.File, n.Line, n.Use)
				}
				if expanding[n.Use] {
					return errors.Errorf("%s:%d: helper %q uses itself", t.File, n.Line, n.Use)
				}
				if validated[n.Use] {
					continue
				}
				expanding[n.Use] = true
				if err := check(helper); err != nil {
					return err
				}
				expanding[n.Use] = false
				validated[n.Use] = true
			default:
				if err := check(n.Sections); err != nil {
					return err
				}
			}
		}
		return nil
	}

	return check(t.Sections)
}

// Walk is the body of the tree: it enters the sections of the tree the current
// pass selects and fails the pass if one of them is marked fail.
func (t *Tree) Walk(s *sections.S) error {
	return t.walk(s, t.Sections)
}

func (t *Tree) walk(s *sections.S, nodes []*Node) error {
	for _, n := range nodes {
		if n.Use != "" {
			if err := t.walk(s, t.Helpers[n.Use]); err != nil {
				return err
			}
			continue
		}

		if !s.Enter(t.section(n)) {
			continue
		}

		if n.Fail {
			return errors.WithMessagef(ErrInjectedFailure, "section %q", n.Label)
		}

		if err := t.walk(s, n.Sections); err != nil {
			return err
		}
	}

	return nil
}

func (t *Tree) section(n *Node) explorer.Section {
	return explorer.Section{
		Label: n.Label,
		File:  t.File,
		Line:  n.Line,
	}
}
