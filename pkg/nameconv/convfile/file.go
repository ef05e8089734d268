// Package convfile reads naming conventions from YAML definition files.
//
// A file declares the top-level rules in match priority order. Each rule is
// exactly one of a single regular expression (pattern), an ordered list of
// alternatives (patterns), or a nested convention (rules) with its own
// separator.
package convfile

import "github.com/colorium/nameconv/pkg/nameconv"

// File is the structure of a YAML convention file.
//
// Example YAML file:
//
//	version: 1
//	separator: "_"
//	rules:
//	  - name: type
//	    pattern: '^[a-z]{3}$'
//	  - name: variant
//	    optional: true
//	    patterns: ['^[0-9]{2}$', '^[a-zA-Z]+$']
//	  - name: scene_shot
//	    optional: true
//	    separator: "-"
//	    rules:
//	      - name: scene
//	        pattern: '^[0-9]{3}$'
type File struct {
	// Version is the file format version. Only version 1 is supported.
	Version int `yaml:"version"`

	// Separator splits names at the top level. Defaults to "_".
	Separator string `yaml:"separator,omitempty"`

	// Rules are the top-level rules in declaration order.
	Rules []RuleDef `yaml:"rules"`
}

// RuleDef is a single rule definition.
type RuleDef struct {
	// Name identifies the rule. Names must be unique among siblings.
	Name string `yaml:"name"`

	// Optional rules may be left unsatisfied.
	Optional bool `yaml:"optional,omitempty"`

	// Pattern declares a pattern rule.
	Pattern string `yaml:"pattern,omitempty"`

	// Patterns declares an alternative rule; the first match wins.
	Patterns []string `yaml:"patterns,omitempty"`

	// Separator splits tokens of a nested rule. Defaults to "-".
	Separator string `yaml:"separator,omitempty"`

	// Rules declares a composed rule with a nested convention.
	Rules []RuleDef `yaml:"rules,omitempty"`
}

// Kind reports which kind of rule d declares. It is only meaningful for a
// definition that passed Validate.
func (d RuleDef) Kind() nameconv.Kind {
	switch {
	case len(d.Rules) > 0:
		return nameconv.KindComposed
	case len(d.Patterns) > 0:
		return nameconv.KindAlternative
	default:
		return nameconv.KindPattern
	}
}

func (d RuleDef) presence() nameconv.Presence {
	if d.Optional {
		return nameconv.Optional
	}
	return nameconv.Mandatory
}

// kinds counts the rule kinds d declares.
func (d RuleDef) kinds() int {
	n := 0
	if d.Pattern != "" {
		n++
	}
	if len(d.Patterns) > 0 {
		n++
	}
	if len(d.Rules) > 0 {
		n++
	}
	return n
}
