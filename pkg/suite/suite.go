// Package suite runs declarative check suites: files of named
// values and the checks they must satisfy. Suites are loaded into
// a Bank from YAML or JSON files, run case by case in dependency
// order through the assertion engine, and reported as JSON or
// Markdown.
package suite

import (
	"fmt"
	"sort"
	"time"

	"digital.vasic.fluent/pkg/assertion"
)

// Status constants for case outcomes.
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
	StatusError   = "error"
)

// File is the on-disk structure of a suite file.
type File struct {
	Version string `json:"version" yaml:"version"`
	Name    string `json:"name" yaml:"name"`

	// Values are shared by every case of the file. A case value
	// with the same name takes precedence.
	Values map[string]any `json:"values,omitempty" yaml:"values,omitempty"`

	Cases    []Case         `json:"cases" yaml:"cases"`
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Case is a named set of values and the checks they must pass.
type Case struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// DependsOn lists cases that must pass before this one runs.
	DependsOn []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`

	Values map[string]any `json:"values,omitempty" yaml:"values,omitempty"`

	// Checks are full assertion definitions.
	Checks []assertion.Definition `json:"checks,omitempty" yaml:"checks,omitempty"`

	// Expect maps a value name to compact assertions such as
	// "size:3" or "!null".
	Expect map[string][]string `json:"expect,omitempty" yaml:"expect,omitempty"`

	// Source is the file the case was loaded from.
	Source string `json:"-" yaml:"-"`
}

// Definitions returns the case's checks followed by its compact
// expectations, sorted by value name.
func (c *Case) Definitions() ([]assertion.Definition, error) {
	defs := make([]assertion.Definition, 0, len(c.Checks)+len(c.Expect))
	defs = append(defs, c.Checks...)

	targets := make([]string, 0, len(c.Expect))
	for target := range c.Expect {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	for _, target := range targets {
		for _, s := range c.Expect[target] {
			def, err := assertion.ParseDefinition(target, s)
			if err != nil {
				return nil, fmt.Errorf("case %s: %w", c.ID, err)
			}
			defs = append(defs, def)
		}
	}
	return defs, nil
}

// HasTag reports whether the case carries tag.
func (c *Case) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// CaseResult captures the outcome of running one case.
type CaseResult struct {
	CaseID     string             `json:"case_id"`
	CaseName   string             `json:"case_name"`
	Status     string             `json:"status"`
	StartTime  time.Time          `json:"start_time"`
	EndTime    time.Time          `json:"end_time"`
	Duration   time.Duration      `json:"duration"`
	Assertions []assertion.Result `json:"assertions"`
	Error      string             `json:"error,omitempty"`
}

// Passed returns the number of passed assertions.
func (r *CaseResult) Passed() int {
	n := 0
	for _, a := range r.Assertions {
		if a.Passed {
			n++
		}
	}
	return n
}
