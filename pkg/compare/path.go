package compare

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// StepKind identifies how a Step reaches a nested location.
type StepKind int

const (
	// StepField is a named struct field access.
	StepField StepKind = iota
	// StepIndex is a sequence index access. A single step may
	// hold several coordinates for nested fixed-size arrays.
	StepIndex
	// StepKey is a map key or set element access.
	StepKey
)

// Step is one access in a Path.
type Step struct {
	Kind    StepKind
	Name    string
	Indexes []int
	Key     any
}

// Path is an immutable access path from a comparison root to a
// nested location. Appending returns a new Path; the receiver is
// never modified, so a Path can be shared between sibling
// branches of a traversal.
type Path struct {
	steps []Step
}

// Root returns the empty path.
func Root() Path {
	return Path{}
}

// Steps returns a copy of the path steps.
func (p Path) Steps() []Step {
	out := make([]Step, len(p.steps))
	copy(out, p.steps)
	return out
}

// IsRoot reports whether the path has no steps.
func (p Path) IsRoot() bool {
	return len(p.steps) == 0
}

// Len returns the number of steps.
func (p Path) Len() int {
	return len(p.steps)
}

func (p Path) with(s Step) Path {
	steps := make([]Step, len(p.steps), len(p.steps)+1)
	copy(steps, p.steps)
	return Path{steps: append(steps, s)}
}

// Field appends a struct field access.
func (p Path) Field(name string) Path {
	return p.with(Step{Kind: StepField, Name: name})
}

// Index appends a sequence index access.
func (p Path) Index(i int) Path {
	return p.with(Step{Kind: StepIndex, Indexes: []int{i}})
}

// Dimension extends the trailing index step with another
// coordinate, so walking a [2][2]int renders as "[1,1]" rather
// than "[1][1]". When the path does not end with an index step
// it behaves like Index.
func (p Path) Dimension(i int) Path {
	n := len(p.steps)
	if n == 0 || p.steps[n-1].Kind != StepIndex {
		return p.Index(i)
	}
	steps := make([]Step, n)
	copy(steps, p.steps)
	last := steps[n-1]
	idx := make([]int, len(last.Indexes), len(last.Indexes)+1)
	copy(idx, last.Indexes)
	last.Indexes = append(idx, i)
	steps[n-1] = last
	return Path{steps: steps}
}

// Key appends a map key access.
func (p Path) Key(k any) Path {
	return p.with(Step{Kind: StepKey, Key: k})
}

// String renders the path, e.g. "foo.bar[2]", "Property[1,1]" or
// `Values["key1"]`. The root path renders as the empty string.
func (p Path) String() string {
	var b strings.Builder
	for i, s := range p.steps {
		switch s.Kind {
		case StepField:
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(s.Name)
		case StepIndex:
			b.WriteByte('[')
			for j, idx := range s.Indexes {
				if j > 0 {
					b.WriteByte(',')
				}
				b.WriteString(strconv.Itoa(idx))
			}
			b.WriteByte(']')
		case StepKey:
			b.WriteByte('[')
			b.WriteString(renderKey(s.Key))
			b.WriteByte(']')
		}
	}
	return b.String()
}

func renderKey(k any) string {
	switch v := k.(type) {
	case string:
		return strconv.Quote(v)
	case nil:
		return "<nil>"
	}
	rv := reflect.ValueOf(k)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Sprintf("%v", k)
	}
	target := pointee(rv)
	if !target.CanInterface() || target.Kind() == reflect.Ptr {
		return fmt.Sprintf("%v", k)
	}
	return "&" + renderKey(target.Interface())
}
