package check

import (
	"errors"
	"strings"

	"digital.vasic.fluent/pkg/compare"
	"digital.vasic.fluent/pkg/message"
)

// ErrMisuse is the hard fault raised when the engine itself is
// driven incorrectly, e.g. a context evaluated twice. It is
// panicked wrapped with details; test it with errors.Is.
var ErrMisuse = errors.New("check engine misuse")

// Failure is a failed check. It is an error so it can travel
// through panics, captures and the assertion engine.
type Failure struct {
	// Message is the rendered failure text.
	Message string
	// Description is the structured input of the message.
	Description message.Description
	// Result holds the structural differences, if the check
	// compared values.
	Result compare.Result
}

// Error returns the rendered message.
func (f *Failure) Error() string {
	return f.Message
}

// Lines returns the message split into lines.
func (f *Failure) Lines() []string {
	return strings.Split(f.Message, "\n")
}
