package assertion

import (
	"errors"

	"digital.vasic.fluent/pkg/check"
)

// ErrInvalidDefinition is raised by evaluators given a definition
// they cannot run, e.g. "size" without a numeric value.
var ErrInvalidDefinition = errors.New("invalid assertion definition")

// Evaluator runs one assertion type as a check on k, which is
// already labelled with the target and negated when the
// definition asks for it. Failing checks raise through k's
// checker; the engine captures them.
type Evaluator func(k *check.Check[any], def Definition)
