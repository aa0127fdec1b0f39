package suite

import (
	"fmt"
	"sort"

	"digital.vasic.fluent/pkg/assertion"
)

// ValidationError represents a problem found in a suite file.
type ValidationError struct {
	Field   string
	Message string
	Index   int // -1 if not applicable
}

func (e ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("cases[%d].%s: %s", e.Index, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// TypeRegistry reports whether an assertion type is known.
// *assertion.DefaultEngine satisfies it.
type TypeRegistry interface {
	HasEvaluator(assertionType string) bool
}

// ValidateFile checks a suite file and returns every problem
// found. When types is nil assertion types are not checked.
// Dependencies on cases of other files are not reported.
func ValidateFile(path string, types TypeRegistry) []ValidationError {
	file, err := readFile(path)
	if err != nil {
		return []ValidationError{{Field: "file", Message: err.Error(), Index: -1}}
	}

	var errors []ValidationError
	if file.Version == "" {
		errors = append(errors, ValidationError{
			Field: "version", Message: "version is required", Index: -1,
		})
	}

	ids := make(map[string]bool)
	for i := range file.Cases {
		c := &file.Cases[i]
		switch {
		case c.ID == "":
			errors = append(errors, ValidationError{
				Field: "id", Message: "case ID is required", Index: i,
			})
		case ids[c.ID]:
			errors = append(errors, ValidationError{
				Field: "id", Message: fmt.Sprintf("duplicate ID: %s", c.ID), Index: i,
			})
		default:
			ids[c.ID] = true
		}

		for _, dep := range c.DependsOn {
			if dep == c.ID {
				errors = append(errors, ValidationError{
					Field: "depends_on", Message: "case depends on itself", Index: i,
				})
			}
		}

		defs, err := c.Definitions()
		if err != nil {
			errors = append(errors, ValidationError{
				Field: "expect", Message: err.Error(), Index: i,
			})
			continue
		}
		errors = append(errors, validateDefinitions(defs, types, i)...)
	}

	return errors
}

func validateDefinitions(
	defs []assertion.Definition,
	types TypeRegistry,
	index int,
) []ValidationError {
	var errors []ValidationError
	unknown := map[string]bool{}
	for _, d := range defs {
		switch {
		case d.Type == "":
			errors = append(errors, ValidationError{
				Field: "checks", Message: "check type is required", Index: index,
			})
		case d.Target == "":
			errors = append(errors, ValidationError{
				Field: "checks", Message: fmt.Sprintf("check %s has no target", d.Type), Index: index,
			})
		case types != nil && !types.HasEvaluator(d.Type):
			unknown[d.Type] = true
		}
	}

	names := make([]string, 0, len(unknown))
	for name := range unknown {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		errors = append(errors, ValidationError{
			Field: "checks", Message: fmt.Sprintf("unknown check type: %s", name), Index: index,
		})
	}
	return errors
}
