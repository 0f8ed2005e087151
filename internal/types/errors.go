// README: Validation error shared by the pure calculators and the services.
package types

import (
	"errors"
	"fmt"
)

// ValidationError names the offending field and the violated constraint.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	switch {
	case e.Field != "" && e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Field != "":
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func Invalid(field, msg string) error {
	return ValidationError{Field: field, Msg: msg}
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}
