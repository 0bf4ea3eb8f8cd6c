package wpconfig

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingRequiredVariable matches every *MissingRequiredVariableError.
	ErrMissingRequiredVariable = errors.New("missing required variable")
	// ErrInvalidValue is only produced in strict mode.
	ErrInvalidValue = errors.New("invalid value")
)

type MissingRequiredVariableError struct {
	Key string
}

func (e *MissingRequiredVariableError) Error() string {
	return fmt.Sprintf("required environment variable %s is not set", e.Key)
}

func (e *MissingRequiredVariableError) Is(target error) bool {
	return target == ErrMissingRequiredVariable
}

// MissingVariablesError is returned by Build when more than one required
// variable is absent. errors.As against *MissingRequiredVariableError yields
// the first one in policy order.
type MissingVariablesError struct {
	Missing []*MissingRequiredVariableError
}

func (e *MissingVariablesError) Error() string {
	keys := make([]string, 0, len(e.Missing))
	for _, m := range e.Missing {
		keys = append(keys, m.Key)
	}
	return fmt.Sprintf("required environment variables are not set: %s", strings.Join(keys, ", "))
}

func (e *MissingVariablesError) Unwrap() []error {
	errs := make([]error, 0, len(e.Missing))
	for _, m := range e.Missing {
		errs = append(errs, m)
	}
	return errs
}

// Keys lists the missing variable names in policy order.
func (e *MissingVariablesError) Keys() []string {
	keys := make([]string, 0, len(e.Missing))
	for _, m := range e.Missing {
		keys = append(keys, m.Key)
	}
	return keys
}

type InvalidValueError struct {
	Key  string
	Kind Kind
	Raw  string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("environment variable %s: %q is not a valid %s", e.Key, e.Raw, e.Kind)
}

func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}
