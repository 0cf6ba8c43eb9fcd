// Package navigation implements the wizard's step state machine.
package navigation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOutOfRange is returned when a transition would leave 1..TotalSteps. The state is unchanged.
	ErrOutOfRange = errors.New("step out of range")
	// ErrInvalidDirection is returned for a direction other than +1 or -1.
	ErrInvalidDirection = errors.New("direction must be +1 or -1")
)

// RequiredFieldsNotice is the blocking notice shown when step 1 is incomplete.
const RequiredFieldsNotice = "Please fill out your Name and Professional Summary before proceeding."

// ValidationError reports a rejected forward transition. Notice is the message the
// user must acknowledge; Missing lists the empty required fields.
type ValidationError struct {
	Notice  string
	Missing []string
	Cause   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: missing %s", strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
