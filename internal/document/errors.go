// Package document owns the résumé document model: its defaults, load-time repair
// and the setters every editing operation funnels through.
package document

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSection is returned for a section name outside experience/education/projects.
	ErrUnknownSection = errors.New("unknown repeatable section")
	// ErrNotScalar is returned when a scalar write targets a slot with its own operation.
	ErrNotScalar = errors.New("field is not a scalar slot")
)

// LoadError reports a persisted blob that could not be used. The caller falls back to
// the defaults it is returned alongside.
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// PreconditionError reports an operation invoked with arguments the editor never
// produces, such as a record index outside the current section bounds.
type PreconditionError struct {
	Operation string
	Message   string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition violated in %s: %s", e.Operation, e.Message)
}

// Precondition builds a PreconditionError. Debug builds panic with it instead.
func Precondition(op, format string, args ...any) error {
	err := &PreconditionError{Operation: op, Message: fmt.Sprintf(format, args...)}
	if debugAssertions {
		panic(err)
	}
	return err
}
