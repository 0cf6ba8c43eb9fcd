// Package rendering maps the résumé document to HTML through a registry of
// interchangeable templates.
package rendering

import (
	"errors"
	"fmt"
)

// ErrNoTemplates is returned when a registry is built without any template.
var ErrNoTemplates = errors.New("template registry must contain at least one template")

// TemplateError represents an error parsing an HTML template
type TemplateError struct {
	Key     string
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %s: %v", e.Key, e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s: %s", e.Key, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a failure executing a template against a document
type RenderError struct {
	Key     string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %s: %v", e.Key, e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s: %s", e.Key, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
