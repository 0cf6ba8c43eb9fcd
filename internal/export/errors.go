// Package export assembles standalone, printable résumé documents from rendered
// template markup.
package export

import (
	"errors"
	"fmt"
)

// ErrEmptyMarkup is returned when there is no rendered markup to export.
var ErrEmptyMarkup = errors.New("no rendered markup to export")

// AssembleError represents a failure building the standalone document
type AssembleError struct {
	Message string
	Cause   error
}

func (e *AssembleError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("export error: %s", e.Message)
}

func (e *AssembleError) Unwrap() error {
	return e.Cause
}

// PDFError represents a failure printing an artifact through headless Chrome
type PDFError struct {
	Message string
	Cause   error
}

func (e *PDFError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pdf error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("pdf error: %s", e.Message)
}

func (e *PDFError) Unwrap() error {
	return e.Cause
}

// StylesheetError represents a failure loading or watching the stylesheet file
type StylesheetError struct {
	Path    string
	Message string
	Cause   error
}

func (e *StylesheetError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("stylesheet error: %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("stylesheet error: %s: %s", e.Path, e.Message)
}

func (e *StylesheetError) Unwrap() error {
	return e.Cause
}
