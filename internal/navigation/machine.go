package navigation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resuexpress/internal/types"
)

// StepTitles holds the display title of each step, indexed by step-1.
var StepTitles = [types.TotalSteps]string{
	"Personal Details",
	"Work Experience",
	"Education",
	"Skills & Projects",
	"Select Template & Finalize",
}

// Primary action labels.
const (
	LabelNextStep       = "Next Step"
	LabelSelectTemplate = "Select Template"
)

// StepView is everything the UI derives from the current step.
type StepView struct {
	Step             int     `json:"step"`
	TotalSteps       int     `json:"totalSteps"`
	Title            string  `json:"title"`
	Progress         float64 `json:"progress"`
	ShowPrevious     bool    `json:"showPrevious"`
	PrimaryLabel     string  `json:"primaryLabel,omitempty"`
	PrimaryAvailable bool    `json:"primaryAvailable"`
	ExportAvailable  bool    `json:"exportAvailable"`
}

// View derives the StepView for step. step must already be within range.
func View(step int) StepView {
	v := StepView{
		Step:         step,
		TotalSteps:   types.TotalSteps,
		Title:        StepTitles[step-1],
		Progress:     Progress(step),
		ShowPrevious: step != 1,
	}
	switch {
	case step < types.TotalSteps-1:
		v.PrimaryLabel = LabelNextStep
		v.PrimaryAvailable = true
	case step == types.TotalSteps-1:
		v.PrimaryLabel = LabelSelectTemplate
		v.PrimaryAvailable = true
	default:
		v.ExportAvailable = true
	}
	return v
}

// Progress is the linear completion percentage for step.
func Progress(step int) float64 {
	return float64(step*100) / float64(types.TotalSteps)
}

// Persister writes the document through immediately, bypassing the debounce.
type Persister interface {
	PersistNow()
}

// Machine moves the document between steps.
type Machine struct {
	doc      *types.ResumeDocument
	persist  Persister
	validate *validator.Validate
}

// New creates a machine driving doc.CurrentStep. persist may be nil.
func New(doc *types.ResumeDocument, persist Persister) *Machine {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Machine{doc: doc, persist: persist, validate: v}
}

// Current returns the view of the current step.
func (m *Machine) Current() StepView {
	return View(m.doc.CurrentStep)
}

// Advance moves one step in direction. Rejected transitions leave the document untouched.
func (m *Machine) Advance(direction int) (StepView, error) {
	if direction != 1 && direction != -1 {
		return m.Current(), ErrInvalidDirection
	}

	next := m.doc.CurrentStep + direction
	if next < 1 || next > types.TotalSteps {
		return m.Current(), ErrOutOfRange
	}

	if direction > 0 && m.doc.CurrentStep == 1 {
		if err := m.checkPersonalDetails(); err != nil {
			return m.Current(), err
		}
	}

	m.doc.CurrentStep = next
	if m.persist != nil {
		m.persist.PersistNow()
	}
	return m.Current(), nil
}

// checkPersonalDetails gates leaving step 1 on a non-empty name and summary.
func (m *Machine) checkPersonalDetails() error {
	err := m.validate.StructPartial(m.doc, "Name", "Summary")
	if err == nil {
		return nil
	}

	verr := &ValidationError{Notice: RequiredFieldsNotice, Cause: err}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			verr.Missing = append(verr.Missing, fe.Field())
		}
	}
	return verr
}
