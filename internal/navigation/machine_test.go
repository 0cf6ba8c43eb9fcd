package navigation

import (
	"testing"

	"github.com/jonathan/resuexpress/internal/document"
	"github.com/jonathan/resuexpress/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPersister struct{ calls int }

func (p *countingPersister) PersistNow() { p.calls++ }

func TestView_Progress(t *testing.T) {
	want := []float64{20, 40, 60, 80, 100}
	for step := 1; step <= types.TotalSteps; step++ {
		assert.Equal(t, want[step-1], View(step).Progress, "step %d", step)
	}
}

func TestView_Controls(t *testing.T) {
	tests := []struct {
		step        int
		title       string
		showPrev    bool
		label       string
		primary     bool
		exportAvail bool
	}{
		{1, "Personal Details", false, LabelNextStep, true, false},
		{2, "Work Experience", true, LabelNextStep, true, false},
		{3, "Education", true, LabelNextStep, true, false},
		{4, "Skills & Projects", true, LabelSelectTemplate, true, false},
		{5, "Select Template & Finalize", true, "", false, true},
	}
	for _, tt := range tests {
		v := View(tt.step)
		assert.Equal(t, tt.title, v.Title)
		assert.Equal(t, tt.showPrev, v.ShowPrevious, "step %d", tt.step)
		assert.Equal(t, tt.label, v.PrimaryLabel, "step %d", tt.step)
		assert.Equal(t, tt.primary, v.PrimaryAvailable, "step %d", tt.step)
		assert.Equal(t, tt.exportAvail, v.ExportAvailable, "step %d", tt.step)
	}
}

func TestAdvance_Step1RequiresNameAndSummary(t *testing.T) {
	tests := []struct {
		name, summary string
		missing       []string
	}{
		{"", "", []string{"name", "summary"}},
		{"Ada", "", []string{"summary"}},
		{"", "Engineer", []string{"name"}},
	}
	for _, tt := range tests {
		doc := document.Default()
		doc.Name, doc.Summary = tt.name, tt.summary
		p := &countingPersister{}
		m := New(doc, p)

		view, err := m.Advance(1)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, RequiredFieldsNotice, verr.Notice)
		assert.Equal(t, tt.missing, verr.Missing)
		assert.Equal(t, 1, doc.CurrentStep)
		assert.Equal(t, 1, view.Step)
		assert.Zero(t, p.calls)
	}
}

func TestAdvance_Step1PassesWithBothFields(t *testing.T) {
	doc := document.Default()
	doc.Name, doc.Summary = "Ada", "Engineer"
	p := &countingPersister{}
	m := New(doc, p)

	view, err := m.Advance(1)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.CurrentStep)
	assert.Equal(t, 2, view.Step)
	assert.Equal(t, 1, p.calls, "step changes persist immediately")
}

func TestAdvance_LaterStepsNotGated(t *testing.T) {
	doc := document.Default()
	doc.CurrentStep = 2
	m := New(doc, nil)

	_, err := m.Advance(1)
	require.NoError(t, err)
	assert.Equal(t, 3, doc.CurrentStep)
}

func TestAdvance_BackwardFromStep1Rejected(t *testing.T) {
	doc := document.Default()
	m := New(doc, nil)

	_, err := m.Advance(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, 1, doc.CurrentStep)
}

func TestAdvance_InvalidDirection(t *testing.T) {
	doc := document.Default()
	m := New(doc, nil)
	for _, d := range []int{0, 2, -3} {
		_, err := m.Advance(d)
		assert.ErrorIs(t, err, ErrInvalidDirection)
	}
	assert.Equal(t, 1, doc.CurrentStep)
}

func TestAdvance_NeverLeavesRange(t *testing.T) {
	for start := 1; start <= types.TotalSteps; start++ {
		for _, dir := range []int{1, -1} {
			doc := document.Default()
			doc.Name, doc.Summary = "Ada", "Engineer"
			doc.CurrentStep = start
			m := New(doc, nil)

			for i := 0; i < 2*types.TotalSteps; i++ {
				_, _ = m.Advance(dir)
				assert.GreaterOrEqual(t, doc.CurrentStep, 1)
				assert.LessOrEqual(t, doc.CurrentStep, types.TotalSteps)
			}
		}
	}
}

func TestAdvance_ForwardFromLastStepRejected(t *testing.T) {
	doc := document.Default()
	doc.CurrentStep = types.TotalSteps
	p := &countingPersister{}
	m := New(doc, p)

	_, err := m.Advance(1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, types.TotalSteps, doc.CurrentStep)
	assert.Zero(t, p.calls)
}
