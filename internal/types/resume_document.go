// Package types provides type definitions for structured data used throughout the resuexpress system.
package types

// TotalSteps is the number of wizard steps.
const TotalSteps = 5

// DefaultTemplateKey is the template selected for a fresh document.
const DefaultTemplateKey = "template1"

// Section names a repeatable section of the document.
type Section string

// Repeatable sections, in the order they appear in the wizard.
const (
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionProjects   Section = "projects"
)

// Sections lists every repeatable section.
var Sections = []Section{SectionExperience, SectionEducation, SectionProjects}

// Valid reports whether s names a known repeatable section.
func (s Section) Valid() bool {
	switch s {
	case SectionExperience, SectionEducation, SectionProjects:
		return true
	}
	return false
}

// Scalar field names as they appear in the persisted document.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldLinkedIn = "linkedin"
	FieldSummary  = "summary"
	FieldSkills   = "skills"
)

// ScalarFields lists the canonical free-form text fields.
var ScalarFields = []string{FieldName, FieldEmail, FieldPhone, FieldLinkedIn, FieldSummary, FieldSkills}

// Record is one entry of a repeatable section. The schema is open: templates read
// the keys they know about (jobTitle, company, degree, ...) and ignore the rest.
type Record map[string]string

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ResumeDocument is the single root entity of the wizard, persisted wholesale.
type ResumeDocument struct {
	CurrentStep      int    `json:"currentStep"`
	SelectedTemplate string `json:"selectedTemplate"`

	Name     string `json:"name" validate:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	Summary  string `json:"summary" validate:"required"`
	Skills   string `json:"skills"`

	Experience []Record `json:"experience"`
	Education  []Record `json:"education"`
	Projects   []Record `json:"projects"`

	// Extra holds scalar fields set under non-canonical names during the session.
	// It is never persisted.
	Extra map[string]string `json:"-"`
}

// Records returns the record slice backing the given section.
func (d *ResumeDocument) Records(s Section) []Record {
	switch s {
	case SectionExperience:
		return d.Experience
	case SectionEducation:
		return d.Education
	case SectionProjects:
		return d.Projects
	}
	return nil
}

// SetRecords replaces the record slice backing the given section.
func (d *ResumeDocument) SetRecords(s Section, records []Record) {
	switch s {
	case SectionExperience:
		d.Experience = records
	case SectionEducation:
		d.Education = records
	case SectionProjects:
		d.Projects = records
	}
}

// Scalar returns the value of a scalar field, consulting Extra for non-canonical names.
func (d *ResumeDocument) Scalar(name string) string {
	switch name {
	case FieldName:
		return d.Name
	case FieldEmail:
		return d.Email
	case FieldPhone:
		return d.Phone
	case FieldLinkedIn:
		return d.LinkedIn
	case FieldSummary:
		return d.Summary
	case FieldSkills:
		return d.Skills
	}
	return d.Extra[name]
}

// Clone returns a deep copy of the document.
func (d *ResumeDocument) Clone() *ResumeDocument {
	out := *d
	out.Experience = cloneRecords(d.Experience)
	out.Education = cloneRecords(d.Education)
	out.Projects = cloneRecords(d.Projects)
	if d.Extra != nil {
		out.Extra = make(map[string]string, len(d.Extra))
		for k, v := range d.Extra {
			out.Extra[k] = v
		}
	}
	return &out
}

func cloneRecords(in []Record) []Record {
	if in == nil {
		return nil
	}
	out := make([]Record, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}
