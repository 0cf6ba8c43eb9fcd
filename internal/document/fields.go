package document

import "github.com/jonathan/resuexpress/internal/types"

// SetScalarField overwrites a free-form text field. Canonical names write the typed
// field; any other name is accepted into the open-schema Extra map. The step, template
// and section slots have dedicated operations and are rejected with ErrNotScalar.
func SetScalarField(doc *types.ResumeDocument, name, value string) error {
	switch name {
	case types.FieldName:
		doc.Name = value
	case types.FieldEmail:
		doc.Email = value
	case types.FieldPhone:
		doc.Phone = value
	case types.FieldLinkedIn:
		doc.LinkedIn = value
	case types.FieldSummary:
		doc.Summary = value
	case types.FieldSkills:
		doc.Skills = value
	case "", "currentStep", "selectedTemplate":
		return ErrNotScalar
	default:
		if types.Section(name).Valid() {
			return ErrNotScalar
		}
		if doc.Extra == nil {
			doc.Extra = make(map[string]string)
		}
		doc.Extra[name] = value
	}
	return nil
}

// SetRecordField writes field on the record at index of section.
func SetRecordField(doc *types.ResumeDocument, section types.Section, index int, field, value string) error {
	if !section.Valid() {
		return ErrUnknownSection
	}
	records := doc.Records(section)
	if index < 0 || index >= len(records) {
		return Precondition("SetRecordField", "%s index %d out of bounds [0,%d)", section, index, len(records))
	}
	if field == "" {
		return Precondition("SetRecordField", "empty field name")
	}
	if records[index] == nil {
		records[index] = types.Record{}
	}
	records[index][field] = value
	return nil
}
