package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jonathan/resuexpress/internal/schemas"
	"github.com/jonathan/resuexpress/internal/types"
	rootschemas "github.com/jonathan/resuexpress/schemas"
)

// Hydrate reconciles a persisted blob against the default document shape.
//
// Known keys override the defaults, missing or null keys keep them and unknown keys
// (such as the retired isDarkMode flag) are dropped. The result is always repaired,
// so it satisfies every document invariant. A blob that is not JSON or does not match
// the document schema yields the defaults together with a *LoadError.
func Hydrate(raw []byte) (*types.ResumeDocument, error) {
	doc := Default()
	if len(bytes.TrimSpace(raw)) == 0 {
		return doc, nil
	}

	if !json.Valid(raw) {
		return doc, &LoadError{Message: "persisted document is not valid JSON"}
	}
	if err := schemas.ValidateBytes(rootschemas.ResumeDocument, raw); err != nil {
		return doc, &LoadError{Message: "persisted document does not match schema", Cause: err}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return doc, &LoadError{Message: "failed to decode persisted document", Cause: err}
	}

	for key, value := range fields {
		if isNull(value) {
			continue
		}
		if err := merge(doc, key, value); err != nil {
			return Default(), &LoadError{Message: fmt.Sprintf("failed to decode field %q", key), Cause: err}
		}
	}

	Repair(doc)
	return doc, nil
}

// Repair enforces the document invariants in place: every section holds at least one
// record, the step is within range and a template key is present.
func Repair(doc *types.ResumeDocument) {
	for _, s := range types.Sections {
		if len(doc.Records(s)) == 0 {
			doc.SetRecords(s, []types.Record{{}})
		}
		records := doc.Records(s)
		for i := range records {
			if records[i] == nil {
				records[i] = types.Record{}
			}
		}
	}

	doc.CurrentStep = ClampStep(doc.CurrentStep)

	if doc.SelectedTemplate == "" {
		doc.SelectedTemplate = types.DefaultTemplateKey
	}
}

// ClampStep limits step to the range 1..TotalSteps.
func ClampStep(step int) int {
	if step < 1 {
		return 1
	}
	if step > types.TotalSteps {
		return types.TotalSteps
	}
	return step
}

func merge(doc *types.ResumeDocument, key string, value json.RawMessage) error {
	switch key {
	case "currentStep":
		var step float64
		if err := json.Unmarshal(value, &step); err != nil {
			return err
		}
		doc.CurrentStep = int(step)
	case "selectedTemplate":
		return json.Unmarshal(value, &doc.SelectedTemplate)
	case types.FieldName:
		return json.Unmarshal(value, &doc.Name)
	case types.FieldEmail:
		return json.Unmarshal(value, &doc.Email)
	case types.FieldPhone:
		return json.Unmarshal(value, &doc.Phone)
	case types.FieldLinkedIn:
		return json.Unmarshal(value, &doc.LinkedIn)
	case types.FieldSummary:
		return json.Unmarshal(value, &doc.Summary)
	case types.FieldSkills:
		return json.Unmarshal(value, &doc.Skills)
	case string(types.SectionExperience), string(types.SectionEducation), string(types.SectionProjects):
		records, err := decodeRecords(value)
		if err != nil {
			return err
		}
		doc.SetRecords(types.Section(key), records)
	}
	return nil
}

func decodeRecords(value json.RawMessage) ([]types.Record, error) {
	var raw []map[string]any
	if err := json.Unmarshal(value, &raw); err != nil {
		return nil, err
	}

	records := make([]types.Record, 0, len(raw))
	for _, item := range raw {
		rec := make(types.Record, len(item))
		for field, v := range item {
			switch tv := v.(type) {
			case string:
				rec[field] = tv
			case float64:
				rec[field] = strconv.FormatFloat(tv, 'f', -1, 64)
			case bool:
				rec[field] = strconv.FormatBool(tv)
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func isNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
