package schemas

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/resuexpress/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeDocumentSchema_ValidJSON(t *testing.T) {
	var v map[string]any
	require.NoError(t, json.Unmarshal(ResumeDocument, &v))
	assert.Equal(t, "ResumeDocument", v["title"])
}

func TestResumeDocumentSchema_AcceptsLegacyKeys(t *testing.T) {
	doc := `{"name":"Ada","isDarkMode":true,"experience":[{"jobTitle":"Eng","years":3}]}`
	assert.NoError(t, schemas.ValidateBytes(ResumeDocument, []byte(doc)))
}

func TestResumeDocumentSchema_RejectsWrongTypes(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"scalar as number", `{"name":42}`},
		{"section as object", `{"experience":{"jobTitle":"Eng"}}`},
		{"record value as object", `{"projects":[{"name":{"x":1}}]}`},
		{"step as string", `{"currentStep":"2"}`},
		{"root array", `[1,2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schemas.ValidateBytes(ResumeDocument, []byte(tt.doc))
			require.Error(t, err)
			var verr *schemas.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}
