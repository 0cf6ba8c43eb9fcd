package document

import (
	"testing"

	"github.com/jonathan/resuexpress/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetScalarField_Canonical(t *testing.T) {
	doc := Default()
	for _, name := range types.ScalarFields {
		require.NoError(t, SetScalarField(doc, name, "v-"+name))
		assert.Equal(t, "v-"+name, doc.Scalar(name))
	}
	assert.Nil(t, doc.Extra)
}

func TestSetScalarField_OpenSchema(t *testing.T) {
	doc := Default()
	require.NoError(t, SetScalarField(doc, "jobTitle", "Staff Engineer"))
	assert.Equal(t, "Staff Engineer", doc.Extra["jobTitle"])
}

func TestSetScalarField_RejectsStructuralSlots(t *testing.T) {
	doc := Default()
	for _, name := range []string{"", "currentStep", "selectedTemplate", "experience", "projects"} {
		err := SetScalarField(doc, name, "x")
		assert.ErrorIs(t, err, ErrNotScalar, name)
	}
	assert.Equal(t, Default(), doc)
}

func TestSetRecordField(t *testing.T) {
	doc := Default()
	require.NoError(t, SetRecordField(doc, types.SectionExperience, 0, "jobTitle", "Eng"))
	require.NoError(t, SetRecordField(doc, types.SectionExperience, 0, "jobTitle", "Lead"))
	assert.Equal(t, types.Record{"jobTitle": "Lead"}, doc.Experience[0])
}

func TestSetRecordField_OutOfBounds(t *testing.T) {
	doc := Default()
	for _, idx := range []int{-1, 1, 5} {
		err := SetRecordField(doc, types.SectionEducation, idx, "degree", "BSc")
		var pre *PreconditionError
		require.ErrorAs(t, err, &pre)
		assert.Equal(t, "SetRecordField", pre.Operation)
	}
	assert.Equal(t, []types.Record{{}}, doc.Education)
}

func TestSetRecordField_UnknownSection(t *testing.T) {
	err := SetRecordField(Default(), types.Section("hobbies"), 0, "x", "y")
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestExample_SatisfiesInvariants(t *testing.T) {
	ex := Example()
	assert.NotEmpty(t, ex.Name)
	for _, s := range types.Sections {
		assert.NotEmpty(t, ex.Records(s))
	}
	// Each call yields an independent copy.
	ex.Name = "changed"
	assert.Equal(t, "Jane Doe", Example().Name)
}
