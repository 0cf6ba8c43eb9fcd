package rendering

import (
	"testing"

	"github.com/jonathan/resuexpress/internal/document"
	"github.com/stretchr/testify/assert"
)

func TestSkillTokens(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"SQL, Python ,  Go", []string{"SQL", "Python", "Go"}},
		{"", nil},
		{" , ,", nil},
		{"Go", []string{"Go"}},
		{"Go,,Rust, ", []string{"Go", "Rust"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SkillTokens(tt.in), tt.in)
	}
}

func TestSplitDescription(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Led teams. Shipped features.", []string{"Led teams", "Shipped features."}},
		{"One sentence", []string{"One sentence"}},
		{"", []string{}},
		{". ", []string{}},
		{"A. . B", []string{"A", "B"}},
		{"v1.2 released. Done", []string{"v1.2 released", "Done"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitDescription(tt.in), tt.in)
	}
}

func TestBullets_Placeholder(t *testing.T) {
	assert.Equal(t, []string{"Placeholder."}, Bullets("", "Placeholder."))
	assert.Equal(t, []string{"Placeholder."}, Bullets(". ", "Placeholder."))
	assert.Equal(t, []string{"A", "B"}, Bullets("A. B", "Placeholder."))
}

func TestPreviewSource_AllOrNothing(t *testing.T) {
	live := document.Default()
	live.Summary = "live summary"
	live.Experience[0]["jobTitle"] = "live job"

	src := PreviewSource(live)
	assert.Equal(t, document.Example(), src)

	live.Name = "Ada"
	assert.Same(t, live, PreviewSource(live))
	assert.Equal(t, document.Example(), PreviewSource(nil))
}

func TestFuncHelpers(t *testing.T) {
	assert.Equal(t, "janedoe", lastSegment("linkedin.com/in/janedoe"))
	assert.Equal(t, "janedoe", lastSegment("linkedin.com/in/janedoe/"))
	assert.Equal(t, "handle", lastSegment("handle"))
	assert.Equal(t, "Builds things", firstSentence("Builds things. Ships them."))
	assert.Equal(t, "2019 - 2021", dateRange("2019", "2021"))
	assert.Equal(t, "2019", dateRange("2019", ""))
	assert.Equal(t, "", dateRange("", ""))
	assert.Equal(t, "Acme, Berlin", joinNonEmpty(", ", "Acme", "Berlin"))
	assert.Equal(t, "Acme", joinNonEmpty(", ", "Acme", ""))
}
