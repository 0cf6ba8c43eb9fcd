package rendering

import (
	"strings"

	"github.com/jonathan/resuexpress/internal/document"
	"github.com/jonathan/resuexpress/internal/types"
)

// descriptionSeparator splits free-form descriptions into bullet fragments.
const descriptionSeparator = ". "

// PreviewSource returns the document a template should render: the live document, or
// the built-in example when the live one has no name yet. Fields are never mixed.
func PreviewSource(doc *types.ResumeDocument) *types.ResumeDocument {
	if doc == nil || doc.Name == "" {
		return document.Example()
	}
	return doc
}

// SplitDescription splits a description on sentence boundaries, dropping empty segments.
func SplitDescription(description string) []string {
	parts := strings.Split(description, descriptionSeparator)
	fragments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			fragments = append(fragments, p)
		}
	}
	return fragments
}

// Bullets is SplitDescription with a single placeholder fragment for empty input.
func Bullets(description, placeholder string) []string {
	if fragments := SplitDescription(description); len(fragments) > 0 {
		return fragments
	}
	return []string{placeholder}
}

// SkillTokens splits a comma-separated skills string into trimmed, non-empty tokens.
func SkillTokens(skills string) []string {
	var tokens []string
	for _, s := range strings.Split(skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			tokens = append(tokens, s)
		}
	}
	return tokens
}
