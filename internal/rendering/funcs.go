package rendering

import (
	"html/template"
	"strings"
)

// funcMap holds the helpers shared by every built-in template.
var funcMap = template.FuncMap{
	"bullets":       Bullets,
	"skills":        SkillTokens,
	"upper":         strings.ToUpper,
	"firstSentence": firstSentence,
	"lastSegment":   lastSegment,
	"dateRange":     dateRange,
	"join":          joinNonEmpty,
	"nonEmpty":      nonEmpty,
}

func firstSentence(s string) string {
	return strings.SplitN(s, ".", 2)[0]
}

// lastSegment returns the text after the final slash, e.g. a profile handle.
func lastSegment(s string) string {
	s = strings.TrimRight(s, "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	return s
}

func dateRange(start, end string) string {
	return joinNonEmpty(" - ", start, end)
}

func joinNonEmpty(sep string, parts ...string) string {
	return strings.Join(nonEmpty(parts...), sep)
}

func nonEmpty(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
