package export

import (
	"bytes"
	"html/template"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

const (
	product      = "Resuexpress_Resume"
	untitledName = "Untitled"

	// ContentTypeHTML is the media type of assembled documents.
	ContentTypeHTML = "text/html; charset=utf-8"
	// ContentTypePDF is the media type of printed documents.
	ContentTypePDF = "application/pdf"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Resuexpress Resume - {{.Title}}</title>
    <style>
{{.CSS}}

@media print {
    body { margin: 0; padding: 0; background: none !important; color: black !important; }
    .template-3 { grid-template-columns: 1fr 3fr; }
}
    </style>
</head>
<body>
    <div class="{{.Class}}" style="min-height: 100vh; max-width: 800px; margin: 0 auto; padding: 0;">
{{.Markup}}
    </div>
</body>
</html>
`))

// Artifact is a standalone exported document.
type Artifact struct {
	Filename     string
	ContentType  string
	Class        string
	Name         string
	TemplateName string
	Body         []byte
}

// FilenameFor names a sibling rendition of the artifact, e.g. its PDF.
func (a *Artifact) FilenameFor(ext string) string {
	return Filename(a.Name, a.TemplateName, ext)
}

// Assembler turns rendered markup into standalone documents.
type Assembler struct {
	sheet *Stylesheet
}

// NewAssembler returns an assembler embedding sheet, or the built-in stylesheet when
// sheet is nil.
func NewAssembler(sheet *Stylesheet) *Assembler {
	if sheet == nil {
		sheet = EmbeddedStylesheet()
	}
	return &Assembler{sheet: sheet}
}

// Assemble wraps markup in a self-contained HTML page. It reads nothing but its
// arguments and the stylesheet, and has no side effects.
func (a *Assembler) Assemble(markup, name, templateName string) (*Artifact, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, ErrEmptyMarkup
	}

	class, err := OuterClass(markup)
	if err != nil {
		return nil, err
	}

	title := name
	if title == "" {
		title = untitledName
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, struct {
		Title  string
		CSS    template.CSS
		Class  string
		Markup template.HTML
	}{
		Title:  title,
		CSS:    template.CSS(a.sheet.CSS()),
		Class:  class,
		Markup: template.HTML(markup),
	})
	if err != nil {
		return nil, &AssembleError{Message: "failed to assemble page", Cause: err}
	}

	return &Artifact{
		Filename:     Filename(name, templateName, "html"),
		ContentType:  ContentTypeHTML,
		Class:        class,
		Name:         name,
		TemplateName: templateName,
		Body:         buf.Bytes(),
	}, nil
}

// OuterClass returns the class attribute of the first top-level element in markup.
func OuterClass(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", &AssembleError{Message: "failed to parse markup", Cause: err}
	}
	class, _ := doc.Find("body").Children().First().Attr("class")
	return class, nil
}

// Filename builds Resuexpress_Resume_<name>_<template>.<ext>, replacing every rune
// that is not a letter or digit with an underscore. An empty name becomes Untitled.
func Filename(name, templateName, ext string) string {
	if name == "" {
		name = untitledName
	}
	return product + "_" + sanitize(name) + "_" + sanitize(templateName) + "." + ext
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, s)
}
