package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/jonathan/resuexpress/internal/types"
)

//go:embed templates/*.html.tmpl
var builtinFS embed.FS

// builtins lists the shipped templates in selection order.
var builtins = []struct {
	key, name, file string
}{
	{"template1", "Classic Modern", "templates/classic_modern.html.tmpl"},
	{"template2", "Minimalist Tech", "templates/minimalist_tech.html.tmpl"},
	{"template3", "Bold & Structured", "templates/bold_structured.html.tmpl"},
	{"template4", "Creative Design", "templates/creative_design.html.tmpl"},
	{"template5", "Executive Summary", "templates/executive_summary.html.tmpl"},
}

// RenderFunc renders a document that has already been through PreviewSource.
type RenderFunc func(doc *types.ResumeDocument) (string, error)

// Template is a registered renderer with a stable key and a display name.
type Template struct {
	Key         string
	DisplayName string
	render      RenderFunc
}

// NewTemplate wraps an arbitrary render function.
func NewTemplate(key, displayName string, render RenderFunc) *Template {
	return &Template{Key: key, DisplayName: displayName, render: render}
}

// NewHTMLTemplate parses source as an html/template executed against a View.
func NewHTMLTemplate(key, displayName, source string) (*Template, error) {
	tmpl, err := template.New(key).Funcs(funcMap).Parse(source)
	if err != nil {
		return nil, &TemplateError{Key: key, Message: "failed to parse template", Cause: err}
	}

	return NewTemplate(key, displayName, func(doc *types.ResumeDocument) (string, error) {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, newView(doc)); err != nil {
			return "", err
		}
		return buf.String(), nil
	}), nil
}

// Render renders doc, substituting the example document when doc has no name.
func (t *Template) Render(doc *types.ResumeDocument) (string, error) {
	out, err := t.render(PreviewSource(doc))
	if err != nil {
		return "", &RenderError{Key: t.Key, Message: "failed to execute template", Cause: err}
	}
	return out, nil
}

// Registry maps template keys to templates, keeping registration order.
type Registry struct {
	order []*Template
	byKey map[string]*Template
}

// NewRegistry builds the registry of built-in templates.
func NewRegistry() (*Registry, error) {
	templates := make([]*Template, 0, len(builtins))
	for _, b := range builtins {
		src, err := builtinFS.ReadFile(b.file)
		if err != nil {
			return nil, &TemplateError{Key: b.key, Message: fmt.Sprintf("failed to read %s", b.file), Cause: err}
		}
		t, err := NewHTMLTemplate(b.key, b.name, string(src))
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return NewRegistryFrom(templates...)
}

// NewRegistryFrom builds a registry from templates; the first one is the default.
func NewRegistryFrom(templates ...*Template) (*Registry, error) {
	if len(templates) == 0 {
		return nil, ErrNoTemplates
	}
	r := &Registry{byKey: make(map[string]*Template, len(templates))}
	for _, t := range templates {
		if _, dup := r.byKey[t.Key]; dup {
			return nil, &TemplateError{Key: t.Key, Message: "duplicate template key"}
		}
		r.byKey[t.Key] = t
		r.order = append(r.order, t)
	}
	return r, nil
}

// Lookup returns the template registered under key.
func (r *Registry) Lookup(key string) (*Template, bool) {
	t, ok := r.byKey[key]
	return t, ok
}

// Resolve returns the template for key, or the default when key is not registered.
func (r *Registry) Resolve(key string) *Template {
	if t, ok := r.byKey[key]; ok {
		return t
	}
	return r.Default()
}

// Default returns the first registered template.
func (r *Registry) Default() *Template {
	return r.order[0]
}

// List returns the templates in registration order.
func (r *Registry) List() []*Template {
	return append([]*Template(nil), r.order...)
}
