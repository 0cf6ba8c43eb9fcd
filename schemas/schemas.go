// Package schemas embeds the JSON Schemas for persisted artifacts.
package schemas

import _ "embed"

// ResumeDocument is the JSON Schema of the persisted wizard document.
//
//go:embed resume_document.schema.json
var ResumeDocument []byte
