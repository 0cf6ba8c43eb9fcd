package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resuexpress/internal/navigation"
	"github.com/jonathan/resuexpress/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readDoc(t *testing.T, dir string) types.ResumeDocument {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(dir, "resume.json"))
	require.NoError(t, err)
	var doc types.ResumeDocument
	require.NoError(t, json.Unmarshal(raw, &doc))
	return doc
}

func TestSetCommand_PersistsOnExit(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "set", "name", "Ada Lovelace")
	assert.Contains(t, out, "name updated")

	doc := readDoc(t, dir)
	assert.Equal(t, "Ada Lovelace", doc.Name)
	assert.Equal(t, 1, doc.CurrentStep)
	assert.Len(t, doc.Experience, 1)
}

func TestSetCommand_RejectsStructuralSlots(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "set", "currentStep", "4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "set currentStep")
}

func TestSetCommand_ArgCount(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "set", "name")
	assert.Error(t, err)
}

func TestRecordCommands(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "record", "add", "experience")
	assert.Contains(t, out, "added experience entry 1")

	mustRun(t, dir, "record", "set", "experience", "1", "company", "Analytical Engines")
	mustRun(t, dir, "record", "set", "experience", "0", "company", "Babbage & Co")

	doc := readDoc(t, dir)
	require.Len(t, doc.Experience, 2)
	assert.Equal(t, "Babbage & Co", doc.Experience[0]["company"])
	assert.Equal(t, "Analytical Engines", doc.Experience[1]["company"])

	out = mustRun(t, dir, "record", "remove", "experience", "0")
	assert.Contains(t, out, "(1 remaining)")
	doc = readDoc(t, dir)
	require.Len(t, doc.Experience, 1)
	assert.Equal(t, "Analytical Engines", doc.Experience[0]["company"])

	mustRun(t, dir, "record", "remove", "experience", "0")
	doc = readDoc(t, dir)
	require.Len(t, doc.Experience, 1)
	assert.Empty(t, doc.Experience[0])
}

func TestRecordCommands_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "record", "add", "hobbies")
	assert.ErrorContains(t, err, "unknown section")

	_, err = runCLI(t, dir, "record", "remove", "education", "two")
	assert.ErrorContains(t, err, "index must be an integer")

	_, err = runCLI(t, dir, "record", "set", "projects", "4", "name", "x")
	assert.Error(t, err)
}

func TestStepCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "step", "next")
	require.Error(t, err)
	assert.Contains(t, out, "Please fill out your Name and Professional")

	_, err = runCLI(t, dir, "step", "prev")
	assert.ErrorIs(t, err, navigation.ErrOutOfRange)

	mustRun(t, dir, "set", "name", "Ada Lovelace")
	mustRun(t, dir, "set", "summary", "Mathematician.")

	out = mustRun(t, dir, "step", "next")
	assert.Contains(t, out, "Step 2 of 5: Work Experience")
	assert.Equal(t, 2, readDoc(t, dir).CurrentStep)

	out = mustRun(t, dir, "step", "prev")
	assert.Contains(t, out, "Step 1 of 5: Personal Details")
}

func TestTemplateCommands(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "template", "list")
	assert.Contains(t, out, "● template1")
	assert.Contains(t, out, "Executive Summary")

	out = mustRun(t, dir, "template", "select", "template4")
	assert.Contains(t, out, "selected template4 (Creative Design)")
	assert.Equal(t, "template4", readDoc(t, dir).SelectedTemplate)

	_, err := runCLI(t, dir, "template", "select", "template0")
	assert.Error(t, err)
	assert.Equal(t, "template4", readDoc(t, dir).SelectedTemplate)
}

func TestRenderCommand_PreviewsExampleWhenNameEmpty(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "render")
	assert.Contains(t, out, "template-1")
	assert.Contains(t, out, "Jane Doe")

	mustRun(t, dir, "set", "name", "Ada Lovelace")
	target := filepath.Join(dir, "preview.html")
	mustRun(t, dir, "render", "--out", target)

	html, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Ada Lovelace")
	assert.NotContains(t, string(html), "Jane Doe")
}

func TestExportCommand_HTML(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "set", "name", "Ada Lovelace")
	mustRun(t, dir, "template", "select", "template2")

	out := mustRun(t, dir, "export", "--dir", dir)
	want := filepath.Join(dir, "Resuexpress_Resume_Ada_Lovelace_Minimalist_Tech.html")
	assert.Contains(t, out, want)

	body, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<title>Resuexpress Resume - Ada Lovelace</title>")
	assert.Contains(t, string(body), `class="template-2`)
}

func TestExportCommand_UnknownFormat(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "export", "--format", "docx")
	assert.ErrorContains(t, err, "unknown format")
}

func TestStatusCommand(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "set", "email", "ada@example.com")

	out := mustRun(t, dir, "status")
	assert.Contains(t, out, "RESUME DOCUMENT")
	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, "Step 1 of 5: Personal Details")
	assert.Contains(t, out, "TEMPLATES")
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"name":"Ada Lovelace","currentStep":9,"isDarkMode":true}`), 0644))
	out := mustRun(t, dir, "validate", good)
	assert.Contains(t, out, "is valid")
	assert.Contains(t, out, "Step: 5/5")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{not json`), 0644))
	_, err := runCLI(t, dir, "validate", bad)
	assert.ErrorContains(t, err, "is not usable")
}

func TestConfigLayering(t *testing.T) {
	for _, name := range []string{"RESUEXPRESS_CONFIG", "RESUEXPRESS_STORE", "RESUEXPRESS_PATH", "RESUEXPRESS_LOG_LEVEL"} {
		t.Setenv(name, "")
	}
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "resuexpress.yaml")
	docPath := filepath.Join(dir, "from-config.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte("store: file\npath: "+docPath+"\nlog_level: error\n"), 0644))

	root := newRootCmd()
	root.SetOut(os.Stderr)
	root.SetArgs([]string{"--config", cfgPath, "set", "phone", "555-0100"})
	require.NoError(t, root.Execute())

	raw, err := os.ReadFile(docPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"phone":"555-0100"`)
}

func TestConfigLayering_InvalidStore(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "--store", "floppy", "status")
	assert.ErrorContains(t, err, "config error")
}
