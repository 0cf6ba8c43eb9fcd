package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// runCLI executes the root command in-process against a file store in dir.
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	// Environment must not leak into the resolved configuration.
	for _, name := range []string{
		"RESUEXPRESS_CONFIG", "RESUEXPRESS_STORE", "RESUEXPRESS_PATH", "RESUEXPRESS_KEY",
		"RESUEXPRESS_STYLESHEET", "RESUEXPRESS_DEBOUNCE_MS", "RESUEXPRESS_LOG_LEVEL",
	} {
		t.Setenv(name, "")
	}

	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{
		"--store", "file",
		"--path", filepath.Join(dir, "resume.json"),
		"--log-level", "error",
	}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := runCLI(t, dir, args...)
	require.NoError(t, err, out)
	return out
}
