package export

import (
	"bytes"
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chromePath(t *testing.T) string {
	t.Helper()
	for _, name := range []string{"chromium", "chromium-browser", "google-chrome", "google-chrome-stable"} {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	t.Skip("Skipping PDF test: no Chrome/Chromium binary on PATH")
	return ""
}

func TestPrinter_EmptyArtifact(t *testing.T) {
	p := &Printer{}
	_, err := p.PDF(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyMarkup)
	_, err = p.PDF(context.Background(), &Artifact{})
	assert.ErrorIs(t, err, ErrEmptyMarkup)
}

func TestPrinter_PDF(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping browser test in short mode")
	}
	p := &Printer{ExecPath: chromePath(t), Timeout: time.Minute, Logger: quietLogger()}

	art, err := NewAssembler(nil).Assemble(sampleMarkup, "Ada", "Bold & Structured")
	require.NoError(t, err)

	pdf, err := p.PDF(context.Background(), art)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
