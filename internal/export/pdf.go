package export

import (
	"context"
	"encoding/base64"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultPDFTimeout bounds a single print job.
const DefaultPDFTimeout = 30 * time.Second

// Printer prints assembled artifacts to PDF in a headless browser.
// Requires Chrome/Chromium to be installed on the system.
type Printer struct {
	Timeout time.Duration
	// ExecPath overrides the browser binary; empty uses chromedp's lookup.
	ExecPath string
	Logger   *slog.Logger
}

// PDF loads the artifact's HTML into a fresh headless browser and prints it.
func (p *Printer) PDF(ctx context.Context, a *Artifact) ([]byte, error) {
	if a == nil || len(a.Body) == 0 {
		return nil, ErrEmptyMarkup
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(p.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	logger.Debug("pdf: printing", slog.String("file", a.FilenameFor("pdf")), slog.Int("bytes", len(a.Body)))

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("data:text/html;base64,"+base64.StdEncoding.EncodeToString(a.Body)),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, &PDFError{Message: "browser printing failed", Cause: err}
	}
	return pdf, nil
}
