package infrastructure

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ChromedpRenderer prints HTML to PDF with a headless Chrome. The page size
// comes from the document's @page rule.
type ChromedpRenderer struct {
	execPath string
	timeout  time.Duration
}

type RendererOption func(*ChromedpRenderer)

// WithExecPath points chromedp at a specific Chrome binary.
func WithExecPath(p string) RendererOption {
	return func(r *ChromedpRenderer) { r.execPath = p }
}

func WithTimeout(d time.Duration) RendererOption {
	return func(r *ChromedpRenderer) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func NewChromedpRenderer(opts ...RendererOption) *ChromedpRenderer {
	r := &ChromedpRenderer{timeout: 60 * time.Second}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *ChromedpRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	runCtx, cancelRun := context.WithTimeout(cctx, r.timeout)
	defer cancelRun()

	// the stylesheet is inlined, so a single file is enough
	tmpDir, err := os.MkdirTemp("", "cv-")
	if err != nil {
		return nil, errors.Wrap(err, "create temp dir")
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, errors.Wrap(err, "write html")
	}

	start := time.Now()
	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm -> inches: 8.27 x 11.69
			pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "chromedp print to pdf")
	}
	log.Debug().Dur("took", time.Since(start)).Int("bytes", len(pdfBuf)).Msg("pdf rendered")
	return pdfBuf, nil
}
