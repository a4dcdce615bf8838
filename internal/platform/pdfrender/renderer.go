// Package pdfrender renders resumes and their analysis reports to PDF
// using a headless Chrome instance.
package pdfrender

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/careergenie/careergenie-api/internal/domain"
)

// renderTimeout bounds a single Chrome render, including browser startup.
const renderTimeout = 60 * time.Second

// A4 paper size in inches.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
)

// Renderer renders a resume, including any completed analysis, to a PDF
// document.
type Renderer interface {
	RenderResume(ctx context.Context, resume *domain.Resume) ([]byte, error)
}

// ChromedpRenderer implements Renderer by printing an HTML rendition of
// the resume through headless Chrome's PrintToPDF.
type ChromedpRenderer struct {
	chromePath string
	logger     *slog.Logger
}

// Compile-time check
var _ Renderer = (*ChromedpRenderer)(nil)

// NewChromedpRenderer creates a new ChromedpRenderer. chromePath
// optionally points at a Chrome binary; when empty, chromedp's default
// discovery is used.
func NewChromedpRenderer(chromePath string, logger *slog.Logger) *ChromedpRenderer {
	return &ChromedpRenderer{
		chromePath: chromePath,
		logger:     logger.With(slog.String("component", "pdf_renderer")),
	}
}

// RenderResume builds the resume document HTML and prints it to an A4 PDF.
func (r *ChromedpRenderer) RenderResume(ctx context.Context, resume *domain.Resume) ([]byte, error) {
	html, err := renderResumeHTML(resume)
	if err != nil {
		return nil, fmt.Errorf("failed to render resume HTML: %w", err)
	}

	start := time.Now()
	pdf, err := r.printToPDF(ctx, html)
	if err != nil {
		r.logger.ErrorContext(ctx, "PDF rendering failed",
			slog.String("resume_id", resume.ID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to print resume to PDF: %w", err)
	}

	r.logger.DebugContext(ctx, "rendered resume PDF",
		slog.String("resume_id", resume.ID.String()),
		slog.Int("bytes", len(pdf)),
		slog.Duration("duration", time.Since(start)))
	return pdf, nil
}

func (r *ChromedpRenderer) printToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, renderTimeout)
	defer cancelRun()

	// Chrome needs a file URL; serve the document from a temp directory.
	tmpDir, err := os.MkdirTemp("", "careergenie-pdf-")
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	htmlPath := filepath.Join(tmpDir, "resume.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
		return nil, err
	}

	var pdf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthInches).
				WithPaperHeight(paperHeightInches).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdf, nil
}
