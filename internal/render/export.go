package render

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/agenthands/persona/internal/config"
)

var ErrUnsupportedFormat = errors.New("unsupported format")

type Format string

const (
	FormatJSON Format = "json"
	FormatJPG  Format = "jpg"
	FormatPDF  Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatJPG, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatJPG:
		return "image/jpeg"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/json"
}

// Exporter turns a rendered card into image or document bytes.
type Exporter interface {
	Export(ctx context.Context, html []byte, format Format) ([]byte, error)
}

// ChromeExporter drives a headless Chrome per call.
type ChromeExporter struct {
	Width      int
	Height     int
	Quality    int
	ChromePath string
	Timeout    time.Duration
}

func NewChromeExporter(cfg config.ExportConfig) *ChromeExporter {
	e := &ChromeExporter{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Quality:    cfg.JPEGQuality,
		ChromePath: cfg.ChromePath,
		Timeout:    config.Duration(cfg.Timeout, 30*time.Second),
	}
	if e.Width <= 0 {
		e.Width = 1600
	}
	if e.Height <= 0 {
		e.Height = 800
	}
	if e.Quality <= 0 || e.Quality > 100 {
		e.Quality = 90
	}
	return e
}

func (e *ChromeExporter) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.WindowSize(e.Width, e.Height),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
	)
	if e.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(e.ChromePath))
	}
	return opts
}

func (e *ChromeExporter) Export(ctx context.Context, html []byte, format Format) ([]byte, error) {
	if format != FormatJPG && format != FormatPDF {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, e.allocatorOptions()...)
	defer allocCancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, e.Timeout)
	defer cancel()

	var out []byte
	capture := chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		if format == FormatJPG {
			out, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatJpeg).
				WithQuality(int64(e.Quality)).
				Do(ctx)
			return err
		}
		// 96 CSS pixels per inch keeps the page the same size as the viewport.
		out, _, err = page.PrintToPDF().
			WithPrintBackground(true).
			WithDisplayHeaderFooter(false).
			WithMarginTop(0).
			WithMarginBottom(0).
			WithMarginLeft(0).
			WithMarginRight(0).
			WithPaperWidth(float64(e.Width) / 96).
			WithPaperHeight(float64(e.Height) / 96).
			WithPageRanges("1").
			Do(ctx)
		return err
	})

	if err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(e.Width), int64(e.Height)),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, string(html)).Do(ctx)
		}),
		capture,
	); err != nil {
		return nil, fmt.Errorf("chrome %s export failed: %w", format, err)
	}

	return out, nil
}
