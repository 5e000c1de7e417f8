// Package chromepdf converts rendered HTML pages to PDF through a locally
// installed Chrome or Chromium, driven headless via rod. The converter
// launches a fresh browser per conversion and tears it down afterwards, so
// no browser process outlives an export.
package chromepdf

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/Lej77/firefox-session-tui/internal/export"
)

// convertTimeout bounds a single conversion when the caller's context
// carries no deadline of its own.
const convertTimeout = 2 * time.Minute

// Converter prints HTML to PDF with a headless browser. The zero value is
// ready to use.
type Converter struct {
	once sync.Once
	bin  string
	ok   bool
}

var _ export.PDFConverter = (*Converter)(nil)

// NewConverter returns a converter that locates the browser binary on
// first use.
func NewConverter() *Converter {
	return &Converter{}
}

func (c *Converter) lookup() (string, bool) {
	c.once.Do(func() {
		c.bin, c.ok = launcher.LookPath()
	})
	return c.bin, c.ok
}

// Available reports whether a Chrome or Chromium binary was found on this
// machine. The lookup runs once and is cached.
func (c *Converter) Available() bool {
	_, ok := c.lookup()
	return ok
}

// Convert renders the HTML page in a headless browser and returns the
// printed PDF. The browser is launched from the local binary only; nothing
// is downloaded.
func (c *Converter) Convert(ctx context.Context, html []byte) ([]byte, error) {
	bin, ok := c.lookup()
	if !ok {
		return nil, fmt.Errorf("no chrome or chromium binary found")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, convertTimeout)
		defer cancel()
	}

	l := launcher.New().Bin(bin).Headless(true)
	wsURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(wsURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}
	defer func() {
		browser.Close()
		l.Cleanup()
	}()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}

	if err := page.SetDocumentContent(string(html)); err != nil {
		return nil, fmt.Errorf("set page content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait for page load: %w", err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
	})
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read pdf stream: %w", err)
	}
	return data, nil
}
