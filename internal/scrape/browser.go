package scrape

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultRenderTimeout bounds one platform's navigate-and-wait cycle.
const DefaultRenderTimeout = 30 * time.Second

// Renderer renders a search results page and returns its HTML once the
// result marker is present. Implementations own the rendering session for
// the duration of the call and must release it on every exit path,
// including failure. Any headless engine satisfying this contract is
// substitutable.
type Renderer interface {
	Render(ctx context.Context, url, marker string, timeout time.Duration) (string, error)
}

// ChromeRenderer drives a headless Chrome via chromedp. Every Render call
// creates its own allocator and browser context, so concurrent extractions
// never share a session; the deferred cancels tear the session down whether
// the run succeeds, times out, or the caller cancels.
// Requires Chrome/Chromium to be installed on the system.
type ChromeRenderer struct {
	Verbose bool
}

// Render navigates to url and waits for marker, bounded by timeout.
func (r *ChromeRenderer) Render(ctx context.Context, url, marker string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	if r.Verbose {
		log.Printf("[scrape] rendering %s (marker %q)", url, marker)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady(marker, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	if r.Verbose {
		log.Printf("[scrape] rendered %s: %d bytes", url, len(html))
	}
	return html, nil
}
