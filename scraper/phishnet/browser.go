package phishnet

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"
)

// BrowserFetcher renders listing pages in headless Chrome. It shares one
// browser process across calls; Close releases it.
type BrowserFetcher struct {
	baseURL string
	timeout time.Duration

	browserCtx    context.Context
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc
}

// NewBrowserFetcher prepares a headless browser. chromeBin may be empty, in
// which case common install locations are searched.
func NewBrowserFetcher(baseURL, chromeBin string, timeout time.Duration) *BrowserFetcher {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)
	if bin := findChromeBinary(chromeBin); bin != "" {
		opts = append(opts, chromedp.ExecPath(bin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	return &BrowserFetcher{
		baseURL:       baseURL,
		timeout:       timeout,
		browserCtx:    browserCtx,
		cancelBrowser: cancelBrowser,
		cancelAlloc:   cancelAlloc,
	}
}

func (f *BrowserFetcher) Fetch(ctx context.Context, year int) (string, error) {
	url := YearURL(f.baseURL, year)

	tabCtx, cancelTab := chromedp.NewContext(f.browserCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, f.timeout)
	defer cancelTimeout()

	// stop the tab when the caller gives up
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	res, err := chromedp.RunResponse(tabCtx, chromedp.Navigate(url))
	if err != nil {
		return "", fmt.Errorf("phishnet: render %d: %w", year, err)
	}
	if res != nil {
		if err := checkStatus(year, url, int(res.Status)); err != nil {
			return "", err
		}
	}

	var html string
	if err := chromedp.Run(tabCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("phishnet: read rendered %d: %w", year, err)
	}
	return html, nil
}

func (f *BrowserFetcher) Close() error {
	f.cancelBrowser()
	f.cancelAlloc()
	return nil
}

func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
