package phishnet

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultBaseURL = "https://phish.net/music/ratings"
	DefaultTimeout = 30 * time.Second

	userAgent = "phish-ratings/1.0 (+https://phish.net/music/ratings)"
)

// Fetcher retrieves the raw listing page for one year.
type Fetcher interface {
	Fetch(ctx context.Context, year int) (string, error)
}

// StatusError reports a listing page that answered outside the 2xx range.
type StatusError struct {
	Year       int
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("phishnet: fetch %d: %s returned status %d", e.Year, e.URL, e.StatusCode)
}

// YearURL is the listing page address for year.
func YearURL(baseURL string, year int) string {
	return strings.TrimRight(baseURL, "/") + "/" + strconv.Itoa(year)
}

func checkStatus(year int, url string, code int) error {
	if code < 200 || code > 299 {
		return &StatusError{Year: year, StatusCode: code, URL: url}
	}
	return nil
}

// HTTPFetcher downloads listing pages with a plain HTTP client.
type HTTPFetcher struct {
	http    *resty.Client
	baseURL string
}

type HTTPOption func(*resty.Client)

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) HTTPOption {
	return func(c *resty.Client) { c.SetTransport(rt) }
}

func WithTimeout(d time.Duration) HTTPOption {
	return func(c *resty.Client) { c.SetTimeout(d) }
}

func NewHTTPFetcher(baseURL string, opts ...HTTPOption) *HTTPFetcher {
	client := resty.New()
	client.SetTimeout(DefaultTimeout)
	client.SetHeader("User-Agent", userAgent)
	for _, opt := range opts {
		opt(client)
	}
	return &HTTPFetcher{http: client, baseURL: baseURL}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, year int) (string, error) {
	url := YearURL(f.baseURL, year)

	res, err := f.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return "", fmt.Errorf("phishnet: fetch %d: %w", year, err)
	}
	if err := checkStatus(year, url, res.StatusCode()); err != nil {
		return "", err
	}

	return string(res.Body()), nil
}
