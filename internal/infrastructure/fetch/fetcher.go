package fetch

import (
	"compress/gzip"
	"compress/zlib"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopscout/backend/internal/domain"
)

// Browser-mimicking request headers. Origin sites serve different (or no)
// markup to clients that look like bots.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.5",
	"Accept-Encoding": "gzip, deflate",
	"Connection":      "keep-alive",
}

// Client fetches pages over HTTP with a bounded timeout and parses them
// into goquery documents. It performs exactly one attempt per call.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a page fetcher whose requests fail after timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchDocument retrieves pageURL and returns the parsed document. Any
// transport error, non-200 status or unparseable body is reported wrapping
// domain.ErrFetchFailed.
func (c *Client) FetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	for key, value := range browserHeaders {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d for %s", domain.ErrFetchFailed, resp.StatusCode, pageURL)
	}

	// Setting Accept-Encoding by hand disables the transport's transparent
	// decompression, so both advertised encodings must be unwrapped here.
	body := io.Reader(resp.Body)
	switch {
	case strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip"):
		gzReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
		}
		defer gzReader.Close()
		body = gzReader
	case strings.EqualFold(resp.Header.Get("Content-Encoding"), "deflate"):
		zReader, err := zlib.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
		}
		defer zReader.Close()
		body = zReader
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	return doc, nil
}
