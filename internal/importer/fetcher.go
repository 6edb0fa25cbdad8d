package importer

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultMaxBytes = 1 << 20 // 1 MiB

	// A browser-like User-Agent; many recipe sites refuse obvious bots.
	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// FetchedDocument is the raw result of fetching an import URL. The
// source URL is kept for provenance and for resolving relative image
// URLs later in the pipeline.
type FetchedDocument struct {
	URL         string
	ContentType string
	Body        []byte
}

// Fetcher retrieves remote pages under strict resource limits: a
// wall-clock timeout, a streaming size cap and a single attempt with no
// retries. Retrying a transient failure is the caller's decision.
type Fetcher struct {
	client    *http.Client
	maxBytes  int64
	userAgent string
}

// NewFetcher creates a Fetcher with the given limits. Zero values fall
// back to the defaults (30s, 1 MiB).
func NewFetcher(timeout time.Duration, maxBytes int64) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return errors.New("too many redirects")
				}
				return nil
			},
		},
		maxBytes:  maxBytes,
		userAgent: defaultUserAgent,
	}
}

// Fetch performs a single GET request against rawURL. Only http and
// https schemes are allowed; anything else (file, ftp, gopher...) is a
// security boundary violation and fails with ErrInvalidURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchedDocument, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, invalidURLError(err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, invalidURLError(nil)
	}
	if parsed.Host == "" {
		return nil, invalidURLError(nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, invalidURLError(err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, notFoundError(rawURL)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, remoteError(resp.StatusCode)
	}

	// The cap is enforced while streaming: we never read more than
	// maxBytes+1, regardless of what Content-Length promised.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, classifyTransportError(err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, payloadTooLargeError()
	}

	return &FetchedDocument{
		URL:         rawURL,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// classifyTransportError maps low-level client errors onto the import
// error taxonomy: deadline overruns become ErrTimeout, everything else
// (DNS, refused connections, TLS) becomes ErrNetworkUnreachable.
func classifyTransportError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return timeoutError(err)
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return timeoutError(err)
	}
	return unreachableError(err)
}
