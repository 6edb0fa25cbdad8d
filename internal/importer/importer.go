// Package importer turns an arbitrary recipe web page into a normalized
// recipe record. The pipeline is fetch → structured (JSON-LD) extraction
// → heuristic (selector) extraction → normalization, with the heuristic
// stage only running when the structured one yields nothing usable.
//
// The pipeline holds no shared mutable state; one Importer may serve
// concurrent imports. It performs no logging and no retries; both are
// the caller's responsibility.
package importer

import (
	"bytes"
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Importer runs the import pipeline.
type Importer struct {
	fetcher *Fetcher
}

// Option configures an Importer.
type Option func(*options)

type options struct {
	timeout  time.Duration
	maxBytes int64
}

// WithTimeout overrides the default 30s fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithMaxBytes overrides the default 1 MiB response size cap.
func WithMaxBytes(n int64) Option {
	return func(o *options) { o.maxBytes = n }
}

// New creates an Importer.
func New(opts ...Option) *Importer {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Importer{fetcher: NewFetcher(o.timeout, o.maxBytes)}
}

// Import fetches raw and produces a validated recipe, or a typed *Error.
func (imp *Importer) Import(ctx context.Context, rawURL string) (*ImportedRecipe, error) {
	doc, err := imp.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return imp.Extract(doc)
}

// Extract runs the extraction stages over an already fetched document.
// Split out from Import so tests can feed static pages directly.
func (imp *Importer) Extract(doc *FetchedDocument) (*ImportedRecipe, error) {
	parsed, err := goquery.NewDocumentFromReader(bytes.NewReader(doc.Body))
	if err != nil {
		// goquery's parser is lenient; failure here means the payload
		// was not HTML-like at all.
		return nil, extractionFailedError()
	}

	candidate := extractStructured(parsed)
	if candidate == nil || cleanLine(candidate.Title) == "" {
		// A structured candidate without a title is discarded rather
		// than merged; the heuristic pass sees the same document.
		candidate = extractHeuristic(parsed, string(doc.Body))
	}

	return normalize(candidate, doc.URL)
}
