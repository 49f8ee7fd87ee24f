// Package readability reduces article markup with go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/xornal"
	"github.com/go-shiori/go-readability"
)

// DefaultPageURL is the canonical site used to resolve relative links.
const DefaultPageURL = "https://praza.gal"

// Ensure Extractor implements xornal.Extractor at compile time.
var _ xornal.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the main article from HTML.
type Extractor struct {
	pageURL *url.URL
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPageURL sets the URL the document is parsed against.
// An unparsable URL leaves the current value in place.
func WithPageURL(raw string) Option {
	return func(e *Extractor) {
		if u, err := url.Parse(raw); err == nil {
			e.pageURL = u
		}
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	WithPageURL(DefaultPageURL)(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*xornal.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, xornal.Errorf(xornal.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), e.pageURL)
	if err != nil {
		return nil, err
	}

	return &xornal.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
		Text:        strings.TrimSpace(article.TextContent),
	}, nil
}
