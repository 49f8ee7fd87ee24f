// Package extract reduces article markup to plain text by trying a list of
// extraction strategies in order.
package extract

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/xornal"
)

// Ensure Chain implements xornal.TextReducer at compile time.
var _ xornal.TextReducer = (*Chain)(nil)

// Chain tries each extractor in order until one yields text.
type Chain struct {
	extractors []xornal.Extractor
	logger     *slog.Logger
}

// NewChain creates a Chain over the given extractors.
// A nil logger discards diagnostics.
func NewChain(logger *slog.Logger, extractors ...xornal.Extractor) *Chain {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Chain{
		extractors: extractors,
		logger:     logger,
	}
}

// Reduce returns the plain text of the article markup.
func (c *Chain) Reduce(html string) (string, error) {
	html = xornal.CleanChars(html)
	if html == "" {
		return "", xornal.Errorf(xornal.EEMPTY, "empty HTML content")
	}

	for i, ext := range c.extractors {
		text, err := c.try(ext, html)
		if err != nil {
			c.logger.Debug("extraction strategy failed", "strategy", i, "err", err)
			continue
		}
		if text != "" {
			return text, nil
		}
		c.logger.Debug("extraction strategy returned no text", "strategy", i)
	}

	return "", xornal.Errorf(xornal.EEXTRACT, "could not extract text from HTML")
}

// try runs one extractor, turning a panic into an error.
func (c *Chain) try(ext xornal.Extractor, html string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extractor panicked: %v", r)
		}
	}()

	result, err := ext.Extract(html)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", nil
	}
	return strings.TrimSpace(result.Text), nil
}
