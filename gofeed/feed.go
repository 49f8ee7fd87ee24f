// Package gofeed reads article links from RSS and Atom feeds.
package gofeed

import (
	"strings"
	"time"

	"github.com/fwojciec/xornal"
	"github.com/mmcdole/gofeed"
)

// Ensure FeedParser implements xornal.FeedParser at compile time.
var _ xornal.FeedParser = (*FeedParser)(nil)

// FeedParser wraps gofeed's universal parser.
type FeedParser struct {
	parser *gofeed.Parser
}

// NewFeedParser creates a new FeedParser.
func NewFeedParser() *FeedParser {
	return &FeedParser{parser: gofeed.NewParser()}
}

// ParseFeed returns one entry per linked item. Published keeps the offset
// the feed states and falls back to the update time, then to the raw date
// text.
func (p *FeedParser) ParseFeed(body string) ([]xornal.ListingEntry, error) {
	feed, err := p.parser.ParseString(body)
	if err != nil {
		return nil, xornal.Wrapf(xornal.EMALFORMED, err, "failed to parse feed")
	}

	entries := make([]xornal.ListingEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" {
			continue
		}
		entries = append(entries, xornal.ListingEntry{
			URL:       link,
			Published: published(item),
		})
	}
	return entries, nil
}

// dateLayouts are tried in order on the raw feed dates, which keeps the
// publisher's offset. gofeed's parsed times are normalized to UTC.
var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	time.RFC822Z,
	time.RFC822,
	"Mon, 2 Jan 2006 15:04:05 -0700",
}

func published(item *gofeed.Item) string {
	for _, raw := range []string{item.Published, item.Updated} {
		if t, ok := parseDate(raw); ok {
			return t.Format(time.RFC3339)
		}
	}
	switch {
	case item.PublishedParsed != nil:
		return item.PublishedParsed.Format(time.RFC3339)
	case item.UpdatedParsed != nil:
		return item.UpdatedParsed.Format(time.RFC3339)
	case item.Published != "":
		return item.Published
	default:
		return item.Updated
	}
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
