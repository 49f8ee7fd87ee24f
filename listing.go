package xornal

import (
	"context"
	"strconv"
	"strings"
)

// PagePlaceholder is replaced by the page number in category URL templates.
const PagePlaceholder = "{page}"

// Category is a section of an outlet with a paginated article listing.
type Category struct {
	Name string `mapstructure:"name"`

	// URL is a template containing PagePlaceholder.
	URL string `mapstructure:"url"`
}

// PageURL returns the listing URL for the given 1-based page.
func (c Category) PageURL(page int) string {
	return strings.ReplaceAll(c.URL, PagePlaceholder, strconv.Itoa(page))
}

// ListingEntry is an article link discovered on a listing page or feed.
type ListingEntry struct {
	// URL is the article location, possibly relative to the site root.
	URL string

	// Published is the ISO-8601 publication timestamp.
	Published string
}

// ListingParser extracts article entries from category listing pages.
type ListingParser interface {
	// ParseListing returns the articles on a listing page and the last
	// page number advertised by its pagination (1 when there is none).
	ParseListing(html string) (entries []ListingEntry, lastPage int, err error)
}

// FeedParser extracts article entries from syndication feeds.
type FeedParser interface {
	ParseFeed(body string) ([]ListingEntry, error)
}

// ArticleStore persists downloaded article pages.
type ArticleStore interface {
	// Path returns where the article would be stored.
	// Returns EINVALID when the publication date cannot be parsed.
	Path(entry ListingEntry) (string, error)

	// Exists reports whether the article has already been stored.
	Exists(entry ListingEntry) (bool, error)

	// Save writes the article page and returns its path.
	Save(ctx context.Context, entry ListingEntry, html string) (string, error)
}

// SeenSet records article URLs visited during one download run.
type SeenSet interface {
	// TestAndAdd reports whether the URL was already recorded and records it.
	TestAndAdd(url string) bool
}
