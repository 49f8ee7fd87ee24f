package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/xornal"
)

// Ensure ListingParser implements xornal.ListingParser at compile time.
var _ xornal.ListingParser = (*ListingParser)(nil)

// ListingParser reads Praza Pública category index pages.
type ListingParser struct{}

// NewListingParser creates a new ListingParser.
func NewListingParser() *ListingParser {
	return &ListingParser{}
}

// ParseListing returns the article links on the page and the highest page
// number in its pagination bar.
func (p *ListingParser) ParseListing(html string) ([]xornal.ListingEntry, int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, 0, xornal.Wrapf(xornal.EMALFORMED, err, "failed to parse listing page")
	}

	var entries []xornal.ListingEntry
	doc.Find("ul[class*='articles-list'] article").Each(func(_ int, article *goquery.Selection) {
		href, ok := article.Find("h2[class*='headline'] > a").First().Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		published, _ := article.Find("time[class*='date']").First().Attr("datetime")
		entries = append(entries, xornal.ListingEntry{
			URL:       strings.TrimSpace(href),
			Published: strings.TrimSpace(published),
		})
	})

	return entries, lastPage(doc), nil
}

func lastPage(doc *goquery.Document) int {
	last := 1
	doc.Find("nav[class*='at-pagination'] a[class*='pagination-link']").Each(func(_ int, a *goquery.Selection) {
		text := strings.TrimSpace(a.Text())
		if !isDigits(text) {
			return
		}
		if n, err := strconv.Atoi(text); err == nil && n > last {
			last = n
		}
	})
	return last
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
