package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/xornal"
)

// DefaultNosBaseURL is the site root related links are relative to.
const DefaultNosBaseURL = "https://www.nosdiario.gal"

// Ensure Fragments implements xornal.FragmentCleaner at compile time.
var _ xornal.FragmentCleaner = (*Fragments)(nil)

// Fragments cleans HTML embedded in Nós Diario feed items.
type Fragments struct {
	baseURL string
}

// NewFragments creates a Fragments resolving related links against baseURL.
func NewFragments(baseURL string) *Fragments {
	if baseURL == "" {
		baseURL = DefaultNosBaseURL
	}
	return &Fragments{baseURL: strings.TrimRight(baseURL, "/")}
}

// CleanAbstract returns the text content of an abstract fragment.
func (f *Fragments) CleanAbstract(html string) (string, error) {
	return CleanAbstract(html)
}

// SplitRelated removes every related-content block from body and returns
// one entry per linked anchor found inside a list in those blocks.
func (f *Fragments) SplitRelated(body string) ([]xornal.Related, string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body>" + body + "</body></html>"))
	if err != nil {
		return nil, "", xornal.Wrapf(xornal.EMALFORMED, err, "failed to parse body markup")
	}

	var related []xornal.Related
	blocks := doc.Find("div[class*='related-content']")
	blocks.Each(func(_ int, div *goquery.Selection) {
		div.Find("ul a").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			if href == "" {
				return
			}
			related = append(related, xornal.Related{
				Link:   f.baseURL + href,
				Title:  strings.TrimSpace(a.Text()),
				NewsID: xornal.NewsIDFromURL(href),
			})
		})
	})
	blocks.Remove()

	rest, err := doc.Find("body").Html()
	if err != nil {
		return nil, "", xornal.Wrapf(xornal.EINTERNAL, err, "failed to render body markup")
	}
	return related, rest, nil
}
