package goquery

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/xornal"
	"golang.org/x/net/html"
)

// DefaultPrazaBaseURL is the site root article links are relative to.
const DefaultPrazaBaseURL = "https://praza.gal"

const titleSuffix = " - Praza Pública"

// Ensure PrazaNormalizer implements xornal.Normalizer at compile time.
var _ xornal.Normalizer = (*PrazaNormalizer)(nil)

// PrazaNormalizer turns a downloaded Praza Pública article page into a
// document.
type PrazaNormalizer struct {
	baseURL string
	reducer xornal.TextReducer
	logger  *slog.Logger
}

// NewPrazaNormalizer creates a PrazaNormalizer. An empty baseURL selects
// DefaultPrazaBaseURL and a nil logger discards warnings.
func NewPrazaNormalizer(baseURL string, reducer xornal.TextReducer, logger *slog.Logger) *PrazaNormalizer {
	if baseURL == "" {
		baseURL = DefaultPrazaBaseURL
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &PrazaNormalizer{
		baseURL: strings.TrimRight(baseURL, "/"),
		reducer: reducer,
		logger:  logger,
	}
}

// Normalize parses an article page.
func (n *PrazaNormalizer) Normalize(ctx context.Context, src *xornal.Source) (*xornal.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(src.Content)) == 0 {
		return nil, xornal.Errorf(xornal.EMALFORMED, "empty HTML document: %s", src.Path)
	}

	page, err := goquery.NewDocumentFromReader(bytes.NewReader(src.Content))
	if err != nil {
		return nil, xornal.Wrapf(xornal.EMALFORMED, err, "failed to parse HTML: %s", src.Path)
	}

	meta := n.metadata(page)
	logger := n.logger.With("path", src.Path)

	bodyHTML, err := n.bodyHTML(page)
	if err != nil {
		logger.Warn("no article body found", "url", deref(meta.URL))
		return nil, err
	}

	whole, err := page.Html()
	if err != nil {
		return nil, xornal.Wrapf(xornal.EINTERNAL, err, "failed to render page: %s", src.Path)
	}
	body, err := n.reducer.Reduce(whole)
	if err != nil {
		logger.Error("error cleaning HTML body", "err", err)
		return nil, xornal.Wrapf(xornal.EINCOMPLETE, err, "no body text in %s", src.Path)
	}

	title := firstMeta(page, "og:title", "title")
	if title == "" {
		logger.Warn("no title found", "url", deref(meta.URL))
	}
	abstract := firstMeta(page, "og:description", "description")
	if abstract == "" {
		logger.Warn("no description found", "url", deref(meta.URL))
	}

	doc := &xornal.Document{
		Metadata: meta,
		News: xornal.News{
			Headline: strings.TrimSpace(strings.ReplaceAll(title, titleSuffix, "")),
			Abstract: abstract,
			Taxonomy: taxonomy(page),
			BodyHTML: bodyHTML,
			Body:     body,
			Related:  n.related(page),
			Images:   images(page),
		},
		Source: src.Path,
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (n *PrazaNormalizer) metadata(page *goquery.Document) xornal.Metadata {
	var m xornal.Metadata
	if url := property(page, "og:url"); url != "" {
		m.NewsItemID = xornal.HashURL(url)
		m.URL = &url
	}
	m.ThisRevisionCreated = xornal.StringPtr(property(page, "article:published_time"))
	return m
}

func (n *PrazaNormalizer) bodyHTML(page *goquery.Document) (string, error) {
	sel := page.Find("div[class*='article-body']").First()
	if sel.Length() == 0 {
		return "", xornal.Errorf(xornal.EINCOMPLETE, "no article body")
	}
	return goquery.OuterHtml(sel)
}

// related lists the archive references of the article.
func (n *PrazaNormalizer) related(page *goquery.Document) []xornal.Related {
	var out []xornal.Related
	list := page.Find("ul[class*='at-archive-refs-list']").First()
	list.Find("h1[class*='ref-title'] > a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		link := n.baseURL + strings.TrimSpace(href)
		out = append(out, xornal.Related{
			Link:   link,
			Title:  strings.TrimSpace(a.Text()),
			NewsID: xornal.HashURL(link),
		})
	})
	return out
}

// taxonomy reads the tag list of the article header. The last area link
// is the primary category.
func taxonomy(page *goquery.Document) *xornal.Taxonomy {
	var category string
	tax := &xornal.Taxonomy{Topics: []string{}}

	list := page.Find("article#article ul").First()
	list.Find("a").Each(func(_ int, a *goquery.Selection) {
		class, _ := a.Attr("class")
		text := strings.TrimSpace(a.Text())
		switch class {
		case "topic":
			tax.Topics = append(tax.Topics, text)
		case "area":
			category = text
		case "local-edition":
			tax.LocalEdition = text
		}
	})

	tax.Categories = []string{category}
	return tax
}

func images(page *goquery.Document) []xornal.Image {
	var out []xornal.Image
	page.Find("figure[class*='at-image']").Each(func(_ int, fig *goquery.Selection) {
		href, ok := fig.Find("a[href]").First().Attr("href")
		if !ok {
			return
		}
		caption := strings.TrimSpace(firstText(fig.Find("figcaption").Nodes))
		out = append(out, xornal.Image{
			URL:     href,
			Caption: xornal.StringPtr(caption),
		})
	})
	return out
}

// firstText returns the first text node under nodes, in document order,
// so markup inside a caption does not merge with the rest of it.
func firstText(nodes []*html.Node) string {
	for _, n := range nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				return c.Data
			}
			if t := firstText([]*html.Node{c}); t != "" {
				return t
			}
		}
	}
	return ""
}

// firstMeta returns the first non-empty of the og property and the named
// meta tag.
func firstMeta(page *goquery.Document, prop, name string) string {
	if v := property(page, prop); v != "" {
		return v
	}
	v, _ := page.Find("meta[name='" + name + "']").First().Attr("content")
	return strings.TrimSpace(v)
}

func property(page *goquery.Document, prop string) string {
	v, _ := page.Find("meta[property='" + prop + "']").First().Attr("content")
	return strings.TrimSpace(v)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
