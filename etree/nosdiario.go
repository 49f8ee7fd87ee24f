// Package etree parses Nós Diario NewsML feed items with etree.
package etree

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/xornal"
	"golang.org/x/net/html/charset"
)

// DefaultBaseURL is the site root article URLs are built from.
const DefaultBaseURL = "https://www.nosdiario.gal"

// TaxonomyName is the FormalName of the properties holding categories.
const TaxonomyName = "Tesauro"

// Element paths, tried in order.
var (
	abstractPaths = []string{
		".//ContentItem[@type='article']/DataContent/nitf/body/body.head/abstract/p",
		".//abstract/p",
	}
	bodyPaths = []string{
		".//ContentItem[@type='article']/DataContent/nitf/body/body.content",
		".//body.content",
	}
	captionPaths = []string{
		".//DataContent/nitf/body/body.content/p",
		".//DataContent/nitf/body/body.head/abstract/p",
	}
)

// Ensure NosNormalizer implements xornal.Normalizer at compile time.
var _ xornal.Normalizer = (*NosNormalizer)(nil)

// NosNormalizer turns a NewsML feed item into a document.
type NosNormalizer struct {
	baseURL   string
	fragments xornal.FragmentCleaner
	reducer   xornal.TextReducer
	logger    *slog.Logger
}

// NewNosNormalizer creates a NosNormalizer. An empty baseURL selects
// DefaultBaseURL and a nil logger discards warnings.
func NewNosNormalizer(baseURL string, fragments xornal.FragmentCleaner, reducer xornal.TextReducer, logger *slog.Logger) *NosNormalizer {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &NosNormalizer{
		baseURL:   strings.TrimRight(baseURL, "/"),
		fragments: fragments,
		reducer:   reducer,
		logger:    logger,
	}
}

// Normalize parses one feed item. Zero-length input returns ESKIPPED.
func (n *NosNormalizer) Normalize(ctx context.Context, src *xornal.Source) (*xornal.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := n.logger.With("path", src.Path)

	if len(src.Content) == 0 {
		logger.Warn("skipping empty file")
		return nil, xornal.Errorf(xornal.ESKIPPED, "empty file: %s", src.Path)
	}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := doc.ReadFromBytes(src.Content); err != nil {
		return nil, xornal.Wrapf(xornal.EMALFORMED, err, "failed to parse XML: %s", src.Path)
	}
	root := doc.Root()
	if root == nil {
		return nil, xornal.Errorf(xornal.EMALFORMED, "no root element: %s", src.Path)
	}

	categories := categories(root)
	if len(categories) == 0 {
		logger.Warn("no categories found")
		return nil, xornal.Errorf(xornal.EINCOMPLETE, "no categories in %s", src.Path)
	}

	bodyHTML := findText(root, bodyPaths...)
	if strings.TrimSpace(bodyHTML) == "" {
		return nil, xornal.Errorf(xornal.EINCOMPLETE, "no body in %s", src.Path)
	}
	related, bodyHTML, err := n.fragments.SplitRelated(bodyHTML)
	if err != nil {
		return nil, xornal.Wrapf(xornal.EINCOMPLETE, err, "failed to split related content in %s", src.Path)
	}

	body, err := n.reducer.Reduce(xornal.PrepareHTML(bodyHTML))
	if err != nil {
		logger.Error("error cleaning body", "err", err)
		body = ""
	}

	meta := metadata(root)
	if url := n.articleURL(root, categories[0]); url != "" {
		meta.URL = &url
	} else {
		logger.Warn("cannot build article URL", "news_item_id", meta.NewsItemID)
	}

	out := &xornal.Document{
		Metadata: meta,
		News: xornal.News{
			Headline:    findText(root, ".//NewsLines/HeadLine"),
			Subheadline: findText(root, ".//NewsLines/SubHeadLine"),
			Categories:  categories,
			Abstract:    n.abstract(root, logger),
			BodyHTML:    bodyHTML,
			Body:        body,
			Related:     related,
			Images:      images(root),
			Keywords:    keywords(root),
		},
		SourceXML: filepath.Base(src.Path),
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

func (n *NosNormalizer) abstract(root *etree.Element, logger *slog.Logger) string {
	raw := findText(root, abstractPaths...)
	if raw == "" {
		return ""
	}
	abstract, err := n.fragments.CleanAbstract(xornal.PrepareHTML(raw))
	if err != nil {
		logger.Warn("error cleaning abstract", "err", err)
		return ""
	}
	if abstract == "" {
		logger.Warn("abstract is empty after cleaning")
	}
	return abstract
}

// articleURL rebuilds the public URL from the date and item identifiers.
func (n *NosNormalizer) articleURL(root *etree.Element, category string) string {
	uid := findText(root, ".//NewsIdentifier/NewsItemId")
	dateID := findText(root, ".//NewsIdentifier/DateId")
	if uid == "" || dateID == "" {
		return ""
	}
	dateID, _, _ = strings.Cut(dateID, "+")
	dateID = strings.ReplaceAll(dateID, "T", "")
	return n.baseURL + "/articulo/" + category + "/-/" + dateID + uid + ".html"
}

func metadata(root *etree.Element) xornal.Metadata {
	return xornal.Metadata{
		NewsItemID:          findText(root, ".//NewsIdentifier/NewsItemId"),
		FirstCreated:        xornal.StringPtr(findText(root, ".//NewsManagement/FirstCreated")),
		FirstPublished:      xornal.StringPtr(findText(root, ".//NewsManagement/FirstPublished")),
		ThisRevisionCreated: xornal.StringPtr(findText(root, ".//NewsManagement/ThisRevisionCreated")),
	}
}

// categories returns the taxonomy values in first-seen order.
func categories(root *etree.Element) []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range root.FindElements(".//Property[@FormalName='" + TaxonomyName + "']") {
		v := p.SelectAttrValue("Value", "")
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// keywords splits every keyword key list and sorts the distinct tokens
// case-insensitively.
func keywords(root *etree.Element) []string {
	var out []string
	seen := make(map[string]bool)
	for _, kw := range root.FindElements(".//keyword") {
		for _, k := range strings.Split(kw.SelectAttrValue("key", ""), ",") {
			k = strings.TrimSpace(k)
			if k == "" || seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i]), strings.ToLower(out[j])
		if li != lj {
			return li < lj
		}
		return out[i] < out[j]
	})
	return out
}

// findText returns the text of the first path that yields non-empty text.
func findText(root *etree.Element, paths ...string) string {
	for _, p := range paths {
		if el := root.FindElement(p); el != nil {
			if t := el.Text(); t != "" {
				return t
			}
		}
	}
	return ""
}
