package xornal

import "context"

// Document is the canonical article record produced by a Normalizer,
// independent of the source format.
type Document struct {
	Metadata Metadata `json:"metadata"`
	News     News     `json:"news"`

	// Source is the originating file path (scraped HTML pages).
	Source string `json:"source,omitempty"`

	// SourceXML is the originating file name (XML feed items).
	SourceXML string `json:"source_xml,omitempty"`
}

// Metadata identifies an article and its publication timeline.
// Timestamps are ISO-8601 strings copied verbatim from the source.
type Metadata struct {
	NewsItemID          string  `json:"news_item_id"`
	URL                 *string `json:"url"`
	FirstCreated        *string `json:"first_created"`
	FirstPublished      *string `json:"first_published"`
	ThisRevisionCreated *string `json:"this_revision_created"`
}

// News holds the article content.
//
// The JSON form depends on the variant. Scraped pages (Taxonomy set) always
// carry headline, abstract, related and images, with a missing abstract as
// null and related ids under news_item_id. Feed items omit empty optional
// fields and use newsid.
type News struct {
	Headline    string
	Subheadline string

	// Categories is the flat category set used by XML feeds.
	Categories []string

	// Taxonomy is the faceted classification used by scraped pages.
	Taxonomy *Taxonomy

	Abstract string
	BodyHTML string
	Body     string
	Related  []Related
	Images   []Image
	Keywords []string
}

// Taxonomy is the three-facet classification of a scraped article.
type Taxonomy struct {
	Categories   []string `json:"categories"`
	Topics       []string `json:"topics"`
	LocalEdition string   `json:"local-edition"`
}

// Related is a sibling article referenced by an article.
type Related struct {
	Link   string
	Title  string
	NewsID string
}

// Image is an article picture. Caption is nil when the source has none.
type Image struct {
	URL     string  `json:"url"`
	Caption *string `json:"caption"`
}

// Validate returns an error if the document is missing required content.
func (d *Document) Validate() error {
	if d.News.Abstract == "" && d.News.Body == "" {
		return Errorf(EINCOMPLETE, "document has neither abstract nor body")
	}
	if d.SourceXML != "" && len(d.News.Categories) == 0 {
		return Errorf(EINCOMPLETE, "document has no categories")
	}
	return nil
}

// Source is a raw input handed to a Normalizer.
type Source struct {
	// Path locates the input on disk, or is the URL for fetched pages.
	Path    string
	Content []byte
}

// Normalizer produces a canonical document from source-specific markup.
type Normalizer interface {
	// Normalize parses src and returns the document.
	// Returns ESKIPPED for input that should be ignored, EMALFORMED for
	// unparsable markup and EINCOMPLETE when required fields are missing.
	Normalize(ctx context.Context, src *Source) (*Document, error)
}

// DocumentWriter persists documents.
type DocumentWriter interface {
	// WriteDocument stores doc at a location derived from sourcePath
	// and returns the written path.
	WriteDocument(ctx context.Context, doc *Document, sourcePath string) (string, error)
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
