package xornal

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	ContentHTML string

	// Text is the plain-text rendition of the main content.
	Text string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)
}

// TextReducer reduces article markup to plain text.
type TextReducer interface {
	// Reduce returns the article text.
	// Returns EEMPTY for blank input and EEXTRACT when no text is found.
	Reduce(html string) (string, error)
}

// FragmentCleaner processes the HTML fragments embedded in feed items.
type FragmentCleaner interface {
	// CleanAbstract returns the plain text of an abstract fragment.
	CleanAbstract(html string) (string, error)

	// SplitRelated removes related-content blocks from body markup and
	// returns the links they held together with the remaining markup.
	SplitRelated(body string) ([]Related, string, error)
}
