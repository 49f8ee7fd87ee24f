package xornal

import (
	"bytes"
	"encoding/json"
)

type feedRelated struct {
	Link   string `json:"link"`
	Title  string `json:"title"`
	NewsID string `json:"newsid"`
}

type pageRelated struct {
	Link       string `json:"link"`
	Title      string `json:"title"`
	NewsItemID string `json:"news_item_id"`
}

type feedNews struct {
	Headline    string        `json:"headline,omitempty"`
	Subheadline string        `json:"subheadline,omitempty"`
	Categories  []string      `json:"categories"`
	Abstract    string        `json:"abstract,omitempty"`
	BodyHTML    string        `json:"body_html"`
	Body        string        `json:"body"`
	Related     []feedRelated `json:"related,omitempty"`
	Keywords    []string      `json:"keywords,omitempty"`
	Images      []Image       `json:"images,omitempty"`
}

type pageNews struct {
	Headline string        `json:"headline"`
	Abstract *string       `json:"abstract"`
	Taxonomy *Taxonomy     `json:"taxonomy"`
	BodyHTML string        `json:"body_html"`
	Body     string        `json:"body"`
	Related  []pageRelated `json:"related"`
	Images   []Image       `json:"images"`
}

// wireNews accepts both variants.
type wireNews struct {
	Headline    string     `json:"headline"`
	Subheadline string     `json:"subheadline"`
	Categories  []string   `json:"categories"`
	Taxonomy    *Taxonomy  `json:"taxonomy"`
	Abstract    *string    `json:"abstract"`
	BodyHTML    string     `json:"body_html"`
	Body        string     `json:"body"`
	Related     []struct {
		Link       string `json:"link"`
		Title      string `json:"title"`
		NewsID     string `json:"newsid"`
		NewsItemID string `json:"news_item_id"`
	} `json:"related"`
	Images   []Image  `json:"images"`
	Keywords []string `json:"keywords"`
}

// MarshalJSON encodes n in the shape of its variant without escaping HTML.
func (n News) MarshalJSON() ([]byte, error) {
	var v any
	if n.Taxonomy != nil {
		page := pageNews{
			Headline: n.Headline,
			Abstract: StringPtr(n.Abstract),
			Taxonomy: n.Taxonomy,
			BodyHTML: n.BodyHTML,
			Body:     n.Body,
			Related:  make([]pageRelated, 0, len(n.Related)),
			Images:   make([]Image, 0, len(n.Images)),
		}
		for _, r := range n.Related {
			page.Related = append(page.Related, pageRelated{Link: r.Link, Title: r.Title, NewsItemID: r.NewsID})
		}
		page.Images = append(page.Images, n.Images...)
		v = page
	} else {
		feed := feedNews{
			Headline:    n.Headline,
			Subheadline: n.Subheadline,
			Categories:  n.Categories,
			Abstract:    n.Abstract,
			BodyHTML:    n.BodyHTML,
			Body:        n.Body,
			Keywords:    n.Keywords,
			Images:      n.Images,
		}
		for _, r := range n.Related {
			feed.Related = append(feed.Related, feedRelated(r))
		}
		v = feed
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON decodes either variant. Empty lists decode as nil.
func (n *News) UnmarshalJSON(data []byte) error {
	var w wireNews
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*n = News{
		Headline:    w.Headline,
		Subheadline: w.Subheadline,
		Categories:  w.Categories,
		Taxonomy:    w.Taxonomy,
		BodyHTML:    w.BodyHTML,
		Body:        w.Body,
		Keywords:    w.Keywords,
	}
	if w.Abstract != nil {
		n.Abstract = *w.Abstract
	}
	for _, r := range w.Related {
		id := r.NewsID
		if id == "" {
			id = r.NewsItemID
		}
		n.Related = append(n.Related, Related{Link: r.Link, Title: r.Title, NewsID: id})
	}
	if len(w.Images) > 0 {
		n.Images = w.Images
	}
	return nil
}
