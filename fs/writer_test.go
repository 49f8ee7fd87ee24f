package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/xornal"
	"github.com/fwojciec/xornal/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *xornal.Document {
	url := "https://praza.gal/cultura/festival-de-cine"
	published := "2024-10-01T09:30:00+02:00"
	caption := "Público no teatro"
	return &xornal.Document{
		Metadata: xornal.Metadata{
			NewsItemID:          xornal.HashURL(url),
			URL:                 &url,
			ThisRevisionCreated: &published,
		},
		News: xornal.News{
			Headline: "Festival de cine",
			Abstract: "Ourense acolle <b>unha</b> nova edición",
			Taxonomy: &xornal.Taxonomy{
				Categories:   []string{"Cultura"},
				Topics:       []string{"Cine"},
				LocalEdition: "Ourense",
			},
			BodyHTML: `<div class="article-body"><p>Corpo & máis</p></div>`,
			Body:     "Corpo & máis",
			Images:   []xornal.Image{{URL: "https://praza.gal/f.jpg", Caption: &caption}, {URL: "https://praza.gal/g.jpg"}},
		},
		Source: "source/2024/10/praza_20241001_festival-de-cine.html",
	}
}

func TestWriter_OutputPath(t *testing.T) {
	t.Parallel()

	w := fs.NewWriter("source", "corpus")

	t.Run("mirrors source tree with document extension", func(t *testing.T) {
		t.Parallel()

		got, err := w.OutputPath(filepath.Join("source", "2024", "10", "praza_20241001_a.html"))
		require.NoError(t, err)

		assert.Equal(t, filepath.Join("corpus", "2024", "10", "praza_20241001_a.json"), got)
	})

	t.Run("rejects path outside source root", func(t *testing.T) {
		t.Parallel()

		_, err := w.OutputPath(filepath.Join("elsewhere", "a.xml"))

		require.Error(t, err)
		assert.Equal(t, xornal.EINVALID, xornal.ErrorCode(err))
	})
}

func TestWriter_WriteDocument(t *testing.T) {
	t.Parallel()

	t.Run("writes document that reads back unchanged", func(t *testing.T) {
		t.Parallel()

		// Given a writer over temporary roots
		base := t.TempDir()
		w := fs.NewWriter(filepath.Join(base, "source"), filepath.Join(base, "corpus"))
		doc := sampleDocument()

		// When I write the document
		path, err := w.WriteDocument(context.Background(), doc, filepath.Join(base, "source", "2024", "10", "a.html"))
		require.NoError(t, err)

		// Then it lands in the mirrored location
		assert.Equal(t, filepath.Join(base, "corpus", "2024", "10", "a.json"), path)

		// And reading it back yields the same document
		got, err := fs.ReadDocument(path)
		require.NoError(t, err)
		assert.Equal(t, doc, got)
	})

	t.Run("writes indented JSON without escaping", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		w := fs.NewWriter(base, base)

		path, err := w.WriteDocument(context.Background(), sampleDocument(), filepath.Join(base, "a.html"))
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		text := string(data)

		assert.True(t, strings.HasPrefix(text, "{\n    \"metadata\": {\n        \"news_item_id\""))
		assert.Contains(t, text, "Público no teatro")
		assert.Contains(t, text, `<div class=\"article-body\">`)
		assert.Contains(t, text, "Corpo & máis")
		assert.Contains(t, text, `"first_created": null`)
		assert.Contains(t, text, `"caption": null`)
		assert.NotContains(t, text, `"categories": null`)
	})

	t.Run("serializes the same key set as it reads", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		w := fs.NewWriter(base, base)

		path, err := w.WriteDocument(context.Background(), sampleDocument(), filepath.Join(base, "a.html"))
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var first map[string]any
		require.NoError(t, json.Unmarshal(data, &first))

		doc, err := fs.ReadDocument(path)
		require.NoError(t, err)
		again, err := fs.Marshal(doc)
		require.NoError(t, err)

		var second map[string]any
		require.NoError(t, json.Unmarshal(again, &second))
		assert.Equal(t, first, second)
	})

	t.Run("overwrites previous output", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		w := fs.NewWriter(base, base)
		src := filepath.Join(base, "a.html")

		_, err := w.WriteDocument(context.Background(), sampleDocument(), src)
		require.NoError(t, err)

		doc := sampleDocument()
		doc.News.Headline = "Titular novo"
		path, err := w.WriteDocument(context.Background(), doc, src)
		require.NoError(t, err)

		got, err := fs.ReadDocument(path)
		require.NoError(t, err)
		assert.Equal(t, "Titular novo", got.News.Headline)
	})

	t.Run("rejects incomplete document", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		w := fs.NewWriter(base, base)
		doc := sampleDocument()
		doc.News.Abstract = ""
		doc.News.Body = ""

		_, err := w.WriteDocument(context.Background(), doc, filepath.Join(base, "a.html"))

		require.Error(t, err)
		assert.Equal(t, xornal.EINCOMPLETE, xornal.ErrorCode(err))
		_, statErr := os.Stat(filepath.Join(base, "a.json"))
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	t.Run("writes page documents with null abstract and item ids", func(t *testing.T) {
		t.Parallel()

		doc := sampleDocument()
		doc.News.Abstract = ""
		doc.News.Related = []xornal.Related{{Link: "https://praza.gal/a", Title: "A", NewsID: "abc"}}

		data, err := fs.Marshal(doc)
		require.NoError(t, err)
		text := string(data)

		assert.Contains(t, text, `"abstract": null`)
		assert.Contains(t, text, `"news_item_id": "abc"`)
		assert.NotContains(t, text, `"newsid"`)
		assert.NotContains(t, text, `"categories": null`)
	})

	t.Run("writes empty page lists as arrays", func(t *testing.T) {
		t.Parallel()

		doc := sampleDocument()
		doc.News.Images = nil

		data, err := fs.Marshal(doc)
		require.NoError(t, err)

		var got map[string]map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, []any{}, got["news"]["related"])
		assert.Equal(t, []any{}, got["news"]["images"])
	})

	t.Run("writes feed documents with newsid and omits empty fields", func(t *testing.T) {
		t.Parallel()

		doc := &xornal.Document{
			Metadata: xornal.Metadata{NewsItemID: "id1"},
			News: xornal.News{
				Categories: []string{"Política"},
				Body:       "Corpo",
				Related:    []xornal.Related{{Link: "https://www.nosdiario.gal/a", Title: "A", NewsID: "abc"}},
			},
			SourceXML: "source/2024/10/nos_20241001.xml",
		}

		data, err := fs.Marshal(doc)
		require.NoError(t, err)

		var got map[string]map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		news := got["news"]
		assert.NotContains(t, news, "headline")
		assert.NotContains(t, news, "abstract")
		assert.NotContains(t, news, "taxonomy")
		assert.Equal(t, []any{map[string]any{
			"link":   "https://www.nosdiario.gal/a",
			"title":  "A",
			"newsid": "abc",
		}}, news["related"])
	})

	t.Run("reads related ids of both variants", func(t *testing.T) {
		t.Parallel()

		var page xornal.News
		require.NoError(t, json.Unmarshal([]byte(`{"taxonomy":{},"related":[{"link":"l","title":"t","news_item_id":"p"}]}`), &page))
		var feed xornal.News
		require.NoError(t, json.Unmarshal([]byte(`{"related":[{"link":"l","title":"t","newsid":"f"}]}`), &feed))

		require.Len(t, page.Related, 1)
		assert.Equal(t, "p", page.Related[0].NewsID)
		require.Len(t, feed.Related, 1)
		assert.Equal(t, "f", feed.Related[0].NewsID)
	})
}

func TestReadDocument_NotFound(t *testing.T) {
	t.Parallel()

	_, err := fs.ReadDocument(filepath.Join(t.TempDir(), "missing.json"))

	require.Error(t, err)
	assert.Equal(t, xornal.ENOTFOUND, xornal.ErrorCode(err))
}

func TestFindSources(t *testing.T) {
	t.Parallel()

	t.Run("lists matching files recursively in order", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		for _, p := range []string{"2024/10/b.xml", "2024/09/a.xml", "2024/10/c.XML", "2024/10/notes.txt"} {
			full := filepath.Join(root, filepath.FromSlash(p))
			require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
			require.NoError(t, os.WriteFile(full, nil, 0644))
		}

		got, err := fs.FindSources(root, ".xml")
		require.NoError(t, err)

		assert.Equal(t, []string{
			filepath.Join(root, "2024", "09", "a.xml"),
			filepath.Join(root, "2024", "10", "b.xml"),
			filepath.Join(root, "2024", "10", "c.XML"),
		}, got)
	})

	t.Run("returns not found for missing root", func(t *testing.T) {
		t.Parallel()

		_, err := fs.FindSources(filepath.Join(t.TempDir(), "missing"), ".html")

		require.Error(t, err)
		assert.Equal(t, xornal.ENOTFOUND, xornal.ErrorCode(err))
	})
}
