package xornal_test

import (
	"testing"

	"github.com/fwojciec/xornal"
	"github.com/stretchr/testify/assert"
)

func TestCleanChars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: " \n\t ", want: ""},
		{name: "keeps layout characters", input: "a\tb\nc\rd", want: "a\tb\nc\rd"},
		{name: "replaces control characters", input: "a\x00b\x0bc\x1fd\x7fe", want: "a b c d e"},
		{name: "trims result", input: "\x01 texto \x02", want: "texto"},
		{name: "keeps non-ASCII", input: "Nós Diario ñ", want: "Nós Diario ñ"},
		{name: "replaces invalid utf-8", input: "a\xffb", want: "a�b"},
		{name: "replaces each invalid byte", input: "a\xff\xfeb", want: "a\uFFFD\uFFFDb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, xornal.CleanChars(tt.input))
		})
	}
}

func TestCleanBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Galiza", xornal.CleanBytes([]byte("  Galiza\x00")))
	assert.Empty(t, xornal.CleanBytes(nil))
}

func TestPrepareHTML(t *testing.T) {
	t.Parallel()

	t.Run("wraps fragment in document shell", func(t *testing.T) {
		t.Parallel()

		got := xornal.PrepareHTML("texto")

		assert.Equal(t, "<html><body><p class='article'>texto</p></body></html>", got)
	})

	t.Run("unescapes entities and strips strong tags", func(t *testing.T) {
		t.Parallel()

		got := xornal.PrepareHTML("&lt;p&gt;<strong>Ola</strong> &amp; adeus&lt;/p&gt;")

		assert.Equal(t, "<html><body><p class='article'><p>Ola & adeus</p></p></body></html>", got)
	})

	t.Run("drops leading line breaks in paragraphs", func(t *testing.T) {
		t.Parallel()

		got := xornal.PrepareHTML("<p><br>\nprimeira liña</p>")

		assert.Equal(t, "<html><body><p class='article'><p>primeira liña</p></p></body></html>", got)
	})

	t.Run("empty fragment yields degenerate shell", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "<html><body><p class='article'></p></body></html>", xornal.PrepareHTML(""))
	})
}

func TestHashURL(t *testing.T) {
	t.Parallel()

	a := xornal.HashURL("https://praza.gal/politica/artigo")
	b := xornal.HashURL("https://praza.gal/politica/artigo")

	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, xornal.HashURL("https://praza.gal/politica/outro"))
}

func TestNewsIDFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "relative article path", url: "/articulo/cultura/-/20240501103000123456.html", want: "123456"},
		{name: "absolute url", url: "https://www.nosdiario.gal/articulo/mundo/-/20231111090000987.html", want: "987"},
		{name: "segment shorter than date prefix", url: "/articulo/x/-/2024.html", want: ""},
		{name: "no slash", url: "20240501103000abc.html", want: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, xornal.NewsIDFromURL(tt.url))
		})
	}
}

func TestCategory_PageURL(t *testing.T) {
	t.Parallel()

	c := xornal.Category{Name: "Cultura", URL: "https://praza.gal/cultura/todo?p={page}"}

	assert.Equal(t, "https://praza.gal/cultura/todo?p=3", c.PageURL(3))
}
