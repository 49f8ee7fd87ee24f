package goquery_test

import (
	"testing"

	"github.com/fwojciec/xornal"
	"github.com/fwojciec/xornal/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingPage = `<html><body>
<ul class="articles-list grid">
<li><article>
<h2 class="headline"><a href="/cultura/festival-de-cine">Festival de cine</a></h2>
<time class="date" datetime="2024-10-01T09:30:00+02:00">1 de outubro</time>
</article></li>
<li><article>
<h2 class="headline"><a href=" /cultura/premios ">Os premios</a></h2>
<time class="date published" datetime="2024-09-28T18:00:00+02:00">28 de setembro</time>
</article></li>
<li><article><h2 class="headline">Sen ligazón</h2></article></li>
</ul>
<nav class="at-pagination">
<a class="pagination-link" href="?p=1">1</a>
<a class="pagination-link" href="?p=2">2</a>
<a class="pagination-link" href="?p=37"> 37 </a>
<a class="pagination-link next" href="?p=2">Seguinte</a>
</nav>
</body></html>`

func TestListingParser_ParseListing(t *testing.T) {
	t.Parallel()

	t.Run("returns article entries in page order", func(t *testing.T) {
		t.Parallel()

		entries, _, err := goquery.NewListingParser().ParseListing(listingPage)
		require.NoError(t, err)

		assert.Equal(t, []xornal.ListingEntry{
			{URL: "/cultura/festival-de-cine", Published: "2024-10-01T09:30:00+02:00"},
			{URL: "/cultura/premios", Published: "2024-09-28T18:00:00+02:00"},
		}, entries)
	})

	t.Run("returns highest numeric pagination link", func(t *testing.T) {
		t.Parallel()

		_, last, err := goquery.NewListingParser().ParseListing(listingPage)
		require.NoError(t, err)

		assert.Equal(t, 37, last)
	})

	t.Run("defaults to one page without pagination", func(t *testing.T) {
		t.Parallel()

		entries, last, err := goquery.NewListingParser().ParseListing(`<html><body><p>Sen artigos</p></body></html>`)
		require.NoError(t, err)

		assert.Empty(t, entries)
		assert.Equal(t, 1, last)
	})
}
