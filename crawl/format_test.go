package crawl_test

import (
	"testing"

	"github.com/fwojciec/xornal/crawl"
	"github.com/stretchr/testify/assert"
)

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	t.Run("returns URL unchanged when shorter than max", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "https://praza.gal", crawl.TruncateURL("https://praza.gal", 50))
	})

	t.Run("keeps the tail when longer than max", func(t *testing.T) {
		t.Parallel()
		url := "https://praza.gal/cultura/festival-de-cine"
		result := crawl.TruncateURL(url, 20)
		assert.Equal(t, ".../festival-de-cine", result)
		assert.Len(t, result, 20)
	})

	t.Run("returns empty string when maxLen is not positive", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, crawl.TruncateURL("https://praza.gal", 0))
		assert.Empty(t, crawl.TruncateURL("https://praza.gal", -1))
	})

	t.Run("returns prefix of URL when maxLen is very small", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "htt", crawl.TruncateURL("https://praza.gal", 3))
		assert.Equal(t, "a", crawl.TruncateURL("a", 2))
	})
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", crawl.FormatBytes(512))
	assert.Equal(t, "1.5 KB", crawl.FormatBytes(1536))
	assert.Equal(t, "2.0 MB", crawl.FormatBytes(2*1024*1024))
}

func TestSummary(t *testing.T) {
	t.Parallel()

	t.Run("reports processed and failed files", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Parsed 5 articles, 2 with errors", crawl.Summary(&crawl.Result{OK: 3, Errors: 2}))
	})

	t.Run("mentions skipped files", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Parsed 3 articles, 0 with errors (1 skipped)", crawl.Summary(&crawl.Result{OK: 3, Skipped: 1}))
	})
}

func TestDownloadSummary(t *testing.T) {
	t.Parallel()

	got := crawl.DownloadSummary("Cultura", &crawl.Result{OK: 4, Existing: 2, Skipped: 1, Errors: 1, Bytes: 2048})

	assert.Equal(t, "Cultura: downloaded 6 articles (2 already present, 1 repeated, 2.0 KB) with 1 errors", got)
}

func TestResult_Add(t *testing.T) {
	t.Parallel()

	total := &crawl.Result{OK: 1, Failures: []crawl.Failure{{Path: "a"}}}
	total.Add(&crawl.Result{OK: 2, Existing: 1, Skipped: 3, Errors: 1, Bytes: 10, Failures: []crawl.Failure{{Path: "b"}}})
	total.Add(nil)

	assert.Equal(t, 3, total.OK)
	assert.Equal(t, 1, total.Existing)
	assert.Equal(t, 3, total.Skipped)
	assert.Equal(t, 1, total.Errors)
	assert.Equal(t, 10, total.Bytes)
	assert.Equal(t, 4, total.Processed())
	assert.Equal(t, []crawl.Failure{{Path: "a"}, {Path: "b"}}, total.Failures)
}
