package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/xornal"
)

// Downloader stores article pages found on category listings or feeds.
type Downloader struct {
	Fetcher    xornal.Fetcher
	Listing    xornal.ListingParser
	Feed       xornal.FeedParser
	Store      xornal.ArticleStore
	Categories []xornal.Category

	// Seen, if set, skips articles missing from disk whose download was
	// already attempted during this run.
	Seen xornal.SeenSet

	// BaseURL is prepended to relative article links.
	BaseURL string

	Logger *slog.Logger
}

// Category returns the configured category with the given name.
func (d *Downloader) Category(name string) (xornal.Category, error) {
	for _, c := range d.Categories {
		if c.Name == name {
			return c, nil
		}
	}
	return xornal.Category{}, xornal.Errorf(xornal.EINVALID, "invalid category: %s", name)
}

// DownloadCategory walks every listing page of the category and stores
// the articles it links to. Only a failure on the first page is returned;
// later page and article failures are counted in the result.
func (d *Downloader) DownloadCategory(ctx context.Context, name string, progress ProgressFunc) (*Result, error) {
	category, err := d.Category(name)
	if err != nil {
		return nil, err
	}
	logger := d.logger().With("category", name)

	first := category.PageURL(1)
	html, err := d.Fetcher.Fetch(ctx, first)
	if err != nil {
		return nil, fmt.Errorf("downloading category %s: %w", name, err)
	}
	entries, lastPage, err := d.Listing.ParseListing(html)
	if err != nil {
		return nil, fmt.Errorf("parsing category %s: %w", name, err)
	}
	logger.Info("category pages", "pages", lastPage)

	result := &Result{}
	progress.emit(ProgressEvent{Type: ProgressStarted, Total: lastPage})

	if err := d.downloadEntries(ctx, entries, result); err != nil {
		return result, err
	}
	logger.Info("finished page", "page", 1)
	progress.emit(ProgressEvent{Type: ProgressCompleted, Completed: 1, Total: lastPage, Path: first})

	for page := 2; page <= lastPage; page++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		url := category.PageURL(page)
		event := ProgressEvent{Type: ProgressCompleted, Completed: page, Total: lastPage, Path: url}

		entries, err := d.listingPage(ctx, url)
		if err != nil {
			logger.Error("error downloading category page", "url", url, "err", err)
			result.fail(url, err)
			event.Type = ProgressFailed
			event.Error = err
			progress.emit(event)
			continue
		}

		if err := d.downloadEntries(ctx, entries, result); err != nil {
			return result, err
		}
		logger.Info("finished page", "page", page)
		progress.emit(event)
	}

	logger.Info("category finished",
		"downloaded", result.OK+result.Existing,
		"existing", result.Existing,
		"errors", result.Errors,
	)
	progress.emit(ProgressEvent{Type: ProgressFinished, Completed: lastPage, Total: lastPage})
	return result, nil
}

// DownloadFeed stores the articles listed in a syndication feed.
func (d *Downloader) DownloadFeed(ctx context.Context, feedURL string, progress ProgressFunc) (*Result, error) {
	if d.Feed == nil {
		return nil, xornal.Errorf(xornal.EINVALID, "no feed parser configured")
	}

	body, err := d.Fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("downloading feed: %w", err)
	}
	entries, err := d.Feed.ParseFeed(body)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}
	d.logger().Info("feed entries", "url", feedURL, "entries", len(entries))

	result := &Result{}
	progress.emit(ProgressEvent{Type: ProgressStarted, Total: 1})
	if err := d.downloadEntries(ctx, entries, result); err != nil {
		return result, err
	}
	progress.emit(ProgressEvent{Type: ProgressFinished, Completed: 1, Total: 1, Path: feedURL})
	return result, nil
}

func (d *Downloader) listingPage(ctx context.Context, url string) ([]xornal.ListingEntry, error) {
	html, err := d.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	entries, _, err := d.Listing.ParseListing(html)
	return entries, err
}

func (d *Downloader) downloadEntries(ctx context.Context, entries []xornal.ListingEntry, result *Result) error {
	logger := d.logger()
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		entry.URL = d.absolute(entry.URL)

		exists, err := d.Store.Exists(entry)
		if err != nil {
			logger.Error("error downloading article", "url", entry.URL, "err", err)
			result.fail(entry.URL, err)
			continue
		}
		if exists {
			logger.Info("article already exists", "url", entry.URL)
			result.Existing++
			continue
		}

		// Only articles missing from disk reach the seen set: a repeat here
		// is one whose earlier download in this run failed.
		if d.Seen != nil && d.Seen.TestAndAdd(entry.URL) {
			logger.Debug("article repeated in this run", "url", entry.URL)
			result.Skipped++
			continue
		}

		n, err := d.downloadArticle(ctx, entry)
		if err != nil {
			logger.Error("error downloading article", "url", entry.URL, "err", err)
			result.fail(entry.URL, err)
			continue
		}
		logger.Info("downloaded article", "url", entry.URL)
		result.OK++
		result.Bytes += n
	}
	return nil
}

// downloadArticle fetches and stores one article and returns its size.
func (d *Downloader) downloadArticle(ctx context.Context, entry xornal.ListingEntry) (int, error) {
	html, err := d.Fetcher.Fetch(ctx, entry.URL)
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(html) == "" {
		return 0, xornal.Errorf(xornal.EEMPTY, "empty content for %s", entry.URL)
	}

	if _, err := d.Store.Save(ctx, entry, html); err != nil {
		return 0, err
	}
	return len(html), nil
}

func (d *Downloader) absolute(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return strings.TrimRight(d.BaseURL, "/") + href
}

func (d *Downloader) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}
