package mock

import (
	"context"

	"github.com/fwojciec/xornal"
)

var (
	_ xornal.ListingParser = (*ListingParser)(nil)
	_ xornal.FeedParser    = (*FeedParser)(nil)
	_ xornal.ArticleStore  = (*ArticleStore)(nil)
	_ xornal.SeenSet       = (*SeenSet)(nil)
)

// ListingParser is a mock implementation of xornal.ListingParser.
type ListingParser struct {
	ParseListingFn func(html string) ([]xornal.ListingEntry, int, error)
}

func (p *ListingParser) ParseListing(html string) ([]xornal.ListingEntry, int, error) {
	return p.ParseListingFn(html)
}

// FeedParser is a mock implementation of xornal.FeedParser.
type FeedParser struct {
	ParseFeedFn func(body string) ([]xornal.ListingEntry, error)
}

func (p *FeedParser) ParseFeed(body string) ([]xornal.ListingEntry, error) {
	return p.ParseFeedFn(body)
}

// ArticleStore is a mock implementation of xornal.ArticleStore.
type ArticleStore struct {
	PathFn   func(entry xornal.ListingEntry) (string, error)
	ExistsFn func(entry xornal.ListingEntry) (bool, error)
	SaveFn   func(ctx context.Context, entry xornal.ListingEntry, html string) (string, error)
}

func (s *ArticleStore) Path(entry xornal.ListingEntry) (string, error) {
	return s.PathFn(entry)
}

func (s *ArticleStore) Exists(entry xornal.ListingEntry) (bool, error) {
	return s.ExistsFn(entry)
}

func (s *ArticleStore) Save(ctx context.Context, entry xornal.ListingEntry, html string) (string, error) {
	return s.SaveFn(ctx, entry, html)
}

// SeenSet is a mock implementation of xornal.SeenSet.
type SeenSet struct {
	TestAndAddFn func(url string) bool
}

func (s *SeenSet) TestAndAdd(url string) bool {
	return s.TestAndAddFn(url)
}
