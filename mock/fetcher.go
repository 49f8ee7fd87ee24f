package mock

import (
	"context"

	"github.com/fwojciec/xornal"
)

var _ xornal.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of xornal.Fetcher.
type Fetcher struct {
	FetchFn         func(ctx context.Context, url string) (string, error)
	FetchResponseFn func(ctx context.Context, url string) (*xornal.Response, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) FetchResponse(ctx context.Context, url string) (*xornal.Response, error) {
	return f.FetchResponseFn(ctx, url)
}
