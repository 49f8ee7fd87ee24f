package xornal

import "context"

// Response is the raw outcome of an HTTP request.
type Response struct {
	URL        string
	StatusCode int
	Body       []byte
}

// Fetcher retrieves remote content with bounded retries.
type Fetcher interface {
	// Fetch returns the body of the URL as text.
	// A final 4xx/5xx status is reported as EHTTP.
	Fetch(ctx context.Context, url string) (string, error)

	// FetchResponse returns the last response received for the URL,
	// whatever its status. Transport failures that persist after all
	// attempts are reported as ETIMEOUT, ECONNECTION or ETRANSPORT.
	FetchResponse(ctx context.Context, url string) (*Response, error)
}
