// Package resty provides a resty-based implementation of xornal.Fetcher
// with bounded, fixed-delay retries.
package resty

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/fwojciec/xornal"
	"github.com/go-resty/resty/v2"
)

// Defaults applied by NewFetcher.
const (
	DefaultTimeout     = 10 * time.Second
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 2 * time.Second
	DefaultUserAgent   = "ProxectoNOSApp/1.0"
)

// retryStatusCodes are responses worth asking for again.
var retryStatusCodes = map[int]bool{
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
	http.StatusTooManyRequests:     true,
}

// Ensure Fetcher implements xornal.Fetcher at compile time.
var _ xornal.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages over HTTP, retrying transient failures.
type Fetcher struct {
	client      *resty.Client
	timeout     time.Duration
	maxAttempts int
	retryDelay  time.Duration
	userAgent   string
	logger      *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for each request.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxAttempts sets how many requests are made before giving up.
func WithMaxAttempts(n int) Option {
	return func(f *Fetcher) {
		f.maxAttempts = n
	}
}

// WithRetryDelay sets the fixed pause between attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.retryDelay = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithLogger sets the logger used to report retries.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultTimeout,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
		userAgent:   DefaultUserAgent,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.maxAttempts < 1 {
		f.maxAttempts = 1
	}

	f.client = resty.New().
		SetTimeout(f.timeout).
		SetHeader("User-Agent", f.userAgent)

	return f
}

// Fetch returns the body of the URL as text.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := f.FetchResponse(ctx, url)
	if err != nil {
		return "", err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		f.logger.Error("http error",
			"url", url,
			"status", resp.StatusCode,
		)
		return "", xornal.Errorf(xornal.EHTTP, "HTTP %d error in %s", resp.StatusCode, url)
	}

	return string(resp.Body), nil
}

// FetchResponse returns the last response received for the URL.
// Retryable statuses are retried while attempts remain; the final
// response is returned as-is whatever its status.
func (f *Fetcher) FetchResponse(ctx context.Context, url string) (*xornal.Response, error) {
	var lastErr error
	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		f.logger.Debug("fetching url", "url", url, "attempt", attempt)

		resp, err := f.client.R().SetContext(ctx).Get(url)
		if err == nil {
			status := resp.StatusCode()
			if retryStatusCodes[status] && attempt < f.maxAttempts {
				f.logger.Warn("retryable status",
					"url", url,
					"status", status,
					"next_attempt", attempt+1,
				)
				if err := f.wait(ctx); err != nil {
					return nil, err
				}
				continue
			}
			return &xornal.Response{
				URL:        url,
				StatusCode: status,
				Body:       resp.Body(),
			}, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		lastErr = err
		f.logger.Error("fetch failed",
			"url", url,
			"attempt", attempt,
			"err", err,
		)

		// Don't wait after the last attempt
		if attempt >= f.maxAttempts {
			break
		}
		if err := f.wait(ctx); err != nil {
			return nil, err
		}
	}

	return nil, classify(lastErr)
}

// wait pauses for the retry delay unless the context ends first.
func (f *Fetcher) wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(f.retryDelay):
		return nil
	}
}

// classify maps a transport failure onto a transport error code.
func classify(err error) error {
	if err == nil {
		return xornal.Errorf(xornal.ETRANSPORT, "unknown error fetching URL")
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return xornal.Wrapf(xornal.ETIMEOUT, err, "timeout occurred")
	}
	if isConnectionError(err) {
		return xornal.Wrapf(xornal.ECONNECTION, err, "connection error occurred")
	}
	return xornal.Wrapf(xornal.ETRANSPORT, err, "error fetching URL")
}

func isConnectionError(err error) bool {
	var opErr *net.OpError
	var dnsErr *net.DNSError
	return errors.As(err, &opErr) ||
		errors.As(err, &dnsErr) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}
