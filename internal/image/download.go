package imagepkg

import (
	"bytes"
	"context"
	"image"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	"github.com/youruser/recapapp/internal/util"
	"github.com/youruser/recapapp/pkg/logger"
	"github.com/youruser/recapapp/pkg/metrics"
)

// AssetKind labels fetches in logs and metrics.
type AssetKind string

const (
	KindCompanion AssetKind = "companion"
	KindChampion  AssetKind = "champion"
	KindItem      AssetKind = "item"
	KindTrait     AssetKind = "trait"
	KindData      AssetKind = "data"
)

// DefaultFetchTimeout bounds a single asset fetch.
const DefaultFetchTimeout = 15 * time.Second

// Fetcher downloads and decodes remote bitmaps. Failures never surface as
// errors: Fetch reports them as unavailable and logs them. All fetches of a
// Fetcher share one http.Client and thus one connection pool.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	cache   *BitmapCache
	log     logger.Logger
	metrics *metrics.Manager
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient replaces the default pooled client.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithFetchTimeout sets the per-fetch timeout.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithCache enables the decoded bitmap cache.
func WithCache(c *BitmapCache) FetcherOption {
	return func(f *Fetcher) { f.cache = c }
}

// WithFetcherLogger sets the logger.
func WithFetcherLogger(l logger.Logger) FetcherOption {
	return func(f *Fetcher) {
		if l != nil {
			f.log = l
		}
	}
}

// WithFetcherMetrics sets the metrics manager.
func WithFetcherMetrics(m *metrics.Manager) FetcherOption {
	return func(f *Fetcher) {
		if m != nil {
			f.metrics = m
		}
	}
}

// NewFetcher creates a fetcher.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		log:     logger.Nop(),
		metrics: metrics.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = util.NewClient(f.timeout, 16)
	}
	return f
}

// Fetch downloads and decodes the bitmap at url. ok is false on any transport
// error, non-200 status, decode failure, timeout or cancellation.
func (f *Fetcher) Fetch(ctx context.Context, kind AssetKind, url string) (img image.Image, ok bool) {
	if url == "" {
		return nil, false
	}
	if img, hit := f.cache.Get(url); hit {
		f.metrics.RecordCacheLookup(true)
		return img, true
	}
	if f.cache != nil {
		f.metrics.RecordCacheLookup(false)
	}

	start := time.Now()
	defer func() {
		f.metrics.RecordAssetFetch(string(kind), ok, time.Since(start).Seconds())
	}()

	body, err := f.FetchBytes(ctx, url)
	if err != nil {
		f.log.Warn(ctx, "asset unavailable", logger.String("kind", string(kind)), logger.String("url", url), logger.Error(err))
		return nil, false
	}
	img, err = imaging.Decode(bytes.NewReader(body))
	if err != nil {
		f.log.Warn(ctx, "asset undecodable", logger.String("kind", string(kind)), logger.String("url", url), logger.Error(err))
		return nil, false
	}
	f.cache.Set(url, img)
	return img, true
}

// FetchBytes returns the raw body at url, bounded by the fetch timeout.
func (f *Fetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	return util.GetBytes(ctx, f.client, url)
}
