package util

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxBodyBytes caps how much of a response body GetBytes reads.
const MaxBodyBytes = 8 << 20

// ErrStatus is returned for any non-200 response.
var ErrStatus = errors.New("unexpected http status")

// NewClient returns a client whose transport keeps a connection pool sized for
// fanning out many small GETs to a handful of CDN hosts.
func NewClient(timeout time.Duration, maxConnsPerHost int) *http.Client {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 4 * maxConnsPerHost
	t.MaxIdleConnsPerHost = maxConnsPerHost
	t.MaxConnsPerHost = maxConnsPerHost
	t.IdleConnTimeout = 90 * time.Second
	return &http.Client{Timeout: timeout, Transport: t}
}

// GetBytes performs a GET bound to ctx and returns the body of a 200 response.
func GetBytes(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxBodyBytes))
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
}
