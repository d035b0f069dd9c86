package seed

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"salesdash/internal/core"
)

// maxSeedBytes bounds the dataset body.
const maxSeedBytes = 32 << 20

// HTTPSource downloads the dataset as a JSON array.
type HTTPSource struct {
	url      string
	client   *http.Client
	maxBytes int64
}

// NewHTTPSource returns a source for url. A nil client gets a pooled default.
func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = newHTTPClient()
	}
	return &HTTPSource{url: url, client: client, maxBytes: maxSeedBytes}
}

func (s *HTTPSource) Name() string { return "http" }

func (s *HTTPSource) Fetch(ctx context.Context) ([]core.ProductSale, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build seed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", s.url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read seed body: %w", err)
	}
	if int64(len(body)) > s.maxBytes {
		return nil, fmt.Errorf("seed body exceeds %d bytes", s.maxBytes)
	}

	products, skipped, err := DecodeProducts(body)
	if err != nil {
		return nil, err
	}

	seedLog().InfoContext(ctx, "Seed dataset downloaded",
		"url", s.url,
		"bytes", len(body),
		"products", len(products),
		"skipped", skipped)

	return products, nil
}

func newHTTPClient() *http.Client {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
		Proxy:                 http.ProxyFromEnvironment,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   60 * time.Second,
	}
}
