package client

import (
	"context"
	"fmt"
	"time"

	"devdocs/samplemap/internal/config"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// Fetcher performs a single paced GET and hands back the raw body. Any byte
// payload counts as success: the caller treats the body as an opaque page
// regardless of status code.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

type httpFetcher struct {
	rl         ratelimit.Limiter
	httpClient *resty.Client
	timeout    time.Duration
}

func NewFetcher(cfg config.CrawlConfig) Fetcher {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36").
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Language", "en-US,en;q=0.5")

	rps := cfg.MaxRequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &httpFetcher{
		rl:         ratelimit.New(rps),
		httpClient: client,
		timeout:    time.Duration(cfg.Timeout) * time.Second,
	}
}

func (f *httpFetcher) Get(ctx context.Context, url string) ([]byte, error) {
	f.rl.Take()

	reqCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	resp, err := f.httpClient.R().
		SetContext(reqCtx).
		Get(url)

	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}

	log.Debugf("Fetched %s (%d bytes, status %d)", url, len(resp.String()), resp.StatusCode())
	return []byte(resp.String()), nil
}
