package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"golang.org/x/time/rate"
)

const maxBodySize = 8 << 20

// FetchConfig configures a Fetcher.
type FetchConfig struct {
	Attempts          uint          // total tries per request
	Delay             time.Duration // wait before retry n is Delay*n
	Timeout           time.Duration // per attempt
	RequestsPerSecond float64       // per host; <= 0 disables limiting
	Burst             int
	UserAgent         string
}

// DefaultFetchConfig returns five attempts spaced 10s, 20s, 30s and 40s
// apart, one request per second per host.
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		Attempts:          5,
		Delay:             10 * time.Second,
		Timeout:           30 * time.Second,
		RequestsPerSecond: 1,
		Burst:             2,
		UserAgent:         "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0",
	}
}

// Fetcher performs rate limited GET requests with retries.
type Fetcher struct {
	client *http.Client
	cfg    FetchConfig
	log    *slog.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewFetcher creates a fetcher. Zero fields take their defaults.
func NewFetcher(cfg FetchConfig, log *slog.Logger) *Fetcher {
	def := DefaultFetchConfig()
	if cfg.Attempts == 0 {
		cfg.Attempts = def.Attempts
	}
	if cfg.Delay <= 0 {
		cfg.Delay = def.Delay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Burst <= 0 {
		cfg.Burst = def.Burst
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if log == nil {
		log = slog.Default()
	}
	return &Fetcher{
		client:   &http.Client{Timeout: cfg.Timeout},
		cfg:      cfg,
		log:      log.With("component", "fetcher"),
		limiters: make(map[string]*rate.Limiter),
	}
}

// Get fetches rawURL and returns the body. Network errors and non-2xx
// responses are retried; 401, 404 and cancellation are not.
func (f *Fetcher) Get(ctx context.Context, rawURL string, header http.Header) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	limiter := f.limiter(u.Host)

	return retry.DoWithData(
		func() ([]byte, error) {
			if err := limiter.Wait(ctx); err != nil {
				return nil, retry.Unrecoverable(err)
			}
			return f.once(ctx, rawURL, header)
		},
		retry.Context(ctx),
		retry.Attempts(f.cfg.Attempts),
		retry.DelayType(linearDelay(f.cfg.Delay)),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			f.log.Debug("request failed", "url", rawURL, "attempt", n+1, "error", err)
		}),
	)
}

// linearDelay waits base*n before retry n. retry-go numbers retries from 1.
func linearDelay(base time.Duration) retry.DelayTypeFunc {
	return func(n uint, _ error, _ *retry.Config) time.Duration {
		return time.Duration(n) * base
	}
}

func (f *Fetcher) once(ctx context.Context, rawURL string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, retry.Unrecoverable(err)
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
		switch resp.StatusCode {
		case http.StatusNotFound, http.StatusUnauthorized:
			return nil, retry.Unrecoverable(err)
		}
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func (f *Fetcher) limiter(host string) *rate.Limiter {
	f.mu.Lock()
	defer f.mu.Unlock()

	if l, ok := f.limiters[host]; ok {
		return l
	}
	limit := rate.Inf
	if f.cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(f.cfg.RequestsPerSecond)
	}
	l := rate.NewLimiter(limit, f.cfg.Burst)
	f.limiters[host] = l
	return l
}
