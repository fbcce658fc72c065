package infohash

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	defaultTimeout = 30 * time.Second
	maxTorrentSize = 10 << 20
)

// Resolution is a resolved info-hash with an optional size.
type Resolution struct {
	Hash    string
	SizeMB  float64
	HasSize bool
}

// Options configures a Resolver.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	// Client overrides the HTTP client. Its redirect policy is replaced.
	Client *http.Client
}

// Resolver turns magnet URIs and .torrent URLs into info-hashes.
// It is safe for concurrent use; concurrent lookups of the same URL share
// one request.
type Resolver struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	log       *slog.Logger
	group     singleflight.Group
}

// NewResolver creates a resolver.
func NewResolver(opts Options, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &http.Client{Timeout: timeout}
	if opts.Client != nil {
		c := *opts.Client
		client = &c
	}
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &Resolver{
		client:    client,
		timeout:   timeout,
		userAgent: opts.UserAgent,
		log:       log.With("component", "infohash"),
	}
}

// Resolve returns the info-hash for a magnet URI, a .torrent URL or a bare
// hash. It reports false when the reference cannot be resolved; the error
// is logged, never returned.
func (r *Resolver) Resolve(ctx context.Context, ref string) (Resolution, bool) {
	ref = strings.TrimSpace(ref)
	switch {
	case IsHash(strings.ToLower(ref)):
		return Resolution{Hash: strings.ToLower(ref)}, true
	case IsMagnet(ref):
		hash, ok := FromMagnet(ref)
		return Resolution{Hash: hash}, ok
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
	default:
		return Resolution{}, false
	}

	// The shared fetch outlives any single caller; each caller stops
	// waiting when its own context ends.
	ch := r.group.DoChan(ref, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()
		return r.fetch(fetchCtx, ref)
	})
	select {
	case <-ctx.Done():
		r.log.Debug("hash unresolved", "url", ref, "error", ctx.Err())
		return Resolution{}, false
	case res := <-ch:
		if res.Err != nil {
			r.log.Debug("hash unresolved", "url", ref, "error", res.Err)
			return Resolution{}, false
		}
		return res.Val.(Resolution), true
	}
}

func (r *Resolver) fetch(ctx context.Context, url string) (Resolution, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Resolution{}, fmt.Errorf("%w: build request: %v", ErrUnresolved, err)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return Resolution{}, fmt.Errorf("%w: %v", ErrUnresolved, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		location := resp.Header.Get("Location")
		if hash, ok := FromMagnet(location); ok {
			return Resolution{Hash: hash}, nil
		}
		return Resolution{}, fmt.Errorf("%w: redirect to %q", ErrUnresolved, location)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Resolution{}, fmt.Errorf("%w: status %d", ErrUnresolved, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxTorrentSize))
	if err != nil {
		return Resolution{}, fmt.Errorf("%w: read body: %v", ErrUnresolved, err)
	}

	t, err := FromTorrent(data)
	if err != nil {
		return Resolution{}, fmt.Errorf("%w: %v", ErrUnresolved, err)
	}

	r.log.Debug("torrent resolved", "url", url, "hash", t.Hash, "duration_ms", time.Since(start).Milliseconds())
	return Resolution{Hash: t.Hash, SizeMB: t.SizeMB(), HasSize: true}, nil
}
