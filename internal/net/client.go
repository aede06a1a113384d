package net

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"grabarr/internal/domain/consts"

	"github.com/dustin/go-humanize"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

// maxBurst caps a single read so the limiter can always satisfy WaitN.
const maxBurst = 64 * 1024

// ClientConfig holds HTTP client settings.
type ClientConfig struct {
	// BytesPerSec caps download bandwidth. Zero is unlimited.
	BytesPerSec int64
	UserAgent   string
}

// NewClient returns an HTTP client with a public-suffix aware cookie jar and optional bandwidth cap.
func NewClient(cfg ClientConfig) (*http.Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	dialer := &net.Dialer{
		Timeout:   consts.HTTPDialTimeout,
		KeepAlive: 30 * time.Second,
	}

	var rt http.RoundTripper = &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   consts.HTTPTLSTimeout,
		ResponseHeaderTimeout: consts.HTTPResponseTimeout,
		ExpectContinueTimeout: time.Second,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	if cfg.UserAgent != "" {
		rt = &userAgentTransport{base: rt, agent: cfg.UserAgent}
	}
	if cfg.BytesPerSec > 0 {
		rt = &rateLimitedTransport{
			base:    rt,
			limiter: rate.NewLimiter(rate.Limit(cfg.BytesPerSec), maxBurst),
		}
	}

	return &http.Client{
		Transport: rt,
		Jar:       jar,
	}, nil
}

// ParseBandwidth parses values like "2MB" or "500KiB" into bytes per second. Empty means unlimited.
func ParseBandwidth(s string) (int64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "/s")
	if s == "" || s == "0" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid bandwidth %q: %w", s, err)
	}
	return int64(n), nil
}

// RootDomain returns the registrable domain of a URL, e.g. "youtube.com" for "https://m.youtube.com/...".
func RootDomain(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("no host in URL %q", rawURL)
	}
	return publicsuffix.EffectiveTLDPlusOne(u.Hostname())
}

type userAgentTransport struct {
	base  http.RoundTripper
	agent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.agent)
	}
	return t.base.RoundTrip(req)
}

// rateLimitedTransport throttles response bodies.
type rateLimitedTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	resp.Body = &rateLimitedReader{
		r:       resp.Body,
		limiter: t.limiter,
		ctx:     req.Context(),
	}
	return resp, nil
}

type rateLimitedReader struct {
	r       io.ReadCloser
	limiter *rate.Limiter
	ctx     context.Context
}

func (r *rateLimitedReader) Read(p []byte) (int, error) {
	if len(p) > maxBurst {
		p = p[:maxBurst]
	}
	if err := r.limiter.WaitN(r.ctx, len(p)); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

func (r *rateLimitedReader) Close() error {
	return r.r.Close()
}
