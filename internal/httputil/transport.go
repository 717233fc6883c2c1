// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP client shared by all metadata
// providers: client-side rate limiting, a fixed User-Agent and request
// metrics. It never retries; a failed exchange is returned as is.
package httputil

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/doi2bibtex/pkg/types"
)

// Observer receives one call per completed HTTP exchange. code is 0 when
// the transport failed.
type Observer interface {
	ObserveRequest(host string, code int, d time.Duration)
}

// Transport is an http.RoundTripper that waits on Limiter before every
// request, sets User-Agent when the request has none, and reports each
// exchange to Observer.
type Transport struct {
	Base      http.RoundTripper
	Limiter   *rate.Limiter
	UserAgent string
	Observer  Observer
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Limiter != nil {
		if err := t.Limiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}
	if t.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.UserAgent)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	start := time.Now()
	resp, err := base.RoundTrip(req)
	if t.Observer != nil {
		code := 0
		if resp != nil {
			code = resp.StatusCode
		}
		t.Observer.ObserveRequest(req.URL.Host, code, time.Since(start))
	}
	return resp, err
}

// NewLimiter returns a limiter allowing rps requests per second with a
// burst of one, or nil when rps is not positive.
func NewLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

// NewClient builds the client used for every provider. obs may be nil.
func NewClient(cfg types.HTTPConfig, obs Observer) *http.Client {
	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &Transport{
			Base:      http.DefaultTransport,
			Limiter:   NewLimiter(cfg.RateLimit),
			UserAgent: cfg.UserAgent,
			Observer:  obs,
		},
	}
}

// Drain discards the rest of the body and closes it so the connection can
// be reused.
func Drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
