// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP fetch helpers used for URL inputs.
package httputil

import (
	"context"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/getids/internal/logger"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// retryable responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

// MaxRetryAfter caps a server-supplied Retry-After delay.
var MaxRetryAfter = 2 * time.Minute

// MaxBackoff caps the computed exponential backoff.
var MaxBackoff = 2 * time.Minute

const defaultMaxRetries = 5

// Retryable reports whether a response status warrants another attempt:
// 429 (Too Many Requests) and 503 (Service Unavailable).
func Retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// DoWithRetry executes an HTTP request and retries retryable responses with
// exponential backoff starting at RetryBaseDelay and doubling each attempt,
// up to MaxBackoff.
// An integer Retry-After header replaces the computed delay, capped at
// MaxRetryAfter.
//
// When maxRetries is 0 the default (5) is used. Before each retry the
// response body is drained and closed. If the context is cancelled during
// a backoff wait the function returns ctx.Err(). After exhausting retries
// the last response is returned so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if !Retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := backoffFor(attempt)
		if d, ok := retryAfter(resp.Header.Get("Retry-After")); ok {
			backoff = d
		}
		logger.Debug("HTTP %d from %s, retrying in %v (attempt %d/%d)",
			resp.StatusCode, req.URL, backoff, attempt+1, maxRetries)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// backoffFor returns RetryBaseDelay doubled attempt times, capped at
// MaxBackoff. The doubling is computed in float64 so large attempt counts
// saturate instead of overflowing.
func backoffFor(attempt int) time.Duration {
	d := math.Pow(2, float64(attempt)) * float64(RetryBaseDelay)
	if d >= float64(MaxBackoff) || math.IsInf(d, 0) {
		return MaxBackoff
	}
	return time.Duration(d)
}

// retryAfter parses a Retry-After value given in seconds. HTTP-date values
// are ignored and fall back to the computed backoff.
func retryAfter(v string) (time.Duration, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0, false
	}
	d := time.Duration(secs) * time.Second
	if d > MaxRetryAfter {
		d = MaxRetryAfter
	}
	return d, true
}
