// Package httpretry wraps outbound HTTP calls with per-attempt timeouts and
// exponential-backoff retry. Rate-limited upstreams can dictate pacing through
// the Retry-After header.
package httpretry

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"quiltdex-be/pkg/apperr"

	"github.com/cenkalti/backoff/v5"
)

const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = 1 * time.Second
	DefaultMaxDelay   = 10 * time.Second
	DefaultTimeout    = 30 * time.Second
)

type Options struct {
	// MaxRetries is the number of additional attempts after the first.
	// Zero means DefaultMaxRetries; a negative value means a single attempt.
	MaxRetries int
	BaseDelay  time.Duration // first backoff delay (default 1s)
	MaxDelay   time.Duration // backoff cap (default 10s)
	Timeout    time.Duration // per-attempt deadline (default 30s)

	// OnRetry is called before sleeping, after a failed attempt.
	OnRetry func(attempt int, err *apperr.ParsedError, delay time.Duration)

	// ShouldRetry overrides the default policy (retry while the error is
	// retryable and attempts remain).
	ShouldRetry func(err *apperr.ParsedError, attempt int) bool
}

type Result struct {
	Data     []byte
	Status   int
	Err      *apperr.ParsedError
	Attempts int
}

func (o *Options) withDefaults() Options {
	opts := *o
	switch {
	case opts.MaxRetries == 0:
		opts.MaxRetries = DefaultMaxRetries
	case opts.MaxRetries < 0:
		opts.MaxRetries = 0
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = DefaultBaseDelay
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = DefaultMaxDelay
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return opts
}

// FetchWithRetry executes the request produced by build until it succeeds, the
// error is terminal, or retries are exhausted. build is called once per attempt
// so request bodies are re-created instead of re-read.
func FetchWithRetry(
	ctx context.Context,
	client *http.Client,
	build func(ctx context.Context) (*http.Request, error),
	options Options,
) Result {
	opts := options.withDefaults()
	if client == nil {
		client = http.DefaultClient
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = opts.BaseDelay
	bo.Multiplier = 2
	bo.RandomizationFactor = 0.25 // uniform jitter in [0.75, 1.25] of the interval
	bo.MaxInterval = opts.MaxDelay
	bo.Reset()

	attempt := 0
	for {
		attempt++
		res := doAttempt(ctx, client, build, opts.Timeout)
		res.Attempts = attempt
		if res.Err == nil {
			return res
		}

		if attempt > opts.MaxRetries || !shouldRetry(opts, res.Err, attempt) {
			return res
		}

		delay := bo.NextBackOff()
		// A rate-limited upstream dictates pacing: honor the larger delay.
		if res.Err.RetryAfter > delay {
			delay = res.Err.RetryAfter
		}
		if opts.OnRetry != nil {
			opts.OnRetry(attempt, res.Err, delay)
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			res.Err = apperr.New(apperr.CodeTimeout, "request cancelled while waiting to retry")
			return res
		}
	}
}

func shouldRetry(opts Options, err *apperr.ParsedError, attempt int) bool {
	if opts.ShouldRetry != nil {
		return opts.ShouldRetry(err, attempt)
	}
	return err.Retryable
}

func doAttempt(
	ctx context.Context,
	client *http.Client,
	build func(ctx context.Context) (*http.Request, error),
	timeout time.Duration,
) Result {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := build(attemptCtx)
	if err != nil {
		return Result{Err: apperr.New(apperr.CodeInternal, "failed to build request: "+err.Error())}
	}

	resp, err := client.Do(req)
	if err != nil {
		return Result{Err: classifyTransportError(attemptCtx, err)}
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return Result{Status: resp.StatusCode, Err: apperr.New(apperr.CodeNetworkError, "failed to read response body: "+readErr.Error())}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		parsed := apperr.FromStatus(resp.StatusCode, trimBody(body))
		parsed.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
		return Result{Data: body, Status: resp.StatusCode, Err: parsed}
	}

	return Result{Data: body, Status: resp.StatusCode}
}

func classifyTransportError(ctx context.Context, err error) *apperr.ParsedError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperr.New(apperr.CodeTimeout, "request timed out")
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperr.New(apperr.CodeTimeout, "request timed out")
	}
	return apperr.New(apperr.CodeNetworkError, err.Error())
}

// parseRetryAfter accepts delay-seconds or an HTTP-date.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(value); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

func trimBody(body []byte) string {
	const max = 512
	if len(body) > max {
		body = body[:max]
	}
	return string(body)
}
