package httpretry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"quiltdex-be/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getBuilder(url string) func(ctx context.Context) (*http.Request, error) {
	return func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	}
}

func fastOptions() Options {
	return Options{
		MaxRetries: 3,
		BaseDelay:  time.Millisecond,
		MaxDelay:   5 * time.Millisecond,
		Timeout:    time.Second,
	}
}

func TestFetchRecoversAfterServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	res := FetchWithRetry(context.Background(), srv.Client(), getBuilder(srv.URL), fastOptions())

	require.Nil(t, res.Err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, 3, res.Attempts)
	assert.JSONEq(t, `{"ok":true}`, string(res.Data))
}

func TestFetchStopsOnTerminalError(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "bad input", http.StatusBadRequest)
	}))
	defer srv.Close()

	res := FetchWithRetry(context.Background(), srv.Client(), getBuilder(srv.URL), fastOptions())

	require.NotNil(t, res.Err)
	assert.Equal(t, apperr.CodeValidationFailed, res.Err.Code)
	assert.False(t, res.Err.Retryable)
	assert.Equal(t, 1, res.Attempts, "client errors are never retried")
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchExhaustsRetries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	opts := fastOptions()
	var retries []int
	opts.OnRetry = func(attempt int, err *apperr.ParsedError, delay time.Duration) {
		retries = append(retries, attempt)
	}

	res := FetchWithRetry(context.Background(), srv.Client(), getBuilder(srv.URL), opts)

	require.NotNil(t, res.Err)
	assert.Equal(t, apperr.CodeServiceUnavail, res.Err.Code)
	assert.Equal(t, 4, res.Attempts, "initial attempt plus MaxRetries")
	assert.Equal(t, int32(4), hits.Load())
	assert.Equal(t, []int{1, 2, 3}, retries)
}

func TestFetchDefaultRetryCount(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	// MaxRetries left at its zero value: the default of 3 retries applies,
	// four attempts in total.
	opts := Options{
		BaseDelay: time.Millisecond,
		MaxDelay:  5 * time.Millisecond,
		Timeout:   time.Second,
	}
	res := FetchWithRetry(context.Background(), srv.Client(), getBuilder(srv.URL), opts)

	require.NotNil(t, res.Err)
	assert.Equal(t, DefaultMaxRetries+1, res.Attempts)
	assert.Equal(t, int32(DefaultMaxRetries+1), hits.Load())
}

func TestFetchNegativeRetriesMeansSingleAttempt(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	opts := fastOptions()
	opts.MaxRetries = -1

	res := FetchWithRetry(context.Background(), srv.Client(), getBuilder(srv.URL), opts)

	require.NotNil(t, res.Err)
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchHonorsRetryAfter(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	opts := fastOptions()
	var observed time.Duration
	opts.OnRetry = func(attempt int, err *apperr.ParsedError, delay time.Duration) {
		observed = delay
	}

	start := time.Now()
	res := FetchWithRetry(context.Background(), srv.Client(), getBuilder(srv.URL), opts)

	require.Nil(t, res.Err)
	assert.Equal(t, 2, res.Attempts)
	// The upstream hint exceeds the backoff interval, so it wins.
	assert.Equal(t, time.Second, observed)
	assert.GreaterOrEqual(t, time.Since(start), time.Second)
}

func TestFetchPerAttemptTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	opts := Options{
		MaxRetries: -1,
		BaseDelay:  time.Millisecond,
		MaxDelay:   time.Millisecond,
		Timeout:    20 * time.Millisecond,
	}
	res := FetchWithRetry(context.Background(), srv.Client(), getBuilder(srv.URL), opts)

	require.NotNil(t, res.Err)
	assert.Equal(t, apperr.CodeTimeout, res.Err.Code)
	assert.True(t, res.Err.Retryable)
}

func TestFetchStopsWhenContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	opts := fastOptions()
	opts.BaseDelay = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	res := FetchWithRetry(ctx, srv.Client(), getBuilder(srv.URL), opts)

	require.NotNil(t, res.Err)
	assert.Equal(t, apperr.CodeTimeout, res.Err.Code)
	assert.Less(t, res.Attempts, 4, "cancellation cuts the retry loop short")
}

func TestFetchCustomShouldRetry(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	opts := fastOptions()
	opts.ShouldRetry = func(err *apperr.ParsedError, attempt int) bool { return false }

	res := FetchWithRetry(context.Background(), srv.Client(), getBuilder(srv.URL), opts)

	require.NotNil(t, res.Err)
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, int32(1), hits.Load())
}
