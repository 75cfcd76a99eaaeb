package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreAnyFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreAnyFunction("net/http.(*persistConn).writeLoop"),
	)
}

type recordingSleeper struct {
	delays []time.Duration
}

func (r *recordingSleeper) sleep(_ context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return nil
}

func newServer(t *testing.T, handler func(attempt int32, w http.ResponseWriter, r *http.Request)) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		handler(n, w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestGenerate_Success(t *testing.T) {
	srv, calls := newServer(t, func(_ int32, w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"responses":["a","b","c"]}`))
	})

	sleeper := &recordingSleeper{}
	c := New(srv.URL+"/", WithSleeper(sleeper.sleep))

	assert.Equal(t, []string{"a", "b", "c"}, c.Generate(context.Background(), "hi", 5))
	assert.Equal(t, int32(1), calls.Load())
	assert.Empty(t, sleeper.delays)
}

func TestGenerate_AllAttemptsFail(t *testing.T) {
	srv, calls := newServer(t, func(_ int32, w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	sleeper := &recordingSleeper{}
	c := New(srv.URL, WithRetries(2), WithDelay(250*time.Millisecond), WithSleeper(sleeper.sleep))

	got := c.Generate(context.Background(), "hi", 5)

	assert.Equal(t, Fallback, got)
	assert.Len(t, got, 3)
	assert.Equal(t, int32(3), calls.Load(), "retries+1 attempts")
	assert.Equal(t, []time.Duration{250 * time.Millisecond, 250 * time.Millisecond}, sleeper.delays)
}

func TestGenerate_FailOnceThenSucceed(t *testing.T) {
	srv, calls := newServer(t, func(attempt int32, w http.ResponseWriter, _ *http.Request) {
		if attempt == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"responses":["x","y","z"]}`))
	})

	sleeper := &recordingSleeper{}
	c := New(srv.URL, WithSleeper(sleeper.sleep))

	assert.Equal(t, []string{"x", "y", "z"}, c.Generate(context.Background(), "hi", 5))
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, []time.Duration{DefaultDelay}, sleeper.delays)
}

func TestGenerate_ErrorFieldIsFailure(t *testing.T) {
	srv, calls := newServer(t, func(_ int32, w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error":"boom","responses":["s1","s2","s3"]}`))
	})

	c := New(srv.URL, WithRetries(1), WithSleeper((&recordingSleeper{}).sleep))

	assert.Equal(t, Fallback, c.Generate(context.Background(), "hi", 5))
	assert.Equal(t, int32(2), calls.Load())
}

func TestGenerate_ServerFallbackBodyIsRetried(t *testing.T) {
	// the server's own fallback arrives with a 500 and is not surfaced directly
	srv, calls := newServer(t, func(_ int32, w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to generate responses","responses":["s1","s2","s3"]}`))
	})

	c := New(srv.URL, WithRetries(0), WithSleeper((&recordingSleeper{}).sleep))

	assert.Equal(t, Fallback, c.Generate(context.Background(), "hi", 5))
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerate_MissingResponsesIsEmpty(t *testing.T) {
	srv, _ := newServer(t, func(_ int32, w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	got := New(srv.URL, WithHTTPClient(srv.Client())).Generate(context.Background(), "hi", 5)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGenerate_UndecodableBody(t *testing.T) {
	srv, calls := newServer(t, func(_ int32, w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	})

	c := New(srv.URL, WithRetries(1), WithSleeper((&recordingSleeper{}).sleep))
	assert.Equal(t, Fallback, c.Generate(context.Background(), "hi", 5))
	assert.Equal(t, int32(2), calls.Load())
}

func TestGenerate_CancelledContext(t *testing.T) {
	srv, calls := newServer(t, func(_ int32, w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(srv.URL, WithRetries(5), WithDelay(time.Hour))
	assert.Equal(t, Fallback, c.Generate(ctx, "hi", 5))
	assert.Zero(t, calls.Load())
}

func TestGenerate_FallbackIsACopy(t *testing.T) {
	srv, _ := newServer(t, func(_ int32, w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	got := New(srv.URL, WithRetries(0)).Generate(context.Background(), "hi", 5)
	got[0] = "changed"
	assert.NotEqual(t, "changed", Fallback[0])
}

func TestSleepContext(t *testing.T) {
	require.NoError(t, SleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, SleepContext(ctx, time.Hour), context.Canceled)
}

func TestWithRetriesNegative(t *testing.T) {
	c := New("http://example.invalid", WithRetries(-4))
	assert.Equal(t, 0, c.retries)
}
