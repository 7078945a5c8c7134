package webserver

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, mutate ...func(*Config)) http.Handler {
	t.Helper()
	cfg := Config{NoBrowser: true}
	for _, m := range mutate {
		m(&cfg)
	}
	srv, err := New(cfg)
	require.NoError(t, err)
	return srv.Handler()
}

func get(h http.Handler, path string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	rec := get(newTestServer(t), "/api/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestIndexPage(t *testing.T) {
	rec := get(newTestServer(t), "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<!doctype html>")
	assert.Contains(t, body, "<title>Pricing models | Pricing Excellence</title>")
	assert.Contains(t, body, `<a href="/models/outcome-based">Outcome-Based Pricing</a>`)
	assert.Contains(t, body, "<table>")
}

func TestModelPage(t *testing.T) {
	h := newTestServer(t)

	rec := get(h, "/models/value-based-roi")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Value-Based with ROI Guarantees</h1>")
	assert.Contains(t, rec.Body.String(), "<h2>When to use</h2>")

	rec = get(h, "/models/subscription-continuous")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/models/subscription-continuous-insights", rec.Header().Get("Location"))

	rec = get(h, "/models/barter")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Not found</h1>")
}

func TestUnknownPage(t *testing.T) {
	rec := get(newTestServer(t), "/dashboard")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "<code>/dashboard</code>")
}

func TestGzipCompression(t *testing.T) {
	rec := get(newTestServer(t), "/api/models", "Accept-Encoding", "gzip")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	data, err := io.ReadAll(zr)
	require.NoError(t, err)

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, 11, body.Count)
}

func TestCORS(t *testing.T) {
	h := newTestServer(t, func(c *Config) {
		c.AllowedOrigins = []string{"https://pricing.example.com"}
	})

	rec := get(h, "/api/health", "Origin", "https://pricing.example.com")
	assert.Equal(t, "https://pricing.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = get(h, "/api/health", "Origin", "https://elsewhere.example.com")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_DisabledByDefault(t *testing.T) {
	rec := get(newTestServer(t), "/api/health", "Origin", "https://pricing.example.com")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	h := newTestServer(t, func(c *Config) {
		c.RateLimit = 0.001
		c.RateBurst = 2
	})

	assert.Equal(t, http.StatusOK, get(h, "/api/health").Code)
	assert.Equal(t, http.StatusOK, get(h, "/api/health").Code)

	rec := get(h, "/api/health")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "rate limit exceeded")

	// Pages are not limited.
	assert.Equal(t, http.StatusOK, get(h, "/").Code)
}

func TestRequestIDHeaderAccepted(t *testing.T) {
	rec := get(newTestServer(t), "/api/health", "X-Request-Id", "abc-123")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListenAndServe_ShutsDownOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	srv, err := New(Config{Port: port, NoBrowser: true})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get(srv.URL() + "/api/health")
		if err != nil {
			return false
		}
		resp.Body.Close() //nolint:errcheck
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestListenAndServe_WaitsForInFlightRequests(t *testing.T) {
	srv, err := New(Config{Port: freePort(t), NoBrowser: true})
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	srv.srv.Handler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		close(started)
		<-release
		io.WriteString(w, "done") //nolint:errcheck
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	body := make(chan string, 1)
	go func() {
		for {
			resp, err := http.Get(srv.URL() + "/slow")
			if err != nil {
				time.Sleep(20 * time.Millisecond)
				continue
			}
			b, _ := io.ReadAll(resp.Body)
			resp.Body.Close() //nolint:errcheck
			body <- string(b)
			return
		}
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("request never reached the handler")
	}
	cancel()

	select {
	case err := <-done:
		t.Fatalf("ListenAndServe returned before the request finished: %v", err)
	case <-time.After(200 * time.Millisecond):
	}

	close(release)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.Equal(t, "done", <-body)
}

func TestListenAndServe_AddressInUse(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close() //nolint:errcheck

	srv, err := New(Config{Port: l.Addr().(*net.TCPAddr).Port, NoBrowser: true})
	require.NoError(t, err)

	err = srv.ListenAndServe(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP server error")
}
