package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geohash-codec/cache"
	"geohash-codec/config"
	"geohash-codec/models"
)

func serve(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestEncodeHandler(t *testing.T) {
	h := NewHandler(nil)
	router := RegisterRoutes(h)

	tests := []struct {
		name   string
		target string
		hash   string
		length int
	}{
		{"inferred precision", "/encode?lat=45.37&lon=-121.7", "c216ne", 6},
		{"explicit precision", "/encode?lat=26.08461&lon=-80.38893&precision=0.000001", "dhwu6sw9f5t", 11},
		{"fixed length", "/encode?lat=31.283131&lon=121.500831&length=5", "wtw3u", 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(t, router, tc.target)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var res models.EncodeResult
			decodeBody(t, w, &res)
			assert.Equal(t, tc.hash, res.Hash)
			assert.Equal(t, tc.length, res.Length)
			assert.Greater(t, res.Precision, 0.0)
		})
	}
	assert.Equal(t, 3.0, testutil.ToFloat64(h.metrics.Requests.WithLabelValues("encode", "ok")))
}

func TestEncodeHandlerErrors(t *testing.T) {
	h := NewHandler(nil)
	router := RegisterRoutes(h)

	targets := []string{
		"/encode?lon=10",
		"/encode?lat=10",
		"/encode?lat=abc&lon=10",
		"/encode?lat=91&lon=10",
		"/encode?lat=10&lon=10&precision=-1",
		"/encode?lat=10&lon=10&length=30",
		"/encode?lat=10&lon=10&length=x",
		"/encode?lat=10&lon=10&precision=0.1&length=4",
	}
	for _, target := range targets {
		t.Run(target, func(t *testing.T) {
			w := serve(t, router, target)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var res models.ErrorResponse
			decodeBody(t, w, &res)
			assert.NotEmpty(t, res.Error)
		})
	}
	assert.Equal(t, float64(len(targets)), testutil.ToFloat64(h.metrics.Requests.WithLabelValues("encode", "invalid")))
}

func TestDecodeHandler(t *testing.T) {
	router := RegisterRoutes(NewHandler(nil))

	w := serve(t, router, "/decode/C216NE")
	require.Equal(t, http.StatusOK, w.Code)

	var res models.Coordinate
	decodeBody(t, w, &res)
	assert.Equal(t, "c216ne", res.Hash)
	assert.InDelta(t, 45.37, res.Latitude, 1e-9)
	assert.InDelta(t, -121.7, res.Longitude, 1e-9)
	assert.Equal(t, 0.0054931640625, res.Precision)

	w = serve(t, router, "/decode/c216na")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errRes models.ErrorResponse
	decodeBody(t, w, &errRes)
	assert.Contains(t, errRes.Error, "invalid character")
}

func TestCachedHandlers(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := cache.InitializeRedis(context.Background(), config.RedisConfig{Addr: mr.Addr(), TTL: time.Minute})
	require.NoError(t, err)
	defer c.Close()

	h := NewHandler(c)
	router := RegisterRoutes(h)

	for i := 0; i < 2; i++ {
		w := serve(t, router, "/decode/wtw3uyfjqw61")
		require.Equal(t, http.StatusOK, w.Code)
		var res models.Coordinate
		decodeBody(t, w, &res)
		assert.InDelta(t, 31.283131, res.Latitude, 1e-9)

		w = serve(t, router, "/encode?lat=-25.382708&lon=-49.265506")
		require.Equal(t, http.StatusOK, w.Code)
		var enc models.EncodeResult
		decodeBody(t, w, &enc)
		assert.Equal(t, "6gkzwgjzn820", enc.Hash)
	}

	assert.True(t, mr.Exists("geohash:decode:wtw3uyfjqw61"))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.CacheLookups.WithLabelValues("decode", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.CacheLookups.WithLabelValues("decode", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.CacheLookups.WithLabelValues("encode", "hit")))
}

func TestHealthAndMetrics(t *testing.T) {
	router := RegisterRoutes(NewHandler(nil))

	w := serve(t, router, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	serve(t, router, "/decode/c216ne")
	w = serve(t, router, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `geohash_requests_total{op="decode",outcome="ok"} 1`))
}

func TestMethodNotAllowed(t *testing.T) {
	router := RegisterRoutes(NewHandler(nil))

	req := httptest.NewRequest("POST", "/encode?lat=1&lon=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
