package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/portfolio-api/internal/config"
)

func TestEncodeDecodePayload(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}, "X-Custom": {"a", "b"}}
	body := []byte(`{"projects":[]}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"application/json"}, gotHdr["Content-Type"])
	assert.Equal(t, []string{"a", "b"}, gotHdr["X-Custom"])
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	_, _, _, ok := decodePayload([]byte("short"))
	assert.False(t, ok)

	// Header length pointing past the payload must not panic.
	bs, err := encodePayload(200, http.Header{"A": {"b"}}, []byte("x"))
	require.NoError(t, err)
	_, _, _, ok = decodePayload(bs[:9])
	assert.False(t, ok)
}

func TestCacheKeyStrategies(t *testing.T) {
	e := echo.New()
	newCtx := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/v1/projects")
		return c
	}
	cfg := config.CacheConfig{Prefix: "cache"}

	// Default strategy folds the query in: filtered listings get their own key.
	plain := cacheKeyFrom(cfg, newCtx("/v1/projects"))
	filtered := cacheKeyFrom(cfg, newCtx("/v1/projects?technology=go"))
	assert.NotEqual(t, plain, filtered)
	assert.Equal(t, plain, cacheKeyFrom(cfg, newCtx("/v1/projects")))

	// Route-only strategy ignores the query.
	cfg.KeyStrategy = "route"
	assert.Equal(t,
		cacheKeyFrom(cfg, newCtx("/v1/projects")),
		cacheKeyFrom(cfg, newCtx("/v1/projects?technology=go")))
}

func TestCacheDisabledPassthrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)

	e := echo.New()
	e.GET("/v1/profile", func(c echo.Context) error {
		return c.String(http.StatusOK, "fresh")
	}, mw)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/profile", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fresh", rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
