package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/portfolio-api/internal/config"
)

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
	req.RemoteAddr = "203.0.113.9:4242"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/auth/login")

	cases := map[string]string{
		"ip":       "rl:ip:203.0.113.9",
		"route":    "rl:route:POST /v1/auth/login",
		"ip_route": "rl:ip:203.0.113.9:route:POST /v1/auth/login",
		"user":     "rl:user:anon",
	}
	for strategy, want := range cases {
		got := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: strategy}, c)
		assert.Equal(t, want, got, "strategy %q", strategy)
	}

	// Unknown strategies fall back to ip_route.
	got := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "bogus"}, c)
	assert.Equal(t, cases["ip_route"], got)
}

func TestBuildRateKeyUsesAuthenticatedUser(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set("user_id", uint64(7))

	got := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user"}, c)
	assert.Equal(t, "rl:user:7", got)
}

func TestAsInt64(t *testing.T) {
	assert.Equal(t, int64(5), asInt64(int64(5)))
	assert.Equal(t, int64(5), asInt64(5))
	assert.Equal(t, int64(5), asInt64(5.9))
	assert.Equal(t, int64(5), asInt64("5"))
	assert.Equal(t, int64(0), asInt64("junk"))
	assert.Equal(t, int64(0), asInt64(nil))
}

func TestTokenBucketDisabledPassthrough(t *testing.T) {
	for _, cfg := range []config.RateLimitConfig{
		{Enabled: false},
		{Enabled: true}, // nil redis client
	} {
		mw := NewTokenBucket(cfg, nil)
		e := echo.New()
		e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "ok") }, mw)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	}
}
