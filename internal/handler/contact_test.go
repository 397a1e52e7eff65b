package handler

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactSubmit(t *testing.T) {
	e := echo.New()
	e.POST("/v1/contact", NewContactHandler().Submit)

	t.Run("missing fields", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/v1/contact", `{"name":"Ada"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("whitespace-only message rejected", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/v1/contact",
			`{"name":"Ada","email":"ada@example.com","message":"   "}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	// Publishing is best-effort: with no broker reachable the visitor still
	// gets a 202 and an id to reference.
	t.Run("accepted without broker", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/v1/contact",
			`{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"Love the site"}`)
		require.Equal(t, http.StatusAccepted, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"`)
	})
}
