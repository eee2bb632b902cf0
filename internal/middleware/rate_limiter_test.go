package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gulnaramus-data/greenfintech/internal/errors"
)

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	e := echo.New()
	handler := RateLimiter(10, 5)(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "192.168.1.100:12345"
		rec := httptest.NewRecorder()

		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiter_RejectsBeyondBurst(t *testing.T) {
	e := echo.New()
	handler := RateLimiter(1, 2)(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	rateLimited := false
	var lastBody []byte
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "192.168.1.100:12345"
		rec := httptest.NewRecorder()

		require.NoError(t, handler(e.NewContext(req, rec)))
		if rec.Code == http.StatusTooManyRequests {
			rateLimited = true
			lastBody = rec.Body.Bytes()
		}
	}
	require.True(t, rateLimited, "burst of 2 must not absorb 10 instant requests")

	var response errors.ErrorResponse
	require.NoError(t, json.Unmarshal(lastBody, &response))
	assert.Equal(t, "SYSTEM_004", response.Error.Code)
}

func TestRateLimiter_TracksClientsSeparately(t *testing.T) {
	e := echo.New()
	handler := RateLimiter(1, 1)(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Exhaust the first client's budget.
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Real-IP", "10.0.0.1")
		rec := httptest.NewRecorder()
		require.NoError(t, handler(e.NewContext(req, rec)))
	}

	// A different client still gets through.
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Real-IP", "10.0.0.2")
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
}
