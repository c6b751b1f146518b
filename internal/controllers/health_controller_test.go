package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func serveHealth(t *testing.T, checks map[string]Pinger) (int, map[string]interface{}) {
	t.Helper()
	e := echo.New()
	e.GET("/health", NewHealthController(checks, zap.NewNop()).Health)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealth(t *testing.T) {
	up := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("connection refused") })

	t.Run("all dependencies up", func(t *testing.T) {
		code, body := serveHealth(t, map[string]Pinger{"postgres": up, "redis": up})
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, true, body["status"])
	})

	t.Run("one dependency down", func(t *testing.T) {
		code, body := serveHealth(t, map[string]Pinger{"postgres": up, "redis": down})
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, false, body["status"])
		assert.Equal(t, map[string]interface{}{"postgres": "up", "redis": "down"}, body["dependencies"])
	})
}
