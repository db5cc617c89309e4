package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-check/pkg/logger"
)

func TestInitFiberServer_AccessLogGoesThroughLogger(t *testing.T) {
	var buf bytes.Buffer
	app := InitFiberServer(Options{
		AppName:   "test-app",
		AccessLog: logger.NewZapLogger("test-app", &buf),
	})
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.ErrNotFound })

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))

	assert.Equal(t, "http request", first["msg"])
	assert.Equal(t, "GET", first["method"])
	assert.Equal(t, "/ok", first["path"])
	assert.Equal(t, 200.0, first["status"])
	assert.NotEmpty(t, first["latency"])

	assert.Equal(t, "/missing", second["path"])
	assert.Equal(t, 404.0, second["status"])
}

func TestInitFiberServer_ReadinessTracksMount(t *testing.T) {
	var ready atomic.Bool
	app := InitFiberServer(Options{AppName: "test-app", Ready: ready.Load})

	resp, err := app.Test(httptest.NewRequest("GET", "/manage/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	ready.Store(true)
	resp, err = app.Test(httptest.NewRequest("GET", "/manage/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/manage/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
