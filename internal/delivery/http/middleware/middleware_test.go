package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	var out bytes.Buffer
	log := logrus.New()
	log.SetOutput(&out)

	config := viper.New()
	config.Set("api.cors.origins", []string{"https://tutorly.id"})

	m := NewMiddleware(&MiddlewareConfig{Log: log, Config: config})

	app := fiber.New()
	app.Use(m.Recover())
	app.Use(m.RequestID())
	app.Use(m.RequestLogger())
	app.Use(m.CorsMiddleware())
	app.Get("/panic", func(ctx *fiber.Ctx) error {
		panic("boom")
	})
	app.Get("/ok", func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("Origin", "https://tutorly.id")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://tutorly.id", resp.Header.Get("Access-Control-Allow-Origin"))
	requestID := resp.Header.Get(fiber.HeaderXRequestID)
	assert.NotEmpty(t, requestID)
	assert.Contains(t, out.String(), requestID)
	assert.Contains(t, out.String(), "GET /ok")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestNewMiddleware_Nil(t *testing.T) {
	m := NewMiddleware(nil)
	assert.NotNil(t, m.CorsMiddleware())
	assert.NotNil(t, m.RequestLogger())
}
