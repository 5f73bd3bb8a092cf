package auth_test

import (
	"net/http/httptest"
	"testing"

	"pantry-tracker/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func newApp(apiKey string) *fiber.App {
	app := fiber.New()
	app.Use(auth.New(auth.Config{ApiKey: apiKey}))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func TestAuth(t *testing.T) {
	t.Run("DisabledWhenKeyEmpty", func(t *testing.T) {
		app := newApp("")
		resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("RejectsMissingKey", func(t *testing.T) {
		app := newApp("secret")
		resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("RejectsWrongKey", func(t *testing.T) {
		app := newApp("secret")
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set(auth.HeaderName, "wrong")
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("AcceptsCorrectKey", func(t *testing.T) {
		app := newApp("secret")
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set(auth.HeaderName, "secret")
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})
}
