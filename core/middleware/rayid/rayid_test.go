package rayid

import (
	"io"
	"net/http/httptest"
	"testing"

	"payment-relay/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup() *fiber.App {
	app := fiber.New()
	app.Use(New())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(logger.RayID(c))
	})
	return app
}

func TestRayID_Generated(t *testing.T) {
	resp, err := setup().Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	id := resp.Header.Get(Header)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, string(body))
}

func TestRayID_Propagated(t *testing.T) {
	incoming := uuid.NewString()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(Header, incoming)

	resp, err := setup().Test(req)
	require.NoError(t, err)
	assert.Equal(t, incoming, resp.Header.Get(Header))
}

func TestRayID_InvalidReplaced(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(Header, "../../etc/passwd")

	resp, err := setup().Test(req)
	require.NoError(t, err)
	assert.NotEqual(t, "../../etc/passwd", resp.Header.Get(Header))
}
