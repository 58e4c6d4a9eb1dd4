package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"payment-relay/core/gateway"
	"payment-relay/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memArchive map[string]json.RawMessage

func (m memArchive) Get(_ context.Context, key string) (json.RawMessage, error) {
	raw, ok := m[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return raw, nil
}

func (m memArchive) List(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	for k := range m {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func setupTestApp(gw gateway.Doer, ready Readier, archive ArchiveReader) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(logger.RayIDKey, "ray-test")
		return c.Next()
	})
	svc := NewService(gw, ready, nil, zap.NewNop())
	NewFeature(svc, archive, zap.NewNop()).Load(app)
	return app
}

func postRelay(t *testing.T, app *fiber.App, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", "/relay", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestHandleRelay(t *testing.T) {
	app := setupTestApp(&fakeGateway{fields: approved()}, nil, nil)

	status, body := postRelay(t, app, `{"requestCategory":"invoice","requestAction":"send","initiatedBy":"u","data":{"invoice_id":"12"}}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, "approved", body["status"])
	assert.Equal(t, "invoice", body["requestCategory"])
	assert.Equal(t, "SUCCESS", body["response"].(map[string]interface{})["responsetext"])
}

func TestHandleRelay_StatusMapping(t *testing.T) {
	valid := `{"requestCategory":"transaction","requestAction":"void","initiatedBy":"u","data":{"transactionid":"1"}}`

	cases := []struct {
		name   string
		gw     gateway.Doer
		ready  Readier
		body   string
		status int
	}{
		{"BadJSON", &fakeGateway{fields: approved()}, nil, `{`, 400},
		{"MissingInitiator", &fakeGateway{fields: approved()}, nil, `{"requestCategory":"transaction","requestAction":"void"}`, 400},
		{"ObjectInData", &fakeGateway{fields: approved()}, nil, `{"requestCategory":"transaction","requestAction":"void","initiatedBy":"u","data":{"a":{}}}`, 400},
		{"NotReady", &fakeGateway{fields: approved()}, readyFunc(func(context.Context) error { return errDown }), valid, 503},
		{"GatewayDown", &fakeGateway{err: fmt.Errorf("%w: timeout", gateway.ErrGateway)}, nil, valid, 502},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := postRelay(t, setupTestApp(tc.gw, tc.ready, nil), tc.body)
			assert.Equal(t, tc.status, status)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandleArchive(t *testing.T) {
	archive := memArchive{
		"logs/transaction/2026/03/04/ray-1.json": json.RawMessage(`{"rayId":"ray-1"}`),
		"logs/invoice/2026/03/04/ray-2.json":     json.RawMessage(`{"rayId":"ray-2"}`),
	}
	app := setupTestApp(&fakeGateway{}, nil, archive)

	resp, err := app.Test(httptest.NewRequest("GET", "/relay/archive?prefix=logs/invoice", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	var listed struct {
		Keys []string `json:"keys"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	assert.Equal(t, []string{"logs/invoice/2026/03/04/ray-2.json"}, listed.Keys)

	resp, err = app.Test(httptest.NewRequest("GET", "/relay/archive/logs/transaction/2026/03/04/ray-1.json", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"rayId":"ray-1"}`, string(raw))

	resp, err = app.Test(httptest.NewRequest("GET", "/relay/archive/logs/missing.json", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleListArchive_Category(t *testing.T) {
	archive := memArchive{
		"logs/transaction/2026/03/04/a.json":  json.RawMessage(`{}`),
		"logs/transactions/2026/03/04/c.json": json.RawMessage(`{}`),
		"logs/invoice/2026/03/04/b.json":      json.RawMessage(`{}`),
	}
	app := setupTestApp(&fakeGateway{}, nil, archive)

	resp, err := app.Test(httptest.NewRequest("GET", "/relay/archive?category=transaction", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	var listed struct {
		Prefix string   `json:"prefix"`
		Keys   []string `json:"keys"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	assert.Equal(t, "logs/transaction/", listed.Prefix)
	assert.Equal(t, []string{"logs/transaction/2026/03/04/a.json"}, listed.Keys)

	resp, err = app.Test(httptest.NewRequest("GET", "/relay/archive?category=invoice&prefix=logs/", nil))
	require.NoError(t, err)
	listed.Keys = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	assert.Equal(t, []string{"logs/invoice/2026/03/04/b.json"}, listed.Keys)
}

func TestArchiveRoutesNeedArchive(t *testing.T) {
	app := setupTestApp(&fakeGateway{}, nil, nil)
	resp, err := app.Test(httptest.NewRequest("GET", "/relay/archive", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
