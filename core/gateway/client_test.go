package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Do(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "key-123", r.PostForm.Get("security_key"))
		assert.Equal(t, "sale", r.PostForm.Get("type"))
		assert.Equal(t, "10.00", r.PostForm.Get("amount"))
		fmt.Fprint(w, "response=1&responsetext=SUCCESS&authcode=123456&transactionid=8765&avsresponse=&cvvresponse=M&orderid=&type=sale&response_code=100")
	}))
	defer srv.Close()

	c, err := NewClient(Config{Endpoint: srv.URL, SecurityKey: "key-123"})
	require.NoError(t, err)

	params := url.Values{"type": {"sale"}, "amount": {"10.00"}}
	resp, err := c.Do(context.Background(), params)
	require.NoError(t, err)

	assert.True(t, resp.Approved())
	assert.Equal(t, "approved", resp.Status())
	assert.Equal(t, "100", resp.Code())
	assert.Equal(t, "SUCCESS", resp.Text())
	assert.Equal(t, "8765", resp.TransactionID())
	assert.Equal(t, "", resp.Get("avsresponse"))
	assert.Empty(t, params.Get("security_key"), "caller params must not be mutated")
}

func TestClient_Declined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "response=2&responsetext=DECLINE&response_code=200")
	}))
	defer srv.Close()

	c, err := NewClient(Config{Endpoint: srv.URL})
	require.NoError(t, err)

	resp, err := c.Do(context.Background(), url.Values{"type": {"sale"}})
	require.NoError(t, err)
	assert.False(t, resp.Approved())
	assert.Equal(t, "declined", resp.Status())
}

func TestClient_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := NewClient(Config{Endpoint: srv.URL})
	require.NoError(t, err)

	_, err = c.Do(context.Background(), url.Values{})
	assert.ErrorIs(t, err, ErrGateway)
	assert.Contains(t, err.Error(), "status 502")
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c, err := NewClient(Config{Endpoint: srv.URL, TimeoutSeconds: 1})
	require.NoError(t, err)

	_, err = c.Do(context.Background(), url.Values{})
	assert.ErrorIs(t, err, ErrGateway)
}

func TestNewClient_InvalidEndpoint(t *testing.T) {
	_, err := NewClient(Config{Endpoint: "transact.php"})
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	resp, err := Parse("response=3&responsetext=Invalid+Customer+Vault+Id&response_code=300\n")
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status())
	assert.Equal(t, "Invalid Customer Vault Id", resp.Text())

	_, err = Parse("<html>maintenance</html>")
	assert.ErrorIs(t, err, ErrGateway)

	_, err = Parse("%zz")
	assert.ErrorIs(t, err, ErrGateway)
}

func TestClient_MockedEndpoint(t *testing.T) {
	defer gock.OffAll()

	c, err := NewClient(Config{Endpoint: "https://secure.nmi.com/api/transact.php", SecurityKey: "key-123"})
	require.NoError(t, err)
	gock.InterceptClient(c.http)
	defer gock.RestoreClient(c.http)

	gock.New("https://secure.nmi.com").
		Post("/api/transact.php").
		MatchHeader("Content-Type", "application/x-www-form-urlencoded").
		Reply(200).
		BodyString("response=1&responsetext=Customer+Added&customer_vault_id=cv-1&response_code=100")
	gock.New("https://secure.nmi.com").
		Post("/api/transact.php").
		Reply(500)

	resp, err := c.Do(context.Background(), url.Values{"customer_vault": {"add_customer"}})
	require.NoError(t, err)
	assert.Equal(t, "cv-1", resp.Get("customer_vault_id"))
	assert.Equal(t, "100", resp.Code())

	_, err = c.Do(context.Background(), url.Values{"customer_vault": {"delete_customer"}})
	assert.ErrorIs(t, err, ErrGateway)
	assert.True(t, gock.IsDone())
}
