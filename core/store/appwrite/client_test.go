package appwrite

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"payment-relay/core/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ store.DocumentStore = (*Client)(nil)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(Config{Endpoint: srv.URL + "/v1", ProjectID: "proj", APIKey: "secret"})
	require.NoError(t, err)
	return c
}

func decodeBody(t *testing.T, r *http.Request) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

func TestNewClient_InvalidEndpoint(t *testing.T) {
	_, err := NewClient(Config{Endpoint: "not a url"})
	assert.Error(t, err)
}

func TestListDatabases(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/databases", r.URL.Path)
		assert.Equal(t, "proj", r.Header.Get("X-Appwrite-Project"))
		assert.Equal(t, "secret", r.Header.Get("X-Appwrite-Key"))

		qs := r.URL.Query()["queries[]"]
		require.Len(t, qs, 3)
		assert.JSONEq(t, `{"method":"equal","attribute":"name","values":["NMI"]}`, qs[0])

		fmt.Fprint(w, `{"total":1,"databases":[{"$id":"db1","name":"NMI","enabled":true}]}`)
	})

	dbs, err := c.ListDatabases(context.Background(), "NMI")
	require.NoError(t, err)
	assert.Equal(t, []store.Database{{ID: "db1", Name: "NMI"}}, dbs)
}

func TestCreateDatabase(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body := decodeBody(t, r)
		assert.Equal(t, "unique()", body["databaseId"])
		assert.Equal(t, "NMI", body["name"])
		assert.Equal(t, true, body["enabled"])
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"$id":"db1","name":"NMI","enabled":true}`)
	})

	db, err := c.CreateDatabase(context.Background(), "NMI")
	require.NoError(t, err)
	assert.Equal(t, "db1", db.ID)
}

func TestListCollections_Pages(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/v1/databases/db1/collections", r.URL.Path)
		if calls == 1 {
			cols := make([]collectionDoc, pageSize)
			for i := range cols {
				cols[i] = collectionDoc{ID: fmt.Sprintf("c%d", i), Name: fmt.Sprintf("col %d", i)}
			}
			_ = json.NewEncoder(w).Encode(collectionList{Total: pageSize + 1, Collections: cols})
			return
		}
		fmt.Fprint(w, `{"total":101,"collections":[{"$id":"last","name":"Gateway Logs"}]}`)
	})

	cols, err := c.ListCollections(context.Background(), "db1")
	require.NoError(t, err)
	assert.Len(t, cols, pageSize+1)
	assert.Equal(t, "Gateway Logs", cols[pageSize].Name)
	assert.Equal(t, 2, calls)
}

func TestCreateCollection(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/databases/db1/collections", r.URL.Path)
		body := decodeBody(t, r)
		assert.Equal(t, "Customer Vault", body["name"])
		assert.Equal(t, []interface{}{`read("any")`}, body["permissions"])
		fmt.Fprint(w, `{"$id":"c1","name":"Customer Vault"}`)
	})

	col, err := c.CreateCollection(context.Background(), "db1", "Customer Vault", []string{store.PermissionReadAny})
	require.NoError(t, err)
	assert.Equal(t, store.Collection{ID: "c1", Name: "Customer Vault"}, col)
}

func TestListAttributes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/databases/db1/collections/c1/attributes", r.URL.Path)
		fmt.Fprint(w, `{"total":2,"attributes":[{"key":"name","type":"string","status":"available"},{"key":"price","type":"double","status":"processing"}]}`)
	})

	keys, err := c.ListAttributes(context.Background(), "db1", "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "price"}, keys)
}

func TestCreateAttributes(t *testing.T) {
	type seen struct {
		path string
		body map[string]interface{}
	}
	var got []seen
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = append(got, seen{path: r.URL.Path, body: decodeBody(t, r)})
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprint(w, `{}`)
	})
	ctx := context.Background()

	require.NoError(t, c.CreateStringAttribute(ctx, "db", "c", "name", 255, true, false))
	require.NoError(t, c.CreateFloatAttribute(ctx, "db", "c", "price", false, true))
	require.NoError(t, c.CreateBooleanAttribute(ctx, "db", "c", "active", true, false))
	require.NoError(t, c.CreateDatetimeAttribute(ctx, "db", "c", "at", false, false))
	require.NoError(t, c.CreateEnumAttribute(ctx, "db", "c", "kind", nil, false, false))

	require.Len(t, got, 5)
	prefix := "/v1/databases/db/collections/c/attributes/"
	assert.Equal(t, prefix+"string", got[0].path)
	assert.Equal(t, float64(255), got[0].body["size"])
	assert.Equal(t, prefix+"float", got[1].path)
	assert.Equal(t, true, got[1].body["array"])
	assert.Equal(t, prefix+"boolean", got[2].path)
	assert.Equal(t, prefix+"datetime", got[3].path)
	assert.Equal(t, prefix+"enum", got[4].path)
	assert.Equal(t, []interface{}{}, got[4].body["elements"])
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusConflict, store.ErrConflict},
		{http.StatusNotFound, store.ErrNotFound},
		{http.StatusUnauthorized, store.ErrUnavailable},
		{http.StatusInternalServerError, store.ErrUnavailable},
		{http.StatusTooManyRequests, store.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, `{"message":"Attribute with the requested key already exists.","code":409,"type":"attribute_already_exists"}`)
			})
			err := c.CreateStringAttribute(context.Background(), "db", "c", "name", 255, true, false)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "already exists")
		})
	}

	t.Run("BadRequest", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		})
		err := c.CreateEnumAttribute(context.Background(), "db", "c", "kind", []string{}, false, false)
		require.Error(t, err)
		assert.NotErrorIs(t, err, store.ErrConflict)
		assert.Contains(t, err.Error(), "status 400")
	})

	t.Run("Unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		c, err := NewClient(Config{Endpoint: srv.URL + "/v1"})
		require.NoError(t, err)
		_, err = c.ListDatabases(context.Background(), "NMI")
		assert.ErrorIs(t, err, store.ErrUnavailable)
	})
}

func TestCreateDocument(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/databases/db/collections/logs/documents", r.URL.Path)
		body := decodeBody(t, r)
		assert.Equal(t, "unique()", body["documentId"])
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "user-1", data["initiatedBy"])
		fmt.Fprint(w, `{"$id":"doc1"}`)
	})

	id, err := c.CreateDocument(context.Background(), "db", "logs", map[string]interface{}{"initiatedBy": "user-1"})
	require.NoError(t, err)
	assert.Equal(t, "doc1", id)
}

func TestGetUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/users/u1", r.URL.Path)
		fmt.Fprint(w, `{"$id":"u1","$createdAt":"2024-01-01T00:00:00.000+00:00","$updatedAt":"2024-01-01T00:00:00.000+00:00","name":"Ada Lovelace","email":"ada@example.com","phone":"+15550100"}`)
	})

	u, err := c.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", u.Name)
	assert.Equal(t, u.CreatedAt, u.UpdatedAt)
}

func TestCreateExecution(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/functions/relay/executions", r.URL.Path)
		body := decodeBody(t, r)
		assert.Equal(t, true, body["async"])
		assert.Equal(t, "POST", body["method"])
		assert.Equal(t, `{"a":1}`, body["body"])
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprint(w, `{"$id":"ex1","status":"waiting"}`)
	})

	ex, err := c.CreateExecution(context.Background(), "relay", ExecutionRequest{
		Body:    `{"a":1}`,
		Async:   true,
		Method:  http.MethodPost,
		Headers: map[string]string{"Content-Type": "application/json"},
	})
	require.NoError(t, err)
	assert.Equal(t, "waiting", ex.Status)
}
