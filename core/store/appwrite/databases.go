package appwrite

import (
	"context"
	"net/http"

	"payment-relay/core/store"
)

type databaseDoc struct {
	ID      string `json:"$id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

type databaseList struct {
	Total     int           `json:"total"`
	Databases []databaseDoc `json:"databases"`
}

type collectionDoc struct {
	ID          string   `json:"$id"`
	Name        string   `json:"name"`
	Permissions []string `json:"$permissions"`
}

type collectionList struct {
	Total       int             `json:"total"`
	Collections []collectionDoc `json:"collections"`
}

type attributeDoc struct {
	Key    string `json:"key"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

type attributeList struct {
	Total      int            `json:"total"`
	Attributes []attributeDoc `json:"attributes"`
}

// ListDatabases implements store.Store.
func (c *Client) ListDatabases(ctx context.Context, name string) ([]store.Database, error) {
	var out []store.Database
	for off := 0; ; off += pageSize {
		var page databaseList
		if err := c.do(ctx, http.MethodGet, "/databases", queries(equal("name", name), limit(pageSize), offset(off)), nil, &page); err != nil {
			return nil, err
		}
		for _, d := range page.Databases {
			out = append(out, store.Database{ID: d.ID, Name: d.Name})
		}
		if len(page.Databases) < pageSize || len(out) >= page.Total {
			return out, nil
		}
	}
}

// CreateDatabase implements store.Store.
func (c *Client) CreateDatabase(ctx context.Context, name string) (store.Database, error) {
	var d databaseDoc
	body := map[string]interface{}{
		"databaseId": uniqueID,
		"name":       name,
		"enabled":    true,
	}
	if err := c.do(ctx, http.MethodPost, "/databases", nil, body, &d); err != nil {
		return store.Database{}, err
	}
	return store.Database{ID: d.ID, Name: d.Name}, nil
}

// ListCollections implements store.Store.
func (c *Client) ListCollections(ctx context.Context, databaseID string) ([]store.Collection, error) {
	path := "/databases/" + seg(databaseID) + "/collections"
	var out []store.Collection
	for off := 0; ; off += pageSize {
		var page collectionList
		if err := c.do(ctx, http.MethodGet, path, queries(limit(pageSize), offset(off)), nil, &page); err != nil {
			return nil, err
		}
		for _, col := range page.Collections {
			out = append(out, store.Collection{ID: col.ID, Name: col.Name})
		}
		if len(page.Collections) < pageSize || len(out) >= page.Total {
			return out, nil
		}
	}
}

// CreateCollection implements store.Store.
func (c *Client) CreateCollection(ctx context.Context, databaseID, name string, permissions []string) (store.Collection, error) {
	var col collectionDoc
	body := map[string]interface{}{
		"collectionId": uniqueID,
		"name":         name,
		"permissions":  permissions,
	}
	if err := c.do(ctx, http.MethodPost, "/databases/"+seg(databaseID)+"/collections", nil, body, &col); err != nil {
		return store.Collection{}, err
	}
	return store.Collection{ID: col.ID, Name: col.Name}, nil
}

// ListAttributes implements store.Store. Attributes still being built or
// in a failed state are listed too, so they are not created twice.
func (c *Client) ListAttributes(ctx context.Context, databaseID, collectionID string) ([]string, error) {
	path := "/databases/" + seg(databaseID) + "/collections/" + seg(collectionID) + "/attributes"
	var keys []string
	for off := 0; ; off += pageSize {
		var page attributeList
		if err := c.do(ctx, http.MethodGet, path, queries(limit(pageSize), offset(off)), nil, &page); err != nil {
			return nil, err
		}
		for _, a := range page.Attributes {
			keys = append(keys, a.Key)
		}
		if len(page.Attributes) < pageSize || len(keys) >= page.Total {
			return keys, nil
		}
	}
}

func (c *Client) createAttribute(ctx context.Context, databaseID, collectionID string, kind store.AttributeType, body map[string]interface{}) error {
	path := "/databases/" + seg(databaseID) + "/collections/" + seg(collectionID) + "/attributes/" + attributePath(kind)
	return c.do(ctx, http.MethodPost, path, nil, body, nil)
}

// attributePath maps an attribute type to its creation endpoint.
func attributePath(kind store.AttributeType) string {
	if kind == store.AttributeFloat {
		return "float"
	}
	return string(kind)
}

// CreateStringAttribute implements store.Store.
func (c *Client) CreateStringAttribute(ctx context.Context, databaseID, collectionID, key string, size int, required, array bool) error {
	return c.createAttribute(ctx, databaseID, collectionID, store.AttributeString, map[string]interface{}{
		"key":      key,
		"size":     size,
		"required": required,
		"array":    array,
	})
}

// CreateFloatAttribute implements store.Store.
func (c *Client) CreateFloatAttribute(ctx context.Context, databaseID, collectionID, key string, required, array bool) error {
	return c.createAttribute(ctx, databaseID, collectionID, store.AttributeFloat, map[string]interface{}{
		"key":      key,
		"required": required,
		"array":    array,
	})
}

// CreateBooleanAttribute implements store.Store.
func (c *Client) CreateBooleanAttribute(ctx context.Context, databaseID, collectionID, key string, required, array bool) error {
	return c.createAttribute(ctx, databaseID, collectionID, store.AttributeBoolean, map[string]interface{}{
		"key":      key,
		"required": required,
		"array":    array,
	})
}

// CreateDatetimeAttribute implements store.Store.
func (c *Client) CreateDatetimeAttribute(ctx context.Context, databaseID, collectionID, key string, required, array bool) error {
	return c.createAttribute(ctx, databaseID, collectionID, store.AttributeDatetime, map[string]interface{}{
		"key":      key,
		"required": required,
		"array":    array,
	})
}

// CreateEnumAttribute implements store.Store.
func (c *Client) CreateEnumAttribute(ctx context.Context, databaseID, collectionID, key string, elements []string, required, array bool) error {
	if elements == nil {
		elements = []string{}
	}
	return c.createAttribute(ctx, databaseID, collectionID, store.AttributeEnum, map[string]interface{}{
		"key":      key,
		"elements": elements,
		"required": required,
		"array":    array,
	})
}
