package appwrite

import (
	"context"
	"net/http"
)

type documentDoc struct {
	ID string `json:"$id"`
}

// CreateDocument implements store.DocumentWriter.
func (c *Client) CreateDocument(ctx context.Context, databaseID, collectionID string, data map[string]interface{}) (string, error) {
	var doc documentDoc
	body := map[string]interface{}{
		"documentId": uniqueID,
		"data":       data,
	}
	path := "/databases/" + seg(databaseID) + "/collections/" + seg(collectionID) + "/documents"
	if err := c.do(ctx, http.MethodPost, path, nil, body, &doc); err != nil {
		return "", err
	}
	return doc.ID, nil
}
