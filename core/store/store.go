package store

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable means the store could not be reached or refused the credentials.
	ErrUnavailable = errors.New("store unavailable")
	// ErrConflict means the resource already exists.
	ErrConflict = errors.New("resource already exists")
	// ErrNotFound means the resource does not exist.
	ErrNotFound = errors.New("resource not found")
)

// PermissionReadAny grants read access to everyone.
const PermissionReadAny = `read("any")`

// DefaultStringSize is the size used for string attributes.
const DefaultStringSize = 255

// Database is a handle to a remote database.
type Database struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Collection is a handle to a collection inside a database.
type Collection struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Store is the structured-store collaborator of the reconciler.
// Every method is independently failable.
type Store interface {
	// ListDatabases returns databases whose name equals name.
	ListDatabases(ctx context.Context, name string) ([]Database, error)
	// CreateDatabase creates an enabled database.
	CreateDatabase(ctx context.Context, name string) (Database, error)

	// ListCollections returns every collection of the database.
	ListCollections(ctx context.Context, databaseID string) ([]Collection, error)
	// CreateCollection creates a collection with the given permissions.
	CreateCollection(ctx context.Context, databaseID, name string, permissions []string) (Collection, error)

	// ListAttributes returns the attribute keys of a collection.
	ListAttributes(ctx context.Context, databaseID, collectionID string) ([]string, error)

	CreateStringAttribute(ctx context.Context, databaseID, collectionID, key string, size int, required, array bool) error
	CreateFloatAttribute(ctx context.Context, databaseID, collectionID, key string, required, array bool) error
	CreateBooleanAttribute(ctx context.Context, databaseID, collectionID, key string, required, array bool) error
	CreateDatetimeAttribute(ctx context.Context, databaseID, collectionID, key string, required, array bool) error
	CreateEnumAttribute(ctx context.Context, databaseID, collectionID, key string, elements []string, required, array bool) error
}

// DocumentWriter appends documents to a collection.
type DocumentWriter interface {
	// CreateDocument stores data under a fresh id and returns that id.
	CreateDocument(ctx context.Context, databaseID, collectionID string, data map[string]interface{}) (string, error)
}

// DocumentStore is a Store that also accepts documents.
type DocumentStore interface {
	Store
	DocumentWriter
}

// AttributeType is the storage kind of an attribute.
type AttributeType string

const (
	AttributeString   AttributeType = "string"
	AttributeFloat    AttributeType = "double"
	AttributeBoolean  AttributeType = "boolean"
	AttributeDatetime AttributeType = "datetime"
	AttributeEnum     AttributeType = "enum"
)

// Attribute is a full attribute definition, as kept by stores that own
// their catalog (sqlstore, memstore).
type Attribute struct {
	Key      string        `json:"key"`
	Type     AttributeType `json:"type"`
	Required bool          `json:"required"`
	Array    bool          `json:"array"`
	Size     int           `json:"size,omitempty"`
	Elements []string      `json:"elements,omitempty"`
}
