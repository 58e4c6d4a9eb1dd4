// Package memstore is an in-process store.Store that records every mutating
// call. It backs `provision --backend memory` and the reconciler tests.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"payment-relay/core/store"

	"github.com/google/uuid"
)

// Call is one recorded mutation.
type Call struct {
	Op         string
	Database   string
	Collection string
	Key        string
	Attribute  store.Attribute
}

// Operation names recorded in Call.Op.
const (
	OpCreateDatabase   = "create_database"
	OpCreateCollection = "create_collection"
	OpCreateAttribute  = "create_attribute"
)

type collection struct {
	store.Collection
	permissions []string
	attrs       []store.Attribute
	documents   []Document
}

// Document is a stored document.
type Document struct {
	ID   string
	Data map[string]interface{}
}

type database struct {
	store.Database
	collections []*collection
}

// Store is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	databases []*database
	calls     []Call

	// FailAttribute, if set, is consulted before an attribute is created.
	// A non-nil error aborts that creation.
	FailAttribute func(collectionName, key string) error
	// FailList, if set, makes every list call return the error.
	FailList error
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Seed creates a database with collections and attribute keys without
// recording calls. Attributes are seeded as optional strings.
func (s *Store) Seed(dbName string, collections map[string][]string) store.Database {
	s.mu.Lock()
	defer s.mu.Unlock()

	db := s.findDatabase(dbName)
	if db == nil {
		db = &database{Database: store.Database{ID: uuid.NewString(), Name: dbName}}
		s.databases = append(s.databases, db)
	}
	for name, keys := range collections {
		c := &collection{Collection: store.Collection{ID: uuid.NewString(), Name: name}}
		for _, k := range keys {
			c.attrs = append(c.attrs, store.Attribute{Key: k, Type: store.AttributeString, Size: store.DefaultStringSize})
		}
		db.collections = append(db.collections, c)
	}
	return db.Database
}

// Calls returns a copy of the recorded mutations.
func (s *Store) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]Call, len(s.calls))
	copy(cp, s.calls)
	return cp
}

// ResetCalls clears the recorded mutations but keeps the state.
func (s *Store) ResetCalls() {
	s.mu.Lock()
	s.calls = nil
	s.mu.Unlock()
}

// Attributes returns the attributes of a collection by name.
func (s *Store) Attributes(databaseID, collectionName string) []store.Attribute {
	s.mu.Lock()
	defer s.mu.Unlock()
	db := s.findDatabaseByID(databaseID)
	if db == nil {
		return nil
	}
	for _, c := range db.collections {
		if c.Name == collectionName {
			cp := make([]store.Attribute, len(c.attrs))
			copy(cp, c.attrs)
			return cp
		}
	}
	return nil
}

// Permissions returns the permissions a collection was created with.
func (s *Store) Permissions(databaseID, collectionName string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	db := s.findDatabaseByID(databaseID)
	if db == nil {
		return nil
	}
	for _, c := range db.collections {
		if c.Name == collectionName {
			return append([]string(nil), c.permissions...)
		}
	}
	return nil
}

func (s *Store) findDatabase(name string) *database {
	for _, db := range s.databases {
		if db.Name == name {
			return db
		}
	}
	return nil
}

func (s *Store) findDatabaseByID(id string) *database {
	for _, db := range s.databases {
		if db.ID == id {
			return db
		}
	}
	return nil
}

func (s *Store) findCollection(databaseID, collectionID string) (*collection, error) {
	db := s.findDatabaseByID(databaseID)
	if db == nil {
		return nil, fmt.Errorf("database %s: %w", databaseID, store.ErrNotFound)
	}
	for _, c := range db.collections {
		if c.ID == collectionID {
			return c, nil
		}
	}
	return nil, fmt.Errorf("collection %s: %w", collectionID, store.ErrNotFound)
}

// ListDatabases implements store.Store.
func (s *Store) ListDatabases(_ context.Context, name string) ([]store.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailList != nil {
		return nil, s.FailList
	}
	var out []store.Database
	for _, db := range s.databases {
		if db.Name == name {
			out = append(out, db.Database)
		}
	}
	return out, nil
}

// CreateDatabase implements store.Store. Duplicate names are allowed,
// matching the remote platform.
func (s *Store) CreateDatabase(_ context.Context, name string) (store.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	db := &database{Database: store.Database{ID: uuid.NewString(), Name: name}}
	s.databases = append(s.databases, db)
	s.calls = append(s.calls, Call{Op: OpCreateDatabase, Database: db.ID, Key: name})
	return db.Database, nil
}

// ListCollections implements store.Store.
func (s *Store) ListCollections(_ context.Context, databaseID string) ([]store.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailList != nil {
		return nil, s.FailList
	}
	db := s.findDatabaseByID(databaseID)
	if db == nil {
		return nil, fmt.Errorf("database %s: %w", databaseID, store.ErrNotFound)
	}
	out := make([]store.Collection, 0, len(db.collections))
	for _, c := range db.collections {
		out = append(out, c.Collection)
	}
	return out, nil
}

// CreateCollection implements store.Store.
func (s *Store) CreateCollection(_ context.Context, databaseID, name string, permissions []string) (store.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	db := s.findDatabaseByID(databaseID)
	if db == nil {
		return store.Collection{}, fmt.Errorf("database %s: %w", databaseID, store.ErrNotFound)
	}
	c := &collection{
		Collection:  store.Collection{ID: uuid.NewString(), Name: name},
		permissions: append([]string(nil), permissions...),
	}
	db.collections = append(db.collections, c)
	s.calls = append(s.calls, Call{Op: OpCreateCollection, Database: databaseID, Collection: c.ID, Key: name})
	return c.Collection, nil
}

// ListAttributes implements store.Store.
func (s *Store) ListAttributes(_ context.Context, databaseID, collectionID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailList != nil {
		return nil, s.FailList
	}
	c, err := s.findCollection(databaseID, collectionID)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(c.attrs))
	for _, a := range c.attrs {
		keys = append(keys, a.Key)
	}
	return keys, nil
}

func (s *Store) addAttribute(databaseID, collectionID string, attr store.Attribute) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.findCollection(databaseID, collectionID)
	if err != nil {
		return err
	}
	if s.FailAttribute != nil {
		if err := s.FailAttribute(c.Name, attr.Key); err != nil {
			return err
		}
	}
	for _, a := range c.attrs {
		if a.Key == attr.Key {
			return fmt.Errorf("attribute %s: %w", attr.Key, store.ErrConflict)
		}
	}
	c.attrs = append(c.attrs, attr)
	s.calls = append(s.calls, Call{Op: OpCreateAttribute, Database: databaseID, Collection: collectionID, Key: attr.Key, Attribute: attr})
	return nil
}

// CreateStringAttribute implements store.Store.
func (s *Store) CreateStringAttribute(_ context.Context, databaseID, collectionID, key string, size int, required, array bool) error {
	return s.addAttribute(databaseID, collectionID, store.Attribute{Key: key, Type: store.AttributeString, Size: size, Required: required, Array: array})
}

// CreateFloatAttribute implements store.Store.
func (s *Store) CreateFloatAttribute(_ context.Context, databaseID, collectionID, key string, required, array bool) error {
	return s.addAttribute(databaseID, collectionID, store.Attribute{Key: key, Type: store.AttributeFloat, Required: required, Array: array})
}

// CreateBooleanAttribute implements store.Store.
func (s *Store) CreateBooleanAttribute(_ context.Context, databaseID, collectionID, key string, required, array bool) error {
	return s.addAttribute(databaseID, collectionID, store.Attribute{Key: key, Type: store.AttributeBoolean, Required: required, Array: array})
}

// CreateDatetimeAttribute implements store.Store.
func (s *Store) CreateDatetimeAttribute(_ context.Context, databaseID, collectionID, key string, required, array bool) error {
	return s.addAttribute(databaseID, collectionID, store.Attribute{Key: key, Type: store.AttributeDatetime, Required: required, Array: array})
}

// CreateEnumAttribute implements store.Store.
func (s *Store) CreateEnumAttribute(_ context.Context, databaseID, collectionID, key string, elements []string, required, array bool) error {
	return s.addAttribute(databaseID, collectionID, store.Attribute{Key: key, Type: store.AttributeEnum, Elements: append([]string(nil), elements...), Required: required, Array: array})
}

// CreateDocument implements store.DocumentWriter. Keys without a matching
// attribute are rejected, as the remote platform does.
func (s *Store) CreateDocument(_ context.Context, databaseID, collectionID string, data map[string]interface{}) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.findCollection(databaseID, collectionID)
	if err != nil {
		return "", err
	}
	known := make(map[string]struct{}, len(c.attrs))
	for _, a := range c.attrs {
		known[a.Key] = struct{}{}
	}
	doc := Document{ID: uuid.NewString(), Data: make(map[string]interface{}, len(data))}
	for k, v := range data {
		if _, ok := known[k]; !ok {
			return "", fmt.Errorf("unknown attribute %q", k)
		}
		doc.Data[k] = v
	}
	c.documents = append(c.documents, doc)
	return doc.ID, nil
}

// Documents returns the documents of a collection by name.
func (s *Store) Documents(databaseID, collectionName string) []Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	db := s.findDatabaseByID(databaseID)
	if db == nil {
		return nil
	}
	for _, c := range db.collections {
		if c.Name == collectionName {
			return append([]Document(nil), c.documents...)
		}
	}
	return nil
}
