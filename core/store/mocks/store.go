package mocks

import (
	"context"

	"payment-relay/core/store"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of store.Store
type Store struct {
	mock.Mock
}

func (m *Store) ListDatabases(ctx context.Context, name string) ([]store.Database, error) {
	args := m.Called(ctx, name)
	if dbs, ok := args.Get(0).([]store.Database); ok {
		return dbs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) CreateDatabase(ctx context.Context, name string) (store.Database, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(store.Database), args.Error(1)
}

func (m *Store) ListCollections(ctx context.Context, databaseID string) ([]store.Collection, error) {
	args := m.Called(ctx, databaseID)
	if cols, ok := args.Get(0).([]store.Collection); ok {
		return cols, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) CreateCollection(ctx context.Context, databaseID, name string, permissions []string) (store.Collection, error) {
	args := m.Called(ctx, databaseID, name, permissions)
	return args.Get(0).(store.Collection), args.Error(1)
}

func (m *Store) ListAttributes(ctx context.Context, databaseID, collectionID string) ([]string, error) {
	args := m.Called(ctx, databaseID, collectionID)
	if keys, ok := args.Get(0).([]string); ok {
		return keys, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) CreateStringAttribute(ctx context.Context, databaseID, collectionID, key string, size int, required, array bool) error {
	args := m.Called(ctx, databaseID, collectionID, key, size, required, array)
	return args.Error(0)
}

func (m *Store) CreateFloatAttribute(ctx context.Context, databaseID, collectionID, key string, required, array bool) error {
	args := m.Called(ctx, databaseID, collectionID, key, required, array)
	return args.Error(0)
}

func (m *Store) CreateBooleanAttribute(ctx context.Context, databaseID, collectionID, key string, required, array bool) error {
	args := m.Called(ctx, databaseID, collectionID, key, required, array)
	return args.Error(0)
}

func (m *Store) CreateDatetimeAttribute(ctx context.Context, databaseID, collectionID, key string, required, array bool) error {
	args := m.Called(ctx, databaseID, collectionID, key, required, array)
	return args.Error(0)
}

func (m *Store) CreateEnumAttribute(ctx context.Context, databaseID, collectionID, key string, elements []string, required, array bool) error {
	args := m.Called(ctx, databaseID, collectionID, key, elements, required, array)
	return args.Error(0)
}

func (m *Store) CreateDocument(ctx context.Context, databaseID, collectionID string, data map[string]interface{}) (string, error) {
	args := m.Called(ctx, databaseID, collectionID, data)
	return args.String(0), args.Error(1)
}
