package sqlstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"payment-relay/core/database"
	"payment-relay/core/store"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store implements store.DocumentStore on a GORM connection.
type Store struct {
	db *gorm.DB
}

// New wraps an open connection. Call Migrate before first use on a fresh
// database.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the catalog tables.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&DatabaseRow{}, &CollectionRow{}, &AttributeRow{}, &DocumentRow{}); err != nil {
		return fmt.Errorf("failed to migrate catalog: %w", err)
	}
	return nil
}

// Inspect returns the required columns each catalog table lacks. Tables
// with nothing missing are omitted.
func (s *Store) Inspect() (map[string][]string, error) {
	out := map[string][]string{}
	for table, want := range requiredColumns {
		missing, err := database.MissingColumns(s.db, table, want...)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			out[table] = missing
		}
	}
	return out, nil
}

// Verify reports catalog tables that lack a required column.
func (s *Store) Verify() error {
	missing, err := s.Inspect()
	if err != nil {
		return err
	}
	tables := make([]string, 0, len(missing))
	for t := range missing {
		tables = append(tables, t)
	}
	sort.Strings(tables)

	var problems []string
	for _, table := range tables {
		problems = append(problems, fmt.Sprintf("%s: missing %s", table, strings.Join(missing[table], ", ")))
	}
	if len(problems) > 0 {
		return fmt.Errorf("catalog schema is incomplete: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Tables returns the catalog table names, sorted.
func Tables() []string {
	out := make([]string, 0, len(requiredColumns))
	for t := range requiredColumns {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// wrap maps driver errors to the store sentinels.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, store.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey), isDuplicate(err):
		return fmt.Errorf("%s: %w: %v", op, store.ErrConflict, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return fmt.Errorf("%s: %w: %v", op, store.ErrUnavailable, err)
	}
}

// isDuplicate recognizes unique violations when the dialector does not
// translate them.
func isDuplicate(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}

// ListDatabases implements store.Store.
func (s *Store) ListDatabases(ctx context.Context, name string) ([]store.Database, error) {
	var rows []DatabaseRow
	if err := s.db.WithContext(ctx).Where("name = ?", name).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, wrap("list databases", err)
	}
	out := make([]store.Database, 0, len(rows))
	for _, r := range rows {
		out = append(out, store.Database{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

// CreateDatabase implements store.Store.
func (s *Store) CreateDatabase(ctx context.Context, name string) (store.Database, error) {
	row := DatabaseRow{ID: uuid.NewString(), Name: name, Enabled: true}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return store.Database{}, wrap("create database", err)
	}
	return store.Database{ID: row.ID, Name: row.Name}, nil
}

func (s *Store) requireDatabase(ctx context.Context, databaseID string) error {
	var row DatabaseRow
	return wrap("find database "+databaseID, s.db.WithContext(ctx).Where("id = ?", databaseID).Take(&row).Error)
}

func (s *Store) requireCollection(ctx context.Context, databaseID, collectionID string) error {
	var row CollectionRow
	err := s.db.WithContext(ctx).Where("id = ? AND database_id = ?", collectionID, databaseID).Take(&row).Error
	return wrap("find collection "+collectionID, err)
}

// ListCollections implements store.Store.
func (s *Store) ListCollections(ctx context.Context, databaseID string) ([]store.Collection, error) {
	if err := s.requireDatabase(ctx, databaseID); err != nil {
		return nil, err
	}
	var rows []CollectionRow
	if err := s.db.WithContext(ctx).Where("database_id = ?", databaseID).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, wrap("list collections", err)
	}
	out := make([]store.Collection, 0, len(rows))
	for _, r := range rows {
		out = append(out, store.Collection{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

// CreateCollection implements store.Store.
func (s *Store) CreateCollection(ctx context.Context, databaseID, name string, permissions []string) (store.Collection, error) {
	if err := s.requireDatabase(ctx, databaseID); err != nil {
		return store.Collection{}, err
	}
	perms, err := json.Marshal(permissions)
	if err != nil {
		return store.Collection{}, fmt.Errorf("failed to encode permissions: %w", err)
	}
	row := CollectionRow{ID: uuid.NewString(), DatabaseID: databaseID, Name: name, Permissions: string(perms)}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return store.Collection{}, wrap("create collection", err)
	}
	return store.Collection{ID: row.ID, Name: row.Name}, nil
}

// ListAttributes implements store.Store.
func (s *Store) ListAttributes(ctx context.Context, databaseID, collectionID string) ([]string, error) {
	if err := s.requireCollection(ctx, databaseID, collectionID); err != nil {
		return nil, err
	}
	var keys []string
	err := s.db.WithContext(ctx).Model(&AttributeRow{}).
		Where("collection_id = ?", collectionID).
		Order("position").
		Pluck("key", &keys).Error
	if err != nil {
		return nil, wrap("list attributes", err)
	}
	return keys, nil
}

// Attributes returns the full attribute definitions of a collection in
// creation order.
func (s *Store) Attributes(ctx context.Context, databaseID, collectionID string) ([]store.Attribute, error) {
	if err := s.requireCollection(ctx, databaseID, collectionID); err != nil {
		return nil, err
	}
	var rows []AttributeRow
	if err := s.db.WithContext(ctx).Where("collection_id = ?", collectionID).Order("position").Find(&rows).Error; err != nil {
		return nil, wrap("list attributes", err)
	}
	out := make([]store.Attribute, 0, len(rows))
	for _, r := range rows {
		attr := store.Attribute{
			Key:      r.Key,
			Type:     store.AttributeType(r.Type),
			Required: r.Required,
			Array:    r.Array,
			Size:     r.Size,
		}
		if r.Elements != "" {
			if err := json.Unmarshal([]byte(r.Elements), &attr.Elements); err != nil {
				return nil, fmt.Errorf("attribute %s has malformed elements: %w", r.Key, err)
			}
		}
		out = append(out, attr)
	}
	return out, nil
}

func (s *Store) addAttribute(ctx context.Context, databaseID, collectionID string, attr store.Attribute) error {
	if err := s.requireCollection(ctx, databaseID, collectionID); err != nil {
		return err
	}

	row := AttributeRow{
		CollectionID: collectionID,
		Key:          attr.Key,
		Type:         string(attr.Type),
		Required:     attr.Required,
		Array:        attr.Array,
		Size:         attr.Size,
	}
	if attr.Type == store.AttributeEnum {
		elements := attr.Elements
		if elements == nil {
			elements = []string{}
		}
		raw, err := json.Marshal(elements)
		if err != nil {
			return fmt.Errorf("failed to encode elements: %w", err)
		}
		row.Elements = string(raw)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&AttributeRow{}).Where("collection_id = ? AND `key` = ?", collectionID, attr.Key).Count(&count).Error; err != nil {
			return wrap("check attribute", err)
		}
		if count > 0 {
			return fmt.Errorf("attribute %s: %w", attr.Key, store.ErrConflict)
		}

		var pos int64
		if err := tx.Model(&AttributeRow{}).Where("collection_id = ?", collectionID).Count(&pos).Error; err != nil {
			return wrap("count attributes", err)
		}
		row.Position = int(pos)
		return wrap("create attribute", tx.Create(&row).Error)
	})
}

// CreateStringAttribute implements store.Store.
func (s *Store) CreateStringAttribute(ctx context.Context, databaseID, collectionID, key string, size int, required, array bool) error {
	return s.addAttribute(ctx, databaseID, collectionID, store.Attribute{Key: key, Type: store.AttributeString, Size: size, Required: required, Array: array})
}

// CreateFloatAttribute implements store.Store.
func (s *Store) CreateFloatAttribute(ctx context.Context, databaseID, collectionID, key string, required, array bool) error {
	return s.addAttribute(ctx, databaseID, collectionID, store.Attribute{Key: key, Type: store.AttributeFloat, Required: required, Array: array})
}

// CreateBooleanAttribute implements store.Store.
func (s *Store) CreateBooleanAttribute(ctx context.Context, databaseID, collectionID, key string, required, array bool) error {
	return s.addAttribute(ctx, databaseID, collectionID, store.Attribute{Key: key, Type: store.AttributeBoolean, Required: required, Array: array})
}

// CreateDatetimeAttribute implements store.Store.
func (s *Store) CreateDatetimeAttribute(ctx context.Context, databaseID, collectionID, key string, required, array bool) error {
	return s.addAttribute(ctx, databaseID, collectionID, store.Attribute{Key: key, Type: store.AttributeDatetime, Required: required, Array: array})
}

// CreateEnumAttribute implements store.Store.
func (s *Store) CreateEnumAttribute(ctx context.Context, databaseID, collectionID, key string, elements []string, required, array bool) error {
	return s.addAttribute(ctx, databaseID, collectionID, store.Attribute{Key: key, Type: store.AttributeEnum, Elements: elements, Required: required, Array: array})
}

// CreateDocument implements store.DocumentWriter. Keys must be declared
// attributes of the collection.
func (s *Store) CreateDocument(ctx context.Context, databaseID, collectionID string, data map[string]interface{}) (string, error) {
	keys, err := s.ListAttributes(ctx, databaseID, collectionID)
	if err != nil {
		return "", err
	}
	known := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		known[k] = struct{}{}
	}
	for k := range data {
		if _, ok := known[k]; !ok {
			return "", fmt.Errorf("unknown attribute %q", k)
		}
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	row := DocumentRow{ID: uuid.NewString(), CollectionID: collectionID, Data: string(raw)}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", wrap("create document", err)
	}
	return row.ID, nil
}
