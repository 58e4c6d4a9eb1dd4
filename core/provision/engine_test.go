package provision

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"payment-relay/core/schema"
	"payment-relay/core/store"
	"payment-relay/core/store/memstore"
	"payment-relay/core/store/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func productsSet() schema.DesiredSet {
	return schema.DesiredSet{
		schema.NewCollection("Products",
			schema.F("name", schema.String()),
			schema.F("price", schema.Number()),
		),
	}
}

func TestEnsureDatabase(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesWhenMissing", func(t *testing.T) {
		st := memstore.New()
		r := New(st, zap.NewNop())

		db, err := r.EnsureDatabase(ctx, "NMI")
		require.NoError(t, err)
		assert.Equal(t, "NMI", db.Name)
		assert.NotEmpty(t, db.ID)

		calls := st.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, memstore.OpCreateDatabase, calls[0].Op)
	})

	t.Run("ReusesExisting", func(t *testing.T) {
		st := memstore.New()
		seeded := st.Seed("NMI", nil)
		r := New(st, zap.NewNop())

		db, err := r.EnsureDatabase(ctx, "NMI")
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, db.ID)
		assert.Empty(t, st.Calls())
	})

	t.Run("AmbiguousName", func(t *testing.T) {
		st := new(mocks.Store)
		st.On("ListDatabases", ctx, "NMI").Return([]store.Database{{ID: "1", Name: "NMI"}, {ID: "2", Name: "NMI"}}, nil)
		r := New(st, zap.NewNop())

		_, err := r.EnsureDatabase(ctx, "NMI")
		assert.ErrorIs(t, err, ErrAmbiguousDatabase)
		st.AssertNotCalled(t, "CreateDatabase", mock.Anything, mock.Anything)
	})

	t.Run("StoreUnavailable", func(t *testing.T) {
		st := new(mocks.Store)
		st.On("ListDatabases", ctx, "NMI").Return(nil, fmt.Errorf("dial tcp: %w", store.ErrUnavailable))
		r := New(st, zap.NewNop())

		_, err := r.EnsureDatabase(ctx, "NMI")
		assert.ErrorIs(t, err, store.ErrUnavailable)
	})

	t.Run("EmptyName", func(t *testing.T) {
		r := New(memstore.New(), zap.NewNop())
		_, err := r.EnsureDatabase(ctx, "")
		assert.Error(t, err)
	})
}

// Empty store: one collection and both fields are created.
func TestReconcileCollections_EmptyStore(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	r := New(st, zap.NewNop())

	db, err := r.EnsureDatabase(ctx, "NMI")
	require.NoError(t, err)
	st.ResetCalls()

	report, err := r.ReconcileCollections(ctx, db, productsSet())
	require.NoError(t, err)

	calls := st.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, memstore.OpCreateCollection, calls[0].Op)
	assert.Equal(t, "Products", calls[0].Key)

	assert.Equal(t, "name", calls[1].Key)
	assert.Equal(t, store.AttributeString, calls[1].Attribute.Type)
	assert.True(t, calls[1].Attribute.Required)

	assert.Equal(t, "price", calls[2].Key)
	assert.Equal(t, store.AttributeFloat, calls[2].Attribute.Type)
	assert.True(t, calls[2].Attribute.Required)

	assert.Equal(t, []string{store.PermissionReadAny}, st.Permissions(db.ID, "Products"))
	assert.Equal(t, []string{"Products"}, report.CollectionsCreated)
	assert.Equal(t, 2, report.FieldsCreated)
}

// Existing collection with "name": only "price" is created.
func TestReconcileCollections_AddsMissingField(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	db := st.Seed("NMI", map[string][]string{"Products": {"name"}})
	r := New(st, zap.NewNop())

	report, err := r.ReconcileCollections(ctx, db, productsSet())
	require.NoError(t, err)

	calls := st.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, memstore.OpCreateAttribute, calls[0].Op)
	assert.Equal(t, "price", calls[0].Key)

	attrs := st.Attributes(db.ID, "Products")
	require.Len(t, attrs, 2)
	assert.Equal(t, "name", attrs[0].Key)
	assert.Equal(t, store.AttributeString, attrs[0].Type)
	assert.False(t, attrs[0].Required, "seeded attribute must be untouched")

	assert.Empty(t, report.CollectionsCreated)
	assert.Equal(t, []string{"Products"}, report.CollectionsExisting)
}

func TestReconcileCollections_Idempotent(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	r := New(st, zap.NewNop())
	desired := schema.DesiredSet{
		schema.NewCollection("Transactions",
			schema.F("transactionid", schema.String()),
			schema.F("response", schema.Enum("1", "2", "3")),
			schema.F("details", schema.Unsupported(schema.ReasonObject)),
			schema.F("tags", schema.Optional(schema.Array(schema.String()))),
		),
		schema.NewCollection("Gateway Logs",
			schema.F("usersAffected", schema.Optional(schema.Array(schema.String()))),
		),
	}

	db, err := r.EnsureDatabase(ctx, "NMI")
	require.NoError(t, err)

	first, err := r.ReconcileCollections(ctx, db, desired)
	require.NoError(t, err)
	assert.Equal(t, 2, len(first.CollectionsCreated))
	assert.Equal(t, 4, first.FieldsCreated)
	assert.Equal(t, 1, first.FieldsSkipped)

	st.ResetCalls()
	second, err := r.ReconcileCollections(ctx, db, desired)
	require.NoError(t, err)
	assert.Empty(t, st.Calls())
	assert.Equal(t, 0, second.Mutations())
	assert.Equal(t, 1, second.FieldsSkipped)
}

func TestReconcileCollections_FieldFailureDoesNotAbort(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	st.FailAttribute = func(collection, key string) error {
		if key == "name" {
			return errors.New("transient network fault")
		}
		return nil
	}
	r := New(st, zap.NewNop())
	desired := append(productsSet(), schema.NewCollection("Invoices", schema.F("invoice_id", schema.String())))

	db, err := r.EnsureDatabase(ctx, "NMI")
	require.NoError(t, err)

	report, err := r.ReconcileCollections(ctx, db, desired)
	require.NoError(t, err)
	assert.Equal(t, 1, report.FieldsFailed)
	assert.Equal(t, 2, report.FieldsCreated)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "Products", report.Failures[0].Collection)
	assert.Equal(t, "name", report.Failures[0].Field)

	// The failed field is still missing and is picked up by the next run.
	st.FailAttribute = nil
	st.ResetCalls()
	report, err = r.ReconcileCollections(ctx, db, desired)
	require.NoError(t, err)
	assert.Equal(t, 1, report.FieldsCreated)
	require.Len(t, st.Calls(), 1)
	assert.Equal(t, "name", st.Calls()[0].Key)
}

func TestReconcileCollections_CollectionFailurePropagates(t *testing.T) {
	ctx := context.Background()
	st := new(mocks.Store)
	db := store.Database{ID: "db", Name: "NMI"}

	st.On("ListCollections", ctx, "db").Return([]store.Collection{}, nil)
	st.On("CreateCollection", ctx, "db", "Products", []string{store.PermissionReadAny}).
		Return(store.Collection{}, store.ErrUnavailable)

	r := New(st, zap.NewNop())
	_, err := r.ReconcileCollections(ctx, db, productsSet())
	assert.ErrorIs(t, err, store.ErrUnavailable)
	st.AssertNotCalled(t, "CreateStringAttribute", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcileCollections_ListFailurePropagates(t *testing.T) {
	st := memstore.New()
	db := st.Seed("NMI", nil)
	st.FailList = store.ErrUnavailable
	r := New(st, zap.NewNop())

	_, err := r.ReconcileCollections(context.Background(), db, productsSet())
	assert.ErrorIs(t, err, store.ErrUnavailable)
	assert.Empty(t, st.Calls())
}

func TestReconcileCollections_DeclarationOrder(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	db := st.Seed("NMI", map[string][]string{"B": {"x"}})
	r := New(st, zap.NewNop())

	desired := schema.DesiredSet{
		schema.NewCollection("A", schema.F("z", schema.String()), schema.F("y", schema.String())),
		schema.NewCollection("B", schema.F("w", schema.String()), schema.F("x", schema.String()), schema.F("v", schema.String())),
	}

	_, err := r.ReconcileCollections(ctx, db, desired)
	require.NoError(t, err)

	var keys []string
	for _, c := range st.Calls() {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"A", "z", "y", "w", "v"}, keys)
}
