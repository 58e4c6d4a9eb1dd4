package checks

import (
	"context"
	"errors"
	"testing"

	"payment-relay/core/provision"
	"payment-relay/core/schema"
	"payment-relay/core/storage/mocks"
	"payment-relay/core/store/memstore"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func planner(st *memstore.Store) Planner {
	desired := schema.DesiredSet{
		schema.NewCollection("Products",
			schema.F("name", schema.String()),
			schema.F("meta", schema.Unsupported(schema.ReasonObject)),
		),
	}
	return provision.NewProvisioner(provision.Config{DatabaseName: "NMI"}, provision.New(st, zap.NewNop()), desired, nil)
}

func TestCheckSchema(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingDatabase", func(t *testing.T) {
		report, err := CheckSchema(ctx, planner(memstore.New()))
		require.NoError(t, err)
		assert.False(t, report.Matched)
		assert.False(t, report.DatabaseExists)
		assert.Equal(t, []string{"Products"}, report.MissingCollections)
		assert.Equal(t, []string{"Products.name"}, report.MissingFields)
		assert.Equal(t, []string{"Products.meta"}, report.UnmappedFields)
	})

	t.Run("Matched", func(t *testing.T) {
		st := memstore.New()
		st.Seed("NMI", map[string][]string{"Products": {"name"}})
		report, err := CheckSchema(ctx, planner(st))
		require.NoError(t, err)
		assert.True(t, report.Matched)
		assert.Empty(t, report.MissingFields)
	})

	t.Run("StoreDown", func(t *testing.T) {
		st := memstore.New()
		st.FailList = errors.New("down")
		_, err := CheckSchema(ctx, planner(st))
		assert.Error(t, err)
	})
}

func TestCheckArchive(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "relay-logs").Return(false, nil)
		report, err := CheckArchive(ctx, client, "relay-logs")
		require.NoError(t, err)
		assert.False(t, report.Exists)
		client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("WithLogs", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "relay-logs").Return(true, nil)
		client.On("ListObjects", ctx, "relay-logs", mock.Anything).Return(mocks.Objects(minio.ObjectInfo{Key: "logs/invoice/x.json"}))
		report, err := CheckArchive(ctx, client, "relay-logs")
		require.NoError(t, err)
		assert.True(t, report.Exists)
		assert.True(t, report.HasLogs)
	})

	t.Run("ListError", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "relay-logs").Return(true, nil)
		client.On("ListObjects", ctx, "relay-logs", mock.Anything).Return(mocks.Objects(minio.ObjectInfo{Err: errors.New("denied")}))
		_, err := CheckArchive(ctx, client, "relay-logs")
		assert.Error(t, err)
	})
}

func TestFixArchive(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("MakeBucket", ctx, "relay-logs", mock.Anything).Return(nil)
	require.NoError(t, FixArchive(ctx, client, "relay-logs", zap.NewNop()))
	client.AssertExpectations(t)
}

type staticInspector map[string][]string

func (s staticInspector) Inspect() (map[string][]string, error) { return s, nil }

func TestCheckCatalog(t *testing.T) {
	report, err := CheckCatalog(staticInspector{}, []string{"a", "b"})
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Equal(t, "ok", report.Tables["a"].Status)

	report, err = CheckCatalog(staticInspector{"b": {"data"}}, []string{"a", "b"})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, []string{"data"}, report.Tables["b"].MissingColumns)

	_, err = CheckCatalog(nil, nil)
	assert.Error(t, err)
}
