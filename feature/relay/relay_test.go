package relay

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"

	"payment-relay/core/gateway"
	"payment-relay/core/provision"
	"payment-relay/core/store"
	"payment-relay/core/store/memstore"
	"payment-relay/feature/schemas"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGateway struct {
	mu     sync.Mutex
	sent   []url.Values
	fields map[string]string
	err    error
}

func (f *fakeGateway) Do(_ context.Context, params url.Values) (gateway.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, params)
	if f.err != nil {
		return gateway.Response{}, f.err
	}
	return gateway.Response{Fields: f.fields}, nil
}

func (f *fakeGateway) last() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return nil
	}
	return f.sent[len(f.sent)-1]
}

type fakeArchive struct {
	mu      sync.Mutex
	objects map[string]interface{}
	err     error
}

func (f *fakeArchive) Put(_ context.Context, key string, v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.objects == nil {
		f.objects = map[string]interface{}{}
	}
	f.objects[key] = v
	return nil
}

type readyFunc func(ctx context.Context) error

func (f readyFunc) EnsureReady(ctx context.Context) error { return f(ctx) }

var errDown = errors.New("store down")

// provisioned returns a store holding every relay collection.
func provisioned(t *testing.T) (*memstore.Store, store.Database) {
	t.Helper()
	st := memstore.New()
	p := provision.NewProvisioner(
		provision.Config{DatabaseName: "NMI", CheckOnStartup: true},
		provision.New(st, zap.NewNop()), schemas.Desired(), nil,
	)
	_, err := p.Run(context.Background())
	require.NoError(t, err)

	dbs, err := st.ListDatabases(context.Background(), "NMI")
	require.NoError(t, err)
	require.Len(t, dbs, 1)
	return st, dbs[0]
}

func approved() map[string]string {
	return map[string]string{
		"response":      "1",
		"responsetext":  "SUCCESS",
		"response_code": "100",
		"authcode":      "123456",
		"transactionid": "9001",
		"type":          "sale",
		"amount":        "10.00",
		"cvvresponse":   "M",
		"unknown_field": "dropped",
	}
}
