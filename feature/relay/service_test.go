package relay

import (
	"context"
	"fmt"
	"testing"

	"payment-relay/core/gateway"
	"payment-relay/feature/schemas"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestService_Relay(t *testing.T) {
	st, db := provisioned(t)
	gw := &fakeGateway{fields: approved()}
	svc := NewService(gw, nil, NewAuditLog(st, "NMI", nil, zap.NewNop()), zap.NewNop())

	result, err := svc.Relay(context.Background(), "ray-1", Envelope{
		RequestCategory: CategoryTransaction,
		RequestAction:   "refund",
		InitiatedBy:     "user-1",
		Data:            map[string]interface{}{"transactionid": "9001", "amount": 5.0},
	})
	require.NoError(t, err)
	assert.Equal(t, "approved", result.Status)
	assert.NotEmpty(t, result.LogID)
	assert.Empty(t, result.ArchiveKey)

	sent := gw.last()
	assert.Equal(t, "refund", sent.Get("type"))
	assert.Equal(t, "9001", sent.Get("transactionid"))
	assert.Equal(t, "5", sent.Get("amount"))

	assert.Len(t, st.Documents(db.ID, schemas.GatewayLogs), 1)
}

func TestService_Relay_Declined(t *testing.T) {
	gw := &fakeGateway{fields: map[string]string{"response": "2", "responsetext": "DECLINE"}}
	svc := NewService(gw, nil, nil, nil)

	result, err := svc.Relay(context.Background(), "", Envelope{RequestCategory: CategoryTransaction, RequestAction: "create"})
	require.NoError(t, err)
	assert.Equal(t, "declined", result.Status)
	assert.Equal(t, "DECLINE", result.Response["responsetext"])
	assert.Empty(t, result.LogID)
}

func TestService_Relay_Errors(t *testing.T) {
	ctx := context.Background()
	valid := Envelope{RequestCategory: CategoryProductManager, RequestAction: "addProduct", InitiatedBy: "u"}

	t.Run("InvalidEnvelope", func(t *testing.T) {
		gw := &fakeGateway{fields: approved()}
		svc := NewService(gw, nil, nil, nil)
		_, err := svc.Relay(ctx, "", Envelope{RequestCategory: "nope"})
		assert.ErrorIs(t, err, ErrInvalidEnvelope)
		assert.Nil(t, gw.last())
	})

	t.Run("NotReady", func(t *testing.T) {
		gw := &fakeGateway{fields: approved()}
		svc := NewService(gw, readyFunc(func(context.Context) error { return errDown }), nil, nil)
		_, err := svc.Relay(ctx, "", valid)
		assert.ErrorIs(t, err, ErrNotReady)
		assert.Nil(t, gw.last(), "gateway must not be called")
	})

	t.Run("GatewayFailure", func(t *testing.T) {
		gw := &fakeGateway{err: fmt.Errorf("%w: status 500", gateway.ErrGateway)}
		svc := NewService(gw, readyFunc(func(context.Context) error { return nil }), nil, nil)
		_, err := svc.Relay(ctx, "", valid)
		assert.ErrorIs(t, err, gateway.ErrGateway)
	})
}
