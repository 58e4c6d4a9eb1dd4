package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvelope(t *testing.T) {
	env, op, err := ParseEnvelope([]byte(`{
		"requestCategory": "transaction",
		"requestAction": "create",
		"initiatedBy": "user-1",
		"data": {"amount": "10.00", "ccnumber": "4111111111111111"}
	}`))
	require.NoError(t, err)
	assert.Equal(t, CategoryTransaction, env.RequestCategory)
	assert.Equal(t, "user-1", env.InitiatedBy)
	assert.Equal(t, "10.00", env.Data["amount"])
	assert.Equal(t, Operation{Param: "type", Value: "sale"}, op)
}

func TestParseEnvelope_Invalid(t *testing.T) {
	cases := map[string]string{
		"MalformedJSON":    `{"requestCategory":`,
		"MissingInitiator": `{"requestCategory":"transaction","requestAction":"create","data":{}}`,
		"UnknownCategory":  `{"requestCategory":"refunds","requestAction":"create","initiatedBy":"u"}`,
		"UnknownAction":    `{"requestCategory":"invoice","requestAction":"sale","initiatedBy":"u"}`,
		"DataNotObject":    `{"requestCategory":"transaction","requestAction":"create","initiatedBy":"u","data":[1,2]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := ParseEnvelope([]byte(body))
			assert.ErrorIs(t, err, ErrInvalidEnvelope)
		})
	}
}

func TestParseEnvelope_NullDataAndEmptyInitiator(t *testing.T) {
	env, _, err := ParseEnvelope([]byte(`{"requestCategory":"productManager","requestAction":"addProduct","initiatedBy":"","data":null}`))
	require.NoError(t, err)
	assert.Empty(t, env.InitiatedBy)
	assert.Nil(t, env.Data)
}

func TestOperation_UnknownActionListsChoices(t *testing.T) {
	_, err := Envelope{RequestCategory: CategoryInvoice, RequestAction: "pay"}.Operation()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "close, create, send, update")
}

func TestDispatchTable(t *testing.T) {
	assert.Equal(t, []string{"customerVault", "invoice", "productManager", "subscription", "transaction"}, Categories())

	op, err := Envelope{RequestCategory: CategorySubscription, RequestAction: "addCustomByAch"}.Operation()
	require.NoError(t, err)
	assert.Equal(t, "recurring", op.Param)
	assert.Equal(t, "add_subscription", op.Value)
	assert.Equal(t, "check", op.Fixed["payment"])

	op, err = Envelope{RequestCategory: CategoryCustomerVault, RequestAction: "deleteBilling"}.Operation()
	require.NoError(t, err)
	assert.Equal(t, Operation{Param: "customer_vault", Value: "delete_billing"}, op)

	for _, c := range Categories() {
		assert.NotEmpty(t, Actions(Category(c)), c)
	}
}
