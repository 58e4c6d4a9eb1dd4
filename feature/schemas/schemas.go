package schemas

import "payment-relay/core/schema"

// Collection names, in provisioning order.
const (
	Products      = "Products"
	Transactions  = "Transactions"
	Subscriptions = "Subscriptions"
	Invoices      = "Invoices"
	CustomerVault = "Customer Vault"
	GatewayLogs   = "Gateway Logs"
)

// Bookkeeping field names.
const (
	FieldInitiatedBy   = "initiatedBy"
	FieldUsersAffected = "usersAffected"
)

func base(name string, fields ...schema.Field) schema.CollectionSchema {
	common := []schema.Field{
		schema.F("response", schema.Enum("1", "2", "3")),
		schema.F("responsetext", schema.String()),
		schema.F("response_code", schema.Optional(schema.String())),
	}
	return schema.NewCollection(name, append(common, fields...)...)
}

// ProductResponse describes product manager replies.
func ProductResponse() schema.CollectionSchema {
	return base(Products,
		schema.F("product_id", schema.Optional(schema.String())),
	)
}

// TransactionResponse describes transaction replies.
func TransactionResponse() schema.CollectionSchema {
	return base(Transactions,
		schema.F("authcode", schema.Optional(schema.String())),
		schema.F("transactionid", schema.Optional(schema.String())),
		schema.F("avsresponse", schema.Optional(schema.String())),
		schema.F("cvvresponse", schema.Optional(schema.String())),
		schema.F("orderid", schema.Optional(schema.String())),
		schema.F("type", schema.Optional(schema.Enum(
			"sale", "auth", "credit", "validate", "offline", "capture", "void", "refund", "update",
		))),
		schema.F("amount", schema.Optional(schema.Number())),
		schema.F("customer_vault_id", schema.Optional(schema.String())),
		schema.F("merchant_defined_fields", schema.Optional(schema.Unsupported(schema.ReasonRecord))),
	)
}

// RecurringResponse describes plan and subscription replies.
func RecurringResponse() schema.CollectionSchema {
	return base(Subscriptions,
		schema.F("subscription_id", schema.Optional(schema.String())),
		schema.F("plan_id", schema.Optional(schema.String())),
		schema.F("transactionid", schema.Optional(schema.String())),
		schema.F("recurring", schema.Optional(schema.Enum(
			"add_plan", "edit_plan", "add_subscription", "update_subscription", "delete_subscription",
		))),
	)
}

// InvoiceResponse describes invoicing replies.
func InvoiceResponse() schema.CollectionSchema {
	return base(Invoices,
		schema.F("invoice_id", schema.Optional(schema.String())),
		schema.F("invoicing", schema.Optional(schema.Enum(
			"add_invoice", "update_invoice", "close_invoice", "send_invoice",
		))),
	)
}

// CustomerVaultResponse describes customer vault replies.
func CustomerVaultResponse() schema.CollectionSchema {
	return base(CustomerVault,
		schema.F("customer_vault_id", schema.Optional(schema.String())),
		schema.F("billing_id", schema.Optional(schema.String())),
		schema.F("transactionid", schema.Optional(schema.String())),
		schema.F("customer_vault", schema.Optional(schema.Enum(
			"add_customer", "update_customer", "delete_customer", "add_billing", "update_billing", "delete_billing",
		))),
	)
}

func bookkeeping() []schema.Field {
	return []schema.Field{
		schema.F(FieldInitiatedBy, schema.Optional(schema.String())),
		schema.F(FieldUsersAffected, schema.Optional(schema.Array(schema.String()))),
	}
}

// GatewayLog is the union of every response schema plus bookkeeping.
func GatewayLog() schema.CollectionSchema {
	merged := ProductResponse().
		Merge(TransactionResponse()).
		Merge(RecurringResponse()).
		Merge(InvoiceResponse()).
		Merge(CustomerVaultResponse())
	return merged.Rename(GatewayLogs).Extend(bookkeeping()...)
}

// Desired returns the six collections in provisioning order.
func Desired() schema.DesiredSet {
	responses := []schema.CollectionSchema{
		ProductResponse(),
		TransactionResponse(),
		RecurringResponse(),
		InvoiceResponse(),
		CustomerVaultResponse(),
	}
	set := make(schema.DesiredSet, 0, len(responses)+1)
	for _, r := range responses {
		set = append(set, r.Extend(bookkeeping()...))
	}
	return append(set, GatewayLog())
}
