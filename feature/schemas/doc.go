// Package schemas declares the collections the relay persists gateway
// responses into.
//
// Each gateway response family (products, transactions, recurring
// billing, invoices, customer vault) has its own schema, extended with the
// initiatedBy and usersAffected bookkeeping fields. Gateway Logs is the
// union of all five plus the same two fields.
package schemas
