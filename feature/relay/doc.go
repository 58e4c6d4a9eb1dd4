// Package relay forwards request envelopes to the payment gateway and
// records what came back.
//
// An envelope names a category and an action:
//
//	{"requestCategory":"transaction","requestAction":"create","initiatedBy":"user-1","data":{"amount":"10.00"}}
//
// The (category, action) pair selects the gateway operation from a fixed
// dispatch table; data is form-encoded alongside it. After the gateway
// answers, the reply is written as a document to the Gateway Logs
// collection and, when enabled, the raw exchange is archived to object
// storage. Audit failures are logged and never fail the request.
//
// When provisioning.check_on_startup is set the schema is reconciled
// before each request; concurrent requests share one reconciliation.
package relay
