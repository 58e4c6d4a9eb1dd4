// Package vault keeps the gateway's customer vault in step with platform
// users.
//
// The platform calls POST /vault/user-event whenever a user is created or
// updated. The user is fetched by id and turned into a customerVault
// envelope: addCustomer for fresh accounts, updateCustomer once the
// account has been modified. The envelope is then dispatched either as an
// asynchronous execution of the configured relay function or, when no
// function is configured, straight through the in-process relay.
package vault
