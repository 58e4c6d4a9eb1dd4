// Package gateway is a client for the NMI Direct Post API.
//
// Requests are form-encoded POSTs to transact.php carrying the merchant
// security_key. Responses are form-encoded key/value pairs:
//
//	response=1&responsetext=SUCCESS&authcode=123456&transactionid=8765&response_code=100
//
// response is 1 for approved, 2 for declined and 3 for an error. A declined
// or errored response is not a Go error: only transport failures and HTTP
// statuses of 400 and above are.
package gateway
