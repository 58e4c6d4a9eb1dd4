// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber app from this config: the listen
// port, the API key enforced by the auth middleware, the request body
// limit and the graceful shutdown timeout.
package server
