// Package middleware groups the HTTP middleware of the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key or Bearer token).
//   - rayid: assigns every request a ray id, stored in the context and
//     echoed in the X-Ray-ID response header for tracing.
//
// rayid must run first so that every later log line carries the id.
package middleware
