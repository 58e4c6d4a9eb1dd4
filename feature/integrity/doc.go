// Package integrity reports on the infrastructure the relay depends on.
//
// # Checks Provided
//
//   - Schema: lists desired collections and fields missing from the store.
//   - Archive: checks that the archive bucket exists (when archiving is enabled).
//   - Catalog: validates the sql backend's catalog tables (when the sql backend is used).
//
// Checks never modify the structured store; use the provisioning feature for that.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/archive : Runs the archive check (supports ?fix=true).
//   - GET /integrity/catalog : Runs the catalog check.
package integrity
