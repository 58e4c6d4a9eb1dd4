// Package store defines the structured-store contract used by the schema
// reconciler: databases that hold named collections, each with typed
// attributes.
//
// Implementations live in sub-packages:
//   - appwrite: the remote backend-as-a-service REST API.
//   - sqlstore: a GORM-backed catalog on MySQL or SQLite.
//   - memstore: an in-process store that records every call.
//
// Implementations map transport failures to ErrUnavailable, duplicate
// creates to ErrConflict and missing resources to ErrNotFound so callers
// can branch with errors.Is.
package store
