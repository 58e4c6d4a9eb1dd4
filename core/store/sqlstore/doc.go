// Package sqlstore keeps the structured-store catalog in SQL tables through
// GORM, so the reconciler can provision a self-hosted MySQL or SQLite
// database with the same semantics as the remote platform.
//
// Tables:
//   - relay_databases: one row per database.
//   - relay_collections: collections with their JSON-encoded permissions.
//   - relay_attributes: attribute definitions, unique per (collection, key).
//   - relay_documents: JSON documents written by the relay audit log.
package sqlstore
