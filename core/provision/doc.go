// Package provision reconciles a structured store's schema with a declared
// set of collection schemas.
//
// Reconciliation is strictly additive: missing collections are created with
// all their fields, missing fields of existing collections are created, and
// nothing is ever dropped, renamed or retyped. Store state is read fresh on
// every run, so a field whose creation failed is retried by the next run.
//
// # Components
//
//  1. Reconciler: EnsureDatabase, ReconcileCollections and CreateField. Calls
//     to the store are sequential and happen in declaration order.
//
//  2. Plan/Apply: Plan reads the store and lists the actions a run would take
//     without mutating anything; Apply executes a plan. ReconcileCollections
//     plans and applies one collection at a time.
//
//  3. Provisioner: binds a Reconciler to a Config and a DesiredSet and
//     collapses concurrent runs inside one process into a single run.
//
// # Error boundaries
//
// Failing to list or create a database or collection aborts the run and is
// returned to the caller. Failing to create a single field is logged,
// counted in the Report and swallowed. Descriptors without a store
// equivalent (objects, unions, arrays of enums, nested arrays, ...) are
// skipped and logged at info level.
//
// # Usage
//
//	r := provision.New(st, logger)
//	db, err := r.EnsureDatabase(ctx, "NMI")
//	report, err := r.ReconcileCollections(ctx, db, schemas.Desired())
package provision
