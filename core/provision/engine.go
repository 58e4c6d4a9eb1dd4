package provision

import (
	"context"
	"fmt"

	"payment-relay/core/metrics"
	"payment-relay/core/schema"
	"payment-relay/core/store"

	"go.uber.org/zap"
)

// Reconciler brings a store's schema in line with a desired set.
type Reconciler struct {
	store  store.Store
	logger *zap.Logger
}

// New creates a reconciler over the given store.
func New(st store.Store, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{store: st, logger: logger}
}

// EnsureDatabase returns the database with the given name, creating it when
// none exists. More than one match is reported as ErrAmbiguousDatabase.
//
// Creation is only attempted after an empty list result, so two concurrent
// first runs may both create a database.
func (r *Reconciler) EnsureDatabase(ctx context.Context, name string) (store.Database, error) {
	db, found, err := r.findDatabase(ctx, name)
	if err != nil {
		return store.Database{}, err
	}
	if found {
		r.logger.Debug("Database already exists", zap.String("database", name), zap.String("database_id", db.ID))
		return db, nil
	}

	r.logger.Info("Creating database", zap.String("database", name))
	db, err = r.store.CreateDatabase(ctx, name)
	if err != nil {
		return store.Database{}, fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return db, nil
}

// findDatabase looks a database up by name without creating it.
func (r *Reconciler) findDatabase(ctx context.Context, name string) (store.Database, bool, error) {
	if name == "" {
		return store.Database{}, false, fmt.Errorf("database name is required")
	}

	dbs, err := r.store.ListDatabases(ctx, name)
	if err != nil {
		return store.Database{}, false, fmt.Errorf("failed to list databases: %w", err)
	}

	switch len(dbs) {
	case 0:
		return store.Database{}, false, nil
	case 1:
		return dbs[0], true, nil
	default:
		return store.Database{}, false, fmt.Errorf("%w: %d databases named %q", ErrAmbiguousDatabase, len(dbs), name)
	}
}

// ReconcileCollections creates every missing collection and field of the
// desired set, one collection at a time in declaration order.
// Collection-level failures are returned; field-level failures are recorded
// in the report and the run continues.
func (r *Reconciler) ReconcileCollections(ctx context.Context, db store.Database, desired schema.DesiredSet) (*Report, error) {
	report := &Report{Database: db}

	existing, err := r.existingCollections(ctx, db.ID)
	if err != nil {
		return report, err
	}

	for _, col := range desired {
		cp, err := r.planCollection(ctx, db.ID, col, existing)
		if err != nil {
			return report, err
		}
		if err := r.applyCollection(ctx, db.ID, &cp, report); err != nil {
			return report, err
		}
	}

	r.logger.Info("Collections reconciled",
		zap.String("database", db.Name),
		zap.Strings("created", report.CollectionsCreated),
		zap.Int("fields_created", report.FieldsCreated),
		zap.Int("fields_skipped", report.FieldsSkipped),
		zap.Int("fields_failed", report.FieldsFailed),
	)
	return report, nil
}

// Plan computes the actions a reconciliation would take without mutating
// the store. db.ID may be empty when the database does not exist yet, in
// which case every collection is planned as missing.
func (r *Reconciler) Plan(ctx context.Context, db store.Database, desired schema.DesiredSet) (*Plan, error) {
	plan := &Plan{Database: db}

	existing := map[string]string{}
	if db.ID != "" {
		var err error
		existing, err = r.existingCollections(ctx, db.ID)
		if err != nil {
			return nil, err
		}
	}

	for _, col := range desired {
		cp, err := r.planCollection(ctx, db.ID, col, existing)
		if err != nil {
			return nil, err
		}
		plan.Collections = append(plan.Collections, cp)
	}

	plan.Summary = summarize(plan)
	return plan, nil
}

// Apply executes a plan. It requires plan.Database to exist.
func (r *Reconciler) Apply(ctx context.Context, plan *Plan) (*Report, error) {
	report := &Report{Database: plan.Database}
	if plan.Database.ID == "" {
		return report, fmt.Errorf("plan database %q has no id", plan.Database.Name)
	}

	for i := range plan.Collections {
		if err := r.applyCollection(ctx, plan.Database.ID, &plan.Collections[i], report); err != nil {
			return report, err
		}
	}
	return report, nil
}

// existingCollections maps collection names to ids. The first collection of
// a duplicated name wins.
func (r *Reconciler) existingCollections(ctx context.Context, databaseID string) (map[string]string, error) {
	cols, err := r.store.ListCollections(ctx, databaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	existing := make(map[string]string, len(cols))
	for _, c := range cols {
		if _, ok := existing[c.Name]; !ok {
			existing[c.Name] = c.ID
		}
	}
	return existing, nil
}

func (r *Reconciler) planCollection(ctx context.Context, databaseID string, col schema.CollectionSchema, existing map[string]string) (CollectionPlan, error) {
	id, exists := existing[col.Name]
	cp := CollectionPlan{Name: col.Name, ID: id, Exists: exists}

	if !exists {
		cp.Actions = append(cp.Actions, Action{
			Type:       ActionCreateCollection,
			Collection: col.Name,
			Reason:     "collection missing",
		})
		cp.Actions = append(cp.Actions, fieldActions(col.Name, col.Fields())...)
		return cp, nil
	}

	keys, err := r.store.ListAttributes(ctx, databaseID, id)
	if err != nil {
		return cp, fmt.Errorf("failed to list attributes of %s: %w", col.Name, err)
	}
	cp.ExistingFields = keys

	have := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		have[k] = struct{}{}
	}

	var missing []schema.Field
	for _, f := range col.Fields() {
		if _, ok := have[f.Name]; !ok {
			missing = append(missing, f)
		}
	}
	cp.Actions = append(cp.Actions, fieldActions(col.Name, missing)...)
	return cp, nil
}

func fieldActions(collection string, fields []schema.Field) []Action {
	actions := make([]Action, 0, len(fields))
	for _, f := range fields {
		attr, ok, reason := MapField(f.Name, f.Type)
		if !ok {
			actions = append(actions, Action{
				Type:       ActionSkipField,
				Collection: collection,
				Field:      f.Name,
				Reason:     reason,
			})
			continue
		}
		a := attr
		actions = append(actions, Action{
			Type:       ActionCreateField,
			Collection: collection,
			Field:      f.Name,
			Attribute:  &a,
			Reason:     "field missing",
		})
	}
	return actions
}

func (r *Reconciler) applyCollection(ctx context.Context, databaseID string, cp *CollectionPlan, report *Report) error {
	l := r.logger.With(zap.String("collection", cp.Name))

	if cp.Exists {
		l.Debug("Collection already exists", zap.Int("missing_fields", len(cp.Actions)))
		report.CollectionsExisting = append(report.CollectionsExisting, cp.Name)
	}

	for _, action := range cp.Actions {
		switch action.Type {
		case ActionCreateCollection:
			l.Info("Creating collection")
			col, err := r.store.CreateCollection(ctx, databaseID, cp.Name, []string{store.PermissionReadAny})
			if err != nil {
				return fmt.Errorf("failed to create collection %s: %w", cp.Name, err)
			}
			cp.ID = col.ID
			cp.Exists = true
			report.CollectionsCreated = append(report.CollectionsCreated, cp.Name)
			metrics.CollectionsCreatedTotal.Inc()
		case ActionCreateField, ActionSkipField:
			if cp.ID == "" {
				return fmt.Errorf("collection %s has no id", cp.Name)
			}
			fl := l.With(zap.String("collection_id", cp.ID), zap.String("field", action.Field))
			var out FieldOutcome
			switch {
			case action.Type == ActionSkipField:
				out = skipField(fl, action.Reason)
			case action.Attribute == nil:
				err := fmt.Errorf("field %s has no attribute in the plan", action.Field)
				fl.Warn("Failed to create attribute", zap.Error(err))
				metrics.FieldsTotal.WithLabelValues(string(OutcomeFailed)).Inc()
				out = FieldOutcome{Outcome: OutcomeFailed, Err: err}
			default:
				attr := *action.Attribute
				attr.Key = action.Field
				out = r.createMapped(ctx, fl, databaseID, cp.ID, attr)
			}
			report.record(cp.Name, action.Field, out)
		}
	}
	return nil
}

func summarize(plan *Plan) PlanSummary {
	s := PlanSummary{Collections: len(plan.Collections)}
	for _, c := range plan.Collections {
		for _, a := range c.Actions {
			switch a.Type {
			case ActionCreateCollection:
				s.MissingCollections++
			case ActionCreateField:
				s.MissingFields++
			case ActionSkipField:
				s.SkippedFields++
			}
		}
	}
	return s
}
