package provision

import (
	"context"
	"fmt"

	"payment-relay/core/metrics"
	"payment-relay/core/schema"
	"payment-relay/core/store"

	"go.uber.org/zap"
)

// MapField resolves the store attribute for a declared field.
// Required-ness comes from the declared descriptor; the kind comes from the
// descriptor with one Optional layer removed. ok is false when the field has
// no store equivalent, and reason says why.
func MapField(name string, d schema.TypeDescriptor) (attr store.Attribute, ok bool, reason string) {
	required := !d.IsOptional()
	u := d.Unwrap()
	attr = store.Attribute{Key: name, Required: required}

	switch u.Kind() {
	case schema.KindString:
		attr.Type = store.AttributeString
		attr.Size = store.DefaultStringSize
	case schema.KindNumber:
		attr.Type = store.AttributeFloat
	case schema.KindBoolean:
		attr.Type = store.AttributeBoolean
	case schema.KindDateTime:
		attr.Type = store.AttributeDatetime
	case schema.KindEnum:
		elements := nonEmpty(u.Values())
		attr.Type = store.AttributeEnum
		attr.Elements = elements
		attr.Required = required && len(elements) > 0
	case schema.KindArray:
		elem, _ := u.Elem()
		attr.Array = true
		switch elem.Kind() {
		case schema.KindString:
			attr.Type = store.AttributeString
			attr.Size = store.DefaultStringSize
		case schema.KindNumber:
			attr.Type = store.AttributeFloat
		case schema.KindBoolean:
			attr.Type = store.AttributeBoolean
		case schema.KindDateTime:
			attr.Type = store.AttributeDatetime
		case schema.KindEnum, schema.KindArray, schema.KindOptional, schema.KindUnsupported:
			return store.Attribute{}, false, "array of " + elem.Describe() + " has no attribute equivalent"
		default:
			return store.Attribute{}, false, "array of unknown kind"
		}
	case schema.KindOptional:
		// Optional collapses on construction, so this is unreachable through the schema API.
		return store.Attribute{}, false, "nested optional"
	case schema.KindUnsupported:
		return store.Attribute{}, false, u.Describe() + " has no attribute equivalent"
	default:
		return store.Attribute{}, false, "unknown kind"
	}

	return attr, true, ""
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// CreateField creates one attribute for a declared field. It never returns
// an error: failures are logged and reported in the outcome so that the
// remaining fields are still processed.
func (r *Reconciler) CreateField(ctx context.Context, databaseID, collectionID, name string, d schema.TypeDescriptor) FieldOutcome {
	l := r.logger.With(
		zap.String("collection_id", collectionID),
		zap.String("field", name),
		zap.String("descriptor", d.Describe()),
	)

	attr, ok, reason := MapField(name, d)
	if !ok {
		return skipField(l, reason)
	}
	return r.createMapped(ctx, l, databaseID, collectionID, attr)
}

func skipField(l *zap.Logger, reason string) FieldOutcome {
	l.Info("Skipping field without attribute equivalent", zap.String("reason", reason))
	metrics.FieldsTotal.WithLabelValues(string(OutcomeSkipped)).Inc()
	return FieldOutcome{Outcome: OutcomeSkipped, Reason: reason}
}

// createMapped creates an attribute that MapField already resolved.
func (r *Reconciler) createMapped(ctx context.Context, l *zap.Logger, databaseID, collectionID string, attr store.Attribute) FieldOutcome {
	l.Debug("Creating attribute",
		zap.String("type", string(attr.Type)),
		zap.Bool("required", attr.Required),
		zap.Bool("array", attr.Array),
	)

	if err := r.createAttribute(ctx, databaseID, collectionID, attr); err != nil {
		l.Warn("Failed to create attribute", zap.Error(err))
		metrics.FieldsTotal.WithLabelValues(string(OutcomeFailed)).Inc()
		return FieldOutcome{Outcome: OutcomeFailed, Attribute: attr, Err: err}
	}

	metrics.FieldsTotal.WithLabelValues(string(OutcomeCreated)).Inc()
	return FieldOutcome{Outcome: OutcomeCreated, Attribute: attr}
}

func (r *Reconciler) createAttribute(ctx context.Context, databaseID, collectionID string, attr store.Attribute) error {
	switch attr.Type {
	case store.AttributeString:
		return r.store.CreateStringAttribute(ctx, databaseID, collectionID, attr.Key, attr.Size, attr.Required, attr.Array)
	case store.AttributeFloat:
		return r.store.CreateFloatAttribute(ctx, databaseID, collectionID, attr.Key, attr.Required, attr.Array)
	case store.AttributeBoolean:
		return r.store.CreateBooleanAttribute(ctx, databaseID, collectionID, attr.Key, attr.Required, attr.Array)
	case store.AttributeDatetime:
		return r.store.CreateDatetimeAttribute(ctx, databaseID, collectionID, attr.Key, attr.Required, attr.Array)
	case store.AttributeEnum:
		return r.store.CreateEnumAttribute(ctx, databaseID, collectionID, attr.Key, attr.Elements, attr.Required, attr.Array)
	default:
		return fmt.Errorf("unknown attribute type %q", attr.Type)
	}
}
