package relay

import (
	"context"
	"fmt"
	"time"

	"payment-relay/core/gateway"
	"payment-relay/core/metrics"
	"payment-relay/core/provision"
	"payment-relay/core/schema"
	"payment-relay/core/storage"
	"payment-relay/core/store"
	"payment-relay/core/utils"
	"payment-relay/feature/schemas"

	"go.uber.org/zap"
)

// Archiver stores raw exchanges.
type Archiver interface {
	Put(ctx context.Context, key string, v interface{}) error
}

// Exchange is the archived form of one relayed request.
type Exchange struct {
	RayID       string                 `json:"rayId"`
	Category    Category               `json:"requestCategory"`
	Action      string                 `json:"requestAction"`
	InitiatedBy string                 `json:"initiatedBy"`
	Request     map[string]interface{} `json:"request"`
	Response    map[string]string      `json:"response"`
	Status      string                 `json:"status"`
	At          time.Time              `json:"at"`
}

// AuditLog writes gateway replies to the Gateway Logs collection.
type AuditLog struct {
	store    store.DocumentStore
	database string
	log      schema.CollectionSchema
	archive  Archiver
	logger   *zap.Logger
}

// NewAuditLog creates an audit log for the named database. archive may be nil.
func NewAuditLog(st store.DocumentStore, database string, archive Archiver, logger *zap.Logger) *AuditLog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditLog{
		store:    st,
		database: database,
		log:      schemas.GatewayLog(),
		archive:  archive,
		logger:   logger,
	}
}

// Record writes the log document and, when configured, the archive
// object. It returns the document id and archive key of what succeeded.
// Failures are logged and never returned.
func (a *AuditLog) Record(ctx context.Context, env Envelope, resp gateway.Response, rayID string, at time.Time) (docID, archiveKey string) {
	l := a.logger.With(
		zap.String("category", string(env.RequestCategory)),
		zap.String("action", env.RequestAction),
	)
	if rayID != "" {
		l = l.With(zap.String("ray_id", rayID))
	}

	id, err := a.write(ctx, BuildDocument(a.log, resp, env))
	if err != nil {
		metrics.AuditLogWritesTotal.WithLabelValues("document", "error").Inc()
		l.Error("Failed to write gateway log", zap.Error(err))
	} else {
		metrics.AuditLogWritesTotal.WithLabelValues("document", "ok").Inc()
		docID = id
	}

	if a.archive == nil {
		return docID, ""
	}

	name := rayID
	if name == "" {
		name = fmt.Sprintf("%d", at.UnixNano())
	}
	key := storage.Key(string(env.RequestCategory), at, name)
	ex := Exchange{
		RayID:       rayID,
		Category:    env.RequestCategory,
		Action:      env.RequestAction,
		InitiatedBy: env.InitiatedBy,
		Request:     env.Data,
		Response:    resp.Fields,
		Status:      resp.Status(),
		At:          at.UTC(),
	}
	if err := a.archive.Put(ctx, key, ex); err != nil {
		metrics.AuditLogWritesTotal.WithLabelValues("archive", "error").Inc()
		l.Error("Failed to archive exchange", zap.String("key", key), zap.Error(err))
		return docID, ""
	}
	metrics.AuditLogWritesTotal.WithLabelValues("archive", "ok").Inc()
	return docID, key
}

func (a *AuditLog) write(ctx context.Context, doc map[string]interface{}) (string, error) {
	dbs, err := a.store.ListDatabases(ctx, a.database)
	if err != nil {
		return "", fmt.Errorf("failed to find database %s: %w", a.database, err)
	}
	if len(dbs) == 0 {
		return "", fmt.Errorf("database %s: %w", a.database, store.ErrNotFound)
	}
	if len(dbs) > 1 {
		return "", fmt.Errorf("%w: %d databases named %q", provision.ErrAmbiguousDatabase, len(dbs), a.database)
	}
	db := dbs[0]

	cols, err := a.store.ListCollections(ctx, db.ID)
	if err != nil {
		return "", fmt.Errorf("failed to list collections of %s: %w", a.database, err)
	}
	for _, c := range cols {
		if c.Name == a.log.Name {
			return a.store.CreateDocument(ctx, db.ID, c.ID, doc)
		}
	}
	return "", fmt.Errorf("collection %s: %w", a.log.Name, store.ErrNotFound)
}

// BuildDocument coerces the reply to the log schema. Reply keys the schema
// does not declare are dropped, as are values that do not fit their kind.
func BuildDocument(log schema.CollectionSchema, resp gateway.Response, env Envelope) map[string]interface{} {
	doc := make(map[string]interface{}, len(resp.Fields)+2)
	for key, raw := range resp.Fields {
		t, ok := log.Field(key)
		if !ok {
			continue
		}
		if v, ok := coerce(t.Unwrap(), raw); ok {
			doc[key] = v
		}
	}

	if _, ok := log.Field(schemas.FieldInitiatedBy); ok && env.InitiatedBy != "" {
		doc[schemas.FieldInitiatedBy] = env.InitiatedBy
	}
	if _, ok := log.Field(schemas.FieldUsersAffected); ok {
		if users := UsersAffected(env); len(users) > 0 {
			doc[schemas.FieldUsersAffected] = users
		}
	}
	return doc
}

// UsersAffected lists the distinct non-empty user references of a request.
func UsersAffected(env Envelope) []string {
	candidates := []string{env.InitiatedBy}
	if v, ok := env.Data["customer_vault_id"]; ok && v != nil {
		candidates = append(candidates, utils.ToString(v))
	}

	seen := map[string]struct{}{}
	var out []string
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func coerce(t schema.TypeDescriptor, raw string) (interface{}, bool) {
	switch t.Kind() {
	case schema.KindString, schema.KindDateTime:
		return raw, true
	case schema.KindNumber:
		return utils.ToFloat(raw)
	case schema.KindBoolean:
		return utils.ToBool(raw), true
	case schema.KindEnum:
		for _, v := range t.Values() {
			if v == raw {
				return raw, true
			}
		}
		return nil, false
	case schema.KindArray:
		elem, _ := t.Elem()
		v, ok := coerce(elem.Unwrap(), raw)
		if !ok || elem.Kind() == schema.KindArray {
			return nil, false
		}
		return []interface{}{v}, true
	default:
		return nil, false
	}
}
