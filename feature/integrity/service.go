package integrity

import (
	"context"
	"errors"

	"payment-relay/core/storage"
	"payment-relay/feature/integrity/checks"

	"go.uber.org/zap"
)

// ErrNotConfigured is returned by checks whose collaborator is absent.
var ErrNotConfigured = errors.New("check not configured")

// Service handles integrity checks. client and catalog may be nil when
// archiving or the sql backend are disabled.
type Service struct {
	planner checks.Planner
	client  storage.Client
	bucket  string
	catalog checks.Inspector
	tables  []string
	logger  *zap.Logger
}

// Options carries the optional collaborators.
type Options struct {
	Client  storage.Client
	Bucket  string
	Catalog checks.Inspector
	Tables  []string
}

// NewService creates a new integrity service.
func NewService(planner checks.Planner, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		planner: planner,
		client:  opts.Client,
		bucket:  opts.Bucket,
		catalog: opts.Catalog,
		tables:  opts.Tables,
		logger:  logger,
	}
}

// CheckSchema reports drift between the desired collections and the store.
func (s *Service) CheckSchema(ctx context.Context) (*checks.SchemaReport, error) {
	return checks.CheckSchema(ctx, s.planner)
}

// CheckArchive reports on the archive bucket.
func (s *Service) CheckArchive(ctx context.Context) (*checks.ArchiveReport, error) {
	if s.client == nil {
		return nil, ErrNotConfigured
	}
	return checks.CheckArchive(ctx, s.client, s.bucket)
}

// FixArchive creates the archive bucket.
func (s *Service) FixArchive(ctx context.Context) error {
	if s.client == nil {
		return ErrNotConfigured
	}
	return checks.FixArchive(ctx, s.client, s.bucket, s.logger)
}

// CheckCatalog verifies the sql catalog tables.
func (s *Service) CheckCatalog() (*checks.CatalogReport, error) {
	if s.catalog == nil {
		return nil, ErrNotConfigured
	}
	return checks.CheckCatalog(s.catalog, s.tables)
}
