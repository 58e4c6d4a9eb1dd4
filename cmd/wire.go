package cmd

import (
	"context"
	"fmt"

	"payment-relay/core/config"
	"payment-relay/core/database"
	"payment-relay/core/gateway"
	"payment-relay/core/provision"
	"payment-relay/core/storage"
	"payment-relay/core/store"
	"payment-relay/core/store/appwrite"
	"payment-relay/core/store/memstore"
	"payment-relay/core/store/sqlstore"
	"payment-relay/feature/integrity"
	"payment-relay/feature/relay"
	"payment-relay/feature/schemas"

	"go.uber.org/zap"
)

// deps bundles the collaborators shared by every command.
type deps struct {
	cfg         *config.Config
	logger      *zap.Logger
	store       store.DocumentStore
	platform    *appwrite.Client
	provisioner *provision.Provisioner
	archive     *storage.Archive
	objects     storage.Client
}

// openStore builds the configured structured store. The platform client is
// returned whenever credentials are configured, since vault sync needs it
// regardless of backend.
func openStore(cfg *config.Config, l *zap.Logger) (store.DocumentStore, *appwrite.Client, error) {
	var platform *appwrite.Client
	if cfg.Appwrite.ProjectID != "" {
		c, err := appwrite.NewClient(cfg.Appwrite)
		if err != nil {
			return nil, nil, err
		}
		platform = c
	}

	switch cfg.Store.Backend {
	case store.BackendAppwrite:
		if platform == nil {
			return nil, nil, fmt.Errorf("appwrite.project_id is required for the appwrite backend")
		}
		return platform, platform, nil
	case store.BackendSQL:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		st := sqlstore.New(db)
		if err := st.Migrate(); err != nil {
			return nil, nil, fmt.Errorf("failed to migrate catalog: %w", err)
		}
		if err := st.Verify(); err != nil {
			return nil, nil, err
		}
		l.Info("Using sql store", zap.String("driver", cfg.Database.Driver), zap.String("database", cfg.Database.Name))
		return st, platform, nil
	case store.BackendMemory:
		l.Warn("Using in-memory store; nothing is persisted")
		return memstore.New(), platform, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// openArchive returns nils when archiving is disabled.
func openArchive(ctx context.Context, cfg storage.Config) (storage.Client, *storage.Archive, error) {
	if !cfg.ArchiveEnabled {
		return nil, nil, nil
	}
	client, err := storage.NewClient(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	archive := storage.NewArchive(client, cfg.Bucket)
	if err := archive.EnsureBucket(ctx); err != nil {
		return nil, nil, err
	}
	return client, archive, nil
}

func newDeps(ctx context.Context, cfg *config.Config, l *zap.Logger) (*deps, error) {
	st, platform, err := openStore(cfg, l)
	if err != nil {
		return nil, err
	}
	objects, archive, err := openArchive(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	p := provision.NewProvisioner(cfg.Provisioning, provision.New(st, l), schemas.Desired(), l)
	return &deps{
		cfg:         cfg,
		logger:      l,
		store:       st,
		platform:    platform,
		provisioner: p,
		archive:     archive,
		objects:     objects,
	}, nil
}

// relayService builds the relay over the configured gateway.
func (a *deps) relayService() (*relay.Service, error) {
	gw, err := gateway.NewClient(a.cfg.Gateway)
	if err != nil {
		return nil, err
	}
	var archiver relay.Archiver
	if a.archive != nil {
		archiver = a.archive
	}
	audit := relay.NewAuditLog(a.store, a.cfg.Provisioning.DatabaseName, archiver, a.logger)
	return relay.NewService(gw, a.provisioner, audit, a.logger), nil
}

// integrityOptions exposes the optional collaborators of the integrity checks.
func (a *deps) integrityOptions() integrity.Options {
	opts := integrity.Options{Client: a.objects, Bucket: a.cfg.Storage.Bucket}
	if sql, ok := a.store.(*sqlstore.Store); ok {
		opts.Catalog = sql
		opts.Tables = sqlstore.Tables()
	}
	return opts
}

// archiveReader is nil when archiving is disabled.
func (a *deps) archiveReader() relay.ArchiveReader {
	if a.archive == nil {
		return nil
	}
	return a.archive
}
