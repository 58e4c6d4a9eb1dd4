package provision

import (
	"context"
	"errors"
	"time"

	"payment-relay/core/metrics"
	"payment-relay/core/schema"
	"payment-relay/core/store"

	"github.com/cenkalti/backoff"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Provisioner runs reconciliation for one configured database.
// Concurrent Run calls in the same process share a single run.
type Provisioner struct {
	cfg        Config
	reconciler *Reconciler
	desired    schema.DesiredSet
	logger     *zap.Logger
	sf         singleflight.Group
}

// NewProvisioner creates a provisioner for the desired set.
func NewProvisioner(cfg Config, reconciler *Reconciler, desired schema.DesiredSet, logger *zap.Logger) *Provisioner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provisioner{
		cfg:        cfg,
		reconciler: reconciler,
		desired:    desired,
		logger:     logger,
	}
}

// Config returns the provisioner configuration.
func (p *Provisioner) Config() Config { return p.cfg }

// Run ensures the database exists and reconciles every desired collection.
func (p *Provisioner) Run(ctx context.Context) (*Report, error) {
	result, err, shared := p.sf.Do(p.cfg.DatabaseName, func() (interface{}, error) {
		return p.run(ctx)
	})
	if shared {
		p.logger.Debug("Joined in-flight provisioning run", zap.String("database", p.cfg.DatabaseName))
	}
	report, _ := result.(*Report)
	return report, err
}

func (p *Provisioner) run(ctx context.Context) (*Report, error) {
	start := time.Now()
	defer func() {
		metrics.ProvisionDuration.Observe(time.Since(start).Seconds())
	}()

	db, err := p.reconciler.EnsureDatabase(ctx, p.cfg.DatabaseName)
	if err != nil {
		metrics.ProvisionRunsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	report, err := p.reconciler.ReconcileCollections(ctx, db, p.desired)
	if err != nil {
		metrics.ProvisionRunsTotal.WithLabelValues("error").Inc()
		return report, err
	}

	metrics.ProvisionRunsTotal.WithLabelValues("ok").Inc()
	return report, nil
}

// Plan computes the actions of a run without mutating the store. A missing
// database is not created; every collection is then planned as missing.
func (p *Provisioner) Plan(ctx context.Context) (*Plan, error) {
	db, found, err := p.reconciler.findDatabase(ctx, p.cfg.DatabaseName)
	if err != nil {
		return nil, err
	}
	if !found {
		db.Name = p.cfg.DatabaseName
	}
	return p.reconciler.Plan(ctx, db, p.desired)
}

// EnsureReady runs reconciliation when CheckOnStartup is enabled and is a
// no-op otherwise. Field failures do not make it fail.
func (p *Provisioner) EnsureReady(ctx context.Context) error {
	if !p.cfg.CheckOnStartup {
		return nil
	}
	_, err := p.Run(ctx)
	return err
}

// WaitReady retries EnsureReady with b while the store is unavailable.
// Any other error stops the retries and is returned as is.
func (p *Provisioner) WaitReady(ctx context.Context, b backoff.BackOff) error {
	var permanent error
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		err := p.EnsureReady(ctx)
		if err == nil || ctx.Err() != nil {
			return nil
		}
		if !errors.Is(err, store.ErrUnavailable) {
			permanent = err
			return nil
		}
		p.logger.Warn("Store unavailable, retrying provisioning",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return err
	}, backoff.WithContext(b, ctx))
	if permanent != nil {
		return permanent
	}
	if err != nil {
		return err
	}
	return ctx.Err()
}

// StartupBackOff is the exponential policy used by WaitReady at startup.
func StartupBackOff(retries int) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	return backoff.WithMaxRetries(b, uint64(retries))
}
