package relay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"payment-relay/core/gateway"
	"payment-relay/core/metrics"

	"go.uber.org/zap"
)

// ErrNotReady is returned when the schema could not be provisioned before
// relaying.
var ErrNotReady = errors.New("schema not ready")

// Readier prepares the schema before a request is relayed.
type Readier interface {
	EnsureReady(ctx context.Context) error
}

// Result is the outcome of one relayed request.
type Result struct {
	Category   Category          `json:"requestCategory"`
	Action     string            `json:"requestAction"`
	Status     string            `json:"status"`
	Response   map[string]string `json:"response"`
	LogID      string            `json:"logId,omitempty"`
	ArchiveKey string            `json:"archiveKey,omitempty"`
}

// Service relays envelopes to the gateway.
type Service struct {
	gateway gateway.Doer
	ready   Readier
	audit   *AuditLog
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates a relay service. ready and audit may be nil.
func NewService(gw gateway.Doer, ready Readier, audit *AuditLog, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		gateway: gw,
		ready:   ready,
		audit:   audit,
		logger:  logger,
		now:     time.Now,
	}
}

// Relay validates env, sends it to the gateway and records the reply.
func (s *Service) Relay(ctx context.Context, rayID string, env Envelope) (*Result, error) {
	op, err := env.Operation()
	if err != nil {
		return nil, err
	}
	form, err := FormParams(op, env.Data)
	if err != nil {
		return nil, err
	}

	if s.ready != nil {
		if err := s.ready.EnsureReady(ctx); err != nil {
			metrics.RelayRequestsTotal.WithLabelValues(string(env.RequestCategory), env.RequestAction, "not_ready").Inc()
			return nil, fmt.Errorf("%w: %v", ErrNotReady, err)
		}
	}

	l := s.logger.With(
		zap.String("category", string(env.RequestCategory)),
		zap.String("action", env.RequestAction),
		zap.String("initiated_by", env.InitiatedBy),
	)
	if rayID != "" {
		l = l.With(zap.String("ray_id", rayID))
	}

	start := s.now()
	resp, err := s.gateway.Do(ctx, form)
	metrics.GatewayRequestDuration.WithLabelValues(string(env.RequestCategory)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RelayRequestsTotal.WithLabelValues(string(env.RequestCategory), env.RequestAction, "failed").Inc()
		l.Error("Gateway request failed", zap.Error(err))
		return nil, err
	}

	status := resp.Status()
	metrics.RelayRequestsTotal.WithLabelValues(string(env.RequestCategory), env.RequestAction, status).Inc()
	l.Info("Gateway replied",
		zap.String("status", status),
		zap.String("response_code", resp.Code()),
		zap.String("transaction_id", resp.TransactionID()),
	)

	result := &Result{
		Category: env.RequestCategory,
		Action:   env.RequestAction,
		Status:   status,
		Response: resp.Fields,
	}
	if s.audit != nil {
		result.LogID, result.ArchiveKey = s.audit.Record(ctx, env, resp, rayID, s.now())
	}
	return result, nil
}
