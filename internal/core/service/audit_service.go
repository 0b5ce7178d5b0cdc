package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dawa-marketplace/ecommerce-api/internal/api/metrics"
	"github.com/dawa-marketplace/ecommerce-api/internal/core/domain"
	"github.com/dawa-marketplace/ecommerce-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that logs every event and persists
// it when repo is non-nil.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

func (s *auditService) Process(ctx context.Context, ev domain.AuthEvent) error {
	entry := s.log.Info()
	if ev.Outcome == domain.OutcomeFailure {
		entry = s.log.Warn()
	}
	entry.
		Str("event_id", ev.ID).
		Str("type", string(ev.Type)).
		Str("username", ev.Username).
		Str("outcome", string(ev.Outcome)).
		Str("reason", ev.Reason).
		Str("remote_ip", ev.RemoteIP).
		Msg("auth event")

	metrics.AuditEventsProcessedTotal.WithLabelValues(string(ev.Type), string(ev.Outcome)).Inc()

	if s.repo == nil {
		return nil
	}
	if err := s.repo.InsertAuthEvent(ctx, &ev); err != nil {
		return fmt.Errorf("process auth event: %w", err)
	}
	return nil
}
