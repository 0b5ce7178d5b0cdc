package ports

import (
	"context"

	"github.com/dawa-marketplace/ecommerce-api/internal/core/domain"
)

// AuditRecorder accepts auth events without blocking the caller.
type AuditRecorder interface {
	Record(event domain.AuthEvent)
}

// AuditRepository persists auth events.
type AuditRepository interface {
	InsertAuthEvent(ctx context.Context, event *domain.AuthEvent) error
}

// AuditService processes queued auth events.
type AuditService interface {
	Process(ctx context.Context, event domain.AuthEvent) error
}
