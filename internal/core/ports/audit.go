package ports

import (
	"context"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
)

// AuditService handles the high-level business requirement for action tracking.
type AuditService interface {
	// Log records a user-initiated action.
	Log(ctx context.Context, actor domain.User, action domain.AuditAction, target, details string) error

	// GetLogs retrieves historical audit records.
	GetLogs(ctx context.Context, limit int) ([]domain.AuditLog, error)
}

// AuditRepository handles the low-level persistence of audit data.
type AuditRepository interface {
	// SaveAuditLog persists a single audit entry.
	SaveAuditLog(ctx context.Context, log domain.AuditLog) error

	// ListAuditLogs retrieves audit entries with a result limit.
	ListAuditLogs(ctx context.Context, limit int) ([]domain.AuditLog, error)
}

// AuditStore is an AuditRepository that can also write entries in batches.
type AuditStore interface {
	AuditRepository

	// SaveAuditLogs persists entries in a single transaction.
	SaveAuditLogs(ctx context.Context, logs []domain.AuditLog) error
}
