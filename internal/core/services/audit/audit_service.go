package audit

import (
	"context"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/ports"
)

var _ ports.AuditService = (*AuditService)(nil)

// SystemActor is recorded for actions without an authenticated user.
var SystemActor = domain.User{ID: "system", Email: "system"}

type AuditService struct {
	repo ports.AuditRepository
}

func NewAuditService(repo ports.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

func (s *AuditService) Log(ctx context.Context, actor domain.User, action domain.AuditAction, target, details string) error {
	if actor.ID == "" && actor.Email == "" {
		actor = SystemActor
	}

	// Use Domain Factory to ensure business rules
	entry, err := domain.NewAuditLog(actor.ID, actor.Email, action, target, details)
	if err != nil {
		return err
	}

	return s.repo.SaveAuditLog(ctx, *entry)
}

func (s *AuditService) GetLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	return s.repo.ListAuditLogs(ctx, limit)
}
