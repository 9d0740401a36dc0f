package storage

import (
	"context"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/ports"
	"gorm.io/gorm"
)

// Ensure compliance
var _ ports.AuditStore = (*SQLiteAdapter)(nil)

// SaveAuditLog persists a single audit entry.
func (a *SQLiteAdapter) SaveAuditLog(ctx context.Context, log domain.AuditLog) error {
	model := auditToModel(log)
	return a.db.WithContext(ctx).Create(&model).Error
}

// SaveAuditLogs persists entries in a single transaction.
func (a *SQLiteAdapter) SaveAuditLogs(ctx context.Context, logs []domain.AuditLog) error {
	if len(logs) == 0 {
		return nil
	}
	models := make([]AuditModel, len(logs))
	for i, l := range logs {
		models[i] = auditToModel(l)
	}
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(models, 100).Error
	})
}

// ListAuditLogs returns the newest entries first.
func (a *SQLiteAdapter) ListAuditLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	var models []AuditModel
	if err := a.db.WithContext(ctx).Order("timestamp desc").Order("id desc").Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}
	logs := make([]domain.AuditLog, len(models))
	for i, m := range models {
		logs[i] = auditToDomain(m)
	}
	return logs, nil
}
