package storage

import "github.com/lcalzada-xor/cyberdash/internal/core/domain"

func accountToDomain(m AccountModel) *domain.Account {
	return &domain.Account{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		CreatedAt:    m.CreatedAt,
		LastLogin:    m.LastLogin,
	}
}

func accountToModel(a domain.Account) AccountModel {
	return AccountModel{
		ID:           a.ID,
		Email:        domain.NormalizeEmail(a.Email),
		PasswordHash: a.PasswordHash,
		Role:         a.Role,
		CreatedAt:    a.CreatedAt,
		LastLogin:    a.LastLogin,
	}
}

func auditToDomain(m AuditModel) domain.AuditLog {
	return domain.AuditLog{
		ID:        m.ID,
		UserID:    m.UserID,
		Email:     m.Email,
		Action:    domain.AuditAction(m.Action),
		Target:    m.Target,
		Details:   m.Details,
		Timestamp: m.Timestamp,
	}
}

func auditToModel(l domain.AuditLog) AuditModel {
	return AuditModel{
		ID:        l.ID,
		UserID:    l.UserID,
		Email:     l.Email,
		Action:    string(l.Action),
		Target:    l.Target,
		Details:   l.Details,
		Timestamp: l.Timestamp,
	}
}
