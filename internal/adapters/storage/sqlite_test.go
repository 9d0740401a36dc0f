package storage

import (
	"context"
	"testing"
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupInMemoryDB creates a new SQLiteAdapter used for testing
func setupInMemoryDB(t *testing.T) *SQLiteAdapter {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	adapter, err := newAdapter(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = adapter.Close() })
	return adapter
}

func TestSaveAndGetAccount(t *testing.T) {
	adapter := setupInMemoryDB(t)
	ctx := context.Background()

	acc := domain.Account{
		ID:           "u-1",
		Email:        "Analyst@Example.com",
		PasswordHash: "hash",
		Role:         domain.DefaultRole,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, adapter.Save(ctx, acc))

	stored, err := adapter.GetByEmail(ctx, "analyst@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", stored.ID)
	assert.Equal(t, "analyst@example.com", stored.Email)
	assert.Equal(t, "hash", stored.PasswordHash)

	byID, err := adapter.GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, stored.Email, byID.Email)
}

func TestGetAccount_NotFound(t *testing.T) {
	adapter := setupInMemoryDB(t)
	ctx := context.Background()

	_, err := adapter.GetByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = adapter.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	assert.ErrorIs(t, adapter.TouchLogin(ctx, "missing", time.Now()), domain.ErrAccountNotFound)
}

func TestSaveAccount_DuplicateEmail(t *testing.T) {
	adapter := setupInMemoryDB(t)
	ctx := context.Background()

	require.NoError(t, adapter.Save(ctx, domain.Account{ID: "a", Email: "dup@example.com", PasswordHash: "h"}))
	err := adapter.Save(ctx, domain.Account{ID: "b", Email: "dup@example.com", PasswordHash: "h"})
	assert.Error(t, err)
}

func TestTouchLogin(t *testing.T) {
	adapter := setupInMemoryDB(t)
	ctx := context.Background()
	require.NoError(t, adapter.Save(ctx, domain.Account{ID: "u-1", Email: "a@b.com", PasswordHash: "h"}))

	at := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	require.NoError(t, adapter.TouchLogin(ctx, "u-1", at))

	stored, err := adapter.GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.True(t, at.Equal(stored.LastLogin))
}

func TestAuditLogs(t *testing.T) {
	adapter := setupInMemoryDB(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, adapter.SaveAuditLog(ctx, domain.AuditLog{
		UserID: "u-1", Action: domain.ActionLogin, Target: "auth", Timestamp: base,
	}))
	require.NoError(t, adapter.SaveAuditLogs(ctx, []domain.AuditLog{
		{UserID: "u-1", Action: domain.ActionFilterChange, Target: "threats", Timestamp: base.Add(time.Minute)},
		{UserID: "u-1", Action: domain.ActionLogout, Target: "auth", Timestamp: base.Add(2 * time.Minute)},
	}))
	require.NoError(t, adapter.SaveAuditLogs(ctx, nil))

	logs, err := adapter.ListAuditLogs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, domain.ActionLogout, logs[0].Action)
	assert.Equal(t, domain.ActionFilterChange, logs[1].Action)
	assert.NotZero(t, logs[0].ID)
}
