package storage

import (
	"context"
	"errors"
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/ports"
	"gorm.io/gorm"
)

// Ensure interface compliance
var _ ports.UserRepository = (*SQLiteAdapter)(nil)

// Save creates or updates an account.
func (a *SQLiteAdapter) Save(ctx context.Context, account domain.Account) error {
	model := accountToModel(account)
	return a.db.WithContext(ctx).Save(&model).Error
}

// GetByEmail retrieves an account by its email.
func (a *SQLiteAdapter) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var model AccountModel
	if err := a.db.WithContext(ctx).Where("email = ?", domain.NormalizeEmail(email)).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return accountToDomain(model), nil
}

// GetByID retrieves an account by its ID.
func (a *SQLiteAdapter) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	var model AccountModel
	if err := a.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return accountToDomain(model), nil
}

// TouchLogin records a successful login time.
func (a *SQLiteAdapter) TouchLogin(ctx context.Context, id string, at time.Time) error {
	res := a.db.WithContext(ctx).Model(&AccountModel{}).Where("id = ?", id).Update("last_login", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}
