// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"jobtracker_backend/internal/feature/auth/domain/entity"
	"jobtracker_backend/internal/feature/auth/usecase"
	"jobtracker_backend/internal/platform/db"
)

// userGorm is the relational implementation of UserRepository.
type userGorm struct {
	db *gorm.DB
}

var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a new instance of userGorm.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create inserts the user. Unique violations on email or username return usecase.ErrDuplicateUser.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return usecase.ErrDuplicateUser
		}
		return err
	}
	return nil
}

// FindByEmail returns usecase.ErrUserNotFound when no row matches.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findBy(ctx, "email = ?", email)
}

// FindByUsername returns usecase.ErrUserNotFound when no row matches.
func (r *userGorm) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findBy(ctx, "username = ?", username)
}

func (r *userGorm) findBy(ctx context.Context, query string, arg string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
