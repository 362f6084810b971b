// Package user provides the GORM-backed user repository.
package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/nestfund/ledger/pkg/domain/user"
	"github.com/nestfund/ledger/pkg/repository"
)

type repo struct {
	db *gorm.DB
}

// New creates a user repository bound to the provided *gorm.DB session.
func New(db *gorm.DB) repository.UserRepository {
	return &repo{db: db}
}

// Get implements repository.UserRepository.
func (r *repo) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var m User
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

// GetByUsername implements repository.UserRepository.
func (r *repo) GetByUsername(
	ctx context.Context,
	username string,
) (*domain.User, error) {
	var m User
	err := r.db.WithContext(ctx).First(&m, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

// Create implements repository.UserRepository.
func (r *repo) Create(ctx context.Context, u *domain.User) error {
	m := User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUsernameTaken
		}
		return err
	}
	return nil
}

func mapModelToDomain(m *User) *domain.User {
	return domain.NewUserFromData(
		m.ID,
		m.Username,
		m.Email,
		m.Password,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
