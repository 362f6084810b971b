// Package user provides user registration and lookup.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	domain "github.com/nestfund/ledger/pkg/domain/user"
	"github.com/nestfund/ledger/pkg/repository"
)

// Service provides user registration and lookup.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a user Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create registers a new user with a hashed password. Usernames are unique.
func (s *Service) Create(ctx context.Context, username, email, password string) (u *domain.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = domain.NewUser(username, email, password)
		if err != nil {
			return err
		}
		return repo.Create(ctx, u)
	})
	if err != nil {
		s.logger.Error("user creation failed", "username", username, "error", err)
		return nil, err
	}
	s.logger.Info("user created", "userID", u.ID, "username", username)
	return u, nil
}

// Get returns a user by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (u *domain.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, id)
		return err
	})
	return u, err
}
