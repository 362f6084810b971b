// Package auth authenticates users and issues the session tokens carried by
// every protected request. The ledger engine never sees a token, only the
// owner id the web layer resolves from it.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nestfund/ledger/pkg/config"
	"github.com/nestfund/ledger/pkg/domain/user"
	"github.com/nestfund/ledger/pkg/repository"
	"github.com/nestfund/ledger/pkg/utils"
)

// Service verifies credentials and mints/reads session tokens.
type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

// New creates an auth Service.
func New(uow repository.UnitOfWork, cfg *config.Jwt, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// Login verifies a username/password pair. It returns the user on success and
// (nil, nil) when the credentials do not match, so callers can distinguish
// bad credentials from infrastructure failures.
func (s *Service) Login(ctx context.Context, username, password string) (*user.User, error) {
	var u *user.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.GetByUsername(ctx, username)
		return err
	})
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, nil
		}
		s.logger.Error("login lookup failed", "error", err)
		return nil, err
	}
	if !utils.CheckPasswordHash(password, u.Password) {
		return nil, nil
	}
	return u, nil
}

// GenerateToken mints a signed session token for the user.
func (s *Service) GenerateToken(u *user.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  u.ID.String(),
		"username": u.Username,
		"exp":      time.Now().Add(s.cfg.Expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// GetCurrentUserID resolves the owner id from a verified session token.
func (s *Service) GetCurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("unexpected claims type %T", token.Claims)
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, errors.New("token missing user_id claim")
	}
	return uuid.Parse(raw)
}
