package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestfund/ledger/pkg/config"
	"github.com/nestfund/ledger/pkg/service/auth"
	usersvc "github.com/nestfund/ledger/pkg/service/user"
	"github.com/nestfund/ledger/pkg/testutils"
)

func newService(t *testing.T) (*auth.Service, *usersvc.Service) {
	t.Helper()
	uow := testutils.NewMemoryUoW()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Jwt{Secret: "test-secret", Expiry: time.Hour}
	return auth.New(uow, cfg, logger), usersvc.New(uow, logger)
}

func TestLogin(t *testing.T) {
	t.Parallel()
	svc, users := newService(t)
	ctx := context.Background()
	_, err := users.Create(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()
		u, err := svc.Login(ctx, "alice", "password123")
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, "alice", u.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		u, err := svc.Login(ctx, "alice", "nope")
		require.NoError(t, err)
		assert.Nil(t, u)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		u, err := svc.Login(ctx, "bob", "password123")
		require.NoError(t, err)
		assert.Nil(t, u)
	})
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()
	svc, users := newService(t)
	ctx := context.Background()
	u, err := users.Create(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	signed, err := svc.GenerateToken(u)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	id, err := svc.GetCurrentUserID(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
}

func TestGetCurrentUserID_MissingClaim(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	_, err := svc.GetCurrentUserID(token)
	assert.Error(t, err)
}
