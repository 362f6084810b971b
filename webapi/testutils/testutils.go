// Package testutils spins up the full Fiber application over the in-memory
// unit of work for handler tests.
package testutils

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/nestfund/ledger/pkg/app"
	"github.com/nestfund/ledger/pkg/config"
	"github.com/nestfund/ledger/pkg/domain/user"
	memuow "github.com/nestfund/ledger/pkg/testutils"
	"github.com/nestfund/ledger/webapi"
)

// TestApp bundles the Fiber app with the services backing it, so tests can
// arrange state through the services and assert through HTTP.
type TestApp struct {
	App   *app.App
	Fiber *fiber.App
}

// New builds the application over an empty in-memory store.
func New(t *testing.T) *TestApp {
	t.Helper()
	cfg := &config.App{
		Env: "test",
		Jwt: config.Jwt{Secret: "test-secret", Expiry: time.Hour},
		RateLimit: config.RateLimit{
			MaxRequests: 1000,
			Window:      time.Second,
		},
		Ledger: config.Ledger{LockTimeout: time.Second},
	}
	deps := &app.Deps{
		Uow:    memuow.NewMemoryUoW(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	a := app.New(deps, cfg)
	return &TestApp{App: a, Fiber: webapi.SetupApp(a)}
}

// Register creates a user directly through the user service.
func (ta *TestApp) Register(t *testing.T, username, password string) *user.User {
	t.Helper()
	u, err := ta.App.UserService.Create(
		context.Background(),
		username,
		username+"@example.com",
		password,
	)
	require.NoError(t, err)
	return u
}

// Login returns a bearer token for the user.
func (ta *TestApp) Login(t *testing.T, username, password string) string {
	t.Helper()
	u, err := ta.App.AuthService.Login(context.Background(), username, password)
	require.NoError(t, err)
	require.NotNil(t, u)
	token, err := ta.App.AuthService.GenerateToken(u)
	require.NoError(t, err)
	return token
}

// Request performs an HTTP request against the app. An empty token sends the
// request unauthenticated.
func (ta *TestApp) Request(t *testing.T, method, path, body, token string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ta.Fiber.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// DecodeBody decodes the response body into a map for assertions.
func DecodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close() //nolint:errcheck
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
