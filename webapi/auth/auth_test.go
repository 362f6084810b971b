package auth_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestfund/ledger/pkg/middleware"
	"github.com/nestfund/ledger/webapi/testutils"
)

func TestLogin(t *testing.T) {
	t.Parallel()
	ta := testutils.New(t)
	ta.Register(t, "alice", "password123")

	t.Run("success returns a token and sets the session cookie", func(t *testing.T) {
		resp := ta.Request(t, fiber.MethodPost, "/login",
			`{"username":"alice","password":"password123"}`, "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var sessionCookie *http.Cookie
		for _, c := range resp.Cookies() {
			if c.Name == middleware.SessionCookie {
				sessionCookie = c
			}
		}
		require.NotNil(t, sessionCookie)
		assert.NotEmpty(t, sessionCookie.Value)

		body := testutils.DecodeBody(t, resp)
		assert.Equal(t, true, body["success"])
		data, ok := body["data"].(map[string]any)
		require.True(t, ok)
		assert.NotEmpty(t, data["token"])
		assert.Equal(t, "alice", data["username"])
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := ta.Request(t, fiber.MethodPost, "/login",
			`{"username":"alice","password":"wrong"}`, "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		body := testutils.DecodeBody(t, resp)
		assert.Equal(t, false, body["success"])
	})

	t.Run("unknown user", func(t *testing.T) {
		resp := ta.Request(t, fiber.MethodPost, "/login",
			`{"username":"nobody","password":"password123"}`, "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing fields", func(t *testing.T) {
		resp := ta.Request(t, fiber.MethodPost, "/login", `{"username":"alice"}`, "")
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	t.Parallel()
	ta := testutils.New(t)

	resp := ta.Request(t, fiber.MethodGet, "/accounts/list", "", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = ta.Request(t, fiber.MethodGet, "/accounts/list", "", "not-a-token")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
