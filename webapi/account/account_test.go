package account_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestfund/ledger/webapi/testutils"
)

func setup(t *testing.T) (*testutils.TestApp, string) {
	t.Helper()
	ta := testutils.New(t)
	ta.Register(t, "alice", "password123")
	return ta, ta.Login(t, "alice", "password123")
}

func createAccount(t *testing.T, ta *testutils.TestApp, token, name, balance string) string {
	t.Helper()
	resp := ta.Request(t, fiber.MethodPost, "/accounts/create",
		fmt.Sprintf(`{"name":%q,"type":"spending","initialBalance":%q}`, name, balance), token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := testutils.DecodeBody(t, resp)
	data := body["data"].(map[string]any)
	return data["id"].(string)
}

func TestCreateAccount(t *testing.T) {
	t.Parallel()
	ta, token := setup(t)

	t.Run("success", func(t *testing.T) {
		resp := ta.Request(t, fiber.MethodPost, "/accounts/create",
			`{"name":"Checking","type":"spending","initialBalance":"100.50"}`, token)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		body := testutils.DecodeBody(t, resp)
		data := body["data"].(map[string]any)
		assert.Equal(t, "Checking", data["name"])
		assert.Equal(t, "spending", data["type"])
		assert.Equal(t, "100.50", data["balance"])
	})

	t.Run("balance defaults to zero", func(t *testing.T) {
		resp := ta.Request(t, fiber.MethodPost, "/accounts/create",
			`{"name":"Savings","type":"savings"}`, token)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		body := testutils.DecodeBody(t, resp)
		data := body["data"].(map[string]any)
		assert.Equal(t, "0.00", data["balance"])
	})

	t.Run("unknown type", func(t *testing.T) {
		resp := ta.Request(t, fiber.MethodPost, "/accounts/create",
			`{"name":"Weird","type":"credit"}`, token)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("sub-cent initial balance", func(t *testing.T) {
		resp := ta.Request(t, fiber.MethodPost, "/accounts/create",
			`{"name":"Precise","type":"spending","initialBalance":"1.005"}`, token)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestListAccounts(t *testing.T) {
	t.Parallel()
	ta, token := setup(t)
	createAccount(t, ta, token, "Checking", "100.00")
	createAccount(t, ta, token, "Savings", "250.00")

	resp := ta.Request(t, fiber.MethodGet, "/accounts/list", "", token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := testutils.DecodeBody(t, resp)
	data := body["data"].([]any)
	assert.Len(t, data, 2)

	// A second user sees none of them.
	ta.Register(t, "mallory", "password123")
	otherToken := ta.Login(t, "mallory", "password123")
	resp = ta.Request(t, fiber.MethodGet, "/accounts/list", "", otherToken)
	body = testutils.DecodeBody(t, resp)
	data = body["data"].([]any)
	assert.Empty(t, data)
}

func TestListWithAllocations(t *testing.T) {
	t.Parallel()
	ta, token := setup(t)
	accountID := createAccount(t, ta, token, "Checking", "100.00")

	resp := ta.Request(t, fiber.MethodPost, "/goals/create",
		fmt.Sprintf(`{"accountId":%q,"name":"Vacation"}`, accountID), token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = ta.Request(t, fiber.MethodGet, "/accounts/listWithAllocations", "", token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := testutils.DecodeBody(t, resp)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	acct := data[0].(map[string]any)
	allocations := acct["allocations"].([]any)
	require.Len(t, allocations, 1)
	goal := allocations[0].(map[string]any)
	assert.Equal(t, "Vacation", goal["name"])
	assert.Equal(t, "0.00", goal["allocatedAmount"])
}

func TestAccountTransfer(t *testing.T) {
	t.Parallel()
	ta, token := setup(t)
	fromID := createAccount(t, ta, token, "Checking", "100.00")
	toID := createAccount(t, ta, token, "Savings", "0.00")

	t.Run("success", func(t *testing.T) {
		resp := ta.Request(t, fiber.MethodPost, "/accounts/transfer",
			fmt.Sprintf(`{"fromAccountId":%q,"toAccountId":%q,"amount":"40.00"}`, fromID, toID),
			token)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := testutils.DecodeBody(t, resp)
		data := body["data"].(map[string]any)
		from := data["from"].(map[string]any)
		to := data["to"].(map[string]any)
		assert.Equal(t, "60.00", from["balance"])
		assert.Equal(t, "40.00", to["balance"])
	})

	t.Run("insufficient funds", func(t *testing.T) {
		resp := ta.Request(t, fiber.MethodPost, "/accounts/transfer",
			fmt.Sprintf(`{"fromAccountId":%q,"toAccountId":%q,"amount":"1000.00"}`, fromID, toID),
			token)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		body := testutils.DecodeBody(t, resp)
		assert.Equal(t, false, body["success"])
	})

	t.Run("self transfer", func(t *testing.T) {
		resp := ta.Request(t, fiber.MethodPost, "/accounts/transfer",
			fmt.Sprintf(`{"fromAccountId":%q,"toAccountId":%q,"amount":"1.00"}`, fromID, fromID),
			token)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}
