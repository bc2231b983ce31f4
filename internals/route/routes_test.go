package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"schoolpay_dashboard/internals/features/preferences/repository"
	helper "schoolpay_dashboard/internals/helpers"
	"schoolpay_dashboard/internals/services/api"
	"schoolpay_dashboard/internals/services/session"
)

func newTestApp(t *testing.T, initSession bool) *fiber.App {
	t.Helper()
	store := repository.NewMemoryStore()
	creds := session.NewCredentials(store)
	client := api.NewMockClient(creds, api.WithHashCost(bcrypt.MinCost))
	sess := session.New(client, creds)
	if initSession {
		sess.Init(context.Background())
	}

	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	SetupRoutes(app, Deps{Client: client, Session: sess, Store: store})
	return app
}

func call(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func login(t *testing.T, app *fiber.App) {
	t.Helper()
	status, body := call(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "admin@schoolpay.dev",
		"password": "demo1234",
	})
	require.Equal(t, http.StatusOK, status, body)
}

func TestProtectedViewsNeedSession(t *testing.T) {
	app := newTestApp(t, true)

	status, body := call(t, app, http.MethodGet, "/api/dashboard", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body["error_code"])

	status, _ = call(t, app, http.MethodGet, "/api/transactions", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestProtectedViewsWaitForSessionInit(t *testing.T) {
	app := newTestApp(t, false)

	status, _ := call(t, app, http.MethodGet, "/api/dashboard", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestLoginFlow(t *testing.T) {
	app := newTestApp(t, true)

	status, body := call(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "admin@schoolpay.dev", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password", body["message"])

	status, _ = call(t, app, http.MethodPost, "/api/auth/login", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	login(t, app)
	status, body = call(t, app, http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["authenticated"])
	assert.Equal(t, "admin@schoolpay.dev", data["user"].(map[string]any)["email"])

	status, _ = call(t, app, http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = call(t, app, http.MethodGet, "/api/dashboard", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRegisterAndProfile(t *testing.T) {
	app := newTestApp(t, true)

	status, body := call(t, app, http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Trustee", "email": "trustee@example.com", "password": "hunter22", "role": "trustee",
	})
	require.Equal(t, http.StatusCreated, status, body)

	status, _ = call(t, app, http.MethodPut, "/api/auth/profile", map[string]string{"name": "X Y"})
	assert.Equal(t, http.StatusUnauthorized, status)

	login(t, app)
	status, body = call(t, app, http.MethodPut, "/api/auth/profile", map[string]string{"name": "Ops Lead"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Ops Lead", body["data"].(map[string]any)["name"])
}

func TestDashboard(t *testing.T) {
	app := newTestApp(t, true)
	login(t, app)

	status, body := call(t, app, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	stats := data["stats"].(map[string]any)
	assert.EqualValues(t, 25, stats["total"])
	assert.EqualValues(t, 4, stats["schools"])
	assert.Len(t, data["recent_transactions"], 5)
}

func TestTransactionsView(t *testing.T) {
	app := newTestApp(t, true)
	login(t, app)

	status, body := call(t, app, http.MethodGet, "/api/transactions?status=success&search=ord-20240", nil)
	require.Equal(t, http.StatusOK, status)
	items := body["data"].([]any)
	assert.Len(t, items, 4)
	for _, it := range items {
		assert.Equal(t, "success", it.(map[string]any)["status"])
	}
	pg := body["pagination"].(map[string]any)
	assert.EqualValues(t, 4, pg["total"])

	status, body = call(t, app, http.MethodGet, "/api/transactions?page=4&limit=10", nil)
	require.Equal(t, http.StatusOK, status)
	pg = body["pagination"].(map[string]any)
	assert.EqualValues(t, 3, pg["page"])
	assert.EqualValues(t, 3, pg["pages"])
	assert.Len(t, body["data"], 5)
	assert.Equal(t, []any{1.0, 2.0, 3.0}, pg["page_window"])
}

func TestSchoolTransactionsView(t *testing.T) {
	app := newTestApp(t, true)
	login(t, app)

	status, body := call(t, app, http.MethodGet, "/api/school-transactions", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["data"])

	status, body = call(t, app, http.MethodGet, "/api/school-transactions?schoolId=SCH-7&limit=50", nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 20, body["pagination"].(map[string]any)["total"])
	assert.Equal(t, "SCH-7", body["includes"].(map[string]any)["school_id"])
}

func TestCheckStatus(t *testing.T) {
	app := newTestApp(t, true)
	login(t, app)

	status, body := call(t, app, http.MethodGet, "/api/transactions/status/ORD-202405", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ORD-202405", body["data"].(map[string]any)["custom_order_id"])

	status, body = call(t, app, http.MethodGet, "/api/transactions/status/NO-SUCH-ID", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, body["data"])
	assert.Equal(t, "Transaction not found", body["message"])
}

func TestCreatePayment(t *testing.T) {
	app := newTestApp(t, true)

	status, body := call(t, app, http.MethodPost, "/api/payments", map[string]any{
		"school_id": "65b0e6293e9f76a9694d84b4",
	})
	require.Equal(t, http.StatusUnprocessableEntity, status)
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "order_amount")
	assert.Contains(t, errs, "student_info.email")

	status, body = call(t, app, http.MethodPost, "/api/payments", map[string]any{
		"school_id":    "65b0e6293e9f76a9694d84b4",
		"trustee_id":   "65b0e552dd31950a9b41c5ba",
		"student_info": map[string]string{"name": "John Doe", "id": "STD-1001", "email": "john.doe@example.com"},
		"gateway_name": "PhonePe",
		"order_amount": 2000,
		"pg_key":       "edvtest01",
		"callback_url": "http://localhost:5000/api/payment/callback",
	})
	require.Equal(t, http.StatusCreated, status, body)
	data := body["data"].(map[string]any)
	orderID := data["order_id"].(string)
	assert.True(t, strings.HasPrefix(orderID, "ORD"))
	assert.Equal(t, "/payment/"+orderID, data["payment_path"])

	status, body = call(t, app, http.MethodGet, "/api/payments/"+orderID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["data"].(map[string]any)["found"])
}

func TestThemePreference(t *testing.T) {
	app := newTestApp(t, true)

	_, body := call(t, app, http.MethodGet, "/api/preferences/theme", nil)
	assert.Equal(t, "light", body["data"].(map[string]any)["theme"])

	status, _ := call(t, app, http.MethodPut, "/api/preferences/theme", map[string]string{"theme": "sepia"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = call(t, app, http.MethodPut, "/api/preferences/theme", map[string]string{"theme": "dark"})
	assert.Equal(t, http.StatusOK, status)
	_, body = call(t, app, http.MethodGet, "/api/preferences/theme", nil)
	assert.Equal(t, "dark", body["data"].(map[string]any)["theme"])

	_, body = call(t, app, http.MethodPost, "/api/preferences/theme/toggle", nil)
	assert.Equal(t, "light", body["data"].(map[string]any)["theme"])
}

func TestMetaAndHealth(t *testing.T) {
	app := newTestApp(t, true)

	status, body := call(t, app, http.MethodGet, "/api/meta", nil)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["demo"])
	assert.Len(t, data["schools"], 4)

	status, body = call(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "demo", body["mode"])
	assert.Equal(t, "memory", body["storage"])

	status, _ = call(t, app, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, status)
}
