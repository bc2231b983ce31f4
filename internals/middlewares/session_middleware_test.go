package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authModel "schoolpay_dashboard/internals/features/auth/model"
	"schoolpay_dashboard/internals/features/preferences/repository"
	"schoolpay_dashboard/internals/services/session"
)

type stubAuth struct{ user *authModel.User }

func (s stubAuth) Login(context.Context, string, string) (authModel.LoginResponse, error) {
	return authModel.LoginResponse{}, nil
}
func (s stubAuth) Register(context.Context, authModel.RegisterRequest) (authModel.RegisterResponse, error) {
	return authModel.RegisterResponse{}, nil
}
func (s stubAuth) GetProfile(context.Context) (*authModel.User, error) { return s.user, nil }
func (s stubAuth) UpdateProfile(context.Context, authModel.ProfileUpdate) (*authModel.User, error) {
	return s.user, nil
}

func gatedApp(s *session.Session) *fiber.App {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/p", RequireSession(s), func(c *fiber.Ctx) error {
		u := c.Locals(UserKey).(*authModel.User)
		return c.SendString(u.ID)
	})
	return app
}

func TestRequireSession(t *testing.T) {
	creds := session.NewCredentials(repository.NewMemoryStore())
	require.NoError(t, creds.Set(context.Background(), "tok"))
	s := session.New(stubAuth{user: &authModel.User{ID: "u1"}}, creds)
	app := gatedApp(s)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/p", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	s.Init(context.Background())
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/p", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	s.Logout()
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/p", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(c.Locals(RequestIDKey).(string)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(RequestIDHeader), 36)
}
