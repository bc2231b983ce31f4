package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"schoolpay_dashboard/internals/constants"
	helper "schoolpay_dashboard/internals/helpers"
	"schoolpay_dashboard/internals/services/session"
)

const UserKey = "user"

// RequireSession gates protected views: 503 while the session is still
// initializing, 401 when nobody is logged in.
func RequireSession(s *session.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if s.Loading() {
			return helper.JsonError(c, fiber.StatusServiceUnavailable, constants.ErrSessionLoading)
		}
		u := s.CurrentUser()
		if u == nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrUnauthorized)
		}
		c.Locals(UserKey, u)
		return c.Next()
	}
}
