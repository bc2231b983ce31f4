package details

import (
	"github.com/gofiber/fiber/v2"

	authController "schoolpay_dashboard/internals/features/auth/controller"
	authRoute "schoolpay_dashboard/internals/features/auth/route"
	"schoolpay_dashboard/internals/services/session"
)

func AuthRoutes(api fiber.Router, s *session.Session, requireSession fiber.Handler) {
	authRoute.AuthRoutes(api, authController.NewAuthController(s), requireSession)
}
