package route

import (
	"github.com/gofiber/fiber/v2"

	"schoolpay_dashboard/internals/features/auth/controller"
	"schoolpay_dashboard/internals/middlewares"
)

// AuthRoutes mounts /api/auth. Only profile updates need a session.
func AuthRoutes(api fiber.Router, ctrl *controller.AuthController, requireSession fiber.Handler) {
	auth := api.Group("/auth")

	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/logout", ctrl.Logout)
	auth.Get("/me", ctrl.Me)
	auth.Put("/profile", requireSession, ctrl.UpdateProfile)
}
