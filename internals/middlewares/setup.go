package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"schoolpay_dashboard/internals/middlewares/logger"
)

// SetupMiddlewares installs the app-wide chain. Order matters: the request
// id must exist before recovery and access logging read it.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RequestID())
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
}
