package route

import (
	"github.com/gofiber/fiber/v2"

	"schoolpay_dashboard/internals/features/dashboard/controller"
)

func DashboardRoutes(protected fiber.Router, ctrl *controller.DashboardController) {
	protected.Get("/dashboard", ctrl.GetDashboard)
}
