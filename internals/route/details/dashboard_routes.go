package details

import (
	"github.com/gofiber/fiber/v2"

	dashboardController "schoolpay_dashboard/internals/features/dashboard/controller"
	dashboardRoute "schoolpay_dashboard/internals/features/dashboard/route"
	"schoolpay_dashboard/internals/services/api"
)

func DashboardRoutes(protected fiber.Router, client api.TransactionAPI) {
	dashboardRoute.DashboardRoutes(protected, dashboardController.NewDashboardController(client))
}
