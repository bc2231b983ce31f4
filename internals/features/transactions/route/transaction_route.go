package route

import (
	"github.com/gofiber/fiber/v2"

	"schoolpay_dashboard/internals/features/transactions/controller"
)

func TransactionRoutes(protected fiber.Router, ctrl *controller.TransactionController) {
	protected.Get("/transactions", ctrl.ListTransactions)
	protected.Post("/transactions/refetch", ctrl.Refetch)
	protected.Get("/transactions/status/:orderId", ctrl.CheckStatus)
	protected.Get("/school-transactions", ctrl.ListSchoolTransactions)
}
