package details

import (
	"github.com/gofiber/fiber/v2"

	txController "schoolpay_dashboard/internals/features/transactions/controller"
	txRoute "schoolpay_dashboard/internals/features/transactions/route"
	"schoolpay_dashboard/internals/services/api"
)

// TransactionRoutes builds one query per view; the views keep their state
// across requests.
func TransactionRoutes(protected fiber.Router, client api.TransactionAPI) {
	txRoute.TransactionRoutes(protected, txController.NewTransactionController(client))
}
