package details

import (
	"github.com/gofiber/fiber/v2"

	paymentController "schoolpay_dashboard/internals/features/payments/controller"
	paymentRoute "schoolpay_dashboard/internals/features/payments/route"
	"schoolpay_dashboard/internals/services/api"
)

func PaymentRoutes(apiGroup fiber.Router, client api.Client) {
	paymentRoute.PaymentRoutes(apiGroup, paymentController.NewPaymentController(client))
}
