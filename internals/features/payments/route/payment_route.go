package route

import (
	"github.com/gofiber/fiber/v2"

	"schoolpay_dashboard/internals/features/payments/controller"
	"schoolpay_dashboard/internals/middlewares"
)

// PaymentRoutes are public, like the payment pages they serve.
func PaymentRoutes(api fiber.Router, ctrl *controller.PaymentController) {
	g := api.Group("/payments")
	g.Post("/", middlewares.PaymentRateLimiter(), ctrl.CreatePayment)
	g.Get("/:orderId", ctrl.GetPayment)
}
