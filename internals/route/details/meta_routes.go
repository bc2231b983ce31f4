package details

import (
	"github.com/gofiber/fiber/v2"

	"schoolpay_dashboard/internals/constants"
	txModel "schoolpay_dashboard/internals/features/transactions/model"
	helper "schoolpay_dashboard/internals/helpers"
	"schoolpay_dashboard/internals/services/api"
)

// MetaRoutes serves the static catalogues the forms and filters need.
func MetaRoutes(apiGroup fiber.Router, client api.Client) {
	demo := api.IsDemo(client)
	apiGroup.Get("/meta", func(c *fiber.Ctx) error {
		return helper.JsonOK(c, "ok", fiber.Map{
			"gateways": constants.PaymentGateways,
			"schools":  constants.Schools,
			"statuses": txModel.AllStatuses,
			"demo":     demo,
			"defaults": fiber.Map{
				"page":  constants.DefaultPage,
				"limit": constants.DefaultLimit,
				"sort":  constants.DefaultSort,
				"order": constants.DefaultOrder,
			},
		})
	})
}
