package route

import (
	"github.com/gofiber/fiber/v2"

	"schoolpay_dashboard/internals/features/preferences/controller"
)

func PreferenceRoutes(api fiber.Router, ctrl *controller.PreferenceController) {
	g := api.Group("/preferences")
	g.Get("/theme", ctrl.GetTheme)
	g.Put("/theme", ctrl.SetTheme)
	g.Post("/theme/toggle", ctrl.ToggleTheme)
}
