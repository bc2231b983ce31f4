package details

import (
	"github.com/gofiber/fiber/v2"

	prefController "schoolpay_dashboard/internals/features/preferences/controller"
	"schoolpay_dashboard/internals/features/preferences/repository"
	prefRoute "schoolpay_dashboard/internals/features/preferences/route"
	"schoolpay_dashboard/internals/features/preferences/service"
)

func PreferenceRoutes(api fiber.Router, store repository.Store) {
	prefRoute.PreferenceRoutes(api, prefController.NewPreferenceController(service.NewThemeService(store)))
}
