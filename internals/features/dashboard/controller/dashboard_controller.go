package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"schoolpay_dashboard/internals/constants"
	"schoolpay_dashboard/internals/features/dashboard/dto"
	helper "schoolpay_dashboard/internals/helpers"
	"schoolpay_dashboard/internals/services/api"
)

type DashboardController struct {
	Client api.TransactionAPI
}

func NewDashboardController(client api.TransactionAPI) *DashboardController {
	return &DashboardController{Client: client}
}

// GET /api/dashboard
func (dc *DashboardController) GetDashboard(c *fiber.Ctx) error {
	page, err := dc.Client.GetAll(c.UserContext(), api.Params{
		"page":  1,
		"limit": dto.RecentLimit,
		"sort":  constants.DefaultSort,
		"order": constants.DefaultOrder,
	})
	if err != nil {
		log.Printf("[DASHBOARD] fetch failed: %v", err)
		return helper.JsonError(c, api.HTTPStatus(err), api.Message(err, constants.ErrFetchDashboard))
	}
	return helper.JsonOK(c, "ok", dto.DashboardResponse{
		Stats:  dto.BuildStats(page, len(constants.Schools)),
		Recent: page.Items,
	})
}
