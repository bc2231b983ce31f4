package controller

import (
	"github.com/gofiber/fiber/v2"

	"schoolpay_dashboard/internals/constants"
	"schoolpay_dashboard/internals/features/preferences/model"
	"schoolpay_dashboard/internals/features/preferences/service"
	helper "schoolpay_dashboard/internals/helpers"
)

type PreferenceController struct {
	Theme *service.ThemeService
}

func NewPreferenceController(theme *service.ThemeService) *PreferenceController {
	return &PreferenceController{Theme: theme}
}

// GET /api/preferences/theme
func (pc *PreferenceController) GetTheme(c *fiber.Ctx) error {
	return helper.JsonOK(c, "ok", model.ThemeResponse{Theme: pc.Theme.Current(c.UserContext())})
}

// PUT /api/preferences/theme
func (pc *PreferenceController) SetTheme(c *fiber.Ctx) error {
	var req model.ThemeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if fields := helper.ValidateStruct(req); fields != nil {
		return helper.ValidationError(c, fields)
	}
	if err := pc.Theme.Set(c.UserContext(), req.Theme); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, constants.MsgDataSaved, model.ThemeResponse{Theme: req.Theme})
}

// POST /api/preferences/theme/toggle
func (pc *PreferenceController) ToggleTheme(c *fiber.Ctx) error {
	next, err := pc.Theme.Toggle(c.UserContext())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, constants.MsgDataSaved, model.ThemeResponse{Theme: next})
}
