package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"schoolpay_dashboard/internals/constants"
	authModel "schoolpay_dashboard/internals/features/auth/model"
	helper "schoolpay_dashboard/internals/helpers"
	"schoolpay_dashboard/internals/services/api"
	"schoolpay_dashboard/internals/services/session"
)

type AuthController struct {
	Session *session.Session
}

func NewAuthController(s *session.Session) *AuthController {
	return &AuthController{Session: s}
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req authModel.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.TrimSpace(req.Email)
	if fields := helper.ValidateStruct(req); fields != nil {
		return helper.ValidationError(c, fields)
	}

	res := ac.Session.Login(c.UserContext(), req.Email, req.Password)
	if !res.Success {
		return helper.JsonError(c, fiber.StatusUnauthorized, res.Message)
	}
	return helper.JsonOK(c, constants.MsgLoginSuccess, ac.Session.Snapshot())
}

// POST /api/auth/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req authModel.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if fields := helper.ValidateStruct(req); fields != nil {
		return helper.ValidationError(c, fields)
	}

	res, err := ac.Session.Register(c.UserContext(), req)
	if err != nil {
		return helper.JsonError(c, api.HTTPStatus(err), api.ErrorText(err, "Registration failed"))
	}
	msg := res.Message
	if msg == "" {
		msg = "Registration successful"
	}
	return helper.JsonCreated(c, msg, res.User)
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	ac.Session.Logout()
	return helper.JsonOK(c, constants.MsgLogoutSuccess, nil)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	return helper.JsonOK(c, "ok", ac.Session.Snapshot())
}

// PUT /api/auth/profile
func (ac *AuthController) UpdateProfile(c *fiber.Ctx) error {
	var req authModel.ProfileUpdate
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" && strings.TrimSpace(req.Email) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}
	if fields := helper.ValidateStruct(req); fields != nil {
		return helper.ValidationError(c, fields)
	}

	u, err := ac.Session.UpdateProfile(c.UserContext(), req)
	if err != nil {
		return helper.JsonError(c, api.HTTPStatus(err), api.ErrorText(err, "Failed to update profile"))
	}
	return helper.JsonUpdated(c, constants.MsgDataSaved, u)
}
