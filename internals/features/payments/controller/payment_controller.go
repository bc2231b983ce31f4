package controller

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"schoolpay_dashboard/internals/constants"
	"schoolpay_dashboard/internals/features/payments/dto"
	paymentModel "schoolpay_dashboard/internals/features/payments/model"
	helper "schoolpay_dashboard/internals/helpers"
	"schoolpay_dashboard/internals/services/api"
)

type PaymentController struct {
	Client api.Client
	Now    func() time.Time
}

func NewPaymentController(client api.Client) *PaymentController {
	return &PaymentController{Client: client, Now: time.Now}
}

// POST /api/payments
func (pc *PaymentController) CreatePayment(c *fiber.Ctx) error {
	var req paymentModel.PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	fields := helper.ValidateStruct(req)
	if !req.OrderAmount.IsPositive() {
		if fields == nil {
			fields = map[string][]string{}
		}
		fields["order_amount"] = append(fields["order_amount"], "gt")
	}
	if req.GatewayName != "" && !knownGateway(req.GatewayName) {
		if fields == nil {
			fields = map[string][]string{}
		}
		fields["gateway_name"] = append(fields["gateway_name"], "oneof")
	}
	if len(fields) > 0 {
		return helper.ValidationError(c, fields)
	}

	now := pc.Now()
	req.OrderID = dto.NewOrderID(now)
	req.Timestamp = &now

	res, err := pc.Client.CreatePayment(c.UserContext(), req)
	if err != nil {
		log.Printf("[PAYMENT] create %s failed: %v", req.OrderID, err)
		return helper.JsonError(c, api.HTTPStatus(err), api.Message(err, constants.ErrCreatePayment))
	}
	return helper.JsonCreated(c, constants.MsgPaymentCreated, dto.FromResult(req.OrderID, res))
}

// GET /api/payments/:orderId
func (pc *PaymentController) GetPayment(c *fiber.Ctx) error {
	orderID := strings.TrimSpace(c.Params("orderId"))
	if orderID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "order id is required")
	}
	tx, err := pc.Client.GetStatus(c.UserContext(), orderID)
	if err != nil {
		return helper.JsonError(c, api.HTTPStatus(err), api.Message(err, constants.ErrFetchStatus))
	}
	return helper.JsonOK(c, "ok", dto.PaymentPageResponse{OrderID: orderID, Found: tx != nil, Transaction: tx})
}

func knownGateway(name string) bool {
	for _, g := range constants.GatewayNames() {
		if strings.EqualFold(g, name) {
			return true
		}
	}
	return false
}
