package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	paymentModel "schoolpay_dashboard/internals/features/payments/model"
	txModel "schoolpay_dashboard/internals/features/transactions/model"
)

// DemoOrderPath is where a payment without redirect or order id lands.
const DemoOrderPath = "/payment/demo-order"

// NewOrderID returns ORD + unix millis + a short random suffix.
func NewOrderID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("ORD%d%s", now.UnixMilli(), suffix)
}

type CreatePaymentResponse struct {
	OrderID       string `json:"order_id"`
	RedirectURL   string `json:"redirect_url,omitempty"`
	PaymentPath   string `json:"payment_path,omitempty"`
	CustomOrderID string `json:"custom_order_id,omitempty"`
}

// FromResult prefers the gateway redirect, then the payment page of the
// returned order, then the demo order page.
func FromResult(orderID string, res paymentModel.PaymentResult) CreatePaymentResponse {
	out := CreatePaymentResponse{OrderID: orderID, CustomOrderID: res.CustomOrderID}
	switch {
	case res.RedirectURL != "":
		out.RedirectURL = res.RedirectURL
	case res.CustomOrderID != "":
		out.PaymentPath = "/payment/" + res.CustomOrderID
	default:
		out.PaymentPath = DemoOrderPath
	}
	return out
}

type PaymentPageResponse struct {
	OrderID     string               `json:"order_id"`
	Found       bool                 `json:"found"`
	Transaction *txModel.Transaction `json:"transaction,omitempty"`
}
