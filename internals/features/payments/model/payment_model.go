package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type StudentInfo struct {
	Name  string `json:"name" validate:"required"`
	ID    string `json:"id" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// PaymentRequest is the create-payment form payload.
type PaymentRequest struct {
	SchoolID    string          `json:"school_id" validate:"required"`
	TrusteeID   string          `json:"trustee_id" validate:"required"`
	StudentInfo StudentInfo     `json:"student_info"`
	GatewayName string          `json:"gateway_name" validate:"required"`
	OrderAmount decimal.Decimal `json:"order_amount"`
	PGKey       string          `json:"pg_key" validate:"required"`
	CallbackURL string          `json:"callback_url" validate:"required,url"`
	OrderID     string          `json:"order_id,omitempty"`
	Timestamp   *time.Time      `json:"timestamp,omitempty"`
}

// PaymentResult carries either a gateway redirect or the order id to show.
type PaymentResult struct {
	RedirectURL   string `json:"redirect_url,omitempty"`
	CustomOrderID string `json:"custom_order_id,omitempty"`
}
