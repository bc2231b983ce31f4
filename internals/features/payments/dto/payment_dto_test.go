package dto

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	paymentModel "schoolpay_dashboard/internals/features/payments/model"
)

func TestNewOrderID(t *testing.T) {
	now := time.UnixMilli(1718445600123)
	id := NewOrderID(now)

	assert.Regexp(t, regexp.MustCompile(`^ORD1718445600123[0-9a-f]{9}$`), id)
	assert.NotEqual(t, id, NewOrderID(now))
}

func TestFromResult(t *testing.T) {
	r := FromResult("ORD1", paymentModel.PaymentResult{RedirectURL: "https://pay.example/x", CustomOrderID: "C1"})
	assert.Equal(t, "https://pay.example/x", r.RedirectURL)
	assert.Empty(t, r.PaymentPath)

	r = FromResult("ORD1", paymentModel.PaymentResult{CustomOrderID: "C1"})
	assert.Equal(t, "/payment/C1", r.PaymentPath)

	r = FromResult("ORD1", paymentModel.PaymentResult{})
	assert.Equal(t, DemoOrderPath, r.PaymentPath)
	assert.Equal(t, "ORD1", r.OrderID)
}
