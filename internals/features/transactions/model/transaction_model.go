package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	StatusSuccess  TransactionStatus = "success"
	StatusPending  TransactionStatus = "pending"
	StatusFailed   TransactionStatus = "failed"
	StatusRefunded TransactionStatus = "refunded"
)

var AllStatuses = []TransactionStatus{StatusSuccess, StatusPending, StatusFailed, StatusRefunded}

func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusSuccess, StatusPending, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

// ErrorMessageAbsent is the backend sentinel for "no error message".
const ErrorMessageAbsent = "NA"

type Transaction struct {
	ID                string            `json:"_id"`
	CollectID         string            `json:"collect_id"`
	SchoolID          string            `json:"school_id"`
	Gateway           string            `json:"gateway"`
	OrderAmount       decimal.Decimal   `json:"order_amount"`
	TransactionAmount decimal.Decimal   `json:"transaction_amount"`
	Status            TransactionStatus `json:"status"`
	CustomOrderID     string            `json:"custom_order_id"`
	PaymentTime       *time.Time        `json:"payment_time"`
	ErrorMessage      *string           `json:"error_message,omitempty"`
}

// HasError reports whether the record carries a real error message.
func (t Transaction) HasError() bool {
	if t.ErrorMessage == nil {
		return false
	}
	m := strings.TrimSpace(*t.ErrorMessage)
	return m != "" && m != ErrorMessageAbsent
}

// Pagination is the normalized pagination state of a list result.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// TransactionPage is the canonical list result every client returns.
type TransactionPage struct {
	Items      []Transaction `json:"items"`
	Pagination Pagination    `json:"pagination"`
}
