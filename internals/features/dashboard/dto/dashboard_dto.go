package dto

import (
	"github.com/shopspring/decimal"

	txModel "schoolpay_dashboard/internals/features/transactions/model"
)

const RecentLimit = 5

type Stats struct {
	Total       int64           `json:"total"`
	Success     int             `json:"success"`
	Pending     int             `json:"pending"`
	Failed      int             `json:"failed"`
	Revenue     decimal.Decimal `json:"revenue"`
	SuccessRate decimal.Decimal `json:"success_rate"`
	Schools     int             `json:"schools"`
}

type DashboardResponse struct {
	Stats  Stats                 `json:"stats"`
	Recent []txModel.Transaction `json:"recent_transactions"`
}

// BuildStats derives the summary from the most recent page. Total comes from
// the page's pagination; everything else is computed over the sample only.
func BuildStats(page txModel.TransactionPage, schools int) Stats {
	st := Stats{
		Total:       page.Pagination.Total,
		Revenue:     decimal.Zero,
		SuccessRate: decimal.Zero,
		Schools:     schools,
	}
	for _, t := range page.Items {
		switch t.Status {
		case txModel.StatusSuccess:
			st.Success++
			st.Revenue = st.Revenue.Add(t.TransactionAmount)
		case txModel.StatusPending:
			st.Pending++
		case txModel.StatusFailed:
			st.Failed++
		}
	}
	if n := len(page.Items); n > 0 {
		st.SuccessRate = decimal.NewFromInt(int64(st.Success)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(n))).
			Round(1)
	}
	return st
}
