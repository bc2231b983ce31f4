package api

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	txModel "schoolpay_dashboard/internals/features/transactions/model"
	helper "schoolpay_dashboard/internals/helpers"
)

const (
	mockListBatch   = 25
	mockSchoolBatch = 20
	mockStatusBatch = 30
)

var (
	mockStatuses = []txModel.TransactionStatus{txModel.StatusSuccess, txModel.StatusPending, txModel.StatusFailed}
	mockGateways = []string{"Razorpay", "Stripe", "Cashfree"}
)

// GenerateTransactions builds count deterministic records relative to now.
// Every third record (i%3 == 1) has no payment time.
func GenerateTransactions(count int, now time.Time) []txModel.Transaction {
	out := make([]txModel.Transaction, 0, count)
	for i := 0; i < count; i++ {
		amount := decimal.NewFromInt(int64(1000 + (i%5)*250))
		status := mockStatuses[i%3]

		var paidAt *time.Time
		if i%3 != 1 {
			t := now.AddDate(0, 0, -i)
			paidAt = &t
		}

		out = append(out, txModel.Transaction{
			ID:                fmt.Sprintf("txn_%d", i+1),
			CollectID:         fmt.Sprintf("COLLECT_%d", 1000+i),
			SchoolID:          fmt.Sprintf("SCHOOL_%d", 100+i),
			Gateway:           mockGateways[i%3],
			OrderAmount:       amount,
			TransactionAmount: amount,
			Status:            status,
			CustomOrderID:     fmt.Sprintf("ORD-%d", 202400+i),
			PaymentTime:       paidAt,
		})
	}
	return out
}

// Paginate slices items for page/limit. Pages never drop below 1 and the
// page is clamped into range, so an out-of-range page yields the last one.
func Paginate(items []txModel.Transaction, page, limit int) txModel.TransactionPage {
	if limit <= 0 {
		limit = helper.DefaultPerPage
	}
	total := len(items)
	pages := helper.TotalPages(int64(total), limit)
	page = helper.ClampPage(page, pages)
	start, end := helper.SliceBounds(total, page, limit)

	slice := make([]txModel.Transaction, end-start)
	copy(slice, items[start:end])
	return txModel.TransactionPage{
		Items: slice,
		Pagination: txModel.Pagination{
			Page:  page,
			Limit: limit,
			Total: int64(total),
			Pages: pages,
		},
	}
}

type mockQuery struct {
	page     int
	limit    int
	search   string
	statuses map[string]struct{}
	from     *time.Time
	to       *time.Time
	sort     string
	order    string
}

func parseMockQuery(q url.Values) mockQuery {
	mq := mockQuery{
		page:   intParam(q, "page", helper.DefaultPage),
		limit:  intParam(q, "limit", helper.DefaultPerPage),
		search: strings.ToLower(strings.TrimSpace(q.Get("search"))),
		sort:   strings.TrimSpace(q.Get("sort")),
		order:  strings.ToLower(strings.TrimSpace(q.Get("order"))),
	}
	for _, s := range q["status"] {
		// a comma-joined value is accepted as a set too
		for _, part := range strings.Split(s, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part == "" {
				continue
			}
			if mq.statuses == nil {
				mq.statuses = map[string]struct{}{}
			}
			mq.statuses[part] = struct{}{}
		}
	}
	if t, ok := parseDay(q.Get("dateFrom")); ok {
		mq.from = &t
	}
	if t, ok := parseDay(q.Get("dateTo")); ok {
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		mq.to = &end
	}
	return mq
}

// parseDay reads a YYYY-MM-DD or RFC 3339 value and truncates it to the day.
func parseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func (mq mockQuery) keep(t txModel.Transaction, searchSchool bool) bool {
	if mq.statuses != nil {
		if _, ok := mq.statuses[string(t.Status)]; !ok {
			return false
		}
	}
	if mq.search != "" {
		hit := strings.Contains(strings.ToLower(t.CustomOrderID), mq.search) ||
			strings.Contains(strings.ToLower(t.CollectID), mq.search)
		if searchSchool && !hit {
			hit = strings.Contains(strings.ToLower(t.SchoolID), mq.search)
		}
		if !hit {
			return false
		}
	}
	if mq.from != nil || mq.to != nil {
		if t.PaymentTime == nil {
			return false
		}
		at := t.PaymentTime.UTC()
		if mq.from != nil && at.Before(*mq.from) {
			return false
		}
		if mq.to != nil && at.After(*mq.to) {
			return false
		}
	}
	return true
}

func (mq mockQuery) apply(items []txModel.Transaction, searchSchool bool) []txModel.Transaction {
	out := make([]txModel.Transaction, 0, len(items))
	for _, t := range items {
		if mq.keep(t, searchSchool) {
			out = append(out, t)
		}
	}
	if mq.sort != "" {
		sortTransactions(out, mq.sort, mq.order == "desc")
	}
	return out
}

// sortTransactions orders items by field. Unknown fields leave the order as
// is; records without a payment time always sort last.
func sortTransactions(items []txModel.Transaction, field string, desc bool) {
	var less func(a, b txModel.Transaction) bool
	switch field {
	case "payment_time", "createdAt":
		sort.SliceStable(items, func(i, j int) bool {
			a, b := items[i].PaymentTime, items[j].PaymentTime
			if a == nil || b == nil {
				return a != nil && b == nil
			}
			if desc {
				return a.After(*b)
			}
			return a.Before(*b)
		})
		return
	case "order_amount":
		less = func(a, b txModel.Transaction) bool { return a.OrderAmount.LessThan(b.OrderAmount) }
	case "transaction_amount":
		less = func(a, b txModel.Transaction) bool { return a.TransactionAmount.LessThan(b.TransactionAmount) }
	case "status":
		less = func(a, b txModel.Transaction) bool { return a.Status < b.Status }
	case "gateway":
		less = func(a, b txModel.Transaction) bool { return a.Gateway < b.Gateway }
	case "school_id":
		less = func(a, b txModel.Transaction) bool { return a.SchoolID < b.SchoolID }
	case "custom_order_id":
		less = func(a, b txModel.Transaction) bool { return a.CustomOrderID < b.CustomOrderID }
	case "collect_id":
		less = func(a, b txModel.Transaction) bool { return a.CollectID < b.CollectID }
	default:
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}
