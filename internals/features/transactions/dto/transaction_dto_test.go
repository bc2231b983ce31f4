package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	txModel "schoolpay_dashboard/internals/features/transactions/model"
)

func TestParseListQuery_Defaults(t *testing.T) {
	st := ParseListQuery("")

	assert.Equal(t, 1, st.Page)
	assert.Equal(t, 10, st.Limit)
	assert.Equal(t, txModel.Filters{Sort: "payment_time", Order: "desc"}, st.Filters)
}

func TestParseListQuery_Full(t *testing.T) {
	st := ParseListQuery("page=3&limit=500&status=success&status=failed&status=&search=+ORD+&schoolId=A&schoolId=B&dateFrom=2024-01-01&dateTo=2024-01-31&sort=order_amount&order=ASC")

	assert.Equal(t, 3, st.Page)
	assert.Equal(t, 100, st.Limit)
	assert.Equal(t, []string{"success", "failed"}, st.Filters.Status)
	assert.Equal(t, "ORD", st.Filters.Search)
	assert.Equal(t, []string{"A", "B"}, st.Filters.SchoolIDs)
	assert.Equal(t, "2024-01-01", st.Filters.DateFrom)
	assert.Equal(t, "2024-01-31", st.Filters.DateTo)
	assert.Equal(t, "order_amount", st.Filters.Sort)
	assert.Equal(t, "asc", st.Filters.Order)
}

func TestParseListQuery_BadNumbers(t *testing.T) {
	st := ParseListQuery("page=-2&limit=abc&order=sideways")

	assert.Equal(t, 1, st.Page)
	assert.Equal(t, 10, st.Limit)
	assert.Equal(t, "desc", st.Filters.Order)
}

func TestParseSchoolQuery(t *testing.T) {
	st := ParseSchoolQuery("schoolId=SCH-1&schoolId=SCH-2&status=pending")

	assert.Equal(t, "SCH-1", st.SchoolID)
	assert.Nil(t, st.Filters.SchoolIDs)
	assert.Equal(t, []string{"pending"}, st.Filters.Status)

	assert.Empty(t, ParseSchoolQuery("").SchoolID)
}
