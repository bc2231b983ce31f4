package dto

import (
	"net/url"
	"strconv"
	"strings"

	"schoolpay_dashboard/internals/constants"
	txModel "schoolpay_dashboard/internals/features/transactions/model"
	helper "schoolpay_dashboard/internals/helpers"
	"schoolpay_dashboard/internals/services/querysync"
)

// ParseListQuery reads list view state from a raw query string. Unparseable
// or missing numbers fall back to the defaults; status and schoolId may
// repeat.
func ParseListQuery(raw string) querysync.URLState {
	q, _ := url.ParseQuery(raw)

	st := querysync.URLState{
		Page:  positiveInt(q.Get("page"), constants.DefaultPage),
		Limit: helper.NormalizeLimit(positiveInt(q.Get("limit"), constants.DefaultLimit)),
		Filters: txModel.Filters{
			Search:    strings.TrimSpace(q.Get("search")),
			Status:    nonBlank(q["status"]),
			DateFrom:  strings.TrimSpace(q.Get("dateFrom")),
			DateTo:    strings.TrimSpace(q.Get("dateTo")),
			SchoolIDs: nonBlank(q["schoolId"]),
			Sort:      strings.TrimSpace(q.Get("sort")),
			Order:     strings.ToLower(strings.TrimSpace(q.Get("order"))),
		},
	}
	if st.Filters.Sort == "" {
		st.Filters.Sort = constants.DefaultSort
	}
	if st.Filters.Order != "asc" && st.Filters.Order != "desc" {
		st.Filters.Order = constants.DefaultOrder
	}
	return st
}

// ParseSchoolQuery is ParseListQuery for the scoped view: the first schoolId
// selects the school and is not a filter.
func ParseSchoolQuery(raw string) querysync.URLState {
	st := ParseListQuery(raw)
	if len(st.Filters.SchoolIDs) > 0 {
		st.SchoolID = st.Filters.SchoolIDs[0]
	}
	st.Filters.SchoolIDs = nil
	return st
}

func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}

func nonBlank(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// ListIncludes is the view state sent next to a list page.
type ListIncludes struct {
	Loading  bool            `json:"loading"`
	Error    string          `json:"error,omitempty"`
	Filters  txModel.Filters `json:"filters"`
	SchoolID string          `json:"school_id,omitempty"`
}

// ListPagination converts view pagination into the response envelope.
func ListPagination(st querysync.State) helper.Pagination {
	p := st.Pagination
	return helper.BuildPagination(p.Page, p.Limit, p.Total, p.Pages, len(st.Items))
}
