package model

import "strings"

// Filters is the filter state a list view owns and mirrors into the URL.
// Blank fields mean "no filter".
type Filters struct {
	Search    string   `json:"search,omitempty"`
	Status    []string `json:"status,omitempty"`
	DateFrom  string   `json:"dateFrom,omitempty"`
	DateTo    string   `json:"dateTo,omitempty"`
	SchoolIDs []string `json:"schoolId,omitempty"`
	Sort      string   `json:"sort,omitempty"`
	Order     string   `json:"order,omitempty"`
}

// Params flattens the filters into request parameters. Blank values are kept
// here; the API client drops them.
func (f Filters) Params() map[string]any {
	return map[string]any{
		"search":   f.Search,
		"status":   f.Status,
		"dateFrom": f.DateFrom,
		"dateTo":   f.DateTo,
		"schoolId": f.SchoolIDs,
		"sort":     f.Sort,
		"order":    f.Order,
	}
}

// IsEmpty reports whether no filter term is active. Sort and order are not
// filter terms.
func (f Filters) IsEmpty() bool {
	if strings.TrimSpace(f.Search) != "" || strings.TrimSpace(f.DateFrom) != "" || strings.TrimSpace(f.DateTo) != "" {
		return false
	}
	for _, s := range f.Status {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	for _, s := range f.SchoolIDs {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}
