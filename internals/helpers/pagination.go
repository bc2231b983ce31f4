package helper

const (
	DefaultPage     = 1
	DefaultPerPage  = 10
	MaxPerPage      = 100
	MaxVisiblePages = 5
)

// TotalPages returns ceil(total/limit) with a floor of 1.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		limit = DefaultPerPage
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// ClampPage pulls page into [1, pages].
func ClampPage(page, pages int) int {
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		return 1
	}
	if page > pages {
		return pages
	}
	return page
}

// SliceBounds returns the [start, end) window of a clamped page over total items.
func SliceBounds(total, page, limit int) (start, end int) {
	start = (page - 1) * limit
	if start > total {
		start = total
	}
	end = start + limit
	if end > total {
		end = total
	}
	return start, end
}

// NormalizeLimit keeps a requested page size inside [1, MaxPerPage].
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultPerPage
	}
	if limit > MaxPerPage {
		return MaxPerPage
	}
	return limit
}

// PageWindow returns up to MaxVisiblePages page numbers centred on current,
// shifted left when the window would run past the last page.
func PageWindow(current, totalPages int) []int {
	if totalPages < 1 {
		return []int{}
	}
	start := current - MaxVisiblePages/2
	if start < 1 {
		start = 1
	}
	end := start + MaxVisiblePages - 1
	if end > totalPages {
		end = totalPages
	}
	if end-start+1 < MaxVisiblePages {
		start = end - MaxVisiblePages + 1
		if start < 1 {
			start = 1
		}
	}
	out := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}
