package rentview

import (
	"strings"
)

// DefaultRowsPerPage is the page size of a freshly mounted screen
const DefaultRowsPerPage = 5

// RowsPerPageOptions lists the accepted page sizes
var RowsPerPageOptions = []int{5, 10, 15, 20, 25}

// ValidRowsPerPage reports whether n is an accepted page size
func ValidRowsPerPage(n int) bool {
	for _, opt := range RowsPerPageOptions {
		if opt == n {
			return true
		}
	}
	return false
}

// Projection is the filtered, paginated view of a dataset
type Projection struct {
	Items       []CombinedRentItem `json:"items"`
	TotalItems  int                `json:"total_items"`
	TotalPages  int                `json:"total_pages"`
	Page        int                `json:"page"`
	RowsPerPage int                `json:"rows_per_page"`
	// RangeStart and RangeEnd are the 1-based bounds shown as "Showing X to Y of Z".
	RangeStart int  `json:"range_start"`
	RangeEnd   int  `json:"range_end"`
	NoData     bool `json:"no_data"`
}

// Project filters the dataset and cuts out the requested page. It never sorts
// and never mutates its input.
func Project(dataset []CombinedRentItem, filters FilterState, page, rowsPerPage int) Projection {
	if rowsPerPage < 1 {
		rowsPerPage = DefaultRowsPerPage
	}
	if page < 1 {
		page = 1
	}

	matched := Filter(dataset, filters)
	total := len(matched)
	totalPages := (total + rowsPerPage - 1) / rowsPerPage

	start := (page - 1) * rowsPerPage
	end := start + rowsPerPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := make([]CombinedRentItem, end-start)
	copy(items, matched[start:end])

	p := Projection{
		Items:       items,
		TotalItems:  total,
		TotalPages:  totalPages,
		Page:        page,
		RowsPerPage: rowsPerPage,
		NoData:      total == 0,
	}
	if end > start {
		p.RangeStart = start + 1
		p.RangeEnd = end
	}
	return p
}

// Filter returns the items matching every filter predicate, in input order
func Filter(dataset []CombinedRentItem, filters FilterState) []CombinedRentItem {
	term := strings.ToLower(filters.SearchTerm)

	filterYear, filterMonth, allMonths, err := ParseMonthFilter(filters.MonthFilter)
	if err != nil {
		// An unparseable month filter matches nothing rather than everything.
		allMonths = false
		filterYear, filterMonth = -1, -1
	}

	matched := make([]CombinedRentItem, 0, len(dataset))
	for _, item := range dataset {
		if term != "" && !strings.Contains(strings.ToLower(item.TenantName), term) {
			continue
		}
		if filters.StatusFilter != AllStatus && string(item.CurrentMonth.Status) != filters.StatusFilter {
			continue
		}
		if !allMonths {
			y, m, ok := item.CurrentMonth.DuePeriod()
			if !ok || y != filterYear || m != filterMonth {
				continue
			}
		}
		matched = append(matched, item)
	}
	return matched
}

// ClampPage keeps page inside [1, totalPages], or at 1 when there is nothing to show
func ClampPage(page, totalItems, rowsPerPage int) int {
	if page < 1 || totalItems <= 0 || rowsPerPage < 1 {
		return 1
	}
	totalPages := (totalItems + rowsPerPage - 1) / rowsPerPage
	if page > totalPages {
		return totalPages
	}
	return page
}

// PageLink is one entry of the pager: a page number or an ellipsis
type PageLink struct {
	Page     int  `json:"page"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

// PageLinks renders the pager: first and last page, the neighbours of the
// current page, and an ellipsis two pages away from it.
func PageLinks(current, totalPages int) []PageLink {
	links := make([]PageLink, 0, 7)
	for page := 1; page <= totalPages; page++ {
		switch {
		case page == 1 || page == totalPages || (page >= current-1 && page <= current+1):
			links = append(links, PageLink{Page: page, Current: page == current})
		case page == current-2 || page == current+2:
			links = append(links, PageLink{Page: page, Ellipsis: true})
		}
	}
	return links
}
