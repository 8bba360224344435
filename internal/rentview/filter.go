package rentview

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// AllStatus disables the status filter
	AllStatus = "All Status"
	// AllMonths disables the month filter
	AllMonths = "all"
)

// StatusFilterOptions lists the values accepted by the status filter
var StatusFilterOptions = []string{AllStatus, string(StatusPaid), string(StatusPending), string(StatusOverdue)}

// FilterState holds the four independent filter dimensions
type FilterState struct {
	SearchTerm   string `json:"search_term"`
	StatusFilter string `json:"status_filter"`
	MonthFilter  string `json:"month_filter"`
	YearFilter   string `json:"year_filter"`
}

// DefaultFilters returns the filter state of a freshly mounted screen
func DefaultFilters(now time.Time) FilterState {
	return FilterState{
		SearchTerm:   "",
		StatusFilter: AllStatus,
		MonthFilter:  AllMonths,
		YearFilter:   strconv.Itoa(now.Year()),
	}
}

// FetchKey identifies the period a dataset was fetched for
type FetchKey struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// FetchKey derives the period to fetch: the month filter's month when one is
// selected, the current month otherwise, and always the year filter's year.
func (f FilterState) FetchKey(now time.Time) FetchKey {
	key := FetchKey{Month: int(now.Month()), Year: now.Year()}
	if _, m, all, err := ParseMonthFilter(f.MonthFilter); err == nil && !all {
		key.Month = m
	}
	if y, err := strconv.Atoi(f.YearFilter); err == nil {
		key.Year = y
	}
	return key
}

// ParseStatusFilter validates a status filter value
func ParseStatusFilter(raw string) (string, error) {
	if raw == AllStatus {
		return raw, nil
	}
	s, err := ParseStatus(raw)
	if err != nil {
		return "", err
	}
	return string(s), nil
}

// ParseMonthFilter parses "all" or "YYYY-MM" into integers
func ParseMonthFilter(raw string) (year int, month int, all bool, err error) {
	if raw == AllMonths {
		return 0, 0, true, nil
	}
	parts := strings.Split(raw, "-")
	if len(parts) != 2 {
		return 0, 0, false, fmt.Errorf("%w: month filter %q must be \"all\" or YYYY-MM", ErrInvalidInput, raw)
	}
	year, yerr := strconv.Atoi(parts[0])
	month, merr := strconv.Atoi(parts[1])
	if yerr != nil || merr != nil || month < 1 || month > 12 || year < 1 {
		return 0, 0, false, fmt.Errorf("%w: month filter %q must be \"all\" or YYYY-MM", ErrInvalidInput, raw)
	}
	return year, month, false, nil
}

// ParseYearFilter validates a year filter value
func ParseYearFilter(raw string) (string, error) {
	y, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || y < 1000 || y > 9999 {
		return "", fmt.Errorf("%w: year filter %q must be a four digit year", ErrInvalidInput, raw)
	}
	return strconv.Itoa(y), nil
}

// MonthOption is one entry of the month dropdown
type MonthOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Month int    `json:"month,omitempty"`
	Year  int    `json:"year,omitempty"`
}

// MonthOptions returns "All Months" followed by the twelve months from two
// months before now to nine months after.
func MonthOptions(now time.Time) []MonthOption {
	options := []MonthOption{{Name: "All Months", Value: AllMonths}}
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := -2; i <= 9; i++ {
		d := first.AddDate(0, i, 0)
		options = append(options, MonthOption{
			Name:  fmt.Sprintf("%s %d", d.Month().String(), d.Year()),
			Value: fmt.Sprintf("%d-%02d", d.Year(), int(d.Month())),
			Month: int(d.Month()),
			Year:  d.Year(),
		})
	}
	return options
}

// MonthOptionsForYear keeps "All Months" and the months of the selected year,
// so a month from another year cannot be picked.
func MonthOptionsForYear(now time.Time, yearFilter string) []MonthOption {
	year, err := strconv.Atoi(yearFilter)
	all := MonthOptions(now)
	filtered := make([]MonthOption, 0, len(all))
	for _, opt := range all {
		if opt.Value == AllMonths || (err == nil && opt.Year == year) {
			filtered = append(filtered, opt)
		}
	}
	return filtered
}

// YearOptions returns the current year ±2, newest first
func YearOptions(now time.Time) []int {
	years := make([]int, 0, 5)
	for i := 2; i >= -2; i-- {
		years = append(years, now.Year()+i)
	}
	return years
}
