package rentview

import "fmt"

// DropdownKind distinguishes the two status badges of a row
type DropdownKind string

const (
	DropdownCurrent  DropdownKind = "current"
	DropdownPrevious DropdownKind = "previous"
)

// ParseDropdownKind validates a row dropdown kind
func ParseDropdownKind(raw string) (DropdownKind, error) {
	switch DropdownKind(raw) {
	case DropdownCurrent, DropdownPrevious:
		return DropdownKind(raw), nil
	}
	return "", fmt.Errorf("%w: unknown dropdown kind %q", ErrInvalidInput, raw)
}

// FilterDropdown names one of the filter bar dropdowns
type FilterDropdown string

const (
	FilterDropdownMonth  FilterDropdown = "month"
	FilterDropdownYear   FilterDropdown = "year"
	FilterDropdownStatus FilterDropdown = "status"
)

// ParseFilterDropdown validates a filter dropdown name
func ParseFilterDropdown(raw string) (FilterDropdown, error) {
	switch FilterDropdown(raw) {
	case FilterDropdownMonth, FilterDropdownYear, FilterDropdownStatus:
		return FilterDropdown(raw), nil
	}
	return "", fmt.Errorf("%w: unknown filter dropdown %q", ErrInvalidInput, raw)
}

// Anchor is the element a dropdown panel is positioned against
type Anchor struct {
	ElementID string `json:"element_id,omitempty"`
	Width     int    `json:"width,omitempty"`
}

// RowDropdown is an open status dropdown on a row
type RowDropdown struct {
	RowID  string       `json:"row_id"`
	Kind   DropdownKind `json:"kind"`
	Anchor Anchor       `json:"anchor"`
}

// RegionKind says where a pointer press landed
type RegionKind string

const (
	RegionNone           RegionKind = "none"
	RegionRowBadge       RegionKind = "row_badge"
	RegionRowPanel       RegionKind = "row_panel"
	RegionMonthDropdown  RegionKind = "month_dropdown"
	RegionYearDropdown   RegionKind = "year_dropdown"
	RegionStatusDropdown RegionKind = "status_dropdown"
)

// Region is the target of a pointer press
type Region struct {
	Kind  RegionKind `json:"kind"`
	RowID string     `json:"row_id,omitempty"`
}

// ParseRegion validates a click target
func ParseRegion(kind, rowID string) (Region, error) {
	switch RegionKind(kind) {
	case "", RegionNone:
		return Region{Kind: RegionNone}, nil
	case RegionRowBadge, RegionRowPanel:
		return Region{Kind: RegionKind(kind), RowID: rowID}, nil
	case RegionMonthDropdown, RegionYearDropdown, RegionStatusDropdown:
		return Region{Kind: RegionKind(kind)}, nil
	}
	return Region{}, fmt.Errorf("%w: unknown click region %q", ErrInvalidInput, kind)
}

// OverlayState tracks the open dropdowns. At most one row dropdown is open;
// the three filter dropdowns are independent of it and of each other.
type OverlayState struct {
	Row        *RowDropdown `json:"row,omitempty"`
	MonthOpen  bool         `json:"month_open"`
	YearOpen   bool         `json:"year_open"`
	StatusOpen bool         `json:"status_open"`
}

// ToggleRow handles a badge click: the same badge closes its dropdown, any
// other badge replaces the open one directly.
func (o OverlayState) ToggleRow(d RowDropdown) OverlayState {
	if o.Row != nil && o.Row.RowID == d.RowID && o.Row.Kind == d.Kind {
		o.Row = nil
		return o
	}
	o.Row = &d
	return o
}

// CloseRow closes the row dropdown
func (o OverlayState) CloseRow() OverlayState {
	o.Row = nil
	return o
}

// ToggleFilter opens or closes one filter dropdown
func (o OverlayState) ToggleFilter(k FilterDropdown) OverlayState {
	switch k {
	case FilterDropdownMonth:
		o.MonthOpen = !o.MonthOpen
	case FilterDropdownYear:
		o.YearOpen = !o.YearOpen
	case FilterDropdownStatus:
		o.StatusOpen = !o.StatusOpen
	}
	return o
}

// CloseFilter closes one filter dropdown
func (o OverlayState) CloseFilter(k FilterDropdown) OverlayState {
	switch k {
	case FilterDropdownMonth:
		o.MonthOpen = false
	case FilterDropdownYear:
		o.YearOpen = false
	case FilterDropdownStatus:
		o.StatusOpen = false
	}
	return o
}

// ClickOutside closes every open dropdown that does not contain the target
func (o OverlayState) ClickOutside(target Region) OverlayState {
	if o.MonthOpen && target.Kind != RegionMonthDropdown {
		o.MonthOpen = false
	}
	if o.YearOpen && target.Kind != RegionYearDropdown {
		o.YearOpen = false
	}
	if o.StatusOpen && target.Kind != RegionStatusDropdown {
		o.StatusOpen = false
	}
	if o.Row != nil {
		inside := (target.Kind == RegionRowBadge || target.Kind == RegionRowPanel) && target.RowID == o.Row.RowID
		if !inside {
			o.Row = nil
		}
	}
	return o
}

// Escape closes every dropdown at once
func (o OverlayState) Escape() OverlayState {
	return OverlayState{}
}

// AnyOpen reports whether any dropdown is open
func (o OverlayState) AnyOpen() bool {
	return o.Row != nil || o.MonthOpen || o.YearOpen || o.StatusOpen
}
