package rentview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlayState_RowDropdownExclusive(t *testing.T) {
	var o OverlayState

	o = o.ToggleRow(RowDropdown{RowID: "r1", Kind: DropdownCurrent})
	require.NotNil(t, o.Row)
	assert.Equal(t, "r1", o.Row.RowID)

	o = o.ToggleRow(RowDropdown{RowID: "r2", Kind: DropdownPrevious})
	require.NotNil(t, o.Row)
	assert.Equal(t, "r2", o.Row.RowID)
	assert.Equal(t, DropdownPrevious, o.Row.Kind)

	o = o.ToggleRow(RowDropdown{RowID: "r2", Kind: DropdownCurrent})
	require.NotNil(t, o.Row)
	assert.Equal(t, DropdownCurrent, o.Row.Kind)

	o = o.ToggleRow(RowDropdown{RowID: "r2", Kind: DropdownCurrent})
	assert.Nil(t, o.Row)
}

func TestOverlayState_FilterDropdownsIndependent(t *testing.T) {
	o := OverlayState{}.
		ToggleFilter(FilterDropdownMonth).
		ToggleFilter(FilterDropdownStatus).
		ToggleRow(RowDropdown{RowID: "r1", Kind: DropdownCurrent})

	assert.True(t, o.MonthOpen)
	assert.True(t, o.StatusOpen)
	assert.False(t, o.YearOpen)
	assert.NotNil(t, o.Row)

	o = o.ToggleFilter(FilterDropdownMonth)
	assert.False(t, o.MonthOpen)
	assert.True(t, o.StatusOpen)
}

func TestOverlayState_ClickOutside(t *testing.T) {
	open := OverlayState{
		Row:       &RowDropdown{RowID: "r1", Kind: DropdownCurrent},
		MonthOpen: true,
		YearOpen:  true,
	}

	inPanel := open.ClickOutside(Region{Kind: RegionRowPanel, RowID: "r1"})
	assert.NotNil(t, inPanel.Row)
	assert.False(t, inPanel.MonthOpen)
	assert.False(t, inPanel.YearOpen)

	inMonth := open.ClickOutside(Region{Kind: RegionMonthDropdown})
	assert.Nil(t, inMonth.Row)
	assert.True(t, inMonth.MonthOpen)
	assert.False(t, inMonth.YearOpen)

	otherRow := open.ClickOutside(Region{Kind: RegionRowBadge, RowID: "r2"})
	assert.Nil(t, otherRow.Row)

	nowhere := open.ClickOutside(Region{Kind: RegionNone})
	assert.False(t, nowhere.AnyOpen())
}

func TestOverlayState_EscapeClosesEverything(t *testing.T) {
	o := OverlayState{
		Row:        &RowDropdown{RowID: "r1", Kind: DropdownCurrent},
		MonthOpen:  true,
		YearOpen:   true,
		StatusOpen: true,
	}

	assert.True(t, o.AnyOpen())
	assert.False(t, o.Escape().AnyOpen())
}

func TestParseRegion(t *testing.T) {
	r, err := ParseRegion("", "")
	require.NoError(t, err)
	assert.Equal(t, RegionNone, r.Kind)

	r, err = ParseRegion("row_badge", "r9")
	require.NoError(t, err)
	assert.Equal(t, Region{Kind: RegionRowBadge, RowID: "r9"}, r)

	r, err = ParseRegion("year_dropdown", "ignored")
	require.NoError(t, err)
	assert.Empty(t, r.RowID)

	_, err = ParseRegion("sidebar", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
