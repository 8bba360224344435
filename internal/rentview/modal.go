package rentview

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ModalPhase is the state of the view/edit and delete-confirmation modals
type ModalPhase string

const (
	ModalClosed        ModalPhase = "closed"
	ModalViewing       ModalPhase = "viewing"
	ModalEditing       ModalPhase = "editing"
	ModalDeleteConfirm ModalPhase = "delete_confirm"
)

// EditableRentData is the editable snapshot shown in the view modal
type EditableRentData struct {
	FullName    string          `json:"full_name"`
	Rent        decimal.Decimal `json:"rent"`
	Maintenance decimal.Decimal `json:"maintenance"`
	CGST        decimal.Decimal `json:"cgst"`
	SGST        decimal.Decimal `json:"sgst"`
	TDS         decimal.Decimal `json:"tds"`
	Total       decimal.Decimal `json:"total"`
}

// CarryOverCharge implements partial-record carry-over: a charge missing or
// zero on the current cycle takes the previous cycle's value.
func CarryOverCharge(current, previous decimal.Decimal) decimal.Decimal {
	if current.IsZero() {
		return previous
	}
	return current
}

// EditableFromRecord builds the modal snapshot of a row. Rent never falls
// back; maintenance, cgst, sgst, tds and total carry over from the previous cycle.
func EditableFromRecord(item CombinedRentItem) EditableRentData {
	cur, prev := item.CurrentMonth, item.PreviousMonth
	return EditableRentData{
		FullName:    item.TenantName,
		Rent:        cur.Amount,
		Maintenance: CarryOverCharge(cur.Maintenance, prev.Maintenance),
		CGST:        CarryOverCharge(cur.CGST, prev.CGST),
		SGST:        CarryOverCharge(cur.SGST, prev.SGST),
		TDS:         CarryOverCharge(cur.TDS, prev.TDS),
		Total:       CarryOverCharge(cur.Total, prev.Total),
	}
}

// Patch converts the snapshot into the save payload
func (d EditableRentData) Patch() TenantPatch {
	return TenantPatch{
		Name:        d.FullName,
		Rent:        d.Rent,
		Maintenance: d.Maintenance,
		CGST:        d.CGST,
		SGST:        d.SGST,
		TDS:         d.TDS,
		Total:       d.Total,
	}
}

// ModalState is the view/edit/delete modal machine
type ModalState struct {
	Phase      ModalPhase        `json:"phase"`
	Selected   *CombinedRentItem `json:"selected,omitempty"`
	Draft      *EditableRentData `json:"draft,omitempty"`
	DeletingID string            `json:"deleting_id,omitempty"`
}

// ClosedModal is the initial modal state
func ClosedModal() ModalState {
	return ModalState{Phase: ModalClosed}
}

// IsOpen reports whether any modal occludes the screen
func (m ModalState) IsOpen() bool {
	return m.Phase != ModalClosed && m.Phase != ""
}

// Open moves to Viewing with a fresh snapshot of item
func (m ModalState) Open(item CombinedRentItem) ModalState {
	draft := EditableFromRecord(item)
	return ModalState{Phase: ModalViewing, Selected: &item, Draft: &draft}
}

// BeginEdit moves Viewing to Editing without touching the data
func (m ModalState) BeginEdit() (ModalState, error) {
	if m.Phase != ModalViewing {
		return m, fmt.Errorf("%w: edit from %s", ErrInvalidTransition, m.Phase)
	}
	m.Phase = ModalEditing
	return m, nil
}

// CancelEdit returns to Viewing and rebuilds the snapshot from the selected
// record, never from the draft.
func (m ModalState) CancelEdit() (ModalState, error) {
	if m.Phase != ModalEditing || m.Selected == nil {
		return m, fmt.Errorf("%w: cancel edit from %s", ErrInvalidTransition, m.Phase)
	}
	draft := EditableFromRecord(*m.Selected)
	m.Phase = ModalViewing
	m.Draft = &draft
	return m, nil
}

// SetDraft replaces the draft while editing
func (m ModalState) SetDraft(d EditableRentData) (ModalState, error) {
	if m.Phase != ModalEditing {
		return m, fmt.Errorf("%w: draft update from %s", ErrInvalidTransition, m.Phase)
	}
	m.Draft = &d
	return m, nil
}

// Saved moves Editing back to Viewing after a successful save
func (m ModalState) Saved() ModalState {
	if m.Phase == ModalEditing {
		m.Phase = ModalViewing
	}
	return m
}

// Close dismisses the view/edit modal
func (m ModalState) Close() (ModalState, error) {
	if m.Phase != ModalViewing && m.Phase != ModalEditing {
		return m, fmt.Errorf("%w: close from %s", ErrInvalidTransition, m.Phase)
	}
	return ClosedModal(), nil
}

// OpenDeleteConfirm closes the view modal and opens the confirmation for the
// selected row's current cycle. Cancelling later does not bring the view back.
func (m ModalState) OpenDeleteConfirm() (ModalState, error) {
	if (m.Phase != ModalViewing && m.Phase != ModalEditing) || m.Selected == nil {
		return m, fmt.Errorf("%w: delete from %s", ErrInvalidTransition, m.Phase)
	}
	return ModalState{Phase: ModalDeleteConfirm, DeletingID: m.Selected.CurrentMonth.ID}, nil
}

// CancelDelete dismisses the confirmation and lands on Closed
func (m ModalState) CancelDelete() (ModalState, error) {
	if m.Phase != ModalDeleteConfirm {
		return m, fmt.Errorf("%w: cancel delete from %s", ErrInvalidTransition, m.Phase)
	}
	return ClosedModal(), nil
}
