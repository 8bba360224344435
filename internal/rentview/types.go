package rentview

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the payment state of one billing cycle
type Status string

const (
	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
	StatusOverdue Status = "overdue"
)

// StatusOptions lists the statuses a row can be switched to, in display order
var StatusOptions = []Status{StatusPaid, StatusPending, StatusOverdue}

// ParseStatus validates a raw status string
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.TrimSpace(raw))
	switch s {
	case StatusPaid, StatusPending, StatusOverdue:
		return s, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, raw)
}

// MonthRecord is one billing cycle of a tenant
type MonthRecord struct {
	ID          string          `json:"uuid"`
	Amount      decimal.Decimal `json:"amount"`
	Status      Status          `json:"status"`
	DueDate     string          `json:"dueDate"`
	CGST        decimal.Decimal `json:"cgst"`
	SGST        decimal.Decimal `json:"sgst"`
	Maintenance decimal.Decimal `json:"maintenance"`
	TDS         decimal.Decimal `json:"tds"`
	Total       decimal.Decimal `json:"total"`
}

// HasDues reports whether the record carries an amount. A zero or missing
// previous-month record means "no previous dues".
func (m MonthRecord) HasDues() bool {
	return m.Amount.IsPositive()
}

var dueDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DuePeriod extracts the calendar year and month of the due date
func (m MonthRecord) DuePeriod() (year int, month int, ok bool) {
	raw := strings.TrimSpace(m.DueDate)
	if raw == "" {
		return 0, 0, false
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Year(), int(t.Month()), true
		}
	}
	return 0, 0, false
}

// CombinedRentItem is one tenant's rent row for a billing cycle
type CombinedRentItem struct {
	TenantID       string      `json:"tenantId"`
	TenantName     string      `json:"tenantName"`
	TenantEmail    string      `json:"tenantEmail"`
	Address        string      `json:"address"`
	Floor          string      `json:"floor"`
	CompanyName    string      `json:"companyName"`
	LeaseStartDate string      `json:"lease_start_date"`
	LeaseEndDate   string      `json:"lease_end_date"`
	CurrentMonth   MonthRecord `json:"currentMonth"`
	PreviousMonth  MonthRecord `json:"previousMonth"`
}

// TenantPatch is the edit payload sent when saving the view modal
type TenantPatch struct {
	Name        string          `json:"name"`
	Rent        decimal.Decimal `json:"rent"`
	Maintenance decimal.Decimal `json:"maintenance"`
	CGST        decimal.Decimal `json:"cgst"`
	SGST        decimal.Decimal `json:"sgst"`
	TDS         decimal.Decimal `json:"tds"`
	Total       decimal.Decimal `json:"total"`
}

// Receipt is a downloaded rent receipt
type Receipt struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Role is the caller's back-office role
type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleOther   Role = "other"
)

// ParseRole maps any unknown role to RoleOther
func ParseRole(raw string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleOwner:
		return RoleOwner
	case RoleManager:
		return RoleManager
	}
	return RoleOther
}

// CanChangeStatus reports whether the role may change a row's status
func (r Role) CanChangeStatus() bool {
	return r == RoleOwner || r == RoleManager
}

// CanDelete reports whether the role may enact a delete
func (r Role) CanDelete() bool {
	return r == RoleOwner || r == RoleManager
}

// CanOpenDeleteConfirm reports whether the role may open the delete confirmation
func (r Role) CanOpenDeleteConfirm() bool {
	return r == RoleOwner
}
