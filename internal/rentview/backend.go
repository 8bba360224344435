package rentview

import (
	"context"
	"time"
)

// Backend is the remote API the screen consumes. Implementations classify
// failures with NewNetworkError, NewValidationError and NewNotFoundError.
type Backend interface {
	FetchDataset(ctx context.Context, month, year int) ([]CombinedRentItem, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	DeleteRecord(ctx context.Context, id string) error
	SaveTenantEdits(ctx context.Context, tenantID string, patch TenantPatch) error
	DownloadReceipt(ctx context.Context, id string, year, month int) ([]byte, error)
	RefreshDashboardSummary(ctx context.Context) error
}

// ActionRecorder observes action outcomes, e.g. for metrics
type ActionRecorder interface {
	ObserveAction(action, outcome string)
	ObserveFetch(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveAction(string, string) {}
func (nopRecorder) ObserveFetch(string)          {}

// NotificationLevel is the severity of a user-visible notification
type NotificationLevel string

const (
	NotifySuccess NotificationLevel = "success"
	NotifyError   NotificationLevel = "error"
)

// Notification is a toast shown to the user
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
	At      time.Time         `json:"at"`
}

// InFlightOps are the per-action loading markers. They are independent of
// each other and are always cleared when their action resolves.
type InFlightOps struct {
	DownloadingID string `json:"downloading_id,omitempty"`
	UpdatingID    string `json:"updating_id,omitempty"`
	IsDeleting    bool   `json:"is_deleting"`
	IsSaving      bool   `json:"is_saving"`
}
