package rentview

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"rent-bo-svc/pkg/logger"
)

// User-visible notification texts
const (
	MsgFetchFailed   = "Failed to fetch rent data"
	MsgStatusUpdated = "Status updated successfully!"
	MsgStatusFailed  = "Failed to update status. Please try again."
	MsgDeleted       = "Rent deleted successfully!"
	MsgDeleteFailed  = "Failed to delete rent record. Please try again."
	MsgSaved         = "Changes saved successfully!"
	MsgSaveFailed    = "Failed to save changes. Please try again."
	MsgDownloaded    = "File downloaded successfully"
	MsgDownloadFail  = "Failed to download"
)

// Action names reported to the ActionRecorder
const (
	ActionFetch        = "fetch"
	ActionUpdateStatus = "update_status"
	ActionDelete       = "delete"
	ActionSave         = "save"
	ActionDownload     = "download"
	ActionOverlay      = "overlay"
	ActionModal        = "modal"
)

// Outcomes reported to the ActionRecorder
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeRefused = "refused"
)

const maxPendingNotifications = 50

// Options configures a Screen
type Options struct {
	Backend     Backend
	Logger      *logger.Logger
	LogFields   map[string]interface{}
	Recorder    ActionRecorder
	Now         func() time.Time
	RowsPerPage int
}

// Screen is one mounted rent-listing screen. Every event runs under a single
// mutex; collaborator calls run with the lock released.
type Screen struct {
	mu       sync.Mutex
	backend  Backend
	log      *logrus.Entry
	recorder ActionRecorder
	now      func() time.Time

	dataset      []CombinedRentItem
	loaded       bool
	loadedKey    FetchKey
	requestedKey FetchKey
	fetchSeq     uint64
	loading      bool

	filters     FilterState
	page        int
	rowsPerPage int

	overlay       OverlayState
	modal         ModalState
	inflight      InFlightOps
	notifications []Notification
	closed        bool
}

// NewScreen builds an unmounted screen with default filters
func NewScreen(opts Options) *Screen {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNopLogger()
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	if !ValidRowsPerPage(opts.RowsPerPage) {
		opts.RowsPerPage = DefaultRowsPerPage
	}
	return &Screen{
		backend:     opts.Backend,
		log:         opts.Logger.WithFields(opts.LogFields),
		recorder:    opts.Recorder,
		now:         opts.Now,
		filters:     DefaultFilters(opts.Now()),
		page:        1,
		rowsPerPage: opts.RowsPerPage,
		modal:       ClosedModal(),
	}
}

// Mount performs the initial fetch for the default period
func (s *Screen) Mount(ctx context.Context) error {
	s.mu.Lock()
	key := s.filters.FetchKey(s.now())
	s.mu.Unlock()
	return s.fetch(ctx, key)
}

// Close tears the screen down. Results arriving afterwards are dropped.
func (s *Screen) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Closed reports whether the screen was torn down
func (s *Screen) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Refresh refetches the currently selected period
func (s *Screen) Refresh(ctx context.Context) error {
	var key FetchKey
	if err := s.locked(func() error {
		key = s.filters.FetchKey(s.now())
		return nil
	}); err != nil {
		return err
	}
	return s.fetch(ctx, key)
}

// fetch replaces the dataset with the backend's rows for key. Only the most
// recently issued fetch may apply its result.
func (s *Screen) fetch(ctx context.Context, key FetchKey) error {
	var seq uint64
	if err := s.locked(func() error {
		s.fetchSeq++
		seq = s.fetchSeq
		s.requestedKey = key
		s.loading = true
		return nil
	}); err != nil {
		return err
	}

	items, err := s.backend.FetchDataset(ctx, key.Month, key.Year)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || seq != s.fetchSeq {
		return nil
	}
	s.loading = false
	if err != nil {
		s.requestedKey = s.loadedKey
		s.notifyLocked(NotifyError, MsgFetchFailed)
		s.recorder.ObserveFetch(OutcomeFailure)
		s.log.WithError(err).WithFields(map[string]interface{}{
			"month": key.Month,
			"year":  key.Year,
		}).Error("Failed to fetch rent data")
		return err
	}

	s.dataset = items
	s.loaded = true
	s.loadedKey = key
	s.reconcileLocked()
	s.recorder.ObserveFetch(OutcomeSuccess)
	s.log.WithFields(map[string]interface{}{
		"month": key.Month,
		"year":  key.Year,
		"rows":  len(items),
	}).Info("Rent data fetched")
	return nil
}

// SetSearch replaces the search term
func (s *Screen) SetSearch(term string) error {
	return s.locked(func() error {
		if s.filters.SearchTerm == term {
			return nil
		}
		s.filters.SearchTerm = term
		s.filtersChangedLocked()
		return nil
	})
}

// ResetSearch clears only the search term
func (s *Screen) ResetSearch() error {
	return s.SetSearch("")
}

// SetStatusFilter replaces the status filter
func (s *Screen) SetStatusFilter(raw string) error {
	value, err := ParseStatusFilter(raw)
	if err != nil {
		return err
	}
	return s.locked(func() error {
		s.overlay = s.overlay.CloseFilter(FilterDropdownStatus)
		if s.filters.StatusFilter == value {
			return nil
		}
		s.filters.StatusFilter = value
		s.filtersChangedLocked()
		return nil
	})
}

// SetMonthFilter replaces the month filter and refetches if the period changed
func (s *Screen) SetMonthFilter(ctx context.Context, raw string) error {
	if _, _, _, err := ParseMonthFilter(raw); err != nil {
		return err
	}
	return s.changePeriod(ctx, func() bool {
		s.overlay = s.overlay.CloseFilter(FilterDropdownMonth)
		if s.filters.MonthFilter == raw {
			return false
		}
		s.filters.MonthFilter = raw
		return true
	})
}

// SetYearFilter replaces the year filter and refetches if the period changed
func (s *Screen) SetYearFilter(ctx context.Context, raw string) error {
	value, err := ParseYearFilter(raw)
	if err != nil {
		return err
	}
	return s.changePeriod(ctx, func() bool {
		s.overlay = s.overlay.CloseFilter(FilterDropdownYear)
		if s.filters.YearFilter == value {
			return false
		}
		s.filters.YearFilter = value
		return true
	})
}

// ResetFilters restores all four filters in one transition
func (s *Screen) ResetFilters(ctx context.Context) error {
	return s.changePeriod(ctx, func() bool {
		defaults := DefaultFilters(s.now())
		if s.filters == defaults {
			return false
		}
		s.filters = defaults
		return true
	})
}

// changePeriod applies a filter mutation and fetches when the derived
// period differs from the last requested one.
func (s *Screen) changePeriod(ctx context.Context, mutate func() bool) error {
	var (
		key     FetchKey
		refetch bool
	)
	if err := s.locked(func() error {
		if !mutate() {
			return nil
		}
		s.filtersChangedLocked()
		key = s.filters.FetchKey(s.now())
		refetch = key != s.requestedKey
		return nil
	}); err != nil {
		return err
	}
	if !refetch {
		return nil
	}
	return s.fetch(ctx, key)
}

// SetPage moves to a page, clamped to the available pages
func (s *Screen) SetPage(page int) error {
	return s.locked(func() error {
		total := len(Filter(s.dataset, s.filters))
		s.page = ClampPage(page, total, s.rowsPerPage)
		s.reconcileLocked()
		return nil
	})
}

// SetRowsPerPage changes the page size and returns to the first page
func (s *Screen) SetRowsPerPage(n int) error {
	if !ValidRowsPerPage(n) {
		return fmt.Errorf("%w: rows per page must be one of %v", ErrInvalidInput, RowsPerPageOptions)
	}
	return s.locked(func() error {
		s.rowsPerPage = n
		s.page = 1
		s.reconcileLocked()
		return nil
	})
}

// OpenRowDropdown handles a click on a row's status badge
func (s *Screen) OpenRowDropdown(role Role, d RowDropdown) error {
	err := s.locked(func() error {
		if s.modal.IsOpen() {
			return ErrOverlayBlocked
		}
		row, err := s.rowOnPageLocked(d.RowID)
		if err != nil {
			return err
		}
		rec := row.CurrentMonth
		if d.Kind == DropdownPrevious {
			if !role.CanChangeStatus() {
				return fmt.Errorf("%w: %s cannot change previous dues", ErrForbidden, role)
			}
			if !row.PreviousMonth.HasDues() {
				return fmt.Errorf("%w: no previous dues", ErrInvalidTransition)
			}
			rec = row.PreviousMonth
		}
		if s.inflight.UpdatingID != "" && s.inflight.UpdatingID == rec.ID {
			return fmt.Errorf("%w: status update for %s", ErrInFlight, rec.ID)
		}
		s.overlay = s.overlay.ToggleRow(d)
		return nil
	})
	if err != nil {
		return s.refuse(ActionOverlay, err)
	}
	return nil
}

// ToggleFilterDropdown opens or closes a filter dropdown
func (s *Screen) ToggleFilterDropdown(k FilterDropdown) error {
	err := s.locked(func() error {
		if s.modal.IsOpen() {
			return ErrOverlayBlocked
		}
		s.overlay = s.overlay.ToggleFilter(k)
		return nil
	})
	if err != nil {
		return s.refuse(ActionOverlay, err)
	}
	return nil
}

// ClickOutside closes the dropdowns the press landed outside of
func (s *Screen) ClickOutside(target Region) error {
	return s.locked(func() error {
		s.overlay = s.overlay.ClickOutside(target)
		return nil
	})
}

// Escape closes every open dropdown
func (s *Screen) Escape() error {
	return s.locked(func() error {
		s.overlay = s.overlay.Escape()
		return nil
	})
}

// ChangeStatus selects a status option from a row dropdown. On success the
// dataset is refetched and the dashboard summary refreshed, in that order.
func (s *Screen) ChangeStatus(ctx context.Context, role Role, kind DropdownKind, rowID string, status Status) error {
	var rec MonthRecord
	err := s.locked(func() error {
		if !role.CanChangeStatus() {
			return fmt.Errorf("%w: %s cannot change status", ErrForbidden, role)
		}
		row, err := s.rowOnPageLocked(rowID)
		if err != nil {
			return err
		}
		rec = row.CurrentMonth
		if kind == DropdownPrevious {
			if !row.PreviousMonth.HasDues() {
				return fmt.Errorf("%w: no previous dues", ErrInvalidTransition)
			}
			rec = row.PreviousMonth
		}
		if s.inflight.UpdatingID != "" && s.inflight.UpdatingID == rec.ID {
			return fmt.Errorf("%w: status update for %s", ErrInFlight, rec.ID)
		}
		s.overlay = s.overlay.CloseRow()
		s.inflight.UpdatingID = rec.ID
		return nil
	})
	if err != nil {
		return s.refuse(ActionUpdateStatus, err)
	}

	err = s.backend.UpdateStatus(ctx, rec.ID, status)

	s.mu.Lock()
	if s.inflight.UpdatingID == rec.ID {
		s.inflight.UpdatingID = ""
	}
	open := !s.closed
	if open {
		if err != nil {
			s.notifyLocked(NotifyError, MsgStatusFailed)
		} else {
			s.notifyLocked(NotifySuccess, MsgStatusUpdated)
		}
	}
	s.mu.Unlock()
	if !open {
		return nil
	}

	fields := map[string]interface{}{"rent_id": rec.ID, "status": status}
	if err != nil {
		s.recorder.ObserveAction(ActionUpdateStatus, OutcomeFailure)
		s.log.WithError(err).WithFields(fields).Error("Failed to update rent status")
		if Classify(err) == KindNotFound {
			s.reconcileAfterMutation(ctx)
		}
		return err
	}
	s.recorder.ObserveAction(ActionUpdateStatus, OutcomeSuccess)
	s.log.WithFields(fields).Info("Rent status updated")
	s.reconcileAfterMutation(ctx)
	return nil
}

// OpenView opens the view modal for a row of the current page
func (s *Screen) OpenView(rowID string) error {
	err := s.locked(func() error {
		if s.modal.IsOpen() {
			return ErrOverlayBlocked
		}
		row, err := s.rowOnPageLocked(rowID)
		if err != nil {
			return err
		}
		s.overlay = s.overlay.Escape()
		s.modal = s.modal.Open(row)
		return nil
	})
	if err != nil {
		return s.refuse(ActionModal, err)
	}
	return nil
}

// BeginEdit switches the view modal to edit mode
func (s *Screen) BeginEdit() error {
	return s.modalTransition(func(m ModalState) (ModalState, error) { return m.BeginEdit() })
}

// CancelEdit discards the draft and returns to the view modal
func (s *Screen) CancelEdit() error {
	return s.modalTransition(func(m ModalState) (ModalState, error) { return m.CancelEdit() })
}

// UpdateDraft replaces the editable draft
func (s *Screen) UpdateDraft(d EditableRentData) error {
	return s.modalTransition(func(m ModalState) (ModalState, error) { return m.SetDraft(d) })
}

// CloseModal dismisses the view/edit modal
func (s *Screen) CloseModal() error {
	return s.modalTransition(func(m ModalState) (ModalState, error) { return m.Close() })
}

// CancelDelete dismisses the delete confirmation. The view modal stays closed.
func (s *Screen) CancelDelete() error {
	return s.modalTransition(func(m ModalState) (ModalState, error) { return m.CancelDelete() })
}

// OpenDeleteConfirm replaces the view modal with the delete confirmation
func (s *Screen) OpenDeleteConfirm(role Role) error {
	if !role.CanOpenDeleteConfirm() {
		return s.refuse(ActionDelete, fmt.Errorf("%w: %s cannot delete rent records", ErrForbidden, role))
	}
	return s.modalTransition(func(m ModalState) (ModalState, error) { return m.OpenDeleteConfirm() })
}

func (s *Screen) modalTransition(fn func(ModalState) (ModalState, error)) error {
	err := s.locked(func() error {
		next, err := fn(s.modal)
		if err != nil {
			return err
		}
		s.modal = next
		return nil
	})
	if err != nil {
		return s.refuse(ActionModal, err)
	}
	return nil
}

// ConfirmDelete deletes the record awaiting confirmation. A failed delete
// keeps the confirmation open so it can be retried.
func (s *Screen) ConfirmDelete(ctx context.Context, role Role) error {
	var id string
	err := s.locked(func() error {
		if !role.CanDelete() {
			return fmt.Errorf("%w: %s cannot delete rent records", ErrForbidden, role)
		}
		if s.modal.Phase != ModalDeleteConfirm {
			return fmt.Errorf("%w: confirm delete from %s", ErrInvalidTransition, s.modal.Phase)
		}
		if s.modal.DeletingID == "" {
			return ErrNoSelection
		}
		if s.inflight.IsDeleting {
			return fmt.Errorf("%w: delete", ErrInFlight)
		}
		id = s.modal.DeletingID
		s.inflight.IsDeleting = true
		return nil
	})
	if err != nil {
		return s.refuse(ActionDelete, err)
	}

	err = s.backend.DeleteRecord(ctx, id)

	s.mu.Lock()
	s.inflight.IsDeleting = false
	open := !s.closed
	if open {
		switch {
		case err == nil:
			s.notifyLocked(NotifySuccess, MsgDeleted)
			s.modal = ClosedModal()
		case Classify(err) == KindNotFound:
			s.notifyLocked(NotifyError, MsgDeleteFailed)
			s.modal = ClosedModal()
		default:
			s.notifyLocked(NotifyError, MsgDeleteFailed)
		}
	}
	s.mu.Unlock()
	if !open {
		return nil
	}

	if err != nil {
		s.recorder.ObserveAction(ActionDelete, OutcomeFailure)
		s.log.WithError(err).WithField("rent_id", id).Error("Failed to delete rent record")
		if Classify(err) == KindNotFound {
			s.reconcileAfterMutation(ctx)
		}
		return err
	}
	s.recorder.ObserveAction(ActionDelete, OutcomeSuccess)
	s.log.WithField("rent_id", id).Info("Rent record deleted")
	s.reconcileAfterMutation(ctx)
	return nil
}

// SaveEdits sends the draft to the backend and refetches the dataset
func (s *Screen) SaveEdits(ctx context.Context) error {
	var (
		tenantID string
		patch    TenantPatch
	)
	err := s.locked(func() error {
		if s.modal.Phase != ModalEditing {
			return fmt.Errorf("%w: save from %s", ErrInvalidTransition, s.modal.Phase)
		}
		if s.modal.Selected == nil || s.modal.Draft == nil {
			return ErrNoSelection
		}
		if s.inflight.IsSaving {
			return fmt.Errorf("%w: save", ErrInFlight)
		}
		tenantID = s.modal.Selected.TenantID
		patch = s.modal.Draft.Patch()
		s.inflight.IsSaving = true
		return nil
	})
	if err != nil {
		return s.refuse(ActionSave, err)
	}

	err = s.backend.SaveTenantEdits(ctx, tenantID, patch)

	s.mu.Lock()
	s.inflight.IsSaving = false
	open := !s.closed
	if open {
		if err != nil {
			s.notifyLocked(NotifyError, MsgSaveFailed)
		} else {
			s.notifyLocked(NotifySuccess, MsgSaved)
			if s.modal.Selected != nil && s.modal.Selected.TenantID == tenantID {
				s.modal = s.modal.Saved()
			}
		}
	}
	s.mu.Unlock()
	if !open {
		return nil
	}

	if err != nil {
		s.recorder.ObserveAction(ActionSave, OutcomeFailure)
		s.log.WithError(err).WithField("tenant_id", tenantID).Error("Failed to save tenant changes")
		return err
	}
	s.recorder.ObserveAction(ActionSave, OutcomeSuccess)
	s.log.WithField("tenant_id", tenantID).Info("Tenant changes saved")
	if err := s.Refresh(ctx); err != nil && !errors.Is(err, ErrScreenClosed) {
		s.log.WithError(err).Warn("Refetch after save failed")
	}
	return nil
}

// ReceiptFilename names a downloaded receipt after the record and the download day
func ReceiptFilename(recordID string, at time.Time) string {
	return fmt.Sprintf("rent_receipt_%s_%s.pdf", recordID, at.UTC().Format("2006-01-02"))
}

// DownloadReceipt fetches the receipt of a row's current cycle
func (s *Screen) DownloadReceipt(ctx context.Context, rowID string) (Receipt, error) {
	var (
		rec         MonthRecord
		year, month int
	)
	err := s.locked(func() error {
		row, err := s.rowOnPageLocked(rowID)
		if err != nil {
			return err
		}
		rec = row.CurrentMonth
		if s.inflight.DownloadingID != "" && s.inflight.DownloadingID == rec.ID {
			return fmt.Errorf("%w: download for %s", ErrInFlight, rec.ID)
		}
		var ok bool
		if year, month, ok = rec.DuePeriod(); !ok {
			key := s.filters.FetchKey(s.now())
			year, month = key.Year, key.Month
		}
		s.inflight.DownloadingID = rec.ID
		return nil
	})
	if err != nil {
		return Receipt{}, s.refuse(ActionDownload, err)
	}

	content, err := s.backend.DownloadReceipt(ctx, rec.ID, year, month)

	s.mu.Lock()
	if s.inflight.DownloadingID == rec.ID {
		s.inflight.DownloadingID = ""
	}
	if !s.closed {
		if err != nil {
			s.notifyLocked(NotifyError, MsgDownloadFail)
		} else {
			s.notifyLocked(NotifySuccess, MsgDownloaded)
		}
	}
	s.mu.Unlock()

	if err != nil {
		s.recorder.ObserveAction(ActionDownload, OutcomeFailure)
		s.log.WithError(err).WithField("rent_id", rec.ID).Error("Failed to download receipt")
		return Receipt{}, err
	}
	s.recorder.ObserveAction(ActionDownload, OutcomeSuccess)
	return Receipt{
		Filename:    ReceiptFilename(rec.ID, s.now()),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

// reconcileAfterMutation refetches the selected period and then refreshes
// the dashboard summary. The summary refresh runs even if the refetch fails.
func (s *Screen) reconcileAfterMutation(ctx context.Context) {
	err := s.Refresh(ctx)
	if errors.Is(err, ErrScreenClosed) {
		return
	}
	if err != nil {
		s.log.WithError(err).Warn("Refetch after mutation failed")
	}
	if err := s.backend.RefreshDashboardSummary(ctx); err != nil {
		s.log.WithError(err).Warn("Failed to refresh dashboard summary")
	}
}

func (s *Screen) locked(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrScreenClosed
	}
	return fn()
}

func (s *Screen) refuse(action string, err error) error {
	s.recorder.ObserveAction(action, OutcomeRefused)
	entry := s.log.WithError(err).WithField("action", action)
	if errors.Is(err, ErrForbidden) {
		entry.Warn("Screen action refused")
	} else {
		entry.Info("Screen action refused")
	}
	return err
}

func (s *Screen) notifyLocked(level NotificationLevel, msg string) {
	s.notifications = append(s.notifications, Notification{Level: level, Message: msg, At: s.now()})
	if n := len(s.notifications); n > maxPendingNotifications {
		s.notifications = s.notifications[n-maxPendingNotifications:]
	}
}

func (s *Screen) filtersChangedLocked() {
	s.page = 1
	s.reconcileLocked()
}

func (s *Screen) rowOnPageLocked(rowID string) (CombinedRentItem, error) {
	for _, item := range Project(s.dataset, s.filters, s.page, s.rowsPerPage).Items {
		if item.CurrentMonth.ID == rowID {
			return item, nil
		}
	}
	return CombinedRentItem{}, fmt.Errorf("%w: %s", ErrUnknownRow, rowID)
}

// reconcileLocked restores the invariants that depend on the dataset and
// filters: the page stays in bounds, an open row dropdown points at a
// visible row, and the modal shows the freshest copy of its record.
func (s *Screen) reconcileLocked() {
	total := len(Filter(s.dataset, s.filters))
	s.page = ClampPage(s.page, total, s.rowsPerPage)

	if s.overlay.Row != nil {
		if _, err := s.rowOnPageLocked(s.overlay.Row.RowID); err != nil {
			s.overlay = s.overlay.CloseRow()
		}
	}

	// The modal stays bound to the record it was opened on. Once that record
	// leaves the dataset (deleted, or another period loaded) the modal closes.
	if s.modal.Selected != nil {
		found := false
		for _, item := range s.dataset {
			if item.CurrentMonth.ID != s.modal.Selected.CurrentMonth.ID {
				continue
			}
			fresh := item
			s.modal.Selected = &fresh
			if s.modal.Phase == ModalViewing {
				draft := EditableFromRecord(fresh)
				s.modal.Draft = &draft
			}
			found = true
			break
		}
		if !found {
			s.modal = ClosedModal()
		}
	}
}

// View is the reconciled state of the screen
type View struct {
	Filters            FilterState    `json:"filters"`
	StatusOptions      []string       `json:"status_options"`
	MonthOptions       []MonthOption  `json:"month_options"`
	YearOptions        []int          `json:"year_options"`
	RowsPerPageOptions []int          `json:"rows_per_page_options"`
	Period             FetchKey       `json:"period"`
	Loaded             bool           `json:"loaded"`
	Loading            bool           `json:"loading"`
	Projection         Projection     `json:"projection"`
	PageLinks          []PageLink     `json:"page_links"`
	Overlay            OverlayState   `json:"overlay"`
	Modal              ModalState     `json:"modal"`
	InFlight           InFlightOps    `json:"in_flight"`
	Notifications      []Notification `json:"notifications"`
	Closed             bool           `json:"closed"`
}

// View returns the current state and drains pending notifications
func (s *Screen) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p := Project(s.dataset, s.filters, s.page, s.rowsPerPage)
	v := View{
		Filters:            s.filters,
		StatusOptions:      append([]string(nil), StatusFilterOptions...),
		MonthOptions:       MonthOptionsForYear(now, s.filters.YearFilter),
		YearOptions:        YearOptions(now),
		RowsPerPageOptions: append([]int(nil), RowsPerPageOptions...),
		Period:             s.loadedKey,
		Loaded:             s.loaded,
		Loading:            s.loading,
		Projection:         p,
		PageLinks:          PageLinks(p.Page, p.TotalPages),
		Overlay:            s.overlay,
		Modal:              s.modal,
		InFlight:           s.inflight,
		Notifications:      s.notifications,
		Closed:             s.closed,
	}
	if v.Notifications == nil {
		v.Notifications = []Notification{}
	}
	s.notifications = nil
	return v
}

// Dataset returns a copy of the cached rows
func (s *Screen) Dataset() []CombinedRentItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CombinedRentItem, len(s.dataset))
	copy(out, s.dataset)
	return out
}
