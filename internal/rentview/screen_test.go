package rentview

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend serves datasets from memory and records every call in order
type fakeBackend struct {
	mu       sync.Mutex
	datasets map[FetchKey][]CombinedRentItem
	calls    []string
	patches  map[string]TenantPatch

	fetchErr    error
	updateErr   error
	deleteErr   error
	saveErr     error
	downloadErr error
	summaryErr  error

	// when set, UpdateStatus signals updateStarted and waits on updateGate
	updateGate    chan struct{}
	updateStarted chan struct{}
}

func newFakeBackend(items ...CombinedRentItem) *fakeBackend {
	return &fakeBackend{
		datasets: map[FetchKey][]CombinedRentItem{{Month: 3, Year: 2025}: items},
		patches:  map[string]TenantPatch{},
	}
}

func (f *fakeBackend) record(format string, args ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) resetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *fakeBackend) FetchDataset(_ context.Context, month, year int) ([]CombinedRentItem, error) {
	f.record("fetch %d/%d", month, year)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	items := f.datasets[FetchKey{Month: month, Year: year}]
	return append([]CombinedRentItem(nil), items...), nil
}

func (f *fakeBackend) UpdateStatus(_ context.Context, id string, status Status) error {
	f.record("update %s %s", id, status)
	if f.updateGate != nil {
		f.updateStarted <- struct{}{}
		<-f.updateGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	for key, items := range f.datasets {
		for i := range items {
			if items[i].CurrentMonth.ID == id {
				items[i].CurrentMonth.Status = status
			}
			if items[i].PreviousMonth.ID == id {
				items[i].PreviousMonth.Status = status
			}
		}
		f.datasets[key] = items
	}
	return nil
}

func (f *fakeBackend) DeleteRecord(_ context.Context, id string) error {
	f.record("delete %s", id)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for key, items := range f.datasets {
		kept := items[:0:0]
		for _, item := range items {
			if item.CurrentMonth.ID != id {
				kept = append(kept, item)
			}
		}
		f.datasets[key] = kept
	}
	return nil
}

func (f *fakeBackend) SaveTenantEdits(_ context.Context, tenantID string, patch TenantPatch) error {
	f.record("save %s", tenantID)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.patches[tenantID] = patch
	return nil
}

func (f *fakeBackend) DownloadReceipt(_ context.Context, id string, year, month int) ([]byte, error) {
	f.record("download %s %d-%02d", id, year, month)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	return []byte("%PDF-1.3"), nil
}

func (f *fakeBackend) RefreshDashboardSummary(context.Context) error {
	f.record("summary")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.summaryErr
}

type countingRecorder struct {
	mu      sync.Mutex
	actions map[string]int
	fetches map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{actions: map[string]int{}, fetches: map[string]int{}}
}

func (r *countingRecorder) ObserveAction(action, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[action+"/"+outcome]++
}

func (r *countingRecorder) ObserveFetch(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetches[outcome]++
}

func marchItems(n int) []CombinedRentItem {
	items := make([]CombinedRentItem, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, rentItem(fmt.Sprintf("r%d", i), fmt.Sprintf("Tenant %d", i), StatusPending, "2025-03-05T00:00:00Z"))
	}
	return items
}

func mountedScreen(t *testing.T, backend *fakeBackend) *Screen {
	t.Helper()
	s := NewScreen(Options{
		Backend: backend,
		Now:     func() time.Time { return fixedNow },
	})
	require.NoError(t, s.Mount(context.Background()))
	backend.resetCalls()
	return s
}

func messages(v View) []string {
	out := make([]string, 0, len(v.Notifications))
	for _, n := range v.Notifications {
		out = append(out, n.Message)
	}
	return out
}

func TestScreen_MountFetchesCurrentPeriod(t *testing.T) {
	backend := newFakeBackend(marchItems(7)...)
	s := NewScreen(Options{Backend: backend, Now: func() time.Time { return fixedNow }})

	require.NoError(t, s.Mount(context.Background()))

	assert.Equal(t, []string{"fetch 3/2025"}, backend.Calls())
	v := s.View()
	assert.True(t, v.Loaded)
	assert.False(t, v.Loading)
	assert.Equal(t, FetchKey{Month: 3, Year: 2025}, v.Period)
	assert.Equal(t, 7, v.Projection.TotalItems)
	assert.Equal(t, 2, v.Projection.TotalPages)
	assert.Len(t, v.Projection.Items, DefaultRowsPerPage)
	assert.Equal(t, ModalClosed, v.Modal.Phase)
}

func TestScreen_MountFailureNotifies(t *testing.T) {
	backend := newFakeBackend()
	backend.fetchErr = NewNetworkError("fetch rents", errors.New("connection refused"))
	recorder := newCountingRecorder()
	s := NewScreen(Options{Backend: backend, Recorder: recorder, Now: func() time.Time { return fixedNow }})

	err := s.Mount(context.Background())

	assert.ErrorIs(t, err, ErrNetwork)
	v := s.View()
	assert.False(t, v.Loaded)
	assert.True(t, v.Projection.NoData)
	assert.Equal(t, []string{MsgFetchFailed}, messages(v))
	assert.Empty(t, s.View().Notifications, "notifications are drained by View")
	assert.Equal(t, 1, recorder.fetches[OutcomeFailure])
}

func TestScreen_FetchFailureKeepsPreviousDataset(t *testing.T) {
	backend := newFakeBackend(marchItems(3)...)
	s := mountedScreen(t, backend)

	backend.fetchErr = NewNetworkError("fetch rents", errors.New("timeout"))
	err := s.SetMonthFilter(context.Background(), "2025-04")

	assert.ErrorIs(t, err, ErrNetwork)
	assert.Len(t, s.Dataset(), 3)
	assert.Equal(t, FetchKey{Month: 3, Year: 2025}, s.View().Period)

	backend.fetchErr = nil
	require.NoError(t, s.SetMonthFilter(context.Background(), "2025-03"))
	require.NoError(t, s.SetMonthFilter(context.Background(), "2025-04"))
	assert.Equal(t, []string{"fetch 4/2025", "fetch 4/2025"}, backend.Calls(), "a failed period is retried on the next change")
}

func TestScreen_FilterChangeResetsPage(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		apply func(s *Screen) error
	}{
		{"search", func(s *Screen) error { return s.SetSearch("tenant") }},
		{"status", func(s *Screen) error { return s.SetStatusFilter("pending") }},
		{"month", func(s *Screen) error { return s.SetMonthFilter(ctx, "2025-03") }},
		{"year", func(s *Screen) error { return s.SetYearFilter(ctx, "2024") }},
		{"rows per page", func(s *Screen) error { return s.SetRowsPerPage(10) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mountedScreen(t, newFakeBackend(marchItems(12)...))
			require.NoError(t, s.SetPage(3))
			require.Equal(t, 3, s.View().Projection.Page)

			require.NoError(t, tt.apply(s))

			assert.Equal(t, 1, s.View().Projection.Page)
		})
	}
}

func TestScreen_SetPageIsClamped(t *testing.T) {
	s := mountedScreen(t, newFakeBackend(marchItems(12)...))

	require.NoError(t, s.SetPage(99))
	assert.Equal(t, 3, s.View().Projection.Page)

	require.NoError(t, s.SetPage(-4))
	assert.Equal(t, 1, s.View().Projection.Page)

	assert.ErrorIs(t, s.SetRowsPerPage(7), ErrInvalidInput)
}

func TestScreen_FetchesOnlyWhenPeriodChanges(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend(marchItems(2)...)
	s := mountedScreen(t, backend)

	require.NoError(t, s.SetSearch("tenant 1"))
	require.NoError(t, s.SetStatusFilter("paid"))
	require.NoError(t, s.SetMonthFilter(ctx, "2025-03"))
	assert.Empty(t, backend.Calls())

	require.NoError(t, s.SetMonthFilter(ctx, "2025-04"))
	require.NoError(t, s.SetYearFilter(ctx, "2024"))
	require.NoError(t, s.ResetFilters(ctx))

	assert.Equal(t, []string{"fetch 4/2025", "fetch 4/2024", "fetch 3/2025"}, backend.Calls())
	assert.Equal(t, DefaultFilters(fixedNow), s.View().Filters)
}

func TestScreen_ResetSearchKeepsOtherFilters(t *testing.T) {
	s := mountedScreen(t, newFakeBackend(marchItems(2)...))
	require.NoError(t, s.SetSearch("tenant"))
	require.NoError(t, s.SetStatusFilter("pending"))

	require.NoError(t, s.ResetSearch())

	f := s.View().Filters
	assert.Empty(t, f.SearchTerm)
	assert.Equal(t, "pending", f.StatusFilter)
}

func TestScreen_RoleOtherCannotChangeStatus(t *testing.T) {
	backend := newFakeBackend(marchItems(2)...)
	s := mountedScreen(t, backend)
	require.NoError(t, s.OpenRowDropdown(RoleOther, RowDropdown{RowID: "r1", Kind: DropdownCurrent}))

	err := s.ChangeStatus(context.Background(), RoleOther, DropdownCurrent, "r1", StatusPaid)

	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, backend.Calls())
	assert.Equal(t, StatusPending, s.Dataset()[0].CurrentMonth.Status)
	v := s.View()
	require.NotNil(t, v.Overlay.Row, "a refused selection leaves the dropdown as it was")
	assert.Empty(t, v.InFlight.UpdatingID)
}

func TestScreen_ChangeStatusRefetchesThenRefreshesSummary(t *testing.T) {
	backend := newFakeBackend(marchItems(2)...)
	recorder := newCountingRecorder()
	s := NewScreen(Options{Backend: backend, Recorder: recorder, Now: func() time.Time { return fixedNow }})
	require.NoError(t, s.Mount(context.Background()))
	backend.resetCalls()
	require.NoError(t, s.OpenRowDropdown(RoleManager, RowDropdown{RowID: "r2", Kind: DropdownCurrent}))

	err := s.ChangeStatus(context.Background(), RoleManager, DropdownCurrent, "r2", StatusPaid)

	require.NoError(t, err)
	assert.Equal(t, []string{"update r2 paid", "fetch 3/2025", "summary"}, backend.Calls())
	assert.Equal(t, StatusPaid, s.Dataset()[1].CurrentMonth.Status)
	v := s.View()
	assert.Nil(t, v.Overlay.Row)
	assert.Empty(t, v.InFlight.UpdatingID)
	assert.Equal(t, []string{MsgStatusUpdated}, messages(v))
	assert.Equal(t, 1, recorder.actions[ActionUpdateStatus+"/"+OutcomeSuccess])
}

func TestScreen_ChangeStatusFailure(t *testing.T) {
	backend := newFakeBackend(marchItems(2)...)
	backend.updateErr = NewValidationError("update status", errors.New("status rejected"))
	s := mountedScreen(t, backend)

	err := s.ChangeStatus(context.Background(), RoleOwner, DropdownCurrent, "r1", StatusOverdue)

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, []string{"update r1 overdue"}, backend.Calls())
	v := s.View()
	assert.Empty(t, v.InFlight.UpdatingID)
	assert.Equal(t, []string{MsgStatusFailed}, messages(v))
	assert.Equal(t, StatusPending, s.Dataset()[0].CurrentMonth.Status)
}

func TestScreen_ChangeStatusNotFoundReconciles(t *testing.T) {
	backend := newFakeBackend(marchItems(2)...)
	backend.updateErr = NewNotFoundError("update status", errors.New("gone"))
	s := mountedScreen(t, backend)

	err := s.ChangeStatus(context.Background(), RoleOwner, DropdownCurrent, "r1", StatusPaid)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, []string{"update r1 paid", "fetch 3/2025", "summary"}, backend.Calls())
}

func TestScreen_SummaryRefreshRunsWhenRefetchFails(t *testing.T) {
	backend := newFakeBackend(marchItems(2)...)
	s := mountedScreen(t, backend)
	backend.fetchErr = NewNetworkError("fetch rents", errors.New("reset by peer"))

	err := s.ChangeStatus(context.Background(), RoleOwner, DropdownCurrent, "r1", StatusPaid)

	require.NoError(t, err)
	assert.Equal(t, []string{"update r1 paid", "fetch 3/2025", "summary"}, backend.Calls())
	assert.Equal(t, []string{MsgStatusUpdated, MsgFetchFailed}, messages(s.View()))
}

func TestScreen_PreviousMonthDropdown(t *testing.T) {
	items := marchItems(2)
	items[0].PreviousMonth = MonthRecord{ID: "p1", Amount: decimal.NewFromInt(900), Status: StatusOverdue}
	backend := newFakeBackend(items...)
	s := mountedScreen(t, backend)

	assert.ErrorIs(t, s.OpenRowDropdown(RoleOther, RowDropdown{RowID: "r1", Kind: DropdownPrevious}), ErrForbidden)
	assert.ErrorIs(t, s.OpenRowDropdown(RoleOwner, RowDropdown{RowID: "r2", Kind: DropdownPrevious}), ErrInvalidTransition)
	require.NoError(t, s.OpenRowDropdown(RoleOwner, RowDropdown{RowID: "r1", Kind: DropdownPrevious}))

	require.NoError(t, s.ChangeStatus(context.Background(), RoleOwner, DropdownPrevious, "r1", StatusPaid))

	assert.Equal(t, "update p1 paid", backend.Calls()[0])
	assert.Equal(t, StatusPaid, s.Dataset()[0].PreviousMonth.Status)
	assert.Nil(t, s.View().Overlay.Row)
}

func TestScreen_RowDropdownsAreExclusive(t *testing.T) {
	s := mountedScreen(t, newFakeBackend(marchItems(3)...))

	require.NoError(t, s.OpenRowDropdown(RoleOwner, RowDropdown{RowID: "r1", Kind: DropdownCurrent}))
	require.NoError(t, s.OpenRowDropdown(RoleOwner, RowDropdown{RowID: "r3", Kind: DropdownCurrent, Anchor: Anchor{ElementID: "badge-r3", Width: 120}}))

	row := s.View().Overlay.Row
	require.NotNil(t, row)
	assert.Equal(t, "r3", row.RowID)
	assert.Equal(t, 120, row.Anchor.Width)

	assert.ErrorIs(t, s.OpenRowDropdown(RoleOwner, RowDropdown{RowID: "missing", Kind: DropdownCurrent}), ErrUnknownRow)
}

func TestScreen_ModalBlocksDropdowns(t *testing.T) {
	s := mountedScreen(t, newFakeBackend(marchItems(2)...))
	require.NoError(t, s.ToggleFilterDropdown(FilterDropdownYear))
	require.NoError(t, s.OpenRowDropdown(RoleOwner, RowDropdown{RowID: "r1", Kind: DropdownCurrent}))

	require.NoError(t, s.OpenView("r2"))

	v := s.View()
	assert.False(t, v.Overlay.AnyOpen(), "opening a modal closes every dropdown")
	assert.Equal(t, ModalViewing, v.Modal.Phase)
	assert.ErrorIs(t, s.OpenRowDropdown(RoleOwner, RowDropdown{RowID: "r1", Kind: DropdownCurrent}), ErrOverlayBlocked)
	assert.ErrorIs(t, s.ToggleFilterDropdown(FilterDropdownMonth), ErrOverlayBlocked)
	assert.ErrorIs(t, s.OpenView("r1"), ErrOverlayBlocked)
}

func TestScreen_EscapeAndClickOutside(t *testing.T) {
	s := mountedScreen(t, newFakeBackend(marchItems(2)...))
	require.NoError(t, s.ToggleFilterDropdown(FilterDropdownMonth))
	require.NoError(t, s.ToggleFilterDropdown(FilterDropdownStatus))
	require.NoError(t, s.OpenRowDropdown(RoleOwner, RowDropdown{RowID: "r1", Kind: DropdownCurrent}))

	require.NoError(t, s.ClickOutside(Region{Kind: RegionStatusDropdown}))
	v := s.View()
	assert.True(t, v.Overlay.StatusOpen)
	assert.False(t, v.Overlay.MonthOpen)
	assert.Nil(t, v.Overlay.Row)

	require.NoError(t, s.Escape())
	assert.False(t, s.View().Overlay.AnyOpen())
}

func TestScreen_SelectingFilterValueClosesItsDropdown(t *testing.T) {
	s := mountedScreen(t, newFakeBackend(marchItems(2)...))
	require.NoError(t, s.ToggleFilterDropdown(FilterDropdownStatus))

	require.NoError(t, s.SetStatusFilter("paid"))

	assert.False(t, s.View().Overlay.StatusOpen)
}

func TestScreen_ViewEditSaveFlow(t *testing.T) {
	backend := newFakeBackend(itemWithCharges())
	s := mountedScreen(t, backend)

	require.NoError(t, s.OpenView("cur-1"))
	v := s.View()
	require.NotNil(t, v.Modal.Draft)
	assert.True(t, v.Modal.Draft.Maintenance.Equal(decimal.NewFromInt(500)))

	require.NoError(t, s.BeginEdit())
	draft := *v.Modal.Draft
	draft.FullName = "Asha V."
	require.NoError(t, s.UpdateDraft(draft))

	require.NoError(t, s.SaveEdits(context.Background()))

	assert.Equal(t, []string{"save tenant-cur-1", "fetch 3/2025"}, backend.Calls(), "save refetches without a summary refresh")
	assert.Equal(t, "Asha V.", backend.patches["tenant-cur-1"].Name)
	v = s.View()
	assert.Equal(t, ModalViewing, v.Modal.Phase)
	assert.False(t, v.InFlight.IsSaving)
	assert.Equal(t, []string{MsgSaved}, messages(v))
}

func TestScreen_SaveFailureStaysInEdit(t *testing.T) {
	backend := newFakeBackend(itemWithCharges())
	backend.saveErr = NewValidationError("save tenant", errors.New("name required"))
	s := mountedScreen(t, backend)
	require.NoError(t, s.OpenView("cur-1"))
	require.NoError(t, s.BeginEdit())

	err := s.SaveEdits(context.Background())

	assert.ErrorIs(t, err, ErrValidation)
	v := s.View()
	assert.Equal(t, ModalEditing, v.Modal.Phase)
	assert.False(t, v.InFlight.IsSaving)
	assert.Equal(t, []string{MsgSaveFailed}, messages(v))
	assert.Equal(t, []string{"save tenant-cur-1"}, backend.Calls())
}

func TestScreen_SaveRequiresEditing(t *testing.T) {
	s := mountedScreen(t, newFakeBackend(itemWithCharges()))
	require.NoError(t, s.OpenView("cur-1"))

	assert.ErrorIs(t, s.SaveEdits(context.Background()), ErrInvalidTransition)
}

func TestScreen_DeleteConfirmRequiresOwner(t *testing.T) {
	s := mountedScreen(t, newFakeBackend(marchItems(2)...))
	require.NoError(t, s.OpenView("r1"))

	assert.ErrorIs(t, s.OpenDeleteConfirm(RoleManager), ErrForbidden)
	assert.Equal(t, ModalViewing, s.View().Modal.Phase)
}

func TestScreen_CancelDeleteClosesEverything(t *testing.T) {
	s := mountedScreen(t, newFakeBackend(marchItems(2)...))
	require.NoError(t, s.OpenView("r1"))
	require.NoError(t, s.OpenDeleteConfirm(RoleOwner))

	require.NoError(t, s.CancelDelete())

	assert.Equal(t, ModalClosed, s.View().Modal.Phase)
}

func TestScreen_DeleteNetworkFailure(t *testing.T) {
	backend := newFakeBackend(marchItems(2)...)
	backend.deleteErr = NewNetworkError("delete rent", errors.New("connection reset"))
	s := mountedScreen(t, backend)
	require.NoError(t, s.OpenView("r1"))
	require.NoError(t, s.OpenDeleteConfirm(RoleOwner))

	err := s.ConfirmDelete(context.Background(), RoleOwner)

	assert.ErrorIs(t, err, ErrNetwork)
	v := s.View()
	assert.False(t, v.InFlight.IsDeleting)
	assert.Equal(t, ModalDeleteConfirm, v.Modal.Phase)
	assert.Equal(t, []string{MsgDeleteFailed}, messages(v))
	assert.Equal(t, []string{"r1", "r2"}, ids(s.Dataset()))
	assert.Equal(t, []string{"delete r1"}, backend.Calls())
}

func TestScreen_DeleteSuccess(t *testing.T) {
	backend := newFakeBackend(marchItems(6)...)
	s := mountedScreen(t, backend)
	require.NoError(t, s.SetPage(2))
	require.NoError(t, s.OpenView("r6"))
	require.NoError(t, s.OpenDeleteConfirm(RoleOwner))

	require.NoError(t, s.ConfirmDelete(context.Background(), RoleOwner))

	assert.Equal(t, []string{"delete r6", "fetch 3/2025", "summary"}, backend.Calls())
	v := s.View()
	assert.Equal(t, ModalClosed, v.Modal.Phase)
	assert.False(t, v.InFlight.IsDeleting)
	assert.Equal(t, 1, v.Projection.Page, "page is clamped once the last row of page two is gone")
	assert.Equal(t, 5, v.Projection.TotalItems)
	assert.Equal(t, []string{MsgDeleted}, messages(v))
}

func TestScreen_ConfirmDeleteRoleGating(t *testing.T) {
	backend := newFakeBackend(marchItems(1)...)
	s := mountedScreen(t, backend)
	require.NoError(t, s.OpenView("r1"))
	require.NoError(t, s.OpenDeleteConfirm(RoleOwner))

	assert.ErrorIs(t, s.ConfirmDelete(context.Background(), RoleOther), ErrForbidden)
	assert.Empty(t, backend.Calls())
	assert.Equal(t, ModalDeleteConfirm, s.View().Modal.Phase)
}

func TestScreen_DownloadReceipt(t *testing.T) {
	backend := newFakeBackend(marchItems(1)...)
	s := mountedScreen(t, backend)

	receipt, err := s.DownloadReceipt(context.Background(), "r1")

	require.NoError(t, err)
	assert.Equal(t, "rent_receipt_r1_2025-03-10.pdf", receipt.Filename)
	assert.Equal(t, "application/pdf", receipt.ContentType)
	assert.NotEmpty(t, receipt.Content)
	assert.Equal(t, []string{"download r1 2025-03"}, backend.Calls())
	v := s.View()
	assert.Empty(t, v.InFlight.DownloadingID)
	assert.Equal(t, []string{MsgDownloaded}, messages(v))
}

func TestScreen_DownloadFailure(t *testing.T) {
	backend := newFakeBackend(marchItems(1)...)
	backend.downloadErr = NewNetworkError("download receipt", errors.New("502"))
	s := mountedScreen(t, backend)

	_, err := s.DownloadReceipt(context.Background(), "r1")

	assert.ErrorIs(t, err, ErrNetwork)
	v := s.View()
	assert.Empty(t, v.InFlight.DownloadingID)
	assert.Equal(t, []string{MsgDownloadFail}, messages(v))
}

func TestScreen_SameUpdateCannotRace(t *testing.T) {
	backend := newFakeBackend(marchItems(2)...)
	s := mountedScreen(t, backend)
	backend.updateGate = make(chan struct{})
	backend.updateStarted = make(chan struct{}, 1)

	done := make(chan error, 1)
	go func() {
		done <- s.ChangeStatus(context.Background(), RoleOwner, DropdownCurrent, "r1", StatusPaid)
	}()
	<-backend.updateStarted

	assert.Equal(t, "r1", s.View().InFlight.UpdatingID)
	assert.ErrorIs(t, s.ChangeStatus(context.Background(), RoleOwner, DropdownCurrent, "r1", StatusOverdue), ErrInFlight)
	assert.ErrorIs(t, s.OpenRowDropdown(RoleOwner, RowDropdown{RowID: "r1", Kind: DropdownCurrent}), ErrInFlight)

	close(backend.updateGate)
	require.NoError(t, <-done)
	assert.Empty(t, s.View().InFlight.UpdatingID)
}

func TestScreen_CloseDropsLateResults(t *testing.T) {
	backend := newFakeBackend(marchItems(2)...)
	s := mountedScreen(t, backend)
	backend.updateGate = make(chan struct{})
	backend.updateStarted = make(chan struct{}, 1)

	done := make(chan error, 1)
	go func() {
		done <- s.ChangeStatus(context.Background(), RoleOwner, DropdownCurrent, "r1", StatusPaid)
	}()
	<-backend.updateStarted

	s.Close()
	close(backend.updateGate)

	assert.NoError(t, <-done)
	assert.Equal(t, []string{"update r1 paid"}, backend.Calls(), "no refetch after teardown")
	assert.True(t, s.Closed())
	assert.ErrorIs(t, s.SetSearch("x"), ErrScreenClosed)
	assert.ErrorIs(t, s.Refresh(context.Background()), ErrScreenClosed)
}

func TestScreen_RowDropdownClosedWhenRowLeavesPage(t *testing.T) {
	s := mountedScreen(t, newFakeBackend(marchItems(3)...))
	require.NoError(t, s.OpenRowDropdown(RoleOwner, RowDropdown{RowID: "r2", Kind: DropdownCurrent}))

	require.NoError(t, s.SetSearch("tenant 3"))

	assert.Nil(t, s.View().Overlay.Row)
}

func TestScreen_ModalClosesWhenPeriodChanges(t *testing.T) {
	ctx := context.Background()
	march := rentItem("mar-1", "Asha Verma", StatusPending, "2025-03-05T00:00:00Z")
	april := rentItem("apr-1", "Asha Verma", StatusOverdue, "2025-04-05T00:00:00Z")
	april.TenantID = march.TenantID
	backend := newFakeBackend(march)
	backend.datasets[FetchKey{Month: 4, Year: 2025}] = []CombinedRentItem{april}
	s := mountedScreen(t, backend)

	tests := []struct {
		name  string
		setup func(t *testing.T)
	}{
		{"viewing", func(t *testing.T) {}},
		{"editing", func(t *testing.T) { require.NoError(t, s.BeginEdit()) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, s.SetMonthFilter(ctx, "2025-03"))
			require.NoError(t, s.OpenView("mar-1"))
			tt.setup(t)

			require.NoError(t, s.SetMonthFilter(ctx, "2025-04"))

			v := s.View()
			assert.Equal(t, ModalClosed, v.Modal.Phase, "not rebound to the same tenant's April record")
			assert.Nil(t, v.Modal.Selected)
			assert.Nil(t, v.Modal.Draft)
		})
	}
}

func TestScreen_ModalRebindsSameRecordAfterRefetch(t *testing.T) {
	backend := newFakeBackend(marchItems(2)...)
	s := mountedScreen(t, backend)
	require.NoError(t, s.OpenView("r2"))

	backend.mu.Lock()
	backend.datasets[FetchKey{Month: 3, Year: 2025}][1].TenantName = "Tenant Two"
	backend.mu.Unlock()
	require.NoError(t, s.ChangeStatus(context.Background(), RoleOwner, DropdownCurrent, "r1", StatusPaid))

	v := s.View()
	assert.Equal(t, ModalViewing, v.Modal.Phase)
	require.NotNil(t, v.Modal.Selected)
	assert.Equal(t, "r2", v.Modal.Selected.CurrentMonth.ID)
	assert.Equal(t, "Tenant Two", v.Modal.Selected.TenantName)
	require.NotNil(t, v.Modal.Draft)
	assert.Equal(t, "Tenant Two", v.Modal.Draft.FullName)
}
