package update_reservation

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawdesk/PD-ReservationService/internal/domain"
	reservationRepo "github.com/pawdesk/PD-ReservationService/internal/infra/storage/reservation"
	roomRepo "github.com/pawdesk/PD-ReservationService/internal/infra/storage/room"
	"github.com/pawdesk/PD-ReservationService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations map[int64]*domain.Reservation
	updates      int
}

func newFakeReservationRepo(seed ...*domain.Reservation) *fakeReservationRepo {
	f := &fakeReservationRepo{reservations: make(map[int64]*domain.Reservation)}
	for _, res := range seed {
		stored := *res
		f.reservations[res.ID] = &stored
	}
	return f
}

func (f *fakeReservationRepo) GetByIDForUpdate(_ context.Context, tenantID, id int64) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	res, ok := f.reservations[id]
	if !ok || res.TenantID != tenantID {
		return nil, reservationRepo.ErrReservationNotFound
	}
	out := *res
	return &out, nil
}

func (f *fakeReservationRepo) FindConflict(_ context.Context, tenantID, roomID int64, iv domain.Interval, excludeID *int64) (*int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, res := range f.reservations {
		if res.TenantID != tenantID || res.RoomID == nil || *res.RoomID != roomID {
			continue
		}
		if res.Status == domain.StatusCancelled {
			continue
		}
		if excludeID != nil && res.ID == *excludeID {
			continue
		}
		if iv.Overlaps(res.Interval()) {
			id := res.ID
			return &id, nil
		}
	}
	return nil, nil
}

func (f *fakeReservationRepo) Update(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.reservations[res.ID]; !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	f.updates++
	stored := *res
	stored.UpdatedAt = time.Now()
	f.reservations[res.ID] = &stored

	out := stored
	return &out, nil
}

func (f *fakeReservationRepo) get(id int64) *domain.Reservation {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := *f.reservations[id]
	return &out
}

type fakeRoomRepo struct {
	rooms map[int64]*domain.HotelRoom
}

func (f *fakeRoomRepo) GetByID(_ context.Context, tenantID, id int64) (*domain.HotelRoom, error) {
	room, ok := f.rooms[id]
	if !ok || room.TenantID != tenantID {
		return nil, roomRepo.ErrRoomNotFound
	}
	return room, nil
}

// fakeContractRepo mimics the ticket ledger: decrements succeed while the
// balance is positive and silently no-op when no contract exists.
type fakeContractRepo struct {
	mu         sync.Mutex
	remaining  map[int64]int // dogID -> sessions left
	decrements int
}

func (f *fakeContractRepo) DecrementOneSession(_ context.Context, dogID int64, _ time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.decrements++
	left, ok := f.remaining[dogID]
	if !ok || left <= 0 {
		return false, nil
	}
	f.remaining[dogID] = left - 1
	return true, nil
}

type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

var testNow = time.Date(2026, 2, 10, 12, 0, 0, 0, time.Local)

type fixture struct {
	uc        *UseCase
	repo      *fakeReservationRepo
	contracts *fakeContractRepo
}

func newFixture(seed ...*domain.Reservation) *fixture {
	repo := newFakeReservationRepo(seed...)
	rooms := &fakeRoomRepo{rooms: map[int64]*domain.HotelRoom{
		1: {ID: 1, TenantID: 1, Name: "Room A", Enabled: true},
		2: {ID: 2, TenantID: 1, Name: "Room B", Enabled: true},
		3: {ID: 3, TenantID: 1, Name: "Room C", Enabled: false},
	}}
	contracts := &fakeContractRepo{remaining: map[int64]int{10: 2}}

	uc := NewUseCase(repo, rooms, contracts, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedClock{now: testNow}

	return &fixture{uc: uc, repo: repo, contracts: contracts}
}

func scheduledDaycare() *domain.Reservation {
	return &domain.Reservation{
		ID:       1,
		TenantID: 1,
		DogID:    10,
		Category: domain.CategoryDaycare,
		StartAt:  time.Date(2026, 2, 10, 9, 0, 0, 0, time.Local),
		Status:   domain.StatusScheduled,
	}
}

func scheduledHotel(id, roomID int64, start, end time.Time) *domain.Reservation {
	return &domain.Reservation{
		ID:       id,
		TenantID: 1,
		DogID:    10,
		Category: domain.CategoryHotel,
		StartAt:  start,
		EndAt:    &end,
		RoomID:   &roomID,
		Status:   domain.StatusScheduled,
	}
}

func TestExecute_CheckInConsumesOneSession(t *testing.T) {
	f := newFixture(scheduledDaycare())

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID:      1,
		ReservationID: 1,
		Status:        ptr.Ptr(domain.StatusCheckedIn),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCheckedIn, resp.Status)
	require.NotNil(t, resp.CheckedInAt)
	assert.Equal(t, testNow, *resp.CheckedInAt)
	assert.True(t, resp.LedgerApplied)
	assert.Equal(t, 1, f.contracts.remaining[10])
	assert.Equal(t, 1, f.contracts.decrements)
}

func TestExecute_RepeatedCheckInIsIdempotent(t *testing.T) {
	f := newFixture(scheduledDaycare())
	ctx := context.Background()

	checkIn := &Request{TenantID: 1, ReservationID: 1, Status: ptr.Ptr(domain.StatusCheckedIn)}

	_, err := f.uc.Execute(ctx, checkIn)
	require.NoError(t, err)

	// same-status request is a legal no-op and must not charge again
	resp, err := f.uc.Execute(ctx, checkIn)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCheckedIn, resp.Status)
	assert.False(t, resp.LedgerApplied)
	assert.Equal(t, 1, f.contracts.remaining[10])
	assert.Equal(t, 1, f.contracts.decrements)
}

func TestExecute_CheckInWithoutContractSucceeds(t *testing.T) {
	f := newFixture(scheduledDaycare())
	f.contracts.remaining = map[int64]int{} // no contract at all

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID:      1,
		ReservationID: 1,
		Status:        ptr.Ptr(domain.StatusCheckedIn),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCheckedIn, resp.Status)
	assert.False(t, resp.LedgerApplied)
}

func TestExecute_CheckInWithExhaustedTicketSucceeds(t *testing.T) {
	f := newFixture(scheduledDaycare())
	f.contracts.remaining = map[int64]int{10: 0}

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID:      1,
		ReservationID: 1,
		Status:        ptr.Ptr(domain.StatusCheckedIn),
	})
	require.NoError(t, err)

	// an exhausted ticket never blocks the visit and the balance stays at zero
	assert.Equal(t, domain.StatusCheckedIn, resp.Status)
	assert.False(t, resp.LedgerApplied)
	assert.Equal(t, 0, f.contracts.remaining[10])
}

func TestExecute_TerminalStatusesRejectTransitions(t *testing.T) {
	checkedOut := scheduledDaycare()
	checkedOut.Status = domain.StatusCheckedOut

	cancelled := scheduledDaycare()
	cancelled.ID = 2
	cancelled.Status = domain.StatusCancelled

	f := newFixture(checkedOut, cancelled)
	ctx := context.Background()

	for _, target := range []domain.ReservationStatus{
		domain.StatusScheduled, domain.StatusCheckedIn, domain.StatusCancelled,
	} {
		_, err := f.uc.Execute(ctx, &Request{TenantID: 1, ReservationID: 1, Status: &target})
		assert.ErrorIs(t, err, ErrInvalidTransition, "checked_out -> %s", target)
	}

	for _, target := range []domain.ReservationStatus{
		domain.StatusScheduled, domain.StatusCheckedIn, domain.StatusCheckedOut,
	} {
		_, err := f.uc.Execute(ctx, &Request{TenantID: 1, ReservationID: 2, Status: &target})
		assert.ErrorIs(t, err, ErrInvalidTransition, "cancelled -> %s", target)
	}
}

func TestExecute_CancelSetsTimestamp(t *testing.T) {
	f := newFixture(scheduledDaycare())

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID:      1,
		ReservationID: 1,
		Status:        ptr.Ptr(domain.StatusCancelled),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, resp.Status)
	require.NotNil(t, resp.CancelledAt)
	assert.Equal(t, testNow, *resp.CancelledAt)
	assert.False(t, resp.LedgerApplied)
}

func TestExecute_CheckOutSetsTimestamp(t *testing.T) {
	res := scheduledDaycare()
	res.Status = domain.StatusCheckedIn
	checkedIn := testNow.Add(-2 * time.Hour)
	res.CheckedInAt = &checkedIn

	f := newFixture(res)

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID:      1,
		ReservationID: 1,
		Status:        ptr.Ptr(domain.StatusCheckedOut),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCheckedOut, resp.Status)
	require.NotNil(t, resp.CheckedOutAt)
	assert.Equal(t, testNow, *resp.CheckedOutAt)
	// check-in timestamp is preserved
	require.NotNil(t, resp.CheckedInAt)
	assert.Equal(t, checkedIn, *resp.CheckedInAt)
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture(scheduledDaycare())

	_, err := f.uc.Execute(context.Background(), &Request{
		TenantID:      1,
		ReservationID: 99,
		Status:        ptr.Ptr(domain.StatusCancelled),
	})
	assert.ErrorIs(t, err, ErrReservationNotFound)

	// wrong tenant behaves like a missing row
	_, err = f.uc.Execute(context.Background(), &Request{
		TenantID:      2,
		ReservationID: 1,
		Status:        ptr.Ptr(domain.StatusCancelled),
	})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_RescheduleConflictAbortsWholeUpdate(t *testing.T) {
	first := scheduledHotel(1, 1,
		time.Date(2026, 2, 10, 11, 0, 0, 0, time.Local),
		time.Date(2026, 2, 12, 11, 0, 0, 0, time.Local))
	second := scheduledHotel(2, 1,
		time.Date(2026, 2, 15, 11, 0, 0, 0, time.Local),
		time.Date(2026, 2, 17, 11, 0, 0, 0, time.Local))

	f := newFixture(first, second)

	// move the second stay onto the first, and try to check in at once
	_, err := f.uc.Execute(context.Background(), &Request{
		TenantID:      1,
		ReservationID: 2,
		Date:          ptr.Ptr("2026-02-11"),
		EndAt:         ptr.Ptr("2026-02-13 11:00"),
		Status:        ptr.Ptr(domain.StatusCheckedIn),
	})
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	// nothing was persisted: interval, status and ledger all untouched
	stored := f.repo.get(2)
	assert.Equal(t, domain.StatusScheduled, stored.Status)
	assert.Equal(t, second.StartAt, stored.StartAt)
	assert.Equal(t, 2, f.contracts.remaining[10])
}

func TestExecute_RescheduleExcludesSelf(t *testing.T) {
	res := scheduledHotel(1, 1,
		time.Date(2026, 2, 10, 11, 0, 0, 0, time.Local),
		time.Date(2026, 2, 12, 11, 0, 0, 0, time.Local))
	f := newFixture(res)

	// shift by two hours within the reservation's own span
	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID:      1,
		ReservationID: 1,
		StartTime:     ptr.Ptr("13:00"),
		EndAt:         ptr.Ptr("2026-02-12 13:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 2, 10, 13, 0, 0, 0, time.Local), resp.StartAt)
}

func TestExecute_RoomReassignment(t *testing.T) {
	res := scheduledHotel(1, 1,
		time.Date(2026, 2, 10, 11, 0, 0, 0, time.Local),
		time.Date(2026, 2, 12, 11, 0, 0, 0, time.Local))
	f := newFixture(res)
	ctx := context.Background()

	t.Run("to a valid room", func(t *testing.T) {
		resp, err := f.uc.Execute(ctx, &Request{
			TenantID:      1,
			ReservationID: 1,
			RoomID:        ptr.Ptr(int64(2)),
		})
		require.NoError(t, err)
		require.NotNil(t, resp.RoomID)
		assert.Equal(t, int64(2), *resp.RoomID)
	})

	t.Run("to a disabled room", func(t *testing.T) {
		_, err := f.uc.Execute(ctx, &Request{
			TenantID:      1,
			ReservationID: 1,
			RoomID:        ptr.Ptr(int64(3)),
		})
		assert.ErrorIs(t, err, ErrRoomDisabled)
	})

	t.Run("to a missing room", func(t *testing.T) {
		_, err := f.uc.Execute(ctx, &Request{
			TenantID:      1,
			ReservationID: 1,
			RoomID:        ptr.Ptr(int64(99)),
		})
		assert.ErrorIs(t, err, ErrRoomNotFound)
	})
}

func TestExecute_CategoryChangeAwayFromHotel(t *testing.T) {
	res := scheduledHotel(1, 1,
		time.Date(2026, 2, 10, 11, 0, 0, 0, time.Local),
		time.Date(2026, 2, 12, 11, 0, 0, 0, time.Local))
	f := newFixture(res)

	// dropping a hotel stay to daycare must shed both the room and the end
	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID:      1,
		ReservationID: 1,
		Category:      ptr.Ptr(domain.CategoryDaycare),
		ClearRoom:     true,
		ClearEnd:      true,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryDaycare, resp.Category)
	assert.Nil(t, resp.RoomID)
	assert.Nil(t, resp.EndAt)
}

func TestExecute_MergedStatePairingViolations(t *testing.T) {
	hotel := scheduledHotel(1, 1,
		time.Date(2026, 2, 10, 11, 0, 0, 0, time.Local),
		time.Date(2026, 2, 12, 11, 0, 0, 0, time.Local))
	daycare := scheduledDaycare()
	daycare.ID = 2

	f := newFixture(hotel, daycare)
	ctx := context.Background()

	t.Run("hotel cannot shed its room alone", func(t *testing.T) {
		_, err := f.uc.Execute(ctx, &Request{TenantID: 1, ReservationID: 1, ClearRoom: true})
		assert.ErrorIs(t, err, ErrRoomRequired)
	})

	t.Run("hotel cannot shed its end alone", func(t *testing.T) {
		_, err := f.uc.Execute(ctx, &Request{TenantID: 1, ReservationID: 1, ClearEnd: true})
		assert.ErrorIs(t, err, ErrEndTimeRequired)
	})

	t.Run("daycare cannot gain a room", func(t *testing.T) {
		_, err := f.uc.Execute(ctx, &Request{TenantID: 1, ReservationID: 2, RoomID: ptr.Ptr(int64(1))})
		assert.ErrorIs(t, err, ErrRoomNotAllowed)
	})
}

func TestExecute_MutuallyExclusiveFields(t *testing.T) {
	f := newFixture(scheduledDaycare())
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, &Request{
		TenantID:      1,
		ReservationID: 1,
		EndAt:         ptr.Ptr("2026-02-12 11:00"),
		ClearEnd:      true,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(ctx, &Request{
		TenantID:      1,
		ReservationID: 1,
		RoomID:        ptr.Ptr(int64(1)),
		ClearRoom:     true,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_MemoEditOnCancelledReservationWithRebookedSlot(t *testing.T) {
	start := time.Date(2026, 2, 10, 11, 0, 0, 0, time.Local)
	end := time.Date(2026, 2, 12, 11, 0, 0, 0, time.Local)

	cancelled := scheduledHotel(1, 1, start, end)
	cancelled.Status = domain.StatusCancelled
	cancelledAt := testNow.Add(-24 * time.Hour)
	cancelled.CancelledAt = &cancelledAt

	// the cancelled stay released its slot and another booking took it
	rebooked := scheduledHotel(2, 1, start, end)
	rebooked.DogID = 20

	f := newFixture(cancelled, rebooked)

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID:      1,
		ReservationID: 1,
		Memo:          ptr.Ptr("owner no-show, invoice waived"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, resp.Status)
	require.NotNil(t, resp.Memo)
	assert.Equal(t, "owner no-show, invoice waived", *resp.Memo)

	// the occupying reservation is untouched
	assert.Equal(t, domain.StatusScheduled, f.repo.get(2).Status)
}

func TestExecute_NoChangeRequestSkipsWrite(t *testing.T) {
	res := scheduledDaycare()
	seededUpdatedAt := testNow.Add(-48 * time.Hour)
	res.UpdatedAt = seededUpdatedAt

	f := newFixture(res)

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID:      1,
		ReservationID: 1,
		Status:        ptr.Ptr(domain.StatusScheduled),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusScheduled, resp.Status)
	assert.False(t, resp.LedgerApplied)
	assert.Equal(t, 0, f.repo.updates)
	assert.Equal(t, seededUpdatedAt, f.repo.get(1).UpdatedAt)
	assert.Equal(t, 0, f.contracts.decrements)
}

func TestExecute_MemoAndDetailsOnly(t *testing.T) {
	f := newFixture(scheduledDaycare())

	details := json.RawMessage(`{"groomer":"A. Lee"}`)
	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID:      1,
		ReservationID: 1,
		Memo:          ptr.Ptr("pickup at 5pm"),
		Details:       details,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusScheduled, resp.Status)
	require.NotNil(t, resp.Memo)
	assert.Equal(t, "pickup at 5pm", *resp.Memo)
	assert.JSONEq(t, `{"groomer":"A. Lee"}`, string(resp.Details))
	assert.Nil(t, resp.CheckedInAt)
}
