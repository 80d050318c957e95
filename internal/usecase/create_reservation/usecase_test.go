package create_reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawdesk/PD-ReservationService/internal/domain"
	roomRepo "github.com/pawdesk/PD-ReservationService/internal/infra/storage/room"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakeReservationRepo keeps reservations in memory and answers conflict
// queries with the same overlap semantics as the SQL implementation.
type fakeReservationRepo struct {
	mu           sync.Mutex
	nextID       int64
	reservations map[int64]*domain.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{nextID: 1, reservations: make(map[int64]*domain.Reservation)}
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored := *res
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.nextID++
	f.reservations[stored.ID] = &stored

	out := stored
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

func (f *fakeReservationRepo) CountOnDate(_ context.Context, tenantID int64, date time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	y, m, d := date.Date()
	count := 0
	for _, res := range f.reservations {
		if res.TenantID != tenantID || res.Status == domain.StatusCancelled {
			continue
		}
		ry, rm, rd := res.StartAt.Date()
		if ry == y && rm == m && rd == d {
			count++
		}
	}
	return count, nil
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

type fakeDirectory struct {
	owners map[int64]int64 // dogID -> tenantID
	err    error
}

func (f *fakeDirectory) BelongsToTenant(_ context.Context, dogID, tenantID int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	owner, ok := f.owners[dogID]
	return ok && owner == tenantID, nil
}

// fakeTxManager serializes transaction bodies with a mutex, mimicking the
// mutual exclusion the serializable isolation level provides for the
// conflict-check-then-insert sequence.
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

func newTestUseCase(maxDaily int) (*UseCase, *fakeReservationRepo) {
	repo := newFakeReservationRepo()
	rooms := &fakeRoomRepo{rooms: map[int64]*domain.HotelRoom{
		1: {ID: 1, TenantID: 1, Name: "Room A", Size: "large", Enabled: true},
		2: {ID: 2, TenantID: 1, Name: "Room B", Size: "small", Enabled: false},
		3: {ID: 3, TenantID: 2, Name: "Other tenant room", Enabled: true},
	}}
	directory := &fakeDirectory{owners: map[int64]int64{10: 1, 20: 2}}
	uc := NewUseCase(repo, rooms, directory, &fakeTxManager{}, maxDaily, nopLogger{})
	return uc, repo
}

func hotelRequest() *Request {
	roomID := int64(1)
	end := "2026-02-12 11:00"
	return &Request{
		TenantID:  1,
		DogID:     10,
		Category:  domain.CategoryHotel,
		Date:      "2026-02-10",
		StartTime: "11:00",
		EndAt:     &end,
		RoomID:    &roomID,
	}
}

func TestExecute_DaycareSuccess(t *testing.T) {
	uc, _ := newTestUseCase(0)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID:  1,
		DogID:     10,
		Category:  domain.CategoryDaycare,
		Date:      "2026-02-10",
		StartTime: "09:00",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusScheduled, resp.Status)
	assert.Nil(t, resp.EndAt)
	assert.Nil(t, resp.RoomID)
	assert.Equal(t, time.Date(2026, 2, 10, 9, 0, 0, 0, time.Local), resp.StartAt)
}

func TestExecute_HotelSuccess(t *testing.T) {
	uc, _ := newTestUseCase(0)

	resp, err := uc.Execute(context.Background(), hotelRequest())
	require.NoError(t, err)

	require.NotNil(t, resp.RoomID)
	assert.Equal(t, int64(1), *resp.RoomID)
	require.NotNil(t, resp.EndAt)
	assert.Equal(t, time.Date(2026, 2, 12, 11, 0, 0, 0, time.Local), *resp.EndAt)
}

func TestExecute_CategoryRoomPairing(t *testing.T) {
	uc, _ := newTestUseCase(0)
	ctx := context.Background()

	t.Run("hotel without room", func(t *testing.T) {
		req := hotelRequest()
		req.RoomID = nil
		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrRoomRequired)
	})

	t.Run("hotel without end time", func(t *testing.T) {
		req := hotelRequest()
		req.EndAt = nil
		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrEndTimeRequired)
	})

	t.Run("daycare with room", func(t *testing.T) {
		roomID := int64(1)
		_, err := uc.Execute(ctx, &Request{
			TenantID:  1,
			DogID:     10,
			Category:  domain.CategoryDaycare,
			Date:      "2026-02-10",
			StartTime: "09:00",
			RoomID:    &roomID,
		})
		assert.ErrorIs(t, err, ErrRoomNotAllowed)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := uc.Execute(ctx, &Request{
			TenantID:  1,
			DogID:     10,
			Category:  "spa",
			Date:      "2026-02-10",
			StartTime: "09:00",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecute_InvalidInterval(t *testing.T) {
	uc, _ := newTestUseCase(0)

	req := hotelRequest()
	bad := "2026-02-09 11:00" // before start
	req.EndAt = &bad

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestExecute_ForbiddenForeignDog(t *testing.T) {
	uc, repo := newTestUseCase(0)

	req := hotelRequest()
	req.DogID = 20 // belongs to tenant 2

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, repo.reservations)
}

func TestExecute_RoomNotFound(t *testing.T) {
	uc, _ := newTestUseCase(0)

	req := hotelRequest()
	missing := int64(99)
	req.RoomID = &missing

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestExecute_ForeignRoomNotFound(t *testing.T) {
	uc, _ := newTestUseCase(0)

	req := hotelRequest()
	foreign := int64(3) // exists, but belongs to tenant 2
	req.RoomID = &foreign

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestExecute_RoomDisabled(t *testing.T) {
	uc, _ := newTestUseCase(0)

	req := hotelRequest()
	disabled := int64(2)
	req.RoomID = &disabled

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrRoomDisabled)
}

func TestExecute_RoomConflict(t *testing.T) {
	uc, _ := newTestUseCase(0)
	ctx := context.Background()

	_, err := uc.Execute(ctx, hotelRequest())
	require.NoError(t, err)

	// overlapping stay in the same room
	req := hotelRequest()
	req.Date = "2026-02-11"
	end := "2026-02-13 11:00"
	req.EndAt = &end

	_, err = uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestExecute_TouchingIntervalsDoNotConflict(t *testing.T) {
	uc, _ := newTestUseCase(0)
	ctx := context.Background()

	_, err := uc.Execute(ctx, hotelRequest()) // 02-10 11:00 .. 02-12 11:00
	require.NoError(t, err)

	// next stay starts exactly at the previous checkout instant
	req := hotelRequest()
	req.Date = "2026-02-12"
	end := "2026-02-14 11:00"
	req.EndAt = &end

	_, err = uc.Execute(ctx, req)
	assert.NoError(t, err)
}

func TestExecute_CapacityExceeded(t *testing.T) {
	uc, _ := newTestUseCase(2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := uc.Execute(ctx, &Request{
			TenantID:  1,
			DogID:     10,
			Category:  domain.CategoryDaycare,
			Date:      "2026-02-10",
			StartTime: "09:00",
		})
		require.NoError(t, err)
	}

	_, err := uc.Execute(ctx, &Request{
		TenantID:  1,
		DogID:     10,
		Category:  domain.CategoryGrooming,
		Date:      "2026-02-10",
		StartTime: "15:00",
	})
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	// a different day is unaffected
	_, err = uc.Execute(ctx, &Request{
		TenantID:  1,
		DogID:     10,
		Category:  domain.CategoryDaycare,
		Date:      "2026-02-11",
		StartTime: "09:00",
	})
	assert.NoError(t, err)
}

func TestExecute_ConcurrentCreatesSameRoom(t *testing.T) {
	uc, repo := newTestUseCase(0)

	const attempts = 10
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), hotelRequest())
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrRoomUnavailable)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, repo.reservations, 1)
}
