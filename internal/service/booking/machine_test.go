package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/courtbook/internal/domain"
	"github.com/kirinyoku/courtbook/internal/repository"
)

// memLedger is an in-memory store with whole-store transactions: runTx
// serializes callers and restores a snapshot when fn fails.
type memLedger struct {
	mu       sync.Mutex
	slots    map[int64]domain.CourtSlot
	bookings map[int64]domain.Booking
	nextID   int64

	failSlotSwap bool
	insertErr    error
	// afterGetSlot runs inside GetSlot with the store locked.
	afterGetSlot func(l *memLedger)
}

func newMemLedger(slots ...domain.CourtSlot) *memLedger {
	l := &memLedger{
		slots:    make(map[int64]domain.CourtSlot),
		bookings: make(map[int64]domain.Booking),
	}
	for _, s := range slots {
		l.slots[s.ID] = s
	}
	return l
}

func (l *memLedger) runTx(fn func(tx Ledger) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	slots := make(map[int64]domain.CourtSlot, len(l.slots))
	for k, v := range l.slots {
		slots[k] = v
	}
	bookings := make(map[int64]domain.Booking, len(l.bookings))
	for k, v := range l.bookings {
		bookings[k] = v
	}
	nextID := l.nextID

	if err := fn(memTx{l}); err != nil {
		l.slots, l.bookings, l.nextID = slots, bookings, nextID
		return err
	}
	return nil
}

type memTx struct{ l *memLedger }

func (t memTx) GetSlot(_ context.Context, slotID int64) (*domain.CourtSlot, error) {
	s, ok := t.l.slots[slotID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if t.l.afterGetSlot != nil {
		t.l.afterGetSlot(t.l)
	}
	return &s, nil
}

func (t memTx) GetBooking(_ context.Context, bookingID int64) (*domain.Booking, error) {
	b, ok := t.l.bookings[bookingID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (t memTx) InsertBooking(_ context.Context, userID uuid.UUID, slotID int64, at time.Time) (*domain.Booking, error) {
	if t.l.insertErr != nil {
		return nil, t.l.insertErr
	}
	for _, b := range t.l.bookings {
		if b.CourtSlotID == slotID && b.Status {
			return nil, repository.ErrConflict
		}
	}

	t.l.nextID++
	b := domain.Booking{
		ID:          t.l.nextID,
		UserID:      userID,
		CourtSlotID: slotID,
		BookingTime: at,
		Status:      true,
		CreatedAt:   at,
	}
	t.l.bookings[b.ID] = b
	return &b, nil
}

func (t memTx) SwapSlotBooked(_ context.Context, slotID int64, from, to bool) (bool, error) {
	if t.l.failSlotSwap {
		return false, errors.New("connection reset")
	}
	s, ok := t.l.slots[slotID]
	if !ok || s.IsBooked != from {
		return false, nil
	}
	s.IsBooked = to
	t.l.slots[slotID] = s
	return true, nil
}

func (t memTx) SwapBookingStatus(_ context.Context, bookingID int64, from, to bool) (bool, error) {
	b, ok := t.l.bookings[bookingID]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	t.l.bookings[bookingID] = b
	return true, nil
}

// pairViolations returns the slots whose booked flag disagrees with their
// bookings or that have more than one active booking.
func (l *memLedger) pairViolations() []int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	active := make(map[int64]int)
	for _, b := range l.bookings {
		if b.Status {
			active[b.CourtSlotID]++
		}
	}

	var out []int64
	for id, s := range l.slots {
		if active[id] > 1 || (active[id] == 1) != s.IsBooked {
			out = append(out, id)
		}
	}
	return out
}

func (l *memLedger) assertPairsConsistent(t *testing.T) {
	t.Helper()
	assert.Empty(t, l.pairViolations(), "slots with inconsistent booking pairs")
}

func freeSlot(id int64) domain.CourtSlot {
	return domain.CourtSlot{
		ID:        id,
		CourtID:   1,
		DayOfWeek: domain.Monday,
		StartTime: "06:00",
		EndTime:   "07:00",
	}
}

var testNow = time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)

func book(l *memLedger, user uuid.UUID, slotID int64) (*Transition, error) {
	var tr *Transition
	err := l.runTx(func(tx Ledger) error {
		var err error
		tr, err = Book(context.Background(), tx, user, slotID, testNow)
		return err
	})
	return tr, err
}

func cancel(l *memLedger, bookingID int64) (*Transition, error) {
	var tr *Transition
	err := l.runTx(func(tx Ledger) error {
		var err error
		tr, err = Cancel(context.Background(), tx, bookingID)
		return err
	})
	return tr, err
}

func TestBookFreeSlotThenConflict(t *testing.T) {
	l := newMemLedger(freeSlot(1))
	alice, bob := uuid.New(), uuid.New()

	tr, err := book(l, alice, 1)
	require.NoError(t, err)

	assert.True(t, tr.Booking.Status)
	assert.Equal(t, alice, tr.Booking.UserID)
	assert.Equal(t, testNow, tr.Booking.BookingTime)
	assert.True(t, tr.Slot.IsBooked)
	assert.True(t, l.slots[1].IsBooked)

	_, err = book(l, bob, 1)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Len(t, l.bookings, 1)

	l.assertPairsConsistent(t)
}

func TestCancelFreesSlotForRebooking(t *testing.T) {
	l := newMemLedger(freeSlot(1))
	alice, bob := uuid.New(), uuid.New()

	tr, err := book(l, alice, 1)
	require.NoError(t, err)

	cancelled, err := cancel(l, tr.Booking.ID)
	require.NoError(t, err)
	assert.False(t, cancelled.Booking.Status)
	assert.False(t, cancelled.Slot.IsBooked)
	assert.False(t, l.bookings[tr.Booking.ID].Status)
	assert.False(t, l.slots[1].IsBooked)

	_, err = cancel(l, tr.Booking.ID)
	assert.ErrorIs(t, err, ErrBookingNotActive)

	again, err := book(l, bob, 1)
	require.NoError(t, err)
	assert.NotEqual(t, tr.Booking.ID, again.Booking.ID)

	l.assertPairsConsistent(t)
}

func TestBookAndCancelNotFound(t *testing.T) {
	l := newMemLedger()

	_, err := book(l, uuid.New(), 42)
	assert.ErrorIs(t, err, ErrSlotNotFound)

	_, err = cancel(l, 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestBookUniqueIndexMapsToUnavailable(t *testing.T) {
	l := newMemLedger(freeSlot(1))
	// Active booking exists but the flag was lost.
	l.bookings[7] = domain.Booking{ID: 7, CourtSlotID: 1, Status: true}
	l.nextID = 7

	_, err := book(l, uuid.New(), 1)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Len(t, l.bookings, 1)
}

func TestCancelToleratesAlreadyFreeSlot(t *testing.T) {
	l := newMemLedger(freeSlot(1))
	l.bookings[7] = domain.Booking{ID: 7, CourtSlotID: 1, Status: true}

	tr, err := cancel(l, 7)
	require.NoError(t, err)
	assert.False(t, tr.Booking.Status)

	l.assertPairsConsistent(t)
}

func TestPartialWriteRollsBack(t *testing.T) {
	l := newMemLedger(freeSlot(1))
	l.failSlotSwap = true

	_, err := book(l, uuid.New(), 1)

	var pw *PartialWriteError
	require.ErrorAs(t, err, &pw)
	assert.Equal(t, int64(1), pw.SlotID)
	assert.NotZero(t, pw.BookingID)
	assert.Empty(t, l.bookings)
	assert.False(t, l.slots[1].IsBooked)
}

func TestPartialWriteOnCancel(t *testing.T) {
	l := newMemLedger(freeSlot(1))
	tr, err := book(l, uuid.New(), 1)
	require.NoError(t, err)

	l.failSlotSwap = true
	_, err = cancel(l, tr.Booking.ID)

	var pw *PartialWriteError
	require.ErrorAs(t, err, &pw)
	assert.Equal(t, tr.Booking.ID, pw.BookingID)
	assert.True(t, l.bookings[tr.Booking.ID].Status)

	l.failSlotSwap = false
	l.assertPairsConsistent(t)
}

func TestBookStaleFlagIsPartialWrite(t *testing.T) {
	l := newMemLedger(freeSlot(1))
	// Another writer sets the flag between the read and the swap.
	l.afterGetSlot = func(l *memLedger) {
		s := l.slots[1]
		s.IsBooked = true
		l.slots[1] = s
	}

	_, err := book(l, uuid.New(), 1)

	var pw *PartialWriteError
	require.ErrorAs(t, err, &pw)
	assert.Equal(t, "mark slot booked", pw.Step)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Empty(t, l.bookings)
}

func TestBookMissingUserIsNotUnavailable(t *testing.T) {
	l := newMemLedger(freeSlot(1))
	l.insertErr = fmt.Errorf("postgres.BookingRepo.InsertBooking:%w: bookings_user_id_fkey", repository.ErrReferenceMissing)

	_, err := book(l, uuid.New(), 1)

	assert.ErrorIs(t, err, repository.ErrReferenceMissing)
	assert.NotErrorIs(t, err, ErrSlotUnavailable)
	assert.False(t, l.slots[1].IsBooked)
}

func TestPairState(t *testing.T) {
	active := &domain.Booking{Status: true}
	cancelled := &domain.Booking{Status: false}

	tests := []struct {
		name    string
		booked  bool
		booking *domain.Booking
		want    State
	}{
		{"free slot without booking", false, nil, Available},
		{"booked slot without booking", true, nil, Inconsistent},
		{"active booking on booked slot", true, active, Booked},
		{"active booking on free slot", false, active, Inconsistent},
		{"cancelled booking on free slot", false, cancelled, Cancelled},
		{"cancelled booking on booked slot", true, cancelled, Cancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PairState(domain.CourtSlot{IsBooked: tt.booked}, tt.booking)
			assert.Equal(t, tt.want, got)
		})
	}
}
