package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	"slot-booking/internal/data/entity"
	"slot-booking/internal/data/repository"
	"slot-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// fakeState is the shared in-memory backend for the repository fakes. Its
// mutex stands in for the slot row lock: Begin acquires it, Commit and
// Rollback release it, so transactions serialize exactly like they do
// against the real database.
type fakeState struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*entity.User
	slots    map[uuid.UUID]*entity.Slot
	byCode   map[string]uuid.UUID
	bookings map[uuid.UUID]*entity.Booking

	// when set, the next AddBookedSeatsTx reports a rejected guard,
	// simulating a lost race
	failAddOnce atomic.Bool
}

func newFakeState() *fakeState {
	return &fakeState{
		users:    make(map[uuid.UUID]*entity.User),
		slots:    make(map[uuid.UUID]*entity.Slot),
		byCode:   make(map[string]uuid.UUID),
		bookings: make(map[uuid.UUID]*entity.Booking),
	}
}

func (st *fakeState) addUser(u *entity.User) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.users[u.ID] = u
}

func (st *fakeState) addSlot(s *entity.Slot) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.slots[s.ID] = s
	st.byCode[s.SlotCode] = s.ID
}

func (st *fakeState) addBooking(b *entity.Booking) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.bookings[b.ID] = b
}

func (st *fakeState) slotCopy(id uuid.UUID) *entity.Slot {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.slots[id]
	if !ok {
		return nil
	}
	cp := *s
	return &cp
}

// confirmedSeats must be called with st.mu held.
func (st *fakeState) confirmedSeats(slotID uuid.UUID) []string {
	var seats []string
	for _, b := range st.bookings {
		if b.SlotID == slotID && b.Status == entity.BookingStatusConfirmed {
			seats = append(seats, b.Seats...)
		}
	}
	return seats
}

// fakeTx stages mutations and applies them on Commit while holding the
// state mutex taken at Begin.
type fakeTx struct {
	pgx.Tx
	st      *fakeState
	pending []func()
	done    bool
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	for _, apply := range t.pending {
		apply()
	}
	t.done = true
	t.st.mu.Unlock()
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.st.mu.Unlock()
	return nil
}

type fakeDB struct {
	database.PgxIface
	st *fakeState
}

func (d *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	d.st.mu.Lock()
	return &fakeTx{st: d.st}, nil
}

type fakeUserRepo struct{ st *fakeState }

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.st.addUser(user)
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	u, ok := r.st.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, u := range r.st.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeSlotRepo struct{ st *fakeState }

func (r *fakeSlotRepo) Create(ctx context.Context, slot *entity.Slot) error {
	r.st.addSlot(slot)
	return nil
}

func (r *fakeSlotRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error) {
	return r.st.slotCopy(id), nil
}

func (r *fakeSlotRepo) FindByCode(ctx context.Context, code string) (*entity.Slot, error) {
	r.st.mu.Lock()
	id, ok := r.st.byCode[code]
	r.st.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return r.st.slotCopy(id), nil
}

func (r *fakeSlotRepo) FindAvailable(ctx context.Context, filter repository.SlotFilter) ([]*entity.Slot, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []*entity.Slot
	for _, s := range r.st.slots {
		if !s.IsAvailable {
			continue
		}
		if filter.Venue != "" && s.Venue != filter.Venue {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

// FindByIDForUpdateTx runs inside a fakeTx, which already holds the mutex.
func (r *fakeSlotRepo) FindByIDForUpdateTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entity.Slot, error) {
	s, ok := r.st.slots[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSlotRepo) AddBookedSeatsTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta int) (bool, error) {
	if r.st.failAddOnce.CompareAndSwap(true, false) {
		return false, nil
	}

	s, ok := r.st.slots[id]
	if !ok {
		return false, nil
	}
	next := s.BookedSeats + delta
	if next < 0 || next > s.Capacity {
		return false, nil
	}

	ft := tx.(*fakeTx)
	ft.pending = append(ft.pending, func() { s.BookedSeats = next })
	return true, nil
}

type fakeBookingRepo struct{ st *fakeState }

func (r *fakeBookingRepo) CreateTx(ctx context.Context, tx pgx.Tx, booking *entity.Booking) error {
	ft := tx.(*fakeTx)
	cp := *booking
	ft.pending = append(ft.pending, func() { r.st.bookings[cp.ID] = &cp })
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	b, ok := r.st.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) FindByReference(ctx context.Context, ref string) (*entity.Booking, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, b := range r.st.bookings {
		if b.BookingRef == ref {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var all []*entity.Booking
	for _, b := range r.st.bookings {
		if b.UserID == userID {
			cp := *b
			all = append(all, &cp)
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var n int64
	for _, b := range r.st.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) FindConfirmedSeatsBySlotID(ctx context.Context, slotID uuid.UUID) ([]string, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return r.st.confirmedSeats(slotID), nil
}

func (r *fakeBookingRepo) FindConfirmedSeatsBySlotIDTx(ctx context.Context, tx pgx.Tx, slotID uuid.UUID) ([]string, error) {
	return r.st.confirmedSeats(slotID), nil
}

func (r *fakeBookingRepo) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to entity.BookingStatus) (bool, error) {
	b, ok := r.st.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}

	ft := tx.(*fakeTx)
	ft.pending = append(ft.pending, func() { b.Status = to })
	return true, nil
}
