package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"gymportal/internal/domain/calendar"
	"gymportal/internal/domain/closure"
	"gymportal/internal/domain/member"
	"gymportal/internal/domain/pilates"
)

// PilatesStoreForReserve defines the pilates store interface needed by reservation orchestrators.
type PilatesStoreForReserve interface {
	GetSlot(ctx context.Context, id string) (pilates.Slot, error)
	GetReservation(ctx context.Context, id string) (pilates.Reservation, error)
	SaveReservation(ctx context.Context, r pilates.Reservation) error
	ListReservationsByOccurrence(ctx context.Context, slotID, date string) ([]pilates.Reservation, error)
}

// ClosureLookup lists studio closures touching a date range (YYYY-MM-DD, inclusive).
type ClosureLookup interface {
	ListOverlapping(ctx context.Context, from, to string) ([]closure.Closure, error)
}

// ReservePilatesInput carries input for the orchestrator.
type ReservePilatesInput struct {
	SlotID   string
	Date     string // YYYY-MM-DD
	MemberID string
}

// ReservePilatesDeps holds dependencies for ReservePilates.
type ReservePilatesDeps struct {
	PilatesStore PilatesStoreForReserve
	ClosureStore ClosureLookup
	MemberStore  MemberStoreForBooking
	Location     *time.Location
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteReservePilates reserves a reformer in one dated occurrence of a slot.
// PRE: SlotID, Date and MemberID are non-empty
// POST: A confirmed reservation is persisted
// INVARIANT: confirmed reservations per occurrence never exceed the slot capacity
func ExecuteReservePilates(ctx context.Context, input ReservePilatesInput, deps ReservePilatesDeps) (pilates.Reservation, error) {
	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return pilates.Reservation{}, err
	}
	if !m.IsActive() {
		return pilates.Reservation{}, member.ErrSuspended
	}

	slot, err := deps.PilatesStore.GetSlot(ctx, input.SlotID)
	if err != nil {
		return pilates.Reservation{}, err
	}
	date, err := calendar.ParseDate(input.Date)
	if err != nil {
		return pilates.Reservation{}, err
	}
	if !slot.FallsOn(date) {
		return pilates.Reservation{}, pilates.ErrWrongWeekday
	}
	start, err := slot.StartsAt(date, deps.Location)
	if err != nil {
		return pilates.Reservation{}, err
	}
	now := deps.Now()
	if !now.Before(start) {
		return pilates.Reservation{}, pilates.ErrSlotStarted
	}

	closures, err := deps.ClosureStore.ListOverlapping(ctx, input.Date, input.Date)
	if err != nil {
		return pilates.Reservation{}, err
	}
	if closure.AnyContains(closures, date) {
		return pilates.Reservation{}, pilates.ErrStudioClosed
	}

	capacityMu.Lock()
	defer capacityMu.Unlock()

	existing, err := deps.PilatesStore.ListReservationsByOccurrence(ctx, slot.ID, input.Date)
	if err != nil {
		return pilates.Reservation{}, err
	}
	booked := 0
	for _, r := range existing {
		if !r.IsActive() {
			continue
		}
		if r.MemberID == m.ID {
			return pilates.Reservation{}, pilates.ErrAlreadyReserved
		}
		booked++
	}
	if booked >= slot.Capacity {
		return pilates.Reservation{}, pilates.ErrSlotFull
	}

	r := pilates.Reservation{
		ID:        deps.GenerateID(),
		SlotID:    slot.ID,
		Date:      input.Date,
		MemberID:  m.ID,
		Status:    pilates.StatusConfirmed,
		CreatedAt: now,
	}
	if err := r.Validate(); err != nil {
		return pilates.Reservation{}, err
	}
	if err := deps.PilatesStore.SaveReservation(ctx, r); err != nil {
		return pilates.Reservation{}, err
	}

	slog.Info("pilates_event", "event", "reformer_reserved", "slot_id", slot.ID, "date", input.Date, "member_id", m.ID)
	return r, nil
}

// CancelPilatesInput carries input for the orchestrator.
type CancelPilatesInput struct {
	ReservationID string
	MemberID      string
	AsAdmin       bool
}

// CancelPilatesDeps holds dependencies for CancelPilates.
type CancelPilatesDeps struct {
	PilatesStore PilatesStoreForReserve
	Location     *time.Location
	Cutoff       time.Duration
	Now          func() time.Time
}

// ExecuteCancelPilates releases a reservation. Admins bypass ownership and the cutoff.
// PRE: ReservationID is non-empty
// POST: Reservation is cancelled
func ExecuteCancelPilates(ctx context.Context, input CancelPilatesInput, deps CancelPilatesDeps) (pilates.Reservation, error) {
	r, err := deps.PilatesStore.GetReservation(ctx, input.ReservationID)
	if err != nil {
		return pilates.Reservation{}, err
	}
	if !input.AsAdmin && r.MemberID != input.MemberID {
		return pilates.Reservation{}, pilates.ErrNotOwner
	}
	slot, err := deps.PilatesStore.GetSlot(ctx, r.SlotID)
	if err != nil {
		return pilates.Reservation{}, err
	}
	date, err := calendar.ParseDate(r.Date)
	if err != nil {
		return pilates.Reservation{}, err
	}
	start, err := slot.StartsAt(date, deps.Location)
	if err != nil {
		return pilates.Reservation{}, err
	}

	cutoff := deps.Cutoff
	if input.AsAdmin {
		cutoff = 0
	}
	if err := r.Cancel(deps.Now(), start, cutoff); err != nil {
		return pilates.Reservation{}, err
	}
	if err := deps.PilatesStore.SaveReservation(ctx, r); err != nil {
		return pilates.Reservation{}, err
	}

	slog.Info("pilates_event", "event", "reservation_cancelled", "reservation_id", r.ID, "slot_id", slot.ID, "date", r.Date, "by_admin", input.AsAdmin)
	return r, nil
}
