package orchestrators

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"gymportal/internal/domain/booking"
	"gymportal/internal/domain/lesson"
	"gymportal/internal/domain/member"
)

// capacityMu serialises every read-count-then-write on lesson and pilates
// capacity. The server is a single process over one SQLite file.
var capacityMu sync.Mutex

// LessonStoreForBooking defines the lesson store interface needed by booking orchestrators.
type LessonStoreForBooking interface {
	GetByID(ctx context.Context, id string) (lesson.Lesson, error)
}

// BookingStoreForBooking defines the booking store interface needed by booking orchestrators.
type BookingStoreForBooking interface {
	GetByID(ctx context.Context, id string) (booking.Booking, error)
	Save(ctx context.Context, b booking.Booking) error
	ListByLesson(ctx context.Context, lessonID string) ([]booking.Booking, error)
}

// MemberStoreForBooking defines the member store interface needed by booking orchestrators.
type MemberStoreForBooking interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
}

// BookLessonInput carries input for the orchestrator.
type BookLessonInput struct {
	LessonID string
	MemberID string
}

// BookLessonDeps holds dependencies for BookLesson.
type BookLessonDeps struct {
	LessonStore  LessonStoreForBooking
	BookingStore BookingStoreForBooking
	MemberStore  MemberStoreForBooking
	Mailer       *LessonMailer
	Location     *time.Location
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteBookLesson places the member on the lesson or, when it is full, on its waitlist.
// PRE: LessonID and MemberID are non-empty
// POST: A confirmed or waitlisted booking is persisted; the member is emailed best-effort
// INVARIANT: confirmed bookings never exceed capacity; waitlist never exceeds booking.WaitlistLimit
func ExecuteBookLesson(ctx context.Context, input BookLessonInput, deps BookLessonDeps) (booking.Booking, error) {
	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return booking.Booking{}, err
	}
	if !m.IsActive() {
		return booking.Booking{}, member.ErrSuspended
	}

	l, err := deps.LessonStore.GetByID(ctx, input.LessonID)
	if err != nil {
		return booking.Booking{}, err
	}
	now := deps.Now()
	if l.HasStarted(now, deps.Location) {
		return booking.Booking{}, booking.ErrLessonStarted
	}

	capacityMu.Lock()
	defer capacityMu.Unlock()

	existing, err := deps.BookingStore.ListByLesson(ctx, l.ID)
	if err != nil {
		return booking.Booking{}, err
	}
	for _, b := range existing {
		if b.MemberID == m.ID && b.IsActive() {
			return booking.Booking{}, booking.ErrAlreadyBooked
		}
	}

	confirmed, waitlisted := booking.Counts(existing)
	b := booking.Booking{
		ID:        deps.GenerateID(),
		LessonID:  l.ID,
		MemberID:  m.ID,
		CreatedAt: now,
	}
	switch {
	case confirmed < l.Capacity:
		b.Status = booking.StatusConfirmed
	case waitlisted < booking.WaitlistLimit:
		b.Status = booking.StatusWaitlisted
	default:
		return booking.Booking{}, booking.ErrLessonFull
	}

	if err := b.Validate(); err != nil {
		return booking.Booking{}, err
	}
	if err := deps.BookingStore.Save(ctx, b); err != nil {
		return booking.Booking{}, err
	}

	slog.Info("booking_event", "event", "lesson_booked", "lesson_id", l.ID, "member_id", m.ID, "status", b.Status)

	kind := MailBooked
	if b.Status == booking.StatusWaitlisted {
		kind = MailWaitlisted
	}
	deps.Mailer.Notify(ctx, kind, m, l)
	return b, nil
}
