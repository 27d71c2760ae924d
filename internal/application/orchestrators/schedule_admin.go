package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"gymportal/internal/domain/booking"
	"gymportal/internal/domain/closure"
	"gymportal/internal/domain/lesson"
	"gymportal/internal/domain/member"
	"gymportal/internal/domain/pilates"
)

// Admin schedule errors
var (
	ErrLessonHasBookings     = errors.New("lesson has active bookings; cancel them first")
	ErrCapacityBelowBookings = errors.New("capacity cannot be lower than the confirmed bookings")
	ErrSlotClash             = errors.New("another pilates class already starts at that day and time")
)

// LessonAdminStore defines the lesson store interface needed by schedule admin.
type LessonAdminStore interface {
	GetByID(ctx context.Context, id string) (lesson.Lesson, error)
	Save(ctx context.Context, l lesson.Lesson) error
	Delete(ctx context.Context, id string) error
}

// BookingLister lists the bookings on a lesson.
type BookingLister interface {
	ListByLesson(ctx context.Context, lessonID string) ([]booking.Booking, error)
}

// LessonAdminDeps holds dependencies for lesson admin.
type LessonAdminDeps struct {
	LessonStore  LessonAdminStore
	BookingStore BookingLister
	GenerateID   func() string
}

// ExecuteSaveLesson creates a lesson (empty ID) or updates an existing one.
// PRE: l passes lesson.Validate
// POST: Lesson persisted; capacity never drops below confirmed bookings
func ExecuteSaveLesson(ctx context.Context, l lesson.Lesson, deps LessonAdminDeps) (lesson.Lesson, error) {
	created := l.ID == ""
	if created {
		l.ID = deps.GenerateID()
	}
	if err := l.Validate(); err != nil {
		return lesson.Lesson{}, err
	}
	if !created {
		if _, err := deps.LessonStore.GetByID(ctx, l.ID); err != nil {
			return lesson.Lesson{}, err
		}
		bookings, err := deps.BookingStore.ListByLesson(ctx, l.ID)
		if err != nil {
			return lesson.Lesson{}, err
		}
		if confirmed, _ := booking.Counts(bookings); confirmed > l.Capacity {
			return lesson.Lesson{}, ErrCapacityBelowBookings
		}
	}
	if err := deps.LessonStore.Save(ctx, l); err != nil {
		return lesson.Lesson{}, err
	}
	slog.Info("schedule_event", "event", "lesson_saved", "lesson_id", l.ID, "date", l.Date, "created", created)
	return l, nil
}

// ExecuteDeleteLesson removes a lesson without active bookings.
// PRE: id is non-empty
// POST: Lesson and its cancelled bookings are gone
func ExecuteDeleteLesson(ctx context.Context, id string, deps LessonAdminDeps) error {
	if _, err := deps.LessonStore.GetByID(ctx, id); err != nil {
		return err
	}
	bookings, err := deps.BookingStore.ListByLesson(ctx, id)
	if err != nil {
		return err
	}
	for _, b := range bookings {
		if b.IsActive() {
			return ErrLessonHasBookings
		}
	}
	if err := deps.LessonStore.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("schedule_event", "event", "lesson_deleted", "lesson_id", id)
	return nil
}

// SlotAdminStore defines the pilates store interface needed by schedule admin.
type SlotAdminStore interface {
	SaveSlot(ctx context.Context, s pilates.Slot) error
	ListSlots(ctx context.Context) ([]pilates.Slot, error)
}

// ExecuteSaveSlot creates or updates a recurring pilates slot.
// PRE: s passes pilates.Validate
// POST: Slot persisted
// INVARIANT: at most one slot starts at a given day and time, so each week grid cell holds one slot
func ExecuteSaveSlot(ctx context.Context, s pilates.Slot, store SlotAdminStore, generateID func() string) (pilates.Slot, error) {
	if s.ID == "" {
		s.ID = generateID()
	}
	if err := s.Validate(); err != nil {
		return pilates.Slot{}, err
	}
	existing, err := store.ListSlots(ctx)
	if err != nil {
		return pilates.Slot{}, err
	}
	for _, other := range existing {
		if other.ID != s.ID && other.Day == s.Day && other.StartTime == s.StartTime {
			return pilates.Slot{}, ErrSlotClash
		}
	}
	if err := store.SaveSlot(ctx, s); err != nil {
		return pilates.Slot{}, err
	}
	slog.Info("schedule_event", "event", "slot_saved", "slot_id", s.ID, "day", s.Day, "start", s.StartTime)
	return s, nil
}

// ClosureAdminStore defines the closure store interface needed by schedule admin.
type ClosureAdminStore interface {
	Save(ctx context.Context, c closure.Closure) error
	Delete(ctx context.Context, id string) error
}

// ExecuteSaveClosure records a studio closure.
// PRE: c passes closure.Validate
// POST: Closure persisted; existing reservations are left for staff to handle
func ExecuteSaveClosure(ctx context.Context, c closure.Closure, store ClosureAdminStore, generateID func() string) (closure.Closure, error) {
	if c.ID == "" {
		c.ID = generateID()
	}
	if err := c.Validate(); err != nil {
		return closure.Closure{}, err
	}
	if err := store.Save(ctx, c); err != nil {
		return closure.Closure{}, err
	}
	slog.Info("schedule_event", "event", "closure_saved", "closure_id", c.ID, "from", c.StartDate.Format("2006-01-02"), "to", c.EndDate.Format("2006-01-02"))
	return c, nil
}

// MemberStatusStore defines the member store interface needed to suspend members.
type MemberStatusStore interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
	Save(ctx context.Context, m member.Member) error
}

// ExecuteSetMemberStatus suspends or reinstates a member.
// PRE: status is member.StatusActive or member.StatusSuspended
// POST: Member status updated
func ExecuteSetMemberStatus(ctx context.Context, memberID, status string, store MemberStatusStore) (member.Member, error) {
	m, err := store.GetByID(ctx, memberID)
	if err != nil {
		return member.Member{}, err
	}
	switch status {
	case member.StatusSuspended:
		err = m.Suspend()
	case member.StatusActive:
		err = m.Reinstate()
	default:
		err = member.ErrInvalidStatus
	}
	if err != nil {
		return member.Member{}, err
	}
	if err := store.Save(ctx, m); err != nil {
		return member.Member{}, err
	}
	slog.Info("member_event", "event", "status_changed", "member_id", m.ID, "status", m.Status)
	return m, nil
}
