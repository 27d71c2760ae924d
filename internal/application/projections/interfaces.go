package projections

import (
	"context"

	domainAttendance "gymportal/internal/domain/attendance"
	domainBooking "gymportal/internal/domain/booking"
	domainClosure "gymportal/internal/domain/closure"
	domainLesson "gymportal/internal/domain/lesson"
	domainPilates "gymportal/internal/domain/pilates"
	domainQR "gymportal/internal/domain/qrcode"
	domainTraining "gymportal/internal/domain/training"
)

// LessonStore interface for lesson queries.
type LessonStore interface {
	GetByID(ctx context.Context, id string) (domainLesson.Lesson, error)
	ListByDate(ctx context.Context, date string) ([]domainLesson.Lesson, error)
	CountByDate(ctx context.Context, from, to string) (map[string]int, error)
}

// BookingStore interface for booking queries.
type BookingStore interface {
	ListActiveByLessons(ctx context.Context, lessonIDs []string) ([]domainBooking.Booking, error)
	ListByMember(ctx context.Context, memberID string) ([]domainBooking.Booking, error)
}

// PilatesStore interface for timetable queries.
type PilatesStore interface {
	ListSlots(ctx context.Context) ([]domainPilates.Slot, error)
	ListReservationsByDateRange(ctx context.Context, from, to string) ([]domainPilates.Reservation, error)
}

// ClosureStore interface for closure queries.
type ClosureStore interface {
	ListOverlapping(ctx context.Context, from, to string) ([]domainClosure.Closure, error)
}

// QRCodeStore interface for QR code queries.
type QRCodeStore interface {
	ListByMember(ctx context.Context, memberID string) ([]domainQR.Code, error)
}

// AttendanceStore interface for desk queries.
type AttendanceStore interface {
	ListByDate(ctx context.Context, date string) ([]domainAttendance.Attendance, error)
}

// ContentSource returns the personal training content for a language.
type ContentSource interface {
	For(lang string) *domainTraining.Content
}
