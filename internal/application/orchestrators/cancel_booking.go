package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"gymportal/internal/domain/booking"
)

// CancelBookingInput carries input for the orchestrator.
type CancelBookingInput struct {
	BookingID string
	MemberID  string // caller's member ID; ignored when AsAdmin
	AsAdmin   bool
}

// CancelBookingResult reports the cancelled booking and any waitlist promotion.
type CancelBookingResult struct {
	Booking  booking.Booking
	Promoted *booking.Booking
}

// CancelBookingDeps holds dependencies for CancelBooking.
type CancelBookingDeps struct {
	LessonStore  LessonStoreForBooking
	BookingStore BookingStoreForBooking
	MemberStore  MemberStoreForBooking
	Mailer       *LessonMailer
	Location     *time.Location
	Cutoff       time.Duration
	Now          func() time.Time
}

// ExecuteCancelBooking cancels a booking and, if it held a place, promotes the oldest waitlisted booking.
// Admins bypass the ownership check and the cancellation cutoff.
// PRE: BookingID is non-empty
// POST: Booking is cancelled; at most one waitlisted booking is confirmed
func ExecuteCancelBooking(ctx context.Context, input CancelBookingInput, deps CancelBookingDeps) (CancelBookingResult, error) {
	b, err := deps.BookingStore.GetByID(ctx, input.BookingID)
	if err != nil {
		return CancelBookingResult{}, err
	}
	if !input.AsAdmin && b.MemberID != input.MemberID {
		return CancelBookingResult{}, booking.ErrNotOwner
	}

	l, err := deps.LessonStore.GetByID(ctx, b.LessonID)
	if err != nil {
		return CancelBookingResult{}, err
	}
	start, err := l.StartsAt(deps.Location)
	if err != nil {
		return CancelBookingResult{}, err
	}

	cutoff := deps.Cutoff
	if input.AsAdmin {
		cutoff = 0
	}

	capacityMu.Lock()
	defer capacityMu.Unlock()

	wasConfirmed := b.Status == booking.StatusConfirmed
	if err := b.Cancel(deps.Now(), start, cutoff); err != nil {
		return CancelBookingResult{}, err
	}
	if err := deps.BookingStore.Save(ctx, b); err != nil {
		return CancelBookingResult{}, err
	}
	slog.Info("booking_event", "event", "booking_cancelled", "booking_id", b.ID, "lesson_id", l.ID, "by_admin", input.AsAdmin)

	result := CancelBookingResult{Booking: b}
	if !wasConfirmed {
		return result, nil
	}

	remaining, err := deps.BookingStore.ListByLesson(ctx, l.ID)
	if err != nil {
		return result, err
	}
	confirmed, _ := booking.Counts(remaining)
	if confirmed >= l.Capacity {
		return result, nil
	}
	next := booking.NextInWaitlist(remaining)
	if next == nil {
		return result, nil
	}
	promoted := *next
	if err := promoted.Promote(); err != nil {
		return result, err
	}
	if err := deps.BookingStore.Save(ctx, promoted); err != nil {
		return result, err
	}
	result.Promoted = &promoted
	slog.Info("booking_event", "event", "waitlist_promoted", "booking_id", promoted.ID, "lesson_id", l.ID, "member_id", promoted.MemberID)

	if m, err := deps.MemberStore.GetByID(ctx, promoted.MemberID); err == nil {
		deps.Mailer.Notify(ctx, MailPromoted, m, l)
	}
	return result, nil
}
