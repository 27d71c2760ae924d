package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gymportal/internal/domain/booking"
	"gymportal/internal/domain/lesson"
	"gymportal/internal/domain/member"
)

// ReminderBookingStore defines the booking store interface needed by the reminder processor.
type ReminderBookingStore interface {
	ListDueReminders(ctx context.Context, fromDate, toDate string) ([]booking.Booking, error)
	MarkReminded(ctx context.Context, id string, at time.Time) (bool, error)
}

// ReminderLessonStore defines the lesson store interface needed by the reminder processor.
type ReminderLessonStore interface {
	GetByID(ctx context.Context, id string) (lesson.Lesson, error)
}

// ReminderMemberStore defines the member store interface needed by the reminder processor.
type ReminderMemberStore interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
}

// ReminderProcessor emails members ahead of their confirmed lessons.
type ReminderProcessor struct {
	bookings ReminderBookingStore
	lessons  ReminderLessonStore
	members  ReminderMemberStore
	mailer   *LessonMailer
	window   time.Duration
	loc      *time.Location
	now      func() time.Time
}

// NewReminderProcessor creates a reminder processor that looks window ahead.
func NewReminderProcessor(bookings ReminderBookingStore, lessons ReminderLessonStore, members ReminderMemberStore, mailer *LessonMailer, window time.Duration, loc *time.Location) *ReminderProcessor {
	return &ReminderProcessor{
		bookings: bookings,
		lessons:  lessons,
		members:  members,
		mailer:   mailer,
		window:   window,
		loc:      loc,
		now:      time.Now,
	}
}

// ProcessDue sends one reminder per confirmed booking whose lesson starts within the window.
// PRE: Context is valid
// POST: Reminded bookings have RemindedAt set; failed sends are retried on the next run
func (p *ReminderProcessor) ProcessDue(ctx context.Context) (int, error) {
	now := p.now()
	horizon := now.Add(p.window)
	from := now.In(p.loc).Format("2006-01-02")
	to := horizon.In(p.loc).Format("2006-01-02")

	due, err := p.bookings.ListDueReminders(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("list due reminders: %w", err)
	}

	lessons := make(map[string]lesson.Lesson)
	sent := 0
	for _, b := range due {
		l, ok := lessons[b.LessonID]
		if !ok {
			l, err = p.lessons.GetByID(ctx, b.LessonID)
			if err != nil {
				slog.Error("reminder_lookup_failed", "booking_id", b.ID, "lesson_id", b.LessonID, "error", err.Error())
				continue
			}
			lessons[b.LessonID] = l
		}
		start, err := l.StartsAt(p.loc)
		if err != nil || !start.After(now) || start.After(horizon) {
			continue
		}

		m, err := p.members.GetByID(ctx, b.MemberID)
		if err != nil {
			slog.Error("reminder_lookup_failed", "booking_id", b.ID, "member_id", b.MemberID, "error", err.Error())
			continue
		}
		if !p.mailer.Notify(ctx, MailReminder, m, l) {
			continue
		}
		marked, err := p.bookings.MarkReminded(ctx, b.ID, now)
		if err != nil {
			slog.Error("reminder_save_failed", "booking_id", b.ID, "error", err.Error())
			continue
		}
		if !marked {
			// Cancelled while the email was in flight.
			slog.Warn("booking_event", "event", "reminder_stale", "booking_id", b.ID)
			continue
		}
		sent++
	}

	if sent > 0 {
		slog.Info("booking_event", "event", "reminders_sent", "count", sent)
	}
	return sent, nil
}

// StartBackgroundWorker starts a background goroutine that periodically sends due reminders.
// PRE: stopCh is provided to signal shutdown
// POST: Worker runs until stopCh is closed
func StartBackgroundWorker(processor *ReminderProcessor, interval time.Duration, stopCh <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
				if _, err := processor.ProcessDue(ctx); err != nil {
					slog.Error("reminder_background_process_failed", "error", err.Error())
				}
				cancel()
			case <-stopCh:
				slog.Info("reminder_background_worker_stopped")
				return
			}
		}
	}()
}
