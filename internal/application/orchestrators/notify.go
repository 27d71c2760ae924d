package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"gymportal/internal/adapters/email"
	"gymportal/internal/domain/lesson"
	"gymportal/internal/domain/member"
	"gymportal/internal/i18n"
)

// Lesson email kinds. Each has an email.<kind>.subject and email.<kind>.body message.
const (
	MailBooked     = "booked"
	MailWaitlisted = "waitlisted"
	MailPromoted   = "promoted"
	MailReminder   = "reminder"
)

// LessonMailer composes and sends lesson emails to members.
// A nil *LessonMailer or a nil Sender disables email.
type LessonMailer struct {
	Sender     email.Sender
	Translator *i18n.Translator
	Location   *time.Location
}

// Compose builds the message for one member and lesson.
// PRE: kind is one of the Mail* constants
func (m *LessonMailer) Compose(kind string, to member.Member, l lesson.Lesson) (email.Message, error) {
	t := m.Translator
	if t == nil {
		t = i18n.FromContext(context.Background())
	}
	loc := m.Location
	if loc == nil {
		loc = time.UTC
	}
	start, err := l.StartsAt(loc)
	if err != nil {
		return email.Message{}, err
	}
	day := t.FormatDay(start)

	var subject string
	if kind == MailReminder {
		subject = t.T("email."+kind+".subject", l.Title, l.StartTime)
	} else {
		subject = t.T("email."+kind+".subject", l.Title, day)
	}
	return email.Message{
		To:      []string{to.Email},
		Subject: subject,
		Text:    t.T("email."+kind+".body", to.FirstName(), l.Title, day, l.StartTime),
		Tag:     "lesson_" + kind,
	}, nil
}

// Notify sends a lesson email. Failures are logged and never returned:
// a booking stands whether or not its email goes out.
func (m *LessonMailer) Notify(ctx context.Context, kind string, to member.Member, l lesson.Lesson) bool {
	if m == nil || m.Sender == nil {
		return false
	}
	msg, err := m.Compose(kind, to, l)
	if err != nil {
		slog.Warn("email_event", "event", "compose_failed", "kind", kind, "lesson_id", l.ID, "error", err.Error())
		return false
	}
	if _, err := m.Sender.Send(ctx, msg); err != nil {
		slog.Warn("email_event", "event", "send_failed", "kind", kind, "member_id", to.ID, "error", err.Error())
		return false
	}
	return true
}
