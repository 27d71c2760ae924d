package projections

import (
	"context"
	"fmt"
	"sort"
	"time"
	_ "time/tzdata"

	domainAttendance "gymportal/internal/domain/attendance"
	domainBooking "gymportal/internal/domain/booking"
	domainClosure "gymportal/internal/domain/closure"
	domainLesson "gymportal/internal/domain/lesson"
	domainPilates "gymportal/internal/domain/pilates"
	domainQR "gymportal/internal/domain/qrcode"
	domainTraining "gymportal/internal/domain/training"
)

var rome, _ = time.LoadLocation("Europe/Rome")

// 2026-03-04 is a Wednesday; 10:00 in Rome.
var fixedTime = time.Date(2026, 3, 4, 10, 0, 0, 0, rome)

func fixedNow() time.Time { return fixedTime }

type mockLessonStore struct {
	lessons []domainLesson.Lesson
}

func (m *mockLessonStore) GetByID(_ context.Context, id string) (domainLesson.Lesson, error) {
	for _, l := range m.lessons {
		if l.ID == id {
			return l, nil
		}
	}
	return domainLesson.Lesson{}, fmt.Errorf("lesson %s: %w", id, domainLesson.ErrNotFound)
}

func (m *mockLessonStore) ListByDate(_ context.Context, date string) ([]domainLesson.Lesson, error) {
	var out []domainLesson.Lesson
	for _, l := range m.lessons {
		if l.Date == date {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockLessonStore) CountByDate(_ context.Context, from, to string) (map[string]int, error) {
	counts := make(map[string]int)
	for _, l := range m.lessons {
		if l.Date >= from && l.Date <= to {
			counts[l.Date]++
		}
	}
	return counts, nil
}

type mockBookingStore struct {
	bookings []domainBooking.Booking
}

func (m *mockBookingStore) ListActiveByLessons(_ context.Context, ids []string) ([]domainBooking.Booking, error) {
	want := make(map[string]bool)
	for _, id := range ids {
		want[id] = true
	}
	var out []domainBooking.Booking
	for _, b := range m.bookings {
		if want[b.LessonID] && b.IsActive() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBookingStore) ListByMember(_ context.Context, memberID string) ([]domainBooking.Booking, error) {
	var out []domainBooking.Booking
	for _, b := range m.bookings {
		if b.MemberID == memberID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type mockPilatesStore struct {
	slots        []domainPilates.Slot
	reservations []domainPilates.Reservation
}

func (m *mockPilatesStore) ListSlots(_ context.Context) ([]domainPilates.Slot, error) {
	return m.slots, nil
}

func (m *mockPilatesStore) ListReservationsByDateRange(_ context.Context, from, to string) ([]domainPilates.Reservation, error) {
	var out []domainPilates.Reservation
	for _, r := range m.reservations {
		if r.Date >= from && r.Date <= to && r.IsActive() {
			out = append(out, r)
		}
	}
	return out, nil
}

type mockClosureStore struct {
	closures []domainClosure.Closure
}

func (m *mockClosureStore) ListOverlapping(_ context.Context, from, to string) ([]domainClosure.Closure, error) {
	var out []domainClosure.Closure
	for _, c := range m.closures {
		if c.StartDate.Format("2006-01-02") <= to && c.EndDate.Format("2006-01-02") >= from {
			out = append(out, c)
		}
	}
	return out, nil
}

type mockCodeStore struct {
	codes []domainQR.Code
}

func (m *mockCodeStore) ListByMember(_ context.Context, memberID string) ([]domainQR.Code, error) {
	var out []domainQR.Code
	for _, c := range m.codes {
		if c.MemberID == memberID {
			out = append(out, c)
		}
	}
	return out, nil
}

type mockAttendanceStore struct {
	records []domainAttendance.Attendance
}

func (m *mockAttendanceStore) ListByDate(_ context.Context, date string) ([]domainAttendance.Attendance, error) {
	var out []domainAttendance.Attendance
	for _, a := range m.records {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out, nil
}

type staticContent map[string]*domainTraining.Content

func (s staticContent) For(lang string) *domainTraining.Content {
	if c, ok := s[lang]; ok {
		return c
	}
	return s["en"]
}
