package orchestrators

import (
	"context"
	"fmt"
	"sort"
	"time"
	_ "time/tzdata"

	"gymportal/internal/domain/account"
	"gymportal/internal/domain/attendance"
	"gymportal/internal/domain/booking"
	"gymportal/internal/domain/closure"
	"gymportal/internal/domain/lesson"
	"gymportal/internal/domain/member"
	"gymportal/internal/domain/pilates"
	"gymportal/internal/domain/qrcode"
)

var rome = mustLoad("Europe/Rome")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// 2026-03-02 is a Monday; 10:00 in Rome.
var fixedTime = time.Date(2026, 3, 2, 10, 0, 0, 0, rome)

func fixedNow() time.Time { return fixedTime }

func fixedID() string { return "test-id-001" }

// sequentialIDs returns a generator yielding id-1, id-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// --- Mock account store ---

type mockAccountStore struct {
	accounts map[string]account.Account
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{accounts: make(map[string]account.Account)}
}

func (m *mockAccountStore) GetByID(_ context.Context, id string) (account.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return account.Account{}, fmt.Errorf("account %s: %w", id, account.ErrNotFound)
	}
	return a, nil
}

func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	for _, a := range m.accounts {
		if a.Email == account.NormalizeEmail(email) {
			return a, nil
		}
	}
	return account.Account{}, fmt.Errorf("account %s: %w", email, account.ErrNotFound)
}

func (m *mockAccountStore) Save(_ context.Context, a account.Account) error {
	m.accounts[a.ID] = a
	return nil
}

func (m *mockAccountStore) Count(_ context.Context) (int, error) {
	return len(m.accounts), nil
}

// --- Mock member store ---

type mockMemberStore struct {
	members map[string]member.Member
}

func newMockMemberStore(members ...member.Member) *mockMemberStore {
	s := &mockMemberStore{members: make(map[string]member.Member)}
	for _, m := range members {
		s.members[m.ID] = m
	}
	return s
}

func (m *mockMemberStore) GetByID(_ context.Context, id string) (member.Member, error) {
	v, ok := m.members[id]
	if !ok {
		return member.Member{}, fmt.Errorf("member %s: %w", id, member.ErrNotFound)
	}
	return v, nil
}

func (m *mockMemberStore) GetByAccountID(_ context.Context, accountID string) (member.Member, error) {
	for _, v := range m.members {
		if v.AccountID == accountID {
			return v, nil
		}
	}
	return member.Member{}, fmt.Errorf("member %s: %w", accountID, member.ErrNotFound)
}

func (m *mockMemberStore) Save(_ context.Context, v member.Member) error {
	m.members[v.ID] = v
	return nil
}

func activeMember(id string) member.Member {
	return member.Member{ID: id, AccountID: "acct-" + id, Name: "Anna Rossi", Email: id + "@example.com", Status: member.StatusActive}
}

// --- Mock lesson store ---

type mockLessonStore struct {
	lessons map[string]lesson.Lesson
}

func newMockLessonStore(lessons ...lesson.Lesson) *mockLessonStore {
	s := &mockLessonStore{lessons: make(map[string]lesson.Lesson)}
	for _, l := range lessons {
		s.lessons[l.ID] = l
	}
	return s
}

func (m *mockLessonStore) GetByID(_ context.Context, id string) (lesson.Lesson, error) {
	l, ok := m.lessons[id]
	if !ok {
		return lesson.Lesson{}, fmt.Errorf("lesson %s: %w", id, lesson.ErrNotFound)
	}
	return l, nil
}

func (m *mockLessonStore) Save(_ context.Context, l lesson.Lesson) error {
	m.lessons[l.ID] = l
	return nil
}

func (m *mockLessonStore) Delete(_ context.Context, id string) error {
	delete(m.lessons, id)
	return nil
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

func testLesson(id, date, start string, capacity int) lesson.Lesson {
	return lesson.Lesson{
		ID: id, Title: "Spin 45", Category: lesson.CategorySpinning, Instructor: "Marco",
		Date: date, StartTime: start, EndTime: "23:59", Capacity: capacity,
	}
}

// --- Mock booking store ---

type mockBookingStore struct {
	bookings map[string]booking.Booking
	saves    int
}

func newMockBookingStore(bookings ...booking.Booking) *mockBookingStore {
	s := &mockBookingStore{bookings: make(map[string]booking.Booking)}
	for _, b := range bookings {
		s.bookings[b.ID] = b
	}
	return s
}

func (m *mockBookingStore) GetByID(_ context.Context, id string) (booking.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return booking.Booking{}, fmt.Errorf("booking %s: %w", id, booking.ErrNotFound)
	}
	return b, nil
}

func (m *mockBookingStore) Save(_ context.Context, b booking.Booking) error {
	m.bookings[b.ID] = b
	m.saves++
	return nil
}

func (m *mockBookingStore) ListByLesson(_ context.Context, lessonID string) ([]booking.Booking, error) {
	var out []booking.Booking
	for _, b := range m.bookings {
		if b.LessonID == lessonID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *mockBookingStore) ListDueReminders(_ context.Context, _, _ string) ([]booking.Booking, error) {
	var out []booking.Booking
	for _, b := range m.bookings {
		if b.NeedsReminder() {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockBookingStore) MarkReminded(_ context.Context, id string, at time.Time) (bool, error) {
	b, ok := m.bookings[id]
	if !ok || !b.NeedsReminder() {
		return false, nil
	}
	b.RemindedAt = at
	m.bookings[id] = b
	return true, nil
}

// --- Mock pilates store ---

type mockPilatesStore struct {
	slots        map[string]pilates.Slot
	reservations map[string]pilates.Reservation
}

func newMockPilatesStore(slots ...pilates.Slot) *mockPilatesStore {
	s := &mockPilatesStore{slots: make(map[string]pilates.Slot), reservations: make(map[string]pilates.Reservation)}
	for _, sl := range slots {
		s.slots[sl.ID] = sl
	}
	return s
}

func (m *mockPilatesStore) GetSlot(_ context.Context, id string) (pilates.Slot, error) {
	s, ok := m.slots[id]
	if !ok {
		return pilates.Slot{}, fmt.Errorf("slot %s: %w", id, pilates.ErrSlotNotFound)
	}
	return s, nil
}

func (m *mockPilatesStore) SaveSlot(_ context.Context, s pilates.Slot) error {
	m.slots[s.ID] = s
	return nil
}

func (m *mockPilatesStore) DeleteSlot(_ context.Context, id string) error {
	delete(m.slots, id)
	return nil
}

func (m *mockPilatesStore) ListSlots(_ context.Context) ([]pilates.Slot, error) {
	var out []pilates.Slot
	for _, s := range m.slots {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockPilatesStore) GetReservation(_ context.Context, id string) (pilates.Reservation, error) {
	r, ok := m.reservations[id]
	if !ok {
		return pilates.Reservation{}, fmt.Errorf("reservation %s: %w", id, pilates.ErrReservationNotFound)
	}
	return r, nil
}

func (m *mockPilatesStore) SaveReservation(_ context.Context, r pilates.Reservation) error {
	m.reservations[r.ID] = r
	return nil
}

func (m *mockPilatesStore) ListReservationsByOccurrence(_ context.Context, slotID, date string) ([]pilates.Reservation, error) {
	var out []pilates.Reservation
	for _, r := range m.reservations {
		if r.SlotID == slotID && r.Date == date {
			out = append(out, r)
		}
	}
	return out, nil
}

// --- Mock closure store ---

type mockClosureStore struct {
	closures []closure.Closure
}

func (m *mockClosureStore) ListOverlapping(_ context.Context, from, to string) ([]closure.Closure, error) {
	var out []closure.Closure
	for _, c := range m.closures {
		if c.StartDate.Format("2006-01-02") <= to && c.EndDate.Format("2006-01-02") >= from {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockClosureStore) Save(_ context.Context, c closure.Closure) error {
	m.closures = append(m.closures, c)
	return nil
}

func (m *mockClosureStore) Delete(_ context.Context, id string) error {
	for i, c := range m.closures {
		if c.ID == id {
			m.closures = append(m.closures[:i], m.closures[i+1:]...)
			return nil
		}
	}
	return nil
}

// --- Mock QR code store ---

type mockCodeStore struct {
	codes map[string]qrcode.Code
}

func newMockCodeStore(codes ...qrcode.Code) *mockCodeStore {
	s := &mockCodeStore{codes: make(map[string]qrcode.Code)}
	for _, c := range codes {
		s.codes[c.ID] = c
	}
	return s
}

func (m *mockCodeStore) GetByID(_ context.Context, id string) (qrcode.Code, error) {
	c, ok := m.codes[id]
	if !ok {
		return qrcode.Code{}, fmt.Errorf("qr code: %w", qrcode.ErrNotFound)
	}
	return c, nil
}

func (m *mockCodeStore) GetByToken(_ context.Context, token string) (qrcode.Code, error) {
	for _, c := range m.codes {
		if c.Token == token {
			return c, nil
		}
	}
	return qrcode.Code{}, fmt.Errorf("qr code: %w", qrcode.ErrNotFound)
}

func (m *mockCodeStore) Save(_ context.Context, c qrcode.Code) error {
	m.codes[c.ID] = c
	return nil
}

func (m *mockCodeStore) ListByMember(_ context.Context, memberID string) ([]qrcode.Code, error) {
	var out []qrcode.Code
	for _, c := range m.codes {
		if c.MemberID == memberID {
			out = append(out, c)
		}
	}
	return out, nil
}

// --- Mock attendance store ---

type mockAttendanceStore struct {
	records []attendance.Attendance
}

func (m *mockAttendanceStore) Save(_ context.Context, a attendance.Attendance) error {
	m.records = append(m.records, a)
	return nil
}

func (m *mockAttendanceStore) CountByMemberAndDate(_ context.Context, memberID, date string, guest bool) (int, error) {
	n := 0
	for _, a := range m.records {
		if a.MemberID == memberID && a.Date == date && a.Guest == guest {
			n++
		}
	}
	return n, nil
}
