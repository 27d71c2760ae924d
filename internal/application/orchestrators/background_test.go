package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gymportal/internal/adapters/email"
	"gymportal/internal/domain/booking"
	"gymportal/internal/domain/closure"
	"gymportal/internal/domain/lesson"
	"gymportal/internal/domain/member"
	"gymportal/internal/domain/pilates"
	"gymportal/internal/domain/training"
	"gymportal/internal/i18n"

	"golang.org/x/text/language"
)

func TestReminderProcessor_ProcessDue(t *testing.T) {
	mailer, sender := newTestMailer()
	lessons := newMockLessonStore(
		testLesson("soon", "2026-03-02", "18:00", 10),
		testLesson("tomorrow", "2026-03-03", "09:00", 10),
		testLesson("later", "2026-03-03", "18:00", 10),
	)
	bookings := newMockBookingStore(
		booking.Booking{ID: "b1", LessonID: "soon", MemberID: "m1", Status: booking.StatusConfirmed, CreatedAt: fixedTime},
		booking.Booking{ID: "b2", LessonID: "tomorrow", MemberID: "m1", Status: booking.StatusConfirmed, CreatedAt: fixedTime},
		booking.Booking{ID: "b3", LessonID: "later", MemberID: "m1", Status: booking.StatusConfirmed, CreatedAt: fixedTime},
		booking.Booking{ID: "b4", LessonID: "soon", MemberID: "m2", Status: booking.StatusWaitlisted, CreatedAt: fixedTime},
	)
	p := NewReminderProcessor(bookings, lessons, newMockMemberStore(activeMember("m1"), activeMember("m2")), mailer, 24*time.Hour, rome)
	p.now = fixedNow

	sent, err := p.ProcessDue(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent != 2 {
		t.Fatalf("expected 2 reminders, got %d", sent)
	}
	if !bookings.bookings["b3"].RemindedAt.IsZero() {
		t.Error("lesson beyond the window should not be reminded yet")
	}
	if bookings.bookings["b1"].RemindedAt.IsZero() || bookings.bookings["b2"].RemindedAt.IsZero() {
		t.Error("reminded bookings should be marked")
	}
	for _, m := range sender.Sent() {
		if m.Tag != "lesson_reminder" {
			t.Errorf("unexpected tag %s", m.Tag)
		}
	}

	again, _ := p.ProcessDue(context.Background())
	if again != 0 {
		t.Errorf("reminders must be sent once, got %d on second run", again)
	}
}

type failingSender struct{}

func (failingSender) Send(context.Context, email.Message) (email.Receipt, error) {
	return email.Receipt{}, errors.New("provider down")
}

func (failingSender) SendBatch(context.Context, []email.Message) ([]email.Receipt, error) {
	return nil, errors.New("provider down")
}

func TestReminderProcessor_RetriesFailedSends(t *testing.T) {
	lessons := newMockLessonStore(testLesson("soon", "2026-03-02", "18:00", 10))
	bookings := newMockBookingStore(booking.Booking{ID: "b1", LessonID: "soon", MemberID: "m1", Status: booking.StatusConfirmed, CreatedAt: fixedTime})
	mailer := &LessonMailer{Sender: failingSender{}, Translator: i18n.New(language.English), Location: rome}
	p := NewReminderProcessor(bookings, lessons, newMockMemberStore(activeMember("m1")), mailer, 24*time.Hour, rome)
	p.now = fixedNow

	sent, err := p.ProcessDue(context.Background())
	if err != nil || sent != 0 {
		t.Fatalf("expected 0 sent and no error, got %d %v", sent, err)
	}
	if !bookings.bookings["b1"].RemindedAt.IsZero() {
		t.Error("failed send should leave the booking due")
	}
}

// cancellingSender cancels a booking while a reminder is being delivered.
type cancellingSender struct {
	t      *testing.T
	cancel func() error
}

func (s cancellingSender) Send(context.Context, email.Message) (email.Receipt, error) {
	if err := s.cancel(); err != nil {
		s.t.Errorf("cancel during send: %v", err)
	}
	return email.Receipt{MessageID: "r1", SentAt: fixedTime}, nil
}

func (s cancellingSender) SendBatch(ctx context.Context, msgs []email.Message) ([]email.Receipt, error) {
	return nil, errors.New("not used")
}

func TestReminderProcessor_CancelDuringSend(t *testing.T) {
	lessons := newMockLessonStore(testLesson("soon", "2026-03-02", "18:00", 1))
	bookings := newMockBookingStore(
		booking.Booking{ID: "b1", LessonID: "soon", MemberID: "m1", Status: booking.StatusConfirmed, CreatedAt: fixedTime},
		booking.Booking{ID: "b2", LessonID: "soon", MemberID: "m2", Status: booking.StatusWaitlisted, CreatedAt: fixedTime.Add(time.Minute)},
	)
	members := newMockMemberStore(activeMember("m1"), activeMember("m2"))
	sender := cancellingSender{t: t, cancel: func() error {
		_, err := ExecuteCancelBooking(context.Background(), CancelBookingInput{BookingID: "b1", MemberID: "m1"},
			cancelDeps(lessons, bookings, members, nil))
		return err
	}}
	mailer := &LessonMailer{Sender: sender, Translator: i18n.New(language.English), Location: rome}
	p := NewReminderProcessor(bookings, lessons, members, mailer, 24*time.Hour, rome)
	p.now = fixedNow

	sent, err := p.ProcessDue(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent != 0 {
		t.Errorf("sent = %d, want 0 for a booking cancelled mid-send", sent)
	}
	if got := bookings.bookings["b1"]; got.Status != booking.StatusCancelled || !got.RemindedAt.IsZero() {
		t.Errorf("b1 = %s reminded=%v, want cancelled and unreminded", got.Status, got.RemindedAt)
	}
	if got := bookings.bookings["b2"].Status; got != booking.StatusConfirmed {
		t.Errorf("b2 = %s, want promoted to confirmed", got)
	}
	confirmed, _ := booking.Counts(mapValues(bookings.bookings))
	if confirmed != 1 {
		t.Errorf("confirmed = %d, want capacity 1", confirmed)
	}
}

func mapValues(m map[string]booking.Booking) []booking.Booking {
	out := make([]booking.Booking, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

func TestStartBackgroundWorker_Stops(t *testing.T) {
	p := NewReminderProcessor(newMockBookingStore(), newMockLessonStore(), newMockMemberStore(), nil, time.Hour, rome)
	stop := make(chan struct{})
	StartBackgroundWorker(p, 5*time.Millisecond, stop)
	time.Sleep(20 * time.Millisecond)
	close(stop)
}

func TestLessonMailer_ComposeItalian(t *testing.T) {
	m := &LessonMailer{Translator: i18n.New(language.Italian), Location: rome}
	msg, err := m.Compose(MailBooked, activeMember("m1"), testLesson("l1", "2026-03-02", "18:00", 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(msg.Subject, "Prenotato") || !strings.Contains(msg.Subject, "lunedì 2 marzo") {
		t.Errorf("expected Italian subject, got %q", msg.Subject)
	}
	if !strings.HasPrefix(msg.Text, "Ciao Anna") {
		t.Errorf("expected greeting by first name, got %q", msg.Text)
	}
}

func testContent() *training.Content {
	return &training.Content{
		Headline: "Personal training",
		Trainers: []training.Trainer{{Name: "Giulia"}},
		Packages: []training.Package{{Name: "Starter", Sessions: 5, PriceCents: 20000, Currency: "EUR"}},
	}
}

func TestExecuteSendTrainingEnquiry(t *testing.T) {
	sender := email.NewLogSender(5)
	deps := SendTrainingEnquiryDeps{Content: testContent(), Sender: sender, To: "pt@gym.example", Translator: i18n.New(language.English)}

	err := ExecuteSendTrainingEnquiry(context.Background(), training.Enquiry{
		Name: "Luca Bianchi", Email: "luca@example.com", Package: "Starter", Message: "I'd like to start in April, mornings only.",
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sent := sender.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sent))
	}
	msg := sent[0]
	if msg.To[0] != "pt@gym.example" || msg.ReplyTo != "luca@example.com" {
		t.Errorf("unexpected routing: %+v", msg)
	}
	if !strings.Contains(msg.Subject, "Luca Bianchi") || !strings.Contains(msg.Text, "Package: Starter") {
		t.Errorf("unexpected content: %q / %q", msg.Subject, msg.Text)
	}

	err = ExecuteSendTrainingEnquiry(context.Background(), training.Enquiry{Name: "Luca", Email: "luca@example.com", Package: "Gold", Message: "long enough message"}, deps)
	if !errors.Is(err, training.ErrUnknownPackage) {
		t.Errorf("expected ErrUnknownPackage, got %v", err)
	}
	if len(sender.Sent()) != 1 {
		t.Error("invalid enquiry must not be sent")
	}
}

func TestExecuteSaveLesson(t *testing.T) {
	lessons := newMockLessonStore()
	bookings := newMockBookingStore()
	deps := LessonAdminDeps{LessonStore: lessons, BookingStore: bookings, GenerateID: fixedID}

	l, err := ExecuteSaveLesson(context.Background(), lesson.Lesson{
		Title: "Spin", Category: lesson.CategorySpinning, Date: "2026-03-05", StartTime: "18:00", EndTime: "18:45", Capacity: 2,
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.ID != "test-id-001" {
		t.Errorf("expected generated ID, got %s", l.ID)
	}

	seedBookings(bookings, l.ID, booking.StatusConfirmed, 2, "c")
	l.Capacity = 1
	if _, err := ExecuteSaveLesson(context.Background(), l, deps); !errors.Is(err, ErrCapacityBelowBookings) {
		t.Errorf("expected ErrCapacityBelowBookings, got %v", err)
	}
	if err := ExecuteDeleteLesson(context.Background(), l.ID, deps); !errors.Is(err, ErrLessonHasBookings) {
		t.Errorf("expected ErrLessonHasBookings, got %v", err)
	}

	for id, b := range bookings.bookings {
		b.Status = booking.StatusCancelled
		bookings.bookings[id] = b
	}
	if err := ExecuteDeleteLesson(context.Background(), l.ID, deps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := lessons.lessons[l.ID]; ok {
		t.Error("lesson should be deleted")
	}
}

func TestExecuteSaveSlotAndClosure(t *testing.T) {
	store := newMockPilatesStore()
	if _, err := ExecuteSaveSlot(context.Background(), pilates.Slot{Day: "funday"}, store, fixedID); !errors.Is(err, pilates.ErrInvalidDay) {
		t.Errorf("expected ErrInvalidDay, got %v", err)
	}
	s, err := ExecuteSaveSlot(context.Background(), mondaySlot(6), store, fixedID)
	if err != nil || store.slots[s.ID].Capacity != 6 {
		t.Fatalf("expected saved slot, got %v", err)
	}
	s.Capacity = 8
	if _, err := ExecuteSaveSlot(context.Background(), s, store, fixedID); err != nil {
		t.Errorf("updating a slot must not clash with itself: %v", err)
	}
	clash := mondaySlot(4)
	clash.ID = ""
	if _, err := ExecuteSaveSlot(context.Background(), clash, store, func() string { return "other" }); !errors.Is(err, ErrSlotClash) {
		t.Errorf("expected ErrSlotClash, got %v", err)
	}

	closures := &mockClosureStore{}
	_, err = ExecuteSaveClosure(context.Background(), closure.Closure{
		Name: "Easter", StartDate: time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC),
	}, closures, fixedID)
	if !errors.Is(err, closure.ErrInvalidDates) {
		t.Errorf("expected ErrInvalidDates, got %v", err)
	}
}

func TestExecuteSetMemberStatus(t *testing.T) {
	store := newMockMemberStore(activeMember("m1"))
	m, err := ExecuteSetMemberStatus(context.Background(), "m1", member.StatusSuspended, store)
	if err != nil || m.Status != member.StatusSuspended {
		t.Fatalf("expected suspension, got %v %+v", err, m)
	}
	if _, err := ExecuteSetMemberStatus(context.Background(), "m1", member.StatusSuspended, store); !errors.Is(err, member.ErrAlreadySuspended) {
		t.Errorf("expected ErrAlreadySuspended, got %v", err)
	}
	if _, err := ExecuteSetMemberStatus(context.Background(), "m1", "banned", store); !errors.Is(err, member.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestExecuteSeedDemo_Idempotent(t *testing.T) {
	deps := DemoSeedDeps{
		AccountStore: newMockAccountStore(),
		MemberStore:  newMockMemberStore(),
		LessonStore:  newMockLessonStore(),
		PilatesStore: newMockPilatesStore(),
		GenerateID:   sequentialIDs(),
		Now:          fixedNow,
	}
	if err := ExecuteSeedDemo(context.Background(), deps); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	lessons := len(deps.LessonStore.(*mockLessonStore).lessons)
	slots := len(deps.PilatesStore.(*mockPilatesStore).slots)
	if lessons == 0 || slots == 0 {
		t.Fatalf("expected lessons and slots, got %d and %d", lessons, slots)
	}
	if err := ExecuteSeedDemo(context.Background(), deps); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if got := len(deps.LessonStore.(*mockLessonStore).lessons); got != lessons {
		t.Errorf("second seed added lessons: %d -> %d", lessons, got)
	}
	if got := len(deps.AccountStore.(*mockAccountStore).accounts); got != 2 {
		t.Errorf("expected 2 demo accounts, got %d", got)
	}
}
