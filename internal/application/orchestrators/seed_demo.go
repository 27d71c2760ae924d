package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gymportal/internal/domain/account"
	"gymportal/internal/domain/lesson"
	"gymportal/internal/domain/pilates"
)

// DemoSeedDeps holds stores needed for development seeding.
type DemoSeedDeps struct {
	AccountStore AccountStoreForCreate
	MemberStore  MemberStoreForCreate
	LessonStore  demoLessonStore
	PilatesStore demoPilatesStore
	GenerateID   func() string
	Now          func() time.Time
}

type demoLessonStore interface {
	Save(ctx context.Context, l lesson.Lesson) error
	CountByDate(ctx context.Context, from, to string) (map[string]int, error)
}

type demoPilatesStore interface {
	SaveSlot(ctx context.Context, s pilates.Slot) error
	ListSlots(ctx context.Context) ([]pilates.Slot, error)
}

// Demo logins created in development.
const (
	DemoMemberEmail = "member@gym.local"
	DemoStaffEmail  = "desk@gym.local"
	DemoPassword    = "demo-password-1"
)

// demoLessonDef is one lesson in the repeating demo week.
type demoLessonDef struct {
	weekday    time.Weekday
	title      string
	category   string
	instructor string
	room       string
	start, end string
	capacity   int
}

func demoWeek() []demoLessonDef {
	return []demoLessonDef{
		{time.Monday, "Morning Functional", lesson.CategoryFunctional, "Giulia", "Main hall", "07:00", "07:45", 14},
		{time.Monday, "Spin 45", lesson.CategorySpinning, "Marco", "Bike studio", "18:30", "19:15", 20},
		{time.Tuesday, "Vinyasa Flow", lesson.CategoryYoga, "Sara", "Studio 2", "12:30", "13:30", 16},
		{time.Tuesday, "Boxing Basics", lesson.CategoryBoxing, "Luca", "Main hall", "19:00", "20:00", 12},
		{time.Wednesday, "Total Body", lesson.CategoryGroup, "Giulia", "Main hall", "18:00", "18:50", 25},
		{time.Thursday, "Spin 45", lesson.CategorySpinning, "Marco", "Bike studio", "07:00", "07:45", 20},
		{time.Thursday, "Yin Yoga", lesson.CategoryYoga, "Sara", "Studio 2", "20:00", "21:00", 16},
		{time.Friday, "HIIT Circuit", lesson.CategoryFunctional, "Luca", "Main hall", "18:00", "18:45", 4},
		{time.Saturday, "Weekend Flow", lesson.CategoryYoga, "Sara", "Studio 2", "10:00", "11:00", 16},
	}
}

func demoSlots() []pilates.Slot {
	return []pilates.Slot{
		{Day: pilates.Monday, StartTime: "08:00", EndTime: "08:50", Instructor: "Elena", Level: pilates.LevelBeginner, Capacity: 6},
		{Day: pilates.Monday, StartTime: "19:00", EndTime: "19:50", Instructor: "Elena", Level: pilates.LevelIntermediate, Capacity: 6},
		{Day: pilates.Wednesday, StartTime: "08:00", EndTime: "08:50", Instructor: "Chiara", Level: pilates.LevelAll, Capacity: 6},
		{Day: pilates.Wednesday, StartTime: "12:30", EndTime: "13:20", Instructor: "Chiara", Level: pilates.LevelAdvanced, Capacity: 4},
		{Day: pilates.Friday, StartTime: "19:00", EndTime: "19:50", Instructor: "Elena", Level: pilates.LevelAll, Capacity: 6},
		{Day: pilates.Saturday, StartTime: "09:00", EndTime: "09:50", Instructor: "Chiara", Level: pilates.LevelBeginner, Capacity: 8},
	}
}

// ExecuteSeedDemo creates a demo member, a desk account, two weeks of lessons and a pilates timetable.
// It is idempotent: existing accounts are skipped and lessons are only added to empty days.
// PRE: Database is migrated
// POST: Demo data exists
func ExecuteSeedDemo(ctx context.Context, deps DemoSeedDeps) error {
	_, err := ExecuteRegisterMember(ctx, RegisterMemberInput{
		Name:     "Demo Member",
		Email:    DemoMemberEmail,
		Password: DemoPassword,
	}, RegisterMemberDeps{AccountStore: deps.AccountStore, MemberStore: deps.MemberStore, GenerateID: deps.GenerateID, Now: deps.Now})
	if err != nil && !errors.Is(err, account.ErrEmailTaken) {
		return err
	}

	_, err = ExecuteCreateAccount(ctx, CreateAccountInput{
		Email:    DemoStaffEmail,
		Password: DemoPassword,
		Role:     account.RoleStaff,
	}, CreateAccountDeps{AccountStore: deps.AccountStore, GenerateID: deps.GenerateID, Now: deps.Now})
	if err != nil && !errors.Is(err, account.ErrEmailTaken) {
		return err
	}

	today := deps.Now()
	first := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 0, 13)
	counts, err := deps.LessonStore.CountByDate(ctx, first.Format("2006-01-02"), last.Format("2006-01-02"))
	if err != nil {
		return err
	}
	lessons := 0
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		if counts[date] > 0 {
			continue
		}
		for _, def := range demoWeek() {
			if def.weekday != d.Weekday() {
				continue
			}
			l := lesson.Lesson{
				ID:         deps.GenerateID(),
				Title:      def.title,
				Category:   def.category,
				Instructor: def.instructor,
				Room:       def.room,
				Date:       date,
				StartTime:  def.start,
				EndTime:    def.end,
				Capacity:   def.capacity,
			}
			if err := deps.LessonStore.Save(ctx, l); err != nil {
				return err
			}
			lessons++
		}
	}

	slots, err := deps.PilatesStore.ListSlots(ctx)
	if err != nil {
		return err
	}
	if len(slots) == 0 {
		for _, s := range demoSlots() {
			s.ID = deps.GenerateID()
			if err := deps.PilatesStore.SaveSlot(ctx, s); err != nil {
				return err
			}
		}
	}

	slog.Info("seed_event", "event", "demo_seeded", "lessons", lessons, "slots_created", len(slots) == 0)
	return nil
}
