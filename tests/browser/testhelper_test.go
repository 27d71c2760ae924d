package browser_test

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
	"golang.org/x/text/language"

	_ "modernc.org/sqlite"

	"gymportal/internal/adapters/content"
	"gymportal/internal/adapters/email"
	web "gymportal/internal/adapters/http"
	"gymportal/internal/adapters/http/perf"
	"gymportal/internal/adapters/storage"
	accountStore "gymportal/internal/adapters/storage/account"
	attendanceStore "gymportal/internal/adapters/storage/attendance"
	bookingStore "gymportal/internal/adapters/storage/booking"
	closureStore "gymportal/internal/adapters/storage/closure"
	lessonStore "gymportal/internal/adapters/storage/lesson"
	memberStore "gymportal/internal/adapters/storage/member"
	pilatesStore "gymportal/internal/adapters/storage/pilates"
	qrcodeStore "gymportal/internal/adapters/storage/qrcode"
	"gymportal/internal/application/orchestrators"
	"gymportal/internal/domain/lesson"
)

const (
	adminEmail    = "admin@test.com"
	adminPassword = "TestPass123!-admin"
)

// testApp holds the running test server and Playwright handles.
type testApp struct {
	BaseURL  string
	DB       *sql.DB
	Server   *http.Server
	PW       *playwright.Playwright
	Browser  playwright.Browser
	Stores   *web.Stores
	Sender   *email.LogSender
	Tomorrow string
}

// newTestApp creates a fully wired app with a temp SQLite DB and starts an HTTP server.
// The demo data is seeded, plus one evening lesson tomorrow titled "Browser Spin".
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	if err := storage.MigrateDB(db, dbPath); err != nil {
		t.Fatalf("failed to migrate test DB: %v", err)
	}

	library, err := content.Load("")
	if err != nil {
		t.Fatalf("failed to load content: %v", err)
	}
	acctStore := accountStore.NewSQLiteStore(db)
	stores := &web.Stores{
		AccountStore:    acctStore,
		MemberStore:     memberStore.NewSQLiteStore(db),
		AttendanceStore: attendanceStore.NewSQLiteStore(db),
		LessonStore:     lessonStore.NewSQLiteStore(db),
		BookingStore:    bookingStore.NewSQLiteStore(db),
		PilatesStore:    pilatesStore.NewSQLiteStore(db),
		ClosureStore:    closureStore.NewSQLiteStore(db),
		QRCodeStore:     qrcodeStore.NewSQLiteStore(db),
		Content:         library,
	}

	loc, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	ctx := context.Background()
	now := func() time.Time { return time.Now().In(loc) }
	if err := orchestrators.ExecuteSeedAdmin(ctx, orchestrators.CreateAccountDeps{
		AccountStore: acctStore, GenerateID: uuid.NewString, Now: now,
	}, adminEmail, adminPassword); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}
	if err := orchestrators.ExecuteSeedDemo(ctx, orchestrators.DemoSeedDeps{
		AccountStore: acctStore,
		MemberStore:  stores.MemberStore,
		LessonStore:  stores.LessonStore,
		PilatesStore: stores.PilatesStore,
		GenerateID:   uuid.NewString,
		Now:          now,
	}); err != nil {
		t.Fatalf("failed to seed demo data: %v", err)
	}
	tomorrow := now().AddDate(0, 0, 1).Format("2006-01-02")
	if err := stores.LessonStore.Save(ctx, lesson.Lesson{
		ID: "browser-lesson", Title: "Browser Spin", Category: lesson.CategorySpinning, Instructor: "Marco",
		Date: tomorrow, StartTime: "21:00", EndTime: "21:45", Capacity: 5,
	}); err != nil {
		t.Fatalf("failed to seed lesson: %v", err)
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	sender := email.NewLogSender(0)
	web.SetEmailSender(sender)
	mux, err := web.NewMux(web.Settings{
		Location:        loc,
		DefaultLang:     language.English,
		FirstWeekday:    time.Monday,
		CancelCutoff:    2 * time.Hour,
		TrustedOrigins:  []string{fmt.Sprintf("127.0.0.1:%d", port), fmt.Sprintf("localhost:%d", port)},
		RateLimitPerMin: 10000,
		RateBurst:       10000,
		EnquiryTo:       "pt@test.com",
		GymName:         "Browser Gym",
	}, stores, perf.NewCollector(100))
	if err != nil {
		t.Fatalf("failed to build mux: %v", err)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/healthz")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	app := &testApp{
		BaseURL:  baseURL,
		DB:       db,
		Server:   srv,
		PW:       pw,
		Browser:  browser,
		Stores:   stores,
		Sender:   sender,
		Tomorrow: tomorrow,
	}
	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		db.Close()
		web.SetEmailSender(nil)
	})
	return app
}

// newPage creates a new browser page (tab) that accepts every confirm dialog.
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	page.OnDialog(func(d playwright.Dialog) {
		_ = d.Accept()
	})
	t.Cleanup(func() { page.Close() })
	return page
}

// login signs in through the login form and waits for the landing page.
func (a *testApp) login(t *testing.T, page playwright.Page, email, password, landing string) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/login"); err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=email]").Fill(email); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator("input[name=password]").Fill(password); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("form[action='/login'] button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+landing+"**", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not land on %s: %v", landing, err)
	}
}

// loginMember signs in as the demo member.
func (a *testApp) loginMember(t *testing.T, page playwright.Page) {
	a.login(t, page, orchestrators.DemoMemberEmail, orchestrators.DemoPassword, "/bookings")
}

// loginDesk signs in as the demo front desk account.
func (a *testApp) loginDesk(t *testing.T, page playwright.Page) {
	a.login(t, page, orchestrators.DemoStaffEmail, orchestrators.DemoPassword, "/scan")
}

// text returns the trimmed text of the first element matching selector.
func text(t *testing.T, page playwright.Page, selector string) string {
	t.Helper()
	s, err := page.Locator(selector).First().TextContent()
	if err != nil {
		t.Fatalf("text of %s: %v", selector, err)
	}
	return s
}
