package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"gymportal/internal/adapters/content"
	emailPkg "gymportal/internal/adapters/email"
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
	"gymportal/internal/config"
	"gymportal/internal/i18n"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	// WAL mode, foreign keys and a busy timeout so readers never block the writer
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.MigrateDB(db, cfg.DBPath); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	collector := perf.NewCollector(cfg.PerfRingSize)
	timedDB := storage.NewTimedDB(db, collector, cfg.SlowQuery)

	library, err := content.Load(cfg.ContentDir)
	if err != nil {
		log.Fatalf("failed to load training content: %v", err)
	}

	acctStore := accountStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:    acctStore,
		MemberStore:     memberStore.NewSQLiteStore(timedDB),
		AttendanceStore: attendanceStore.NewSQLiteStore(timedDB),
		LessonStore:     lessonStore.NewSQLiteStore(timedDB),
		BookingStore:    bookingStore.NewSQLiteStore(timedDB),
		PilatesStore:    pilatesStore.NewSQLiteStore(timedDB),
		ClosureStore:    closureStore.NewSQLiteStore(timedDB),
		QRCodeStore:     qrcodeStore.NewSQLiteStore(timedDB),
		Content:         library,
	}

	ctx := context.Background()
	seedDeps := orchestrators.CreateAccountDeps{AccountStore: acctStore, GenerateID: uuid.NewString, Now: time.Now}
	if err := orchestrators.ExecuteSeedAdmin(ctx, seedDeps, cfg.AdminEmail, cfg.AdminPass); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	if !cfg.IsProduction() {
		demoDeps := orchestrators.DemoSeedDeps{
			AccountStore: acctStore,
			MemberStore:  stores.MemberStore,
			LessonStore:  stores.LessonStore,
			PilatesStore: stores.PilatesStore,
			GenerateID:   uuid.NewString,
			Now:          func() time.Time { return time.Now().In(cfg.Location()) },
		}
		if err := orchestrators.ExecuteSeedDemo(ctx, demoDeps); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
		slog.Info("startup", "event", "demo_seeded", "member", orchestrators.DemoMemberEmail, "desk", orchestrators.DemoStaffEmail)
	}

	var sender emailPkg.Sender
	if cfg.ResendKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom, cfg.ReplyTo)
		slog.Info("startup", "event", "email_configured", "sender", "resend")
	} else {
		sender = emailPkg.NewLogSender(0)
		if cfg.IsProduction() {
			slog.Warn("startup", "event", "email_disabled", "detail", "GYM_RESEND_KEY is not set; emails are only logged")
		} else {
			slog.Info("startup", "event", "email_configured", "sender", "log")
		}
	}
	web.SetEmailSender(sender)

	// Reminders go out in the gym's default language, like every other member email
	mailer := &orchestrators.LessonMailer{
		Sender:     sender,
		Translator: i18n.New(cfg.Language()),
		Location:   cfg.Location(),
	}
	reminders := orchestrators.NewReminderProcessor(stores.BookingStore, stores.LessonStore, stores.MemberStore, mailer, cfg.ReminderWindow, cfg.Location())
	stopCh := make(chan struct{})
	orchestrators.StartBackgroundWorker(reminders, cfg.ReminderInterval, stopCh)
	defer close(stopCh)

	handler, err := web.NewMux(web.Settings{
		Location:        cfg.Location(),
		DefaultLang:     cfg.Language(),
		FirstWeekday:    time.Monday,
		CancelCutoff:    cfg.CancelCutoff,
		CSRFKey:         []byte(cfg.CSRFKey),
		TrustedOrigins:  trustedOrigins(cfg.PublicURL),
		Production:      cfg.IsProduction(),
		RateLimitPerMin: cfg.RateLimitPerMin,
		RateBurst:       cfg.RateBurst,
		SlowRequest:     cfg.SlowRequest,
		EnquiryTo:       cfg.EnquiryTo,
		GymName:         cfg.GymName,
		StaticDir:       cfg.StaticDir,
	}, stores, collector)
	if err != nil {
		log.Fatalf("failed to build handler: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(sigCtx)
	g.Go(func() error {
		slog.Info("startup", "event", "listening", "version", version, "addr", cfg.Addr, "env", cfg.Env, "schema", storage.LatestSchemaVersion())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		slog.Error("server_failed", "error", err.Error())
	}
	slog.Info("shutdown", "event", "stopped")
}

// trustedOrigins lets the CSRF check accept form posts from the public host.
func trustedOrigins(publicURL string) []string {
	u, err := url.Parse(publicURL)
	if err != nil || u.Host == "" {
		return nil
	}
	return []string{u.Host}
}
