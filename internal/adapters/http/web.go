package web

import (
	"crypto/rand"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/text/language"

	"gymportal/internal/adapters/email"
	"gymportal/internal/adapters/http/middleware"
	"gymportal/internal/adapters/http/perf"
	"gymportal/internal/adapters/qr"
	accountStore "gymportal/internal/adapters/storage/account"
	attendanceStore "gymportal/internal/adapters/storage/attendance"
	bookingStore "gymportal/internal/adapters/storage/booking"
	closureStore "gymportal/internal/adapters/storage/closure"
	lessonStore "gymportal/internal/adapters/storage/lesson"
	memberStore "gymportal/internal/adapters/storage/member"
	pilatesStore "gymportal/internal/adapters/storage/pilates"
	qrcodeStore "gymportal/internal/adapters/storage/qrcode"
	"gymportal/internal/application/orchestrators"
	"gymportal/internal/application/projections"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore    accountStore.Store
	MemberStore     memberStore.Store
	AttendanceStore attendanceStore.Store
	LessonStore     lessonStore.Store
	BookingStore    bookingStore.Store
	PilatesStore    pilatesStore.Store
	ClosureStore    closureStore.Store
	QRCodeStore     qrcodeStore.Store
	Content         projections.ContentSource
}

// Settings carries the configuration the handlers need.
type Settings struct {
	Location        *time.Location
	DefaultLang     language.Tag
	FirstWeekday    time.Weekday
	CancelCutoff    time.Duration
	CSRFKey         []byte // 32 bytes; random per process when empty
	TrustedOrigins  []string
	Production      bool
	RateLimitPerMin int
	RateBurst       int
	SlowRequest     time.Duration
	EnquiryTo       string
	GymName         string
	StaticDir       string // optional override for the embedded assets
}

// ErrCSRFKeyRequired is returned by NewMux in production without a CSRF key.
var ErrCSRFKeyRequired = errors.New("csrf_key is required in production")

// resolveCSRFKey returns the configured key or, outside production, a random one.
func resolveCSRFKey(s Settings) ([]byte, error) {
	if len(s.CSRFKey) == 32 {
		return s.CSRFKey, nil
	}
	if s.Production {
		return nil, ErrCSRFKeyRequired
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	slog.Warn("csrf_event", "event", "random_key", "detail", "sessions will not survive restart; set csrf_key for production")
	return key, nil
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global settings (set by NewMux)
var settings Settings

// Global session store instance
var sessions *middleware.SessionStore

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// enquiryLimiter throttles the public enquiry form harder than the rest of the site.
var enquiryLimiter = middleware.NewRateLimiter(5, 3)

// qrRenderer draws code images.
var qrRenderer = qr.NewRenderer()

// SetEmailSender sets the global email sender for the application.
// A *email.LogSender also backs the admin outbox endpoint.
func SetEmailSender(sender email.Sender) {
	emailSender = sender
}

// lessonMailer builds the booking mailer. Emails go out in the gym's default language.
func lessonMailer() *orchestrators.LessonMailer {
	if emailSender == nil {
		return nil
	}
	return &orchestrators.LessonMailer{
		Sender:     emailSender,
		Translator: translatorFor(settings.DefaultLang),
		Location:   settings.Location,
	}
}

// NewMux wires HTTP handlers for the app.
// PRE: s has every store set; cfg.Location is non-nil
// POST: returned handler applies the full middleware chain
func NewMux(cfg Settings, s *Stores, collector *perf.Collector) (http.Handler, error) {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.RateLimitPerMin <= 0 {
		cfg.RateLimitPerMin = 120
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 30
	}
	stores = s
	settings = cfg
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = cfg.Production

	csrfKey, err := resolveCSRFKey(cfg)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.StripPrefix("/static/", staticHandler(cfg.StaticDir)))
	registerRoutes(mux)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMin, cfg.RateBurst)
	limiter.StartSweeper(time.Minute, nil)

	// Applied inner to outer: Timing wraps everything, the mux is innermost.
	return middleware.Chain(mux,
		middleware.Language(cfg.DefaultLang),
		middleware.CSRF(csrfKey, cfg.TrustedOrigins...),
		middleware.Auth(sessions),
		middleware.SecurityHeaders,
		middleware.RateLimit(limiter),
		middleware.Timing(collector, cfg.SlowRequest),
	), nil
}
