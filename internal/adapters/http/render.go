package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/language"

	"gymportal/internal/adapters/http/middleware"
	"gymportal/internal/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

func translatorFor(tag language.Tag) *i18n.Translator {
	return i18n.New(tag)
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// isJSON reports whether the request body is JSON; such requests get JSON replies.
func isJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode_failed", "error", err.Error())
	}
}

// redirectWith sends a form post back to a page with a flash message key.
func redirectWith(w http.ResponseWriter, r *http.Request, target, param, key string) {
	u, err := url.Parse(target)
	if err != nil || u.IsAbs() || u.Host != "" {
		u = &url.URL{Path: "/"}
	}
	q := u.Query()
	q.Set(param, key)
	u.RawQuery = q.Encode()
	http.Redirect(w, r, u.String(), http.StatusSeeOther)
}

// backTo returns the local page a form came from, falling back to def.
func backTo(r *http.Request, def string) string {
	if next := r.FormValue("next"); strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return def
}

// flashPrefixes limits which message keys a page will echo from its query string.
var flashPrefixes = []string{"bookings.", "pilates.", "qr.", "training.", "error.", "scan.", "account."}

// flash reads ?ok= or ?err= and translates it.
func flash(r *http.Request) (msg string, isErr bool) {
	key, isErr := r.URL.Query().Get("ok"), false
	if key == "" {
		key, isErr = r.URL.Query().Get("err"), true
	}
	for _, p := range flashPrefixes {
		if strings.HasPrefix(key, p) {
			return i18n.FromContext(r.Context()).T(key), isErr
		}
	}
	return "", false
}

// pageData is passed to every template as .
type pageData struct {
	Title      string
	Active     string // nav item
	Flash      string
	FlashError bool
	Data       any
}

func newPage(r *http.Request, titleKey, active string, data any) pageData {
	msg, isErr := flash(r)
	return pageData{
		Title:      i18n.FromContext(r.Context()).T(titleKey),
		Active:     active,
		Flash:      msg,
		FlashError: isErr,
		Data:       data,
	}
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data pageData) {
	sess, loggedIn := middleware.GetSessionFromContext(r.Context())
	t := i18n.FromContext(r.Context())

	funcMap := template.FuncMap{
		"isLoggedIn":   func() bool { return loggedIn },
		"currentName":  func() string { return sess.Name },
		"currentRole":  func() string { return sess.Role },
		"isStaff":      func() bool { return loggedIn && sess.IsStaff() },
		"hasMember":    func() bool { return sess.MemberID != "" },
		"csrfToken":    func() string { return csrf.Token(r) },
		"csrfField":    func() template.HTML { return csrf.TemplateField(r) },
		"gymName":      func() string { return settings.GymName },
		"lang":         t.Lang,
		"languages":    i18n.Supported,
		"currentPath":  func() string { return r.URL.Path },
		"t":            t.T,
		"formatDay":    t.FormatDay,
		"formatMonth":  t.FormatMonth,
		"weekdayShort": t.WeekdayShort,
		"formatDateTime": func(ts time.Time) string {
			if ts.IsZero() {
				return ""
			}
			return t.FormatDateTime(ts.In(settings.Location))
		},
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"withQuery": withQuery,
		"add":       func(a, b int) int { return a + b },
		"sub":       func(a, b int) int { return a - b },
	}

	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		internalError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// withQuery returns "?"+q with key set to value. Changing anything but the
// page sends the reader back to page 1.
func withQuery(q url.Values, key, value string) template.URL {
	out := url.Values{}
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	out.Set(key, value)
	if key != "page" {
		out.Set("page", "1")
	}
	return template.URL("?" + out.Encode())
}

// staticHandler serves dir when it exists, the embedded assets otherwise.
func staticHandler(dir string) http.Handler {
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return http.FileServer(http.Dir(dir))
		}
	}
	sub, _ := fs.Sub(staticFS, "static")
	return http.FileServer(http.FS(sub))
}
