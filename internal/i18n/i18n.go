// Package i18n selects the page language and translates message keys.
package i18n

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// CookieName holds the member's explicit language choice.
const CookieName = "lang"

// supported lists the page languages; the first entry is the catalog fallback.
var supported = []language.Tag{language.English, language.Italian}

var (
	matcher = language.NewMatcher(supported)
	cat     = catalog.NewBuilder(catalog.Fallback(language.English))
)

func init() {
	for key, m := range messages {
		if err := cat.SetString(language.English, key, m.en); err != nil {
			panic("i18n: " + key + ": " + err.Error())
		}
		if err := cat.SetString(language.Italian, key, m.it); err != nil {
			panic("i18n: " + key + ": " + err.Error())
		}
	}
}

// Supported returns the base codes of the supported languages.
func Supported() []string {
	out := make([]string, len(supported))
	for i, t := range supported {
		base, _ := t.Base()
		out[i] = base.String()
	}
	return out
}

// Match picks the best supported language for the given preferences,
// in order of strength. Empty preferences are skipped.
// POST: always returns one of the supported tags
func Match(fallback language.Tag, prefs ...string) language.Tag {
	for _, p := range prefs {
		if strings.TrimSpace(p) == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(p)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, idx, conf := matcher.Match(tags...)
		if conf != language.No {
			return supported[idx]
		}
	}
	_, idx, _ := matcher.Match(fallback)
	return supported[idx]
}

// FromRequest resolves the language from ?lang=, then the lang cookie,
// then the Accept-Language header.
func FromRequest(r *http.Request, fallback language.Tag) language.Tag {
	var cookie string
	if c, err := r.Cookie(CookieName); err == nil {
		cookie = c.Value
	}
	return Match(fallback, r.URL.Query().Get("lang"), cookie, r.Header.Get("Accept-Language"))
}

// Translator renders message keys in one language.
type Translator struct {
	tag language.Tag
	p   *message.Printer
}

// New returns a Translator for tag.
func New(tag language.Tag) *Translator {
	return &Translator{tag: tag, p: message.NewPrinter(tag, message.Catalog(cat))}
}

// Lang returns the base language code, e.g. "it".
func (t *Translator) Lang() string {
	base, _ := t.tag.Base()
	return base.String()
}

// Tag returns the language tag.
func (t *Translator) Tag() language.Tag {
	return t.tag
}

// T translates key, formatting args into the message.
// Unknown keys render as the key itself.
func (t *Translator) T(key string, args ...any) string {
	return t.p.Sprintf(key, args...)
}

// MonthName returns the localized full month name.
func (t *Translator) MonthName(m time.Month) string {
	return t.T(monthKeys[m-1])
}

// WeekdayName returns the localized full weekday name.
func (t *Translator) WeekdayName(d time.Weekday) string {
	return t.T(weekdayKeys[d])
}

// WeekdayShort returns the localized three-letter weekday name.
func (t *Translator) WeekdayShort(d time.Weekday) string {
	return t.T(weekdayKeys[d] + ".short")
}

// FormatDay renders a date as "Monday 2 March".
func (t *Translator) FormatDay(d time.Time) string {
	return t.T("format.day", t.WeekdayName(d.Weekday()), d.Day(), t.MonthName(d.Month()))
}

// FormatMonth renders a month heading as "March 2026".
// The year is passed as a string so it is not digit-grouped.
func (t *Translator) FormatMonth(year int, m time.Month) string {
	return t.T("format.month", t.MonthName(m), strconv.Itoa(year))
}

// FormatDateTime renders a timestamp as "2 March, 18:30".
func (t *Translator) FormatDateTime(ts time.Time) string {
	return t.T("format.datetime", ts.Day(), t.MonthName(ts.Month()), ts.Format("15:04"))
}

type ctxKey struct{}

// WithTranslator stores t in ctx.
func WithTranslator(ctx context.Context, t *Translator) context.Context {
	return context.WithValue(ctx, ctxKey{}, t)
}

// FromContext returns the request translator, or English if none was set.
func FromContext(ctx context.Context) *Translator {
	if t, ok := ctx.Value(ctxKey{}).(*Translator); ok {
		return t
	}
	return New(language.English)
}
