package middleware

import (
	"net/http"
	"slices"

	"golang.org/x/text/language"

	"gymportal/internal/i18n"
)

// Language resolves the page language and stores its translator in the request context.
// An explicit ?lang= choice is remembered in the lang cookie for a year.
func Language(fallback language.Tag) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tag := i18n.FromRequest(r, fallback)
			t := i18n.New(tag)

			if q := r.URL.Query().Get("lang"); q != "" && slices.Contains(i18n.Supported(), q) {
				http.SetCookie(w, &http.Cookie{
					Name:     i18n.CookieName,
					Value:    t.Lang(),
					Path:     "/",
					MaxAge:   365 * 24 * 60 * 60,
					HttpOnly: true,
					Secure:   SecureCookies,
					SameSite: http.SameSiteLaxMode,
				})
			}
			w.Header().Set("Content-Language", t.Lang())
			next.ServeHTTP(w, r.WithContext(i18n.WithTranslator(r.Context(), t)))
		})
	}
}
