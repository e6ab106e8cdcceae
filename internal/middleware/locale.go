package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"languremontas.com/web/internal/i18n"
)

// Locale resolves the request locale from the URL path segment, canonicalizes
// it against the supported set, and stores it in the request context. A
// ?hl= query override also refreshes the hl cookie used by the language
// switcher and by not-found locale detection.
func Locale(locales *i18n.Locales) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := locales.Canonical(chi.URLParam(r, "locale"))
			if q := strings.ToLower(r.URL.Query().Get("hl")); q != "" && locales.IsValid(q) {
				locale = q
				http.SetCookie(w, &http.Cookie{Name: "hl", Value: q, Path: "/"})
			}
			w.Header().Set("Content-Language", locale)
			w.Header().Add("Vary", "Accept-Language")
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), locale)))
		})
	}
}

// Lang returns the resolved locale from context, or fallback.
func Lang(r *http.Request, fallback string) string {
	if locale, ok := LocaleFrom(r.Context()); ok {
		return locale
	}
	return fallback
}
