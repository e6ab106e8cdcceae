package i18n

import (
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Locales is the set of supported content locales with a default fallback.
type Locales struct {
	fallback  string
	supported map[string]struct{}
	ordered   []string
}

// New builds a locale set. The fallback is always part of the set.
func New(fallback string, supported []string) *Locales {
	if fallback == "" {
		fallback = "en"
	}
	l := &Locales{
		fallback:  fallback,
		supported: map[string]struct{}{},
	}
	for _, s := range supported {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := l.supported[s]; !ok {
			l.supported[s] = struct{}{}
			l.ordered = append(l.ordered, s)
		}
	}
	if _, ok := l.supported[fallback]; !ok {
		l.supported[fallback] = struct{}{}
		l.ordered = append(l.ordered, fallback)
	}
	sort.Strings(l.ordered)
	return l
}

// Fallback returns the default locale.
func (l *Locales) Fallback() string { return l.fallback }

// Supported returns the sorted locale list.
func (l *Locales) Supported() []string {
	out := make([]string, len(l.ordered))
	copy(out, l.ordered)
	return out
}

// IsValid reports whether lang is a supported locale.
func (l *Locales) IsValid(lang string) bool {
	_, ok := l.supported[strings.ToLower(lang)]
	return ok
}

// Canonical returns lang when supported, otherwise the fallback.
func (l *Locales) Canonical(lang string) string {
	lang = strings.ToLower(lang)
	if l.IsValid(lang) {
		return lang
	}
	return l.fallback
}

// Resolve chooses the best supported language from an Accept-Language header.
func (l *Locales) Resolve(acceptLang string) string {
	type langPref struct {
		base string
		q    float64
		pos  int
	}
	prefs := make([]langPref, 0, 8)
	parts := strings.Split(acceptLang, ",")
	for i, raw := range parts {
		p := strings.TrimSpace(raw)
		if p == "" {
			continue
		}
		q := 1.0
		if sc := strings.IndexByte(p, ';'); sc != -1 {
			params := strings.TrimSpace(p[sc+1:])
			p = strings.TrimSpace(p[:sc])
			if strings.HasPrefix(params, "q=") {
				if v, err := parseQValue(strings.TrimPrefix(params, "q=")); err == nil {
					q = v
				}
			}
		}
		base := p
		if dash := strings.IndexByte(p, '-'); dash != -1 {
			base = p[:dash]
		}
		base = strings.ToLower(base)
		prefs = append(prefs, langPref{base: base, q: q, pos: i})
	}
	// sort by q desc then by original order
	sort.SliceStable(prefs, func(i, j int) bool {
		if prefs[i].q == prefs[j].q {
			return prefs[i].pos < prefs[j].pos
		}
		return prefs[i].q > prefs[j].q
	})
	for _, lp := range prefs {
		if l.IsValid(lp.base) {
			return lp.base
		}
	}
	return l.fallback
}

// DetectFromRequest picks a locale for requests that carry no locale path
// segment of their own (the not-found page). Best effort, in order: the
// locale prefix of the referrer path, the hl cookie, the Accept-Language
// header, the fallback.
func (l *Locales) DetectFromRequest(r *http.Request) string {
	if ref := r.Header.Get("Referer"); ref != "" {
		if u, err := url.Parse(ref); err == nil {
			seg := strings.TrimPrefix(u.Path, "/")
			if i := strings.IndexByte(seg, '/'); i != -1 {
				seg = seg[:i]
			}
			if l.IsValid(seg) {
				return strings.ToLower(seg)
			}
		}
	}
	if c, err := r.Cookie("hl"); err == nil && l.IsValid(c.Value) {
		return strings.ToLower(c.Value)
	}
	return l.Resolve(r.Header.Get("Accept-Language"))
}

// parseQValue parses a qvalue per RFC 7231 (0.0 to 1.0).
func parseQValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "1", "1.0", "1.00":
		return 1.0, nil
	case "0", "0.0", "0.00":
		return 0.0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return v, nil
}
