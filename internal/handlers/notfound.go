package handlers

import (
	"net/http"

	"languremontas.com/web/internal/content"
)

// notFoundPage is the synthetic page backing the 404 view. Its base
// component list is empty; every slot is introduced through overrides
// pointing at shared content.
var notFoundPage = &content.PageContent{
	PageID:   "not-found",
	Template: "default",
	SEO: map[string]content.SEOData{
		"en": {Title: "404 - Page Not Found", Description: "The page you are looking for could not be found.", Keywords: "404, not found"},
		"lt": {Title: "404 - Puslapis nerastas", Description: "Ieškomas puslapis nerastas.", Keywords: "404, nerasta"},
	},
	Content:    map[string]map[string]any{},
	Components: []content.ComponentConfig{},
	ComponentOverrides: map[string]content.Override{
		"ServiceCards": {ContentKey: "shared:servicecards"},
		"Testimonials": {ContentKey: "shared:testimonials"},
		"Faq":          {ContentKey: "shared:faq"},
	},
}

// fallbackNotFoundContent is used when the shared common document carries no
// notFound block for the detected locale.
var fallbackNotFoundContent = map[string]any{
	"title":       "Page Not Found",
	"subtitle":    "404 Error",
	"description": "The page you're looking for doesn't exist or has been moved.",
	"suggestions": map[string]any{
		"title": "What can you do?",
		"items": []any{
			"Check the URL for typos",
			"Go back to the previous page",
			"Visit our homepage",
			"Contact us for assistance",
		},
	},
}

// NotFound renders the localized not-found page. The failed resolution
// carries no locale, so it is detected best-effort from the referrer, the
// hl cookie, and Accept-Language.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	locale := h.Locales.DetectFromRequest(r)

	seoData := h.Resolver.PageSEO(notFoundPage, locale, nil)
	meta := h.buildMeta(ctx, locale, "", seoData, h.siteName(ctx, locale))
	meta.Robots = "noindex, nofollow"

	insts := h.buildComponents(ctx, notFoundPage, locale, false)
	data, ok := h.pageData(w, r, locale, "", meta, insts, http.StatusNotFound)
	if !ok {
		return
	}

	localized, _ := h.Resolver.LocalizedShared(h.Resolver.Shared(ctx, "common"), locale).(map[string]any)
	if nf, _ := localized["notFound"].(map[string]any); len(nf) > 0 {
		data.NotFound = nf
	} else {
		data.NotFound = fallbackNotFoundContent
	}
	h.Render(w, r, data)
}
