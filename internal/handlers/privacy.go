package handlers

import (
	"net/http"

	"languremontas.com/web/internal/render"
)

// PrivacyPolicy renders the privacy policy page: a single PrivacyPolicy
// component fed by the page's localized sections.
func (h *Handlers) PrivacyPolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	locale := h.lang(r)

	page, ok := h.Resolver.Page(ctx, "privacy-policy")
	if !ok {
		h.NotFound(w, r)
		return
	}

	slug, _ := h.Resolver.LocalizedURLFor(ctx, "privacy-policy", locale)
	seoData := h.Resolver.PageSEO(page, locale, nil)
	meta := h.buildMeta(ctx, locale, slug, seoData, h.siteName(ctx, locale))

	localized := h.Resolver.LocalizedContent(page, locale)
	insts := []render.Instance{{
		Type:  "PrivacyPolicy",
		Props: shapeProps("PrivacyPolicy", localized["sections"], locale),
	}}
	h.renderPage(w, r, locale, slug, meta, insts, http.StatusOK)
}
