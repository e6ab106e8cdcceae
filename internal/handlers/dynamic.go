package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"languremontas.com/web/internal/content"
	"languremontas.com/web/internal/format"
	"languremontas.com/web/internal/render"
	"languremontas.com/web/internal/seo"
)

// Dynamic is the catch-all orchestrator: it resolves the slug against the
// routes table and the configured collections and renders whichever content
// shape comes back. An unresolved slug is the not-found page, never an
// error.
func (h *Handlers) Dynamic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	locale := h.lang(r)
	slug := strings.Trim(chi.URLParam(r, "*"), "/")

	resolved, ok := h.Resolver.ResolvePageBySlug(ctx, locale, slug)
	if !ok {
		h.NotFound(w, r)
		return
	}

	switch {
	case resolved.Page != nil && resolved.Page.PageID == "privacy-policy":
		h.PrivacyPolicy(w, r)
	case resolved.Page != nil:
		h.renderStaticPage(w, r, locale, slug, resolved.Page)
	case resolved.Item != nil:
		h.renderCollectionItem(w, r, locale, slug, resolved.Item)
	default:
		h.NotFound(w, r)
	}
}

func (h *Handlers) renderStaticPage(w http.ResponseWriter, r *http.Request, locale, slug string, page *content.PageContent) {
	ctx := r.Context()
	seoData := h.Resolver.PageSEO(page, locale, nil)
	meta := h.buildMeta(ctx, locale, slug, seoData, h.siteName(ctx, locale))
	insts := h.buildComponents(ctx, page, locale, false)
	h.renderPage(w, r, locale, slug, meta, insts, http.StatusOK)
}

func (h *Handlers) renderCollectionItem(w http.ResponseWriter, r *http.Request, locale, slug string, item *content.CollectionItem) {
	ctx := r.Context()
	seoData := h.Resolver.PageSEO(item, locale, nil)
	meta := h.buildMeta(ctx, locale, slug, seoData, h.siteName(ctx, locale))

	// collection-specific structured data
	localized := h.Resolver.LocalizedContent(item, locale)
	hero, _ := localized["hero"].(map[string]any)
	switch item.Collection {
	case "services":
		name := firstString(stringAt(hero, "title"), seoData.Title)
		desc := firstString(stringAt(hero, "subtitle"), seoData.Description)
		if ld := seo.JSON(seo.Service(name, desc, h.siteName(ctx, locale), h.BaseURL)); ld != "" {
			meta.JSONLD = append(meta.JSONLD, ld)
		}
	case "news":
		if meta.Description == "" {
			article, _ := localized["article"].(map[string]any)
			if body, _ := article["body"].(string); body != "" {
				meta.Description = format.Excerpt(string(render.Markdown(body)), 160)
			}
		}
		ld := seo.Article(seoData.Title, h.absoluteURL(locale, slug), seoData.OGImage,
			item.Author, format.PublishDate(item.PublishDate))
		if s := seo.JSON(ld); s != "" {
			meta.JSONLD = append(meta.JSONLD, s)
		}
	}

	insts := h.buildComponents(ctx, item, locale, false)
	h.renderPage(w, r, locale, slug, meta, insts, http.StatusOK)
}

func stringAt(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
