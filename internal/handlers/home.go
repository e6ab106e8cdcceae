package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"languremontas.com/web/internal/content"
	"languremontas.com/web/internal/nav"
	"languremontas.com/web/internal/render"
	"languremontas.com/web/internal/seo"
)

// Home renders the homepage for the request locale.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	locale := h.lang(r)

	page, ok := h.Resolver.Page(ctx, "homepage")
	if !ok {
		h.NotFound(w, r)
		return
	}

	md := h.Resolver.PageMetadata(ctx, "homepage", locale, h.BaseURL)
	seoData := content.SEOData{
		Title:          md.Title,
		Description:    md.Description,
		Keywords:       md.Keywords,
		OGImage:        md.OGImage,
		OGImageAlt:     md.OGImageAlt,
		StructuredData: md.StructuredData,
	}

	insts := h.buildComponents(ctx, page, locale, true)
	h.renderPage(w, r, locale, "", h.buildMeta(ctx, locale, "", seoData, md.SiteName), insts, http.StatusOK)
}

// renderPage finishes a page: renders component blocks, fills the shared
// layout fields, and hands the view model to the render layer.
func (h *Handlers) renderPage(w http.ResponseWriter, r *http.Request, locale, slug string, meta seo.Meta, insts []render.Instance, status int) {
	data, ok := h.pageData(w, r, locale, slug, meta, insts, status)
	if !ok {
		return
	}
	h.Render(w, r, data)
}

// pageData assembles the shared layout view model. On template failure it
// writes a 500 and reports ok=false.
func (h *Handlers) pageData(w http.ResponseWriter, r *http.Request, locale, slug string, meta seo.Meta, insts []render.Instance, status int) (*PageData, bool) {
	renderer, err := h.Components()
	if err != nil {
		h.Log.Error("component templates unavailable", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return nil, false
	}

	ctx := r.Context()
	crumbs := nav.Breadcrumbs(locale, slug, h.siteName(ctx, locale))
	if ld := h.breadcrumbJSONLD(crumbs); ld != "" {
		meta.JSONLD = append(meta.JSONLD, ld)
	}
	return &PageData{
		Lang:          locale,
		Meta:          meta,
		Analytics:     h.Analytics,
		Path:          r.URL.Path,
		Nav:           nav.Build(ctx, h.Resolver, locale, slug),
		Breadcrumbs:   crumbs,
		Blocks:        renderer.All(insts),
		LanguageLinks: h.languageLinks(ctx, locale, slug),
		Status:        status,
	}, true
}

// breadcrumbJSONLD turns the breadcrumb trail into a BreadcrumbList script
// payload with absolute item URLs. The homepage has a single crumb and gets
// no list.
func (h *Handlers) breadcrumbJSONLD(crumbs []nav.Crumb) string {
	if len(crumbs) < 2 {
		return ""
	}
	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	base := strings.TrimRight(h.BaseURL, "/")
	for _, c := range crumbs {
		items = append(items, seo.BreadcrumbItem{
			Name: c.Label,
			Item: base + c.Href,
		})
	}
	return seo.JSON(seo.BreadcrumbList(items))
}
