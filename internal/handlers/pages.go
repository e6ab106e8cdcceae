package handlers

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"languremontas.com/web/internal/config"
	"languremontas.com/web/internal/content"
	"languremontas.com/web/internal/i18n"
	"languremontas.com/web/internal/middleware"
	"languremontas.com/web/internal/nav"
	"languremontas.com/web/internal/render"
	"languremontas.com/web/internal/seo"
)

// PageData is the view model for the shared base layout.
type PageData struct {
	Lang      string
	Meta      seo.Meta
	Analytics config.Analytics

	Path        string
	Nav         []nav.Item
	Breadcrumbs []nav.Crumb

	// Blocks is the ordered, pre-rendered component markup for the page.
	Blocks []template.HTML

	// Alternates for the language switcher: locale -> localized href.
	LanguageLinks []nav.Item

	// NotFound carries the localized 404 body content when set.
	NotFound map[string]any

	Status int
}

// RenderFunc executes the base layout for a view model.
type RenderFunc func(http.ResponseWriter, *http.Request, *PageData)

// RendererFunc returns the component renderer; in dev mode each call may
// reparse templates.
type RendererFunc func() (*render.Renderer, error)

// Handlers wires the page orchestrators to the resolver and render layer.
type Handlers struct {
	Resolver   *content.Resolver
	Locales    *i18n.Locales
	BaseURL    string
	Analytics  config.Analytics
	Log        *zap.Logger
	Render     RenderFunc
	Components RendererFunc
}

// lang returns the request locale resolved by the locale middleware.
func (h *Handlers) lang(r *http.Request) string {
	if locale, ok := middleware.LocaleFrom(r.Context()); ok {
		return locale
	}
	return h.Locales.Fallback()
}
