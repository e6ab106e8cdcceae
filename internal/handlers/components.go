package handlers

import (
	"context"

	"golang.org/x/sync/errgroup"

	"languremontas.com/web/internal/content"
	"languremontas.com/web/internal/render"
)

// modalKinds are the component types whose translations get the shared
// request-technician modal content merged in.
var modalKinds = map[string]bool{
	"Hero":            true,
	"FreeDiagnostics": true,
	"Testimonials":    true,
	"WhyChooseUs":     true,
}

// buildComponents turns a document's effective component list into ordered
// render instances. Each slot's content may require an independent
// shared-content load; those run concurrently, but the output keeps the
// component order of the merged list, not completion order.
func (h *Handlers) buildComponents(ctx context.Context, doc content.Document, locale string, withModal bool) []render.Instance {
	comps := content.FinalComponents(doc)
	localized := h.Resolver.LocalizedContent(doc, locale)

	var modal any
	if withModal {
		modal = h.Resolver.LocalizedShared(h.Resolver.Shared(ctx, "components/requestTechnicianModal"), locale)
	}

	instances := make([]render.Instance, len(comps))
	g, gctx := errgroup.WithContext(ctx)
	for i, comp := range comps {
		i, comp := i, comp
		g.Go(func() error {
			data := h.Resolver.ComponentContent(gctx, comp, localized, locale)
			if comp.Type == "ContactForm" {
				// a form slot with no page content still renders with the
				// shared form strings
				if m, ok := data.(map[string]any); !ok || len(m) == 0 {
					data = h.Resolver.FormTranslations(gctx, locale)
				}
			}
			if withModal && modalKinds[comp.Type] {
				if m, ok := data.(map[string]any); ok {
					merged := make(map[string]any, len(m)+1)
					for k, v := range m {
						merged[k] = v
					}
					merged["request_technician_modal"] = modal
					data = merged
				}
			}
			instances[i] = render.Instance{
				Type:  comp.Type,
				Props: shapeProps(comp.Type, data, locale),
			}
			return nil
		})
	}
	// loads never return errors; misses degrade to empty content
	_ = g.Wait()
	return instances
}

// shapeProps mirrors the props each component template expects. Unlisted
// types receive the generic {translations, locale} pair.
func shapeProps(typ string, data any, locale string) any {
	kind, ok := render.ParseKind(typ)
	if !ok {
		return map[string]any{"translations": data, "locale": locale}
	}
	switch kind {
	case render.KindPageHeader:
		m, _ := data.(map[string]any)
		title, _ := m["title"].(string)
		if title == "" {
			title = "Page Title"
		}
		subtitle, _ := m["subtitle"].(string)
		return map[string]any{"title": title, "subtitle": subtitle}
	case render.KindContent:
		return map[string]any{"content": data}
	case render.KindContactForm:
		return data
	case render.KindPrivacyPolicy:
		sections := data
		if sections == nil {
			sections = []any{}
		}
		return map[string]any{"locale": locale, "sections": sections}
	default:
		return map[string]any{"translations": data, "locale": locale}
	}
}
