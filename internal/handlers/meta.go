package handlers

import (
	"context"
	"strings"

	"languremontas.com/web/internal/content"
	"languremontas.com/web/internal/nav"
	"languremontas.com/web/internal/seo"
)

// ogLocale maps a content locale to its Open Graph locale tag.
func ogLocale(locale string) string {
	switch locale {
	case "lt":
		return "lt_LT"
	case "en":
		return "en_US"
	default:
		return locale + "_" + strings.ToUpper(locale)
	}
}

// buildMeta assembles head metadata for a resolved page.
func (h *Handlers) buildMeta(ctx context.Context, locale, slug string, data content.SEOData, siteName string) seo.Meta {
	meta := seo.Meta{
		Title:       data.Title,
		Description: data.Description,
		Keywords:    data.Keywords,
		Canonical:   h.absoluteURL(locale, slug),
		OG: seo.OpenGraph{
			Title:       data.Title,
			Description: data.Description,
			Image:       data.OGImage,
			ImageAlt:    data.OGImageAlt,
			Type:        "website",
			Locale:      ogLocale(locale),
			SiteName:    siteName,
		},
		Twitter: seo.Twitter{
			Card:  "summary_large_image",
			Title: data.Title,
			Image: data.OGImage,
		},
	}
	if data.StructuredData != nil {
		if ld := seo.JSON(data.StructuredData); ld != "" {
			meta.JSONLD = append(meta.JSONLD, ld)
		}
	}
	for _, alt := range h.Locales.Supported() {
		target := slug
		if alt != locale {
			translated, ok := h.Resolver.TranslateURL(ctx, locale, alt, slug)
			if !ok {
				continue
			}
			target = translated
		}
		meta.Alternates = append(meta.Alternates, seo.Alternate{
			Href:     h.absoluteURL(alt, target),
			Hreflang: alt,
		})
	}
	return meta
}

// languageLinks builds the language switcher entries for the current slug.
// A locale without a translation falls back to its home page.
func (h *Handlers) languageLinks(ctx context.Context, locale, slug string) []nav.Item {
	links := make([]nav.Item, 0, len(h.Locales.Supported()))
	for _, alt := range h.Locales.Supported() {
		href := "/" + alt
		if alt == locale {
			if slug != "" {
				href += "/" + slug
			}
		} else if translated, ok := h.Resolver.TranslateURL(ctx, locale, alt, slug); ok && translated != "" {
			href += "/" + translated
		}
		links = append(links, nav.Item{
			Href:   href,
			Label:  strings.ToUpper(alt),
			Active: alt == locale,
		})
	}
	return links
}

func (h *Handlers) absoluteURL(locale, slug string) string {
	url := strings.TrimRight(h.BaseURL, "/") + "/" + locale
	if slug != "" {
		url += "/" + slug
	}
	return url
}

// siteName reads the localized site name from shared common content.
func (h *Handlers) siteName(ctx context.Context, locale string) string {
	localized, _ := h.Resolver.LocalizedShared(h.Resolver.Shared(ctx, "common"), locale).(map[string]any)
	site, _ := localized["site"].(map[string]any)
	if name, _ := site["name"].(string); name != "" {
		return name
	}
	return "Website"
}
