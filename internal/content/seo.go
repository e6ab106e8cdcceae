package content

import (
	"context"

	"languremontas.com/web/internal/seo"
)

// Hardcoded last-resort SEO defaults.
const (
	defaultSEOTitle   = "Website"
	defaultSEOOGImage = "/og.png"
)

// Metadata is the fully resolved SEO payload for one rendered page.
type Metadata struct {
	Title          string
	Description    string
	Keywords       string
	OGImage        string
	OGImageAlt     string
	SiteName       string
	StructuredData any
}

// PageSEO resolves the document's SEO block for a locale with a per-field
// fallback cascade: the page's localized field, else the same field of the
// caller-supplied fallback, else a hardcoded default. Each field falls back
// independently, so a page may supply a custom title while inheriting the
// site default image.
func (r *Resolver) PageSEO(doc Document, locale string, fallback *SEOData) SEOData {
	blocks := doc.SEOBlocks()
	pageSEO, ok := blocks[locale]
	if !ok {
		pageSEO = blocks[r.store.DefaultLocale()]
	}
	if fallback == nil {
		return pageSEO
	}
	out := SEOData{
		Title:       firstNonEmpty(pageSEO.Title, fallback.Title, defaultSEOTitle),
		Description: firstNonEmpty(pageSEO.Description, fallback.Description),
		Keywords:    firstNonEmpty(pageSEO.Keywords, fallback.Keywords),
		OGImage:     firstNonEmpty(pageSEO.OGImage, fallback.OGImage, defaultSEOOGImage),
		OGImageAlt:  firstNonEmpty(pageSEO.OGImageAlt, fallback.OGImageAlt, fallback.Title, defaultSEOTitle),
	}
	out.StructuredData = pageSEO.StructuredData
	if out.StructuredData == nil {
		out.StructuredData = fallback.StructuredData
	}
	return out
}

// FallbackSEO derives site-wide fallback metadata from the shared common
// document: site name, description, keywords, plus a WebSite structured-data
// block referencing the site base URL.
func (r *Resolver) FallbackSEO(common map[string]any, locale, baseURL string) SEOData {
	localized, _ := r.LocalizedShared(common, locale).(map[string]any)
	site, _ := localized["site"].(map[string]any)
	name := stringField(site, "name", defaultSEOTitle)
	description := stringField(site, "description", "")
	keywords := stringField(site, "keywords", "")

	return SEOData{
		Title:          name,
		Description:    description,
		Keywords:       keywords,
		OGImage:        defaultSEOOGImage,
		OGImageAlt:     name,
		StructuredData: seo.WebSite(name, description, baseURL),
	}
}

// PageMetadata builds the complete metadata for a page id with the
// centralized fallback chain: page SEO when the page exists, otherwise the
// site-wide fallback derived from shared common content.
func (r *Resolver) PageMetadata(ctx context.Context, pageID, locale, baseURL string) Metadata {
	common := r.Shared(ctx, "common")
	fallback := r.FallbackSEO(common, locale, baseURL)
	localized, _ := r.LocalizedShared(common, locale).(map[string]any)
	site, _ := localized["site"].(map[string]any)
	siteName := stringField(site, "name", defaultSEOTitle)

	resolved := fallback
	if page, ok := r.Page(ctx, pageID); ok {
		resolved = r.PageSEO(page, locale, &fallback)
	}
	return Metadata{
		Title:          resolved.Title,
		Description:    resolved.Description,
		Keywords:       resolved.Keywords,
		OGImage:        resolved.OGImage,
		OGImageAlt:     resolved.OGImageAlt,
		SiteName:       siteName,
		StructuredData: resolved.StructuredData,
	}
}

func stringField(m map[string]any, key, fallback string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
