package nav

import (
	"context"
	"strings"

	"languremontas.com/web/internal/content"
)

// Item is a rendered navigation entry.
type Item struct {
	Href   string
	Label  string
	Active bool
}

// Crumb represents a breadcrumb entry.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// Build renders the main navigation for a locale from the shared navigation
// document. Each entry names a pageId; hrefs use that page's localized slug.
// Entries whose page has no slug in this locale are skipped.
func Build(ctx context.Context, r *content.Resolver, locale, currentSlug string) []Item {
	localized, _ := r.LocalizedShared(r.Shared(ctx, "navigation"), locale).(map[string]any)
	raw, _ := localized["main"].([]any)

	items := make([]Item, 0, len(raw))
	for _, e := range raw {
		entry, ok := e.(map[string]any)
		if !ok {
			continue
		}
		label, _ := entry["label"].(string)
		if label == "" {
			continue
		}
		slug := ""
		if pageID, _ := entry["pageId"].(string); pageID != "" {
			s, ok := r.LocalizedURLFor(ctx, pageID, locale)
			if !ok {
				continue
			}
			slug = s
		} else if p, _ := entry["path"].(string); p != "" {
			slug = strings.Trim(p, "/")
		}
		items = append(items, Item{
			Href:   localeHref(locale, slug),
			Label:  label,
			Active: isActive(slug, currentSlug),
		})
	}
	return items
}

// Breadcrumbs builds breadcrumb entries for a localized slug. The home crumb
// is always first; deeper segments use prettified labels.
func Breadcrumbs(locale, slug, homeLabel string) []Crumb {
	crumbs := []Crumb{{Href: localeHref(locale, ""), Label: homeLabel, Active: slug == ""}}
	if slug == "" {
		return crumbs
	}
	parts := strings.Split(slug, "/")
	accumulated := ""
	for i, part := range parts {
		if part == "" {
			continue
		}
		if accumulated == "" {
			accumulated = part
		} else {
			accumulated = accumulated + "/" + part
		}
		crumbs = append(crumbs, Crumb{
			Href:   localeHref(locale, accumulated),
			Label:  titleFromSegment(part),
			Active: i == len(parts)-1,
		})
	}
	return crumbs
}

func localeHref(locale, slug string) string {
	if slug == "" {
		return "/" + locale
	}
	return "/" + locale + "/" + slug
}

func isActive(itemSlug, currentSlug string) bool {
	if itemSlug == "" {
		return currentSlug == ""
	}
	// match exact or prefix boundary: "services" or "services/..."
	if currentSlug == itemSlug {
		return true
	}
	return strings.HasPrefix(currentSlug, itemSlug+"/")
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	r[0] = toUpper(r[0])
	return string(r)
}

func toUpper(r rune) rune {
	// ASCII only is sufficient for slugs here
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
