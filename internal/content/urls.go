package content

import (
	"context"
	"sort"
	"strings"
)

// LocalizedURL is one sitemap entry: a locale-specific slug with its route
// metadata.
type LocalizedURL struct {
	Locale     string
	Slug       string
	PageID     string
	Priority   float64
	Changefreq string
}

// AllLocalizedURLs enumerates every localized URL of the site: each route's
// slug per locale, plus every collection item under its localized base path.
// The output is sorted for stable sitemaps.
func (r *Resolver) AllLocalizedURLs(ctx context.Context) ([]LocalizedURL, error) {
	cfg, err := r.store.Routes()
	if err != nil {
		return nil, err
	}

	var urls []LocalizedURL
	for _, route := range cfg.Routes {
		for locale, slug := range route.URLs {
			urls = append(urls, LocalizedURL{
				Locale:     locale,
				Slug:       slug,
				PageID:     route.PageID,
				Priority:   route.Priority,
				Changefreq: route.Changefreq,
			})
		}
	}

	names := make([]string, 0, len(cfg.Collections))
	for name := range cfg.Collections {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		collection := cfg.Collections[name]
		for _, item := range r.store.CollectionItems(name) {
			for _, locale := range cfg.SupportedLocales {
				base := collection.BasePath[locale]
				if base == "" {
					continue
				}
				urls = append(urls, LocalizedURL{
					Locale:     locale,
					Slug:       base + "/" + itemSlug(item, locale),
					PageID:     name + "/" + item.ItemID,
					Priority:   collection.Priority,
					Changefreq: collection.Changefreq,
				})
			}
		}
	}

	sort.Slice(urls, func(i, j int) bool {
		if urls[i].Locale != urls[j].Locale {
			return urls[i].Locale < urls[j].Locale
		}
		return urls[i].Slug < urls[j].Slug
	})
	return urls, nil
}

// RouteByPageID returns the route entry for a page id.
func (r *Resolver) RouteByPageID(ctx context.Context, pageID string) (*RouteConfig, bool) {
	cfg, err := r.store.Routes()
	if err != nil {
		return nil, false
	}
	for i := range cfg.Routes {
		if cfg.Routes[i].PageID == pageID {
			return &cfg.Routes[i], true
		}
	}
	return nil, false
}

// LocalizedURLFor returns the slug of a page in the given locale.
func (r *Resolver) LocalizedURLFor(ctx context.Context, pageID, locale string) (string, bool) {
	route, ok := r.RouteByPageID(ctx, pageID)
	if !ok {
		return "", false
	}
	slug, ok := route.URLs[locale]
	return slug, ok
}

// TranslateURL maps a localized slug to its equivalent in another locale.
// Static routes translate via the routes table; collection items translate
// by re-rooting under the target locale's base path with the item's target
// slug. The empty slug (home) translates to itself.
func (r *Resolver) TranslateURL(ctx context.Context, fromLocale, toLocale, slug string) (string, bool) {
	if slug == "" {
		return "", true
	}
	cfg, err := r.store.Routes()
	if err != nil {
		return "", false
	}

	for _, route := range cfg.Routes {
		if route.URLs[fromLocale] == slug {
			translated, ok := route.URLs[toLocale]
			return translated, ok
		}
	}

	if strings.Contains(slug, "/") {
		parts := strings.Split(slug, "/")
		category, rest := parts[0], parts[1]
		for name, collection := range cfg.Collections {
			if collection.BasePath[fromLocale] != category {
				continue
			}
			item, ok := r.ItemBySlug(ctx, name, fromLocale, rest)
			if !ok {
				return "", false
			}
			targetBase := collection.BasePath[toLocale]
			if targetBase == "" {
				return "", false
			}
			return targetBase + "/" + itemSlug(item, toLocale), true
		}
	}

	return "", false
}

func itemSlug(item *CollectionItem, locale string) string {
	if len(item.Slugs) > 0 {
		if s := item.Slugs[locale]; s != "" {
			return s
		}
	}
	return item.ItemID
}
