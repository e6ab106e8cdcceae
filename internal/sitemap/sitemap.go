package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"languremontas.com/web/internal/content"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string `xml:"loc"`
	Changefreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Generate renders the sitemap for every localized URL the resolver knows
// about.
func Generate(ctx context.Context, r *content.Resolver, baseURL string) ([]byte, error) {
	urls, err := r.AllLocalizedURLs(ctx)
	if err != nil {
		return nil, fmt.Errorf("sitemap: %w", err)
	}
	baseURL = strings.TrimRight(baseURL, "/")

	set := urlSet{Xmlns: xmlns, URLs: make([]urlEntry, 0, len(urls))}
	for _, u := range urls {
		loc := baseURL + "/" + u.Locale
		if u.Slug != "" {
			loc += "/" + u.Slug
		}
		entry := urlEntry{Loc: loc, Changefreq: u.Changefreq}
		if u.Priority > 0 {
			entry.Priority = fmt.Sprintf("%.1f", u.Priority)
		}
		set.URLs = append(set.URLs, entry)
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("sitemap: marshal: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

// Robots renders robots.txt pointing crawlers at the sitemap.
func Robots(baseURL string) []byte {
	baseURL = strings.TrimRight(baseURL, "/")
	return []byte("User-agent: *\nAllow: /\n\nSitemap: " + baseURL + "/sitemap.xml\n")
}
