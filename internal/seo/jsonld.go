package seo

import (
	"encoding/json"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// WebSite returns a minimal WebSite schema with the site publisher.
func WebSite(name, description, url string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if description != "" {
		m["description"] = description
	}
	if url != "" {
		m["url"] = url
	}
	m["publisher"] = map[string]any{
		"@type": "Organization",
		"name":  name,
	}
	return m
}

// Service returns a schema.org Service block for a service collection item.
func Service(name, description, providerName, providerURL string) map[string]any {
	m := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Service",
		"name":        name,
		"description": description,
	}
	provider := map[string]any{
		"@type": "Organization",
		"name":  providerName,
	}
	if providerURL != "" {
		provider["url"] = providerURL
	}
	m["provider"] = provider
	return m
}

// Article returns a minimal Article schema payload for a news item.
func Article(headline, url, imageURL, authorName, datePublished string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Article",
		"headline": headline,
	}
	if url != "" {
		m["url"] = url
	}
	if imageURL != "" {
		m["image"] = imageURL
	}
	if authorName != "" {
		m["author"] = map[string]any{"@type": "Person", "name": authorName}
	}
	if datePublished != "" {
		m["datePublished"] = datePublished
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}
