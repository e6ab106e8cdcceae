package content

// RoutesConfig is the singleton routes document. It maps stable page ids to
// their localized URL slugs and declares the configured collections.
type RoutesConfig struct {
	Routes           []RouteConfig               `json:"routes"`
	Collections      map[string]CollectionConfig `json:"collections,omitempty"`
	DefaultLocale    string                      `json:"defaultLocale"`
	SupportedLocales []string                    `json:"supportedLocales"`
}

// RouteConfig identifies a static page and its slug per locale. Slugs are
// unique per locale across routes.
type RouteConfig struct {
	PageID     string            `json:"pageId"`
	URLs       map[string]string `json:"urls"`
	Priority   float64           `json:"priority"`
	Changefreq string            `json:"changefreq"`
}

// CollectionConfig describes a named group of like-typed items (services,
// news) and the localized base path under which they are addressed.
type CollectionConfig struct {
	BasePath   map[string]string `json:"basePath"`
	ItemRoute  string            `json:"itemRoute"`
	Priority   float64           `json:"priority"`
	Changefreq string            `json:"changefreq"`
}

// SEOData carries per-locale page metadata.
type SEOData struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Keywords       string `json:"keywords"`
	OGImage        string `json:"ogImage"`
	OGImageAlt     string `json:"ogImageAlt"`
	StructuredData any    `json:"structuredData,omitempty"`
}

// ComponentConfig is one slot in a page's ordered layout. CustomContent is
// only ever populated through an override.
type ComponentConfig struct {
	Type          string         `json:"type"`
	ContentKey    string         `json:"contentKey"`
	Required      bool           `json:"required"`
	CustomContent map[string]any `json:"customContent,omitempty"`
}

// Override adjusts a component slot per page: replace its content source,
// supply inline content, or disable the slot entirely.
type Override struct {
	ContentKey    string         `json:"contentKey,omitempty"`
	CustomContent map[string]any `json:"customContent,omitempty"`
	Disabled      bool           `json:"disabled,omitempty"`
}

// PageContent is a static page document. Immutable at runtime; loaded once
// and cached for the process lifetime.
type PageContent struct {
	PageID             string                    `json:"pageId"`
	Template           string                    `json:"template"`
	SEO                map[string]SEOData        `json:"seo"`
	Content            map[string]map[string]any `json:"content"`
	Components         []ComponentConfig         `json:"components"`
	ComponentOverrides map[string]Override       `json:"componentOverrides,omitempty"`
}

// CollectionItem is one document of a collection (a service, a news article).
type CollectionItem struct {
	ItemID             string                    `json:"itemId"`
	Collection         string                    `json:"collection"`
	Template           string                    `json:"template"`
	Slugs              map[string]string         `json:"slugs,omitempty"`
	SEO                map[string]SEOData        `json:"seo"`
	Content            map[string]map[string]any `json:"content"`
	Components         []ComponentConfig         `json:"components,omitempty"`
	ComponentOverrides map[string]Override       `json:"componentOverrides,omitempty"`
	PublishDate        string                    `json:"publishDate,omitempty"`
	Author             string                    `json:"author,omitempty"`
}

// Document is the common shape of resolvable content: static pages and
// collection items both expose locale-keyed SEO/content blocks and an
// ordered component list with optional overrides.
type Document interface {
	ID() string
	SEOBlocks() map[string]SEOData
	ContentBlocks() map[string]map[string]any
	BaseComponents() []ComponentConfig
	Overrides() map[string]Override
}

func (p *PageContent) ID() string                               { return p.PageID }
func (p *PageContent) SEOBlocks() map[string]SEOData            { return p.SEO }
func (p *PageContent) ContentBlocks() map[string]map[string]any { return p.Content }
func (p *PageContent) BaseComponents() []ComponentConfig        { return p.Components }
func (p *PageContent) Overrides() map[string]Override           { return p.ComponentOverrides }

func (c *CollectionItem) ID() string                               { return c.ItemID }
func (c *CollectionItem) SEOBlocks() map[string]SEOData            { return c.SEO }
func (c *CollectionItem) ContentBlocks() map[string]map[string]any { return c.Content }
func (c *CollectionItem) BaseComponents() []ComponentConfig        { return c.Components }
func (c *CollectionItem) Overrides() map[string]Override           { return c.ComponentOverrides }

// Resolved is the outcome of a slug resolution. Exactly one of Page or Item
// is non-nil on a hit.
type Resolved struct {
	Page *PageContent
	Item *CollectionItem
}

// Doc returns the resolved document regardless of shape.
func (r Resolved) Doc() Document {
	if r.Page != nil {
		return r.Page
	}
	if r.Item != nil {
		return r.Item
	}
	return nil
}
