package seo

// OpenGraph holds og: meta properties.
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	ImageAlt    string
	Type        string
	Locale      string
	SiteName    string
}

// Twitter holds twitter card meta properties.
type Twitter struct {
	Card  string
	Title string
	Image string
}

// Alternate is one hreflang link for a localized variant of the page.
type Alternate struct {
	Href     string
	Hreflang string
}

// Meta is the head metadata view model for a rendered page.
type Meta struct {
	Title       string
	Description string
	Keywords    string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	Alternates  []Alternate
	JSONLD      []string
}
