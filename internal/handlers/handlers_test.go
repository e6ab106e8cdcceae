package handlers

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"languremontas.com/web/internal/config"
	"languremontas.com/web/internal/content"
	"languremontas.com/web/internal/i18n"
	"languremontas.com/web/internal/middleware"
	"languremontas.com/web/internal/render"
)

func fixtureFS() fstest.MapFS {
	return fstest.MapFS{
		"routes.json": &fstest.MapFile{Data: []byte(`{
			"defaultLocale": "en",
			"supportedLocales": ["en", "lt"],
			"routes": [
				{"pageId": "homepage", "urls": {"en": "", "lt": ""}, "priority": 1.0, "changefreq": "weekly"},
				{"pageId": "about", "urls": {"en": "about", "lt": "apie-mus"}, "priority": 0.8, "changefreq": "monthly"},
				{"pageId": "privacy-policy", "urls": {"en": "privacy-policy", "lt": "privatumo-politika"}, "priority": 0.3, "changefreq": "yearly"}
			],
			"collections": {
				"services": {
					"basePath": {"en": "services", "lt": "paslaugos"},
					"itemRoute": "service",
					"priority": 0.7,
					"changefreq": "monthly"
				}
			}
		}`)},
		"pages/homepage.json": &fstest.MapFile{Data: []byte(`{
			"pageId": "homepage",
			"template": "default",
			"seo": {
				"en": {"title": "Window Repair Vilnius", "description": "Fast window and door repair"},
				"lt": {"title": "Langų remontas Vilniuje"}
			},
			"content": {
				"en": {"hero": {"title": "We fix windows", "subtitle": "Same-day service"}},
				"lt": {"hero": {"title": "Remontuojame langus"}}
			},
			"components": [
				{"type": "Hero", "contentKey": "hero", "required": true}
			]
		}`)},
		"pages/about.json": &fstest.MapFile{Data: []byte(`{
			"pageId": "about",
			"template": "default",
			"seo": {"en": {"title": "About Us", "description": "Who we are"}},
			"content": {"en": {"header": {"title": "About Us", "subtitle": "Our story"}}},
			"components": [
				{"type": "PageHeader", "contentKey": "header", "required": true}
			]
		}`)},
		"pages/privacy-policy.json": &fstest.MapFile{Data: []byte(`{
			"pageId": "privacy-policy",
			"template": "default",
			"seo": {"en": {"title": "Privacy Policy"}},
			"content": {
				"en": {"sections": [{"title": "Data", "body": "We store form submissions."}]},
				"lt": {"sections": [{"title": "Duomenys", "body": "Saugome užklausų duomenis."}]}
			},
			"components": []
		}`)},
		"collections/services/window-repair.json": &fstest.MapFile{Data: []byte(`{
			"itemId": "window-repair",
			"collection": "services",
			"template": "service",
			"slugs": {"en": "window-repair", "lt": "langu-remontas"},
			"seo": {"en": {"title": "Window Repair", "description": "Hinge and seal service"}},
			"content": {"en": {"hero": {"title": "Window Repair", "subtitle": "Hinges, seals, glass"}}},
			"components": [
				{"type": "Hero", "contentKey": "hero", "required": true}
			]
		}`)},
		"shared/common.json": &fstest.MapFile{Data: []byte(`{
			"en": {
				"site": {"name": "Langu Remontas", "description": "Window and door repair", "keywords": "windows, doors"},
				"notFound": {"title": "Page Not Found", "description": "Nothing here."}
			},
			"lt": {
				"site": {"name": "Langų remontas", "description": "Langų ir durų remontas"},
				"notFound": {"title": "Puslapis nerastas"}
			}
		}`)},
		"shared/forms.json": &fstest.MapFile{Data: []byte(`{
			"en": {"title": "Request a technician", "submit": "Send request"},
			"lt": {"title": "Iškviesti meistrą", "submit": "Siųsti užklausą"}
		}`)},
		"shared/navigation.json": &fstest.MapFile{Data: []byte(`{
			"en": {"main": [
				{"label": "Home", "pageId": "homepage"},
				{"label": "About", "pageId": "about"}
			]},
			"lt": {"main": [
				{"label": "Pradžia", "pageId": "homepage"},
				{"label": "Apie mus", "pageId": "about"}
			]}
		}`)},
		"shared/components/requestTechnicianModal.json": &fstest.MapFile{Data: []byte(`{
			"en": {"title": "Request a technician", "submit": "Send"},
			"lt": {"title": "Iškviesti meistrą"}
		}`)},
		"shared/components/servicecards.json": &fstest.MapFile{Data: []byte(`{
			"en": {"title": "Our services"}
		}`)},
		"shared/components/testimonials.json": &fstest.MapFile{Data: []byte(`{
			"en": {"title": "What clients say"}
		}`)},
		"shared/components/faq.json": &fstest.MapFile{Data: []byte(`{
			"en": {"title": "Frequently asked questions"}
		}`)},
	}
}

func testTemplates(t *testing.T) *template.Template {
	t.Helper()
	tmpl := template.New("components")
	for _, kind := range render.Kinds() {
		name := kind.TemplateName()
		_, err := tmpl.New(name).Parse(`<section data-component="` + strings.ToLower(kind.String()) + `"></section>`)
		require.NoError(t, err)
	}
	return tmpl
}

type captured struct {
	data *PageData
}

func newTestHandlers(t *testing.T) (*Handlers, *captured) {
	t.Helper()
	store := content.NewStore(fixtureFS(), zap.NewNop())
	resolver := content.NewResolver(store, zap.NewNop())
	renderer, err := render.NewRenderer(testTemplates(t), zap.NewNop())
	require.NoError(t, err)

	cap := &captured{}
	h := &Handlers{
		Resolver:  resolver,
		Locales:   i18n.New("en", []string{"en", "lt"}),
		BaseURL:   "https://langu-remontas.com",
		Analytics: config.Analytics{},
		Log:       zap.NewNop(),
		Render: func(w http.ResponseWriter, r *http.Request, data *PageData) {
			cap.data = data
			status := data.Status
			if status == 0 {
				status = http.StatusOK
			}
			w.WriteHeader(status)
			for _, block := range data.Blocks {
				_, _ = w.Write([]byte(block))
			}
		},
		Components: func() (*render.Renderer, error) { return renderer, nil },
	}
	return h, cap
}

func testRouter(h *Handlers) http.Handler {
	r := chi.NewRouter()
	r.NotFound(h.NotFound)
	r.Route("/{locale}", func(r chi.Router) {
		r.Use(middleware.Locale(h.Locales))
		r.Get("/", h.Home)
		r.Get("/*", h.Dynamic)
	})
	return r
}

func get(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHomeRendersLocalizedPage(t *testing.T) {
	h, cap := newTestHandlers(t)
	router := testRouter(h)

	rec := get(t, router, "/en/")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, cap.data)
	assert.Equal(t, "en", cap.data.Lang)
	assert.Equal(t, "Window Repair Vilnius", cap.data.Meta.Title)
	assert.Equal(t, "https://langu-remontas.com/en", cap.data.Meta.Canonical)
	assert.Contains(t, rec.Body.String(), `data-component="hero"`)
}

func TestHomeSEOFallsBackPerField(t *testing.T) {
	h, cap := newTestHandlers(t)
	router := testRouter(h)

	rec := get(t, router, "/lt/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "lt", cap.data.Lang)
	assert.Equal(t, "Langų remontas Vilniuje", cap.data.Meta.Title)
	// the lt page block has no description, so it comes from shared common
	assert.Equal(t, "Langų ir durų remontas", cap.data.Meta.Description)
	assert.Equal(t, "/og.png", cap.data.Meta.OG.Image)
}

func TestHomeCarriesHreflangAlternates(t *testing.T) {
	h, cap := newTestHandlers(t)
	router := testRouter(h)

	get(t, router, "/en/")

	require.Len(t, cap.data.Meta.Alternates, 2)
	hrefs := map[string]string{}
	for _, alt := range cap.data.Meta.Alternates {
		hrefs[alt.Hreflang] = alt.Href
	}
	assert.Equal(t, "https://langu-remontas.com/en", hrefs["en"])
	assert.Equal(t, "https://langu-remontas.com/lt", hrefs["lt"])
}

func TestDynamicStaticRoute(t *testing.T) {
	h, cap := newTestHandlers(t)
	router := testRouter(h)

	rec := get(t, router, "/en/about")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "About Us", cap.data.Meta.Title)
	assert.Contains(t, rec.Body.String(), `data-component="pageheader"`)
}

func TestSubpageEmitsBreadcrumbJSONLD(t *testing.T) {
	h, cap := newTestHandlers(t)
	router := testRouter(h)

	rec := get(t, router, "/en/about")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, cap.data)
	var list string
	for _, ld := range cap.data.Meta.JSONLD {
		if strings.Contains(ld, `"@type":"BreadcrumbList"`) {
			list = ld
		}
	}
	require.NotEmpty(t, list, "subpages carry a breadcrumb list")
	assert.Contains(t, list, `"item":"https://langu-remontas.com/en"`)
	assert.Contains(t, list, `"item":"https://langu-remontas.com/en/about"`)
	assert.Contains(t, list, `"position":2`)
}

func TestHomeOmitsBreadcrumbJSONLD(t *testing.T) {
	h, cap := newTestHandlers(t)
	router := testRouter(h)

	rec := get(t, router, "/en/")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, cap.data)
	for _, ld := range cap.data.Meta.JSONLD {
		assert.NotContains(t, ld, `"@type":"BreadcrumbList"`)
	}
}

func TestDynamicLocalizedSlugDoesNotCrossLocales(t *testing.T) {
	h, _ := newTestHandlers(t)
	router := testRouter(h)

	// the Lithuanian slug is not valid under the English prefix
	rec := get(t, router, "/en/apie-mus")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, router, "/lt/apie-mus")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDynamicCollectionItem(t *testing.T) {
	h, cap := newTestHandlers(t)
	router := testRouter(h)

	rec := get(t, router, "/en/services/window-repair")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Window Repair", cap.data.Meta.Title)
	require.NotEmpty(t, cap.data.Meta.JSONLD)
	assert.Contains(t, cap.data.Meta.JSONLD[0], `"@type":"Service"`)
}

func TestDynamicDispatchesPrivacyPolicy(t *testing.T) {
	h, cap := newTestHandlers(t)
	router := testRouter(h)

	rec := get(t, router, "/en/privacy-policy")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Privacy Policy", cap.data.Meta.Title)
	assert.Contains(t, rec.Body.String(), `data-component="privacypolicy"`)
}

func TestNotFoundRendersSyntheticPage(t *testing.T) {
	h, cap := newTestHandlers(t)
	router := testRouter(h)

	rec := get(t, router, "/en/no-such-page")

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, cap.data)
	assert.Equal(t, http.StatusNotFound, cap.data.Status)
	assert.Equal(t, "noindex, nofollow", cap.data.Meta.Robots)
	// every 404 slot comes from shared content via overrides
	body := rec.Body.String()
	assert.Contains(t, body, `data-component="faq"`)
	assert.Contains(t, body, `data-component="servicecards"`)
	assert.Contains(t, body, `data-component="testimonials"`)
	require.NotNil(t, cap.data.NotFound)
	assert.Equal(t, "Page Not Found", cap.data.NotFound["title"])
}

func TestNotFoundDetectsLocaleFromCookie(t *testing.T) {
	h, cap := newTestHandlers(t)
	router := testRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/en/no-such-page", nil)
	req.AddCookie(&http.Cookie{Name: "hl", Value: "lt"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "lt", cap.data.Lang)
	assert.Equal(t, "Puslapis nerastas", cap.data.NotFound["title"])
}

func TestLanguageLinksFallBackToHome(t *testing.T) {
	h, cap := newTestHandlers(t)
	router := testRouter(h)

	get(t, router, "/en/about")

	require.Len(t, cap.data.LanguageLinks, 2)
	links := map[string]string{}
	for _, l := range cap.data.LanguageLinks {
		links[l.Label] = l.Href
	}
	assert.Equal(t, "/en/about", links["EN"])
	assert.Equal(t, "/lt/apie-mus", links["LT"])
}

func TestNavBuiltFromSharedNavigation(t *testing.T) {
	h, cap := newTestHandlers(t)
	router := testRouter(h)

	get(t, router, "/lt/apie-mus")

	require.Len(t, cap.data.Nav, 2)
	assert.Equal(t, "Pradžia", cap.data.Nav[0].Label)
	assert.Equal(t, "/lt", cap.data.Nav[0].Href)
	assert.Equal(t, "Apie mus", cap.data.Nav[1].Label)
	assert.Equal(t, "/lt/apie-mus", cap.data.Nav[1].Href)
	assert.True(t, cap.data.Nav[1].Active)
}

func TestContactFormFallsBackToSharedStrings(t *testing.T) {
	h, _ := newTestHandlers(t)

	// a form slot whose content key resolves to nothing
	page := &content.PageContent{
		PageID:     "contact",
		Content:    map[string]map[string]any{"en": {}},
		Components: []content.ComponentConfig{{Type: "ContactForm", ContentKey: "form"}},
	}
	insts := h.buildComponents(context.Background(), page, "lt", false)

	require.Len(t, insts, 1)
	props, ok := insts[0].Props.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Siųsti užklausą", props["submit"])
}

func TestModalMergedIntoHomepageHero(t *testing.T) {
	h, _ := newTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/en/", nil)
	req = req.WithContext(middleware.WithLocale(req.Context(), "en"))

	page, ok := h.Resolver.Page(req.Context(), "homepage")
	require.True(t, ok)

	insts := h.buildComponents(req.Context(), page, "en", true)
	require.Len(t, insts, 1)
	props, ok := insts[0].Props.(map[string]any)
	require.True(t, ok)
	translations, ok := props["translations"].(map[string]any)
	require.True(t, ok)
	modal, ok := translations["request_technician_modal"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Request a technician", modal["title"])
}
