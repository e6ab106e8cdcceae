package content

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fixtureFS() fstest.MapFS {
	return fstest.MapFS{
		"routes.json": &fstest.MapFile{Data: []byte(`{
			"defaultLocale": "en",
			"supportedLocales": ["en", "lt"],
			"routes": [
				{"pageId": "homepage", "urls": {"en": "", "lt": ""}, "priority": 1.0, "changefreq": "weekly"},
				{"pageId": "about", "urls": {"en": "about", "lt": "apie-mus"}, "priority": 0.8, "changefreq": "monthly"},
				{"pageId": "contact", "urls": {"en": "contact", "lt": "kontaktai"}, "priority": 0.8, "changefreq": "monthly"}
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
		"pages/about.json": &fstest.MapFile{Data: []byte(`{
			"pageId": "about",
			"template": "default",
			"seo": {
				"en": {"title": "About Us", "description": "Who we are"},
				"lt": {"title": "Apie mus"}
			},
			"content": {
				"en": {"header": {"title": "About Us"}, "story": "shared:companystory"},
				"lt": {"header": {"title": "Apie mus"}, "story": "shared:companystory"}
			},
			"components": [
				{"type": "PageHeader", "contentKey": "header", "required": true},
				{"type": "Content", "contentKey": "story", "required": false}
			]
		}`)},
		"pages/contact.json": &fstest.MapFile{Data: []byte(`{
			"pageId": "contact",
			"template": "default",
			"seo": {"en": {"title": "Contact"}},
			"content": {"en": {"header": {"title": "Contact"}, "form": {"submit": "Send"}}},
			"components": [
				{"type": "PageHeader", "contentKey": "header", "required": true},
				{"type": "ContactForm", "contentKey": "form", "required": true}
			],
			"componentOverrides": {"ContactForm": {"disabled": true}}
		}`)},
		"pages/broken.json": &fstest.MapFile{Data: []byte(`{not json`)},
		"collections/services/window-repair.json": &fstest.MapFile{Data: []byte(`{
			"itemId": "window-repair",
			"collection": "services",
			"template": "service",
			"slugs": {"en": "window-repair", "lt": "langu-remontas"},
			"seo": {"en": {"title": "Window Repair"}},
			"content": {"en": {"hero": {"title": "Window Repair"}}}
		}`)},
		"collections/services/door-adjustment.json": &fstest.MapFile{Data: []byte(`{
			"itemId": "door-adjustment",
			"collection": "services",
			"template": "service",
			"seo": {"en": {"title": "Door Adjustment"}},
			"content": {"en": {"hero": {"title": "Door Adjustment"}}}
		}`)},
		"shared/common.json": &fstest.MapFile{Data: []byte(`{
			"en": {"site": {"name": "Langu Remontas", "description": "Window and door repair", "keywords": "windows, doors"}},
			"lt": {"site": {"name": "Langų remontas"}}
		}`)},
		"shared/forms.json": &fstest.MapFile{Data: []byte(`{
			"en": {"submit": "Send request"},
			"lt": {"submit": "Siųsti užklausą"}
		}`)},
		"shared/components/companystory.json": &fstest.MapFile{Data: []byte(`{
			"en": {"body": "Founded in 2010."},
			"lt": {"body": "Įkurta 2010 m."}
		}`)},
		"shared/components/chained.json": &fstest.MapFile{Data: []byte(`{
			"en": "shared:companystory"
		}`)},
	}
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	store := NewStore(fixtureFS(), zap.NewNop())
	return NewResolver(store, zap.NewNop())
}

func TestResolvePageBySlugStaticRoutes(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	tests := []struct {
		locale, slug, pageID string
	}{
		{"en", "about", "about"},
		{"lt", "apie-mus", "about"},
		{"en", "contact", "contact"},
	}
	for _, tc := range tests {
		resolved, ok := r.ResolvePageBySlug(ctx, tc.locale, tc.slug)
		require.True(t, ok, "%s/%s", tc.locale, tc.slug)
		require.NotNil(t, resolved.Page)
		assert.Equal(t, tc.pageID, resolved.Page.PageID)
	}
}

func TestResolvePageBySlugNoCrossLocaleMatch(t *testing.T) {
	r := newTestResolver(t)
	_, ok := r.ResolvePageBySlug(context.Background(), "en", "apie-mus")
	assert.False(t, ok)
}

func TestResolvePageBySlugExactMatchOnly(t *testing.T) {
	r := newTestResolver(t)
	for _, slug := range []string{"about/", "/about", "About"} {
		_, ok := r.ResolvePageBySlug(context.Background(), "en", slug)
		assert.False(t, ok, "slug %q must not match", slug)
	}
}

func TestResolvePageBySlugCollectionItem(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	resolved, ok := r.ResolvePageBySlug(ctx, "lt", "paslaugos/langu-remontas")
	require.True(t, ok)
	require.NotNil(t, resolved.Item)
	assert.Equal(t, "window-repair", resolved.Item.ItemID)

	// item without localized slugs matches by itemId
	resolved, ok = r.ResolvePageBySlug(ctx, "en", "services/door-adjustment")
	require.True(t, ok)
	assert.Equal(t, "door-adjustment", resolved.Item.ItemID)

	// basePath segment from another locale must not resolve
	_, ok = r.ResolvePageBySlug(ctx, "en", "paslaugos/window-repair")
	assert.False(t, ok)
}

func TestResolvePageBySlugMissIsTerminal(t *testing.T) {
	r := newTestResolver(t)
	_, ok := r.ResolvePageBySlug(context.Background(), "en", "no-such-page")
	assert.False(t, ok)
}

func TestPageMissAndMalformedDegrade(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	_, ok := r.Page(ctx, "missing")
	assert.False(t, ok)

	_, ok = r.Page(ctx, "broken")
	assert.False(t, ok, "malformed document must degrade to a miss")
}

func TestRoutesConfigMissingIsFatal(t *testing.T) {
	store := NewStore(fstest.MapFS{}, zap.NewNop())
	r := NewResolver(store, zap.NewNop())
	_, err := r.Routes(context.Background())
	require.Error(t, err)

	_, ok := r.ResolvePageBySlug(context.Background(), "en", "about")
	assert.False(t, ok)
}

func TestLocalizedContentFallback(t *testing.T) {
	r := newTestResolver(t)
	page, ok := r.Page(context.Background(), "contact")
	require.True(t, ok)

	en := r.LocalizedContent(page, "en")
	assert.Contains(t, en, "header")

	// lt block is absent; falls back to en
	lt := r.LocalizedContent(page, "lt")
	assert.Equal(t, en, lt)

	// document with no content at all yields an empty map, never nil
	empty := r.LocalizedContent(&PageContent{PageID: "x"}, "en")
	require.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestLocalizedSharedFallback(t *testing.T) {
	r := newTestResolver(t)
	forms := r.Shared(context.Background(), "forms")

	lt, ok := r.LocalizedShared(forms, "lt").(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Siųsti užklausą", lt["submit"])

	// unknown locale falls back to en
	pl, ok := r.LocalizedShared(forms, "pl").(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Send request", pl["submit"])

	// missing document -> empty map -> empty localized value
	empty := r.LocalizedShared(r.Shared(context.Background(), "nope"), "en")
	require.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestSharedContentMissingReturnsEmpty(t *testing.T) {
	r := newTestResolver(t)
	doc := r.Shared(context.Background(), "does/not/exist")
	require.NotNil(t, doc)
	assert.Empty(t, doc)
}

func TestComponentContentSharedPointerRoundTrip(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	page, ok := r.Page(ctx, "about")
	require.True(t, ok)
	localized := r.LocalizedContent(page, "lt")

	comp := ComponentConfig{Type: "Content", ContentKey: "story"}
	data := r.ComponentContent(ctx, comp, localized, "lt")

	want := r.LocalizedShared(r.Shared(ctx, "components/companystory"), "lt")
	assert.Equal(t, want, data)
}

func TestComponentContentDirectKeyPointer(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	comp := ComponentConfig{Type: "Faq", ContentKey: "shared:companystory"}
	data := r.ComponentContent(ctx, comp, map[string]any{}, "en")

	m, ok := data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Founded in 2010.", m["body"])
}

func TestComponentContentChainedPointerNotFollowed(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	comp := ComponentConfig{Type: "Content", ContentKey: "shared:chained"}
	data := r.ComponentContent(ctx, comp, map[string]any{}, "en")

	// one hop only: the pointer inside the shared doc stays literal
	assert.Equal(t, "shared:companystory", data)
}

func TestComponentContentCustomContent(t *testing.T) {
	r := newTestResolver(t)
	comp := ComponentConfig{
		Type:       "PageHeader",
		ContentKey: "header",
		CustomContent: map[string]any{
			"en": map[string]any{"title": "Custom"},
		},
	}
	data := r.ComponentContent(context.Background(), comp, map[string]any{
		"header": map[string]any{"title": "Base"},
	}, "lt")

	m, ok := data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Custom", m["title"], "custom content falls back to default locale")
}

func TestFormTranslations(t *testing.T) {
	r := newTestResolver(t)
	forms, ok := r.FormTranslations(context.Background(), "lt").(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Siųsti užklausą", forms["submit"])
}

func TestTranslateURL(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	got, ok := r.TranslateURL(ctx, "en", "lt", "about")
	require.True(t, ok)
	assert.Equal(t, "apie-mus", got)

	got, ok = r.TranslateURL(ctx, "lt", "en", "paslaugos/langu-remontas")
	require.True(t, ok)
	assert.Equal(t, "services/window-repair", got)

	_, ok = r.TranslateURL(ctx, "en", "lt", "no-such")
	assert.False(t, ok)
}

func TestAllLocalizedURLs(t *testing.T) {
	r := newTestResolver(t)
	urls, err := r.AllLocalizedURLs(context.Background())
	require.NoError(t, err)

	byLocaleSlug := map[string]LocalizedURL{}
	for _, u := range urls {
		byLocaleSlug[u.Locale+"|"+u.Slug] = u
	}

	about, ok := byLocaleSlug["lt|apie-mus"]
	require.True(t, ok)
	assert.Equal(t, "about", about.PageID)
	assert.Equal(t, 0.8, about.Priority)

	item, ok := byLocaleSlug["lt|paslaugos/langu-remontas"]
	require.True(t, ok)
	assert.Equal(t, "services/window-repair", item.PageID)
	assert.Equal(t, "monthly", item.Changefreq)
}

func TestCollectionItemsDeterministicOrder(t *testing.T) {
	r := newTestResolver(t)
	items := r.store.CollectionItems("services")
	require.Len(t, items, 2)
	assert.Equal(t, "door-adjustment", items[0].ItemID)
	assert.Equal(t, "window-repair", items[1].ItemID)
}
