package content

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// SharedPrefix marks a content value (or contentKey) as a pointer into the
// shared component documents rather than literal content.
const SharedPrefix = "shared:"

// Resolver translates (locale, slug) pairs into fully merged, locale-resolved
// content payloads. All lookups degrade to explicit absence values; no
// operation panics or returns an error for a content miss.
type Resolver struct {
	store *Store
	log   *zap.Logger
}

// NewResolver wraps a Store. The store is injected so tests can run the
// resolver against an in-memory content tree.
func NewResolver(store *Store, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{store: store, log: log}
}

// Routes exposes the cached routes document.
func (r *Resolver) Routes(ctx context.Context) (*RoutesConfig, error) {
	return r.store.Routes()
}

// DefaultLocale returns the site default locale.
func (r *Resolver) DefaultLocale() string { return r.store.DefaultLocale() }

// Page loads one page document by id; ok is false when the id has no backing
// document, which callers must treat as an expected outcome.
func (r *Resolver) Page(ctx context.Context, pageID string) (*PageContent, bool) {
	return r.store.Page(pageID)
}

// Shared loads a shared-content document; failures yield an empty map.
func (r *Resolver) Shared(ctx context.Context, key string) map[string]any {
	return r.store.Shared(key)
}

// ResolvePageBySlug maps an incoming (locale, slug) pair to a static page or
// a collection item. Matching is an exact string comparison against the
// routes table; otherwise a slug containing a path separator is tried as
// <collection base path>/<item slug>. A miss is terminal and reported via
// ok=false.
func (r *Resolver) ResolvePageBySlug(ctx context.Context, locale, slug string) (Resolved, bool) {
	cfg, err := r.store.Routes()
	if err != nil {
		r.log.Error("resolve: routes config unavailable", zap.Error(err))
		return Resolved{}, false
	}

	for i := range cfg.Routes {
		if cfg.Routes[i].URLs[locale] == slug {
			page, ok := r.store.Page(cfg.Routes[i].PageID)
			if !ok {
				return Resolved{}, false
			}
			return Resolved{Page: page}, true
		}
	}

	if len(cfg.Collections) > 0 && strings.Contains(slug, "/") {
		parts := strings.Split(slug, "/")
		category, itemSlug := parts[0], parts[1]
		for name, collection := range cfg.Collections {
			if collection.BasePath[locale] != category {
				continue
			}
			item, ok := r.ItemBySlug(ctx, name, locale, itemSlug)
			if !ok {
				return Resolved{}, false
			}
			return Resolved{Item: item}, true
		}
	}

	return Resolved{}, false
}

// ItemBySlug finds a collection item whose localized slug matches. Items
// without localized slugs fall back to matching their itemId. Items are
// scanned in lexicographic itemId order; a duplicate slug resolves to the
// first item and is logged.
func (r *Resolver) ItemBySlug(ctx context.Context, collection, locale, slug string) (*CollectionItem, bool) {
	items := r.store.CollectionItems(collection)
	var found *CollectionItem
	for _, item := range items {
		matched := false
		if len(item.Slugs) > 0 {
			matched = item.Slugs[locale] == slug
		} else {
			matched = item.ItemID == slug
		}
		if !matched {
			continue
		}
		if found != nil {
			r.log.Warn("duplicate collection slug",
				zap.String("collection", collection),
				zap.String("slug", slug),
				zap.String("kept", found.ItemID),
				zap.String("shadowed", item.ItemID))
			continue
		}
		found = item
	}
	if found == nil {
		return nil, false
	}
	return found, true
}

// Item loads a single collection item by id.
func (r *Resolver) Item(ctx context.Context, collection, itemID string) (*CollectionItem, bool) {
	for _, item := range r.store.CollectionItems(collection) {
		if item.ItemID == itemID {
			return item, true
		}
	}
	return nil, false
}

// LocalizedContent returns the document's content block for the requested
// locale, falling back to the default locale, then to an empty map. The same
// two-level fallback applies to every locale-keyed map in the system.
func (r *Resolver) LocalizedContent(doc Document, locale string) map[string]any {
	blocks := doc.ContentBlocks()
	if m, ok := blocks[locale]; ok && m != nil {
		return m
	}
	if m, ok := blocks[r.store.DefaultLocale()]; ok && m != nil {
		return m
	}
	return map[string]any{}
}

// LocalizedShared applies the two-level locale fallback to a shared-content
// document. The localized value is arbitrary JSON (object or array); absence
// yields an empty map, never nil.
func (r *Resolver) LocalizedShared(doc map[string]any, locale string) any {
	if v, ok := doc[locale]; ok && v != nil {
		return v
	}
	if v, ok := doc[r.store.DefaultLocale()]; ok && v != nil {
		return v
	}
	return map[string]any{}
}

// FormTranslations returns the localized block of the shared forms document.
func (r *Resolver) FormTranslations(ctx context.Context, locale string) any {
	return r.LocalizedShared(r.Shared(ctx, "forms"), locale)
}

// ComponentContent resolves the content feeding one component slot:
// custom content from an override wins, then a "shared:" pointer in the
// resolved value, then a "shared:" pointer in the contentKey itself, then
// the literal value from the localized content block. Pointer indirection is
// resolved exactly once; a pointer resolving to another pointer is kept
// literal and logged rather than followed.
func (r *Resolver) ComponentContent(ctx context.Context, comp ComponentConfig, localized map[string]any, locale string) any {
	var data any = map[string]any{}
	if v, ok := localized[comp.ContentKey]; ok && v != nil {
		data = v
	}

	switch {
	case comp.CustomContent != nil:
		if v, ok := comp.CustomContent[locale]; ok && v != nil {
			data = v
		} else if v, ok := comp.CustomContent[r.store.DefaultLocale()]; ok && v != nil {
			data = v
		} else {
			// custom content without locale keys is used as-is
			data = comp.CustomContent
		}
	case isSharedPointer(data):
		data = r.followSharedPointer(ctx, data.(string), locale)
	case strings.HasPrefix(comp.ContentKey, SharedPrefix):
		data = r.followSharedPointer(ctx, comp.ContentKey, locale)
	}

	if isSharedPointer(data) {
		r.log.Warn("chained shared pointer not followed", zap.String("value", data.(string)))
	}
	return data
}

func (r *Resolver) followSharedPointer(ctx context.Context, pointer, locale string) any {
	key := strings.TrimPrefix(pointer, SharedPrefix)
	shared := r.Shared(ctx, "components/"+key)
	return r.LocalizedShared(shared, locale)
}

func isSharedPointer(v any) bool {
	s, ok := v.(string)
	return ok && strings.HasPrefix(s, SharedPrefix)
}
