package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ErrNotFound is returned when a content document cannot be located.
var ErrNotFound = errors.New("content: not found")

const (
	routesFile     = "routes.json"
	pagesDir       = "pages"
	collectionsDir = "collections"
	sharedDir      = "shared"
)

// Store reads JSON documents from a content tree and caches them for the
// process lifetime. Cache entries are inserted on first miss; loaders are
// pure functions of their key, so a duplicate concurrent load is wasted work
// rather than a correctness problem. The store never mutates a document
// after insertion.
type Store struct {
	fsys fs.FS
	log  *zap.Logger

	mu     sync.RWMutex
	routes *RoutesConfig
	pages  map[string]*PageContent
	items  map[string][]*CollectionItem
	shared map[string]map[string]any
}

// NewStore builds a Store over the given content tree.
func NewStore(fsys fs.FS, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		fsys:   fsys,
		log:    log,
		pages:  map[string]*PageContent{},
		items:  map[string][]*CollectionItem{},
		shared: map[string]map[string]any{},
	}
}

// Routes loads and caches the singleton routes document. A missing or
// malformed routes document makes every lookup impossible, so the error is
// surfaced to the caller; startup is the only place that should treat it as
// fatal.
func (s *Store) Routes() (*RoutesConfig, error) {
	s.mu.RLock()
	cached := s.routes
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	raw, err := fs.ReadFile(s.fsys, routesFile)
	if err != nil {
		return nil, fmt.Errorf("content: read routes config: %w", err)
	}
	cfg := &RoutesConfig{}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("content: parse routes config: %w", err)
	}
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = "en"
	}

	s.mu.Lock()
	if s.routes == nil {
		s.routes = cfg
	}
	cfg = s.routes
	s.mu.Unlock()
	return cfg, nil
}

// DefaultLocale returns the configured default locale, or "en" before the
// routes document has been loaded.
func (s *Store) DefaultLocale() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.routes != nil && s.routes.DefaultLocale != "" {
		return s.routes.DefaultLocale
	}
	return "en"
}

// Page loads and caches a page document by id. Absence is a normal outcome
// (the id has no backing document) and is reported via ok=false, never as an
// error. Malformed documents are logged and degrade to a miss.
func (s *Store) Page(pageID string) (*PageContent, bool) {
	pageID = sanitizeKey(pageID)
	if pageID == "" {
		return nil, false
	}

	s.mu.RLock()
	page, ok := s.pages[pageID]
	s.mu.RUnlock()
	if ok {
		return page, true
	}

	raw, err := fs.ReadFile(s.fsys, path.Join(pagesDir, pageID+".json"))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("read page content", zap.String("pageId", pageID), zap.Error(err))
		}
		return nil, false
	}
	page = &PageContent{}
	if err := json.Unmarshal(raw, page); err != nil {
		s.log.Warn("parse page content", zap.String("pageId", pageID), zap.Error(err))
		return nil, false
	}
	if page.PageID == "" {
		page.PageID = pageID
	}

	s.mu.Lock()
	if existing, ok := s.pages[pageID]; ok {
		page = existing
	} else {
		s.pages[pageID] = page
	}
	s.mu.Unlock()
	return page, true
}

// Shared loads and caches a shared-content document by key (for example
// "common", "navigation", "components/faq"). Any failure returns an empty
// map so callers can apply their own in-code fallback text.
func (s *Store) Shared(key string) map[string]any {
	key = sanitizeKey(key)
	if key == "" {
		return map[string]any{}
	}

	s.mu.RLock()
	doc, ok := s.shared[key]
	s.mu.RUnlock()
	if ok {
		return doc
	}

	raw, err := fs.ReadFile(s.fsys, path.Join(sharedDir, key+".json"))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("read shared content", zap.String("key", key), zap.Error(err))
		}
		return map[string]any{}
	}
	doc = map[string]any{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.log.Warn("parse shared content", zap.String("key", key), zap.Error(err))
		return map[string]any{}
	}

	s.mu.Lock()
	if existing, ok := s.shared[key]; ok {
		doc = existing
	} else {
		s.shared[key] = doc
	}
	s.mu.Unlock()
	return doc
}

// CollectionItems returns every item of a collection in lexicographic
// filename order, which keeps "first match wins" slug resolution
// deterministic. The listing is cached as a whole.
func (s *Store) CollectionItems(collection string) []*CollectionItem {
	collection = sanitizeKey(collection)
	if collection == "" {
		return nil
	}

	s.mu.RLock()
	items, ok := s.items[collection]
	s.mu.RUnlock()
	if ok {
		return items
	}

	dir := path.Join(collectionsDir, collection)
	entries, err := fs.ReadDir(s.fsys, dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("read collection dir", zap.String("collection", collection), zap.Error(err))
		}
		return nil
	}
	items = make([]*CollectionItem, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		raw, err := fs.ReadFile(s.fsys, path.Join(dir, entry.Name()))
		if err != nil {
			s.log.Warn("read collection item", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		item := &CollectionItem{}
		if err := json.Unmarshal(raw, item); err != nil {
			s.log.Warn("parse collection item", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		if item.ItemID == "" {
			item.ItemID = strings.TrimSuffix(entry.Name(), ".json")
		}
		if item.Collection == "" {
			item.Collection = collection
		}
		items = append(items, item)
	}

	s.mu.Lock()
	if existing, ok := s.items[collection]; ok {
		items = existing
	} else {
		s.items[collection] = items
	}
	s.mu.Unlock()
	return items
}

// sanitizeKey rejects keys that could escape the content tree. Keys may
// contain forward slashes ("components/faq") but no traversal segments.
func sanitizeKey(key string) string {
	key = strings.Trim(strings.TrimSpace(key), "/")
	if key == "" || strings.Contains(key, "..") || strings.Contains(key, "\\") {
		return ""
	}
	return key
}
