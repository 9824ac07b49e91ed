package scene

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cacheEntry is a loaded document and when it was loaded.
type cacheEntry struct {
	doc   *Document
	built time.Time
}

func (e cacheEntry) expired(ttl time.Duration) bool {
	if ttl == 0 {
		return true // No caching
	}
	return time.Since(e.built) > ttl
}

// CachedStore wraps a Store with a TTL cache. Concurrent loads of the same
// scene share one backend call.
type CachedStore struct {
	Store
	ttl time.Duration

	mu      sync.RWMutex
	entries map[string]cacheEntry
	sf      singleflight.Group
}

// NewCachedStore caches documents from next for ttl.
func NewCachedStore(next Store, ttl time.Duration) *CachedStore {
	return &CachedStore{
		Store:   next,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// Load returns a private copy of the cached document, loading it on a miss.
func (c *CachedStore) Load(ctx context.Context, name string) (*Document, error) {
	// Fast path
	c.mu.RLock()
	entry, ok := c.entries[name]
	c.mu.RUnlock()
	if ok && !entry.expired(c.ttl) {
		return cloneDocument(entry.doc), nil
	}

	result, err, _ := c.sf.Do(name, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		c.mu.RLock()
		entry, ok := c.entries[name]
		c.mu.RUnlock()
		if ok && !entry.expired(c.ttl) {
			return entry.doc, nil
		}

		doc, err := c.Store.Load(ctx, name)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[name] = cacheEntry{doc: doc, built: time.Now()}
		c.mu.Unlock()
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneDocument(result.(*Document)), nil
}

// Save writes through and refreshes the cached copy.
func (c *CachedStore) Save(ctx context.Context, doc *Document) error {
	if err := c.Store.Save(ctx, doc); err != nil {
		c.Invalidate(doc.Name)
		return err
	}
	c.mu.Lock()
	c.entries[doc.Name] = cacheEntry{doc: cloneDocument(doc), built: time.Now()}
	c.mu.Unlock()
	return nil
}

// Delete removes the document and its cached copy.
func (c *CachedStore) Delete(ctx context.Context, name string) error {
	c.Invalidate(name)
	return c.Store.Delete(ctx, name)
}

// Invalidate drops the cached copy of name.
func (c *CachedStore) Invalidate(name string) {
	c.mu.Lock()
	delete(c.entries, name)
	c.mu.Unlock()
}

func cloneDocument(doc *Document) *Document {
	out := &Document{Name: doc.Name}
	out.Objects = make([]ObjectDoc, len(doc.Objects))
	for i, o := range doc.Objects {
		o.Settings = copySettings(o.Settings)
		if o.Display != nil {
			d := *o.Display
			o.Display = &d
		}
		o.Effects = append([]EffectDoc(nil), o.Effects...)
		o.Baked = append([]EffectDoc(nil), o.Baked...)
		out.Objects[i] = o
	}
	if doc.Collections != nil {
		out.Collections = make([]CollectionDoc, len(doc.Collections))
		for i, c := range doc.Collections {
			c.Objects = append([]string(nil), c.Objects...)
			c.Children = append([]string(nil), c.Children...)
			out.Collections[i] = c
		}
	}
	return out
}
