package rulebook

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

// Source records where the active document came from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Document is the rulebook text active at a point in time. The text is
// immutable; the cache replaces the whole value, never edits it.
type Document struct {
	Text      string
	FetchedAt time.Time
	Source    Source
}

// FetchFunc retrieves the current remote document text. Fetcher.Fetch is the
// production implementation.
type FetchFunc func(ctx context.Context) (string, error)

// Cache owns the single active rulebook document. Get performs a lazy first
// load (remote fetch, local-file fallback); Refresh forces a re-fetch and keeps
// the previous document when the fetch fails.
type Cache struct {
	fetch        FetchFunc
	fallbackPath string

	mu      sync.RWMutex
	current *Document
}

// NewCache builds a Cache around a fetch function and a bundled fallback file.
func NewCache(fetch FetchFunc, fallbackPath string) *Cache {
	return &Cache{fetch: fetch, fallbackPath: fallbackPath}
}

// Get returns the active document, loading it on first use. The remote source
// is preferred; when it fails the bundled local copy is adopted instead. A
// concurrent first load may fetch redundantly, but the document is only ever
// replaced as a whole value.
func (c *Cache) Get(ctx context.Context) (Document, error) {
	c.mu.RLock()
	doc := c.current
	c.mu.RUnlock()
	if doc != nil {
		return *doc, nil
	}

	text, err := c.fetch(ctx)
	source := SourceRemote
	if err != nil {
		log.Printf("rulebook: remote fetch failed, using local copy: %v", err)
		fallback, readErr := os.ReadFile(c.fallbackPath)
		if readErr != nil {
			return Document{}, fmt.Errorf("rulebook: remote fetch failed and local copy unreadable: %w", readErr)
		}
		text = Normalize(string(fallback))
		source = SourceLocal
	}

	loaded := &Document{Text: text, FetchedAt: time.Now(), Source: source}

	c.mu.Lock()
	if c.current == nil {
		c.current = loaded
	}
	doc = c.current
	c.mu.Unlock()

	return *doc, nil
}

// Refresh re-fetches the remote document. On success the active document is
// replaced; on failure the previous value is kept and the error returned so
// the caller can log it. Repeated failures keep serving last-known-good.
func (c *Cache) Refresh(ctx context.Context) error {
	text, err := c.fetch(ctx)
	if err != nil {
		return fmt.Errorf("rulebook: refresh: %w", err)
	}

	c.mu.Lock()
	c.current = &Document{Text: text, FetchedAt: time.Now(), Source: SourceRemote}
	c.mu.Unlock()

	log.Printf("rulebook: refreshed document: %d characters", len(text))
	return nil
}

// Current returns the active document without triggering a load. ok is false
// before the first Get.
func (c *Cache) Current() (Document, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return Document{}, false
	}
	return *c.current, true
}
