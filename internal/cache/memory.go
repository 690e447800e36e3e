package cache

import (
	"sync"
	"time"

	"courtside/pkg/models"
)

// CacheEntry represents a cached item with expiration
type CacheEntry struct {
	Value      interface{}
	Expiration time.Time
}

// IsExpired checks if the cache entry has expired
func (e *CacheEntry) IsExpired() bool {
	return time.Now().After(e.Expiration)
}

// MemoryCache implements a simple in-memory cache
type MemoryCache struct {
	items map[string]*CacheEntry
	mutex sync.RWMutex
	ttl   time.Duration
}

// NewMemoryCache creates a new memory cache
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	cache := &MemoryCache{
		items: make(map[string]*CacheEntry),
		mutex: sync.RWMutex{},
		ttl:   ttl,
	}

	// Start cleanup goroutine
	go cache.cleanupExpired()

	return cache
}

// Set stores a value in the cache
func (c *MemoryCache) Set(key string, value interface{}) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[key] = &CacheEntry{
		Value:      value,
		Expiration: time.Now().Add(c.ttl),
	}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(key string) (interface{}, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.items[key]
	if !exists || entry.IsExpired() {
		return nil, false
	}

	return entry.Value, true
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.items, key)
}

// Clear removes all items from the cache
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items = make(map[string]*CacheEntry)
}

// Size returns the number of items in the cache
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.items)
}

// cleanupExpired removes expired entries periodically
func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(time.Minute * 5) // Cleanup every 5 minutes
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		for key, entry := range c.items {
			if entry.IsExpired() {
				delete(c.items, key)
			}
		}
		c.mutex.Unlock()
	}
}

// PhotoCache caches photo query results and the search index so repeat
// API hits skip the archive. Ingest clears it wholesale; entries also
// age out on their own.
type PhotoCache struct {
	*MemoryCache
}

// NewPhotoCache creates a photo cache with a five minute TTL.
func NewPhotoCache() *PhotoCache {
	return &PhotoCache{
		MemoryCache: NewMemoryCache(5 * time.Minute),
	}
}

// SetPhotos caches a photo query result under its query key
func (pc *PhotoCache) SetPhotos(key string, photos []models.PhotoRecord) {
	pc.Set("photos:"+key, photos)
}

// GetPhotos retrieves a cached photo query result
func (pc *PhotoCache) GetPhotos(key string) ([]models.PhotoRecord, bool) {
	value, exists := pc.Get("photos:" + key)
	if !exists {
		return nil, false
	}

	photos, ok := value.([]models.PhotoRecord)
	return photos, ok
}

// SetIndex caches the player search index
func (pc *PhotoCache) SetIndex(index *models.SearchIndex) {
	pc.Set("search_index", index)
}

// GetIndex retrieves the cached player search index
func (pc *PhotoCache) GetIndex() (*models.SearchIndex, bool) {
	value, exists := pc.Get("search_index")
	if !exists {
		return nil, false
	}

	index, ok := value.(*models.SearchIndex)
	return index, ok
}
