// Package audiocache stores synthesized speech keyed by content hash.
package audiocache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/eslsoft/lingoguru/internal/repository"
)

type memoryEntry struct {
	key     string
	audio   []byte
	expires time.Time
}

// memoryCache is a size bounded LRU with per-entry expiry.
type memoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	max     int
	order   *list.List
	entries map[string]*list.Element
	now     func() time.Time
}

// NewMemory returns an in-process cache holding at most maxEntries clips.
func NewMemory(maxEntries int, ttl time.Duration) repository.AudioCache {
	if maxEntries <= 0 {
		maxEntries = 512
	}
	return &memoryCache{
		ttl:     ttl,
		max:     maxEntries,
		order:   list.New(),
		entries: make(map[string]*list.Element),
		now:     time.Now,
	}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	entry := el.Value.(*memoryEntry)
	if !entry.expires.IsZero() && c.now().After(entry.expires) {
		c.order.Remove(el)
		delete(c.entries, key)
		return nil, false, nil
	}
	c.order.MoveToFront(el)
	return entry.audio, true, nil
}

func (c *memoryCache) Put(ctx context.Context, key string, audio []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var expires time.Time
	if c.ttl > 0 {
		expires = c.now().Add(c.ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		entry := el.Value.(*memoryEntry)
		entry.audio = audio
		entry.expires = expires
		c.order.MoveToFront(el)
		return nil
	}
	c.entries[key] = c.order.PushFront(&memoryEntry{key: key, audio: audio, expires: expires})
	for c.order.Len() > c.max {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*memoryEntry).key)
	}
	return nil
}
