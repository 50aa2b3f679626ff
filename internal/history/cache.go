// Package history implements the bounded, content-addressed cache of past
// generation results, keyed by the canonical serialization of the campaign
// brief. A cache hit guarantees the orchestrator performs no network I/O
// for that brief within the retained window.
package history

import (
	"time"

	"github.com/google/uuid"

	"adforge/internal/brief"
	"adforge/internal/types"
)

// MaxEntries bounds the history list. Insertion is always at the head;
// eviction is strict FIFO from the tail.
const MaxEntries = 12

// Entry pairs a brief with the full generation result it produced. Entries
// are never mutated in place.
type Entry struct {
	ID        string                 `json:"id"`
	Brief     brief.CampaignBrief    `json:"brief"`
	Result    types.GenerationResult `json:"result"`
	CreatedAt time.Time              `json:"createdAt"`
}

// Cache is a newest-first list of entries with structural-equality lookup.
// It is not safe for concurrent use; the orchestrator serializes access.
type Cache struct {
	entries []Entry
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{}
}

// Restore seeds the cache from persisted entries, newest first, truncating
// anything beyond the bound.
func Restore(entries []Entry) *Cache {
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	c := &Cache{entries: make([]Entry, len(entries))}
	copy(c.entries, entries)
	return c
}

// Lookup returns the stored entry for a structurally equal brief. Every
// field participates in the key, so near-duplicate briefs that differ only
// in, say, the model identifier are misses.
func (c *Cache) Lookup(b brief.CampaignBrief) (Entry, bool) {
	key := b.CacheKey()
	for _, e := range c.entries {
		if e.Brief.CacheKey() == key {
			return e, true
		}
	}
	return Entry{}, false
}

// Insert prepends a new entry for a novel brief, evicting the oldest entry
// once the bound is exceeded. The result is stored as-is; variant
// identities are re-assigned by the orchestrator on every serve, cached or
// not, so they are never part of what is stored here.
func (c *Cache) Insert(b brief.CampaignBrief, result types.GenerationResult) Entry {
	e := Entry{
		ID:        uuid.NewString(),
		Brief:     b,
		Result:    result,
		CreatedAt: time.Now(),
	}
	c.entries = append([]Entry{e}, c.entries...)
	if len(c.entries) > MaxEntries {
		c.entries = c.entries[:MaxEntries]
	}
	return e
}

// Entries returns a copy of the list, newest first.
func (c *Cache) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len reports the current number of entries.
func (c *Cache) Len() int {
	return len(c.entries)
}
