package dossier

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/riskecrp/meridian-bot/internal/store"
)

// MaxSuggestions is the most entries a single autocomplete response may
// carry, a hard platform limit.
const MaxSuggestions = 25

// FactionCache keeps a deduplicated, insertion-ordered list of every faction
// name seen in either section of the dossier sheet, so autocomplete does not
// cost a remote read per keystroke. Entries go stale for at most the
// configured TTL; writes that may introduce a new name call Invalidate to
// shorten that window.
type FactionCache struct {
	store  store.Store
	schema Schema
	ttl    time.Duration
	now    func() time.Time

	mu       sync.Mutex
	names    []string
	seen     map[string]struct{}
	loadedAt time.Time
}

func NewFactionCache(st store.Store, schema Schema, ttl time.Duration) *FactionCache {
	return &FactionCache{store: st, schema: schema, ttl: ttl, now: time.Now}
}

// Suggest returns up to MaxSuggestions known faction names containing the
// partial text, compared case-insensitively, in the order the names were
// first seen in the sheet.
func (c *FactionCache) Suggest(ctx context.Context, partial string) ([]string, error) {
	query := normalize(partial)

	c.mu.Lock()
	defer c.mu.Unlock()

	if errLoad := c.ensureLoaded(ctx); errLoad != nil {
		return nil, errLoad
	}

	var matches []string

	for _, name := range c.names {
		if query != "" && !strings.Contains(strings.ToLower(name), query) {
			continue
		}

		matches = append(matches, name)
		if len(matches) == MaxSuggestions {
			break
		}
	}

	return matches, nil
}

// Invalidate drops the cached names so the next Suggest reloads them.
func (c *FactionCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.names = nil
	c.seen = nil
	c.loadedAt = time.Time{}
}

// ensureLoaded refreshes the name list when empty or past its TTL. The lock
// is held across the remote read, serializing concurrent refreshes. A TTL of
// zero or less disables expiry, matching the original populate-once cache.
func (c *FactionCache) ensureLoaded(ctx context.Context) error {
	if len(c.names) > 0 && (c.ttl <= 0 || c.now().Sub(c.loadedAt) < c.ttl) {
		return nil
	}

	rows, errFetch := c.store.FetchTable(ctx, c.schema.dossierRange())
	if errFetch != nil {
		return errFetch
	}

	if len(rows) > 0 {
		rows = rows[1:]
	}

	c.names = nil
	c.seen = map[string]struct{}{}

	offset := c.schema.locationOffset()

	for _, row := range rows {
		c.add(cell(row, 0))
		c.add(cell(row, offset))
	}

	c.loadedAt = c.now()

	return nil
}

func (c *FactionCache) add(name string) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}

	if _, known := c.seen[trimmed]; known {
		return
	}

	c.seen[trimmed] = struct{}{}
	c.names = append(c.names, trimmed)
}
