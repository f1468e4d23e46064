package sweep

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
)

// DefaultCacheSize bounds how many distinct tables a Cache remembers.
const DefaultCacheSize = 16

// Cache memoizes Load by content digest, so reloading unchanged text returns
// the Snapshot already built for it. Safe for concurrent use.
type Cache struct {
	snapshots *lru.Cache[string, *Snapshot]
}

// NewCache creates a Cache holding at most size snapshots.
func NewCache(size int) (*Cache, error) {
	c, err := lru.New[string, *Snapshot](size)
	if err != nil {
		return nil, fmt.Errorf("creating snapshot cache: %w", err)
	}
	return &Cache{snapshots: c}, nil
}

// Load returns the cached Snapshot for text and opts, parsing on a miss.
// Parse failures are returned and not cached.
func (c *Cache) Load(text string, opts ParseOptions) (*Snapshot, error) {
	digest := contentDigest(text, opts)
	if s, ok := c.snapshots.Get(digest); ok {
		logrus.Debugf("snapshot cache hit %s", digest[:12])
		return s, nil
	}
	s, err := LoadWith(text, opts)
	if err != nil {
		return nil, err
	}
	c.snapshots.Add(digest, s)
	return s, nil
}

// Len returns the number of cached snapshots.
func (c *Cache) Len() int {
	return c.snapshots.Len()
}

// Purge drops every cached snapshot.
func (c *Cache) Purge() {
	c.snapshots.Purge()
}
