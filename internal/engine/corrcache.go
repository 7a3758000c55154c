package engine

import (
	"github.com/dgraph-io/ristretto/v2"
)

// CorrectionCache holds a per-position evaluation correction term: the
// gap between the static evaluator's guess and the search's actual
// backed-up score, keyed by Zobrist hash. Kept as a separate ristretto
// cache rather than widening TTEntry, since correction values are
// useful even on a TT miss (a different depth/bound at the same key).
type CorrectionCache struct {
	cache *ristretto.Cache[uint64, int16]
}

// NewCorrectionCache allocates a cache sized for roughly maxEntries
// corrections; ristretto's admission policy handles eviction under
// memory pressure without the caller managing a fixed table size.
func NewCorrectionCache(maxEntries int64) (*CorrectionCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[uint64, int16]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &CorrectionCache{cache: c}, nil
}

// Get returns the stored correction for key, or (0, false) on a miss.
func (c *CorrectionCache) Get(key uint64) (int16, bool) {
	return c.cache.Get(key)
}

// Update blends a new observation (backedUp - static) into the stored
// correction with a fixed learning rate, the same exponential-smoothing
// idiom Stockfish's correction history uses.
func (c *CorrectionCache) Update(key uint64, static, backedUp int) {
	const learnShift = 4 // ~1/16 learning rate
	delta := backedUp - static
	prev, _ := c.cache.Get(key)
	next := int(prev) + (delta-int(prev))>>learnShift
	c.cache.Set(key, int16(next), 1)
}

// Close releases ristretto's background goroutines.
func (c *CorrectionCache) Close() {
	c.cache.Close()
}
