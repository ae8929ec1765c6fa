package memory

import (
	"time"

	"ai-estimator-be/pkg/formatpattern"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// FormatAggregateCache holds per-tenant aggregated format patterns so the
// chat path does not recompute them on every message. Entries are
// invalidated when document processing writes a new pattern.
type FormatAggregateCache struct {
	cache *cache.Cache
}

func NewFormatAggregateCache() *FormatAggregateCache {
	// Aggregates change only on ingest, an hour of staleness is acceptable
	// because ingest invalidates explicitly.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &FormatAggregateCache{
		cache: c,
	}
}

func (r *FormatAggregateCache) Save(orgId uuid.UUID, aggregate *formatpattern.Aggregate) {
	r.cache.Set(orgId.String(), aggregate, cache.DefaultExpiration)
}

func (r *FormatAggregateCache) Get(orgId uuid.UUID) (*formatpattern.Aggregate, bool) {
	if x, found := r.cache.Get(orgId.String()); found {
		return x.(*formatpattern.Aggregate), true
	}
	return nil, false
}

func (r *FormatAggregateCache) Invalidate(orgId uuid.UUID) {
	r.cache.Delete(orgId.String())
}
