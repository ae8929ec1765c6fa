package memory

import (
	"testing"

	"ai-estimator-be/pkg/formatpattern"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFormatAggregateCache(t *testing.T) {
	c := NewFormatAggregateCache()
	orgA := uuid.New()
	orgB := uuid.New()

	_, found := c.Get(orgA)
	assert.False(t, found)

	agg := &formatpattern.Aggregate{DocumentCount: 3}
	c.Save(orgA, agg)

	got, found := c.Get(orgA)
	assert.True(t, found)
	assert.Same(t, agg, got)

	// Tenants are isolated.
	_, found = c.Get(orgB)
	assert.False(t, found)

	c.Invalidate(orgA)
	_, found = c.Get(orgA)
	assert.False(t, found)
}
