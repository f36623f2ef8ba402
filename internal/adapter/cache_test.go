package adapter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/episcope/internal/model"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache()
	points := []model.SurveillanceDataPoint{{Condition: "RSV", Value: 80}}

	c.Set("k", points, time.Hour)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, points, got)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	c.Set("k", []model.SurveillanceDataPoint{{Condition: "RSV"}}, time.Hour)

	c.now = func() time.Time { return base.Add(2 * time.Hour) }
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestMemoryCache_Miss(t *testing.T) {
	c := NewMemoryCache()
	_, ok := c.Get("absent")
	assert.False(t, ok)
}

func TestCacheKey_SyndromeOrderIndependent(t *testing.T) {
	region := model.ResolvedRegion{StateAbbrev: "TX", GeoLevel: model.GeoLevelState}

	a := CacheKey("src", region, []model.Syndrome{model.SyndromeFebrile, model.SyndromeRespiratoryUpper})
	b := CacheKey("src", region, []model.Syndrome{model.SyndromeRespiratoryUpper, model.SyndromeFebrile})
	assert.Equal(t, a, b)
}

func TestCacheKey_DistinguishesRegionAndSource(t *testing.T) {
	tx := model.ResolvedRegion{StateAbbrev: "TX", GeoLevel: model.GeoLevelState}
	wa := model.ResolvedRegion{StateAbbrev: "WA", GeoLevel: model.GeoLevelState}
	syn := []model.Syndrome{model.SyndromeFebrile}

	assert.NotEqual(t, CacheKey("a", tx, syn), CacheKey("a", wa, syn))
	assert.NotEqual(t, CacheKey("a", tx, syn), CacheKey("b", tx, syn))
}
