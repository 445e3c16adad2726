package satellite

import (
	"context"
	"testing"

	"github.com/couchcryptid/metar-etl-service/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock for cache tests ---

type countingLocator struct {
	calls  int
	result geo.FeatureCollection
	err    error
}

func (m *countingLocator) ContainingGeometry(_ context.Context, _ geo.FeatureCollection) (geo.FeatureCollection, error) {
	m.calls++
	return m.result, m.err
}

func tileCollection(ids ...string) geo.FeatureCollection {
	features := make([]geo.Feature, len(ids))
	for i, id := range ids {
		features[i] = geo.Feature{Type: "Feature", ID: id}
	}
	return geo.NewCollection(features...)
}

// --- CachedLocator tests ---

func TestCachedLocator_CacheHit(t *testing.T) {
	inner := &countingLocator{result: tileCollection("tile-31UFT")}
	cached := NewCachedLocator(inner, 10)

	locations := geo.NewCollection(geo.NewPoint("EDDF", 50.0379, 8.5622))

	r1, err := cached.ContainingGeometry(context.Background(), locations)
	require.NoError(t, err)
	assert.Len(t, r1.Features, 1)

	r2, err := cached.ContainingGeometry(context.Background(), locations)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)

	assert.Equal(t, 1, inner.calls, "should only call inner once")
}

func TestCachedLocator_KeyIgnoresFeatureOrder(t *testing.T) {
	inner := &countingLocator{result: tileCollection("tile-31UFT", "tile-32UMA")}
	cached := NewCachedLocator(inner, 10)

	a := geo.NewPoint("EDDF", 50.0379, 8.5622)
	b := geo.NewPoint("KJFK", 40.6413, -73.7781)

	_, err := cached.ContainingGeometry(context.Background(), geo.NewCollection(a, b))
	require.NoError(t, err)
	_, err = cached.ContainingGeometry(context.Background(), geo.NewCollection(b, a))
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
}

func TestCachedLocator_DifferentLocationSetsMiss(t *testing.T) {
	inner := &countingLocator{result: tileCollection("tile-31UFT")}
	cached := NewCachedLocator(inner, 10)

	_, _ = cached.ContainingGeometry(context.Background(), geo.NewCollection(geo.NewPoint("EDDF", 50.0379, 8.5622)))
	_, _ = cached.ContainingGeometry(context.Background(), geo.NewCollection(geo.NewPoint("KJFK", 40.6413, -73.7781)))

	assert.Equal(t, 2, inner.calls)
}

func TestCachedLocator_EmptyResultNotCached(t *testing.T) {
	inner := &countingLocator{result: geo.FeatureCollection{}}
	cached := NewCachedLocator(inner, 10)

	locations := geo.NewCollection(geo.NewPoint("EDDF", 50.0379, 8.5622))

	_, err := cached.ContainingGeometry(context.Background(), locations)
	require.NoError(t, err)
	_, err = cached.ContainingGeometry(context.Background(), locations)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls, "empty responses should be retried")
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", tileCollection("A"))
	c.put("b", tileCollection("B"))

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A", result.Features[0].ID)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", tileCollection("A"))
	c.put("b", tileCollection("B"))
	c.put("c", tileCollection("C")) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	result, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, "B", result.Features[0].ID)

	result, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, "C", result.Features[0].ID)
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", tileCollection("A"))
	c.put("b", tileCollection("B"))

	// Access "a" to promote it
	c.get("a")

	c.put("c", tileCollection("C"))

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", tileCollection("A1"))
	c.put("a", tileCollection("A2"))

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A2", result.Features[0].ID)
}
