//go:build smoke

package satellite

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/couchcryptid/metar-etl-service/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit a real satellite data service and require a valid
// SATELLITE_BASE_URL env var.
// Run with: go test -tags=smoke ./internal/adapter/satellite/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	baseURL := os.Getenv("SATELLITE_BASE_URL")
	if baseURL == "" {
		t.Fatal("SATELLITE_BASE_URL must be set to run smoke tests")
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestSmoke_QueryContainingGeometry(t *testing.T) {
	c := smokeClient(t)

	// Frankfurt airport; any Sentinel-2 style tiling should cover it.
	locations := geo.NewCollection(geo.NewPoint("EDDF", 50.0379, 8.5622))

	tiles, err := c.QueryContainingGeometry(context.Background(), locations)
	require.NoError(t, err)

	require.NotEmpty(t, tiles.Features, "expected at least one containing tile")
	for _, tile := range tiles.Features {
		assert.NotEmpty(t, tile.Geometry.Type)
		assert.NotEmpty(t, tile.Geometry.Coordinates)
	}
}

func TestSmoke_QueryMeasurements(t *testing.T) {
	c := smokeClient(t)

	locations := geo.NewCollection(geo.NewPoint("EDDF", 50.0379, 8.5622))
	to := time.Now().UTC()
	from := to.Add(-24 * time.Hour)

	result, err := c.QueryMeasurements(context.Background(), from, to, locations)
	require.NoError(t, err)

	// Archive retrieval is asynchronous; any known state is acceptable here.
	assert.NotEmpty(t, result.State)
}

func TestSmoke_CachedLocator(t *testing.T) {
	c := smokeClient(t)
	cached := NewCachedLocator(c, 10)

	locations := geo.NewCollection(geo.NewPoint("EDDF", 50.0379, 8.5622))

	// First call: cache miss, real API call.
	r1, err := cached.ContainingGeometry(context.Background(), locations)
	require.NoError(t, err)

	// Second call: cache hit, no API call.
	r2, err := cached.ContainingGeometry(context.Background(), locations)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}
