package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/metar-etl-service/internal/config"
	"github.com/couchcryptid/metar-etl-service/internal/geo"
	"github.com/couchcryptid/metar-etl-service/internal/metar"
	"github.com/couchcryptid/metar-etl-service/internal/observability"
)

// MetarTransformer implements Transformer using the property schema, with
// optional satellite tile enrichment.
type MetarTransformer struct {
	props     []metar.Property
	locator   geo.TileLocator
	locations map[string]geo.Feature
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewTransformer creates a MetarTransformer. Pass a nil locator to disable
// tile enrichment; stations without coordinates are skipped during enrichment.
func NewTransformer(props []metar.Property, locator geo.TileLocator, stations []config.Station, logger *slog.Logger, metrics *observability.Metrics) *MetarTransformer {
	locations := make(map[string]geo.Feature, len(stations))
	for _, s := range stations {
		if s.HasCoords {
			locations[s.ID] = geo.NewPoint(s.ID, s.Lat, s.Lon)
		}
	}
	return &MetarTransformer{
		props:     props,
		locator:   locator,
		locations: locations,
		logger:    logger,
		metrics:   metrics,
	}
}

func (t *MetarTransformer) Transform(ctx context.Context, rows []metar.RawRow) ([]metar.Observation, error) {
	formatted, err := metar.FormatRows(rows, t.props)
	if err != nil {
		return nil, err
	}

	observations := metar.BuildObservations(formatted)
	if t.locator != nil {
		t.enrichTiles(ctx, observations)
	}
	return observations, nil
}

// enrichTiles resolves the containing satellite tile for each observation
// whose station has known coordinates. Enrichment failures degrade
// gracefully; observations ship without a tile.
func (t *MetarTransformer) enrichTiles(ctx context.Context, observations []metar.Observation) {
	var features []geo.Feature
	seen := make(map[string]bool)
	for _, o := range observations {
		if seen[o.StationID] {
			continue
		}
		seen[o.StationID] = true
		if f, ok := t.locations[o.StationID]; ok {
			features = append(features, f)
		}
	}
	if len(features) == 0 {
		return
	}

	tiles, err := t.locator.ContainingGeometry(ctx, geo.NewCollection(features...))
	if err != nil {
		t.logger.Warn("tile lookup failed, shipping without tiles", "error", err)
		t.metrics.TileLookups.WithLabelValues("error").Inc()
		return
	}
	if len(tiles.Features) == 0 {
		t.metrics.TileLookups.WithLabelValues("empty").Inc()
		return
	}
	t.metrics.TileLookups.WithLabelValues("success").Inc()

	byStation := make(map[string]*geo.Feature)
	for i := range tiles.Features {
		tile := &tiles.Features[i]
		for _, id := range coveredStations(tile) {
			byStation[id] = tile
		}
	}

	for i := range observations {
		if tile, ok := byStation[observations[i].StationID]; ok {
			observations[i].Tile = tile
		}
	}
}

// coveredStations reads the station IDs a tile covers from its "stations"
// property.
func coveredStations(tile *geo.Feature) []string {
	raw, ok := tile.Properties["stations"].([]any)
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
