package geo

import (
	"context"
	"encoding/json"
	"fmt"
)

// Geometry is a GeoJSON geometry. Coordinates stay raw because their nesting
// depth depends on the geometry type; callers decode them per Type.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Feature is a GeoJSON feature.
type Feature struct {
	Type       string         `json:"type"`
	ID         string         `json:"id,omitempty"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties,omitempty"`
}

// FeatureCollection is a GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// NewCollection wraps features in a typed collection.
func NewCollection(features ...Feature) FeatureCollection {
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}

// NewPoint builds a point feature. GeoJSON orders coordinates lon,lat.
func NewPoint(id string, lat, lon float64) Feature {
	coords, _ := json.Marshal([2]float64{lon, lat})
	return Feature{
		Type: "Feature",
		ID:   id,
		Geometry: Geometry{
			Type:        "Point",
			Coordinates: coords,
		},
	}
}

// Point decodes a point geometry into lat/lon.
func (g Geometry) Point() (lat, lon float64, err error) {
	if g.Type != "Point" {
		return 0, 0, fmt.Errorf("geometry is %q, not Point", g.Type)
	}
	var coords [2]float64
	if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
		return 0, 0, fmt.Errorf("decode point coordinates: %w", err)
	}
	return coords[1], coords[0], nil
}

// TileLocator resolves the satellite tiles whose footprints together contain
// the given point locations.
type TileLocator interface {
	ContainingGeometry(ctx context.Context, locations FeatureCollection) (FeatureCollection, error)
}
