package metar

import (
	"time"

	"github.com/couchcryptid/metar-etl-service/internal/geo"
)

// Fixed response columns that identify a row rather than carrying a property.
const (
	ColumnStationID = "station_id"
	ColumnDatetime  = "datetime"
)

// Observation is one station report after formatting, ready for publishing.
type Observation struct {
	StationID string    `json:"station_id"`
	Time      time.Time `json:"datetime"`

	// Properties holds the formatted property columns keyed by their
	// canonical encoding, e.g. "wind_speed [KT]".
	Properties map[string]any `json:"properties"`

	// Tile is the satellite tile footprint containing the station, when
	// geometry enrichment is enabled.
	Tile *geo.Feature `json:"tile,omitempty"`

	FetchedAt time.Time `json:"fetched_at"`
}

// BuildObservations splits formatted rows into per-station observations.
// The fixed identifier columns become struct fields; everything else lands in
// Properties. Rows with an unparseable identifier keep zero values rather
// than failing the batch.
func BuildObservations(rows []Row) []Observation {
	obs := make([]Observation, len(rows))
	for i, row := range rows {
		o := Observation{
			Properties: make(map[string]any, len(row)),
			FetchedAt:  clock.Now().UTC(),
		}
		for col, v := range row {
			switch col {
			case ColumnStationID:
				if s, ok := v.(string); ok {
					o.StationID = s
				}
			case ColumnDatetime:
				o.Time = parseRowTime(v)
			default:
				o.Properties[col] = v
			}
		}
		obs[i] = o
	}
	return obs
}

func parseRowTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
