package ground

import (
	"context"
	"time"

	"github.com/couchcryptid/metar-etl-service/internal/metar"
)

// Extractor binds a Client to a fixed station and property selection.
// It implements pipeline.Extractor.
type Extractor struct {
	client   *Client
	stations []string
	props    []metar.Property
}

// NewExtractor creates an extraction stage over the ground data client.
func NewExtractor(client *Client, stations []string, props []metar.Property) *Extractor {
	return &Extractor{
		client:   client,
		stations: stations,
		props:    props,
	}
}

func (e *Extractor) Extract(ctx context.Context, from, to time.Time) ([]metar.RawRow, error) {
	return e.client.QueryMetar(ctx, e.stations, e.props, from, to)
}
