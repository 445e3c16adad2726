package satellite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/metar-etl-service/internal/geo"
)

// Client talks to the satellite data service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a satellite data client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// MeasurementsResult is the /queryMeasurements response. Features are only
// populated when State reports usable data; otherwise the caller polls again
// or gives up on a terminal state.
type MeasurementsResult struct {
	State    geo.QueryState        `json:"state"`
	Features geo.FeatureCollection `json:"features"`
}

// QueryContainingGeometry resolves the tile footprints that together contain
// the given point locations.
func (c *Client) QueryContainingGeometry(ctx context.Context, locations geo.FeatureCollection) (geo.FeatureCollection, error) {
	u := c.baseURL + "/queryContainingGeometry"
	var geometry geo.FeatureCollection
	if err := c.post(ctx, u, locations, &geometry); err != nil {
		return geo.FeatureCollection{}, fmt.Errorf("query containing geometry: %w", err)
	}

	c.logger.Debug("containing geometry resolved",
		"locations", len(locations.Features),
		"tiles", len(geometry.Features))
	return geometry, nil
}

// ContainingGeometry implements geo.TileLocator by delegating to
// QueryContainingGeometry.
func (c *Client) ContainingGeometry(ctx context.Context, locations geo.FeatureCollection) (geo.FeatureCollection, error) {
	return c.QueryContainingGeometry(ctx, locations)
}

// QueryMeasurements fetches satellite measurements for the locations over the
// interval [from, to].
func (c *Client) QueryMeasurements(ctx context.Context, from, to time.Time, locations geo.FeatureCollection) (MeasurementsResult, error) {
	params := url.Values{
		"datetime_from": {from.UTC().Format(time.RFC3339)},
		"datetime_to":   {to.UTC().Format(time.RFC3339)},
	}
	u := fmt.Sprintf("%s/queryMeasurements?%s", c.baseURL, params.Encode())

	var result MeasurementsResult
	if err := c.post(ctx, u, locations, &result); err != nil {
		return MeasurementsResult{}, fmt.Errorf("query measurements: %w", err)
	}

	c.logger.Debug("measurements queried",
		"state", result.State,
		"features", len(result.Features.Features))
	return result, nil
}

func (c *Client) post(ctx context.Context, fullURL string, body, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("satellite service error: status %d: %s", resp.StatusCode, respBody)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
