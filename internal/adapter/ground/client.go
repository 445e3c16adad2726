package ground

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

	"github.com/couchcryptid/metar-etl-service/internal/metar"
)

// Client talks to the ground-measurements data service. It returns raw
// response tables; retyping them is the formatter's job.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a ground data client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// metarQuery is the POST body of /queryMetar. Properties are the canonical
// encodings; the service echoes them back as response column keys.
type metarQuery struct {
	Stations   []string `json:"stations"`
	Properties []string `json:"properties"`
}

// QueryMetar fetches METAR observations for the stations over the inclusive
// date interval [from, to]. The returned rows carry one column per requested
// property plus the fixed station_id and datetime identifier columns.
func (c *Client) QueryMetar(ctx context.Context, stations []string, props []metar.Property, from, to time.Time) ([]metar.RawRow, error) {
	encoded := make([]string, len(props))
	for i, p := range props {
		encoded[i] = p.String()
	}

	body, err := json.Marshal(metarQuery{Stations: stations, Properties: encoded})
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	params := url.Values{
		"date_from": {from.UTC().Format(time.DateOnly)},
		"date_to":   {to.UTC().Format(time.DateOnly)},
	}
	u := fmt.Sprintf("%s/queryMetar?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query metar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ground service error: status %d: %s", resp.StatusCode, respBody)
	}

	var rows []metar.RawRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	c.logger.Debug("metar query complete",
		"stations", len(stations),
		"rows", len(rows),
		"from", from.Format(time.DateOnly),
		"to", to.Format(time.DateOnly))
	return rows, nil
}
