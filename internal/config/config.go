package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Station is one ground station to poll. Coordinates are optional; stations
// without them are excluded from satellite tile enrichment.
type Station struct {
	ID        string
	Lat       float64
	Lon       float64
	HasCoords bool
}

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers    []string
	KafkaSinkTopic  string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Ground data service.
	GroundBaseURL string
	GroundTimeout time.Duration
	Stations      []Station

	// Properties holds the canonical property encodings to request, e.g.
	// "temperature [C]". Validated against the schema at startup.
	Properties []string

	FetchInterval time.Duration
	FetchLookback time.Duration

	// Satellite data service (tile enrichment, feature-flagged).
	SatelliteBaseURL   string
	SatelliteEnabled   bool
	SatelliteTimeout   time.Duration
	SatelliteCacheSize int
}

const defaultProperties = "temperature [C],dew_point [C],wind_speed [KT],wind_direction [deg],visibility [M],pressure [HPA],sky_conditions [M]"

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	groundTimeout, err := parseDurationEnv("GROUND_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	fetchInterval, err := parseDurationEnv("FETCH_INTERVAL", "5m")
	if err != nil {
		return nil, err
	}
	fetchLookback, err := parseDurationEnv("FETCH_LOOKBACK", "24h")
	if err != nil {
		return nil, err
	}
	satelliteTimeout, err := parseDurationEnv("SATELLITE_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	stations, err := parseStations(os.Getenv("STATIONS"))
	if err != nil {
		return nil, err
	}

	satelliteBaseURL := os.Getenv("SATELLITE_BASE_URL")
	satelliteEnabled := satelliteBaseURL != ""
	if v := os.Getenv("SATELLITE_ENABLED"); v != "" {
		satelliteEnabled = v == "true"
	}

	cfg := &Config{
		KafkaBrokers:    sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic:  sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "metar-observations"),
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		GroundBaseURL: os.Getenv("GROUND_BASE_URL"),
		GroundTimeout: groundTimeout,
		Stations:      stations,
		Properties:    splitList(sharedcfg.EnvOrDefault("METAR_PROPERTIES", defaultProperties)),
		FetchInterval: fetchInterval,
		FetchLookback: fetchLookback,

		SatelliteBaseURL:   satelliteBaseURL,
		SatelliteEnabled:   satelliteEnabled,
		SatelliteTimeout:   satelliteTimeout,
		SatelliteCacheSize: parseSatelliteCacheSize(),
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.GroundBaseURL == "" {
		return nil, errors.New("GROUND_BASE_URL is required")
	}
	if len(cfg.Stations) == 0 {
		return nil, errors.New("STATIONS is required")
	}
	if len(cfg.Properties) == 0 {
		return nil, errors.New("METAR_PROPERTIES must not be empty")
	}
	if cfg.SatelliteEnabled && cfg.SatelliteBaseURL == "" {
		return nil, errors.New("SATELLITE_ENABLED is true but SATELLITE_BASE_URL is not set")
	}

	return cfg, nil
}

// parseStations reads the STATIONS list. Each element is "ID" or
// "ID:lat:lon", e.g. "EDDF:50.0379:8.5622,KJFK".
func parseStations(raw string) ([]Station, error) {
	var stations []Station
	for _, item := range splitList(raw) {
		parts := strings.Split(item, ":")
		switch len(parts) {
		case 1:
			stations = append(stations, Station{ID: parts[0]})
		case 3:
			lat, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid STATIONS entry %q: bad latitude", item)
			}
			lon, err := strconv.ParseFloat(parts[2], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid STATIONS entry %q: bad longitude", item)
			}
			stations = append(stations, Station{ID: parts[0], Lat: lat, Lon: lon, HasCoords: true})
		default:
			return nil, fmt.Errorf("invalid STATIONS entry %q: want ID or ID:lat:lon", item)
		}
	}
	return stations, nil
}

// StationIDs returns the configured station identifiers in order.
func (c *Config) StationIDs() []string {
	ids := make([]string, len(c.Stations))
	for i, s := range c.Stations {
		ids[i] = s.ID
	}
	return ids
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(name, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return d, nil
}

func parseSatelliteCacheSize() int {
	if s := os.Getenv("SATELLITE_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 100
}
