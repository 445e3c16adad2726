// Command genmock generates a mock METAR response-table fixture for the test
// suites. It uses the actual property schema so column keys and value shapes
// match real ground service responses.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -out data/mock/metar_240426.json \
//	  -stations EDDF,KJFK,LFPG \
//	  -date 2024-04-26 \
//	  -rows-per-station 2
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/couchcryptid/metar-etl-service/internal/metar"
)

var mockProperties = []string{
	"temperature [C]",
	"dew_point [C]",
	"wind_speed [KT]",
	"wind_direction [deg]",
	"visibility [M]",
	"pressure [HPA]",
	"sky_conditions [M]",
	"current_weather",
	"runway_visibility [FT]",
	"runway_windshear",
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the response-table JSON fixture")
	stations := flag.String("stations", "EDDF,KJFK,LFPG", "comma-separated station IDs")
	date := flag.String("date", "2024-04-26", "observation date (YYYY-MM-DD)")
	perStation := flag.Int("rows-per-station", 2, "observation rows per station")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	baseDate, err := time.Parse(time.DateOnly, *date)
	if err != nil {
		return fmt.Errorf("invalid -date: %w", err)
	}

	props, advisories, err := metar.ParseProperties(mockProperties)
	if err != nil {
		return fmt.Errorf("parse properties: %w", err)
	}
	for _, adv := range advisories {
		log.Printf("note: %s defaulted to unit %s", adv.Property, adv.Assigned)
	}

	// Fixed seed keeps the fixture reproducible across regenerations.
	rng := rand.New(rand.NewSource(240426))

	var rows []map[string]any
	for _, station := range strings.Split(*stations, ",") {
		station = strings.TrimSpace(station)
		if station == "" {
			continue
		}
		for i := 0; i < *perStation; i++ {
			when := baseDate.Add(time.Duration(15+i*30) * time.Minute).Add(15 * time.Hour)
			rows = append(rows, mockRow(rng, station, when, props))
		}
	}

	log.Printf("total: %d rows, %d columns each", len(rows), len(props)+2)

	if err := writeJSON(*out, rows); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote fixture: %s", *out)
	return nil
}

// mockRow produces one response row keyed by the canonical property
// encodings, with value shapes derived from the schema.
func mockRow(rng *rand.Rand, station string, when time.Time, props []metar.Property) map[string]any {
	row := map[string]any{
		metar.ColumnStationID: station,
		metar.ColumnDatetime:  when.UTC().Format(time.RFC3339),
	}
	for _, p := range props {
		row[p.String()] = mockValue(rng, p.Entry)
	}
	return row
}

func mockValue(rng *rand.Rand, entry *metar.Entry) any {
	switch entry.Kind {
	case metar.KindSkyCondition:
		return mockSkyConditions(rng)
	case metar.KindWeatherCondition:
		return mockWeather(rng)
	case metar.KindRunwayVisibility:
		if rng.Intn(3) > 0 {
			return nil
		}
		return []map[string]any{
			{"runway": "07C", "lowest_value": round1(2000 + rng.Float64()*3000), "highest_value": round1(5000 + rng.Float64()*1000)},
		}
	case metar.KindStringList:
		if rng.Intn(4) > 0 {
			return []string{}
		}
		return []string{"07C"}
	case metar.KindFloat:
		switch entry.Family {
		case metar.FamilyTemperature:
			return round1(-5 + rng.Float64()*30)
		case metar.FamilyPressure:
			return round1(990 + rng.Float64()*40)
		case metar.FamilySpeed:
			return float64(rng.Intn(35))
		case metar.FamilyDistance:
			return float64(1000 + rng.Intn(9000))
		case metar.FamilyPrecipitation:
			return round1(rng.Float64() * 3)
		default:
			// Degrees for the directional properties.
			return float64(rng.Intn(36) * 10)
		}
	case metar.KindInt:
		return rng.Intn(24)
	case metar.KindTime:
		return time.Date(2024, 4, 26, rng.Intn(24), rng.Intn(60), 0, 0, time.UTC).Format(time.RFC3339)
	default:
		return "METAR MOCK"
	}
}

func mockSkyConditions(rng *rand.Rand) []map[string]any {
	covers := []string{"FEW", "SCT", "BKN", "OVC"}
	n := rng.Intn(3)
	layers := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		layer := map[string]any{
			"cover":  covers[rng.Intn(len(covers))],
			"height": float64((i + 1) * (800 + rng.Intn(800))),
		}
		if rng.Intn(4) == 0 {
			layer["cloud"] = "CB"
		}
		layers = append(layers, layer)
	}
	return layers
}

func mockWeather(rng *rand.Rand) []map[string]any {
	if rng.Intn(3) > 0 {
		return []map[string]any{}
	}
	return []map[string]any{
		{"intensity": "-", "precipitation": "RA"},
	}
}

func round1(f float64) float64 {
	return float64(int(f*10)) / 10
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
