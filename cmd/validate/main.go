// Command validate performs integrity checks on a METAR response-table
// fixture: it resolves the requested property list against the schema, runs
// the fixture through the formatter, and verifies that observation assembly
// preserves every row.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -fixture data/mock/metar_240426.json \
//	  -properties "temperature [C],wind_speed [KT],sky_conditions [M]"
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/metar-etl-service/internal/metar"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	fixture := flag.String("fixture", "", "path to a response-table JSON fixture")
	properties := flag.String("properties", "", "comma-separated property list, e.g. \"temperature [C],visibility\"")
	flag.Parse()

	if *fixture == "" || *properties == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*fixture, *properties); code != 0 {
		os.Exit(code)
	}
}

func run(fixturePath, propertyList string) int {
	fmt.Println("=== METAR Fixture Integrity Validation ===")
	fmt.Println()

	rows, err := loadJSON[metar.RawRow](fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load fixture: %v\n", err)
		return 1
	}

	specs := splitList(propertyList)

	props, resolution := validateResolution(specs)

	phases := []*phase{
		resolution,
		validateColumns(rows, props),
		validateFormatting(rows, props),
		validateAssembly(rows, props),
	}

	// ── Report results ──
	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d fixture rows, %d requested properties\n", len(rows), len(specs))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Property Resolution ──
// Resolves the requested list against the schema and reports unit defaults.

func validateResolution(specs []string) ([]metar.Property, *phase) {
	p := &phase{name: "Phase 1: Property Resolution (schema)"}

	props, advisories, err := metar.ParseProperties(specs)
	if err != nil {
		p.errorf("parse property list: %v", err)
		return nil, p
	}
	for _, adv := range advisories {
		fmt.Printf("  Note: %s given no unit, %s default %s assigned\n", adv.Property, adv.Family, adv.Assigned)
	}
	return props, p
}

// ── Phase 2: Column Coverage ──
// Every requested property must appear as a column key in every fixture row.

func validateColumns(rows []metar.RawRow, props []metar.Property) *phase {
	p := &phase{name: "Phase 2: Column Coverage (fixture)"}
	if props == nil {
		p.errorf("skipped: property resolution failed")
		return p
	}

	for i, row := range rows {
		if _, ok := row[metar.ColumnStationID]; !ok {
			p.errorf("row %d: missing %q column", i, metar.ColumnStationID)
		}
		if _, ok := row[metar.ColumnDatetime]; !ok {
			p.errorf("row %d: missing %q column", i, metar.ColumnDatetime)
		}
		for _, prop := range props {
			if _, ok := row[prop.String()]; !ok {
				p.errorf("row %d: missing column %q", i, prop.String())
			}
		}
	}
	return p
}

// ── Phase 3: Formatting ──
// Runs the fixture through the formatter and checks the decoded value shapes.

func validateFormatting(rows []metar.RawRow, props []metar.Property) *phase {
	p := &phase{name: "Phase 3: Formatting (value shapes)"}
	if props == nil {
		p.errorf("skipped: property resolution failed")
		return p
	}

	formatted, err := metar.FormatRows(rows, props)
	if err != nil {
		p.errorf("format rows: %v", err)
		return p
	}
	if len(formatted) != len(rows) {
		p.errorf("row count: fixture has %d, formatter produced %d", len(rows), len(formatted))
		return p
	}

	for i, row := range formatted {
		for _, prop := range props {
			checkCellShape(p, i, prop, row[prop.String()])
		}
	}
	return p
}

func checkCellShape(p *phase, rowIdx int, prop metar.Property, v any) {
	if v == nil {
		return
	}
	key := prop.String()
	switch prop.Entry.Kind {
	case metar.KindFloat:
		if _, ok := v.(float64); !ok {
			p.errorf("row %d column %q: expected float64, got %T", rowIdx, key, v)
		}
	case metar.KindInt:
		if _, ok := v.(int64); !ok {
			p.errorf("row %d column %q: expected int64, got %T", rowIdx, key, v)
		}
	case metar.KindTime:
		if _, ok := v.(time.Time); !ok {
			p.errorf("row %d column %q: expected time.Time, got %T", rowIdx, key, v)
		}
	case metar.KindRunwayVisibility:
		if _, ok := v.([]metar.RunwayVisibility); !ok {
			p.errorf("row %d column %q: expected []RunwayVisibility, got %T", rowIdx, key, v)
		}
	case metar.KindWeatherCondition:
		if _, ok := v.([]metar.WeatherCondition); !ok {
			p.errorf("row %d column %q: expected []WeatherCondition, got %T", rowIdx, key, v)
		}
	case metar.KindSkyCondition:
		if _, ok := v.([]metar.SkyCondition); !ok {
			p.errorf("row %d column %q: expected []SkyCondition, got %T", rowIdx, key, v)
		}
	}
}

// ── Phase 4: Observation Assembly ──
// Formats the fixture and assembles observations, verifying row preservation.

func validateAssembly(rows []metar.RawRow, props []metar.Property) *phase {
	p := &phase{name: "Phase 4: Observation Assembly"}
	if props == nil {
		p.errorf("skipped: property resolution failed")
		return p
	}

	formatted, err := metar.FormatRows(rows, props)
	if err != nil {
		p.errorf("format rows: %v", err)
		return p
	}

	observations := metar.BuildObservations(formatted)
	if len(observations) != len(rows) {
		p.errorf("observation count: fixture has %d rows, assembly produced %d", len(rows), len(observations))
		return p
	}

	for i, obs := range observations {
		if obs.StationID == "" {
			p.errorf("observation %d: empty station ID", i)
		}
		if obs.Time.IsZero() {
			p.errorf("observation %d (%s): zero observation time", i, obs.StationID)
		}
		if obs.FetchedAt.IsZero() {
			p.errorf("observation %d (%s): zero fetched_at", i, obs.StationID)
		}
	}
	return p
}

// ── Helpers ──

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
