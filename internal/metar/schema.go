package metar

import (
	"errors"
	"fmt"
	"strings"
)

// Kind describes the decoded shape of a property's response column.
type Kind int

const (
	KindString Kind = iota
	KindFloat
	KindInt
	KindTime
	KindStringList
	KindRunwayVisibility
	KindWeatherCondition
	KindSkyCondition
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindTime:
		return "time"
	case KindStringList:
		return "string_list"
	case KindRunwayVisibility:
		return "runway_visibility"
	case KindWeatherCondition:
		return "weather_condition"
	case KindSkyCondition:
		return "sky_condition"
	default:
		return "unknown"
	}
}

// IsRecord reports whether the kind is a compound record that needs
// structural expansion rather than scalar retyping.
func (k Kind) IsRecord() bool {
	switch k {
	case KindRunwayVisibility, KindWeatherCondition, KindSkyCondition:
		return true
	default:
		return false
	}
}

// Entry is the immutable schema descriptor for one METAR property. It
// correlates the canonical name, the wire representation, the value shape,
// and the permissible units, so request encoding and response decoding stay
// symmetric: whatever a request encodes as a column key, the formatter can
// resolve identically.
type Entry struct {
	// Name is the canonical property name, e.g. "wind_speed".
	Name string

	// WireName is the representation used in requests and response column
	// keys. Unit-less directional properties embed a fixed annotation, e.g.
	// "wind_direction [deg]"; the bracket there is part of the name, not a
	// selectable unit.
	WireName string

	Kind   Kind
	Family UnitFamily

	// MultiValue marks properties where one observation carries a collection
	// of entries (several cloud layers, one visual range per runway).
	MultiValue bool

	// MultiEntry marks properties whose entries are compound records rather
	// than bare primitives.
	MultiEntry bool
}

// ErrUnknownProperty reports a property name that is not in the schema.
var ErrUnknownProperty = errors.New("unknown property")

// entries is the full METAR property schema. Fixed at startup; never mutated.
var entries = []Entry{
	{Name: "metar_code", WireName: "metar_code", Kind: KindString},
	{Name: "report_type", WireName: "report_type", Kind: KindString},
	{Name: "report_correction", WireName: "report_correction", Kind: KindString},
	{Name: "report_mode", WireName: "report_mode", Kind: KindString},
	{Name: "station_id", WireName: "station_id", Kind: KindString},
	{Name: "time", WireName: "time", Kind: KindTime},
	{Name: "observation_cycle", WireName: "observation_cycle", Kind: KindInt},
	{Name: "wind_direction", WireName: "wind_direction [deg]", Kind: KindFloat},
	{Name: "wind_speed", WireName: "wind_speed", Kind: KindFloat, Family: FamilySpeed},
	{Name: "wind_gust_speed", WireName: "wind_gust_speed", Kind: KindFloat, Family: FamilySpeed},
	{Name: "wind_direction_from", WireName: "wind_direction_from [deg]", Kind: KindFloat},
	{Name: "wind_direction_to", WireName: "wind_direction_to [deg]", Kind: KindFloat},
	{Name: "visibility", WireName: "visibility", Kind: KindFloat, Family: FamilyDistance},
	{Name: "visibility_direction", WireName: "visibility_direction [deg]", Kind: KindFloat},
	{Name: "max_visibility", WireName: "max_visibility", Kind: KindFloat, Family: FamilyDistance},
	{Name: "max_visibility_direction", WireName: "max_visibility_direction [deg]", Kind: KindFloat},
	{Name: "temperature", WireName: "temperature", Kind: KindFloat, Family: FamilyTemperature},
	{Name: "dew_point", WireName: "dew_point", Kind: KindFloat, Family: FamilyTemperature},
	{Name: "pressure", WireName: "pressure", Kind: KindFloat, Family: FamilyPressure},
	{Name: "runway_visibility", WireName: "runway_visibility", Kind: KindRunwayVisibility, Family: FamilyDistance, MultiValue: true, MultiEntry: true},
	{Name: "current_weather", WireName: "current_weather", Kind: KindWeatherCondition, MultiValue: true, MultiEntry: true},
	{Name: "recent_weather", WireName: "recent_weather", Kind: KindWeatherCondition, MultiValue: true, MultiEntry: true},
	{Name: "sky_conditions", WireName: "sky_conditions", Kind: KindSkyCondition, Family: FamilyDistance, MultiValue: true, MultiEntry: true},
	{Name: "runway_windshear", WireName: "runway_windshear", Kind: KindStringList, MultiValue: true},
	{Name: "wind_speed_peak", WireName: "wind_speed_peak", Kind: KindFloat, Family: FamilySpeed},
	{Name: "wind_direction_peak", WireName: "wind_direction_peak [deg]", Kind: KindFloat},
	{Name: "peak_wind_time", WireName: "peak_wind_time", Kind: KindTime},
	{Name: "wind_shift_time", WireName: "wind_shift_time", Kind: KindTime},
	{Name: "max_temperature_6h", WireName: "max_temperature_6h", Kind: KindFloat, Family: FamilyTemperature},
	{Name: "min_temperature_6h", WireName: "min_temperature_6h", Kind: KindFloat, Family: FamilyTemperature},
	{Name: "max_temperature_24h", WireName: "max_temperature_24h", Kind: KindFloat, Family: FamilyTemperature},
	{Name: "min_temperature_24h", WireName: "min_temperature_24h", Kind: KindFloat, Family: FamilyTemperature},
	{Name: "pressure_at_sea_level", WireName: "pressure_at_sea_level", Kind: KindFloat, Family: FamilyPressure},
	{Name: "precipitation_1h", WireName: "precipitation_1h", Kind: KindFloat, Family: FamilyPrecipitation},
	{Name: "precipitation_3h", WireName: "precipitation_3h", Kind: KindFloat, Family: FamilyPrecipitation},
	{Name: "precipitation_6h", WireName: "precipitation_6h", Kind: KindFloat, Family: FamilyPrecipitation},
	{Name: "precipitation_24h", WireName: "precipitation_24h", Kind: KindFloat, Family: FamilyPrecipitation},
	{Name: "snow_depth", WireName: "snow_depth", Kind: KindFloat, Family: FamilyDistance},
	{Name: "ice_accretion_1h", WireName: "ice_accretion_1h", Kind: KindFloat, Family: FamilyDistance},
	{Name: "ice_accretion_3h", WireName: "ice_accretion_3h", Kind: KindFloat, Family: FamilyDistance},
	{Name: "ice_accretion_6h", WireName: "ice_accretion_6h", Kind: KindFloat, Family: FamilyDistance},
}

var byName = buildIndex()

func buildIndex() map[string]*Entry {
	index := make(map[string]*Entry, len(entries))
	for i := range entries {
		index[strings.ToLower(entries[i].Name)] = &entries[i]
	}
	return index
}

// Lookup resolves a canonical property name, case-insensitively.
func Lookup(name string) (*Entry, error) {
	e, ok := byName[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}
	return e, nil
}

// Entries returns the full schema in declaration order.
func Entries() []*Entry {
	all := make([]*Entry, len(entries))
	for i := range entries {
		all[i] = &entries[i]
	}
	return all
}

// RecordEntries returns every entry whose value shape is a compound record.
// The formatter expands these columns structurally instead of retyping them.
func RecordEntries() []*Entry {
	var recs []*Entry
	for i := range entries {
		if entries[i].Kind.IsRecord() {
			recs = append(recs, &entries[i])
		}
	}
	return recs
}
