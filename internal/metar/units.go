package metar

import (
	"errors"
	"fmt"
)

// Unit is a measurement unit symbol as it appears on the wire, e.g. "KT" or
// "HPA". Symbols are only meaningful within a family: "IN" is inches of
// distance, precipitation, or mercury depending on which family resolved it.
type Unit string

// UnitFamily is a closed set of interchangeable units for one physical quantity.
type UnitFamily string

const (
	FamilyNone          UnitFamily = ""
	FamilyDistance      UnitFamily = "distance"
	FamilyPrecipitation UnitFamily = "precipitation"
	FamilyPressure      UnitFamily = "pressure"
	FamilySpeed         UnitFamily = "speed"
	FamilyTemperature   UnitFamily = "temperature"
)

const (
	UnitStatuteMiles Unit = "SM"
	UnitMiles        Unit = "MI"
	UnitMeters       Unit = "M"
	UnitKilometers   Unit = "KM"
	UnitFeet         Unit = "FT"
	UnitInches       Unit = "IN"

	UnitCentimeters Unit = "CM"

	UnitMillibar    Unit = "MB"
	UnitHectopascal Unit = "HPA"

	UnitKnots             Unit = "KT"
	UnitMetersPerSecond   Unit = "MPS"
	UnitKilometersPerHour Unit = "KMH"
	UnitMilesPerHour      Unit = "MPH"

	UnitFahrenheit Unit = "F"
	UnitCelsius    Unit = "C"
	UnitKelvin     Unit = "K"
)

// ErrUnknownUnit reports a unit symbol that does not resolve within the
// family it was looked up in.
var ErrUnknownUnit = errors.New("unknown unit")

// familyUnits declares the member symbols of each family. Families never
// grow at runtime; the maps below are read-only after package init.
var familyUnits = map[UnitFamily][]Unit{
	FamilyDistance:      {UnitStatuteMiles, UnitMiles, UnitMeters, UnitKilometers, UnitFeet, UnitInches},
	FamilyPrecipitation: {UnitInches, UnitCentimeters},
	FamilyPressure:      {UnitMillibar, UnitHectopascal, UnitInches},
	FamilySpeed:         {UnitKnots, UnitMetersPerSecond, UnitKilometersPerHour, UnitMilesPerHour},
	FamilyTemperature:   {UnitFahrenheit, UnitCelsius, UnitKelvin},
}

// familyDefaults is the unit assigned when a property of the family is
// requested without an explicit unit.
var familyDefaults = map[UnitFamily]Unit{
	FamilyDistance:      UnitMeters,
	FamilyPrecipitation: UnitCentimeters,
	FamilyPressure:      UnitHectopascal,
	FamilySpeed:         UnitKilometersPerHour,
	FamilyTemperature:   UnitCelsius,
}

// Units returns the member symbols of the family in declaration order.
func (f UnitFamily) Units() []Unit {
	return familyUnits[f]
}

// Contains reports whether the symbol belongs to the family.
func (f UnitFamily) Contains(u Unit) bool {
	for _, member := range familyUnits[f] {
		if member == u {
			return true
		}
	}
	return false
}

// Parse resolves a wire symbol within the family.
func (f UnitFamily) Parse(symbol string) (Unit, error) {
	u := Unit(symbol)
	if !f.Contains(u) {
		return "", fmt.Errorf("%w: %q is not a %s unit", ErrUnknownUnit, symbol, f)
	}
	return u, nil
}

// Default returns the unit assigned when no unit is requested for the family.
func (f UnitFamily) Default() Unit {
	return familyDefaults[f]
}
