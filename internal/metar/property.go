package metar

import (
	"errors"
	"fmt"
	"strings"
)

// Property pairs a schema entry with a resolved unit. Instances are only
// obtainable through NewProperty or ParseProperty, so a Property can never
// carry a unit outside its entry's family.
type Property struct {
	Entry *Entry

	// Unit is empty when the entry declares no unit family.
	Unit Unit
}

// UnitAdvisory is the non-fatal diagnostic returned when a unit-bearing
// property is requested without a unit and the family default is assigned.
type UnitAdvisory struct {
	Property string
	Family   UnitFamily
	Assigned Unit
}

var (
	// ErrInvalidUnit reports a unit of the wrong family, or any unit supplied
	// for a property that has no selectable unit.
	ErrInvalidUnit = errors.New("invalid unit for property")

	// ErrMalformedProperty reports a property string whose name segment does
	// not resolve against the schema.
	ErrMalformedProperty = errors.New("malformed property string")
)

// NewProperty validates the entry/unit pairing. Omitting the unit for a
// unit-bearing entry assigns the family default and returns an advisory;
// the advisory is nil whenever the unit was explicit or the entry is
// unit-less.
func NewProperty(entry *Entry, unit Unit) (Property, *UnitAdvisory, error) {
	if entry.Family == FamilyNone {
		if unit != "" {
			return Property{}, nil, fmt.Errorf("%w: %s takes no unit, got %q", ErrInvalidUnit, entry.Name, unit)
		}
		return Property{Entry: entry}, nil, nil
	}

	if unit == "" {
		assigned := entry.Family.Default()
		return Property{Entry: entry, Unit: assigned}, &UnitAdvisory{
			Property: entry.Name,
			Family:   entry.Family,
			Assigned: assigned,
		}, nil
	}

	if !entry.Family.Contains(unit) {
		return Property{}, nil, fmt.Errorf("%w: %s expects a %s unit, got %q", ErrInvalidUnit, entry.Name, entry.Family, unit)
	}
	return Property{Entry: entry, Unit: unit}, nil, nil
}

// String returns the canonical encoding, used both as the request token and
// as the response column key: "<wire_name>" for unit-less properties,
// "<wire_name> [<unit>]" otherwise.
func (p Property) String() string {
	if p.Unit == "" {
		return p.Entry.WireName
	}
	return fmt.Sprintf("%s [%s]", p.Entry.WireName, p.Unit)
}

// ParseProperty is the inverse of String. The segment before the first space
// is resolved case-insensitively against the schema; a bracketed suffix is
// resolved within the entry's unit family. Entries without a family never get
// unit resolution, even when their wire name visually ends in a bracket
// (e.g. "wind_direction [deg]").
func ParseProperty(s string) (Property, *UnitAdvisory, error) {
	name, rest, _ := strings.Cut(strings.TrimSpace(s), " ")

	entry, err := Lookup(name)
	if err != nil {
		return Property{}, nil, fmt.Errorf("%w: %q", ErrMalformedProperty, s)
	}

	if entry.Family == FamilyNone {
		// Any trailing bracket is the fixed annotation embedded in the wire
		// name, not a selectable unit.
		return NewProperty(entry, "")
	}

	if rest == "" {
		return NewProperty(entry, "")
	}

	symbol, ok := strings.CutPrefix(rest, "[")
	if !ok {
		return Property{}, nil, fmt.Errorf("%w: %q", ErrMalformedProperty, s)
	}
	symbol, ok = strings.CutSuffix(symbol, "]")
	if !ok {
		return Property{}, nil, fmt.Errorf("%w: %q", ErrMalformedProperty, s)
	}

	unit, err := entry.Family.Parse(symbol)
	if err != nil {
		return Property{}, nil, fmt.Errorf("parse %q: %w", s, err)
	}
	return NewProperty(entry, unit)
}

// ParseProperties parses a list of canonical property strings, collecting the
// default-unit advisories raised along the way.
func ParseProperties(specs []string) ([]Property, []UnitAdvisory, error) {
	props := make([]Property, 0, len(specs))
	var advisories []UnitAdvisory
	for _, s := range specs {
		p, adv, err := ParseProperty(s)
		if err != nil {
			return nil, nil, err
		}
		if adv != nil {
			advisories = append(advisories, *adv)
		}
		props = append(props, p)
	}
	return props, advisories, nil
}
