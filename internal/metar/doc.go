// Package metar models the typed property vocabulary of METAR station
// reports and the formatting of raw tabular responses into typed rows.
//
// # Property schema
//
// Every known METAR attribute has exactly one schema [Entry] correlating its
// canonical name, wire representation, value shape, and permissible units.
// The registry is fixed at startup and never mutated, so concurrent lookups
// from simultaneous formatting operations need no synchronization.
//
// # Canonical encoding
//
// A property request and its response column use the same textual token:
//
//	"<wire_name>"            e.g. "metar_code", "wind_direction [deg]"
//	"<wire_name> [<unit>]"   e.g. "wind_speed [KT]", "temperature [C]"
//
// The bracket in "wind_direction [deg]" is a fixed annotation embedded in
// the wire name of a unit-less property; whether a bracketed suffix is a
// selectable unit is decided by the entry's unit family, never by string
// shape. See [ParseProperty].
//
// # Units
//
// Unit symbols are family-scoped: "IN" resolves to inches of distance,
// precipitation, or mercury depending on which family a property declares.
// Requesting a unit-bearing property without a unit assigns the family
// default and raises a [UnitAdvisory]:
//
//	distance → M | precipitation → CM | pressure → HPA | speed → KMH | temperature → C
//
// A unit of the wrong family never constructs; [ErrInvalidUnit] is returned
// at construction time and there is no other way to obtain a [Property].
//
// # Formatting
//
// [FormatRows] consumes a fully materialized response table exactly once.
// Compound columns (runway visibility, present/recent weather, sky
// conditions) expand into slices of typed records with optional sub-fields;
// scalar columns coerce to string, float64, int64, or time.Time; the
// runway_windshear list and unreferenced columns pass through unchanged.
// Row order and count are preserved; one bad cell fails the whole table,
// there is no row-level recovery.
package metar
