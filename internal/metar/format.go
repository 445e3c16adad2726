package metar

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// RawRow is one undecoded response row: column key → raw JSON value. Column
// keys are the canonical property encodings plus fixed identifier columns
// such as "station_id" and "datetime".
type RawRow map[string]json.RawMessage

// Row is one formatted row. Requested compound columns hold typed record
// slices, requested scalar columns hold string/float64/int64/time.Time
// values, and all other columns hold their plain JSON decoding.
type Row map[string]any

var (
	// ErrMalformedRecord reports a compound column cell whose shape does not
	// match the schema: a scalar where an object was expected, or a
	// non-collection where a collection was expected.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrTypeCoercion reports a scalar cell that cannot be coerced to its
	// column's declared primitive type.
	ErrTypeCoercion = errors.New("type coercion failed")
)

// timeLayouts are accepted for timestamp columns, most specific first.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatRows retypes and expands a raw response table according to the
// requested properties. Compound-record columns are expanded into typed
// record values, scalar columns are coerced to their declared primitive
// type, list columns and columns not referenced by any property pass through
// unchanged. Row count and order are preserved exactly; any cell that
// violates the schema fails the whole table.
func FormatRows(rows []RawRow, props []Property) ([]Row, error) {
	columns := make(map[string]Property, len(props))
	for _, p := range props {
		columns[p.String()] = p
	}

	out := make([]Row, len(rows))
	for i, raw := range rows {
		row := make(Row, len(raw))
		for col, cell := range raw {
			p, requested := columns[col]
			if !requested {
				v, err := decodeAny(cell)
				if err != nil {
					return nil, fmt.Errorf("decode column %q row %d: %w", col, i, err)
				}
				row[col] = v
				continue
			}

			v, err := formatCell(p.Entry, cell)
			if err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", col, i, err)
			}
			row[col] = v
		}
		out[i] = row
	}
	return out, nil
}

// formatCell converts one raw cell to its typed value per the entry's kind.
func formatCell(entry *Entry, cell json.RawMessage) (any, error) {
	if isNull(cell) {
		return nil, nil
	}

	switch entry.Kind {
	case KindRunwayVisibility:
		return decodeRecordCell[RunwayVisibility](entry, cell)
	case KindWeatherCondition:
		return decodeRecordCell[WeatherCondition](entry, cell)
	case KindSkyCondition:
		return decodeRecordCell[SkyCondition](entry, cell)
	case KindStringList:
		// Lists of bare primitives are passed through without conversion.
		return decodeAny(cell)
	case KindString:
		var s string
		if err := json.Unmarshal(cell, &s); err != nil {
			return nil, coercionError(cell, "string")
		}
		return s, nil
	case KindFloat:
		return coerceFloat(cell)
	case KindInt:
		return coerceInt(cell)
	case KindTime:
		return coerceTime(cell)
	default:
		return nil, fmt.Errorf("unhandled kind %d for %s", entry.Kind, entry.Name)
	}
}

// decodeRecordCell expands a compound cell: a collection of objects for
// multi-value entries, a single object otherwise.
func decodeRecordCell[T any](entry *Entry, cell json.RawMessage) (any, error) {
	if entry.MultiValue {
		var recs []T
		if err := json.Unmarshal(cell, &recs); err != nil {
			return nil, fmt.Errorf("%w: %s expects a collection of records: %v", ErrMalformedRecord, entry.Name, err)
		}
		return recs, nil
	}
	var rec T
	if err := json.Unmarshal(cell, &rec); err != nil {
		return nil, fmt.Errorf("%w: %s expects a record: %v", ErrMalformedRecord, entry.Name, err)
	}
	return rec, nil
}

func coerceFloat(cell json.RawMessage) (any, error) {
	var f float64
	if err := json.Unmarshal(cell, &f); err == nil {
		return f, nil
	}
	// Numeric text is accepted: servers encode some numeric columns as strings.
	var s string
	if err := json.Unmarshal(cell, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, nil
		}
	}
	return nil, coercionError(cell, "float64")
}

func coerceInt(cell json.RawMessage) (any, error) {
	var n int64
	if err := json.Unmarshal(cell, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(cell, &s); err == nil {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
	}
	return nil, coercionError(cell, "int64")
}

func coerceTime(cell json.RawMessage) (any, error) {
	var s string
	if err := json.Unmarshal(cell, &s); err != nil {
		return nil, coercionError(cell, "timestamp")
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return nil, coercionError(cell, "timestamp")
}

func coercionError(cell json.RawMessage, want string) error {
	return fmt.Errorf("%w: cannot coerce %s to %s", ErrTypeCoercion, cell, want)
}

func decodeAny(cell json.RawMessage) (any, error) {
	var v any
	if err := json.Unmarshal(cell, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func isNull(cell json.RawMessage) bool {
	return len(cell) == 0 || string(cell) == "null"
}
