package metar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLookup(t *testing.T, name string) *Entry {
	t.Helper()
	e, err := Lookup(name)
	require.NoError(t, err)
	return e
}

func TestNewProperty(t *testing.T) {
	t.Run("explicit valid unit", func(t *testing.T) {
		p, adv, err := NewProperty(mustLookup(t, "wind_speed"), UnitKnots)
		require.NoError(t, err)
		assert.Nil(t, adv)
		assert.Equal(t, UnitKnots, p.Unit)
		assert.Equal(t, "wind_speed [KT]", p.String())
	})

	t.Run("missing unit assigns family default with advisory", func(t *testing.T) {
		p, adv, err := NewProperty(mustLookup(t, "temperature"), "")
		require.NoError(t, err)
		require.NotNil(t, adv)
		assert.Equal(t, "temperature", adv.Property)
		assert.Equal(t, FamilyTemperature, adv.Family)
		assert.Equal(t, UnitCelsius, adv.Assigned)
		assert.Equal(t, "temperature [C]", p.String())
	})

	t.Run("sky conditions default to meters", func(t *testing.T) {
		p, adv, err := NewProperty(mustLookup(t, "sky_conditions"), "")
		require.NoError(t, err)
		require.NotNil(t, adv)
		assert.Equal(t, UnitMeters, adv.Assigned)
		assert.Equal(t, "sky_conditions [M]", p.String())
	})

	t.Run("wrong family rejected", func(t *testing.T) {
		_, adv, err := NewProperty(mustLookup(t, "temperature"), UnitKnots)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidUnit)
		assert.Nil(t, adv)
	})

	t.Run("unit on unit-less property rejected", func(t *testing.T) {
		_, _, err := NewProperty(mustLookup(t, "metar_code"), UnitMeters)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidUnit)
	})

	t.Run("unit-less property without unit", func(t *testing.T) {
		p, adv, err := NewProperty(mustLookup(t, "station_id"), "")
		require.NoError(t, err)
		assert.Nil(t, adv)
		assert.Equal(t, "station_id", p.String())
	})
}

func TestParseProperty(t *testing.T) {
	t.Run("name with unit", func(t *testing.T) {
		p, adv, err := ParseProperty("temperature [C]")
		require.NoError(t, err)
		assert.Nil(t, adv)
		assert.Equal(t, "temperature", p.Entry.Name)
		assert.Equal(t, UnitCelsius, p.Unit)
	})

	t.Run("bare name with family gets default and advisory", func(t *testing.T) {
		p, adv, err := ParseProperty("visibility")
		require.NoError(t, err)
		require.NotNil(t, adv)
		assert.Equal(t, UnitMeters, adv.Assigned)
		assert.Equal(t, "visibility [M]", p.String())
	})

	t.Run("fixed deg annotation is not a unit", func(t *testing.T) {
		p, adv, err := ParseProperty("wind_direction [deg]")
		require.NoError(t, err)
		assert.Nil(t, adv)
		assert.Equal(t, "wind_direction", p.Entry.Name)
		assert.Equal(t, Unit(""), p.Unit)
		assert.Equal(t, "wind_direction [deg]", p.String())
	})

	t.Run("unknown name", func(t *testing.T) {
		_, _, err := ParseProperty("humidity [RH]")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedProperty)
	})

	t.Run("unknown unit symbol", func(t *testing.T) {
		_, _, err := ParseProperty("wind_speed [WARP]")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownUnit)
	})

	t.Run("wrong-family unit symbol", func(t *testing.T) {
		_, _, err := ParseProperty("temperature [KT]")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownUnit)
	})

	t.Run("missing brackets", func(t *testing.T) {
		_, _, err := ParseProperty("wind_speed KT")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedProperty)
	})

	t.Run("unterminated bracket", func(t *testing.T) {
		_, _, err := ParseProperty("wind_speed [KT")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedProperty)
	})

	t.Run("surrounding whitespace tolerated", func(t *testing.T) {
		p, _, err := ParseProperty("  pressure [HPA]")
		require.NoError(t, err)
		assert.Equal(t, UnitHectopascal, p.Unit)
	})
}

func TestPropertyRoundTrip(t *testing.T) {
	// String() of any constructible property must parse back to an
	// identical property without raising an advisory.
	for _, e := range Entries() {
		units := e.Family.Units()
		if e.Family == FamilyNone {
			units = []Unit{""}
		}
		for _, u := range units {
			p, _, err := NewProperty(e, u)
			require.NoError(t, err, "%s [%s]", e.Name, u)

			t.Run(p.String(), func(t *testing.T) {
				parsed, adv, err := ParseProperty(p.String())
				require.NoError(t, err)
				assert.Nil(t, adv)
				assert.Equal(t, p, parsed)
			})
		}
	}
}

func TestParseProperties(t *testing.T) {
	t.Run("collects advisories in order", func(t *testing.T) {
		props, advisories, err := ParseProperties([]string{
			"temperature [F]",
			"visibility",
			"precipitation_1h",
			"metar_code",
		})
		require.NoError(t, err)
		require.Len(t, props, 4)

		require.Len(t, advisories, 2)
		assert.Equal(t, "visibility", advisories[0].Property)
		assert.Equal(t, UnitMeters, advisories[0].Assigned)
		assert.Equal(t, "precipitation_1h", advisories[1].Property)
		assert.Equal(t, UnitCentimeters, advisories[1].Assigned)
	})

	t.Run("first failure aborts", func(t *testing.T) {
		_, _, err := ParseProperties([]string{"temperature [C]", "nonsense"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedProperty)
	})

	t.Run("empty input", func(t *testing.T) {
		props, advisories, err := ParseProperties(nil)
		require.NoError(t, err)
		assert.Empty(t, props)
		assert.Empty(t, advisories)
	})
}
